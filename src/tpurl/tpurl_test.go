package tpurl

import (
	"testing"

	"git.tidepool.community/tidepool/tidepool/src/config"
	"git.tidepool.community/tidepool/tidepool/src/models"
	"github.com/stretchr/testify/assert"
)

func TestUrl(t *testing.T) {
	defer func(old string) { config.Config.BaseUrl = old }(config.Config.BaseUrl)
	config.Config.BaseUrl = "http://test.tidepool.community"

	assert.Equal(t, "http://test.tidepool.community/forum/abc", BuildForumThread("abc"))
	assert.Equal(t, "http://test.tidepool.community/hello?foo=bar", Url("hello", []Q{{"foo", "bar"}}))
}

func TestBuildContent(t *testing.T) {
	tests := []struct {
		ref  models.ContentRef
		want string
	}{
		{models.ContentRef{Type: models.ContentTypeForumThread, ID: "t1"}, "/forum/t1"},
		{models.ContentRef{Type: models.ContentTypeProject, ID: "p1"}, "/projects/p1"},
		{models.ContentRef{Type: models.ContentTypeMusicPost, ID: "m1"}, "/music/m1"},
		{models.ContentRef{Type: models.ContentTypeTimelineUpdate, ID: "u1"}, "/timeline/u1"},
		{models.ContentRef{Type: models.ContentTypeEvent, ID: "e1"}, "/events/e1"},
		{models.ContentRef{Type: models.ContentTypeDevLog, ID: "d1"}, "/devlog/d1"},
	}
	for _, test := range tests {
		t.Run(string(test.ref.Type), func(t *testing.T) {
			assert.Contains(t, BuildContent(test.ref), test.want)
		})
	}

	assert.Panics(t, func() {
		BuildContent(models.ContentRef{Type: "bogus", ID: "x"})
	})
}

func TestContentRegexes(t *testing.T) {
	m := RegexForumThread.FindStringSubmatch("/forum/t1")
	if assert.NotEmpty(t, m) {
		assert.Equal(t, "t1", m[RegexForumThread.SubexpIndex("id")])
	}

	assert.Empty(t, RegexForumThread.FindStringSubmatch("/forum/t1/extra"))
	assert.NotEmpty(t, RegexEvent.FindStringSubmatch("/events/e9"))
	assert.NotEmpty(t, RegexDevLog.FindStringSubmatch("/devlog/d2"))
}
