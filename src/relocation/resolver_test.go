package relocation

import (
	"testing"

	"git.tidepool.community/tidepool/tidepool/src/models"
	"github.com/stretchr/testify/assert"
)

func TestResolveSourceUrl(t *testing.T) {
	tests := []struct {
		url      string
		expected models.ContentRef
		ok       bool
	}{
		{"/forum/abc123", models.ContentRef{Type: models.ContentTypeForumThread, ID: "abc123"}, true},
		{"/projects/p1", models.ContentRef{Type: models.ContentTypeProject, ID: "p1"}, true},
		{"/music/m1", models.ContentRef{Type: models.ContentTypeMusicPost, ID: "m1"}, true},
		{"/timeline/t1", models.ContentRef{Type: models.ContentTypeTimelineUpdate, ID: "t1"}, true},
		{"/events/e1", models.ContentRef{Type: models.ContentTypeEvent, ID: "e1"}, true},
		{"/devlog/d1", models.ContentRef{Type: models.ContentTypeDevLog, ID: "d1"}, true},

		{"https://tidepool.community/forum/abc123", models.ContentRef{Type: models.ContentTypeForumThread, ID: "abc123"}, true},
		{"forum/abc123", models.ContentRef{Type: models.ContentTypeForumThread, ID: "abc123"}, true},
		{"/forum/abc123/edit", models.ContentRef{Type: models.ContentTypeForumThread, ID: "abc123"}, true},
		{"  /forum/abc123  ", models.ContentRef{Type: models.ContentTypeForumThread, ID: "abc123"}, true},

		{"", models.ContentRef{}, false},
		{"/forum", models.ContentRef{}, false},
		{"/wiki/abc123", models.ContentRef{}, false},
		{"not a url at all", models.ContentRef{}, false},
	}
	for _, test := range tests {
		t.Run(test.url, func(t *testing.T) {
			ref, ok := ResolveSourceUrl(test.url)
			assert.Equal(t, test.ok, ok)
			if test.ok {
				assert.Equal(t, test.expected, ref)
			}
		})
	}
}

func TestResolveSource(t *testing.T) {
	explicit := models.ContentRef{Type: models.ContentTypeProject, ID: "p1"}

	t.Run("url wins over explicit pair", func(t *testing.T) {
		ref, ok := ResolveSource("/forum/abc", explicit)
		assert.True(t, ok)
		assert.Equal(t, models.ContentTypeForumThread, ref.Type)
		assert.Equal(t, "abc", ref.ID)
	})

	t.Run("falls back to explicit pair", func(t *testing.T) {
		ref, ok := ResolveSource("garbage", explicit)
		assert.True(t, ok)
		assert.Equal(t, explicit, ref)
	})

	t.Run("explicit pair must be complete", func(t *testing.T) {
		_, ok := ResolveSource("", models.ContentRef{Type: models.ContentTypeProject})
		assert.False(t, ok)

		_, ok = ResolveSource("", models.ContentRef{ID: "p1"})
		assert.False(t, ok)

		_, ok = ResolveSource("", models.ContentRef{Type: "bogus", ID: "p1"})
		assert.False(t, ok)
	})
}
