package relocation

import (
	"testing"
	"time"

	"git.tidepool.community/tidepool/tidepool/src/models"
	"git.tidepool.community/tidepool/tidepool/src/tpdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string {
	return &s
}

func sourceItem(t models.ContentType) *tpdata.ContentItem {
	authorID := 42
	return &tpdata.ContentItem{
		Ref:       models.ContentRef{Type: t, ID: "src1"},
		Title:     strptr("Hello"),
		Text:      "World",
		AuthorID:  &authorID,
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestDestinationFields(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	t.Run("thread to project", func(t *testing.T) {
		fields, err := destinationFields(models.ContentTypeProject, sourceItem(models.ContentTypeForumThread), Extras{}, now)
		require.NoError(t, err)
		assert.Equal(t, "Hello", *fields.Title)
		assert.Equal(t, "World", fields.Text)
		assert.Equal(t, models.ProjectStatusActive, fields.Status)
		assert.Equal(t, now, fields.CreatedAt)
		assert.NotEmpty(t, fields.ID)
	})

	t.Run("project status can be supplied", func(t *testing.T) {
		fields, err := destinationFields(models.ContentTypeProject, sourceItem(models.ContentTypeForumThread), Extras{Status: "on_hold"}, now)
		require.NoError(t, err)
		assert.Equal(t, models.ProjectStatusOnHold, fields.Status)
	})

	t.Run("untitled sources get a placeholder title", func(t *testing.T) {
		src := sourceItem(models.ContentTypeTimelineUpdate)
		src.Title = nil
		fields, err := destinationFields(models.ContentTypeForumThread, src, Extras{}, now)
		require.NoError(t, err)
		assert.Equal(t, "(untitled)", *fields.Title)
	})

	t.Run("timeline updates keep a missing title", func(t *testing.T) {
		src := sourceItem(models.ContentTypeForumThread)
		src.Title = nil
		fields, err := destinationFields(models.ContentTypeTimelineUpdate, src, Extras{}, now)
		require.NoError(t, err)
		assert.Nil(t, fields.Title)
	})

	t.Run("music source embeds its link in body-like destinations", func(t *testing.T) {
		src := sourceItem(models.ContentTypeMusicPost)
		src.MusicUrl = strptr("https://example.com/song.mp3")

		for _, destType := range []models.ContentType{
			models.ContentTypeForumThread,
			models.ContentTypeTimelineUpdate,
			models.ContentTypeDevLog,
		} {
			fields, err := destinationFields(destType, src, Extras{}, now)
			require.NoError(t, err)
			assert.Equal(t, "Source: https://example.com/song.mp3\n\nWorld", fields.Text)
		}

		// Projects take the text as-is.
		fields, err := destinationFields(models.ContentTypeProject, src, Extras{}, now)
		require.NoError(t, err)
		assert.Equal(t, "World", fields.Text)
	})

	t.Run("events require a parseable start time", func(t *testing.T) {
		src := sourceItem(models.ContentTypeForumThread)

		_, err := destinationFields(models.ContentTypeEvent, src, Extras{}, now)
		assert.Equal(t, ErrEventRequiresStartsAt, err)

		_, err = destinationFields(models.ContentTypeEvent, src, Extras{StartsAt: "whenever"}, now)
		assert.Equal(t, ErrEventRequiresStartsAt, err)

		fields, err := destinationFields(models.ContentTypeEvent, src, Extras{StartsAt: "2026-09-15T18:30"}, now)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 9, 15, 18, 30, 0, 0, time.UTC), fields.StartsAt)
	})

	t.Run("music requires url and type", func(t *testing.T) {
		src := sourceItem(models.ContentTypeForumThread)

		_, err := destinationFields(models.ContentTypeMusicPost, src, Extras{Url: "https://example.com/a.mp3"}, now)
		assert.Equal(t, ErrMusicRequiresUrlType, err)

		_, err = destinationFields(models.ContentTypeMusicPost, src, Extras{UrlType: "mp3"}, now)
		assert.Equal(t, ErrMusicRequiresUrlType, err)

		_, err = destinationFields(models.ContentTypeMusicPost, src, Extras{Url: "definitely not a url", UrlType: "mp3"}, now)
		assert.Equal(t, ErrMusicRequiresUrlType, err)

		_, err = destinationFields(models.ContentTypeMusicPost, src, Extras{Url: "example.com/a.mp3", UrlType: "mp3"}, now)
		assert.Equal(t, ErrMusicRequiresUrlType, err)

		fields, err := destinationFields(models.ContentTypeMusicPost, src, Extras{Url: "https://example.com/a.mp3", UrlType: "mp3", Tags: "chiptune"}, now)
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/a.mp3", fields.MusicUrl)
		assert.Equal(t, "mp3", fields.MusicType)
		require.NotNil(t, fields.Tags)
		assert.Equal(t, "chiptune", *fields.Tags)
	})

	t.Run("event details become the destination text", func(t *testing.T) {
		src := sourceItem(models.ContentTypeEvent)
		src.Text = "Doors at seven."
		fields, err := destinationFields(models.ContentTypeForumThread, src, Extras{}, now)
		require.NoError(t, err)
		assert.Equal(t, "Doors at seven.", fields.Text)
	})

	t.Run("unknown destination type", func(t *testing.T) {
		_, err := destinationFields("wiki", sourceItem(models.ContentTypeForumThread), Extras{}, now)
		var moveErr *MoveError
		require.ErrorAs(t, err, &moveErr)
		assert.Equal(t, "unsupported_dest", moveErr.Code)
	})
}

func TestParseStartsAt(t *testing.T) {
	ok := []string{
		"2026-09-15T18:30",
		"2026-09-15T18:30:00Z",
		"2026-09-15 18:30",
		"2026-09-15",
	}
	for _, raw := range ok {
		_, parsed := parseStartsAt(raw)
		assert.True(t, parsed, "should parse: %s", raw)
	}

	bad := []string{"", "   ", "soon", "15/09/2026"}
	for _, raw := range bad {
		_, parsed := parseStartsAt(raw)
		assert.False(t, parsed, "should not parse: %s", raw)
	}
}
