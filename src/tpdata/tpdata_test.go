package tpdata

import (
	"testing"

	"git.tidepool.community/tidepool/tidepool/src/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentTable(t *testing.T) {
	tests := map[models.ContentType]string{
		models.ContentTypeForumThread:    "thread",
		models.ContentTypeProject:        "project",
		models.ContentTypeMusicPost:      "music_post",
		models.ContentTypeTimelineUpdate: "timeline_update",
		models.ContentTypeEvent:          "event",
		models.ContentTypeDevLog:         "dev_log",
	}
	for contentType, expected := range tests {
		assert.Equal(t, expected, ContentTable(contentType))
	}

	assert.Panics(t, func() {
		ContentTable("wiki")
	})
}

func TestCommentTable(t *testing.T) {
	tests := []struct {
		contentType models.ContentType
		table       string
		parentCol   string
	}{
		{models.ContentTypeForumThread, "forum_reply", "thread_id"},
		{models.ContentTypeProject, "project_comment", "project_id"},
		{models.ContentTypeMusicPost, "music_comment", "music_post_id"},
		{models.ContentTypeTimelineUpdate, "timeline_comment", "timeline_update_id"},
		{models.ContentTypeEvent, "event_comment", "event_id"},
		{models.ContentTypeDevLog, "dev_log_comment", "dev_log_id"},
	}
	for _, test := range tests {
		table, parentCol, err := CommentTable(test.contentType)
		require.NoError(t, err)
		assert.Equal(t, test.table, table)
		assert.Equal(t, test.parentCol, parentCol)
	}

	_, _, err := CommentTable("wiki")
	assert.Error(t, err)
}
