package tpdata

import (
	"context"
	"fmt"

	"git.tidepool.community/tidepool/tidepool/src/db"
	"git.tidepool.community/tidepool/tidepool/src/models"
	"git.tidepool.community/tidepool/tidepool/src/oops"
	"git.tidepool.community/tidepool/tidepool/src/utils"
	"github.com/google/uuid"
)

/*
The comment table and parent foreign key column for each content type.
Every content type has a comment collection; an unknown type here is a
programming error, so this returns an error rather than silently doing
nothing.
*/
func CommentTable(t models.ContentType) (table string, parentCol string, err error) {
	switch t {
	case models.ContentTypeForumThread:
		return "forum_reply", "thread_id", nil
	case models.ContentTypeProject:
		return "project_comment", "project_id", nil
	case models.ContentTypeMusicPost:
		return "music_comment", "music_post_id", nil
	case models.ContentTypeTimelineUpdate:
		return "timeline_comment", "timeline_update_id", nil
	case models.ContentTypeEvent:
		return "event_comment", "event_id", nil
	case models.ContentTypeDevLog:
		return "dev_log_comment", "dev_log_id", nil
	default:
		return "", "", oops.New(nil, "no comment table for content type '%s'", t)
	}
}

/*
Fetches all live comments on a content item, oldest first, preserving
conversation order.
*/
func FetchComments(ctx context.Context, dbConn db.ConnOrTx, parent models.ContentRef) ([]*models.Comment, error) {
	table, parentCol, err := CommentTable(parent.Type)
	if err != nil {
		return nil, err
	}

	comments, err := db.Query[models.Comment](ctx, dbConn,
		fmt.Sprintf(
			`
			SELECT $columns
			FROM %s
			WHERE %s = $1 AND NOT is_deleted
			ORDER BY created_at ASC
			`,
			table, parentCol,
		),
		parent.ID,
	)
	if err != nil {
		return nil, oops.New(err, "failed to fetch comments for %s %s", parent.Type, parent.ID)
	}

	return comments, nil
}

/*
Inserts a comment into the parent's comment collection. The comment's ID is
generated when blank, and CreatedAt is taken as given when set, so callers
copying comments between items can preserve original timestamps.
*/
func InsertComment(ctx context.Context, dbConn db.ConnOrTx, parent models.ContentRef, c models.Comment) (*models.Comment, error) {
	table, parentCol, err := CommentTable(parent.Type)
	if err != nil {
		return nil, err
	}

	c.ID = utils.OrDefault(c.ID, uuid.NewString())

	var createdAt any
	if !c.CreatedAt.IsZero() {
		createdAt = c.CreatedAt
	}

	inserted, err := db.QueryOne[models.Comment](ctx, dbConn,
		fmt.Sprintf(
			`
			INSERT INTO %s (id, %s, author_id, body, created_at, updated_at, is_deleted)
			VALUES         ($1, $2, $3,        $4,   COALESCE($5, CURRENT_TIMESTAMP), NULL, FALSE)
			RETURNING $columns
			`,
			table, parentCol,
		),
		c.ID, parent.ID, c.AuthorID, c.Body, createdAt,
	)
	if err != nil {
		return nil, oops.New(err, "failed to insert comment on %s %s", parent.Type, parent.ID)
	}

	return inserted, nil
}
