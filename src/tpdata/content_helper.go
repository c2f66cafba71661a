package tpdata

import (
	"context"
	"time"

	"git.tidepool.community/tidepool/tidepool/src/db"
	"git.tidepool.community/tidepool/tidepool/src/models"
	"git.tidepool.community/tidepool/tidepool/src/oops"
	"github.com/google/uuid"
)

// The name of the table backing each content type.
func ContentTable(t models.ContentType) string {
	switch t {
	case models.ContentTypeForumThread:
		return "thread"
	case models.ContentTypeProject:
		return "project"
	case models.ContentTypeMusicPost:
		return "music_post"
	case models.ContentTypeTimelineUpdate:
		return "timeline_update"
	case models.ContentTypeEvent:
		return "event"
	case models.ContentTypeDevLog:
		return "dev_log"
	default:
		panic(oops.New(nil, "no table for unknown content type '%s'", t))
	}
}

func FetchThread(ctx context.Context, dbConn db.ConnOrTx, id string) (*models.Thread, error) {
	return db.QueryOne[models.Thread](ctx, dbConn,
		`SELECT $columns FROM thread WHERE id = $1`, id,
	)
}

func FetchProject(ctx context.Context, dbConn db.ConnOrTx, id string) (*models.Project, error) {
	return db.QueryOne[models.Project](ctx, dbConn,
		`SELECT $columns FROM project WHERE id = $1`, id,
	)
}

func FetchMusicPost(ctx context.Context, dbConn db.ConnOrTx, id string) (*models.MusicPost, error) {
	return db.QueryOne[models.MusicPost](ctx, dbConn,
		`SELECT $columns FROM music_post WHERE id = $1`, id,
	)
}

func FetchTimelineUpdate(ctx context.Context, dbConn db.ConnOrTx, id string) (*models.TimelineUpdate, error) {
	return db.QueryOne[models.TimelineUpdate](ctx, dbConn,
		`SELECT $columns FROM timeline_update WHERE id = $1`, id,
	)
}

func FetchEvent(ctx context.Context, dbConn db.ConnOrTx, id string) (*models.Event, error) {
	return db.QueryOne[models.Event](ctx, dbConn,
		`SELECT $columns FROM event WHERE id = $1`, id,
	)
}

func FetchDevLog(ctx context.Context, dbConn db.ConnOrTx, id string) (*models.DevLog, error) {
	return db.QueryOne[models.DevLog](ctx, dbConn,
		`SELECT $columns FROM dev_log WHERE id = $1`, id,
	)
}

/*
A normalized, read-only view over the six content tables: whatever the
variant calls its primary text column (body / description / details), it
lands in Text here. Used anywhere code needs to treat content generically,
most notably the move operation.
*/
type ContentItem struct {
	Ref models.ContentRef

	Title *string
	Text  string

	AuthorID     *int
	ImageAssetID *uuid.UUID
	CreatedAt    time.Time

	// Set only when the item is a music post.
	MusicUrl *string

	Stamp models.MoveStamp
}

/*
Fetches any content item by reference and maps it into the normalized view.
Returns db.NotFound if no such row exists.
*/
func FetchContentItem(ctx context.Context, dbConn db.ConnOrTx, ref models.ContentRef) (*ContentItem, error) {
	item := ContentItem{Ref: ref}

	switch ref.Type {
	case models.ContentTypeForumThread:
		row, err := FetchThread(ctx, dbConn, ref.ID)
		if err != nil {
			return nil, err
		}
		item.Title = &row.Title
		item.Text = row.Body
		item.AuthorID = row.AuthorID
		item.ImageAssetID = row.ImageAssetID
		item.CreatedAt = row.CreatedAt
		item.Stamp = row.MoveStamp
	case models.ContentTypeProject:
		row, err := FetchProject(ctx, dbConn, ref.ID)
		if err != nil {
			return nil, err
		}
		item.Title = &row.Title
		item.Text = row.Description
		item.AuthorID = row.AuthorID
		item.ImageAssetID = row.ImageAssetID
		item.CreatedAt = row.CreatedAt
		item.Stamp = row.MoveStamp
	case models.ContentTypeMusicPost:
		row, err := FetchMusicPost(ctx, dbConn, ref.ID)
		if err != nil {
			return nil, err
		}
		item.Title = &row.Title
		item.Text = row.Body
		item.AuthorID = row.AuthorID
		item.ImageAssetID = row.ImageAssetID
		item.CreatedAt = row.CreatedAt
		item.MusicUrl = &row.Url
		item.Stamp = row.MoveStamp
	case models.ContentTypeTimelineUpdate:
		row, err := FetchTimelineUpdate(ctx, dbConn, ref.ID)
		if err != nil {
			return nil, err
		}
		item.Title = row.Title
		item.Text = row.Body
		item.AuthorID = row.AuthorID
		item.ImageAssetID = row.ImageAssetID
		item.CreatedAt = row.CreatedAt
		item.Stamp = row.MoveStamp
	case models.ContentTypeEvent:
		row, err := FetchEvent(ctx, dbConn, ref.ID)
		if err != nil {
			return nil, err
		}
		item.Title = &row.Title
		item.Text = row.Details
		item.AuthorID = row.AuthorID
		item.ImageAssetID = row.ImageAssetID
		item.CreatedAt = row.CreatedAt
		item.Stamp = row.MoveStamp
	case models.ContentTypeDevLog:
		row, err := FetchDevLog(ctx, dbConn, ref.ID)
		if err != nil {
			return nil, err
		}
		item.Title = &row.Title
		item.Text = row.Body
		item.AuthorID = row.AuthorID
		item.ImageAssetID = row.ImageAssetID
		item.CreatedAt = row.CreatedAt
		item.Stamp = row.MoveStamp
	default:
		return nil, oops.New(nil, "unknown content type '%s'", ref.Type)
	}

	return &item, nil
}
