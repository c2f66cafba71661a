package relocation

import (
	"context"
	"strings"
	"time"

	"git.tidepool.community/tidepool/tidepool/src/db"
	"git.tidepool.community/tidepool/tidepool/src/models"
	"git.tidepool.community/tidepool/tidepool/src/oops"
	"git.tidepool.community/tidepool/tidepool/src/parsing"
	"git.tidepool.community/tidepool/tidepool/src/tpdata"
	"github.com/google/uuid"
)

// Destination-specific fields supplied by the requester alongside the move.
// Which ones matter depends on the destination type; the rest are ignored.
type Extras struct {
	StartsAt string // events
	Url      string // music
	UrlType  string // music
	Tags     string // music
	Status   string // projects
}

type destFields struct {
	Type models.ContentType
	ID   string

	Title *string
	Text  string

	Status    models.ProjectStatus // project only
	StartsAt  time.Time            // event only
	MusicUrl  string               // music only
	MusicType string               // music only
	Tags      *string              // music only

	AuthorID     *int
	ImageAssetID *uuid.UUID
	CreatedAt    time.Time
}

// Accepted formats for an event's start time, tried in order. The first is
// what an HTML datetime-local input submits.
var startsAtFormats = []string{
	"2006-01-02T15:04",
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02",
}

func parseStartsAt(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, format := range startsAtFormats {
		if t, err := time.Parse(format, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// The body carried over to a body-like destination field. Music posts embed
// their external link so it survives the move into types that have no url
// column of their own.
func synthBody(src *tpdata.ContentItem) string {
	if src.Ref.Type == models.ContentTypeMusicPost && src.MusicUrl != nil && *src.MusicUrl != "" {
		return "Source: " + *src.MusicUrl + "\n\n" + src.Text
	}
	return src.Text
}

func synthTitle(src *tpdata.ContentItem) string {
	if src.Title != nil && *src.Title != "" {
		return *src.Title
	}
	return "(untitled)"
}

// destinationFields maps a source item onto the fields of a new row of the
// destination type, validating the destination-specific requirements. Pure;
// writes nothing.
func destinationFields(destType models.ContentType, src *tpdata.ContentItem, extras Extras, now time.Time) (destFields, error) {
	fields := destFields{
		Type:         destType,
		ID:           uuid.NewString(),
		AuthorID:     src.AuthorID,
		ImageAssetID: src.ImageAssetID,
		CreatedAt:    now,
	}

	switch destType {
	case models.ContentTypeForumThread:
		title := synthTitle(src)
		fields.Title = &title
		fields.Text = synthBody(src)
	case models.ContentTypeProject:
		title := synthTitle(src)
		fields.Title = &title
		fields.Text = src.Text
		fields.Status = models.ProjectStatusActive
		if extras.Status != "" {
			fields.Status = models.ProjectStatus(extras.Status)
		}
	case models.ContentTypeMusicPost:
		musicUrl := strings.TrimSpace(extras.Url)
		musicType := strings.TrimSpace(extras.UrlType)
		if !parsing.IsUrl(musicUrl) || musicType == "" {
			return destFields{}, ErrMusicRequiresUrlType
		}
		title := synthTitle(src)
		fields.Title = &title
		fields.Text = src.Text
		fields.MusicUrl = musicUrl
		fields.MusicType = musicType
		if tags := strings.TrimSpace(extras.Tags); tags != "" {
			fields.Tags = &tags
		}
	case models.ContentTypeTimelineUpdate:
		fields.Title = src.Title
		fields.Text = synthBody(src)
	case models.ContentTypeEvent:
		startsAt, ok := parseStartsAt(extras.StartsAt)
		if !ok {
			return destFields{}, ErrEventRequiresStartsAt
		}
		title := synthTitle(src)
		fields.Title = &title
		fields.Text = src.Text
		fields.StartsAt = startsAt
	case models.ContentTypeDevLog:
		title := synthTitle(src)
		fields.Title = &title
		fields.Text = synthBody(src)
	default:
		return destFields{}, ErrUnsupportedDest(destType)
	}

	return fields, nil
}

func insertDestination(ctx context.Context, tx db.ConnOrTx, fields destFields) error {
	var err error
	switch fields.Type {
	case models.ContentTypeForumThread:
		_, err = tx.Exec(ctx,
			`
			INSERT INTO thread (id, title, body, author_id, image_asset_id, created_at, updated_at, locked)
			VALUES ($1, $2, $3, $4, $5, $6, NULL, FALSE)
			`,
			fields.ID, *fields.Title, fields.Text, fields.AuthorID, fields.ImageAssetID, fields.CreatedAt,
		)
	case models.ContentTypeProject:
		_, err = tx.Exec(ctx,
			`
			INSERT INTO project (id, title, description, status, author_id, image_asset_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, NULL)
			`,
			fields.ID, *fields.Title, fields.Text, fields.Status, fields.AuthorID, fields.ImageAssetID, fields.CreatedAt,
		)
	case models.ContentTypeMusicPost:
		_, err = tx.Exec(ctx,
			`
			INSERT INTO music_post (id, title, body, url, type, tags, author_id, image_asset_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULL)
			`,
			fields.ID, *fields.Title, fields.Text, fields.MusicUrl, fields.MusicType, fields.Tags, fields.AuthorID, fields.ImageAssetID, fields.CreatedAt,
		)
	case models.ContentTypeTimelineUpdate:
		_, err = tx.Exec(ctx,
			`
			INSERT INTO timeline_update (id, title, body, author_id, image_asset_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, NULL)
			`,
			fields.ID, fields.Title, fields.Text, fields.AuthorID, fields.ImageAssetID, fields.CreatedAt,
		)
	case models.ContentTypeEvent:
		_, err = tx.Exec(ctx,
			`
			INSERT INTO event (id, title, details, starts_at, author_id, image_asset_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, NULL)
			`,
			fields.ID, *fields.Title, fields.Text, fields.StartsAt, fields.AuthorID, fields.ImageAssetID, fields.CreatedAt,
		)
	case models.ContentTypeDevLog:
		_, err = tx.Exec(ctx,
			`
			INSERT INTO dev_log (id, title, body, author_id, image_asset_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, NULL)
			`,
			fields.ID, *fields.Title, fields.Text, fields.AuthorID, fields.ImageAssetID, fields.CreatedAt,
		)
	default:
		return ErrUnsupportedDest(fields.Type)
	}
	if err != nil {
		return oops.New(err, "failed to insert destination %s", fields.Type)
	}
	return nil
}
