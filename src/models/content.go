package models

import (
	"time"

	"github.com/google/uuid"
)

// The type of a movable piece of content. Values are stored in the database
// (move_record.source_type/dest_type and the moved_to_type stamps), so they
// must never be renamed.
type ContentType string

const (
	ContentTypeForumThread    ContentType = "forum_thread"
	ContentTypeProject        ContentType = "project"
	ContentTypeMusicPost      ContentType = "music_post"
	ContentTypeTimelineUpdate ContentType = "timeline_update"
	ContentTypeEvent          ContentType = "event"
	ContentTypeDevLog         ContentType = "dev_log"
)

var AllContentTypes = []ContentType{
	ContentTypeForumThread,
	ContentTypeProject,
	ContentTypeMusicPost,
	ContentTypeTimelineUpdate,
	ContentTypeEvent,
	ContentTypeDevLog,
}

func (t ContentType) Valid() bool {
	for _, known := range AllContentTypes {
		if t == known {
			return true
		}
	}
	return false
}

// A (type, id) pair identifying one content item.
type ContentRef struct {
	Type ContentType
	ID   string
}

// Set on a content row once it has been the source of a successful move.
// The move_record table is the authoritative record; these columns are a
// denormalized copy kept on the row itself.
type MoveStamp struct {
	MovedToType   *ContentType `db:"moved_to_type"`
	MovedToID     *string      `db:"moved_to_id"`
	MovedAt       *time.Time   `db:"moved_at"`
	MovedByUserID *int         `db:"moved_by_user_id"`
}

func (s *MoveStamp) Moved() bool {
	return s.MovedToType != nil && s.MovedToID != nil
}

func (s *MoveStamp) MovedTo() (ContentRef, bool) {
	if !s.Moved() {
		return ContentRef{}, false
	}
	return ContentRef{Type: *s.MovedToType, ID: *s.MovedToID}, true
}

type Thread struct {
	ID string `db:"id"`

	Title string `db:"title"`
	Body  string `db:"body"`

	AuthorID     *int       `db:"author_id"`
	ImageAssetID *uuid.UUID `db:"image_asset_id"`

	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt *time.Time `db:"updated_at"`

	Locked bool `db:"locked"`

	MoveStamp
}

type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusOnHold    ProjectStatus = "on_hold"
	ProjectStatusCompleted ProjectStatus = "completed"
)

type Project struct {
	ID string `db:"id"`

	Title       string        `db:"title"`
	Description string        `db:"description"`
	Status      ProjectStatus `db:"status"`

	GithubUrl *string `db:"github_url"`
	DemoUrl   *string `db:"demo_url"`

	AuthorID     *int       `db:"author_id"`
	ImageAssetID *uuid.UUID `db:"image_asset_id"`

	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt *time.Time `db:"updated_at"`

	MoveStamp
}

type MusicPost struct {
	ID string `db:"id"`

	Title string `db:"title"`
	Body  string `db:"body"`

	Url  string  `db:"url"`
	Type string  `db:"type"`
	Tags *string `db:"tags"`

	AuthorID     *int       `db:"author_id"`
	ImageAssetID *uuid.UUID `db:"image_asset_id"`

	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt *time.Time `db:"updated_at"`

	MoveStamp
}

type TimelineUpdate struct {
	ID string `db:"id"`

	Title *string `db:"title"`
	Body  string  `db:"body"`

	AuthorID     *int       `db:"author_id"`
	ImageAssetID *uuid.UUID `db:"image_asset_id"`

	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt *time.Time `db:"updated_at"`

	MoveStamp
}

type Event struct {
	ID string `db:"id"`

	Title    string    `db:"title"`
	Details  string    `db:"details"`
	StartsAt time.Time `db:"starts_at"`

	AuthorID     *int       `db:"author_id"`
	ImageAssetID *uuid.UUID `db:"image_asset_id"`

	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt *time.Time `db:"updated_at"`

	MoveStamp
}

type DevLog struct {
	ID string `db:"id"`

	Title string `db:"title"`
	Body  string `db:"body"`

	AuthorID     *int       `db:"author_id"`
	ImageAssetID *uuid.UUID `db:"image_asset_id"`

	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt *time.Time `db:"updated_at"`

	MoveStamp
}
