package models

import "time"

// One comment (or forum reply) attached to a content item. Every content
// type has its own comment table; the schemas are identical apart from the
// name of the parent foreign key, so they all map into this struct.
type Comment struct {
	ID string `db:"id"`

	AuthorID *int   `db:"author_id"`
	Body     string `db:"body"`

	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt *time.Time `db:"updated_at"`
	Deleted   bool       `db:"is_deleted"`
}
