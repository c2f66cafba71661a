package models

import "time"

// The permanent audit record of one completed move. Exactly one may exist
// per (source_type, source_id); the table enforces this with a unique
// constraint. Rows are created once and never updated or deleted.
type MoveRecord struct {
	ID string `db:"id"`

	SourceType ContentType `db:"source_type"`
	SourceID   string      `db:"source_id"`
	DestType   ContentType `db:"dest_type"`
	DestID     string      `db:"dest_id"`

	MovedByUserID int       `db:"moved_by_user_id"`
	MovedAt       time.Time `db:"moved_at"`
}

func (m *MoveRecord) Source() ContentRef {
	return ContentRef{Type: m.SourceType, ID: m.SourceID}
}

func (m *MoveRecord) Dest() ContentRef {
	return ContentRef{Type: m.DestType, ID: m.DestID}
}
