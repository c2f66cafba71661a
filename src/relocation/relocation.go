/*
Package relocation implements moving a content item from one content-type
collection to another: a forum thread can become a project, a music post can
become an event, and so on. The original authorship, image, and comment
thread are preserved on the new item, a permanent move record is written,
and the old location redirects to the new one forever after.

The whole write sequence (destination row, copied comments, move record,
source stamp) runs in a single transaction, and the move_record table's
unique constraint on (source_type, source_id) guarantees at most one move
per source even under concurrent requests.
*/
package relocation

import (
	"fmt"

	"git.tidepool.community/tidepool/tidepool/src/models"
)

// A move failure that is the requester's fault. Code is stable and
// machine-readable; Message is for humans.
type MoveError struct {
	Code    string
	Message string
}

func (e *MoveError) Error() string {
	return e.Message
}

var ErrEventRequiresStartsAt = &MoveError{
	Code:    "events_requires_starts_at",
	Message: "moving to events requires a valid start time",
}

var ErrMusicRequiresUrlType = &MoveError{
	Code:    "music_requires_url_type",
	Message: "moving to music requires a well-formed url and a type",
}

func ErrUnsupportedDest(t models.ContentType) *MoveError {
	return &MoveError{
		Code:    "unsupported_dest",
		Message: fmt.Sprintf("unsupported destination type '%s'", t),
	}
}

// Returned when the move ledger's schema migration has not been applied to
// this database yet. This is an operator problem, not a user one.
var ErrLedgerMissing = &MoveError{
	Code:    "move_ledger_missing",
	Message: "the move_record table does not exist; apply the AddMoveRecords migration before moving content",
}
