package relocation

import (
	"context"
	"time"

	"git.tidepool.community/tidepool/tidepool/src/db"
	"git.tidepool.community/tidepool/tidepool/src/logging"
	"git.tidepool.community/tidepool/tidepool/src/models"
	"git.tidepool.community/tidepool/tidepool/src/oops"
	"git.tidepool.community/tidepool/tidepool/src/tpdata"
	"github.com/google/uuid"
)

type MoveRequest struct {
	// Either a source URL or an explicit type/id pair. The URL wins when
	// both are given and the URL parses.
	SourceUrl  string
	SourceType models.ContentType
	SourceID   string

	DestType models.ContentType
	Extras   Extras

	MoverID int
}

type MoveResult struct {
	Source models.ContentRef
	Dest   models.ContentRef

	// True when the source had already been moved; Dest then points at the
	// original destination and nothing was written.
	AlreadyMoved bool

	CommentsCopied int
}

/*
Move relocates one content item to another content type. It resolves the
source, refuses to re-move anything already in the ledger, then creates the
destination row, copies the discussion, and records the move, all in one
transaction. Two concurrent moves of the same source race on the ledger's
unique constraint; the loser reports the winner's destination as an
already-moved result.

Returns db.NotFound when the source cannot be resolved or does not exist,
and a *MoveError for requester mistakes (bad destination type, missing
destination fields).
*/
func Move(ctx context.Context, conn db.ConnOrTx, req MoveRequest) (MoveResult, error) {
	source, ok := ResolveSource(req.SourceUrl, models.ContentRef{Type: req.SourceType, ID: req.SourceID})
	if !ok {
		return MoveResult{}, db.NotFound
	}
	if !req.DestType.Valid() {
		return MoveResult{}, ErrUnsupportedDest(req.DestType)
	}

	if err := CheckLedgerSchema(ctx, conn); err != nil {
		return MoveResult{}, err
	}

	if existing, err := FindExistingMove(ctx, conn, source); err != nil {
		return MoveResult{}, err
	} else if existing != nil {
		return MoveResult{
			Source:       source,
			Dest:         existing.Dest(),
			AlreadyMoved: true,
		}, nil
	}

	src, err := tpdata.FetchContentItem(ctx, conn, source)
	if err != nil {
		return MoveResult{}, err
	}
	if dest, ok := src.Stamp.MovedTo(); ok {
		return MoveResult{
			Source:       source,
			Dest:         dest,
			AlreadyMoved: true,
		}, nil
	}

	now := time.Now()
	fields, err := destinationFields(req.DestType, src, req.Extras, now)
	if err != nil {
		return MoveResult{}, err
	}
	dest := models.ContentRef{Type: fields.Type, ID: fields.ID}

	tx, err := conn.Begin(ctx)
	if err != nil {
		return MoveResult{}, oops.New(err, "failed to start move transaction")
	}
	defer tx.Rollback(ctx)

	if err := insertDestination(ctx, tx, fields); err != nil {
		return MoveResult{}, err
	}

	numComments, err := migrateDiscussion(ctx, tx, source, dest)
	if err != nil {
		return MoveResult{}, err
	}

	err = recordMove(ctx, tx, models.MoveRecord{
		ID:            uuid.NewString(),
		SourceType:    source.Type,
		SourceID:      source.ID,
		DestType:      dest.Type,
		DestID:        dest.ID,
		MovedByUserID: req.MoverID,
		MovedAt:       now,
	})
	if err != nil {
		if isUniqueViolation(err) {
			// Another request finished moving this item between our
			// idempotency check and now. Concede and report theirs.
			tx.Rollback(ctx)
			winner, lookupErr := FindExistingMove(ctx, conn, source)
			if lookupErr == nil && winner != nil {
				return MoveResult{
					Source:       source,
					Dest:         winner.Dest(),
					AlreadyMoved: true,
				}, nil
			}
		}
		return MoveResult{}, oops.New(err, "failed to record move")
	}

	if err := tx.Commit(ctx); err != nil {
		return MoveResult{}, oops.New(err, "failed to commit move transaction")
	}

	logging.ExtractLogger(ctx).Info().
		Str("source_type", string(source.Type)).
		Str("source_id", source.ID).
		Str("dest_type", string(dest.Type)).
		Str("dest_id", dest.ID).
		Int("comments_copied", numComments).
		Int("moved_by", req.MoverID).
		Msg("moved content item")

	return MoveResult{
		Source:         source,
		Dest:           dest,
		CommentsCopied: numComments,
	}, nil
}
