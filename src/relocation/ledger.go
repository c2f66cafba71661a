package relocation

import (
	"context"
	"errors"

	"git.tidepool.community/tidepool/tidepool/src/db"
	"git.tidepool.community/tidepool/tidepool/src/models"
	"git.tidepool.community/tidepool/tidepool/src/oops"
	"git.tidepool.community/tidepool/tidepool/src/tpdata"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgCodeUndefinedTable  = "42P01"
	pgCodeUniqueViolation = "23505"
)

// CheckLedgerSchema verifies that the move ledger table exists before any
// move is attempted. Moving content without a ledger would leave sources
// stamped but unauditable, so we refuse up front.
func CheckLedgerSchema(ctx context.Context, dbConn db.ConnOrTx) error {
	exists, err := db.QueryOneScalar[bool](ctx, dbConn,
		`SELECT to_regclass('move_record') IS NOT NULL`,
	)
	if err != nil {
		return oops.New(err, "failed to check for move_record table")
	}
	if !exists {
		return ErrLedgerMissing
	}
	return nil
}

// FindExistingMove returns the ledger entry for a source item, or nil if it
// has never been moved. A missing ledger table also reads as "no record" so
// that redirect lookups keep working on databases predating the ledger.
func FindExistingMove(ctx context.Context, dbConn db.ConnOrTx, source models.ContentRef) (*models.MoveRecord, error) {
	record, err := db.QueryOne[models.MoveRecord](ctx, dbConn,
		`
		SELECT $columns
		FROM move_record
		WHERE source_type = $1 AND source_id = $2
		`,
		source.Type,
		source.ID,
	)
	if err != nil {
		if errors.Is(err, db.NotFound) {
			return nil, nil
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgCodeUndefinedTable {
			return nil, nil
		}
		return nil, oops.New(err, "failed to look up move record")
	}
	return record, nil
}

// recordMove writes the ledger entry and stamps the source row, inside the
// caller's transaction. The ledger insert hits the unique constraint on
// (source_type, source_id) if another request moved the same item first.
func recordMove(ctx context.Context, tx db.ConnOrTx, record models.MoveRecord) error {
	_, err := tx.Exec(ctx,
		`
		INSERT INTO move_record (id, source_type, source_id, dest_type, dest_id, moved_by_user_id, moved_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		`,
		record.ID,
		record.SourceType,
		record.SourceID,
		record.DestType,
		record.DestID,
		record.MovedByUserID,
		record.MovedAt,
	)
	if err != nil {
		return err
	}

	sourceTable := tpdata.ContentTable(record.SourceType)
	_, err = tx.Exec(ctx,
		`
		UPDATE `+sourceTable+`
		SET moved_to_type = $1, moved_to_id = $2, moved_at = $3, moved_by_user_id = $4
		WHERE id = $5
		`,
		record.DestType,
		record.DestID,
		record.MovedAt,
		record.MovedByUserID,
		record.SourceID,
	)
	if err != nil {
		return oops.New(err, "failed to stamp moved source row")
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgCodeUniqueViolation
}
