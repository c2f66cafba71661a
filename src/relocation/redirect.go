package relocation

import (
	"context"

	"git.tidepool.community/tidepool/tidepool/src/db"
	"git.tidepool.community/tidepool/tidepool/src/models"
	"git.tidepool.community/tidepool/tidepool/src/tpurl"
)

// RedirectTarget decides whether a visitor to an item should be sent to its
// post-move home instead. The ledger is checked first since it is the
// authoritative record; the row's own stamp covers databases where the
// ledger table has not been created yet. Returns the destination path and
// true when a redirect applies.
func RedirectTarget(ctx context.Context, dbConn db.ConnOrTx, ref models.ContentRef, stamp models.MoveStamp) (string, bool, error) {
	record, err := FindExistingMove(ctx, dbConn, ref)
	if err != nil {
		return "", false, err
	}
	if record != nil {
		return tpurl.BuildContent(record.Dest()), true, nil
	}

	if dest, ok := stamp.MovedTo(); ok {
		return tpurl.BuildContent(dest), true, nil
	}

	return "", false, nil
}
