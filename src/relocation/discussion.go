package relocation

import (
	"context"

	"git.tidepool.community/tidepool/tidepool/src/db"
	"git.tidepool.community/tidepool/tidepool/src/models"
	"git.tidepool.community/tidepool/tidepool/src/oops"
	"git.tidepool.community/tidepool/tidepool/src/tpdata"
)

// migrateDiscussion copies every non-deleted comment from the source item to
// the destination item, preserving author, body, and created_at so the
// conversation reads identically in its new home. Each copy gets a fresh id;
// the originals are left untouched. Runs inside the move transaction, so a
// failed copy aborts the whole move.
func migrateDiscussion(ctx context.Context, tx db.ConnOrTx, source, dest models.ContentRef) (int, error) {
	comments, err := tpdata.FetchComments(ctx, tx, source)
	if err != nil {
		return 0, oops.New(err, "failed to fetch comments for %s %s", source.Type, source.ID)
	}

	for _, comment := range comments {
		_, err := tpdata.InsertComment(ctx, tx, dest, models.Comment{
			AuthorID:  comment.AuthorID,
			Body:      comment.Body,
			CreatedAt: comment.CreatedAt,
		})
		if err != nil {
			return 0, oops.New(err, "failed to copy comment %s to %s %s", comment.ID, dest.Type, dest.ID)
		}
	}

	return len(comments), nil
}
