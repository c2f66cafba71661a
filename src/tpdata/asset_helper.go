package tpdata

import (
	"context"

	"git.tidepool.community/tidepool/tidepool/src/db"
	"git.tidepool.community/tidepool/tidepool/src/models"
	"github.com/google/uuid"
)

func FetchAsset(ctx context.Context, dbConn db.ConnOrTx, id uuid.UUID) (*models.Asset, error) {
	return db.QueryOne[models.Asset](ctx, dbConn,
		`SELECT $columns FROM asset WHERE id = $1`, id,
	)
}
