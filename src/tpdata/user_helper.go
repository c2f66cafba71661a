package tpdata

import (
	"context"
	"strings"

	"git.tidepool.community/tidepool/tidepool/src/db"
	"git.tidepool.community/tidepool/tidepool/src/models"
)

func FetchUser(ctx context.Context, dbConn db.ConnOrTx, userID int) (*models.User, error) {
	return db.QueryOne[models.User](ctx, dbConn,
		`SELECT $columns FROM tp_user WHERE id = $1`, userID,
	)
}

// Usernames are matched case-insensitively everywhere.
func FetchUserByUsername(ctx context.Context, dbConn db.ConnOrTx, username string) (*models.User, error) {
	return db.QueryOne[models.User](ctx, dbConn,
		`SELECT $columns FROM tp_user WHERE LOWER(username) = $1`,
		strings.ToLower(username),
	)
}
