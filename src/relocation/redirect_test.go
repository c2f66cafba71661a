package relocation

import (
	"context"
	"testing"
	"time"

	"git.tidepool.community/tidepool/tidepool/src/models"
	"git.tidepool.community/tidepool/tidepool/src/tpurl"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedirectTarget(t *testing.T) {
	ctx := context.Background()
	ref := models.ContentRef{Type: models.ContentTypeForumThread, ID: "t-1"}

	t.Run("ledger record wins", func(t *testing.T) {
		conn := &fakeConn{
			results: []*fakeResult{
				{match: "FROM move_record", rows: [][]any{
					{"m-1", "forum_thread", "t-1", "project", "p-1", 1, time.Now()},
				}},
			},
		}

		target, ok, err := RedirectTarget(ctx, conn, ref, models.MoveStamp{})
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, tpurl.BuildProject("p-1"), target)
	})

	t.Run("row stamp covers a missing ledger table", func(t *testing.T) {
		conn := &fakeConn{
			results: []*fakeResult{
				{match: "FROM move_record", err: &pgconn.PgError{Code: "42P01"}},
			},
		}
		destType := models.ContentTypeDevLog
		destID := "d-1"
		stamp := models.MoveStamp{MovedToType: &destType, MovedToID: &destID}

		target, ok, err := RedirectTarget(ctx, conn, ref, stamp)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, tpurl.BuildDevLog("d-1"), target)
	})

	t.Run("unmoved items stay put", func(t *testing.T) {
		conn := &fakeConn{}

		_, ok, err := RedirectTarget(ctx, conn, ref, models.MoveStamp{})
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
