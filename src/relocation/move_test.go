package relocation

import (
	"context"
	"strings"
	"testing"
	"time"

	"git.tidepool.community/tidepool/tidepool/src/db"
	"git.tidepool.community/tidepool/tidepool/src/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoveThreadToProject(t *testing.T) {
	now := time.Now()
	conn := &fakeConn{
		results: []*fakeResult{
			{match: "to_regclass", rows: [][]any{{true}}},
			{match: "FROM move_record"},
			{match: "FROM thread", rows: [][]any{
				{"t-1", "Shader tricks", "A thread about shaders.", 7, nil, now, nil, false, nil, nil, nil, nil},
			}},
			{match: "FROM forum_reply", rows: [][]any{
				{"c-1", 7, "first!", now, nil, false},
				{"c-2", 8, "nice work", now, nil, false},
			}},
			{match: "INSERT INTO project_comment", rows: [][]any{
				{"pc-1", 7, "first!", now, nil, false},
			}},
		},
	}

	result, err := Move(context.Background(), conn, MoveRequest{
		SourceUrl: "/forum/t-1",
		DestType:  models.ContentTypeProject,
		MoverID:   1,
	})
	require.NoError(t, err)

	assert.Equal(t, models.ContentRef{Type: models.ContentTypeForumThread, ID: "t-1"}, result.Source)
	assert.Equal(t, models.ContentTypeProject, result.Dest.Type)
	assert.NotEmpty(t, result.Dest.ID)
	assert.False(t, result.AlreadyMoved)
	assert.Equal(t, 2, result.CommentsCopied)

	require.NotNil(t, conn.tx)
	assert.True(t, conn.tx.committed)
	assert.True(t, conn.didExec("INSERT INTO project ("))
	assert.True(t, conn.didExec("INSERT INTO move_record"))
	assert.True(t, conn.didExec("UPDATE thread"))
	assert.Equal(t, 2, conn.countQueries("INSERT INTO project_comment"))

	// The source discussion is copied, never modified.
	for _, sql := range conn.execs {
		assert.NotContains(t, sql, "forum_reply")
	}
}

func TestMoveAlreadyInLedger(t *testing.T) {
	conn := &fakeConn{
		results: []*fakeResult{
			{match: "to_regclass", rows: [][]any{{true}}},
			{match: "FROM move_record", rows: [][]any{
				{"m-1", "forum_thread", "t-1", "project", "p-1", 1, time.Now()},
			}},
		},
	}

	result, err := Move(context.Background(), conn, MoveRequest{
		SourceType: models.ContentTypeForumThread,
		SourceID:   "t-1",
		DestType:   models.ContentTypeDevLog,
		MoverID:    2,
	})
	require.NoError(t, err)

	assert.True(t, result.AlreadyMoved)
	assert.Equal(t, models.ContentRef{Type: models.ContentTypeProject, ID: "p-1"}, result.Dest)
	assert.Empty(t, conn.execs)
	assert.Nil(t, conn.tx)
}

func TestMoveAlreadyStamped(t *testing.T) {
	now := time.Now()
	conn := &fakeConn{
		results: []*fakeResult{
			{match: "to_regclass", rows: [][]any{{true}}},
			{match: "FROM move_record"},
			{match: "FROM thread", rows: [][]any{
				{"t-1", "Old thread", "body", 7, nil, now, nil, false, "dev_log", "d-1", now, 1},
			}},
		},
	}

	result, err := Move(context.Background(), conn, MoveRequest{
		SourceUrl: "/forum/t-1",
		DestType:  models.ContentTypeProject,
		MoverID:   2,
	})
	require.NoError(t, err)

	assert.True(t, result.AlreadyMoved)
	assert.Equal(t, models.ContentRef{Type: models.ContentTypeDevLog, ID: "d-1"}, result.Dest)
	assert.Empty(t, conn.execs)
}

func TestMoveRequiresLedger(t *testing.T) {
	conn := &fakeConn{
		results: []*fakeResult{
			{match: "to_regclass", rows: [][]any{{false}}},
		},
	}

	_, err := Move(context.Background(), conn, MoveRequest{
		SourceUrl: "/forum/t-1",
		DestType:  models.ContentTypeProject,
		MoverID:   1,
	})
	assert.ErrorIs(t, err, ErrLedgerMissing)
	assert.Empty(t, conn.execs)
}

func TestMoveSourceMissing(t *testing.T) {
	conn := &fakeConn{
		results: []*fakeResult{
			{match: "to_regclass", rows: [][]any{{true}}},
		},
	}

	_, err := Move(context.Background(), conn, MoveRequest{
		DestType: models.ContentTypeProject,
	})
	assert.ErrorIs(t, err, db.NotFound)

	_, err = Move(context.Background(), conn, MoveRequest{
		SourceUrl: "/forum/does-not-exist",
		DestType:  models.ContentTypeProject,
	})
	assert.ErrorIs(t, err, db.NotFound)
	assert.Empty(t, conn.execs)
}

func TestMoveConcedesToConcurrentMove(t *testing.T) {
	now := time.Now()
	conn := &fakeConn{
		results: []*fakeResult{
			{match: "to_regclass", rows: [][]any{{true}}},
			{match: "FROM move_record", once: true},
			{match: "FROM thread", rows: [][]any{
				{"t-1", "Shader tricks", "body", 7, nil, now, nil, false, nil, nil, nil, nil},
			}},
			{match: "FROM forum_reply"},
			{match: "FROM move_record", rows: [][]any{
				{"m-1", "forum_thread", "t-1", "project", "p-1", 3, now},
			}},
		},
		execErrs: map[string]error{
			"INSERT INTO move_record": &pgconn.PgError{Code: "23505", ConstraintName: "move_record_source_type_source_id_key"},
		},
	}

	result, err := Move(context.Background(), conn, MoveRequest{
		SourceUrl: "/forum/t-1",
		DestType:  models.ContentTypeProject,
		MoverID:   1,
	})
	require.NoError(t, err)

	assert.True(t, result.AlreadyMoved)
	assert.Equal(t, models.ContentRef{Type: models.ContentTypeProject, ID: "p-1"}, result.Dest)
	require.NotNil(t, conn.tx)
	assert.True(t, conn.tx.rolledBack)
	assert.False(t, conn.tx.committed)
}

// fakeConn satisfies db.ConnOrTx without a live database. Queries are
// answered from canned result sets matched by SQL substring, in order; an
// entry marked once is consumed by its first match so later queries with the
// same shape can see different state. Writes are recorded so tests can
// assert exactly what a move touched.
type fakeConn struct {
	results  []*fakeResult
	execErrs map[string]error

	queries []string
	execs   []string
	tx      *fakeTx
}

type fakeResult struct {
	match string
	rows  [][]any
	err   error
	once  bool
	used  bool
}

func (c *fakeConn) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	c.queries = append(c.queries, sql)
	for _, r := range c.results {
		if r.used || !strings.Contains(sql, r.match) {
			continue
		}
		if r.once {
			r.used = true
		}
		if r.err != nil {
			return nil, r.err
		}
		return &fakeRows{rows: r.rows}, nil
	}
	return &fakeRows{}, nil
}

func (c *fakeConn) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	panic("not implemented")
}

func (c *fakeConn) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	c.execs = append(c.execs, sql)
	for match, err := range c.execErrs {
		if strings.Contains(sql, match) {
			return pgconn.CommandTag{}, err
		}
	}
	return pgconn.CommandTag{}, nil
}

func (c *fakeConn) Begin(ctx context.Context) (pgx.Tx, error) {
	c.tx = &fakeTx{conn: c}
	return c.tx, nil
}

func (c *fakeConn) didExec(match string) bool {
	for _, sql := range c.execs {
		if strings.Contains(sql, match) {
			return true
		}
	}
	return false
}

func (c *fakeConn) countQueries(match string) int {
	var n int
	for _, sql := range c.queries {
		if strings.Contains(sql, match) {
			n++
		}
	}
	return n
}

type fakeTx struct {
	conn       *fakeConn
	committed  bool
	rolledBack bool
}

func (tx *fakeTx) Begin(ctx context.Context) (pgx.Tx, error) { return tx, nil }

func (tx *fakeTx) Commit(ctx context.Context) error {
	if tx.rolledBack {
		return pgx.ErrTxClosed
	}
	tx.committed = true
	return nil
}

func (tx *fakeTx) Rollback(ctx context.Context) error {
	if tx.committed {
		return pgx.ErrTxClosed
	}
	tx.rolledBack = true
	return nil
}

func (tx *fakeTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return tx.conn.Exec(ctx, sql, args...)
}

func (tx *fakeTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return tx.conn.Query(ctx, sql, args...)
}

func (tx *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return tx.conn.QueryRow(ctx, sql, args...)
}

func (tx *fakeTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	panic("not implemented")
}

func (tx *fakeTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults {
	panic("not implemented")
}

func (tx *fakeTx) LargeObjects() pgx.LargeObjects {
	panic("not implemented")
}

func (tx *fakeTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	panic("not implemented")
}

func (tx *fakeTx) Conn() *pgx.Conn { return nil }

type fakeRows struct {
	rows [][]any
	idx  int
}

func (r *fakeRows) Close()                                       {}
func (r *fakeRows) Err() error                                   { return nil }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeRows) Next() bool {
	r.idx++
	return r.idx <= len(r.rows)
}

func (r *fakeRows) Values() ([]any, error) {
	return r.rows[r.idx-1], nil
}

func (r *fakeRows) Scan(dest ...any) error {
	panic("not implemented")
}
