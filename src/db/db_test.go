package db

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCompileQueryColumns(t *testing.T) {
	type Stamp struct {
		MovedToType *string    `db:"moved_to_type"`
		MovedAt     *time.Time `db:"moved_at"`
	}
	type Item struct {
		ID      string     `db:"id"`
		Title   *string    `db:"title"`
		AssetID *uuid.UUID `db:"image_asset_id"`
		Stamp

		NotMapped int
	}

	compiled := compileQuery("SELECT $columns FROM thread", reflect.TypeOf(Item{}))
	assert.Equal(t, "SELECT id, title, image_asset_id, moved_to_type, moved_at FROM thread", compiled.query)
	assert.Len(t, compiled.fieldPaths, 5)

	withAlias := compileQuery("SELECT $columns{thread} FROM thread", reflect.TypeOf(Item{}))
	assert.Equal(t, "SELECT thread.id, thread.title, thread.image_asset_id, thread.moved_to_type, thread.moved_at FROM thread", withAlias.query)
}

func TestCompileQueryNestedStructs(t *testing.T) {
	type Inner struct {
		ID   string `db:"id"`
		Body string `db:"body"`
	}
	type Outer struct {
		Item    Inner  `db:"item"`
		Comment *Inner `db:"comment"`
	}

	compiled := compileQuery("SELECT $columns FROM whatever", reflect.TypeOf(Outer{}))
	assert.Equal(t, "SELECT item.id, item.body, comment.id, comment.body FROM whatever", compiled.query)
}

func TestScanRow(t *testing.T) {
	type Kind string
	type Row struct {
		ID    string     `db:"id"`
		Title *string    `db:"title"`
		Kind  Kind       `db:"kind"`
		Count int        `db:"count"`
		At    *time.Time `db:"at"`
	}

	compiled := compileQuery("SELECT $columns FROM x", reflect.TypeOf(Row{}))

	now := time.Now()
	var dest Row
	err := scanRow(compiled, reflect.ValueOf(&dest), []any{"abc", nil, "music_post", int64(3), now})
	assert.Nil(t, err)
	assert.Equal(t, "abc", dest.ID)
	assert.Nil(t, dest.Title)
	assert.Equal(t, Kind("music_post"), dest.Kind)
	assert.Equal(t, 3, dest.Count)
	if assert.NotNil(t, dest.At) {
		assert.True(t, now.Equal(*dest.At))
	}
}

func TestScanScalar(t *testing.T) {
	compiled := compileQuery("SELECT COUNT(*) FROM x", reflect.TypeOf(0))
	assert.True(t, compiled.scalar)

	var n int
	err := scanRow(compiled, reflect.ValueOf(&n), []any{int64(42)})
	assert.Nil(t, err)
	assert.Equal(t, 42, n)
}

func TestQueryBuilder(t *testing.T) {
	var qb QueryBuilder
	qb.Add("SELECT stuff FROM thing WHERE id = $? AND foo = $?", 3, "hello")
	qb.Add("AND bar = $?", true)

	assert.Equal(t, "SELECT stuff FROM thing WHERE id = $1 AND foo = $2\nAND bar = $3\n", qb.String())
	assert.Equal(t, []interface{}{3, "hello", true}, qb.Args())

	assert.Panics(t, func() {
		qb.Add("blah blah $? $?", 1)
	})
}
