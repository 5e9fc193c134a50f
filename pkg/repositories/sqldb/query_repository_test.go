package sqldb

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/marcboeker/go-duckdb/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TFMV/azquery/pkg/errors"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("duckdb", "")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE users (id BIGINT, name VARCHAR, avatar BLOB)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO users VALUES (1, 'ada', 'png'::BLOB), (2, 'grace', NULL), (3, NULL, NULL)`)
	require.NoError(t, err)

	return db
}

func TestQueryRepository_ExecuteQuery(t *testing.T) {
	db := setupDB(t)
	repo := NewQueryRepository(db, zerolog.New(zerolog.NewTestWriter(t)))

	table, err := repo.ExecuteQuery(context.Background(), "SELECT id, name, avatar FROM users ORDER BY id")
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "name", "avatar"}, table.Columns)
	require.Equal(t, 3, table.NumRows())
	assert.Equal(t, []any{int64(1), "ada", "png"}, table.Rows[0])
	assert.Equal(t, []any{int64(2), "grace", nil}, table.Rows[1])
	assert.Equal(t, []any{int64(3), nil, nil}, table.Rows[2])
}

func TestQueryRepository_ExecuteQueryColumnOrder(t *testing.T) {
	db := setupDB(t)
	repo := NewQueryRepository(db, zerolog.New(zerolog.NewTestWriter(t)))

	table, err := repo.ExecuteQuery(context.Background(), "SELECT name, id FROM users WHERE id = 1")
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "id"}, table.Columns)
	assert.Equal(t, [][]any{{"ada", int64(1)}}, table.Rows)
}

func TestQueryRepository_ExecuteQueryNoRows(t *testing.T) {
	db := setupDB(t)
	repo := NewQueryRepository(db, zerolog.New(zerolog.NewTestWriter(t)))

	table, err := repo.ExecuteQuery(context.Background(), "SELECT * FROM users WHERE id > 100")
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "name", "avatar"}, table.Columns)
	assert.True(t, table.Empty())
	assert.NotNil(t, table.Rows)
}

func TestQueryRepository_ExecuteUpdateCommits(t *testing.T) {
	db := setupDB(t)
	repo := NewQueryRepository(db, zerolog.New(zerolog.NewTestWriter(t)))
	ctx := context.Background()

	_, err := repo.ExecuteUpdate(ctx, "DELETE FROM users WHERE id=1")
	require.NoError(t, err)

	_, err = repo.ExecuteUpdate(ctx, "INSERT INTO users (id, name) VALUES (4, 'linus')")
	require.NoError(t, err)

	_, err = repo.ExecuteUpdate(ctx, "UPDATE users SET name = 'margaret' WHERE id = 3")
	require.NoError(t, err)

	table, err := repo.ExecuteQuery(ctx, "SELECT id, name FROM users ORDER BY id")
	require.NoError(t, err)
	assert.Equal(t, [][]any{
		{int64(2), "grace"},
		{int64(3), "margaret"},
		{int64(4), "linus"},
	}, table.Rows)
}

func TestQueryRepository_Errors(t *testing.T) {
	db := setupDB(t)
	repo := NewQueryRepository(db, zerolog.New(zerolog.NewTestWriter(t)))
	ctx := context.Background()

	_, err := repo.ExecuteQuery(ctx, "SELECT * FROM no_such_table")
	require.Error(t, err)
	assert.True(t, errors.IsExecution(err))

	_, err = repo.ExecuteUpdate(ctx, "DELETE FROM no_such_table WHERE id=1")
	require.Error(t, err)
	assert.True(t, errors.IsExecution(err))

	// the failed transaction must not leave the handle unusable
	table, err := repo.ExecuteQuery(ctx, "SELECT count(*) AS n FROM users")
	require.NoError(t, err)
	assert.Equal(t, [][]any{{int64(3)}}, table.Rows)
}

func TestQueryRepository_CanceledContext(t *testing.T) {
	db := setupDB(t)
	repo := NewQueryRepository(db, zerolog.New(zerolog.NewTestWriter(t)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.ExecuteUpdate(ctx, "DELETE FROM users")
	require.Error(t, err)
	assert.True(t, errors.IsExecution(err))

	table, err := repo.ExecuteQuery(context.Background(), "SELECT count(*) AS n FROM users")
	require.NoError(t, err)
	assert.Equal(t, [][]any{{int64(3)}}, table.Rows)
}

func TestNormalizeValue(t *testing.T) {
	guid := []byte{0xFF, 0x19, 0x96, 0x6F, 0x86, 0x8B, 0x11, 0xD0, 0xB4, 0x2D, 0x00, 0xC0, 0x4F, 0xC9, 0x64, 0xFF}

	tests := []struct {
		name   string
		value  any
		dbType string
		want   any
	}{
		{name: "nil", value: nil, dbType: "NVARCHAR", want: nil},
		{name: "bytes to string", value: []byte("hello"), dbType: "VARCHAR", want: "hello"},
		{name: "uniqueidentifier", value: guid, dbType: "UNIQUEIDENTIFIER", want: "6F9619FF-8B86-D011-B42D-00C04FC964FF"},
		{name: "short uniqueidentifier stays text", value: []byte("abc"), dbType: "UNIQUEIDENTIFIER", want: "abc"},
		{name: "int passthrough", value: int64(7), dbType: "BIGINT", want: int64(7)},
		{name: "bool passthrough", value: true, dbType: "BIT", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeValue(tt.value, tt.dbType))
		})
	}
}
