package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openMemory(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSetAndGet(t *testing.T) {
	r := NewSQLiteRepository(openMemory(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, KeyLogin, "chef42"))

	v, ok, err := r.Get(ctx, KeyLogin)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "chef42", v)
}

func TestGet_Missing(t *testing.T) {
	r := NewSQLiteRepository(openMemory(t))

	v, ok, err := r.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestSet_Overwrites(t *testing.T) {
	r := NewSQLiteRepository(openMemory(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, KeyCurrentPage, "1"))
	require.NoError(t, r.Set(ctx, KeyCurrentPage, "3"))

	v, _, err := r.Get(ctx, KeyCurrentPage)
	require.NoError(t, err)
	assert.Equal(t, "3", v)
}

func TestSetMany_ListDeleteClear(t *testing.T) {
	r := NewSQLiteRepository(openMemory(t))
	ctx := context.Background()

	require.NoError(t, r.SetMany(ctx, map[string]string{
		KeyLogin:  "chef42",
		KeyIsAuth: "true",
		"extra":   "x",
	}))

	m, err := r.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{KeyLogin: "chef42", KeyIsAuth: "true", "extra": "x"}, m)

	require.NoError(t, r.Delete(ctx, KeyLogin, KeyIsAuth))
	require.NoError(t, r.Delete(ctx, KeyLogin)) // idempotent

	m, err = r.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"extra": "x"}, m)

	require.NoError(t, r.Clear(ctx))
	m, err = r.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestOpen_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "client.db")

	db, err := Open(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, NewSQLiteRepository(db).Set(ctx, KeySelectedTab, "liked"))
	require.NoError(t, db.Close())

	db, err = Open(ctx, dsn)
	require.NoError(t, err)
	defer db.Close()

	v, ok, err := NewSQLiteRepository(db).Get(ctx, KeySelectedTab)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "liked", v)
}

func TestRunMigrations_Idempotent(t *testing.T) {
	db := openMemory(t)
	require.NoError(t, RunMigrations(context.Background(), db))
}

func newMockRepo(t *testing.T) (*SQLiteRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLiteRepository(db), mock
}

func TestErrorsAreWrapped(t *testing.T) {
	ctx := context.Background()
	io := errors.New("disk I/O error")

	t.Run("get", func(t *testing.T) {
		r, mock := newMockRepo(t)
		mock.ExpectQuery("SELECT value FROM kv").WithArgs("k").WillReturnError(io)

		_, ok, err := r.Get(ctx, "k")
		require.ErrorIs(t, err, io)
		assert.False(t, ok)
		assert.Contains(t, err.Error(), "failed to get kv[k]")
	})

	t.Run("set", func(t *testing.T) {
		r, mock := newMockRepo(t)
		mock.ExpectExec("INSERT INTO kv").WithArgs("k", "v").WillReturnError(io)

		err := r.Set(ctx, "k", "v")
		require.ErrorIs(t, err, io)
		assert.Contains(t, err.Error(), "failed to set kv[k]")
	})

	t.Run("set many rolls back", func(t *testing.T) {
		r, mock := newMockRepo(t)
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO kv").WithArgs("a", "1").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO kv").WithArgs("b", "2").WillReturnError(io)
		mock.ExpectRollback()

		err := r.SetMany(ctx, map[string]string{"b": "2", "a": "1"})
		require.ErrorIs(t, err, io)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("clear", func(t *testing.T) {
		r, mock := newMockRepo(t)
		mock.ExpectExec("DELETE FROM kv").WillReturnError(io)

		err := r.Clear(ctx)
		require.ErrorIs(t, err, io)
		assert.Contains(t, err.Error(), "failed to clear kv")
	})

	t.Run("list", func(t *testing.T) {
		r, mock := newMockRepo(t)
		mock.ExpectQuery("SELECT key, value FROM kv").WillReturnError(io)

		_, err := r.List(ctx)
		require.ErrorIs(t, err, io)
	})
}
