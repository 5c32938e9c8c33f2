package dbx

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupPromptsDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`CREATE TABLE prompts (id INTEGER PRIMARY KEY, content TEXT NOT NULL)`)
	require.NoError(t, err)
	return db
}

func countPrompts(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM prompts`).Scan(&n))
	return n
}

func insertPrompt(ctx context.Context, tx DBTX, content string) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO prompts(content) VALUES (?)`, content)
	return err
}

func TestWithTx_Commits(t *testing.T) {
	db := setupPromptsDB(t)

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		return insertPrompt(ctx, tx, "Explain Go")
	})
	require.NoError(t, err)
	assert.Equal(t, 1, countPrompts(t, db))
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	db := setupPromptsDB(t)
	boom := errors.New("boom")

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		require.NoError(t, insertPrompt(ctx, tx, "discarded"))
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, countPrompts(t, db))
}

func TestWithTx_RollsBackOnPanic(t *testing.T) {
	db := setupPromptsDB(t)

	assert.PanicsWithValue(t, "kaput", func() {
		_ = WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
			require.NoError(t, insertPrompt(ctx, tx, "discarded"))
			panic("kaput")
		})
	})
	assert.Equal(t, 0, countPrompts(t, db))
}

func TestWithTx_BeginError(t *testing.T) {
	db := setupPromptsDB(t)
	require.NoError(t, db.Close())

	called := false
	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		called = true
		return nil
	})
	assert.ErrorContains(t, err, "begin tx")
	assert.False(t, called)
}

func TestWithTx_RollbackFailureIsJoined(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	boom := errors.New("boom")
	mock.ExpectBegin()
	mock.ExpectRollback().WillReturnError(errors.New("connection lost"))

	err = WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "rollback: connection lost")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_CommitError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("disk I/O error"))

	err = WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		return nil
	})
	assert.ErrorContains(t, err, "commit tx: disk I/O error")
	assert.NoError(t, mock.ExpectationsWereMet())
}
