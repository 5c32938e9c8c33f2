package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/promptdesk/internal/dbx"
	"github.com/dmitrijs2005/promptdesk/internal/server/repositories/prompts"
	"github.com/dmitrijs2005/promptdesk/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestFactories_ReturnConcreteRepos(t *testing.T) {
	db, _ := newDB(t)

	m := NewSQLRepositoryManager(dbx.DialectPostgres)

	var _ users.Repository = m.Users(db)
	var _ prompts.Repository = m.Prompts(db)

	assert.IsType(t, &users.SQLRepository{}, m.Users(db))
	assert.IsType(t, &prompts.SQLRepository{}, m.Prompts(db))
}

func TestRunMigrations_UsesDialectDirectory(t *testing.T) {
	db, _ := newDB(t)

	orig := gooseUpContext
	t.Cleanup(func() { gooseUpContext = orig })

	for dialect, wantDir := range map[dbx.Dialect]string{
		dbx.DialectSQLite:   "sqlite",
		dbx.DialectPostgres: "postgres",
	} {
		var gotDir string
		gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
			gotDir = dir
			return nil
		}

		require.NoError(t, NewSQLRepositoryManager(dialect).RunMigrations(context.Background(), db))
		assert.Equal(t, wantDir, gotDir)
	}
}

func TestRunMigrations_Error(t *testing.T) {
	db, _ := newDB(t)

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	}
	t.Cleanup(func() { gooseUpContext = orig })

	err := NewSQLRepositoryManager(dbx.DialectSQLite).RunMigrations(context.Background(), db)
	require.EqualError(t, err, "boom")
}

func TestRunMigrations_SQLiteForReal(t *testing.T) {
	ctx := context.Background()
	db, dialect, err := dbx.Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, NewSQLRepositoryManager(dialect).RunMigrations(ctx, db))

	var n int
	require.NoError(t, db.QueryRow(
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'index' AND name IN ('idx_prompts_user_id', 'idx_prompts_created_at')`,
	).Scan(&n))
	assert.Equal(t, 2, n)
}
