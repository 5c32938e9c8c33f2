package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/promptdesk/internal/common"
	"github.com/dmitrijs2005/promptdesk/internal/dbx"
	"github.com/dmitrijs2005/promptdesk/internal/server/migrations"
	"github.com/dmitrijs2005/promptdesk/internal/server/models"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteRepo(t *testing.T) *SQLRepository {
	t.Helper()
	ctx := context.Background()

	db, dialect, err := dbx.Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	goose.SetBaseFS(migrations.Migrations)
	require.NoError(t, goose.SetDialect(dialect.GooseDialect()))
	require.NoError(t, goose.UpContext(ctx, db, migrations.Dir(dialect)))

	return NewSQLRepository(db, dialect)
}

func newRepoWithMock(t *testing.T, dialect dbx.Dialect) (*SQLRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLRepository(db, dialect), mock
}

func TestCreate_AssignsIDAndTimestamp(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	u, err := repo.Create(ctx, &models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "h"})
	require.NoError(t, err)
	assert.Positive(t, u.ID)
	assert.False(t, u.CreatedAt.IsZero())

	u2, err := repo.Create(ctx, &models.User{Username: "bob", Email: "bob@example.com", PasswordHash: "h"})
	require.NoError(t, err)
	assert.Greater(t, u2.ID, u.ID)
}

func TestCreate_DuplicateIsConflict(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, &models.User{Username: "alice", Email: "a@example.com", PasswordHash: "h"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &models.User{Username: "alice", Email: "other@example.com", PasswordHash: "h"})
	assert.ErrorIs(t, err, common.ErrConflict)

	_, err = repo.Create(ctx, &models.User{Username: "carol", Email: "a@example.com", PasswordHash: "h"})
	assert.ErrorIs(t, err, common.ErrConflict)
}

func TestGetByEmail(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, &models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "hash"})
	require.NoError(t, err)

	got, err := repo.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, "hash", got.PasswordHash)

	_, err = repo.GetByEmail(ctx, "ghost@example.com")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestExistsByUsernameOrEmail(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, &models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "h"})
	require.NoError(t, err)

	tests := []struct {
		username, email string
		want            bool
	}{
		{"alice", "new@example.com", true},
		{"new", "alice@example.com", true},
		{"new", "new@example.com", false},
	}
	for _, tt := range tests {
		got, err := repo.ExistsByUsernameOrEmail(ctx, tt.username, tt.email)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s/%s", tt.username, tt.email)
	}
}

func TestList_OrderedByID(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	for _, name := range []string{"a", "b", "c"} {
		_, err := repo.Create(ctx, &models.User{Username: name, Email: name + "@example.com", PasswordHash: "h"})
		require.NoError(t, err)
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "a", list[0].Username)
	assert.Equal(t, "c", list[2].Username)
	assert.Empty(t, list[0].PasswordHash)
}

func TestCreate_PostgresPlaceholders(t *testing.T) {
	repo, mock := newRepoWithMock(t, dbx.DialectPostgres)

	q := `(?s)^INSERT\s+INTO\s+users\s*\(username,\s*email,\s*password_hash,\s*created_at\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4\)\s*RETURNING\s+id\s*$`
	mock.ExpectQuery(q).
		WithArgs("alice", "a@example.com", "h", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))

	got, err := repo.Create(context.Background(), &models.User{Username: "alice", Email: "a@example.com", PasswordHash: "h"})
	require.NoError(t, err)
	assert.Equal(t, int64(42), got.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDBErrorsAreWrapped(t *testing.T) {
	repo, mock := newRepoWithMock(t, dbx.DialectSQLite)
	ctx := context.Background()
	dbDown := errors.New("db down")

	mock.ExpectQuery(`INSERT INTO users`).WillReturnError(dbDown)
	_, err := repo.Create(ctx, &models.User{Username: "a", Email: "a", PasswordHash: "h"})
	assert.Regexp(t, regexp.MustCompile(`db error: .*db down`), err.Error())

	mock.ExpectQuery(`SELECT id, username`).WillReturnError(dbDown)
	_, err = repo.GetByEmail(ctx, "a")
	assert.ErrorIs(t, err, dbDown)

	mock.ExpectQuery(`SELECT COUNT`).WillReturnError(dbDown)
	_, err = repo.ExistsByUsernameOrEmail(ctx, "a", "b")
	assert.ErrorIs(t, err, dbDown)

	mock.ExpectQuery(`SELECT id, username, email, created_at`).WillReturnError(dbDown)
	_, err = repo.List(ctx)
	assert.ErrorIs(t, err, dbDown)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByEmail_NoRowsIsNotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t, dbx.DialectSQLite)

	mock.ExpectQuery(`SELECT id, username`).WithArgs("ghost").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "ghost")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
