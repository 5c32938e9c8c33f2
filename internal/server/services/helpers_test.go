package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dmitrijs2005/promptdesk/internal/dbx"
	"github.com/dmitrijs2005/promptdesk/internal/server/config"
	"github.com/dmitrijs2005/promptdesk/internal/server/models"
	"github.com/dmitrijs2005/promptdesk/internal/server/repositories/prompts"
	"github.com/dmitrijs2005/promptdesk/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/promptdesk/internal/server/repositories/users"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:             "k",
		TokenValidityDuration: time.Hour,
		BcryptCost:            10,
		RecentPromptsLimit:    3,
	}
}

// newSQLiteStore returns a migrated in-memory database and its manager.
func newSQLiteStore(t *testing.T) (*sql.DB, repomanager.RepositoryManager) {
	t.Helper()
	ctx := context.Background()

	db, dialect, err := dbx.Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	m := repomanager.NewSQLRepositoryManager(dialect)
	require.NoError(t, m.RunMigrations(ctx, db))
	return db, m
}

// --- fakes ---

type fakeUsersRepo struct {
	exists    bool
	existsErr error

	createOut *models.User
	createErr error

	getOut *models.User
	getErr error

	listOut []*models.User
	listErr error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	u.ID = 1
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeUsersRepo) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	return f.exists, f.existsErr
}

func (f *fakeUsersRepo) List(ctx context.Context) ([]*models.User, error) {
	return f.listOut, f.listErr
}

type fakePromptsRepo struct {
	err error
}

func (f *fakePromptsRepo) Create(ctx context.Context, p *models.Prompt) (*models.Prompt, error) {
	return nil, f.err
}
func (f *fakePromptsRepo) ListSaved(ctx context.Context, userID int64) ([]*models.Prompt, error) {
	return nil, f.err
}
func (f *fakePromptsRepo) ListRecent(ctx context.Context, userID int64, limit int) ([]*models.Prompt, error) {
	return nil, f.err
}
func (f *fakePromptsRepo) ToggleSaved(ctx context.Context, userID, promptID int64) (bool, error) {
	return false, f.err
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	p *fakePromptsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository           { return m.u }
func (m *fakeRepoManager) Prompts(db dbx.DBTX) prompts.Repository       { return m.p }
