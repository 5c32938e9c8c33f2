package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/promptdesk/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPromptFixture(t *testing.T) (*PromptService, int64, int64) {
	t.Helper()
	db, m := newSQLiteStore(t)
	us := NewUserService(db, m, testConfig())
	ctx := context.Background()

	aliceTok, err := us.Register(ctx, "alice", "alice@example.com", "pw")
	require.NoError(t, err)
	bobTok, err := us.Register(ctx, "bob", "bob@example.com", "pw")
	require.NoError(t, err)

	alice, err := us.Authenticate(aliceTok)
	require.NoError(t, err)
	bob, err := us.Authenticate(bobTok)
	require.NoError(t, err)

	return NewPromptService(db, m, testConfig()), alice, bob
}

func TestSave_AppearsInSavedAndRecent(t *testing.T) {
	ps, alice, _ := newPromptFixture(t)
	ctx := context.Background()

	id, err := ps.Save(ctx, alice, "X")
	require.NoError(t, err)
	assert.Positive(t, id)

	saved, err := ps.ListSaved(ctx, alice)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, id, saved[0].ID)
	assert.True(t, saved[0].IsSaved)

	recent, err := ps.ListRecent(ctx, alice)
	require.NoError(t, err)
	require.Len(t, recent, 1)
}

func TestSave_RejectsBlankContent(t *testing.T) {
	ps, alice, _ := newPromptFixture(t)

	for _, c := range []string{"", "   ", "\n\t"} {
		_, err := ps.Save(context.Background(), alice, c)
		assert.ErrorIs(t, err, common.ErrValidation)
	}
}

func TestListRecent_UsesConfiguredLimit(t *testing.T) {
	ps, alice, _ := newPromptFixture(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := ps.Save(ctx, alice, fmt.Sprintf("p%d", i))
		require.NoError(t, err)
	}

	recent, err := ps.ListRecent(ctx, alice)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, "p4", recent[0].Content)
}

func TestToggleSaved_RoundTripAndIsolation(t *testing.T) {
	ps, alice, bob := newPromptFixture(t)
	ctx := context.Background()

	id, err := ps.Save(ctx, alice, "X")
	require.NoError(t, err)

	saved, err := ps.ToggleSaved(ctx, alice, id)
	require.NoError(t, err)
	assert.False(t, saved)

	list, err := ps.ListSaved(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, list)

	recent, err := ps.ListRecent(ctx, alice)
	require.NoError(t, err)
	assert.Len(t, recent, 1, "unsaved prompts remain in recent")

	saved, err = ps.ToggleSaved(ctx, alice, id)
	require.NoError(t, err)
	assert.True(t, saved)

	_, err = ps.ToggleSaved(ctx, bob, id)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	bobList, err := ps.ListSaved(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, bobList)
}

func TestPromptService_StoreFailuresAreInternal(t *testing.T) {
	rm := &fakeRepoManager{p: &fakePromptsRepo{err: errors.New("db down")}}
	ps := NewPromptService(nil, rm, testConfig())
	ctx := context.Background()

	_, err := ps.Save(ctx, 1, "x")
	assert.ErrorIs(t, err, common.ErrorInternal)

	_, err = ps.ListSaved(ctx, 1)
	assert.ErrorIs(t, err, common.ErrorInternal)

	_, err = ps.ListRecent(ctx, 1)
	assert.ErrorIs(t, err, common.ErrorInternal)

	_, err = ps.ToggleSaved(ctx, 1, 1)
	assert.ErrorIs(t, err, common.ErrorInternal)
}
