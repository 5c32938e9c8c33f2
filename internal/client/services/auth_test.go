package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/promptdesk/internal/client/client"
	"github.com/dmitrijs2005/promptdesk/internal/client/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_StoresSession(t *testing.T) {
	fc := &fakeClient{RegisterToken: "jwt"}
	st := session.NewMemoryStorage()
	svc := NewAuthService(fc, st)
	ctx := context.Background()

	s, err := svc.Register(ctx, " alice ", "a@x.io", []byte("pw"))
	require.NoError(t, err)
	assert.Equal(t, session.Session{Token: "jwt", Username: "alice"}, s)
	assert.Equal(t, []string{"register:alice:a@x.io:pw"}, fc.calls())

	saved, ok, err := svc.Restore(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, s, saved)
}

func TestRegister_MissingFieldsAreLocal(t *testing.T) {
	fc := &fakeClient{}
	svc := NewAuthService(fc, session.NewMemoryStorage())

	_, err := svc.Register(context.Background(), "", "a@x.io", []byte("pw"))
	assert.ErrorIs(t, err, ErrMissingFields)
	_, err = svc.Register(context.Background(), "a", "a@x.io", nil)
	assert.ErrorIs(t, err, ErrMissingFields)
	assert.Empty(t, fc.calls())
}

func TestLogin(t *testing.T) {
	fc := &fakeClient{LoginToken: "jwt"}
	st := session.NewMemoryStorage()
	svc := NewAuthService(fc, st)

	s, err := svc.Login(context.Background(), "a@x.io", []byte("pw"))
	require.NoError(t, err)
	assert.True(t, s.Authenticated())
	assert.Equal(t, "a@x.io", s.Username)
}

func TestLogin_FailureLeavesSessionUntouched(t *testing.T) {
	fc := &fakeClient{LoginErr: client.ErrUnauthorized}
	st := session.NewMemoryStorage()
	require.NoError(t, st.Save(context.Background(), session.Guest()))
	svc := NewAuthService(fc, st)

	_, err := svc.Login(context.Background(), "a@x.io", []byte("bad"))
	assert.ErrorIs(t, err, client.ErrUnauthorized)

	s, _, _ := st.Load(context.Background())
	assert.Equal(t, session.Guest(), s)
}

func TestGuestAndLogout(t *testing.T) {
	st := session.NewMemoryStorage()
	svc := NewAuthService(&fakeClient{}, st)
	ctx := context.Background()

	s, err := svc.ContinueAsGuest(ctx)
	require.NoError(t, err)
	assert.True(t, s.Guest)

	require.NoError(t, svc.Logout(ctx))
	_, ok, err := svc.Restore(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

type failingStorage struct{ session.MemoryStorage }

func (f *failingStorage) Save(context.Context, session.Session) error { return errors.New("disk full") }

func TestRegister_StorageFailure(t *testing.T) {
	svc := NewAuthService(&fakeClient{RegisterToken: "jwt"}, &failingStorage{})

	_, err := svc.Register(context.Background(), "a", "a@x.io", []byte("pw"))
	assert.ErrorContains(t, err, "save session")
}
