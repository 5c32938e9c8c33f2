// Package session holds the client's login state. A Session is created once
// at startup, restored from Storage, and passed explicitly to the parts of
// the client that need the token.
package session

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/promptdesk/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/promptdesk/internal/common"
)

// Session is the current identity. The zero value means signed out.
//
// Username is the name shown in the prompt. After registration it is the
// account username; after login it is the email typed, since the login
// response carries only a token.
type Session struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Guest    bool   `json:"guest"`
}

// Guest returns the session used when the user skips login.
func Guest() Session {
	return Session{Token: common.GuestToken, Username: "guest", Guest: true}
}

// Authenticated reports whether s carries a server-issued token.
func (s Session) Authenticated() bool {
	return s.Token != "" && !s.Guest && s.Token != common.GuestToken
}

// Active reports whether the user is signed in or browsing as guest.
func (s Session) Active() bool {
	return s.Token != ""
}

// Storage persists the session between runs.
type Storage interface {
	Load(ctx context.Context) (Session, bool, error)
	Save(ctx context.Context, s Session) error
	Clear(ctx context.Context) error
}

// MemoryStorage keeps the session in process memory.
type MemoryStorage struct {
	mu  sync.Mutex
	s   Session
	set bool
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (m *MemoryStorage) Load(context.Context) (Session, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.s, m.set, nil
}

func (m *MemoryStorage) Save(_ context.Context, s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.s, m.set = s, true
	return nil
}

func (m *MemoryStorage) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.s, m.set = Session{}, false
	return nil
}

const sessionKey = "session"

// MetadataStorage stores the session as JSON in the local metadata table.
type MetadataStorage struct {
	repo metadata.Repository
}

func NewMetadataStorage(repo metadata.Repository) *MetadataStorage {
	return &MetadataStorage{repo: repo}
}

func (m *MetadataStorage) Load(ctx context.Context) (Session, bool, error) {
	var s Session
	ok, err := m.repo.GetJSON(ctx, sessionKey, &s)
	if err != nil || !ok {
		return Session{}, false, err
	}
	return s, true, nil
}

func (m *MetadataStorage) Save(ctx context.Context, s Session) error {
	return m.repo.SetJSON(ctx, sessionKey, s)
}

func (m *MetadataStorage) Clear(ctx context.Context) error {
	return m.repo.Delete(ctx, sessionKey)
}
