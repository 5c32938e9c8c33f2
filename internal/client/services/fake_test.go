package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/promptdesk/internal/client/models"
)

// fakeClient implements client.Client for unit tests.
type fakeClient struct {
	mu sync.Mutex

	RegisterToken string
	RegisterErr   error
	LoginToken    string
	LoginErr      error

	ChatFn func(ctx context.Context, message string) (string, error)

	SaveID    int64
	SaveErr   error
	Saved     []*models.Prompt
	Recent    []*models.Prompt
	ListErr   error
	ToggleOut bool
	ToggleErr error

	Calls  []string
	Tokens []string
}

func (f *fakeClient) record(call, token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, call)
	f.Tokens = append(f.Tokens, token)
}

func (f *fakeClient) Register(ctx context.Context, username, email, password string) (string, error) {
	f.record("register:"+username+":"+email+":"+password, "")
	return f.RegisterToken, f.RegisterErr
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (string, error) {
	f.record("login:"+email+":"+password, "")
	return f.LoginToken, f.LoginErr
}

func (f *fakeClient) Chat(ctx context.Context, message string) (string, error) {
	f.record("chat:"+message, "")
	if f.ChatFn == nil {
		return "", nil
	}
	return f.ChatFn(ctx, message)
}

func (f *fakeClient) SavePrompt(ctx context.Context, token, content string) (int64, error) {
	f.record("save:"+content, token)
	return f.SaveID, f.SaveErr
}

func (f *fakeClient) ListSaved(ctx context.Context, token string) ([]*models.Prompt, error) {
	f.record("saved", token)
	return f.Saved, f.ListErr
}

func (f *fakeClient) ListRecent(ctx context.Context, token string) ([]*models.Prompt, error) {
	f.record("recent", token)
	return f.Recent, f.ListErr
}

func (f *fakeClient) ToggleSave(ctx context.Context, token string, promptID int64) (bool, error) {
	f.record("toggle", token)
	return f.ToggleOut, f.ToggleErr
}

func (f *fakeClient) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.Calls...)
}
