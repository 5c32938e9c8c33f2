// Package services contains application services for the PromptDesk client.
// This file defines the authentication service: register, login, guest
// access and logout, each of which updates the persisted session.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/promptdesk/internal/client/client"
	"github.com/dmitrijs2005/promptdesk/internal/client/session"
)

var ErrMissingFields = errors.New("all fields are required")

// AuthService defines authentication operations for the CLI.
//
// Every successful call stores the resulting session; Logout clears it.
type AuthService interface {
	Register(ctx context.Context, username, email string, password []byte) (session.Session, error)
	Login(ctx context.Context, email string, password []byte) (session.Session, error)
	ContinueAsGuest(ctx context.Context) (session.Session, error)
	Restore(ctx context.Context) (session.Session, bool, error)
	Logout(ctx context.Context) error
}

type authService struct {
	client  client.Client
	storage session.Storage
}

func NewAuthService(c client.Client, st session.Storage) AuthService {
	return &authService{client: c, storage: st}
}

func (a *authService) Register(ctx context.Context, username, email string, password []byte) (session.Session, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || len(password) == 0 {
		return session.Session{}, ErrMissingFields
	}

	token, err := a.client.Register(ctx, username, email, string(password))
	if err != nil {
		return session.Session{}, err
	}
	return a.store(ctx, session.Session{Token: token, Username: username})
}

func (a *authService) Login(ctx context.Context, email string, password []byte) (session.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || len(password) == 0 {
		return session.Session{}, ErrMissingFields
	}

	token, err := a.client.Login(ctx, email, string(password))
	if err != nil {
		return session.Session{}, err
	}
	// The server returns only a token; the email stands in for the name.
	return a.store(ctx, session.Session{Token: token, Username: email})
}

func (a *authService) ContinueAsGuest(ctx context.Context) (session.Session, error) {
	return a.store(ctx, session.Guest())
}

// Restore returns the session saved by a previous run, if any.
func (a *authService) Restore(ctx context.Context) (session.Session, bool, error) {
	return a.storage.Load(ctx)
}

func (a *authService) Logout(ctx context.Context) error {
	return a.storage.Clear(ctx)
}

func (a *authService) store(ctx context.Context, s session.Session) (session.Session, error) {
	if err := a.storage.Save(ctx, s); err != nil {
		return session.Session{}, fmt.Errorf("save session: %w", err)
	}
	return s, nil
}
