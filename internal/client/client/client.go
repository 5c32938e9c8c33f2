// Package client talks to the PromptDesk HTTP API and bootstraps the local
// session database.
//
// Transport failures and unparseable responses map to ErrUnavailable; a 401
// maps to ErrUnauthorized; any other non-2xx answer is an *APIError holding
// the server's message.
package client

import (
	"context"

	"github.com/dmitrijs2005/promptdesk/internal/client/models"
)

type Client interface {
	Register(ctx context.Context, username, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	Chat(ctx context.Context, message string) (string, error)
	SavePrompt(ctx context.Context, token, content string) (int64, error)
	ListSaved(ctx context.Context, token string) ([]*models.Prompt, error)
	ListRecent(ctx context.Context, token string) ([]*models.Prompt, error)
	ToggleSave(ctx context.Context, token string, promptID int64) (bool, error)
}
