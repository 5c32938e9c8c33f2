package services

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/promptdesk/internal/client/client"
	"github.com/dmitrijs2005/promptdesk/internal/client/models"
	"github.com/dmitrijs2005/promptdesk/internal/client/session"
)

var (
	ErrGuest        = errors.New("sign in to use saved prompts")
	ErrEmptyContent = errors.New("content is required")
)

// PromptService wraps the prompt endpoints. Guests are refused before any
// request is made.
type PromptService interface {
	Save(ctx context.Context, s session.Session, content string) (int64, error)
	ListSaved(ctx context.Context, s session.Session) ([]*models.Prompt, error)
	ListRecent(ctx context.Context, s session.Session) ([]*models.Prompt, error)
	Toggle(ctx context.Context, s session.Session, promptID int64) (bool, error)
}

type promptService struct {
	client client.Client
}

func NewPromptService(c client.Client) PromptService {
	return &promptService{client: c}
}

func (p *promptService) Save(ctx context.Context, s session.Session, content string) (int64, error) {
	if !s.Authenticated() {
		return 0, ErrGuest
	}
	if strings.TrimSpace(content) == "" {
		return 0, ErrEmptyContent
	}
	return p.client.SavePrompt(ctx, s.Token, content)
}

func (p *promptService) ListSaved(ctx context.Context, s session.Session) ([]*models.Prompt, error) {
	if !s.Authenticated() {
		return nil, ErrGuest
	}
	return p.client.ListSaved(ctx, s.Token)
}

func (p *promptService) ListRecent(ctx context.Context, s session.Session) ([]*models.Prompt, error) {
	if !s.Authenticated() {
		return nil, ErrGuest
	}
	return p.client.ListRecent(ctx, s.Token)
}

func (p *promptService) Toggle(ctx context.Context, s session.Session, promptID int64) (bool, error) {
	if !s.Authenticated() {
		return false, ErrGuest
	}
	return p.client.ToggleSave(ctx, s.Token, promptID)
}
