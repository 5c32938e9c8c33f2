package prompts

import (
	"context"

	"github.com/dmitrijs2005/promptdesk/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, prompt *models.Prompt) (*models.Prompt, error)
	ListSaved(ctx context.Context, userID int64) ([]*models.Prompt, error)
	ListRecent(ctx context.Context, userID int64, limit int) ([]*models.Prompt, error)
	ToggleSaved(ctx context.Context, userID, promptID int64) (bool, error)
}
