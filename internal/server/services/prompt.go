package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/promptdesk/internal/common"
	"github.com/dmitrijs2005/promptdesk/internal/server/config"
	"github.com/dmitrijs2005/promptdesk/internal/server/models"
	"github.com/dmitrijs2005/promptdesk/internal/server/repositories/repomanager"
)

// PromptService manages a user's saved prompts. Every method takes an
// already verified user id.
type PromptService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	recentLimit int
}

func NewPromptService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *PromptService {
	return &PromptService{db: db, repomanager: m, recentLimit: cfg.RecentPromptsLimit}
}

// Save stores content as a saved prompt and returns its id.
func (s *PromptService) Save(ctx context.Context, userID int64, content string) (int64, error) {
	if strings.TrimSpace(content) == "" {
		return 0, fmt.Errorf("%w: content is required", common.ErrValidation)
	}

	p, err := s.repomanager.Prompts(s.db).Create(ctx, &models.Prompt{
		UserID:  userID,
		Content: content,
		IsSaved: true,
	})
	if err != nil {
		return 0, fmt.Errorf("%w: save prompt: %v", common.ErrorInternal, err)
	}
	return p.ID, nil
}

func (s *PromptService) ListSaved(ctx context.Context, userID int64) ([]*models.Prompt, error) {
	list, err := s.repomanager.Prompts(s.db).ListSaved(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: list saved: %v", common.ErrorInternal, err)
	}
	return list, nil
}

func (s *PromptService) ListRecent(ctx context.Context, userID int64) ([]*models.Prompt, error) {
	list, err := s.repomanager.Prompts(s.db).ListRecent(ctx, userID, s.recentLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: list recent: %v", common.ErrorInternal, err)
	}
	return list, nil
}

// ToggleSaved flips the saved flag and returns the new value. Prompts that
// do not exist or belong to someone else yield ErrorNotFound.
func (s *PromptService) ToggleSaved(ctx context.Context, userID, promptID int64) (bool, error) {
	saved, err := s.repomanager.Prompts(s.db).ToggleSaved(ctx, userID, promptID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return false, common.ErrorNotFound
		}
		return false, fmt.Errorf("%w: toggle prompt: %v", common.ErrorInternal, err)
	}
	return saved, nil
}
