package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/promptdesk/internal/dbx"
	"github.com/dmitrijs2005/promptdesk/internal/server/repositories/prompts"
	"github.com/dmitrijs2005/promptdesk/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Prompts(db dbx.DBTX) prompts.Repository
}
