// Package migrations embeds the goose schema migrations, one directory per
// SQL dialect.
package migrations

import (
	"embed"

	"github.com/dmitrijs2005/promptdesk/internal/dbx"
)

//go:embed sqlite/*.sql postgres/*.sql
var Migrations embed.FS

// Dir is the directory inside Migrations holding the scripts for dialect.
func Dir(dialect dbx.Dialect) string {
	if dialect == dbx.DialectPostgres {
		return "postgres"
	}
	return "sqlite"
}
