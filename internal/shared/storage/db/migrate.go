package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

// RunMigrations brings the schema up to date using the embedded goose
// migrations. A nil handle (memory-repo mode) is a no-op.
func RunMigrations(ctx context.Context, conn *sql.DB) error {
	if conn == nil {
		return nil
	}
	goose.SetBaseFS(embeddedMigrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	return goose.UpContext(ctx, conn, "migrations")
}
