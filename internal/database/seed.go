package database

import (
	"context"
	"embed"
	"fmt"

	"github.com/deppfellow/classroom/internal/sqlerr"
)

//go:embed seed/*.sql
var seedFiles embed.FS

// Seed inserts the demonstration classroom rows.
// Rows use fixed ids and "on conflict do nothing", so seeding twice changes nothing.
func (db *Database) Seed(ctx context.Context) error {
	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return sqlerr.HandleError(err)
	}
	defer func() { _ = tx.Rollback() }()

	body, err := seedFiles.ReadFile("seed/seed.sql")
	if err != nil {
		return fmt.Errorf("reading seed data: %w", err)
	}

	stmts := SplitStatements(string(body))
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return sqlerr.HandleError(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return sqlerr.HandleError(err)
	}

	db.log.Info().Int("statements", len(stmts)).Msg("seeded classroom data")
	return nil
}
