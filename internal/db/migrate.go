package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS runs (
		id                TEXT PRIMARY KEY,
		kind              TEXT NOT NULL CHECK(kind IN ('breakdown','evaluation','insights')),
		work_item_id      INTEGER NOT NULL DEFAULT 0,
		items_checked     INTEGER NOT NULL DEFAULT 0,
		items_with_issues INTEGER NOT NULL DEFAULT 0,
		tasks_created     INTEGER NOT NULL DEFAULT 0,
		tasks_failed      INTEGER NOT NULL DEFAULT 0,
		fields_updated    INTEGER NOT NULL DEFAULT 0,
		summary           TEXT NOT NULL DEFAULT '',
		started_at        TEXT NOT NULL,
		finished_at       TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_runs_kind ON runs(kind, started_at DESC)`,

	`CREATE INDEX IF NOT EXISTS idx_runs_work_item ON runs(work_item_id)`,
}
