package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies the schema. Every statement is idempotent, so it runs on
// each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	// Key/value settings; holds the generation API credential.
	`CREATE TABLE IF NOT EXISTS settings (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	// Mutable per-day progress layered over the built-in seed.
	`CREATE TABLE IF NOT EXISTS unit_progress (
		day              INTEGER PRIMARY KEY,
		status           TEXT NOT NULL
		                 CHECK(status IN ('Not Started','In Progress','Done')),
		time_spent_hours REAL,
		confidence       INTEGER CHECK(confidence IS NULL OR (confidence BETWEEN 0 AND 5)),
		notes            TEXT NOT NULL DEFAULT '',
		updated_at       TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS checklist_items (
		day      INTEGER NOT NULL REFERENCES unit_progress(day) ON DELETE CASCADE,
		item_id  TEXT NOT NULL,
		position INTEGER NOT NULL,
		text     TEXT NOT NULL,
		done     INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (day, item_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_checklist_items_day ON checklist_items(day, position)`,
}
