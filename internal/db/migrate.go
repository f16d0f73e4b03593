package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are safe to re-run.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	// Programs are keyed per user; the same program ID may be stored for
	// several users without the rows touching each other.
	`CREATE TABLE IF NOT EXISTS programs (
		user_id       TEXT NOT NULL,
		id            TEXT NOT NULL,
		start_weight  REAL NOT NULL CHECK(start_weight BETWEEN 30 AND 300),
		target_weight REAL NOT NULL CHECK(target_weight BETWEEN 30 AND 300),
		total_weeks   INTEGER NOT NULL CHECK(total_weeks > 0),
		start_date    TEXT NOT NULL,
		created_at    TEXT NOT NULL,
		CHECK(start_weight <> target_weight),
		PRIMARY KEY (user_id, id)
	)`,

	`CREATE TABLE IF NOT EXISTS week_entries (
		user_id       TEXT NOT NULL,
		program_id    TEXT NOT NULL,
		week          INTEGER NOT NULL CHECK(week > 0),
		target_weight REAL NOT NULL,
		target_change REAL NOT NULL,
		actual_weight REAL,
		actual_change REAL,
		status        TEXT NOT NULL DEFAULT 'pending'
		              CHECK(status IN ('pending','ahead','on_track','behind')),
		recorded_at   TEXT,
		PRIMARY KEY (user_id, program_id, week),
		FOREIGN KEY (user_id, program_id) REFERENCES programs(user_id, id) ON DELETE CASCADE
	)`,

	// One row per user naming the program saved last. It goes away with
	// the program it points at.
	`CREATE TABLE IF NOT EXISTS active_programs (
		user_id    TEXT PRIMARY KEY,
		program_id TEXT NOT NULL,
		FOREIGN KEY (user_id, program_id) REFERENCES programs(user_id, id) ON DELETE CASCADE
	)`,

	// Added after the first release; older databases get it on upgrade.
	`ALTER TABLE programs ADD COLUMN last_updated TEXT NOT NULL DEFAULT ''`,
}
