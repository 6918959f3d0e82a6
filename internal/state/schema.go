package state

import (
	"database/sql"
)

const currentSchemaVersion = 1

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS player_settings (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			volume INTEGER NOT NULL DEFAULT 100,
			speed REAL NOT NULL DEFAULT 1.0
		);

		CREATE TABLE IF NOT EXISTS recent_files (
			path TEXT PRIMARY KEY,
			title TEXT,
			breakpoints INTEGER NOT NULL DEFAULT 0,
			position_ms INTEGER,
			opened_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_recent_files_opened_at ON recent_files(opened_at DESC);
	`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		INSERT OR IGNORE INTO schema_version (version) VALUES (?)
	`, currentSchemaVersion)
	return err
}
