package history

import (
	"database/sql"
)

const currentSchemaVersion = 1

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS converted_tracks (
			source TEXT NOT NULL,
			format TEXT NOT NULL,
			bitrate TEXT NOT NULL,
			output TEXT NOT NULL,
			source_mtime INTEGER NOT NULL,
			converted_at INTEGER NOT NULL,
			PRIMARY KEY (source, format, bitrate)
		);

		CREATE INDEX IF NOT EXISTS idx_converted_tracks_output ON converted_tracks(output);
	`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`INSERT OR IGNORE INTO schema_version (version) VALUES (?)`, currentSchemaVersion)
	return err
}
