// Package history records converted tracks in a SQLite database so that
// re-running the converter on the same source can skip finished work.
package history

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// Entry is one converted track.
type Entry struct {
	Source        string
	Output        string
	Format        string
	Bitrate       string
	SourceModTime time.Time
	ConvertedAt   time.Time
}

type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path. ":memory:" is accepted.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// A single connection keeps ":memory:" databases shared.
	db.SetMaxOpenConns(1)

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Lookup returns the entry for source converted with format and bitrate,
// or nil when there is none.
func (s *Store) Lookup(ctx context.Context, source, format, bitrate string) (*Entry, error) {
	var (
		output      string
		mtime       int64
		convertedAt int64
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT output, source_mtime, converted_at FROM converted_tracks
		WHERE source = ? AND format = ? AND bitrate = ?`,
		source, format, bitrate,
	).Scan(&output, &mtime, &convertedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // absence is not an error
	}
	if err != nil {
		return nil, err
	}

	return &Entry{
		Source:        source,
		Output:        output,
		Format:        format,
		Bitrate:       bitrate,
		SourceModTime: time.Unix(0, mtime),
		ConvertedAt:   time.Unix(convertedAt, 0),
	}, nil
}

// Unchanged reports whether e was already converted from a source with the
// same modification time to the same output, and that output still exists.
func (s *Store) Unchanged(ctx context.Context, e Entry) (bool, error) {
	prev, err := s.Lookup(ctx, e.Source, e.Format, e.Bitrate)
	if err != nil || prev == nil {
		return false, err
	}
	if prev.Output != e.Output || !prev.SourceModTime.Equal(e.SourceModTime) {
		return false, nil
	}
	if _, err := os.Stat(e.Output); err != nil {
		return false, nil //nolint:nilerr // a missing output means convert again
	}
	return true, nil
}

// Record stores entries in one transaction, replacing previous rows for the
// same source, format and bitrate.
func (s *Store) Record(ctx context.Context, entries ...Entry) error {
	now := time.Now()

	return withTx(ctx, s.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO converted_tracks (source, format, bitrate, output, source_mtime, converted_at)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(source, format, bitrate) DO UPDATE SET
				output = excluded.output,
				source_mtime = excluded.source_mtime,
				converted_at = excluded.converted_at`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, e := range entries {
			convertedAt := e.ConvertedAt
			if convertedAt.IsZero() {
				convertedAt = now
			}
			if _, err := stmt.ExecContext(ctx,
				e.Source, e.Format, e.Bitrate, e.Output,
				e.SourceModTime.UnixNano(), convertedAt.Unix(),
			); err != nil {
				return err
			}
		}
		return nil
	})
}

// withTx executes fn within a transaction.
// It handles Begin, Rollback on error, and Commit on success.
func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // rollback on error is intentional

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}
