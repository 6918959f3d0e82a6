package state

import (
	"database/sql"
	"time"

	"github.com/llehouerou/bpplay/internal/db"
)

// RecentFile is a previously opened audio or save file.
type RecentFile struct {
	Path        string
	Title       string
	Breakpoints int
	// Position is where playback was when the file was last seen.
	Position time.Duration
	OpenedAt time.Time
}

func recordRecent(conn *sql.DB, f RecentFile, limit int) error {
	return db.WithTx(conn, func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO recent_files (path, title, breakpoints, position_ms, opened_at)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(path) DO UPDATE SET
				title = excluded.title,
				breakpoints = excluded.breakpoints,
				position_ms = excluded.position_ms,
				opened_at = excluded.opened_at
		`, f.Path, f.Title, f.Breakpoints, f.Position.Milliseconds(), f.OpenedAt.UnixMilli())
		if err != nil {
			return err
		}

		if limit <= 0 {
			return nil
		}
		// Keep only the most recent entries.
		_, err = tx.Exec(`
			DELETE FROM recent_files
			WHERE path NOT IN (
				SELECT path FROM recent_files ORDER BY opened_at DESC LIMIT ?
			)
		`, limit)
		return err
	})
}

func listRecent(conn *sql.DB, limit int) ([]RecentFile, error) {
	rows, err := conn.Query(`
		SELECT path, title, breakpoints, position_ms, opened_at
		FROM recent_files
		ORDER BY opened_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []RecentFile
	for rows.Next() {
		var (
			f        RecentFile
			title    sql.NullString
			position sql.NullInt64
			openedAt int64
		)
		if err := rows.Scan(&f.Path, &title, &f.Breakpoints, &position, &openedAt); err != nil {
			return nil, err
		}
		f.Title = db.NullStringValue(title)
		f.Position = time.Duration(db.NullInt64Value(position)) * time.Millisecond
		f.OpenedAt = time.UnixMilli(openedAt)
		files = append(files, f)
	}
	return files, rows.Err()
}

func getRecent(conn *sql.DB, path string) (*RecentFile, error) {
	var (
		f        RecentFile
		title    sql.NullString
		position sql.NullInt64
		openedAt int64
	)
	err := conn.QueryRow(`
		SELECT path, title, breakpoints, position_ms, opened_at
		FROM recent_files WHERE path = ?
	`, path).Scan(&f.Path, &title, &f.Breakpoints, &position, &openedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	f.Title = db.NullStringValue(title)
	f.Position = time.Duration(db.NullInt64Value(position)) * time.Millisecond
	f.OpenedAt = time.UnixMilli(openedAt)
	return &f, nil
}

func removeRecent(conn *sql.DB, path string) error {
	_, err := conn.Exec(`DELETE FROM recent_files WHERE path = ?`, path)
	return err
}
