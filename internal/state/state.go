package state

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	appName      = "bpplay"
	dbFileName   = "bpplay.db"
	saveDebounce = 500 * time.Millisecond
)

type Manager struct {
	db        *sql.DB
	saveMu    sync.Mutex
	saveTimer *time.Timer
	pending   *Settings
}

// Open opens the database in the XDG data directory.
func Open() (*Manager, error) {
	dbPath, err := getDBPath()
	if err != nil {
		return nil, err
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, err
	}

	return OpenPath(dbPath)
}

// OpenPath opens the database at path, ":memory:" included.
func OpenPath(path string) (*Manager, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if path == ":memory:" {
		// Each connection would get its own database.
		db.SetMaxOpenConns(1)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Manager{db: db}, nil
}

func (m *Manager) Close() error {
	m.saveMu.Lock()
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	pending := m.pending
	m.pending = nil
	m.saveMu.Unlock()

	// Flush pending state
	if pending != nil {
		_ = saveSettings(m.db, *pending)
	}

	return m.db.Close()
}

func (m *Manager) DB() *sql.DB {
	return m.db
}

// GetSettings returns the saved settings, nil if none were saved.
func (m *Manager) GetSettings() (*Settings, error) {
	return getSettings(m.db)
}

// SaveSettings stores settings after a short quiet period, so that holding
// the volume key does not write on every step.
func (m *Manager) SaveSettings(s Settings) {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.pending = &s

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}

	m.saveTimer = time.AfterFunc(saveDebounce, func() {
		m.saveMu.Lock()
		pending := m.pending
		m.pending = nil
		m.saveMu.Unlock()

		if pending != nil {
			_ = saveSettings(m.db, *pending)
		}
	})
}

// RecordRecent remembers f, keeping at most limit entries.
func (m *Manager) RecordRecent(f RecentFile, limit int) error {
	if f.OpenedAt.IsZero() {
		f.OpenedAt = time.Now()
	}
	return recordRecent(m.db, f, limit)
}

// RecentFiles returns up to limit files, most recent first.
func (m *Manager) RecentFiles(limit int) ([]RecentFile, error) {
	return listRecent(m.db, limit)
}

// GetRecent returns the entry for path, nil if unknown.
func (m *Manager) GetRecent(path string) (*RecentFile, error) {
	return getRecent(m.db, path)
}

// RemoveRecent forgets path.
func (m *Manager) RemoveRecent(path string) error {
	return removeRecent(m.db, path)
}

func getDBPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}
