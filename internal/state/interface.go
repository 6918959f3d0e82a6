// internal/state/interface.go
package state

import "database/sql"

// Interface defines the state manager contract for dependency injection and testing.
type Interface interface {
	DB() *sql.DB
	GetSettings() (*Settings, error)
	SaveSettings(s Settings)
	RecordRecent(f RecentFile, limit int) error
	RecentFiles(limit int) ([]RecentFile, error)
	GetRecent(path string) (*RecentFile, error)
	RemoveRecent(path string) error
	Close() error
}

// Verify implementations at compile time.
var (
	_ Interface = (*Manager)(nil)
	_ Interface = (*Mock)(nil)
)
