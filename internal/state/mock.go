// internal/state/mock.go
package state

import (
	"database/sql"
	"slices"
	"time"
)

// Mock is a test double for Manager.
type Mock struct {
	settings *Settings
	recent   []RecentFile
	closed   bool
}

// NewMock creates a new mock state manager for testing.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) DB() *sql.DB { return nil }

func (m *Mock) GetSettings() (*Settings, error) {
	return m.settings, nil
}

func (m *Mock) SaveSettings(s Settings) {
	m.settings = &s
}

func (m *Mock) RecordRecent(f RecentFile, limit int) error {
	if f.OpenedAt.IsZero() {
		f.OpenedAt = time.Now()
	}
	m.recent = slices.DeleteFunc(m.recent, func(r RecentFile) bool { return r.Path == f.Path })
	m.recent = slices.Insert(m.recent, 0, f)
	if limit > 0 && len(m.recent) > limit {
		m.recent = m.recent[:limit]
	}
	return nil
}

func (m *Mock) RecentFiles(limit int) ([]RecentFile, error) {
	n := len(m.recent)
	if limit > 0 && limit < n {
		n = limit
	}
	return slices.Clone(m.recent[:n]), nil
}

func (m *Mock) GetRecent(path string) (*RecentFile, error) {
	for _, r := range m.recent {
		if r.Path == path {
			return &r, nil
		}
	}
	return nil, nil
}

func (m *Mock) RemoveRecent(path string) error {
	m.recent = slices.DeleteFunc(m.recent, func(r RecentFile) bool { return r.Path == path })
	return nil
}

func (m *Mock) Close() error {
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *Mock) Closed() bool { return m.closed }
