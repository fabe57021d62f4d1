// Package localstore is the guest-mode backend: a single-device key-value
// store holding one JSON array per collection, backed by an embedded
// SQLite database.
package localstore

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// keyPrefix matches the fixed entry prefix of the persisted layout:
// nebula-incomes, nebula-expenses, ..., nebula-settings.
const keyPrefix = "nebula-"

const schemaSQL = `
CREATE TABLE IF NOT EXISTS kv (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

// Store owns the on-device database and an in-process change hub so that
// watchers opened by this session observe its own mutations immediately.
type Store struct {
	db *sql.DB

	// mu serializes read-modify-write cycles; every mutation rewrites the
	// whole stored list, which makes each one trivially atomic.
	mu sync.Mutex

	wmu      sync.Mutex
	watchers map[string][]chan struct{}
}

// Open creates or opens the store at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init local store: %w", err)
	}
	return &Store{db: db, watchers: make(map[string][]chan struct{})}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) get(key string) ([]byte, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return []byte(value), true, nil
}

func (s *Store) put(key string, value []byte) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO kv (key, value) VALUES (?, ?)`, key, string(value))
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// notify wakes every watcher registered for key. Signals coalesce: a
// watcher that is already pending does not queue a second wake-up.
func (s *Store) notify(key string) {
	s.wmu.Lock()
	defer s.wmu.Unlock()
	for _, ch := range s.watchers[key] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (s *Store) subscribe(key string) (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	s.wmu.Lock()
	s.watchers[key] = append(s.watchers[key], ch)
	s.wmu.Unlock()

	cancel := func() {
		s.wmu.Lock()
		defer s.wmu.Unlock()
		subs := s.watchers[key]
		for i, c := range subs {
			if c == ch {
				s.watchers[key] = append(subs[:i], subs[i+1:]...)
				break
			}
		}
	}
	return ch, cancel
}

// newID builds a timestamp+random composite identifier for records created
// on this device.
func newID() string {
	buf := make([]byte, 5)
	rand.Read(buf)
	return strconv.FormatInt(time.Now().UnixMilli(), 10) + "-" + hex.EncodeToString(buf)
}
