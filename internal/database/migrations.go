// file: internal/database/migrations.go
// version: 1.0.0
// guid: 7c8d27ef-2bd3-418a-a053-6e24e5106f81

package database

import (
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/cockroachdb/pebble/v2"
)

// Migration represents a single SQLite schema migration. The base schema is
// created by createTables; migrations carry later changes.
type Migration struct {
	Version     int
	Description string
	Up          func(s *SQLiteStore) error
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema with beneficiaries, donations, users, sessions, messages, activity log",
		Up:          func(*SQLiteStore) error { return nil }, // created by createTables
	},
	{
		Version:     2,
		Description: "Add created_at indexes for list ordering",
		Up: func(s *SQLiteStore) error {
			_, err := s.db.Exec(`
				CREATE INDEX IF NOT EXISTS idx_donations_created ON donations(created_at);
				CREATE INDEX IF NOT EXISTS idx_messages_created ON messages(created_at);
				CREATE INDEX IF NOT EXISTS idx_activity_created ON activity_log(created_at);
			`)
			return err
		},
	},
}

// RunMigrations brings the store's schema up to the current version.
// PebbleDB is schemaless; only the version marker is maintained there.
func RunMigrations(store Store) error {
	switch s := store.(type) {
	case *SQLiteStore:
		return runSQLiteMigrations(s)
	case *PebbleStore:
		return runPebbleMigrations(s)
	default:
		return nil
	}
}

func runSQLiteMigrations(s *SQLiteStore) error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		description TEXT NOT NULL,
		applied_at DATETIME NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	var current int
	if err := s.db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current); err != nil {
		return err
	}

	for _, m := range migrations {
		if m.Version <= current {
			continue
		}
		log.Printf("[INFO] applying migration %d: %s", m.Version, m.Description)
		if err := m.Up(s); err != nil {
			return fmt.Errorf("migration %d failed: %w", m.Version, err)
		}
		if _, err := s.db.Exec(`INSERT INTO schema_migrations (version, description, applied_at) VALUES (?, ?, ?)`,
			m.Version, m.Description, time.Now().UTC()); err != nil {
			return err
		}
	}
	return nil
}

func runPebbleMigrations(p *PebbleStore) error {
	latest := migrations[len(migrations)-1].Version
	value, closer, err := p.db.Get([]byte("schema:version"))
	if err == nil {
		current, _ := strconv.Atoi(string(value))
		closer.Close()
		if current >= latest {
			return nil
		}
	} else if err != pebble.ErrNotFound {
		return err
	}
	return p.db.Set([]byte("schema:version"), []byte(strconv.Itoa(latest)), pebble.Sync)
}
