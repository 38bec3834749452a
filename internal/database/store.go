// file: internal/database/store.go
// version: 1.2.0
// guid: 159ea032-e74b-4920-a1b9-51a02af1853b

// Package database persists the aid-panel entities behind a Store interface
// with SQLite (default) and PebbleDB backends.
package database

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/acikyardim/yardim-paneli/internal/models"
	ulid "github.com/oklog/ulid/v2"
)

// Store defines the interface for our database operations.
// This abstraction allows us to support both SQLite (default) and PebbleDB.
// Get* methods return (nil, nil) when the entity does not exist.
type Store interface {
	// Lifecycle
	Close() error

	// Beneficiaries
	CreateBeneficiary(b *models.Beneficiary) (*models.Beneficiary, error)
	GetBeneficiaryByID(id string) (*models.Beneficiary, error)
	ListBeneficiaries(orgID string) ([]models.Beneficiary, error)
	UpdateBeneficiary(id string, b *models.Beneficiary) (*models.Beneficiary, error)
	DeleteBeneficiary(id string) error
	CountBeneficiaries(orgID string) (int, error)

	// Donations
	CreateDonation(d *models.Donation) (*models.Donation, error)
	GetDonationByID(id string) (*models.Donation, error)
	ListDonations(orgID string) ([]models.Donation, error)
	UpdateDonation(id string, d *models.Donation) (*models.Donation, error)
	DeleteDonation(id string) error
	CountDonations(orgID string) (int, error)
	SumDonationAmounts(orgID, status string) (float64, error)

	// Users & auth
	CreateUser(u *models.User) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	ListUsers(orgID string) ([]models.User, error)
	UpdateUser(id string, u *models.User) (*models.User, error)
	DeleteUser(id string) error
	CountUsers() (int, error)

	// Sessions
	CreateSession(userID string, ttl time.Duration) (*models.Session, error)
	GetSession(token string) (*models.Session, error)
	RevokeSession(token string) error
	DeleteExpiredSessions(now time.Time) (int, error)

	// Messages
	CreateMessage(m *models.Message) (*models.Message, error)
	UpdateMessage(id string, m *models.Message) (*models.Message, error)
	ListMessages(orgID string, limit int) ([]models.Message, error)

	// Activity log
	AddActivity(e *models.ActivityEntry) error
	ListActivity(orgID string, limit int) ([]models.ActivityEntry, error)
}

// Global store instance
var GlobalStore Store

// InitializeStore initializes the database store based on configuration
func InitializeStore(dbType, path string) error {
	var err error

	switch dbType {
	case "sqlite", "sqlite3", "":
		GlobalStore, err = NewSQLiteStore(path)
		if err != nil {
			return fmt.Errorf("failed to initialize SQLite store: %w", err)
		}
	case "pebble":
		GlobalStore, err = NewPebbleStore(path)
		if err != nil {
			return fmt.Errorf("failed to initialize PebbleDB store: %w", err)
		}
	default:
		return fmt.Errorf("unsupported database type: %s (supported: sqlite, pebble)", dbType)
	}

	if err := RunMigrations(GlobalStore); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// CloseStore closes the global store
func CloseStore() error {
	if GlobalStore != nil {
		return GlobalStore.Close()
	}
	return nil
}

// newULID generates a sortable unique entity ID.
func newULID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// newSessionToken generates an unguessable session token.
func newSessionToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", buf), nil
}
