// file: internal/database/sqlite_store_test.go
// version: 1.0.0
// guid: ea274002-52ad-41b7-b0ec-ab02d4906977

package database

import (
	"path/filepath"
	"testing"

	"github.com/acikyardim/yardim-paneli/internal/models"
)

// setupSQLiteTestDB creates a temporary SQLite database for testing.
func setupSQLiteTestDB(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "panel.db"))
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestNewSQLiteStore(t *testing.T) {
	store := setupSQLiteTestDB(t)
	if store == nil {
		t.Fatal("Expected non-nil store")
	}
}

func TestSQLiteStoreConformance(t *testing.T) {
	exerciseStore(t, setupSQLiteTestDB(t))
}

func TestSQLiteListNewestFirst(t *testing.T) {
	store := setupSQLiteTestDB(t)

	first, err := store.CreateBeneficiary(&models.Beneficiary{OrgID: "org1", Name: "Birinci"})
	if err != nil {
		t.Fatalf("CreateBeneficiary: %v", err)
	}
	second, err := store.CreateBeneficiary(&models.Beneficiary{OrgID: "org1", Name: "İkinci"})
	if err != nil {
		t.Fatalf("CreateBeneficiary: %v", err)
	}

	list, err := store.ListBeneficiaries("org1")
	if err != nil {
		t.Fatalf("ListBeneficiaries: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 beneficiaries, got %d", len(list))
	}
	if list[0].ID != second.ID || list[1].ID != first.ID {
		t.Errorf("expected newest-first ordering, got %s then %s", list[0].Name, list[1].Name)
	}
}

func TestSQLiteDuplicateEmailRejected(t *testing.T) {
	store := setupSQLiteTestDB(t)

	if _, err := store.CreateUser(&models.User{OrgID: "org1", Email: "a@b.c", PasswordHash: "h", Role: models.RoleAdmin}); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if _, err := store.CreateUser(&models.User{OrgID: "org1", Email: "a@b.c", PasswordHash: "h", Role: models.RoleUser}); err == nil {
		t.Fatal("expected unique constraint error for duplicate email")
	}
}

func TestSQLiteMigrations(t *testing.T) {
	store := setupSQLiteTestDB(t)

	if err := RunMigrations(store); err != nil {
		t.Fatalf("RunMigrations: %v", err)
	}
	// Running again must be a no-op.
	if err := RunMigrations(store); err != nil {
		t.Fatalf("RunMigrations second pass: %v", err)
	}

	var version int
	if err := store.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version); err != nil {
		t.Fatalf("query schema_migrations: %v", err)
	}
	if version != len(migrations) {
		t.Errorf("expected schema version %d, got %d", len(migrations), version)
	}
}
