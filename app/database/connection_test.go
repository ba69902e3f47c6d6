package database

import (
	"path/filepath"
	"testing"
)

func TestNewConnection(t *testing.T) {
	db, err := NewConnection(":memory:")
	if err != nil {
		t.Fatalf("Expected in-memory connection to open, got %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		t.Errorf("Expected ping to succeed: %v", err)
	}
}

func TestNewConnection_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := NewConnection(path)
	if err != nil {
		t.Fatalf("Expected file-backed connection to open, got %v", err)
	}
	defer db.Close()

	if _, _, err := RunMigrations(db); err != nil {
		t.Errorf("Expected migrations to apply on a fresh file: %v", err)
	}
}

func TestRunMigrations_Idempotent(t *testing.T) {
	db, err := NewConnection(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	version, dirty, err := RunMigrations(db)
	if err != nil {
		t.Fatalf("First migration run failed: %v", err)
	}
	if dirty {
		t.Error("Expected clean migration state")
	}

	again, dirty, err := RunMigrations(db)
	if err != nil {
		t.Fatalf("Second migration run failed: %v", err)
	}
	if again != version || dirty {
		t.Errorf("Expected unchanged version %d clean, got %d (dirty=%v)", version, again, dirty)
	}
}
