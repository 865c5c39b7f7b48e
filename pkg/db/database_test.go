package db

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestDB(t *testing.T) Database {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "test.sqlite")
	database, err := New(context.Background(), "sqlite", dsn, nil)
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	return database
}

func ptr[T any](v T) *T {
	return &v
}

func TestNewRejectsUnknownDialect(t *testing.T) {
	_, err := New(context.Background(), "postgres", "dsn", nil)
	if err == nil {
		t.Fatal("expected error for unsupported dialect")
	}
}

func TestAdmins(t *testing.T) {
	d := newTestDB(t)

	n, err := d.CountAdmins()
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("fresh database has %d admins", n)
	}

	created, err := d.CreateAdmin("admin", "hash")
	if err != nil {
		t.Fatal(err)
	}
	if created.ID == 0 {
		t.Fatal("created admin has no id")
	}

	got, err := d.GetAdminByUsername("admin")
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != created.ID || got.PasswordHash != "hash" {
		t.Fatalf("got %+v", got)
	}

	// A miss is not an error, just a zero record.
	missing, err := d.GetAdminByUsername("nobody")
	if err != nil {
		t.Fatal(err)
	}
	if missing.ID != 0 {
		t.Fatalf("expected zero admin, got %+v", missing)
	}
}
