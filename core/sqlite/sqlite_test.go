package sqlite

import (
	"path/filepath"
	"testing"
)

func TestOpenAndQuery(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		t.Fatalf("Ping: %v", err)
	}

	if _, err := db.Exec(`CREATE TABLE books (name TEXT PRIMARY KEY)`); err != nil {
		t.Fatalf("CREATE TABLE: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO books (name) VALUES (?)`, "Gen"); err != nil {
		t.Fatalf("INSERT: %v", err)
	}

	var name string
	if err := db.QueryRow(`SELECT name FROM books`).Scan(&name); err != nil {
		t.Fatalf("SELECT: %v", err)
	}
	if name != "Gen" {
		t.Errorf("name = %q, want %q", name, "Gen")
	}
}

func TestDriverInfo(t *testing.T) {
	info := GetInfo()
	if info.DriverName != DriverName() {
		t.Errorf("Info.DriverName = %q, want %q", info.DriverName, DriverName())
	}
	if info.IsCGO != IsCGO() {
		t.Errorf("Info.IsCGO = %v, want %v", info.IsCGO, IsCGO())
	}
	if info.Package == "" {
		t.Error("Info.Package is empty")
	}
}
