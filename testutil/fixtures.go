package testutil

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

// Blobs shared by tests across packages. SampleBlob decodes to
// {"a":1,"b":[true,null]}; BeltBlob to
// {"name":"Belt a.b","entities":[{"name":"foo"},{"name":"Foo"}]}.
const (
	SampleBlob    = "0eJyrVkpUsjLUUUpSsoouKSpN1ckrzcmJrQUATzoHdA=="
	SampleJSON    = `{"a":1,"b":[true,null]}`
	BeltBlob      = "0eJyrVspLzE1VslJySs0pUUjUS1LSUUrNK8ksyUwtVrKKroZJp+XnK9XqwLluIG5sLQBvSxQF"
	BeltJSON      = `{"name":"Belt a.b","entities":[{"name":"foo"},{"name":"Foo"}]}`
	MalformedBlob = "0eJzLyy9RyCrOzwMADiYDLA=="
)

// CreateSQLiteFixture creates a key-value database holding the given history
func CreateSQLiteFixture(t *testing.T, dbPath string, history []string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		t.Fatalf("Failed to create fixture directory: %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer func() { _ = db.Close() }()

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS blueprintKV (
		key TEXT PRIMARY KEY,
		value TEXT
	)`
	if _, err := db.Exec(createTableSQL); err != nil {
		t.Fatalf("Failed to create table: %v", err)
	}

	if history == nil {
		return
	}
	data, err := json.Marshal(history)
	if err != nil {
		t.Fatalf("Failed to marshal history: %v", err)
	}
	insertSQL := "INSERT INTO blueprintKV (key, value) VALUES (?, ?)"
	if _, err := db.Exec(insertSQL, "blueprintHistory", string(data)); err != nil {
		t.Fatalf("Failed to insert history: %v", err)
	}
}

// CreateBlobFile writes a blob to a file in a fresh temp dir and returns its path
func CreateBlobFile(t *testing.T, blob string) string {
	t.Helper()
	return WriteFile(t, CreateTempDir(t), "blueprint.txt", []byte(blob))
}
