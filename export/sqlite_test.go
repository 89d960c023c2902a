//go:build cgo
// +build cgo

package export

import (
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
)

func TestWriteSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roga.sqlite")

	first, err := WriteSQLite(path, sampleReport())
	if err != nil {
		t.Fatal(err)
	}
	second, err := WriteSQLite(path, sampleReport())
	if err != nil {
		t.Fatal(err)
	}
	if second <= first {
		t.Errorf("Expected increasing report IDs, got %d then %d", first, second)
	}

	db, err := sqlx.Connect("sqlite3", "file:"+path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	var count int
	if err := db.Get(&count, "SELECT COUNT(*) FROM sample WHERE report_id = ?", second); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("Expected 1 sample, got %d", count)
	}

	var verdict string
	if err := db.Get(&verdict, "SELECT verdict FROM sample WHERE seq_id = ? AND report_id = ?", "2017-SEQ-0725", first); err != nil {
		t.Fatal(err)
	}
	if verdict != "Pass" {
		t.Errorf("Expected Pass, got %s", verdict)
	}

	var rmlstIsNull bool
	if err := db.Get(&rmlstIsNull, "SELECT rmlst IS NULL FROM sample WHERE report_id = ?", first); err != nil {
		t.Fatal(err)
	}
	if !rmlstIsNull {
		t.Error("Expected rMLST to be stored as NULL")
	}

	if err := db.Get(&count, "SELECT COUNT(*) FROM excluded"); err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("Expected 2 exclusions across both reports, got %d", count)
	}
}
