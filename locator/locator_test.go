package locator

import (
	"errors"
	"testing"

	"github.com/carbocation/roga/reportsource"
)

func mustTable(t *testing.T, name string, header []string, rows [][]string) *reportsource.Table {
	t.Helper()

	tab, err := reportsource.New(name, header, rows)
	if err != nil {
		t.Fatal(err)
	}

	return tab
}

func TestLocateKeyMatches(t *testing.T) {
	src := mustTable(t, "a.csv", []string{"SeqID", "Genus"}, [][]string{
		{"S1", "Salmonella"},
		{"S2", "Listeria"},
		{"S3", "Escherichia"},
	})

	loc, err := Locate([]*reportsource.Table{src}, []string{"S3", "S1", "S1", "S9"}, "SeqID")
	if err != nil {
		t.Fatal(err)
	}

	if loc.Len() != 2 {
		t.Errorf("Expected 2 located rows, got %d", loc.Len())
	}

	for _, id := range []string{"S1", "S3"} {
		row, err := loc.Row(id)
		if err != nil {
			t.Fatal(err)
		}
		key, err := row.Field("SeqID")
		if err != nil {
			t.Fatal(err)
		}
		if key != id {
			t.Errorf("Row for %s has key %s", id, key)
		}
	}

	if loc.Has("S2") {
		t.Error("S2 was not requested and should not be located")
	}
}

func TestLocateLastSourceWins(t *testing.T) {
	first := mustTable(t, "first.csv", []string{"SeqID", "PipelineVersion"}, [][]string{
		{"S1", "0.1.0"},
		{"S2", "0.1.0"},
	})
	second := mustTable(t, "second.csv", []string{"SeqID", "PipelineVersion"}, [][]string{
		{"S1", "0.2.0"},
	})

	loc, err := Locate([]*reportsource.Table{first, second}, []string{"S1", "S2"}, "SeqID")
	if err != nil {
		t.Fatal(err)
	}

	row, err := loc.Row("S1")
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := row.Field("PipelineVersion"); v != "0.2.0" {
		t.Errorf("Expected the later source to win for S1, got version %s from %s", v, row.Source())
	}

	row, err = loc.Row("S2")
	if err != nil {
		t.Fatal(err)
	}
	if row.Source() != "first.csv" {
		t.Errorf("Expected S2 from first.csv, got %s", row.Source())
	}

	// Reversing the order reverses the winner
	loc, err = Locate([]*reportsource.Table{second, first}, []string{"S1"}, "SeqID")
	if err != nil {
		t.Fatal(err)
	}
	row, _ = loc.Row("S1")
	if v, _ := row.Field("PipelineVersion"); v != "0.1.0" {
		t.Errorf("Expected first.csv to win when scanned last, got %s", v)
	}
}

func TestLocateFirstRowWithinSource(t *testing.T) {
	src := mustTable(t, "GDCS.csv", []string{"Strain", "Matches"}, [][]string{
		{"S1", "47"},
		{"S1", "12"},
	})

	loc, err := Locate([]*reportsource.Table{src}, []string{"S1"}, "Strain")
	if err != nil {
		t.Fatal(err)
	}

	row, _ := loc.Row("S1")
	if v, _ := row.Field("Matches"); v != "47" {
		t.Errorf("Expected the first row in the source, got Matches=%s", v)
	}
}

func TestLocateRowNotFound(t *testing.T) {
	src := mustTable(t, "a.csv", []string{"SeqID"}, [][]string{{"S1"}})

	loc, err := Locate([]*reportsource.Table{src}, []string{"S1", "S2"}, "SeqID")
	if err != nil {
		t.Fatal(err)
	}

	_, err = loc.Row("S2")
	var rnf *RowNotFoundError
	if !errors.As(err, &rnf) {
		t.Fatalf("Expected RowNotFoundError, got %v", err)
	}
	if rnf.ID != "S2" {
		t.Errorf("Expected S2 in the error, got %s", rnf.ID)
	}
}

func TestLocateMissingKeyColumn(t *testing.T) {
	src := mustTable(t, "GDCS.csv", []string{"Strain"}, [][]string{{"S1"}})

	_, err := Locate([]*reportsource.Table{src}, []string{"S1"}, "SeqID")
	var mfe *reportsource.MissingFieldError
	if !errors.As(err, &mfe) {
		t.Fatalf("Expected MissingFieldError, got %v", err)
	}
}

func TestLocateNoSources(t *testing.T) {
	if _, err := Locate(nil, []string{"S1"}, "SeqID"); err == nil {
		t.Error("Expected an error without sources")
	}
}
