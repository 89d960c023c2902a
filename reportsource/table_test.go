package reportsource

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const combinedMetadataCSV = `SeqID,SampleName,Genus,TotalLength,AverageCoverageDepth,NumContigs,GeneSeekr_Profile,SISTR_serovar,MLST_Result,rMLST_Result,E_coli_Serotype,Vtyper_Profile,PipelineVersion
2017-SEQ-0725,SAL-1001,Salmonella,4856321,52.31X,37,invA;stn,Enteritidis,11,ND,ND,ND,0.1.5
2017-SEQ-0726,LIS-2002,Listeria,2998112,88.02X,14,IGS;hlyA;inlJ,ND,1,ND,ND,ND,0.1.5
`

func TestReadComma(t *testing.T) {
	tab, err := Read("combinedMetadata.csv", strings.NewReader(combinedMetadataCSV), Options{Layout: &CombinedMetadata})
	if err != nil {
		t.Fatal(err)
	}

	if tab.Len() != 2 {
		t.Fatalf("Expected 2 rows, got %d", tab.Len())
	}

	profile, err := tab.Row(0).Field(FieldGeneSeekrProfile)
	if err != nil {
		t.Fatal(err)
	}
	if profile != "invA;stn" {
		t.Errorf("Expected invA;stn, got %s", profile)
	}

	ids, err := tab.Column(FieldSeqID)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 2 || ids[1] != "2017-SEQ-0726" {
		t.Errorf("Unexpected SeqID column: %v", ids)
	}
}

func TestReadTabWithBOM(t *testing.T) {
	input := "\ufeffStrain\tMatches\tPass/Fail\n2017-SEQ-0725\t47\t+\n2017-SEQ-0726\t45\t-\n2017-SEQ-0727\t46\t+\n"

	tab, err := Read("GDCS.tsv", strings.NewReader(input), Options{Layout: &GDCS})
	if err != nil {
		t.Fatal(err)
	}

	if got := tab.Header()[0]; got != FieldStrain {
		t.Errorf("Expected BOM to be stripped from %q", got)
	}

	pf, err := tab.Row(1).Field(FieldPassFail)
	if err != nil {
		t.Fatal(err)
	}
	if pf != "-" {
		t.Errorf("Expected -, got %s", pf)
	}
}

func TestReadLatin1(t *testing.T) {
	// "Québec" in ISO-8859-1
	input := "Strain,Matches,Pass/Fail,Site\n2017-SEQ-0725,47,+,Qu\xe9bec\n"

	tab, err := Read("GDCS.csv", strings.NewReader(input), Options{Encoding: "latin1", Delimiter: ','})
	if err != nil {
		t.Fatal(err)
	}

	site, err := tab.Row(0).Field("Site")
	if err != nil {
		t.Fatal(err)
	}
	if site != "Québec" {
		t.Errorf("Expected Québec, got %q", site)
	}
}

func TestLayoutMissingField(t *testing.T) {
	input := "Strain,Matches\n2017-SEQ-0725,47\n"

	_, err := Read("GDCS.csv", strings.NewReader(input), Options{Delimiter: ',', Layout: &GDCS})

	var mfe *MissingFieldError
	if !errors.As(err, &mfe) {
		t.Fatalf("Expected MissingFieldError, got %v", err)
	}
	if mfe.Field != FieldPassFail {
		t.Errorf("Expected missing %s, got %s", FieldPassFail, mfe.Field)
	}
}

func TestRowMissingField(t *testing.T) {
	tab, err := New("inline", []string{"SeqID", "Genus"}, [][]string{{"S1", "Salmonella"}})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := tab.Row(0).Field("TotalLength"); err == nil {
		t.Error("Expected an error for an absent field")
	}

	var zero Row
	if _, err := zero.Field("Genus"); err == nil {
		t.Error("Expected an error from the zero Row")
	}
}

func TestNewRejectsRaggedRows(t *testing.T) {
	if _, err := New("inline", []string{"SeqID", "Genus"}, [][]string{{"S1"}}); err == nil {
		t.Error("Expected an error for a short row")
	}

	if _, err := New("inline", []string{"SeqID", "SeqID"}, nil); err == nil {
		t.Error("Expected an error for a duplicated header")
	}
}

func TestReadEmpty(t *testing.T) {
	if _, err := Read("empty.csv", strings.NewReader(""), Options{}); err == nil {
		t.Error("Expected an error for an empty source")
	}
}

func TestOpenLocal(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "combinedMetadata.csv")
	if err := os.WriteFile(p, []byte(combinedMetadataCSV), 0644); err != nil {
		t.Fatal(err)
	}

	tab, err := Open(context.Background(), p, nil, Options{Layout: &CombinedMetadata})
	if err != nil {
		t.Fatal(err)
	}
	if tab.Name() != p {
		t.Errorf("Expected name %s, got %s", p, tab.Name())
	}
	if tab.Len() != 2 {
		t.Errorf("Expected 2 rows, got %d", tab.Len())
	}
}

func TestLookupLayout(t *testing.T) {
	l, err := LookupLayout("GDCS")
	if err != nil {
		t.Fatal(err)
	}
	if l.KeyColumn != FieldStrain {
		t.Errorf("Expected key %s, got %s", FieldStrain, l.KeyColumn)
	}

	if _, err := LookupLayout("nope"); err == nil {
		t.Error("Expected an error for an unknown layout")
	}
}

func TestOpenXLSSkipsBlankRows(t *testing.T) {
	tab, err := Open(context.Background(), filepath.Join("testdata", "metadata_gap.xls"), nil, Options{})
	if err != nil {
		t.Fatal(err)
	}

	if got := strings.Join(tab.Header(), ","); got != "SeqID,Genus,TotalLength" {
		t.Errorf("Unexpected header %s", got)
	}

	// Row 2 of the sheet is blank and not stored in the workbook
	if tab.Len() != 2 {
		t.Fatalf("Expected 2 rows, got %d", tab.Len())
	}

	genus, err := tab.Row(1).Field("Genus")
	if err != nil {
		t.Fatal(err)
	}
	if genus != "Listeria" {
		t.Errorf("Expected Listeria, got %s", genus)
	}

	ids, err := tab.Column("SeqID")
	if err != nil {
		t.Fatal(err)
	}
	if ids[0] != "2017-SEQ-0725" || ids[1] != "2017-SEQ-0726" {
		t.Errorf("Unexpected SeqID column: %v", ids)
	}
}

func TestReadXLSHeaderOnly(t *testing.T) {
	content, err := os.ReadFile(filepath.Join("testdata", "metadata_header_only.xls"))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := ReadXLS("metadata_header_only.xls", content, Options{}); err == nil {
		t.Error("Expected an error for a sheet without data rows")
	}
}

func TestSheetTable(t *testing.T) {
	cells := [][]string{
		{"SeqID", " Genus ", ""},
		{"S1", "Salmonella"},
		nil,
		{"", "  "},
		{"S2", "Listeria", "stray"},
	}

	tab, err := sheetTable("inline.xls", cells, Options{})
	if err != nil {
		t.Fatal(err)
	}

	if got := strings.Join(tab.Header(), ","); got != "SeqID,Genus" {
		t.Errorf("Unexpected header %s", got)
	}
	if tab.Len() != 2 {
		t.Fatalf("Expected 2 rows, got %d", tab.Len())
	}
	if got := tab.Row(1).Values(); len(got) != 2 || got["Genus"] != "Listeria" {
		t.Errorf("Expected the stray cell to be dropped, got %v", got)
	}

	if _, err := sheetTable("inline.xls", nil, Options{}); err == nil {
		t.Error("Expected an error for an empty sheet")
	}
	if _, err := sheetTable("inline.xls", [][]string{nil, {"S1"}}, Options{}); err == nil {
		t.Error("Expected an error for a missing header row")
	}
}
