package refdata

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse_BasicDataset(t *testing.T) {
	input := "city,county,prefix\n" +
		"Missoula,Missoula,4\n" +
		"Billings,Yellowstone,3\n"

	dir, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	rec, ok := dir.Lookup("missoula")
	if !ok {
		t.Fatal("expected hit for missoula")
	}
	if rec.County != "Missoula" {
		t.Errorf("expected county Missoula, got %q", rec.County)
	}
	if n, known := rec.Prefix.Known(); !known || n != 4 {
		t.Errorf("expected known prefix 4, got %s", rec.Prefix)
	}
}

func TestParse_ColumnOrderIrrelevant(t *testing.T) {
	input := "prefix,city,county\n" +
		"14,Miles City,Custer\n"

	dir, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	rec, ok := dir.Lookup("miles city")
	if !ok {
		t.Fatal("expected hit for miles city")
	}
	if n, _ := rec.Prefix.Known(); n != 14 {
		t.Errorf("expected prefix 14, got %s", rec.Prefix)
	}
}

func TestParse_TrimsWhitespace(t *testing.T) {
	input := "city,county,prefix\n" +
		" Helena , Lewis and Clark , 5 \n"

	dir, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	rec, ok := dir.Lookup("helena")
	if !ok {
		t.Fatal("expected hit for helena")
	}
	if rec.County != "Lewis and Clark" {
		t.Errorf("expected trimmed county, got %q", rec.County)
	}
}

func TestParse_MissingColumnIsFormatError(t *testing.T) {
	input := "city,county\n" +
		"Missoula,Missoula\n"

	_, err := Parse(strings.NewReader(input))
	var formatErr *FormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("expected FormatError, got %v", err)
	}
	if !strings.Contains(formatErr.Reason, "prefix") {
		t.Errorf("expected reason naming prefix column, got %q", formatErr.Reason)
	}
}

func TestParse_NonNumericPrefixIsFormatError(t *testing.T) {
	input := "city,county,prefix\n" +
		"Missoula,Missoula,4\n" +
		"Billings,Yellowstone,three\n"

	_, err := Parse(strings.NewReader(input))
	var formatErr *FormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("expected FormatError, got %v", err)
	}
	if formatErr.Row != 3 {
		t.Errorf("expected error on row 3, got row %d", formatErr.Row)
	}
}

func TestParse_EmptyInputIsFormatError(t *testing.T) {
	_, err := Parse(strings.NewReader(""))
	var formatErr *FormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("expected FormatError, got %v", err)
	}
}

func TestLoadDefault_EmbeddedDataset(t *testing.T) {
	dir, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault failed: %v", err)
	}
	if len(dir) != 56 {
		t.Errorf("expected 56 county seats, got %d", len(dir))
	}

	rec, ok := dir.Lookup("butte")
	if !ok {
		t.Fatal("expected hit for butte")
	}
	if rec.County != "Silver Bow" {
		t.Errorf("expected Silver Bow, got %q", rec.County)
	}
	if n, _ := rec.Prefix.Known(); n != 1 {
		t.Errorf("expected prefix 1, got %s", rec.Prefix)
	}
}

func TestLoadFile_UsesPathWhenSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ref.csv")
	content := "city,county,prefix\nAtlantis,Ocean,77\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	dir, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if len(dir) != 1 {
		t.Errorf("expected 1 entry, got %d", len(dir))
	}
	if _, ok := dir.Lookup("atlantis"); !ok {
		t.Error("expected hit for atlantis")
	}
}

func TestLoadFile_EmptyPathFallsBackToEmbedded(t *testing.T) {
	dir, err := LoadFile("")
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if _, ok := dir.Lookup("missoula"); !ok {
		t.Error("expected embedded dataset to cover missoula")
	}
}

func TestLoadFile_MissingFileIsError(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.csv"))
	if err == nil {
		t.Fatal("expected error for missing reference file")
	}
}
