package directory

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestInsertAndLookup(t *testing.T) {
	d := New()
	d.Insert("missoula", "Missoula", KnownPrefix(4))

	rec, ok := d.Lookup("Missoula")
	if !ok {
		t.Fatal("expected lookup hit for Missoula")
	}

	want := Record{City: "Missoula", County: "Missoula", Prefix: KnownPrefix(4)}
	if diff := cmp.Diff(want, rec, cmp.AllowUnexported(Prefix{})); diff != "" {
		t.Errorf("unexpected record (-want +got):\n%s", diff)
	}
}

func TestLookup_CaseInsensitive(t *testing.T) {
	d := New()
	d.Insert("Miles City", "Custer", KnownPrefix(14))

	for _, query := range []string{"miles city", "MILES CITY", "  Miles City  ", "mIlEs CiTy"} {
		if _, ok := d.Lookup(query); !ok {
			t.Errorf("expected hit for %q", query)
		}
	}
}

func TestLookup_ExactMatchOnly(t *testing.T) {
	d := New()
	d.Insert("Bozeman", "Gallatin", KnownPrefix(6))

	for _, query := range []string{"Boze", "Bozemann", "Atlantis"} {
		if _, ok := d.Lookup(query); ok {
			t.Errorf("expected miss for %q", query)
		}
	}
}

func TestLookup_Idempotent(t *testing.T) {
	d := New()
	d.Insert("Helena", "Lewis and Clark", KnownPrefix(5))

	first, ok := d.Lookup("helena")
	if !ok {
		t.Fatal("expected hit")
	}
	second, ok := d.Lookup("helena")
	if !ok {
		t.Fatal("expected hit on second lookup")
	}
	if first.Summary() != second.Summary() {
		t.Errorf("lookups differ: %q vs %q", first.Summary(), second.Summary())
	}
}

func TestInsert_OverwritesExistingKey(t *testing.T) {
	d := New()
	d.Insert("lolo", "Ravalli", KnownPrefix(13))
	d.Insert("Lolo", "Missoula", KnownPrefix(4))

	rec, _ := d.Lookup("lolo")
	if rec.County != "Missoula" {
		t.Errorf("expected later insert to win, got county %q", rec.County)
	}
	if len(d) != 1 {
		t.Errorf("expected 1 entry, got %d", len(d))
	}
}

func TestPrefixForCounty(t *testing.T) {
	d := New()
	d.Insert("Missoula", "Missoula", KnownPrefix(4))
	d.Insert("Billings", "Yellowstone", KnownPrefix(3))

	prefix, ok := d.PrefixForCounty("missoula")
	if !ok {
		t.Fatal("expected existing county to be found")
	}
	if n, known := prefix.Known(); !known || n != 4 {
		t.Errorf("expected known prefix 4, got %s", prefix)
	}

	if _, ok := d.PrefixForCounty("Atlantis"); ok {
		t.Error("expected no match for unknown county")
	}
}

func TestPrefixForCounty_DeterministicScanOrder(t *testing.T) {
	// Two records share a county spelling but disagree on the prefix (a user
	// store can produce this). The sorted scan must always pick the record
	// with the smaller city key.
	d := New()
	d.Insert("zortman", "Phillips", KnownPrefix(99))
	d.Insert("malta", "Phillips", KnownPrefix(11))

	for i := 0; i < 10; i++ {
		prefix, ok := d.PrefixForCounty("phillips")
		if !ok {
			t.Fatal("expected county match")
		}
		if n, _ := prefix.Known(); n != 11 {
			t.Fatalf("expected prefix from smallest city key (11), got %d", n)
		}
	}
}

func TestRecords_SortedByCity(t *testing.T) {
	d := New()
	d.Insert("Wibaux", "Wibaux", KnownPrefix(52))
	d.Insert("Anaconda", "Deer Lodge", KnownPrefix(30))
	d.Insert("Libby", "Lincoln", KnownPrefix(56))

	records := d.Records()
	got := make([]string, len(records))
	for i, rec := range records {
		got[i] = rec.City
	}

	want := []string{"Anaconda", "Libby", "Wibaux"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected order (-want +got):\n%s", diff)
	}
}

func TestRecordSummary(t *testing.T) {
	rec := Record{City: "Missoula", County: "Missoula", Prefix: KnownPrefix(4)}
	want := "Missoula is in Missoula County (License Prefix 4)"
	if got := rec.Summary(); got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}

	rec = Record{City: "Atlantis", County: "Lost", Prefix: UnknownPrefix()}
	want = "Atlantis is in Lost County (License Prefix unknown)"
	if got := rec.Summary(); got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}
}
