package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func openTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := OpenAt(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("OpenAt failed: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSave_AssignsID(t *testing.T) {
	repo := openTestRepo(t)

	entry := &Entry{City: "missoula", County: "Missoula", Outcome: OutcomeHit, Source: SourceSession}
	if err := repo.Save(entry); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if entry.ID == 0 {
		t.Error("expected Save to assign an ID")
	}
	if entry.Timestamp.IsZero() {
		t.Error("expected Save to assign a timestamp")
	}
}

func TestListRecent_NewestFirst(t *testing.T) {
	repo := openTestRepo(t)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	cities := []string{"butte", "helena", "bozeman"}
	for i, city := range cities {
		entry := &Entry{
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			City:      city,
			Outcome:   OutcomeHit,
			Source:    SourceSession,
		}
		if err := repo.Save(entry); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	entries, err := repo.ListRecent(2)
	if err != nil {
		t.Fatalf("ListRecent failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].City != "bozeman" || entries[1].City != "helena" {
		t.Errorf("expected newest first, got %q then %q", entries[0].City, entries[1].City)
	}
}

func TestCountByCounty_OrdersByCountThenName(t *testing.T) {
	repo := openTestRepo(t)

	saves := []Entry{
		{City: "missoula", County: "Missoula", Outcome: OutcomeHit},
		{City: "lolo", County: "Missoula", Outcome: OutcomeHit},
		{City: "billings", County: "Yellowstone", Outcome: OutcomeHit},
		{City: "atlantis", County: "", Outcome: OutcomeMiss},
	}
	for i := range saves {
		saves[i].Source = SourceSession
		if err := repo.Save(&saves[i]); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	counts, err := repo.CountByCounty(10)
	if err != nil {
		t.Fatalf("CountByCounty failed: %v", err)
	}

	want := []CountyCount{
		{County: "Missoula", Count: 2},
		{County: "Yellowstone", Count: 1},
	}
	if diff := cmp.Diff(want, counts); diff != "" {
		t.Errorf("unexpected counts (-want +got):\n%s", diff)
	}
}

func TestPrune_RemovesOldEntries(t *testing.T) {
	repo := openTestRepo(t)

	old := &Entry{
		Timestamp: time.Now().UTC().Add(-48 * time.Hour),
		City:      "butte",
		Outcome:   OutcomeHit,
		Source:    SourceSession,
	}
	recent := &Entry{City: "helena", Outcome: OutcomeHit, Source: SourceSession}
	for _, e := range []*Entry{old, recent} {
		if err := repo.Save(e); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	removed, err := repo.Prune(24 * time.Hour)
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("expected 1 entry pruned, got %d", removed)
	}

	entries, err := repo.ListRecent(10)
	if err != nil {
		t.Fatalf("ListRecent failed: %v", err)
	}
	if len(entries) != 1 || entries[0].City != "helena" {
		t.Errorf("expected only recent entry to survive, got %+v", entries)
	}
}
