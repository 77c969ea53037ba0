package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bigskydata/mtcounties/internal/directory"

	tea "github.com/charmbracelet/bubbletea"
)

func testModel(t *testing.T) lookupModel {
	t.Helper()
	dir := directory.New()
	dir.Insert("Missoula", "Missoula", directory.KnownPrefix(3))
	dir.Insert("Billings", "Yellowstone", directory.KnownPrefix(7))
	return newLookupModel(dir, filepath.Join(t.TempDir(), "cities.txt"), nil)
}

func pressEnter(m lookupModel) lookupModel {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(lookupModel)
}

func pressRune(m lookupModel, r rune) lookupModel {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	return next.(lookupModel)
}

func TestSubmitCity_HitShowsResult(t *testing.T) {
	m := testModel(t)
	m.input.SetValue("missoula")

	m = pressEnter(m)

	if m.phase != phasePrompt {
		t.Fatalf("expected prompt phase after hit, got %d", m.phase)
	}
	want := "Missoula is in Missoula County (License Prefix 3)"
	if m.status != want {
		t.Errorf("status = %q, want %q", m.status, want)
	}
	if m.input.Value() != "" {
		t.Errorf("expected input cleared, got %q", m.input.Value())
	}
}

func TestSubmitCity_InvalidNameSetsProblem(t *testing.T) {
	m := testModel(t)
	m.input.SetValue("Butte1")

	m = pressEnter(m)

	if m.phase != phasePrompt {
		t.Fatalf("expected to stay in prompt phase, got %d", m.phase)
	}
	if !strings.Contains(m.problem, "only contain letters") {
		t.Errorf("expected validation problem, got %q", m.problem)
	}
}

func TestSubmitCity_MissOffersAdd(t *testing.T) {
	m := testModel(t)
	m.input.SetValue("Atlantis")

	m = pressEnter(m)

	if m.phase != phaseOfferAdd {
		t.Fatalf("expected offer phase after miss, got %d", m.phase)
	}
	if m.pendingCity != "Atlantis" {
		t.Errorf("pendingCity = %q, want %q", m.pendingCity, "Atlantis")
	}
}

func TestCountyPhase_UsesCountyPlaceholder(t *testing.T) {
	m := testModel(t)
	m.input.SetValue("Lolo")
	m = pressEnter(m)

	m = pressRune(m, 'y')

	if m.phase != phaseCounty {
		t.Fatalf("expected county phase, got %d", m.phase)
	}
	if m.input.Placeholder != "e.g. Silver Bow" {
		t.Errorf("placeholder = %q, want a county example", m.input.Placeholder)
	}
}

func TestOfferAdd_DeclineReturnsToPrompt(t *testing.T) {
	m := testModel(t)
	m.input.SetValue("Atlantis")
	m = pressEnter(m)

	m = pressRune(m, 'n')

	if m.phase != phasePrompt {
		t.Fatalf("expected prompt phase after decline, got %d", m.phase)
	}
	if _, found := m.dir.Lookup("atlantis"); found {
		t.Error("expected no directory mutation after decline")
	}
}

func TestAddFlow_InheritsPrefixAndPersists(t *testing.T) {
	m := testModel(t)
	m.input.SetValue("Lolo")
	m = pressEnter(m) // miss -> offer
	m = pressRune(m, 'y')
	if m.phase != phaseCounty {
		t.Fatalf("expected county phase, got %d", m.phase)
	}

	m.input.SetValue("missoula")
	m = pressEnter(m) // -> confirm
	if m.phase != phaseConfirm {
		t.Fatalf("expected confirm phase, got %d", m.phase)
	}
	if n, known := m.pendingPrefix.Known(); !known || n != 3 {
		t.Errorf("expected inherited prefix 3, got %s", m.pendingPrefix)
	}

	m = pressRune(m, 'y') // commit

	if m.phase != phasePrompt {
		t.Fatalf("expected prompt phase after commit, got %d", m.phase)
	}
	if !strings.Contains(m.status, "Added: Lolo - Missoula - Prefix: 3") {
		t.Errorf("unexpected status %q", m.status)
	}

	rec, found := m.dir.Lookup("lolo")
	if !found {
		t.Fatal("expected lolo in directory after commit")
	}
	if rec.County != "Missoula" {
		t.Errorf("county = %q, want Missoula", rec.County)
	}

	data, err := os.ReadFile(m.storePath)
	if err != nil {
		t.Fatalf("expected user store write: %v", err)
	}
	if got, want := string(data), "lolo,Missoula,3\n"; got != want {
		t.Errorf("stored line = %q, want %q", got, want)
	}
}

func TestAddFlow_UnknownCountyUsesSentinel(t *testing.T) {
	m := testModel(t)
	m.input.SetValue("Atlantis")
	m = pressEnter(m)
	m = pressRune(m, 'y')
	m.input.SetValue("Ocean")
	m = pressEnter(m)

	if _, known := m.pendingPrefix.Known(); known {
		t.Errorf("expected unknown prefix, got %s", m.pendingPrefix)
	}
}

func TestConfirm_NoReturnsToCountyPhase(t *testing.T) {
	m := testModel(t)
	m.input.SetValue("Lolo")
	m = pressEnter(m)
	m = pressRune(m, 'y')
	m.input.SetValue("Ravalli")
	m = pressEnter(m)

	m = pressRune(m, 'n')

	if m.phase != phaseCounty {
		t.Fatalf("expected county phase after decline, got %d", m.phase)
	}
	if !strings.Contains(m.problem, "try again") {
		t.Errorf("expected retry notice, got %q", m.problem)
	}
	if m.input.Value() != "" {
		t.Errorf("expected county input cleared, got %q", m.input.Value())
	}
}

func TestExitSentinel_Quits(t *testing.T) {
	m := testModel(t)
	m.input.SetValue("X")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(lookupModel)

	if !m.quitting {
		t.Error("expected quitting after sentinel")
	}
	if cmd == nil {
		t.Error("expected quit command")
	}
}

func TestEscInDecisionPhase_AbandonsPendingEntry(t *testing.T) {
	m := testModel(t)
	m.input.SetValue("Atlantis")
	m = pressEnter(m)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(lookupModel)

	if m.phase != phasePrompt {
		t.Fatalf("expected prompt phase after esc, got %d", m.phase)
	}
	if m.pendingCity != "" {
		t.Errorf("expected pending city cleared, got %q", m.pendingCity)
	}
}

func TestView_RendersPromptAndChoices(t *testing.T) {
	m := testModel(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = next.(lookupModel)

	view := m.View()
	if !strings.Contains(view, "Enter a city name") {
		t.Errorf("expected city prompt in view:\n%s", view)
	}

	m.input.SetValue("Atlantis")
	m = pressEnter(m)
	view = m.View()
	if !strings.Contains(view, "not found") {
		t.Errorf("expected not-found message in view:\n%s", view)
	}
}
