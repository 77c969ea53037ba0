// Package tui implements the full-screen interactive lookup application.
package tui

import (
	"fmt"
	"strings"

	"bigskydata/mtcounties/internal/directory"
	"bigskydata/mtcounties/internal/history"
	"bigskydata/mtcounties/internal/tui/components"
	"bigskydata/mtcounties/internal/tui/styles"
	"bigskydata/mtcounties/internal/userstore"
	"bigskydata/mtcounties/internal/util"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// exitSentinel quits the app when entered at the city prompt.
const exitSentinel = "x"

type lookupPhase int

const (
	phasePrompt   lookupPhase = iota // city name input
	phaseOfferAdd                    // not found, offer to add
	phaseCounty                      // county name input for the new entry
	phaseConfirm                     // confirm the assembled entry
)

type lookupModel struct {
	dir       directory.Directory
	storePath string
	hist      history.Repository

	phase lookupPhase
	input textinput.Model

	// Pending add-entry state.
	pendingCity   string
	pendingCounty string
	pendingPrefix directory.Prefix

	// confirmIdx selects yes (0) or no (1) in decision phases.
	confirmIdx int

	status  string // last result or add confirmation
	problem string // last validation or persistence issue

	width    int
	height   int
	quitting bool
}

// RunLookup starts the full-screen lookup application over the given
// directory. Confirmed entries are appended to the user store at storePath;
// hist may be nil.
func RunLookup(dir directory.Directory, storePath string, hist history.Repository) error {
	p := tea.NewProgram(newLookupModel(dir, storePath, hist), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run lookup app: %w", err)
	}
	return nil
}

func newLookupModel(dir directory.Directory, storePath string, hist history.Repository) lookupModel {
	input := textinput.New()
	input.Placeholder = "e.g. Missoula"
	input.Focus()

	return lookupModel{
		dir:       dir,
		storePath: storePath,
		hist:      hist,
		phase:     phasePrompt,
		input:     input,
	}
}

func (m lookupModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m lookupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.routeToInput(msg)
}

func (m lookupModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "esc":
		if m.phase == phasePrompt {
			m.quitting = true
			return m, tea.Quit
		}
		// Abandon the pending entry.
		m = m.toPrompt("")
		return m, nil
	}

	switch m.phase {
	case phasePrompt:
		if msg.Type == tea.KeyEnter {
			return m.submitCity()
		}
	case phaseOfferAdd:
		return m.handleDecision(msg,
			func(m lookupModel) (tea.Model, tea.Cmd) { return m.toCounty(""), nil },
			func(m lookupModel) (tea.Model, tea.Cmd) { return m.toPrompt(""), nil },
		)
	case phaseCounty:
		if msg.Type == tea.KeyEnter {
			return m.submitCounty()
		}
	case phaseConfirm:
		return m.handleDecision(msg,
			func(m lookupModel) (tea.Model, tea.Cmd) { return m.commit(), nil },
			func(m lookupModel) (tea.Model, tea.Cmd) { return m.toCounty("Let's try again."), nil },
		)
	}

	return m.routeToInput(msg)
}

// handleDecision interprets y/n, arrow selection, and enter for a yes/no
// phase.
func (m lookupModel) handleDecision(msg tea.KeyMsg, yes, no func(lookupModel) (tea.Model, tea.Cmd)) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		return yes(m)
	case "n", "N":
		return no(m)
	case "left", "h", "right", "l", "tab":
		m.confirmIdx = 1 - m.confirmIdx
		return m, nil
	case "enter":
		if m.confirmIdx == 0 {
			return yes(m)
		}
		return no(m)
	}
	return m, nil
}

func (m lookupModel) submitCity() (tea.Model, tea.Cmd) {
	raw := strings.TrimSpace(m.input.Value())
	if util.NormalizeKey(raw) == exitSentinel {
		m.quitting = true
		return m, tea.Quit
	}

	if err := util.ValidateName(raw); err != nil {
		m.problem = fmt.Sprintf("Invalid input: %v", err)
		return m, nil
	}

	if rec, found := m.dir.Lookup(raw); found {
		m.record(raw, rec.County, history.OutcomeHit)
		m = m.toPrompt("")
		m.status = rec.Summary()
		return m, nil
	}

	m.record(raw, "", history.OutcomeMiss)
	m.pendingCity = raw
	m.phase = phaseOfferAdd
	m.confirmIdx = 0
	m.problem = ""
	m.input.Blur()
	return m, nil
}

func (m lookupModel) submitCounty() (tea.Model, tea.Cmd) {
	county := strings.TrimSpace(m.input.Value())
	if err := util.ValidateName(county); err != nil {
		m.problem = fmt.Sprintf("Invalid input: %v", err)
		return m, nil
	}

	m.pendingCounty = util.TitleCase(county)
	m.pendingPrefix, _ = m.dir.PrefixForCounty(county)
	m.phase = phaseConfirm
	m.confirmIdx = 0
	m.problem = ""
	m.input.Blur()
	return m, nil
}

// commit writes the confirmed entry to the directory and the user store,
// keeping the in-memory entry even when the append fails.
func (m lookupModel) commit() lookupModel {
	rec := m.dir.Insert(m.pendingCity, m.pendingCounty, m.pendingPrefix)
	m.record(rec.City, rec.County, history.OutcomeAdded)

	var problem string
	if err := userstore.Append(m.storePath, rec); err != nil {
		problem = fmt.Sprintf("Entry was not saved to disk: %v", err)
	}

	m = m.toPrompt(problem)
	m.status = fmt.Sprintf("Added: %s - %s - Prefix: %s", rec.City, rec.County, rec.Prefix)
	return m
}

func (m lookupModel) toPrompt(problem string) lookupModel {
	m.phase = phasePrompt
	m.pendingCity = ""
	m.pendingCounty = ""
	m.pendingPrefix = directory.UnknownPrefix()
	m.status = ""
	m.problem = problem
	m.input.SetValue("")
	m.input.Placeholder = "e.g. Missoula"
	m.input.Focus()
	return m
}

func (m lookupModel) toCounty(problem string) lookupModel {
	m.phase = phaseCounty
	m.problem = problem
	m.input.SetValue("")
	m.input.Placeholder = "e.g. Silver Bow"
	m.input.Focus()
	return m
}

func (m lookupModel) routeToInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.phase != phasePrompt && m.phase != phaseCounty {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *lookupModel) record(city, county, outcome string) {
	if m.hist == nil {
		return
	}
	_ = m.hist.Save(&history.Entry{
		City:    util.NormalizeKey(city),
		County:  county,
		Outcome: outcome,
		Source:  history.SourceTUI,
	})
}

func (m lookupModel) View() string {
	if m.quitting {
		return ""
	}

	width := m.width
	if width == 0 {
		width = 80
	}

	header := components.Header(width, "lookup")
	body := m.viewBody(width)
	footer := components.Footer(width, m.footerBindings())

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m lookupModel) viewBody(width int) string {
	var lines []string

	if m.status != "" {
		lines = append(lines, styles.SuccessText.Render(ansi.Truncate(m.status, width-8, "…")))
	}
	if m.problem != "" {
		lines = append(lines, styles.ErrorText.Render(ansi.Truncate(m.problem, width-8, "…")))
	}

	switch m.phase {
	case phasePrompt:
		lines = append(lines,
			styles.Label.Render(fmt.Sprintf("Enter a city name (%q to exit)", exitSentinel)),
			styles.InputFocused.Render(m.input.View()),
		)
	case phaseOfferAdd:
		display := util.TitleCase(m.pendingCity)
		lines = append(lines,
			styles.WarningText.Render(fmt.Sprintf("%s not found.", display)),
			styles.Value.Render(fmt.Sprintf("Add an entry for %s?", display)),
			m.viewChoices("Yes", "No"),
		)
	case phaseCounty:
		lines = append(lines,
			styles.Label.Render(fmt.Sprintf("Enter the county name for %s", util.TitleCase(m.pendingCity))),
			styles.InputFocused.Render(m.input.View()),
		)
	case phaseConfirm:
		lines = append(lines,
			styles.Label.Render("Please confirm your entry:"),
			styles.Value.Render(fmt.Sprintf("City:   %s", util.TitleCase(m.pendingCity))),
			styles.Value.Render(fmt.Sprintf("County: %s", m.pendingCounty)),
			styles.Value.Render(fmt.Sprintf("Prefix: %s", m.pendingPrefix)),
			m.viewChoices("Save", "Re-enter county"),
		)
	}

	return styles.Card.Width(width - 4).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m lookupModel) viewChoices(yes, no string) string {
	yesLabel := "  " + yes + "  "
	noLabel := "  " + no + "  "
	selected := lipgloss.NewStyle().Foreground(styles.White).Background(styles.DarkBlue).Bold(true)
	if m.confirmIdx == 0 {
		return selected.Render(yesLabel) + "  " + styles.MutedText.Render(noLabel)
	}
	return styles.MutedText.Render(yesLabel) + "  " + selected.Render(noLabel)
}

func (m lookupModel) footerBindings() []components.KeyBinding {
	switch m.phase {
	case phaseOfferAdd, phaseConfirm:
		return []components.KeyBinding{
			{Key: "y/n", Desc: "choose"},
			{Key: "←/→", Desc: "select"},
			{Key: "enter", Desc: "confirm"},
			{Key: "esc", Desc: "back"},
		}
	default:
		return []components.KeyBinding{
			{Key: "enter", Desc: "look up"},
			{Key: "esc", Desc: "quit"},
			{Key: "ctrl+c", Desc: "quit"},
		}
	}
}
