// Package session implements the line-based interactive lookup session: a
// greeting, a ready gate, and a prompt loop that looks cities up and walks
// the user through adding entries the directory does not know yet.
//
// All interaction happens over an injected reader and writer so a complete
// session can be driven by a finite scripted transcript. End of input is
// always treated as a request to leave, never as something to spin on.
package session

import (
	"bufio"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"bigskydata/mtcounties/internal/directory"
	"bigskydata/mtcounties/internal/history"
	"bigskydata/mtcounties/internal/userstore"
	"bigskydata/mtcounties/internal/util"
)

// exitSentinel ends the lookup loop when entered at the city prompt.
const exitSentinel = "x"

// maxPromptAttempts bounds how many invalid y/n answers a single question
// tolerates before the flow gives up and treats the answer as "n".
const maxPromptAttempts = 3

var (
	resultStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FD787")).Bold(true)
	noticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD787"))
	problemStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8787"))
)

// Options configures a Session.
type Options struct {
	// Directory is the merged city directory; the session mutates it when
	// the user confirms a new entry.
	Directory directory.Directory

	// UserStorePath is where confirmed entries are appended.
	UserStorePath string

	// History, when non-nil, records each turn. Failures are cosmetic and
	// never interrupt the session.
	History history.Repository

	// In and Out carry the conversation.
	In  io.Reader
	Out io.Writer
}

// Session runs one interactive lookup conversation.
type Session struct {
	dir       directory.Directory
	storePath string
	hist      history.Repository
	scanner   *bufio.Scanner
	out       io.Writer
}

// New builds a session from options.
func New(opts Options) *Session {
	return &Session{
		dir:       opts.Directory,
		storePath: opts.UserStorePath,
		hist:      opts.History,
		scanner:   bufio.NewScanner(opts.In),
		out:       opts.Out,
	}
}

// Run drives the session to completion: greet, gate on readiness, then loop
// until the exit sentinel or end of input.
func (s *Session) Run() error {
	fmt.Fprintln(s.out, "Montana county lookup: find the county and license plate prefix for any city.")
	fmt.Fprintln(s.out, "Cities you add are saved for future sessions.")
	fmt.Fprintln(s.out)

	// The ready gate is a single question: anything but "y" is a decline,
	// with no re-prompt.
	answer, ok := s.prompt("Ready to look up some cities? (y/n): ")
	if !ok || util.NormalizeKey(answer) != "y" {
		fmt.Fprintln(s.out, "Okay, goodbye!")
		return nil
	}

	for {
		city, ok := s.prompt(fmt.Sprintf("Enter a city name (or %q to exit): ", exitSentinel))
		if !ok || util.NormalizeKey(city) == exitSentinel {
			break
		}

		if err := util.ValidateName(city); err != nil {
			fmt.Fprintln(s.out, problemStyle.Render(fmt.Sprintf("Invalid input: %v", err)))
			continue
		}

		if rec, found := s.dir.Lookup(city); found {
			fmt.Fprintln(s.out, resultStyle.Render(rec.Summary()))
			s.record(city, rec.County, history.OutcomeHit)
			continue
		}

		s.record(city, "", history.OutcomeMiss)
		s.addEntry(city)
	}

	fmt.Fprintln(s.out, "Thanks! Have a good day.")
	return nil
}

// addEntry walks the add flow for a city the directory does not know:
// offer, collect a county, infer the prefix, confirm, commit.
func (s *Session) addEntry(city string) {
	display := util.TitleCase(city)

	want, ok := s.askYesNo(fmt.Sprintf("%s not found. Would you like to add an entry for %s? (y/n): ", display, display))
	if !ok || !want {
		return
	}

	for {
		county, ok := s.prompt(fmt.Sprintf("Enter the county name for %s: ", display))
		if !ok {
			return
		}
		if err := util.ValidateName(county); err != nil {
			fmt.Fprintln(s.out, problemStyle.Render(fmt.Sprintf("Invalid input: %v", err)))
			continue
		}

		countyDisplay := util.TitleCase(county)
		prefix, _ := s.dir.PrefixForCounty(county)

		fmt.Fprintln(s.out)
		fmt.Fprintln(s.out, "Please confirm your entry:")
		fmt.Fprintf(s.out, "  City:   %s\n", display)
		fmt.Fprintf(s.out, "  County: %s\n", countyDisplay)
		fmt.Fprintf(s.out, "  Prefix: %s\n", prefix)

		confirmed, ok := s.askYesNo("Is this correct? (y/n): ")
		if !ok {
			return
		}
		if !confirmed {
			fmt.Fprintln(s.out, "Let's try again.")
			continue
		}

		s.commit(city, county, prefix)
		return
	}
}

// commit updates the in-memory directory, then appends to the user store.
// The in-memory entry is kept even when the append fails so the session
// stays consistent with what the user confirmed.
func (s *Session) commit(city, county string, prefix directory.Prefix) {
	rec := s.dir.Insert(city, county, prefix)

	if err := userstore.Append(s.storePath, rec); err != nil {
		fmt.Fprintln(s.out, problemStyle.Render(fmt.Sprintf("Warning: entry was not saved to disk: %v", err)))
		fmt.Fprintln(s.out, noticeStyle.Render("The entry is available for the rest of this session."))
	}

	fmt.Fprintf(s.out, "Added: %s - %s - Prefix: %s\n\n", rec.City, rec.County, rec.Prefix)
	s.record(rec.City, rec.County, history.OutcomeAdded)
}

// prompt writes a question and reads one trimmed line. ok is false at end
// of input.
func (s *Session) prompt(question string) (string, bool) {
	fmt.Fprint(s.out, question)
	if !s.scanner.Scan() {
		fmt.Fprintln(s.out)
		return "", false
	}
	return s.scanner.Text(), true
}

// askYesNo asks a question until it gets "y" or "n" (case-insensitive).
// After maxPromptAttempts invalid answers, or at end of input, ok is false.
func (s *Session) askYesNo(question string) (answer, ok bool) {
	for attempt := 0; attempt < maxPromptAttempts; attempt++ {
		line, ok := s.prompt(question)
		if !ok {
			return false, false
		}
		switch util.NormalizeKey(line) {
		case "y":
			return true, true
		case "n":
			return false, true
		}
		fmt.Fprintln(s.out, "Invalid input. Please type 'y' or 'n'.")
	}
	return false, false
}

// record saves one history entry, best effort.
func (s *Session) record(city, county, outcome string) {
	if s.hist == nil {
		return
	}
	entry := &history.Entry{
		City:    util.NormalizeKey(city),
		County:  county,
		Outcome: outcome,
		Source:  history.SourceSession,
	}
	// History is a convenience; a failed write should not disturb the session.
	_ = s.hist.Save(entry)
}
