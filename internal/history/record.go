package history

import "time"

// Lookup outcomes.
const (
	OutcomeHit   = "hit"
	OutcomeMiss  = "miss"
	OutcomeAdded = "added"
)

// Lookup sources.
const (
	SourceSession = "session"
	SourceTUI     = "tui"
	SourceCLI     = "cli"
)

// Entry is one recorded lookup or add.
type Entry struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	City      string    `json:"city"`
	County    string    `json:"county,omitempty"`
	Outcome   string    `json:"outcome"`
	Source    string    `json:"source"`
}

// CountyCount pairs a county with its number of recorded lookups.
type CountyCount struct {
	County string
	Count  int64
}
