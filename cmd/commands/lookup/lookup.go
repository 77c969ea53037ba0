package lookup

import (
	"fmt"
	"os"

	"bigskydata/mtcounties/internal/config"
	"bigskydata/mtcounties/internal/datasource"
	"bigskydata/mtcounties/internal/directory"
	"bigskydata/mtcounties/internal/history"
	"bigskydata/mtcounties/internal/session"
	"bigskydata/mtcounties/internal/tui"
	"bigskydata/mtcounties/internal/userstore"
	"bigskydata/mtcounties/internal/util"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// NewCommand returns the "lookup" command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup",
		Short: "Look up a city's county and license plate prefix",
		Long: `Look up which Montana county a city is in and the county's license
plate prefix.

Without flags, an interactive session starts: a full-screen app when running
in a terminal, or a line-based prompt loop otherwise (also with --plain or
when the ACCESSIBLE environment variable is set). Cities the directory does
not know can be added during the session and are saved for future runs.

Examples:
  mtcounties lookup                  # interactive session
  mtcounties lookup --city Missoula  # one-shot lookup
  mtcounties lookup --plain          # line-based session`,
		RunE:         runLookup,
		SilenceUsage: true,
	}

	cmd.Flags().String("city", "", "City name to look up (non-interactive)")
	cmd.Flags().Bool("plain", false, "Use the line-based session instead of the full-screen app")

	return cmd
}

func runLookup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	userPath := cfg.UserStoreFile
	if userPath == "" {
		userPath, err = userstore.DefaultPath()
		if err != nil {
			return err
		}
	}

	interactive := term.IsTerminal(int(os.Stdout.Fd()))

	dir, warnings, err := loadDirectory(cmd, cfg.ReferenceFile, userPath, interactive)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
	}

	hist := openHistory(cmd, cfg)
	if hist != nil {
		defer hist.Close()
	}

	cityFlag, _ := cmd.Flags().GetString("city")
	if cityFlag != "" {
		return lookupOnce(cmd, dir, hist, cityFlag)
	}

	plain, _ := cmd.Flags().GetBool("plain")
	accessible := os.Getenv("ACCESSIBLE") != ""
	if interactive && !plain && !accessible {
		return tui.RunLookup(dir, userPath, hist)
	}

	s := session.New(session.Options{
		Directory:     dir,
		UserStorePath: userPath,
		History:       hist,
		In:            cmd.InOrStdin(),
		Out:           cmd.OutOrStdout(),
	})
	return s.Run()
}

// loadDirectory reads and merges both data sources, behind a spinner when
// running interactively.
func loadDirectory(cmd *cobra.Command, refPath, userPath string, interactive bool) (directory.Directory, []userstore.Warning, error) {
	if !interactive {
		return datasource.Load(cmd.Context(), refPath, userPath)
	}

	var (
		dir      directory.Directory
		warnings []userstore.Warning
		loadErr  error
	)
	spinErr := spinner.New().
		Title("Loading county data...").
		Accessible(os.Getenv("ACCESSIBLE") != "").
		Output(cmd.ErrOrStderr()).
		Action(func() {
			dir, warnings, loadErr = datasource.Load(cmd.Context(), refPath, userPath)
		}).
		Run()
	if spinErr != nil {
		return nil, nil, spinErr
	}
	return dir, warnings, loadErr
}

// openHistory opens the lookup history, which is optional: a failure only
// disables recording.
func openHistory(cmd *cobra.Command, cfg *config.Config) history.Repository {
	var (
		repo *history.SQLiteRepository
		err  error
	)
	if cfg.HistoryDB != "" {
		repo, err = history.OpenAt(cfg.HistoryDB)
	} else {
		repo, err = history.Open()
	}
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: lookup history unavailable: %v\n", err)
		return nil
	}
	return repo
}

// lookupOnce handles --city: print the result line on a hit, fail on a miss.
func lookupOnce(cmd *cobra.Command, dir directory.Directory, hist history.Repository, city string) error {
	if err := util.ValidateName(city); err != nil {
		return err
	}

	rec, found := dir.Lookup(city)
	if !found {
		record(hist, city, "", history.OutcomeMiss)
		return fmt.Errorf("%q: %w; run \"mtcounties directory add %s\" to add it", city, directory.ErrNotFound, city)
	}

	record(hist, city, rec.County, history.OutcomeHit)
	fmt.Fprintln(cmd.OutOrStdout(), rec.Summary())
	return nil
}

func record(hist history.Repository, city, county, outcome string) {
	if hist == nil {
		return
	}
	_ = hist.Save(&history.Entry{
		City:    util.NormalizeKey(city),
		County:  county,
		Outcome: outcome,
		Source:  history.SourceCLI,
	})
}
