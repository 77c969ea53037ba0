package directory

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"bigskydata/mtcounties/internal/config"
	"bigskydata/mtcounties/internal/datasource"
	dirmodel "bigskydata/mtcounties/internal/directory"
	"bigskydata/mtcounties/internal/history"
	"bigskydata/mtcounties/internal/userstore"
	"bigskydata/mtcounties/internal/util"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// AddCommand returns the "directory add" command.
func AddCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [CITY]",
		Short: "Add a city to the directory",
		Long: `Add a city to the directory without starting a session.

The county's license plate prefix is inferred when the county is already
known; otherwise it is stored as "unknown" (or use --prefix to set it).
Missing fields are collected interactively. The entry is appended to the
user store and available in every later session.

Examples:
  mtcounties directory add                             # fully interactive
  mtcounties directory add Lolo --county Missoula --yes
  mtcounties directory add Wisdom --county Beaverhead --prefix 18 --yes`,
		Args:         cobra.MaximumNArgs(1),
		RunE:         runAdd,
		SilenceUsage: true,
	}

	cmd.Flags().String("county", "", "County the city belongs to")
	cmd.Flags().Int("prefix", 0, "License plate prefix (overrides inference)")
	cmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
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

	dir, warnings, err := datasource.Load(cmd.Context(), cfg.ReferenceFile, userPath)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
	}

	city := ""
	if len(args) > 0 {
		city = strings.TrimSpace(args[0])
	}
	county, _ := cmd.Flags().GetString("county")
	county = strings.TrimSpace(county)
	skipConfirm, _ := cmd.Flags().GetBool("yes")

	// Collect missing fields with a form, accessible-mode aware.
	if city == "" || county == "" {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return fmt.Errorf("interactive mode requires a terminal; provide CITY and --county to run non-interactively")
		}
		if err := runAddForm(&city, &county, dir); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				fmt.Fprintln(cmd.ErrOrStderr(), "Add cancelled.")
				return nil
			}
			return err
		}
	}

	if err := util.ValidateName(city); err != nil {
		return err
	}
	if err := util.ValidateName(county); err != nil {
		return err
	}

	if existing, found := dir.Lookup(city); found {
		return fmt.Errorf("city already present: %s", existing.Summary())
	}

	prefix, _ := dir.PrefixForCounty(county)
	if cmd.Flags().Changed("prefix") {
		n, _ := cmd.Flags().GetInt("prefix")
		prefix = dirmodel.KnownPrefix(n)
	}

	rec := dirmodel.Record{
		City:   util.TitleCase(city),
		County: util.TitleCase(county),
		Prefix: prefix,
	}

	if !skipConfirm {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return fmt.Errorf("confirmation requires a terminal; pass --yes to run non-interactively")
		}
		confirmed, err := confirmAdd(rec)
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				fmt.Fprintln(cmd.ErrOrStderr(), "Add cancelled.")
				return nil
			}
			return err
		}
		if !confirmed {
			fmt.Fprintln(cmd.ErrOrStderr(), "Add cancelled.")
			return nil
		}
	}

	dir.Insert(city, county, prefix)
	if err := userstore.Append(userPath, rec); err != nil {
		return err
	}
	recordAdd(cmd, cfg, rec)

	fmt.Fprintf(cmd.OutOrStdout(), "Added: %s - %s - Prefix: %s\n", rec.City, rec.County, rec.Prefix)
	return nil
}

// runAddForm collects the city and county interactively.
func runAddForm(city, county *string, dir dirmodel.Directory) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("City name").
				Value(city).
				Validate(func(s string) error {
					if err := util.ValidateName(s); err != nil {
						return err
					}
					if existing, found := dir.Lookup(s); found {
						return fmt.Errorf("already present: %s", existing.Summary())
					}
					return nil
				}),
			huh.NewInput().
				Title("County name").
				Value(county).
				Validate(util.ValidateName),
		),
	).WithAccessible(os.Getenv("ACCESSIBLE") != "").Run()
}

// confirmAdd shows the assembled entry and asks for confirmation.
func confirmAdd(rec dirmodel.Record) (bool, error) {
	confirmed := false
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Add %s - %s - Prefix: %s?", rec.City, rec.County, rec.Prefix)).
				Affirmative("Save").
				Negative("Cancel").
				Value(&confirmed),
		),
	).WithAccessible(os.Getenv("ACCESSIBLE") != "").Run()
	return confirmed, err
}

// recordAdd notes the addition in lookup history, best effort.
func recordAdd(cmd *cobra.Command, cfg *config.Config, rec dirmodel.Record) {
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
		return
	}
	defer repo.Close()

	_ = repo.Save(&history.Entry{
		City:    util.NormalizeKey(rec.City),
		County:  rec.County,
		Outcome: history.OutcomeAdded,
		Source:  history.SourceCLI,
	})
}
