package history

import (
	"bigskydata/mtcounties/internal/config"
	"bigskydata/mtcounties/internal/history"

	"github.com/spf13/cobra"
)

// NewCommand returns the "history" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "View and manage lookup history",
		Long: "View a local record of past city lookups and prune old entries.\n\n" +
			"History is stored locally in ~/.config/mtcounties/mtcounties.db.",
		SilenceUsage: true,
	}

	cmd.AddCommand(ListCommand())
	cmd.AddCommand(PruneCommand())
	cmd.AddCommand(StatsCommand())

	return cmd
}

// openRepo opens the history database, honoring the configured override.
func openRepo() (*history.SQLiteRepository, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if cfg.HistoryDB != "" {
		return history.OpenAt(cfg.HistoryDB)
	}
	return history.Open()
}
