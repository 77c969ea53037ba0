package history

import (
	"fmt"
	"os"
	"text/tabwriter"

	"bigskydata/mtcounties/internal/tui/components"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func StatsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show the most looked up counties",
		Long: `Show the most looked up counties as a bar chart.

When stdout is not a terminal the chart is replaced with a plain table.

Examples:
  mtcounties history stats
  mtcounties history stats --limit 5`,
		RunE:         runStats,
		SilenceUsage: true,
	}

	cmd.Flags().Int("limit", 10, "Number of counties to display")

	return cmd
}

func runStats(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	if limit <= 0 {
		return fmt.Errorf("limit must be greater than 0")
	}

	repo, err := openRepo()
	if err != nil {
		return err
	}
	defer repo.Close()

	counts, err := repo.CountByCounty(limit)
	if err != nil {
		return err
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		if len(counts) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No lookups recorded.")
			return nil
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "COUNTY\tLOOKUPS")
		fmt.Fprintln(w, "------\t-------")
		for _, c := range counts {
			fmt.Fprintf(w, "%s\t%d\n", c.County, c.Count)
		}
		return w.Flush()
	}

	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}

	fmt.Fprintln(cmd.OutOrStdout(), components.CountyChart(width, counts))
	return nil
}
