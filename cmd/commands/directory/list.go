package directory

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"bigskydata/mtcounties/internal/config"
	"bigskydata/mtcounties/internal/datasource"
	"bigskydata/mtcounties/internal/userstore"

	"github.com/spf13/cobra"
)

// ListCommand returns the "directory list" command.
func ListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every known city",
		Long: `List the merged city directory sorted by city name.

Examples:
  mtcounties directory list
  mtcounties directory list -o json`,
		RunE:         runList,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")

	return cmd
}

// listEntry is the JSON shape for one directory row.
type listEntry struct {
	City   string `json:"city"`
	County string `json:"county"`
	Prefix string `json:"prefix"`
}

func runList(cmd *cobra.Command, args []string) error {
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

	records := dir.Records()

	output, _ := cmd.Flags().GetString("output")
	if output == "json" {
		entries := make([]listEntry, len(records))
		for i, rec := range records {
			entries[i] = listEntry{City: rec.City, County: rec.County, Prefix: rec.Prefix.String()}
		}
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(entries)
	}
	if output != "table" {
		return fmt.Errorf("unsupported output format %q", output)
	}

	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No cities found.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "CITY\tCOUNTY\tPREFIX")
	fmt.Fprintln(w, "----\t------\t------")
	for _, rec := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\n", rec.City, rec.County, rec.Prefix)
	}

	return w.Flush()
}
