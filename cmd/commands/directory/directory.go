package directory

import "github.com/spf13/cobra"

// NewCommand returns the "directory" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "directory",
		Short: "Inspect and extend the city directory",
		Long: "Inspect the merged city directory (reference data plus your own\n" +
			"additions) and add new cities without starting a session.",
		SilenceUsage: true,
	}

	cmd.AddCommand(ListCommand())
	cmd.AddCommand(AddCommand())

	return cmd
}
