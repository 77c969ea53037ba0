package config

import (
	"bigskydata/mtcounties/internal/config"

	"github.com/spf13/cobra"
)

// NewCommand returns the "config" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage mtcounties configuration",
		Long: "View and modify persistent mtcounties settings.\n\n" +
			"Configuration is stored at ~/.config/mtcounties/config.json.\n\n" +
			config.KeysHelp(),
	}

	cmd.AddCommand(SetCommand())
	cmd.AddCommand(GetCommand())

	return cmd
}
