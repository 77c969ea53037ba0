package cmd

import (
	"os"

	cfgcmd "bigskydata/mtcounties/cmd/commands/config"
	dircmd "bigskydata/mtcounties/cmd/commands/directory"
	histcmd "bigskydata/mtcounties/cmd/commands/history"
	"bigskydata/mtcounties/cmd/commands/lookup"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
func rootCmd() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "mtcounties",
		Short: "A CLI tool for looking up Montana counties and license plate prefixes",
		Long: `mtcounties maps Montana city names to their county and license-plate
prefix. It ships with a statewide dataset of county seats and lets you add
cities it does not know yet; added cities are saved and available in every
later session.

Quick start:
  mtcounties lookup                # Interactive lookup session
  mtcounties lookup --city Butte   # One-shot lookup
  mtcounties directory list        # Show every known city
  mtcounties history stats         # Your most looked-up counties`,
	}

	cmd.AddCommand(lookup.NewCommand())
	cmd.AddCommand(dircmd.NewCommand())
	cmd.AddCommand(histcmd.NewCommand())
	cmd.AddCommand(cfgcmd.NewCommand())

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	var root = rootCmd()
	err := root.Execute()
	if err != nil {
		os.Exit(1)
	}
}
