// Package cmd provides command-line interface functionality for GCTools.
// GCTools is a collection of utilities for inspecting and modifying
// Nintendo GameCube disc images.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
// It provides the main entry point for the GCTools application.
var rootCmd = &cobra.Command{
	Use:   "gctools",
	Short: "Tools for inspecting and modifying GameCube disc images",
	Long: `GCTools - A collection of utilities for inspecting and modifying
Nintendo GameCube disc images (.iso).

Currently supports:
  - ISO disc images (info/ls/dump/extract/inject/remove/rename)
  - Banner files (metadata and 96x32 image export)
  - DOL executables (header and section info)

Examples:
  gctools iso info game.iso
  gctools iso ls game.iso audio/us
  gctools iso dump game.iso ./output/
  gctools iso extract game.iso opening.bnr opening.bnr
  gctools iso inject game.iso files/stage.dat stage.dat -o modified.iso
  gctools banner export game.iso banner.png
  gctools dol info game.iso --order mem

Use 'gctools [command] --help' for more information about a command.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main() and serves as the entry point for command execution.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
