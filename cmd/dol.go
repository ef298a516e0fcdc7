// Package cmd provides command-line interface for DOL executable processing.
// This file contains commands for inspecting GameCube DOL executables.
package cmd

import (
	"fmt"
	"os"

	"github.com/hansbonini/gctools/pkg"
	"github.com/spf13/cobra"
)

// dolCmd represents the parent command for all DOL operations
var dolCmd = &cobra.Command{
	Use:   "dol",
	Short: "Process GameCube DOL executables",
	Long: `Process GameCube DOL executables (.dol format).

The input may be a standalone .dol file or a disc image, in which case
the main executable (start.dol) is used.

Commands:
  info      Show DOL header fields and sections

Examples:
  gctools dol info game.iso
  gctools dol info main.dol --order mem`,
}

// dolInfoCmd shows the DOL header and section table
var dolInfoCmd = &cobra.Command{
	Use:   "info [input_file]",
	Short: "Show DOL header fields and sections",
	Long: `Show the BSS address and size, the entry point, and the text and
data sections of a DOL executable.

The --order flag selects the section listing order: "file" (header
order, default), "dol" (by file offset) or "mem" (by memory address).
Offset and address orderings additionally show the gaps between
consecutive sections.

Example:
  gctools dol info game.iso
  gctools dol info main.dol --order mem`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := setupVerbose(cmd); err != nil {
			return err
		}
		order, err := cmd.Flags().GetString("order")
		if err != nil {
			return fmt.Errorf("error getting order flag: %w", err)
		}
		processor := pkg.NewDolProcessor()
		return processor.Info(args[0], order, os.Stdout)
	},
}

// init initializes the DOL command with its subcommands and flags
func init() {
	rootCmd.AddCommand(dolCmd)

	dolCmd.AddCommand(dolInfoCmd)

	dolInfoCmd.Flags().BoolP("verbose", "v", false, "Enable verbose output")
	dolInfoCmd.Flags().String("order", "file", "Section listing order: file, dol or mem")
}
