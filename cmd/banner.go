// Package cmd provides command-line interface for banner file processing.
// This file contains commands for inspecting and exporting GameCube
// banner (.bnr) files.
package cmd

import (
	"fmt"
	"os"

	"github.com/hansbonini/gctools/pkg"
	"github.com/spf13/cobra"
)

// bannerCmd represents the parent command for all banner operations
var bannerCmd = &cobra.Command{
	Use:   "banner",
	Short: "Process GameCube banner files",
	Long: `Process GameCube banner files (.bnr format).

The input may be a standalone .bnr file or a disc image containing one
(the first *.bnr file in the image is used, usually "opening.bnr").

Commands:
  info      Show banner magic and metadata records
  export    Decode the banner image and write it as PNG

Examples:
  gctools banner info game.iso
  gctools banner export opening.bnr banner.png`,
}

// bannerInfoCmd shows the banner metadata
var bannerInfoCmd = &cobra.Command{
	Use:   "info [input_file]",
	Short: "Show banner metadata",
	Long: `Show the banner magic bytes and metadata records.

NTSC banners (BNR1) carry one metadata record; PAL banners (BNR2) carry
one per language.

Example:
  gctools banner info game.iso
  gctools banner info --yaml opening.bnr`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := setupVerbose(cmd); err != nil {
			return err
		}
		asYAML, err := cmd.Flags().GetBool("yaml")
		if err != nil {
			return fmt.Errorf("error getting yaml flag: %w", err)
		}
		processor := pkg.NewBannerProcessor()
		return processor.Info(args[0], os.Stdout, asYAML)
	},
}

// bannerExportCmd writes the banner image as PNG
var bannerExportCmd = &cobra.Command{
	Use:   "export [input_file] [output_file]",
	Short: "Export the banner image as PNG",
	Long: `Decode the 96x32 RGB5A1 banner image and write it as a PNG file.

Example:
  gctools banner export game.iso banner.png`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := setupVerbose(cmd); err != nil {
			return err
		}
		processor := pkg.NewBannerProcessor()
		return processor.Export(args[0], args[1])
	},
}

// init initializes the banner command with its subcommands and flags
func init() {
	rootCmd.AddCommand(bannerCmd)

	bannerCmd.AddCommand(bannerInfoCmd)
	bannerCmd.AddCommand(bannerExportCmd)

	bannerInfoCmd.Flags().BoolP("verbose", "v", false, "Enable verbose output")
	bannerInfoCmd.Flags().Bool("yaml", false, "Output information as YAML")
	bannerExportCmd.Flags().BoolP("verbose", "v", false, "Enable verbose output")
}
