// Package cmd provides command-line interface for disc image processing.
// This file contains commands for inspecting, extracting and rebuilding
// GameCube disc images.
package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/hansbonini/gctools/pkg"
	"github.com/hansbonini/gctools/pkg/common"
	"github.com/hansbonini/gctools/pkg/gamecube"
	"github.com/spf13/cobra"
)

// isoCmd represents the parent command for all disc image operations
var isoCmd = &cobra.Command{
	Use:   "iso",
	Short: "Process GameCube disc image files",
	Long: `Process GameCube disc image files (.iso format).

Commands:
  info      Show disc header, FST layout and apploader information
  ls        List the contents of a directory inside the image
  dump      Extract all files from the image
  extract   Extract a single file from the image
  inject    Replace or add a file and rebuild the image
  remove    Remove a file or directory and rebuild the image
  rename    Rename a file or directory and rebuild the image

Examples:
  gctools iso info game.iso
  gctools iso dump game.iso ./output/
  gctools iso inject game.iso files/stage.dat stage.dat -o modified.iso`,
}

// isoInfoCmd shows the disc header and FST layout
var isoInfoCmd = &cobra.Command{
	Use:   "info [input_file]",
	Short: "Show disc header and file system information",
	Long: `Show disc header, FST layout and apploader information.

Output includes the game/maker codes, disc id, version, game name, the
DOL and FST offsets and sizes, and the apploader header fields.

Example:
  gctools iso info game.iso
  gctools iso info --yaml game.iso`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := setupVerbose(cmd); err != nil {
			return err
		}
		asYAML, err := cmd.Flags().GetBool("yaml")
		if err != nil {
			return fmt.Errorf("error getting yaml flag: %w", err)
		}
		processor := pkg.NewIsoProcessor()
		return processor.Info(args[0], os.Stdout, asYAML)
	},
}

// isoLsCmd lists a directory inside the image
var isoLsCmd = &cobra.Command{
	Use:   "ls [input_file] [directory]",
	Short: "List the contents of a directory inside the image",
	Long: `List the ordered children of a directory inside the image.

Child order is disc order (the order entries appear in the FST).
Directories are shown with a trailing slash. Without a directory
argument the root is listed.

Example:
  gctools iso ls game.iso
  gctools iso ls --size game.iso audio/us`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := setupVerbose(cmd); err != nil {
			return err
		}
		showSize, err := cmd.Flags().GetBool("size")
		if err != nil {
			return fmt.Errorf("error getting size flag: %w", err)
		}
		dir := ""
		if len(args) > 1 {
			dir = args[1]
		}
		processor := pkg.NewIsoProcessor()
		return processor.List(args[0], dir, showSize, os.Stdout)
	},
}

// isoDumpCmd extracts all files from a disc image
var isoDumpCmd = &cobra.Command{
	Use:   "dump [input_file] [output_directory]",
	Short: "Extract all files from a disc image",
	Long: `Extract all files from a GameCube disc image.

This command decodes the file system table and extracts every file,
preserving the original directory structure. The system area files
(boot.bin, bi2.bin, appldr.bin, start.dol, fst.bin) are written to a
"sys" subdirectory. When verbose mode is enabled (-v), each entry is
logged with its offset, size and path.

Example:
  gctools iso dump game.iso ./output/
  gctools iso dump -v game.iso ./output/`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := setupVerbose(cmd); err != nil {
			return err
		}
		processor := pkg.NewIsoProcessor()

		fmt.Printf("Processing disc image file: %s\n", args[0])
		fmt.Printf("Output directory: %s\n", args[1])

		if err := processor.Dump(args[0], args[1]); err != nil {
			return fmt.Errorf("failed to process disc image file: %w", err)
		}

		fmt.Println("Disc image processed successfully!")
		return nil
	},
}

// isoExtractCmd extracts a single file
var isoExtractCmd = &cobra.Command{
	Use:   "extract [input_file] [internal_path] [output_file]",
	Short: "Extract a single file from a disc image",
	Long: `Extract a single file from a GameCube disc image.

The internal path may name an FST entry ("audio/us/1padv.ssm") or one
of the system area pseudo-files (boot.bin, bi2.bin, appldr.bin,
start.dol, fst.bin).

Example:
  gctools iso extract game.iso opening.bnr opening.bnr
  gctools iso extract game.iso start.dol main.dol`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := setupVerbose(cmd); err != nil {
			return err
		}
		processor := pkg.NewIsoProcessor()
		return processor.Extract(args[0], args[1], args[2])
	},
}

// isoInjectCmd replaces or adds a file and rebuilds the image
var isoInjectCmd = &cobra.Command{
	Use:   "inject [input_file] [internal_path] [source_file]",
	Short: "Replace or add a file and rebuild the image",
	Long: `Replace the content of an internal file with the bytes of a local
file, creating the file (and missing parent directories) when it does
not exist, then rebuild a complete new image.

Rebuilding reassigns every file an aligned disc offset (32 KiB by
default), re-serializes the file system table and streams the file
data into the output image. The input image is never modified.

Example:
  gctools iso inject game.iso files/stage.dat stage.dat -o modified.iso
  gctools iso inject game.iso files/stage.dat stage.dat -o modified.iso --align 0x4000`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := setupVerbose(cmd); err != nil {
			return err
		}
		output, alignment, err := rebuildFlags(cmd)
		if err != nil {
			return err
		}
		processor := pkg.NewIsoProcessor()
		return processor.Inject(args[0], args[1], args[2], output, alignment)
	},
}

// isoRemoveCmd removes a file or directory and rebuilds the image
var isoRemoveCmd = &cobra.Command{
	Use:   "remove [input_file] [internal_path]",
	Short: "Remove a file or directory and rebuild the image",
	Long: `Remove an internal file or directory (including its subtree) and
rebuild a complete new image.

Example:
  gctools iso remove game.iso movies/intro.thp -o modified.iso`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := setupVerbose(cmd); err != nil {
			return err
		}
		output, alignment, err := rebuildFlags(cmd)
		if err != nil {
			return err
		}
		processor := pkg.NewIsoProcessor()
		return processor.Remove(args[0], args[1], output, alignment)
	},
}

// isoRenameCmd renames a file or directory and rebuilds the image
var isoRenameCmd = &cobra.Command{
	Use:   "rename [input_file] [internal_path] [new_name]",
	Short: "Rename a file or directory and rebuild the image",
	Long: `Rename an internal file or directory and rebuild a complete new
image. The new name must not collide with a sibling; comparison is
case-sensitive.

Example:
  gctools iso rename game.iso files/stage.dat stage2.dat -o modified.iso`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := setupVerbose(cmd); err != nil {
			return err
		}
		output, alignment, err := rebuildFlags(cmd)
		if err != nil {
			return err
		}
		processor := pkg.NewIsoProcessor()
		return processor.Rename(args[0], args[1], args[2], output, alignment)
	},
}

// setupVerbose enables verbose mode when the flag is set
func setupVerbose(cmd *cobra.Command) error {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return fmt.Errorf("error getting verbose flag: %w", err)
	}
	common.SetVerboseMode(verbose)
	return nil
}

// rebuildFlags reads the shared flags of the rebuilding subcommands
func rebuildFlags(cmd *cobra.Command) (output string, alignment uint32, err error) {
	output, err = cmd.Flags().GetString("output")
	if err != nil {
		return "", 0, fmt.Errorf("error getting output flag: %w", err)
	}
	if output == "" {
		return "", 0, fmt.Errorf("an output file is required (-o)")
	}
	alignValue, err := cmd.Flags().GetString("align")
	if err != nil {
		return "", 0, fmt.Errorf("error getting align flag: %w", err)
	}
	parsed, err := strconv.ParseUint(alignValue, 0, 32)
	if err != nil {
		return "", 0, fmt.Errorf("invalid alignment %q: %w", alignValue, err)
	}
	return output, uint32(parsed), nil
}

// init initializes the ISO command with its subcommands and flags
func init() {
	rootCmd.AddCommand(isoCmd)

	isoCmd.AddCommand(isoInfoCmd)
	isoCmd.AddCommand(isoLsCmd)
	isoCmd.AddCommand(isoDumpCmd)
	isoCmd.AddCommand(isoExtractCmd)
	isoCmd.AddCommand(isoInjectCmd)
	isoCmd.AddCommand(isoRemoveCmd)
	isoCmd.AddCommand(isoRenameCmd)

	for _, sub := range []*cobra.Command{isoInfoCmd, isoLsCmd, isoDumpCmd,
		isoExtractCmd, isoInjectCmd, isoRemoveCmd, isoRenameCmd} {
		sub.Flags().BoolP("verbose", "v", false, "Enable verbose output with detailed file information")
	}

	isoInfoCmd.Flags().Bool("yaml", false, "Output information as YAML")
	isoLsCmd.Flags().Bool("size", false, "Additionally display file sizes")

	for _, sub := range []*cobra.Command{isoInjectCmd, isoRemoveCmd, isoRenameCmd} {
		sub.Flags().StringP("output", "o", "", "Output image file (required)")
		sub.Flags().String("align", fmt.Sprintf("0x%X", gamecube.DefaultAlignment),
			"File alignment of the rebuilt image (power of two)")
	}
}
