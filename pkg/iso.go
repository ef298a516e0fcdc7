// Package pkg provides functionality for processing GameCube disc images.
// This file contains the disc image processor implementing the CLI
// operations: info, ls, dump, extract, inject, remove and rename.
package pkg

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hansbonini/gctools/pkg/common"
	"github.com/hansbonini/gctools/pkg/gamecube"
)

// IsoFileProcessor implements the IsoProcessor interface
type IsoFileProcessor struct{}

// NewIsoProcessor creates a new disc image processor instance
func NewIsoProcessor() *IsoFileProcessor {
	return &IsoFileProcessor{}
}

func (p *IsoFileProcessor) loadImage(inputFile string) (*gamecube.IsoFile, error) {
	data, err := os.ReadFile(inputFile)
	if err != nil {
		return nil, common.FormatError(common.ErrFailedToOpenImage, err)
	}
	iso, err := gamecube.Load(data)
	if err != nil {
		return nil, common.FormatError(common.ErrFailedToParseImage, err)
	}
	common.LogInfo(common.InfoImageLoaded, inputFile, len(data), iso.Root.CountEntries())
	return iso, nil
}

func (p *IsoFileProcessor) writeImage(data []byte, outputFile string) error {
	if err := os.WriteFile(outputFile, data, 0o644); err != nil {
		return common.FormatError(common.ErrFailedToWriteImage, err)
	}
	common.LogInfo(common.InfoImageRebuilt, outputFile, len(data))
	return nil
}

// Info prints the disc header, FST layout and apploader information
func (p *IsoFileProcessor) Info(inputFile string, writer io.Writer, asYAML bool) error {
	iso, err := p.loadImage(inputFile)
	if err != nil {
		return err
	}
	if asYAML {
		return ExportIsoInfoYAML(iso, writer)
	}
	return ExportIsoInfoText(iso, writer)
}

// List prints the ordered children of a directory inside the image.
// Directories are marked with a trailing slash; child order is disc order.
func (p *IsoFileProcessor) List(inputFile, dir string, showSize bool, writer io.Writer) error {
	iso, err := p.loadImage(inputFile)
	if err != nil {
		return err
	}
	node, err := iso.Root.FindByPath(dir)
	if err != nil {
		return common.FormatError(common.ErrInternalPathNotFound, err)
	}
	if !node.IsDir() {
		return fmt.Errorf("%s: %s", common.ErrInternalPathNotDir, dir)
	}
	for _, child := range node.Children {
		name := child.Name
		if child.IsDir() {
			name += "/"
		}
		if showSize && !child.IsDir() {
			fmt.Fprintf(writer, "%-48s %10d\n", name, child.Size())
		} else {
			fmt.Fprintln(writer, name)
		}
	}
	return nil
}

// Dump extracts every file of the image into outputDir, preserving the
// directory structure, and the system area pseudo-files into a "sys"
// subdirectory
func (p *IsoFileProcessor) Dump(inputFile, outputDir string) error {
	iso, err := p.loadImage(inputFile)
	if err != nil {
		return err
	}

	extracted := 0
	index := 0
	err = iso.Root.Walk(func(node *gamecube.Node) error {
		target := filepath.Join(outputDir, filepath.FromSlash(node.Path()))
		if node.IsDir() {
			if node.Path() == "" {
				target = outputDir
			}
			common.LogDebug(common.DebugDirEntry, index, node.Path())
			index++
			return os.MkdirAll(target, 0o750)
		}
		data, err := iso.ExtractFile(node)
		if err != nil {
			return common.FormatError(common.ErrFailedToExtractFile, err)
		}
		common.LogDebug(common.DebugFileEntry, index, fileOffset(node), node.Size(), node.Path())
		index++
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return common.FormatError(common.ErrFailedToCreateOutput, err)
		}
		extracted++
		return nil
	})
	if err != nil {
		return err
	}
	common.LogInfo(common.InfoFilesExtracted, extracted, outputDir)

	sysDir := filepath.Join(outputDir, "sys")
	if err := os.MkdirAll(sysDir, 0o750); err != nil {
		return common.FormatError(common.ErrFailedToCreateOutput, err)
	}
	for _, sys := range iso.SystemFiles() {
		data, err := iso.ExtractSystemFile(sys)
		if err != nil {
			return common.FormatError(common.ErrFailedToExtractFile, err)
		}
		if err := os.WriteFile(filepath.Join(sysDir, sys.Name), data, 0o644); err != nil {
			return common.FormatError(common.ErrFailedToCreateOutput, err)
		}
	}
	common.LogInfo(common.InfoSystemExtracted, len(iso.SystemFiles()), sysDir)
	return nil
}

// Extract writes a single file from the image (FST entry or system
// pseudo-file) to outputFile
func (p *IsoFileProcessor) Extract(inputFile, internalPath, outputFile string) error {
	iso, err := p.loadImage(inputFile)
	if err != nil {
		return err
	}
	data, err := iso.ExtractPath(internalPath)
	if err != nil {
		return common.FormatError(common.ErrFailedToExtractFile, err)
	}
	if err := os.WriteFile(outputFile, data, 0o644); err != nil {
		return common.FormatError(common.ErrFailedToCreateOutput, err)
	}
	common.LogInfo(common.InfoFileExtracted, internalPath, outputFile, len(data))
	return nil
}

// Inject replaces the content of an internal file with the bytes of
// srcFile, creating the file (and missing parent directories) when it
// does not exist, then rebuilds the image into outputFile
func (p *IsoFileProcessor) Inject(inputFile, internalPath, srcFile, outputFile string, alignment uint32) error {
	iso, err := p.loadImage(inputFile)
	if err != nil {
		return err
	}
	content, err := os.ReadFile(srcFile)
	if err != nil {
		return common.FormatError(common.ErrFailedToReadInput, err)
	}

	node, err := iso.Root.FindByPath(internalPath)
	switch {
	case err == nil:
		if node.IsDir() {
			return fmt.Errorf("%s: %s", common.ErrInternalPathNotFile, internalPath)
		}
		if err := node.ReplaceContent(content); err != nil {
			return err
		}
	case errors.Is(err, gamecube.ErrNotFound):
		if err := insertFileAt(iso.Root, internalPath, content); err != nil {
			return err
		}
	default:
		return err
	}
	common.LogInfo(common.InfoFileInjected, srcFile, internalPath, len(content))

	return p.rebuildTo(iso, outputFile, alignment)
}

// Remove deletes an internal file or directory and rebuilds the image
// into outputFile
func (p *IsoFileProcessor) Remove(inputFile, internalPath, outputFile string, alignment uint32) error {
	iso, err := p.loadImage(inputFile)
	if err != nil {
		return err
	}
	node, err := iso.Root.FindByPath(internalPath)
	if err != nil {
		return common.FormatError(common.ErrInternalPathNotFound, err)
	}
	if err := node.Remove(); err != nil {
		return err
	}
	common.LogInfo(common.InfoFileRemoved, internalPath)

	return p.rebuildTo(iso, outputFile, alignment)
}

// Rename changes the name of an internal file or directory and rebuilds
// the image into outputFile
func (p *IsoFileProcessor) Rename(inputFile, internalPath, newName, outputFile string, alignment uint32) error {
	iso, err := p.loadImage(inputFile)
	if err != nil {
		return err
	}
	node, err := iso.Root.FindByPath(internalPath)
	if err != nil {
		return common.FormatError(common.ErrInternalPathNotFound, err)
	}
	if err := node.Rename(newName); err != nil {
		return err
	}
	common.LogInfo(common.InfoFileRenamed, internalPath, newName)

	return p.rebuildTo(iso, outputFile, alignment)
}

func (p *IsoFileProcessor) rebuildTo(iso *gamecube.IsoFile, outputFile string, alignment uint32) error {
	output, err := iso.Rebuild(gamecube.RebuildOptions{Alignment: alignment})
	if err != nil {
		return common.FormatError(common.ErrFailedToRebuildImage, err)
	}
	return p.writeImage(output, outputFile)
}

// insertFileAt creates a file at a slash-separated path below root,
// creating intermediate directories as needed
func insertFileAt(root *gamecube.Node, path string, content []byte) error {
	segments := make([]string, 0)
	for _, segment := range strings.Split(path, "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	if len(segments) == 0 {
		return fmt.Errorf("empty internal path")
	}
	current := root
	for _, segment := range segments[:len(segments)-1] {
		next := current.Child(segment)
		if next == nil {
			created, err := current.InsertDir(segment)
			if err != nil {
				return err
			}
			next = created
		}
		if !next.IsDir() {
			return fmt.Errorf("%w: %s is a file", gamecube.ErrNameCollision, segment)
		}
		current = next
	}
	_, err := current.InsertFile(segments[len(segments)-1], content)
	return err
}

func fileOffset(node *gamecube.Node) uint32 {
	if borrowed, ok := node.Source.(gamecube.BorrowedSource); ok {
		return borrowed.Offset
	}
	return 0
}
