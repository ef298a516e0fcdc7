package pkg

import (
	"io"
)

// IsoProcessor defines the disc image operations surfaced to the CLI.
// Mutating operations (Inject, Remove, Rename) load the image, mutate the
// in-memory tree and rebuild a complete new image; they never patch an
// image in place.
type IsoProcessor interface {
	Info(inputFile string, writer io.Writer, asYAML bool) error
	List(inputFile, dir string, showSize bool, writer io.Writer) error
	Dump(inputFile, outputDir string) error
	Extract(inputFile, internalPath, outputFile string) error
	Inject(inputFile, internalPath, srcFile, outputFile string, alignment uint32) error
	Remove(inputFile, internalPath, outputFile string, alignment uint32) error
	Rename(inputFile, internalPath, newName, outputFile string, alignment uint32) error
}

// BannerProcessor defines operations on banner (.bnr) files, either
// standalone or embedded in a disc image
type BannerProcessor interface {
	Info(inputFile string, writer io.Writer, asYAML bool) error
	Export(inputFile, outputFile string) error
}

// DolProcessor defines operations on DOL executables, either standalone
// or embedded in a disc image
type DolProcessor interface {
	Info(inputFile, order string, writer io.Writer) error
}
