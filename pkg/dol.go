// Package pkg provides functionality for processing GameCube disc images.
// This file contains the DOL executable processor, accepting either a
// standalone .dol file or a disc image containing one.
package pkg

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hansbonini/gctools/pkg/common"
	"github.com/hansbonini/gctools/pkg/gamecube"
)

// DolFileProcessor implements the DolProcessor interface
type DolFileProcessor struct{}

// NewDolProcessor creates a new DOL processor instance
func NewDolProcessor() *DolFileProcessor {
	return &DolFileProcessor{}
}

func (p *DolFileProcessor) loadDol(inputFile string) (*gamecube.DolFile, error) {
	switch {
	case strings.HasSuffix(inputFile, ".iso"):
		data, err := os.ReadFile(inputFile)
		if err != nil {
			return nil, common.FormatError(common.ErrFailedToOpenImage, err)
		}
		iso, err := gamecube.Load(data)
		if err != nil {
			return nil, common.FormatError(common.ErrFailedToParseImage, err)
		}
		dol, err := iso.DolFile()
		if err != nil {
			return nil, common.FormatError(common.ErrFailedToDecodeDol, err)
		}
		return dol, nil
	case strings.HasSuffix(inputFile, ".dol"):
		data, err := os.ReadFile(inputFile)
		if err != nil {
			return nil, common.FormatError(common.ErrFailedToReadInput, err)
		}
		dol, err := gamecube.DecodeDol(data)
		if err != nil {
			return nil, common.FormatError(common.ErrFailedToDecodeDol, err)
		}
		return dol, nil
	default:
		return nil, fmt.Errorf("%s: %s (want .iso or .dol)", common.ErrUnsupportedExtension, inputFile)
	}
}

// Info prints the DOL BSS/entry point fields and its sections. Order
// selects the section listing order: "file" (header order), "dol"
// (by file offset) or "mem" (by memory address); offset and address
// orderings additionally show the gaps between consecutive sections.
func (p *DolFileProcessor) Info(inputFile, order string, writer io.Writer) error {
	dol, err := p.loadDol(inputFile)
	if err != nil {
		return err
	}

	fmt.Fprintf(writer, "BSS Memory Address: 0x%X\n", dol.BssAddress)
	fmt.Fprintf(writer, "BSS Size: 0x%X\n", dol.BssSize)
	fmt.Fprintf(writer, "Entry Point: 0x%X\n", dol.EntryPoint)

	var sections []*gamecube.DolSection
	switch order {
	case "", "file":
		sections = dol.Sections
	case "dol":
		sections = dol.SectionsByOffset()
	case "mem":
		sections = dol.SectionsByAddress()
	default:
		return fmt.Errorf("unknown section order %q (want file, dol or mem)", order)
	}

	fmt.Fprintln(writer, "\nSections:")
	for i, section := range sections {
		fmt.Fprintf(writer, "%s %d - DOL: 0x%X to 0x%X, Memory: 0x%X to 0x%X (size: 0x%X)\n",
			section.Type, section.Index, section.Offset, section.EndOffset(),
			section.Address, section.EndAddress(), section.Size)
		if i+1 >= len(sections) {
			continue
		}
		if order == "dol" {
			if gap := int64(sections[i+1].Offset) - int64(section.EndOffset()); gap > 0 {
				fmt.Fprintf(writer, "Gap (DOL): 0x%X\n", gap)
			}
		}
		if order == "mem" {
			if gap := int64(sections[i+1].Address) - int64(section.EndAddress()); gap > 0 {
				fmt.Fprintf(writer, "Gap (memory): 0x%X\n", gap)
			}
		}
	}
	return nil
}
