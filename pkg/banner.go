// Package pkg provides functionality for processing GameCube disc images.
// This file contains the banner processor, accepting either a standalone
// .bnr file or a disc image containing one.
package pkg

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hansbonini/gctools/pkg/common"
	"github.com/hansbonini/gctools/pkg/gamecube"
)

// BannerFileProcessor implements the BannerProcessor interface
type BannerFileProcessor struct{}

// NewBannerProcessor creates a new banner processor instance
func NewBannerProcessor() *BannerFileProcessor {
	return &BannerFileProcessor{}
}

func (p *BannerFileProcessor) loadBanner(inputFile string) (*gamecube.BannerFile, error) {
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
		banner, err := iso.BannerFile()
		if err != nil {
			return nil, common.FormatError(common.ErrFailedToDecodeBanner, err)
		}
		return banner, nil
	case strings.HasSuffix(inputFile, ".bnr"):
		data, err := os.ReadFile(inputFile)
		if err != nil {
			return nil, common.FormatError(common.ErrFailedToReadInput, err)
		}
		banner, err := gamecube.DecodeBanner(data)
		if err != nil {
			return nil, common.FormatError(common.ErrFailedToDecodeBanner, err)
		}
		return banner, nil
	default:
		return nil, fmt.Errorf("%s: %s (want .iso or .bnr)", common.ErrUnsupportedExtension, inputFile)
	}
}

// Info prints the banner magic and metadata records
func (p *BannerFileProcessor) Info(inputFile string, writer io.Writer, asYAML bool) error {
	banner, err := p.loadBanner(inputFile)
	if err != nil {
		return err
	}
	if asYAML {
		return ExportBannerInfoYAML(banner, writer)
	}
	return ExportBannerInfoText(banner, writer)
}

// Export decodes the banner pixel data and writes a 96x32 PNG
func (p *BannerFileProcessor) Export(inputFile, outputFile string) error {
	banner, err := p.loadBanner(inputFile)
	if err != nil {
		return err
	}
	return ExportBannerPNG(banner, outputFile)
}
