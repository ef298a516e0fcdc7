// Package pkg provides functionality for processing GameCube disc images.
// This file contains exporters for converting image metadata to YAML and
// banner pixel data to PNG.
package pkg

import (
	"fmt"
	"image/png"
	"io"
	"os"

	"github.com/hansbonini/gctools/pkg/common"
	"github.com/hansbonini/gctools/pkg/gamecube"
	"gopkg.in/yaml.v3"
)

// IsoInfoExport is the YAML shape of `iso info`
type IsoInfoExport struct {
	GameCode   string `yaml:"game_code"`
	MakerCode  string `yaml:"maker_code"`
	DiscID     uint8  `yaml:"disc_id"`
	Version    uint8  `yaml:"version"`
	GameName   string `yaml:"game_name"`
	DolOffset  string `yaml:"dol_offset"`
	DolSize    string `yaml:"dol_size"`
	FstOffset  string `yaml:"fst_offset"`
	FstSize    string `yaml:"fst_size"`
	MaxFstSize string `yaml:"max_fst_size"`
	FstEntries int    `yaml:"fst_entries"`
	TotalFiles int    `yaml:"total_files"`

	Apploader ApploaderExport `yaml:"apploader"`
}

// ApploaderExport is the apploader section of IsoInfoExport
type ApploaderExport struct {
	Date        string `yaml:"date"`
	EntryPoint  string `yaml:"entry_point"`
	CodeSize    string `yaml:"code_size"`
	TrailerSize string `yaml:"trailer_size"`
}

// BannerInfoExport is the YAML shape of `banner info`
type BannerInfoExport struct {
	Magic string             `yaml:"magic"`
	Meta  []BannerMetaExport `yaml:"metadata"`
}

// BannerMetaExport is one metadata record of BannerInfoExport
type BannerMetaExport struct {
	GameName          string `yaml:"game_name"`
	DeveloperName     string `yaml:"developer_name"`
	FullGameTitle     string `yaml:"full_game_title"`
	FullDeveloperName string `yaml:"full_developer_name"`
	GameDescription   string `yaml:"game_description"`
}

func hex32(value uint32) string {
	return fmt.Sprintf("0x%X", value)
}

func isoInfoExport(iso *gamecube.IsoFile) IsoInfoExport {
	return IsoInfoExport{
		GameCode:   iso.Header.GameCode,
		MakerCode:  iso.Header.MakerCode,
		DiscID:     iso.Header.DiscID,
		Version:    iso.Header.Version,
		GameName:   iso.Header.GameName,
		DolOffset:  hex32(iso.Header.DolOffset),
		DolSize:    hex32(iso.Header.DolSizeFromLayout()),
		FstOffset:  hex32(iso.Header.FstOffset),
		FstSize:    hex32(iso.Header.FstSize),
		MaxFstSize: hex32(iso.Header.MaxFstSize),
		FstEntries: iso.Root.CountEntries(),
		TotalFiles: iso.Root.CountFiles(),
		Apploader: ApploaderExport{
			Date:        iso.Apploader.Date,
			EntryPoint:  hex32(iso.Apploader.EntryPoint),
			CodeSize:    hex32(iso.Apploader.CodeSize),
			TrailerSize: hex32(iso.Apploader.TrailerSize),
		},
	}
}

// ExportIsoInfoYAML writes the image header information as YAML
func ExportIsoInfoYAML(iso *gamecube.IsoFile, writer io.Writer) error {
	encoder := yaml.NewEncoder(writer)
	defer encoder.Close()
	return encoder.Encode(isoInfoExport(iso))
}

// ExportIsoInfoText writes the image header information as plain text
func ExportIsoInfoText(iso *gamecube.IsoFile, writer io.Writer) error {
	info := isoInfoExport(iso)
	lines := []struct {
		label string
		value interface{}
	}{
		{"Game Code", info.GameCode},
		{"Maker Code", info.MakerCode},
		{"Disc ID", info.DiscID},
		{"Version", info.Version},
		{"Game Name", info.GameName},
		{"DOL Offset", info.DolOffset},
		{"DOL Size", info.DolSize},
		{"FST Offset", info.FstOffset},
		{"FST Size", info.FstSize},
		{"Max FST Size", info.MaxFstSize},
		{"FST Entries", info.FstEntries},
		{"Total Files", info.TotalFiles},
		{"Apploader Date", info.Apploader.Date},
		{"Apploader Entry Point", info.Apploader.EntryPoint},
		{"Apploader Code Size", info.Apploader.CodeSize},
		{"Apploader Trailer Size", info.Apploader.TrailerSize},
	}
	for _, line := range lines {
		if _, err := fmt.Fprintf(writer, "%-22s: %v\n", line.label, line.value); err != nil {
			return err
		}
	}
	return nil
}

func bannerInfoExport(banner *gamecube.BannerFile) BannerInfoExport {
	info := BannerInfoExport{Magic: banner.Magic}
	for _, meta := range banner.Meta {
		info.Meta = append(info.Meta, BannerMetaExport{
			GameName:          meta.GameName,
			DeveloperName:     meta.DeveloperName,
			FullGameTitle:     meta.FullGameTitle,
			FullDeveloperName: meta.FullDeveloperName,
			GameDescription:   meta.GameDescription,
		})
	}
	return info
}

// ExportBannerInfoYAML writes banner metadata as YAML
func ExportBannerInfoYAML(banner *gamecube.BannerFile, writer io.Writer) error {
	encoder := yaml.NewEncoder(writer)
	defer encoder.Close()
	return encoder.Encode(bannerInfoExport(banner))
}

// ExportBannerInfoText writes banner metadata as plain text
func ExportBannerInfoText(banner *gamecube.BannerFile, writer io.Writer) error {
	if _, err := fmt.Fprintf(writer, "Magic: %s\n", banner.Magic); err != nil {
		return err
	}
	for i, meta := range banner.Meta {
		fmt.Fprintf(writer, "\nMetadata %d:\n", i)
		fmt.Fprintf(writer, "  Game Name          : %s\n", meta.GameName)
		fmt.Fprintf(writer, "  Developer Name     : %s\n", meta.DeveloperName)
		fmt.Fprintf(writer, "  Full Game Title    : %s\n", meta.FullGameTitle)
		fmt.Fprintf(writer, "  Full Developer Name: %s\n", meta.FullDeveloperName)
		fmt.Fprintf(writer, "  Game Description   : %s\n", meta.GameDescription)
	}
	return nil
}

// ExportBannerPNG decodes tiled pixel data and writes it as a PNG
func ExportBannerPNG(decoder common.TileDecoder, outputFile string) error {
	img, err := decoder.DecodeImage()
	if err != nil {
		return common.FormatError(common.ErrFailedToDecodeBanner, err)
	}
	file, err := os.Create(outputFile)
	if err != nil {
		return common.FormatError(common.ErrFailedToCreateOutput, err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	common.LogInfo(common.InfoBannerExported, outputFile)
	return nil
}
