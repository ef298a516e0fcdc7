// Package gamecube provides GameCube-specific disc image structures and
// functionality. This file contains the banner (.bnr) codec: metadata
// records and the RGB5A1 tiled pixel decode.
//
// Format reference: http://hitmen.c02.at/files/yagcd/yagcd/chap14.html#sec14.1
package gamecube

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/hansbonini/gctools/pkg/common"
)

// Banner image format constants
const (
	BannerWidth    = 96
	BannerHeight   = 32
	BannerTileSize = 4 // pixels are stored in 4x4 tiles

	bannerPixelOffset = 0x20
	bannerPixelSize   = BannerWidth * BannerHeight * 2 // 2 bytes per pixel
	bannerMetaOffset  = 0x1820
	bannerMetaSize    = 0x140
)

// RGB5A1 is one banner pixel: 1 alpha bit, then 5 bits each of red,
// green and blue, stored big-endian
type RGB5A1 uint16

// ToRGBA expands the packed pixel to 8-bit RGBA. Color channels are
// scaled from 5 bits and multiplied by the alpha bit, which matches how
// Dolphin and GC Rebuilder render banners.
func (p RGB5A1) ToRGBA() color.RGBA {
	const maxComponent = (1 << 5) - 1
	a := uint8(p >> 15)
	r := uint8(uint32(p>>10&maxComponent) * 255 / maxComponent)
	g := uint8(uint32(p>>5&maxComponent) * 255 / maxComponent)
	b := uint8(uint32(p&maxComponent) * 255 / maxComponent)
	return color.RGBA{R: r * a, G: g * a, B: b * a, A: a * 255}
}

// BannerMeta contains the textual metadata of a banner
type BannerMeta struct {
	GameName          string
	DeveloperName     string
	FullGameTitle     string
	FullDeveloperName string
	GameDescription   string
}

// BannerFile represents a decoded .bnr file. NTSC banners ("BNR1") carry
// one metadata record; PAL banners ("BNR2") carry one per language.
type BannerFile struct {
	Magic     string
	PixelData []byte
	Meta      []BannerMeta
}

// DecodeBanner parses the bytes of an opening.bnr file
func DecodeBanner(data []byte) (*BannerFile, error) {
	reader := bytes.NewReader(data)

	magicBytes, err := common.ReadBytes(reader, 4)
	if err != nil {
		return nil, fmt.Errorf("banner truncated: %d bytes", len(data))
	}
	magic := string(magicBytes)
	if magic != "BNR1" && magic != "BNR2" {
		return nil, fmt.Errorf("invalid banner magic: expected 'BNR1' or 'BNR2', got %q", magic)
	}

	if err := common.SkipBytes(reader, bannerPixelOffset-4); err != nil {
		return nil, fmt.Errorf("banner truncated: %d bytes", len(data))
	}
	pixelData, err := common.ReadBytes(reader, bannerPixelSize)
	if err != nil {
		return nil, fmt.Errorf("banner truncated: %d bytes", len(data))
	}

	banner := &BannerFile{
		Magic:     magic,
		PixelData: pixelData,
	}

	for offset := bannerMetaOffset; offset+bannerMetaSize <= len(data); offset += bannerMetaSize {
		banner.Meta = append(banner.Meta, BannerMeta{
			GameName:          common.ZeroTerminated(data, offset+0x0, 0x20),
			DeveloperName:     common.ZeroTerminated(data, offset+0x20, 0x20),
			FullGameTitle:     common.ZeroTerminated(data, offset+0x40, 0x40),
			FullDeveloperName: common.ZeroTerminated(data, offset+0x80, 0x40),
			GameDescription:   common.ZeroTerminated(data, offset+0xC0, 0x80),
		})
	}
	if len(banner.Meta) == 0 {
		return nil, fmt.Errorf("banner has no metadata record")
	}

	return banner, nil
}

// DecodeImage converts the tiled RGB5A1 pixel data to a 96x32 RGBA image
func (b *BannerFile) DecodeImage() (*image.RGBA, error) {
	if len(b.PixelData) != bannerPixelSize {
		return nil, fmt.Errorf("banner pixel data has %d bytes, want %d", len(b.PixelData), bannerPixelSize)
	}
	img := image.NewRGBA(image.Rect(0, 0, BannerWidth, BannerHeight))
	reader := bytes.NewReader(b.PixelData)
	for i := 0; i < BannerWidth*BannerHeight; i++ {
		value, err := common.ReadUint16BE(reader)
		if err != nil {
			return nil, err
		}
		x, y := common.TilePixelPosition(i, BannerTileSize, BannerWidth)
		img.SetRGBA(x, y, RGB5A1(value).ToRGBA())
	}
	return img, nil
}
