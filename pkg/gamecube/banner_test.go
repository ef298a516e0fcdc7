// Package gamecube provides tests for the banner codec
package gamecube

import (
	"encoding/binary"
	"image/color"
	"testing"

	"github.com/hansbonini/gctools/pkg/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Banner files are the tiled image source consumed by the PNG exporter
var _ common.TileDecoder = (*BannerFile)(nil)

func TestRGB5A1ToRGBA(t *testing.T) {
	testCases := []struct {
		name     string
		pixel    RGB5A1
		expected color.RGBA
	}{
		{"opaque black", 0x8000, color.RGBA{0, 0, 0, 255}},
		{"opaque white", 0xFFFF, color.RGBA{255, 255, 255, 255}},
		{"transparent white", 0x7FFF, color.RGBA{0, 0, 0, 0}},
		{"opaque red", 0xFC00, color.RGBA{255, 0, 0, 255}},
		{"opaque green", 0x83E0, color.RGBA{0, 255, 0, 255}},
		{"opaque blue", 0x801F, color.RGBA{0, 0, 255, 255}},
		{"darkest red", 0x8400, color.RGBA{8, 0, 0, 255}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.pixel.ToRGBA())
		})
	}
}

// buildBanner assembles a .bnr buffer with the given magic and metadata
// record count
func buildBanner(magic string, records int) []byte {
	data := make([]byte, bannerMetaOffset+records*bannerMetaSize)
	copy(data, magic)
	return data
}

func TestDecodeBanner(t *testing.T) {
	data := buildBanner("BNR1", 1)
	copy(data[bannerMetaOffset:], "my game")
	copy(data[bannerMetaOffset+0x20:], "my developer")
	copy(data[bannerMetaOffset+0x40:], "My Game: The Full Title")
	copy(data[bannerMetaOffset+0x80:], "My Developer Inc.")
	copy(data[bannerMetaOffset+0xC0:], "A description.")

	banner, err := DecodeBanner(data)
	require.NoError(t, err)
	assert.Equal(t, "BNR1", banner.Magic)
	assert.Len(t, banner.PixelData, bannerPixelSize)
	require.Len(t, banner.Meta, 1)

	meta := banner.Meta[0]
	assert.Equal(t, "my game", meta.GameName)
	assert.Equal(t, "my developer", meta.DeveloperName)
	assert.Equal(t, "My Game: The Full Title", meta.FullGameTitle)
	assert.Equal(t, "My Developer Inc.", meta.FullDeveloperName)
	assert.Equal(t, "A description.", meta.GameDescription)
}

func TestDecodeBannerPAL(t *testing.T) {
	data := buildBanner("BNR2", 6)
	for i := 0; i < 6; i++ {
		data[bannerMetaOffset+i*bannerMetaSize] = byte('A' + i)
	}

	banner, err := DecodeBanner(data)
	require.NoError(t, err)
	assert.Equal(t, "BNR2", banner.Magic)
	require.Len(t, banner.Meta, 6)
	assert.Equal(t, "A", banner.Meta[0].GameName)
	assert.Equal(t, "F", banner.Meta[5].GameName)
}

func TestDecodeBannerErrors(t *testing.T) {
	_, err := DecodeBanner(buildBanner("XXXX", 1))
	assert.Error(t, err)

	_, err = DecodeBanner(buildBanner("BNR1", 1)[:0x100])
	assert.Error(t, err)

	// Magic alone is not enough; at least one metadata record is required
	_, err = DecodeBanner(buildBanner("BNR1", 0))
	assert.Error(t, err)
}

func TestDecodeImage(t *testing.T) {
	data := buildBanner("BNR1", 1)
	// Pixels are stored in 4x4 tiles: the 17th pixel starts the second
	// tile of the first tile row, at image position (4, 0)
	binary.BigEndian.PutUint16(data[bannerPixelOffset:], 0xFC00)      // (0, 0) red
	binary.BigEndian.PutUint16(data[bannerPixelOffset+4*2:], 0x83E0)  // (0, 1) green
	binary.BigEndian.PutUint16(data[bannerPixelOffset+16*2:], 0x801F) // (4, 0) blue

	banner, err := DecodeBanner(data)
	require.NoError(t, err)
	img, err := banner.DecodeImage()
	require.NoError(t, err)

	assert.Equal(t, BannerWidth, img.Bounds().Dx())
	assert.Equal(t, BannerHeight, img.Bounds().Dy())
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, img.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{0, 255, 0, 255}, img.RGBAAt(0, 1))
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, img.RGBAAt(4, 0))
	assert.Equal(t, color.RGBA{0, 0, 0, 0}, img.RGBAAt(1, 0), "untouched pixels are transparent")
}
