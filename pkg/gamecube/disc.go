// Package gamecube provides GameCube-specific disc image structures and
// functionality. This file contains the fixed disc layout constants and
// the boot/apploader header structures.
//
// Layout reference: http://hitmen.c02.at/files/yagcd/yagcd/chap13.html
package gamecube

// Fixed offsets and sizes of the GameCube disc system area
const (
	BootHeaderSize      = 0x440 // boot.bin: disc header
	Bi2Offset           = 0x440 // bi2.bin: disc information
	Bi2Size             = 0x2000
	ApploaderOffset     = 0x2440 // apploader header
	ApploaderCodeOffset = 0x2460 // apploader code follows its 0x20 byte header

	GameNameOffset     = 0x20  // zero-terminated game name inside boot.bin
	GameNameMaxLen     = 0x3E0 // name field runs up to the layout fields
	LayoutFieldsOffset = 0x420 // dolOffset, fstOffset, fstSize, maxFstSize

	// FstEntrySize is the fixed on-disc size of one FST entry
	FstEntrySize = 12

	// DefaultAlignment is the conventional GameCube file alignment (32 KiB)
	DefaultAlignment = 0x8000
)

// DiscHeader represents the parsed boot.bin header of a disc image.
// The layout fields are immutable after load; only the image writer
// relocates the FST and patches them in the rebuilt output.
type DiscHeader struct {
	GameCode   string // 4 ASCII characters, e.g. "GALE"
	MakerCode  string // 2 ASCII characters, e.g. "01"
	DiscID     byte
	Version    byte
	GameName   string
	DolOffset  uint32 // offset to the main executable DOL
	FstOffset  uint32 // offset to the file system table
	FstSize    uint32
	MaxFstSize uint32 // relevant for multi-disc games
}

// DolSizeFromLayout returns the size of the DOL region. The DOL runs from
// its offset up to the FST; nothing else sits between them.
func (h *DiscHeader) DolSizeFromLayout() uint32 {
	if h.FstOffset < h.DolOffset {
		return 0
	}
	return h.FstOffset - h.DolOffset
}

// ApploaderHeader represents the apploader header at 0x2440
type ApploaderHeader struct {
	Date        string // build date, ASCII, e.g. "2001/11/14"
	EntryPoint  uint32
	CodeSize    uint32
	TrailerSize uint32
}

// SystemFile describes one of the fixed system area regions that are not
// listed in the FST but are exposed as pseudo-files (boot.bin, bi2.bin,
// fst.bin, start.dol, appldr.bin)
type SystemFile struct {
	Name   string
	Offset uint32
	Size   uint32
}
