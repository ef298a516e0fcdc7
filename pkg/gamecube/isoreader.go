// Package gamecube provides GameCube-specific disc image structures and
// functionality. This file contains the disc image reader: boot header
// and apploader parsing, FST decoding and file extraction.
package gamecube

import (
	"fmt"

	"github.com/hansbonini/gctools/pkg/common"
)

// IsoFile represents a loaded disc image: the parsed headers, the decoded
// file tree and the raw image bytes that borrowed file content still
// points into
type IsoFile struct {
	Header    DiscHeader
	Apploader ApploaderHeader
	Root      *Node

	data []byte
}

// Load parses a complete disc image held in memory. It reads the boot
// header, the apploader header and the FST, and builds the disc tree.
// Reading the image bytes from disk is the caller's responsibility.
func Load(data []byte) (*IsoFile, error) {
	iso := &IsoFile{data: data}

	if err := iso.parseHeaders(); err != nil {
		return nil, err
	}

	fstEnd := int64(iso.Header.FstOffset) + int64(iso.Header.FstSize)
	if fstEnd > int64(len(data)) {
		return nil, fmt.Errorf("%w: FST at 0x%X+0x%X past image end (size 0x%X)",
			ErrOutOfBounds, iso.Header.FstOffset, iso.Header.FstSize, len(data))
	}

	root, err := DecodeFst(data[iso.Header.FstOffset:fstEnd])
	if err != nil {
		return nil, err
	}
	iso.Root = root

	common.LogDebug(common.DebugHeaderInfo, iso.Header.GameCode, iso.Header.MakerCode,
		iso.Header.DiscID, iso.Header.Version)
	common.LogDebug(common.DebugFstLayout, iso.Header.FstOffset, iso.Header.FstSize,
		root.CountEntries())

	return iso, nil
}

func (iso *IsoFile) parseHeaders() error {
	if len(iso.data) < ApploaderCodeOffset {
		return fmt.Errorf("%w: image smaller than system area (%d bytes)", ErrOutOfBounds, len(iso.data))
	}

	cursor := common.NewByteCursor(iso.data)

	gameCode, _ := cursor.ReadBytes(4)
	makerCode, _ := cursor.ReadBytes(2)
	discID, _ := cursor.ReadUint8()
	version, _ := cursor.ReadUint8()
	iso.Header.GameCode = string(gameCode)
	iso.Header.MakerCode = string(makerCode)
	iso.Header.DiscID = discID
	iso.Header.Version = version
	iso.Header.GameName = common.ZeroTerminated(iso.data, GameNameOffset, GameNameMaxLen)

	cursor.Seek(LayoutFieldsOffset)
	iso.Header.DolOffset, _ = cursor.ReadUint32()
	iso.Header.FstOffset, _ = cursor.ReadUint32()
	iso.Header.FstSize, _ = cursor.ReadUint32()
	iso.Header.MaxFstSize, _ = cursor.ReadUint32()

	if iso.Header.FstOffset < ApploaderCodeOffset || iso.Header.DolOffset > iso.Header.FstOffset {
		return fmt.Errorf("%w: implausible layout (DOL at 0x%X, FST at 0x%X)",
			ErrCorruptFst, iso.Header.DolOffset, iso.Header.FstOffset)
	}

	cursor.Seek(ApploaderOffset)
	date, err := cursor.ReadString(10)
	if err != nil {
		return err
	}
	iso.Apploader.Date = date
	cursor.Skip(6)
	iso.Apploader.EntryPoint, _ = cursor.ReadUint32()
	iso.Apploader.CodeSize, _ = cursor.ReadUint32()
	iso.Apploader.TrailerSize, err = cursor.ReadUint32()
	return err
}

// Size returns the size of the source image in bytes
func (iso *IsoFile) Size() int64 {
	return int64(len(iso.data))
}

// ExtractFile returns the content bytes of a file node. Borrowed content
// is sliced out of the source image with a bounds check, guarding against
// a corrupt or adversarial FST referencing out-of-range data. Failure to
// extract one file does not invalidate the rest of the tree.
func (iso *IsoFile) ExtractFile(node *Node) ([]byte, error) {
	if node == nil || node.Kind != FileNode {
		return nil, fmt.Errorf("%w: not a file", ErrNotFound)
	}
	switch source := node.Source.(type) {
	case OwnedSource:
		return source.Data, nil
	case BorrowedSource:
		end := int64(source.Offset) + int64(source.Length)
		if end > int64(len(iso.data)) {
			return nil, fmt.Errorf("%w: %s at 0x%X+0x%X past image end (size 0x%X)",
				ErrOutOfBounds, node.Path(), source.Offset, source.Length, len(iso.data))
		}
		return iso.data[source.Offset:end], nil
	default:
		return nil, fmt.Errorf("%s has no content source", node.Path())
	}
}

// ExtractPath resolves a slash-separated path and extracts the file it
// names. System pseudo-file names (boot.bin, start.dol, ...) are resolved
// when no FST entry matches.
func (iso *IsoFile) ExtractPath(path string) ([]byte, error) {
	node, err := iso.Root.FindByPath(path)
	if err == nil {
		return iso.ExtractFile(node)
	}
	for _, sys := range iso.SystemFiles() {
		if sys.Name == path {
			return iso.ExtractSystemFile(sys)
		}
	}
	return nil, err
}

// SystemFiles lists the fixed system area regions as pseudo-files, the
// way GameCube tooling conventionally names them. These are not FST
// entries and do not appear in the disc tree.
func (iso *IsoFile) SystemFiles() []SystemFile {
	return []SystemFile{
		{Name: "boot.bin", Offset: 0x0, Size: BootHeaderSize},
		{Name: "bi2.bin", Offset: Bi2Offset, Size: Bi2Size},
		{Name: "appldr.bin", Offset: ApploaderCodeOffset, Size: iso.Apploader.CodeSize},
		{Name: "start.dol", Offset: iso.Header.DolOffset, Size: iso.Header.DolSizeFromLayout()},
		{Name: "fst.bin", Offset: iso.Header.FstOffset, Size: iso.Header.FstSize},
	}
}

// ExtractSystemFile slices a system pseudo-file out of the source image
func (iso *IsoFile) ExtractSystemFile(sys SystemFile) ([]byte, error) {
	end := int64(sys.Offset) + int64(sys.Size)
	if end > int64(len(iso.data)) {
		return nil, fmt.Errorf("%w: %s at 0x%X+0x%X past image end (size 0x%X)",
			ErrOutOfBounds, sys.Name, sys.Offset, sys.Size, len(iso.data))
	}
	return iso.data[sys.Offset:end], nil
}

// BannerFile locates the first banner file (*.bnr, usually "opening.bnr")
// in the tree and decodes it
func (iso *IsoFile) BannerFile() (*BannerFile, error) {
	var banner *Node
	iso.Root.Walk(func(node *Node) error {
		if banner == nil && node.Kind == FileNode && isBannerName(node.Name) {
			banner = node
		}
		return nil
	})
	if banner == nil {
		return nil, fmt.Errorf("%w: no banner file in image", ErrNotFound)
	}
	data, err := iso.ExtractFile(banner)
	if err != nil {
		return nil, err
	}
	return DecodeBanner(data)
}

// DolFile extracts and decodes the main executable
func (iso *IsoFile) DolFile() (*DolFile, error) {
	data, err := iso.ExtractPath("start.dol")
	if err != nil {
		return nil, err
	}
	return DecodeDol(data)
}

func isBannerName(name string) bool {
	return len(name) > 4 && name[len(name)-4:] == ".bnr"
}
