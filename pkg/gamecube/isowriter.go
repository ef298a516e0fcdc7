// Package gamecube provides GameCube-specific disc image structures and
// functionality. This file contains the image writer: FST re-encoding,
// aligned offset assignment and output streaming.
package gamecube

import (
	"fmt"
	"math"

	"github.com/hansbonini/gctools/pkg/common"
)

// fstPlacementAlignment is the boundary the FST itself is placed on when
// no fixed location is requested. Files use RebuildOptions.Alignment; the
// FST only needs word alignment.
const fstPlacementAlignment = 4

// RebuildOptions controls the layout of a rebuilt image
type RebuildOptions struct {
	// Alignment is the boundary every file's start offset is rounded up
	// to. Zero selects the GameCube convention of 32 KiB. Must be a
	// power of two.
	Alignment uint32

	// FstOffset fixes the FST location. Zero places the FST at the first
	// aligned position after the system area.
	FstOffset uint32

	// MinImageSize pads the output with zero bytes up to this size
	MinImageSize int64
}

type placedFile struct {
	node   *Node
	offset int64
}

// Rebuild walks the tree in pre-order, assigns every file an aligned disc
// offset, re-serializes the FST and streams system area, FST and file
// data into a new image. The tree and the original image are read-only
// inputs; rebuilding is all-or-nothing and never emits a partially valid
// image.
//
// File data is laid out in the same pre-order the FST encodes, so file
// order on disc matches directory order and outputs stay diffable against
// reference tooling.
func Rebuild(root *Node, original []byte, opts RebuildOptions) ([]byte, error) {
	alignment := opts.Alignment
	if alignment == 0 {
		alignment = DefaultAlignment
	}
	if !common.IsPowerOfTwo(alignment) {
		return nil, fmt.Errorf("alignment 0x%X is not a power of two", alignment)
	}

	source := &IsoFile{data: original}
	if err := source.parseHeaders(); err != nil {
		return nil, err
	}

	// The system area (boot.bin, bi2.bin, apploader, DOL) runs from the
	// start of the image up to the original FST location and is copied
	// verbatim
	systemEnd := int64(source.Header.FstOffset)
	if systemEnd > int64(len(original)) {
		return nil, fmt.Errorf("%w: system area end 0x%X past image end (size 0x%X)",
			ErrOutOfBounds, systemEnd, len(original))
	}

	fstOffset := int64(opts.FstOffset)
	if fstOffset == 0 {
		fstOffset = common.AlignUp(systemEnd, fstPlacementAlignment)
	}
	if fstOffset < systemEnd {
		return nil, fmt.Errorf("%w: system area (DOL end 0x%X) overlaps FST at 0x%X",
			ErrLayoutOverflow, systemEnd, fstOffset)
	}

	enc, err := EncodeFst(root)
	if err != nil {
		return nil, err
	}
	fstSize := int64(enc.Size())
	if fstOffset+fstSize > math.MaxUint32 {
		return nil, fmt.Errorf("%w: FST end 0x%X exceeds 32-bit offsets", ErrLayoutOverflow, fstOffset+fstSize)
	}
	fstOffsetValue, err := common.SafeInt64ToUint32(fstOffset)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLayoutOverflow, err)
	}
	fstSizeValue, err := common.SafeInt64ToUint32(fstSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLayoutOverflow, err)
	}
	common.LogDebug(common.DebugSystemArea, systemEnd, source.Header.DolOffset)
	common.LogDebug(common.DebugFstPlaced, fstOffset, fstSize)

	// Assign aligned offsets in pre-order and patch the encoded entries.
	// Offsets are only known after the walk completes, so content is
	// streamed in a separate pass.
	cursor := fstOffset + fstSize
	var files []placedFile
	err = root.Walk(func(node *Node) error {
		if node.Kind != FileNode {
			return nil
		}
		if owned, ok := node.Source.(OwnedSource); ok {
			if int64(len(owned.Data)) > math.MaxUint32 {
				return fmt.Errorf("%w: %s (%d bytes)", ErrFileTooLarge, node.Path(), len(owned.Data))
			}
		}
		if borrowed, ok := node.Source.(BorrowedSource); ok {
			end := int64(borrowed.Offset) + int64(borrowed.Length)
			if end > int64(len(original)) {
				return fmt.Errorf("%w: %s at 0x%X+0x%X past source image end (size 0x%X)",
					ErrOutOfBounds, node.Path(), borrowed.Offset, borrowed.Length, len(original))
			}
		}
		start := common.AlignUp(cursor, alignment)
		if start+int64(node.Size()) > math.MaxUint32 {
			return fmt.Errorf("%w: %s would end at 0x%X", ErrLayoutOverflow, node.Path(), start+int64(node.Size()))
		}
		if err := enc.SetFileOffset(node, uint32(start)); err != nil {
			return err
		}
		common.LogDebug(common.DebugFilePlaced, node.Path(), start, node.Size())
		files = append(files, placedFile{node: node, offset: start})
		cursor = start + int64(node.Size())
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		common.LogWarn(common.WarnEmptyFileTree)
	}

	total := cursor
	if opts.MinImageSize > total {
		total = opts.MinImageSize
	}
	common.LogDebug(common.DebugTotalSize, total)
	if total > int64(len(original)) {
		common.LogWarn(common.WarnImageLargerThan, total, len(original))
	}

	// Stream: system area, FST, then file contents. The buffer is
	// zero-initialized, so inter-file padding needs no explicit writes.
	output := make([]byte, total)
	copy(output, original[:systemEnd])
	copy(output[fstOffset:], enc.Bytes())

	maxFstSize := source.Header.MaxFstSize
	if fstSizeValue > maxFstSize {
		maxFstSize = fstSizeValue
	}
	header := common.NewByteCursor(output)
	header.Seek(LayoutFieldsOffset + 4)
	header.WriteUint32(fstOffsetValue)
	header.WriteUint32(fstSizeValue)
	header.WriteUint32(maxFstSize)

	for _, placed := range files {
		switch content := placed.node.Source.(type) {
		case OwnedSource:
			copy(output[placed.offset:], content.Data)
		case BorrowedSource:
			end := int64(content.Offset) + int64(content.Length)
			copy(output[placed.offset:], original[content.Offset:end])
		}
	}

	return output, nil
}

// Rebuild re-serializes the loaded image with its (possibly mutated) tree
func (iso *IsoFile) Rebuild(opts RebuildOptions) ([]byte, error) {
	return Rebuild(iso.Root, iso.data, opts)
}
