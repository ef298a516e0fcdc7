// Package gamecube provides GameCube-specific disc image structures and
// functionality. This file contains the FST (File System Table) codec.
//
// The on-disc FST is a flat array of 12-byte entries followed by a string
// table of zero-terminated names. Entry 0 is the root directory; its
// nextIndex field holds the total entry count. Directory entries carry
// their parent index and the index one past their last descendant, which
// makes the array a pre-order serialization of the tree: a subtree is
// always a contiguous run of entries.
package gamecube

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/hansbonini/gctools/pkg/common"
)

// FstEntry is the decoded form of one on-disc FST entry. The Offset and
// Length fields are a union: fileOffset/fileLength for files,
// parentIndex/nextIndex for directories. The directory flag lives in the
// top byte of the first 32-bit word on disc; here it is an explicit field
// and the bit packing is confined to serialization.
type FstEntry struct {
	IsDir      bool
	NameOffset uint32 // 24-bit offset into the string table
	Offset     uint32 // fileOffset (file) or parentIndex (directory)
	Length     uint32 // fileLength (file) or nextIndex (directory)
}

func parseFstEntry(fst []byte, index uint32) FstEntry {
	base := index * FstEntrySize
	word := binary.BigEndian.Uint32(fst[base:])
	return FstEntry{
		IsDir:      word>>24 != 0,
		NameOffset: word & common.Uint24Max,
		Offset:     binary.BigEndian.Uint32(fst[base+4:]),
		Length:     binary.BigEndian.Uint32(fst[base+8:]),
	}
}

func readEntryName(stringTable []byte, nameOffset uint32) (string, error) {
	if nameOffset >= uint32(len(stringTable)) {
		return "", fmt.Errorf("%w: name offset 0x%X past string table (size 0x%X)",
			ErrCorruptFst, nameOffset, len(stringTable))
	}
	end := bytes.IndexByte(stringTable[nameOffset:], 0)
	if end < 0 {
		return "", fmt.Errorf("%w: unterminated name at offset 0x%X", ErrCorruptFst, nameOffset)
	}
	return string(stringTable[nameOffset : int(nameOffset)+end]), nil
}

// DecodeFst builds a disc tree from the raw FST region of an image.
// It performs a single linear pass over the entries, maintaining a stack
// of open directories; the pre-order contiguity invariant makes this
// sufficient. Any structural violation aborts with ErrCorruptFst and no
// partial tree is returned.
func DecodeFst(fst []byte) (*Node, error) {
	if len(fst) < FstEntrySize {
		return nil, fmt.Errorf("%w: table truncated (%d bytes)", ErrCorruptFst, len(fst))
	}

	rootEntry := parseFstEntry(fst, 0)
	if !rootEntry.IsDir {
		return nil, fmt.Errorf("%w: entry 0 is not a directory", ErrCorruptFst)
	}
	// Root nextIndex is the total entry count, root included
	count := rootEntry.Length
	if count == 0 || count > uint32(len(fst)/FstEntrySize) {
		return nil, fmt.Errorf("%w: entry count %d exceeds table size (%d bytes)",
			ErrCorruptFst, count, len(fst))
	}
	stringTable := fst[count*FstEntrySize:]

	root := NewRoot()

	// Stack of directories whose subtrees are still open. end is the
	// index of the first entry past the directory's subtree.
	type openDir struct {
		node *Node
		end  uint32
	}
	stack := []openDir{{node: root, end: count}}

	for i := uint32(1); i < count; i++ {
		for len(stack) > 0 && i >= stack[len(stack)-1].end {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			return nil, fmt.Errorf("%w: entry %d outside every directory subtree", ErrCorruptFst, i)
		}
		parent := stack[len(stack)-1]

		entry := parseFstEntry(fst, i)
		name, err := readEntryName(stringTable, entry.NameOffset)
		if err != nil {
			return nil, err
		}

		if entry.IsDir {
			// nextIndex must point past this entry and stay inside both
			// the table and the enclosing subtree
			if entry.Length <= i || entry.Length > parent.end {
				return nil, fmt.Errorf("%w: directory %q at entry %d has next index %d",
					ErrCorruptFst, name, i, entry.Length)
			}
			// parentIndex must reference an already visited entry
			if entry.Offset >= i {
				return nil, fmt.Errorf("%w: directory %q at entry %d has parent index %d",
					ErrCorruptFst, name, i, entry.Offset)
			}
			dir := &Node{Kind: DirectoryNode, Name: name, parent: parent.node}
			parent.node.Children = append(parent.node.Children, dir)
			stack = append(stack, openDir{node: dir, end: entry.Length})
		} else {
			file := &Node{
				Kind:   FileNode,
				Name:   name,
				Source: BorrowedSource{Offset: entry.Offset, Length: entry.Length},
				parent: parent.node,
			}
			parent.node.Children = append(parent.node.Children, file)
		}
	}

	return root, nil
}

// EncodedFst is the flat form produced by EncodeFst: the entry array, the
// string table, and a mapping from file nodes to their entry index so the
// image writer can patch final file offsets before serialization.
type EncodedFst struct {
	Entries     []FstEntry
	StringTable []byte

	fileIndex map[*Node]int
}

// EncodeFst serializes a disc tree into the flat FST form. The walk is
// pre-order, matching decode, so round-tripping an unmodified tree is
// byte-reproducible. Names are appended to the string table in walk order
// without deduplication, matching the on-disc convention.
//
// File entries initially carry the offset of their BorrowedSource (or 0
// for owned content); the writer overrides them via SetFileOffset once
// the final layout is known.
func EncodeFst(root *Node) (*EncodedFst, error) {
	if !root.IsDir() {
		return nil, fmt.Errorf("%w: encode root is not a directory", ErrCorruptFst)
	}
	enc := &EncodedFst{fileIndex: make(map[*Node]int)}
	enc.Entries = append(enc.Entries, FstEntry{IsDir: true})

	var walk func(dir *Node, dirIndex int) error
	walk = func(dir *Node, dirIndex int) error {
		for _, child := range dir.Children {
			nameOffset, err := common.SafeIntToUint24(len(enc.StringTable))
			if err != nil {
				return fmt.Errorf("%w: string table overflow: %v", ErrLayoutOverflow, err)
			}
			enc.StringTable = append(enc.StringTable, child.Name...)
			enc.StringTable = append(enc.StringTable, 0)

			index := len(enc.Entries)
			if child.IsDir() {
				enc.Entries = append(enc.Entries, FstEntry{
					IsDir:      true,
					NameOffset: nameOffset,
					Offset:     uint32(dirIndex),
				})
				if err := walk(child, index); err != nil {
					return err
				}
				// nextIndex is only known once the subtree walk returns
				nextIndex, err := common.SafeIntToUint32(len(enc.Entries))
				if err != nil {
					return fmt.Errorf("%w: entry count: %v", ErrLayoutOverflow, err)
				}
				enc.Entries[index].Length = nextIndex
			} else {
				entry := FstEntry{NameOffset: nameOffset, Length: child.Size()}
				if borrowed, ok := child.Source.(BorrowedSource); ok {
					entry.Offset = borrowed.Offset
				}
				enc.Entries = append(enc.Entries, entry)
				enc.fileIndex[child] = index
			}
		}
		return nil
	}
	if err := walk(root, 0); err != nil {
		return nil, err
	}
	count, err := common.SafeIntToUint32(len(enc.Entries))
	if err != nil {
		return nil, fmt.Errorf("%w: entry count: %v", ErrLayoutOverflow, err)
	}
	enc.Entries[0].Length = count
	return enc, nil
}

// Size returns the serialized size of the FST in bytes
func (e *EncodedFst) Size() int {
	return len(e.Entries)*FstEntrySize + len(e.StringTable)
}

// SetFileOffset patches the encoded entry of a file node with its final
// disc offset
func (e *EncodedFst) SetFileOffset(file *Node, offset uint32) error {
	index, ok := e.fileIndex[file]
	if !ok {
		return fmt.Errorf("node %q is not a file entry of this table", file.Name)
	}
	e.Entries[index].Offset = offset
	return nil
}

// Bytes serializes the entry array and string table into the on-disc
// binary form
func (e *EncodedFst) Bytes() []byte {
	buffer := make([]byte, e.Size())
	cursor := common.NewByteCursor(buffer)
	for _, entry := range e.Entries {
		word := entry.NameOffset & common.Uint24Max
		if entry.IsDir {
			word |= 0x01 << 24
		}
		cursor.WriteUint32(word)
		cursor.WriteUint32(entry.Offset)
		cursor.WriteUint32(entry.Length)
	}
	cursor.WriteBytes(e.StringTable)
	return buffer
}
