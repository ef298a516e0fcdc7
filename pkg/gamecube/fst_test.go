// Package gamecube provides tests for the FST codec
package gamecube

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rawEntry mirrors the 12-byte on-disc entry layout for building test
// tables by hand
type rawEntry struct {
	dir            bool
	nameOffset     uint32
	offset, length uint32
}

func buildFst(entries []rawEntry, names string) []byte {
	buffer := make([]byte, len(entries)*FstEntrySize+len(names))
	for i, entry := range entries {
		word := entry.nameOffset
		if entry.dir {
			word |= 0x01 << 24
		}
		binary.BigEndian.PutUint32(buffer[i*FstEntrySize:], word)
		binary.BigEndian.PutUint32(buffer[i*FstEntrySize+4:], entry.offset)
		binary.BigEndian.PutUint32(buffer[i*FstEntrySize+8:], entry.length)
	}
	copy(buffer[len(entries)*FstEntrySize:], names)
	return buffer
}

// nestedFst builds a small table with one subdirectory:
//
//	/data/a.txt
//	/data/b.bin
//	/opening.bnr
func nestedFst() []byte {
	return buildFst([]rawEntry{
		{dir: true, length: 5},
		{dir: true, nameOffset: 0, offset: 0, length: 4},
		{nameOffset: 5, offset: 0x18000, length: 4},
		{nameOffset: 11, offset: 0x20000, length: 40000},
		{nameOffset: 17, offset: 0x30000, length: 0x1960},
	}, "data\x00a.txt\x00b.bin\x00opening.bnr\x00")
}

func TestDecodeFst(t *testing.T) {
	root, err := DecodeFst(nestedFst())
	require.NoError(t, err)

	require.Len(t, root.Children, 2)
	assert.Equal(t, 5, root.CountEntries())
	assert.Equal(t, 3, root.CountFiles())

	data := root.Child("data")
	require.NotNil(t, data)
	assert.True(t, data.IsDir())
	require.Len(t, data.Children, 2)

	a, err := root.FindByPath("data/a.txt")
	require.NoError(t, err)
	assert.Equal(t, FileNode, a.Kind)
	assert.Equal(t, BorrowedSource{Offset: 0x18000, Length: 4}, a.Source)
	assert.Equal(t, "data/a.txt", a.Path())

	b, err := root.FindByPath("data/b.bin")
	require.NoError(t, err)
	assert.Equal(t, uint32(40000), b.Size())

	banner := root.Child("opening.bnr")
	require.NotNil(t, banner)
	assert.Same(t, root, banner.Parent())
}

func TestDecodeFstCorrupt(t *testing.T) {
	testCases := []struct {
		name string
		fst  []byte
	}{
		{
			"truncated table",
			[]byte{0x01, 0x00, 0x00},
		},
		{
			"root is a file",
			buildFst([]rawEntry{{dir: false, length: 1}}, ""),
		},
		{
			"zero entry count",
			buildFst([]rawEntry{{dir: true, length: 0}}, ""),
		},
		{
			"entry count past table end",
			buildFst([]rawEntry{{dir: true, length: 100}, {nameOffset: 0, length: 4}}, "a\x00"),
		},
		{
			"directory next index not past itself",
			buildFst([]rawEntry{
				{dir: true, length: 3},
				{dir: true, nameOffset: 0, offset: 0, length: 1},
				{nameOffset: 2, length: 4},
			}, "d\x00a\x00"),
		},
		{
			"directory next index past enclosing subtree",
			buildFst([]rawEntry{
				{dir: true, length: 3},
				{dir: true, nameOffset: 0, offset: 0, length: 4},
				{nameOffset: 2, length: 4},
			}, "d\x00a\x00"),
		},
		{
			"directory parent index not yet visited",
			buildFst([]rawEntry{
				{dir: true, length: 3},
				{dir: true, nameOffset: 0, offset: 1, length: 3},
				{nameOffset: 2, length: 4},
			}, "d\x00a\x00"),
		},
		{
			"name offset past string table",
			buildFst([]rawEntry{
				{dir: true, length: 2},
				{nameOffset: 50, length: 4},
			}, "a\x00"),
		},
		{
			"unterminated name",
			buildFst([]rawEntry{
				{dir: true, length: 2},
				{nameOffset: 0, length: 4},
			}, "abc"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			root, err := DecodeFst(tc.fst)
			assert.Nil(t, root)
			assert.ErrorIs(t, err, ErrCorruptFst)
		})
	}
}

func TestEncodeFstRoundTrip(t *testing.T) {
	raw := nestedFst()
	root, err := DecodeFst(raw)
	require.NoError(t, err)

	enc, err := EncodeFst(root)
	require.NoError(t, err)

	assert.Equal(t, len(raw), enc.Size())
	assert.Equal(t, raw, enc.Bytes(), "decode then encode must reproduce the table byte for byte")
}

func TestEncodeFstNoNameDeduplication(t *testing.T) {
	root := NewRoot()
	dir, err := root.InsertDir("us")
	require.NoError(t, err)
	_, err = root.InsertFile("same.dat", []byte{1})
	require.NoError(t, err)
	_, err = dir.InsertFile("same.dat", []byte{2})
	require.NoError(t, err)

	enc, err := EncodeFst(root)
	require.NoError(t, err)

	// us\0 same.dat\0 same.dat\0: repeated names each get their own slot
	assert.Equal(t, []byte("us\x00same.dat\x00same.dat\x00"), enc.StringTable)
	require.Len(t, enc.Entries, 4)
	assert.NotEqual(t, enc.Entries[2].NameOffset, enc.Entries[3].NameOffset)
}

func TestEncodeFstSetFileOffset(t *testing.T) {
	root := NewRoot()
	file, err := root.InsertFile("main.dol", make([]byte, 16))
	require.NoError(t, err)

	enc, err := EncodeFst(root)
	require.NoError(t, err)

	// Owned content has no disc offset until the writer assigns one
	assert.Equal(t, uint32(0), enc.Entries[1].Offset)

	require.NoError(t, enc.SetFileOffset(file, 0x40000))
	assert.Equal(t, uint32(0x40000), enc.Entries[1].Offset)

	stranger := &Node{Kind: FileNode, Name: "other.dat"}
	assert.Error(t, enc.SetFileOffset(stranger, 0))
}

func TestEncodeFstDirectoryIndices(t *testing.T) {
	root := NewRoot()
	outer, err := root.InsertDir("audio")
	require.NoError(t, err)
	inner, err := outer.InsertDir("us")
	require.NoError(t, err)
	_, err = inner.InsertFile("voice.afs", []byte("x"))
	require.NoError(t, err)
	_, err = root.InsertFile("game.toc", []byte("y"))
	require.NoError(t, err)

	enc, err := EncodeFst(root)
	require.NoError(t, err)
	require.Len(t, enc.Entries, 5)

	// Entry layout: 0 root, 1 audio, 2 us, 3 voice.afs, 4 game.toc
	assert.Equal(t, uint32(5), enc.Entries[0].Length)
	assert.Equal(t, uint32(0), enc.Entries[1].Offset, "audio parent is root")
	assert.Equal(t, uint32(4), enc.Entries[1].Length, "audio subtree ends before game.toc")
	assert.Equal(t, uint32(1), enc.Entries[2].Offset, "us parent is audio")
	assert.Equal(t, uint32(4), enc.Entries[2].Length)
	assert.False(t, enc.Entries[3].IsDir)
	assert.False(t, enc.Entries[4].IsDir)
}
