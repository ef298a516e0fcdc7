// Package pkg provides tests for the disc image processor
package pkg

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/hansbonini/gctools/pkg/gamecube"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// writeTestImage writes a minimal valid disc image to a temp file: boot
// header, apploader header and a root-only FST at 0x10000
func writeTestImage(t *testing.T) string {
	t.Helper()
	data := make([]byte, 0x10000+gamecube.FstEntrySize)

	copy(data, "GTST01")
	data[7] = 1
	copy(data[gamecube.GameNameOffset:], "Test Game")

	binary.BigEndian.PutUint32(data[gamecube.LayoutFieldsOffset:], 0x8000)
	binary.BigEndian.PutUint32(data[gamecube.LayoutFieldsOffset+4:], 0x10000)
	binary.BigEndian.PutUint32(data[gamecube.LayoutFieldsOffset+8:], gamecube.FstEntrySize)
	binary.BigEndian.PutUint32(data[gamecube.LayoutFieldsOffset+12:], 0x1000)

	copy(data[gamecube.ApploaderOffset:], "2024/01/01")
	binary.BigEndian.PutUint32(data[gamecube.ApploaderOffset+0x14:], 0x2000)

	binary.BigEndian.PutUint32(data[0x10000:], 0x01<<24)
	binary.BigEndian.PutUint32(data[0x10008:], 1)

	path := filepath.Join(t.TempDir(), "game.iso")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestIsoProcessorInfo(t *testing.T) {
	processor := NewIsoProcessor()
	image := writeTestImage(t)

	var buffer bytes.Buffer
	require.NoError(t, processor.Info(image, &buffer, false))
	assert.Contains(t, buffer.String(), "GTST")
	assert.Contains(t, buffer.String(), "Test Game")
	assert.Contains(t, buffer.String(), "0x10000")

	buffer.Reset()
	require.NoError(t, processor.Info(image, &buffer, true))
	var info IsoInfoExport
	require.NoError(t, yaml.Unmarshal(buffer.Bytes(), &info))
	assert.Equal(t, "GTST", info.GameCode)
	assert.Equal(t, "01", info.MakerCode)
	assert.Equal(t, "0x10000", info.FstOffset)
	assert.Equal(t, 1, info.FstEntries)
	assert.Equal(t, "2024/01/01", info.Apploader.Date)
}

func TestIsoProcessorInjectExtract(t *testing.T) {
	processor := NewIsoProcessor()
	image := writeTestImage(t)
	dir := t.TempDir()

	src := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(src, []byte("abcd"), 0o644))

	// Injecting into a fresh path creates the parent directories
	output := filepath.Join(dir, "out.iso")
	require.NoError(t, processor.Inject(image, "files/a.txt", src, output, 0))

	extracted := filepath.Join(dir, "extracted.txt")
	require.NoError(t, processor.Extract(output, "files/a.txt", extracted))
	content, err := os.ReadFile(extracted)
	require.NoError(t, err)
	assert.Equal(t, []byte("abcd"), content)

	// System pseudo-files extract without an FST entry
	boot := filepath.Join(dir, "boot.bin")
	require.NoError(t, processor.Extract(output, "boot.bin", boot))
	content, err = os.ReadFile(boot)
	require.NoError(t, err)
	assert.Len(t, content, gamecube.BootHeaderSize)

	assert.Error(t, processor.Extract(output, "missing.dat", extracted))
}

func TestIsoProcessorList(t *testing.T) {
	processor := NewIsoProcessor()
	image := writeTestImage(t)
	dir := t.TempDir()

	src := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(src, []byte("abcd"), 0o644))
	output := filepath.Join(dir, "out.iso")
	require.NoError(t, processor.Inject(image, "files/a.txt", src, output, 0))

	var buffer bytes.Buffer
	require.NoError(t, processor.List(output, "", false, &buffer))
	assert.Equal(t, "files/\n", buffer.String())

	buffer.Reset()
	require.NoError(t, processor.List(output, "files", true, &buffer))
	assert.Contains(t, buffer.String(), "a.txt")
	assert.Contains(t, buffer.String(), "4")

	assert.Error(t, processor.List(output, "files/a.txt", false, &buffer))
	assert.Error(t, processor.List(output, "missing", false, &buffer))
}

func TestIsoProcessorDump(t *testing.T) {
	processor := NewIsoProcessor()
	image := writeTestImage(t)
	dir := t.TempDir()

	src := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(src, []byte("abcd"), 0o644))
	output := filepath.Join(dir, "out.iso")
	require.NoError(t, processor.Inject(image, "files/a.txt", src, output, 0))

	dumpDir := filepath.Join(dir, "dump")
	require.NoError(t, processor.Dump(output, dumpDir))

	content, err := os.ReadFile(filepath.Join(dumpDir, "files", "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, []byte("abcd"), content)

	boot, err := os.ReadFile(filepath.Join(dumpDir, "sys", "boot.bin"))
	require.NoError(t, err)
	assert.Len(t, boot, gamecube.BootHeaderSize)

	for _, name := range []string{"bi2.bin", "appldr.bin", "start.dol", "fst.bin"} {
		_, err := os.Stat(filepath.Join(dumpDir, "sys", name))
		assert.NoError(t, err, "system file %s missing from dump", name)
	}
}

func TestIsoProcessorRemoveRename(t *testing.T) {
	processor := NewIsoProcessor()
	image := writeTestImage(t)
	dir := t.TempDir()

	src := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(src, []byte("abcd"), 0o644))
	output := filepath.Join(dir, "out.iso")
	require.NoError(t, processor.Inject(image, "files/a.txt", src, output, 0))

	renamed := filepath.Join(dir, "renamed.iso")
	require.NoError(t, processor.Rename(output, "files/a.txt", "b.txt", renamed, 0))
	extracted := filepath.Join(dir, "extracted.txt")
	require.NoError(t, processor.Extract(renamed, "files/b.txt", extracted))
	assert.Error(t, processor.Extract(renamed, "files/a.txt", extracted))

	removed := filepath.Join(dir, "removed.iso")
	require.NoError(t, processor.Remove(renamed, "files/b.txt", removed, 0))
	assert.Error(t, processor.Extract(removed, "files/b.txt", extracted))

	assert.Error(t, processor.Remove(removed, "missing.dat", removed, 0))
}

func TestIsoProcessorInjectReplaces(t *testing.T) {
	processor := NewIsoProcessor()
	image := writeTestImage(t)
	dir := t.TempDir()

	first := filepath.Join(dir, "first.dat")
	require.NoError(t, os.WriteFile(first, []byte("first"), 0o644))
	second := filepath.Join(dir, "second.dat")
	require.NoError(t, os.WriteFile(second, []byte("second payload"), 0o644))

	out1 := filepath.Join(dir, "out1.iso")
	require.NoError(t, processor.Inject(image, "config.bin", first, out1, 0))
	out2 := filepath.Join(dir, "out2.iso")
	require.NoError(t, processor.Inject(out1, "config.bin", second, out2, 0))

	extracted := filepath.Join(dir, "extracted.dat")
	require.NoError(t, processor.Extract(out2, "config.bin", extracted))
	content, err := os.ReadFile(extracted)
	require.NoError(t, err)
	assert.Equal(t, []byte("second payload"), content)
}
