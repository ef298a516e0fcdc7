// Package gamecube provides GameCube-specific disc image structures and
// functionality. This file contains the DOL executable parser.
//
// The apploader loads the DOL into memory section by section; sections
// stay contiguous individually but may be permuted or leave gaps once
// loaded. Format reference:
// http://hitmen.c02.at/files/yagcd/yagcd/chap14.html#sec14.2
package gamecube

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/hansbonini/gctools/pkg/common"
)

// DOL header layout constants
const (
	dolTextSectionCount = 7
	dolDataSectionCount = 11
	dolHeaderSize       = 0x100

	dolTextOffsetsAt   = 0x00
	dolDataOffsetsAt   = 0x1C
	dolTextAddressesAt = 0x48
	dolDataAddressesAt = 0x64
	dolTextSizesAt     = 0x90
	dolDataSizesAt     = 0xAC
	dolBssAddressAt    = 0xD8
	dolBssSizeAt       = 0xDC
	dolEntryPointAt    = 0xE0
)

// DolSectionType distinguishes text (code) from data sections
type DolSectionType string

const (
	DolTextSection DolSectionType = "text"
	DolDataSection DolSectionType = "data"
)

// DolSection is one loadable section of a DOL executable
type DolSection struct {
	Index   int
	Type    DolSectionType
	Offset  uint32 // offset of the section inside the DOL file
	Address uint32 // memory address the section is loaded to
	Size    uint32
}

// EndOffset returns the file offset right after the section
func (s *DolSection) EndOffset() uint32 {
	return s.Offset + s.Size
}

// EndAddress returns the memory address right after the section
func (s *DolSection) EndAddress() uint32 {
	return s.Address + s.Size
}

// IsBefore reports whether other directly follows s both in the file and
// in memory
func (s *DolSection) IsBefore(other *DolSection) bool {
	return s.EndAddress() == other.Address && s.EndOffset() == other.Offset
}

// DolFile represents a parsed DOL executable
type DolFile struct {
	BssAddress uint32
	BssSize    uint32
	EntryPoint uint32

	TextSections []*DolSection
	DataSections []*DolSection
	// Sections is TextSections followed by DataSections (header order)
	Sections []*DolSection
}

func readUint32Array(reader io.Reader, count int) ([]uint32, error) {
	values := make([]uint32, count)
	for i := range values {
		value, err := common.ReadUint32BE(reader)
		if err != nil {
			return nil, err
		}
		values[i] = value
	}
	return values, nil
}

func zipSections(sectionType DolSectionType, offsets, addresses, sizes []uint32) []*DolSection {
	var sections []*DolSection
	for i := range offsets {
		if offsets[i] == 0 || addresses[i] == 0 || sizes[i] == 0 {
			break
		}
		sections = append(sections, &DolSection{
			Index:   i,
			Type:    sectionType,
			Offset:  offsets[i],
			Address: addresses[i],
			Size:    sizes[i],
		})
	}
	return sections
}

// DecodeDol parses the header of a DOL executable. The header is six
// contiguous uint32 arrays (text/data offsets, addresses, sizes)
// followed by the BSS and entry point fields, so one sequential read
// covers it.
func DecodeDol(data []byte) (*DolFile, error) {
	if len(data) < dolHeaderSize {
		return nil, fmt.Errorf("DOL truncated: %d bytes, header needs %d", len(data), dolHeaderSize)
	}
	reader := bytes.NewReader(data)

	textOffsets, err := readUint32Array(reader, dolTextSectionCount)
	if err != nil {
		return nil, err
	}
	dataOffsets, err := readUint32Array(reader, dolDataSectionCount)
	if err != nil {
		return nil, err
	}
	textAddresses, err := readUint32Array(reader, dolTextSectionCount)
	if err != nil {
		return nil, err
	}
	dataAddresses, err := readUint32Array(reader, dolDataSectionCount)
	if err != nil {
		return nil, err
	}
	textSizes, err := readUint32Array(reader, dolTextSectionCount)
	if err != nil {
		return nil, err
	}
	dataSizes, err := readUint32Array(reader, dolDataSectionCount)
	if err != nil {
		return nil, err
	}

	dol := &DolFile{
		TextSections: zipSections(DolTextSection, textOffsets, textAddresses, textSizes),
		DataSections: zipSections(DolDataSection, dataOffsets, dataAddresses, dataSizes),
	}
	dol.Sections = append(dol.Sections, dol.TextSections...)
	dol.Sections = append(dol.Sections, dol.DataSections...)

	if dol.BssAddress, err = common.ReadUint32BE(reader); err != nil {
		return nil, err
	}
	if dol.BssSize, err = common.ReadUint32BE(reader); err != nil {
		return nil, err
	}
	if dol.EntryPoint, err = common.ReadUint32BE(reader); err != nil {
		return nil, err
	}
	return dol, nil
}

// SectionsByOffset returns the sections sorted by DOL file offset
func (d *DolFile) SectionsByOffset() []*DolSection {
	sections := append([]*DolSection(nil), d.Sections...)
	sort.Slice(sections, func(i, j int) bool { return sections[i].Offset < sections[j].Offset })
	return sections
}

// SectionsByAddress returns the sections sorted by memory address
func (d *DolFile) SectionsByAddress() []*DolSection {
	sections := append([]*DolSection(nil), d.Sections...)
	sort.Slice(sections, func(i, j int) bool { return sections[i].Address < sections[j].Address })
	return sections
}

// SectionByAddress returns the section a memory address falls into, or nil
func (d *DolFile) SectionByAddress(address uint32) *DolSection {
	for _, section := range d.Sections {
		if address >= section.Address && address < section.EndAddress() {
			return section
		}
	}
	return nil
}

// SectionByOffset returns the section a DOL file offset falls into, or nil
func (d *DolFile) SectionByOffset(offset uint32) *DolSection {
	for _, section := range d.Sections {
		if offset >= section.Offset && offset < section.EndOffset() {
			return section
		}
	}
	return nil
}

// AddressToOffset maps a memory address to its DOL file offset. The
// second return value is false if the address is outside every section.
func (d *DolFile) AddressToOffset(address uint32) (uint32, bool) {
	section := d.SectionByAddress(address)
	if section == nil {
		return 0, false
	}
	return section.Offset + (address - section.Address), true
}

// OffsetToAddress maps a DOL file offset to the memory address its data
// is loaded to. The second return value is false if the offset is outside
// every section.
func (d *DolFile) OffsetToAddress(offset uint32) (uint32, bool) {
	section := d.SectionByOffset(offset)
	if section == nil {
		return 0, false
	}
	return section.Address + (offset - section.Offset), true
}

// IsMappedContiguous reports whether the file range [start, end) is
// loaded to a contiguous range of memory. end is exclusive: the byte at
// end itself may land elsewhere.
func (d *DolFile) IsMappedContiguous(start, end uint32) bool {
	section := d.SectionByOffset(start)
	if section == nil {
		return false
	}
	if end <= section.EndOffset() {
		return true
	}
	// The range spills into the next section: it stays contiguous only
	// if the next section in file order is also next in memory order
	// with no gap either way
	byOffset := d.SectionsByOffset()
	byAddress := d.SectionsByAddress()
	offsetIndex := sectionIndex(byOffset, section)
	addressIndex := sectionIndex(byAddress, section)
	if offsetIndex+1 >= len(byOffset) || addressIndex+1 >= len(byAddress) {
		return false
	}
	next := byOffset[offsetIndex+1]
	if next != byAddress[addressIndex+1] || !section.IsBefore(next) {
		return false
	}
	return d.IsMappedContiguous(next.Offset, end)
}

// IsMappedContiguousMem is IsMappedContiguous with memory addresses as
// inputs
func (d *DolFile) IsMappedContiguousMem(startAddress, endAddress uint32) bool {
	start, ok := d.AddressToOffset(startAddress)
	if !ok {
		return false
	}
	end, ok := d.AddressToOffset(endAddress)
	if !ok {
		return false
	}
	return d.IsMappedContiguous(start, end)
}

func sectionIndex(sections []*DolSection, target *DolSection) int {
	for i, section := range sections {
		if section == target {
			return i
		}
	}
	return -1
}
