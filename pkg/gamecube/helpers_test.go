// Package gamecube provides shared test fixtures
package gamecube

import "encoding/binary"

// bareImage builds a minimal valid disc image: boot header, apploader
// header and a root-only FST at 0x10000. The system area between the
// headers is zero filler standing in for apploader code and DOL.
func bareImage() []byte {
	data := make([]byte, 0x10000+FstEntrySize)

	copy(data, "GTST01")
	data[7] = 1 // version
	copy(data[GameNameOffset:], "Test Game")

	binary.BigEndian.PutUint32(data[LayoutFieldsOffset:], 0x8000)    // DOL
	binary.BigEndian.PutUint32(data[LayoutFieldsOffset+4:], 0x10000) // FST
	binary.BigEndian.PutUint32(data[LayoutFieldsOffset+8:], FstEntrySize)
	binary.BigEndian.PutUint32(data[LayoutFieldsOffset+12:], 0x1000) // max FST

	copy(data[ApploaderOffset:], "2024/01/01")
	binary.BigEndian.PutUint32(data[ApploaderOffset+0x10:], 0x81200000) // entry point
	binary.BigEndian.PutUint32(data[ApploaderOffset+0x14:], 0x2000)    // code size
	binary.BigEndian.PutUint32(data[ApploaderOffset+0x18:], 0x100)     // trailer size

	// Root-only FST: one directory entry whose next index is the count
	binary.BigEndian.PutUint32(data[0x10000:], 0x01<<24)
	binary.BigEndian.PutUint32(data[0x10008:], 1)

	return data
}
