// Package common provides common utilities for GameCube disc operations.
// This file contains alignment helpers and internal name validation.
package common

// IsPowerOfTwo reports whether v is a non-zero power of two
func IsPowerOfTwo(v uint32) bool {
	return v != 0 && v&(v-1) == 0
}

// AlignUp rounds value up to the next multiple of alignment.
// Alignment must be a power of two.
func AlignUp(value int64, alignment uint32) int64 {
	a := int64(alignment)
	return (value + a - 1) &^ (a - 1)
}

// IsValidNodeName checks if a name is usable as a GameCube FST entry name.
// Names are case-sensitive ASCII, at most 255 bytes, and may not contain
// the path separator or a null byte.
func IsValidNodeName(name string) bool {
	if len(name) == 0 || len(name) > 255 {
		return false
	}
	for _, b := range []byte(name) {
		if b == 0x00 || b == '/' {
			return false
		}
		if b < 0x20 || b >= 0x7F {
			return false
		}
	}
	return true
}
