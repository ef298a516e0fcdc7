// Package common provides tests for utility functions
package common

import (
	"bytes"
	"testing"
)

func TestReadUint16BE(t *testing.T) {
	testCases := []struct {
		name     string
		data     []byte
		expected uint16
		hasError bool
	}{
		{"normal value", []byte{0x12, 0x34}, 0x1234, false},
		{"zero value", []byte{0x00, 0x00}, 0x0000, false},
		{"max value", []byte{0xFF, 0xFF}, 0xFFFF, false},
		{"incomplete data", []byte{0x12}, 0, true},
		{"empty data", []byte{}, 0, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			reader := bytes.NewReader(tc.data)
			result, err := ReadUint16BE(reader)

			if tc.hasError {
				if err == nil {
					t.Errorf("ReadUint16BE() should fail with data %v", tc.data)
				}
			} else {
				if err != nil {
					t.Errorf("ReadUint16BE() failed: %v", err)
				}
				if result != tc.expected {
					t.Errorf("ReadUint16BE() = 0x%04X, want 0x%04X", result, tc.expected)
				}
			}
		})
	}
}

func TestReadUint32BE(t *testing.T) {
	testCases := []struct {
		name     string
		data     []byte
		expected uint32
		hasError bool
	}{
		{"normal value", []byte{0x12, 0x34, 0x56, 0x78}, 0x12345678, false},
		{"zero value", []byte{0x00, 0x00, 0x00, 0x00}, 0x00000000, false},
		{"max value", []byte{0xFF, 0xFF, 0xFF, 0xFF}, 0xFFFFFFFF, false},
		{"incomplete data", []byte{0x12, 0x34, 0x56}, 0, true},
		{"empty data", []byte{}, 0, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			reader := bytes.NewReader(tc.data)
			result, err := ReadUint32BE(reader)

			if tc.hasError {
				if err == nil {
					t.Errorf("ReadUint32BE() should fail with data %v", tc.data)
				}
			} else {
				if err != nil {
					t.Errorf("ReadUint32BE() failed: %v", err)
				}
				if result != tc.expected {
					t.Errorf("ReadUint32BE() = 0x%08X, want 0x%08X", result, tc.expected)
				}
			}
		})
	}
}

func TestReadBytes(t *testing.T) {
	testCases := []struct {
		name     string
		data     []byte
		count    int
		hasError bool
	}{
		{"normal read", []byte{1, 2, 3, 4}, 4, false},
		{"partial read", []byte{1, 2, 3, 4}, 2, false},
		{"zero read", []byte{1, 2}, 0, false},
		{"short data", []byte{1, 2}, 4, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			reader := bytes.NewReader(tc.data)
			result, err := ReadBytes(reader, tc.count)

			if tc.hasError {
				if err == nil {
					t.Errorf("ReadBytes() should fail reading %d of %d bytes", tc.count, len(tc.data))
				}
			} else {
				if err != nil {
					t.Errorf("ReadBytes() failed: %v", err)
				}
				if !bytes.Equal(result, tc.data[:tc.count]) {
					t.Errorf("ReadBytes() = %v, want %v", result, tc.data[:tc.count])
				}
			}
		})
	}
}

func TestSkipBytes(t *testing.T) {
	testCases := []struct {
		name     string
		data     []byte
		count    int
		hasError bool
	}{
		{"skip within data", []byte{1, 2, 3, 4}, 2, false},
		{"skip all data", []byte{1, 2, 3, 4}, 4, false},
		{"skip nothing", []byte{1, 2}, 0, false},
		{"skip past end", []byte{1, 2}, 4, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			reader := bytes.NewReader(tc.data)
			err := SkipBytes(reader, tc.count)

			if tc.hasError {
				if err == nil {
					t.Errorf("SkipBytes() should fail skipping %d of %d bytes", tc.count, len(tc.data))
				}
			} else {
				if err != nil {
					t.Errorf("SkipBytes() failed: %v", err)
				}
				if reader.Len() != len(tc.data)-tc.count {
					t.Errorf("SkipBytes() left %d bytes, want %d", reader.Len(), len(tc.data)-tc.count)
				}
			}
		})
	}
}

func TestZeroTerminated(t *testing.T) {
	data := []byte("GAME\x00NAME\x00\x00padding")

	testCases := []struct {
		name     string
		offset   int
		maxLen   int
		expected string
	}{
		{"first string", 0, 16, "GAME"},
		{"second string", 5, 16, "NAME"},
		{"empty string", 9, 16, ""},
		{"bounded read", 0, 2, "GA"},
		{"offset past end", 100, 16, ""},
		{"negative offset", -1, 16, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := ZeroTerminated(data, tc.offset, tc.maxLen)
			if result != tc.expected {
				t.Errorf("ZeroTerminated(%d, %d) = %q, want %q", tc.offset, tc.maxLen, result, tc.expected)
			}
		})
	}
}
