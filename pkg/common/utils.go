package common

import (
	"encoding/binary"
	"fmt"
	"io"
)

// ReadUint16BE reads a uint16 in big-endian format
func ReadUint16BE(reader io.Reader) (uint16, error) {
	var value uint16
	err := binary.Read(reader, binary.BigEndian, &value)
	return value, err
}

// ReadUint32BE reads a uint32 in big-endian format
func ReadUint32BE(reader io.Reader) (uint32, error) {
	var value uint32
	err := binary.Read(reader, binary.BigEndian, &value)
	return value, err
}

// ReadBytes reads a specified number of bytes
func ReadBytes(reader io.Reader, count int) ([]byte, error) {
	buffer := make([]byte, count)
	n, err := io.ReadFull(reader, buffer)
	if err != nil {
		return nil, err
	}
	if n != count {
		return nil, fmt.Errorf("expected to read %d bytes, got %d", count, n)
	}
	return buffer, nil
}

// SkipBytes skips a specified number of bytes in the reader
func SkipBytes(reader io.Reader, count int) error {
	_, err := io.CopyN(io.Discard, reader, int64(count))
	return err
}

// ZeroTerminated returns the bytes of b starting at offset up to the first
// null byte, reading at most maxLen bytes. GameCube header and banner
// strings are stored this way, padded with nulls to a fixed field size.
func ZeroTerminated(b []byte, offset, maxLen int) string {
	if offset < 0 || offset >= len(b) {
		return ""
	}
	end := offset + maxLen
	if maxLen <= 0 || end > len(b) {
		end = len(b)
	}
	for i := offset; i < end; i++ {
		if b[i] == 0 {
			return string(b[offset:i])
		}
	}
	return string(b[offset:end])
}
