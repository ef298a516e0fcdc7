// Package common provides common utilities for GameCube disc image processing.
// This file contains a big-endian cursor over an in-memory byte buffer.
package common

import (
	"encoding/binary"
	"fmt"
)

// ByteCursor provides sequential and random access big-endian reads and
// writes over a byte slice. GameCube disc structures are all big-endian,
// so every multi-byte accessor on this type is big-endian.
type ByteCursor struct {
	data []byte
	pos  int
}

// NewByteCursor creates a cursor positioned at the start of data.
// The cursor does not copy data; writes modify the underlying slice.
func NewByteCursor(data []byte) *ByteCursor {
	return &ByteCursor{data: data}
}

// Seek moves the cursor to an absolute offset
func (c *ByteCursor) Seek(offset int) error {
	if offset < 0 || offset > len(c.data) {
		return fmt.Errorf("seek offset %d out of range (size %d)", offset, len(c.data))
	}
	c.pos = offset
	return nil
}

// Tell returns the current cursor position
func (c *ByteCursor) Tell() int {
	return c.pos
}

// Len returns the total size of the underlying buffer
func (c *ByteCursor) Len() int {
	return len(c.data)
}

// Remaining returns the number of bytes between the cursor and the end
func (c *ByteCursor) Remaining() int {
	return len(c.data) - c.pos
}

func (c *ByteCursor) require(count int) error {
	if c.pos+count > len(c.data) {
		return fmt.Errorf("need %d bytes at offset %d, only %d available", count, c.pos, len(c.data)-c.pos)
	}
	return nil
}

// ReadUint8 reads a single byte
func (c *ByteCursor) ReadUint8() (uint8, error) {
	if err := c.require(1); err != nil {
		return 0, err
	}
	value := c.data[c.pos]
	c.pos++
	return value, nil
}

// ReadUint16 reads a big-endian uint16
func (c *ByteCursor) ReadUint16() (uint16, error) {
	if err := c.require(2); err != nil {
		return 0, err
	}
	value := binary.BigEndian.Uint16(c.data[c.pos:])
	c.pos += 2
	return value, nil
}

// ReadUint32 reads a big-endian uint32
func (c *ByteCursor) ReadUint32() (uint32, error) {
	if err := c.require(4); err != nil {
		return 0, err
	}
	value := binary.BigEndian.Uint32(c.data[c.pos:])
	c.pos += 4
	return value, nil
}

// ReadBytes reads count bytes into a fresh slice
func (c *ByteCursor) ReadBytes(count int) ([]byte, error) {
	if count < 0 {
		return nil, fmt.Errorf("negative read count %d", count)
	}
	if err := c.require(count); err != nil {
		return nil, err
	}
	buffer := make([]byte, count)
	copy(buffer, c.data[c.pos:])
	c.pos += count
	return buffer, nil
}

// ReadString reads a zero-terminated string padded to a fixed field of
// maxLen bytes, advancing the cursor past the whole field
func (c *ByteCursor) ReadString(maxLen int) (string, error) {
	if err := c.require(maxLen); err != nil {
		return "", err
	}
	value := ZeroTerminated(c.data, c.pos, maxLen)
	c.pos += maxLen
	return value, nil
}

// Skip advances the cursor by count bytes
func (c *ByteCursor) Skip(count int) error {
	if err := c.require(count); err != nil {
		return err
	}
	c.pos += count
	return nil
}

// WriteUint32 writes a big-endian uint32 at the current position
func (c *ByteCursor) WriteUint32(value uint32) error {
	if err := c.require(4); err != nil {
		return err
	}
	binary.BigEndian.PutUint32(c.data[c.pos:], value)
	c.pos += 4
	return nil
}

// WriteBytes writes raw bytes at the current position
func (c *ByteCursor) WriteBytes(data []byte) error {
	if err := c.require(len(data)); err != nil {
		return err
	}
	copy(c.data[c.pos:], data)
	c.pos += len(data)
	return nil
}
