package gamecube

import "errors"

// Error taxonomy of the disc image core. All failures surface as one of
// these sentinels, wrapped with context via fmt.Errorf and %w.
var (
	// ErrCorruptFst indicates a structural violation of the FST invariants
	// during decode. Decoding aborts and no partial tree is returned.
	ErrCorruptFst = errors.New("corrupt file system table")

	// ErrOutOfBounds indicates a file or FST reference past the end of the
	// source image
	ErrOutOfBounds = errors.New("reference out of image bounds")

	// ErrNotFound indicates a path that does not resolve to a node
	ErrNotFound = errors.New("no such file or directory")

	// ErrNameCollision indicates a mutation that would create two siblings
	// with the same (case-sensitive) name. The tree is left unchanged.
	ErrNameCollision = errors.New("name already exists in directory")

	// ErrLayoutOverflow indicates the rebuilt image layout cannot be
	// satisfied (regions would overlap or offsets exceed 32 bits)
	ErrLayoutOverflow = errors.New("image layout overflow")

	// ErrFileTooLarge indicates a file whose length exceeds the 32-bit
	// range of the FST length field
	ErrFileTooLarge = errors.New("file too large")
)
