package common

import (
	"fmt"
	"math"
)

// Uint24Max is the largest value that fits in the 24-bit FST name offset field
const Uint24Max = 0xFFFFFF

// SafeIntToUint32 safely converts int to uint32 with bounds checking
func SafeIntToUint32(value int) (uint32, error) {
	if value < 0 {
		return 0, fmt.Errorf("value %d is negative, cannot convert to uint32", value)
	}
	if int64(value) > math.MaxUint32 {
		return 0, fmt.Errorf("value %d out of range for uint32 (0-%d)", value, uint32(math.MaxUint32))
	}
	return uint32(value), nil
}

// SafeInt64ToUint32 safely converts int64 to uint32 with bounds checking
func SafeInt64ToUint32(value int64) (uint32, error) {
	if value < 0 {
		return 0, fmt.Errorf("value %d is negative, cannot convert to uint32", value)
	}
	if value > math.MaxUint32 {
		return 0, fmt.Errorf("value %d out of range for uint32 (0-%d)", value, uint32(math.MaxUint32))
	}
	return uint32(value), nil
}

// SafeIntToUint24 safely converts int to a 24-bit unsigned value with
// bounds checking (used for FST string table offsets)
func SafeIntToUint24(value int) (uint32, error) {
	if value < 0 || value > Uint24Max {
		return 0, fmt.Errorf("value %d out of range for uint24 (0-%d)", value, Uint24Max)
	}
	return uint32(value), nil
}
