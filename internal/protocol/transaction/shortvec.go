package transaction

import (
	"errors"
	"fmt"
)

// maxCompactU16 is the largest value representable by the compact-u16 encoding.
const maxCompactU16 = 1<<16 - 1

var errShortVecOverflow = errors.New("compact-u16 overflow")

// AppendCompactU16 appends n encoded as 7-bit groups, least significant first,
// with the high bit set on every byte but the last.
func AppendCompactU16(b []byte, n int) ([]byte, error) {
	if n < 0 || n > maxCompactU16 {
		return b, fmt.Errorf("compact-u16 %d: %w", n, errShortVecOverflow)
	}
	for {
		elem := byte(n & 0x7f)
		n >>= 7
		if n == 0 {
			return append(b, elem), nil
		}
		b = append(b, elem|0x80)
	}
}

// DecodeCompactU16 decodes a compact-u16 from the start of b and returns the
// value and the number of bytes consumed.
func DecodeCompactU16(b []byte) (int, int, error) {
	var n int
	for i := 0; i < 3; i++ {
		if i >= len(b) {
			return 0, 0, errors.New("compact-u16: unexpected end of input")
		}
		n |= int(b[i]&0x7f) << (7 * i)
		if b[i]&0x80 == 0 {
			if n > maxCompactU16 {
				return 0, 0, errShortVecOverflow
			}
			return n, i + 1, nil
		}
	}
	return 0, 0, errShortVecOverflow
}
