package mathutil

import (
	"math/big"
	"unsafe"
)

const bitsInWord = int(unsafe.Sizeof(uint64(0)) * 8)

var (
	bigFive = big.NewInt(5)
)

// Mask64 returns a value with the lowest 'width' bits set.
// Widths of 64 and more produce an all-ones value.
func Mask64(width int) uint64 {
	if width <= 0 {
		return 0
	}
	if width >= bitsInWord {
		return ^uint64(0)
	}
	return 1<<uint(width) - 1
}

// CeilDiv returns ceil(a/b) for non-negative a and positive b.
func CeilDiv(a, b int) int {
	return (a + b - 1) / b
}

// ClampInt limits v to the [lo, hi] range.
func ClampInt(v, lo, hi int) int {
	switch {
	case v < lo:
		return lo
	case v > hi:
		return hi
	default:
		return v
	}
}

// Pow5 returns 5^n.
func Pow5(n int) *big.Int {
	return new(big.Int).Exp(bigFive, big.NewInt(int64(n)), nil)
}

func AbsInt(val int) int {
	mask := val >> (unsafe.Sizeof(int(0))*8 - 1)
	return (val + mask) ^ mask
}
