// Copyright 2020 Aleksandr Demakin. All rights reserved.

package fpbits

import (
	"strings"

	mu "github.com/avdva/fpbits/internal/mathutil"
)

// Bits is a bit pattern of a format. Only the lowest Format.TotalBits() bits are significant.
type Bits uint64

// Fields holds the three fields of a bit pattern, each right-aligned.
type Fields struct {
	Sign     uint64
	Exponent uint64
	Fraction uint64
}

// Pack composes a bit pattern from the fields.
// Every field is truncated to its width, so out-of-range inputs lose their high bits.
func Pack(f Format, sign, exponent, fraction uint64) Bits {
	sign &= f.signMask()
	exponent &= f.expAllOnes()
	fraction &= f.fracMask()
	b := sign<<uint(f.exp+f.frac) | exponent<<uint(f.frac) | fraction
	return Bits(b) & f.Mask()
}

// Unpack splits a bit pattern into the fields. Pack(Unpack(b)) == b for every b within the format's width.
func Unpack(f Format, b Bits) Fields {
	u := uint64(b)
	return Fields{
		Sign:     u >> uint(f.exp+f.frac) & f.signMask(),
		Exponent: u >> uint(f.frac) & f.expAllOnes(),
		Fraction: u & f.fracMask(),
	}
}

// Pack composes a bit pattern from the fields, see Pack.
func (fl Fields) Pack(f Format) Bits {
	return Pack(f, fl.Sign, fl.Exponent, fl.Fraction)
}

// ToggleBit flips the i-th bit of b, where bit 0 is the least significant one.
// Indices beyond 63 leave b unchanged. ToggleBit knows no format, so it may set bits
// above a format's width: mask the result with Format.Mask, or use Editor.ToggleBit,
// which rejects such indices.
func ToggleBit(b Bits, i uint) Bits {
	if i >= maxTotalBits {
		return b
	}
	return b ^ 1<<i
}

// Mask returns a pattern with all the format's bits set.
func (f Format) Mask() Bits {
	return Bits(mu.Mask64(f.TotalBits()))
}

// FormatBinary renders b as binary digits, most significant bit first,
// with the sign, exponent, and fraction groups separated by spaces.
// Empty groups are omitted.
func FormatBinary(f Format, b Bits) string {
	fields := Unpack(f, b)
	var builder strings.Builder
	builder.Grow(f.TotalBits() + 2)
	writeGroup := func(v uint64, width int) {
		if width == 0 {
			return
		}
		if builder.Len() > 0 {
			builder.WriteByte(' ')
		}
		for i := width - 1; i >= 0; i-- {
			builder.WriteByte('0' + byte(v>>uint(i)&1))
		}
	}
	writeGroup(fields.Sign, f.sign)
	writeGroup(fields.Exponent, f.exp)
	writeGroup(fields.Fraction, f.frac)
	return builder.String()
}

func (f Format) signMask() uint64 {
	return mu.Mask64(f.sign)
}

// expAllOnes returns the largest exponent field value, which is also the exponent mask.
func (f Format) expAllOnes() uint64 {
	return mu.Mask64(f.exp)
}

func (f Format) fracMask() uint64 {
	return mu.Mask64(f.frac)
}
