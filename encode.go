// Copyright 2020 Aleksandr Demakin. All rights reserved.

package fpbits

import (
	"math"
)

// Encode returns the fields of the representable value nearest to x.
// Ties are rounded to even. Values above the largest finite number become infinities,
// values below half of the smallest subnormal become zeros of the same sign.
// Every NaN is encoded as the canonical quiet NaN: positive, with only the top fraction bit set.
// Formats without a sign bit encode |x|.
// Formats without exponent bits hold only infinities and NaNs: zeros and values of 1 and above
// get the infinity fields, smaller values keep their rounded fraction and decode as NaNs.
//
// Encode is the only conversion from a real number, so that re-encoding a decoded value
// always yields the same pattern.
func Encode(f Format, x float64) Fields {
	if math.IsNaN(x) {
		return f.quietNaN()
	}
	var sign uint64
	if math.Signbit(x) {
		sign = 1 & f.signMask()
	}
	if math.IsInf(x, 0) {
		return f.inf(sign)
	}
	if x == 0 {
		return Fields{Sign: sign}
	}
	frac, exp := math.Frexp(math.Abs(x))
	// frac is in [0.5, 1), so that |x| = m * 2^e, m in [1, 2).
	e, m := int64(exp-1), frac*2
	minExp, maxExp := f.minExp(), f.maxExp()
	if e > maxExp {
		return f.inf(sign)
	}
	if e < minExp {
		return f.encodeSubnormal(sign, math.Abs(x))
	}
	fraction := roundToInt(math.Ldexp(m-1, f.frac))
	if fraction > f.fracMask() { // mantissa rounded up to 2.0
		fraction = 0
		if e++; e > maxExp {
			return f.inf(sign)
		}
	}
	return Fields{
		Sign:     sign,
		Exponent: uint64(e + int64(f.bias)),
		Fraction: fraction,
	}
}

// EncodeBits encodes x and packs the result into a bit pattern.
func EncodeBits(f Format, x float64) Bits {
	return Encode(f, x).Pack(f)
}

// encodeSubnormal encodes ax, which is below the smallest normal number.
func (f Format) encodeSubnormal(sign uint64, ax float64) Fields {
	scaled := math.Ldexp(ax, int(int64(f.frac)-f.minExp()))
	fraction := roundToInt(scaled)
	switch {
	case fraction == 0:
		return Fields{Sign: sign}
	case fraction > f.fracMask():
		// the smallest normal number, or the infinity without exponent bits.
		return Fields{Sign: sign, Exponent: 1 & f.expAllOnes()}
	default:
		return Fields{Sign: sign, Fraction: fraction}
	}
}

func (f Format) inf(sign uint64) Fields {
	return Fields{
		Sign:     sign,
		Exponent: f.expAllOnes(),
	}
}

func (f Format) quietNaN() Fields {
	var fraction uint64
	if f.frac > 0 {
		fraction = 1 << uint(f.frac-1)
	}
	return Fields{
		Exponent: f.expAllOnes(),
		Fraction: fraction,
	}
}

// roundToInt rounds a non-negative v to the nearest integer, ties to even.
func roundToInt(v float64) uint64 {
	r := math.RoundToEven(v)
	if r >= 1<<64 {
		return math.MaxUint64
	}
	return uint64(r)
}
