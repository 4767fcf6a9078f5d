// Copyright 2020 Aleksandr Demakin. All rights reserved.

package fpbits

import (
	"math"
	"math/big"

	mu "github.com/avdva/fpbits/internal/mathutil"

	"github.com/shopspring/decimal"
)

const (
	minMantissaDigits = 3
	maxMantissaDigits = 16

	// maxExactShift limits the power of two ExactDecimal expands.
	// FP64's smallest subnormal needs 1074.
	maxExactShift = 1 << 14

	mantissaZero = "0.0"
	mantissaInf  = "Infinity"
	mantissaNaN  = "NaN"
)

// Decoded is a value of a bit pattern along with its decomposition:
//	Value = SignFactor * 2^Exponent * mantissa
type Decoded struct {
	// Value is the real value, rounded to the nearest float64 if needed.
	Value float64
	Class Class
	// SignFactor is -1 or 1, or NaN for NaNs.
	SignFactor float64
	// Exponent is the unbiased power of two. +Inf for infinities, NaN for NaNs.
	Exponent float64
	// Mantissa is a decimal representation of the mantissa, like "1.25".
	Mantissa string
}

// Decode returns the value represented by the fields in the format.
// Fields are truncated to their widths first.
func Decode(f Format, sign, exponent, fraction uint64) Decoded {
	sign &= f.signMask()
	exponent &= f.expAllOnes()
	fraction &= f.fracMask()
	class := Classify(f, exponent, fraction)
	signFactor := 1.0
	if sign != 0 {
		signFactor = -1
	}
	switch class {
	case NaN:
		return Decoded{
			Value:      math.NaN(),
			Class:      NaN,
			SignFactor: math.NaN(),
			Exponent:   math.NaN(),
			Mantissa:   mantissaNaN,
		}
	case Infinity:
		return Decoded{
			Value:      math.Copysign(math.Inf(1), signFactor),
			Class:      Infinity,
			SignFactor: signFactor,
			Exponent:   math.Inf(1),
			Mantissa:   mantissaInf,
		}
	case Zero:
		return Decoded{
			Value:      math.Copysign(0, signFactor),
			Class:      Zero,
			SignFactor: signFactor,
			Mantissa:   mantissaZero,
		}
	}
	e, significand := split(f, class, exponent, fraction)
	return Decoded{
		Value:      math.Copysign(math.Ldexp(float64(significand), int(e)-f.frac), signFactor),
		Class:      class,
		SignFactor: signFactor,
		Exponent:   float64(e),
		Mantissa:   formatMantissa(significand, f.frac),
	}
}

// Decode returns the value the fields represent in the format, see Decode.
func (fl Fields) Decode(f Format) Decoded {
	return Decode(f, fl.Sign, fl.Exponent, fl.Fraction)
}

// DecodeBits unpacks and decodes a bit pattern.
func DecodeBits(f Format, b Bits) Decoded {
	return Unpack(f, b).Decode(f)
}

// ExactDecimal returns the exact decimal value of a finite pattern.
// Returns false for infinities, NaNs, and values too large to expand.
// Negative zero is returned as zero.
func ExactDecimal(f Format, sign, exponent, fraction uint64) (decimal.Decimal, bool) {
	sign &= f.signMask()
	exponent &= f.expAllOnes()
	fraction &= f.fracMask()
	class := Classify(f, exponent, fraction)
	switch class {
	case NaN, Infinity:
		return decimal.Zero, false
	case Zero:
		return decimal.Zero, true
	}
	e, significand := split(f, class, exponent, fraction)
	shift := e - int64(f.frac)
	if mu.AbsInt(int(shift)) > maxExactShift {
		return decimal.Zero, false
	}
	value := new(big.Int).SetUint64(significand)
	var result decimal.Decimal
	if shift >= 0 {
		result = decimal.NewFromBigInt(value.Lsh(value, uint(shift)), 0)
	} else {
		// m * 2^-k = m * 5^k * 10^-k
		result = decimal.NewFromBigInt(value.Mul(value, mu.Pow5(int(-shift))), int32(shift))
	}
	if sign != 0 {
		result = result.Neg()
	}
	return result, true
}

// split returns the unbiased exponent and the integer significand of a finite nonzero value,
// so that |value| = significand * 2^(e - fractionBits).
func split(f Format, class Class, exponent, fraction uint64) (e int64, significand uint64) {
	if class == Subnormal {
		return f.minExp(), fraction
	}
	return int64(exponent) - int64(f.bias), 1<<uint(f.frac) | fraction
}

// formatMantissa returns significand/2^fracBits rounded to a number of digits,
// that depends on fracBits, without trailing zeros.
func formatMantissa(significand uint64, fracBits int) string {
	digits := mu.ClampInt(mu.CeilDiv(fracBits, 3), minMantissaDigits, maxMantissaDigits)
	value := new(big.Int).SetUint64(significand)
	// significand / 2^k = significand * 5^k / 10^k, which is exact.
	exact := decimal.NewFromBigInt(value.Mul(value, mu.Pow5(fracBits)), -int32(fracBits))
	return exact.Round(int32(digits)).String()
}
