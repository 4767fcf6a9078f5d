// Copyright 2020 Aleksandr Demakin. All rights reserved.

package fpbits

// Class is a category of a floating-point value.
type Class int

const (
	// Zero is a positive or negative zero.
	Zero Class = iota
	// Subnormal is a nonzero value with an all-zero exponent field.
	Subnormal
	// Normal is a finite value with an implicit leading 1 in the mantissa.
	Normal
	// Infinity is a positive or negative infinity.
	Infinity
	// NaN is not-a-number.
	NaN
)

var classNames = [...]string{
	Zero:      "zero",
	Subnormal: "subnormal",
	Normal:    "normal",
	Infinity:  "infinity",
	NaN:       "nan",
}

// String returns a lower-case name of the class.
func (c Class) String() string {
	if c < 0 || int(c) >= len(classNames) {
		return "unknown"
	}
	return classNames[c]
}

// Classify returns the class of a value with given exponent and fraction fields.
// Fields are truncated to their widths first.
//
// For formats without exponent bits the zero exponent field is also the all-ones one,
// so such values are either infinities or NaNs.
func Classify(f Format, exponent, fraction uint64) Class {
	exponent &= f.expAllOnes()
	fraction &= f.fracMask()
	switch {
	case f.exp == 0 && fraction == 0:
		return Infinity
	case f.exp == 0:
		return NaN
	case exponent == 0 && fraction == 0:
		return Zero
	case exponent == 0:
		return Subnormal
	case exponent == f.expAllOnes() && fraction == 0:
		return Infinity
	case exponent == f.expAllOnes():
		return NaN
	default:
		return Normal
	}
}

// Classify returns the class of the value the fields represent in the format.
func (fl Fields) Classify(f Format) Class {
	return Classify(f, fl.Exponent, fl.Fraction)
}
