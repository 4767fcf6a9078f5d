// Copyright 2020 Aleksandr Demakin. All rights reserved.

// Package fpbits implements a codec between binary floating-point bit patterns
// and real numbers for IEEE-754-style layouts of arbitrary widths.
//
// A Format describes the layout: up to one sign bit, up to 32 exponent bits,
// and up to 32 fraction bits for user-defined layouts (built-in formats,
// like FP64, may be wider). A pattern never exceeds 64 bits, so it is stored
// as a uint64, see Bits.
//
//   total-1  ...                                                        0
//   ________|_________________________|_________________________________
//   s        eeeeeeeeeeeeeeeeeeeeeeeee mmmmmmmmmmmmmmmmmmmmmmmmmmmmmmmmm
//
// All the codec functions are pure and safe for concurrent use.
package fpbits

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	maxTotalBits       = 64
	maxSignBits        = 1
	maxCustomExpBits   = 32
	maxCustomFracBits  = 32
	signedNamePrefix   = 'S'
	unsignedNamePrefix = 'U'
)

var (
	// ErrInvalidFormat is returned for layouts that cannot be represented.
	ErrInvalidFormat = errors.New("invalid format")
)

// Format is an immutable description of a floating-point bit layout.
// The zero Format has no bits at all.
type Format struct {
	name   string
	sign   int
	exp    int
	frac   int
	bias   int
	custom bool
}

var (
	// FP64 is the IEEE-754 binary64 format.
	FP64 = newFormat("FP64", 1, 11, 52, false)
	// FP32 is the IEEE-754 binary32 format.
	FP32 = newFormat("FP32", 1, 8, 23, false)
	// FP16 is the IEEE-754 binary16 format.
	FP16 = newFormat("FP16", 1, 5, 10, false)
	// BF16 is the bfloat16 format: binary32 with a truncated fraction.
	BF16 = newFormat("BF16", 1, 8, 7, false)
	// FP8E5M2 is an 8-bit format with 5 exponent and 2 fraction bits.
	FP8E5M2 = newFormat("FP8E5M2", 1, 5, 2, false)
	// FP8E4M3 is an 8-bit format with 4 exponent and 3 fraction bits.
	FP8E4M3 = newFormat("FP8E4M3", 1, 4, 3, false)

	builtins = []Format{FP64, FP32, FP16, BF16, FP8E5M2, FP8E4M3}
)

// Builtins returns the built-in formats in their display order.
func Builtins() []Format {
	result := make([]Format, len(builtins))
	copy(result, builtins)
	return result
}

// NewFormat returns a user-defined format with the given field widths.
// signBits must be 0 or 1, exponentBits and fractionBits must be in [0, 32],
// and the whole pattern must fit 64 bits.
// The bias is derived from the exponent width, the name - from all the widths, see Format.Name.
func NewFormat(signBits, exponentBits, fractionBits int) (Format, error) {
	switch {
	case signBits < 0 || exponentBits < 0 || fractionBits < 0:
		return Format{}, fmt.Errorf("%w: negative width (%d, %d, %d)", ErrInvalidFormat, signBits, exponentBits, fractionBits)
	case signBits > maxSignBits:
		return Format{}, fmt.Errorf("%w: %d sign bits", ErrInvalidFormat, signBits)
	case exponentBits > maxCustomExpBits:
		return Format{}, fmt.Errorf("%w: %d exponent bits exceed %d", ErrInvalidFormat, exponentBits, maxCustomExpBits)
	case fractionBits > maxCustomFracBits:
		return Format{}, fmt.Errorf("%w: %d fraction bits exceed %d", ErrInvalidFormat, fractionBits, maxCustomFracBits)
	}
	if total := signBits + exponentBits + fractionBits; total > maxTotalBits {
		return Format{}, fmt.Errorf("%w: total width %d exceeds %d bits", ErrInvalidFormat, total, maxTotalBits)
	}
	return newFormat(formatName(signBits, exponentBits, fractionBits), signBits, exponentBits, fractionBits, true), nil
}

// MustFormat is like NewFormat, but panics on error.
func MustFormat(signBits, exponentBits, fractionBits int) Format {
	f, err := NewFormat(signBits, exponentBits, fractionBits)
	if err != nil {
		panic(err)
	}
	return f
}

// ParseName returns a format for a built-in name, like "FP32" (case-insensitive),
// or a derived name, like "S1E4M3".
func ParseName(name string) (Format, error) {
	name = strings.TrimSpace(name)
	for _, f := range builtins {
		if strings.EqualFold(f.name, name) {
			return f, nil
		}
	}
	sign, exp, frac, err := parseDerivedName(strings.ToUpper(name))
	if err != nil {
		return Format{}, fmt.Errorf("%w: unknown format %q", ErrInvalidFormat, name)
	}
	return NewFormat(sign, exp, frac)
}

// parseDerivedName parses [S|U]<sign>E<exp>M<frac>.
func parseDerivedName(s string) (sign, exp, frac int, err error) {
	if len(s) == 0 || (s[0] != signedNamePrefix && s[0] != unsignedNamePrefix) {
		return 0, 0, 0, errors.New("bad prefix")
	}
	ePos, mPos := strings.IndexByte(s, 'E'), strings.IndexByte(s, 'M')
	if ePos < 0 || mPos < ePos {
		return 0, 0, 0, errors.New("bad layout")
	}
	if sign, err = strconv.Atoi(s[1:ePos]); err != nil {
		return 0, 0, 0, err
	}
	if exp, err = strconv.Atoi(s[ePos+1 : mPos]); err != nil {
		return 0, 0, 0, err
	}
	if frac, err = strconv.Atoi(s[mPos+1:]); err != nil {
		return 0, 0, 0, err
	}
	if (s[0] == signedNamePrefix) != (sign == 1) {
		return 0, 0, 0, errors.New("prefix does not match sign bits")
	}
	return sign, exp, frac, nil
}

func newFormat(name string, sign, exp, frac int, custom bool) Format {
	return Format{
		name:   name,
		sign:   sign,
		exp:    exp,
		frac:   frac,
		bias:   deriveBias(exp),
		custom: custom,
	}
}

func deriveBias(exponentBits int) int {
	if exponentBits == 0 {
		return 0
	}
	return 1<<uint(exponentBits-1) - 1
}

func formatName(sign, exp, frac int) string {
	prefix := unsignedNamePrefix
	if sign == 1 {
		prefix = signedNamePrefix
	}
	var b strings.Builder
	b.WriteByte(byte(prefix))
	b.WriteString(strconv.Itoa(sign))
	b.WriteByte('E')
	b.WriteString(strconv.Itoa(exp))
	b.WriteByte('M')
	b.WriteString(strconv.Itoa(frac))
	return b.String()
}

// SignBits returns the width of the sign field, 0 or 1.
func (f Format) SignBits() int {
	return f.sign
}

// ExponentBits returns the width of the exponent field.
func (f Format) ExponentBits() int {
	return f.exp
}

// FractionBits returns the width of the fraction field.
func (f Format) FractionBits() int {
	return f.frac
}

// Bias returns the exponent bias.
func (f Format) Bias() int {
	return f.bias
}

// TotalBits returns the width of the whole pattern.
func (f Format) TotalBits() int {
	return f.sign + f.exp + f.frac
}

// Name returns the display name of the format.
// User-defined formats are named [S|U]<sign>E<exp>M<frac>, like "S1E4M3".
// Two formats with equal widths have equal names.
func (f Format) Name() string {
	return f.name
}

// IsCustom returns true for user-defined formats.
func (f Format) IsCustom() bool {
	return f.custom
}

// String returns the name of the format.
func (f Format) String() string {
	return f.name
}

// GoString returns debug string representation.
func (f Format) GoString() string {
	return f.name + fmt.Sprintf(" {s:%d, e:%d, m:%d, bias:%d}", f.sign, f.exp, f.frac, f.bias)
}

// minExp returns the smallest unbiased exponent of a normal number.
func (f Format) minExp() int64 {
	return 1 - int64(f.bias)
}

// maxExp returns the largest unbiased exponent of a finite number.
func (f Format) maxExp() int64 {
	return int64(f.expAllOnes()) - 1 - int64(f.bias)
}
