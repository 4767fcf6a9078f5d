// Copyright 2020 Aleksandr Demakin. All rights reserved.

package fpbits

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	mu "github.com/avdva/fpbits/internal/mathutil"
)

const (
	hexPrefix     = "0x"
	hexPrefixUp   = "0X"
	nibbleBits    = 4
	maxHexDigits  = maxTotalBits / nibbleBits
	tokenNaN      = "NaN"
	tokenInfinity = "Infinity"
)

var (
	// ErrSyntax is wrapped by all the parsing errors.
	ErrSyntax = errors.New("invalid syntax")
)

// ParseError describes a string that cannot be parsed.
type ParseError struct {
	// Input is the original string.
	Input string
	// Pos is a 1-based position of the offending symbol, or 0 if unknown.
	Pos int
	Err string
}

func newParseError(input, err string, pos int) *ParseError {
	return &ParseError{Input: input, Err: err, Pos: pos}
}

func (pe *ParseError) Error() string {
	if pe.Pos > 0 {
		return "parsing failed: " + pe.Err + fmt.Sprintf(" at pos %d", pe.Pos)
	}
	return "parsing failed: " + pe.Err
}

// Unwrap returns ErrSyntax.
func (pe *ParseError) Unwrap() error {
	return ErrSyntax
}

// FormatHex returns b as "0x" followed by upper-case hex digits,
// zero-padded to the number of nibbles covering the format's width.
func FormatHex(f Format, b Bits) string {
	nibbles := mu.CeilDiv(f.TotalBits(), nibbleBits)
	if nibbles == 0 {
		return hexPrefix
	}
	return hexPrefix + fmt.Sprintf("%0*X", nibbles, uint64(b&f.Mask()))
}

// ParseHex parses a hex string with an optional 0x or 0X prefix into a bit pattern.
// Surrounding spaces are ignored, an empty string is zero.
// The value is truncated to the format's width: high bits are dropped, never sign-extended.
func ParseHex(f Format, s string) (Bits, error) {
	digits, offset := prepareHex(s)
	for i, r := range digits {
		if !isHexDigit(r) {
			return 0, newParseError(s, fmt.Sprintf("unexpected symbol %q", r), offset+i+1)
		}
	}
	// only the lowest 64 bits can survive the truncation.
	if len(digits) > maxHexDigits {
		digits = digits[len(digits)-maxHexDigits:]
	}
	if len(digits) == 0 {
		return 0, nil
	}
	u, err := strconv.ParseUint(digits, 16, 64)
	if err != nil {
		panic(err) // should not normally happen
	}
	return Bits(u) & f.Mask(), nil
}

// prepareHex trims spaces and the prefix.
// Returns the rest of the string and its offset in s.
func prepareHex(s string) (prepared string, offset int) {
	if trimmed := strings.TrimLeftFunc(s, unicode.IsSpace); len(trimmed) != len(s) {
		offset = len(s) - len(trimmed)
		s = trimmed
	}
	s = strings.TrimRightFunc(s, unicode.IsSpace)
	if strings.HasPrefix(s, hexPrefix) || strings.HasPrefix(s, hexPrefixUp) {
		offset += len(hexPrefix)
		s = s[len(hexPrefix):]
	}
	return s, offset
}

func isHexDigit(r rune) bool {
	return '0' <= r && r <= '9' || 'a' <= r && r <= 'f' || 'A' <= r && r <= 'F'
}

// ParseDecimal parses a decimal number, including "NaN", "Infinity", and "-Infinity".
// Numbers beyond the float64 range become infinities or zeros.
func ParseDecimal(s string) (float64, error) {
	trimmed := strings.TrimSpace(s)
	if len(trimmed) == 0 {
		return 0, newParseError(s, "empty input", 0)
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return v, nil
		}
		return 0, newParseError(s, fmt.Sprintf("%q is not a number", trimmed), 0)
	}
	return v, nil
}

// FormatDecimal returns the shortest decimal string, that parses back to x.
// Non-finite values are "NaN", "Infinity", and "-Infinity".
func FormatDecimal(x float64) string {
	switch {
	case math.IsNaN(x):
		return tokenNaN
	case math.IsInf(x, 1):
		return tokenInfinity
	case math.IsInf(x, -1):
		return "-" + tokenInfinity
	}
	return strconv.FormatFloat(x, 'g', -1, 64)
}
