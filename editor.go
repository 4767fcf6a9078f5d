// Copyright 2020 Aleksandr Demakin. All rights reserved.

package fpbits

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	// ErrBitIndex is returned for bit indices outside of the format's width.
	ErrBitIndex = errors.New("bit index out of range")
)

// Preset is a well-known value, that can be loaded into an editor.
type Preset int

const (
	// PresetZero is +0.
	PresetZero Preset = iota
	// PresetOne is 1.
	PresetOne
	// PresetNegOne is -1.
	PresetNegOne
	// PresetInf is +Inf.
	PresetInf
	// PresetNegInf is -Inf.
	PresetNegInf
	// PresetNaN is the canonical quiet NaN.
	PresetNaN
	// PresetMaxNormal is the largest finite value.
	PresetMaxNormal
	// PresetMinNormal is the smallest positive normal value.
	PresetMinNormal
	// PresetMinSubnormal is the smallest positive subnormal value.
	PresetMinSubnormal
)

var presetNames = [...]string{
	PresetZero:         "zero",
	PresetOne:          "one",
	PresetNegOne:       "-one",
	PresetInf:          "inf",
	PresetNegInf:       "-inf",
	PresetNaN:          "nan",
	PresetMaxNormal:    "max",
	PresetMinNormal:    "min-normal",
	PresetMinSubnormal: "min-subnormal",
}

// String returns the name of the preset, as accepted by ParsePreset.
func (p Preset) String() string {
	if p < 0 || int(p) >= len(presetNames) {
		return fmt.Sprintf("Preset(%d)", int(p))
	}
	return presetNames[p]
}

// ParsePreset returns a preset by its name.
func ParsePreset(name string) (Preset, error) {
	for i, n := range presetNames {
		if strings.EqualFold(n, name) {
			return Preset(i), nil
		}
	}
	return 0, fmt.Errorf("unknown preset %q", name)
}

// View is a consistent snapshot of an editor's pattern and everything derived from it.
type View struct {
	Format  Format
	Bits    Bits
	Hex     string
	Binary  string
	Fields  Fields
	Decoded Decoded
}

// NewView decodes b and renders all of its representations.
func NewView(f Format, b Bits) View {
	b &= f.Mask()
	fields := Unpack(f, b)
	return View{
		Format:  f,
		Bits:    b,
		Hex:     FormatHex(f, b),
		Binary:  FormatBinary(f, b),
		Fields:  fields,
		Decoded: fields.Decode(f),
	}
}

// Editor holds the current bit pattern of a single format.
// Every edit replaces the whole pattern, a failed edit leaves it unchanged.
// Editor is not safe for concurrent use.
type Editor struct {
	format Format
	bits   Bits
}

// NewEditor returns an editor for a format, holding +0.
func NewEditor(f Format) *Editor {
	return &Editor{format: f}
}

// Format returns the editor's format.
func (e *Editor) Format() Format {
	return e.format
}

// Bits returns the current pattern.
func (e *Editor) Bits() Bits {
	return e.bits
}

// View returns a snapshot of the current pattern.
func (e *Editor) View() View {
	return NewView(e.format, e.bits)
}

// SetBits replaces the pattern. Bits beyond the format's width are dropped.
func (e *Editor) SetBits(b Bits) {
	e.bits = b & e.format.Mask()
}

// SetFields packs the fields into the pattern, see Pack.
func (e *Editor) SetFields(fl Fields) {
	e.bits = fl.Pack(e.format)
}

// SetValue encodes x into the pattern, see Encode.
func (e *Editor) SetValue(x float64) {
	e.bits = EncodeBits(e.format, x)
}

// ToggleBit flips the i-th bit, where bit 0 is the least significant one.
func (e *Editor) ToggleBit(i int) error {
	if i < 0 || i >= e.format.TotalBits() {
		return fmt.Errorf("%w: %d, %s has %d bits", ErrBitIndex, i, e.format, e.format.TotalBits())
	}
	e.bits = ToggleBit(e.bits, uint(i))
	return nil
}

// SetHex parses a hex string into the pattern, see ParseHex.
func (e *Editor) SetHex(s string) error {
	b, err := ParseHex(e.format, s)
	if err != nil {
		return err
	}
	e.bits = b
	return nil
}

// SetDecimal parses a decimal string and encodes it into the pattern, see ParseDecimal.
func (e *Editor) SetDecimal(s string) error {
	x, err := ParseDecimal(s)
	if err != nil {
		return err
	}
	e.SetValue(x)
	return nil
}

// Reset sets the pattern to +0.
func (e *Editor) Reset() {
	e.SetValue(0)
}

// ApplyPreset loads a well-known value.
func (e *Editor) ApplyPreset(p Preset) error {
	b, err := PresetBits(e.format, p)
	if err != nil {
		return err
	}
	e.bits = b
	return nil
}

// PresetBits returns the pattern of a well-known value in the format.
// Numbers go through Encode, the format's extremes are built from fields,
// so they are exact even when they exceed the float64 range.
func PresetBits(f Format, p Preset) (Bits, error) {
	switch p {
	case PresetZero:
		return EncodeBits(f, 0), nil
	case PresetOne:
		return EncodeBits(f, 1), nil
	case PresetNegOne:
		return EncodeBits(f, -1), nil
	case PresetInf:
		return EncodeBits(f, math.Inf(1)), nil
	case PresetNegInf:
		return EncodeBits(f, math.Inf(-1)), nil
	case PresetNaN:
		return EncodeBits(f, math.NaN()), nil
	case PresetMaxNormal:
		return Pack(f, 0, f.expAllOnes()-1, f.fracMask()), nil
	case PresetMinNormal:
		return Pack(f, 0, 1, 0), nil
	case PresetMinSubnormal:
		return Pack(f, 0, 0, 1), nil
	default:
		return 0, fmt.Errorf("unknown preset %s", p)
	}
}
