// Copyright 2020 Aleksandr Demakin. All rights reserved.

package fpbits

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditor(t *testing.T) {
	a := assert.New(t)
	r := require.New(t)

	e := NewEditor(FP32)
	a.Equal(FP32, e.Format())
	a.Equal(Bits(0), e.Bits())

	r.NoError(e.SetDecimal("1"))
	a.Equal(Bits(0x3F800000), e.Bits())

	r.NoError(e.ToggleBit(31))
	v := e.View()
	a.Equal("0xBF800000", v.Hex)
	a.Equal("1 01111111 00000000000000000000000", v.Binary)
	a.Equal(Fields{1, 127, 0}, v.Fields)
	a.Equal(-1.0, v.Decoded.Value)
	a.Equal(Normal, v.Decoded.Class)
	a.Equal(-1.0, v.Decoded.SignFactor)

	r.NoError(e.SetHex("0x7f800000"))
	a.Equal(Infinity, e.View().Decoded.Class)

	e.SetFields(Fields{Sign: 0, Exponent: 0, Fraction: 1})
	a.Equal(Subnormal, e.View().Decoded.Class)

	e.SetValue(-2.5)
	a.Equal(Bits(0xC0200000), e.Bits())

	e.SetBits(0x1FFFFFFFF)
	a.Equal(Bits(0xFFFFFFFF), e.Bits())

	e.Reset()
	a.Equal(Bits(0), e.Bits())
	a.Equal(Zero, e.View().Decoded.Class)
}

func TestEditorFailedEditKeepsState(t *testing.T) {
	a := assert.New(t)
	e := NewEditor(FP16)
	e.SetValue(1)

	err := e.SetDecimal("abc")
	a.True(errors.Is(err, ErrSyntax))
	a.Equal(Bits(0x3C00), e.Bits())

	err = e.SetDecimal("")
	a.True(errors.Is(err, ErrSyntax))
	a.Equal(Bits(0x3C00), e.Bits())

	err = e.SetHex("0xzz")
	a.EqualError(err, "parsing failed: unexpected symbol 'z' at pos 3")
	a.Equal(Bits(0x3C00), e.Bits())

	err = e.ToggleBit(16)
	a.True(errors.Is(err, ErrBitIndex))
	a.EqualError(err, "bit index out of range: 16, FP16 has 16 bits")
	a.Equal(Bits(0x3C00), e.Bits())

	a.True(errors.Is(e.ToggleBit(-1), ErrBitIndex))
	a.Equal(Bits(0x3C00), e.Bits())

	a.Error(e.ApplyPreset(Preset(100)))
	a.Equal(Bits(0x3C00), e.Bits())
}

func TestEditorToggleEveryBit(t *testing.T) {
	a := assert.New(t)
	for _, f := range []Format{FP64, FP16, MustFormat(0, 5, 2), MustFormat(1, 0, 3)} {
		e := NewEditor(f)
		for i := 0; i < f.TotalBits(); i++ {
			if !a.NoError(e.ToggleBit(i)) {
				return
			}
		}
		a.Equal(f.Mask(), e.Bits(), "%s", f)
		for i := f.TotalBits() - 1; i >= 0; i-- {
			a.NoError(e.ToggleBit(i))
		}
		a.Equal(Bits(0), e.Bits(), "%s", f)
	}

	e := NewEditor(MustFormat(0, 0, 0))
	a.True(errors.Is(e.ToggleBit(0), ErrBitIndex))
}

func TestEditorsAreIndependent(t *testing.T) {
	a := assert.New(t)
	e1, e2 := NewEditor(FP16), NewEditor(FP16)
	e1.SetValue(1)
	a.Equal(Bits(0x3C00), e1.Bits())
	a.Equal(Bits(0), e2.Bits())
}

func TestPresetBits(t *testing.T) {
	a := assert.New(t)
	wide := MustFormat(1, 32, 31)
	tests := []struct {
		f Format
		p Preset
		b Bits
	}{
		{FP16, PresetZero, 0},
		{FP16, PresetOne, 0x3C00},
		{FP16, PresetNegOne, 0xBC00},
		{FP16, PresetInf, 0x7C00},
		{FP16, PresetNegInf, 0xFC00},
		{FP16, PresetNaN, 0x7E00},
		{FP16, PresetMaxNormal, 0x7BFF},
		{FP16, PresetMinNormal, 0x0400},
		{FP16, PresetMinSubnormal, 0x0001},
		{FP32, PresetMaxNormal, 0x7F7FFFFF},
		{FP64, PresetMinSubnormal, 1},
		{FP8E4M3, PresetMaxNormal, 0x77},
		{MustFormat(0, 5, 2), PresetNegOne, 0x3C},
		{MustFormat(0, 5, 2), PresetNegInf, 0x7C},
		{wide, PresetMaxNormal, 0x7FFFFFFF7FFFFFFF},
		{wide, PresetMinNormal, 0x80000000},
		{wide, PresetOne, 0x3FFFFFFF80000000},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			b, err := PresetBits(test.f, test.p)
			if a.NoError(err) {
				a.Equal(test.b, b)
			}
			e := NewEditor(test.f)
			if a.NoError(e.ApplyPreset(test.p)) {
				a.Equal(test.b, e.Bits())
			}
		})
	}

	d := DecodeBits(FP16, 0x7BFF)
	a.Equal(65504.0, d.Value)
	d = DecodeBits(FP64, 1)
	a.Equal(math.SmallestNonzeroFloat64, d.Value)

	_, err := PresetBits(FP16, Preset(-1))
	a.EqualError(err, "unknown preset Preset(-1)")
}

func TestParsePreset(t *testing.T) {
	a := assert.New(t)
	for p := PresetZero; p <= PresetMinSubnormal; p++ {
		parsed, err := ParsePreset(p.String())
		if a.NoError(err) {
			a.Equal(p, parsed)
		}
	}
	p, err := ParsePreset("MAX")
	a.NoError(err)
	a.Equal(PresetMaxNormal, p)

	_, err = ParsePreset("pi")
	a.EqualError(err, `unknown preset "pi"`)
	a.Equal("Preset(42)", Preset(42).String())
	a.Equal("min-subnormal", PresetMinSubnormal.String())
}
