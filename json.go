// Copyright 2020 Aleksandr Demakin. All rights reserved.

package fpbits

import (
	"encoding/json"
	"fmt"
)

// viewJSON is the json form of a View. Real numbers are strings,
// so that NaNs and infinities survive.
type viewJSON struct {
	Format         string `json:"format"`
	Hex            string `json:"hex"`
	Binary         string `json:"binary"`
	Sign           uint64 `json:"sign"`
	Exponent       uint64 `json:"exponent"`
	Fraction       uint64 `json:"fraction"`
	Class          Class  `json:"class"`
	Value          string `json:"value"`
	SignFactor     string `json:"signFactor"`
	BinaryExponent string `json:"binaryExponent"`
	Mantissa       string `json:"mantissa"`
}

// MarshalText returns the name of the format.
func (f Format) MarshalText() ([]byte, error) {
	return []byte(f.name), nil
}

// UnmarshalText parses a format name, see ParseName.
func (f *Format) UnmarshalText(data []byte) error {
	parsed, err := ParseName(string(data))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// MarshalText returns the name of the class.
func (c Class) MarshalText() ([]byte, error) {
	if c < 0 || int(c) >= len(classNames) {
		return nil, fmt.Errorf("invalid class %d", int(c))
	}
	return []byte(classNames[c]), nil
}

// UnmarshalText parses a class name.
func (c *Class) UnmarshalText(data []byte) error {
	for i, name := range classNames {
		if name == string(data) {
			*c = Class(i)
			return nil
		}
	}
	return fmt.Errorf("unknown class %q", string(data))
}

// MarshalJSON marshals all the representations of the pattern, like
//	{"format":"FP16","hex":"0x3C00",...,"value":"1",...,"mantissa":"1"}
func (v View) MarshalJSON() ([]byte, error) {
	d := v.Decoded
	return json.Marshal(viewJSON{
		Format:         v.Format.name,
		Hex:            v.Hex,
		Binary:         v.Binary,
		Sign:           v.Fields.Sign,
		Exponent:       v.Fields.Exponent,
		Fraction:       v.Fields.Fraction,
		Class:          d.Class,
		Value:          FormatDecimal(d.Value),
		SignFactor:     FormatDecimal(d.SignFactor),
		BinaryExponent: FormatDecimal(d.Exponent),
		Mantissa:       d.Mantissa,
	})
}

// UnmarshalJSON restores a view from its format and hex pattern.
// All the other fields are derived again.
func (v *View) UnmarshalJSON(data []byte) error {
	var vj struct {
		Format Format `json:"format"`
		Hex    string `json:"hex"`
	}
	if err := json.Unmarshal(data, &vj); err != nil {
		return err
	}
	if len(vj.Format.name) == 0 {
		return fmt.Errorf("%w: no format in json", ErrInvalidFormat)
	}
	b, err := ParseHex(vj.Format, vj.Hex)
	if err != nil {
		return err
	}
	*v = NewView(vj.Format, b)
	return nil
}
