// Copyright 2020 Aleksandr Demakin. All rights reserved.

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdva/fpbits"
)

const (
	tomlFormats = `
[[formats]]
sign = 1
exponent = 4
fraction = 3

[[formats]]
name = "u0e5m2"

[[formats]]
name = "S1E32M31"
sign = 1
exponent = 32
fraction = 31
`
	yamlFormats = `
formats:
  - sign: 1
    exponent: 4
    fraction: 3
  - name: u0e5m2
  - name: S1E32M31
    sign: 1
    exponent: 32
    fraction: 31
`
)

func names(formats []fpbits.Format) []string {
	result := make([]string, 0, len(formats))
	for _, f := range formats {
		result = append(result, f.Name())
	}
	return result
}

func TestDetectFormat(t *testing.T) {
	a := assert.New(t)
	a.Equal(FileYAML, DetectFormat("formats.yaml"))
	a.Equal(FileYAML, DetectFormat("/etc/fpbits/formats.YML"))
	a.Equal(FileTOML, DetectFormat("formats.toml"))
	a.Equal(FileTOML, DetectFormat("formats"))
	a.Equal("toml", FileTOML.String())
	a.Equal("yaml", FileYAML.String())
	a.Equal("unknown", FileFormat(7).String())
}

func TestParse(t *testing.T) {
	a := assert.New(t)
	expected := []string{"S1E4M3", "U0E5M2", "S1E32M31"}
	for _, ff := range []FileFormat{FileTOML, FileYAML} {
		content := tomlFormats
		if ff == FileYAML {
			content = yamlFormats
		}
		formats, err := Parse([]byte(content), ff)
		if a.NoError(err, "%s", ff) {
			a.Equal(expected, names(formats), "%s", ff)
			a.Equal(7, formats[0].Bias())
			a.True(formats[1].IsCustom())
			a.Equal(0, formats[1].SignBits())
		}
	}
}

func TestParseEmpty(t *testing.T) {
	a := assert.New(t)
	for _, ff := range []FileFormat{FileTOML, FileYAML} {
		formats, err := Parse(nil, ff)
		a.NoError(err)
		a.Empty(formats)
	}
}

func TestParseErrors(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		ff      FileFormat
		content string
		err     string
		invalid bool
	}{
		{FileTOML, "[[formats]]\nsign = 2\nexponent = 4\nfraction = 3\n", "entry 0: invalid format: 2 sign bits", false},
		{FileTOML, "[[formats]]\nname = \"S1E4M3\"\n[[formats]]\nsign = 1\nexponent = 40\nfraction = 3\n", "entry 1: invalid format: 40 exponent bits exceed 32", false},
		{FileTOML, "[[formats]]\nsign = 1\nexponent = 4\n", "entry 0: invalid entry: sign, exponent and fraction are required together", true},
		{FileTOML, "[[formats]]\n", "entry 0: invalid entry: either a name or widths are required", true},
		{FileTOML, "[[formats]]\nname = \"fp32\"\n", "entry 0: invalid entry: FP32 is a built-in format", true},
		{FileTOML, "[[formats]]\nname = \"S1E4M3\"\n[[formats]]\nname = \"s1e4m3\"\n", "entry 1: invalid entry: S1E4M3 is already defined by entry 0", true},
		{FileTOML, "[[formats]]\nname = \"S1E4M4\"\nsign = 1\nexponent = 4\nfraction = 3\n", `entry 0: invalid entry: name "S1E4M4" does not match the widths of S1E4M3`, true},
		{FileTOML, "[[formats]]\nname = \"half\"\n", `entry 0: invalid format: unknown format "half"`, false},
		{FileTOML, "[[formats]]\nname = \"S1E4M3\"\nbias = 3\n", `toml parse error: unknown key "formats.bias"`, false},
		{FileYAML, "formats:\n  - sign: 0\n    exponent: 33\n    fraction: 0\n", "entry 0: invalid format: 33 exponent bits exceed 32", false},
		{FileYAML, "formats:\n  - name: U0E5M2\n  - name: S1E0M0\n  - name: U0E5M2\n", "entry 2: invalid entry: U0E5M2 is already defined by entry 0", true},
		{FileTOML, "[[formats]]\nsign = 0\nexponent = 32\nfraction = 32\n[[formats]]\nname = \"S1E32M32\"\n", "entry 1: invalid format: total width 65 exceeds 64 bits", false},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			_, err := Parse([]byte(test.content), test.ff)
			a.EqualError(err, test.err)
			a.Equal(test.invalid, errors.Is(err, ErrInvalidEntry))
		})
	}

	_, err := Parse([]byte("formats: [1, 2"), FileYAML)
	a.Error(err)
	_, err = Parse([]byte("formats:\n  - exponentbits: 3\n"), FileYAML)
	a.Error(err)
	_, err = Parse([]byte("[[formats]\n"), FileTOML)
	a.Error(err)
	_, err = Parse(nil, FileFormat(7))
	a.EqualError(err, "unsupported file format: unknown")
}

func TestLoad(t *testing.T) {
	a := assert.New(t)
	r := require.New(t)
	dir := t.TempDir()

	tomlPath := filepath.Join(dir, "formats.toml")
	r.NoError(os.WriteFile(tomlPath, []byte(tomlFormats), 0600))
	formats, err := Load(tomlPath)
	r.NoError(err)
	a.Equal([]string{"S1E4M3", "U0E5M2", "S1E32M31"}, names(formats))

	yamlPath := filepath.Join(dir, "formats.yml")
	r.NoError(os.WriteFile(yamlPath, []byte(yamlFormats), 0600))
	formats, err = Load(yamlPath)
	r.NoError(err)
	a.Equal([]string{"S1E4M3", "U0E5M2", "S1E32M31"}, names(formats))

	// yaml syntax in a toml file.
	badPath := filepath.Join(dir, "bad.toml")
	r.NoError(os.WriteFile(badPath, []byte(yamlFormats), 0600))
	_, err = Load(badPath)
	a.Error(err)
	a.Contains(err.Error(), badPath)

	_, err = Load(filepath.Join(dir, "missing.toml"))
	a.True(errors.Is(err, os.ErrNotExist))
}
