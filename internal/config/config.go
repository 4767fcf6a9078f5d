// Copyright 2020 Aleksandr Demakin. All rights reserved.

// Package config loads user-defined float formats from TOML or YAML files.
//
// A TOML file:
//
//	[[formats]]
//	sign = 1
//	exponent = 4
//	fraction = 3
//
//	[[formats]]
//	name = "U0E5M2"
//
// The same in YAML:
//
//	formats:
//	  - sign: 1
//	    exponent: 4
//	    fraction: 3
//	  - name: U0E5M2
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/avdva/fpbits"
)

// FileFormat is the syntax of a config file.
type FileFormat int

const (
	// FileTOML is the default syntax.
	FileTOML FileFormat = iota
	// FileYAML is used for .yaml and .yml files.
	FileYAML
)

var (
	// ErrInvalidEntry is returned for format entries that cannot be turned into a format.
	ErrInvalidEntry = errors.New("invalid entry")
)

// String returns the name of the syntax.
func (ff FileFormat) String() string {
	switch ff {
	case FileTOML:
		return "toml"
	case FileYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// Entry defines a single format either by its widths or by its derived name.
type Entry struct {
	Name     string `toml:"name" yaml:"name"`
	Sign     *int   `toml:"sign" yaml:"sign"`
	Exponent *int   `toml:"exponent" yaml:"exponent"`
	Fraction *int   `toml:"fraction" yaml:"fraction"`
}

// File is the top-level structure of a config file.
type File struct {
	Formats []Entry `toml:"formats" yaml:"formats"`
}

// DetectFormat returns the syntax of a file by its extension.
func DetectFormat(path string) FileFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FileYAML
	default:
		return FileTOML
	}
}

// Load reads the formats defined in a file.
func Load(path string) ([]fpbits.Format, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	formats, err := Parse(content, DetectFormat(path))
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return formats, nil
}

// Parse decodes the content and builds formats for all the entries in their order.
// Unknown keys, duplicates and built-in names are errors.
func Parse(content []byte, ff FileFormat) ([]fpbits.Format, error) {
	file, err := decode(content, ff)
	if err != nil {
		return nil, err
	}
	result := make([]fpbits.Format, 0, len(file.Formats))
	seen := make(map[string]int, len(file.Formats))
	for i, entry := range file.Formats {
		f, err := entry.Format()
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		if prev, found := seen[f.Name()]; found {
			return nil, fmt.Errorf("entry %d: %w: %s is already defined by entry %d", i, ErrInvalidEntry, f, prev)
		}
		seen[f.Name()] = i
		result = append(result, f)
	}
	return result, nil
}

func decode(content []byte, ff FileFormat) (File, error) {
	var file File
	switch ff {
	case FileTOML:
		md, err := toml.Decode(string(content), &file)
		if err != nil {
			return File{}, fmt.Errorf("toml parse error: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return File{}, fmt.Errorf("toml parse error: unknown key %q", undecoded[0].String())
		}
	case FileYAML:
		dec := yaml.NewDecoder(bytes.NewReader(content))
		dec.KnownFields(true)
		if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
			return File{}, fmt.Errorf("yaml parse error: %w", err)
		}
	default:
		return File{}, fmt.Errorf("unsupported file format: %s", ff)
	}
	return file, nil
}

// Format validates the entry and returns its format.
// An entry with widths may also have a name, which must match the derived one.
func (e Entry) Format() (fpbits.Format, error) {
	name := strings.TrimSpace(e.Name)
	hasWidths := e.Sign != nil || e.Exponent != nil || e.Fraction != nil
	switch {
	case !hasWidths && len(name) == 0:
		return fpbits.Format{}, fmt.Errorf("%w: either a name or widths are required", ErrInvalidEntry)
	case !hasWidths:
		f, err := fpbits.ParseName(name)
		if err != nil {
			return fpbits.Format{}, err
		}
		if !f.IsCustom() {
			return fpbits.Format{}, fmt.Errorf("%w: %s is a built-in format", ErrInvalidEntry, f)
		}
		return f, nil
	case e.Sign == nil || e.Exponent == nil || e.Fraction == nil:
		return fpbits.Format{}, fmt.Errorf("%w: sign, exponent and fraction are required together", ErrInvalidEntry)
	}
	f, err := fpbits.NewFormat(*e.Sign, *e.Exponent, *e.Fraction)
	if err != nil {
		return fpbits.Format{}, err
	}
	if len(name) > 0 && !strings.EqualFold(name, f.Name()) {
		return fpbits.Format{}, fmt.Errorf("%w: name %q does not match the widths of %s", ErrInvalidEntry, name, f)
	}
	return f, nil
}
