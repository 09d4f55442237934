package io

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/segment"
)

// Input formats.
const (
	FormatJSON = "json"
	FormatTOML = "toml"
)

// FormatOf returns the input format implied by a file extension.
func FormatOf(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported input file %q (must be .json or .toml)", filepath.Base(path))
	}
}

// Read decodes a tree in the given format.
func Read(r io.Reader, format string) (segment.Item, error) {
	switch format {
	case FormatJSON:
		return ReadJSON(r)
	case FormatTOML:
		return ReadTOML(r)
	default:
		return segment.Item{}, errors.New(errors.ErrCodeInvalidFormat, "invalid input format: %q (must be one of: json, toml)", format)
	}
}

// ReadJSON decodes a JSON tree from r. ReadJSON does not close r.
func ReadJSON(r io.Reader) (segment.Item, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return segment.Item{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read")
	}

	var root segment.Item
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		err = json.Unmarshal(trimmed, &root.Children)
	} else {
		err = json.Unmarshal(data, &root)
	}
	if err != nil {
		return segment.Item{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode json")
	}
	return root, nil
}

// ReadTOML decodes a TOML tree from r. ReadTOML does not close r.
func ReadTOML(r io.Reader) (segment.Item, error) {
	var root segment.Item
	md, err := toml.NewDecoder(r).Decode(&root)
	if err != nil {
		return segment.Item{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode toml")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return segment.Item{}, errors.New(errors.ErrCodeInvalidInput, "decode toml: unknown key %q", undecoded[0].String())
	}
	return root, nil
}

// Import reads the file at path, choosing the format from its extension.
func Import(path string) (segment.Item, error) {
	format, err := FormatOf(path)
	if err != nil {
		return segment.Item{}, err
	}
	f, err := open(path)
	if err != nil {
		return segment.Item{}, err
	}
	defer f.Close()
	return Read(f, format)
}

// ImportJSON reads a JSON tree from the file at path.
func ImportJSON(path string) (segment.Item, error) {
	f, err := open(path)
	if err != nil {
		return segment.Item{}, err
	}
	defer f.Close()
	return ReadJSON(f)
}

// ImportTOML reads a TOML tree from the file at path.
func ImportTOML(path string) (segment.Item, error) {
	f, err := open(path)
	if err != nil {
		return segment.Item{}, err
	}
	defer f.Close()
	return ReadTOML(f)
}

func open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	return f, nil
}
