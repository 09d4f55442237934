package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/segment"
)

// WriteJSON encodes a tree as indented JSON and writes it to w.
func WriteJSON(root segment.Item, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(root); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode json")
	}
	return nil
}

// WriteTOML encodes a tree as TOML and writes it to w.
func WriteTOML(root segment.Item, w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(root); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode toml")
	}
	return nil
}

// Export writes a tree to path, choosing the format from its extension.
func Export(root segment.Item, path string) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	defer f.Close()
	if format == FormatTOML {
		return WriteTOML(root, f)
	}
	return WriteJSON(root, f)
}
