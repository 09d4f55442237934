// Package io reads and writes chart data: a tree of named values.
//
// # Overview
//
// A chart is described by a single root [segment.Item]. Leaves carry values;
// inner items either carry their own value or inherit the sum of their
// children. Colors are optional "#rrggbb" strings; items without one are
// colored from the palette when bound.
//
// # JSON Format
//
//	{
//	  "name": "portfolio",
//	  "children": [
//	    {"name": "stocks", "children": [
//	      {"name": "us", "value": 40},
//	      {"name": "eu", "value": 20}
//	    ]},
//	    {"name": "bonds", "value": 30, "color": "#336699"},
//	    {"name": "cash", "value": 10}
//	  ]
//	}
//
// A top-level array is accepted as the children of an unnamed root.
//
// # TOML Format
//
// The same tree, with children as arrays of tables:
//
//	name = "portfolio"
//
//	[[children]]
//	name = "bonds"
//	value = 30.0
//
//	[[children]]
//	name = "cash"
//	value = 10.0
//
// # Import
//
// Use [Import] to read a file whose format is taken from its extension, or
// [ReadJSON] and [ReadTOML] to read from any io.Reader:
//
//	root, err := io.Import("portfolio.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Decoding errors carry the INVALID_INPUT code; a missing file carries
// FILE_NOT_FOUND.
//
// # Export
//
// [WriteJSON] and [WriteTOML] encode a tree in the matching format, and
// [Export] writes a file choosing the format from its extension. Exported
// trees re-import identically.
//
// [segment.Item]: github.com/matzehuels/sunburst/pkg/segment#Item
package io
