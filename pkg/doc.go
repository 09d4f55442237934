// Package pkg provides the libraries behind the sunburst chart renderer.
//
// # Overview
//
// Sunburst draws a tree of named values as a multi-level pie or donut chart:
// one ring per level of the tree, every slice's angle proportional to its
// share of the root, and a percentage label on slices large enough to carry
// one.
//
// # Architecture
//
// The data flow through sunburst:
//
//	JSON/TOML tree          [io]
//	         ↓
//	segment tree            [segment] with colors from [palette]
//	         ↓
//	chart                   [chart] rings, tooltip, paint listeners
//	         ↓                 labels from [label] placed by [render/labels]
//	surface                 [render/canvas] implemented by [render/sink]
//	         ↓
//	SVG/PNG/PDF/JSON
//
// [pipeline] runs these stages with caching ([cache]) and instrumentation
// ([observability]). [polar] holds the angle and axis math shared by the
// chart, its labels, and its tooltip.
//
// # Quick Start
//
//	root, _ := io.Import("budget.json")
//	runner := pipeline.NewRunner(nil, nil, nil)
//	res, err := runner.Execute(ctx, root, pipeline.Options{Kind: "donut"})
//	os.WriteFile("budget.svg", res.Artifacts["svg"], 0o644)
package pkg
