// Package outline visualises EGG Entry trees.
//
// # Overview
//
// Large exports are hard to inspect as raw text: a single vertex pool can
// run to thousands of lines. This package summarises the structure of a
// document instead, one node per entry, with the number of children each
// entry holds.
//
// # Usage
//
// Print a plain indented outline:
//
//	fmt.Print(outline.Text(doc, outline.Options{MaxDepth: 2}))
//
// Or convert the tree to Graphviz DOT and render it to SVG:
//
//	dot := outline.ToDOT(doc, outline.Options{Values: true})
//	svg, err := outline.RenderSVG(dot)
//
// # Options
//
//   - MaxDepth: entries deeper than this are folded into their parent's
//     count (0 means unlimited)
//   - Values: include inline scalar and tuple children in labels
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package outline
