package outline

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/pandaegg/pkg/egg"
)

// ToDOT converts a document to Graphviz DOT format. Nodes are numbered in
// document order; edges run from each entry to its nested entries. The
// resulting DOT string can be rendered using [RenderSVG].
//
// Folded entries are drawn dashed and grey.
func ToDOT(doc *egg.Document, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=monospace, fontsize=12];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.2;\n")
	buf.WriteString("\n")

	var edges []string
	id := 0
	var visit func(n *Node) string
	visit = func(n *Node) string {
		name := "n" + strconv.Itoa(id)
		id++
		fmt.Fprintf(&buf, "  %s [%s];\n", name, strings.Join(fmtAttrs(n, opts), ", "))
		for _, c := range n.Children {
			edges = append(edges, fmt.Sprintf("  %s -> %s;\n", name, visit(c)))
		}
		return name
	}
	for _, n := range Build(doc, opts) {
		visit(n)
	}

	if len(edges) > 0 {
		buf.WriteString("\n")
		for _, e := range edges {
			buf.WriteString(e)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n *Node, opts Options) string {
	label := n.Label()
	if opts.Values && len(n.Values) > 0 {
		label += "\n" + values(n.Values)
	}
	return label
}

func fmtAttrs(n *Node, opts Options) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(n, opts))}
	if n.Folded {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg header with one
// sized in pixels so browsers scale the drawing.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}
