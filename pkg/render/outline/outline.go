package outline

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/pandaegg/pkg/egg"
)

// Options configures outline rendering.
type Options struct {
	// MaxDepth limits how deep the outline descends. Top-level entries are
	// at depth 0; 0 means unlimited.
	MaxDepth int

	// Values includes scalar and tuple children in node labels.
	Values bool
}

// maxValueWidth truncates long value lists in labels.
const maxValueWidth = 40

// Node is one entry in an outline.
type Node struct {
	Header   string // "<Kind> name"
	Entries  int    // nested entries
	Values   []string
	Children []*Node
	Folded   bool // children exist below MaxDepth
}

// Label returns the header followed by the child count.
func (n *Node) Label() string {
	return fmt.Sprintf("%s (%d)", n.Header, n.Entries+len(n.Values))
}

// Build converts the document into outline nodes.
func Build(doc *egg.Document, opts Options) []*Node {
	var nodes []*Node
	for _, e := range doc.Entries() {
		if e == nil {
			continue
		}
		nodes = append(nodes, build(e, 0, opts))
	}
	return nodes
}

func build(e *egg.Entry, depth int, opts Options) *Node {
	n := &Node{Header: header(e)}
	for _, c := range e.Children() {
		switch v := c.(type) {
		case *egg.Entry:
			if v == nil {
				continue
			}
			n.Entries++
			if opts.MaxDepth > 0 && depth+1 > opts.MaxDepth {
				n.Folded = true
				continue
			}
			n.Children = append(n.Children, build(v, depth+1, opts))
		case egg.Scalar:
			n.Values = append(n.Values, v.String())
		case egg.Tuple:
			n.Values = append(n.Values, v.String())
		}
	}
	return n
}

func header(e *egg.Entry) string {
	if e.Name() == "" {
		return "<" + e.Kind() + ">"
	}
	return "<" + e.Kind() + "> " + e.Name()
}

// Text renders an indented outline, two spaces per level. Folded entries end
// with "...".
func Text(doc *egg.Document, opts Options) string {
	var b strings.Builder
	for _, n := range Build(doc, opts) {
		writeText(&b, n, 0, opts)
	}
	return b.String()
}

func writeText(b *strings.Builder, n *Node, depth int, opts Options) {
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(n.Label())
	if opts.Values && len(n.Values) > 0 {
		b.WriteString(" = ")
		b.WriteString(values(n.Values))
	}
	if n.Folded {
		b.WriteString(" ...")
	}
	b.WriteByte('\n')
	for _, c := range n.Children {
		writeText(b, c, depth+1, opts)
	}
}

// values joins value texts, truncated to maxValueWidth terminal cells on a
// character boundary.
func values(vs []string) string {
	return runewidth.Truncate(strings.Join(vs, ", "), maxValueWidth, "...")
}
