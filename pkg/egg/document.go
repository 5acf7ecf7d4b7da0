package egg

import (
	"github.com/matzehuels/pandaegg/pkg/errors"
)

// Document is the headerless root of an EGG file. Its entries render at depth
// zero, one after another, with no enclosing braces.
type Document struct {
	entries    []*Entry
	blankLines bool
}

// Option configures a Document.
type Option func(*Document)

// WithBlankLines separates top-level blocks with one empty line. The
// separator is cosmetic; readers of the format ignore it.
func WithBlankLines() Option {
	return func(d *Document) { d.blankLines = true }
}

// NewDocument creates an empty document.
func NewDocument(opts ...Option) *Document {
	d := &Document{}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Append adds top-level entries in order. Ownership rules match
// [Entry.Append]: an entry that already has a parent fails with
// ALREADY_ATTACHED and nothing is added.
func (d *Document) Append(entries ...*Entry) error {
	children := make([]Child, len(entries))
	for i, e := range entries {
		children[i] = e
	}
	adopted, err := adopt(children, nil)
	if err != nil {
		return err
	}
	for _, e := range adopted {
		e.attached = true
	}
	d.entries = append(d.entries, entries...)
	return nil
}

// Len returns the number of top-level entries.
func (d *Document) Len() int { return len(d.entries) }

// Entries returns a copy of the top-level entries in order.
func (d *Document) Entries() []*Entry {
	out := make([]*Entry, len(d.entries))
	copy(out, d.entries)
	return out
}

// Index returns the position of the first top-level entry with the given
// kind and name, or -1. An empty name matches only unnamed entries.
func (d *Document) Index(kind, name string) int {
	for i, e := range d.entries {
		if e != nil && e.kind == kind && e.name == name {
			return i
		}
	}
	return -1
}

// Find returns the first top-level entry with the given kind and name, or nil.
func (d *Document) Find(kind, name string) *Entry {
	if i := d.Index(kind, name); i >= 0 {
		return d.entries[i]
	}
	return nil
}

// Walk visits every entry in document order with depth counted from the top
// level (top-level entries have depth 0).
func (d *Document) Walk(fn WalkFunc) error {
	for _, e := range d.entries {
		if e == nil {
			continue
		}
		if err := e.walk(fn, 0); err != nil {
			return err
		}
	}
	return nil
}

// Render returns the document's lines: the concatenation of each top-level
// entry's rendering, in order. Like [Entry.Render] it is all-or-nothing.
func (d *Document) Render() ([]string, error) {
	var out []string
	for i, e := range d.entries {
		if e == nil {
			return nil, &ChildError{Header: "document", Index: i, Err: errors.New(errors.ErrCodeInvalidChild, "nil entry")}
		}
		lines, err := e.Render()
		if err != nil {
			return nil, &ChildError{Header: "document", Index: i, Err: err}
		}
		if d.blankLines && i > 0 {
			out = append(out, "")
		}
		out = append(out, lines...)
	}
	return out, nil
}

// String returns the rendered document with lines joined by newlines.
func (d *Document) String() string {
	lines, err := d.Render()
	if err != nil {
		return "%!(egg: " + err.Error() + ")"
	}
	return joinLines(lines)
}
