package egg

import (
	"github.com/matzehuels/pandaegg/pkg/errors"
)

// Entry is a typed, optionally named block holding an ordered list of
// children.
//
// The zero value is not usable; construct entries with [New] or [NewNamed].
// Entries are not safe for concurrent mutation.
type Entry struct {
	kind     string
	name     string
	children []Child
	attached bool
}

// New creates an entry of the given kind with no name.
// It fails with INVALID_KIND when kind is empty.
func New(kind string, children ...Child) (*Entry, error) {
	return NewNamed(kind, "", children...)
}

// NewNamed creates an entry of the given kind and name. An empty name means
// the entry is unnamed. It fails with INVALID_KIND when kind is empty, or
// with the same errors as [Entry.Append] for the initial children.
func NewNamed(kind, name string, children ...Child) (*Entry, error) {
	if kind == "" {
		return nil, errors.New(errors.ErrCodeInvalidKind, "entry kind cannot be empty")
	}
	e := &Entry{kind: kind, name: name, children: make([]Child, 0, len(children))}
	if err := e.Append(children...); err != nil {
		return nil, err
	}
	return e, nil
}

// MustNew is like [New] but panics on error. It is meant for literal trees.
func MustNew(kind string, children ...Child) *Entry {
	e, err := New(kind, children...)
	if err != nil {
		panic(err)
	}
	return e
}

// MustNamed is like [NewNamed] but panics on error.
func MustNamed(kind, name string, children ...Child) *Entry {
	e, err := NewNamed(kind, name, children...)
	if err != nil {
		panic(err)
	}
	return e
}

// Kind returns the entry's kind, without angle brackets.
func (e *Entry) Kind() string { return e.kind }

// Name returns the entry's name, or "" when the entry is unnamed.
func (e *Entry) Name() string { return e.name }

// Count returns the number of direct children.
func (e *Entry) Count() int { return len(e.children) }

// Children returns a copy of the entry's children in order.
func (e *Entry) Children() []Child {
	out := make([]Child, len(e.children))
	copy(out, e.children)
	return out
}

// Append adds children to the end of the body, in order.
//
// Child shapes are not validated here. Entry children are adopted: an entry
// that already has a parent fails with ALREADY_ATTACHED, and an entry whose
// subtree contains e fails with CYCLE. Append is all-or-nothing; on error no
// child is added.
func (e *Entry) Append(children ...Child) error {
	adopted, err := adopt(children, e)
	if err != nil {
		return err
	}
	for _, c := range adopted {
		c.attached = true
	}
	e.children = append(e.children, children...)
	return nil
}

// AppendValue converts each value with [ValueOf] and appends the results.
func (e *Entry) AppendValue(values ...any) error {
	children := make([]Child, len(values))
	for i, v := range values {
		c, err := ValueOf(v)
		if err != nil {
			return &ChildError{Header: e.header(), Index: len(e.children) + i, Err: err}
		}
		children[i] = c
	}
	return e.Append(children...)
}

// String returns the rendered entry with lines joined by newlines.
func (e *Entry) String() string {
	lines, err := e.Render()
	if err != nil {
		return "%!(egg: " + err.Error() + ")"
	}
	return joinLines(lines)
}

// Equal reports whether a and b render to identical lines. Entries that fail
// to render are never equal.
func Equal(a, b *Entry) bool {
	if a == nil || b == nil {
		return a == b
	}
	la, err := a.Render()
	if err != nil {
		return false
	}
	lb, err := b.Render()
	if err != nil {
		return false
	}
	if len(la) != len(lb) {
		return false
	}
	for i := range la {
		if la[i] != lb[i] {
			return false
		}
	}
	return true
}

// WalkFunc is called for every entry visited by [Entry.Walk] with the
// entry's depth relative to the walk root.
type WalkFunc func(e *Entry, depth int) error

// Walk visits e and all nested entries in document order. A non-nil error
// from fn stops the walk and is returned.
func (e *Entry) Walk(fn WalkFunc) error {
	return e.walk(fn, 0)
}

func (e *Entry) walk(fn WalkFunc, depth int) error {
	if err := fn(e, depth); err != nil {
		return err
	}
	for _, c := range e.children {
		if child, ok := c.(*Entry); ok && child != nil {
			if err := child.walk(fn, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *Entry) header() string {
	if e.name == "" {
		return "<" + e.kind + ">"
	}
	return "<" + e.kind + "> " + e.name
}

// contains reports whether target is e or appears anywhere below e.
func (e *Entry) contains(target *Entry) bool {
	if e == target {
		return true
	}
	for _, c := range e.children {
		if child, ok := c.(*Entry); ok && child != nil && child.contains(target) {
			return true
		}
	}
	return false
}

// adopt checks that every entry in children may be attached under parent
// (nil for a document root) and returns them.
func adopt(children []Child, parent *Entry) ([]*Entry, error) {
	var adopted []*Entry
	seen := make(map[*Entry]bool)
	for i, c := range children {
		child, ok := c.(*Entry)
		if !ok || child == nil {
			continue
		}
		if child.attached || seen[child] {
			return nil, errors.New(errors.ErrCodeAlreadyAttached, "child %d: %s already has a parent", i, child.header())
		}
		if parent != nil && child.contains(parent) {
			return nil, errors.New(errors.ErrCodeCycle, "child %d: %s contains %s", i, child.header(), parent.header())
		}
		seen[child] = true
		adopted = append(adopted, child)
	}
	return adopted, nil
}
