package egg

import (
	"fmt"
	"strings"

	"github.com/matzehuels/pandaegg/pkg/errors"
)

// Indent is the indentation added per nesting level.
const Indent = "    "

// ChildError reports a child that could not be rendered. Errors from nested
// entries are wrapped once per ancestor, so the chain spells out the path
// from the rendered root down to the offending child.
type ChildError struct {
	Header string // header of the entry holding the child, e.g. "<Vertex> 1"
	Index  int    // position of the child in that entry's body
	Err    error
}

// Error implements the error interface.
func (e *ChildError) Error() string {
	return fmt.Sprintf("%s: child %d: %v", e.Header, e.Index, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ChildError) Unwrap() error {
	return e.Err
}

// Path returns the child indices from the outermost entry to the offending
// child.
func (e *ChildError) Path() []int {
	path := []int{e.Index}
	for next := e.Err; next != nil; {
		ce, ok := next.(*ChildError)
		if !ok {
			break
		}
		path = append(path, ce.Index)
		next = ce.Err
	}
	return path
}

// Render returns the entry's lines, without trailing newlines. The result is
// all-or-nothing: if any descendant child is malformed, no lines are
// returned and the error is a [*ChildError].
func (e *Entry) Render() ([]string, error) {
	open := e.header() + " {"

	switch len(e.children) {
	case 0:
		return []string{open + "}"}, nil

	case 1:
		text, ok, err := valueText(e.children[0])
		if err != nil {
			return nil, &ChildError{Header: e.header(), Index: 0, Err: err}
		}
		if ok {
			return []string{open + " " + text + " }"}, nil
		}
	}

	out := []string{open}
	for i, c := range e.children {
		lines, err := childLines(c)
		if err != nil {
			return nil, &ChildError{Header: e.header(), Index: i, Err: err}
		}
		out = appendIndented(out, lines)
	}
	return append(out, "}"), nil
}

// valueText returns the text of a scalar or tuple child; ok is false for any
// other child. A value must fit on one line, and a tuple needs at least one
// element.
func valueText(c Child) (text string, ok bool, err error) {
	switch v := c.(type) {
	case Scalar:
		text = v.text
	case Tuple:
		if len(v) == 0 {
			return "", true, errors.New(errors.ErrCodeInvalidChild, "empty tuple")
		}
		text = v.String()
	default:
		return "", false, nil
	}
	if strings.ContainsAny(text, "\r\n") {
		return "", true, errors.New(errors.ErrCodeInvalidChild, "value %q contains a line break", text)
	}
	return text, true, nil
}

// childLines renders one child at depth zero.
func childLines(c Child) ([]string, error) {
	if text, ok, err := valueText(c); ok {
		if err != nil {
			return nil, err
		}
		return []string{text}, nil
	}
	switch v := c.(type) {
	case *Entry:
		if v == nil {
			return nil, errors.New(errors.ErrCodeInvalidChild, "nil entry")
		}
		return v.Render()
	case nil:
		return nil, errors.New(errors.ErrCodeInvalidChild, "nil child")
	default:
		return nil, errors.New(errors.ErrCodeInvalidChild, "unsupported child type %T", c)
	}
}

// appendIndented appends lines to out one level deeper. Empty lines stay
// empty so the output never carries trailing whitespace.
func appendIndented(out, lines []string) []string {
	for _, line := range lines {
		if line == "" {
			out = append(out, line)
			continue
		}
		out = append(out, Indent+line)
	}
	return out
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}
