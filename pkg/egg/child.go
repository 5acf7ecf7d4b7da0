package egg

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/matzehuels/pandaegg/pkg/errors"
)

// Child is one element of an entry body. The set of implementations is
// closed: [Scalar], [Tuple] and [*Entry].
type Child interface {
	isChild()
}

// Scalar is a single value in its canonical text form.
type Scalar struct {
	text string
}

// Tuple is a fixed-size ordered list of scalars. An empty tuple fails to
// render with INVALID_CHILD.
type Tuple []Scalar

func (Scalar) isChild() {}
func (Tuple) isChild()  {}
func (*Entry) isChild() {}

// Int returns an integer scalar.
func Int(n int64) Scalar {
	return Scalar{text: strconv.FormatInt(n, 10)}
}

// Uint returns an unsigned integer scalar.
func Uint(n uint64) Scalar {
	return Scalar{text: strconv.FormatUint(n, 10)}
}

// Float returns a float64 scalar in shortest round-trip decimal form.
func Float(f float64) Scalar {
	return Scalar{text: strconv.FormatFloat(f, 'f', -1, 64)}
}

// Float32 returns a float32 scalar. The shortest form is computed at 32-bit
// precision, so float32(0.1) renders as "0.1" rather than its widened value.
func Float32(f float32) Scalar {
	return Scalar{text: strconv.FormatFloat(float64(f), 'f', -1, 32)}
}

// String returns a scalar rendered verbatim. The text must not contain a
// line break; such a scalar fails to render with INVALID_CHILD.
func String(s string) Scalar {
	return Scalar{text: s}
}

// String returns the scalar's text form.
func (s Scalar) String() string {
	return s.text
}

// Vec returns a tuple of the given scalars.
func Vec(values ...Scalar) Tuple {
	return Tuple(values)
}

// Ints returns a tuple of integers.
func Ints(values ...int) Tuple {
	t := make(Tuple, len(values))
	for i, v := range values {
		t[i] = Int(int64(v))
	}
	return t
}

// Floats returns a tuple of float64 values.
func Floats(values ...float64) Tuple {
	t := make(Tuple, len(values))
	for i, v := range values {
		t[i] = Float(v)
	}
	return t
}

// String returns the tuple's elements joined by single spaces.
func (t Tuple) String() string {
	parts := make([]string, len(t))
	for i, s := range t {
		parts[i] = s.text
	}
	return strings.Join(parts, " ")
}

// ValueOf converts a loosely typed value into a Child.
//
// Accepted values are Child implementations, strings, all integer and float
// kinds, and slices or arrays of those scalar kinds (which become tuples).
// Anything else, including a nil *Entry, fails with INVALID_CHILD.
func ValueOf(v any) (Child, error) {
	switch c := v.(type) {
	case *Entry:
		if c == nil {
			return nil, errors.New(errors.ErrCodeInvalidChild, "nil entry")
		}
		return c, nil
	case Child:
		return c, nil
	case nil:
		return nil, errors.New(errors.ErrCodeInvalidChild, "nil value")
	}

	rv := reflect.ValueOf(v)
	if s, ok := scalarOf(rv); ok {
		return s, nil
	}
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		t := make(Tuple, rv.Len())
		for i := range t {
			s, ok := scalarOf(rv.Index(i))
			if !ok {
				return nil, errors.New(errors.ErrCodeInvalidChild, "unsupported tuple element %d of type %s", i, rv.Index(i).Type())
			}
			t[i] = s
		}
		return t, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidChild, "unsupported child type %T", v)
}

func scalarOf(rv reflect.Value) (Scalar, bool) {
	switch rv.Kind() {
	case reflect.String:
		return String(rv.String()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Uint(rv.Uint()), true
	case reflect.Float32:
		return Float32(float32(rv.Float())), true
	case reflect.Float64:
		return Float(rv.Float()), true
	}
	return Scalar{}, false
}
