package wp

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// OutputShape selects how a result set is returned.
type OutputShape int

const (
	// OutputObject returns typed objects (*Post, *User, *Term, *Option).
	OutputObject OutputShape = iota
	// OutputAssoc returns ordered associative rows (Row).
	OutputAssoc
	// OutputPositional returns []any re-indexed from 0 in Row key order.
	OutputPositional
)

// String returns the WordPress constant name for the shape.
func (s OutputShape) String() string {
	switch s {
	case OutputObject:
		return "OBJECT"
	case OutputAssoc:
		return "ARRAY_A"
	case OutputPositional:
		return "ARRAY_N"
	default:
		return fmt.Sprintf("OutputShape(%d)", int(s))
	}
}

// ParseOutputShape accepts the WordPress constant names and the short
// aliases object, assoc and positional.
func ParseOutputShape(s string) (OutputShape, error) {
	switch s {
	case "OBJECT", "object", "":
		return OutputObject, nil
	case "ARRAY_A", "assoc", "map":
		return OutputAssoc, nil
	case "ARRAY_N", "positional", "array":
		return OutputPositional, nil
	default:
		return OutputObject, fmt.Errorf("unknown output shape %q", s)
	}
}

// Object is a source-shaped object.
type Object interface {
	// Columns returns every attribute in declaration order.
	Columns() []Column
	// Column returns a single attribute by name.
	Column(name string) (any, bool)
}

// Column is one named attribute.
type Column struct {
	Name  string
	Value any
}

// Row is an ordered associative row.
type Row []Column

// RowOf converts an object to its associative shape.
func RowOf(o Object) Row {
	return Row(o.Columns())
}

// Get returns the value under name.
func (r Row) Get(name string) (any, bool) {
	for _, c := range r {
		if c.Name == name {
			return c.Value, true
		}
	}
	return nil, false
}

// Keys returns column names in order.
func (r Row) Keys() []string {
	keys := make([]string, len(r))
	for i, c := range r {
		keys[i] = c.Name
	}
	return keys
}

// Values returns the positional shape of the row.
func (r Row) Values() []any {
	vals := make([]any, len(r))
	for i, c := range r {
		vals[i] = c.Value
	}
	return vals
}

// Project keeps only the named columns, in the order given. Unknown names
// are skipped.
func (r Row) Project(names []string) Row {
	out := make(Row, 0, len(names))
	for _, n := range names {
		if v, ok := r.Get(n); ok {
			out = append(out, Column{Name: n, Value: v})
		}
	}
	return out
}

// MarshalJSON encodes the row as a JSON object preserving column order.
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(c.Value)
		if err != nil {
			return nil, fmt.Errorf("marshal column %s: %w", c.Name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Reshape converts objects into the requested output shape.
func Reshape(objs []Object, shape OutputShape) []any {
	out := make([]any, 0, len(objs))
	for _, o := range objs {
		switch shape {
		case OutputAssoc:
			out = append(out, RowOf(o))
		case OutputPositional:
			out = append(out, RowOf(o).Values())
		default:
			out = append(out, o)
		}
	}
	return out
}

func lookup(cols []Column, name string) (any, bool) {
	return Row(cols).Get(name)
}
