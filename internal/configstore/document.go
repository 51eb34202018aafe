package configstore

import (
	"fmt"
	"strconv"
	"strings"
)

// Document is an insertion-ordered set of named parameters. Keys keep the
// order in which they were first set; setting an existing key updates the
// value in place.
type Document struct {
	keys   []string
	values map[string]any
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{values: make(map[string]any)}
}

// Set binds name to value, appending name to the key order if it is new.
func (d *Document) Set(name string, value any) {
	if _, ok := d.values[name]; !ok {
		d.keys = append(d.keys, name)
	}
	d.values[name] = value
}

// Get returns the value bound to name and whether it exists.
func (d *Document) Get(name string) (any, bool) {
	v, ok := d.values[name]
	return v, ok
}

// Has reports whether name is present.
func (d *Document) Has(name string) bool {
	_, ok := d.values[name]
	return ok
}

// Keys returns the parameter names in insertion order.
func (d *Document) Keys() []string {
	return append([]string(nil), d.keys...)
}

// Len returns the number of parameters.
func (d *Document) Len() int {
	return len(d.keys)
}

// Clone returns an independent copy of the document. List values are copied
// shallowly; documents treat values as immutable once set.
func (d *Document) Clone() *Document {
	out := NewDocument()
	for _, k := range d.keys {
		out.Set(k, d.values[k])
	}
	return out
}

// Merge overlays every parameter of other onto d, preserving d's key order
// for keys both documents share and appending other's new keys at the end.
func (d *Document) Merge(other *Document) {
	for _, k := range other.keys {
		d.Set(k, other.values[k])
	}
}

// Equal reports whether both documents hold the same parameters with the
// same values, in the same key order.
func (d *Document) Equal(other *Document) bool {
	if len(d.keys) != len(other.keys) {
		return false
	}
	for i, k := range d.keys {
		if other.keys[i] != k {
			return false
		}
		if !valueEqual(d.values[k], other.values[k]) {
			return false
		}
	}
	return true
}

func valueEqual(a, b any) bool {
	la, aok := a.([]any)
	lb, bok := b.([]any)
	if aok != bok {
		return false
	}
	if aok {
		if len(la) != len(lb) {
			return false
		}
		for i := range la {
			if !valueEqual(la[i], lb[i]) {
				return false
			}
		}
		return true
	}
	return a == b
}

// FormatValue renders a parameter value in its minimal textual form:
// numbers without trailing zeros, lists as comma-joined elements.
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case []any:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = FormatValue(e)
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprintf("%v", t)
	}
}
