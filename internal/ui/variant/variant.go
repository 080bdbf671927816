// Package variant composes presentation class lists from a base class and a
// fixed table of per-axis fragments.
//
// A Definition declares its axes once. Resolving a Selection picks one
// fragment per axis (the axis default when the selection omits it), and
// appends caller override classes last so they win ties in the stylesheet.
// A key that the table does not declare is an error; there is no fallback.
package variant

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrUnknownVariant = errors.New("unknown variant")

type Axis string

type Key string

// Bool converts a flag into the "true"/"false" key used by boolean axes.
func Bool(b bool) Key {
	if b {
		return "true"
	}
	return "false"
}

// AxisSpec declares one axis: its allowed keys with their class fragments
// and the key used when a selection omits the axis.
type AxisSpec struct {
	Name      Axis
	Fragments map[Key]string
	Default   Key
}

type Definition struct {
	name string
	base string
	axes []AxisSpec
}

// Selection maps an axis to the chosen key. An empty key selects the default.
type Selection map[Axis]Key

// Define validates and builds a Definition. Every axis needs a default that
// is one of its declared keys.
func Define(name, base string, axes ...AxisSpec) (*Definition, error) {
	seen := make(map[Axis]bool, len(axes))
	for _, a := range axes {
		if a.Name == "" {
			return nil, fmt.Errorf("%s: axis without a name", name)
		}
		if seen[a.Name] {
			return nil, fmt.Errorf("%s: duplicate axis %q", name, a.Name)
		}
		seen[a.Name] = true
		if len(a.Fragments) == 0 {
			return nil, fmt.Errorf("%s: axis %q declares no keys", name, a.Name)
		}
		if _, ok := a.Fragments[a.Default]; !ok {
			return nil, fmt.Errorf("%s: default %q is not a key of axis %q", name, a.Default, a.Name)
		}
	}
	return &Definition{name: name, base: base, axes: axes}, nil
}

// MustDefine is Define for package-level tables; a malformed table panics
// during initialisation.
func MustDefine(name, base string, axes ...AxisSpec) *Definition {
	d, err := Define(name, base, axes...)
	if err != nil {
		panic(err)
	}
	return d
}

func (d *Definition) Name() string { return d.name }

// Resolve returns base, then one fragment per declared axis in declaration
// order, then overrides, joined by single spaces.
func (d *Definition) Resolve(sel Selection, overrides ...string) (string, error) {
	for axis := range sel {
		if d.axis(axis) == nil {
			return "", fmt.Errorf("%s: %w axis %q", d.name, ErrUnknownVariant, axis)
		}
	}

	parts := make([]string, 0, len(d.axes)+len(overrides)+1)
	parts = append(parts, d.base)
	for _, a := range d.axes {
		key := sel[a.Name]
		if key == "" {
			key = a.Default
		}
		frag, ok := a.Fragments[key]
		if !ok {
			return "", fmt.Errorf("%s: %w %q for axis %q", d.name, ErrUnknownVariant, key, a.Name)
		}
		parts = append(parts, frag)
	}
	parts = append(parts, overrides...)
	return Join(parts...), nil
}

// Has reports whether key is declared on axis.
func (d *Definition) Has(axis Axis, key Key) bool {
	a := d.axis(axis)
	if a == nil {
		return false
	}
	_, ok := a.Fragments[key]
	return ok
}

// Keys returns the declared keys of an axis in sorted order.
func (d *Definition) Keys(axis Axis) []Key {
	a := d.axis(axis)
	if a == nil {
		return nil
	}
	keys := make([]Key, 0, len(a.Fragments))
	for k := range a.Fragments {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func (d *Definition) axis(name Axis) *AxisSpec {
	for i := range d.axes {
		if d.axes[i].Name == name {
			return &d.axes[i]
		}
	}
	return nil
}

// Join concatenates class lists, dropping empty entries and collapsing
// whitespace.
func Join(classes ...string) string {
	var b strings.Builder
	for _, c := range classes {
		for _, f := range strings.Fields(c) {
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(f)
		}
	}
	return b.String()
}
