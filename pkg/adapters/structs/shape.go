// Package structs derives variant shapes from Go struct types.
//
// A struct with no bindable fields is a unit variant. Fields tagged
// `text:"0"`, `text:"1"`, ... form a positional variant; any other struct is
// a named variant whose field names come from the `text` tag or the Go field
// name. `text:"-"` excludes a field.
package structs

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"unsafe"

	"github.com/aretw0/enumtext/pkg/core"
	"github.com/aretw0/enumtext/pkg/format"
)

// Binding ties a struct type to the shape derived from it.
type Binding struct {
	typ   reflect.Type
	shape core.Shape
	// path holds the struct field index of each shape field, in shape order.
	path []int
}

// ShapeOf derives the shape of t. Pointer types are dereferenced.
func ShapeOf(t reflect.Type) (*Binding, error) {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil, invalid(t, "not a struct")
	}

	type member struct {
		field core.Field
		index int
		pos   int
	}
	var members []member
	numeric, named := 0, 0
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		label, skip := format.FieldTag(sf)
		if skip || label == "_" {
			continue
		}
		m := member{
			field: core.Field{Type: sf.Type.String(), Caps: format.Capabilities(sf.Type)},
			index: i,
			pos:   -1,
		}
		if n, err := strconv.Atoi(label); err == nil {
			if n < 0 {
				return nil, invalid(t, "field %s has negative position %d", sf.Name, n)
			}
			m.pos = n
			numeric++
		} else {
			m.field.Name = label
			named++
		}
		members = append(members, m)
	}

	b := &Binding{typ: t}
	switch {
	case len(members) == 0:
		b.shape = core.Unit()
		return b, nil
	case numeric > 0 && named > 0:
		return nil, invalid(t, "mixes positional and named fields")
	case numeric > 0:
		sort.SliceStable(members, func(i, j int) bool { return members[i].pos < members[j].pos })
		for i, m := range members {
			if m.pos != i {
				if i > 0 && members[i-1].pos == m.pos {
					return nil, invalid(t, "duplicate position %d", m.pos)
				}
				return nil, invalid(t, "missing position %d", i)
			}
		}
	}

	fields := make([]core.Field, len(members))
	b.path = make([]int, len(members))
	for i, m := range members {
		fields[i] = m.field
		b.path[i] = m.index
	}
	if numeric > 0 {
		b.shape = core.Positional(fields...)
	} else {
		b.shape = core.Named(fields...)
	}
	if err := b.shape.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", t, err)
	}
	return b, nil
}

func invalid(t reflect.Type, format string, args ...any) error {
	name := "<nil>"
	if t != nil {
		name = t.String()
	}
	return &core.CompileError{
		Variant: name,
		Pos:     -1,
		Kind:    core.ErrInvalidShape,
		Reason:  fmt.Sprintf(format, args...),
	}
}

// Type returns the struct type the binding was derived from.
func (b *Binding) Type() reflect.Type { return b.typ }

// Shape returns the derived shape.
func (b *Binding) Shape() core.Shape { return b.shape }

// Values extracts the field values of v in shape order. v must be of the
// bound type or a pointer to it; a nil pointer yields zero values.
func (b *Binding) Values(v reflect.Value) []any {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			v = reflect.Zero(b.typ)
			break
		}
		v = v.Elem()
	}
	if len(b.path) == 0 {
		return nil
	}
	if !v.CanAddr() {
		c := reflect.New(v.Type()).Elem()
		c.Set(v)
		v = c
	}

	out := make([]any, len(b.path))
	for i, idx := range b.path {
		f := v.Field(idx)
		if f.CanInterface() {
			out[i] = f.Interface()
			continue
		}
		out[i] = reflect.NewAt(f.Type(), unsafe.Pointer(f.UnsafeAddr())).Elem().Interface()
	}
	return out
}
