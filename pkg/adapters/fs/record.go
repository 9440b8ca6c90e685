package fs

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/enumtext/pkg/bind"
	"github.com/aretw0/enumtext/pkg/core"
	"github.com/aretw0/enumtext/pkg/format"
)

// recordType is a catalog-declared record. Its values are Records.
type recordType struct {
	name    string
	source  string
	shape   core.Shape
	fields  []*fieldType
	display *bind.Renderer
	ft      *fieldType
}

func (rt *recordType) fieldType() *fieldType {
	if rt.ft == nil {
		rt.ft = &fieldType{name: rt.name, caps: core.CapDefault | core.CapStructured, record: rt}
	}
	return rt.ft
}

// structured reports whether every field, through nested records, has a
// structured form.
func (rt *recordType) structured(seen map[*recordType]bool) bool {
	if seen[rt] {
		return true
	}
	seen[rt] = true
	for _, ft := range rt.fields {
		if ft.record != nil {
			if !ft.record.structured(seen) {
				return false
			}
			continue
		}
		if !ft.caps.Has(core.CapStructured) {
			return false
		}
	}
	return true
}

// syncCaps copies the final capabilities of the field types into the shape.
func (rt *recordType) syncCaps() {
	for i, ft := range rt.fields {
		rt.shape.Fields[i].Caps = ft.caps | core.CapDefault
	}
}

func compileDisplay(rt *recordType, tmpl string) (*bind.Renderer, error) {
	r, err := bind.Compile(rt.shape, tmpl)
	if err != nil {
		var ce *core.CompileError
		if errors.As(err, &ce) {
			return nil, ce.WithVariant(rt.name, "")
		}
		return nil, fmt.Errorf("%s: %w", rt.name, err)
	}
	return r, nil
}

func (rt *recordType) decode(n *yaml.Node) (any, error) {
	values, err := decodeValues(rt.shape, rt.fields, n)
	if err != nil {
		return nil, err
	}
	return Record{typ: rt, values: values}, nil
}

// Record is an instance of a catalog record type. Its default form is the
// record's display template, or the structured form when it has none.
type Record struct {
	typ    *recordType
	values []any
}

// Type returns the record type name.
func (r Record) Type() string { return r.typ.name }

// Values returns the field values in declaration order.
func (r Record) Values() []any { return append([]any(nil), r.values...) }

func (r Record) String() string {
	if r.typ.display != nil {
		return r.typ.display.Render(r.values...)
	}
	return r.FormatStructured()
}

// FormatStructured implements core.Structurer.
func (r Record) FormatStructured() string {
	var b strings.Builder
	b.WriteString(r.typ.name)
	switch r.typ.shape.Kind {
	case core.ShapePositional:
		b.WriteByte('(')
		for i, v := range r.values {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(format.Structured(v))
		}
		b.WriteByte(')')
	case core.ShapeNamed:
		b.WriteString(" { ")
		for i, v := range r.values {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(r.typ.shape.Fields[i].Name)
			b.WriteString(": ")
			b.WriteString(format.Structured(v))
		}
		b.WriteString(" }")
	}
	return b.String()
}

var _ core.Structurer = Record{}
