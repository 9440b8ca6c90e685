// Package typed renders Go-native tagged unions.
//
// A tagged union is modelled as a marker interface T and one struct type per
// variant. The variant tag is the struct's type name, and its shape is derived
// by the structs adapter:
//
//	type SomeError interface{ error; someError() }
//
//	type Named struct{ Message string `text:"message"` }
//
//	var someError = typed.MustNew[SomeError]("SomeError",
//		typed.Variant[Named]("hello {message}"),
//	)
//
//	func (e Named) Error() string { return someError.Render(e) }
package typed

import (
	"fmt"
	"reflect"

	"github.com/aretw0/enumtext/pkg/adapters/structs"
	"github.com/aretw0/enumtext/pkg/core"
	"github.com/aretw0/enumtext/pkg/enum"
)

// Def declares the template of one variant type.
type Def struct {
	typ      reflect.Type
	template string
}

// Variant declares the display template of variant type V.
func Variant[V any](tmpl string) Def {
	return Def{typ: reflect.TypeFor[V](), template: tmpl}
}

// Enum is a compiled typed enum. It is immutable and safe for concurrent use.
type Enum[T any] struct {
	desc     *enum.Descriptor
	bindings map[reflect.Type]*structs.Binding
}

// New compiles the templates of every variant of T. Each variant type must
// implement T (directly or through its pointer) when T is an interface.
func New[T any](name string, defs ...Def) (*Enum[T], error) {
	iface := reflect.TypeFor[T]()
	e := &Enum[T]{bindings: make(map[reflect.Type]*structs.Binding, len(defs))}

	variants := make([]enum.Variant, 0, len(defs))
	for _, d := range defs {
		if iface.Kind() == reflect.Interface && !implements(d.typ, iface) {
			return nil, &core.CompileError{
				Enum: name, Variant: d.typ.String(), Pos: -1,
				Kind:   core.ErrInvalidVariant,
				Reason: fmt.Sprintf("%s does not implement %s", d.typ, iface),
			}
		}
		b, err := structs.ShapeOf(d.typ)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if _, dup := e.bindings[b.Type()]; dup {
			return nil, &core.CompileError{
				Enum: name, Variant: b.Type().Name(), Pos: -1, Kind: core.ErrDuplicateVariant,
			}
		}
		e.bindings[b.Type()] = b
		variants = append(variants, enum.Variant{
			Tag:      b.Type().Name(),
			Shape:    b.Shape(),
			Template: d.template,
		})
	}

	desc, err := enum.Compile(name, variants...)
	if err != nil {
		return nil, err
	}
	e.desc = desc
	return e, nil
}

// MustNew is like New but panics on error. It is meant for package-level
// variables.
func MustNew[T any](name string, defs ...Def) *Enum[T] {
	e, err := New[T](name, defs...)
	if err != nil {
		panic("typed: New(" + name + "): " + err.Error())
	}
	return e
}

func implements(t, iface reflect.Type) bool {
	return t.Implements(iface) || (t.Kind() != reflect.Pointer && reflect.PointerTo(t).Implements(iface))
}

// Render renders v with the template of its dynamic type.
func (e *Enum[T]) Render(v T) string {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return "%!(BADVARIANT " + e.desc.Name() + "::<nil>)"
	}
	t := rv.Type()
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	b, ok := e.bindings[t]
	if !ok {
		return "%!(BADVARIANT " + e.desc.Name() + "::" + t.String() + ")"
	}
	return e.desc.Render(core.Instance{Tag: t.Name(), Values: b.Values(rv)})
}

// Descriptor returns the underlying compiled descriptor.
func (e *Enum[T]) Descriptor() *enum.Descriptor { return e.desc }
