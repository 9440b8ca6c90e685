package core

import (
	"fmt"
	"strings"
)

// Capability describes which renderings a field's type supports.
type Capability uint8

const (
	CapDefault Capability = 1 << iota
	CapStructured
	CapIntegral
)

// Has reports whether every bit of o is set in c.
func (c Capability) Has(o Capability) bool {
	return c&o == o
}

func (c Capability) String() string {
	var parts []string
	if c.Has(CapDefault) {
		parts = append(parts, "default")
	}
	if c.Has(CapStructured) {
		parts = append(parts, "structured")
	}
	if c.Has(CapIntegral) {
		parts = append(parts, "integral")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// ShapeKind is the arity/naming structure of a variant.
type ShapeKind int

const (
	ShapeUnit ShapeKind = iota
	ShapePositional
	ShapeNamed
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeUnit:
		return "unit"
	case ShapePositional:
		return "positional"
	case ShapeNamed:
		return "named"
	default:
		return fmt.Sprintf("ShapeKind(%d)", int(k))
	}
}

// Field is one field of a variant.
type Field struct {
	// Name is empty for positional fields.
	Name string
	// Type is a display name used in diagnostics (e.g. "int32", "State").
	Type string
	Caps Capability
}

// Label returns the name of a named field or "#i" for a positional one.
func (f Field) Label(i int) string {
	if f.Name != "" {
		return f.Name
	}
	return fmt.Sprintf("#%d", i)
}

// Shape is the field layout of one variant.
type Shape struct {
	Kind   ShapeKind
	Fields []Field
}

// Unit returns the shape of a variant without fields.
func Unit() Shape {
	return Shape{Kind: ShapeUnit}
}

// Positional returns a shape of ordered, unnamed fields.
// Every field gets CapDefault.
func Positional(fields ...Field) Shape {
	return Shape{Kind: ShapePositional, Fields: withDefault(fields)}
}

// Named returns a shape of fields addressed by name.
// Every field gets CapDefault.
func Named(fields ...Field) Shape {
	return Shape{Kind: ShapeNamed, Fields: withDefault(fields)}
}

func withDefault(fields []Field) []Field {
	out := make([]Field, len(fields))
	for i, f := range fields {
		f.Caps |= CapDefault
		out[i] = f
	}
	return out
}

// Arity returns the number of fields.
func (s Shape) Arity() int {
	return len(s.Fields)
}

// Lookup returns the index of the named field.
func (s Shape) Lookup(name string) (int, bool) {
	if s.Kind != ShapeNamed {
		return 0, false
	}
	for i, f := range s.Fields {
		if f.Name == name {
			return i, true
		}
	}
	return 0, false
}

// Validate checks the structural invariants of the shape. The error is a
// *CompileError wrapping ErrInvalidShape.
func (s Shape) Validate() error {
	switch s.Kind {
	case ShapeUnit:
		if len(s.Fields) > 0 {
			return invalidShape("unit shape declares %d fields", len(s.Fields))
		}
	case ShapePositional:
		for i, f := range s.Fields {
			if f.Name != "" {
				return invalidShape("positional field %d is named %q", i, f.Name)
			}
		}
	case ShapeNamed:
		seen := make(map[string]struct{}, len(s.Fields))
		for i, f := range s.Fields {
			if f.Name == "" {
				return invalidShape("named field %d has no name", i)
			}
			if _, dup := seen[f.Name]; dup {
				return invalidShape("duplicate field %q", f.Name)
			}
			seen[f.Name] = struct{}{}
		}
	default:
		return invalidShape("unknown kind %v", s.Kind)
	}
	return nil
}

func invalidShape(format string, args ...any) error {
	return &CompileError{Pos: -1, Kind: ErrInvalidShape, Reason: fmt.Sprintf(format, args...)}
}

func (s Shape) String() string {
	switch s.Kind {
	case ShapePositional:
		types := make([]string, len(s.Fields))
		for i, f := range s.Fields {
			types[i] = f.Type
		}
		return "(" + strings.Join(types, ", ") + ")"
	case ShapeNamed:
		parts := make([]string, len(s.Fields))
		for i, f := range s.Fields {
			parts[i] = f.Name + ": " + f.Type
		}
		return "{ " + strings.Join(parts, ", ") + " }"
	default:
		return ""
	}
}
