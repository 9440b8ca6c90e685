package fs

import (
	"errors"
	"fmt"
	"io"
	"reflect"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/enumtext/pkg/core"
	"github.com/aretw0/enumtext/pkg/format"
)

var (
	ErrUnknownEnum    = errors.New("unknown enum")
	ErrUnknownVariant = errors.New("unknown variant")
	ErrUnknownType    = errors.New("unknown type")
	ErrInvalidData    = errors.New("invalid instance data")
	ErrDuplicate      = errors.New("duplicate declaration")
)

// catalogFile is the on-disk layout of one catalog document.
type catalogFile struct {
	Types []typeDecl `yaml:"types"`
	Enums []enumDecl `yaml:"enums"`
}

type typeDecl struct {
	Name    string      `yaml:"name"`
	Fields  []fieldDecl `yaml:"fields"`
	Display string      `yaml:"display"`
}

type enumDecl struct {
	Name     string        `yaml:"name"`
	Variants []variantDecl `yaml:"variants"`
}

type variantDecl struct {
	Name     string      `yaml:"name"`
	Fields   []fieldDecl `yaml:"fields"`
	Template string      `yaml:"template"`
}

type fieldDecl struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// decodeFile reads every YAML document of r. JSON input is accepted as the
// YAML subset it is.
func decodeFile(r io.Reader) ([]catalogFile, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var docs []catalogFile
	for {
		var doc catalogFile
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			return docs, nil
		}
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
}

// fieldType is a declared field type: a scalar backed by a Go type, or a
// catalog record.
type fieldType struct {
	name   string
	goType reflect.Type
	caps   core.Capability
	record *recordType
}

func scalar[T any](name string) *fieldType {
	t := reflect.TypeFor[T]()
	return &fieldType{name: name, goType: t, caps: format.Capabilities(t)}
}

var scalarTypes = map[string]*fieldType{
	"i8":     scalar[int8]("i8"),
	"i16":    scalar[int16]("i16"),
	"i32":    scalar[int32]("i32"),
	"i64":    scalar[int64]("i64"),
	"int":    scalar[int]("int"),
	"u8":     scalar[uint8]("u8"),
	"u16":    scalar[uint16]("u16"),
	"u32":    scalar[uint32]("u32"),
	"u64":    scalar[uint64]("u64"),
	"uint":   scalar[uint]("uint"),
	"f32":    scalar[float32]("f32"),
	"f64":    scalar[float64]("f64"),
	"float":  scalar[float64]("float"),
	"bool":   scalar[bool]("bool"),
	"string": scalar[string]("string"),
	"any":    scalar[any]("any"),
	"opaque": {name: "opaque", goType: reflect.TypeFor[string](), caps: core.CapDefault},
}

// decode converts one YAML node into a value of the field type.
func (ft *fieldType) decode(n *yaml.Node) (any, error) {
	if ft.record != nil {
		return ft.record.decode(n)
	}
	ptr := reflect.New(ft.goType)
	if err := n.Decode(ptr.Interface()); err != nil {
		return nil, fmt.Errorf("%w: %s at line %d: %v", ErrInvalidData, ft.name, n.Line, err)
	}
	return ptr.Elem().Interface(), nil
}

// shapeOf builds a shape from declared fields: none is unit, all unnamed is
// positional, all named is named.
func shapeOf(decls []fieldDecl, lookup func(string) (*fieldType, error)) (core.Shape, []*fieldType, error) {
	if len(decls) == 0 {
		return core.Unit(), nil, nil
	}
	fields := make([]core.Field, len(decls))
	types := make([]*fieldType, len(decls))
	named := 0
	for i, d := range decls {
		ft, err := lookup(d.Type)
		if err != nil {
			return core.Shape{}, nil, err
		}
		if d.Name != "" {
			named++
		}
		fields[i] = core.Field{Name: d.Name, Type: ft.name, Caps: ft.caps}
		types[i] = ft
	}

	var shape core.Shape
	switch named {
	case 0:
		shape = core.Positional(fields...)
	case len(decls):
		shape = core.Named(fields...)
	default:
		return core.Shape{}, nil, &core.CompileError{
			Pos: -1, Kind: core.ErrInvalidShape,
			Reason: "mixes named and unnamed fields",
		}
	}
	if err := shape.Validate(); err != nil {
		return core.Shape{}, nil, err
	}
	return shape, types, nil
}
