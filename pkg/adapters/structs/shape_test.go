package structs_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/enumtext/pkg/adapters/structs"
	"github.com/aretw0/enumtext/pkg/core"
)

type unit struct{}

type pair struct {
	Code   int32  `text:"1"`
	Reason string `text:"0"`
}

type named struct {
	Message string `text:"message"`
	path    string
	Hidden  func() `text:"-"`
}

type mixed struct {
	A int `text:"0"`
	B int
}

type gap struct {
	A int `text:"0"`
	B int `text:"2"`
}

type dup struct {
	A int `text:"0"`
	B int `text:"0"`
}

type dupName struct {
	A int `text:"x"`
	B int `text:"x"`
}

func TestShapeOf(t *testing.T) {
	b, err := structs.ShapeOf(reflect.TypeFor[unit]())
	require.NoError(t, err)
	assert.Equal(t, core.ShapeUnit, b.Shape().Kind)
	assert.Nil(t, b.Values(reflect.ValueOf(unit{})))

	b, err = structs.ShapeOf(reflect.TypeFor[pair]())
	require.NoError(t, err)
	shape := b.Shape()
	assert.Equal(t, core.ShapePositional, shape.Kind)
	require.Equal(t, 2, shape.Arity())
	assert.Equal(t, "string", shape.Fields[0].Type)
	assert.Equal(t, "int32", shape.Fields[1].Type)
	assert.True(t, shape.Fields[1].Caps.Has(core.CapIntegral))
	assert.False(t, shape.Fields[0].Caps.Has(core.CapIntegral))
	assert.Equal(t, []any{"boom", int32(7)}, b.Values(reflect.ValueOf(pair{Code: 7, Reason: "boom"})))

	b, err = structs.ShapeOf(reflect.TypeFor[*named]())
	require.NoError(t, err)
	shape = b.Shape()
	assert.Equal(t, core.ShapeNamed, shape.Kind)
	require.Equal(t, 2, shape.Arity())
	assert.Equal(t, "message", shape.Fields[0].Name)
	assert.Equal(t, "path", shape.Fields[1].Name)
	assert.Equal(t, []any{"hi", "/tmp"}, b.Values(reflect.ValueOf(&named{Message: "hi", path: "/tmp"})))
}

func TestShapeOf_NilPointerYieldsZeroValues(t *testing.T) {
	b, err := structs.ShapeOf(reflect.TypeFor[pair]())
	require.NoError(t, err)
	assert.Equal(t, []any{"", int32(0)}, b.Values(reflect.ValueOf((*pair)(nil))))
}

func TestShapeOf_Invalid(t *testing.T) {
	tests := []struct {
		name string
		typ  reflect.Type
	}{
		{"not a struct", reflect.TypeFor[int]()},
		{"mixed", reflect.TypeFor[mixed]()},
		{"gap", reflect.TypeFor[gap]()},
		{"duplicate position", reflect.TypeFor[dup]()},
		{"duplicate name", reflect.TypeFor[dupName]()},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b, err := structs.ShapeOf(tc.typ)
			assert.Nil(t, b)
			assert.ErrorIs(t, err, core.ErrInvalidShape)
		})
	}
}
