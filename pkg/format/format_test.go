package format

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/enumtext/pkg/core"
)

type value struct {
	value int
}

func (v value) String() string { return "v" }

type state struct {
	Code uint8 `text:"code"`
	note string
	Skip func() `text:"-"`
}

type pair struct {
	A int    `text:"0"`
	B string `text:"1"`
}

type empty struct{}

type custom struct{}

func (custom) FormatStructured() string { return "<custom>" }

type holder struct {
	inner custom
	list  []custom
	byKey map[string]custom
	held  any
	ptr   *custom
}

type node struct {
	Name string `text:"name"`
	Next *node  `text:"next"`
}

type code int16

func TestDefault(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"string is raw", "state error", "state error"},
		{"int", 45, "45"},
		{"negative", -3, "-3"},
		{"float", 1.5, "1.5"},
		{"bool", true, "true"},
		{"stringer", value{42}, "v"},
		{"error", errors.New("boom"), "boom"},
		{"nil", nil, "<nil>"},
		{"named int", code(7), "7"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Default(tc.in))
		})
	}
}

func TestStructured(t *testing.T) {
	loop := &node{Name: "a"}
	loop.Next = loop

	tests := []struct {
		name string
		in   any
		want string
	}{
		{"unexported field", value{42}, "value { value: 42 }"},
		{"tag labels and skip", state{Code: 2, note: "n"}, `state { code: 2, note: "n" }`},
		{"tuple struct", pair{1, "x"}, `pair(1, "x")`},
		{"empty struct", empty{}, "empty"},
		{"custom", custom{}, "<custom>"},
		{"custom behind unexported fields", holder{
			list:  []custom{{}},
			byKey: map[string]custom{"k": {}},
			held:  custom{},
			ptr:   &custom{},
		}, `holder { inner: <custom>, list: [<custom>], byKey: {"k": <custom>}, held: <custom>, ptr: <custom> }`},
		{"custom behind unexported pointer field", &holder{}, `holder { inner: <custom>, list: [], byKey: {}, held: nil, ptr: nil }`},
		{"string is quoted", "a\"b", `"a\"b"`},
		{"int", 45, "45"},
		{"uint", uint(3), "3"},
		{"float32", float32(0.1), "0.1"},
		{"bool", false, "false"},
		{"nil", nil, "nil"},
		{"nil pointer", (*state)(nil), "nil"},
		{"pointer", &state{Code: 1}, `state { code: 1, note: "" }`},
		{"slice", []int{1, 2}, "[1, 2]"},
		{"nil slice", []string(nil), "[]"},
		{"array of strings", [2]string{"a", "b"}, `["a", "b"]`},
		{"map sorted", map[string]int{"b": 2, "a": 1}, `{"a": 1, "b": 2}`},
		{"nested", []any{value{1}, nil}, "[value { value: 1 }, nil]"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Structured(tc.in))
		})
	}

	t.Run("cycle terminates", func(t *testing.T) {
		assert.Contains(t, Structured(loop), "...")
	})
}

func TestHex(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"32", 32, "20"},
		{"zero", 0, "0"},
		{"lowercase", 0xABCDEF, "abcdef"},
		{"uint64 max", ^uint64(0), "ffffffffffffffff"},
		{"negative int8", int8(-1), "ff"},
		{"negative int32", int32(-32), "ffffffe0"},
		{"named", code(-2), "fffe"},
		{"pointer", func() *int { i := 255; return &i }(), "ff"},
		{"non-integral falls back", "x", "x"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Hex(tc.in))
		})
	}
}

func TestCapabilities(t *testing.T) {
	all := core.CapDefault | core.CapStructured | core.CapIntegral
	ds := core.CapDefault | core.CapStructured

	tests := []struct {
		name string
		t    reflect.Type
		want core.Capability
	}{
		{"int", reflect.TypeFor[int](), all},
		{"named int", reflect.TypeFor[code](), all},
		{"pointer to uint", reflect.TypeFor[*uint16](), all},
		{"string", reflect.TypeFor[string](), ds},
		{"float", reflect.TypeFor[float64](), ds},
		{"struct with skipped func", reflect.TypeFor[state](), ds},
		{"self-referencing struct", reflect.TypeFor[node](), ds},
		{"func", reflect.TypeFor[func()](), core.CapDefault},
		{"chan", reflect.TypeFor[chan int](), core.CapDefault},
		{"map with func values", reflect.TypeFor[map[string]func()](), core.CapDefault},
		{"struct with chan", reflect.TypeFor[struct{ C chan int }](), core.CapDefault},
		{"interface", reflect.TypeFor[any](), ds},
		{"nil", nil, ds},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Capabilities(tc.t))
		})
	}

	assert.True(t, Supports(reflect.TypeFor[uint8](), core.FormatHex))
	assert.False(t, Supports(reflect.TypeFor[string](), core.FormatHex))
}
