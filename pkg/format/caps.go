package format

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/aretw0/enumtext/pkg/core"
)

// Capabilities reports which format kinds values of type t support.
// A nil type (an untyped nil interface) supports default and structured.
func Capabilities(t reflect.Type) core.Capability {
	caps := core.CapDefault
	if t == nil {
		return caps | core.CapStructured
	}
	if structured(t, make(map[reflect.Type]bool)) {
		caps |= core.CapStructured
	}
	if integral(t) {
		caps |= core.CapIntegral
	}
	return caps
}

// Supports reports whether t can be rendered with kind.
func Supports(t reflect.Type, kind core.FormatKind) bool {
	return Capabilities(t).Has(kind.Requires())
}

func structured(t reflect.Type, seen map[reflect.Type]bool) bool {
	if t.Implements(structurerType) {
		return true
	}
	if seen[t] {
		return true
	}
	seen[t] = true

	switch t.Kind() {
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return false
	case reflect.Pointer, reflect.Slice, reflect.Array:
		return structured(t.Elem(), seen)
	case reflect.Map:
		return structured(t.Key(), seen) && structured(t.Elem(), seen)
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if _, skip := FieldTag(t.Field(i)); skip {
				continue
			}
			if !structured(t.Field(i).Type, seen) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

func integral(t reflect.Type) bool {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

// writeHex writes the unsigned reinterpretation of an integer at its own bit
// width. It reports false when v is not integral.
func writeHex(b *strings.Builder, v reflect.Value) bool {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return false
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return false
	}
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		u := uint64(v.Int())
		if bits := v.Type().Bits(); bits < 64 {
			u &= 1<<uint(bits) - 1
		}
		b.WriteString(strconv.FormatUint(u, 16))
		return true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		b.WriteString(strconv.FormatUint(v.Uint(), 16))
		return true
	}
	return false
}
