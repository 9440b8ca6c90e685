// Package format renders field values in one of the three supported format
// kinds and reports which kinds a Go type can honour.
package format

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/aretw0/enumtext/pkg/core"
)

// Write appends the rendering of v in the requested kind to b.
// A value that cannot honour kind is written in its default form.
func Write(b *strings.Builder, v any, kind core.FormatKind) {
	switch kind {
	case core.FormatStructured:
		writeStructured(b, reflect.ValueOf(v), 0)
	case core.FormatHex:
		if !writeHex(b, reflect.ValueOf(v)) {
			writeDefault(b, v)
		}
	default:
		writeDefault(b, v)
	}
}

// Render returns the rendering of v in the requested kind.
func Render(v any, kind core.FormatKind) string {
	var b strings.Builder
	Write(&b, v, kind)
	return b.String()
}

// Default returns the human-readable form of v.
func Default(v any) string { return Render(v, core.FormatDefault) }

// Structured returns the structured (debug) form of v.
func Structured(v any) string { return Render(v, core.FormatStructured) }

// Hex returns the lowercase hex digits of an integral v.
func Hex(v any) string { return Render(v, core.FormatHex) }

// writeDefault defers to fmt, which prefers Error() then String() and
// recovers from panicking methods.
func writeDefault(b *strings.Builder, v any) {
	if s, ok := v.(string); ok {
		b.WriteString(s)
		return
	}
	fmt.Fprint(b, v)
}
