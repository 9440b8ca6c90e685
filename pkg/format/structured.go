package format

import (
	"reflect"
	"sort"
	"strconv"
	"strings"
	"unsafe"

	"github.com/aretw0/enumtext/pkg/core"
)

// TagKey is the struct tag consulted for field labels and positions.
const TagKey = "text"

// maxDepth bounds recursion through self-referencing values.
const maxDepth = 32

var structurerType = reflect.TypeFor[core.Structurer]()

// FieldTag returns the label of a struct field and whether it is skipped.
// The label is the `text` tag name when present, otherwise the Go name.
func FieldTag(sf reflect.StructField) (label string, skip bool) {
	tag, ok := sf.Tag.Lookup(TagKey)
	if !ok {
		return sf.Name, false
	}
	name, _, _ := strings.Cut(tag, ",")
	switch name {
	case "-":
		return "", true
	case "":
		return sf.Name, false
	default:
		return name, false
	}
}

func writeStructured(b *strings.Builder, v reflect.Value, depth int) {
	if !v.IsValid() {
		b.WriteString("nil")
		return
	}
	if depth > maxDepth {
		b.WriteString("...")
		return
	}
	v = readable(v)
	if v.Type().Implements(structurerType) && v.CanInterface() {
		if (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) && v.IsNil() {
			b.WriteString("nil")
			return
		}
		b.WriteString(v.Interface().(core.Structurer).FormatStructured())
		return
	}

	switch v.Kind() {
	case reflect.String:
		b.WriteString(strconv.Quote(v.String()))
	case reflect.Bool:
		b.WriteString(strconv.FormatBool(v.Bool()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		b.WriteString(strconv.FormatInt(v.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		b.WriteString(strconv.FormatUint(v.Uint(), 10))
	case reflect.Float32, reflect.Float64:
		b.WriteString(strconv.FormatFloat(v.Float(), 'g', -1, v.Type().Bits()))
	case reflect.Complex64, reflect.Complex128:
		b.WriteString(strconv.FormatComplex(v.Complex(), 'g', -1, v.Type().Bits()))
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			b.WriteString("nil")
			return
		}
		writeStructured(b, v.Elem(), depth+1)
	case reflect.Slice, reflect.Array:
		b.WriteByte('[')
		for i := 0; i < v.Len(); i++ {
			if i > 0 {
				b.WriteString(", ")
			}
			writeStructured(b, v.Index(i), depth+1)
		}
		b.WriteByte(']')
	case reflect.Map:
		writeMap(b, v, depth)
	case reflect.Struct:
		writeStruct(b, v, depth)
	default:
		b.WriteString("<" + v.Type().String() + ">")
	}
}

func writeMap(b *strings.Builder, v reflect.Value, depth int) {
	type entry struct{ k, v string }
	entries := make([]entry, 0, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		var kb, vb strings.Builder
		writeStructured(&kb, iter.Key(), depth+1)
		writeStructured(&vb, iter.Value(), depth+1)
		entries = append(entries, entry{kb.String(), vb.String()})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].k < entries[j].k })

	b.WriteByte('{')
	for i, e := range entries {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(e.k)
		b.WriteString(": ")
		b.WriteString(e.v)
	}
	b.WriteByte('}')
}

// writeStruct renders `Name { a: 1, b: 2 }`, or `Name(1, 2)` when every
// labelled field carries a numeric tag, or `Name` when there is nothing to show.
func writeStruct(b *strings.Builder, v reflect.Value, depth int) {
	t := v.Type()
	if !v.CanAddr() && v.CanInterface() {
		c := reflect.New(t).Elem()
		c.Set(v)
		v = c
	}
	type member struct {
		label string
		value reflect.Value
	}
	members := make([]member, 0, t.NumField())
	tuple := true
	for i := 0; i < t.NumField(); i++ {
		label, skip := FieldTag(t.Field(i))
		if skip || label == "_" {
			continue
		}
		if _, err := strconv.Atoi(label); err != nil {
			tuple = false
		}
		members = append(members, member{label, v.Field(i)})
	}

	b.WriteString(t.Name())
	if len(members) == 0 {
		return
	}
	if tuple {
		b.WriteByte('(')
		for i, m := range members {
			if i > 0 {
				b.WriteString(", ")
			}
			writeStructured(b, m.value, depth+1)
		}
		b.WriteByte(')')
		return
	}
	if t.Name() != "" {
		b.WriteByte(' ')
	}
	b.WriteString("{ ")
	for i, m := range members {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(m.label)
		b.WriteString(": ")
		writeStructured(b, m.value, depth+1)
	}
	b.WriteString(" }")
}

// readable lifts the read-only flag from a value reached through an
// unexported field, so that nested Structurer overrides still apply. Only
// addressable values can be lifted; writeStruct copies structs to make
// their fields addressable.
func readable(v reflect.Value) reflect.Value {
	if v.CanInterface() || !v.CanAddr() {
		return v
	}
	return reflect.NewAt(v.Type(), unsafe.Pointer(v.UnsafeAddr())).Elem()
}
