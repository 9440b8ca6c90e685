package enumtext

import "github.com/aretw0/enumtext/pkg/typed"

// TypedEnum renders a Go tagged union modelled as a marker interface T.
type TypedEnum[T any] = typed.Enum[T]

// Case declares the display template of variant type V.
func Case[V any](template string) typed.Def {
	return typed.Variant[V](template)
}

// NewTyped compiles a typed enum. Each case type must implement T.
func NewTyped[T any](name string, cases ...typed.Def) (*TypedEnum[T], error) {
	return typed.New[T](name, cases...)
}

// MustNewTyped is like NewTyped but panics on error. It is meant for
// package-level variables.
func MustNewTyped[T any](name string, cases ...typed.Def) *TypedEnum[T] {
	return typed.MustNew[T](name, cases...)
}
