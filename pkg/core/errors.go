package core

import (
	"errors"
	"fmt"
	"strings"
)

// Compile errors. A *CompileError always wraps exactly one of these.
var (
	ErrSyntax          = errors.New("syntax error")
	ErrUnitPlaceholder = errors.New("placeholder in unit variant")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrUnknownField    = errors.New("unknown field")
	ErrShapeMismatch   = errors.New("reference does not match shape")
	ErrCapability      = errors.New("unsupported format")
)

// Definition errors raised before a template is looked at.
var (
	ErrInvalidShape     = errors.New("invalid shape")
	ErrInvalidVariant   = errors.New("invalid variant")
	ErrDuplicateVariant = errors.New("duplicate variant")
)

// CompileError reports a template that cannot be bound to its variant.
type CompileError struct {
	Enum    string
	Variant string
	// Placeholder is the offending span as written, if any.
	Placeholder string
	// Pos is the byte offset in the template, or -1 when not applicable.
	Pos    int
	Kind   error
	Reason string
}

func (e *CompileError) Error() string {
	var b strings.Builder
	switch {
	case e.Enum != "" && e.Variant != "":
		fmt.Fprintf(&b, "%s::%s: ", e.Enum, e.Variant)
	case e.Variant != "":
		fmt.Fprintf(&b, "%s: ", e.Variant)
	case e.Enum != "":
		fmt.Fprintf(&b, "%s: ", e.Enum)
	}
	if e.Placeholder != "" {
		fmt.Fprintf(&b, "placeholder %s at offset %d: ", e.Placeholder, e.Pos)
	} else if e.Pos >= 0 {
		fmt.Fprintf(&b, "offset %d: ", e.Pos)
	}
	b.WriteString(e.Kind.Error())
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	return b.String()
}

func (e *CompileError) Unwrap() error {
	return e.Kind
}

// WithVariant returns a copy of e attributed to the given enum and variant.
func (e *CompileError) WithVariant(enum, variant string) *CompileError {
	c := *e
	c.Enum = enum
	c.Variant = variant
	return &c
}
