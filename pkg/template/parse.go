// Package template splits display templates into literal and placeholder
// segments.
//
// The grammar is deliberately small:
//
//	template    = { text | "{{" | "}}" | placeholder }
//	placeholder = "{" reference [ ":" [ spec ] ] "}"
//	reference   = digits | identifier
//	spec        = "?" | "0x"
//
// A reference made only of digits addresses a positional field, however
// large; anything else must be an identifier and addresses a named field. "?" asks for the
// structured form, "0x" for lowercase hex digits (without prefix).
package template

import (
	"math"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/aretw0/enumtext/pkg/core"
)

// Parse tokenizes src into segments. Adjacent literal text, including
// escaped braces, is merged into a single literal segment. The returned
// error is a *core.CompileError wrapping core.ErrSyntax.
func Parse(src string) ([]core.Segment, error) {
	l := &lexer{src: src}
	l.run()
	if l.err != nil {
		return nil, l.err
	}
	return l.segs, nil
}

// Placeholders returns only the placeholder segments of segs.
func Placeholders(segs []core.Segment) []core.Segment {
	var out []core.Segment
	for _, s := range segs {
		if s.Kind == core.SegmentPlaceholder {
			out = append(out, s)
		}
	}
	return out
}

func parseRef(s string) (core.Ref, string) {
	if s == "" {
		return core.Ref{}, "empty reference"
	}
	if isDigits(s) {
		i, err := strconv.Atoi(s)
		if err != nil {
			// Too large for an int: no variant has that many fields, so
			// the resolver reports it as out of range.
			i = math.MaxInt
		}
		return core.Index(i), ""
	}
	if !isIdentifier(s) {
		return core.Ref{}, "malformed reference " + strconv.Quote(s)
	}
	return core.Name(s), ""
}

func parseSpec(s string) (core.FormatKind, bool) {
	switch s {
	case "":
		return core.FormatDefault, true
	case "?":
		return core.FormatStructured, true
	case "0x":
		return core.FormatHex, true
	default:
		return 0, false
	}
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isIdentifier(s string) bool {
	for i, w := 0, 0; i < len(s); i += w {
		var r rune
		r, w = utf8.DecodeRuneInString(s[i:])
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}
