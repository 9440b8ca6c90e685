package core

import "strconv"

// FormatKind selects the textual representation of a placeholder.
type FormatKind int

const (
	FormatDefault FormatKind = iota
	FormatStructured
	FormatHex
)

// Spec returns the template token for the kind ("", "?" or "0x").
func (k FormatKind) Spec() string {
	switch k {
	case FormatStructured:
		return "?"
	case FormatHex:
		return "0x"
	default:
		return ""
	}
}

// Requires returns the capability a field needs to be rendered with k.
func (k FormatKind) Requires() Capability {
	switch k {
	case FormatStructured:
		return CapStructured
	case FormatHex:
		return CapIntegral
	default:
		return CapDefault
	}
}

func (k FormatKind) String() string {
	switch k {
	case FormatDefault:
		return "default"
	case FormatStructured:
		return "structured"
	case FormatHex:
		return "hex"
	default:
		return "FormatKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// RefKind tells how a placeholder addresses its field.
type RefKind int

const (
	RefIndex RefKind = iota
	RefName
)

// Ref is a placeholder reference: a positional index or a field name.
type Ref struct {
	Kind  RefKind
	Index int
	Name  string
}

// Index returns a positional reference.
func Index(i int) Ref { return Ref{Kind: RefIndex, Index: i} }

// Name returns a named reference.
func Name(s string) Ref { return Ref{Kind: RefName, Name: s} }

func (r Ref) String() string {
	if r.Kind == RefName {
		return r.Name
	}
	return strconv.Itoa(r.Index)
}

// SegmentKind distinguishes literal text from placeholders.
type SegmentKind int

const (
	SegmentLiteral SegmentKind = iota
	SegmentPlaceholder
)

// Segment is one piece of a parsed template.
type Segment struct {
	Kind SegmentKind
	// Text holds the unescaped literal text.
	Text   string
	Ref    Ref
	Format FormatKind
	// Pos is the byte offset of the segment in the template source.
	Pos int
	// Raw is the placeholder span as written, braces included.
	Raw string
}

// Literal returns a literal segment.
func Literal(text string) Segment {
	return Segment{Kind: SegmentLiteral, Text: text}
}

// Placeholder returns a placeholder segment.
func Placeholder(ref Ref, format FormatKind) Segment {
	return Segment{Kind: SegmentPlaceholder, Ref: ref, Format: format}
}

func (s Segment) String() string {
	if s.Kind == SegmentLiteral {
		return s.Text
	}
	if s.Raw != "" {
		return s.Raw
	}
	if spec := s.Format.Spec(); spec != "" {
		return "{" + s.Ref.String() + ":" + spec + "}"
	}
	return "{" + s.Ref.String() + "}"
}
