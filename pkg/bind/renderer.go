package bind

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/enumtext/pkg/core"
	"github.com/aretw0/enumtext/pkg/format"
	"github.com/aretw0/enumtext/pkg/template"
)

type op struct {
	literal string
	field   int // -1 for literal ops
	kind    core.FormatKind
}

// Renderer is a compiled template bound to one variant shape.
// It is immutable and safe for concurrent use.
type Renderer struct {
	template string
	shape    core.Shape
	ops      []op
	// size is the total literal length, used to pre-size the output.
	size int
}

// Compile parses tmpl, binds it to shape and checks that every referenced
// field supports the requested format kind.
func Compile(shape core.Shape, tmpl string) (*Renderer, error) {
	shape.Fields = slices.Clone(shape.Fields)
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	segs, err := template.Parse(tmpl)
	if err != nil {
		return nil, err
	}
	bindings, err := Resolve(segs, shape)
	if err != nil {
		return nil, err
	}
	for _, b := range bindings {
		f := shape.Fields[b.Field]
		if !(f.Caps | core.CapDefault).Has(b.Format.Requires()) {
			return nil, &core.CompileError{
				Placeholder: b.Segment.String(),
				Pos:         b.Segment.Pos,
				Kind:        core.ErrCapability,
				Reason: fmt.Sprintf("field %s of type %s does not support %s formatting",
					f.Label(b.Field), f.Type, b.Format),
			}
		}
	}

	r := &Renderer{template: tmpl, shape: shape, ops: make([]op, 0, len(segs))}
	next := 0
	for _, seg := range segs {
		if seg.Kind == core.SegmentLiteral {
			r.ops = append(r.ops, op{literal: seg.Text, field: -1})
			r.size += len(seg.Text)
			continue
		}
		b := bindings[next]
		next++
		r.ops = append(r.ops, op{field: b.Field, kind: b.Format})
	}
	return r, nil
}

// MustCompile is like Compile but panics on error. It is meant for
// package-level variables.
func MustCompile(shape core.Shape, tmpl string) *Renderer {
	r, err := Compile(shape, tmpl)
	if err != nil {
		panic("bind: Compile(" + quote(tmpl) + "): " + err.Error())
	}
	return r
}

// Render executes the renderer over the field values of one instance,
// given in shape order.
func (r *Renderer) Render(values ...any) string {
	var b strings.Builder
	b.Grow(r.size + 8*len(values))
	r.RenderTo(&b, values)
	return b.String()
}

// RenderTo appends the rendering to b. A placeholder whose field is missing
// from values is written as %!(MISSING field).
func (r *Renderer) RenderTo(b *strings.Builder, values []any) {
	for _, o := range r.ops {
		if o.field < 0 {
			b.WriteString(o.literal)
			continue
		}
		if o.field >= len(values) {
			b.WriteString("%!(MISSING " + r.shape.Fields[o.field].Label(o.field) + ")")
			continue
		}
		format.Write(b, values[o.field], o.kind)
	}
}

// Template returns the source template.
func (r *Renderer) Template() string { return r.template }

// Shape returns a copy of the variant shape the renderer is bound to.
func (r *Renderer) Shape() core.Shape {
	s := r.shape
	s.Fields = slices.Clone(s.Fields)
	return s
}

// Placeholders returns the number of placeholder ops.
func (r *Renderer) Placeholders() int {
	n := 0
	for _, o := range r.ops {
		if o.field >= 0 {
			n++
		}
	}
	return n
}

func (r *Renderer) String() string { return r.template }

func quote(s string) string { return fmt.Sprintf("%q", s) }
