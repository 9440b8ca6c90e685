// Package enum compiles the display templates of every variant of a tagged
// union into a Descriptor and renders instances by variant tag.
//
// Compilation happens once, before any instance is rendered. A Descriptor
// is immutable afterwards, so any number of goroutines may render through
// it without synchronization.
package enum

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/introspection"

	"github.com/aretw0/enumtext/pkg/bind"
	"github.com/aretw0/enumtext/pkg/core"
)

// Variant declares one case of a tagged union.
type Variant struct {
	Tag      string
	Shape    core.Shape
	Template string
}

// Descriptor maps variant tags to compiled renderers.
type Descriptor struct {
	name      string
	tags      []string
	renderers map[string]*bind.Renderer
}

// Compile compiles every variant of the enum called name. Each variant needs
// a non-empty template. Every failing
// variant is reported once; the result is an errors.Join of
// *core.CompileError values.
func Compile(name string, variants ...Variant) (*Descriptor, error) {
	d := &Descriptor{
		name:      name,
		tags:      make([]string, 0, len(variants)),
		renderers: make(map[string]*bind.Renderer, len(variants)),
	}

	var errs []error
	seen := make(map[string]bool, len(variants))
	for i, v := range variants {
		if v.Tag == "" {
			errs = append(errs, &core.CompileError{
				Enum: name, Pos: -1, Kind: core.ErrInvalidVariant,
				Reason: fmt.Sprintf("variant %d has no tag", i),
			})
			continue
		}
		if seen[v.Tag] {
			errs = append(errs, &core.CompileError{
				Enum: name, Variant: v.Tag, Pos: -1, Kind: core.ErrDuplicateVariant,
			})
			continue
		}
		seen[v.Tag] = true
		if v.Template == "" {
			errs = append(errs, &core.CompileError{
				Enum: name, Variant: v.Tag, Pos: -1, Kind: core.ErrInvalidVariant,
				Reason: "missing template",
			})
			continue
		}

		r, err := bind.Compile(v.Shape, v.Template)
		if err != nil {
			errs = append(errs, attribute(err, name, v.Tag))
			continue
		}
		d.tags = append(d.tags, v.Tag)
		d.renderers[v.Tag] = r
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return d, nil
}

// MustCompile is like Compile but panics on error. It is meant for
// package-level variables, so that a bad template stops the program at
// start-up.
func MustCompile(name string, variants ...Variant) *Descriptor {
	d, err := Compile(name, variants...)
	if err != nil {
		panic("enum: Compile(" + name + "): " + err.Error())
	}
	return d
}

func attribute(err error, enum, variant string) error {
	var ce *core.CompileError
	if errors.As(err, &ce) {
		return ce.WithVariant(enum, variant)
	}
	return fmt.Errorf("%s::%s: %w", enum, variant, err)
}

// Name returns the enum name.
func (d *Descriptor) Name() string { return d.name }

// Tags returns the variant tags in declaration order.
func (d *Descriptor) Tags() []string {
	return append([]string(nil), d.tags...)
}

// Renderer returns the compiled renderer of a variant.
func (d *Descriptor) Renderer(tag string) (*bind.Renderer, bool) {
	r, ok := d.renderers[tag]
	return r, ok
}

// Render renders an instance. An instance whose tag is not part of the
// enum is written as %!(BADVARIANT tag) in the fmt tradition.
func (d *Descriptor) Render(in core.Instance) string {
	var b strings.Builder
	d.RenderTo(&b, in)
	return b.String()
}

// RenderTo appends the rendering of in to b.
func (d *Descriptor) RenderTo(b *strings.Builder, in core.Instance) {
	r, ok := d.renderers[in.Tag]
	if !ok {
		b.WriteString("%!(BADVARIANT " + d.name + "::" + in.Tag + ")")
		return
	}
	r.RenderTo(b, in.Values)
}

// DescriptorState exposes the descriptor for observability.
type DescriptorState struct {
	Name      string            `json:"name"`
	Variants  []string          `json:"variants"`
	Templates map[string]string `json:"templates"`
}

// State implements introspection.Introspectable.
func (d *Descriptor) State() any {
	templates := make(map[string]string, len(d.renderers))
	for tag, r := range d.renderers {
		templates[tag] = r.Template()
	}
	return DescriptorState{
		Name:      d.name,
		Variants:  d.Tags(),
		Templates: templates,
	}
}

// ComponentType implements introspection.Component.
func (d *Descriptor) ComponentType() string {
	return "enum"
}

var _ introspection.Introspectable = (*Descriptor)(nil)
var _ introspection.Component = (*Descriptor)(nil)
