package fs

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/enumtext/pkg/core"
)

// decodeValues turns instance data into field values in shape order.
// Positional shapes take a sequence, named shapes a mapping, and unit shapes
// nothing (null, or an empty sequence or mapping).
func decodeValues(shape core.Shape, types []*fieldType, n *yaml.Node) ([]any, error) {
	n = unwrapDocument(n)

	switch shape.Kind {
	case core.ShapeUnit:
		if n == nil || isNull(n) || ((n.Kind == yaml.SequenceNode || n.Kind == yaml.MappingNode) && len(n.Content) == 0) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: unit variant takes no data", ErrInvalidData)

	case core.ShapePositional:
		if n == nil || n.Kind != yaml.SequenceNode {
			return nil, fmt.Errorf("%w: expected a sequence of %d values", ErrInvalidData, shape.Arity())
		}
		if len(n.Content) != shape.Arity() {
			return nil, fmt.Errorf("%w: expected %d values, got %d", ErrInvalidData, shape.Arity(), len(n.Content))
		}
		values := make([]any, len(n.Content))
		for i, item := range n.Content {
			v, err := types[i].decode(item)
			if err != nil {
				return nil, fmt.Errorf("field %d: %w", i, err)
			}
			values[i] = v
		}
		return values, nil

	case core.ShapeNamed:
		if n == nil || n.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("%w: expected a mapping with fields %s", ErrInvalidData, fieldNames(shape))
		}
		values := make([]any, shape.Arity())
		seen := make([]bool, shape.Arity())
		var unknown []string
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			idx, ok := shape.Lookup(key)
			if !ok {
				unknown = append(unknown, key)
				continue
			}
			if seen[idx] {
				return nil, fmt.Errorf("%w: field %s given twice", ErrInvalidData, key)
			}
			v, err := types[idx].decode(n.Content[i+1])
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", key, err)
			}
			values[idx] = v
			seen[idx] = true
		}
		if len(unknown) > 0 {
			sort.Strings(unknown)
			return nil, fmt.Errorf("%w: unknown fields %s", ErrInvalidData, strings.Join(unknown, ", "))
		}
		for i, ok := range seen {
			if !ok {
				return nil, fmt.Errorf("%w: missing field %s", ErrInvalidData, shape.Fields[i].Name)
			}
		}
		return values, nil
	}
	return nil, fmt.Errorf("%w: unsupported shape %v", ErrInvalidData, shape.Kind)
}

func unwrapDocument(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return nil
		}
		n = n.Content[0]
	}
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	if n != nil && n.Kind == 0 {
		return nil
	}
	return n
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}

func fieldNames(shape core.Shape) string {
	names := make([]string, len(shape.Fields))
	for i, f := range shape.Fields {
		names[i] = f.Name
	}
	return strings.Join(names, ", ")
}
