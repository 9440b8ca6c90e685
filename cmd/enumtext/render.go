package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	renderFields []string
	renderData   string
	renderDir    string
)

var renderCmd = &cobra.Command{
	Use:   "render <enum> <variant> [value...]",
	Short: "Render one instance of a variant",
	Long: `Render one instance of a variant.

Positional values fill the fields of a tuple variant in order. Named fields
are given with --field name=value. Values starting with '[' or '{' are read
as YAML flow collections, which is how record fields are filled.
--data reads the whole instance from a YAML or JSON file ('-' for stdin).`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		enumName, variant, values := args[0], args[1], args[2:]

		c, err := openCatalog(renderDir)
		if err != nil {
			return err
		}

		var text string
		switch {
		case renderData != "":
			if len(values) > 0 || len(renderFields) > 0 {
				return errors.New("--data cannot be combined with values or --field")
			}
			data, err := readData(cmd.InOrStdin(), renderData)
			if err != nil {
				return err
			}
			text, err = c.Render(enumName, variant, data)
			if err != nil {
				return err
			}
		default:
			n, err := instanceNode(values, renderFields)
			if err != nil {
				return err
			}
			text, err = c.RenderNode(enumName, variant, n)
			if err != nil {
				return err
			}
		}

		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	},
}

func init() {
	renderCmd.Flags().StringArrayVarP(&renderFields, "field", "f", nil, "Named field as name=value (repeatable)")
	renderCmd.Flags().StringVar(&renderData, "data", "", "Read the instance from a YAML or JSON file ('-' for stdin)")
	renderCmd.Flags().StringVarP(&renderDir, "dir", "d", "", "Catalog directory (default: search upwards for the catalog root)")
	rootCmd.AddCommand(renderCmd)
}

func readData(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

// instanceNode builds the YAML node of an instance from command line
// arguments: a sequence for positional values, a mapping for fields, or
// nothing for a unit variant.
func instanceNode(values, fields []string) (*yaml.Node, error) {
	switch {
	case len(values) > 0 && len(fields) > 0:
		return nil, errors.New("cannot mix positional values and --field")
	case len(fields) > 0:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, f := range fields {
			name, value, ok := strings.Cut(f, "=")
			if !ok || name == "" {
				return nil, fmt.Errorf("invalid --field %q: expected name=value", f)
			}
			v, err := valueNode(value)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name}, v)
		}
		return n, nil
	case len(values) > 0:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, value := range values {
			v, err := valueNode(value)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, v)
		}
		return n, nil
	default:
		return nil, nil
	}
}

func valueNode(value string) (*yaml.Node, error) {
	if !strings.HasPrefix(value, "[") && !strings.HasPrefix(value, "{") {
		return &yaml.Node{Kind: yaml.ScalarNode, Value: value}, nil
	}
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(value), &doc); err != nil {
		return nil, fmt.Errorf("invalid value %q: %w", value, err)
	}
	return doc.Content[0], nil
}
