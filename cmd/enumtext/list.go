package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	listJSON bool
)

type variantInfo struct {
	Name     string `json:"name"`
	Shape    string `json:"shape"`
	Fields   string `json:"fields,omitempty"`
	Template string `json:"template"`
}

type enumInfo struct {
	Name     string        `json:"name"`
	Source   string        `json:"source"`
	Variants []variantInfo `json:"variants"`
}

var listCmd = &cobra.Command{
	Use:   "list [dir]",
	Short: "List enums, variants and their templates",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCatalog(dirArg(args))
		if err != nil {
			return err
		}

		var enums []enumInfo
		for _, name := range c.Names() {
			desc, _ := c.Lookup(name)
			src, _ := c.Source(name)
			info := enumInfo{Name: name, Source: src}
			for _, tag := range desc.Tags() {
				r, _ := desc.Renderer(tag)
				info.Variants = append(info.Variants, variantInfo{
					Name:     tag,
					Shape:    r.Shape().Kind.String(),
					Fields:   r.Shape().String(),
					Template: r.Template(),
				})
			}
			enums = append(enums, info)
		}

		out := cmd.OutOrStdout()
		if listJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(enums)
		}

		for _, e := range enums {
			fmt.Fprintf(out, "%s (%s)\n", e.Name, e.Source)
			for _, v := range e.Variants {
				sig := v.Name
				if v.Fields != "" {
					if v.Shape == "named" {
						sig += " "
					}
					sig += v.Fields
				}
				fmt.Fprintf(out, "  %-32s %q\n", sig, v.Template)
			}
		}
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(listCmd)
}
