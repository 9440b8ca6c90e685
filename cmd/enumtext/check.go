package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var errCatalogInvalid = errors.New("catalog has errors")

var checkCmd = &cobra.Command{
	Use:   "check [dir]",
	Short: "Compile every template of a catalog and report errors",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCatalog(dirArg(args))
		if c == nil {
			return err
		}
		if err != nil {
			for _, line := range strings.Split(err.Error(), "\n") {
				fmt.Fprintf(cmd.ErrOrStderr(), "  %s\n", line)
			}
			return errCatalogInvalid
		}

		out := cmd.OutOrStdout()
		for _, name := range c.Names() {
			desc, _ := c.Lookup(name)
			src, _ := c.Source(name)
			fmt.Fprintf(out, "%-24s %3d variants  %s\n", name, len(desc.Tags()), src)
		}
		fmt.Fprintf(out, "ok: %d enums in %d files\n", len(c.Names()), len(c.Files()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
