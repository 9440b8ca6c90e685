package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/enumtext"
)

var (
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "enumtext",
	Short: "Display templates for tagged-union variants",
	Long: `enumtext compiles display templates declared for the variants of an enum
and renders instances with them. Catalogs are YAML or JSON files.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}

// openCatalog loads the catalog at dir. Without a dir the root is searched
// upwards from the working directory.
func openCatalog(dir string) (*enumtext.Catalog, error) {
	findRoot := dir == ""
	if findRoot {
		dir = "."
	}
	return enumtext.Open(dir,
		enumtext.WithFindRoot(findRoot),
		enumtext.WithLogger(slog.Default()),
	)
}

func dirArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}
