package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/enumtext/pkg/adapters/lifecycle"
	"github.com/aretw0/enumtext/pkg/core"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Reload the catalog whenever its files change",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		c, err := openCatalog(dirArg(args))
		if c == nil {
			return err
		}
		if err != nil {
			slog.Warn("catalog has errors", "error", err)
		}

		events, err := c.Watch(ctx)
		if err != nil {
			return err
		}
		src := lifecycle.NewSource(events)
		if err := src.Start(ctx); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "watching %s (%d enums)\n", c.Path, len(c.Names()))
		for e := range src.Events() {
			fmt.Fprintln(out, e.String())
			if ce, ok := e.(core.Event); ok && ce.Err != nil {
				slog.Error("reload failed", "path", ce.Path, "error", ce.Err)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
