// Command semact replays reduction traces through the semantic actions and prints
// the resulting tree and diagnostics.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// debugEnv enables action tracing like --debug.
const debugEnv = "SEMACT_DEBUG"

type globalFlags struct {
	debug   bool
	noColor bool
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:           "semact",
		Short:         "Replay parser reduction traces through the semantic actions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "Log every semantic action to stderr")
	rootCmd.PersistentFlags().BoolVar(&flags.noColor, "no-color", false, "Disable colored diagnostics")

	rootCmd.AddCommand(
		newReplayCmd(flags),
		newDigestCmd(flags),
		newOpsCmd(),
	)
	return rootCmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger returns the debug logger: a text handler without time or level, so
// each line reads as one action record.
func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey || a.Key == slog.LevelKey {
				return slog.Attr{}
			}
			return a
		},
	}))
}

func (f *globalFlags) debugEnabled() bool {
	return f.debug || os.Getenv(debugEnv) != ""
}
