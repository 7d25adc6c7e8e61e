package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/opal-lang/semact/core/ast"
	"github.com/opal-lang/semact/core/diag"
	"github.com/opal-lang/semact/runtime/parser"
	"github.com/opal-lang/semact/runtime/trace"
)

type replayFlags struct {
	format  string
	verbose bool
	quiet   bool
	inline  bool
	watch   bool
	stats   bool
}

// errParseFailed marks a replay whose parse reported errors. The diagnostics
// have already been printed.
var errParseFailed = errors.New("parse failed")

func newReplayCmd(global *globalFlags) *cobra.Command {
	flags := &replayFlags{}

	cmd := &cobra.Command{
		Use:   "replay [trace]",
		Short: "Replay a trace and print the resulting tree",
		Long: `Replay a reduction trace through the semantic actions.

The tree is written to stdout, diagnostics to stderr. With no argument, or
with "-", the trace is read from stdin.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) == 1 {
				path = args[0]
			} else if !hasPipedInput() {
				return errors.New("no trace given and nothing piped to stdin")
			}

			runner := newRunner(cmd, global, flags)
			if flags.watch {
				if path == "-" {
					return errors.New("--watch needs a trace file")
				}
				return watchReplay(cmd.Context(), cmd, runner, path, flags)
			}
			return replayOnce(cmd, runner, path, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "sexp", "Output format: sexp or cbor")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "Report verbose-only warnings")
	cmd.Flags().BoolVarP(&flags.quiet, "quiet", "q", false, "Suppress warnings")
	cmd.Flags().BoolVarP(&flags.inline, "inline", "e", false, "Treat the trace as an inline (-e) script")
	cmd.Flags().BoolVarP(&flags.watch, "watch", "w", false, "Replay again whenever the trace file changes")
	cmd.Flags().BoolVar(&flags.stats, "stats", false, "Print action telemetry to stderr")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
	return cmd
}

// newRunner applies the flags that were set explicitly on top of each trace's
// own settings.
func newRunner(cmd *cobra.Command, global *globalFlags, flags *replayFlags) *trace.Runner {
	stderr := cmd.ErrOrStderr()
	runner := &trace.Runner{
		Sink:   &diag.WriterSink{W: stderr, Color: shouldUseColor(stderr, global.noColor)},
		Logger: newLogger(stderr, global.debugEnabled()),
		Debug:  global.debugEnabled(),
	}

	switch {
	case flags.verbose:
		v := parser.VerbosityVerbose
		runner.Verbosity = &v
	case flags.quiet:
		v := parser.VerbosityQuiet
		runner.Verbosity = &v
	}
	if cmd.Flags().Changed("inline") {
		inline := flags.inline
		runner.Inline = &inline
	}
	return runner
}

func replayOnce(cmd *cobra.Command, runner *trace.Runner, path string, flags *replayFlags) error {
	tr, err := loadTrace(path, cmd.InOrStdin())
	if err != nil {
		return err
	}

	res, err := runner.Run(tr)
	if err != nil {
		return err
	}

	if err := writeTree(cmd.OutOrStdout(), res.Tree, flags.format); err != nil {
		return err
	}
	if flags.stats {
		writeStats(cmd.ErrOrStderr(), &res.Telemetry)
	}
	if res.Failed() {
		return fmt.Errorf("%w: %d errors", errParseFailed, res.Errors)
	}
	return nil
}

func writeTree(w io.Writer, tree *ast.Node, format string) error {
	switch format {
	case "sexp":
		_, err := fmt.Fprintln(w, tree.String())
		return err
	case "cbor":
		data, err := ast.EncodeCanonical(tree)
		if err != nil {
			return fmt.Errorf("encode tree: %w", err)
		}
		_, err = w.Write(data)
		return err
	}
	return fmt.Errorf("unknown format %q (want sexp or cbor)", format)
}

func writeStats(w io.Writer, t *parser.Telemetry) {
	fmt.Fprintf(w, "actions=%d errors=%d warn=%d warning=%d bug=%d flipflops=%d dynamic=%d\n",
		t.Actions, t.Errors, t.Warns, t.Warnings, t.Bugs, t.FlipFlops, t.DynamicBindings)
}

// watchReplay replays path once and again after every write to it, until ctx is
// done. Replay failures are printed and do not stop the watch.
func watchReplay(ctx context.Context, cmd *cobra.Command, runner *trace.Runner, path string, flags *replayFlags) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	defer watcher.Close()

	// Editors often replace the file, so watch its directory.
	target := filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	stderr := cmd.ErrOrStderr()
	replay := func() {
		if err := replayOnce(cmd, runner, path, flags); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
	}
	replay()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				fmt.Fprintf(stderr, "--- %s changed\n", path)
				replay()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(stderr, "watch error: %v\n", err)
		}
	}
}
