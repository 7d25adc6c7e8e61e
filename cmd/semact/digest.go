package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opal-lang/semact/core/ast"
	"github.com/opal-lang/semact/runtime/trace"
)

func newDigestCmd(global *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "digest trace...",
		Short: "Print a content digest of the tree each trace builds",
		Long: `Replay each trace quietly and print the blake2b digest of the canonical
tree, one "digest  path" line per trace. Two traces that build the same tree
have the same digest.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &trace.Runner{
				Logger: newLogger(cmd.ErrOrStderr(), global.debugEnabled()),
				Debug:  global.debugEnabled(),
			}
			out := cmd.OutOrStdout()

			for _, path := range args {
				tr, err := loadTrace(path, cmd.InOrStdin())
				if err != nil {
					return err
				}
				res, err := runner.Run(tr)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				sum, err := ast.Digest(res.Tree)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				fmt.Fprintf(out, "%s  %s\n", sum, path)
			}
			return nil
		},
	}
}
