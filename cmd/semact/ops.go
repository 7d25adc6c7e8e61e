package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/opal-lang/semact/core/ast"
	"github.com/opal-lang/semact/runtime/trace"
)

func newOpsCmd() *cobra.Command {
	var kinds bool

	cmd := &cobra.Command{
		Use:   "ops",
		Short: "List the operations a trace can use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if kinds {
				for _, name := range ast.KindNames() {
					fmt.Fprintln(out, name)
				}
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, op := range trace.Ops() {
				usage, _ := trace.Usage(op)
				fmt.Fprintf(tw, "%s\t%s\n", op, usage)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&kinds, "kinds", false, "List node kind names for the node operation instead")
	return cmd
}
