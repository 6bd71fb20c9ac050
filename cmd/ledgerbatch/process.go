package main

import (
	"context"

	"github.com/spf13/cobra"
)

func newProcessCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "process",
		Short: "Settle every instruction file in the input directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *app) error {
				return a.runBatch(ctx)
			})
		},
	}
}
