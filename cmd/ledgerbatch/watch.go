package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/iho/ledgerbatch/internal/infrastructure/watcher"
	"github.com/iho/ledgerbatch/internal/usecase"
)

func newWatchCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Process instruction files as they arrive",
		Long: `Process the input directory now and again whenever *.txt files are
created or written in it. Runs never overlap. Stop with Ctrl+C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *app) error {
				w := watcher.New(a.cfg.InputDir, usecase.InputFileSuffix, a.cfg.WatchDebounce, a.logger,
					func(ctx context.Context) {
						// errors are printed by runBatch; keep watching
						_ = a.runBatch(ctx)
					})

				return w.Run(ctx, true)
			})
		},
	}
}
