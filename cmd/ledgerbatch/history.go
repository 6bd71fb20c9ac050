package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/iho/ledgerbatch/internal/domain"
)

func newHistoryCmd(opts *rootOptions) *cobra.Command {
	var (
		limit  int
		format string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Print recent batch runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "table" && format != "yaml" {
				return fmt.Errorf("unknown format %q, use table or yaml", format)
			}

			return withApp(cmd, opts, func(ctx context.Context, a *app) error {
				if a.history == nil {
					return errors.New("batch history is disabled")
				}

				runs, err := a.history.ListRuns(ctx, limit)
				if err != nil {
					return err
				}

				if format == "yaml" {
					return printRunsYAML(a.out, runs)
				}
				printRuns(a.out, runs)
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "number of runs to show")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format (table, yaml)")

	return cmd
}

type runDocument struct {
	ID         string    `yaml:"id"`
	StartedAt  time.Time `yaml:"started_at"`
	FinishedAt time.Time `yaml:"finished_at"`
	Files      int       `yaml:"files"`
	Archived   int       `yaml:"archived"`
	Failed     int       `yaml:"failed"`
	Operations int       `yaml:"operations"`
	Succeeded  int       `yaml:"succeeded"`
	Errored    int       `yaml:"errored"`
}

func printRunsYAML(w io.Writer, runs []domain.BatchRun) error {
	docs := make([]runDocument, 0, len(runs))
	for _, r := range runs {
		docs = append(docs, runDocument(r))
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(docs); err != nil {
		return fmt.Errorf("failed to encode runs: %w", err)
	}
	return enc.Close()
}
