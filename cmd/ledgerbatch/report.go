package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/iho/ledgerbatch/internal/domain"
)

func newReportCmd(opts *rootOptions) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print report entries, optionally between two dates",
		Long: `Print report entries.

Without flags every entry is printed. With --from and --to only entries
timestamped from the start of the first day to the end of the last day are
printed. Dates use the yyyy-MM-dd form.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if (from == "") != (to == "") {
				return errors.New("--from and --to must be given together")
			}

			return withApp(cmd, opts, func(ctx context.Context, a *app) error {
				if from == "" {
					return a.showAll(ctx)
				}
				return a.showBetween(ctx, from, to)
			})
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "first day to include (yyyy-MM-dd)")
	cmd.Flags().StringVar(&to, "to", "", "last day to include (yyyy-MM-dd)")

	return cmd
}

func (a *app) showAll(ctx context.Context) error {
	lines, err := a.reportUC.ListAll(ctx)
	if err != nil {
		return a.reportError(err)
	}

	printHeader(a.out, "All report entries")
	if len(lines) == 0 {
		printInfof(a.out, "the report is empty")
		return nil
	}
	printLines(a.out, lines)
	return nil
}

func (a *app) showBetween(ctx context.Context, from, to string) error {
	lines, err := a.reportUC.ListByDate(ctx, from, to)
	if err != nil {
		return a.reportError(err)
	}

	printHeader(a.out, fmt.Sprintf("Report entries from %s to %s", from, to))
	printMatches(a.out, lines)
	return nil
}

// reportError prints query errors the user can act on and returns the rest.
func (a *app) reportError(err error) error {
	switch {
	case errors.Is(err, domain.ErrReportNotFound):
		printInfof(a.out, "%s", err)
		return nil
	case errors.Is(err, domain.ErrInvalidDate):
		printError(a.out, err.Error())
		return nil
	default:
		return err
	}
}

func printMatches(w io.Writer, lines []string) {
	if len(lines) == 0 {
		printInfof(w, "no operations found for the period")
		return
	}
	printLines(w, lines)
	printInfof(w, "found %d operations", len(lines))
}
