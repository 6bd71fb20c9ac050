package main

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/iho/ledgerbatch/internal/domain"
)

const (
	choiceProcess = "process"
	choiceReport  = "report"
	choiceBetween = "between"
	choiceExit    = "exit"
)

var errNoTerminal = errors.New("the interactive menu needs a terminal, run ledgerbatch --help for the commands")

func newMenuCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Interactive menu (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu(cmd, opts)
		},
	}
}

func runMenu(cmd *cobra.Command, opts *rootOptions) error {
	if !isTerminal() {
		return errNoTerminal
	}

	return withApp(cmd, opts, func(ctx context.Context, a *app) error {
		for {
			choice, err := promptChoice()
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			if err != nil {
				return err
			}

			if err := a.dispatch(ctx, choice); err != nil {
				if errors.Is(err, huh.ErrUserAborted) {
					continue
				}
				printError(a.out, err.Error())
			}
			if choice == choiceExit || ctx.Err() != nil {
				return nil
			}
		}
	})
}

func (a *app) dispatch(ctx context.Context, choice string) error {
	switch choice {
	case choiceProcess:
		return a.runBatch(ctx)
	case choiceReport:
		return a.showAll(ctx)
	case choiceBetween:
		from, to, err := promptDates()
		if err != nil {
			return err
		}
		return a.showBetween(ctx, from, to)
	default:
		return nil
	}
}

func promptChoice() (string, error) {
	var choice string

	err := huh.NewSelect[string]().
		Title("What do you want to do?").
		Options(
			huh.NewOption("1. Process input files", choiceProcess),
			huh.NewOption("2. Show all report entries", choiceReport),
			huh.NewOption("3. Show report entries between two dates", choiceBetween),
			huh.NewOption("Exit", choiceExit),
		).
		Value(&choice).
		Run()

	return choice, err
}

// promptDates asks for both dates. Each field re-prompts until it holds a
// valid yyyy-MM-dd date.
func promptDates() (string, string, error) {
	var from, to string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Start date").
				Placeholder("yyyy-MM-dd").
				Validate(validateDate).
				Value(&from),
			huh.NewInput().
				Title("End date").
				Placeholder("yyyy-MM-dd").
				Validate(validateDate).
				Value(&to),
		),
	)

	if err := form.Run(); err != nil {
		return "", "", err
	}

	return strings.TrimSpace(from), strings.TrimSpace(to), nil
}

func validateDate(s string) error {
	_, err := domain.ParseReportDate(strings.TrimSpace(s))
	return err
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
