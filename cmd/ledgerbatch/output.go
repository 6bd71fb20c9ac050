package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/iho/ledgerbatch/internal/domain"
	"github.com/iho/ledgerbatch/internal/usecase"
)

var (
	successSymbol = "✓"
	errorSymbol   = "✗"
	infoSymbol    = "→"

	successStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#00D787", Dark: "#00D787"})
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"})
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#5FAFFF", Dark: "#5FAFFF"})
	headerStyle  = lipgloss.NewStyle().Bold(true)
)

func printSuccess(w io.Writer, message string) {
	_, _ = fmt.Fprintf(w, "%s %s\n",
		successStyle.Render(successSymbol),
		message,
	)
}

func printError(w io.Writer, message string) {
	_, _ = fmt.Fprintf(w, "%s %s\n",
		errorStyle.Render(errorSymbol),
		errorStyle.Render(message),
	)
}

func printInfof(w io.Writer, format string, args ...any) {
	formatted := fmt.Sprintf(format, args...)
	_, _ = fmt.Fprintf(w, "%s %s\n",
		infoStyle.Render(infoSymbol),
		formatted,
	)
}

func printHeader(w io.Writer, title string) {
	_, _ = fmt.Fprintf(w, "\n%s\n", headerStyle.Render("--- "+title+" ---"))
}

func printLines(w io.Writer, lines []string) {
	for _, line := range lines {
		_, _ = fmt.Fprintln(w, line)
	}
}

func printAccounts(w io.Writer, accounts []domain.Account) {
	printHeader(w, "Account balances")
	if len(accounts) == 0 {
		printInfof(w, "no accounts")
		return
	}
	for _, acc := range accounts {
		_, _ = fmt.Fprintf(w, "%s | %s\n", acc.ID, acc.Balance.String())
	}
}

func printBatchSummary(w io.Writer, s *usecase.BatchSummary) {
	if len(s.Files) == 0 {
		printInfof(w, "no .txt files to process")
		return
	}

	for _, name := range s.FailedFiles {
		printError(w, "failed to process "+name)
	}
	if s.Archived < len(s.Files) {
		printError(w, fmt.Sprintf("archived %d of %d files", s.Archived, len(s.Files)))
	}

	printSuccess(w, fmt.Sprintf("processed %d operations from %d files (%d succeeded, %d failed)",
		len(s.Results),
		len(s.Files),
		s.Count(domain.StatusSuccess),
		s.Count(domain.StatusError),
	))
}

func printRuns(w io.Writer, runs []domain.BatchRun) {
	if len(runs) == 0 {
		printInfof(w, "no batch runs recorded")
		return
	}

	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			r.ID,
			r.StartedAt.Local().Format(domain.TimestampLayout),
			r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond).String(),
			strconv.Itoa(r.Files),
			strconv.Itoa(r.Archived),
			strconv.Itoa(r.Operations),
			strconv.Itoa(r.Succeeded),
			strconv.Itoa(r.Errored),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("RUN", "STARTED", "DURATION", "FILES", "ARCHIVED", "OPERATIONS", "SUCCEEDED", "ERRORS").
		Rows(rows...)

	_, _ = fmt.Fprintln(w, t.String())
}
