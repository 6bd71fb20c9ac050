package main

import (
	"github.com/spf13/cobra"
)

// rootOptions are the flags shared by every command. Non-empty values
// override the environment.
type rootOptions struct {
	envFile      string
	inputDir     string
	archiveDir   string
	accountsFile string
	reportFile   string
	logLevel     string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "ledgerbatch",
		Short: "Batch ledger processor",
		Long: `ledgerbatch settles money-transfer instructions found in text files.

Every *.txt file in the input directory is parsed into transfer records,
each record is validated and applied to the account ledger, the outcome is
appended to the report and the file is moved to the archive.

Without a subcommand an interactive menu is shown.

Example:
  ledgerbatch process
  ledgerbatch report --from 2025-03-01 --to 2025-03-31
  ledgerbatch watch`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu(cmd, opts)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.envFile, "env-file", "", "env file to load (default .env)")
	flags.StringVar(&opts.inputDir, "input", "", "directory scanned for instruction files")
	flags.StringVar(&opts.archiveDir, "archive", "", "directory processed files are moved to")
	flags.StringVar(&opts.accountsFile, "accounts", "", "accounts file")
	flags.StringVar(&opts.reportFile, "report", "", "report file")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		newProcessCmd(opts),
		newReportCmd(opts),
		newAccountsCmd(opts),
		newHistoryCmd(opts),
		newWatchCmd(opts),
		newMenuCmd(opts),
	)

	return rootCmd
}
