package main

import (
	"context"

	"github.com/spf13/cobra"
)

func newAccountsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "accounts",
		Short: "Print current account balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(_ context.Context, a *app) error {
				printAccounts(a.out, a.ledger.List())
				return nil
			})
		},
	}
}
