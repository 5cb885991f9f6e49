package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/banco-dev/banco/internal/menu"
)

func newAccountCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage accounts",
	}
	cmd.AddCommand(newAccountCreateCommand(opts), newAccountListCommand(opts))
	return cmd
}

func newAccountCreateCommand(opts *rootOptions) *cobra.Command {
	var owner string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Open an account for an existing customer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts)
			if err != nil {
				return err
			}
			acct, err := s.store.CreateAccount(owner)
			if err != nil {
				s.record("create-account", 0, decimal.Zero, err)
				return s.finish(err)
			}
			s.record("create-account", acct.Number, decimal.Zero, nil)
			if err := s.finish(nil); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✔ Account %d created for %s.\n", acct.Number, acct.OwnerTaxID)
			return nil
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "tax id of the account owner (required)")
	_ = cmd.MarkFlagRequired("owner")

	return cmd
}

func newAccountListCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts)
			if err != nil {
				return err
			}
			accts := s.store.Accounts()
			if len(accts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No accounts registered.")
				return nil
			}
			f := s.cfg.StatementFormat()
			for _, a := range accts {
				fmt.Fprintln(cmd.OutOrStdout(), menu.AccountLine(a, f))
			}
			return nil
		},
	}
}
