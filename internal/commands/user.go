package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newUserCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage customers",
	}
	cmd.AddCommand(newUserCreateCommand(opts), newUserListCommand(opts))
	return cmd
}

func newUserCreateCommand(opts *rootOptions) *cobra.Command {
	var taxID, name, birthDate, address string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a customer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts)
			if err != nil {
				return err
			}
			u, err := s.store.CreateUser(taxID, name, birthDate, address)
			s.record("create-user", 0, decimal.Zero, err)
			if err != nil {
				return s.finish(err)
			}
			s.log.Debug("user created", "tax_id", u.TaxID)
			if err := s.finish(nil); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✔ User %s created.\n", u.TaxID)
			return nil
		},
	}

	cmd.Flags().StringVar(&taxID, "tax-id", "", "tax id (CPF), unique per user (required)")
	cmd.Flags().StringVar(&name, "name", "", "full name")
	cmd.Flags().StringVar(&birthDate, "birth-date", "", "birth date, free-form")
	cmd.Flags().StringVar(&address, "address", "", "address")
	_ = cmd.MarkFlagRequired("tax-id")

	return cmd
}

func newUserListCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List customers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts)
			if err != nil {
				return err
			}
			users := s.store.Users()
			if len(users) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No users registered.")
				return nil
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "TAX ID\tNAME\tBIRTH DATE\tACCOUNTS")
			for _, u := range users {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", u.TaxID, u.FullName, u.BirthDate, len(s.store.AccountsOf(u.TaxID)))
			}
			return tw.Flush()
		},
	}
}
