package commands

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/banco-dev/banco/internal/menu"
)

func newDepositCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "deposit <account> <amount>",
		Short: "Deposit into an account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, amount, err := parseAccountAmount(args[0], args[1])
			if err != nil {
				return err
			}
			s, err := openSession(opts)
			if err != nil {
				return err
			}
			acct, err := s.store.Deposit(number, amount)
			s.record("deposit", number, amount, err)
			if err != nil {
				return s.finish(fmt.Errorf("deposit into account %d: %w", number, err))
			}
			s.log.Debug("deposit", "account", number, "amount", amount.StringFixed(2))
			if err := s.finish(nil); err != nil {
				return err
			}
			f := s.cfg.StatementFormat()
			fmt.Fprintf(cmd.OutOrStdout(), "✔ Deposit of %s completed. Balance: %s\n", f.Money(amount), f.Money(acct.Balance))
			return nil
		},
	}
}

func newWithdrawCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "withdraw <account> <amount>",
		Short: "Withdraw from an account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, amount, err := parseAccountAmount(args[0], args[1])
			if err != nil {
				return err
			}
			s, err := openSession(opts)
			if err != nil {
				return err
			}
			acct, err := s.store.Withdraw(number, amount)
			s.record("withdraw", number, amount, err)
			if err != nil {
				return s.finish(fmt.Errorf("withdraw from account %d: %w", number, err))
			}
			s.log.Debug("withdrawal", "account", number, "amount", amount.StringFixed(2), "count", acct.DailyWithdrawals)
			if err := s.finish(nil); err != nil {
				return err
			}
			f := s.cfg.StatementFormat()
			fmt.Fprintf(cmd.OutOrStdout(), "✔ Withdrawal of %s completed. Balance: %s\n", f.Money(amount), f.Money(acct.Balance))
			return nil
		},
	}
}

func newTransferCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "transfer <from> <to> <amount>",
		Short: "Transfer between two accounts",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, amount, err := parseAccountAmount(args[0], args[2])
			if err != nil {
				return err
			}
			to, err := parseAccount(args[1])
			if err != nil {
				return err
			}
			s, err := openSession(opts)
			if err != nil {
				return err
			}
			err = s.store.Transfer(from, to, amount)
			s.record("transfer", from, amount, err)
			if err != nil {
				return s.finish(fmt.Errorf("transfer from account %d to %d: %w", from, to, err))
			}
			s.log.Debug("transfer", "from", from, "to", to, "amount", amount.StringFixed(2))
			if err := s.finish(nil); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✔ Transfer of %s completed.\n", s.cfg.StatementFormat().Money(amount))
			return nil
		},
	}
}

func parseAccount(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid account number %q", arg)
	}
	return n, nil
}

func parseAccountAmount(accountArg, amountArg string) (int, decimal.Decimal, error) {
	number, err := parseAccount(accountArg)
	if err != nil {
		return 0, decimal.Zero, err
	}
	amount, err := menu.ParseAmount(amountArg)
	if err != nil {
		return 0, decimal.Zero, fmt.Errorf("invalid amount %q", amountArg)
	}
	return number, amount, nil
}
