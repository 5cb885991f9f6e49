package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/banco-dev/banco/internal/ledger"
	"github.com/banco-dev/banco/internal/statement"
)

func newStatementCommand(opts *rootOptions) *cobra.Command {
	var export bool

	cmd := &cobra.Command{
		Use:   "statement <account>",
		Short: "Show or export an account statement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := parseAccount(args[0])
			if err != nil {
				return err
			}
			s, err := openSession(opts)
			if err != nil {
				return err
			}
			acct, ok := s.store.FindAccount(number)
			if !ok {
				return fmt.Errorf("account %d: %w", number, ledger.ErrAccountNotFound)
			}
			f := s.cfg.StatementFormat()

			if !export {
				for _, line := range statement.Render(acct, f) {
					fmt.Fprintln(cmd.OutOrStdout(), line)
				}
				return nil
			}

			path, err := statement.WriteFile(s.statementsDir(), acct, f)
			s.record("export-statement", number, decimal.Zero, err)
			if err != nil {
				s.flushAudit()
				return fmt.Errorf("exporting statement: %w", err)
			}
			s.log.Info("statement exported", "account", number, "path", path)
			s.flushAudit()
			fmt.Fprintf(cmd.OutOrStdout(), "✔ Statement exported to '%s'\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&export, "export", false, "write the statement to the statements directory instead of printing it")

	return cmd
}
