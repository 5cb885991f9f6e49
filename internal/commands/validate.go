package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/banco-dev/banco/internal/config"
	"github.com/banco-dev/banco/internal/ledger"
	"github.com/banco-dev/banco/internal/storage"
)

func newValidateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the ledger file for invariant violations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := filepath.Abs(opts.dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			cfg, err := config.LoadOrDefault(filepath.Join(dir, config.FileName))
			if err != nil {
				return err
			}
			path := cfg.Data.LedgerFile
			if !filepath.IsAbs(path) {
				path = filepath.Join(dir, path)
			}

			// Load without restoring: a store refuses an invalid snapshot.
			snap, err := storage.Load(path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			errs := ledger.Validate(snap)
			if len(errs) == 0 {
				fmt.Fprintf(out, "✔ Ledger OK: %d users, %d accounts.\n", len(snap.Users), len(snap.Accounts))
				return nil
			}
			for _, e := range errs {
				fmt.Fprintf(out, "⚠ %s\n", e.Error())
			}
			return fmt.Errorf("%d invariant violation(s) in %s", len(errs), path)
		},
	}
}
