package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/banco-dev/banco/internal/buildinfo"
)

// rootOptions are the persistent flags shared by every subcommand.
type rootOptions struct {
	dir      string
	logLevel string
	plain    bool
}

// NewRootCommand creates the root CLI command with all subcommands registered.
// Run without a subcommand it starts the interactive shell.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "banco",
		Short:   "Personal banking ledger",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd, opts)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.dir, "dir", ".", "data directory")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error); overrides banco.yaml")
	rootCmd.PersistentFlags().BoolVar(&opts.plain, "plain", false, "read menu answers line by line instead of interactive forms")

	rootCmd.AddCommand(
		newInitCommand(opts),
		newShellCommand(opts),
		newUserCommand(opts),
		newAccountCommand(opts),
		newDepositCommand(opts),
		newWithdrawCommand(opts),
		newTransferCommand(opts),
		newStatementCommand(opts),
		newValidateCommand(opts),
	)

	return rootCmd
}
