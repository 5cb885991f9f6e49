package commands

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/banco-dev/banco/internal/menu"
)

func newShellCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive banking menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd, opts)
		},
	}
}

// runShell runs the menu until exit or end of input, then saves once.
func runShell(cmd *cobra.Command, opts *rootOptions) error {
	s, err := openSession(opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var prompt menu.Prompter = menu.FormPrompter{}
	if opts.plain || !isatty.IsTerminal(os.Stdin.Fd()) {
		prompt = menu.NewLinePrompter(cmd.InOrStdin(), out)
	}

	m := menu.New(s.store, prompt, out, menu.Options{
		Format:        s.cfg.StatementFormat(),
		StatementsDir: s.statementsDir(),
		Recorder:      s.audit,
		Logger:        s.log,
	})
	runErr := m.Run()

	// Whatever happened in the menu already lives in the store.
	if err := s.save(); err != nil {
		fmt.Fprintln(os.Stderr, "⚠ Failed to save data.")
		return err
	}
	if runErr != nil {
		return runErr
	}
	fmt.Fprintln(out, "✔ Data saved. Goodbye.")
	return nil
}
