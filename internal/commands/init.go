package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/banco-dev/banco/internal/config"
	"github.com/banco-dev/banco/internal/gitops"
	"github.com/banco-dev/banco/internal/ledger"
	"github.com/banco-dev/banco/internal/storage"
)

func newInitCommand(opts *rootOptions) *cobra.Command {
	var useGit bool
	var currency string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new data directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := opts.dir
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd.OutOrStdout(), absDir, currency, useGit)
		},
	}

	cmd.Flags().BoolVar(&useGit, "git", false, "create a git repository and commit after every save")
	cmd.Flags().StringVar(&currency, "currency", "", "currency symbol shown in statements (default R$)")

	return cmd
}

func runInit(out io.Writer, dir, currency string, useGit bool) error {
	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("%s already exists", cfgPath)
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", cfgPath, err)
	}
	if useGit && !gitops.Available() {
		return errors.New("--git requested but git is not installed")
	}

	cfg := config.Default()
	if currency != "" {
		cfg.Display.CurrencySymbol = currency
	}
	cfg.Git.AutoCommit = useGit

	for _, d := range []string{cfg.Data.StatementsDir, "logs"} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	if err := storage.Save(filepath.Join(dir, cfg.Data.LedgerFile), ledger.Snapshot{}); err != nil {
		return fmt.Errorf("writing empty ledger: %w", err)
	}

	// Exported statements are regenerated on demand.
	gitignore := cfg.Data.StatementsDir + "/\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	if !useGit {
		fmt.Fprintf(out, "Initialized banco data directory at %s\n", dir)
		return nil
	}

	if err := gitops.Init(dir); err != nil {
		return err
	}
	author := gitops.Author{Name: cfg.Git.AuthorName, Email: cfg.Git.AuthorEmail}
	hash, err := gitops.Snapshot(dir, "init: empty ledger", author, config.FileName, cfg.Data.LedgerFile, ".gitignore")
	if err != nil {
		return fmt.Errorf("initial commit: %w", err)
	}

	fmt.Fprintf(out, "Initialized banco data directory at %s (%s)\n", dir, hash)
	return nil
}
