package gitops

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Author identifies the committer of ledger snapshots.
type Author struct {
	Name  string
	Email string
}

func (a Author) String() string {
	return fmt.Sprintf("%s <%s>", a.Name, a.Email)
}

// Available reports whether a git binary is on PATH.
func Available() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// Init initializes a new git repository at dir.
func Init(dir string) error {
	if _, err := run(dir, "init", "--quiet"); err != nil {
		return fmt.Errorf("git init: %w", err)
	}
	return nil
}

// IsRepo reports whether dir is the root of a git repository.
func IsRepo(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}

// Snapshot stages paths (everything when empty) and commits them with the
// given message. It returns the short hash of the new commit, or "" when
// the staged tree did not change and nothing was committed.
func Snapshot(dir, message string, author Author, paths ...string) (string, error) {
	add := append([]string{"add", "-A", "--"}, paths...)
	if len(paths) == 0 {
		add = append(add, ".")
	}
	if out, err := run(dir, add...); err != nil {
		return "", fmt.Errorf("git add: %s: %w", out, err)
	}

	// diff --cached --quiet exits 1 when something is staged.
	_, err := run(dir, "diff", "--cached", "--quiet")
	if err == nil {
		return "", nil
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) || exitErr.ExitCode() != 1 {
		return "", fmt.Errorf("git diff: %w", err)
	}

	if out, err := run(dir,
		"-c", "user.name="+author.Name,
		"-c", "user.email="+author.Email,
		"commit", "--quiet", "-m", message, "--author", author.String(),
	); err != nil {
		return "", fmt.Errorf("git commit: %s: %w", out, err)
	}

	out, err := run(dir, "rev-parse", "--short", "HEAD")
	if err != nil {
		return "", fmt.Errorf("git rev-parse: %w", err)
	}
	return out, nil
}

func run(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	return strings.TrimSpace(string(out)), err
}
