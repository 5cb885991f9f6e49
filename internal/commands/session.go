package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"

	"github.com/banco-dev/banco/internal/auditlog"
	"github.com/banco-dev/banco/internal/config"
	"github.com/banco-dev/banco/internal/gitops"
	"github.com/banco-dev/banco/internal/ledger"
	"github.com/banco-dev/banco/internal/storage"
)

// session is one process worth of work against a data directory: load on
// open, save on close.
type session struct {
	dir   string
	cfg   *config.Config
	store *ledger.Store
	audit *auditlog.Recorder
	log   *log.Logger
}

func newLogger(w io.Writer, level string) (*log.Logger, error) {
	logger := log.NewWithOptions(w, log.Options{Prefix: "banco"})
	if level == "" {
		level = "info"
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	logger.SetLevel(lvl)
	return logger, nil
}

// openSession loads config and the ledger snapshot from opts.dir.
func openSession(opts *rootOptions) (*session, error) {
	dir, err := filepath.Abs(opts.dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.LoadOrDefault(filepath.Join(dir, config.FileName))
	if err != nil {
		return nil, err
	}

	level := cfg.Log.Level
	if opts.logLevel != "" {
		level = opts.logLevel
	}
	logger, err := newLogger(os.Stderr, level)
	if err != nil {
		return nil, err
	}

	limits, err := cfg.WithdrawalLimits()
	if err != nil {
		return nil, err
	}

	s := &session{
		dir:   dir,
		cfg:   cfg,
		store: ledger.NewStore(limits, nil),
		audit: auditlog.NewRecorder(nil),
		log:   logger,
	}
	if err := storage.LoadStore(s.ledgerPath(), s.store); err != nil {
		return nil, fmt.Errorf("loading ledger: %w", err)
	}
	s.log.Info("ledger loaded",
		"path", s.ledgerPath(),
		"users", len(s.store.Users()),
		"accounts", len(s.store.Accounts()),
		"session", s.audit.Session())
	return s, nil
}

func (s *session) ledgerPath() string {
	return s.resolve(s.cfg.Data.LedgerFile)
}

func (s *session) statementsDir() string {
	return s.resolve(s.cfg.Data.StatementsDir)
}

func (s *session) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(s.dir, p)
}

// record notes an operation in the activity log.
func (s *session) record(action string, account int, amount decimal.Decimal, err error) {
	s.audit.Record(action, account, amount, err)
}

// finish ends a one-shot command: the ledger is saved only when opErr is
// nil, the activity log is flushed either way, and opErr is returned.
func (s *session) finish(opErr error) error {
	if opErr == nil {
		return s.save()
	}
	s.flushAudit()
	return opErr
}

// save writes the ledger, flushes the activity log and, when enabled,
// commits a git snapshot. Only the ledger write is fatal.
func (s *session) save() error {
	if err := storage.SaveStore(s.ledgerPath(), s.store); err != nil {
		return fmt.Errorf("saving ledger: %w", err)
	}
	s.log.Info("ledger saved", "path", s.ledgerPath())

	s.flushAudit()

	if s.cfg.Git.AutoCommit {
		s.commit()
	}
	return nil
}

func (s *session) flushAudit() {
	if err := s.audit.Flush(s.dir); err != nil {
		s.log.Warn("failed to write activity log", "err", err)
	}
}

func (s *session) commit() {
	if !gitops.IsRepo(s.dir) {
		s.log.Warn("git.auto_commit is set but the data directory is not a git repository", "dir", s.dir)
		return
	}
	msg := fmt.Sprintf("save: %d users, %d accounts", len(s.store.Users()), len(s.store.Accounts()))
	author := gitops.Author{Name: s.cfg.Git.AuthorName, Email: s.cfg.Git.AuthorEmail}
	hash, err := gitops.Snapshot(s.dir, msg, author, s.gitPaths()...)
	if err != nil {
		s.log.Warn("failed to commit ledger snapshot", "err", err)
		return
	}
	if hash != "" {
		s.log.Info("ledger committed", "commit", hash)
	}
}

// gitPaths lists the tracked files, relative to the data directory.
func (s *session) gitPaths() []string {
	var paths []string
	for _, p := range []string{s.ledgerPath(), auditlog.Path(s.dir)} {
		rel, err := filepath.Rel(s.dir, p)
		if err != nil || strings.HasPrefix(rel, "..") {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			paths = append(paths, rel)
		}
	}
	return paths
}
