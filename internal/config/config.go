package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/banco-dev/banco/internal/ledger"
	"github.com/banco-dev/banco/internal/statement"
)

// FileName is the config file looked up in the data directory.
const FileName = "banco.yaml"

// Config represents the top-level banco.yaml configuration.
type Config struct {
	Data    DataConfig    `yaml:"data"`
	Limits  LimitsConfig  `yaml:"limits"`
	Display DisplayConfig `yaml:"display"`
	Log     LogConfig     `yaml:"log"`
	Git     GitConfig     `yaml:"git"`
}

// DataConfig locates the ledger snapshot and statement exports, relative to
// the data directory.
type DataConfig struct {
	LedgerFile    string `yaml:"ledger_file"`
	StatementsDir string `yaml:"statements_dir"`
}

// LimitsConfig holds withdrawal limits.
type LimitsConfig struct {
	PerWithdrawal       string `yaml:"per_withdrawal"` // decimal, e.g. "500.00"
	MaxDailyWithdrawals int    `yaml:"max_daily_withdrawals"`
}

// DisplayConfig controls statement formatting.
type DisplayConfig struct {
	CurrencySymbol  string `yaml:"currency_symbol"`
	TimestampFormat string `yaml:"timestamp_format"` // Go layout
}

// LogConfig sets the default log level.
type LogConfig struct {
	Level string `yaml:"level"`
}

// GitConfig controls snapshots of the data directory in git.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a banco.yaml file from disk. Fields missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if _, err := cfg.WithdrawalLimits(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields Default().
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with the stock limits and file layout.
func Default() *Config {
	f := statement.DefaultFormat()
	return &Config{
		Data: DataConfig{
			LedgerFile:    "ledger.yaml",
			StatementsDir: "statements",
		},
		Limits: LimitsConfig{
			PerWithdrawal:       "500.00",
			MaxDailyWithdrawals: 3,
		},
		Display: DisplayConfig{
			CurrencySymbol:  f.CurrencySymbol,
			TimestampFormat: f.TimestampFormat,
		},
		Log: LogConfig{
			Level: "info",
		},
		Git: GitConfig{
			AutoCommit:  false,
			AuthorName:  "Banco",
			AuthorEmail: "banco@localhost",
		},
	}
}

// WithdrawalLimits parses the limits section.
func (c *Config) WithdrawalLimits() (ledger.Limits, error) {
	per, err := decimal.NewFromString(c.Limits.PerWithdrawal)
	if err != nil {
		return ledger.Limits{}, fmt.Errorf("parsing limits.per_withdrawal %q: %w", c.Limits.PerWithdrawal, err)
	}
	if !per.IsPositive() {
		return ledger.Limits{}, fmt.Errorf("limits.per_withdrawal must be positive, got %s", per)
	}
	if c.Limits.MaxDailyWithdrawals < 0 {
		return ledger.Limits{}, fmt.Errorf("limits.max_daily_withdrawals must not be negative, got %d", c.Limits.MaxDailyWithdrawals)
	}
	return ledger.Limits{PerWithdrawal: per, MaxDailyWithdrawals: c.Limits.MaxDailyWithdrawals}, nil
}

// StatementFormat returns the display section as a statement.Format.
func (c *Config) StatementFormat() statement.Format {
	f := statement.Format{
		CurrencySymbol:  c.Display.CurrencySymbol,
		TimestampFormat: c.Display.TimestampFormat,
	}
	if f.TimestampFormat == "" {
		f.TimestampFormat = statement.DefaultFormat().TimestampFormat
	}
	return f
}
