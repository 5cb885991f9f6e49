// Package menu implements the interactive banking menu on top of a ledger.Store.
package menu

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"

	"github.com/banco-dev/banco/internal/ledger"
	"github.com/banco-dev/banco/internal/model"
	"github.com/banco-dev/banco/internal/statement"
)

const title = "BANCO DIGITAL"

// Recorder receives every attempted operation, successful or not.
type Recorder interface {
	Record(action string, account int, amount decimal.Decimal, err error)
}

type nopRecorder struct{}

func (nopRecorder) Record(string, int, decimal.Decimal, error) {}

// Options configures a Menu.
type Options struct {
	Format        statement.Format
	StatementsDir string
	Recorder      Recorder // optional
	Logger        *log.Logger
}

// Menu drives the store from user choices. Operation failures are reported
// to the user and the menu re-prompts; only prompt failures end the loop.
type Menu struct {
	store  *ledger.Store
	prompt Prompter
	out    io.Writer
	opts   Options
	log    *log.Logger
}

// New creates a Menu writing its messages to out.
func New(store *ledger.Store, prompt Prompter, out io.Writer, opts Options) *Menu {
	if opts.Recorder == nil {
		opts.Recorder = nopRecorder{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Menu{store: store, prompt: prompt, out: out, opts: opts, log: logger}
}

// Run loops until the user exits or input ends. Both return nil; saving is
// left to the caller.
func (m *Menu) Run() error {
	for {
		choice, err := m.prompt.Choose(title, Choices())
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading menu choice: %w", err)
		}

		cmd := ParseCommand(choice)
		if cmd == CommandExit {
			return nil
		}
		if err := m.dispatch(cmd); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("%s: %w", cmd, err)
		}
	}
}

func (m *Menu) dispatch(cmd Command) error {
	switch cmd {
	case CommandCreateUser:
		return m.createUser()
	case CommandCreateAccount:
		return m.createAccount()
	case CommandDeposit:
		return m.deposit()
	case CommandWithdraw:
		return m.withdraw()
	case CommandTransfer:
		return m.transfer()
	case CommandStatement:
		return m.showStatement()
	case CommandExportStatement:
		return m.exportStatement()
	case CommandListAccounts:
		m.listAccounts()
		return nil
	default:
		m.warn("Invalid option! Try again.")
		return nil
	}
}

func (m *Menu) createUser() error {
	fmt.Fprintln(m.out, "\n=== New User ===")
	taxID, err := m.prompt.Input("Tax ID (digits only)")
	if err != nil {
		return err
	}
	if taxID == "" {
		m.fail("create-user", 0, decimal.Zero, ledger.ErrEmptyTaxID)
		return nil
	}
	if _, ok := m.store.FindUser(taxID); ok {
		m.fail("create-user", 0, decimal.Zero, ledger.ErrAlreadyExists)
		return nil
	}
	name, err := m.prompt.Input("Full name")
	if err != nil {
		return err
	}
	birth, err := m.prompt.Input("Birth date (DD/MM/YYYY)")
	if err != nil {
		return err
	}
	address, err := m.prompt.Input("Address (street, number, district, city)")
	if err != nil {
		return err
	}

	if _, err := m.store.CreateUser(taxID, name, birth, address); err != nil {
		m.fail("create-user", 0, decimal.Zero, err)
		return nil
	}
	m.opts.Recorder.Record("create-user", 0, decimal.Zero, nil)
	m.log.Debug("user created", "tax_id", taxID)
	m.ok("User created!")
	return nil
}

func (m *Menu) createAccount() error {
	fmt.Fprintln(m.out, "\n=== New Account ===")
	taxID, err := m.prompt.Input("Owner tax ID")
	if err != nil {
		return err
	}
	acct, err := m.store.CreateAccount(taxID)
	if err != nil {
		m.fail("create-account", 0, decimal.Zero, err)
		return nil
	}
	m.opts.Recorder.Record("create-account", acct.Number, decimal.Zero, nil)
	m.log.Debug("account created", "account", acct.Number, "owner", acct.OwnerTaxID)
	m.ok(fmt.Sprintf("Account created! Account number: %d", acct.Number))
	return nil
}

func (m *Menu) deposit() error {
	acct, err := m.selectAccount("Account number")
	if err != nil || acct == nil {
		return err
	}
	amount, ok, err := m.readAmount("Deposit amount")
	if err != nil || !ok {
		return err
	}
	_, err = m.store.Deposit(acct.Number, amount)
	m.opts.Recorder.Record("deposit", acct.Number, amount, err)
	if err != nil {
		m.warn(m.describe(err))
		return nil
	}
	m.log.Debug("deposit", "account", acct.Number, "amount", amount.StringFixed(2))
	m.ok("Deposit completed!")
	return nil
}

func (m *Menu) withdraw() error {
	acct, err := m.selectAccount("Account number")
	if err != nil || acct == nil {
		return err
	}
	amount, ok, err := m.readAmount("Withdrawal amount")
	if err != nil || !ok {
		return err
	}
	_, err = m.store.Withdraw(acct.Number, amount)
	m.opts.Recorder.Record("withdraw", acct.Number, amount, err)
	if err != nil {
		m.warn(m.describe(err))
		return nil
	}
	m.log.Debug("withdrawal", "account", acct.Number, "amount", amount.StringFixed(2), "count", acct.DailyWithdrawals)
	m.ok("Withdrawal completed!")
	return nil
}

func (m *Menu) transfer() error {
	fmt.Fprintln(m.out, "\n=== Transfer ===")
	src, err := m.selectAccount("Source account number")
	if err != nil || src == nil {
		return err
	}
	dst, err := m.selectAccount("Destination account number")
	if err != nil || dst == nil {
		return err
	}
	if src.Number == dst.Number {
		m.fail("transfer", src.Number, decimal.Zero, ledger.ErrSameAccount)
		return nil
	}
	amount, ok, err := m.readAmount("Transfer amount")
	if err != nil || !ok {
		return err
	}
	err = m.store.Transfer(src.Number, dst.Number, amount)
	m.opts.Recorder.Record("transfer", src.Number, amount, err)
	if err != nil {
		m.warn(m.describe(err))
		return nil
	}
	m.log.Debug("transfer", "from", src.Number, "to", dst.Number, "amount", amount.StringFixed(2))
	m.ok("Transfer completed!")
	return nil
}

func (m *Menu) showStatement() error {
	acct, err := m.selectAccount("Account number")
	if err != nil || acct == nil {
		return err
	}
	fmt.Fprintln(m.out)
	for _, line := range statement.Render(acct, m.opts.Format) {
		fmt.Fprintln(m.out, line)
	}
	return nil
}

func (m *Menu) exportStatement() error {
	acct, err := m.selectAccount("Account number")
	if err != nil || acct == nil {
		return err
	}
	path, err := statement.WriteFile(m.opts.StatementsDir, acct, m.opts.Format)
	m.opts.Recorder.Record("export-statement", acct.Number, decimal.Zero, err)
	if err != nil {
		m.log.Error("statement export failed", "account", acct.Number, "err", err)
		m.warn("Could not export statement: " + err.Error())
		return nil
	}
	m.log.Info("statement exported", "account", acct.Number, "path", path)
	m.ok(fmt.Sprintf("Statement exported to '%s'", path))
	return nil
}

func (m *Menu) listAccounts() {
	fmt.Fprintln(m.out, "\n=== ACCOUNTS ===")
	accts := m.store.Accounts()
	if len(accts) == 0 {
		fmt.Fprintln(m.out, "No accounts registered.")
		return
	}
	for _, a := range accts {
		fmt.Fprintln(m.out, AccountLine(a, m.opts.Format))
	}
}

// AccountLine formats an account for listings.
func AccountLine(a *model.Account, f statement.Format) string {
	return fmt.Sprintf("Account: %d | Tax ID: %s | Balance: %s", a.Number, a.OwnerTaxID, f.Money(a.Balance))
}

// selectAccount prompts for an account number. It returns a nil account,
// after telling the user, when the input is not a known account.
func (m *Menu) selectAccount(prompt string) (*model.Account, error) {
	raw, err := m.prompt.Input(prompt)
	if err != nil {
		return nil, err
	}
	number, err := strconv.Atoi(raw)
	if err != nil {
		m.warn("Invalid account number.")
		return nil, nil
	}
	acct, ok := m.store.FindAccount(number)
	if !ok {
		m.warn(m.describe(ledger.ErrAccountNotFound))
		return nil, nil
	}
	return acct, nil
}

// readAmount prompts for a money amount. ok is false when the input could
// not be parsed.
func (m *Menu) readAmount(prompt string) (decimal.Decimal, bool, error) {
	raw, err := m.prompt.Input(prompt + " (" + m.opts.Format.CurrencySymbol + ")")
	if err != nil {
		return decimal.Zero, false, err
	}
	amount, err := ParseAmount(raw)
	if err != nil {
		m.warn(m.describe(ledger.ErrInvalidAmount))
		return decimal.Zero, false, nil
	}
	return amount, true, nil
}

// ParseAmount parses user input such as "150.50" or "150,50".
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	return amount, nil
}

func (m *Menu) describe(err error) string {
	return Describe(err, m.store.Limits(), m.opts.Format)
}

// Describe turns a ledger error into a user-facing message.
func Describe(err error, limits ledger.Limits, f statement.Format) string {
	switch {
	case errors.Is(err, ledger.ErrEmptyTaxID):
		return "Tax ID is required."
	case errors.Is(err, ledger.ErrAlreadyExists):
		return "User already exists!"
	case errors.Is(err, ledger.ErrUserNotFound):
		return "User not found!"
	case errors.Is(err, ledger.ErrAccountNotFound):
		return "Account not found!"
	case errors.Is(err, ledger.ErrInvalidAmount):
		return "Invalid amount."
	case errors.Is(err, ledger.ErrInsufficientFunds):
		return "Insufficient funds."
	case errors.Is(err, ledger.ErrLimitExceeded):
		return fmt.Sprintf("Withdrawal limit of %s exceeded.", f.Money(limits.PerWithdrawal))
	case errors.Is(err, ledger.ErrDailyCountExceeded):
		return "Daily withdrawal limit reached."
	case errors.Is(err, ledger.ErrSameAccount):
		return "Cannot transfer to the same account."
	default:
		return err.Error()
	}
}

func (m *Menu) fail(action string, account int, amount decimal.Decimal, err error) {
	m.opts.Recorder.Record(action, account, amount, err)
	m.warn(m.describe(err))
}

func (m *Menu) ok(msg string) {
	fmt.Fprintln(m.out, "✔ "+msg)
}

func (m *Menu) warn(msg string) {
	fmt.Fprintln(m.out, "⚠ "+msg)
}
