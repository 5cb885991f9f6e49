package statement

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/banco-dev/banco/internal/model"
)

// Format controls how amounts and timestamps are displayed.
type Format struct {
	CurrencySymbol  string
	TimestampFormat string
}

// DefaultFormat mirrors the defaults in banco.yaml.
func DefaultFormat() Format {
	return Format{
		CurrencySymbol:  "R$",
		TimestampFormat: "02/01/2006 15:04:05",
	}
}

const (
	screenHeader = "====== STATEMENT ======"
	screenFooter = "======================="
	exportHeader = "=== BANK STATEMENT ==="
	noMovements  = "No movements."
)

// Record appends a transaction to the account's history.
// The amount must already be validated by the caller.
func Record(acct *model.Account, kind model.TransactionKind, amount decimal.Decimal, at time.Time) {
	acct.History = append(acct.History, model.Transaction{
		Timestamp: at,
		Kind:      kind,
		Amount:    amount,
	})
}

// Money formats an amount like "R$ 100.50".
func (f Format) Money(amount decimal.Decimal) string {
	if f.CurrencySymbol == "" {
		return amount.StringFixed(2)
	}
	return f.CurrencySymbol + " " + amount.StringFixed(2)
}

// Line formats one history entry: "<timestamp> - <kind>: <amount>".
func (f Format) Line(txn model.Transaction) string {
	return fmt.Sprintf("%s - %s: %s", txn.Timestamp.Format(f.TimestampFormat), txn.Kind.Label(), f.Money(txn.Amount))
}

// Movements returns one line per transaction in chronological order, or a
// single "No movements." line for an empty history.
func (f Format) Movements(acct *model.Account) []string {
	if len(acct.History) == 0 {
		return []string{noMovements}
	}
	lines := make([]string, len(acct.History))
	for i, txn := range acct.History {
		lines[i] = f.Line(txn)
	}
	return lines
}

// Render returns the on-screen statement for an account.
func Render(acct *model.Account, f Format) []string {
	lines := []string{screenHeader}
	lines = append(lines, f.Movements(acct)...)
	lines = append(lines, "", "Current balance: "+f.Money(acct.Balance), screenFooter)
	return lines
}

// Export returns the statement as a text blob suitable for writing to a file.
func Export(acct *model.Account, f Format) string {
	var b strings.Builder
	b.WriteString(exportHeader)
	b.WriteByte('\n')
	fmt.Fprintf(&b, "Account: %d | Owner: %s\n", acct.Number, acct.OwnerTaxID)
	for _, line := range f.Movements(acct) {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString("\nFinal balance: ")
	b.WriteString(f.Money(acct.Balance))
	b.WriteByte('\n')
	return b.String()
}

// FileName returns the export file name for an account number.
func FileName(number int) string {
	return fmt.Sprintf("statement_account_%d.txt", number)
}

// WriteFile exports the account statement into dir and returns the file path.
func WriteFile(dir string, acct *model.Account, f Format) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating statements dir: %w", err)
	}
	path := filepath.Join(dir, FileName(acct.Number))
	if err := os.WriteFile(path, []byte(Export(acct, f)), 0o644); err != nil {
		return "", fmt.Errorf("writing statement: %w", err)
	}
	return path, nil
}
