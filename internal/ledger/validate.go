package ledger

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ValidationError describes a single invariant violation in a snapshot.
type ValidationError struct {
	Invariant   int
	Subject     string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invariant %d [%s]: %s", e.Invariant, e.Subject, e.Description)
}

// ValidationErrors is returned by Restore when a snapshot is inconsistent.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, ve := range v {
		msgs[i] = ve.Error()
	}
	return "invalid ledger snapshot: " + strings.Join(msgs, "; ")
}

// wholeCents reports whether amount is positive with at most 2 decimal places.
func wholeCents(amount decimal.Decimal) bool {
	return amount.IsPositive() && amount.Equal(amount.Round(2))
}

// Validate enforces the ledger invariants on a snapshot:
//
//  1. tax IDs are non-empty and unique
//  2. account numbers run 1..n in snapshot order
//  3. every account owner exists
//  4. balances are non-negative
//  5. each balance equals the signed sum of its history
//  6. history entries have a known kind and a positive whole-cent amount
//  7. withdrawal counters are non-negative
func Validate(snap Snapshot) ValidationErrors {
	var errs ValidationErrors

	taxIDs := make(map[string]bool, len(snap.Users))
	for _, u := range snap.Users {
		if u.TaxID == "" {
			errs = append(errs, ValidationError{1, "user", "empty tax id"})
			continue
		}
		if taxIDs[u.TaxID] {
			errs = append(errs, ValidationError{1, u.TaxID, "duplicate tax id"})
		}
		taxIDs[u.TaxID] = true
	}

	for pos, a := range snap.Accounts {
		subject := fmt.Sprintf("account %d", a.Number)

		// New accounts are numbered count+1, so any gap or repeat would be
		// handed out again.
		if a.Number != pos+1 {
			errs = append(errs, ValidationError{2, subject, fmt.Sprintf("account number out of sequence, want %d", pos+1)})
		}

		if !taxIDs[a.OwnerTaxID] {
			errs = append(errs, ValidationError{3, subject, fmt.Sprintf("unknown owner %q", a.OwnerTaxID)})
		}

		if a.Balance.IsNegative() {
			errs = append(errs, ValidationError{4, subject, fmt.Sprintf("negative balance %s", a.Balance.StringFixed(2))})
		}

		sum := decimal.Zero
		for i, txn := range a.History {
			if !txn.Kind.Valid() {
				errs = append(errs, ValidationError{6, subject, fmt.Sprintf("entry %d: unknown kind %q", i+1, txn.Kind)})
				continue
			}
			if !wholeCents(txn.Amount) {
				errs = append(errs, ValidationError{6, subject, fmt.Sprintf("entry %d: invalid amount %s", i+1, txn.Amount)})
			}
			sum = sum.Add(txn.Signed())
		}
		if !sum.Equal(a.Balance) {
			errs = append(errs, ValidationError{5, subject, fmt.Sprintf("balance %s != history total %s", a.Balance.StringFixed(2), sum.StringFixed(2))})
		}

		if a.DailyWithdrawals < 0 {
			errs = append(errs, ValidationError{7, subject, "negative withdrawal count"})
		}
	}

	return errs
}
