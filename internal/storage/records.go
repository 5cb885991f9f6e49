package storage

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/banco-dev/banco/internal/ledger"
	"github.com/banco-dev/banco/internal/model"
)

const timestampFormat = time.RFC3339Nano

// document is the on-disk shape of ledger.yaml.
type document struct {
	Users    []userRecord    `yaml:"users"`
	Accounts []accountRecord `yaml:"accounts"`
}

type userRecord struct {
	TaxID     string `yaml:"tax_id"`
	FullName  string `yaml:"full_name"`
	BirthDate string `yaml:"birth_date"`
	Address   string `yaml:"address"`
}

type accountRecord struct {
	Number           int                 `yaml:"number"`
	OwnerTaxID       string              `yaml:"owner_tax_id"`
	Balance          string              `yaml:"balance"`
	DailyWithdrawals int                 `yaml:"daily_withdrawals"`
	History          []transactionRecord `yaml:"history"`
}

type transactionRecord struct {
	Timestamp string `yaml:"timestamp"`
	Kind      string `yaml:"kind"`
	Amount    string `yaml:"amount"`
}

// marshalSnapshot converts a ledger snapshot to its document form.
func marshalSnapshot(snap ledger.Snapshot) document {
	doc := document{
		Users:    make([]userRecord, len(snap.Users)),
		Accounts: make([]accountRecord, len(snap.Accounts)),
	}
	for i, u := range snap.Users {
		doc.Users[i] = userRecord(u)
	}
	for i, a := range snap.Accounts {
		rec := accountRecord{
			Number:           a.Number,
			OwnerTaxID:       a.OwnerTaxID,
			Balance:          a.Balance.StringFixed(2),
			DailyWithdrawals: a.DailyWithdrawals,
			History:          make([]transactionRecord, len(a.History)),
		}
		for j, txn := range a.History {
			rec.History[j] = transactionRecord{
				Timestamp: txn.Timestamp.Format(timestampFormat),
				Kind:      string(txn.Kind),
				Amount:    txn.Amount.StringFixed(2),
			}
		}
		doc.Accounts[i] = rec
	}
	return doc
}

// unmarshalSnapshot converts a document back to a ledger snapshot.
func unmarshalSnapshot(doc document) (ledger.Snapshot, error) {
	snap := ledger.Snapshot{
		Users:    make([]model.User, len(doc.Users)),
		Accounts: make([]model.Account, len(doc.Accounts)),
	}
	for i, u := range doc.Users {
		snap.Users[i] = model.User(u)
	}
	for i, rec := range doc.Accounts {
		acct, err := unmarshalAccount(rec)
		if err != nil {
			return ledger.Snapshot{}, fmt.Errorf("account %d: %w", rec.Number, err)
		}
		snap.Accounts[i] = acct
	}
	return snap, nil
}

func unmarshalAccount(rec accountRecord) (model.Account, error) {
	balance, err := decimal.NewFromString(rec.Balance)
	if err != nil {
		return model.Account{}, fmt.Errorf("parsing balance %q: %w", rec.Balance, err)
	}

	history := make([]model.Transaction, len(rec.History))
	for i, tr := range rec.History {
		ts, err := time.Parse(timestampFormat, tr.Timestamp)
		if err != nil {
			return model.Account{}, fmt.Errorf("entry %d: parsing timestamp %q: %w", i+1, tr.Timestamp, err)
		}
		amount, err := decimal.NewFromString(tr.Amount)
		if err != nil {
			return model.Account{}, fmt.Errorf("entry %d: parsing amount %q: %w", i+1, tr.Amount, err)
		}
		history[i] = model.Transaction{
			Timestamp: ts,
			Kind:      model.TransactionKind(tr.Kind),
			Amount:    amount,
		}
	}

	return model.Account{
		Number:           rec.Number,
		OwnerTaxID:       rec.OwnerTaxID,
		Balance:          balance,
		DailyWithdrawals: rec.DailyWithdrawals,
		History:          history,
	}, nil
}
