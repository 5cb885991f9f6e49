package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/banco-dev/banco/internal/model"
)

var t0 = time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// fixedClock returns a clock that advances one second per call.
func fixedClock() func() time.Time {
	now := t0
	return func() time.Time {
		now = now.Add(time.Second)
		return now
	}
}

// account returns a standalone account funded through a deposit.
func account(number int, balance string) *model.Account {
	acct := &model.Account{Number: number, OwnerTaxID: "111", Balance: decimal.Zero}
	if b := dec(balance); b.IsPositive() {
		if err := Deposit(acct, b, t0); err != nil {
			panic(err)
		}
	}
	return acct
}

// newStore returns a store with one user ("111") owning accounts funded with balances.
func newStore(t *testing.T, balances ...string) *Store {
	t.Helper()
	s := NewStore(DefaultLimits(), fixedClock())
	_, err := s.CreateUser("111", "Ana Souza", "01/02/1990", "Rua A, 1")
	require.NoError(t, err)
	for _, b := range balances {
		acct, err := s.CreateAccount("111")
		require.NoError(t, err)
		if amt := dec(b); amt.IsPositive() {
			_, err := s.Deposit(acct.Number, amt)
			require.NoError(t, err)
		}
	}
	return s
}

// historyTotal is the signed sum of an account's history.
func historyTotal(acct *model.Account) decimal.Decimal {
	sum := decimal.Zero
	for _, txn := range acct.History {
		sum = sum.Add(txn.Signed())
	}
	return sum
}
