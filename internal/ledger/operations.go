package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/banco-dev/banco/internal/model"
	"github.com/banco-dev/banco/internal/statement"
)

// Limits caps withdrawals. Transfers are not subject to them.
type Limits struct {
	PerWithdrawal       decimal.Decimal
	MaxDailyWithdrawals int
}

// DefaultLimits returns a 500.00 per-withdrawal cap and three withdrawals.
func DefaultLimits() Limits {
	return Limits{
		PerWithdrawal:       decimal.NewFromInt(500),
		MaxDailyWithdrawals: 3,
	}
}

// Deposit credits amount to acct. Amounts must be positive whole cents.
func Deposit(acct *model.Account, amount decimal.Decimal, at time.Time) error {
	if !wholeCents(amount) {
		return ErrInvalidAmount
	}
	acct.Balance = acct.Balance.Add(amount)
	statement.Record(acct, model.KindDeposit, amount, at)
	return nil
}

// Withdraw debits amount from acct. Conditions are checked in order and the
// first failure wins; on failure acct is unchanged.
func Withdraw(acct *model.Account, amount decimal.Decimal, limits Limits, at time.Time) error {
	switch {
	case !wholeCents(amount):
		return ErrInvalidAmount
	case amount.GreaterThan(acct.Balance):
		return ErrInsufficientFunds
	case amount.GreaterThan(limits.PerWithdrawal):
		return ErrLimitExceeded
	case acct.DailyWithdrawals >= limits.MaxDailyWithdrawals:
		return ErrDailyCountExceeded
	}

	acct.Balance = acct.Balance.Sub(amount)
	acct.DailyWithdrawals++
	statement.Record(acct, model.KindWithdrawal, amount, at)
	return nil
}

// transfer is the single transition applied by Transfer once every check
// has passed. Both sides are computed before either account is touched.
type transfer struct {
	src, dst       *model.Account
	srcBal, dstBal decimal.Decimal
	amount         decimal.Decimal
	at             time.Time
}

func (t transfer) apply() {
	t.src.Balance = t.srcBal
	t.dst.Balance = t.dstBal
	statement.Record(t.src, model.KindTransferSent, t.amount, t.at)
	statement.Record(t.dst, model.KindTransferReceived, t.amount, t.at)
}

// Transfer moves amount from src to dst. It does not consume a withdrawal
// slot and ignores the per-withdrawal limit.
func Transfer(src, dst *model.Account, amount decimal.Decimal, at time.Time) error {
	if src.Number == dst.Number {
		return ErrSameAccount
	}
	if !wholeCents(amount) {
		return ErrInvalidAmount
	}
	if amount.GreaterThan(src.Balance) {
		return ErrInsufficientFunds
	}

	transfer{
		src:    src,
		dst:    dst,
		srcBal: src.Balance.Sub(amount),
		dstBal: dst.Balance.Add(amount),
		amount: amount,
		at:     at,
	}.apply()
	return nil
}
