package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banco-dev/banco/internal/model"
)

func TestDeposit(t *testing.T) {
	acct := account(1, "0")
	require.NoError(t, Deposit(acct, dec("150.50"), t0))

	assert.Equal(t, "150.50", acct.Balance.StringFixed(2))
	require.Len(t, acct.History, 1)
	assert.Equal(t, model.KindDeposit, acct.History[0].Kind)
	assert.True(t, acct.History[0].Amount.Equal(dec("150.50")))
	assert.Equal(t, t0, acct.History[0].Timestamp)
}

func TestNonPositiveAmountsLeaveStateUnchanged(t *testing.T) {
	for _, amt := range []string{"0", "-0.01", "-1", "-1000"} {
		src := account(1, "300")
		dst := account(2, "50")

		assert.ErrorIs(t, Deposit(src, dec(amt), t0), ErrInvalidAmount, "deposit %s", amt)
		assert.ErrorIs(t, Withdraw(src, dec(amt), DefaultLimits(), t0), ErrInvalidAmount, "withdraw %s", amt)
		assert.ErrorIs(t, Transfer(src, dst, dec(amt), t0), ErrInvalidAmount, "transfer %s", amt)

		assert.Equal(t, "300.00", src.Balance.StringFixed(2))
		assert.Equal(t, "50.00", dst.Balance.StringFixed(2))
		assert.Len(t, src.History, 1)
		assert.Len(t, dst.History, 1)
		assert.Equal(t, 0, src.DailyWithdrawals)
	}
}

func TestSubCentAmountsRejected(t *testing.T) {
	src := account(1, "10")
	dst := account(2, "0")

	assert.ErrorIs(t, Deposit(src, dec("0.005"), t0), ErrInvalidAmount)
	assert.ErrorIs(t, Withdraw(src, dec("1.001"), DefaultLimits(), t0), ErrInvalidAmount)
	assert.ErrorIs(t, Transfer(src, dst, dec("2.999"), t0), ErrInvalidAmount)
	assert.Equal(t, "10.00", src.Balance.StringFixed(2))
}

func TestWithdraw_Sequence(t *testing.T) {
	acct := account(1, "1000")
	limits := DefaultLimits()

	for _, amt := range []string{"400", "400", "100"} {
		require.NoError(t, Withdraw(acct, dec(amt), limits, t0))
	}
	assert.Equal(t, "100.00", acct.Balance.StringFixed(2))
	assert.Equal(t, 3, acct.DailyWithdrawals)

	err := Withdraw(acct, dec("10"), limits, t0)
	require.ErrorIs(t, err, ErrDailyCountExceeded)
	assert.Equal(t, "100.00", acct.Balance.StringFixed(2))
	assert.Equal(t, 3, acct.DailyWithdrawals)
	assert.Len(t, acct.History, 4, "deposit + three withdrawals")
}

func TestWithdraw_CheckOrder(t *testing.T) {
	limits := DefaultLimits()
	tests := []struct {
		name      string
		balance   string
		count     int
		amount    string
		wantErr   error
		wantCount int
	}{
		{"invalid before everything", "0", 3, "0", ErrInvalidAmount, 3},
		{"insufficient before limit", "100", 3, "600", ErrInsufficientFunds, 3},
		{"insufficient before count", "100", 3, "200", ErrInsufficientFunds, 3},
		{"limit before count", "1000", 3, "501", ErrLimitExceeded, 3},
		{"count exhausted", "1000", 3, "500", ErrDailyCountExceeded, 3},
		{"limit is inclusive", "1000", 0, "500", nil, 1},
		{"exact balance", "20", 2, "20", nil, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acct := account(1, tt.balance)
			acct.DailyWithdrawals = tt.count
			before := acct.Balance

			err := Withdraw(acct, dec(tt.amount), limits, t0)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.True(t, acct.Balance.Equal(before))
			} else {
				require.NoError(t, err)
				assert.True(t, acct.Balance.Equal(before.Sub(dec(tt.amount))))
			}
			assert.Equal(t, tt.wantCount, acct.DailyWithdrawals)
		})
	}
}

func TestWithdraw_CustomLimits(t *testing.T) {
	acct := account(1, "5000")
	limits := Limits{PerWithdrawal: dec("2000"), MaxDailyWithdrawals: 1}

	require.NoError(t, Withdraw(acct, dec("1500"), limits, t0))
	assert.ErrorIs(t, Withdraw(acct, dec("1"), limits, t0), ErrDailyCountExceeded)
}

func TestTransfer_Sequence(t *testing.T) {
	a := account(1, "300")
	b := account(2, "50")

	require.NoError(t, Transfer(a, b, dec("300"), t0))
	assert.True(t, a.Balance.IsZero())
	assert.Equal(t, "350.00", b.Balance.StringFixed(2))

	sent := a.History[len(a.History)-1]
	received := b.History[len(b.History)-1]
	assert.Equal(t, model.KindTransferSent, sent.Kind)
	assert.True(t, sent.Amount.Equal(dec("300")))
	assert.Equal(t, model.KindTransferReceived, received.Kind)
	assert.True(t, received.Amount.Equal(dec("300")))

	err := Transfer(a, b, dec("1"), t0)
	require.ErrorIs(t, err, ErrInsufficientFunds)
	assert.True(t, a.Balance.IsZero())
	assert.Equal(t, "350.00", b.Balance.StringFixed(2))
	assert.Len(t, a.History, 2)
	assert.Len(t, b.History, 2)
}

func TestTransfer_SameAccount(t *testing.T) {
	a := account(1, "100")
	alias := &model.Account{Number: 1, Balance: a.Balance}

	assert.ErrorIs(t, Transfer(a, a, dec("10"), t0), ErrSameAccount)
	assert.ErrorIs(t, Transfer(a, alias, dec("10"), t0), ErrSameAccount)
	// Same-account check precedes amount validation.
	assert.ErrorIs(t, Transfer(a, a, dec("-1"), t0), ErrSameAccount)
	assert.Equal(t, "100.00", a.Balance.StringFixed(2))
	assert.Len(t, a.History, 1)
}

func TestTransfer_IgnoresWithdrawalLimits(t *testing.T) {
	a := account(1, "2000")
	b := account(2, "0")
	a.DailyWithdrawals = 3

	require.NoError(t, Transfer(a, b, dec("1500"), t0))
	assert.Equal(t, 3, a.DailyWithdrawals, "transfer must not consume a withdrawal slot")
	assert.Equal(t, "500.00", a.Balance.StringFixed(2))
	assert.Equal(t, "1500.00", b.Balance.StringFixed(2))
}

func TestTransfer_BothSidesOrNeither(t *testing.T) {
	a := account(1, "100")
	b := account(2, "100")
	total := a.Balance.Add(b.Balance)

	for _, amt := range []string{"30", "80", "0", "-5", "71", "70"} {
		_ = Transfer(a, b, dec(amt), t0)
		assert.True(t, a.Balance.Add(b.Balance).Equal(total), "total must be conserved after %s", amt)
		assert.Equal(t, len(a.History), len(b.History), "both sides record together")
	}
	assert.True(t, a.Balance.IsZero())
	assert.Equal(t, "200.00", b.Balance.StringFixed(2))
}

func TestBalanceEqualsHistoryTotal(t *testing.T) {
	s := newStore(t, "1000", "250")
	ops := []func() error{
		func() error { _, err := s.Withdraw(1, dec("120.25")); return err },
		func() error { return s.Transfer(1, 2, dec("300")) },
		func() error { return s.Transfer(2, 1, dec("49.99")) },
		func() error { _, err := s.Deposit(2, dec("0.01")); return err },
		func() error { _, err := s.Withdraw(2, dec("9999")); return err },
		func() error { return s.Transfer(1, 2, dec("5000")) },
		func() error { _, err := s.Withdraw(1, dec("600")); return err },
		func() error { _, err := s.Withdraw(2, dec("500")); return err },
	}
	for _, op := range ops {
		_ = op()
		for _, acct := range s.Accounts() {
			assert.False(t, acct.Balance.IsNegative(), "account %d negative", acct.Number)
			assert.True(t, acct.Balance.Equal(historyTotal(acct)), "account %d: balance %s != history %s",
				acct.Number, acct.Balance, historyTotal(acct))
		}
	}
	assert.Empty(t, Validate(s.Snapshot()))
}
