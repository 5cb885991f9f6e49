package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banco-dev/banco/internal/ledger"
	"github.com/banco-dev/banco/internal/model"
)

var t0 = time.Date(2025, 2, 1, 8, 15, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func populatedStore(t *testing.T) *ledger.Store {
	t.Helper()
	s := ledger.NewStore(ledger.DefaultLimits(), func() time.Time { return t0 })
	_, err := s.CreateUser("111", "Ana Souza", "01/02/1990", "Rua A, 1, Centro, Recife")
	require.NoError(t, err)
	_, err = s.CreateUser("222", "Bruno Lima", "05/06/1970", "Rua B, 2")
	require.NoError(t, err)
	_, err = s.CreateAccount("111")
	require.NoError(t, err)
	_, err = s.CreateAccount("222")
	require.NoError(t, err)
	_, err = s.Deposit(1, dec("150.50"))
	require.NoError(t, err)
	_, err = s.Withdraw(1, dec("50"))
	require.NoError(t, err)
	require.NoError(t, s.Transfer(1, 2, dec("0.50")))
	return s
}

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	snap, err := Load(filepath.Join(t.TempDir(), "ledger.yaml"))
	require.NoError(t, err)
	assert.Empty(t, snap.Users)
	assert.Empty(t, snap.Accounts)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.yaml")
	src := populatedStore(t)
	require.NoError(t, SaveStore(path, src))

	dst := ledger.NewStore(ledger.DefaultLimits(), nil)
	require.NoError(t, LoadStore(path, dst))

	require.Len(t, dst.Users(), 2)
	assert.Equal(t, "Rua A, 1, Centro, Recife", dst.Users()[0].Address)

	a1, ok := dst.FindAccount(1)
	require.True(t, ok)
	assert.Equal(t, "100.00", a1.Balance.StringFixed(2))
	assert.Equal(t, 1, a1.DailyWithdrawals)
	require.Len(t, a1.History, 3)
	assert.Equal(t, model.KindDeposit, a1.History[0].Kind)
	assert.Equal(t, model.KindWithdrawal, a1.History[1].Kind)
	assert.Equal(t, model.KindTransferSent, a1.History[2].Kind)
	assert.True(t, a1.History[0].Timestamp.Equal(t0))

	a2, ok := dst.FindAccount(2)
	require.True(t, ok)
	assert.Equal(t, "0.50", a2.Balance.StringFixed(2))
	assert.Equal(t, model.KindTransferReceived, a2.History[0].Kind)
}

func TestSaveLoad_KeepsSubSecondTimestamps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.yaml")
	first := t0.Add(120 * time.Millisecond)
	second := t0.Add(870 * time.Millisecond)
	clock := []time.Time{first, second}
	s := ledger.NewStore(ledger.DefaultLimits(), func() time.Time {
		now := clock[0]
		clock = clock[1:]
		return now
	})
	_, err := s.CreateUser("111", "Ana Souza", "", "")
	require.NoError(t, err)
	_, err = s.CreateAccount("111")
	require.NoError(t, err)
	_, err = s.Deposit(1, dec("10"))
	require.NoError(t, err)
	_, err = s.Deposit(1, dec("20"))
	require.NoError(t, err)
	require.NoError(t, SaveStore(path, s))

	snap, err := Load(path)
	require.NoError(t, err)
	history := snap.Accounts[0].History
	require.Len(t, history, 2)
	assert.True(t, history[0].Timestamp.Equal(first), "got %s", history[0].Timestamp)
	assert.True(t, history[1].Timestamp.Equal(second), "got %s", history[1].Timestamp)
	assert.True(t, history[0].Timestamp.Before(history[1].Timestamp))
}

func TestSave_Format(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.yaml")
	require.NoError(t, SaveStore(path, populatedStore(t)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "tax_id: \"111\"")
	assert.Contains(t, contents, "owner_tax_id: \"222\"")
	assert.Contains(t, contents, "balance: \"100.00\"")
	assert.Contains(t, contents, "amount: \"150.50\"")
	assert.Contains(t, contents, "kind: transfer-sent")
	assert.Contains(t, contents, "2025-02-01T08:15:00Z")
}

func TestSave_ReplacesWithoutLeftovers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ledger.yaml")

	require.NoError(t, Save(path, ledger.Snapshot{}))
	require.NoError(t, SaveStore(path, populatedStore(t)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")
	assert.Equal(t, "ledger.yaml", entries[0].Name())

	snap, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, snap.Accounts, 2)
}

func TestSave_CreatesDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "data", "ledger.yaml")
	require.NoError(t, Save(path, ledger.Snapshot{}))

	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"malformed yaml", "users: [", "parsing ledger"},
		{"bad balance", "accounts:\n  - number: 1\n    balance: abc\n", "parsing balance"},
		{"bad timestamp", "accounts:\n  - number: 1\n    balance: \"1.00\"\n    history:\n      - timestamp: yesterday\n        kind: deposit\n        amount: \"1.00\"\n", "parsing timestamp"},
		{"bad amount", "accounts:\n  - number: 1\n    balance: \"1.00\"\n    history:\n      - timestamp: \"2025-01-01T00:00:00Z\"\n        kind: deposit\n        amount: one\n", "parsing amount"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "ledger.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadStore_RejectsInconsistentSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.yaml")
	content := `users:
  - tax_id: "111"
    full_name: Ana
accounts:
  - number: 1
    owner_tax_id: "111"
    balance: "99.00"
    history:
      - timestamp: "2025-01-01T00:00:00Z"
        kind: deposit
        amount: "100.00"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	store := ledger.NewStore(ledger.DefaultLimits(), nil)
	err := LoadStore(path, store)
	require.Error(t, err)

	var verrs ledger.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, 5, verrs[0].Invariant)
	assert.Empty(t, store.Accounts())
}
