package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind classifies a statement entry.
type TransactionKind string

const (
	KindDeposit          TransactionKind = "deposit"
	KindWithdrawal       TransactionKind = "withdrawal"
	KindTransferSent     TransactionKind = "transfer-sent"
	KindTransferReceived TransactionKind = "transfer-received"
)

// Label returns the human-readable name used on statements.
func (k TransactionKind) Label() string {
	switch k {
	case KindDeposit:
		return "Deposit"
	case KindWithdrawal:
		return "Withdrawal"
	case KindTransferSent:
		return "Transfer Sent"
	case KindTransferReceived:
		return "Transfer Received"
	default:
		return string(k)
	}
}

// Valid reports whether k is one of the known kinds.
func (k TransactionKind) Valid() bool {
	switch k {
	case KindDeposit, KindWithdrawal, KindTransferSent, KindTransferReceived:
		return true
	}
	return false
}

// Credit reports whether the kind increases the balance.
func (k TransactionKind) Credit() bool {
	return k == KindDeposit || k == KindTransferReceived
}

// Transaction is one immutable entry in an account's history.
type Transaction struct {
	Timestamp time.Time
	Kind      TransactionKind
	Amount    decimal.Decimal // always positive
}

// Signed returns the amount with the sign it contributes to the balance.
func (t Transaction) Signed() decimal.Decimal {
	if t.Kind.Credit() {
		return t.Amount
	}
	return t.Amount.Neg()
}
