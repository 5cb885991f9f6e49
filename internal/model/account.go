package model

import "github.com/shopspring/decimal"

// Account is a bank account owned by exactly one User.
type Account struct {
	Number           int
	OwnerTaxID       string
	Balance          decimal.Decimal
	DailyWithdrawals int // never reset; see DESIGN.md
	History          []Transaction
}

// User is a customer record, keyed by TaxID.
type User struct {
	TaxID     string
	FullName  string
	BirthDate string
	Address   string
}
