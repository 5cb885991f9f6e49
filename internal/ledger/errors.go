package ledger

import "errors"

var (
	ErrAlreadyExists      = errors.New("user already exists")
	ErrEmptyTaxID         = errors.New("tax id must not be empty")
	ErrUserNotFound       = errors.New("user not found")
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrLimitExceeded      = errors.New("withdrawal limit exceeded")
	ErrDailyCountExceeded = errors.New("daily withdrawal count exceeded")
	ErrSameAccount        = errors.New("cannot transfer to the same account")
)
