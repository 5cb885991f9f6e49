package ledger

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/banco-dev/banco/internal/model"
)

// Store is the in-memory owner of all users and accounts. It is not safe for
// concurrent use.
type Store struct {
	limits Limits
	now    func() time.Time

	users    []*model.User
	byTaxID  map[string]*model.User
	accounts []*model.Account
	byNumber map[int]*model.Account
}

// NewStore creates an empty Store. A nil clock means time.Now.
func NewStore(limits Limits, clock func() time.Time) *Store {
	if clock == nil {
		clock = time.Now
	}
	return &Store{
		limits:   limits,
		now:      clock,
		byTaxID:  make(map[string]*model.User),
		byNumber: make(map[int]*model.Account),
	}
}

// Limits returns the withdrawal limits the store applies.
func (s *Store) Limits() Limits {
	return s.limits
}

// CreateUser registers a new user. It fails with ErrEmptyTaxID for a blank
// taxID and with ErrAlreadyExists if taxID is already registered, leaving
// the store untouched in both cases.
func (s *Store) CreateUser(taxID, fullName, birthDate, address string) (*model.User, error) {
	taxID = strings.TrimSpace(taxID)
	if taxID == "" {
		return nil, ErrEmptyTaxID
	}
	if _, ok := s.byTaxID[taxID]; ok {
		return nil, fmt.Errorf("tax id %s: %w", taxID, ErrAlreadyExists)
	}
	u := &model.User{
		TaxID:     taxID,
		FullName:  fullName,
		BirthDate: birthDate,
		Address:   address,
	}
	s.users = append(s.users, u)
	s.byTaxID[taxID] = u
	return u, nil
}

// FindUser returns the user with taxID.
func (s *Store) FindUser(taxID string) (*model.User, bool) {
	u, ok := s.byTaxID[strings.TrimSpace(taxID)]
	return u, ok
}

// Users returns all users in insertion order.
func (s *Store) Users() []*model.User {
	return slices.Clone(s.users)
}

// CreateAccount opens an account for an existing user. The account number is
// the current account count plus one.
func (s *Store) CreateAccount(ownerTaxID string) (*model.Account, error) {
	owner, ok := s.FindUser(ownerTaxID)
	if !ok {
		return nil, fmt.Errorf("tax id %s: %w", ownerTaxID, ErrUserNotFound)
	}
	acct := &model.Account{
		Number:     len(s.accounts) + 1,
		OwnerTaxID: owner.TaxID,
		Balance:    decimal.Zero,
	}
	s.accounts = append(s.accounts, acct)
	s.byNumber[acct.Number] = acct
	return acct, nil
}

// FindAccount returns the account with number.
func (s *Store) FindAccount(number int) (*model.Account, bool) {
	a, ok := s.byNumber[number]
	return a, ok
}

// Accounts returns all accounts in insertion order.
func (s *Store) Accounts() []*model.Account {
	return slices.Clone(s.accounts)
}

// AccountsOf returns the accounts owned by taxID.
func (s *Store) AccountsOf(taxID string) []*model.Account {
	var result []*model.Account
	for _, a := range s.accounts {
		if a.OwnerTaxID == taxID {
			result = append(result, a)
		}
	}
	return result
}

func (s *Store) account(number int) (*model.Account, error) {
	a, ok := s.byNumber[number]
	if !ok {
		return nil, fmt.Errorf("account %d: %w", number, ErrAccountNotFound)
	}
	return a, nil
}

// Deposit resolves number and applies Deposit with the store clock.
func (s *Store) Deposit(number int, amount decimal.Decimal) (*model.Account, error) {
	acct, err := s.account(number)
	if err != nil {
		return nil, err
	}
	if err := Deposit(acct, amount, s.now()); err != nil {
		return nil, err
	}
	return acct, nil
}

// Withdraw resolves number and applies Withdraw with the store limits.
func (s *Store) Withdraw(number int, amount decimal.Decimal) (*model.Account, error) {
	acct, err := s.account(number)
	if err != nil {
		return nil, err
	}
	if err := Withdraw(acct, amount, s.limits, s.now()); err != nil {
		return nil, err
	}
	return acct, nil
}

// Transfer resolves both numbers and applies Transfer.
func (s *Store) Transfer(from, to int, amount decimal.Decimal) error {
	src, err := s.account(from)
	if err != nil {
		return err
	}
	dst, err := s.account(to)
	if err != nil {
		return err
	}
	return Transfer(src, dst, amount, s.now())
}

// Snapshot is a detached copy of the store contents, used at the
// persistence boundary.
type Snapshot struct {
	Users    []model.User
	Accounts []model.Account
}

// Snapshot copies the store contents. Histories are copied, not shared.
func (s *Store) Snapshot() Snapshot {
	snap := Snapshot{
		Users:    make([]model.User, len(s.users)),
		Accounts: make([]model.Account, len(s.accounts)),
	}
	for i, u := range s.users {
		snap.Users[i] = *u
	}
	for i, a := range s.accounts {
		cp := *a
		cp.History = slices.Clone(a.History)
		snap.Accounts[i] = cp
	}
	return snap
}

// Restore replaces the store contents with snap after validating it. On a
// validation failure the store is left unchanged.
func (s *Store) Restore(snap Snapshot) error {
	if verrs := Validate(snap); len(verrs) > 0 {
		return verrs
	}

	users := make([]*model.User, len(snap.Users))
	byTaxID := make(map[string]*model.User, len(snap.Users))
	for i := range snap.Users {
		u := snap.Users[i]
		users[i] = &u
		byTaxID[u.TaxID] = &u
	}

	accounts := make([]*model.Account, len(snap.Accounts))
	byNumber := make(map[int]*model.Account, len(snap.Accounts))
	for i := range snap.Accounts {
		a := snap.Accounts[i]
		a.History = slices.Clone(a.History)
		accounts[i] = &a
		byNumber[a.Number] = &a
	}

	s.users, s.byTaxID = users, byTaxID
	s.accounts, s.byNumber = accounts, byNumber
	return nil
}
