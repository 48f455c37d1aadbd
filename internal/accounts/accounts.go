// Package accounts implements the account ledger: per-signer balances
// with checked deposit/withdraw/send operations.
package accounts

import (
	"fmt"

	"fenrir/internal/ledger"
)

// ErrorKind classifies an AccountError.
type ErrorKind int

const (
	NotFound ErrorKind = iota
	UnderFunded
	OverFunded
)

// AccountError is returned by every ledger operation that fails. It
// carries enough structure for a caller to distinguish the three cases
// without string matching, and marshals cleanly for the HTTP boundary.
type AccountError struct {
	Kind   ErrorKind `json:"kind"`
	Signer string    `json:"signer"`
	Amount uint64    `json:"amount,omitempty"`
}

func (e *AccountError) Error() string {
	switch e.Kind {
	case NotFound:
		return fmt.Sprintf("account not found: %s", e.Signer)
	case UnderFunded:
		return fmt.Sprintf("account underfunded: %s", e.Signer)
	case OverFunded:
		return fmt.Sprintf("account overfunded: %s by %d", e.Signer, e.Amount)
	default:
		return "unknown account error"
	}
}

func errNotFound(signer string) error    { return &AccountError{Kind: NotFound, Signer: signer} }
func errUnderFunded(signer string) error { return &AccountError{Kind: UnderFunded, Signer: signer} }
func errOverFunded(signer string, amount uint64) error {
	return &AccountError{Kind: OverFunded, Signer: signer, Amount: amount}
}

// Accounts is a map-backed ledger of signer balances.
type Accounts struct {
	balances map[string]uint64
}

// New returns an empty ledger.
func New() *Accounts {
	return &Accounts{balances: make(map[string]uint64)}
}

// BalanceOf returns the current balance of signer, or NotFound if the
// account has never received a deposit.
func (a *Accounts) BalanceOf(signer string) (uint64, error) {
	balance, ok := a.balances[signer]
	if !ok {
		return 0, errNotFound(signer)
	}
	return balance, nil
}

// Deposit credits amount to signer, creating the account on first deposit.
// Returns OverFunded if the balance would overflow a uint64.
func (a *Accounts) Deposit(signer string, amount uint64) (ledger.Tx, error) {
	balance, ok := a.balances[signer]
	if !ok {
		a.balances[signer] = amount
		return ledger.NewDeposit(signer, amount), nil
	}
	sum := balance + amount
	if sum < balance {
		return ledger.Tx{}, errOverFunded(signer, amount)
	}
	a.balances[signer] = sum
	return ledger.NewDeposit(signer, amount), nil
}

// Withdraw debits amount from signer. Returns NotFound if the account
// doesn't exist, UnderFunded if the balance is insufficient.
func (a *Accounts) Withdraw(signer string, amount uint64) (ledger.Tx, error) {
	balance, ok := a.balances[signer]
	if !ok {
		return ledger.Tx{}, errNotFound(signer)
	}
	if amount > balance {
		return ledger.Tx{}, errUnderFunded(signer)
	}
	a.balances[signer] = balance - amount
	return ledger.NewWithdraw(signer, amount), nil
}

// Send withdraws amount from sender and deposits it to recipient. If the
// withdraw fails, the recipient's balance is left untouched; if the
// deposit fails (recipient overflow), the withdraw has already committed.
func (a *Accounts) Send(sender, recipient string, amount uint64) (ledger.Tx, ledger.Tx, error) {
	w, err := a.Withdraw(sender, amount)
	if err != nil {
		return ledger.Tx{}, ledger.Tx{}, err
	}
	d, err := a.Deposit(recipient, amount)
	if err != nil {
		return w, ledger.Tx{}, err
	}
	return w, d, nil
}
