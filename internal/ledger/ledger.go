// Package ledger implements the transaction journal: the append-only,
// insertion-ordered sequence of balance-changing events produced by the
// account ledger as it settles deposits, withdrawals and sends.
package ledger

import (
	"encoding/json"
	"fmt"
)

// Kind tags a Tx as a credit or a debit.
type Kind int

const (
	Deposit Kind = iota
	Withdraw
)

func (k Kind) String() string {
	switch k {
	case Deposit:
		return "Deposit"
	case Withdraw:
		return "Withdraw"
	default:
		return "Unknown"
	}
}

// Tx is a single journal entry: a tagged account/amount pair. It carries no
// timestamp or id of its own — its position in a TxJournal is its identity.
type Tx struct {
	Kind    Kind
	Account string
	Amount  uint64
}

// NewDeposit builds a Deposit entry.
func NewDeposit(account string, amount uint64) Tx {
	return Tx{Kind: Deposit, Account: account, Amount: amount}
}

// NewWithdraw builds a Withdraw entry.
func NewWithdraw(account string, amount uint64) Tx {
	return Tx{Kind: Withdraw, Account: account, Amount: amount}
}

type txBody struct {
	Account string `json:"account"`
	Amount  uint64 `json:"amount"`
}

// MarshalJSON encodes a Tx as a single-key tagged object, e.g.
// {"Deposit":{"account":"ALICE","amount":10}}, matching the wire shape
// callers of the HTTP API expect for every journal entry.
func (t Tx) MarshalJSON() ([]byte, error) {
	body, err := json.Marshal(txBody{Account: t.Account, Amount: t.Amount})
	if err != nil {
		return nil, err
	}
	return []byte(fmt.Sprintf(`{%q:%s}`, t.Kind.String(), body)), nil
}

func (t *Tx) UnmarshalJSON(data []byte) error {
	var raw map[string]txBody
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if body, ok := raw["Deposit"]; ok {
		*t = Tx{Kind: Deposit, Account: body.Account, Amount: body.Amount}
		return nil
	}
	if body, ok := raw["Withdraw"]; ok {
		*t = Tx{Kind: Withdraw, Account: body.Account, Amount: body.Amount}
		return nil
	}
	return fmt.Errorf("ledger: unrecognised tx tag in %s", data)
}

// TxJournal is the append-only, insertion-ordered sequence of executed
// ledger entries. The only write operation is Append; readers enumerate in
// insertion order. Callers (TradingPlatform) serialize access externally —
// TxJournal itself does no locking.
type TxJournal struct {
	entries []Tx
}

// New returns an empty journal.
func New() *TxJournal {
	return &TxJournal{}
}

// Append records tx as the next entry.
func (j *TxJournal) Append(tx Tx) {
	j.entries = append(j.entries, tx)
}

// Entries returns a copy of the journal, oldest first.
func (j *TxJournal) Entries() []Tx {
	out := make([]Tx, len(j.entries))
	copy(out, j.entries)
	return out
}
