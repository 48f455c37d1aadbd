// Package engine implements the price/time-priority matching engine: a
// two-sided order book keyed by price, with price-time priority settled by
// an engine-issued ordinal.
package engine

// Side is which way an order wants to trade.
type Side int

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	switch s {
	case Buy:
		return "Buy"
	case Sell:
		return "Sell"
	default:
		return "Unknown"
	}
}

func (s Side) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

func (s *Side) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"Sell"`:
		*s = Sell
	default:
		*s = Buy
	}
	return nil
}

// Order is what a caller submits: a price, an amount and a side, signed by
// an account. Orders carry no identity of their own; the engine assigns an
// ordinal once the order is accepted.
type Order struct {
	Price  uint64 `json:"price"`
	Amount uint64 `json:"amount"`
	Side   Side   `json:"side"`
	Signer string `json:"signer"`
}

// intoPartialOrder stamps an accepted Order with its ordinal, turning it
// into a book entry.
func (o Order) intoPartialOrder(ordinal uint64) *PartialOrder {
	return &PartialOrder{
		Price:     o.Price,
		Amount:    o.Amount,
		Remaining: o.Amount,
		Side:      o.Side,
		Signer:    o.Signer,
		Ordinal:   ordinal,
	}
}

// PartialOrder is an order resting in, or matched out of, the book.
// Invariant: for any PartialOrder resting in the book, Amount == Remaining.
type PartialOrder struct {
	Price     uint64 `json:"price"`
	Amount    uint64 `json:"amount"`
	Remaining uint64 `json:"remaining"`
	Side      Side   `json:"side"`
	Signer    string `json:"signer"`
	Ordinal   uint64 `json:"ordinal"`
}

// Receipt is issued for every accepted order: its assigned ordinal plus
// whatever resting orders it immediately matched against.
type Receipt struct {
	Ordinal uint64         `json:"ordinal"`
	Matches []PartialOrder `json:"matches"`
}
