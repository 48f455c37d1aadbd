// Package wire holds the request/response DTOs exchanged at the HTTP
// boundary. None of these types are used internally by the engine,
// accounts or platform packages — they exist purely to give the JSON
// surface a stable, documented shape.
package wire

import "fenrir/internal/engine"

// DepositArgs is the body of POST /account/deposit.
type DepositArgs struct {
	Signer string `json:"signer"`
	Amount uint64 `json:"amount"`
}

// WithdrawArgs is the body of POST /account/withdraw.
type WithdrawArgs struct {
	Signer string `json:"signer"`
	Amount uint64 `json:"amount"`
}

// SendArgs is the body of POST /account/send.
type SendArgs struct {
	Signer    string `json:"signer"`
	Recipient string `json:"recipient"`
	Amount    uint64 `json:"amount"`
}

// OrderArgs is the body of POST /submit_order.
type OrderArgs struct {
	Signer string      `json:"signer"`
	Side   engine.Side `json:"side"`
	Price  uint64      `json:"price"`
	Amount uint64      `json:"amount"`
}

// MatchArgs is the body of POST /match_order: an order plus the resting
// books to run it against, with no reference to any persistent platform
// state.
type MatchArgs struct {
	Order engine.Order          `json:"order"`
	Asks  []engine.PartialOrder `json:"asks"`
	Bids  []engine.PartialOrder `json:"bids"`
}

// MatchResult is the response of POST /match_order.
type MatchResult struct {
	Receipt   engine.Receipt        `json:"receipt"`
	OrderBook []engine.PartialOrder `json:"orderbook"`
}
