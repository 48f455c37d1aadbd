// Package platform implements the TradingPlatform orchestrator: it
// composes the matching engine, the account ledger and the transaction
// journal behind a single exclusive lock, so that every matched trade is
// atomically reflected in account balances and in the journal.
package platform

import (
	"sync"

	"github.com/rs/zerolog/log"

	"fenrir/internal/accounts"
	"fenrir/internal/engine"
	"fenrir/internal/ledger"
)

// TradingPlatform owns the single coherent (engine, accounts, journal)
// tuple described by the concurrency model: every mutating method holds
// mu for its full duration, so the effective order of operations is the
// order in which the lock was acquired.
type TradingPlatform struct {
	mu sync.Mutex

	engine       *engine.MatchingEngine
	accounts     *accounts.Accounts
	transactions *ledger.TxJournal
}

// New returns an empty platform: no accounts, no resting orders, no
// journal entries.
func New() *TradingPlatform {
	return &TradingPlatform{
		engine:       engine.New(),
		accounts:     accounts.New(),
		transactions: ledger.New(),
	}
}

// BalanceOf returns signer's balance, or NotFound if they have never
// deposited.
func (p *TradingPlatform) BalanceOf(signer string) (uint64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.accounts.BalanceOf(signer)
}

// Deposit credits signer's account, creating it on first deposit, and
// journals the resulting entry.
func (p *TradingPlatform) Deposit(signer string, amount uint64) (ledger.Tx, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	tx, err := p.accounts.Deposit(signer, amount)
	if err != nil {
		log.Warn().Str("signer", signer).Uint64("amount", amount).Err(err).Msg("deposit rejected")
		return ledger.Tx{}, err
	}
	p.transactions.Append(tx)
	return tx, nil
}

// Withdraw debits signer's account and journals the resulting entry.
func (p *TradingPlatform) Withdraw(signer string, amount uint64) (ledger.Tx, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	tx, err := p.accounts.Withdraw(signer, amount)
	if err != nil {
		log.Warn().Str("signer", signer).Uint64("amount", amount).Err(err).Msg("withdraw rejected")
		return ledger.Tx{}, err
	}
	p.transactions.Append(tx)
	return tx, nil
}

// Send transfers amount from sender to recipient, journalling the
// withdraw entry before the deposit entry.
func (p *TradingPlatform) Send(sender, recipient string, amount uint64) (ledger.Tx, ledger.Tx, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	w, d, err := p.accounts.Send(sender, recipient, amount)
	if err != nil {
		log.Warn().Str("sender", sender).Str("recipient", recipient).Uint64("amount", amount).Err(err).Msg("send rejected")
		return ledger.Tx{}, ledger.Tx{}, err
	}
	p.transactions.Append(w)
	p.transactions.Append(d)
	return w, d, nil
}

// SubmitOrder pre-checks the signer's funds, runs the order through the
// matching engine, and settles every resulting match through the account
// ledger. For a Buy order the cost check (amount*price) is required and
// economically meaningful; for a Sell order the same check is applied as
// a conservative safety net (spec design note: sellers don't strictly
// need cash, but the check is preserved rather than special-cased away).
func (p *TradingPlatform) SubmitOrder(order engine.Order) (engine.Receipt, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	balance, err := p.accounts.BalanceOf(order.Signer)
	if err != nil {
		log.Warn().Str("signer", order.Signer).Err(err).Msg("submit_order: unknown signer")
		return engine.Receipt{}, err
	}

	cost, ok := checkedMul(order.Amount, order.Price)
	if !ok || cost > balance {
		log.Warn().Str("signer", order.Signer).Uint64("amount", order.Amount).Uint64("price", order.Price).Msg("submit_order: underfunded")
		return engine.Receipt{}, &accounts.AccountError{Kind: accounts.UnderFunded, Signer: order.Signer}
	}

	receipt := p.engine.Process(order)

	for _, m := range receipt.Matches {
		realized := m.Amount * m.Price

		var w, d ledger.Tx
		var sendErr error
		switch order.Side {
		case engine.Buy:
			w, d, sendErr = p.accounts.Send(order.Signer, m.Signer, realized)
		case engine.Sell:
			w, d, sendErr = p.accounts.Send(m.Signer, order.Signer, realized)
		}
		if sendErr != nil {
			// No rollback: the engine's book is already mutated and any
			// earlier matches in this receipt have already settled. See
			// the concurrency/settlement design note.
			log.Error().Err(sendErr).Uint64("ordinal", receipt.Ordinal).Str("counterparty", m.Signer).Msg("submit_order: settlement failed mid-receipt")
			return receipt, sendErr
		}
		p.transactions.Append(w)
		p.transactions.Append(d)
	}

	return receipt, nil
}

// OrderBook returns a flattened snapshot of every resting order across
// both sides of the book.
func (p *TradingPlatform) OrderBook() []engine.PartialOrder {
	p.mu.Lock()
	defer p.mu.Unlock()

	book := make([]engine.PartialOrder, 0, len(p.engine.Asks())+len(p.engine.Bids()))
	book = append(book, p.engine.Asks()...)
	book = append(book, p.engine.Bids()...)
	return book
}

// Transactions returns the journal in insertion order.
func (p *TradingPlatform) Transactions() []ledger.Tx {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.transactions.Entries()
}

// checkedMul reports a*b and whether the multiplication overflowed a
// uint64. An overflowing cost is treated as unaffordable by any balance,
// which folds naturally into the UnderFunded path in SubmitOrder.
func checkedMul(a, b uint64) (uint64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	product := a * b
	if product/a != b {
		return 0, false
	}
	return product, true
}
