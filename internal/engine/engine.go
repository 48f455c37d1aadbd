package engine

// MatchingEngine holds the two-sided book and assigns ordinals to accepted
// orders. It is not safe for concurrent use; callers serialize access (see
// the platform package).
type MatchingEngine struct {
	ordinal uint64

	bids bookSide
	asks bookSide

	history []Receipt
}

// New returns an empty MatchingEngine with an ordinal counter at zero.
func New() *MatchingEngine {
	return &MatchingEngine{
		bids: newBookSide(),
		asks: newBookSide(),
	}
}

// NewWithBook seeds a fresh engine with pre-existing resting orders, for
// the stateless match probe. The ordinal counter starts at the highest
// ordinal seen in either book, so any newly matched order still sorts
// after everything already resting.
func NewWithBook(asks, bids []PartialOrder) *MatchingEngine {
	e := New()
	var maxOrdinal uint64
	for _, o := range asks {
		order := o
		e.asks.rest(&order)
		if order.Ordinal > maxOrdinal {
			maxOrdinal = order.Ordinal
		}
	}
	for _, o := range bids {
		order := o
		e.bids.rest(&order)
		if order.Ordinal > maxOrdinal {
			maxOrdinal = order.Ordinal
		}
	}
	e.ordinal = maxOrdinal
	return e
}

// Ordinal returns the last ordinal issued.
func (e *MatchingEngine) Ordinal() uint64 { return e.ordinal }

// Asks returns a snapshot of the resting ask side.
func (e *MatchingEngine) Asks() []PartialOrder { return e.asks.Snapshot() }

// Bids returns a snapshot of the resting bid side.
func (e *MatchingEngine) Bids() []PartialOrder { return e.bids.Snapshot() }

// History returns every receipt issued so far, oldest first.
func (e *MatchingEngine) History() []Receipt { return e.history }

// Process accepts an order, matches it against the opposite side of the
// book and rests whatever remains, returning a Receipt describing the
// immediate matches.
func (e *MatchingEngine) Process(order Order) Receipt {
	e.ordinal++
	ordinal := e.ordinal

	partial := order.intoPartialOrder(ordinal)
	originalAmount := partial.Amount

	var matches []PartialOrder
	switch partial.Side {
	case Buy:
		// Buy walks asks from the cheapest ask upward, up to the taker's
		// limit price.
		matches = matchAgainst(partial, &e.asks, 0, func(levelPrice uint64) bool {
			return levelPrice <= partial.Price
		})
	case Sell:
		// Sell walks bids ascending, starting at the taker's limit price.
		// Resolved open question: ascending on both sides, for symmetry.
		matches = matchAgainst(partial, &e.bids, partial.Price, func(levelPrice uint64) bool {
			return levelPrice >= partial.Price
		})
	}

	matchedAmount := uint64(0)
	for _, m := range matches {
		matchedAmount += m.Amount
	}

	if matchedAmount < originalAmount {
		partial.Remaining = originalAmount - matchedAmount
		partial.Amount = partial.Remaining
		switch partial.Side {
		case Buy:
			e.bids.rest(partial)
		case Sell:
			e.asks.rest(partial)
		}
	}

	receipt := Receipt{Ordinal: ordinal, Matches: matches}
	e.history = append(e.history, receipt)
	return receipt
}

// matchAgainst walks a book side one level at a time, ascending in price
// from floor, popping the oldest resting order in each level until the
// taker is filled or no more qualifying liquidity remains.
//
// qualifies reports whether a level at the given price still qualifies for
// this taker. Every level is visited at most once: floor always advances
// past a level once it has been drained, even when every order in it
// belonged to the taker — a level made up entirely of the taker's own
// resting orders must not be revisited, or the taker would never finish.
func matchAgainst(taker *PartialOrder, side *bookSide, floor uint64, qualifies func(price uint64) bool) []PartialOrder {
	var matches []PartialOrder

	for taker.Remaining > 0 {
		level, ok := side.levelFrom(floor)
		if !ok || !qualifies(level.price) {
			break
		}
		floor = level.price + 1

		var returns []*PartialOrder
		for taker.Remaining > 0 && level.heap.Len() > 0 {
			entry := level.heap.popMin()

			if entry.Signer == taker.Signer {
				returns = append(returns, entry)
				continue
			}

			if taker.Remaining >= entry.Remaining {
				take := entry.Remaining
				entry.Remaining = 0
				taker.Remaining -= take
				matches = append(matches, *entry)
			} else {
				take := taker.Remaining
				record := *entry
				entry.Remaining -= take
				record.Remaining = entry.Remaining
				matches = append(matches, record)

				residual := *entry
				residual.Amount = residual.Remaining
				returns = append(returns, &residual)
				taker.Remaining = 0
			}
		}

		for _, r := range returns {
			level.heap.pushBack(r)
		}
		side.deleteIfEmpty(level)

		if floor == 0 {
			// The level just visited was at the largest uint64 price and
			// floor wrapped; there is no higher level left to walk.
			break
		}
	}

	return matches
}
