package engine

import "github.com/tidwall/btree"

// priceLevel is every resting order at one price, FIFO by ordinal.
type priceLevel struct {
	price uint64
	heap  *ordinalHeap
}

type priceLevels = btree.BTreeG[*priceLevel]

// bookSide is one side (bids or asks) of the order book: a price-indexed
// ordered set of priceLevel entries, each an ordinal-ordered min-heap.
// Both sides are kept in ascending price order; walk direction per side is
// decided by the caller (see engine.go).
type bookSide struct {
	levels *priceLevels
}

func newBookSide() bookSide {
	return bookSide{
		levels: btree.NewBTreeG(func(a, b *priceLevel) bool {
			return a.price < b.price
		}),
	}
}

// rest inserts an order onto this side of the book at its price.
func (b *bookSide) rest(o *PartialOrder) {
	level, ok := b.levels.GetMut(&priceLevel{price: o.Price})
	if !ok {
		level = &priceLevel{price: o.Price, heap: newOrdinalHeap()}
		b.levels.Set(level)
	}
	level.pushBack(o)
}

func (l *priceLevel) pushBack(o *PartialOrder) { l.heap.pushBack(o) }

// levelFrom returns the lowest-priced non-empty level at or above floor.
func (b *bookSide) levelFrom(floor uint64) (*priceLevel, bool) {
	var found *priceLevel
	b.levels.Ascend(&priceLevel{price: floor}, func(item *priceLevel) bool {
		found = item
		return false
	})
	return found, found != nil
}

func (b *bookSide) deleteIfEmpty(l *priceLevel) {
	if l.heap.Len() == 0 {
		b.levels.Delete(l)
	}
}

// Len reports the number of distinct (non-empty) price levels on this side.
func (b *bookSide) Len() int { return b.levels.Len() }

// Snapshot returns every resting order on this side, grouped by level, in
// ascending price order. Used for the read-only orderbook view.
func (b *bookSide) Snapshot() []PartialOrder {
	var out []PartialOrder
	b.levels.Scan(func(l *priceLevel) bool {
		for _, o := range l.heap.items() {
			out = append(out, *o)
		}
		return true
	})
	return out
}
