package engine

import "container/heap"

// ordinalHeap is a min-heap of resting orders at a single price level,
// ordered by ascending ordinal so the oldest order is always popped first.
type ordinalHeap []*PartialOrder

func (h ordinalHeap) Len() int { return len(h) }

func (h ordinalHeap) Less(i, j int) bool { return h[i].Ordinal < h[j].Ordinal }

func (h ordinalHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *ordinalHeap) Push(x any) {
	*h = append(*h, x.(*PartialOrder))
}

func (h *ordinalHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

func newOrdinalHeap() *ordinalHeap {
	h := make(ordinalHeap, 0)
	heap.Init(&h)
	return &h
}

func (h *ordinalHeap) popMin() *PartialOrder {
	return heap.Pop(h).(*PartialOrder)
}

func (h *ordinalHeap) pushBack(o *PartialOrder) {
	heap.Push(h, o)
}

func (h *ordinalHeap) items() []*PartialOrder {
	return []*PartialOrder(*h)
}
