package services

import (
	"container/heap"
	"fmt"

	"github.com/swiftex-sim/swiftex/internal/domain/vo"
)

// WarehouseHeapCapacity is the hard ceiling on the warehouse buffer
// (spec §9): exceeding it is reported, never silently dropped.
const WarehouseHeapCapacity = 500

// HeapPreviewLimit bounds viewHeapPreview's result size (spec §6).
const HeapPreviewLimit = 10

// warehouseHeap is a container/heap.Interface ordered by vo.Parcel.HeapLess:
// priority ascending, weight descending, id ascending (spec §4.4).
type warehouseHeap []*vo.Parcel

func (h warehouseHeap) Len() int            { return len(h) }
func (h warehouseHeap) Less(i, j int) bool  { return h[i].HeapLess(h[j]) }
func (h warehouseHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *warehouseHeap) Push(x interface{}) { *h = append(*h, x.(*vo.Parcel)) }
func (h *warehouseHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]

	return item
}

// Warehouse is the priority-ordered buffer of parcels awaiting dispatch.
type Warehouse struct {
	heap warehouseHeap
}

// NewWarehouse constructs an empty Warehouse.
func NewWarehouse() *Warehouse {
	w := &Warehouse{heap: make(warehouseHeap, 0)}
	heap.Init(&w.heap)

	return w
}

// Len returns the number of parcels currently buffered.
func (w *Warehouse) Len() int {
	return w.heap.Len()
}

// Push inserts a parcel, enforcing the hard capacity cap.
func (w *Warehouse) Push(p *vo.Parcel) error {
	if w.heap.Len() >= WarehouseHeapCapacity {
		return fmt.Errorf("%w: capacity %d", ErrWarehouseFull, WarehouseHeapCapacity)
	}

	heap.Push(&w.heap, p)

	return nil
}

// Pop extracts the highest-priority, heaviest, oldest parcel. Returns nil
// if empty.
func (w *Warehouse) Pop() *vo.Parcel {
	if w.heap.Len() == 0 {
		return nil
	}

	return heap.Pop(&w.heap).(*vo.Parcel)
}

// Preview returns up to k entries from the top of the heap without
// guaranteeing full sorted order beyond that (spec §6).
func (w *Warehouse) Preview(k int) []*vo.Parcel {
	if k > HeapPreviewLimit {
		k = HeapPreviewLimit
	}
	if k > len(w.heap) {
		k = len(w.heap)
	}
	if k < 0 {
		k = 0
	}

	cp := make(warehouseHeap, len(w.heap))
	copy(cp, w.heap)
	heap.Init(&cp)

	out := make([]*vo.Parcel, 0, k)
	for i := 0; i < k; i++ {
		out = append(out, heap.Pop(&cp).(*vo.Parcel))
	}

	return out
}

// All returns every parcel currently buffered, in no particular order.
func (w *Warehouse) All() []*vo.Parcel {
	out := make([]*vo.Parcel, len(w.heap))
	copy(out, w.heap)

	return out
}
