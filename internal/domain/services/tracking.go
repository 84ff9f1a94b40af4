package services

import "github.com/swiftex-sim/swiftex/internal/domain/vo"

// Tracking is the id -> parcel lookup index (spec §4.7). A Go map already
// gives average O(1) lookup with internal chaining on collision, which is
// exactly what the spec's "fixed-capacity hash-chained index" describes;
// no corpus library offers a purpose-built index abstraction for this, so
// this component is the one deliberately built on the standard library.
type Tracking struct {
	byID map[int]*vo.Parcel
}

// NewTracking constructs an empty Tracking index.
func NewTracking() *Tracking {
	return &Tracking{byID: make(map[int]*vo.Parcel)}
}

// Put indexes a parcel by id.
func (t *Tracking) Put(p *vo.Parcel) {
	t.byID[p.ID()] = p
}

// Get looks up a parcel by id.
func (t *Tracking) Get(id int) (*vo.Parcel, bool) {
	p, ok := t.byID[id]

	return p, ok
}

// Has reports whether id is already tracked.
func (t *Tracking) Has(id int) bool {
	_, ok := t.byID[id]

	return ok
}

// All returns every tracked parcel, order unspecified.
func (t *Tracking) All() []*vo.Parcel {
	out := make([]*vo.Parcel, 0, len(t.byID))
	for _, p := range t.byID {
		out = append(out, p)
	}

	return out
}
