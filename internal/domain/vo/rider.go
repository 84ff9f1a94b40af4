package vo

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRiderCapacity = errors.New("rider capacity must be positive")
	ErrRiderNameEmpty       = errors.New("rider name must not be empty")
	ErrRiderOverCapacity    = errors.New("assignment would exceed rider capacity")
	ErrRiderUnderload       = errors.New("release exceeds rider's current load")
)

// RiderState is a rider's availability for new dispatch assignments.
type RiderState string

const (
	RiderIdle RiderState = "idle"
	RiderBusy RiderState = "busy"
)

// Rider is a fleet vehicle that carries parcels between cities. Unlike the
// pure vo value objects, Rider is mutated in place as parcels are assigned
// and released: the fleet slice in the engine holds *Rider, a mutable
// record guarded by its owning service.
type Rider struct {
	id          int
	name        string
	vehicleType string
	capacity    float64
	currentLoad float64
	state       RiderState
}

// NewRider validates and constructs an idle Rider.
func NewRider(id int, name, vehicleType string, capacityKG float64) (*Rider, error) {
	if name == "" {
		return nil, ErrRiderNameEmpty
	}
	if capacityKG <= 0 {
		return nil, fmt.Errorf("%w: got %.2f", ErrInvalidRiderCapacity, capacityKG)
	}

	return &Rider{
		id:          id,
		name:        name,
		vehicleType: vehicleType,
		capacity:    capacityKG,
		state:       RiderIdle,
	}, nil
}

// MustNewRider panics on invalid input; used for seed data and tests.
func MustNewRider(id int, name, vehicleType string, capacityKG float64) *Rider {
	r, err := NewRider(id, name, vehicleType, capacityKG)
	if err != nil {
		panic(err)
	}

	return r
}

func (r *Rider) ID() int {
	return r.id
}

func (r *Rider) Name() string {
	return r.name
}

func (r *Rider) VehicleType() string {
	return r.vehicleType
}

func (r *Rider) Capacity() float64 {
	return r.capacity
}

func (r *Rider) CurrentLoad() float64 {
	return r.currentLoad
}

func (r *Rider) State() RiderState {
	return r.state
}

// RemainingCapacity is how much more weight this rider can carry right now.
func (r *Rider) RemainingCapacity() float64 {
	return r.capacity - r.currentLoad
}

// CanCarry reports whether weight fits in the rider's remaining capacity.
func (r *Rider) CanCarry(weight float64) bool {
	return weight <= r.RemainingCapacity()
}

// AssignLoad adds weight to the rider's current load and marks it Busy.
func (r *Rider) AssignLoad(weight float64) error {
	if !r.CanCarry(weight) {
		return fmt.Errorf("%w: rider %d has %.2f remaining, parcel weighs %.2f", ErrRiderOverCapacity, r.id, r.RemainingCapacity(), weight)
	}

	r.currentLoad += weight
	r.state = RiderBusy

	return nil
}

// ReleaseLoad removes weight from the rider's current load, returning it to
// Idle once nothing remains assigned.
func (r *Rider) ReleaseLoad(weight float64) error {
	if weight > r.currentLoad {
		return fmt.Errorf("%w: rider %d carries %.2f, asked to release %.2f", ErrRiderUnderload, r.id, r.currentLoad, weight)
	}

	r.currentLoad -= weight
	if r.currentLoad == 0 {
		r.state = RiderIdle
	}

	return nil
}

// ReleaseLoadClamped removes weight from the rider's current load, clamping
// to 0 rather than erroring (spec §4.6: undo "subtract its weight from the
// rider's load (clamp to 0 - then Idle)").
func (r *Rider) ReleaseLoadClamped(weight float64) {
	r.currentLoad -= weight
	if r.currentLoad <= 0 {
		r.currentLoad = 0
		r.state = RiderIdle
	}
}
