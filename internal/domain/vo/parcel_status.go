package vo

// ParcelPhase represents the coarse lifecycle phase of a parcel (spec §4.1).
// The human-readable status string a caller sees additionally embeds the
// source city name while a parcel sits in PhaseWarehouse (e.g. "Lahore
// Warehouse"); see Parcel.Status for that formatting.
type ParcelPhase string

const (
	PhasePickupQueue      ParcelPhase = "pickup_queue"
	PhaseWarehouse        ParcelPhase = "warehouse"
	PhaseInTransit        ParcelPhase = "in_transit"
	PhaseDelivered        ParcelPhase = "delivered"
	PhaseMissing          ParcelPhase = "missing"
	PhaseDeliveryFailed   ParcelPhase = "delivery_failed"
	PhaseReturning        ParcelPhase = "returning"
	PhaseReturnedToSender ParcelPhase = "returned_to_sender"
)

// String returns the phase's wire/internal representation.
func (p ParcelPhase) String() string {
	return string(p)
}

// IsTerminal reports whether a parcel in this phase has reached an end
// state (spec §4.1: Delivered, ReturnedToSender, MISSING, Delivery Failed).
func (p ParcelPhase) IsTerminal() bool {
	return p == PhaseDelivered || p == PhaseReturnedToSender || p == PhaseMissing || p == PhaseDeliveryFailed
}

// IsInFlight reports whether the parcel currently occupies a rider's
// capacity (counts against Rider.currentLoad).
func (p ParcelPhase) IsInFlight() bool {
	return p == PhaseInTransit || p == PhaseReturning
}

// CanDispatch reports whether a parcel in this phase is eligible for the
// dispatcher to pick up and assign to a rider.
func (p ParcelPhase) CanDispatch() bool {
	return p == PhaseWarehouse
}
