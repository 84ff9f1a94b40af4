package vo

// UndoKind tags the action an UndoRecord can reverse. DISPATCH is the only
// kind the spec defines; the tag exists so the undo log can grow new kinds
// without changing its container type (spec §3, §4.6).
type UndoKind string

const UndoDispatch UndoKind = "DISPATCH"

// UndoRecord is a LIFO entry describing a reversible action.
type UndoRecord struct {
	Kind   UndoKind
	Parcel *Parcel
	Rider  *Rider
}

// NewDispatchUndoRecord builds the undo record pushed by a successful
// dispatch assignment.
func NewDispatchUndoRecord(parcel *Parcel, rider *Rider) UndoRecord {
	return UndoRecord{Kind: UndoDispatch, Parcel: parcel, Rider: rider}
}
