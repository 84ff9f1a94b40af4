package services

import "errors"

var (
	ErrDuplicateParcelID      = errors.New("parcel id already registered")
	ErrParcelNotFound         = errors.New("parcel not found")
	ErrNoRouteAvailable       = errors.New("no route available between source and destination")
	ErrWarehouseFull          = errors.New("warehouse heap is at capacity")
	ErrUndoStackEmpty         = errors.New("undo log is empty")
	ErrUndoParcelNotInTransit = errors.New("parcel is no longer in transit; undo could not be applied")
	ErrUnknownListFilter      = errors.New("unknown list filter")
)
