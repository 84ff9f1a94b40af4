package services

import (
	"time"

	"github.com/swiftex-sim/swiftex/internal/domain/vo"
)

// ListFilter selects which parcels list() returns (spec §4.7).
type ListFilter string

const (
	ListAll       ListFilter = "ALL"
	ListTransit   ListFilter = "TRANSIT"
	ListWarehouse ListFilter = "WAREHOUSE"
)

// ParcelSnapshot is a defensive, read-only copy of a parcel's visible state
// (spec §6: "Reports returned to the UI are snapshots ... not live
// references into engine state").
type ParcelSnapshot struct {
	ID                int
	Source            string
	Dest              string
	Weight            float64
	WeightCategory    string
	Priority          vo.Priority
	Status            string
	RouteDescription  string
	TotalDistance     int
	EstimatedDuration time.Duration
	WillFailOnPath    bool
	AssignedRider     string
	Cost              float64
	CreatedAt         time.Time
	LastUpdate        time.Time
	DispatchTime      time.Time
	History           []string
}

func snapshotParcel(p *vo.Parcel) ParcelSnapshot {
	events := p.History()
	history := make([]string, len(events))
	for i, e := range events {
		history[i] = e.String()
	}

	return ParcelSnapshot{
		ID:                p.ID(),
		Source:            p.Source().Name(),
		Dest:              p.Dest().Name(),
		Weight:            p.Weight(),
		WeightCategory:    p.WeightCategory(),
		Priority:          p.Priority(),
		Status:            p.Status(),
		RouteDescription:  p.RouteDescription(),
		TotalDistance:     p.TotalDistance(),
		EstimatedDuration: p.EstimatedDuration(),
		WillFailOnPath:    p.WillFailOnPath(),
		AssignedRider:     p.AssignedRiderName(),
		Cost:              p.Cost(),
		CreatedAt:         p.CreatedAt(),
		LastUpdate:        p.LastUpdate(),
		DispatchTime:      p.DispatchTime(),
		History:           history,
	}
}

// RiderSnapshot is a defensive copy of a rider's visible state.
type RiderSnapshot struct {
	ID          int
	Name        string
	VehicleType string
	Capacity    float64
	CurrentLoad float64
	State       vo.RiderState
}

func snapshotRider(r *vo.Rider) RiderSnapshot {
	return RiderSnapshot{
		ID:          r.ID(),
		Name:        r.Name(),
		VehicleType: r.VehicleType(),
		Capacity:    r.Capacity(),
		CurrentLoad: r.CurrentLoad(),
		State:       r.State(),
	}
}

// CostBreakdown is returned on successful registration (spec §4.2, §6).
type CostBreakdown struct {
	ParcelID          int
	Cost              float64
	TotalDistance     int
	EstimatedDuration time.Duration
	RouteDescription  string
	AlternativeRoute  string
	WillFailOnPath    bool
}

// DispatchReport summarizes one dispatch() call (spec §6).
type DispatchReport struct {
	Dispatched int
	Deferred   int
}

// AnalyticsReport is the totals-by-status summary (spec §4.7, §6).
type AnalyticsReport struct {
	Total     int
	Delivered int
	Failed    int
	Transit   int
	Revenue   float64
}
