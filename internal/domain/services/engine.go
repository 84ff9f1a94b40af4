package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/swiftex-sim/swiftex/internal/domain/graph"
	"github.com/swiftex-sim/swiftex/internal/domain/vo"
)

// Clock returns the current time. Injectable so scenarios that depend on
// elapsed simulated time (missing detection, delivery completion) can be
// driven deterministically in tests.
type Clock func() time.Time

// Engine owns the entire simulation state: the road graph, the parcel
// pipeline containers, the fleet and the undo log. It is single-threaded
// and cooperative by contract — the mutex below exists only because this
// engine is hosted inside a concurrent process (a Kafka gateway goroutine
// and a ticker goroutine both call into it) around otherwise sequential
// state.
type Engine struct {
	mu sync.Mutex

	clock Clock

	graph *graph.Graph

	masterList  []*vo.Parcel
	pickupQueue []*vo.Parcel
	warehouse   *Warehouse
	transitList []*vo.Parcel
	archive     *Archive
	tracking    *Tracking

	fleet     []*vo.Rider
	undoStack []vo.UndoRecord

	lifecycleSink LifecycleSink
}

// LifecycleSink receives one notification per parcel history append
// (registered, dispatched, delivered, failed, missing, returned, undone).
// The DI layer wires this to kafka.LifecyclePublisher.PublishLifecycle
// (SPEC_FULL §4); the Engine itself stays transport-agnostic.
type LifecycleSink func(parcelID int, status, message string, at time.Time)

// NewEngine constructs an Engine with the default seed network and fleet.
func NewEngine(clock Clock) (*Engine, error) {
	g, err := graph.New()
	if err != nil {
		return nil, fmt.Errorf("construct graph: %w", err)
	}
	if err := SeedNetwork(g); err != nil {
		return nil, fmt.Errorf("seed network: %w", err)
	}

	return &Engine{
		clock:     clock,
		graph:     g,
		warehouse: NewWarehouse(),
		archive:   NewArchive(),
		tracking:  NewTracking(),
		fleet:     SeedFleet(),
	}, nil
}

func (e *Engine) now() time.Time {
	return e.clock()
}

// SetLifecycleSink registers the notification hook called once per parcel
// history append. Pass nil to disable. Safe to call at any time.
func (e *Engine) SetLifecycleSink(sink LifecycleSink) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.lifecycleSink = sink
}

// emitLifecycle notifies the lifecycle sink, if any, of p's most recent
// history append. Callers must hold e.mu.
func (e *Engine) emitLifecycle(p *vo.Parcel) {
	if e.lifecycleSink == nil {
		return
	}

	msg, ok := p.LastHistoryMessage()
	if !ok {
		return
	}

	e.lifecycleSink(p.ID(), p.Status(), msg, p.LastUpdate())
}

// RegisterParcel validates and registers a new parcel (spec §4.2).
func (e *Engine) RegisterParcel(id, sourceCityID, destCityID int, weight float64, priorityLevel int, preferAlternative bool) (CostBreakdown, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.tick(e.now())

	if e.tracking.Has(id) {
		return CostBreakdown{}, fmt.Errorf("%w: %d", ErrDuplicateParcelID, id)
	}

	source, ok := e.graph.City(sourceCityID)
	if !ok {
		return CostBreakdown{}, fmt.Errorf("%w: source %d", graph.ErrCityNotPresent, sourceCityID)
	}
	dest, ok := e.graph.City(destCityID)
	if !ok {
		return CostBreakdown{}, fmt.Errorf("%w: dest %d", graph.ErrCityNotPresent, destCityID)
	}

	priority, err := vo.NewPriority(priorityLevel)
	if err != nil {
		return CostBreakdown{}, err
	}

	recommended := e.graph.ShortestPath(sourceCityID, destCityID)
	alternative := e.graph.AlternativePath(sourceCityID, destCityID)
	if !recommended.Valid {
		return CostBreakdown{}, fmt.Errorf("%w: %d -> %d", ErrNoRouteAvailable, sourceCityID, destCityID)
	}

	chosen := recommended
	if preferAlternative && alternative.Valid {
		chosen = alternative
	}

	now := e.now()
	p, err := vo.NewParcel(id, source, dest, weight, priority, now)
	if err != nil {
		return CostBreakdown{}, err
	}
	e.emitLifecycle(p)
	p.SetRoute(chosen.Path.String(), chosen.TotalDistance, chosen.IsBlocked, now)

	e.masterList = append(e.masterList, p)
	e.pickupQueue = append(e.pickupQueue, p)
	e.tracking.Put(p)
	e.emitLifecycle(p)

	altDesc := ""
	if alternative.Valid {
		altDesc = alternative.Path.String()
	}

	return CostBreakdown{
		ParcelID:          p.ID(),
		Cost:              p.Cost(),
		TotalDistance:     p.TotalDistance(),
		EstimatedDuration: p.EstimatedDuration(),
		RouteDescription:  p.RouteDescription(),
		AlternativeRoute:  altDesc,
		WillFailOnPath:    p.WillFailOnPath(),
	}, nil
}

// ProcessPickupQueue drains the pickup FIFO into the warehouse heap,
// transitioning each parcel's status to "<source> Warehouse" (spec §4.7).
func (e *Engine) ProcessPickupQueue() (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.tick(e.now())

	moved := 0
	for len(e.pickupQueue) > 0 {
		p := e.pickupQueue[0]
		if err := e.warehouse.Push(p); err != nil {
			return moved, err
		}
		e.pickupQueue = e.pickupQueue[1:]
		p.MoveToWarehouse(e.now())
		e.emitLifecycle(p)
		moved++
	}

	return moved, nil
}

// Track returns a snapshot of the parcel with the given id.
func (e *Engine) Track(id int) (ParcelSnapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.tick(e.now())

	p, ok := e.tracking.Get(id)
	if !ok {
		return ParcelSnapshot{}, fmt.Errorf("%w: %d", ErrParcelNotFound, id)
	}

	return snapshotParcel(p), nil
}

// List returns snapshots of parcels matching filter (spec §4.7).
func (e *Engine) List(filter ListFilter) ([]ParcelSnapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.tick(e.now())

	var parcels []*vo.Parcel
	switch filter {
	case ListAll:
		// e.masterList, not e.tracking.All(): the tracking index is a map,
		// whose iteration order is nondeterministic, which would violate
		// spec §6's "ordered snapshot of parcels matching filter". The
		// master list preserves registration order.
		parcels = e.masterList
	case ListTransit:
		parcels = e.transitList
	case ListWarehouse:
		parcels = e.warehouse.All()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownListFilter, filter)
	}

	out := make([]ParcelSnapshot, len(parcels))
	for i, p := range parcels {
		out[i] = snapshotParcel(p)
	}

	return out, nil
}

// ViewHeapPreview returns up to k (capped at HeapPreviewLimit) top-of-heap
// entries without draining the warehouse.
func (e *Engine) ViewHeapPreview(k int) []ParcelSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.tick(e.now())

	parcels := e.warehouse.Preview(k)
	out := make([]ParcelSnapshot, len(parcels))
	for i, p := range parcels {
		out[i] = snapshotParcel(p)
	}

	return out
}

// ViewFleet returns a snapshot of every rider.
func (e *Engine) ViewFleet() []RiderSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.tick(e.now())

	out := make([]RiderSnapshot, len(e.fleet))
	for i, r := range e.fleet {
		out[i] = snapshotRider(r)
	}

	return out
}

// MissingReport scans the master list for parcels already declared MISSING
// plus non-terminal parcels that have exceeded MISSING_THRESHOLD since their
// last update (spec §4.7, §8 scenario 5). A parcel the tick just marked
// MISSING must still surface here even though MarkMissing both moves it to
// a terminal phase and stamps lastUpdate to now, which would otherwise make
// IsStale false again.
func (e *Engine) MissingReport() []ParcelSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	e.tick(now)

	var out []ParcelSnapshot
	for _, p := range e.masterList {
		if p.Phase() == vo.PhaseMissing || (!p.Phase().IsTerminal() && p.IsStale(now)) {
			out = append(out, snapshotParcel(p))
		}
	}

	return out
}

// ArchiveInOrder returns every archived parcel ordered by id (spec §4.7).
func (e *Engine) ArchiveInOrder() []ParcelSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.tick(e.now())

	parcels := e.archive.InOrder()
	out := make([]ParcelSnapshot, len(parcels))
	for i, p := range parcels {
		out[i] = snapshotParcel(p)
	}

	return out
}

// Analytics reports totals by status and revenue summed over delivered
// parcels (spec §4.7, §6).
func (e *Engine) Analytics() AnalyticsReport {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.tick(e.now())

	report := AnalyticsReport{Total: len(e.masterList)}
	for _, p := range e.masterList {
		switch p.Phase() {
		case vo.PhaseDelivered:
			report.Delivered++
			report.Revenue += p.Cost()
		case vo.PhaseMissing, vo.PhaseDeliveryFailed:
			report.Failed++
		case vo.PhaseInTransit:
			report.Transit++
		}
	}

	return report
}

// SetRoadStatus updates a road's status and reconciles the transit list:
// any in-flight parcel whose route is no longer routable is flagged
// willFailOnPath so the next tick reroutes it to failure (spec §4.3).
func (e *Engine) SetRoadStatus(u, v int, status vo.RoadStatus) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.graph.SetRoadStatus(u, v, status); err != nil {
		return err
	}

	for _, p := range e.transitList {
		if p.Phase() != vo.PhaseInTransit {
			continue
		}
		if !e.graph.IsRoutable(p.Source().ID(), p.Dest().ID()) {
			p.SetWillFailOnPath(true)
		}
	}

	return nil
}

// ResetDay clears every rider's load and returns them to Idle; parcels are
// untouched (spec §4.7).
func (e *Engine) ResetDay() {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, r := range e.fleet {
		_ = r.ReleaseLoad(r.CurrentLoad())
	}
}

// Tick runs one simulation pass (spec §4.5), acquiring the engine lock.
func (e *Engine) Tick() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.tick(e.now())
}
