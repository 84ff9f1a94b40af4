package services

import (
	"fmt"

	"github.com/swiftex-sim/swiftex/internal/domain/vo"
)

// Dispatch runs the two-pass capacity-constrained assignment over the
// entire warehouse heap (spec §4.4).
func (e *Engine) Dispatch() DispatchReport {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.tick(e.now())

	var deferred []*vo.Parcel
	report := DispatchReport{}

	for e.warehouse.Len() > 0 {
		p := e.warehouse.Pop()

		rider := e.firstIdleThatCanCarry(p.Weight())
		if rider == nil {
			rider = e.firstAnyThatCanCarry(p.Weight())
		}

		if rider == nil {
			deferred = append(deferred, p)

			continue
		}

		e.assign(p, rider)
		report.Dispatched++
	}

	for _, p := range deferred {
		_ = e.warehouse.Push(p)
	}
	report.Deferred = len(deferred)

	return report
}

// firstIdleThatCanCarry implements dispatcher pass 1: the first Idle rider,
// in fleet order, that has capacity for weight.
func (e *Engine) firstIdleThatCanCarry(weight float64) *vo.Rider {
	for _, r := range e.fleet {
		if r.State() == vo.RiderIdle && r.CanCarry(weight) {
			return r
		}
	}

	return nil
}

// firstAnyThatCanCarry implements dispatcher pass 2: the first rider,
// Idle or Busy, in fleet order, that has capacity for weight.
func (e *Engine) firstAnyThatCanCarry(weight float64) *vo.Rider {
	for _, r := range e.fleet {
		if r.CanCarry(weight) {
			return r
		}
	}

	return nil
}

func (e *Engine) assign(p *vo.Parcel, r *vo.Rider) {
	_ = r.AssignLoad(p.Weight())

	now := e.now()
	p.Dispatch(r.Name(), now)
	e.emitLifecycle(p)

	e.transitList = append(e.transitList, p)
	e.undoStack = append(e.undoStack, vo.NewDispatchUndoRecord(p, r))
}

// UndoLast pops the most recent undo record and reverses it (spec §4.6).
// Only DISPATCH is ever pushed today, but the switch is written open for
// future undo kinds.
func (e *Engine) UndoLast() (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.undoStack) == 0 {
		return "", ErrUndoStackEmpty
	}

	record := e.undoStack[len(e.undoStack)-1]
	e.undoStack = e.undoStack[:len(e.undoStack)-1]

	switch record.Kind {
	case vo.UndoDispatch:
		return e.undoDispatch(record)
	default:
		return "", fmt.Errorf("unknown undo kind: %s", record.Kind)
	}
}

func (e *Engine) undoDispatch(record vo.UndoRecord) (string, error) {
	idx := -1
	for i, p := range e.transitList {
		if p == record.Parcel {
			idx = i

			break
		}
	}

	if idx < 0 {
		return "", fmt.Errorf("%w: parcel %d", ErrUndoParcelNotInTransit, record.Parcel.ID())
	}

	e.transitList = append(e.transitList[:idx], e.transitList[idx+1:]...)

	record.Rider.ReleaseLoadClamped(record.Parcel.Weight())
	record.Parcel.UndoDispatch(e.now())
	e.emitLifecycle(record.Parcel)
	_ = e.warehouse.Push(record.Parcel)

	return fmt.Sprintf("undo dispatch of parcel %d from %s", record.Parcel.ID(), record.Rider.Name()), nil
}
