package services

import (
	"time"

	"github.com/swiftex-sim/swiftex/internal/domain/vo"
)

// blockedFailureThreshold is the fraction of estimatedDuration after which
// a parcel known to be on a blocked route is returned to the warehouse
// (spec §4.1 rule 2, §9 open question (b): "keep it exactly 20% for
// behavior parity").
const blockedFailureThreshold = 0.2

// tick runs one simulation pass over the transit list in list order
// (spec §4.5). Callers must hold e.mu.
func (e *Engine) tick(now time.Time) {
	kept := e.transitList[:0:0]

	for _, p := range e.transitList {
		if p.Phase() != vo.PhaseInTransit && p.Phase() != vo.PhaseReturning {
			kept = append(kept, p)

			continue
		}

		if p.Phase() == vo.PhaseInTransit && p.IsStale(now) {
			p.MarkMissing(now)
			e.emitLifecycle(p)

			continue
		}

		if p.Phase() == vo.PhaseInTransit && p.WillFailOnPath() && now.Sub(p.DispatchTime()) > time.Duration(float64(p.EstimatedDuration())*blockedFailureThreshold) {
			if r := e.riderByName(p.AssignedRiderName()); r != nil {
				_ = r.ReleaseLoad(p.Weight())
			}
			p.ReturnToWarehouseOnFailure(now)
			e.emitLifecycle(p)
			_ = e.warehouse.Push(p)

			continue
		}

		if now.Sub(p.DispatchTime()) >= p.EstimatedDuration() {
			if p.Phase() == vo.PhaseReturning {
				p.MarkReturnedToSender(now)
			} else {
				p.MarkDelivered(now)
			}
			e.emitLifecycle(p)

			if r := e.riderByName(p.AssignedRiderName()); r != nil {
				_ = r.ReleaseLoad(p.Weight())
			}

			e.archive.Insert(p)

			continue
		}

		kept = append(kept, p)
	}

	e.transitList = kept
}

func (e *Engine) riderByName(name string) *vo.Rider {
	for _, r := range e.fleet {
		if r.Name() == name {
			return r
		}
	}

	return nil
}
