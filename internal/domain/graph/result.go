package graph

import "github.com/swiftex-sim/swiftex/internal/domain/vo"

// Result is the outcome of a shortest-path or alternative-path search
// (spec §4.3). It is a plain snapshot, not a vo value object: the graph
// memoizes it in its route cache, IsRoutable reads its Valid flag, and the
// engine reads it at registration time to populate a Parcel's route fields
// via Parcel.SetRoute.
type Result struct {
	Valid         bool
	TotalDistance int
	Path          vo.PathDescription
	IsBlocked     bool
	IsTraffic     bool
}

func invalidResult() Result {
	return Result{Valid: false}
}
