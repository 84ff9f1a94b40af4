package graph

import (
	"container/heap"
	"fmt"

	"github.com/swiftex-sim/swiftex/internal/domain/vo"
)

// frontierItem is one entry in Dijkstra's priority queue.
type frontierItem struct {
	cityID int
	dist   int
}

// frontier is a min-heap of frontierItem ordered by distance, the same
// container/heap.Interface shape as the corpus's event-ordered scheduling
// heap (smallest key first).
type frontier []frontierItem

func (f frontier) Len() int            { return len(f) }
func (f frontier) Less(i, j int) bool  { return f[i].dist < f[j].dist }
func (f frontier) Swap(i, j int)       { f[i], f[j] = f[j], f[i] }
func (f *frontier) Push(x interface{}) { *f = append(*f, x.(frontierItem)) }
func (f *frontier) Pop() interface{} {
	old := *f
	n := len(old)
	item := old[n-1]
	*f = old[:n-1]

	return item
}

// ShortestPath runs Dijkstra from source to dest with no excluded edge.
func (g *Graph) ShortestPath(source, dest int) Result {
	r, _ := g.shortestPath(source, dest, 0, 0)

	return r
}

// shortestPath runs Dijkstra excluding the edge (excludeU,
// excludeV) and its reverse (spec §4.3), consulting/populating the cache.
func (g *Graph) shortestPath(source, dest, excludeU, excludeV int) (Result, error) {
	key := cacheKey(source, dest, excludeU, excludeV)
	if cached, ok := g.cache.Get(key); ok {
		return cached, nil
	}

	if !g.HasCity(source) || !g.HasCity(dest) {
		return invalidResult(), fmt.Errorf("%w: %d or %d", ErrCityNotPresent, source, dest)
	}

	const inf = int(^uint(0) >> 1)

	dist := map[int]int{source: 0}
	prev := map[int]int{}
	usedBlocked := map[int]bool{}
	usedTraffic := map[int]bool{}
	visited := map[int]bool{}

	pq := &frontier{{cityID: source, dist: 0}}
	heap.Init(pq)

	for pq.Len() > 0 {
		cur := heap.Pop(pq).(frontierItem)
		if visited[cur.cityID] {
			continue
		}
		visited[cur.cityID] = true

		if cur.cityID == dest {
			break
		}

		for _, idx := range g.adjacency[cur.cityID] {
			road := g.roads[idx]
			if road.IsBlocked() {
				continue
			}

			neighbor, ok := road.ConnectsTo(cur.cityID)
			if !ok {
				continue
			}

			if isExcludedEdge(cur.cityID, neighbor, excludeU, excludeV) {
				continue
			}

			weight := road.EffectiveWeight()
			nd := cur.dist + weight

			best, seen := dist[neighbor]
			if !seen || nd < best {
				dist[neighbor] = nd
				prev[neighbor] = cur.cityID
				usedBlocked[neighbor] = road.IsBlocked()
				usedTraffic[neighbor] = road.Status() == vo.RoadTraffic
				heap.Push(pq, frontierItem{cityID: neighbor, dist: nd})
			}
		}
	}

	finalDist, reached := dist[dest]
	if !reached {
		result := invalidResult()
		g.cache.SetWithTTL(key, result, 1, cacheTTL)

		return result, nil
	}

	path := reconstructPath(prev, source, dest)
	names := make([]string, len(path))
	blocked, traffic := false, false
	for i, id := range path {
		c, _ := g.City(id)
		names[i] = c.Name()
		if usedBlocked[id] {
			blocked = true
		}
		if usedTraffic[id] {
			traffic = true
		}
	}

	desc, err := vo.NewPathDescription(names)
	if err != nil {
		return invalidResult(), err
	}

	result := Result{
		Valid:         true,
		TotalDistance: finalDist,
		Path:          desc,
		IsBlocked:     blocked,
		IsTraffic:     traffic,
	}
	g.cache.SetWithTTL(key, result, 1, cacheTTL)

	return result, nil
}

func reconstructPath(prev map[int]int, source, dest int) []int {
	path := []int{dest}
	cur := dest
	for cur != source {
		p, ok := prev[cur]
		if !ok {
			break
		}
		path = append([]int{p}, path...)
		cur = p
	}

	return path
}

func isExcludedEdge(a, b, excludeU, excludeV int) bool {
	if excludeU == 0 && excludeV == 0 {
		return false
	}

	return (a == excludeU && b == excludeV) || (a == excludeV && b == excludeU)
}

func cacheKey(source, dest, excludeU, excludeV int) string {
	return fmt.Sprintf("%d:%d:%d-%d", source, dest, excludeU, excludeV)
}
