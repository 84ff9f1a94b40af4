package graph

import (
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/swiftex-sim/swiftex/internal/domain/vo"
)

const (
	cacheNumCounters = 10_000
	cacheMaxCost     = 1 << 20
	cacheBufferItems = 64
	cacheTTL         = 24 * time.Hour
)

// Graph is the road network: a set of cities and the roads between them,
// with Dijkstra/alternative-path results memoized as a pure function of
// (edge state, source, destination, excluded edge), cached until any edge
// changes.
type Graph struct {
	cities    map[int]vo.City
	roads     []vo.Road
	adjacency map[int][]int // city id -> indices into roads

	cache *ristretto.Cache[string, Result]
}

// New constructs an empty Graph with its route cache.
func New() (*Graph, error) {
	cache, err := ristretto.NewCache(&ristretto.Config[string, Result]{
		NumCounters: cacheNumCounters,
		MaxCost:     cacheMaxCost,
		BufferItems: cacheBufferItems,
	})
	if err != nil {
		return nil, fmt.Errorf("construct route cache: %w", err)
	}

	return &Graph{
		cities:    make(map[int]vo.City),
		adjacency: make(map[int][]int),
		cache:     cache,
	}, nil
}

// AddCity registers a city node.
func (g *Graph) AddCity(city vo.City) error {
	if _, exists := g.cities[city.ID()]; exists {
		return fmt.Errorf("%w: id %d", ErrCityAlreadyExists, city.ID())
	}
	if len(g.cities) >= vo.MaxCities {
		return vo.ErrTooManyCities
	}

	g.cities[city.ID()] = city

	return nil
}

// City looks up a registered city by id.
func (g *Graph) City(id int) (vo.City, bool) {
	c, ok := g.cities[id]

	return c, ok
}

// HasCity reports whether a city id is present.
func (g *Graph) HasCity(id int) bool {
	_, ok := g.cities[id]

	return ok
}

// AddRoad registers an undirected road between two present cities.
func (g *Graph) AddRoad(u, v, baseDistanceKM int) error {
	if !g.HasCity(u) {
		return fmt.Errorf("%w: %d", ErrCityNotPresent, u)
	}
	if !g.HasCity(v) {
		return fmt.Errorf("%w: %d", ErrCityNotPresent, v)
	}
	if g.roadIndex(u, v) >= 0 {
		return fmt.Errorf("%w: %d-%d", ErrRoadAlreadyExists, u, v)
	}

	road, err := vo.NewRoad(u, v, baseDistanceKM)
	if err != nil {
		return err
	}

	idx := len(g.roads)
	g.roads = append(g.roads, road)
	g.adjacency[u] = append(g.adjacency[u], idx)
	g.adjacency[v] = append(g.adjacency[v], idx)

	return nil
}

// roadIndex returns the index of the road connecting u and v, or -1.
func (g *Graph) roadIndex(u, v int) int {
	for _, idx := range g.adjacency[u] {
		if _, ok := g.roads[idx].ConnectsTo(v); ok {
			if to, _ := g.roads[idx].ConnectsTo(u); to == v {
				return idx
			}
		}
	}

	return -1
}

// SetRoadStatus updates a road's status symmetrically and invalidates every
// cached route result (spec §4.3).
func (g *Graph) SetRoadStatus(u, v int, status vo.RoadStatus) error {
	idx := g.roadIndex(u, v)
	if idx < 0 {
		return fmt.Errorf("%w: %d-%d", ErrNoSuchRoad, u, v)
	}

	g.roads[idx] = g.roads[idx].WithStatus(status)
	g.cache.Clear()

	return nil
}

// RoadStatus reports the current status of the road between u and v.
func (g *Graph) RoadStatus(u, v int) (vo.RoadStatus, error) {
	idx := g.roadIndex(u, v)
	if idx < 0 {
		return 0, fmt.Errorf("%w: %d-%d", ErrNoSuchRoad, u, v)
	}

	return g.roads[idx].Status(), nil
}

// IsRoutable reports whether source can currently reach dest at all.
func (g *Graph) IsRoutable(source, dest int) bool {
	r := g.ShortestPath(source, dest)

	return r.Valid
}
