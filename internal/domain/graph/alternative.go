package graph

// AlternativePath computes the best path B via ShortestPath, then forbids
// each of source's outgoing edges in turn and keeps the smallest-distance
// candidate that is valid, has distance >= B's, and differs from B's path
// description (spec §4.3). Returns an invalid Result if none qualifies.
func (g *Graph) AlternativePath(source, dest int) Result {
	best := g.ShortestPath(source, dest)
	if !best.Valid {
		return invalidResult()
	}

	var winner Result
	found := false

	for _, idx := range g.adjacency[source] {
		neighbor, ok := g.roads[idx].ConnectsTo(source)
		if !ok {
			continue
		}

		candidate, err := g.shortestPath(source, dest, source, neighbor)
		if err != nil || !candidate.Valid {
			continue
		}
		if candidate.TotalDistance < best.TotalDistance {
			continue
		}
		if candidate.Path.String() == best.Path.String() {
			continue
		}

		if !found || candidate.TotalDistance < winner.TotalDistance {
			winner = candidate
			found = true
		}
	}

	if !found {
		return invalidResult()
	}

	return winner
}
