// Package search runs the two path searches over a built route graph:
// fewest legs (breadth-first) and least cumulative distance (Dijkstra).
// Both are deterministic: ties resolve to the edge encountered first in
// the graph's builder order.
package search

import "github.com/Jettpacked/UPSVAC-FlightFinder/internal/routegraph"

// FewestLegs returns the minimum-hop path from origin to destination
// inclusive, or ok=false when the destination is unreachable.
//
// Airports are marked visited when enqueued, so each is expanded at most
// once and the first discovery of the destination is via a minimum-hop
// path. Self-loop edges never enter a path.
func FewestLegs(g *routegraph.Graph, origin, destination string) ([]string, bool) {
	if origin == destination {
		return []string{origin}, true
	}

	visited := map[string]bool{origin: true}
	parent := make(map[string]string)
	queue := []string{origin}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, e := range g.Edges(cur) {
			if e.To == cur {
				continue // self-loop
			}
			if visited[e.To] {
				continue
			}
			visited[e.To] = true
			parent[e.To] = cur
			if e.To == destination {
				return reconstructPath(parent, origin, destination), true
			}
			queue = append(queue, e.To)
		}
	}
	return nil, false
}

// reconstructPath walks the parent links back from destination to origin.
func reconstructPath(parent map[string]string, origin, destination string) []string {
	path := []string{destination}
	for cur := destination; cur != origin; {
		prev := parent[cur]
		path = append([]string{prev}, path...)
		cur = prev
	}
	return path
}
