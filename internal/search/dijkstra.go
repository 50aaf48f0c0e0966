package search

import (
	"container/heap"

	"github.com/Jettpacked/UPSVAC-FlightFinder/internal/routegraph"
)

// LeastDistance returns the minimum-total-distance path from origin to
// destination inclusive and its cumulative distance, or ok=false when the
// destination is unreachable.
//
// All leg distances are non-negative, so plain Dijkstra applies. Equal
// cumulative distances pop in heap insertion order, and relaxation only
// replaces on strictly smaller distance, so the path discovered first
// under builder edge order wins every tie.
func LeastDistance(g *routegraph.Graph, origin, destination string) ([]string, float64, bool) {
	if origin == destination {
		return []string{origin}, 0, true
	}

	dist := map[string]float64{origin: 0}
	parent := make(map[string]string)
	settled := make(map[string]bool)

	seq := 0
	pq := &priorityQueue{{node: origin, distance: 0, seq: seq}}
	heap.Init(pq)

	for pq.Len() > 0 {
		item := heap.Pop(pq).(*pqItem)
		cur := item.node

		if cur == destination {
			return reconstructPath(parent, origin, destination), item.distance, true
		}
		if settled[cur] {
			continue // stale entry from an earlier relaxation
		}
		settled[cur] = true

		for _, e := range g.Edges(cur) {
			if e.To == cur {
				continue // self-loop, not a valid relaxation
			}
			tentative := item.distance + e.Distance
			if old, ok := dist[e.To]; !ok || tentative < old {
				dist[e.To] = tentative
				parent[e.To] = cur
				seq++
				heap.Push(pq, &pqItem{node: e.To, distance: tentative, seq: seq})
			}
		}
	}
	return nil, 0, false
}

// pqItem is a frontier entry; seq is a monotonic insertion counter used
// to keep extraction order stable for equal distances.
type pqItem struct {
	node     string
	distance float64
	seq      int
}

type priorityQueue []*pqItem

func (pq priorityQueue) Len() int { return len(pq) }

func (pq priorityQueue) Less(i, j int) bool {
	if pq[i].distance != pq[j].distance {
		return pq[i].distance < pq[j].distance
	}
	return pq[i].seq < pq[j].seq
}

func (pq priorityQueue) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *priorityQueue) Push(x interface{}) {
	*pq = append(*pq, x.(*pqItem))
}

func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[0 : n-1]
	return item
}
