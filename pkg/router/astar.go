package router

import (
	"math"

	"github.com/lintang-b-s/wanderoute/pkg/datastructure"
	"github.com/lintang-b-s/wanderoute/pkg/geo"
	"github.com/lintang-b-s/wanderoute/pkg/graph"
	"github.com/lintang-b-s/wanderoute/pkg/util"
)

const noParent = int32(-1)

// WalkedSet is an opaque membership probe over previously walked edges,
// supplied by the caller and never mutated or retained by the router.
type WalkedSet interface {
	Contains(key datastructure.EdgeKey) bool
}

// searchOutcome is the raw result of a single A* run, before it is wrapped
// into a datastructure.RouteResult by the novelty-route driver.
type searchOutcome struct {
	path     []int32 // internal indices, source first
	distance float64 // unpenalized sum of edge weights, in meters
	found    bool
}

// ShortestPath runs unpenalized A* between two external node ids.
func ShortestPath(g *graph.CompactGraph, sourceExt, targetExt int64) (datastructure.RouteResult, error) {
	src, ok := g.InternalID(sourceExt)
	if !ok {
		return datastructure.RouteResult{}, graph.ErrUnknownNode
	}
	dst, ok := g.InternalID(targetExt)
	if !ok {
		return datastructure.RouteResult{}, graph.ErrUnknownNode
	}

	outcome := search(g, src, dst, 1.0, nil)
	if !outcome.found {
		return datastructure.RouteResult{}, errNoPath
	}
	return buildResult(g, outcome, outcome.distance, nil), nil
}

// PenalizedShortestPath runs A* where any edge whose canonical EdgeKey is in
// walked has its relaxation weight multiplied by penalty; the reported
// distance is still the unpenalized true length.
func PenalizedShortestPath(g *graph.CompactGraph, sourceExt, targetExt int64, walked WalkedSet, penalty float64) (datastructure.RouteResult, error) {
	src, ok := g.InternalID(sourceExt)
	if !ok {
		return datastructure.RouteResult{}, graph.ErrUnknownNode
	}
	dst, ok := g.InternalID(targetExt)
	if !ok {
		return datastructure.RouteResult{}, graph.ErrUnknownNode
	}

	outcome := search(g, src, dst, penalty, walked)
	if !outcome.found {
		return datastructure.RouteResult{}, errNoPath
	}
	return buildResult(g, outcome, outcome.distance, walked), nil
}

// search is the shared A* core for both the plain and penalized variants.
// g/parent scratch arrays are sized to the graph's node count and allocated
// fresh per call; the spec treats pooling them as an optional optimization.
func search(g *graph.CompactGraph, src, dst int32, penalty float64, walked WalkedSet) searchOutcome {
	if src == dst {
		return searchOutcome{path: []int32{src}, distance: 0, found: true}
	}

	n := g.NumNodes()
	gScore := make([]float32, n)
	trueDist := make([]float64, n)
	parent := make([]int32, n)
	for i := range gScore {
		gScore[i] = float32(math.Inf(1))
		parent[i] = noParent
	}
	gScore[src] = 0

	dstLat, dstLon := g.Coordinate(dst)

	heap := &openHeap{}
	var counter uint64
	heap.Push(openEntry{f: heuristic(g, src, dstLat, dstLon), g: 0, counter: counter, node: src})

	for heap.Len() > 0 {
		top, _ := heap.Pop()
		if top.g > gScore[top.node] {
			continue // stale entry, lazy deletion
		}
		u := top.node
		if u == dst {
			return searchOutcome{path: reconstruct(parent, src, dst), distance: trueDist[dst], found: true}
		}

		targets, weights := g.Neighbors(u)
		for i, v := range targets {
			w := float64(weights[i])
			effectiveW := w
			if walked != nil && penalty != 1.0 {
				key := datastructure.NewEdgeKey(g.ExternalID(u), g.ExternalID(v))
				if walked.Contains(key) {
					effectiveW = w * penalty
				}
			}

			candidate := gScore[u] + float32(effectiveW)
			if candidate < gScore[v] {
				gScore[v] = candidate
				trueDist[v] = trueDist[u] + w
				parent[v] = u
				counter++
				vLat, vLon := g.Coordinate(v)
				h := geo.CalculateHaversineDistance(vLat, vLon, dstLat, dstLon)
				heap.Push(openEntry{f: candidate + float32(h), g: candidate, counter: counter, node: v})
			}
		}
	}

	return searchOutcome{found: false}
}

func heuristic(g *graph.CompactGraph, u int32, dstLat, dstLon float64) float32 {
	uLat, uLon := g.Coordinate(u)
	return float32(geo.CalculateHaversineDistance(uLat, uLon, dstLat, dstLon))
}

func reconstruct(parent []int32, src, dst int32) []int32 {
	path := []int32{dst}
	cur := dst
	for cur != src {
		cur = parent[cur]
		path = append(path, cur)
	}
	return util.ReverseG(path)
}
