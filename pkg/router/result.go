package router

import (
	"errors"

	"github.com/lintang-b-s/wanderoute/pkg/datastructure"
	"github.com/lintang-b-s/wanderoute/pkg/graph"
	"github.com/lintang-b-s/wanderoute/pkg/guidance"
)

var errNoPath = errors.New("router: no path between source and target")

// pathEdgeKeys builds the canonical EdgeKeys for every consecutive pair of
// external ids along path, in path order.
func pathEdgeKeys(g *graph.CompactGraph, path []int32) []datastructure.EdgeKey {
	if len(path) < 2 {
		return nil
	}
	keys := make([]datastructure.EdgeKey, 0, len(path)-1)
	for i := 0; i < len(path)-1; i++ {
		a := g.ExternalID(path[i])
		b := g.ExternalID(path[i+1])
		keys = append(keys, datastructure.NewEdgeKey(a, b))
	}
	return keys
}

// novelty is |edges(path) \ W| / |edges(path)|, defined as 1 for an edgeless
// path.
func novelty(edges []datastructure.EdgeKey, walked WalkedSet) float64 {
	if len(edges) == 0 {
		return 1
	}
	if walked == nil {
		return 1
	}
	fresh := 0
	for _, e := range edges {
		if !walked.Contains(e) {
			fresh++
		}
	}
	return float64(fresh) / float64(len(edges))
}

func overheadOf(distance, baseline float64) float64 {
	if baseline == 0 {
		return 0
	}
	return (distance - baseline) / baseline
}

// buildResult packages a search outcome into a RouteResult: external id
// path, canonical edges, novelty against walked, overhead against baseline,
// and turn-by-turn instructions when the graph carries v2 metadata.
func buildResult(g *graph.CompactGraph, outcome searchOutcome, baseline float64, walked WalkedSet) datastructure.RouteResult {
	extPath := make([]int64, len(outcome.path))
	for i, idx := range outcome.path {
		extPath[i] = g.ExternalID(idx)
	}
	edges := pathEdgeKeys(g, outcome.path)

	result := datastructure.RouteResult{
		Path:             extPath,
		Edges:            edges,
		Distance:         outcome.distance,
		ShortestDistance: baseline,
		Novelty:          novelty(edges, walked),
		Overhead:         overheadOf(outcome.distance, baseline),
	}

	if steps, ok := guidance.Synthesize(g, outcome.path); ok {
		result.Instructions = steps
	}
	return result
}
