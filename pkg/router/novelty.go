package router

import (
	"math"

	"github.com/lintang-b-s/wanderoute/pkg/datastructure"
	"github.com/lintang-b-s/wanderoute/pkg/graph"
)

const (
	defaultMinNovelty  = 0.3
	defaultMaxOverhead = 0.25

	earthMetersPerDegreeLat = 111320.0
)

// NoveltyOptions configures NoveltyRoute. Zero-valued fields fall back to
// the documented defaults.
type NoveltyOptions struct {
	MinNovelty  float64
	MaxOverhead float64
}

func (o NoveltyOptions) resolved() (minNovelty, maxOverhead float64) {
	minNovelty = o.MinNovelty
	if minNovelty == 0 {
		minNovelty = defaultMinNovelty
	}
	maxOverhead = o.MaxOverhead
	if maxOverhead == 0 {
		maxOverhead = defaultMaxOverhead
	}
	return
}

// candidateResult tracks a penalty trial's outcome for the dominance rule.
type candidateResult struct {
	outcome      searchOutcome
	penalty      float64
	novelty      float64
	overhead     float64
	meetsNovelty bool
	withinBudget bool
}

func evaluate(g *graph.CompactGraph, outcome searchOutcome, baseline, minNovelty, maxOverhead float64, walked WalkedSet) candidateResult {
	edges := pathEdgeKeys(g, outcome.path)
	nov := novelty(edges, walked)
	oh := overheadOf(outcome.distance, baseline)
	return candidateResult{
		outcome:      outcome,
		novelty:      nov,
		overhead:     oh,
		meetsNovelty: nov >= minNovelty,
		withinBudget: oh <= maxOverhead,
	}
}

// dominates reports whether candidate a should replace the running best b
// under the spec's dominance rule. An over-budget candidate never becomes
// the best, not even when there is no best yet.
func dominates(a, b candidateResult, hasBest bool) bool {
	if !hasBest {
		return a.withinBudget
	}
	aGood := a.meetsNovelty && a.withinBudget
	bGood := b.meetsNovelty && b.withinBudget

	if aGood != bGood {
		return aGood
	}
	if aGood {
		// both meet novelty and budget: prefer the one that uses more of
		// the overhead budget.
		return a.overhead > b.overhead
	}
	// Neither is both-good. A within-budget candidate always beats one
	// that overshoots the budget.
	if a.withinBudget != b.withinBudget {
		return a.withinBudget
	}
	if !a.withinBudget {
		return false // both over budget: keep the incumbent
	}
	// Both within budget, neither meets novelty: prefer higher novelty.
	return a.novelty > b.novelty
}

// NoveltyRoute runs the multi-phase novelty-route search described by the
// router's contract: baseline shortest path, short-circuit, exponential
// penalty bracketing, binary search with a dominance rule, fixed-penalty
// fallback, and geometric via-waypoint lengthening.
func NoveltyRoute(g *graph.CompactGraph, sourceExt, targetExt int64, walked WalkedSet, opts NoveltyOptions) (datastructure.RouteResult, error) {
	minNovelty, maxOverhead := opts.resolved()

	src, ok := g.InternalID(sourceExt)
	if !ok {
		return datastructure.RouteResult{}, graph.ErrUnknownNode
	}
	dst, ok := g.InternalID(targetExt)
	if !ok {
		return datastructure.RouteResult{}, graph.ErrUnknownNode
	}

	// Phase 1 — baseline.
	baselineOutcome := search(g, src, dst, 1.0, nil)
	if !baselineOutcome.found {
		return datastructure.RouteResult{}, errNoPath
	}
	d0 := baselineOutcome.distance
	baselineCandidate := evaluate(g, baselineOutcome, d0, minNovelty, maxOverhead, walked)

	// Phase 2 — short-circuit.
	if baselineCandidate.meetsNovelty && maxOverhead < 0.30 {
		return buildResult(g, baselineOutcome, d0, walked), nil
	}

	edgesEmpty := walkedSetIsEmpty(walked)

	var best candidateResult
	hasBest := false
	if edgesEmpty {
		// Penalties have no effect with nothing walked; baseline is the
		// only candidate phases 3-5 could have produced anyway.
		best = baselineCandidate
		hasBest = true
	} else {
		// Phase 3 — exponential expansion.
		loPenalty, hiPenalty := 1.0, 10.0
		for i := 0; i < 5; i++ {
			outcome := search(g, src, dst, hiPenalty, walked)
			if !outcome.found {
				break
			}
			c := evaluate(g, outcome, d0, minNovelty, maxOverhead, walked)
			if dominates(c, best, hasBest) {
				best = c
				hasBest = true
			}
			if c.meetsNovelty {
				break
			}
			hiPenalty *= 2
			if hiPenalty > 100 {
				break
			}
		}

		// Phase 4 — binary search.
		{
			lo, hi := loPenalty, hiPenalty
			for i := 0; i < 10; i++ {
				mid := (lo + hi) / 2
				outcome := search(g, src, dst, mid, walked)
				if !outcome.found {
					break
				}
				c := evaluate(g, outcome, d0, minNovelty, maxOverhead, walked)
				if dominates(c, best, hasBest) {
					best = c
					hasBest = true
				}

				if c.novelty < minNovelty {
					lo = mid
				} else if c.overhead > maxOverhead {
					hi = mid
				} else {
					lo = mid
				}
			}
		}

		// Phase 5 — fixed fallback.
		if !hasBest || !best.meetsNovelty {
			for _, penalty := range []float64{1.5, 2.0, 3.0, 5.0, 8.0} {
				outcome := search(g, src, dst, penalty, walked)
				if !outcome.found {
					continue
				}
				c := evaluate(g, outcome, d0, minNovelty, maxOverhead, walked)
				if dominates(c, best, hasBest) {
					best = c
					hasBest = true
				}
			}
		}
	}

	// Phase 6 — via-waypoint lengthening.
	if hasBest && best.outcome.distance < 0.85*d0*(1+maxOverhead) {
		if wp, ok := viaWaypointCandidate(g, src, dst, d0, maxOverhead, walked, best); ok {
			best = wp
			hasBest = true
		}
	}

	// Phase 7 — worst case.
	if !hasBest {
		return buildResult(g, baselineOutcome, d0, walked), nil
	}
	return buildResult(g, best.outcome, d0, walked), nil
}

func walkedSetIsEmpty(walked WalkedSet) bool {
	if walked == nil {
		return true
	}
	if e, ok := walked.(interface{ Empty() bool }); ok {
		return e.Empty()
	}
	return false
}

var waypointScales = []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0, 1.15}

// viaWaypointCandidate enumerates perpendicular offsets from the
// source-target midpoint, snaps each to the nearest node, and routes
// through it via two unpenalized shortest paths, per the spec's Phase 6.
func viaWaypointCandidate(g *graph.CompactGraph, src, dst int32, d0, maxOverhead float64, walked WalkedSet, current candidateResult) (candidateResult, bool) {
	srcLat, srcLon := g.Coordinate(src)
	dstLat, dstLon := g.Coordinate(dst)

	midLat := (srcLat + dstLat) / 2
	midLon := (srcLon + dstLon) / 2
	cosMidLat := math.Cos(midLat * math.Pi / 180)

	targetStraightLine := d0 * (1 + maxOverhead)
	var hIdeal float64
	if targetStraightLine > d0 {
		hIdeal = math.Sqrt(targetStraightLine*targetStraightLine-d0*d0) / 2
	} else {
		hIdeal = 0.3 * d0
	}

	bestSoFar := current
	found := false

	for _, scale := range waypointScales {
		for _, sign := range []float64{1, -1} {
			offset := hIdeal * scale * sign

			offsetLat := midLat + offset/earthMetersPerDegreeLat
			offsetLon := midLon
			if cosMidLat != 0 {
				offsetLon = midLon + offset/(earthMetersPerDegreeLat*cosMidLat)
			}

			wpIdx, _, ok := g.NearestNode(offsetLat, offsetLon)
			if !ok {
				continue
			}
			if wpIdx == src || wpIdx == dst {
				continue
			}

			legOne := search(g, src, wpIdx, 1.0, nil)
			if !legOne.found {
				continue
			}
			legTwo := search(g, wpIdx, dst, 1.0, nil)
			if !legTwo.found {
				continue
			}

			combined := concatenateOutcomes(legOne, legTwo)
			overhead := overheadOf(combined.distance, d0)
			if overhead > maxOverhead || overhead <= bestSoFar.overhead {
				continue
			}

			edges := pathEdgeKeys(g, combined.path)
			bestSoFar = candidateResult{
				outcome:      combined,
				penalty:      1.0,
				novelty:      novelty(edges, walked),
				overhead:     overhead,
				meetsNovelty: true,
				withinBudget: true,
			}
			found = true
		}
	}

	if !found {
		return candidateResult{}, false
	}
	return bestSoFar, true
}

// concatenateOutcomes joins two path outcomes that share a waypoint node,
// dropping the duplicate join node.
func concatenateOutcomes(a, b searchOutcome) searchOutcome {
	combined := make([]int32, 0, len(a.path)+len(b.path)-1)
	combined = append(combined, a.path...)
	combined = append(combined, b.path[1:]...)
	return searchOutcome{
		path:     combined,
		distance: a.distance + b.distance,
		found:    true,
	}
}
