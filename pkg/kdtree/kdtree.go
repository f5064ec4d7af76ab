// Package kdtree implements a static, array-backed 2-D KD-tree used to
// answer nearest-node queries over a walking network's projected node
// coordinates.
package kdtree

import (
	"github.com/lintang-b-s/wanderoute/pkg/geo"
	"github.com/lintang-b-s/wanderoute/pkg/util"
)

// KDNode is one node of the tree, laid out in DFS-preorder with the root at
// index 0. Left and Right are -1 when absent.
type KDNode struct {
	X, Y  float64
	Index int32
	Left  int32
	Right int32
}

// Index is a built KD-tree plus the projection scalar it was built with, so
// queries project query points the same way the tree's own nodes were
// projected.
type Index struct {
	nodes      []KDNode
	root       int32
	cosMeanLat float64
}

type point struct {
	x, y float64
	idx  int32
}

// Build bulk-builds a KD-tree over the given node latitudes/longitudes
// (degrees) using the equirectangular projection with the given
// cos(meanLat) scalar. lats and lons must be the same length.
func Build(lats, lons []float32, cosMeanLat float64) *Index {
	n := len(lats)
	idx := &Index{root: -1, cosMeanLat: cosMeanLat}
	if n == 0 {
		return idx
	}

	pts := make([]point, n)
	for i := range lats {
		x, y := geo.EquirectangularProject(float64(lats[i]), float64(lons[i]), cosMeanLat)
		pts[i] = point{x: x, y: y, idx: int32(i)}
	}

	nodes := make([]KDNode, n)
	next := 0

	var build func(lo, hi, depth int) int32
	build = func(lo, hi, depth int) int32 {
		if lo > hi {
			return -1
		}
		axis := depth % 2
		mid := lo + (hi-lo)/2

		util.QuickSelect(pts, mid, lo, hi, func(a, b point) int {
			var av, bv float64
			if axis == 0 {
				av, bv = a.x, b.x
			} else {
				av, bv = a.y, b.y
			}
			switch {
			case av < bv:
				return -1
			case av > bv:
				return 1
			default:
				return 0
			}
		})

		slot := int32(next)
		next++
		p := pts[mid]
		nodes[slot] = KDNode{X: p.x, Y: p.y, Index: p.idx, Left: -1, Right: -1}

		left := build(lo, mid-1, depth+1)
		right := build(mid+1, hi, depth+1)
		nodes[slot].Left = left
		nodes[slot].Right = right
		return slot
	}

	idx.root = build(0, n-1, 0)
	idx.nodes = nodes
	return idx
}

type candidate struct {
	distSq float64
	idx    int32
}

// insertBounded inserts c into best, which is kept sorted ascending by
// distSq and capped at length k.
func insertBounded(best []candidate, c candidate, k int) []candidate {
	pos := len(best)
	for pos > 0 && best[pos-1].distSq > c.distSq {
		pos--
	}
	if pos >= k {
		return best
	}
	best = append(best, candidate{})
	copy(best[pos+1:], best[pos:])
	best[pos] = c
	if len(best) > k {
		best = best[:k]
	}
	return best
}

// Query returns up to k node indices nearest to (lat, lon), ordered nearest
// first, using the same projection the tree was built with.
func (idx *Index) Query(lat, lon float64, k int) []int32 {
	if idx.root == -1 || k <= 0 {
		return nil
	}
	qx, qy := geo.EquirectangularProject(lat, lon, idx.cosMeanLat)

	var best []candidate
	var visit func(node int32, depth int)
	visit = func(node int32, depth int) {
		if node == -1 {
			return
		}
		n := idx.nodes[node]
		dx := n.X - qx
		dy := n.Y - qy
		best = insertBounded(best, candidate{distSq: dx*dx + dy*dy, idx: n.Index}, k)

		axis := depth % 2
		var diff float64
		if axis == 0 {
			diff = qx - n.X
		} else {
			diff = qy - n.Y
		}

		near, far := n.Left, n.Right
		if diff > 0 {
			near, far = n.Right, n.Left
		}
		visit(near, depth+1)
		if len(best) < k || diff*diff < best[len(best)-1].distSq {
			visit(far, depth+1)
		}
	}
	visit(idx.root, 0)

	result := make([]int32, len(best))
	for i, c := range best {
		result[i] = c.idx
	}
	return result
}

// Len returns the number of points held in the tree.
func (idx *Index) Len() int { return len(idx.nodes) }
