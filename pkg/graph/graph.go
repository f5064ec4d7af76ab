// Package graph implements the compact, memory-mapped, read-only walking
// network: a CSR (compressed sparse row) adjacency representation loaded
// directly off disk with no per-node heap allocation.
package graph

import (
	"fmt"
	"sync"

	"github.com/lintang-b-s/wanderoute/pkg/geo"
	"github.com/lintang-b-s/wanderoute/pkg/kdtree"
)

// CompactGraph is an immutable, memory-mapped walking network. All methods
// are safe for concurrent use by multiple goroutines; there is no mutable
// state besides the lazily built spatial index, which is built at most once.
type CompactGraph struct {
	mapped *mappedFile

	version          uint32
	numNodes         int
	numDirectedEdges int

	nodeIDs    []int64
	nodeLats   []float32
	nodeLons   []float32
	adjOffsets []int32
	adjTargets []int32
	adjWeights []float32

	edgeNameIdx    []uint16
	edgeHighwayIdx []uint8
	nameTable      stringTable
	highwayTable   stringTable

	idToInternal map[int64]int32

	cosMeanLat float64

	indexOnce  sync.Once
	indexErr   error
	spatial    *kdtree.Index
	cachePath  string
	sourcePath string
	fileSize   int64
}

// LoadOptions configures Load. CachePath, when non-empty, names the file
// used to persist the KD-tree spatial index across process restarts.
type LoadOptions struct {
	CachePath string
}

// Load memory-maps the file at path and parses its CSR sections in place.
// The returned CompactGraph owns the mapping for its entire lifetime; call
// Close when done with it.
func Load(path string, opts LoadOptions) (*CompactGraph, error) {
	mapped, err := mapFileReadOnly(path)
	if err != nil {
		return nil, fmt.Errorf("graph: mmap %s: %w", path, err)
	}

	g, err := loadFromBuffer(mapped.data)
	if err != nil {
		mapped.Close()
		return nil, err
	}
	g.mapped = mapped
	g.cachePath = opts.CachePath
	g.sourcePath = path
	g.fileSize = int64(len(mapped.data))

	return g, nil
}

func loadFromBuffer(buf []byte) (*CompactGraph, error) {
	h, err := parseHeader(buf)
	if err != nil {
		return nil, err
	}
	layout, err := computeLayout(h, buf)
	if err != nil {
		return nil, err
	}

	n := int(h.numNodes)
	e := int(h.numDirectedEdges)

	g := &CompactGraph{
		version:          h.version,
		numNodes:         n,
		numDirectedEdges: e,
		nodeIDs:          decodeInt64Slice(buf[layout.nodeIDs[0]:layout.nodeIDs[1]], n),
		nodeLats:         decodeFloat32Slice(buf[layout.nodeLats[0]:layout.nodeLats[1]], n),
		nodeLons:         decodeFloat32Slice(buf[layout.nodeLons[0]:layout.nodeLons[1]], n),
		adjOffsets:       decodeInt32Slice(buf[layout.adjOffsets[0]:layout.adjOffsets[1]], n+1),
		adjTargets:       decodeInt32Slice(buf[layout.adjTargets[0]:layout.adjTargets[1]], e),
		adjWeights:       decodeFloat32Slice(buf[layout.adjWeights[0]:layout.adjWeights[1]], e),
	}

	if h.version >= versionWithEdgeMeta {
		g.edgeNameIdx = decodeUint16Slice(buf[layout.edgeNameIdx[0]:layout.edgeNameIdx[1]], e)
		g.edgeHighwayIdx = buf[layout.edgeHighwayIdx[0]:layout.edgeHighwayIdx[1]]

		nameEntries, _, err := decodeStringTable(buf[layout.nameTable[0]:layout.nameTable[1]])
		if err != nil {
			return nil, err
		}
		g.nameTable = nameEntries

		hwyEntries, _, err := decodeStringTable(buf[layout.hwyTable[0]:layout.hwyTable[1]])
		if err != nil {
			return nil, err
		}
		g.highwayTable = hwyEntries
	}

	g.idToInternal = make(map[int64]int32, n)
	for i, id := range g.nodeIDs {
		// Last-seen-wins on duplicate external ids: a later entry silently
		// shadows an earlier one rather than erroring at load time.
		g.idToInternal[id] = int32(i)
	}

	g.cosMeanLat = geo.CosMeanLat(g.nodeLats)

	return g, nil
}

// Close unmaps the underlying file. The CompactGraph must not be used after
// Close returns.
func (g *CompactGraph) Close() error {
	if g.mapped == nil {
		return nil
	}
	return g.mapped.Close()
}

// NumNodes returns the number of nodes in the network.
func (g *CompactGraph) NumNodes() int { return g.numNodes }

// NumDirectedEdges returns the number of directed edge records (two per
// undirected street segment).
func (g *CompactGraph) NumDirectedEdges() int { return g.numDirectedEdges }

// InternalID maps an external (OSM) node id to its internal index, or false
// if the graph has no node with that id.
func (g *CompactGraph) InternalID(externalID int64) (int32, bool) {
	idx, ok := g.idToInternal[externalID]
	return idx, ok
}

// ExternalID maps an internal node index back to its external (OSM) id.
// Panics if idx is out of range, matching slice-index semantics since this
// is always called with indices the graph itself produced.
func (g *CompactGraph) ExternalID(idx int32) int64 {
	return g.nodeIDs[idx]
}

// Coordinate returns the (lat, lon) of the node at internal index idx.
func (g *CompactGraph) Coordinate(idx int32) (lat, lon float64) {
	return float64(g.nodeLats[idx]), float64(g.nodeLons[idx])
}

// Neighbors returns the directed out-edges of the node at internal index u:
// parallel slices of target internal indices and edge weights in meters.
// Both slices are zero-copy views into the mapped file and must not be
// retained past the graph's lifetime, nor mutated.
func (g *CompactGraph) Neighbors(u int32) (targets []int32, weights []float32) {
	start := g.adjOffsets[u]
	end := g.adjOffsets[u+1]
	return g.adjTargets[start:end], g.adjWeights[start:end]
}

// edgeOrdinal returns the position of the directed edge (u,v) within the
// adjacency arrays, or -1 if u has no such neighbor. Linear scan over u's
// (typically small) out-degree.
func (g *CompactGraph) edgeOrdinal(u, v int32) int {
	start := g.adjOffsets[u]
	end := g.adjOffsets[u+1]
	for i := start; i < end; i++ {
		if g.adjTargets[i] == v {
			return int(i)
		}
	}
	return -1
}

// EdgeName returns the street name of the directed edge (u,v), or "" if the
// graph carries no edge metadata (v1) or the edge has no recorded name.
func (g *CompactGraph) EdgeName(u, v int32) string {
	if g.version < versionWithEdgeMeta {
		return ""
	}
	ord := g.edgeOrdinal(u, v)
	if ord < 0 {
		return ""
	}
	return g.nameTable.Get(int(g.edgeNameIdx[ord]))
}

// EdgeHighway returns the highway classification of the directed edge
// (u,v), or "" if the graph carries no edge metadata (v1) or the edge has
// no recorded classification.
func (g *CompactGraph) EdgeHighway(u, v int32) string {
	if g.version < versionWithEdgeMeta {
		return ""
	}
	ord := g.edgeOrdinal(u, v)
	if ord < 0 {
		return ""
	}
	return g.highwayTable.Get(int(g.edgeHighwayIdx[ord]))
}

// fingerprint identifies the graph content a cached spatial index was built
// from, so a stale cache (graph file replaced on disk) gets rebuilt instead
// of silently misused.
func (g *CompactGraph) fingerprint() string {
	return fmt.Sprintf("%d-%d-%d-%d", g.numNodes, g.numDirectedEdges, g.version, g.fileSize)
}

func (g *CompactGraph) ensureSpatialIndex() error {
	g.indexOnce.Do(func() {
		if g.cachePath != "" {
			if idx, err := kdtree.LoadCache(g.cachePath, g.fingerprint()); err == nil {
				g.spatial = idx
				return
			}
		}
		idx := kdtree.Build(g.nodeLats, g.nodeLons, g.cosMeanLat)
		g.spatial = idx
		if g.cachePath != "" {
			// A cache write failure never fails the query path; the index
			// just gets rebuilt again next process start.
			_ = kdtree.SaveCache(g.cachePath, g.fingerprint(), idx)
		}
	})
	return g.indexErr
}

// NearestNode snaps an arbitrary (lat, lon) to the closest node in the
// network by querying up to min(10, NumNodes) candidates from the spatial
// index and breaking ties with exact haversine distance. Returns false if
// the graph has no nodes.
func (g *CompactGraph) NearestNode(lat, lon float64) (idx int32, distanceMeters float64, ok bool) {
	if g.numNodes == 0 {
		return 0, 0, false
	}
	if err := g.ensureSpatialIndex(); err != nil {
		return 0, 0, false
	}

	k := 10
	if k > g.numNodes {
		k = g.numNodes
	}
	candidates := g.spatial.Query(lat, lon, k)

	best := int32(-1)
	bestDist := 0.0
	for _, c := range candidates {
		clat, clon := g.Coordinate(c)
		d := geo.CalculateHaversineDistance(lat, lon, clat, clon)
		if best == -1 || d < bestDist {
			best = c
			bestDist = d
		}
	}
	if best == -1 {
		return 0, 0, false
	}
	return best, bestDist, true
}
