package datastructure

// EdgeKey is the canonical undirected identity of an edge: an unordered
// pair of external (OSM) node ids stored as (min, max). Used exclusively
// for walked-history set membership probes.
type EdgeKey struct {
	A int64
	B int64
}

// NewEdgeKey builds the canonical key for an undirected edge between two
// external node ids, regardless of traversal direction.
func NewEdgeKey(extIDFrom, extIDTo int64) EdgeKey {
	if extIDFrom <= extIDTo {
		return EdgeKey{A: extIDFrom, B: extIDTo}
	}
	return EdgeKey{A: extIDTo, B: extIDFrom}
}
