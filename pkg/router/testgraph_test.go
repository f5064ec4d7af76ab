package router_test

import (
	"bytes"
	"encoding/binary"
	"os"
	"testing"

	"github.com/lintang-b-s/wanderoute/pkg/datastructure"
	"github.com/lintang-b-s/wanderoute/pkg/graph"

	"github.com/stretchr/testify/require"
)

// buildGridGraph writes a size x size grid of nodes (spaced ~111m apart in
// both lat and lon) connected to their orthogonal neighbors, and loads it as
// a CompactGraph. Node (row, col) has external id row*size+col.
func buildGridGraph(t *testing.T, size int) *graph.CompactGraph {
	t.Helper()

	type edge struct {
		from, to int
		weight   float32
	}

	var nodeIDs []int64
	var lats, lons []float32
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			nodeIDs = append(nodeIDs, int64(row*size+col))
			lats = append(lats, float32(-7.500+float64(row)*0.001))
			lons = append(lons, float32(110.770+float64(col)*0.001))
		}
	}

	idOf := func(row, col int) int { return row*size + col }

	adjacency := make([][]edge, size*size)
	link := func(a, b int) {
		adjacency[a] = append(adjacency[a], edge{a, b, 111})
		adjacency[b] = append(adjacency[b], edge{b, a, 111})
	}
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			if col+1 < size {
				link(idOf(row, col), idOf(row, col+1))
			}
			if row+1 < size {
				link(idOf(row, col), idOf(row+1, col))
			}
		}
	}

	var adjOffsets []int32
	var adjTargets []int32
	var adjWeights []float32
	var nameIdx []uint16
	var hwyIdx []uint8

	offset := int32(0)
	for i := 0; i < size*size; i++ {
		adjOffsets = append(adjOffsets, offset)
		for _, e := range adjacency[i] {
			adjTargets = append(adjTargets, int32(e.to))
			adjWeights = append(adjWeights, e.weight)
			nameIdx = append(nameIdx, 1)
			hwyIdx = append(hwyIdx, 1)
			offset++
		}
	}
	adjOffsets = append(adjOffsets, offset)

	names := []string{"", "Grid Street"}
	highways := []string{"", "residential"}

	buf := &bytes.Buffer{}
	buf.WriteString("CSRG")
	binary.Write(buf, binary.LittleEndian, uint32(2))
	binary.Write(buf, binary.LittleEndian, uint32(len(nodeIDs)))
	binary.Write(buf, binary.LittleEndian, uint32(len(adjTargets)))
	buf.Write(make([]byte, 16))

	for _, id := range nodeIDs {
		binary.Write(buf, binary.LittleEndian, id)
	}
	for _, v := range lats {
		binary.Write(buf, binary.LittleEndian, v)
	}
	for _, v := range lons {
		binary.Write(buf, binary.LittleEndian, v)
	}
	for _, v := range adjOffsets {
		binary.Write(buf, binary.LittleEndian, v)
	}
	for _, v := range adjTargets {
		binary.Write(buf, binary.LittleEndian, v)
	}
	for _, v := range adjWeights {
		binary.Write(buf, binary.LittleEndian, v)
	}
	for _, v := range nameIdx {
		binary.Write(buf, binary.LittleEndian, v)
	}
	for _, v := range hwyIdx {
		buf.WriteByte(v)
	}
	writeTable := func(entries []string) {
		binary.Write(buf, binary.LittleEndian, uint32(len(entries)))
		for _, e := range entries {
			binary.Write(buf, binary.LittleEndian, uint16(len(e)))
			buf.WriteString(e)
		}
	}
	writeTable(names)
	writeTable(highways)

	path := t.TempDir() + "/grid.csrg"
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	g, err := graph.Load(path, graph.LoadOptions{})
	require.NoError(t, err)
	t.Cleanup(func() { g.Close() })
	return g
}

// fakeWalkedSet is an in-memory WalkedSet for tests.
type fakeWalkedSet struct {
	edges map[datastructure.EdgeKey]struct{}
}

func newFakeWalkedSet(keys ...datastructure.EdgeKey) *fakeWalkedSet {
	w := &fakeWalkedSet{edges: make(map[datastructure.EdgeKey]struct{}, len(keys))}
	for _, k := range keys {
		w.edges[k] = struct{}{}
	}
	return w
}

func (w *fakeWalkedSet) Contains(k datastructure.EdgeKey) bool {
	_, ok := w.edges[k]
	return ok
}

func (w *fakeWalkedSet) Empty() bool {
	return len(w.edges) == 0
}
