package graph_test

import (
	"bytes"
	"encoding/binary"
	"os"
	"testing"

	"github.com/lintang-b-s/wanderoute/pkg/graph"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildV2Buffer assembles a minimal, valid v2 CSR buffer for three nodes
// forming a path 0 -> 1 -> 2 (undirected, so edges run both ways). Both
// directions of 0-1 carry a street name and highway class; both directions
// of 1-2 point at index 0 (absent).
func buildV2Buffer(t *testing.T) []byte {
	t.Helper()

	nodeIDs := []int64{100, 200, 300}
	lats := []float32{-7.5000, -7.5010, -7.5020}
	lons := []float32{110.7700, 110.7710, 110.7720}

	// Directed edges: 0->1, 1->0, 1->2, 2->1
	adjOffsets := []int32{0, 1, 3, 4}
	adjTargets := []int32{1, 0, 2, 1}
	adjWeights := []float32{111, 111, 111, 111}

	// name table: ["", "Jl. Merdeka"], highway table: ["", "footway"]
	names := []string{"", "Jl. Merdeka"}
	highways := []string{"", "footway"}
	nameIdx := []uint16{1, 1, 0, 0}
	hwyIdx := []uint8{1, 1, 0, 0}

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

	writeStringTable := func(entries []string) {
		binary.Write(buf, binary.LittleEndian, uint32(len(entries)))
		for _, e := range entries {
			binary.Write(buf, binary.LittleEndian, uint16(len(e)))
			buf.WriteString(e)
		}
	}
	writeStringTable(names)
	writeStringTable(highways)

	return buf.Bytes()
}

func writeTempGraphFile(t *testing.T, data []byte) string {
	t.Helper()
	path := t.TempDir() + "/test.csrg"
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestLoadAndBasicLookups(t *testing.T) {
	data := buildV2Buffer(t)
	path := writeTempGraphFile(t, data)

	g, err := graph.Load(path, graph.LoadOptions{})
	require.NoError(t, err)
	defer g.Close()

	assert.Equal(t, 3, g.NumNodes())
	assert.Equal(t, 4, g.NumDirectedEdges())

	internalID, ok := g.InternalID(200)
	require.True(t, ok)
	assert.Equal(t, int64(200), g.ExternalID(internalID))

	_, ok = g.InternalID(999)
	assert.False(t, ok)

	targets, weights := g.Neighbors(internalID)
	assert.ElementsMatch(t, []int32{0, 2}, targets)
	assert.Len(t, weights, 2)
}

func TestEdgeMetadataLookup(t *testing.T) {
	data := buildV2Buffer(t)
	path := writeTempGraphFile(t, data)

	g, err := graph.Load(path, graph.LoadOptions{})
	require.NoError(t, err)
	defer g.Close()

	n0, _ := g.InternalID(100)
	n1, _ := g.InternalID(200)
	n2, _ := g.InternalID(300)

	assert.Equal(t, "Jl. Merdeka", g.EdgeName(n0, n1))
	assert.Equal(t, "footway", g.EdgeHighway(n0, n1))
	assert.Equal(t, "", g.EdgeName(n1, n2))
	assert.Equal(t, "", g.EdgeHighway(n1, n2))
}

func TestNearestNodeSnap(t *testing.T) {
	data := buildV2Buffer(t)
	path := writeTempGraphFile(t, data)

	g, err := graph.Load(path, graph.LoadOptions{})
	require.NoError(t, err)
	defer g.Close()

	idx, dist, ok := g.NearestNode(-7.5010, 110.7710)
	require.True(t, ok)
	assert.Equal(t, int64(200), g.ExternalID(idx))
	assert.True(t, dist < 10)
}

func TestLoadRejectsTooSmallFile(t *testing.T) {
	path := writeTempGraphFile(t, []byte("short"))
	_, err := graph.Load(path, graph.LoadOptions{})
	require.Error(t, err)
	var loadErr *graph.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, graph.TooSmall, loadErr.Kind)
}

func TestLoadRejectsBadMagic(t *testing.T) {
	buf := make([]byte, 32)
	copy(buf, "NOPE")
	path := writeTempGraphFile(t, buf)
	_, err := graph.Load(path, graph.LoadOptions{})
	require.Error(t, err)
	var loadErr *graph.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, graph.BadMagic, loadErr.Kind)
}

func TestLoadRejectsUnsupportedVersion(t *testing.T) {
	buf := make([]byte, 32)
	copy(buf, "CSRG")
	binary.LittleEndian.PutUint32(buf[4:8], 99)
	path := writeTempGraphFile(t, buf)
	_, err := graph.Load(path, graph.LoadOptions{})
	require.Error(t, err)
	var loadErr *graph.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, graph.UnsupportedVersion, loadErr.Kind)
}

func TestLoadRejectsTruncatedSections(t *testing.T) {
	buf := make([]byte, 32)
	copy(buf, "CSRG")
	binary.LittleEndian.PutUint32(buf[4:8], 1)
	binary.LittleEndian.PutUint32(buf[8:12], 1000)
	binary.LittleEndian.PutUint32(buf[12:16], 1000)
	path := writeTempGraphFile(t, buf)
	_, err := graph.Load(path, graph.LoadOptions{})
	require.Error(t, err)
	var loadErr *graph.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, graph.Truncated, loadErr.Kind)
}

func TestV1FileHasNoEdgeMetadata(t *testing.T) {
	buf := &bytes.Buffer{}
	buf.WriteString("CSRG")
	binary.Write(buf, binary.LittleEndian, uint32(1))
	binary.Write(buf, binary.LittleEndian, uint32(2))
	binary.Write(buf, binary.LittleEndian, uint32(2))
	buf.Write(make([]byte, 16))

	binary.Write(buf, binary.LittleEndian, int64(1))
	binary.Write(buf, binary.LittleEndian, int64(2))
	binary.Write(buf, binary.LittleEndian, float32(-7.0))
	binary.Write(buf, binary.LittleEndian, float32(-7.001))
	binary.Write(buf, binary.LittleEndian, float32(110.0))
	binary.Write(buf, binary.LittleEndian, float32(110.001))
	for _, v := range []int32{0, 1, 2} {
		binary.Write(buf, binary.LittleEndian, v)
	}
	for _, v := range []int32{1, 0} {
		binary.Write(buf, binary.LittleEndian, v)
	}
	for _, v := range []float32{111, 111} {
		binary.Write(buf, binary.LittleEndian, v)
	}

	path := writeTempGraphFile(t, buf.Bytes())
	g, err := graph.Load(path, graph.LoadOptions{})
	require.NoError(t, err)
	defer g.Close()

	assert.Equal(t, "", g.EdgeName(0, 1))
	assert.Equal(t, "", g.EdgeHighway(0, 1))
}
