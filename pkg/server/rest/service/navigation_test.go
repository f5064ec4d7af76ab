package service_test

import (
	"bytes"
	"context"
	"encoding/binary"
	"os"
	"testing"

	"github.com/lintang-b-s/wanderoute/pkg/datastructure"
	"github.com/lintang-b-s/wanderoute/pkg/graph"
	"github.com/lintang-b-s/wanderoute/pkg/server/rest/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildLineGraph writes three collinear nodes 0-1-2, ~111m apart, as a
// minimal v2 CSR graph for exercising the service layer end to end.
func buildLineGraph(t *testing.T) *graph.CompactGraph {
	t.Helper()

	nodeIDs := []int64{0, 1, 2}
	lats := []float32{-7.500, -7.500, -7.500}
	lons := []float32{110.770, 110.771, 110.772}

	adjOffsets := []int32{0, 1, 3, 4}
	adjTargets := []int32{1, 0, 2, 1}
	adjWeights := []float32{111, 111, 111, 111}
	nameIdx := []uint16{1, 1, 1, 1}
	hwyIdx := []uint8{1, 1, 1, 1}
	names := []string{"", "Line Street"}
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

	path := t.TempDir() + "/line.csrg"
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	g, err := graph.Load(path, graph.LoadOptions{})
	require.NoError(t, err)
	t.Cleanup(func() { g.Close() })
	return g
}

// fakeHistory is an in-memory stand-in for a walkhistory.Store.
type fakeHistory struct {
	walked  map[datastructure.EdgeKey]struct{}
	nearby  []datastructure.EdgeKey
	nearErr error
}

func newFakeHistory() *fakeHistory {
	return &fakeHistory{walked: map[datastructure.EdgeKey]struct{}{}}
}

func (f *fakeHistory) Contains(k datastructure.EdgeKey) bool {
	_, ok := f.walked[k]
	return ok
}

func (f *fakeHistory) Empty() bool { return len(f.walked) == 0 }

func (f *fakeHistory) RecordEdge(ctx context.Context, key datastructure.EdgeKey, midLat, midLon float64) error {
	f.walked[key] = struct{}{}
	f.nearby = append(f.nearby, key)
	return nil
}

func (f *fakeHistory) NearbyWalkedStreets(lat, lon float64) ([]datastructure.EdgeKey, error) {
	if f.nearErr != nil {
		return nil, f.nearErr
	}
	return f.nearby, nil
}

func TestSnapLocationResolvesNearestNode(t *testing.T) {
	g := buildLineGraph(t)
	svc := service.NewNavigationService(g, newFakeHistory())

	nodeID, dist, err := svc.SnapLocation(context.Background(), -7.500, 110.7701)
	require.NoError(t, err)
	assert.Equal(t, int64(0), nodeID)
	assert.Greater(t, dist, 0.0)
}

func TestShortestRouteBetweenEndpoints(t *testing.T) {
	g := buildLineGraph(t)
	svc := service.NewNavigationService(g, newFakeHistory())

	result, err := svc.ShortestRoute(context.Background(), -7.500, 110.770, -7.500, 110.772)
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 1, 2}, result.Path)
	assert.InDelta(t, 222, result.Distance, 5)
}

func TestRecordWalkedEdgeThenPenalizedRouteKeepsOnlyPath(t *testing.T) {
	g := buildLineGraph(t)
	history := newFakeHistory()
	svc := service.NewNavigationService(g, history)
	ctx := context.Background()

	require.NoError(t, svc.RecordWalkedEdge(ctx, -7.500, 110.770, -7.500, 110.771))
	assert.True(t, history.Contains(datastructure.NewEdgeKey(0, 1)))

	result, err := svc.PenalizedRoute(ctx, -7.500, 110.770, -7.500, 110.772, 5.0)
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 1, 2}, result.Path) // only path available on this line graph
}

func TestNearbyWalkedStreetsDelegatesToHistory(t *testing.T) {
	g := buildLineGraph(t)
	history := newFakeHistory()
	svc := service.NewNavigationService(g, history)
	ctx := context.Background()

	require.NoError(t, svc.RecordWalkedEdge(ctx, -7.500, 110.770, -7.500, 110.771))

	edges, err := svc.NearbyWalkedStreets(ctx, -7.500, 110.7705)
	require.NoError(t, err)
	assert.Contains(t, edges, datastructure.NewEdgeKey(0, 1))
}

func TestSnapLocationFarAwayStillSnapsToClosestNode(t *testing.T) {
	g := buildLineGraph(t)
	svc := service.NewNavigationService(g, newFakeHistory())

	nodeID, dist, err := svc.SnapLocation(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Contains(t, []int64{0, 1, 2}, nodeID)
	assert.Greater(t, dist, 0.0)
}
