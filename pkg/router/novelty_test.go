package router_test

import (
	"testing"

	"github.com/lintang-b-s/wanderoute/pkg/datastructure"
	"github.com/lintang-b-s/wanderoute/pkg/router"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoveltyRouteWithEmptyWalkedSetReturnsBaseline(t *testing.T) {
	g := buildGridGraph(t, 4)

	result, err := router.NoveltyRoute(g, 0, 15, nil, router.NoveltyOptions{})
	require.NoError(t, err)

	assert.Equal(t, 1.0, result.Novelty)
	assert.Equal(t, 0.0, result.Overhead)
	assert.Equal(t, result.Distance, result.ShortestDistance)
}

func TestNoveltyRouteUnknownNode(t *testing.T) {
	g := buildGridGraph(t, 3)
	_, err := router.NoveltyRoute(g, 0, 987654, nil, router.NoveltyOptions{})
	assert.Error(t, err)
}

func TestNoveltyRouteRespectsOverheadBudget(t *testing.T) {
	g := buildGridGraph(t, 6)
	walked := newFakeWalkedSet() // empty on purpose below, filled next
	for row := 0; row < 6; row++ {
		for col := 0; col < 5; col++ {
			a := int64(row*6 + col)
			b := int64(row*6 + col + 1)
			walked.edges[datastructure.NewEdgeKey(a, b)] = struct{}{}
		}
	}

	opts := router.NoveltyOptions{MinNovelty: 0.5, MaxOverhead: 0.5}
	result, err := router.NoveltyRoute(g, 0, 35, walked, opts)
	require.NoError(t, err)

	assert.LessOrEqual(t, result.Overhead, opts.MaxOverhead+1e-6)
}
