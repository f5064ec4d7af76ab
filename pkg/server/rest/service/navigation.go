// Package service holds the use-case layer between the HTTP handlers and
// the routing engine: snapping raw coordinates onto the graph, running the
// three route queries, and recording/looking up walked history.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/lintang-b-s/wanderoute/pkg/datastructure"
	"github.com/lintang-b-s/wanderoute/pkg/geo"
	"github.com/lintang-b-s/wanderoute/pkg/graph"
	"github.com/lintang-b-s/wanderoute/pkg/router"
)

var ErrLocationNotCovered = errors.New("the location you entered is not covered by the loaded map")

// WalkHistory is the subset of walkhistory.Store the navigation service
// needs. Defined here, not imported from pkg/walkhistory, so this package
// never depends on the concrete badger-backed implementation.
type WalkHistory interface {
	router.WalkedSet
	RecordEdge(ctx context.Context, key datastructure.EdgeKey, midLat, midLon float64) error
	NearbyWalkedStreets(lat, lon float64) ([]datastructure.EdgeKey, error)
}

type NavigationService struct {
	graph   *graph.CompactGraph
	history WalkHistory
}

func NewNavigationService(g *graph.CompactGraph, history WalkHistory) *NavigationService {
	return &NavigationService{graph: g, history: history}
}

// SnapLocation resolves a raw (lat, lon) to the nearest graph node, returning
// its external id and the snap distance in meters.
func (s *NavigationService) SnapLocation(ctx context.Context, lat, lon float64) (int64, float64, error) {
	idx, dist, ok := s.graph.NearestNode(lat, lon)
	if !ok {
		return 0, 0, ErrLocationNotCovered
	}
	return s.graph.ExternalID(idx), dist, nil
}

func (s *NavigationService) ShortestRoute(ctx context.Context, srcLat, srcLon, dstLat, dstLon float64) (datastructure.RouteResult, error) {
	src, _, err := s.SnapLocation(ctx, srcLat, srcLon)
	if err != nil {
		return datastructure.RouteResult{}, err
	}
	dst, _, err := s.SnapLocation(ctx, dstLat, dstLon)
	if err != nil {
		return datastructure.RouteResult{}, err
	}
	return router.ShortestPath(s.graph, src, dst)
}

func (s *NavigationService) PenalizedRoute(ctx context.Context, srcLat, srcLon, dstLat, dstLon, penalty float64) (datastructure.RouteResult, error) {
	src, _, err := s.SnapLocation(ctx, srcLat, srcLon)
	if err != nil {
		return datastructure.RouteResult{}, err
	}
	dst, _, err := s.SnapLocation(ctx, dstLat, dstLon)
	if err != nil {
		return datastructure.RouteResult{}, err
	}
	return router.PenalizedShortestPath(s.graph, src, dst, s.history, penalty)
}

func (s *NavigationService) NoveltyRoute(ctx context.Context, srcLat, srcLon, dstLat, dstLon, minNovelty, maxOverhead float64) (datastructure.RouteResult, error) {
	src, _, err := s.SnapLocation(ctx, srcLat, srcLon)
	if err != nil {
		return datastructure.RouteResult{}, err
	}
	dst, _, err := s.SnapLocation(ctx, dstLat, dstLon)
	if err != nil {
		return datastructure.RouteResult{}, err
	}
	var walked router.WalkedSet
	if s.history != nil {
		walked = s.history
	}
	return router.NoveltyRoute(s.graph, src, dst, walked, router.NoveltyOptions{
		MinNovelty:  minNovelty,
		MaxOverhead: maxOverhead,
	})
}

// RecordWalkedEdge snaps both endpoints and marks the edge between them as
// walked, bucketed at its midpoint for later nearby-street lookups.
func (s *NavigationService) RecordWalkedEdge(ctx context.Context, srcLat, srcLon, dstLat, dstLon float64) error {
	if s.history == nil {
		return fmt.Errorf("walked-edge history is not configured on this server")
	}
	src, _, err := s.SnapLocation(ctx, srcLat, srcLon)
	if err != nil {
		return err
	}
	dst, _, err := s.SnapLocation(ctx, dstLat, dstLon)
	if err != nil {
		return err
	}
	midLat, midLon := geo.Midpoint(srcLat, srcLon, dstLat, dstLon)
	return s.history.RecordEdge(ctx, datastructure.NewEdgeKey(src, dst), midLat, midLon)
}

func (s *NavigationService) NearbyWalkedStreets(ctx context.Context, lat, lon float64) ([]datastructure.EdgeKey, error) {
	if s.history == nil {
		return nil, fmt.Errorf("walked-edge history is not configured on this server")
	}
	return s.history.NearbyWalkedStreets(lat, lon)
}
