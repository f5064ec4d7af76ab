// Package walkhistory persists the set of edges a user has already walked,
// backed by an embedded badger key-value store, H3-bucketed so a "nearby
// walked streets" query only ever scans a handful of grid cells.
package walkhistory

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/lintang-b-s/wanderoute/pkg/datastructure"

	"github.com/dgraph-io/badger/v4"
	"github.com/uber/h3-go/v4"
)

const h3Resolution = 9

var ErrNoNearbyStreets = errors.New("walkhistory: no walked streets found nearby")

// Store is a badger-backed walked-edge set. It satisfies router.WalkedSet
// (Contains, Empty) without importing the router package, so the router
// stays free of any dependency on persistence.
type Store struct {
	db *badger.DB
}

func NewStore(db *badger.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Close() error {
	return s.db.Close()
}

func edgeStoreKey(key datastructure.EdgeKey) []byte {
	buf := make([]byte, len("edge:")+16)
	copy(buf, "edge:")
	binary.BigEndian.PutUint64(buf[5:13], uint64(key.A))
	binary.BigEndian.PutUint64(buf[13:21], uint64(key.B))
	return buf
}

var countKey = []byte("meta:count")

// RecordEdge marks key as walked and buckets its midpoint (midLat, midLon)
// into the H3 cell used to answer nearby-street queries.
func (s *Store) RecordEdge(ctx context.Context, key datastructure.EdgeKey, midLat, midLon float64) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(edgeStoreKey(key)); err == nil {
			return nil // already recorded
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		if err := txn.Set(edgeStoreKey(key), []byte{1}); err != nil {
			return err
		}
		if err := bumpCount(txn); err != nil {
			return err
		}
		return appendToCell(txn, midLat, midLon, key)
	})
}

func bumpCount(txn *badger.Txn) error {
	count := uint64(0)
	item, err := txn.Get(countKey)
	if err == nil {
		if err := item.Value(func(val []byte) error {
			if len(val) == 8 {
				count = binary.BigEndian.Uint64(val)
			}
			return nil
		}); err != nil {
			return err
		}
	} else if !errors.Is(err, badger.ErrKeyNotFound) {
		return err
	}

	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, count+1)
	return txn.Set(countKey, buf)
}

// Contains reports whether key has been recorded as walked.
func (s *Store) Contains(key datastructure.EdgeKey) bool {
	found := false
	_ = s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(edgeStoreKey(key))
		found = err == nil
		return nil
	})
	return found
}

// Empty reports whether the store has recorded zero edges, letting the
// router's novelty-route driver skip penalty search when there is nothing
// to route around.
func (s *Store) Empty() bool {
	count := uint64(0)
	_ = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(countKey)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			if len(val) == 8 {
				count = binary.BigEndian.Uint64(val)
			}
			return nil
		})
	})
	return count == 0
}

func cellKey(cell h3.Cell) []byte {
	return []byte(fmt.Sprintf("h3:%s", cell.String()))
}

func appendToCell(txn *badger.Txn, lat, lon float64, key datastructure.EdgeKey) error {
	cell := h3.LatLngToCell(h3.NewLatLng(lat, lon), h3Resolution)
	ck := cellKey(cell)

	var streets []nearbyStreet
	item, err := txn.Get(ck)
	if err == nil {
		if err := item.Value(func(val []byte) error {
			decoded, decErr := decodeStreets(val)
			if decErr != nil {
				return decErr
			}
			streets = decoded
			return nil
		}); err != nil {
			return err
		}
	} else if !errors.Is(err, badger.ErrKeyNotFound) {
		return err
	}

	streets = append(streets, nearbyStreet{Edge: key, Lat: lat, Lon: lon})
	encoded, err := encodeStreets(streets)
	if err != nil {
		return err
	}
	return txn.Set(ck, encoded)
}

// NearbyWalkedStreets returns previously walked edges near (lat, lon),
// expanding the H3 search ring outward until it finds something or gives up
// at ring 10 — the same widening strategy as a fixed-radius neighbor scan,
// adapted to H3's ring geometry.
func (s *Store) NearbyWalkedStreets(lat, lon float64) ([]datastructure.EdgeKey, error) {
	origin := h3.LatLngToCell(h3.NewLatLng(lat, lon), h3Resolution)

	var result []nearbyStreet
	collect := func(cell h3.Cell) error {
		return s.db.View(func(txn *badger.Txn) error {
			item, err := txn.Get(cellKey(cell))
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
			return item.Value(func(val []byte) error {
				streets, decErr := decodeStreets(val)
				if decErr != nil {
					return decErr
				}
				result = append(result, streets...)
				return nil
			})
		})
	}

	if err := collect(origin); err != nil {
		return nil, err
	}

	for ring := 1; ring <= 10 && len(result) == 0; ring++ {
		for _, cell := range h3.GridDisk(origin, ring) {
			if cell == origin {
				continue
			}
			if err := collect(cell); err != nil {
				return nil, err
			}
		}
	}

	if len(result) == 0 {
		return nil, ErrNoNearbyStreets
	}

	keys := make([]datastructure.EdgeKey, len(result))
	for i, s := range result {
		keys[i] = s.Edge
	}
	return keys, nil
}

// searchRingForArea mirrors the teacher's area-driven ring sizing: grow the
// H3 ring radius until the disk's area covers the requested search radius.
func searchRingForArea(origin h3.Cell, radiusMeters float64) int {
	originAreaM2 := h3.CellAreaM2(origin)
	searchArea := math.Pi * radiusMeters * radiusMeters

	radius := 0
	diskArea := originAreaM2
	for diskArea < searchArea && radius < 20 {
		radius++
		cellCount := float64(3*radius*(radius+1) + 1)
		diskArea = cellCount * originAreaM2
	}
	return radius
}

// NearbyWalkedStreetsWithinRadius bounds the search explicitly by an
// approximate radius in meters instead of NearbyWalkedStreets' widening
// ring-by-ring scan.
func (s *Store) NearbyWalkedStreetsWithinRadius(lat, lon, radiusMeters float64) ([]datastructure.EdgeKey, error) {
	origin := h3.LatLngToCell(h3.NewLatLng(lat, lon), h3Resolution)
	ring := searchRingForArea(origin, radiusMeters)

	var result []nearbyStreet
	for _, cell := range h3.GridDisk(origin, ring) {
		err := s.db.View(func(txn *badger.Txn) error {
			item, err := txn.Get(cellKey(cell))
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
			return item.Value(func(val []byte) error {
				streets, decErr := decodeStreets(val)
				if decErr != nil {
					return decErr
				}
				result = append(result, streets...)
				return nil
			})
		})
		if err != nil {
			return nil, err
		}
	}

	if len(result) == 0 {
		return nil, ErrNoNearbyStreets
	}
	keys := make([]datastructure.EdgeKey, len(result))
	for i, s := range result {
		keys[i] = s.Edge
	}
	return keys, nil
}
