package walkhistory

import (
	"github.com/lintang-b-s/wanderoute/pkg/datastructure"

	"github.com/DataDog/zstd"
	"github.com/kelindar/binary"
)

// nearbyStreet is the per-entry record stored in an H3 cell bucket: the
// canonical edge identity plus the midpoint it was bucketed from.
type nearbyStreet struct {
	Edge datastructure.EdgeKey
	Lat  float64
	Lon  float64
}

func encodeStreets(streets []nearbyStreet) ([]byte, error) {
	raw, err := binary.Marshal(streets)
	if err != nil {
		return nil, err
	}
	return zstd.Compress(nil, raw)
}

func decodeStreets(compressed []byte) ([]nearbyStreet, error) {
	raw, err := zstd.Decompress(nil, compressed)
	if err != nil {
		return nil, err
	}
	var streets []nearbyStreet
	if err := binary.Unmarshal(raw, &streets); err != nil {
		return nil, err
	}
	return streets, nil
}
