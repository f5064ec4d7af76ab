package datastructure

import "github.com/twpayne/go-polyline"

// EncodePolyline renders a sequence of coordinates as a Google-encoded
// polyline string, for compact wire transfer of RouteResult.path.
func EncodePolyline(path []Coordinate) string {
	coords := make([][]float64, 0, len(path))
	for _, p := range path {
		coords = append(coords, []float64{p.Lat, p.Lon})
	}
	return string(polyline.EncodeCoords(coords))
}
