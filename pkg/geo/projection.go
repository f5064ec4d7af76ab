package geo

import "math"

// EquirectangularProject converts a (lat,lon) point in degrees to a local
// planar (x,y) approximation in meters, using the given cos(meanLat) scalar
// shared by every point projected in the same KD-tree. Squared Euclidean
// distance in this projection monotonically tracks great-circle distance
// locally, which is what makes KD-tree pruning cheap.
func EquirectangularProject(lat, lon, cosMeanLat float64) (x, y float64) {
	x = degreeToRadians(lat) * earthRadiusM
	y = degreeToRadians(lon) * earthRadiusM * cosMeanLat
	return x, y
}

// CosMeanLat returns cos(meanLat) in radians for a set of latitudes,
// persisted alongside a KD-tree so later queries project with the same
// scalar the tree was built with.
func CosMeanLat(lats []float32) float64 {
	if len(lats) == 0 {
		return 1
	}
	var sum float64
	for _, lat := range lats {
		sum += float64(lat)
	}
	mean := sum / float64(len(lats))
	return math.Cos(degreeToRadians(mean))
}

// CompassPoint maps a bearing in [0,360) to one of the eight standard
// compass directions.
func CompassPoint(bearing float64) string {
	points := [8]string{"north", "northeast", "east", "southeast", "south", "southwest", "west", "northwest"}
	idx := int(math.Floor(math.Mod(bearing+22.5, 360) / 45))
	if idx < 0 {
		idx += 8
	}
	return points[idx%8]
}

// Midpoint returns the simple arithmetic mean of two coordinates, good
// enough for bucketing a short edge's midpoint into a spatial grid cell.
func Midpoint(lat1, lon1, lat2, lon2 float64) (lat, lon float64) {
	return (lat1 + lat2) / 2, (lon1 + lon2) / 2
}

// NormalizeAngle reduces a signed angle in degrees into [-180, 180].
func NormalizeAngle(angle float64) float64 {
	for angle > 180 {
		angle -= 360
	}
	for angle < -180 {
		angle += 360
	}
	return angle
}
