package geo_test

import (
	"testing"

	"github.com/lintang-b-s/wanderoute/pkg/geo"

	"github.com/stretchr/testify/assert"
)

func TestCalculateHaversineDistance(t *testing.T) {
	cases := []struct {
		name                              string
		latOne, longOne, latTwo, longTwo  float64
		expectedDist                      float64
	}{
		{
			name:         "about 2.1km apart",
			latOne:       -7.557155997491524,
			longOne:      110.77170252731288,
			latTwo:       -7.550209300671982,
			longTwo:      110.78942094938256,
			expectedDist: 2100,
		},
		{
			name:         "about 1.38km apart",
			latOne:       -7.546196863318374,
			longOne:      110.7775170972345,
			latTwo:       -7.550209300671982,
			longTwo:      110.78942094938256,
			expectedDist: 1380,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			dist := geo.CalculateHaversineDistance(c.latOne, c.longOne, c.latTwo, c.longTwo)
			assert.InDelta(t, c.expectedDist, dist, 100)
		})
	}
}

func TestCalculateHaversineDistanceCoincidentIsZero(t *testing.T) {
	dist := geo.CalculateHaversineDistance(-7.55, 110.77, -7.55, 110.77)
	assert.Equal(t, 0.0, dist)
}

func TestBearingToNormalizedRange(t *testing.T) {
	cases := []struct {
		name                              string
		latOne, longOne, latTwo, longTwo  float64
	}{
		{"due north", -7.0, 110.0, -6.9, 110.0},
		{"due south", -7.0, 110.0, -7.1, 110.0},
		{"due east", -7.0, 110.0, -7.0, 110.1},
		{"due west", -7.0, 110.0, -7.0, 109.9},
		{"southwest-ish", -7.0, 110.0, -7.1, 109.9},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			bearing := geo.BearingTo(c.latOne, c.longOne, c.latTwo, c.longTwo)
			assert.GreaterOrEqual(t, bearing, 0.0)
			assert.Less(t, bearing, 360.0)
		})
	}
}

func TestBearingToCardinalDirections(t *testing.T) {
	north := geo.BearingTo(-7.0, 110.0, -6.9, 110.0)
	assert.InDelta(t, 0.0, north, 1.0)

	east := geo.BearingTo(-7.0, 110.0, -7.0, 110.1)
	assert.InDelta(t, 90.0, east, 1.0)

	south := geo.BearingTo(-7.0, 110.0, -7.1, 110.0)
	assert.InDelta(t, 180.0, south, 1.0)
}
