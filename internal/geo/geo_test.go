package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceKM(t *testing.T) {
	assert := assert.New(t)

	// Same point
	assert.InDelta(0, DistanceKM(24.7136, 46.6753, 24.7136, 46.6753), 0.001)

	// Riyadh -> Jeddah is roughly 848 km
	d := DistanceKM(24.7136, 46.6753, 21.4858, 39.1925)
	assert.InDelta(848, d, 10)

	// Symmetric under endpoint swap
	assert.InDelta(d, DistanceKM(21.4858, 39.1925, 24.7136, 46.6753), 0.0001)

	// Antipodal points: half the Earth's circumference, no NaN
	anti := DistanceKM(0, 0, 0, 180)
	assert.False(anti != anti, "distance must not be NaN")
	assert.InDelta(20015, anti, 10)

	// Poles are valid inputs
	assert.False(DistanceKM(90, 0, -90, 0) != DistanceKM(90, 0, -90, 0))
}

func TestRegionContains(t *testing.T) {
	assert := assert.New(t)

	tests := []struct {
		name     string
		lat, lon float64
		want     bool
	}{
		{"city center", 24.7136, 46.6753, true},
		{"diriyah", 24.7373, 46.5756, true},
		{"al kharj", 24.1483, 47.3050, false},
		{"jeddah", 21.4858, 39.1925, false},
		{"dammam", 26.3927, 49.9777, false},
		{"just inside radius", 24.7136, 47.3, true},
	}
	for _, tc := range tests {
		assert.Equal(tc.want, Riyadh.Contains(tc.lat, tc.lon), tc.name)
	}
}
