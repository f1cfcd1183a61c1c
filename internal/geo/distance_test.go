package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistance_OneDegreeAtEquator(t *testing.T) {
	// R * pi / 180 = 111194.93 m
	assert.Equal(t, 111195, Distance(Coordinate{0, 0}, Coordinate{0, 1}))
	assert.Equal(t, 111195, Distance(Coordinate{0, 0}, Coordinate{1, 0}))
}

func TestDistance_SamePointIsZero(t *testing.T) {
	points := []Coordinate{
		{0, 0},
		{10.5, 20.7},
		{60.17012143, 24.92813512},
		{-90, 180},
		{89.9999999999999, -179.9999999999999},
	}
	for _, p := range points {
		assert.Equal(t, 0, Distance(p, p), "point %+v", p)
	}
}

func TestDistance_Symmetric(t *testing.T) {
	pairs := [][2]Coordinate{
		{{60.17094, 24.93087}, {60.17012143, 24.92813512}},
		{{-33.8688, 151.2093}, {51.5074, -0.1278}},
		{{0, 0}, {0, 0.0053959}},
	}
	for _, p := range pairs {
		assert.Equal(t, Distance(p[0], p[1]), Distance(p[1], p[0]))
	}
}

func TestDistance_Antipodal(t *testing.T) {
	want := int(math.Round(EarthRadius * math.Pi))
	assert.Equal(t, want, Distance(Coordinate{0, 0}, Coordinate{0, 180}))
	assert.Equal(t, want, Distance(Coordinate{90, 0}, Coordinate{-90, 0}))
}

func TestDistance_RoundsToNearestMeter(t *testing.T) {
	// 0.0053959 deg of longitude at the equator is 599.997 m
	assert.Equal(t, 600, Distance(Coordinate{0, 0}, Coordinate{0, 0.0053959}))
	// 0.0044966 deg is 499.999 m
	assert.Equal(t, 500, Distance(Coordinate{0, 0}, Coordinate{0, 0.0044966}))
}

func TestFromLonLat(t *testing.T) {
	c, err := FromLonLat([]float64{24.92813512, 60.17012143})
	require.NoError(t, err)
	assert.Equal(t, Coordinate{Lat: 60.17012143, Lon: 24.92813512}, c)

	_, err = FromLonLat([]float64{24.9})
	assert.ErrorIs(t, err, ErrShortPair)
}
