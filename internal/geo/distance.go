package geo

import (
	"errors"
	"math"
)

// EarthRadius is the mean Earth radius in meters.
const EarthRadius = 6371000.0

var ErrShortPair = errors.New("coordinate pair needs two values")

// Coordinate is a latitude/longitude pair in degrees.
type Coordinate struct {
	Lat float64
	Lon float64
}

// FromLonLat builds a Coordinate from a GeoJSON ordered [lon, lat] pair.
func FromLonLat(pair []float64) (Coordinate, error) {
	if len(pair) < 2 {
		return Coordinate{}, ErrShortPair
	}
	return Coordinate{Lat: pair[1], Lon: pair[0]}, nil
}

func Radians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// Distance returns the great-circle distance between two points in meters,
// rounded to the nearest meter with halves rounded away from zero.
func Distance(from, to Coordinate) int {
	dlat := Radians(to.Lat - from.Lat)
	dlon := Radians(to.Lon - from.Lon)
	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(Radians(from.Lat))*math.Cos(Radians(to.Lat))*math.Sin(dlon/2)*math.Sin(dlon/2)
	// a can drift past 1 for antipodal points
	a = math.Min(1, math.Max(0, a))
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return int(math.Round(EarthRadius * c))
}
