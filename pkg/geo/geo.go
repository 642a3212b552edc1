// Package geo holds the geodesy helpers used by clustering, weather caching
// and the clear-sky solar estimate.
package geo

import (
	"fmt"
	"math"
)

// EarthRadiusMeters is the mean Earth radius used for great-circle distances.
const EarthRadiusMeters = 6371000.0

type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (p Point) String() string {
	return fmt.Sprintf("%.5f,%.5f", p.Lat, p.Lon)
}

// Valid rejects non-finite and out-of-range coordinates.
func (p Point) Valid() bool {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lon) {
		return false
	}
	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}

// IsZero reports the 0,0 fix some trackers send before they have a lock.
func (p Point) IsZero() bool {
	return p.Lat == 0 && p.Lon == 0
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// DistanceMeters returns the haversine great-circle distance between a and b.
func DistanceMeters(a, b Point) float64 {
	phi1 := radians(a.Lat)
	phi2 := radians(b.Lat)
	dPhi := radians(b.Lat - a.Lat)
	dLambda := radians(b.Lon - a.Lon)

	sinDPhi := math.Sin(dPhi / 2)
	sinDLambda := math.Sin(dLambda / 2)
	h := sinDPhi*sinDPhi + math.Cos(phi1)*math.Cos(phi2)*sinDLambda*sinDLambda
	if h < 0 {
		h = 0
	}
	if h > 1 {
		h = 1
	}
	return 2 * EarthRadiusMeters * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// Centroid is the arithmetic mean of the latitudes and longitudes. It is not
// antimeridian aware, which is fine for clusters a few hundred meters wide.
func Centroid(points []Point) Point {
	if len(points) == 0 {
		return Point{}
	}
	var lat, lon float64
	for _, p := range points {
		lat += p.Lat
		lon += p.Lon
	}
	n := float64(len(points))
	return Point{Lat: lat / n, Lon: lon / n}
}

// Cell identifies a grid cell of a fixed step in degrees.
type Cell struct {
	Lat float64
	Lon float64
}

func (c Cell) Key() string {
	return fmt.Sprintf("%.1f:%.1f", c.Lat, c.Lon)
}

func (c Cell) Point() Point {
	return Point{Lat: c.Lat, Lon: c.Lon}
}

// CellOf rounds p to 0.1 degree, roughly 11 km of latitude.
func CellOf(p Point) Cell {
	return Cell{
		Lat: math.Round(p.Lat*10) / 10,
		Lon: math.Round(p.Lon*10) / 10,
	}
}
