// Package nearby holds the proximity query behind GET /locationR.
package nearby

import (
	"math"
	"strconv"

	"github.com/kailas-cloud/restodex/internal/domain"
	"github.com/kailas-cloud/restodex/internal/domain/geo"
)

// Radius defaults in kilometers.
const (
	DefaultRadiusKm = 10.0
	MaxRadiusKm     = 500.0
)

// Query is a validated point-and-radius search.
type Query struct {
	lat, lon float64
	radiusKm float64
}

// New validates a proximity query. maxRadiusKm <= 0 selects MaxRadiusKm.
func New(lat, lon, radiusKm, maxRadiusKm float64) (Query, error) {
	if maxRadiusKm <= 0 {
		maxRadiusKm = MaxRadiusKm
	}
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return Query{}, domain.NewParameterError("latitude", "must be between -90 and 90")
	}
	if math.IsNaN(lon) || lon < -180 || lon > 180 {
		return Query{}, domain.NewParameterError("longitude", "must be between -180 and 180")
	}
	if math.IsNaN(radiusKm) || radiusKm <= 0 {
		return Query{}, domain.NewParameterError("radius", "must be a positive number of kilometers")
	}
	if radiusKm > maxRadiusKm {
		return Query{}, domain.NewParameterError("radius",
			"must not exceed "+strconv.FormatFloat(maxRadiusKm, 'f', -1, 64)+" km")
	}
	return Query{lat: lat, lon: lon, radiusKm: radiusKm}, nil
}

// Latitude returns the center latitude in degrees.
func (q Query) Latitude() float64 { return q.lat }

// Longitude returns the center longitude in degrees.
func (q Query) Longitude() float64 { return q.lon }

// RadiusKm returns the search radius in kilometers.
func (q Query) RadiusKm() float64 { return q.radiusKm }

// Box returns the candidate bounding box for store prefiltering.
func (q Query) Box() geo.Box {
	return geo.BoundingBox(q.lat, q.lon, q.radiusKm*1000)
}

// DistanceKm returns the great-circle distance from the center.
func (q Query) DistanceKm(lat, lon float64) float64 {
	return geo.HaversineKm(q.lat, q.lon, lat, lon)
}

// Within reports whether the point lies inside the radius, bound inclusive.
func (q Query) Within(lat, lon float64) bool {
	return q.DistanceKm(lat, lon) <= q.radiusKm
}
