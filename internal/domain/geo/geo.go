package geo

import "math"

// EarthRadiusMeters is the mean radius of Earth used for Haversine distance.
const EarthRadiusMeters = 6_371_000.0

// Haversine returns the great-circle distance in meters between two points
// specified by latitude and longitude in degrees.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	lat1r := lat1 * math.Pi / 180
	lat2r := lat2 * math.Pi / 180
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1r)*math.Cos(lat2r)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMeters * c
}

// HaversineKm is Haversine in kilometers.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	return Haversine(lat1, lon1, lat2, lon2) / 1000
}

// ValidateCoordinates checks that latitude is in [-90,90] and longitude in [-180,180].
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// Box is a latitude/longitude rectangle in degrees, bounds inclusive.
type Box struct {
	MinLat, MaxLat float64
	MinLon, MaxLon float64
}

// Contains reports whether the point lies inside the box.
func (b Box) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lon >= b.MinLon && lon <= b.MaxLon
}

// BoundingBox returns a box that contains every point within radiusMeters of (lat, lon).
// The box is a superset of the circle: boxes touching a pole or crossing the
// antimeridian widen to the full longitude range.
func BoundingBox(lat, lon, radiusMeters float64) Box {
	world := Box{MinLat: -90, MaxLat: 90, MinLon: -180, MaxLon: 180}

	angular := radiusMeters / EarthRadiusMeters
	if angular >= math.Pi {
		return world
	}

	dLat := angular * 180 / math.Pi
	box := Box{MinLat: lat - dLat, MaxLat: lat + dLat}

	if box.MinLat <= -90 || box.MaxLat >= 90 {
		box.MinLat = math.Max(box.MinLat, -90)
		box.MaxLat = math.Min(box.MaxLat, 90)
		box.MinLon, box.MaxLon = -180, 180
		return box
	}

	latr := lat * math.Pi / 180
	dLon := math.Asin(math.Sin(angular)/math.Cos(latr)) * 180 / math.Pi
	box.MinLon = lon - dLon
	box.MaxLon = lon + dLon
	if box.MinLon < -180 || box.MaxLon > 180 {
		box.MinLon, box.MaxLon = -180, 180
	}
	return box
}
