package geo

import "math"

const earthRadiusKm = 6371.0

// Point is a WGS84 coordinate.
type Point struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// Valid reports whether the coordinate lies in the lon [-180,180],
// lat [-90,90] ranges.
func (p Point) Valid() bool {
	return p.Longitude >= -180 && p.Longitude <= 180 &&
		p.Latitude >= -90 && p.Latitude <= 90
}

// DistanceKm returns the great-circle distance between two points using the
// haversine formula. The result is monotonic with true geographic distance,
// which is the property the nearest-facility ordering relies on.
func DistanceKm(a, b Point) float64 {
	lat1Rad := toRadians(a.Latitude)
	lat2Rad := toRadians(b.Latitude)
	deltaLat := toRadians(b.Latitude - a.Latitude)
	deltaLon := toRadians(b.Longitude - a.Longitude)

	h := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c
}

func toRadians(degrees float64) float64 {
	return degrees * (math.Pi / 180)
}
