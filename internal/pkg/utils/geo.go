package utils

import "math"

const earthRadiusMeters = 6371000

// Point is a WGS84 coordinate in degrees.
type Point struct {
	Lat float64
	Lng float64
}

// CalculateHaversineDistance returns the great-circle distance in meters.
func CalculateHaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)

	return 2 * earthRadiusMeters * math.Asin(math.Min(1, math.Sqrt(a)))
}

// Distance is CalculateHaversineDistance between two points.
func Distance(a, b Point) float64 {
	return CalculateHaversineDistance(a.Lat, a.Lng, b.Lat, b.Lng)
}

// WithinRadius reports whether p is at most radius meters from center.
func WithinRadius(p, center Point, radius float64) bool {
	return Distance(p, center) <= radius
}
