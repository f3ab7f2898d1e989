// Package geo содержит геодезические функции, общие для клиента и сервера.
package geo

import "math"

// EarthRadiusMeters средний радиус Земли
const EarthRadiusMeters = 6371e3

// Haversine returns the great-circle distance in meters between two points.
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	phi1 := toRadians(lat1)
	phi2 := toRadians(lat2)
	dPhi := toRadians(lat2 - lat1)
	dLambda := toRadians(lng2 - lng1)

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMeters * c
}

// WithinRadius reports whether the two points are at most radiusMeters apart.
func WithinRadius(lat1, lng1, lat2, lng2, radiusMeters float64) bool {
	return Haversine(lat1, lng1, lat2, lng2) <= radiusMeters
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
