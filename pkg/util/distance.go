package util

import (
	"math"

	"github.com/milicode/gym-panel/internal/app/model"
)

const earthRadiusKm = 6371.0

// DistanceKm returns the haversine distance between two points in kilometers.
func DistanceKm(a, b model.Coordinates) float64 {
	lat1Rad := degToRad(a.Latitude())
	lat2Rad := degToRad(b.Latitude())
	dLat := lat2Rad - lat1Rad
	dLon := degToRad(b.Longitude() - a.Longitude())

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// DistanceFromCentreKm measures from the default map point.
func DistanceFromCentreKm(c model.Coordinates) float64 {
	return DistanceKm(model.DefaultLocation().Coordinates, c)
}

func degToRad(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}
