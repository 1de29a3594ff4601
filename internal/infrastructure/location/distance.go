package location

import (
	"fmt"
	"math"

	"newsease/internal/domain"
)

const earthRadiusMeters = 6371000.0

// Distance returns the great-circle distance in meters.
func Distance(a, b domain.Coordinate) float64 {
	lat1 := radians(a.Latitude)
	lat2 := radians(b.Latitude)
	dLat := lat2 - lat1
	dLon := radians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusMeters * math.Asin(math.Min(1, math.Sqrt(h)))
}

// WithinRadius reports whether point lies at most radius meters from center.
func WithinRadius(point, center domain.Coordinate, radius float64) bool {
	return Distance(point, center) <= radius
}

// FormatDistance renders meters as "850 m" or "12.3 km".
func FormatDistance(meters float64) string {
	if meters < 1000 {
		return fmt.Sprintf("%.0f m", meters)
	}
	return fmt.Sprintf("%.1f km", meters/1000)
}

// FormatCoordinate renders "lat, lon" with six decimals.
func FormatCoordinate(c domain.Coordinate) string {
	return fmt.Sprintf("%.6f, %.6f", c.Latitude, c.Longitude)
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
