// Package geo provides pure geographic helpers.
package geo

import (
	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
)

// Distance returns the great-circle distance in meters between two
// coordinates, via the haversine formula. Deterministic and accurate to
// well under a meter at geofence scales (tens to thousands of meters),
// so inside/outside decisions do not oscillate from formula error.
func Distance(lat1, lng1, lat2, lng2 float64) float64 {
	return orbgeo.DistanceHaversine(orb.Point{lng1, lat1}, orb.Point{lng2, lat2})
}

// ValidCoordinates reports whether lat/lng fall in the WGS84 ranges.
func ValidCoordinates(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}
