package geo

import "math"

// EarthRadiusM is the Earth radius in meters for Haversine.
const EarthRadiusM = 6371000.0

// HaversineM returns distance in meters between two points (lat/lng in degrees).
func HaversineM(lat1, lng1, lat2, lng2 float64) float64 {
	rad := func(d float64) float64 { return d * math.Pi / 180 }
	φ1, φ2 := rad(lat1), rad(lat2)
	Δφ := rad(lat2 - lat1)
	Δλ := rad(lng2 - lng1)
	a := math.Sin(Δφ/2)*math.Sin(Δφ/2) +
		math.Cos(φ1)*math.Cos(φ2)*math.Sin(Δλ/2)*math.Sin(Δλ/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusM * c
}

// Point is a lat/lng pair in degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// InCircle reports whether (lat, lng) is within radiusM meters of the center.
// A point exactly on the boundary counts as inside.
func InCircle(lat, lng, centerLat, centerLng, radiusM float64) bool {
	return HaversineM(lat, lng, centerLat, centerLng) <= radiusM
}

// InPolygon reports whether (lat, lng) is inside the polygon by ray casting.
// Vertices on an edge may land on either side; polygons here are coarse site
// boundaries, so edge precision does not matter.
func InPolygon(lat, lng float64, poly []Point) bool {
	if len(poly) < 3 {
		return false
	}
	inside := false
	j := len(poly) - 1
	for i := 0; i < len(poly); i++ {
		yi, xi := poly[i].Lat, poly[i].Lng
		yj, xj := poly[j].Lat, poly[j].Lng
		if (yi > lat) != (yj > lat) &&
			lng < (xj-xi)*(lat-yi)/(yj-yi)+xi {
			inside = !inside
		}
		j = i
	}
	return inside
}

// ValidCoords reports whether lat/lng are within WGS84 ranges.
func ValidCoords(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}
