package geo

import "math"

// earthRadiusKM is the mean Earth radius used by the haversine formula.
const earthRadiusKM = 6371.0

// Region is a circular geofence: a center point plus a radius in kilometers.
type Region struct {
	Lat      float64
	Lon      float64
	RadiusKM float64
}

// Riyadh is the default fence: city center, 70 km.
var Riyadh = Region{Lat: 24.7136, Lon: 46.6753, RadiusKM: 70}

// DistanceKM returns the great-circle distance between two points in
// kilometers. Total over the whole coordinate domain, including antipodal
// and degenerate inputs.
func DistanceKM(lat1, lon1, lat2, lon2 float64) float64 {
	rlat1 := lat1 * math.Pi / 180
	rlat2 := lat2 * math.Pi / 180
	dlat := (lat2 - lat1) * math.Pi / 180
	dlon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(rlat1)*math.Cos(rlat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKM * c
}

// Contains reports whether the point lies within the region's radius.
func (r Region) Contains(lat, lon float64) bool {
	return DistanceKM(r.Lat, r.Lon, lat, lon) <= r.RadiusKM
}
