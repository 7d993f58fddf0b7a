package resolve

import "github.com/weatheria/weatheria/internal/geo"

// MajorCity is a static last-resort fallback candidate.
type MajorCity struct {
	Name    string
	Coord   geo.Coordinate
	Country string
}

// Fixed default probed when everything else is exhausted.
var defaultCity = MajorCity{
	Name:    "Kolkata",
	Coord:   geo.Coordinate{Lat: 22.5726, Lon: 88.3639},
	Country: "IN",
}

// majorCities is the read-only reference table used by the major-city
// fallback stage.
var majorCities = []MajorCity{
	{Name: "Mumbai", Coord: geo.Coordinate{Lat: 19.076, Lon: 72.8777}, Country: "IN"},
	{Name: "Delhi", Coord: geo.Coordinate{Lat: 28.6139, Lon: 77.209}, Country: "IN"},
	{Name: "Kolkata", Coord: geo.Coordinate{Lat: 22.5726, Lon: 88.3639}, Country: "IN"},
	{Name: "Bangalore", Coord: geo.Coordinate{Lat: 12.9716, Lon: 77.5946}, Country: "IN"},
	{Name: "Chennai", Coord: geo.Coordinate{Lat: 13.0827, Lon: 80.2707}, Country: "IN"},
	{Name: "Hyderabad", Coord: geo.Coordinate{Lat: 17.385, Lon: 78.4867}, Country: "IN"},
	{Name: "Pune", Coord: geo.Coordinate{Lat: 18.5204, Lon: 73.8567}, Country: "IN"},
	{Name: "Ahmedabad", Coord: geo.Coordinate{Lat: 23.0225, Lon: 72.5714}, Country: "IN"},
	{Name: "Jaipur", Coord: geo.Coordinate{Lat: 26.9124, Lon: 75.7873}, Country: "IN"},
	{Name: "Lucknow", Coord: geo.Coordinate{Lat: 26.8467, Lon: 80.9462}, Country: "IN"},
	{Name: "Kanpur", Coord: geo.Coordinate{Lat: 26.4499, Lon: 80.3319}, Country: "IN"},
	{Name: "Nagpur", Coord: geo.Coordinate{Lat: 21.1458, Lon: 79.0882}, Country: "IN"},
	{Name: "Indore", Coord: geo.Coordinate{Lat: 22.7196, Lon: 75.8577}, Country: "IN"},
	{Name: "Thane", Coord: geo.Coordinate{Lat: 19.2183, Lon: 72.9781}, Country: "IN"},
	{Name: "Bhopal", Coord: geo.Coordinate{Lat: 23.2599, Lon: 77.4126}, Country: "IN"},
	{Name: "Visakhapatnam", Coord: geo.Coordinate{Lat: 17.6868, Lon: 83.2185}, Country: "IN"},
	{Name: "Patna", Coord: geo.Coordinate{Lat: 25.5941, Lon: 85.1376}, Country: "IN"},
	{Name: "Vadodara", Coord: geo.Coordinate{Lat: 22.3072, Lon: 73.1812}, Country: "IN"},
	{Name: "Ghaziabad", Coord: geo.Coordinate{Lat: 28.6692, Lon: 77.4538}, Country: "IN"},
	{Name: "Ludhiana", Coord: geo.Coordinate{Lat: 30.901, Lon: 75.8573}, Country: "IN"},
	{Name: "New York", Coord: geo.Coordinate{Lat: 40.7128, Lon: -74.006}, Country: "US"},
	{Name: "London", Coord: geo.Coordinate{Lat: 51.5074, Lon: -0.1278}, Country: "GB"},
	{Name: "Tokyo", Coord: geo.Coordinate{Lat: 35.6762, Lon: 139.6503}, Country: "JP"},
	{Name: "Paris", Coord: geo.Coordinate{Lat: 48.8566, Lon: 2.3522}, Country: "FR"},
	{Name: "Sydney", Coord: geo.Coordinate{Lat: -33.8688, Lon: 151.2093}, Country: "AU"},
	{Name: "Singapore", Coord: geo.Coordinate{Lat: 1.3521, Lon: 103.8198}, Country: "SG"},
	{Name: "Dubai", Coord: geo.Coordinate{Lat: 25.2048, Lon: 55.2708}, Country: "AE"},
	{Name: "Bangkok", Coord: geo.Coordinate{Lat: 13.7563, Lon: 100.5018}, Country: "TH"},
}
