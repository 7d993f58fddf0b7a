package resolve

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/weatheria/weatheria/internal/geo"
	"github.com/weatheria/weatheria/internal/weather"
)

// ErrExhausted is returned when every fallback stage failed, including the
// hard default. The only remedy is a manual search.
var ErrExhausted = errors.New("unable to fetch weather data, please try searching for a city manually")

// Search radii in degrees, roughly 11/22/55/111/222 km.
var searchRadii = []float64{0.1, 0.2, 0.5, 1.0, 2.0}

// Number of nearest major cities probed before the hard default.
const majorCityProbes = 5

// WeatherProber confirms weather availability at a coordinate.
type WeatherProber interface {
	Fetch(ctx context.Context, lat, lon float64) (*weather.Payload, error)
}

// ReverseGeocoder maps a coordinate to named-place candidates.
type ReverseGeocoder interface {
	ReverseSearch(ctx context.Context, coord geo.Coordinate) ([]geo.Candidate, error)
}

// Resolved is the resolver's output: one coordinate with a display name and
// confirmed weather availability. It is replaced wholesale on every
// resolution cycle, never mutated.
type Resolved struct {
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Name        string  `json:"name"`
	DisplayName string  `json:"displayName"`
}

// Resolver walks a fixed fallback ladder (reverse geocoding, radius
// search, major cities, hard default) until some coordinate yields a
// weather payload. Gateway errors advance the ladder; only total
// exhaustion is reported.
type Resolver struct {
	weather WeatherProber
	geo     ReverseGeocoder
	status  func(string)
}

// New creates a Resolver over the given gateways.
func New(w WeatherProber, g ReverseGeocoder) *Resolver {
	return &Resolver{
		weather: w,
		geo:     g,
		status:  func(string) {},
	}
}

// SetStatusFunc installs a callback receiving human-readable progress
// strings at stage transitions. Purely observational.
func (r *Resolver) SetStatusFunc(fn func(string)) {
	if fn != nil {
		r.status = fn
	}
}

// Resolve produces exactly one usable location. A nil gps means the fix was
// denied or unavailable; that skips straight to the hard default rather
// than guessing a reference point.
func (r *Resolver) Resolve(ctx context.Context, gps *geo.Coordinate) (Resolved, *weather.Payload, error) {
	if gps == nil {
		r.status("Location access denied, using Kolkata...")
		return r.hardDefault(ctx)
	}

	if loc, payload, ok := r.tryReverseGeocoding(ctx, *gps); ok {
		return loc, payload, nil
	}
	if loc, payload, ok := r.tryRadiusSearch(ctx, *gps); ok {
		return loc, payload, nil
	}
	if loc, payload, ok := r.tryMajorCities(ctx, *gps); ok {
		return loc, payload, nil
	}
	return r.hardDefault(ctx)
}

// tryReverseGeocoding asks for named places around the fix and probes each
// candidate in provider order.
func (r *Resolver) tryReverseGeocoding(ctx context.Context, gps geo.Coordinate) (Resolved, *weather.Payload, bool) {
	r.status("Finding your nearest city with weather data...")

	candidates, err := r.geo.ReverseSearch(ctx, gps)
	if err != nil {
		slog.Debug("reverse geocoding unavailable", "error", err)
		return Resolved{}, nil, false
	}

	for _, cand := range candidates {
		r.status(fmt.Sprintf("Checking weather for %s...", cand.Name))

		payload, err := r.weather.Fetch(ctx, cand.Lat, cand.Lon)
		if err != nil {
			continue
		}
		return Resolved{
			Lat:         cand.Lat,
			Lon:         cand.Lon,
			Name:        cand.Name,
			DisplayName: cand.DisplayName(),
		}, payload, true
	}
	return Resolved{}, nil, false
}

// tryRadiusSearch probes fixed points around the fix at growing radii,
// bypassing geocoding entirely.
func (r *Resolver) tryRadiusSearch(ctx context.Context, gps geo.Coordinate) (Resolved, *weather.Payload, bool) {
	for _, radius := range searchRadii {
		r.status(fmt.Sprintf("Searching within %dkm radius...", int(math.Round(radius*111))))

		for _, point := range probePoints(gps, radius) {
			payload, err := r.weather.Fetch(ctx, point.Lat, point.Lon)
			if err != nil {
				continue
			}
			name, _, _ := strings.Cut(payload.Location, ",")
			return Resolved{
				Lat:         point.Lat,
				Lon:         point.Lon,
				Name:        name,
				DisplayName: payload.Location + " (nearest city)",
			}, payload, true
		}
	}
	return Resolved{}, nil, false
}

// probePoints returns the 7 fixed probe points for a radius: center, the
// four cardinal offsets, and the half-radius NE/SW diagonals, in that order.
func probePoints(center geo.Coordinate, radius float64) []geo.Coordinate {
	return []geo.Coordinate{
		{Lat: center.Lat, Lon: center.Lon},
		{Lat: center.Lat + radius, Lon: center.Lon},
		{Lat: center.Lat - radius, Lon: center.Lon},
		{Lat: center.Lat, Lon: center.Lon + radius},
		{Lat: center.Lat, Lon: center.Lon - radius},
		{Lat: center.Lat + radius/2, Lon: center.Lon + radius/2},
		{Lat: center.Lat - radius/2, Lon: center.Lon - radius/2},
	}
}

// tryMajorCities probes the nearest entries of the static city table,
// sorted by Euclidean distance in degree space (not geodesic).
func (r *Resolver) tryMajorCities(ctx context.Context, gps geo.Coordinate) (Resolved, *weather.Payload, bool) {
	r.status("Finding nearest major city...")

	sorted := make([]MajorCity, len(majorCities))
	copy(sorted, majorCities)
	sort.SliceStable(sorted, func(i, j int) bool {
		return degreeDistance(gps, sorted[i].Coord) < degreeDistance(gps, sorted[j].Coord)
	})

	probes := sorted
	if len(probes) > majorCityProbes {
		probes = probes[:majorCityProbes]
	}

	for _, city := range probes {
		r.status(fmt.Sprintf("Trying %s...", city.Name))

		payload, err := r.weather.Fetch(ctx, city.Coord.Lat, city.Coord.Lon)
		if err != nil {
			continue
		}
		return Resolved{
			Lat:         city.Coord.Lat,
			Lon:         city.Coord.Lon,
			Name:        city.Name,
			DisplayName: city.Name + " (nearest major city)",
		}, payload, true
	}
	return Resolved{}, nil, false
}

// hardDefault probes the fixed default coordinate. Failure here is terminal.
func (r *Resolver) hardDefault(ctx context.Context) (Resolved, *weather.Payload, error) {
	r.status(fmt.Sprintf("Using %s as fallback...", defaultCity.Name))

	payload, err := r.weather.Fetch(ctx, defaultCity.Coord.Lat, defaultCity.Coord.Lon)
	if err != nil {
		return Resolved{}, nil, ErrExhausted
	}
	return Resolved{
		Lat:         defaultCity.Coord.Lat,
		Lon:         defaultCity.Coord.Lon,
		Name:        defaultCity.Name,
		DisplayName: defaultCity.Name + " (default location)",
	}, payload, nil
}

func degreeDistance(a, b geo.Coordinate) float64 {
	return math.Sqrt(math.Pow(a.Lat-b.Lat, 2) + math.Pow(a.Lon-b.Lon, 2))
}
