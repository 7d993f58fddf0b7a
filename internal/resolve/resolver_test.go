package resolve

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/weatheria/weatheria/internal/geo"
	"github.com/weatheria/weatheria/internal/weather"
)

type stubProber struct {
	calls []geo.Coordinate
	fetch func(lat, lon float64) (*weather.Payload, error)
}

func (s *stubProber) Fetch(ctx context.Context, lat, lon float64) (*weather.Payload, error) {
	s.calls = append(s.calls, geo.Coordinate{Lat: lat, Lon: lon})
	return s.fetch(lat, lon)
}

type stubGeocoder struct {
	candidates []geo.Candidate
	err        error
}

func (s *stubGeocoder) ReverseSearch(ctx context.Context, coord geo.Coordinate) ([]geo.Candidate, error) {
	return s.candidates, s.err
}

func payloadAt(location string) *weather.Payload {
	return &weather.Payload{Location: location, Temperature: 25}
}

func proberFailingExceptAt(lat, lon float64, payload *weather.Payload) *stubProber {
	return &stubProber{fetch: func(probeLat, probeLon float64) (*weather.Payload, error) {
		if probeLat == lat && probeLon == lon {
			return payload, nil
		}
		return nil, errors.New("no data")
	}}
}

func TestResolveWithoutGPSUsesDefault(t *testing.T) {
	prober := proberFailingExceptAt(22.5726, 88.3639, payloadAt("Kolkata, IN"))
	r := New(prober, &stubGeocoder{err: errors.New("unreachable")})

	var statuses []string
	r.SetStatusFunc(func(s string) { statuses = append(statuses, s) })

	loc, payload, err := r.Resolve(context.Background(), nil)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if loc.DisplayName != "Kolkata (default location)" {
		t.Errorf("unexpected display name %q", loc.DisplayName)
	}
	if loc.Lat != 22.5726 || loc.Lon != 88.3639 {
		t.Errorf("unexpected coordinate %v/%v", loc.Lat, loc.Lon)
	}
	if payload == nil {
		t.Fatal("expected a weather payload")
	}
	// A denied fix must not trigger geocoding or probing stages.
	if len(prober.calls) != 1 {
		t.Errorf("expected a single probe at the default city, got %d", len(prober.calls))
	}
	// The denial notice is followed by the hard-default stage's own status.
	want := []string{"Location access denied, using Kolkata...", "Using Kolkata as fallback..."}
	if !reflect.DeepEqual(statuses, want) {
		t.Errorf("expected statuses %v, got %v", want, statuses)
	}
}

func TestResolvePrefersReverseGeocoding(t *testing.T) {
	cands := []geo.Candidate{
		{Name: "Bidhannagar", State: "West Bengal", Country: "IN", Lat: 22.58, Lon: 88.41},
		{Name: "Kolkata", State: "West Bengal", Country: "IN", Lat: 22.5726, Lon: 88.3639},
	}
	// The first candidate has no weather data; the second does.
	prober := proberFailingExceptAt(22.5726, 88.3639, payloadAt("Kolkata, IN"))
	r := New(prober, &stubGeocoder{candidates: cands})

	loc, _, err := r.Resolve(context.Background(), &geo.Coordinate{Lat: 22.58, Lon: 88.40})
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if loc.Name != "Kolkata" {
		t.Errorf("expected second candidate to win, got %q", loc.Name)
	}
	if loc.DisplayName != "Kolkata, West Bengal, IN" {
		t.Errorf("unexpected display name %q", loc.DisplayName)
	}
	if len(prober.calls) != 2 {
		t.Errorf("expected candidates probed in order, got %d calls", len(prober.calls))
	}
}

func TestResolveRadiusSearch(t *testing.T) {
	// Geocoding is down; the north probe of the smallest radius has data.
	prober := proberFailingExceptAt(20.1, 75, payloadAt("Testville, IN"))
	r := New(prober, &stubGeocoder{err: errors.New("unreachable")})

	var statuses []string
	r.SetStatusFunc(func(s string) { statuses = append(statuses, s) })

	loc, _, err := r.Resolve(context.Background(), &geo.Coordinate{Lat: 20, Lon: 75})
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if loc.Name != "Testville" {
		t.Errorf("expected name from the payload location, got %q", loc.Name)
	}
	if loc.DisplayName != "Testville, IN (nearest city)" {
		t.Errorf("unexpected display name %q", loc.DisplayName)
	}
	if loc.Lat != 20.1 || loc.Lon != 75 {
		t.Errorf("unexpected coordinate %v/%v", loc.Lat, loc.Lon)
	}

	// The center is probed before the cardinal offsets.
	if prober.calls[0] != (geo.Coordinate{Lat: 20, Lon: 75}) {
		t.Errorf("expected center probe first, got %v", prober.calls[0])
	}
	if prober.calls[1] != (geo.Coordinate{Lat: 20.1, Lon: 75}) {
		t.Errorf("expected north probe second, got %v", prober.calls[1])
	}

	found := false
	for _, s := range statuses {
		if s == "Searching within 11km radius..." {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a radius status message, got %v", statuses)
	}
}

func TestResolveFallsBackToMajorCity(t *testing.T) {
	// For a fix at (20, 75) the three nearest table entries are Pune, Thane
	// and Mumbai. Only Mumbai has weather data.
	prober := proberFailingExceptAt(19.076, 72.8777, payloadAt("Mumbai, IN"))
	r := New(prober, &stubGeocoder{err: errors.New("unreachable")})

	var statuses []string
	r.SetStatusFunc(func(s string) { statuses = append(statuses, s) })

	loc, payload, err := r.Resolve(context.Background(), &geo.Coordinate{Lat: 20, Lon: 75})
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if loc.Name != "Mumbai" {
		t.Errorf("expected Mumbai, got %q", loc.Name)
	}
	if loc.DisplayName != "Mumbai (nearest major city)" {
		t.Errorf("unexpected display name %q", loc.DisplayName)
	}
	if payload.Location != "Mumbai, IN" {
		t.Errorf("unexpected payload location %q", payload.Location)
	}

	// Nearer cities are tried first.
	var tried []string
	for _, s := range statuses {
		var name string
		if n, err := fmt.Sscanf(s, "Trying %s", &name); n == 1 && err == nil {
			tried = append(tried, name)
		}
	}
	want := []string{"Pune...", "Thane...", "Mumbai..."}
	if !reflect.DeepEqual(tried, want) {
		t.Errorf("expected city probes %v, got %v", want, tried)
	}
}

func TestResolveExhaustionIsTerminal(t *testing.T) {
	prober := &stubProber{fetch: func(lat, lon float64) (*weather.Payload, error) {
		return nil, errors.New("no data anywhere")
	}}
	r := New(prober, &stubGeocoder{err: errors.New("unreachable")})

	_, _, err := r.Resolve(context.Background(), &geo.Coordinate{Lat: 0, Lon: 0})
	if !errors.Is(err, ErrExhausted) {
		t.Fatalf("expected ErrExhausted, got %v", err)
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	run := func() Resolved {
		prober := proberFailingExceptAt(19.076, 72.8777, payloadAt("Mumbai, IN"))
		r := New(prober, &stubGeocoder{err: errors.New("unreachable")})
		loc, _, err := r.Resolve(context.Background(), &geo.Coordinate{Lat: 20, Lon: 75})
		if err != nil {
			t.Fatalf("resolve failed: %v", err)
		}
		return loc
	}

	if first, second := run(), run(); first != second {
		t.Errorf("identical inputs resolved differently: %+v vs %+v", first, second)
	}
}
