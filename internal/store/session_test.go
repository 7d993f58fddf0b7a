package store

import (
	"errors"
	"sync"
	"testing"

	"github.com/weatheria/weatheria/internal/resolve"
	"github.com/weatheria/weatheria/internal/weather"
)

func TestLatestBeforeSet(t *testing.T) {
	s := NewSession()
	_, _, err := s.Latest()
	if !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestSetReplacesWholesale(t *testing.T) {
	s := NewSession()
	s.Set(resolve.Resolved{Name: "Kolkata"}, &weather.Payload{Location: "Kolkata, IN"})
	s.Set(resolve.Resolved{Name: "Mumbai"}, &weather.Payload{Location: "Mumbai, IN"})

	loc, payload, err := s.Latest()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc.Name != "Mumbai" {
		t.Errorf("expected the later location, got %q", loc.Name)
	}
	if payload.Location != "Mumbai, IN" {
		t.Errorf("expected the later payload, got %q", payload.Location)
	}
}

func TestSessionConcurrentAccess(t *testing.T) {
	s := NewSession()
	s.Set(resolve.Resolved{Name: "Kolkata"}, &weather.Payload{Location: "Kolkata, IN"})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.Set(resolve.Resolved{Name: "Kolkata"}, &weather.Payload{Location: "Kolkata, IN"})
		}()
		go func() {
			defer wg.Done()
			if _, _, err := s.Latest(); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()
}
