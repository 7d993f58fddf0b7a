package store

import (
	"errors"
	"sync"

	"github.com/weatheria/weatheria/internal/resolve"
	"github.com/weatheria/weatheria/internal/weather"
)

// ErrNoSession is returned before any location has been resolved.
var ErrNoSession = errors.New("no resolved location for session")

// Session is the single-slot, concurrency-safe holder for the current
// resolved location and its weather payload. The slot is overwritten
// atomically; old values are wholly replaced, never merged.
type Session struct {
	mu       sync.RWMutex
	location resolve.Resolved
	payload  *weather.Payload
	set      bool
}

// NewSession creates an empty session slot.
func NewSession() *Session {
	return &Session{}
}

// Set replaces the slot with a new location/payload pair.
func (s *Session) Set(location resolve.Resolved, payload *weather.Payload) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.location = location
	s.payload = payload
	s.set = true
}

// Latest returns the current pair, or ErrNoSession when nothing has been
// resolved yet.
func (s *Session) Latest() (resolve.Resolved, *weather.Payload, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.set {
		return resolve.Resolved{}, nil, ErrNoSession
	}
	return s.location, s.payload, nil
}
