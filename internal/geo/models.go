package geo

// Coordinate is a latitude/longitude pair. Values are expected to be within
// [-90,90] and [-180,180]; validation happens at the HTTP boundary.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Candidate is a named place returned by the geocoding provider. It only
// lives for the duration of a search or resolution cycle.
type Candidate struct {
	Name    string  `json:"name"`
	State   string  `json:"state,omitempty"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// DisplayName formats a candidate as "Name, State, CC" with the state
// segment included only when present.
func (c Candidate) DisplayName() string {
	if c.State != "" {
		return c.Name + ", " + c.State + ", " + c.Country
	}
	return c.Name + ", " + c.Country
}
