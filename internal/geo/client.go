package geo

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/go-resty/resty/v2"
)

const (
	geocodingBaseURL = "https://api.openweathermap.org/geo/1.0"

	directEndpoint  = "/direct"
	reverseEndpoint = "/reverse"

	// Provider result cap for both forward and reverse search.
	maxResults = 5

	// Queries shorter than this never reach the provider.
	minQueryLength = 3

	defaultTimeout = 10 * time.Second
	userAgent      = "Weatheria/1.0"
)

// Client is a thin pass-through to the OpenWeatherMap geocoding API.
type Client struct {
	client *resty.Client
	apiKey string
}

// NewClient creates a geocoding client authenticated with the given key.
func NewClient(apiKey string) *Client {
	client := resty.New().
		SetBaseURL(geocodingBaseURL).
		SetHeader("User-Agent", userAgent).
		SetTimeout(defaultTimeout)

	return &Client{
		client: client,
		apiKey: apiKey,
	}
}

// SetBaseURL points the client at a different provider endpoint.
func (c *Client) SetBaseURL(u string) {
	c.client.SetBaseURL(u)
}

// Search resolves a free-text place name into up to five coordinate
// candidates. Queries shorter than three characters short-circuit to an
// empty result without a network call.
func (c *Client) Search(ctx context.Context, query string) ([]Candidate, error) {
	// Counted in characters, not bytes, so multibyte place names are not
	// gated early.
	if utf8.RuneCountInString(query) < minQueryLength {
		return []Candidate{}, nil
	}

	var results []Candidate
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":     query,
			"limit": strconv.Itoa(maxResults),
			"appid": c.apiKey,
		}).
		SetResult(&results).
		ForceContentType("application/json").
		Get(directEndpoint)
	if err != nil {
		return nil, fmt.Errorf("geocoding search failed: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("geocoding search returned status %d", resp.StatusCode())
	}

	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results, nil
}

// ReverseSearch maps a coordinate to up to five named-place candidates,
// ranked so that candidates carrying a state come first and, within each
// group, shorter names sort ahead of longer ones.
func (c *Client) ReverseSearch(ctx context.Context, coord Coordinate) ([]Candidate, error) {
	var results []Candidate
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"lat":   strconv.FormatFloat(coord.Lat, 'f', -1, 64),
			"lon":   strconv.FormatFloat(coord.Lon, 'f', -1, 64),
			"limit": strconv.Itoa(maxResults),
			"appid": c.apiKey,
		}).
		SetResult(&results).
		ForceContentType("application/json").
		Get(reverseEndpoint)
	if err != nil {
		return nil, fmt.Errorf("reverse geocoding failed: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("reverse geocoding returned status %d", resp.StatusCode())
	}

	RankCandidates(results)

	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results, nil
}

// RankCandidates orders reverse-geocoding results in place: candidates with
// a state field before those without, ties broken by ascending name length
// (shorter names are usually the more significant places).
func RankCandidates(cands []Candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		if (cands[i].State != "") != (cands[j].State != "") {
			return cands[i].State != ""
		}
		return len(cands[i].Name) < len(cands[j].Name)
	})
}
