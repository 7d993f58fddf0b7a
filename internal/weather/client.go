package weather

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"

	"github.com/weatheria/weatheria/internal/retry"
)

const (
	openWeatherBaseURL = "https://api.openweathermap.org/data/2.5"

	weatherEndpoint  = "/weather"
	forecastEndpoint = "/forecast"
	uvIndexEndpoint  = "/uvi"

	defaultTimeout = 10 * time.Second
	userAgent      = "Weatheria/1.0"

	// Current-conditions attempt budget and the linear backoff step.
	maxAttempts = 3
	backoffStep = 1 * time.Second
)

var (
	// ErrNotFound means the provider has no data at the coordinate, even
	// after the jittered retry.
	ErrNotFound = errors.New("weather data not available for this location")

	// ErrUnauthorized means the provider rejected the configured API key.
	ErrUnauthorized = errors.New("invalid API key")
)

// APIError is a generic non-2xx provider response that is neither a
// not-found nor an authorization failure.
type APIError struct {
	StatusCode int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("weather API returned status %d", e.StatusCode)
}

// Client fetches current conditions, forecast and UV data from
// OpenWeatherMap and normalizes them into a single Payload.
type Client struct {
	client  *resty.Client
	apiKey  string
	circuit *gobreaker.CircuitBreaker
	policy  retry.Policy

	now    func() time.Time
	jitter func() float64
}

// NewClient creates a weather client authenticated with the given key.
func NewClient(apiKey string) *Client {
	client := resty.New().
		SetBaseURL(openWeatherBaseURL).
		SetHeader("User-Agent", userAgent).
		SetTimeout(defaultTimeout)

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweather",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Client{
		client:  client,
		apiKey:  apiKey,
		circuit: cb,
		policy: retry.Policy{
			MaxAttempts: maxAttempts,
			Backoff:     retry.Linear(backoffStep),
		},
		now: time.Now,
		jitter: func() float64 {
			return (rand.Float64() - 0.5) * 0.1
		},
	}
}

// SetBaseURL points the client at a different provider endpoint.
func (c *Client) SetBaseURL(u string) {
	c.client.SetBaseURL(u)
}

// SetRetryPolicy replaces the current-conditions retry policy.
func (c *Client) SetRetryPolicy(p retry.Policy) {
	c.policy = p
}

// SetClock replaces the clock used for forecast normalization.
func (c *Client) SetClock(now func() time.Time) {
	c.now = now
}

// SetJitter replaces the coordinate jitter source used on not-found retries.
func (c *Client) SetJitter(jitter func() float64) {
	c.jitter = jitter
}

// Fetch returns the normalized weather payload for a coordinate. Forecast
// and UV requests are best-effort: their failures degrade the payload
// instead of failing the call.
func (c *Client) Fetch(ctx context.Context, lat, lon float64) (*Payload, error) {
	current, err := c.fetchCurrent(ctx, lat, lon)
	if err != nil {
		return nil, err
	}

	forecast := c.fetchForecast(ctx, lat, lon)
	uvIndex := c.fetchUVIndex(ctx, lat, lon)

	return buildPayload(c.now(), current, forecast, uvIndex), nil
}

func (c *Client) fetchCurrent(ctx context.Context, lat, lon float64) (*currentConditions, error) {
	var current currentConditions

	err := c.policy.Do(ctx, func() error {
		resp, err := c.doCurrent(ctx, lat, lon, &current)
		if err != nil {
			return err
		}

		switch {
		case resp.IsSuccess():
			return nil
		case resp.StatusCode() == http.StatusUnauthorized:
			return retry.Permanent(ErrUnauthorized)
		case resp.StatusCode() == http.StatusNotFound:
			// One extra attempt at a slightly shifted coordinate to dodge
			// provider dead zones near the exact point.
			jResp, jErr := c.doCurrent(ctx, lat+c.jitter(), lon+c.jitter(), &current)
			if jErr == nil && jResp.IsSuccess() {
				slog.Debug("weather found with adjusted coordinates", "lat", lat, "lon", lon)
				return nil
			}
			return ErrNotFound
		default:
			return &APIError{StatusCode: resp.StatusCode()}
		}
	})
	if err != nil {
		return nil, err
	}
	return &current, nil
}

// doCurrent executes one current-conditions request through the circuit
// breaker. Transport errors and 5xx responses count as breaker failures.
func (c *Client) doCurrent(ctx context.Context, lat, lon float64, out *currentConditions) (*resty.Response, error) {
	result, err := c.circuit.Execute(func() (interface{}, error) {
		resp, err := c.client.R().
			SetContext(ctx).
			SetQueryParams(c.coordParams(lat, lon, true)).
			SetResult(out).
			ForceContentType("application/json").
			Get(weatherEndpoint)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode() >= 500 {
			return nil, &APIError{StatusCode: resp.StatusCode()}
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*resty.Response), nil
}

func (c *Client) fetchForecast(ctx context.Context, lat, lon float64) *forecastSamples {
	var forecast forecastSamples
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(c.coordParams(lat, lon, true)).
		SetResult(&forecast).
		ForceContentType("application/json").
		Get(forecastEndpoint)
	if err != nil || !resp.IsSuccess() || len(forecast.List) == 0 {
		slog.Warn("forecast request degraded, synthesizing hourly data", "lat", lat, "lon", lon)
		return nil
	}
	return &forecast
}

func (c *Client) fetchUVIndex(ctx context.Context, lat, lon float64) float64 {
	var uv struct {
		Value float64 `json:"value"`
	}
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(c.coordParams(lat, lon, false)).
		SetResult(&uv).
		ForceContentType("application/json").
		Get(uvIndexEndpoint)
	if err != nil || !resp.IsSuccess() {
		return 0
	}
	return uv.Value
}

func (c *Client) coordParams(lat, lon float64, metric bool) map[string]string {
	params := map[string]string{
		"lat":   strconv.FormatFloat(lat, 'f', -1, 64),
		"lon":   strconv.FormatFloat(lon, 'f', -1, 64),
		"appid": c.apiKey,
	}
	if metric {
		params["units"] = "metric"
	}
	return params
}
