package httpapi

import (
	"context"
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/weatheria/weatheria/internal/config"
	"github.com/weatheria/weatheria/internal/geo"
	"github.com/weatheria/weatheria/internal/resolve"
	"github.com/weatheria/weatheria/internal/store"
	"github.com/weatheria/weatheria/internal/weather"
)

var validate = validator.New()

// WeatherGateway fetches the normalized payload for a coordinate.
type WeatherGateway interface {
	Fetch(ctx context.Context, lat, lon float64) (*weather.Payload, error)
}

// GeoGateway performs forward and reverse geocoding.
type GeoGateway interface {
	Search(ctx context.Context, query string) ([]geo.Candidate, error)
	ReverseSearch(ctx context.Context, coord geo.Coordinate) ([]geo.Candidate, error)
}

// ChatRelay answers a user message with weather context.
type ChatRelay interface {
	Respond(ctx context.Context, message string, payload *weather.Payload) string
}

// LocationResolver runs the fallback ladder for an optional GPS fix.
type LocationResolver interface {
	Resolve(ctx context.Context, gps *geo.Coordinate) (resolve.Resolved, *weather.Payload, error)
}

// Deps bundles everything the route handlers need.
type Deps struct {
	Config   *config.AppConfig
	Weather  WeatherGateway
	Geo      GeoGateway
	Chat     ChatRelay
	Resolver LocationResolver
	Session  *store.Session
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, deps Deps) {
	app.Get("/weather", func(c *fiber.Ctx) error {
		coord, err := parseCoordQuery(c)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		if !deps.Config.HasWeatherKey() {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Weather service not configured. Please add OPENWEATHER_API_KEY to environment variables.",
			})
		}

		payload, err := deps.Weather.Fetch(c.Context(), coord.Lat, coord.Lon)
		if err != nil {
			switch {
			case errors.Is(err, weather.ErrUnauthorized):
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid API key"})
			case errors.Is(err, weather.ErrNotFound):
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Weather data not available for this location"})
			default:
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "Failed to fetch weather data. Please check your internet connection and try again.",
				})
			}
		}

		return c.JSON(payload)
	})

	app.Get("/geocoding", func(c *fiber.Ctx) error {
		query := c.Query("q")
		if query == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Query parameter is required"})
		}

		if !deps.Config.HasWeatherKey() {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Weather service not configured"})
		}

		candidates, err := deps.Geo.Search(c.Context(), query)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to search locations"})
		}
		if candidates == nil {
			candidates = []geo.Candidate{}
		}
		return c.JSON(candidates)
	})

	app.Get("/reverse-geocoding", func(c *fiber.Ctx) error {
		coord, err := parseCoordQuery(c)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		if !deps.Config.HasWeatherKey() {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Weather service not configured"})
		}

		candidates, err := deps.Geo.ReverseSearch(c.Context(), coord)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to get location information"})
		}
		if len(candidates) == 0 {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No location found for these coordinates"})
		}
		return c.JSON(candidates)
	})

	app.Post("/chat", func(c *fiber.Ctx) error {
		var req chatRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Message is required"})
		}
		if err := validate.Struct(req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Message is required"})
		}

		payload := req.WeatherData
		if payload == nil {
			// Fall back to the last resolved session payload, if any.
			if _, stored, err := deps.Session.Latest(); err == nil {
				payload = stored
			}
		}

		response := deps.Chat.Respond(c.Context(), req.Message, payload)
		return c.JSON(fiber.Map{"response": response})
	})

	app.Get("/resolve-location", func(c *fiber.Ctx) error {
		gps, err := parseOptionalCoordQuery(c)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		location, payload, err := deps.Resolver.Resolve(c.Context(), gps)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "Unable to fetch weather data. Please try searching for a city manually.",
			})
		}

		deps.Session.Set(location, payload)
		return c.JSON(fiber.Map{
			"location": location,
			"weather":  payload,
		})
	})
}

type chatRequest struct {
	Message     string           `json:"message" validate:"required"`
	WeatherData *weather.Payload `json:"weatherData"`
}

type coordQuery struct {
	Lat float64 `validate:"gte=-90,lte=90"`
	Lon float64 `validate:"gte=-180,lte=180"`
}

func parseCoordQuery(c *fiber.Ctx) (geo.Coordinate, error) {
	latStr := c.Query("lat")
	lonStr := c.Query("lon")
	if latStr == "" || lonStr == "" {
		return geo.Coordinate{}, errors.New("Latitude and longitude are required")
	}
	return parseCoordPair(latStr, lonStr)
}

// parseOptionalCoordQuery treats wholly absent coordinates as "no GPS fix";
// providing only one of the pair is an error.
func parseOptionalCoordQuery(c *fiber.Ctx) (*geo.Coordinate, error) {
	latStr := c.Query("lat")
	lonStr := c.Query("lon")
	if latStr == "" && lonStr == "" {
		return nil, nil
	}
	if latStr == "" || lonStr == "" {
		return nil, errors.New("Latitude and longitude must be provided together")
	}
	coord, err := parseCoordPair(latStr, lonStr)
	if err != nil {
		return nil, err
	}
	return &coord, nil
}

func parseCoordPair(latStr, lonStr string) (geo.Coordinate, error) {
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return geo.Coordinate{}, errors.New("Invalid latitude or longitude")
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return geo.Coordinate{}, errors.New("Invalid latitude or longitude")
	}

	if err := validate.Struct(coordQuery{Lat: lat, Lon: lon}); err != nil {
		return geo.Coordinate{}, errors.New("Invalid latitude or longitude")
	}
	return geo.Coordinate{Lat: lat, Lon: lon}, nil
}
