package chat

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"google.golang.org/genai"

	"github.com/weatheria/weatheria/internal/common"
	"github.com/weatheria/weatheria/internal/weather"
)

const (
	primaryModel  = "gemini-1.5-flash"
	fallbackModel = "gemini-1.5-pro"

	maxOutputTokens = 300
	temperature     = 0.7
)

// Fixed replies for degraded paths. Every call to Respond resolves to one
// displayable string; nothing propagates to the transcript as a raw error.
const (
	notConfiguredReply = "I'm sorry, but I need to be configured with an API key to work properly. Please ask the administrator to add the GOOGLE_GEMINI_API_KEY environment variable."
	authReply          = "I'm having trouble with my API authentication. Please check that the Google AI API key is properly configured. 🔧"
	quotaReply         = "I've reached my usage limit for now. Please try again later! ⏰"
	modelReply         = "I'm having trouble accessing my AI model. Please try again in a moment! 🤖"
	genericReply       = "I'm experiencing some technical difficulties right now. Please try again in a moment! ⚡"
)

// Generator produces a completion for a prompt. An empty system string
// means the request carries no separate system role.
type Generator interface {
	Generate(ctx context.Context, model, system, prompt string) (string, error)
}

type geminiGenerator struct {
	client *genai.Client
}

func (g *geminiGenerator) Generate(ctx context.Context, model, system, prompt string) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](temperature),
		MaxOutputTokens: maxOutputTokens,
	}
	if system != "" {
		config.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	result, err := g.client.Models.GenerateContent(ctx, model, genai.Text(prompt), config)
	if err != nil {
		return "", err
	}
	return result.Text(), nil
}

// Relay answers user messages with the current weather payload as context,
// falling back through models and prompt shapes before degrading to canned
// replies.
type Relay struct {
	gen Generator
}

// NewRelay creates a relay backed by the Gemini API. An empty key yields a
// relay that only ever returns the not-configured reply.
func NewRelay(ctx context.Context, apiKey string) (*Relay, error) {
	if apiKey == "" {
		return &Relay{}, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &Relay{gen: &geminiGenerator{client: client}}, nil
}

// NewRelayWithGenerator creates a relay over a custom generator.
func NewRelayWithGenerator(gen Generator) *Relay {
	return &Relay{gen: gen}
}

// Respond answers the user's message. payload may be nil when no weather
// data is available yet.
func (r *Relay) Respond(ctx context.Context, message string, payload *weather.Payload) string {
	if r.gen == nil {
		return notConfiguredReply
	}

	system := systemPrompt(payload)

	text, err := r.gen.Generate(ctx, primaryModel, system, message)
	if err == nil {
		return text
	}
	slog.Warn("primary chat model failed, trying fallback", "model", primaryModel, "error", err)

	text, err = r.gen.Generate(ctx, fallbackModel, system, message)
	if err == nil {
		return text
	}
	slog.Warn("fallback chat model failed, flattening prompt", "model", fallbackModel, "error", err)

	// Some provider configurations reject a separate system role; fold
	// everything into one prompt as the last generation attempt.
	combined := system + "\n\nUser: " + message + "\n\nAssistant:"
	text, err = r.gen.Generate(ctx, primaryModel, "", combined)
	if err == nil {
		return text
	}
	slog.Error("all chat generation attempts failed", "error", err)

	return degradedReply(err, payload)
}

// degradedReply picks a canned answer once all generation attempts fail,
// classified by the final error's text.
func degradedReply(err error, payload *weather.Payload) string {
	msg := strings.ToLower(err.Error())
	switch {
	case common.HasAny(msg, "api key", "authentication"):
		return authReply
	case common.HasAny(msg, "quota", "limit"):
		return quotaReply
	case common.HasAny(msg, "model"):
		return modelReply
	}

	if payload != nil {
		return basicSummary(payload)
	}
	return genericReply
}

// basicSummary synthesizes a reply straight from the payload when the AI is
// unavailable but weather data is not.
func basicSummary(p *weather.Payload) string {
	var b strings.Builder
	b.WriteString("Based on the current weather data I have:\n\n")
	fmt.Fprintf(&b, "🌡️ It's %.0f°C in %s with %s.\n", math.Round(p.Temperature), p.Location, p.Description)
	fmt.Fprintf(&b, "💨 Wind speed is %.0f m/s\n", math.Round(p.WindSpeed))
	fmt.Fprintf(&b, "💧 Humidity is at %d%%\n\n", p.Humidity)
	b.WriteString("I'm experiencing some technical issues with my AI processing, but I hope this basic weather info helps! Please try asking again in a moment.")
	return b.String()
}

// systemPrompt embeds a formatted weather summary into the assistant's
// instructions.
func systemPrompt(payload *weather.Payload) string {
	return fmt.Sprintf(`You are WeatherBot, a helpful and friendly AI weather assistant.

%s

Your role is to:
- Provide helpful, accurate, and conversational responses about weather conditions and forecasts
- Give weather-related advice and recommendations based on the current data
- Be friendly, informative, and use appropriate emojis when suitable
- Keep responses concise but informative (2-4 sentences typically)
- Use the weather data provided to give specific, relevant answers
- Always be encouraging and helpful

Guidelines:
- Use the actual weather data in your responses when available
- Provide practical advice based on current conditions
- Be conversational and engaging
- Include relevant emojis to make responses more friendly
- If no weather data is available, acknowledge this and offer general weather advice`, weatherContext(payload))
}

func weatherContext(p *weather.Payload) string {
	if p == nil {
		return "No current weather data is available at the moment."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Current weather information for %s:\n", p.Location)
	fmt.Fprintf(&b, "- Temperature: %.0f°C (feels like %.0f°C)\n", math.Round(p.Temperature), math.Round(p.FeelsLike))
	fmt.Fprintf(&b, "- Condition: %s - %s\n", p.Condition, p.Description)
	fmt.Fprintf(&b, "- Humidity: %d%%\n", p.Humidity)
	fmt.Fprintf(&b, "- Wind: %.0f m/s\n", math.Round(p.WindSpeed))
	fmt.Fprintf(&b, "- Pressure: %.0f hPa\n", p.Pressure)
	fmt.Fprintf(&b, "- UV Index: %d\n", p.UVIndex)
	fmt.Fprintf(&b, "- Sunrise: %s\n", p.Sunrise)
	fmt.Fprintf(&b, "- Sunset: %s\n", p.Sunset)

	b.WriteString("\nToday's forecast (next 12 hours):\n")
	hours := p.HourlyForecast
	if len(hours) > 12 {
		hours = hours[:12]
	}
	for _, h := range hours {
		fmt.Fprintf(&b, "%s: %d°C, %s\n", h.Time, h.Temp, h.Condition)
	}

	b.WriteString("\nWeekly forecast:\n")
	days := p.WeeklyForecast
	if len(days) > 5 {
		days = days[:5]
	}
	for _, d := range days {
		fmt.Fprintf(&b, "%s: High %.0f°C, Low %.0f°C, %s\n", d.Day, math.Round(d.High), math.Round(d.Low), d.Condition)
	}

	return b.String()
}
