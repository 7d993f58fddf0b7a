package weather

// Payload is the normalized weather snapshot consumed by the display layer
// and the chat relay. It is created fresh on every successful fetch and
// never patched incrementally.
type Payload struct {
	Location      string  `json:"location"`
	Temperature   float64 `json:"temperature"`
	FeelsLike     float64 `json:"feelsLike"`
	Condition     string  `json:"condition"`
	Description   string  `json:"description"`
	Humidity      int     `json:"humidity"`
	WindSpeed     float64 `json:"windSpeed"`
	WindDirection float64 `json:"windDirection"`
	Visibility    int     `json:"visibility"`
	Pressure      float64 `json:"pressure"`
	UVIndex       int     `json:"uvIndex"`
	Sunrise       string  `json:"sunrise"`
	Sunset        string  `json:"sunset"`

	// HourlyForecast always holds 24 entries in chronological order,
	// starting one hour after fetch time.
	HourlyForecast []HourlyEntry `json:"hourlyForecast"`

	// WeeklyForecast holds at most 7 entries, one per calendar date.
	WeeklyForecast []DailyEntry `json:"weeklyForecast"`
}

// HourlyEntry is a single hour of forecast data.
type HourlyEntry struct {
	Time      string `json:"time"`
	Temp      int    `json:"temp"`
	Condition string `json:"condition"`
	Icon      string `json:"icon"`
}

// DailyEntry aggregates all raw 3-hour forecast samples for one date.
type DailyEntry struct {
	Day           string  `json:"day"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	Condition     string  `json:"condition"`
	Icon          string  `json:"icon"`
	Precipitation int     `json:"precipitation"`
}

// currentConditions mirrors the fields we use from the provider's current
// weather endpoint.
type currentConditions struct {
	Name    string `json:"name"`
	Dt      int64  `json:"dt"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Pressure  float64 `json:"pressure"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
		Deg   float64 `json:"deg"`
	} `json:"wind"`
	Visibility int `json:"visibility"`
	Sys        struct {
		Country string `json:"country"`
		Sunrise int64  `json:"sunrise"`
		Sunset  int64  `json:"sunset"`
	} `json:"sys"`
}

// forecastSamples mirrors the provider's 5-day/3-hour forecast endpoint.
type forecastSamples struct {
	List []forecastSample `json:"list"`
}

type forecastSample struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp    float64 `json:"temp"`
		TempMin float64 `json:"temp_min"`
		TempMax float64 `json:"temp_max"`
	} `json:"main"`
	Weather []struct {
		Main string `json:"main"`
		Icon string `json:"icon"`
	} `json:"weather"`
	Pop float64 `json:"pop"`
}
