package weather

import (
	"fmt"
	"math"
	"time"
)

const (
	hourlyEntries = 24
	weeklyEntries = 7

	// Amplitude of the synthesized temperature curve, in degrees.
	synthAmplitude = 3.0
)

// buildPayload normalizes the provider responses into a Payload. The clock
// anchors the hourly forecast; forecast may be nil when that request
// degraded.
func buildPayload(now time.Time, current *currentConditions, forecast *forecastSamples, uvIndex float64) *Payload {
	var condition, description string
	if len(current.Weather) > 0 {
		condition = current.Weather[0].Main
		description = current.Weather[0].Description
	}

	visibility := current.Visibility
	if visibility == 0 {
		visibility = 10000
	}

	return &Payload{
		Location:       fmt.Sprintf("%s, %s", current.Name, current.Sys.Country),
		Temperature:    current.Main.Temp,
		FeelsLike:      current.Main.FeelsLike,
		Condition:      condition,
		Description:    description,
		Humidity:       current.Main.Humidity,
		WindSpeed:      current.Wind.Speed,
		WindDirection:  current.Wind.Deg,
		Visibility:     visibility,
		Pressure:       current.Main.Pressure,
		UVIndex:        int(math.Round(uvIndex)),
		Sunrise:        time.Unix(current.Sys.Sunrise, 0).Format("15:04"),
		Sunset:         time.Unix(current.Sys.Sunset, 0).Format("15:04"),
		HourlyForecast: buildHourly(now, current, forecast),
		WeeklyForecast: buildWeekly(forecast),
	}
}

// buildHourly produces 24 hourly entries starting one hour after now. The
// provider reports 3-hour samples, so temperatures between samples are
// linearly interpolated; this is a display heuristic, not meteorology.
func buildHourly(now time.Time, current *currentConditions, forecast *forecastSamples) []HourlyEntry {
	if forecast == nil || len(forecast.List) == 0 {
		return synthesizeHourly(now, current)
	}

	entries := make([]HourlyEntry, 0, hourlyEntries)
	for i := 0; i < hourlyEntries; i++ {
		target := hourAfter(now, i+1)

		idx := i / 3
		if idx >= len(forecast.List) {
			idx = len(forecast.List) - 1
		}
		sample := forecast.List[idx]

		temp := sample.Main.Temp
		if idx < len(forecast.List)-1 {
			next := forecast.List[idx+1]
			progress := float64(i%3) / 3
			temp += (next.Main.Temp - sample.Main.Temp) * progress
		}

		var condition, icon string
		if len(sample.Weather) > 0 {
			condition = sample.Weather[0].Main
			icon = sample.Weather[0].Icon
		}

		entries = append(entries, HourlyEntry{
			Time:      hourLabel(now, target),
			Temp:      int(math.Round(temp)),
			Condition: condition,
			Icon:      icon,
		})
	}
	return entries
}

// synthesizeHourly fills the hourly forecast from current conditions alone,
// varying the temperature on a deterministic 24-hour sine curve.
func synthesizeHourly(now time.Time, current *currentConditions) []HourlyEntry {
	var condition, icon string
	if len(current.Weather) > 0 {
		condition = current.Weather[0].Main
		icon = current.Weather[0].Icon
	}

	entries := make([]HourlyEntry, 0, hourlyEntries)
	for i := 0; i < hourlyEntries; i++ {
		target := hourAfter(now, i+1)
		temp := current.Main.Temp + math.Sin(float64(i)*math.Pi/12)*synthAmplitude

		entries = append(entries, HourlyEntry{
			Time:      hourLabel(now, target),
			Temp:      int(math.Round(temp)),
			Condition: condition,
			Icon:      icon,
		})
	}
	return entries
}

// buildWeekly groups the 3-hour samples by calendar date. The high is the
// max of the sample maxima and the low the min of the sample minima;
// condition, icon and precipitation come from the first sample of the date.
func buildWeekly(forecast *forecastSamples) []DailyEntry {
	days := []DailyEntry{}
	if forecast == nil {
		return days
	}

	index := make(map[string]int)
	for _, sample := range forecast.List {
		ts := time.Unix(sample.Dt, 0)
		key := ts.Format("2006-01-02")

		if i, ok := index[key]; ok {
			if sample.Main.TempMax > days[i].High {
				days[i].High = sample.Main.TempMax
			}
			if sample.Main.TempMin < days[i].Low {
				days[i].Low = sample.Main.TempMin
			}
			continue
		}

		var condition, icon string
		if len(sample.Weather) > 0 {
			condition = sample.Weather[0].Main
			icon = sample.Weather[0].Icon
		}

		index[key] = len(days)
		days = append(days, DailyEntry{
			Day:           ts.Format("Monday"),
			High:          sample.Main.TempMax,
			Low:           sample.Main.TempMin,
			Condition:     condition,
			Icon:          icon,
			Precipitation: int(math.Round(sample.Pop * 100)),
		})
	}

	if len(days) > weeklyEntries {
		days = days[:weeklyEntries]
	}
	return days
}

func hourAfter(now time.Time, hours int) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), now.Hour()+hours, 0, 0, 0, now.Location())
}

// hourLabel formats the target hour, marking entries that roll past
// midnight with a "+1" suffix.
func hourLabel(now, target time.Time) string {
	label := target.Format("15:04")
	if target.Day() != now.Day() {
		label += " +1"
	}
	return label
}
