package weather

import (
	"time"
)

// City is a geocoded city as reported by the weather provider.
type City struct {
	Name    string  `json:"name"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// Current holds the current conditions needed by the report.
type Current struct {
	Description string  `json:"description"`
	TempC       float64 `json:"tempC"`
	Icon        string  `json:"icon"`
}

// ForecastEntry is one 3-hour forecast slot.
type ForecastEntry struct {
	Time      time.Time `json:"time"` // always UTC
	TempC     float64   `json:"tempC"`
	Condition string    `json:"condition"` // provider category, e.g. "Rain"
	WindSpeed float64   `json:"windSpeed"` // m/s
	WindGust  float64   `json:"windGust"`  // m/s
}

// AirQuality is the current air pollution reading. Both fields are optional.
type AirQuality struct {
	AQI  *int     `json:"aqi,omitempty"` // 1 (good) .. 5 (very poor)
	PM25 *float64 `json:"pm25,omitempty"`
}

// DailyStats aggregates one calendar day of forecast temperatures.
type DailyStats struct {
	Date time.Time `json:"date"` // midnight UTC
	Mean float64   `json:"mean"`
	Max  float64   `json:"max"`
	Min  float64   `json:"min"`
}

// Parking tips.
const (
	TipIndoor  = "indoor recommended"
	TipOutdoor = "outdoor OK"
)

// CarWash is the car-wash desirability score, 0..100.
type CarWash struct {
	Score   int      `json:"score"`
	Reasons []string `json:"reasons"`
}

// Parking is the parking recommendation.
type Parking struct {
	Tip     string   `json:"tip"`
	Reasons []string `json:"reasons"`
}

// Assessment is the convenience assessment for the next 24 hours.
type Assessment struct {
	CarWash CarWash `json:"carwash"`
	Parking Parking `json:"parking"`
}

// Report is the weather feature result.
type Report struct {
	City        string       `json:"city"`
	Country     string       `json:"country"`
	Description string       `json:"description"`
	TempC       float64      `json:"tempC"`
	IconURL     string       `json:"iconUrl"`
	Chart       string       `json:"chart,omitempty"`
	ChartURL    string       `json:"chartUrl,omitempty"`
	Daily       []DailyStats `json:"daily"`
	Convenience Assessment   `json:"convenience"`
	Air         *AirQuality  `json:"air,omitempty"`
}
