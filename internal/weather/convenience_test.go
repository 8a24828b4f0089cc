package weather

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC)

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func at(h int) time.Time { return fixedNow.Add(time.Duration(h) * time.Hour) }

func TestAssessAllPenalties(t *testing.T) {
	entries := []ForecastEntry{
		{Time: at(3), Condition: "Rain", WindSpeed: 12},
	}
	air := &AirQuality{AQI: intPtr(4), PM25: floatPtr(48.2)}

	got := Assess(entries, nil, air, fixedNow)

	require.Equal(t, 10, got.CarWash.Score)
	require.Equal(t, []string{
		"rain or snow expected within 24h",
		"poor air quality (PM2.5 48.2µg/m³)",
		"strong wind may blow dust onto the car",
	}, got.CarWash.Reasons)
	require.Equal(t, TipIndoor, got.Parking.Tip)
	require.Equal(t, []string{"rain or snow possible", "strong wind possible"}, got.Parking.Reasons)
}

func TestAssessNoConcerns(t *testing.T) {
	entries := []ForecastEntry{
		{Time: at(3), Condition: "Clear", WindSpeed: 3, WindGust: 5},
		{Time: at(6), Condition: "Clouds", WindSpeed: 4},
	}

	got := Assess(entries, nil, nil, fixedNow)

	require.Equal(t, 100, got.CarWash.Score)
	require.Equal(t, []string{"good weather for a car wash"}, got.CarWash.Reasons)
	require.Equal(t, TipOutdoor, got.Parking.Tip)
	require.Equal(t, []string{"no concerns"}, got.Parking.Reasons)
}

func TestAssessIgnoresEntriesBeyondWindow(t *testing.T) {
	entries := []ForecastEntry{
		{Time: at(24), Condition: "Clear"},
		{Time: at(27), Condition: "Thunderstorm", WindGust: 20},
		{Condition: "Snow"},
	}

	got := Assess(entries, nil, nil, fixedNow)
	require.Equal(t, 100, got.CarWash.Score)
	require.Equal(t, TipOutdoor, got.Parking.Tip)
}

func TestAssessPrecipCategories(t *testing.T) {
	for _, cond := range []string{"Rain", "Drizzle", "Thunderstorm", "Snow"} {
		got := Assess([]ForecastEntry{{Time: at(1), Condition: cond}}, nil, nil, fixedNow)
		require.Equal(t, 50, got.CarWash.Score, cond)
		require.Equal(t, TipIndoor, got.Parking.Tip, cond)
	}
}

func TestAssessCurrentDescriptionKeywords(t *testing.T) {
	for _, desc := range []string{"약한 비", "눈", "Light Rain", "heavy SNOW"} {
		got := Assess(nil, &Current{Description: desc}, nil, fixedNow)
		require.Equal(t, 50, got.CarWash.Score, desc)
		require.Equal(t, []string{"rain or snow possible"}, got.Parking.Reasons, desc)
	}

	got := Assess(nil, &Current{Description: "맑음"}, nil, fixedNow)
	require.Equal(t, 100, got.CarWash.Score)
}

func TestAssessWindThresholds(t *testing.T) {
	cases := []struct {
		speed, gust float64
		want        int
	}{
		{9.9, 13.9, 100},
		{10, 0, 90},
		{0, 14, 90},
	}
	for _, tc := range cases {
		got := Assess([]ForecastEntry{{Time: at(1), WindSpeed: tc.speed, WindGust: tc.gust}}, nil, nil, fixedNow)
		require.Equal(t, tc.want, got.CarWash.Score, "speed=%v gust=%v", tc.speed, tc.gust)
	}
}

func TestAssessAirQualityTiers(t *testing.T) {
	cases := []struct {
		aqi    int
		want   int
		reason string
	}{
		{1, 100, "good weather for a car wash"},
		{2, 100, "good weather for a car wash"},
		{3, 85, "moderately poor air quality"},
		{4, 70, "poor air quality"},
		{5, 70, "poor air quality"},
	}
	for _, tc := range cases {
		got := Assess(nil, nil, &AirQuality{AQI: intPtr(tc.aqi)}, fixedNow)
		require.Equal(t, tc.want, got.CarWash.Score, "aqi=%d", tc.aqi)
		require.Equal(t, []string{tc.reason}, got.CarWash.Reasons, "aqi=%d", tc.aqi)
		require.Equal(t, TipOutdoor, got.Parking.Tip)
	}
}

func TestAssessMissingAirFieldsAreTolerated(t *testing.T) {
	got := Assess(nil, nil, &AirQuality{PM25: floatPtr(80)}, fixedNow)
	require.Equal(t, 100, got.CarWash.Score)
}

func TestAssessIsDeterministic(t *testing.T) {
	entries := []ForecastEntry{
		{Time: at(2), Condition: "Drizzle", WindGust: 15},
		{Time: at(5), Condition: "Clouds"},
	}
	air := &AirQuality{AQI: intPtr(3), PM25: floatPtr(20)}

	first := Assess(entries, &Current{Description: "흐림"}, air, fixedNow)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, Assess(entries, &Current{Description: "흐림"}, air, fixedNow))
	}
	require.Equal(t, 25, first.CarWash.Score)
}

func TestAssessScoreNeverNegative(t *testing.T) {
	entries := []ForecastEntry{{Time: at(1), Condition: "Snow", WindSpeed: 30, WindGust: 40}}
	for aqi := 1; aqi <= 5; aqi++ {
		got := Assess(entries, &Current{Description: "rain and snow"}, &AirQuality{AQI: intPtr(aqi)}, fixedNow)
		require.GreaterOrEqual(t, got.CarWash.Score, 0)
		require.LessOrEqual(t, got.CarWash.Score, 100)
	}
}
