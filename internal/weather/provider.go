package weather

import (
	"context"
)

// Provider abstracts the weather data source (OpenWeatherMap).
type Provider interface {
	Name() string
	GeocodeCity(ctx context.Context, name string) (City, error)
	Current(ctx context.Context, lat, lon float64) (Current, error)
	Forecast(ctx context.Context, lat, lon float64) ([]ForecastEntry, error)
	AirQuality(ctx context.Context, lat, lon float64) (*AirQuality, error)
}

// ChartRenderer persists a temperature chart and returns its file name.
type ChartRenderer interface {
	Render(city, country string, days []DailyStats) (string, error)
}
