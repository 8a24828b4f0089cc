package weather

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/i474232898/weather-route-assistant/internal/common"
)

const iconURLFormat = "https://openweathermap.org/img/wn/%s@2x.png"

// Service builds the weather report for a city: current conditions,
// forecast chart and convenience assessment.
type Service struct {
	provider  Provider
	charts    ChartRenderer
	chartBase string
	logger    *zap.Logger
	now       func() time.Time
}

// NewService creates a new Service. charts may be nil, in which case reports
// carry no chart. chartBase is the URL prefix under which charts are served.
func NewService(provider Provider, charts ChartRenderer, chartBase string, logger *zap.Logger) *Service {
	return &Service{
		provider:  provider,
		charts:    charts,
		chartBase: strings.TrimRight(chartBase, "/"),
		logger:    logger.With(zap.String("component", "weather.service")),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Report fetches everything for the city. Air quality and chart failures are
// logged and leave those parts of the report empty.
func (s *Service) Report(ctx context.Context, city string) (Report, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return Report{}, common.InvalidInput("city is required")
	}

	loc, err := s.provider.GeocodeCity(ctx, city)
	if err != nil {
		return Report{}, err
	}

	curr, err := s.provider.Current(ctx, loc.Lat, loc.Lon)
	if err != nil {
		return Report{}, err
	}

	forecast, err := s.provider.Forecast(ctx, loc.Lat, loc.Lon)
	if err != nil {
		return Report{}, err
	}

	air, err := s.provider.AirQuality(ctx, loc.Lat, loc.Lon)
	if err != nil {
		s.logger.Warn("air quality unavailable", zap.String("city", city), zap.Error(err))
		air = nil
	}

	daily := AggregateDaily(forecast)

	report := Report{
		City:        city,
		Country:     loc.Country,
		Description: curr.Description,
		TempC:       curr.TempC,
		IconURL:     fmt.Sprintf(iconURLFormat, curr.Icon),
		Daily:       daily,
		Convenience: Assess(forecast, &curr, air, s.now()),
		Air:         air,
	}

	if s.charts != nil && len(daily) > 0 {
		file, err := s.charts.Render(city, loc.Country, daily)
		if err != nil {
			s.logger.Warn("chart rendering failed", zap.String("city", city), zap.Error(err))
		} else {
			report.Chart = file
			report.ChartURL = s.chartBase + "/" + file
		}
	}

	s.logger.Info("weather report built",
		zap.String("provider", s.provider.Name()),
		zap.String("city", city),
		zap.String("country", loc.Country),
		zap.Int("forecast_entries", len(forecast)),
		zap.Int("carwash_score", report.Convenience.CarWash.Score),
	)
	return report, nil
}
