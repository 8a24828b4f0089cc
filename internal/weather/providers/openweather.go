package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/i474232898/weather-route-assistant/internal/common"
	"github.com/i474232898/weather-route-assistant/internal/upstream"
	"github.com/i474232898/weather-route-assistant/internal/weather"
)

const (
	DefaultOpenWeatherURL = "https://api.openweathermap.org"
	DefaultLang           = "kr"

	dtTxtLayout = "2006-01-02 15:04:05"
)

// OpenWeatherProvider implements the weather.Provider interface for OpenWeatherMap.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	baseURL string
	lang    string
	client  *upstream.Client
	timeout time.Duration
	logger  *zap.Logger
}

func NewOpenWeatherProvider(client *upstream.Client, apiKey, baseURL, lang string, timeout time.Duration, logger *zap.Logger) *OpenWeatherProvider {
	if baseURL == "" {
		baseURL = DefaultOpenWeatherURL
	}
	if lang == "" {
		lang = DefaultLang
	}
	return &OpenWeatherProvider{
		name:    "openweathermap",
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		lang:    lang,
		client:  client,
		timeout: timeout,
		logger:  logger.With(zap.String("component", "openweather")),
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

// get calls one OpenWeather endpoint and decodes the JSON body into out.
func (p *OpenWeatherProvider) get(ctx context.Context, path string, values url.Values, out any) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	values.Set("appid", p.apiKey)
	endpoint := p.baseURL + path

	resp, err := p.client.Get(ctx, endpoint, values, nil)
	p.logger.Debug("request", zap.String("path", path), zap.Int("status", resp.StatusCode))
	if err != nil {
		trail := []string{fmt.Sprintf("url=%s code=%d err=%v", endpoint, resp.StatusCode, err)}
		return common.UpstreamUnavailable(trail, "openweather %s unavailable", path)
	}

	if err := json.Unmarshal(resp.Body, out); err != nil {
		return common.UpstreamFormat(err, "unexpected openweather payload from %s", path)
	}
	return nil
}

func (p *OpenWeatherProvider) coordValues(lat, lon float64) url.Values {
	values := url.Values{}
	values.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	values.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	return values
}

func (p *OpenWeatherProvider) GeocodeCity(ctx context.Context, name string) (weather.City, error) {
	values := url.Values{}
	values.Set("q", name)
	values.Set("limit", "1")

	var payload []struct {
		Name    string  `json:"name"`
		Country string  `json:"country"`
		Lat     float64 `json:"lat"`
		Lon     float64 `json:"lon"`
	}
	if err := p.get(ctx, "/geo/1.0/direct", values, &payload); err != nil {
		return weather.City{}, err
	}
	if len(payload) == 0 {
		return weather.City{}, common.NotFound("city not found: %s", name)
	}

	first := payload[0]
	return weather.City{
		Name:    first.Name,
		Country: first.Country,
		Lat:     first.Lat,
		Lon:     first.Lon,
	}, nil
}

type conditionPayload struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

func (p *OpenWeatherProvider) Current(ctx context.Context, lat, lon float64) (weather.Current, error) {
	values := p.coordValues(lat, lon)
	values.Set("units", "metric")
	values.Set("lang", p.lang)

	var payload struct {
		Main struct {
			Temp *float64 `json:"temp"`
		} `json:"main"`
		Weather []conditionPayload `json:"weather"`
	}
	if err := p.get(ctx, "/data/2.5/weather", values, &payload); err != nil {
		return weather.Current{}, err
	}
	if len(payload.Weather) == 0 || payload.Main.Temp == nil {
		return weather.Current{}, common.UpstreamFormat(nil, "current weather is missing required fields")
	}

	return weather.Current{
		Description: payload.Weather[0].Description,
		TempC:       *payload.Main.Temp,
		Icon:        payload.Weather[0].Icon,
	}, nil
}

func (p *OpenWeatherProvider) Forecast(ctx context.Context, lat, lon float64) ([]weather.ForecastEntry, error) {
	values := p.coordValues(lat, lon)
	values.Set("units", "metric")
	values.Set("lang", p.lang)

	var payload struct {
		List []struct {
			Dt    int64  `json:"dt"`
			DtTxt string `json:"dt_txt"`
			Main  struct {
				Temp float64 `json:"temp"`
			} `json:"main"`
			Weather []conditionPayload `json:"weather"`
			Wind    struct {
				Speed float64 `json:"speed"`
				Gust  float64 `json:"gust"`
			} `json:"wind"`
		} `json:"list"`
	}
	if err := p.get(ctx, "/data/2.5/forecast", values, &payload); err != nil {
		return nil, err
	}

	entries := make([]weather.ForecastEntry, 0, len(payload.List))
	for _, item := range payload.List {
		ts, ok := forecastTime(item.Dt, item.DtTxt)
		if !ok {
			continue
		}
		var cond string
		if len(item.Weather) > 0 {
			cond = item.Weather[0].Main
		}
		entries = append(entries, weather.ForecastEntry{
			Time:      ts,
			TempC:     item.Main.Temp,
			Condition: cond,
			WindSpeed: item.Wind.Speed,
			WindGust:  item.Wind.Gust,
		})
	}
	return entries, nil
}

// forecastTime prefers the unix timestamp and falls back to dt_txt, which
// OpenWeather reports in UTC.
func forecastTime(dt int64, dtTxt string) (time.Time, bool) {
	if dt > 0 {
		return time.Unix(dt, 0).UTC(), true
	}
	if dtTxt == "" {
		return time.Time{}, false
	}
	ts, err := time.ParseInLocation(dtTxtLayout, dtTxt, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

// AirQuality returns nil without error when the provider has no reading.
func (p *OpenWeatherProvider) AirQuality(ctx context.Context, lat, lon float64) (*weather.AirQuality, error) {
	var payload struct {
		List []struct {
			Main struct {
				AQI *int `json:"aqi"`
			} `json:"main"`
			Components struct {
				PM25 *float64 `json:"pm2_5"`
			} `json:"components"`
		} `json:"list"`
	}
	if err := p.get(ctx, "/data/2.5/air_pollution", p.coordValues(lat, lon), &payload); err != nil {
		return nil, err
	}
	if len(payload.List) == 0 {
		return nil, nil
	}

	first := payload.List[0]
	return &weather.AirQuality{
		AQI:  first.Main.AQI,
		PM25: first.Components.PM25,
	}, nil
}
