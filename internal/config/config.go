package config

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/i474232898/weather-route-assistant/internal/common"
)

// AppConfig is loaded once at startup and treated as read-only afterwards.
type AppConfig struct {
	Port   string `envconfig:"PORT" default:"8080"`
	AppEnv string `envconfig:"APP_ENV" default:"production"`

	LogLevel string `envconfig:"LOG_LEVEL"`

	// Provider credentials.
	OpenWeatherAPIKey    string `envconfig:"OPENWEATHER_API_KEY" validate:"required"`
	NcloudAPIKeyID       string `envconfig:"NCLOUD_API_KEY_ID" validate:"required"`
	NcloudAPIKey         string `envconfig:"NCLOUD_API_KEY" validate:"required"`
	NaverClientID        string `envconfig:"NAVER_CLIENT_ID" validate:"required"`
	NaverClientSecret    string `envconfig:"NAVER_CLIENT_SECRET" validate:"required"`
	GoogleGeocoderAPIKey string `envconfig:"GOOGLE_GEOCODER_API_KEY"`

	// Provider endpoints and options.
	WeatherLang         string   `envconfig:"WEATHER_LANG" default:"kr"`
	OpenWeatherBaseURL  string   `envconfig:"OPENWEATHER_BASE_URL" default:"https://api.openweathermap.org" validate:"url"`
	NaverLocalSearchURL string   `envconfig:"NAVER_LOCAL_SEARCH_URL" default:"https://openapi.naver.com/v1/search/local.json" validate:"url"`
	NaverGeocodeURLs    []string `envconfig:"NAVER_GEOCODE_URLS" default:"https://naveropenapi.apigw.ntruss.com/map-geocode/v2/geocode,https://maps.apigw.ntruss.com/map-geocode/v2/geocode" validate:"min=1,dive,url"`
	NaverDirectionsURLs []string `envconfig:"NAVER_DIRECTIONS_URLS" default:"https://maps.apigw.ntruss.com/map-direction-15/v1/driving,https://naveropenapi.apigw.ntruss.com/map-direction-15/v1/driving" validate:"min=1,dive,url"`

	// Per-attempt timeouts for outbound calls.
	MapsTimeout       time.Duration `envconfig:"MAPS_TIMEOUT" default:"10s" validate:"gt=0"`
	DirectionsTimeout time.Duration `envconfig:"DIRECTIONS_TIMEOUT" default:"20s" validate:"gt=0"`
	WeatherTimeout    time.Duration `envconfig:"WEATHER_TIMEOUT" default:"10s" validate:"gt=0"`

	// Chart storage and cleanup.
	ChartDir           string        `envconfig:"CHART_DIR" default:"static" validate:"required"`
	ChartMaxAge        time.Duration `envconfig:"CHART_MAX_AGE" default:"24h"`
	ChartPruneInterval time.Duration `envconfig:"CHART_PRUNE_INTERVAL" default:"60m"`
}

var validate = validator.New()

// Load reads .env (if present) and the environment. Missing credentials are a
// Configuration error so the process can refuse to start.
func Load() (*AppConfig, error) {
	_ = godotenv.Load()

	cfg := &AppConfig{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, common.Configuration(err, "invalid environment")
	}
	cfg.trim()

	if err := validate.Struct(cfg); err != nil {
		return nil, common.Configuration(err, "invalid configuration")
	}
	return cfg, nil
}

func (c *AppConfig) trim() {
	for _, s := range []*string{
		&c.OpenWeatherAPIKey,
		&c.NcloudAPIKeyID,
		&c.NcloudAPIKey,
		&c.NaverClientID,
		&c.NaverClientSecret,
		&c.GoogleGeocoderAPIKey,
		&c.WeatherLang,
	} {
		*s = strings.TrimSpace(*s)
	}
	c.NaverGeocodeURLs = trimList(c.NaverGeocodeURLs)
	c.NaverDirectionsURLs = trimList(c.NaverDirectionsURLs)
}

func trimList(in []string) []string {
	out := in[:0]
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
