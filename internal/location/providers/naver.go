package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/i474232898/weather-route-assistant/internal/common"
	"github.com/i474232898/weather-route-assistant/internal/location"
	"github.com/i474232898/weather-route-assistant/internal/upstream"
)

// Default Naver Cloud endpoints. Both gateway hosts serve the same API.
var DefaultGeocodeURLs = []string{
	"https://naveropenapi.apigw.ntruss.com/map-geocode/v2/geocode",
	"https://maps.apigw.ntruss.com/map-geocode/v2/geocode",
}

const DefaultLocalSearchURL = "https://openapi.naver.com/v1/search/local.json"

// MapsCredentials authenticate against the Naver Cloud maps gateway.
type MapsCredentials struct {
	KeyID string
	Key   string
}

// Header returns the gateway auth headers.
func (c MapsCredentials) Header() http.Header {
	h := http.Header{}
	h.Set("X-NCP-APIGW-API-KEY-ID", c.KeyID)
	h.Set("X-NCP-APIGW-API-KEY", c.Key)
	h.Set("Accept", "application/json")
	return h
}

// NaverGeocoder implements location.Geocoder against the Naver geocoding API,
// trying each endpoint in order.
type NaverGeocoder struct {
	client    *upstream.Client
	creds     MapsCredentials
	endpoints []string
	timeout   time.Duration
	logger    *zap.Logger
}

func NewNaverGeocoder(client *upstream.Client, creds MapsCredentials, endpoints []string, timeout time.Duration, logger *zap.Logger) *NaverGeocoder {
	if len(endpoints) == 0 {
		endpoints = DefaultGeocodeURLs
	}
	return &NaverGeocoder{
		client:    client,
		creds:     creds,
		endpoints: endpoints,
		timeout:   timeout,
		logger:    logger.With(zap.String("component", "naver.geocode")),
	}
}

type geocodeResponse struct {
	Addresses []struct {
		X string `json:"x"`
		Y string `json:"y"`
	} `json:"addresses"`
}

func (g *NaverGeocoder) Geocode(ctx context.Context, address string) (location.Coordinate, error) {
	var (
		trail    []string
		answered bool
	)
	for _, endpoint := range g.endpoints {
		coord, ok, err := g.geocodeOnce(ctx, endpoint, address)
		if err != nil {
			g.logger.Warn("geocode attempt failed", zap.String("url", endpoint), zap.String("query", address), zap.Error(err))
			trail = append(trail, fmt.Sprintf("url=%s err=%v", endpoint, err))
			continue
		}
		answered = true
		if ok {
			return coord, nil
		}
	}

	if !answered {
		return location.Coordinate{}, common.UpstreamUnavailable(trail, "geocoding unavailable")
	}
	return location.Coordinate{}, common.NotFound("address not found: %s", address)
}

func (g *NaverGeocoder) geocodeOnce(ctx context.Context, endpoint, address string) (location.Coordinate, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.Get(ctx, endpoint, url.Values{"query": {address}}, g.creds.Header())
	g.logger.Debug("geocode", zap.String("query", address), zap.Int("status", resp.StatusCode), zap.String("url", endpoint))
	if err != nil {
		return location.Coordinate{}, false, err
	}

	var payload geocodeResponse
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		return location.Coordinate{}, false, fmt.Errorf("decode geocode response: %w", err)
	}
	if len(payload.Addresses) == 0 {
		return location.Coordinate{}, false, nil
	}

	first := payload.Addresses[0]
	lon, errX := strconv.ParseFloat(strings.TrimSpace(first.X), 64)
	lat, errY := strconv.ParseFloat(strings.TrimSpace(first.Y), 64)
	if errX != nil || errY != nil {
		return location.Coordinate{}, false, nil
	}
	return location.Coordinate{Lon: lon, Lat: lat}, true, nil
}

// SearchCredentials authenticate against the Naver developers Open API.
type SearchCredentials struct {
	ClientID     string
	ClientSecret string
}

// NaverLocalSearch implements location.PlaceSearcher with the local search API.
type NaverLocalSearch struct {
	client   *upstream.Client
	creds    SearchCredentials
	endpoint string
	display  int
	timeout  time.Duration
	logger   *zap.Logger
}

func NewNaverLocalSearch(client *upstream.Client, creds SearchCredentials, endpoint string, timeout time.Duration, logger *zap.Logger) *NaverLocalSearch {
	if endpoint == "" {
		endpoint = DefaultLocalSearchURL
	}
	return &NaverLocalSearch{
		client:   client,
		creds:    creds,
		endpoint: endpoint,
		display:  5,
		timeout:  timeout,
		logger:   logger.With(zap.String("component", "naver.local")),
	}
}

type localSearchResponse struct {
	Items []struct {
		Title       string `json:"title"`
		RoadAddress string `json:"roadAddress"`
		Address     string `json:"address"`
	} `json:"items"`
}

func (s *NaverLocalSearch) SearchPlaces(ctx context.Context, query string) ([]location.Place, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	h := http.Header{}
	h.Set("X-Naver-Client-Id", s.creds.ClientID)
	h.Set("X-Naver-Client-Secret", s.creds.ClientSecret)

	values := url.Values{}
	values.Set("query", query)
	values.Set("display", strconv.Itoa(s.display))
	values.Set("start", "1")

	resp, err := s.client.Get(ctx, s.endpoint, values, h)
	s.logger.Debug("local search", zap.String("query", query), zap.Int("status", resp.StatusCode))
	if err != nil {
		return nil, fmt.Errorf("local search %q: %w", query, err)
	}

	var payload localSearchResponse
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		return nil, common.UpstreamFormat(err, "unexpected local search payload")
	}

	places := make([]location.Place, 0, len(payload.Items))
	for _, it := range payload.Items {
		places = append(places, location.Place{
			Title:       it.Title,
			RoadAddress: it.RoadAddress,
			Address:     it.Address,
		})
	}
	return places, nil
}
