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
	"github.com/i474232898/weather-route-assistant/internal/location"
	locproviders "github.com/i474232898/weather-route-assistant/internal/location/providers"
	"github.com/i474232898/weather-route-assistant/internal/route"
	"github.com/i474232898/weather-route-assistant/internal/upstream"
)

var DefaultDirectionsURLs = []string{
	"https://maps.apigw.ntruss.com/map-direction-15/v1/driving",
	"https://naveropenapi.apigw.ntruss.com/map-direction-15/v1/driving",
}

// Options are sent with every directions request.
type Options struct {
	RouteOption string // trafast, traoptimal, tracomfort, traavoidtoll, traavoidcaronly
	CarType     int
}

// DefaultOptions requests the fastest route for a passenger car.
func DefaultOptions() Options {
	return Options{RouteOption: "trafast", CarType: 1}
}

// NaverDirections implements route.Fetcher. It tries each endpoint in order
// and keeps the first 2xx, non-empty, decodable response.
type NaverDirections struct {
	client    *upstream.Client
	creds     locproviders.MapsCredentials
	endpoints []string
	opts      Options
	timeout   time.Duration
	logger    *zap.Logger
}

func NewNaverDirections(client *upstream.Client, creds locproviders.MapsCredentials, endpoints []string, opts Options, timeout time.Duration, logger *zap.Logger) *NaverDirections {
	if len(endpoints) == 0 {
		endpoints = DefaultDirectionsURLs
	}
	return &NaverDirections{
		client:    client,
		creds:     creds,
		endpoints: endpoints,
		opts:      opts,
		timeout:   timeout,
		logger:    logger.With(zap.String("component", "naver.directions")),
	}
}

func (d *NaverDirections) FetchRoute(ctx context.Context, start, end location.Coordinate) (route.ProviderResponse, error) {
	values := url.Values{}
	values.Set("start", formatPoint(start))
	values.Set("goal", formatPoint(end))
	values.Set("option", d.opts.RouteOption)
	values.Set("cartype", strconv.Itoa(d.opts.CarType))

	trail := make([]string, 0, len(d.endpoints))
	for _, endpoint := range d.endpoints {
		resp, ok, line := d.attempt(ctx, endpoint, values)
		trail = append(trail, line)
		if ok {
			return resp, nil
		}
	}

	return route.ProviderResponse{}, common.UpstreamUnavailable(trail, "directions response was empty or not JSON")
}

func (d *NaverDirections) attempt(ctx context.Context, endpoint string, values url.Values) (route.ProviderResponse, bool, string) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	resp, err := d.client.Get(ctx, endpoint, values, d.creds.Header())
	line := fmt.Sprintf("url=%s code=%d ct=%s len=%d", endpoint, resp.StatusCode, resp.ContentType, len(resp.Body))
	if err != nil && resp.StatusCode == 0 {
		line = fmt.Sprintf("url=%s err=%v", endpoint, err)
	}
	d.logger.Info("directions attempt",
		zap.String("url", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.String("content_type", resp.ContentType),
		zap.Int("len", len(resp.Body)),
		zap.Error(err),
	)
	if err != nil {
		return route.ProviderResponse{}, false, line
	}
	if strings.TrimSpace(string(resp.Body)) == "" {
		return route.ProviderResponse{}, false, line
	}

	var payload route.ProviderResponse
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		d.logger.Warn("directions body is not JSON", zap.String("url", endpoint), zap.Error(err))
		return route.ProviderResponse{}, false, line
	}
	return payload, true, line
}

// formatPoint renders "lon,lat".
func formatPoint(c location.Coordinate) string {
	return strconv.FormatFloat(c.Lon, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lat, 'f', -1, 64)
}
