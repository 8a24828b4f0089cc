package providers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kelvins/geocoder"

	"github.com/i474232898/weather-route-assistant/internal/common"
	"github.com/i474232898/weather-route-assistant/internal/location"
)

// GoogleGeocoder is a secondary location.Geocoder backed by the Google
// Geocoding API. The library keeps its key in a package variable, so only one
// key can be active per process.
type GoogleGeocoder struct {
	geocode func(geocoder.Address) (geocoder.Location, error)
	timeout time.Duration
}

func NewGoogleGeocoder(apiKey string, timeout time.Duration) *GoogleGeocoder {
	geocoder.ApiKey = apiKey
	return &GoogleGeocoder{geocode: geocoder.Geocoding, timeout: timeout}
}

type googleResult struct {
	loc geocoder.Location
	err error
}

func (g *GoogleGeocoder) Geocode(ctx context.Context, address string) (location.Coordinate, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return location.Coordinate{}, common.NotFound("address not found: %s", address)
	}
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}
	if err := ctx.Err(); err != nil {
		return location.Coordinate{}, common.UpstreamUnavailable([]string{fmt.Sprintf("google err=%v", err)}, "google geocoding unavailable")
	}

	// The library takes no context and uses a client without a timeout, so
	// the call runs on its own goroutine and is abandoned on deadline.
	done := make(chan googleResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- googleResult{err: common.UpstreamFormat(fmt.Errorf("%v", r), "unexpected google geocoding payload")}
			}
		}()
		loc, err := g.geocode(geocoder.Address{Street: address})
		done <- googleResult{loc: loc, err: err}
	}()

	var res googleResult
	select {
	case <-ctx.Done():
		return location.Coordinate{}, common.UpstreamUnavailable([]string{fmt.Sprintf("google err=%v", ctx.Err())}, "google geocoding unavailable")
	case res = <-done:
	}

	if res.err != nil {
		if common.IsKind(res.err, common.KindUpstreamFormat) {
			return location.Coordinate{}, res.err
		}
		// Zero-result responses come back as plain errors.
		if common.HasAnyFold(res.err.Error(), "ZERO_RESULTS", "no results") {
			return location.Coordinate{}, common.NotFound("address not found: %s", address)
		}
		return location.Coordinate{}, res.err
	}
	if res.loc.Latitude == 0 && res.loc.Longitude == 0 {
		return location.Coordinate{}, common.NotFound("address not found: %s", address)
	}
	return location.Coordinate{Lon: res.loc.Longitude, Lat: res.loc.Latitude}, nil
}
