package location

import (
	"context"
	"errors"

	"github.com/i474232898/weather-route-assistant/internal/common"
)

// Geocoders tries each geocoder in order and returns the first hit.
type Geocoders []Geocoder

func (gs Geocoders) Geocode(ctx context.Context, address string) (Coordinate, error) {
	var errs []error
	for _, g := range gs {
		c, err := g.Geocode(ctx, address)
		if err == nil {
			return c, nil
		}
		errs = append(errs, err)
	}

	// A single clean miss is enough to call it a miss rather than an outage.
	for _, err := range errs {
		if common.IsKind(err, common.KindNotFound) {
			return Coordinate{}, common.NotFound("address not found: %s", address)
		}
	}
	if len(errs) == 0 {
		return Coordinate{}, common.NotFound("address not found: %s", address)
	}
	return Coordinate{}, errors.Join(errs...)
}
