package location

import (
	"context"

	"go.uber.org/zap"

	"github.com/i474232898/weather-route-assistant/internal/common"
)

// PlaceResolver resolves a place name by searching for candidates and
// geocoding the address of each one. The first candidate that geocodes wins.
type PlaceResolver struct {
	searcher PlaceSearcher
	geocoder Geocoder
	logger   *zap.Logger
}

func NewPlaceResolver(searcher PlaceSearcher, geocoder Geocoder, logger *zap.Logger) *PlaceResolver {
	return &PlaceResolver{
		searcher: searcher,
		geocoder: geocoder,
		logger:   logger.With(zap.String("component", "location.places")),
	}
}

func (r *PlaceResolver) Resolve(ctx context.Context, query string) (Coordinate, error) {
	places, err := r.searcher.SearchPlaces(ctx, query)
	if err != nil {
		return Coordinate{}, err
	}

	for i, p := range places {
		addr := p.PreferredAddress()
		if addr == "" {
			r.logger.Debug("place candidate has no address", zap.String("query", query), zap.Int("index", i))
			continue
		}

		c, err := r.geocoder.Geocode(ctx, addr)
		if err != nil {
			r.logger.Debug("place candidate did not geocode",
				zap.String("query", query),
				zap.String("address", addr),
				zap.Error(err),
			)
			continue
		}
		return c, nil
	}

	return Coordinate{}, common.NotFound("place not found: %s", query)
}
