package route

import (
	"context"
	"encoding/json"

	"github.com/i474232898/weather-route-assistant/internal/location"
)

// Summary is one normalized candidate route.
type Summary struct {
	Type        string                `json:"type"`
	DistanceKm  float64               `json:"distanceKm"`
	DurationMin float64               `json:"durationMin"`
	Toll        float64               `json:"toll"`
	Fuel        float64               `json:"fuel"`
	Path        []location.Coordinate `json:"path"`
}

// ProviderResponse is the directions payload. Route groups routes by
// route-type tag; values that are not arrays are ignored.
type ProviderResponse struct {
	Code    int                        `json:"code"`
	Message string                     `json:"message"`
	Route   map[string]json.RawMessage `json:"route"`
}

// Plan is the result of the route feature.
type Plan struct {
	Start      string              `json:"start"`
	End        string              `json:"end"`
	StartPoint location.Coordinate `json:"startPoint"`
	EndPoint   location.Coordinate `json:"endPoint"`
	Routes     []Summary           `json:"routes"`
}

// Fetcher requests driving directions between two coordinates.
type Fetcher interface {
	FetchRoute(ctx context.Context, start, end location.Coordinate) (ProviderResponse, error)
}

// Resolver turns free text into coordinates.
type Resolver interface {
	Resolve(ctx context.Context, text string) (location.Coordinate, error)
}
