package route

import (
	"encoding/json"
	"math"
	"sort"

	"github.com/i474232898/weather-route-assistant/internal/common"
	"github.com/i474232898/weather-route-assistant/internal/location"
)

type providerRoute struct {
	Summary map[string]json.RawMessage `json:"summary"`
	Path    []json.RawMessage          `json:"path"`
}

// Normalize flattens the per-tag route groups into summaries. Tags are
// visited in sorted order. Routes and path points that do not decode are
// skipped one by one. An empty result is a not-found error, never an empty
// success.
func Normalize(resp ProviderResponse) ([]Summary, error) {
	tags := make([]string, 0, len(resp.Route))
	for tag := range resp.Route {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	var out []Summary
	for _, tag := range tags {
		var group []json.RawMessage
		if err := json.Unmarshal(resp.Route[tag], &group); err != nil {
			continue
		}
		for _, raw := range group {
			var r providerRoute
			if err := json.Unmarshal(raw, &r); err != nil {
				continue
			}
			out = append(out, Summary{
				Type:        tag,
				DistanceKm:  round1(number(r.Summary, "distance") / 1000.0),
				DurationMin: round1(number(r.Summary, "duration") / 60000.0),
				Toll:        number(r.Summary, "tollFare"),
				Fuel:        number(r.Summary, "fuelPrice"),
				Path:        toPath(r.Path),
			})
		}
	}

	if len(out) == 0 {
		if resp.Message != "" && resp.Code != 0 {
			return nil, common.NotFound("no route found: %s", resp.Message)
		}
		return nil, common.NotFound("no route found")
	}
	return out, nil
}

// number reads a numeric summary field. Missing or non-numeric values are 0.
func number(fields map[string]json.RawMessage, key string) float64 {
	var v float64
	if raw, ok := fields[key]; ok {
		if err := json.Unmarshal(raw, &v); err != nil {
			return 0
		}
	}
	return v
}

func toPath(points []json.RawMessage) []location.Coordinate {
	path := make([]location.Coordinate, 0, len(points))
	for _, raw := range points {
		var p []float64
		if err := json.Unmarshal(raw, &p); err != nil || len(p) < 2 {
			continue
		}
		path = append(path, location.Coordinate{Lon: p[0], Lat: p[1]})
	}
	return path
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
