package location

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/i474232898/weather-route-assistant/internal/common"
)

// DefaultSuffixes are appended, in order, to place names that fail to
// resolve as typed: station, terminal, airport.
var DefaultSuffixes = []string{"역", "터미널", "공항"}

// ResolveFunc is one resolution strategy.
type ResolveFunc func(ctx context.Context, query string) (Coordinate, error)

// Chain resolves free text to coordinates by running its strategies in order
// and stopping at the first success. When every strategy misses, the text is
// retried with each suffix appended unless it already ends with one.
type Chain struct {
	strategies []ResolveFunc
	suffixes   []string
	logger     *zap.Logger
}

// NewChain builds the address-first, place-second chain.
func NewChain(geocoder Geocoder, places *PlaceResolver, logger *zap.Logger) *Chain {
	return NewChainWithStrategies(logger, DefaultSuffixes, geocoder.Geocode, places.Resolve)
}

func NewChainWithStrategies(logger *zap.Logger, suffixes []string, strategies ...ResolveFunc) *Chain {
	return &Chain{
		strategies: strategies,
		suffixes:   suffixes,
		logger:     logger.With(zap.String("component", "location.chain")),
	}
}

// Queries returns the queries Resolve will try for text, in order.
func (c *Chain) Queries(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	queries := []string{text}
	if common.HasAnySuffix(text, c.suffixes...) {
		return queries
	}
	for _, suf := range c.suffixes {
		queries = append(queries, text+" "+suf)
	}
	return queries
}

func (c *Chain) Resolve(ctx context.Context, text string) (Coordinate, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Coordinate{}, common.InvalidInput("location must not be empty")
	}

	var (
		trail  []string
		missed bool
	)
	for _, q := range c.Queries(text) {
		if err := ctx.Err(); err != nil {
			trail = append(trail, fmt.Sprintf("query=%q err=%v", q, err))
			return Coordinate{}, common.UpstreamUnavailable(trail, "location lookup interrupted: %s", text)
		}
		for i, resolve := range c.strategies {
			coord, err := resolve(ctx, q)
			if err == nil {
				c.logger.Info("location resolved",
					zap.String("text", text),
					zap.String("query", q),
					zap.Int("strategy", i),
					zap.Float64("lon", coord.Lon),
					zap.Float64("lat", coord.Lat),
				)
				return coord, nil
			}
			if common.IsKind(err, common.KindNotFound) {
				missed = true
				continue
			}
			c.logger.Warn("location strategy failed", zap.String("query", q), zap.Int("strategy", i), zap.Error(err))
			trail = append(trail, fmt.Sprintf("query=%q strategy=%d err=%v", q, i, err))
		}
	}

	// Nothing answered with a clean miss: the providers were down, not the text wrong.
	if !missed && len(trail) > 0 {
		return Coordinate{}, common.UpstreamUnavailable(trail, "location lookup unavailable: %s", text)
	}
	return Coordinate{}, common.NotFound("location not found: %s", text)
}
