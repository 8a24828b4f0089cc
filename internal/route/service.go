package route

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/i474232898/weather-route-assistant/internal/common"
)

// Service resolves both ends of a trip and returns normalized routes.
type Service struct {
	resolver Resolver
	fetcher  Fetcher
	logger   *zap.Logger
}

func NewService(resolver Resolver, fetcher Fetcher, logger *zap.Logger) *Service {
	return &Service{
		resolver: resolver,
		fetcher:  fetcher,
		logger:   logger.With(zap.String("component", "route.service")),
	}
}

func (s *Service) Plan(ctx context.Context, start, end string) (Plan, error) {
	start = strings.TrimSpace(start)
	end = strings.TrimSpace(end)
	if start == "" || end == "" {
		return Plan{}, common.InvalidInput("start and end are required")
	}

	sp, err := s.resolver.Resolve(ctx, start)
	if err != nil {
		return Plan{}, fmt.Errorf("resolve start: %w", err)
	}
	ep, err := s.resolver.Resolve(ctx, end)
	if err != nil {
		return Plan{}, fmt.Errorf("resolve end: %w", err)
	}

	resp, err := s.fetcher.FetchRoute(ctx, sp, ep)
	if err != nil {
		return Plan{}, err
	}

	routes, err := Normalize(resp)
	if err != nil {
		s.logger.Info("directions returned no usable route",
			zap.String("start", start),
			zap.String("end", end),
			zap.Int("code", resp.Code),
			zap.String("message", resp.Message),
		)
		return Plan{}, err
	}

	s.logger.Info("route planned", zap.String("start", start), zap.String("end", end), zap.Int("routes", len(routes)))
	return Plan{
		Start:      start,
		End:        end,
		StartPoint: sp,
		EndPoint:   ep,
		Routes:     routes,
	}, nil
}
