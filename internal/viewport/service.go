package viewport

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/iudanet/geocheckin/internal/models"
	"github.com/iudanet/geocheckin/pkg/api"
)

//go:generate moq -out querier_mock.go . Querier

// Querier внешний источник маркеров (HTTP клиент сервера)
type Querier interface {
	QueryMarkers(ctx context.Context, bounds models.Bounds, dates models.DateRange) ([]models.CheckinMarker, error)
	GetCheckin(ctx context.Context, id string) (*api.CheckinResponse, error)
}

// MarkerService read-through слой над Querier: промах кэша выполняет запрос,
// результат отдается вызывающему и сохраняется для следующих.
type MarkerService struct {
	querier Querier
	cache   *MarkerCache
	logger  *slog.Logger
	group   singleflight.Group
	cfg     Config
}

// NewMarkerService creates the cached marker query layer
func NewMarkerService(querier Querier, cfg Config, logger *slog.Logger) *MarkerService {
	return &MarkerService{
		querier: querier,
		cache:   NewMarkerCache(cfg),
		logger:  logger,
		cfg:     cfg,
	}
}

// Cache exposes the underlying cache
func (s *MarkerService) Cache() *MarkerCache {
	return s.cache
}

// Markers returns markers inside bounds, served from cache when possible.
// Concurrent misses for the same viewport share one query.
func (s *MarkerService) Markers(ctx context.Context, bounds models.Bounds, dates models.DateRange) ([]models.CheckinMarker, error) {
	if err := bounds.Validate(); err != nil {
		return nil, err
	}

	if markers, ok := s.cache.Markers(bounds, dates); ok {
		s.logger.Debug("Viewport cache hit", "bounds", BoundsKey(bounds))
		return markers, nil
	}

	v, err, _ := s.group.Do(viewportKey(bounds, dates), func() (any, error) {
		markers, err := s.querier.QueryMarkers(ctx, bounds, dates)
		if err != nil {
			return nil, err
		}
		s.cache.SetMarkers(bounds, dates, markers)
		return markers, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load markers: %w", err)
	}

	s.logger.Debug("Viewport cache miss", "bounds", BoundsKey(bounds))
	return v.([]models.CheckinMarker), nil
}

// Detail returns a single check-in, cached for the detail TTL.
func (s *MarkerService) Detail(ctx context.Context, id string) (*api.CheckinResponse, error) {
	if resp, ok := s.cache.Detail(id); ok {
		return resp, nil
	}

	resp, err := s.querier.GetCheckin(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load check-in %s: %w", id, err)
	}
	s.cache.SetDetail(resp)
	return resp, nil
}

// Invalidate drops cached viewports so the next query hits the source.
func (s *MarkerService) Invalidate() {
	s.cache.InvalidateMarkers()
}

// Run periodically removes expired entries until ctx is cancelled.
func (s *MarkerService) Run(ctx context.Context) error {
	interval := s.cfg.CleanupInterval
	if interval <= 0 {
		interval = DefaultConfig().CleanupInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := s.cache.Cleanup(); n > 0 {
				s.logger.Debug("Expired cache entries removed", "count", n)
			}
		}
	}
}
