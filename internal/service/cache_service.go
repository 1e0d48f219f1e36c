package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/nbdwit/club-api/internal/models"
	appErrors "github.com/nbdwit/club-api/pkg/errors"
)

const snapshotCacheKey = "club:snapshot"

// CacheRepository abstracts persistence for cached payloads.
type CacheRepository interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// CacheService orchestrates snapshot caching and related metrics. It
// satisfies store.SnapshotCache.
type CacheService struct {
	repo       CacheRepository
	metrics    *MetricsService
	defaultTTL time.Duration
	logger     *zap.Logger
	enabled    bool
}

// NewCacheService constructs a cache service.
func NewCacheService(repo CacheRepository, metrics *MetricsService, defaultTTL time.Duration, logger *zap.Logger, enabled bool) *CacheService {
	if defaultTTL <= 0 {
		defaultTTL = 5 * time.Minute
	}
	return &CacheService{repo: repo, metrics: metrics, defaultTTL: defaultTTL, logger: logger, enabled: enabled}
}

// Enabled indicates whether caching is active.
func (s *CacheService) Enabled() bool {
	return s != nil && s.enabled && s.repo != nil
}

// GetSnapshot retrieves the cached normalised snapshot.
func (s *CacheService) GetSnapshot(ctx context.Context) (*models.Snapshot, error) {
	if !s.Enabled() {
		return nil, appErrors.ErrCacheMiss
	}
	start := time.Now()
	var snapshot models.Snapshot
	err := s.repo.Get(ctx, snapshotCacheKey, &snapshot)
	duration := time.Since(start)
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordCacheOperation(false, duration)
		}
		if !errors.Is(err, appErrors.ErrCacheMiss) && s.logger != nil {
			s.logger.Warn("snapshot cache get failed", zap.Error(err))
		}
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.RecordCacheOperation(true, duration)
	}
	return &snapshot, nil
}

// SetSnapshot stores the normalised snapshot with the configured TTL.
func (s *CacheService) SetSnapshot(ctx context.Context, snapshot *models.Snapshot) error {
	if !s.Enabled() {
		return nil
	}
	start := time.Now()
	err := s.repo.Set(ctx, snapshotCacheKey, snapshot, s.defaultTTL)
	if s.metrics != nil {
		s.metrics.ObserveCacheWrite(time.Since(start))
	}
	if err != nil && s.logger != nil {
		s.logger.Warn("snapshot cache set failed", zap.Error(err))
	}
	return err
}

// Invalidate removes cached snapshots.
func (s *CacheService) Invalidate(ctx context.Context) error {
	if !s.Enabled() {
		return nil
	}
	if err := s.repo.DeleteByPattern(ctx, "club:*"); err != nil {
		if s.logger != nil {
			s.logger.Warn("cache invalidate failed", zap.Error(err))
		}
		return err
	}
	return nil
}
