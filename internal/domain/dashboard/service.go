package dashboard

import (
	"context"
	"time"

	"github.com/crdc/crdc/internal/platform/cache"
)

type Service struct {
	repo  Repository
	cache *cache.Cache
	ttl   time.Duration
}

func NewService(repo Repository, c *cache.Cache, ttl time.Duration) *Service {
	return &Service{repo: repo, cache: c, ttl: ttl}
}

// GetMetrics returns the headline counts, cached for the metrics TTL. Every
// write path invalidates the cache entry, so the counts lag at most one TTL
// behind reads from other instances.
func (s *Service) GetMetrics(ctx context.Context) (*Metrics, error) {
	v, err := s.cache.GetOrLoad(cache.KeyDashboardMetrics, s.ttl, func() (interface{}, error) {
		return s.repo.Metrics(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Metrics), nil
}

func (s *Service) RecentNotes(ctx context.Context) ([]*RecentNote, error) {
	return s.repo.RecentNotes(ctx)
}

func (s *Service) RecentFindings(ctx context.Context) ([]*RecentFinding, error) {
	return s.repo.RecentFindings(ctx)
}
