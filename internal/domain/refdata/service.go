// Package refdata serves the reference lists that populate entry forms.
// Lookups are cached with a long TTL; when the backing tables are
// unreachable the built-in lists keep the forms usable.
package refdata

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/crdc/crdc/internal/platform/cache"
)

var fallbackStudyTypes = []string{
	"Clinical Trial",
	"Observational Study",
	"Chart Review",
}

var fallbackNoteTypes = []string{
	"Progress Note",
	"Adverse Event Note",
	"Study Finding",
	"General Observation",
}

// Repository reads the active reference rows.
type Repository interface {
	StudyTypes(ctx context.Context) ([]string, error)
	NoteTypes(ctx context.Context) ([]string, error)
}

type Service struct {
	repo  Repository
	cache *cache.Cache
	ttl   time.Duration
	log   zerolog.Logger
}

func NewService(repo Repository, c *cache.Cache, ttl time.Duration, log zerolog.Logger) *Service {
	return &Service{repo: repo, cache: c, ttl: ttl, log: log}
}

// StudyTypes returns the active study types, falling back to the built-in
// list when the lookup fails.
func (s *Service) StudyTypes(ctx context.Context) []string {
	return s.load(cache.KeyStudyTypes, fallbackStudyTypes, func() ([]string, error) {
		return s.repo.StudyTypes(ctx)
	})
}

// NoteTypes returns the active note types, falling back to the built-in
// list when the lookup fails.
func (s *Service) NoteTypes(ctx context.Context) []string {
	return s.load(cache.KeyNoteTypes, fallbackNoteTypes, func() ([]string, error) {
		return s.repo.NoteTypes(ctx)
	})
}

func (s *Service) load(key string, fallback []string, query func() ([]string, error)) []string {
	v, _ := s.cache.GetOrLoad(key, s.ttl, func() (interface{}, error) {
		types, err := query()
		if err != nil || len(types) == 0 {
			if err != nil {
				s.log.Warn().Err(err).Str("key", key).Msg("reference lookup failed, using fallback")
			}
			return fallback, nil
		}
		return types, nil
	})
	return v.([]string)
}
