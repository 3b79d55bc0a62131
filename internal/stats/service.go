package stats

import (
	"context"
	"log"
)

type Service struct {
	repo  *Repo
	cache *Cache
}

func NewService(repo *Repo, cache *Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

// Overview serves the dashboard counters, preferring the cache. Cache
// failures are logged and fall through to a fresh read.
func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		if err != nil {
			log.Printf("stats cache read failed: %v", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	o, err := s.repo.Collect(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, o); err != nil {
			log.Printf("stats cache write failed: %v", err)
		}
	}
	return o, nil
}

// Warm recomputes the counters and refreshes the cache.
func (s *Service) Warm(ctx context.Context) {
	o, err := s.repo.Collect(ctx)
	if err != nil {
		log.Printf("stats warm failed: %v", err)
		return
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, o); err != nil {
			log.Printf("stats cache write failed: %v", err)
		}
	}
}
