// Package proxy implements the cache-augmented likes lookup and its HTTP surface.
package proxy

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Sternrassler/game-likes-proxy/pkg/cache"
	"github.com/Sternrassler/game-likes-proxy/pkg/catalog"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// LikesFetcher looks up the favorited count of a universe upstream.
type LikesFetcher interface {
	FavoritedCount(ctx context.Context, universeID int64) (int64, error)
}

// LikesStore is the lookup cache consulted before every fetch.
type LikesStore interface {
	Get(universeID int64) (int64, bool)
	Put(universeID int64, likes int64)
}

// Result is a successful lookup.
type Result struct {
	Likes  int64 `json:"likes"`
	Cached bool  `json:"cached"`
}

// Service answers likes lookups from the cache, falling back to a single
// upstream fetch on a miss.
type Service struct {
	store   LikesStore
	fetcher LikesFetcher
	group   singleflight.Group
	logger  zerolog.Logger
}

// NewService creates a lookup service.
func NewService(store LikesStore, fetcher LikesFetcher, logger zerolog.Logger) *Service {
	return &Service{
		store:   store,
		fetcher: fetcher,
		logger:  logger,
	}
}

// ParseUniverseID validates a raw universeId parameter.
// Returns ErrMissingParameter for an empty value and ErrInvalidParameter for
// anything that is not a positive base-10 integer.
func ParseUniverseID(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, ErrMissingParameter
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidParameter, raw)
	}
	if id <= 0 {
		return 0, fmt.Errorf("%w: %d is not positive", ErrInvalidParameter, id)
	}

	return id, nil
}

// Lookup returns the likes of a universe.
//
// A cache hit is returned directly. On a miss, one upstream fetch is made;
// concurrent misses for the same universe share that fetch. Only successful
// fetches are stored, so a failure never changes cache state.
func (s *Service) Lookup(ctx context.Context, universeID int64) (Result, error) {
	if likes, ok := s.store.Get(universeID); ok {
		s.logger.Debug().
			Int64("universe_id", universeID).
			Int64("likes", likes).
			Msg("Cache hit")
		lookupsTotal.WithLabelValues("cache").Inc()
		return Result{Likes: likes, Cached: true}, nil
	}

	s.logger.Debug().Int64("universe_id", universeID).Msg("Cache miss")

	// The shared fetch outlives any one caller. The catalog client's timeout bounds it.
	fetchCtx := context.WithoutCancel(ctx)
	ch := s.group.DoChan(cache.Key(universeID).String(), func() (any, error) {
		likes, err := s.fetcher.FavoritedCount(fetchCtx, universeID)
		if err != nil {
			return int64(0), err
		}
		s.store.Put(universeID, likes)
		return likes, nil
	})

	select {
	case <-ctx.Done():
		return Result{}, &catalog.Error{
			Kind:    catalog.KindUnreachable,
			Message: "request cancelled while waiting for catalog",
			Err:     ctx.Err(),
		}
	case res := <-ch:
		if res.Shared {
			coalescedFetchesTotal.Inc()
		}
		if res.Err != nil {
			return Result{}, fmt.Errorf("fetch universe %d: %w", universeID, res.Err)
		}

		likes := res.Val.(int64)
		s.logger.Debug().
			Int64("universe_id", universeID).
			Int64("likes", likes).
			Bool("shared", res.Shared).
			Msg("Fetched from catalog")
		lookupsTotal.WithLabelValues("upstream").Inc()
		return Result{Likes: likes, Cached: false}, nil
	}
}
