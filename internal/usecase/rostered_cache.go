package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/fantasy-coach/internal/domain/roster"
	"github.com/riskibarqy/fantasy-coach/internal/platform/cache"
)

// RosteredLoader produces the lowercased names of every rostered player.
type RosteredLoader func(ctx context.Context) (map[string]struct{}, error)

// RosteredCache holds the league-wide set of rostered names. Callers
// invalidate it when roster composition changes.
type RosteredCache interface {
	Get(ctx context.Context, loader RosteredLoader) (map[string]struct{}, error)
	Invalidate(ctx context.Context) error
}

const rosteredCacheKey = "rostered:names"

// MemoryRosteredCache keeps the set in the process. Concurrent misses share
// one load.
type MemoryRosteredCache struct {
	store *cache.Store
}

func NewMemoryRosteredCache(store *cache.Store) *MemoryRosteredCache {
	if store == nil {
		store = cache.NewStore(0)
	}
	return &MemoryRosteredCache{store: store}
}

func (c *MemoryRosteredCache) Get(ctx context.Context, loader RosteredLoader) (map[string]struct{}, error) {
	if loader == nil {
		return nil, fmt.Errorf("%w: rostered loader is required", ErrInvalidInput)
	}
	return cache.Load(ctx, c.store, rosteredCacheKey, func(ctx context.Context) (map[string]struct{}, error) {
		return loader(ctx)
	})
}

func (c *MemoryRosteredCache) Invalidate(ctx context.Context) error {
	c.store.Delete(ctx, rosteredCacheKey)
	return nil
}

// RosteredNamesFromTeams builds a loader that scans every league roster.
func RosteredNamesFromTeams(teams roster.Repository) RosteredLoader {
	return func(ctx context.Context) (map[string]struct{}, error) {
		if teams == nil {
			return map[string]struct{}{}, nil
		}
		items, err := teams.ListTeams(ctx)
		if err != nil {
			return nil, fmt.Errorf("list league rosters: %w", err)
		}

		out := make(map[string]struct{})
		for _, team := range items {
			for _, p := range team.Players {
				if name := strings.ToLower(strings.TrimSpace(p.Name)); name != "" {
					out[name] = struct{}{}
				}
			}
		}
		return out, nil
	}
}
