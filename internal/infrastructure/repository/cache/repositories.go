package cache

import (
	"context"
	"strings"

	"github.com/riskibarqy/fantasy-coach/internal/domain/player"
	"github.com/riskibarqy/fantasy-coach/internal/domain/roster"
	"github.com/riskibarqy/fantasy-coach/internal/domain/waiver"
	basecache "github.com/riskibarqy/fantasy-coach/internal/platform/cache"
)

type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) GetByName(ctx context.Context, name string) (player.Record, bool, error) {
	key := "player:name:" + player.NormalizeName(name)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByName(ctx, name)
		if err != nil {
			return nil, err
		}
		return cachedRecord{value: item, exists: exists}, nil
	})
	if err != nil {
		return player.Record{}, false, err
	}

	cached, _ := v.(cachedRecord)
	return cached.value, cached.exists, nil
}

// GetManyByID caches per id so overlapping batches share entries. Only ids
// that miss are forwarded, in one call.
func (r *PlayerRepository) GetManyByID(ctx context.Context, ids []string) (map[string]player.Record, error) {
	out := make(map[string]player.Record, len(ids))
	var misses []string
	for _, id := range uniqueIDs(ids) {
		v, ok := r.cache.Get(ctx, playerIDKey(id))
		if !ok {
			misses = append(misses, id)
			continue
		}
		if cached, _ := v.(cachedRecord); cached.exists {
			out[id] = cached.value
		}
	}
	if len(misses) == 0 {
		return out, nil
	}

	loaded, err := r.next.GetManyByID(ctx, misses)
	if err != nil {
		return nil, err
	}
	for _, id := range misses {
		rec, exists := loaded[id]
		r.cache.Set(ctx, playerIDKey(id), cachedRecord{value: rec, exists: exists})
		if exists {
			out[id] = rec
		}
	}
	return out, nil
}

type cachedRecord struct {
	value  player.Record
	exists bool
}

func playerIDKey(id string) string {
	return "player:id:" + id
}

func uniqueIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

type TeamRepository struct {
	next  roster.Repository
	cache *basecache.Store
}

func NewTeamRepository(next roster.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) ListTeams(ctx context.Context) ([]roster.Team, error) {
	v, err := r.cache.GetOrLoad(ctx, "team:list", func(ctx context.Context) (any, error) {
		items, err := r.next.ListTeams(ctx)
		if err != nil {
			return nil, err
		}
		return append([]roster.Team(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]roster.Team)
	return append([]roster.Team(nil), items...), nil
}

func (r *TeamRepository) GetTeam(ctx context.Context, teamID string) (roster.Team, bool, error) {
	key := "team:id:" + strings.TrimSpace(teamID)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetTeam(ctx, teamID)
		if err != nil {
			return nil, err
		}
		return cachedTeam{value: item, exists: exists}, nil
	})
	if err != nil {
		return roster.Team{}, false, err
	}

	cached, _ := v.(cachedTeam)
	return cached.value, cached.exists, nil
}

type cachedTeam struct {
	value  roster.Team
	exists bool
}

type WaiverRepository struct {
	next  waiver.Pool
	cache *basecache.Store
}

func NewWaiverRepository(next waiver.Pool, cache *basecache.Store) *WaiverRepository {
	return &WaiverRepository{next: next, cache: cache}
}

func (r *WaiverRepository) ListByPosition(ctx context.Context, pos player.Position) ([]waiver.Player, error) {
	key := "waiver:position:" + string(pos)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByPosition(ctx, pos)
		if err != nil {
			return nil, err
		}
		return append([]waiver.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]waiver.Player)
	return append([]waiver.Player(nil), items...), nil
}
