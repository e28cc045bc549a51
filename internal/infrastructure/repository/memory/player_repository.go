package memory

import (
	"context"
	"maps"
	"strings"
	"sync"

	"github.com/riskibarqy/fantasy-coach/internal/domain/player"
)

type PlayerRepository struct {
	mu      sync.RWMutex
	records []player.Record
	byID    map[string]int
}

func NewPlayerRepository(records []player.Record) *PlayerRepository {
	r := &PlayerRepository{byID: make(map[string]int, len(records))}
	for _, rec := range records {
		r.put(rec)
	}
	return r
}

func (r *PlayerRepository) GetByName(_ context.Context, name string) (player.Record, bool, error) {
	target := player.NormalizeName(name)
	if target == "" {
		return player.Record{}, false, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	candidates := make([]player.Record, 0, 4)
	for _, rec := range r.records {
		normalized := player.NormalizeName(rec.Name)
		if strings.Contains(normalized, target) || strings.Contains(target, normalized) {
			candidates = append(candidates, rec)
		}
	}

	rec, ok := player.BestMatch(name, candidates)
	if !ok {
		return player.Record{}, false, nil
	}
	return cloneRecord(rec), true, nil
}

func (r *PlayerRepository) GetManyByID(_ context.Context, ids []string) (map[string]player.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]player.Record, len(ids))
	for _, chunk := range player.ChunkIDs(ids, player.MaxBatchSize) {
		for _, id := range chunk {
			idx, ok := r.byID[id]
			if !ok {
				continue
			}
			out[id] = cloneRecord(r.records[idx])
		}
	}
	return out, nil
}

// Upsert stores records by ID, replacing existing entries.
func (r *PlayerRepository) Upsert(_ context.Context, records []player.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rec := range records {
		if err := rec.Validate(); err != nil {
			return err
		}
		r.put(rec)
	}
	return nil
}

func (r *PlayerRepository) put(rec player.Record) {
	if rec.ID == "" {
		rec.ID = player.RecordID(rec.Name, rec.Position)
	}
	rec = cloneRecord(rec)
	if idx, ok := r.byID[rec.ID]; ok {
		r.records[idx] = rec
		return
	}
	r.byID[rec.ID] = len(r.records)
	r.records = append(r.records, rec)
}

func cloneRecord(rec player.Record) player.Record {
	if rec.Seasons == nil {
		return rec
	}
	seasons := make(map[int]player.Season, len(rec.Seasons))
	for year, s := range rec.Seasons {
		seasons[year] = player.Season{
			WeeklyStats:       maps.Clone(s.WeeklyStats),
			Totals:            maps.Clone(s.Totals),
			Projections:       maps.Clone(s.Projections),
			WeeklyProjections: maps.Clone(s.WeeklyProjections),
		}
	}
	rec.Seasons = seasons
	return rec
}
