package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/fantasy-coach/internal/domain/lineup"
	"github.com/riskibarqy/fantasy-coach/internal/domain/player"
	"github.com/riskibarqy/fantasy-coach/internal/domain/projection"
	"github.com/riskibarqy/fantasy-coach/internal/domain/scoring"
	"github.com/riskibarqy/fantasy-coach/internal/platform/logging"
)

const (
	defaultCandidateWorkers       = 10
	defaultCandidateLookupTimeout = 2 * time.Second
	gamesPerSeason                = 17
	recentGames                   = 4
)

type CandidateBuilderConfig struct {
	Workers       int
	LookupTimeout time.Duration
	Strategy      scoring.Strategy
	Season        int
	HistorySeason int
}

type BuildCandidatesInput struct {
	Roster      []player.RosterPlayer
	Projections projection.Weekly
}

// CandidateBuilder joins a roster with projections and stored records and
// blends the result into lineup candidates.
type CandidateBuilder struct {
	players player.Repository
	cfg     CandidateBuilderConfig
	logger  *logging.Logger
	newPool func(size int) (taskPool, error)
}

// taskPool is the subset of *ants.Pool used for name lookups.
type taskPool interface {
	Submit(task func()) error
	Release()
}

func newAntsPool(size int) (taskPool, error) {
	pool, err := ants.NewPool(size)
	if err != nil {
		return nil, err
	}
	return pool, nil
}

func NewCandidateBuilder(players player.Repository, cfg CandidateBuilderConfig, logger *logging.Logger) *CandidateBuilder {
	if cfg.Workers < 1 {
		cfg.Workers = defaultCandidateWorkers
	}
	if cfg.LookupTimeout <= 0 {
		cfg.LookupTimeout = defaultCandidateLookupTimeout
	}
	if cfg.Strategy == "" {
		cfg.Strategy = scoring.StrategyAuto
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &CandidateBuilder{
		players: players,
		cfg:     cfg,
		logger:  logger,
		newPool: newAntsPool,
	}
}

// Build returns one candidate per roster entry with a known position, in
// roster order. Missing projections or records yield zeroed candidates.
func (b *CandidateBuilder) Build(ctx context.Context, input BuildCandidatesInput) ([]lineup.Candidate, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CandidateBuilder.Build")
	defer span.End()

	type entry struct {
		rp  player.RosterPlayer
		pos player.Position
	}
	entries := make([]entry, 0, len(input.Roster))
	for _, rp := range input.Roster {
		pos, ok := player.ParsePosition(rp.Position)
		if !ok {
			b.logger.DebugContext(ctx, "skip roster entry with unknown position", "player", rp.Name, "position", rp.Position)
			continue
		}
		entries = append(entries, entry{rp: rp, pos: pos})
	}

	roster := make([]player.RosterPlayer, len(entries))
	for i, e := range entries {
		roster[i] = e.rp
	}
	records, err := b.LoadRecords(ctx, roster)
	if err != nil {
		return nil, err
	}

	index := input.Projections.Index()
	out := make([]lineup.Candidate, 0, len(entries))
	for i, e := range entries {
		row := index[player.JoinKey(e.rp.Name)]
		out = append(out, b.candidate(e.rp, e.pos, row, records[i]))
	}
	return out, nil
}

func (b *CandidateBuilder) candidate(rp player.RosterPlayer, pos player.Position, row projection.Row, rec player.Record) lineup.Candidate {
	seasonTotal := rec.SeasonProjectionTotal(b.cfg.Season)
	perGame := 0.0
	if seasonTotal > 0 {
		perGame = seasonTotal / gamesPerSeason
	}
	recent := rec.RecentAverage(b.cfg.HistorySeason, recentGames)

	status := player.InjuryHealthy
	switch {
	case strings.TrimSpace(rp.InjuryStatus) != "":
		status = rp.Status()
	case rec.ID != "":
		status = rec.Status()
	}

	var vsOpponent *float64
	if opp := strings.TrimSpace(row.Opponent); opp != "" {
		if avg, ok := rec.OpponentAverage(b.cfg.HistorySeason, opp); ok {
			vsOpponent = &avg
		}
	}

	score := scoring.BlendWith(b.cfg.Strategy, scoring.Signals{
		Weekly:        row.Projected,
		SeasonPerGame: perGame,
		Recent:        recent,
		VsOpponent:    vsOpponent,
		Injury:        status,
	})

	team := rp.Team
	if team == "" {
		team = firstNonEmpty(row.Team, rec.Team)
	}

	return lineup.Candidate{
		Name:          rp.Name,
		Position:      pos,
		Team:          team,
		Opponent:      row.Opponent,
		Projected:     row.Projected,
		SeasonTotal:   seasonTotal,
		SeasonPerGame: scoring.Round2(perGame),
		RecentAvg:     recent,
		VsOpponentAvg: vsOpponent,
		InjuryStatus:  status,
		Adjusted:      score.Adjusted,
		Confidence:    score.Confidence,
	}
}

// LoadRecords resolves a record for every roster entry, aligned by index.
// Entries with a PlayerID go through one batched id lookup; the rest are
// resolved by name on a bounded pool. Failures degrade to zero records.
func (b *CandidateBuilder) LoadRecords(ctx context.Context, roster []player.RosterPlayer) ([]player.Record, error) {
	out := make([]player.Record, len(roster))
	if b.players == nil || len(roster) == 0 {
		return out, nil
	}

	byName := make([]int, 0, len(roster))
	ids := make([]string, 0, len(roster))
	for i, rp := range roster {
		if id := strings.TrimSpace(rp.PlayerID); id != "" {
			ids = append(ids, id)
			continue
		}
		byName = append(byName, i)
	}

	if len(ids) > 0 {
		found, err := b.players.GetManyByID(ctx, ids)
		if err != nil {
			b.logger.WarnContext(ctx, "batch record lookup failed, using defaults", "ids", len(ids), "error", err)
			found = nil
		}
		for i, rp := range roster {
			id := strings.TrimSpace(rp.PlayerID)
			if id == "" {
				continue
			}
			if rec, ok := found[id]; ok {
				out[i] = rec
				continue
			}
			// Stale ids fall back to the name path.
			byName = append(byName, i)
		}
	}

	if len(byName) == 0 {
		return out, nil
	}
	b.lookupByName(ctx, roster, byName, out)
	return out, nil
}

// lookupByName fills out[idx] for every index it can resolve. Lookups that
// fail, time out or cannot be scheduled leave the zero record in place.
func (b *CandidateBuilder) lookupByName(ctx context.Context, roster []player.RosterPlayer, indexes []int, out []player.Record) {
	workers := b.cfg.Workers
	if workers > len(indexes) {
		workers = len(indexes)
	}
	pool, err := b.newPool(workers)
	if err != nil {
		b.logger.WarnContext(ctx, "record lookup pool unavailable, using defaults",
			"total", len(indexes),
			"error", err,
		)
		return
	}
	defer pool.Release()

	var (
		wg       sync.WaitGroup
		failed   atomic.Int32
		errOnce  sync.Once
		firstErr error
	)
	record := func(err error) {
		failed.Add(1)
		errOnce.Do(func() { firstErr = err })
	}
	for n, idx := range indexes {
		idx := idx
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()

			itemCtx, cancel := context.WithTimeout(ctx, b.cfg.LookupTimeout)
			defer cancel()

			rec, ok, err := b.players.GetByName(itemCtx, roster[idx].Name)
			if err != nil {
				record(err)
				return
			}
			if ok {
				out[idx] = rec
			}
		}); err != nil {
			wg.Done()
			for range indexes[n:] {
				record(fmt.Errorf("submit record lookup: %w", err))
			}
			break
		}
	}
	wg.Wait()

	if n := failed.Load(); n > 0 {
		b.logger.WarnContext(ctx, "record lookups failed, using defaults",
			"failed", n,
			"total", len(indexes),
			"error", firstErr,
		)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
