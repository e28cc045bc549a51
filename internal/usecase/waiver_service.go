package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/fantasy-coach/internal/domain/player"
	"github.com/riskibarqy/fantasy-coach/internal/domain/roster"
	"github.com/riskibarqy/fantasy-coach/internal/domain/scoring"
	"github.com/riskibarqy/fantasy-coach/internal/domain/waiver"
	"github.com/riskibarqy/fantasy-coach/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

const (
	defaultMaxOwnership  = 50.0
	targetSearchLimit    = 15
	targetResultLimit    = 10
	optionsPerPosition   = 3
	waiverFanOutParallel = 4
)

// RecordLoader resolves stored records for roster-shaped entries, aligned by
// index, degrading failures to zero records.
type RecordLoader interface {
	LoadRecords(ctx context.Context, players []player.RosterPlayer) ([]player.Record, error)
}

type WaiverServiceConfig struct {
	CurrentWeek   int
	Season        int
	HistorySeason int
	Requirements  roster.Requirements
}

type WaiverTargetsInput struct {
	Position     string
	Week         int
	MinPoints    *float64
	MaxOwnership float64
}

type WaiverTargetsResult struct {
	Position     player.Position `json:"position"`
	Week         int             `json:"week"`
	TargetsFound int             `json:"targets_found"`
	Targets      []waiver.Target `json:"waiver_targets"`
	TopSleeper   *waiver.Target  `json:"top_sleeper"`
	Analysis     string          `json:"analysis"`
}

type WaiverAnalysisInput struct {
	Roster []player.RosterPlayer
	Week   int
}

type WaiverAnalysisResult struct {
	Construction     []roster.PositionAnalysis `json:"roster_construction"`
	Recommendations  []waiver.Recommendation   `json:"waiver_recommendations"`
	PositionsToAvoid []player.Position         `json:"positions_to_avoid"`
	Total            int                       `json:"total_recommendations"`
	Analysis         string                    `json:"analysis"`
}

type ReplacementStarter struct {
	Name      string  `json:"name" validate:"required"`
	Projected float64 `json:"projected"`
}

type ReplacementCandidate struct {
	Name         string  `json:"name" validate:"required"`
	Projected    float64 `json:"projected"`
	OwnershipPct float64 `json:"ownership_pct" validate:"gte=0,lte=100"`
}

type ReplacementInput struct {
	Starter    ReplacementStarter
	Candidates []ReplacementCandidate
}

type ReplacementOption struct {
	PlayerName    string          `json:"player_name"`
	Projected     float64         `json:"projected_points"`
	Improvement   float64         `json:"improvement"`
	OwnershipPct  float64         `json:"ownership_pct"`
	HistoricalAvg float64         `json:"historical_avg"`
	Strength      waiver.Strength `json:"recommendation_strength"`
}

// WaiverService searches the waiver pool for pickups.
type WaiverService struct {
	pool     waiver.Pool
	records  RecordLoader
	teams    roster.Repository
	rostered RosteredCache
	cfg      WaiverServiceConfig
	logger   *logging.Logger
}

func NewWaiverService(
	waiverPool waiver.Pool,
	records RecordLoader,
	teams roster.Repository,
	rostered RosteredCache,
	cfg WaiverServiceConfig,
	logger *logging.Logger,
) *WaiverService {
	if rostered == nil {
		rostered = NewMemoryRosteredCache(nil)
	}
	if len(cfg.Requirements.Starters) == 0 {
		cfg.Requirements = roster.DefaultRequirements()
	}
	if cfg.CurrentWeek < 1 {
		cfg.CurrentWeek = 1
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &WaiverService{
		pool:     waiverPool,
		records:  records,
		teams:    teams,
		rostered: rostered,
		cfg:      cfg,
		logger:   logger,
	}
}

// Targets lists low-owned pickups at one position ranked by upside.
func (s *WaiverService) Targets(ctx context.Context, input WaiverTargetsInput) (WaiverTargetsResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WaiverService.Targets")
	defer span.End()

	pos, ok := player.ParsePosition(input.Position)
	if !ok {
		return WaiverTargetsResult{}, fmt.Errorf("%w: unknown position %q", ErrInvalidInput, input.Position)
	}
	week, err := s.week(input.Week)
	if err != nil {
		return WaiverTargetsResult{}, err
	}
	maxOwnership := input.MaxOwnership
	if maxOwnership <= 0 {
		maxOwnership = defaultMaxOwnership
	}
	minPoints := waiver.PositionMinPoints(pos, roster.PriorityMedium)
	if input.MinPoints != nil {
		minPoints = *input.MinPoints
	}

	rostered, err := s.rosteredNames(ctx)
	if err != nil {
		return WaiverTargetsResult{}, err
	}
	available, err := s.available(ctx, pos, week, minPoints, rostered, targetSearchLimit)
	if err != nil {
		return WaiverTargetsResult{}, err
	}

	eligible := make([]waiver.Available, 0, len(available))
	for _, a := range available {
		if a.PercentOwned <= maxOwnership {
			eligible = append(eligible, a)
		}
	}

	seasons, history := s.enrich(ctx, eligible)
	targets := make([]waiver.Target, 0, len(eligible))
	for i, a := range eligible {
		targets = append(targets, waiver.NewTarget(a, seasons[i], history[i]))
	}
	waiver.SortTargets(targets)

	out := WaiverTargetsResult{
		Position:     pos,
		Week:         week,
		TargetsFound: len(targets),
		Targets:      targets,
		Analysis:     fmt.Sprintf("Found %d %s targets under %g%% ownership for week %d", len(targets), pos, maxOwnership, week),
	}
	if len(out.Targets) > targetResultLimit {
		out.Targets = out.Targets[:targetResultLimit]
	}
	if len(targets) > 0 {
		top := targets[0]
		out.TopSleeper = &top
	}
	return out, nil
}

// Analyze searches the waiver pool only for positions the roster needs,
// one goroutine per position.
func (s *WaiverService) Analyze(ctx context.Context, input WaiverAnalysisInput) (WaiverAnalysisResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WaiverService.Analyze")
	defer span.End()

	week, err := s.week(input.Week)
	if err != nil {
		return WaiverAnalysisResult{}, err
	}

	construction := roster.Analyze(input.Roster, s.cfg.Requirements)
	priorities := construction.WaiverPriorities()
	avoid := construction.PositionsToAvoid()

	rostered, err := s.rosteredNames(ctx)
	if err != nil {
		return WaiverAnalysisResult{}, err
	}

	type indexed struct {
		order int
		rec   waiver.Recommendation
		ok    bool
	}
	p := pool.NewWithResults[indexed]().WithMaxGoroutines(waiverFanOutParallel)
	for i, need := range priorities {
		i, need := i, need
		p.Go(func() indexed {
			rec, ok := s.recommend(ctx, need, week, rostered)
			return indexed{order: i, rec: rec, ok: ok}
		})
	}
	results := p.Wait()
	sort.Slice(results, func(i, j int) bool { return results[i].order < results[j].order })

	recs := make([]waiver.Recommendation, 0, len(results))
	for _, r := range results {
		if r.ok {
			recs = append(recs, r.rec)
		}
	}

	return WaiverAnalysisResult{
		Construction:     construction.Positions,
		Recommendations:  recs,
		PositionsToAvoid: avoid,
		Total:            len(recs),
		Analysis:         waiver.Summarize(recs, avoid),
	}, nil
}

func (s *WaiverService) recommend(ctx context.Context, need roster.PositionAnalysis, week int, rostered map[string]struct{}) (waiver.Recommendation, bool) {
	minPoints := waiver.PositionMinPoints(need.Position, need.Priority)
	available, err := s.available(ctx, need.Position, week, minPoints, rostered, waiver.SearchLimit(need.Priority))
	if err != nil {
		s.logger.WarnContext(ctx, "waiver search failed", "position", need.Position, "error", err)
		return waiver.Recommendation{}, false
	}
	if len(available) == 0 {
		return waiver.Recommendation{}, false
	}
	if len(available) > optionsPerPosition {
		available = available[:optionsPerPosition]
	}

	seasons, history := s.enrich(ctx, available)
	options := make([]waiver.Option, 0, len(available))
	for i, a := range available {
		options = append(options, waiver.NewOption(a, need, seasons[i], history[i]))
	}

	return waiver.Recommendation{
		Position:     need.Position,
		Priority:     need.Priority,
		RosterNeed:   need.Reason,
		HealthyCount: need.Healthy,
		Options:      options,
	}, true
}

// Replacements rates each candidate as a swap for the starter, best
// improvement first.
func (s *WaiverService) Replacements(ctx context.Context, input ReplacementInput) ([]ReplacementOption, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WaiverService.Replacements")
	defer span.End()

	if len(input.Candidates) == 0 {
		return []ReplacementOption{}, nil
	}

	lookups := make([]player.RosterPlayer, len(input.Candidates))
	for i, c := range input.Candidates {
		lookups[i] = player.RosterPlayer{Name: c.Name}
	}
	history := make([]float64, len(lookups))
	if s.records != nil {
		records, err := s.records.LoadRecords(ctx, lookups)
		if err != nil {
			return nil, fmt.Errorf("load candidate records: %w", err)
		}
		for i, rec := range records {
			history[i] = rec.RecentAverage(s.cfg.HistorySeason, recentGames)
		}
	}

	out := make([]ReplacementOption, 0, len(input.Candidates))
	for i, c := range input.Candidates {
		out = append(out, ReplacementOption{
			PlayerName:    c.Name,
			Projected:     c.Projected,
			Improvement:   scoring.Round2(c.Projected - input.Starter.Projected),
			OwnershipPct:  c.OwnershipPct,
			HistoricalAvg: history[i],
			Strength:      waiver.ReplacementStrength(c.Projected, input.Starter.Projected, c.OwnershipPct, history[i]),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Improvement > out[j].Improvement })
	return out, nil
}

// InvalidateRostered drops the cached rostered-player set.
func (s *WaiverService) InvalidateRostered(ctx context.Context) error {
	if err := s.rostered.Invalidate(ctx); err != nil {
		return fmt.Errorf("invalidate rostered cache: %w", err)
	}
	s.logger.InfoContext(ctx, "rostered players cache invalidated")
	return nil
}

func (s *WaiverService) week(week int) (int, error) {
	if week == 0 {
		week = s.cfg.CurrentWeek
	}
	if week < 1 || week > 18 {
		return 0, fmt.Errorf("%w: week must be between 1 and 18", ErrInvalidInput)
	}
	return week, nil
}

// rosteredNames degrades to an empty set when the league store fails, so a
// waiver search may surface rostered players rather than nothing.
func (s *WaiverService) rosteredNames(ctx context.Context) (map[string]struct{}, error) {
	names, err := s.rostered.Get(ctx, RosteredNamesFromTeams(s.teams))
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.logger.WarnContext(ctx, "load rostered players failed", "error", err)
		return map[string]struct{}{}, nil
	}
	return names, nil
}

func (s *WaiverService) available(ctx context.Context, pos player.Position, week int, minPoints float64, rostered map[string]struct{}, limit int) ([]waiver.Available, error) {
	if s.pool == nil {
		return nil, fmt.Errorf("%w: waiver pool is not configured", ErrDependencyUnavailable)
	}
	entries, err := s.pool.ListByPosition(ctx, pos)
	if err != nil {
		return nil, fmt.Errorf("list waiver pool: %w", err)
	}
	return waiver.FilterAvailable(entries, pos, week, minPoints, rostered, limit), nil
}

// enrich returns the season projection and prior-season recent average for
// each available player. Lookup failures leave zeros.
func (s *WaiverService) enrich(ctx context.Context, available []waiver.Available) ([]float64, []float64) {
	seasons := make([]float64, len(available))
	history := make([]float64, len(available))
	if s.records == nil || len(available) == 0 {
		return seasons, history
	}

	lookups := make([]player.RosterPlayer, len(available))
	for i, a := range available {
		lookups[i] = player.RosterPlayer{Name: a.Name, Position: string(a.Position), Team: a.Team}
	}
	records, err := s.records.LoadRecords(ctx, lookups)
	if err != nil {
		s.logger.WarnContext(ctx, "waiver enrichment failed", "error", err)
		return seasons, history
	}
	for i, rec := range records {
		seasons[i] = rec.SeasonProjectionTotal(s.cfg.Season)
		history[i] = rec.RecentAverage(s.cfg.HistorySeason, recentGames)
	}
	return seasons, history
}
