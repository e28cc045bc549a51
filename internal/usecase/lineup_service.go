package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/fantasy-coach/internal/domain/lineup"
	"github.com/riskibarqy/fantasy-coach/internal/domain/player"
	"github.com/riskibarqy/fantasy-coach/internal/domain/projection"
	"github.com/riskibarqy/fantasy-coach/internal/domain/roster"
	"github.com/riskibarqy/fantasy-coach/internal/domain/scoring"
	"github.com/riskibarqy/fantasy-coach/internal/platform/logging"
	"golang.org/x/sync/errgroup"
)

type LineupServiceConfig struct {
	Slots       []string
	Strategy    lineup.Strategy
	BenchLimit  int
	CurrentWeek int
	Blend       scoring.Strategy
}

type OptimizeLineupInput struct {
	Roster      []player.RosterPlayer
	Projections projection.Weekly
	Slots       []string
	Week        int
	Strategy    lineup.Strategy
}

// LineupResult is an optimization outcome with the bench already truncated.
type LineupResult struct {
	Week     int                 `json:"week"`
	Strategy lineup.Strategy     `json:"strategy"`
	Lineup   []lineup.Assignment `json:"lineup"`
	Bench    []lineup.Candidate  `json:"bench"`
	Debug    lineup.DebugInfo    `json:"debug_info"`
}

type LineupService struct {
	builder     *CandidateBuilder
	teams       roster.Repository
	projections projection.Source
	cfg         LineupServiceConfig
	logger      *logging.Logger
}

func NewLineupService(
	builder *CandidateBuilder,
	teams roster.Repository,
	projections projection.Source,
	cfg LineupServiceConfig,
	logger *logging.Logger,
) *LineupService {
	if len(cfg.Slots) == 0 {
		cfg.Slots = lineup.DefaultSlots
	}
	if cfg.Strategy == "" {
		cfg.Strategy = lineup.StrategyGreedy
	}
	if cfg.CurrentWeek < 1 {
		cfg.CurrentWeek = 1
	}
	if cfg.Blend == "" {
		cfg.Blend = scoring.StrategyAuto
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &LineupService{
		builder:     builder,
		teams:       teams,
		projections: projections,
		cfg:         cfg,
		logger:      logger,
	}
}

// Optimize builds candidates for the roster and assigns them to slots.
// Projections are fetched for the week when the input carries none.
func (s *LineupService) Optimize(ctx context.Context, input OptimizeLineupInput) (LineupResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.Optimize")
	defer span.End()

	week := input.Week
	if week == 0 {
		week = s.cfg.CurrentWeek
	}
	if week < 1 || week > 18 {
		return LineupResult{}, fmt.Errorf("%w: week must be between 1 and 18", ErrInvalidInput)
	}

	strategy := input.Strategy
	if strategy == "" {
		strategy = s.cfg.Strategy
	}
	optimizer, err := lineup.NewOptimizer(strategy)
	if err != nil {
		return LineupResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	slots := input.Slots
	if len(slots) == 0 {
		slots = s.cfg.Slots
	}

	players := append([]player.RosterPlayer(nil), input.Roster...)
	projections := input.Projections
	if projections == nil {
		projections, players = s.fetchWeekData(ctx, week, players)
	}

	candidates, err := s.builder.Build(ctx, BuildCandidatesInput{
		Roster:      players,
		Projections: projections,
	})
	if err != nil {
		return LineupResult{}, fmt.Errorf("build candidates: %w", err)
	}

	res := optimizer.Optimize(slots, candidates)
	s.logger.DebugContext(ctx, "lineup optimized",
		"week", week,
		"strategy", strategy,
		"candidates", res.Debug.TotalCandidates,
		"filled", res.Debug.LineupFilled,
	)

	return LineupResult{
		Week:     week,
		Strategy: lineup.Strategy(strings.ToLower(strings.TrimSpace(string(strategy)))),
		Lineup:   res.Lineup,
		Bench:    res.TruncatedBench(s.cfg.BenchLimit),
		Debug:    res.Debug,
	}, nil
}

// OptimizeTeam optimizes the stored roster of a league team.
func (s *LineupService) OptimizeTeam(ctx context.Context, teamID string, week int) (LineupResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.OptimizeTeam")
	defer span.End()

	team, err := loadTeam(ctx, s.teams, teamID)
	if err != nil {
		return LineupResult{}, err
	}
	return s.Optimize(ctx, OptimizeLineupInput{Roster: team.Players, Week: week})
}

// AdjustedScore blends one set of signals with the configured strategy.
func (s *LineupService) AdjustedScore(sig scoring.Signals) scoring.Score {
	return scoring.BlendWith(s.cfg.Blend, sig)
}

// fetchWeekData loads projections and the injury report concurrently. Either
// failing degrades to empty data. Injury designations fill roster entries
// that carry none.
func (s *LineupService) fetchWeekData(ctx context.Context, week int, players []player.RosterPlayer) (projection.Weekly, []player.RosterPlayer) {
	if s.projections == nil {
		return projection.Weekly{}, players
	}

	var (
		weekly   projection.Weekly
		injuries map[string]player.InjuryStatus
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		out, err := s.projections.Weekly(gctx, week)
		if err != nil {
			s.logger.WarnContext(ctx, "fetch weekly projections failed, using empty projections", "week", week, "error", err)
			return nil
		}
		weekly = out
		return nil
	})
	g.Go(func() error {
		out, err := s.projections.InjuryReport(gctx)
		if err != nil {
			s.logger.WarnContext(ctx, "fetch injury report failed", "error", err)
			return nil
		}
		injuries = out
		return nil
	})
	_ = g.Wait()

	if weekly == nil {
		weekly = projection.Weekly{}
	}
	return weekly, applyInjuryReport(players, injuries)
}

func applyInjuryReport(players []player.RosterPlayer, injuries map[string]player.InjuryStatus) []player.RosterPlayer {
	if len(injuries) == 0 {
		return players
	}
	for i, p := range players {
		if strings.TrimSpace(p.InjuryStatus) != "" {
			continue
		}
		if status, ok := injuries[player.JoinKey(p.Name)]; ok {
			players[i].InjuryStatus = string(status)
		}
	}
	return players
}

func loadTeam(ctx context.Context, teams roster.Repository, teamID string) (roster.Team, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return roster.Team{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	if teams == nil {
		return roster.Team{}, fmt.Errorf("%w: roster store is not configured", ErrDependencyUnavailable)
	}

	team, exists, err := teams.GetTeam(ctx, teamID)
	if err != nil {
		return roster.Team{}, fmt.Errorf("get team roster: %w", err)
	}
	if !exists {
		return roster.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}
	return team, nil
}
