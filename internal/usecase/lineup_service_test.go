package usecase

import (
	"errors"
	"testing"

	"github.com/riskibarqy/fantasy-coach/internal/domain/lineup"
	"github.com/riskibarqy/fantasy-coach/internal/domain/player"
	"github.com/riskibarqy/fantasy-coach/internal/domain/projection"
	"github.com/riskibarqy/fantasy-coach/internal/domain/roster"
	"github.com/riskibarqy/fantasy-coach/internal/domain/scoring"
	playermock "github.com/riskibarqy/fantasy-coach/internal/mocks/domain/player"
	projectionmock "github.com/riskibarqy/fantasy-coach/internal/mocks/domain/projection"
	rostermock "github.com/riskibarqy/fantasy-coach/internal/mocks/domain/roster"
	"github.com/stretchr/testify/mock"
)

func emptyPlayerRepo(t *testing.T) *playermock.Repository {
	repo := playermock.NewRepository(t)
	repo.On("GetByName", mock.Anything, mock.Anything).Return(player.Record{}, false, nil).Maybe()
	return repo
}

func testRoster() []player.RosterPlayer {
	return []player.RosterPlayer{
		{Name: "Josh Allen", Position: "QB", Team: "BUF"},
		{Name: "Saquon Barkley", Position: "RB", Team: "PHI"},
		{Name: "Jahmyr Gibbs", Position: "RB", Team: "DET"},
		{Name: "Ja'Marr Chase", Position: "WR", Team: "CIN"},
		{Name: "Puka Nacua", Position: "WR", Team: "LAR"},
		{Name: "Zay Flowers", Position: "WR", Team: "BAL"},
	}
}

func testProjections() projection.Weekly {
	return projection.Weekly{
		player.PositionQB: {{Name: "Josh Allen", Projected: 24}},
		player.PositionRB: {
			{Name: "Saquon Barkley", Projected: 18},
			{Name: "Jahmyr Gibbs", Projected: 17},
		},
		player.PositionWR: {
			{Name: "Ja'Marr Chase", Projected: 19},
			{Name: "Puka Nacua", Projected: 16},
			{Name: "Zay Flowers", Projected: 11},
		},
	}
}

func TestLineupService_OptimizeWithSuppliedProjections(t *testing.T) {
	t.Parallel()

	builder := NewCandidateBuilder(emptyPlayerRepo(t), testBuilderConfig(), nil)
	service := NewLineupService(builder, nil, nil, LineupServiceConfig{
		Slots:       []string{"QB", "RB", "RB", "WR", "WR", "FLEX", "TE"},
		CurrentWeek: 3,
		BenchLimit:  10,
	}, nil)

	got, err := service.Optimize(t.Context(), OptimizeLineupInput{
		Roster:      testRoster(),
		Projections: testProjections(),
	})
	if err != nil {
		t.Fatalf("optimize: %v", err)
	}

	if got.Week != 3 || got.Strategy != lineup.StrategyGreedy {
		t.Fatalf("unexpected week/strategy: %d %s", got.Week, got.Strategy)
	}
	if len(got.Lineup) != 7 {
		t.Fatalf("expected 7 slots, got %d", len(got.Lineup))
	}
	if flex := got.Lineup[5]; flex.Player == nil || flex.Player.Name != "Zay Flowers" {
		t.Fatalf("expected Zay Flowers at FLEX, got %+v", flex)
	}
	if te := got.Lineup[6]; te.Filled() || te.Error != "No available players for TE" {
		t.Fatalf("expected unfilled TE, got %+v", te)
	}
	if len(got.Bench) != 0 {
		t.Fatalf("expected empty bench, got %+v", got.Bench)
	}
	if got.Debug.TotalCandidates != 6 || got.Debug.LineupFilled != 6 {
		t.Fatalf("unexpected debug info: %+v", got.Debug)
	}
}

func TestLineupService_TruncatesBench(t *testing.T) {
	t.Parallel()

	builder := NewCandidateBuilder(emptyPlayerRepo(t), testBuilderConfig(), nil)
	service := NewLineupService(builder, nil, nil, LineupServiceConfig{
		Slots:      []string{"QB"},
		BenchLimit: 2,
	}, nil)

	got, err := service.Optimize(t.Context(), OptimizeLineupInput{
		Roster:      testRoster(),
		Projections: testProjections(),
		Strategy:    lineup.StrategyHungarian,
	})
	if err != nil {
		t.Fatalf("optimize: %v", err)
	}
	if got.Strategy != lineup.StrategyHungarian {
		t.Fatalf("expected hungarian strategy, got %s", got.Strategy)
	}
	if len(got.Bench) != 2 {
		t.Fatalf("expected bench truncated to 2, got %d", len(got.Bench))
	}
	if got.Debug.TotalCandidates != 6 {
		t.Fatalf("expected full candidate count in debug info, got %d", got.Debug.TotalCandidates)
	}
}

func TestLineupService_FetchesProjectionsAndInjuries(t *testing.T) {
	t.Parallel()

	source := projectionmock.NewSource(t)
	source.On("Weekly", mock.Anything, 5).Return(testProjections(), nil).Once()
	source.
		On("InjuryReport", mock.Anything).
		Return(map[string]player.InjuryStatus{player.JoinKey("Puka Nacua"): player.InjuryOut}, nil).
		Once()

	builder := NewCandidateBuilder(emptyPlayerRepo(t), testBuilderConfig(), nil)
	service := NewLineupService(builder, nil, source, LineupServiceConfig{
		Slots: []string{"WR", "WR"},
	}, nil)

	got, err := service.Optimize(t.Context(), OptimizeLineupInput{Roster: testRoster(), Week: 5})
	if err != nil {
		t.Fatalf("optimize: %v", err)
	}

	names := []string{got.Lineup[0].Player.Name, got.Lineup[1].Player.Name}
	if names[0] != "Ja'Marr Chase" || names[1] != "Zay Flowers" {
		t.Fatalf("expected injured Nacua benched, got %v", names)
	}
	for _, c := range got.Bench {
		if c.Name == "Puka Nacua" && c.InjuryStatus != player.InjuryOut {
			t.Fatalf("expected Nacua marked out, got %s", c.InjuryStatus)
		}
	}
}

func TestLineupService_ProjectionFailureDegrades(t *testing.T) {
	t.Parallel()

	source := projectionmock.NewSource(t)
	source.On("Weekly", mock.Anything, 1).Return(nil, errors.New("503")).Once()
	source.On("InjuryReport", mock.Anything).Return(nil, errors.New("503")).Once()

	builder := NewCandidateBuilder(emptyPlayerRepo(t), testBuilderConfig(), nil)
	service := NewLineupService(builder, nil, source, LineupServiceConfig{}, nil)

	got, err := service.Optimize(t.Context(), OptimizeLineupInput{Roster: testRoster()})
	if err != nil {
		t.Fatalf("optimize: %v", err)
	}
	if got.Debug.TotalCandidates != len(testRoster()) || got.Debug.AvgConfidence != 0 {
		t.Fatalf("expected zeroed candidates, got %+v", got.Debug)
	}
}

func TestLineupService_ValidatesInput(t *testing.T) {
	t.Parallel()

	builder := NewCandidateBuilder(emptyPlayerRepo(t), testBuilderConfig(), nil)
	service := NewLineupService(builder, nil, nil, LineupServiceConfig{}, nil)

	if _, err := service.Optimize(t.Context(), OptimizeLineupInput{Week: 19}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for week 19, got %v", err)
	}
	if _, err := service.Optimize(t.Context(), OptimizeLineupInput{Strategy: "random"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown strategy, got %v", err)
	}
	if _, err := service.OptimizeTeam(t.Context(), " ", 1); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank team, got %v", err)
	}
}

func TestLineupService_OptimizeTeam(t *testing.T) {
	t.Parallel()

	teams := rostermock.NewRepository(t)
	teams.On("GetTeam", mock.Anything, "missing").Return(roster.Team{}, false, nil).Once()
	teams.
		On("GetTeam", mock.Anything, "team-7").
		Return(roster.Team{ID: "team-7", Players: testRoster()}, true, nil).
		Once()

	builder := NewCandidateBuilder(emptyPlayerRepo(t), testBuilderConfig(), nil)
	service := NewLineupService(builder, teams, nil, LineupServiceConfig{Slots: []string{"QB"}}, nil)

	if _, err := service.OptimizeTeam(t.Context(), "missing", 2); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	got, err := service.OptimizeTeam(t.Context(), "team-7", 2)
	if err != nil {
		t.Fatalf("optimize team: %v", err)
	}
	if got.Week != 2 || len(got.Lineup) != 1 || got.Lineup[0].Player.Name != "Josh Allen" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestLineupService_AdjustedScoreUsesConfiguredBlend(t *testing.T) {
	t.Parallel()

	service := NewLineupService(nil, nil, nil, LineupServiceConfig{Blend: scoring.StrategyWeekly}, nil)
	vs := 20.0
	sig := scoring.Signals{Weekly: 10, SeasonPerGame: 10, Recent: 10, VsOpponent: &vs, Injury: player.InjuryHealthy}

	got := service.AdjustedScore(sig)
	want := scoring.BlendWith(scoring.StrategyWeekly, sig)
	if got != want {
		t.Fatalf("expected weekly blend %+v, got %+v", want, got)
	}
}
