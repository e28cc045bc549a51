package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/fantasy-coach/internal/domain/player"
	"github.com/riskibarqy/fantasy-coach/internal/domain/projection"
	"github.com/riskibarqy/fantasy-coach/internal/domain/scoring"
	playermock "github.com/riskibarqy/fantasy-coach/internal/mocks/domain/player"
	"github.com/stretchr/testify/mock"
)

const (
	testSeason        = 2025
	testHistorySeason = 2024
)

func testBuilderConfig() CandidateBuilderConfig {
	return CandidateBuilderConfig{
		Workers:       4,
		LookupTimeout: time.Second,
		Season:        testSeason,
		HistorySeason: testHistorySeason,
	}
}

// bijan has a 170 point season projection (10 per game) and a 2024 recent-4
// average of 8, with two games against ARI averaging 6.
func bijan() player.Record {
	return player.Record{
		ID:       "Bijan Robinson#RB",
		Name:     "Bijan Robinson",
		Position: player.PositionRB,
		Team:     "ATL",
		Seasons: map[int]player.Season{
			testSeason: {
				Projections: map[string]float64{player.SeasonPointsKey: 170},
			},
			testHistorySeason: {
				WeeklyStats: map[int]player.WeeklyStat{
					14: {FantasyPoints: 12, Opponent: "NO"},
					15: {FantasyPoints: 6, Opponent: "ARI"},
					16: {FantasyPoints: 8, Opponent: "CAR"},
					17: {FantasyPoints: 6, Opponent: "ARI"},
				},
			},
		},
	}
}

func TestCandidateBuilder_SeasonAndHistoryWithoutProjection(t *testing.T) {
	t.Parallel()

	repo := playermock.NewRepository(t)
	repo.On("GetByName", mock.Anything, "Bijan Robinson").Return(bijan(), true, nil).Once()

	builder := NewCandidateBuilder(repo, testBuilderConfig(), nil)
	got, err := builder.Build(t.Context(), BuildCandidatesInput{
		Roster: []player.RosterPlayer{{Name: "Bijan Robinson", Position: "RB"}},
	})
	if err != nil {
		t.Fatalf("build candidates: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected one candidate, got %d", len(got))
	}

	c := got[0]
	if c.Adjusted != 3.6 || c.Confidence != 0.5 {
		t.Fatalf("expected 3.6/0.5, got %v/%v", c.Adjusted, c.Confidence)
	}
	if c.SeasonTotal != 170 || c.SeasonPerGame != 10 || c.RecentAvg != 8 {
		t.Fatalf("unexpected signals: %+v", c)
	}
	if c.Team != "ATL" || c.InjuryStatus != player.InjuryHealthy || c.VsOpponentAvg != nil {
		t.Fatalf("unexpected candidate: %+v", c)
	}
}

func TestCandidateBuilder_OpponentHistoryUsesMatchupBlend(t *testing.T) {
	t.Parallel()

	repo := playermock.NewRepository(t)
	repo.On("GetByName", mock.Anything, "Bijan Robinson").Return(bijan(), true, nil).Once()

	builder := NewCandidateBuilder(repo, testBuilderConfig(), nil)
	got, err := builder.Build(t.Context(), BuildCandidatesInput{
		Roster: []player.RosterPlayer{{Name: "Bijan Robinson", Position: "rb", Team: "ATL"}},
		Projections: projection.Weekly{
			player.PositionRB: {{Name: "Bijan Robinson", Team: "ATL", Opponent: "ARI", Projected: 15}},
		},
	})
	if err != nil {
		t.Fatalf("build candidates: %v", err)
	}

	c := got[0]
	if c.VsOpponentAvg == nil || *c.VsOpponentAvg != 6 {
		t.Fatalf("expected opponent average 6, got %v", c.VsOpponentAvg)
	}
	// 0.70*15 + 0.20*6 + 0.10*8
	if c.Adjusted != 12.5 || c.Confidence != 1 {
		t.Fatalf("expected 12.5/1, got %v/%v", c.Adjusted, c.Confidence)
	}
	if c.Opponent != "ARI" || c.Projected != 15 {
		t.Fatalf("unexpected candidate: %+v", c)
	}
}

func TestCandidateBuilder_NeverDropsRosteredPlayers(t *testing.T) {
	t.Parallel()

	repo := playermock.NewRepository(t)
	repo.On("GetByName", mock.Anything, "Unknown Rookie").Return(player.Record{}, false, nil).Once()
	repo.On("GetByName", mock.Anything, "Flaky Lookup").Return(player.Record{}, false, errors.New("timeout")).Once()

	builder := NewCandidateBuilder(repo, testBuilderConfig(), nil)
	got, err := builder.Build(t.Context(), BuildCandidatesInput{
		Roster: []player.RosterPlayer{
			{Name: "Unknown Rookie", Position: "WR"},
			{Name: "Coach Prime", Position: "HC"},
			{Name: "Flaky Lookup", Position: "TE", InjuryStatus: "Q"},
		},
	})
	if err != nil {
		t.Fatalf("build candidates: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected unknown position skipped and two candidates, got %d", len(got))
	}
	for _, c := range got {
		if c.Adjusted != 0 || c.Confidence != 0 {
			t.Fatalf("expected zeroed candidate, got %+v", c)
		}
	}
	if got[0].Name != "Unknown Rookie" || got[1].Name != "Flaky Lookup" {
		t.Fatalf("expected roster order preserved, got %s, %s", got[0].Name, got[1].Name)
	}
	if got[1].InjuryStatus != player.InjuryQuestionable {
		t.Fatalf("expected roster override status, got %s", got[1].InjuryStatus)
	}
}

func TestCandidateBuilder_BatchesPlayerIDs(t *testing.T) {
	t.Parallel()

	rec := bijan()
	rec.InjuryStatus = player.InjuryDoubtful

	repo := playermock.NewRepository(t)
	repo.
		On("GetManyByID", mock.Anything, []string{"Bijan Robinson#RB", "stale-id"}).
		Return(map[string]player.Record{rec.ID: rec}, nil).
		Once()
	repo.On("GetByName", mock.Anything, "Drake London").Return(player.Record{}, false, nil).Once()

	builder := NewCandidateBuilder(repo, testBuilderConfig(), nil)
	records, err := builder.LoadRecords(t.Context(), []player.RosterPlayer{
		{Name: "Bijan Robinson", Position: "RB", PlayerID: rec.ID},
		{Name: "Drake London", Position: "WR", PlayerID: "stale-id"},
	})
	if err != nil {
		t.Fatalf("load records: %v", err)
	}
	if records[0].ID != rec.ID || records[1].ID != "" {
		t.Fatalf("unexpected records: %+v", records)
	}
	if records[0].Status() != player.InjuryDoubtful {
		t.Fatalf("expected record injury status, got %s", records[0].Status())
	}
}

func TestCandidateBuilder_BatchFailureDegrades(t *testing.T) {
	t.Parallel()

	repo := playermock.NewRepository(t)
	repo.On("GetManyByID", mock.Anything, []string{"a"}).Return(nil, errors.New("throttled")).Once()
	repo.On("GetByName", mock.Anything, "A Player").Return(player.Record{}, false, nil).Once()

	builder := NewCandidateBuilder(repo, testBuilderConfig(), nil)
	records, err := builder.LoadRecords(t.Context(), []player.RosterPlayer{{Name: "A Player", PlayerID: "a"}})
	if err != nil {
		t.Fatalf("expected degraded lookup, got %v", err)
	}
	if len(records) != 1 || records[0].ID != "" {
		t.Fatalf("expected zero record, got %+v", records)
	}
}

func TestCandidateBuilder_LookupTimeoutDegrades(t *testing.T) {
	t.Parallel()

	cfg := testBuilderConfig()
	cfg.LookupTimeout = 20 * time.Millisecond

	repo := playermock.NewRepository(t)
	repo.
		On("GetByName", mock.Anything, "Slow Player").
		Return(func(ctx context.Context, _ string) (player.Record, bool, error) {
			<-ctx.Done()
			return player.Record{}, false, ctx.Err()
		}).
		Once()

	builder := NewCandidateBuilder(repo, cfg, nil)
	got, err := builder.Build(t.Context(), BuildCandidatesInput{
		Roster: []player.RosterPlayer{{Name: "Slow Player", Position: "K"}},
		Projections: projection.Weekly{
			player.PositionK: {{Name: "Slow Player", Projected: 8}},
		},
	})
	if err != nil {
		t.Fatalf("build candidates: %v", err)
	}
	want := scoring.Blend(scoring.Signals{Weekly: 8, Injury: player.InjuryHealthy})
	if got[0].Adjusted != want.Adjusted || got[0].Confidence != want.Confidence {
		t.Fatalf("expected projection-only score %+v, got %+v", want, got[0])
	}
}

type limitedPool struct {
	allow    int
	released bool
}

func (p *limitedPool) Submit(task func()) error {
	if p.allow == 0 {
		return ants.ErrPoolOverload
	}
	p.allow--
	task()
	return nil
}

func (p *limitedPool) Release() { p.released = true }

func TestCandidateBuilder_SubmitFailureDegrades(t *testing.T) {
	t.Parallel()

	repo := playermock.NewRepository(t)
	repo.On("GetByName", mock.Anything, "Bijan Robinson").Return(bijan(), true, nil).Once()

	pool := &limitedPool{allow: 1}
	builder := NewCandidateBuilder(repo, testBuilderConfig(), nil)
	builder.newPool = func(int) (taskPool, error) { return pool, nil }

	got, err := builder.Build(t.Context(), BuildCandidatesInput{
		Roster: []player.RosterPlayer{
			{Name: "Bijan Robinson", Position: "RB"},
			{Name: "Unscheduled One", Position: "WR"},
			{Name: "Unscheduled Two", Position: "TE"},
		},
	})
	if err != nil {
		t.Fatalf("build candidates: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected every rostered player, got %d", len(got))
	}
	if got[0].SeasonTotal == 0 {
		t.Fatalf("expected scheduled lookup to load a record, got %+v", got[0])
	}
	for _, c := range got[1:] {
		if c.SeasonTotal != 0 || c.RecentAvg != 0 {
			t.Fatalf("expected zero record for %s, got %+v", c.Name, c)
		}
	}
	if !pool.released {
		t.Fatalf("expected pool release")
	}
}

func TestCandidateBuilder_PoolCreationFailureDegrades(t *testing.T) {
	t.Parallel()

	repo := playermock.NewRepository(t)
	builder := NewCandidateBuilder(repo, testBuilderConfig(), nil)
	builder.newPool = func(int) (taskPool, error) { return nil, errors.New("too many goroutines") }

	records, err := builder.LoadRecords(t.Context(), []player.RosterPlayer{{Name: "A Player"}, {Name: "B Player"}})
	if err != nil {
		t.Fatalf("load records: %v", err)
	}
	if len(records) != 2 || records[0].ID != "" || records[1].ID != "" {
		t.Fatalf("expected two zero records, got %+v", records)
	}
}
