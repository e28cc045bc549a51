package memory

import (
	"testing"

	"github.com/riskibarqy/fantasy-coach/internal/domain/player"
	"github.com/riskibarqy/fantasy-coach/internal/domain/roster"
)

func TestPlayerRepository_GetByName(t *testing.T) {
	t.Parallel()

	repo := NewPlayerRepository(SeedRecords())

	tests := []struct {
		name   string
		query  string
		wantID string
		found  bool
	}{
		{name: "exact", query: "Josh Allen", wantID: "Josh Allen#QB", found: true},
		{name: "punctuation and case", query: "jamarr chase", wantID: "Ja'Marr Chase#WR", found: true},
		{name: "partial", query: "Amon-Ra St Brown Jr.", wantID: "Amon-Ra St. Brown#WR", found: true},
		{name: "unknown", query: "Nobody Special"},
		{name: "blank", query: "  "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := repo.GetByName(t.Context(), tt.query)
			if err != nil {
				t.Fatalf("get by name: %v", err)
			}
			if ok != tt.found {
				t.Fatalf("expected found=%v, got %v", tt.found, ok)
			}
			if ok && got.ID != tt.wantID {
				t.Fatalf("expected %s, got %s", tt.wantID, got.ID)
			}
		})
	}
}

func TestPlayerRepository_GetManyByIDClonesRecords(t *testing.T) {
	t.Parallel()

	repo := NewPlayerRepository(SeedRecords())
	got, err := repo.GetManyByID(t.Context(), []string{"Josh Allen#QB", "missing", "Josh Allen#QB", ""})
	if err != nil {
		t.Fatalf("get many: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected one record, got %d", len(got))
	}

	rec := got["Josh Allen#QB"]
	rec.Seasons[SeedSeason].Projections[player.SeasonPointsKey] = 0

	again, _ := repo.GetManyByID(t.Context(), []string{"Josh Allen#QB"})
	if again["Josh Allen#QB"].SeasonProjectionTotal(SeedSeason) == 0 {
		t.Fatalf("expected stored record to be unaffected by caller mutation")
	}
}

func TestPlayerRepository_Upsert(t *testing.T) {
	t.Parallel()

	repo := NewPlayerRepository(nil)
	err := repo.Upsert(t.Context(), []player.Record{{ID: "x", Name: "Bad", Position: "LB"}})
	if err == nil {
		t.Fatalf("expected validation error")
	}

	rec := player.Record{ID: "Bo Nix#QB", Name: "Bo Nix", Position: player.PositionQB, Team: "DEN"}
	if err := repo.Upsert(t.Context(), []player.Record{rec}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	rec.Team = "DEN2"
	if err := repo.Upsert(t.Context(), []player.Record{rec}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, ok, _ := repo.GetByName(t.Context(), "Bo Nix")
	if !ok || got.Team != "DEN2" {
		t.Fatalf("expected replaced record, got %+v", got)
	}
}

func TestTeamRepository(t *testing.T) {
	t.Parallel()

	repo := NewTeamRepository(SeedTeams())

	teams, err := repo.ListTeams(t.Context())
	if err != nil || len(teams) != 2 {
		t.Fatalf("expected two seeded teams, got %d (%v)", len(teams), err)
	}
	teams[0].Players[0].Name = "mutated"

	got, ok, err := repo.GetTeam(t.Context(), " team-1 ")
	if err != nil || !ok {
		t.Fatalf("expected team-1, got ok=%v err=%v", ok, err)
	}
	if got.Players[0].Name != "Josh Allen" {
		t.Fatalf("expected stored roster unaffected, got %s", got.Players[0].Name)
	}

	if err := repo.UpsertTeams(t.Context(), []roster.Team{{ID: "team-3", Name: "Expansion"}, {ID: " "}}); err != nil {
		t.Fatalf("upsert teams: %v", err)
	}
	if _, ok, _ := repo.GetTeam(t.Context(), "team-3"); !ok {
		t.Fatalf("expected team-3 after upsert")
	}
	if _, ok, _ := repo.GetTeam(t.Context(), "missing"); ok {
		t.Fatalf("expected missing team")
	}
}

func TestWaiverRepository_ListByPosition(t *testing.T) {
	t.Parallel()

	repo := NewWaiverRepository(SeedWaiverPool())
	qbs, err := repo.ListByPosition(t.Context(), player.PositionQB)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(qbs) != 2 {
		t.Fatalf("expected two QBs, got %d", len(qbs))
	}
	for _, p := range qbs {
		if p.InjuryStatus != player.InjuryHealthy {
			t.Fatalf("expected healthy default, got %s", p.InjuryStatus)
		}
	}
}
