package postgres

import (
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-coach/internal/domain/player"
)

func TestSeasonsRoundTrip(t *testing.T) {
	seasons := map[int]player.Season{
		2024: {WeeklyStats: map[int]player.WeeklyStat{17: {FantasyPoints: 0, Opponent: "ARI"}}},
		2025: {Projections: map[string]float64{player.SeasonPointsKey: 170}},
	}

	raw, err := encodeSeasons(seasons)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := decodeSeasons(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	stat, ok := got[2024].WeeklyStats[17]
	if !ok || stat.FantasyPoints != 0 || stat.Opponent != "ARI" {
		t.Fatalf("expected recorded zero-point week, got %+v (ok=%v)", stat, ok)
	}
	if got[2025].Projections[player.SeasonPointsKey] != 170 {
		t.Fatalf("unexpected projections: %+v", got[2025])
	}
}

func TestDecodeSeasons(t *testing.T) {
	t.Run("empty column", func(t *testing.T) {
		for _, raw := range [][]byte{nil, []byte("null")} {
			got, err := decodeSeasons(raw)
			if err != nil || len(got) != 0 {
				t.Fatalf("expected empty seasons, got %v (%v)", got, err)
			}
		}
	})

	t.Run("rejects non numeric year", func(t *testing.T) {
		if _, err := decodeSeasons([]byte(`{"next":{}}`)); err == nil {
			t.Fatalf("expected error for invalid year")
		}
	})
}

func TestPlayerRecordModel(t *testing.T) {
	rec := player.Record{
		ID:       "Amon-Ra St. Brown#WR",
		Name:     "Amon-Ra St. Brown",
		Position: player.PositionWR,
		Team:     "DET",
	}

	model, err := toPlayerRecordModel(rec, time.Unix(0, 0))
	if err != nil {
		t.Fatalf("to model: %v", err)
	}
	if model.NameNormalized != "amon ra st brown" || model.InjuryStatus != "Healthy" {
		t.Fatalf("unexpected model: %+v", model)
	}

	back, err := model.toDomain()
	if err != nil {
		t.Fatalf("to domain: %v", err)
	}
	if back.ID != rec.ID || back.Position != player.PositionWR || back.InjuryStatus != player.InjuryHealthy {
		t.Fatalf("unexpected record: %+v", back)
	}
}
