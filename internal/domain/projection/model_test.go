package projection

import (
	"testing"

	"github.com/riskibarqy/fantasy-coach/internal/domain/player"
)

func TestWeeklyIndex(t *testing.T) {
	t.Parallel()

	weekly := Weekly{
		player.PositionRB: {
			{Name: "Kenneth Walker III", Team: "SEA", Opponent: "ARI", Projected: 14.2},
		},
		player.PositionWR: {
			{Name: "Amon-Ra St. Brown", Team: "DET", Projected: 17.9},
			{Name: "Amon-Ra St Brown", Team: "DET", Projected: 1},
		},
	}

	idx := weekly.Index()
	if len(idx) != 2 {
		t.Fatalf("expected 2 indexed rows, got %d: %+v", len(idx), idx)
	}

	row, ok := idx[player.JoinKey("Kenneth Walker")]
	if !ok || row.Opponent != "ARI" || row.Position != player.PositionRB {
		t.Fatalf("expected suffix-insensitive match with position filled, got %+v ok=%v", row, ok)
	}
	if got := idx[player.JoinKey("amon-ra st. brown")].Projected; got != 17.9 {
		t.Fatalf("expected first duplicate to win, got %v", got)
	}
	if weekly.Count() != 3 {
		t.Fatalf("expected 3 rows, got %d", weekly.Count())
	}
}
