package waiver

import (
	"context"
	"sort"
	"strings"

	"github.com/riskibarqy/fantasy-coach/internal/domain/player"
)

// Player is an entry of the league waiver pool.
type Player struct {
	ID                string              `json:"player_id"`
	Name              string              `json:"player_name"`
	Position          player.Position     `json:"position"`
	Team              string              `json:"team,omitempty"`
	InjuryStatus      player.InjuryStatus `json:"injury_status"`
	PercentOwned      float64             `json:"ownership_pct"`
	WeeklyProjections map[int]float64     `json:"weekly_projections,omitempty"`
}

// ProjectionFor returns the projection for week or the closest available week.
func (p Player) ProjectionFor(week int) float64 {
	return player.ProjectionForWeek(p.WeeklyProjections, week)
}

// Pool lists waiver pool entries by position.
type Pool interface {
	ListByPosition(ctx context.Context, pos player.Position) ([]Player, error)
}

// Available is a waiver player that passed the availability filter.
type Available struct {
	Player
	Projected float64 `json:"projected_points"`
}

// FilterAvailable keeps healthy, unrostered players of pos projected for at
// least minPoints in week, sorted by projection descending and cut to limit
// (limit <= 0 keeps all). rostered holds lowercased names.
func FilterAvailable(players []Player, pos player.Position, week int, minPoints float64, rostered map[string]struct{}, limit int) []Available {
	out := make([]Available, 0, len(players))
	for _, p := range players {
		if p.Position != pos {
			continue
		}
		if _, taken := rostered[strings.ToLower(strings.TrimSpace(p.Name))]; taken {
			continue
		}
		projected := p.ProjectionFor(week)
		if projected < minPoints {
			continue
		}
		if p.InjuryStatus != player.InjuryHealthy {
			continue
		}
		out = append(out, Available{Player: p, Projected: projected})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Projected > out[j].Projected })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
