package projection

import (
	"context"

	"github.com/riskibarqy/fantasy-coach/internal/domain/player"
)

// Row is one externally sourced weekly projection.
type Row struct {
	Name      string          `json:"name" validate:"required"`
	Team      string          `json:"team,omitempty"`
	Opponent  string          `json:"opp,omitempty"`
	Position  player.Position `json:"position,omitempty"`
	Projected float64         `json:"projected"`
}

// Weekly groups projection rows by position.
type Weekly map[player.Position][]Row

// Index keys every row by player.JoinKey of its name. The first row seen for
// a key wins.
func (w Weekly) Index() map[string]Row {
	out := make(map[string]Row)
	for _, pos := range player.AllPositions {
		for _, row := range w[pos] {
			key := player.JoinKey(row.Name)
			if key == "" {
				continue
			}
			if _, ok := out[key]; ok {
				continue
			}
			if row.Position == "" {
				row.Position = pos
			}
			out[key] = row
		}
	}
	return out
}

// Count returns the number of rows across positions.
func (w Weekly) Count() int {
	total := 0
	for _, rows := range w {
		total += len(rows)
	}
	return total
}

// Source fetches weekly projections and the current injury report.
type Source interface {
	Weekly(ctx context.Context, week int) (Weekly, error)
	InjuryReport(ctx context.Context) (map[string]player.InjuryStatus, error)
}
