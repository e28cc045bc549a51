package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/riskibarqy/fantasy-coach/internal/domain/player"
	"github.com/riskibarqy/fantasy-coach/internal/domain/waiver"
)

type WaiverRepository struct {
	mu    sync.RWMutex
	byPos map[player.Position][]waiver.Player
}

func NewWaiverRepository(players []waiver.Player) *WaiverRepository {
	byPos := make(map[player.Position][]waiver.Player)
	for _, p := range players {
		pos, ok := player.ParsePosition(string(p.Position))
		if !ok {
			continue
		}
		p.Position = pos
		if p.InjuryStatus == "" {
			p.InjuryStatus = player.InjuryHealthy
		}
		byPos[pos] = append(byPos[pos], p)
	}
	return &WaiverRepository{byPos: byPos}
}

func (r *WaiverRepository) ListByPosition(_ context.Context, pos player.Position) ([]waiver.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.byPos[pos]
	out := make([]waiver.Player, 0, len(items))
	for _, p := range items {
		p.WeeklyProjections = maps.Clone(p.WeeklyProjections)
		out = append(out, p)
	}
	return out, nil
}
