package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/riskibarqy/fantasy-coach/internal/domain/player"
	"github.com/riskibarqy/fantasy-coach/internal/domain/roster"
)

type TeamRepository struct {
	mu    sync.RWMutex
	teams []roster.Team
}

func NewTeamRepository(teams []roster.Team) *TeamRepository {
	r := &TeamRepository{}
	for _, item := range teams {
		r.teams = append(r.teams, cloneTeam(item))
	}
	return r
}

func (r *TeamRepository) ListTeams(_ context.Context) ([]roster.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]roster.Team, 0, len(r.teams))
	for _, item := range r.teams {
		out = append(out, cloneTeam(item))
	}
	return out, nil
}

func (r *TeamRepository) GetTeam(_ context.Context, teamID string) (roster.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	teamID = strings.TrimSpace(teamID)
	for _, item := range r.teams {
		if item.ID == teamID {
			return cloneTeam(item), true, nil
		}
	}
	return roster.Team{}, false, nil
}

// UpsertTeams replaces teams by ID. Entries without an ID are skipped.
func (r *TeamRepository) UpsertTeams(_ context.Context, items []roster.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		teamID := strings.TrimSpace(item.ID)
		if teamID == "" {
			continue
		}
		item.ID = teamID

		updated := false
		for idx := range r.teams {
			if r.teams[idx].ID == teamID {
				r.teams[idx] = cloneTeam(item)
				updated = true
				break
			}
		}
		if !updated {
			r.teams = append(r.teams, cloneTeam(item))
		}
	}
	return nil
}

func cloneTeam(t roster.Team) roster.Team {
	t.Players = append([]player.RosterPlayer(nil), t.Players...)
	return t
}
