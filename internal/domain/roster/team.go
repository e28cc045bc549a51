package roster

import (
	"context"

	"github.com/riskibarqy/fantasy-coach/internal/domain/player"
)

// Team is one fantasy franchise and its current roster.
type Team struct {
	ID      string                `json:"team_id"`
	Name    string                `json:"team_name,omitempty"`
	Owner   string                `json:"owner,omitempty"`
	Players []player.RosterPlayer `json:"players"`
}

// Repository describes league roster reads.
type Repository interface {
	GetTeam(ctx context.Context, teamID string) (Team, bool, error)
	ListTeams(ctx context.Context) ([]Team, error)
}
