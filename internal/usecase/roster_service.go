package usecase

import (
	"context"

	"github.com/riskibarqy/fantasy-coach/internal/domain/player"
	"github.com/riskibarqy/fantasy-coach/internal/domain/roster"
)

// RosterService answers roster construction questions against the league
// requirements.
type RosterService struct {
	teams roster.Repository
	req   roster.Requirements
}

func NewRosterService(teams roster.Repository, req roster.Requirements) *RosterService {
	if len(req.Starters) == 0 {
		req = roster.DefaultRequirements()
	}
	return &RosterService{teams: teams, req: req}
}

func (s *RosterService) Requirements() roster.Requirements {
	return s.req
}

func (s *RosterService) Needs(players []player.RosterPlayer) roster.Needs {
	return roster.ComputeNeeds(players, s.req)
}

func (s *RosterService) Analyze(players []player.RosterPlayer) roster.Construction {
	return roster.Analyze(players, s.req)
}

func (s *RosterService) Injuries(players []player.RosterPlayer) roster.InjuryImpact {
	return roster.InjuryReport(players)
}

// TeamRoster returns the stored roster of a league team.
func (s *RosterService) TeamRoster(ctx context.Context, teamID string) (roster.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.TeamRoster")
	defer span.End()

	return loadTeam(ctx, s.teams, teamID)
}
