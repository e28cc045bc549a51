package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/fantasy-coach/internal/domain/lineup"
	"github.com/riskibarqy/fantasy-coach/internal/domain/player"
	"github.com/riskibarqy/fantasy-coach/internal/domain/projection"
	"github.com/riskibarqy/fantasy-coach/internal/domain/scoring"
	"github.com/riskibarqy/fantasy-coach/internal/usecase"
)

type optimizeLineupRequest struct {
	Roster      []player.RosterPlayer `json:"roster" validate:"required,dive"`
	Projections projection.Weekly     `json:"projections"`
	Slots       []string              `json:"slots" validate:"omitempty,dive,required"`
	Week        int                   `json:"week" validate:"omitempty,min=1,max=18"`
	Strategy    string                `json:"strategy" validate:"omitempty,oneof=greedy hungarian"`
}

type adjustedScoreRequest struct {
	Weekly        float64  `json:"weekly" validate:"gte=0"`
	SeasonPerGame float64  `json:"season_per_game" validate:"gte=0"`
	Recent        float64  `json:"recent" validate:"gte=0"`
	VsOpponent    *float64 `json:"vs_opponent"`
	InjuryStatus  string   `json:"injury_status"`
}

func (r adjustedScoreRequest) signals() scoring.Signals {
	status := player.InjuryHealthy
	if strings.TrimSpace(r.InjuryStatus) != "" {
		status = player.ParseInjuryStatus(r.InjuryStatus)
	}
	return scoring.Signals{
		Weekly:        r.Weekly,
		SeasonPerGame: r.SeasonPerGame,
		Recent:        r.Recent,
		VsOpponent:    r.VsOpponent,
		Injury:        status,
	}
}

func (h *Handler) OptimizeLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.OptimizeLineup")
	defer span.End()

	var req optimizeLineupRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.lineupService.Optimize(ctx, usecase.OptimizeLineupInput{
		Roster:      req.Roster,
		Projections: req.Projections,
		Slots:       req.Slots,
		Week:        req.Week,
		Strategy:    lineup.Strategy(req.Strategy),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "optimize lineup failed", "roster_size", len(req.Roster), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) AdjustedScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdjustedScore")
	defer span.End()

	var req adjustedScoreRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, h.lineupService.AdjustedScore(req.signals()))
}

func (h *Handler) GetTeamLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamLineup")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	week, err := queryInt(r, "week", 0)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.lineupService.OptimizeTeam(ctx, teamID, week)
	if err != nil {
		h.logger.WarnContext(ctx, "optimize team lineup failed", "team_id", teamID, "week", week, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}
