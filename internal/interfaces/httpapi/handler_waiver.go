package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/fantasy-coach/internal/domain/player"
	"github.com/riskibarqy/fantasy-coach/internal/usecase"
)

type waiverAnalysisRequest struct {
	Roster []player.RosterPlayer `json:"roster" validate:"required,dive"`
	Week   int                   `json:"week" validate:"omitempty,min=1,max=18"`
}

type replacementsRequest struct {
	Starter    usecase.ReplacementStarter     `json:"starter" validate:"required"`
	Candidates []usecase.ReplacementCandidate `json:"candidates" validate:"dive"`
}

func (h *Handler) WaiverTargets(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.WaiverTargets")
	defer span.End()

	position := strings.TrimSpace(r.PathValue("position"))
	week, err := queryInt(r, "week", 0)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	maxOwnership, err := queryFloat(r, "max_ownership")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	minPoints, err := queryFloat(r, "min_points")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	input := usecase.WaiverTargetsInput{
		Position:  position,
		Week:      week,
		MinPoints: minPoints,
	}
	if maxOwnership != nil {
		input.MaxOwnership = *maxOwnership
	}

	result, err := h.waiverService.Targets(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "list waiver targets failed", "position", position, "week", week, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) WaiverAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.WaiverAnalysis")
	defer span.End()

	var req waiverAnalysisRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.waiverService.Analyze(ctx, usecase.WaiverAnalysisInput{
		Roster: req.Roster,
		Week:   req.Week,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "waiver analysis failed", "roster_size", len(req.Roster), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) WaiverReplacements(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.WaiverReplacements")
	defer span.End()

	var req replacementsRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	options, err := h.waiverService.Replacements(ctx, usecase.ReplacementInput{
		Starter:    req.Starter,
		Candidates: req.Candidates,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "rate replacements failed", "starter", req.Starter.Name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, replacementsDTO{
		Starter:          req.Starter.Name,
		StarterProjected: req.Starter.Projected,
		Options:          options,
	})
}

func (h *Handler) InvalidateRosteredCache(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.InvalidateRosteredCache")
	defer span.End()

	if err := h.waiverService.InvalidateRostered(ctx); err != nil {
		h.logger.ErrorContext(ctx, "invalidate rostered cache failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, statusDTO{Status: "invalidated"})
}
