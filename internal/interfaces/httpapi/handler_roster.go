package httpapi

import (
	"net/http"

	"github.com/riskibarqy/fantasy-coach/internal/domain/player"
)

type rosterRequest struct {
	Roster []player.RosterPlayer `json:"roster" validate:"required,dive"`
}

func (h *Handler) RosterNeeds(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RosterNeeds")
	defer span.End()

	var req rosterRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, h.rosterService.Needs(req.Roster))
}

func (h *Handler) RosterAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RosterAnalysis")
	defer span.End()

	var req rosterRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	construction := h.rosterService.Analyze(req.Roster)
	writeSuccess(ctx, w, http.StatusOK, rosterAnalysisDTO{
		Construction: construction,
		Priorities:   construction.Priorities(),
		Summary:      construction.Summary(),
	})
}

func (h *Handler) RosterInjuries(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RosterInjuries")
	defer span.End()

	var req rosterRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, h.rosterService.Injuries(req.Roster))
}
