package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/fantasy-coach/internal/usecase"
)

type comparePlayersRequest struct {
	Names  []string `json:"names" validate:"required,min=2,dive,required"`
	Week   int      `json:"week" validate:"omitempty,min=1,max=18"`
	Metric string   `json:"metric" validate:"omitempty,oneof=projection season recent"`
}

func (h *Handler) PlayerPerformance(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PlayerPerformance")
	defer span.End()

	name := strings.TrimSpace(r.PathValue("name"))
	weeks, err := queryInt(r, "weeks", 0)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.playerService.Performance(ctx, name, weeks)
	if err != nil {
		h.logger.WarnContext(ctx, "player performance failed", "player_name", name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) ComparePlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ComparePlayers")
	defer span.End()

	var req comparePlayersRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.playerService.Compare(ctx, usecase.CompareInput{
		Names:  req.Names,
		Week:   req.Week,
		Metric: usecase.CompareMetric(req.Metric),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "compare players failed", "players", len(req.Names), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}
