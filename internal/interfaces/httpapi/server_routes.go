package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerLineupRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/lineups/optimize", handler.OptimizeLineup)
	mux.HandleFunc("POST /v1/scores/adjusted", handler.AdjustedScore)
	mux.HandleFunc("GET /v1/teams/{teamID}/lineup", handler.GetTeamLineup)
}

func registerRosterRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/rosters/needs", handler.RosterNeeds)
	mux.HandleFunc("POST /v1/rosters/analysis", handler.RosterAnalysis)
	mux.HandleFunc("POST /v1/rosters/injuries", handler.RosterInjuries)
}

func registerWaiverRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/waivers/{position}/targets", handler.WaiverTargets)
	mux.HandleFunc("POST /v1/waivers/analysis", handler.WaiverAnalysis)
	mux.HandleFunc("POST /v1/waivers/replacements", handler.WaiverReplacements)
}

func registerPlayerRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/players/{name}/performance", handler.PlayerPerformance)
	mux.HandleFunc("POST /v1/players/compare", handler.ComparePlayers)
}

func registerInternalRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/cache/rostered/invalidate", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.InvalidateRosteredCache)))
}
