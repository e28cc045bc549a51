package httpapi

import (
	"github.com/riskibarqy/fantasy-coach/internal/domain/roster"
	"github.com/riskibarqy/fantasy-coach/internal/usecase"
)

type rosterAnalysisDTO struct {
	roster.Construction
	Priorities []roster.PositionAnalysis `json:"waiver_priorities"`
	Summary    string                    `json:"summary"`
}

type replacementsDTO struct {
	Starter          string                      `json:"starter"`
	StarterProjected float64                     `json:"starter_projected"`
	Options          []usecase.ReplacementOption `json:"replacement_options"`
}

type statusDTO struct {
	Status string `json:"status"`
}
