package waiver

import (
	"fmt"
	"sort"
	"strings"

	"github.com/riskibarqy/fantasy-coach/internal/domain/player"
	"github.com/riskibarqy/fantasy-coach/internal/domain/roster"
)

// Target is a scored low-ownership pickup.
type Target struct {
	PlayerName       string     `json:"player_name"`
	Team             string     `json:"team,omitempty"`
	ProjectedPoints  float64    `json:"projected_points"`
	OwnershipPct     float64    `json:"ownership_pct"`
	SeasonProjection float64    `json:"season_projection"`
	HistoricalAvg    float64    `json:"historical_avg"`
	UpsideScore      float64    `json:"upside_score"`
	TargetType       TargetType `json:"target_type"`
}

// NewTarget scores an available player given its season projection and
// prior-season recent average.
func NewTarget(p Available, seasonProjection, historicalAvg float64) Target {
	upside := UpsideScore(p.Projected, p.PercentOwned, seasonProjection, historicalAvg)
	return Target{
		PlayerName:       p.Name,
		Team:             p.Team,
		ProjectedPoints:  p.Projected,
		OwnershipPct:     p.PercentOwned,
		SeasonProjection: seasonProjection,
		HistoricalAvg:    historicalAvg,
		UpsideScore:      upside,
		TargetType:       ClassifyTarget(p.PercentOwned, upside),
	}
}

// SortTargets orders targets by upside descending, keeping input order on ties.
func SortTargets(targets []Target) {
	sort.SliceStable(targets, func(i, j int) bool {
		return targets[i].UpsideScore > targets[j].UpsideScore
	})
}

// Option is a pickup evaluated against roster need.
type Option struct {
	PlayerName       string   `json:"player_name"`
	Team             string   `json:"team,omitempty"`
	ProjectedPoints  float64  `json:"projected_points"`
	OwnershipPct     float64  `json:"ownership_pct"`
	SeasonProjection float64  `json:"season_projection"`
	HistoricalAvg    float64  `json:"historical_avg"`
	RosterValue      float64  `json:"roster_value"`
	Strength         Strength `json:"recommendation_strength"`
}

// NewOption evaluates p against the roster need described by need.
func NewOption(p Available, need roster.PositionAnalysis, seasonProjection, historicalAvg float64) Option {
	return Option{
		PlayerName:       p.Name,
		Team:             p.Team,
		ProjectedPoints:  p.Projected,
		OwnershipPct:     p.PercentOwned,
		SeasonProjection: seasonProjection,
		HistoricalAvg:    historicalAvg,
		RosterValue:      RosterValue(p.Projected, need.Priority, need.Healthy),
		Strength:         SmartStrength(need.Priority, p.Projected, p.PercentOwned),
	}
}

// Recommendation groups the options found for one needy position.
type Recommendation struct {
	Position     player.Position `json:"position"`
	Priority     roster.Priority `json:"priority"`
	RosterNeed   string          `json:"roster_need"`
	HealthyCount int             `json:"healthy_count"`
	Options      []Option        `json:"waiver_options"`
}

// Top returns the first option, if any.
func (r Recommendation) Top() (Option, bool) {
	if len(r.Options) == 0 {
		return Option{}, false
	}
	return r.Options[0], true
}

// SearchLimit is how many pool entries to inspect for a priority level.
func SearchLimit(priority roster.Priority) int {
	if priority == roster.PriorityCritical {
		return 8
	}
	return 5
}

// Summarize renders the smart waiver analysis headline.
func Summarize(recs []Recommendation, avoid []player.Position) string {
	if len(recs) == 0 {
		return "Roster analysis shows no critical needs. Focus on best player available or handcuffs."
	}

	var parts []string
	if critical := positionsAt(recs, roster.PriorityCritical); len(critical) > 0 {
		parts = append(parts, fmt.Sprintf("CRITICAL NEEDS: %s - Immediate action required", strings.Join(critical, ", ")))
	}
	if high := positionsAt(recs, roster.PriorityHigh); len(high) > 0 {
		parts = append(parts, fmt.Sprintf("HIGH PRIORITY: %s - Strongly consider adding", strings.Join(high, ", ")))
	}
	if len(avoid) > 0 {
		names := make([]string, len(avoid))
		for i, p := range avoid {
			names[i] = string(p)
		}
		parts = append(parts, fmt.Sprintf("AVOID: %s - At roster maximums", strings.Join(names, ", ")))
	}
	if top, ok := recs[0].Top(); ok {
		parts = append(parts, fmt.Sprintf("TOP TARGET: %s (%s) - %g pts, %.1f%% owned",
			top.PlayerName, recs[0].Position, top.ProjectedPoints, top.OwnershipPct))
	}
	return strings.Join(parts, " | ")
}

func positionsAt(recs []Recommendation, priority roster.Priority) []string {
	var out []string
	for _, r := range recs {
		if r.Priority == priority {
			out = append(out, string(r.Position))
		}
	}
	return out
}
