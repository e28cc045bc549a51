package roster

import (
	"fmt"
	"sort"
	"strings"

	"github.com/riskibarqy/fantasy-coach/internal/domain/player"
)

// Priority ranks how urgently a position needs reinforcement.
type Priority string

const (
	PriorityCritical Priority = "CRITICAL"
	PriorityHigh     Priority = "HIGH"
	PriorityMedium   Priority = "MEDIUM"
	PriorityLow      Priority = "LOW"
	PriorityNone     Priority = "NONE"
)

var priorityRank = map[Priority]int{
	PriorityCritical: 0,
	PriorityHigh:     1,
	PriorityMedium:   2,
	PriorityLow:      3,
	PriorityNone:     4,
}

// Actionable reports whether the waiver wire should be searched for the priority.
func (p Priority) Actionable() bool {
	return p == PriorityCritical || p == PriorityHigh || p == PriorityMedium
}

// PositionAnalysis is the depth report for one position.
type PositionAnalysis struct {
	Position          player.Position `json:"position"`
	Total             int             `json:"total_players"`
	Healthy           int             `json:"healthy_players"`
	Questionable      int             `json:"questionable_players"`
	Injured           int             `json:"injured_players"`
	StartersRequired  int             `json:"starters_required"`
	EffectiveNeed     int             `json:"effective_need"`
	MaximumAllowed    int             `json:"maximum_allowed"`
	Priority          Priority        `json:"priority"`
	Reason            string          `json:"urgency_reason"`
	HealthyNames      []string        `json:"healthy_player_names"`
	QuestionableNames []string        `json:"questionable_player_names"`
	InjuredNames      []string        `json:"injured_player_names"`
}

// Recommendation is the human readable advice for the position.
func (a PositionAnalysis) Recommendation() string {
	switch a.Priority {
	case PriorityCritical:
		return fmt.Sprintf("MUST ADD - Only %d healthy players", a.Healthy)
	case PriorityHigh:
		return fmt.Sprintf("STRONGLY CONSIDER - Limited depth with %d healthy", a.Healthy)
	case PriorityMedium:
		return "CONSIDER - Could use additional depth"
	case PriorityLow:
		return "OPTIONAL - Adequate depth exists"
	default:
		return fmt.Sprintf("AVOID - At roster limit with %d players", a.Total)
	}
}

// Construction is the roster-wide depth report.
type Construction struct {
	Positions  []PositionAnalysis `json:"roster_breakdown"`
	RosterSize int                `json:"total_roster_size"`
}

// Analyze classifies depth and injury exposure per position.
func Analyze(players []player.RosterPlayer, req Requirements) Construction {
	byPos := make(map[player.Position]*PositionAnalysis, len(player.AllPositions))
	out := Construction{RosterSize: len(players)}
	for _, pos := range player.AllPositions {
		byPos[pos] = &PositionAnalysis{
			Position:          pos,
			StartersRequired:  req.Starters[pos],
			EffectiveNeed:     req.EffectiveNeed(pos),
			MaximumAllowed:    req.Maximum(pos),
			HealthyNames:      []string{},
			QuestionableNames: []string{},
			InjuredNames:      []string{},
		}
	}

	for _, p := range players {
		pos, ok := player.ParsePosition(p.Position)
		if !ok {
			continue
		}
		a := byPos[pos]
		a.Total++
		switch p.Status() {
		case player.InjuryHealthy:
			a.Healthy++
			a.HealthyNames = append(a.HealthyNames, p.Name)
		case player.InjuryQuestionable:
			a.Questionable++
			a.QuestionableNames = append(a.QuestionableNames, p.Name)
		default:
			a.Injured++
			a.InjuredNames = append(a.InjuredNames, p.Name)
		}
	}

	for _, pos := range player.AllPositions {
		a := byPos[pos]
		a.Priority, a.Reason = classify(*a)
		out.Positions = append(out.Positions, *a)
	}
	return out
}

func classify(a PositionAnalysis) (Priority, string) {
	usable := a.Healthy + a.Questionable
	switch {
	case a.Healthy < a.StartersRequired:
		return PriorityCritical, fmt.Sprintf("Only %d healthy, need %d starters", a.Healthy, a.StartersRequired)
	case usable < a.EffectiveNeed:
		return PriorityHigh, "Need depth for flex/OP eligibility"
	case a.Healthy < a.EffectiveNeed:
		return PriorityMedium, "Questionable players create uncertainty"
	case a.Total >= a.MaximumAllowed:
		return PriorityNone, fmt.Sprintf("At roster maximum (%d)", a.MaximumAllowed)
	default:
		return PriorityLow, "Adequate depth available"
	}
}

// Position returns the analysis for pos.
func (c Construction) Position(pos player.Position) (PositionAnalysis, bool) {
	for _, a := range c.Positions {
		if a.Position == pos {
			return a, true
		}
	}
	return PositionAnalysis{}, false
}

// Priorities orders every non-NONE position by priority, fewest healthy first.
func (c Construction) Priorities() []PositionAnalysis {
	out := make([]PositionAnalysis, 0, len(c.Positions))
	for _, a := range c.Positions {
		if a.Priority != PriorityNone {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if ri, rj := priorityRank[out[i].Priority], priorityRank[out[j].Priority]; ri != rj {
			return ri < rj
		}
		return out[i].Healthy < out[j].Healthy
	})
	return out
}

// WaiverPriorities keeps only the actionable entries of Priorities.
func (c Construction) WaiverPriorities() []PositionAnalysis {
	var out []PositionAnalysis
	for _, a := range c.Priorities() {
		if a.Priority.Actionable() {
			out = append(out, a)
		}
	}
	return out
}

// PositionsToAvoid lists positions already at their roster maximum.
func (c Construction) PositionsToAvoid() []player.Position {
	var out []player.Position
	for _, a := range c.Positions {
		if a.Priority == PriorityNone {
			out = append(out, a.Position)
		}
	}
	return out
}

// Summary renders the top three priorities, the positions to avoid and any
// critical needs as one line.
func (c Construction) Summary() string {
	var parts []string
	actionable := c.WaiverPriorities()
	if len(actionable) > 0 {
		parts = append(parts, "WAIVER PRIORITIES:")
		for i, a := range actionable {
			if i == 3 {
				break
			}
			parts = append(parts, fmt.Sprintf("- %s: %s priority - %s", a.Position, a.Priority, a.Reason))
		}
	}

	if avoid := c.PositionsToAvoid(); len(avoid) > 0 {
		parts = append(parts, fmt.Sprintf("AVOID: %s (at roster limits)", joinPositions(avoid)))
	}

	var critical []player.Position
	for _, a := range actionable {
		if a.Priority == PriorityCritical {
			critical = append(critical, a.Position)
		}
	}
	if len(critical) > 0 {
		parts = append(parts, fmt.Sprintf("IMMEDIATE ACTION NEEDED: %s", joinPositions(critical)))
	}
	return strings.Join(parts, " | ")
}

func joinPositions(positions []player.Position) string {
	names := make([]string, len(positions))
	for i, p := range positions {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}
