package roster

import (
	"fmt"
	"strings"

	"github.com/riskibarqy/fantasy-coach/internal/domain/player"
)

// Severity grades how much an injury designation threatens availability.
type Severity string

const (
	SeverityNone     Severity = "None"
	SeverityLow      Severity = "Low"
	SeverityHigh     Severity = "High"
	SeverityCritical Severity = "Critical"
	SeverityUnknown  Severity = "Unknown"
)

func InjurySeverity(status player.InjuryStatus) Severity {
	switch status {
	case player.InjuryHealthy:
		return SeverityNone
	case player.InjuryQuestionable:
		return SeverityLow
	case player.InjuryDoubtful:
		return SeverityHigh
	case player.InjuryOut, player.InjuryIR, player.InjuryPUP, player.InjurySuspended:
		return SeverityCritical
	default:
		return SeverityUnknown
	}
}

// InjuredPlayer is a rostered player carrying a non-healthy designation.
type InjuredPlayer struct {
	Name         string              `json:"name"`
	Position     string              `json:"position"`
	Team         string              `json:"team,omitempty"`
	InjuryStatus player.InjuryStatus `json:"injury_status"`
	Severity     Severity            `json:"severity"`
}

// InjuryImpact summarizes injury exposure across a roster.
type InjuryImpact struct {
	TotalInjured        int                 `json:"total_injured"`
	InjuredPlayers      []InjuredPlayer     `json:"injured_players"`
	HealthyAlternatives map[string][]string `json:"healthy_alternatives"`
	Recommendation      string              `json:"recommendation"`
	Analysis            string              `json:"analysis"`
}

// InjuryReport lists injured players and, for positions that have both
// injured and healthy players, the healthy alternatives.
func InjuryReport(players []player.RosterPlayer) InjuryImpact {
	out := InjuryImpact{
		InjuredPlayers:      []InjuredPlayer{},
		HealthyAlternatives: map[string][]string{},
	}

	order := make([]string, 0, len(player.AllPositions))
	byPos := make(map[string][]player.RosterPlayer)
	for _, p := range players {
		key := p.Position
		if pos, ok := player.ParsePosition(p.Position); ok {
			key = string(pos)
		}
		if _, seen := byPos[key]; !seen {
			order = append(order, key)
		}
		byPos[key] = append(byPos[key], p)
	}

	for _, pos := range order {
		var healthy []string
		injuredHere := 0
		for _, p := range byPos[pos] {
			status := p.Status()
			if status == player.InjuryHealthy {
				healthy = append(healthy, p.Name)
				continue
			}
			injuredHere++
			out.InjuredPlayers = append(out.InjuredPlayers, InjuredPlayer{
				Name:         p.Name,
				Position:     pos,
				Team:         p.Team,
				InjuryStatus: status,
				Severity:     InjurySeverity(status),
			})
		}
		if injuredHere > 0 && len(healthy) > 0 {
			out.HealthyAlternatives[pos] = healthy
		}
	}

	out.TotalInjured = len(out.InjuredPlayers)
	out.Recommendation = injuryRecommendation(out.InjuredPlayers)
	out.Analysis = fmt.Sprintf(
		"Found %d injured players across roster. Healthy alternatives available for %d positions.",
		out.TotalInjured, len(out.HealthyAlternatives),
	)
	return out
}

func injuryRecommendation(injured []InjuredPlayer) string {
	if len(injured) == 0 {
		return "No injury concerns. Proceed with normal optimization."
	}

	var critical, high []string
	for _, p := range injured {
		switch p.Severity {
		case SeverityCritical:
			critical = append(critical, p.Name)
		case SeverityHigh:
			high = append(high, p.Name)
		}
	}
	if len(critical) > 0 {
		return fmt.Sprintf("AVOID: %s should not be started due to critical injury status.", strings.Join(critical, ", "))
	}
	if len(high) > 0 {
		return fmt.Sprintf("CAUTION: %s are high-risk due to injury. Consider healthy alternatives.", strings.Join(high, ", "))
	}
	return "Monitor questionable players closely. Consider healthy alternatives if available."
}
