package waiver

import (
	"github.com/riskibarqy/fantasy-coach/internal/domain/player"
	"github.com/riskibarqy/fantasy-coach/internal/domain/roster"
	"github.com/riskibarqy/fantasy-coach/internal/domain/scoring"
)

const gamesPerSeason = 17

// UpsideScore weights weekly projection, scarcity, season pace and history.
func UpsideScore(projected, ownership, seasonTotal, historicalAvg float64) float64 {
	score := 0.4*projected + 0.3*((100-ownership)/100)
	if seasonTotal > 0 {
		score += 0.2 * (seasonTotal / gamesPerSeason)
	}
	if historicalAvg > 0 {
		score += 0.1 * historicalAvg
	}
	return scoring.Round2(score)
}

// TargetType labels a waiver target by ownership and upside.
type TargetType string

const (
	TargetDeepSleeper TargetType = "Deep Sleeper"
	TargetSleeper     TargetType = "Sleeper"
	TargetSolidAdd    TargetType = "Solid Add"
	TargetDepth       TargetType = "Depth Option"
)

func ClassifyTarget(ownership, upside float64) TargetType {
	switch {
	case ownership < 10 && upside > 15:
		return TargetDeepSleeper
	case ownership < 25 && upside > 12:
		return TargetSleeper
	case ownership < 50 && upside > 10:
		return TargetSolidAdd
	default:
		return TargetDepth
	}
}

// Strength rates a recommendation.
type Strength string

const (
	StrengthStrong         Strength = "Strong"
	StrengthModerate       Strength = "Moderate"
	StrengthWeak           Strength = "Weak"
	StrengthNotRecommended Strength = "Not Recommended"

	StrengthMustAdd             Strength = "Must Add"
	StrengthStronglyRecommended Strength = "Strongly Recommended"
	StrengthRecommended         Strength = "Recommended"
	StrengthGoodValue           Strength = "Good Value"
	StrengthConsider            Strength = "Consider"
)

// ReplacementStrength rates swapping a starter for a waiver candidate by
// projected improvement, ownership and historical average.
func ReplacementStrength(candidateProjected, starterProjected, ownership, historicalAvg float64) Strength {
	improvement := candidateProjected - starterProjected
	switch {
	case improvement >= 5 && ownership < 50 && historicalAvg > 8:
		return StrengthStrong
	case improvement >= 3 && ownership < 75:
		return StrengthModerate
	case improvement >= 1:
		return StrengthWeak
	default:
		return StrengthNotRecommended
	}
}

var baseMinimums = map[player.Position]float64{
	player.PositionQB:  12,
	player.PositionRB:  8,
	player.PositionWR:  8,
	player.PositionTE:  8,
	player.PositionK:   4,
	player.PositionDST: 5,
}

var minimumMultipliers = map[roster.Priority]float64{
	roster.PriorityCritical: 0.6,
	roster.PriorityHigh:     0.8,
	roster.PriorityMedium:   1.0,
	roster.PriorityLow:      1.2,
}

// PositionMinPoints is the projection floor for waiver searches; urgent
// needs lower the bar.
func PositionMinPoints(pos player.Position, priority roster.Priority) float64 {
	base, ok := baseMinimums[pos]
	if !ok {
		base = 6
	}
	multiplier, ok := minimumMultipliers[priority]
	if !ok {
		multiplier = 1
	}
	return scoring.Round1(base * multiplier)
}

var rosterValueBonus = map[roster.Priority]float64{
	roster.PriorityCritical: 2.0,
	roster.PriorityHigh:     1.5,
	roster.PriorityMedium:   1.0,
	roster.PriorityLow:      0.7,
}

// RosterValue scales a projection by how badly the roster needs the position.
func RosterValue(projected float64, priority roster.Priority, healthyCount int) float64 {
	multiplier, ok := rosterValueBonus[priority]
	if !ok {
		multiplier = 1
	}
	if healthyCount <= 1 {
		multiplier *= 1.5
	}
	return scoring.Round1(projected * multiplier)
}

// SmartStrength rates a pickup against the roster priority of its position.
func SmartStrength(priority roster.Priority, projected, ownership float64) Strength {
	switch {
	case priority == roster.PriorityCritical && projected >= 5:
		return StrengthMustAdd
	case priority == roster.PriorityHigh && projected >= 6:
		return StrengthStronglyRecommended
	case (priority == roster.PriorityHigh || priority == roster.PriorityMedium) && projected >= 8 && ownership < 90:
		return StrengthRecommended
	case projected >= 10:
		return StrengthGoodValue
	default:
		return StrengthConsider
	}
}
