package scoring

import (
	"fmt"
	"strings"

	"github.com/riskibarqy/fantasy-coach/internal/domain/player"
	"github.com/shopspring/decimal"
)

// Strategy selects the weighting used to blend signals.
type Strategy string

const (
	// StrategyAuto uses Matchup when an opponent history was supplied and Weekly otherwise.
	StrategyAuto Strategy = "auto"
	// StrategyWeekly weights weekly, season, opponent and recent form (0.60/0.20/0.15/0.05).
	StrategyWeekly Strategy = "weekly"
	// StrategyMatchup weights weekly, opponent and recent form (0.70/0.20/0.10).
	StrategyMatchup Strategy = "matchup"
)

// ParseStrategy resolves a configured strategy name; blank means auto.
func ParseStrategy(raw string) (Strategy, error) {
	switch s := Strategy(strings.ToLower(strings.TrimSpace(raw))); s {
	case "":
		return StrategyAuto, nil
	case StrategyAuto, StrategyWeekly, StrategyMatchup:
		return s, nil
	default:
		return "", fmt.Errorf("unknown blend strategy %q", raw)
	}
}

// Signals are the raw inputs for one player.
type Signals struct {
	Weekly        float64             `json:"weekly"`
	SeasonPerGame float64             `json:"season_per_game"`
	Recent        float64             `json:"recent"`
	VsOpponent    *float64            `json:"vs_opponent,omitempty"`
	Injury        player.InjuryStatus `json:"injury_status"`
}

// Score is the blended outcome.
type Score struct {
	Adjusted   float64 `json:"adjusted"`
	Confidence float64 `json:"confidence"`
}

var injuryMultipliers = map[player.InjuryStatus]float64{
	player.InjuryHealthy:      1.0,
	player.InjuryQuestionable: 0.85,
	player.InjuryDoubtful:     0.5,
	player.InjuryOut:          0.1,
	player.InjuryIR:           0.05,
	player.InjuryPUP:          0.05,
	player.InjurySuspended:    0.1,
}

// InjuryMultiplier scales a blended score by injury designation. Statuses
// without a table entry, Unknown included, leave the score untouched.
func InjuryMultiplier(status player.InjuryStatus) float64 {
	if m, ok := injuryMultipliers[status]; ok {
		return m
	}
	return 1.0
}

// Blend scores sig with StrategyAuto.
func Blend(sig Signals) Score {
	return BlendWith(StrategyAuto, sig)
}

// BlendWith scores sig with the given strategy. It is pure.
func BlendWith(strategy Strategy, sig Signals) Score {
	var w float64
	if sig.Weekly > 0 {
		w = sig.Weekly
	}
	s := w
	if sig.SeasonPerGame > 0 {
		s = sig.SeasonPerGame
	}
	r := s
	if sig.Recent > 0 {
		r = sig.Recent
	}
	v := r
	if sig.VsOpponent != nil && *sig.VsOpponent > 0 {
		v = *sig.VsOpponent
	}

	if w == 0 && s == 0 && r == 0 {
		return Score{}
	}

	if strategy == StrategyAuto || strategy == "" {
		strategy = StrategyWeekly
		if sig.VsOpponent != nil {
			strategy = StrategyMatchup
		}
	}

	var base float64
	switch strategy {
	case StrategyMatchup:
		base = 0.70*w + 0.20*v + 0.10*r
	default:
		base = 0.60*w + 0.20*s + 0.15*v + 0.05*r
	}

	status := sig.Injury
	if status == "" {
		status = player.InjuryHealthy
	}

	return Score{
		Adjusted:   Round2(base * InjuryMultiplier(status)),
		Confidence: Round2(confidence(w, s, r, v, status)),
	}
}

func confidence(w, s, r, v float64, status player.InjuryStatus) float64 {
	var c float64
	if w > 0 {
		c += 0.5
	}
	if s > 0 {
		c += 0.3
	}
	if r > 0 {
		c += 0.1
	}
	if v > 0 {
		c += 0.1
	}
	if status != player.InjuryHealthy {
		c *= 0.7
	}

	switch {
	case c < 0:
		return 0
	case c > 1:
		return 1
	default:
		return c
	}
}

// Round2 rounds half away from zero to two decimal places.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// Round1 rounds half away from zero to one decimal place.
func Round1(v float64) float64 {
	return decimal.NewFromFloat(v).Round(1).InexactFloat64()
}
