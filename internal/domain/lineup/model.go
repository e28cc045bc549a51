package lineup

import (
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/fantasy-coach/internal/domain/player"
)

// Candidate is a rostered player enriched with blended scores.
type Candidate struct {
	Name          string              `json:"name"`
	Position      player.Position     `json:"position"`
	Team          string              `json:"team,omitempty"`
	Opponent      string              `json:"opponent,omitempty"`
	Projected     float64             `json:"projected"`
	SeasonTotal   float64             `json:"season_total"`
	SeasonPerGame float64             `json:"season_per_game"`
	RecentAvg     float64             `json:"recent_avg"`
	VsOpponentAvg *float64            `json:"vs_opponent_avg,omitempty"`
	InjuryStatus  player.InjuryStatus `json:"injury_status"`
	Adjusted      float64             `json:"adjusted"`
	Confidence    float64             `json:"confidence"`
}

// Value is the primary sort key used by the optimizers.
func (c Candidate) Value() float64 {
	return c.Adjusted * c.Confidence
}

// Assignment is one filled or unfilled lineup slot. On the wire it is a flat
// entry: player is the name (null when unfilled) and the scores sit beside it.
type Assignment struct {
	Slot   string
	Player *Candidate
	Error  string
}

type assignmentEntry struct {
	Slot       string          `json:"slot"`
	Player     *string         `json:"player"`
	Team       string          `json:"team,omitempty"`
	Position   player.Position `json:"position,omitempty"`
	Projected  *float64        `json:"projected,omitempty"`
	Adjusted   *float64        `json:"adjusted,omitempty"`
	Confidence *float64        `json:"confidence,omitempty"`
	Error      string          `json:"error,omitempty"`
}

func (a Assignment) MarshalJSON() ([]byte, error) {
	e := assignmentEntry{Slot: a.Slot, Error: a.Error}
	if p := a.Player; p != nil {
		e.Player = &p.Name
		e.Team = p.Team
		e.Position = p.Position
		e.Projected = &p.Projected
		e.Adjusted = &p.Adjusted
		e.Confidence = &p.Confidence
	}
	return sonic.Marshal(e)
}

func (a *Assignment) UnmarshalJSON(data []byte) error {
	var e assignmentEntry
	if err := sonic.Unmarshal(data, &e); err != nil {
		return err
	}
	*a = Assignment{Slot: e.Slot, Error: e.Error}
	if e.Player == nil {
		return nil
	}
	c := Candidate{Name: *e.Player, Team: e.Team, Position: e.Position}
	if e.Projected != nil {
		c.Projected = *e.Projected
	}
	if e.Adjusted != nil {
		c.Adjusted = *e.Adjusted
	}
	if e.Confidence != nil {
		c.Confidence = *e.Confidence
	}
	a.Player = &c
	return nil
}

// Filled reports whether a player occupies the slot.
func (a Assignment) Filled() bool {
	return a.Player != nil
}

// DebugInfo describes an optimization run.
type DebugInfo struct {
	TotalCandidates int     `json:"total_candidates"`
	LineupFilled    int     `json:"lineup_filled"`
	AvgConfidence   float64 `json:"avg_confidence"`
}

// Result is the lineup plus every candidate left on the bench.
type Result struct {
	Lineup []Assignment `json:"lineup"`
	Bench  []Candidate  `json:"bench"`
	Debug  DebugInfo    `json:"debug_info"`
}

// TruncatedBench returns at most limit bench entries; limit <= 0 keeps all.
func (r Result) TruncatedBench(limit int) []Candidate {
	if limit <= 0 || len(r.Bench) <= limit {
		return r.Bench
	}
	return r.Bench[:limit]
}

// Optimizer assigns candidates to slots.
type Optimizer interface {
	Optimize(slots []string, candidates []Candidate) Result
}

// Strategy names an Optimizer implementation.
type Strategy string

const (
	StrategyGreedy    Strategy = "greedy"
	StrategyHungarian Strategy = "hungarian"
)

// NewOptimizer returns the optimizer registered for strategy; blank means greedy.
func NewOptimizer(strategy Strategy) (Optimizer, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(string(strategy)))) {
	case "", StrategyGreedy:
		return Greedy{}, nil
	case StrategyHungarian:
		return Hungarian{}, nil
	default:
		return nil, fmt.Errorf("unknown lineup strategy %q", strategy)
	}
}

// DefaultSlots is the standard superflex starting lineup.
var DefaultSlots = []string{"QB", "RB", "RB", "WR", "WR", "TE", "FLEX", "OP", "K", "DST"}

func noPlayerError(slot string) string {
	return fmt.Sprintf("No available players for %s", slot)
}

func normalizeSlot(slot string) string {
	return strings.ToUpper(strings.TrimSpace(slot))
}
