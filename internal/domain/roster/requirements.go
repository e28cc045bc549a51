package roster

import (
	"strings"

	"github.com/riskibarqy/fantasy-coach/internal/domain/player"
)

const (
	SlotFlex      = "FLEX"
	SlotSuperflex = "OP"
	SlotBench     = "BENCH"
)

// Requirements stores league roster construction parameters.
type Requirements struct {
	Starters  map[player.Position]int `yaml:"starters"`
	Maximums  map[player.Position]int `yaml:"maximums"`
	Flex      int                     `yaml:"flex"`
	Superflex int                     `yaml:"superflex"`
	Bench     int                     `yaml:"bench"`
}

func DefaultRequirements() Requirements {
	return Requirements{
		Starters: map[player.Position]int{
			player.PositionQB:  1,
			player.PositionRB:  2,
			player.PositionWR:  2,
			player.PositionTE:  1,
			player.PositionK:   1,
			player.PositionDST: 1,
		},
		Maximums:  DefaultMaximums(),
		Flex:      1,
		Superflex: 1,
		Bench:     8,
	}
}

func DefaultMaximums() map[player.Position]int {
	return map[player.Position]int{
		player.PositionQB:  4,
		player.PositionRB:  8,
		player.PositionWR:  8,
		player.PositionTE:  3,
		player.PositionK:   3,
		player.PositionDST: 3,
	}
}

// RequirementsFromSlots derives starter counts from lineup slot names. Slots
// that are neither a position, FLEX, OP nor BENCH are ignored.
func RequirementsFromSlots(slots []string) Requirements {
	req := Requirements{
		Starters: make(map[player.Position]int, len(player.AllPositions)),
		Maximums: DefaultMaximums(),
		Bench:    8,
	}
	for _, raw := range slots {
		slot := strings.ToUpper(strings.TrimSpace(raw))
		switch slot {
		case SlotFlex:
			req.Flex++
		case SlotSuperflex:
			req.Superflex++
		case SlotBench:
		default:
			if pos, ok := player.ParsePosition(slot); ok {
				req.Starters[pos]++
			}
		}
	}
	return req
}

// TotalStarters counts every starting slot, FLEX and OP included.
func (r Requirements) TotalStarters() int {
	total := r.Flex + r.Superflex
	for _, n := range r.Starters {
		total += n
	}
	return total
}

// Maximum returns the roster cap for pos, 0 when uncapped.
func (r Requirements) Maximum(pos player.Position) int {
	return r.Maximums[pos]
}

// EffectiveNeed adds one body per FLEX and OP slot the position may fill.
func (r Requirements) EffectiveNeed(pos player.Position) int {
	need := r.Starters[pos]
	switch pos {
	case player.PositionRB, player.PositionWR, player.PositionTE:
		need += r.Flex + r.Superflex
	case player.PositionQB:
		need += r.Superflex
	}
	return need
}

// Merge overlays non-zero values of override onto r.
func (r Requirements) Merge(override Requirements) Requirements {
	out := Requirements{
		Starters:  make(map[player.Position]int, len(r.Starters)),
		Maximums:  make(map[player.Position]int, len(r.Maximums)),
		Flex:      r.Flex,
		Superflex: r.Superflex,
		Bench:     r.Bench,
	}
	for pos, n := range r.Starters {
		out.Starters[pos] = n
	}
	for pos, n := range r.Maximums {
		out.Maximums[pos] = n
	}
	for pos, n := range override.Starters {
		out.Starters[pos] = n
	}
	for pos, n := range override.Maximums {
		out.Maximums[pos] = n
	}
	if override.Flex > 0 {
		out.Flex = override.Flex
	}
	if override.Superflex > 0 {
		out.Superflex = override.Superflex
	}
	if override.Bench > 0 {
		out.Bench = override.Bench
	}
	return out
}

func countByPosition(players []player.RosterPlayer) map[player.Position]int {
	counts := make(map[player.Position]int, len(player.AllPositions))
	for _, p := range players {
		if pos, ok := player.ParsePosition(p.Position); ok {
			counts[pos]++
		}
	}
	return counts
}
