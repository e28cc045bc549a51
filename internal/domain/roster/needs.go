package roster

import "github.com/riskibarqy/fantasy-coach/internal/domain/player"

// Needs maps a position, or the synthetic FLEX key, to additional starters required.
type Needs map[string]int

// ComputeNeeds returns per-position starter shortfalls. Surplus RB/WR/TE bodies
// count toward FLEX; while FLEX stays short every FLEX-eligible position is
// flagged with a need of at least one.
func ComputeNeeds(players []player.RosterPlayer, req Requirements) Needs {
	counts := countByPosition(players)
	needs := make(Needs)

	for _, pos := range player.AllPositions {
		if short := req.Starters[pos] - counts[pos]; short > 0 {
			needs[string(pos)] = short
		}
	}

	if req.Flex <= 0 {
		return needs
	}

	extra := 0
	for _, pos := range flexPositions {
		if surplus := counts[pos] - req.Starters[pos]; surplus > 0 {
			extra += surplus
		}
	}

	flexRemaining := req.Flex - min(extra, req.Flex)
	if flexRemaining > 0 {
		for _, pos := range flexPositions {
			if needs[string(pos)] < 1 {
				needs[string(pos)] = 1
			}
		}
		needs[SlotFlex] = flexRemaining
	}
	return needs
}

// BenchSlotsUsed is how many rostered players exceed the starting lineup.
func BenchSlotsUsed(players []player.RosterPlayer, req Requirements) int {
	return max(0, len(players)-req.TotalStarters())
}

var flexPositions = []player.Position{player.PositionRB, player.PositionWR, player.PositionTE}
