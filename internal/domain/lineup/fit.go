package lineup

import (
	"strings"

	"github.com/riskibarqy/fantasy-coach/internal/domain/player"
)

const (
	SlotFlex      = "FLEX"
	SlotSuperflex = "OP"
)

var slotEligibility = map[string]map[player.Position]struct{}{
	SlotFlex:      {player.PositionRB: {}, player.PositionWR: {}, player.PositionTE: {}},
	SlotSuperflex: {player.PositionQB: {}, player.PositionRB: {}, player.PositionWR: {}, player.PositionTE: {}},
}

// Fits reports whether a player at position may fill slot. Unknown slots and
// positions never fit.
func Fits(slot, position string) bool {
	pos, ok := player.ParsePosition(position)
	if !ok {
		return false
	}

	key := strings.ToUpper(strings.TrimSpace(slot))
	if eligible, ok := slotEligibility[key]; ok {
		_, fits := eligible[pos]
		return fits
	}

	slotPos, ok := player.ParsePosition(key)
	return ok && slotPos == pos
}
