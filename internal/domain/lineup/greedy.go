package lineup

import (
	"sort"

	"github.com/riskibarqy/fantasy-coach/internal/domain/scoring"
)

// Greedy fills slots in caller order, each with the best remaining eligible
// candidate. The outcome depends on slot order: a FLEX listed before RB may
// take the best RB.
type Greedy struct{}

func (Greedy) Optimize(slots []string, candidates []Candidate) Result {
	usedNames := make(map[string]struct{}, len(slots))
	lineup := make([]Assignment, 0, len(slots))

	for _, raw := range slots {
		slot := normalizeSlot(raw)

		eligible := make([]int, 0, len(candidates))
		for i, c := range candidates {
			if _, taken := usedNames[c.Name]; taken {
				continue
			}
			if !Fits(slot, string(c.Position)) {
				continue
			}
			eligible = append(eligible, i)
		}

		if len(eligible) == 0 {
			lineup = append(lineup, Assignment{Slot: slot, Error: noPlayerError(slot)})
			continue
		}

		sort.SliceStable(eligible, func(a, b int) bool {
			return better(candidates[eligible[a]], candidates[eligible[b]])
		})

		pick := eligible[0]
		chosen := candidates[pick]
		usedNames[chosen.Name] = struct{}{}
		lineup = append(lineup, Assignment{Slot: slot, Player: &chosen})
	}

	return assemble(lineup, candidates)
}

// better orders by Adjusted*Confidence, then Adjusted, both descending.
func better(a, b Candidate) bool {
	if av, bv := a.Value(), b.Value(); av != bv {
		return av > bv
	}
	return a.Adjusted > b.Adjusted
}

// assemble builds the bench from every candidate whose name is not in the
// lineup, best first, and computes the debug summary.
func assemble(lineup []Assignment, candidates []Candidate) Result {
	usedNames := make(map[string]struct{}, len(lineup))
	for _, a := range lineup {
		if a.Player != nil {
			usedNames[a.Player.Name] = struct{}{}
		}
	}

	bench := make([]Candidate, 0, len(candidates))
	var confidenceSum float64
	for _, c := range candidates {
		confidenceSum += c.Confidence
		if _, ok := usedNames[c.Name]; ok {
			continue
		}
		bench = append(bench, c)
	}
	sort.SliceStable(bench, func(i, j int) bool { return better(bench[i], bench[j]) })

	debug := DebugInfo{
		TotalCandidates: len(candidates),
		LineupFilled:    len(usedNames),
	}
	if len(candidates) > 0 {
		debug.AvgConfidence = scoring.Round2(confidenceSum / float64(len(candidates)))
	}

	return Result{Lineup: lineup, Bench: bench, Debug: debug}
}
