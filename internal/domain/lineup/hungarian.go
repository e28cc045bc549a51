package lineup

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Hungarian maximizes the number of filled slots first and the summed
// Adjusted*Confidence second, independent of slot order. Candidates sharing a
// name compete for one seat; only the best of them is considered.
type Hungarian struct{}

func (Hungarian) Optimize(slots []string, candidates []Candidate) Result {
	normalized := make([]string, len(slots))
	for i, s := range slots {
		normalized[i] = normalizeSlot(s)
	}

	pool := bestPerName(candidates)
	n := len(normalized)
	if len(pool) > n {
		n = len(pool)
	}

	lineup := make([]Assignment, len(normalized))
	if n == 0 {
		return assemble(lineup, candidates)
	}

	// Filling a slot must always outweigh any difference in value.
	fillBonus := 1.0
	for _, idx := range pool {
		fillBonus += math.Abs(candidates[idx].Value())
	}

	cost := mat.NewDense(n, n, nil)
	for r, slot := range normalized {
		for c, idx := range pool {
			if Fits(slot, string(candidates[idx].Position)) {
				cost.Set(r, c, -(fillBonus + candidates[idx].Value()))
			}
		}
	}

	rowToCol := solveAssignment(cost)
	for r, slot := range normalized {
		c := rowToCol[r]
		if c < 0 || c >= len(pool) || cost.At(r, c) == 0 {
			lineup[r] = Assignment{Slot: slot, Error: noPlayerError(slot)}
			continue
		}
		idx := pool[c]
		chosen := candidates[idx]
		lineup[r] = Assignment{Slot: slot, Player: &chosen}
	}

	return assemble(lineup, candidates)
}

func bestPerName(candidates []Candidate) []int {
	best := make(map[string]int, len(candidates))
	order := make([]string, 0, len(candidates))
	for i, c := range candidates {
		cur, ok := best[c.Name]
		if !ok {
			best[c.Name] = i
			order = append(order, c.Name)
			continue
		}
		if better(c, candidates[cur]) {
			best[c.Name] = i
		}
	}

	pool := make([]int, 0, len(order))
	for _, name := range order {
		pool = append(pool, best[name])
	}
	return pool
}

// solveAssignment runs the O(n^3) Hungarian method on a square cost matrix
// and returns the column assigned to each row.
func solveAssignment(cost *mat.Dense) []int {
	n, _ := cost.Dims()
	u := make([]float64, n+1)
	v := make([]float64, n+1)
	p := make([]int, n+1)
	way := make([]int, n+1)

	for i := 1; i <= n; i++ {
		p[0] = i
		j0 := 0
		minv := make([]float64, n+1)
		for j := range minv {
			minv[j] = math.Inf(1)
		}
		visited := make([]bool, n+1)

		for {
			visited[j0] = true
			i0 := p[j0]
			delta := math.Inf(1)
			j1 := 0
			for j := 1; j <= n; j++ {
				if visited[j] {
					continue
				}
				cur := cost.At(i0-1, j-1) - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}
			for j := 0; j <= n; j++ {
				if visited[j] {
					u[p[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}
			j0 = j1
			if p[j0] == 0 {
				break
			}
		}

		for {
			j1 := way[j0]
			p[j0] = p[j1]
			j0 = j1
			if j0 == 0 {
				break
			}
		}
	}

	rowToCol := make([]int, n)
	for i := range rowToCol {
		rowToCol[i] = -1
	}
	for j := 1; j <= n; j++ {
		if p[j] > 0 {
			rowToCol[p[j]-1] = j - 1
		}
	}
	return rowToCol
}
