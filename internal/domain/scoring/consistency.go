package scoring

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Trend labels compare the latest four games against the four before them.
const (
	TrendUp           = "Trending up"
	TrendDown         = "Trending down"
	TrendStable       = "Stable"
	TrendInsufficient = "Insufficient data"
)

// Consistency summarizes the spread of weekly fantasy points.
type Consistency struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	// Score is 100 minus the coefficient of variation in percent, floored at 0.
	Score float64 `json:"score"`
	Trend string  `json:"trend"`
}

// MeasureConsistency computes population statistics over points.
func MeasureConsistency(points []float64) Consistency {
	out := Consistency{Trend: Trend(points)}
	if len(points) == 0 {
		return out
	}

	mean, std := stat.PopMeanStdDev(points, nil)
	out.Mean = Round2(mean)
	out.StdDev = Round2(std)
	if len(points) >= 2 && mean > 0 {
		out.Score = Round2(math.Max(0, 100-(std/mean)*100))
	}
	return out
}

// Trend classifies recent form. Fewer than four games is insufficient.
func Trend(points []float64) string {
	if len(points) < 4 {
		return TrendInsufficient
	}

	recent := points[len(points)-4:]
	previous := points[:len(points)-4]
	if len(points) >= 8 {
		previous = points[len(points)-8 : len(points)-4]
	}
	if len(previous) == 0 {
		return TrendInsufficient
	}

	recentAvg := stat.Mean(recent, nil)
	previousAvg := stat.Mean(previous, nil)
	switch {
	case recentAvg > previousAvg*1.15:
		return TrendUp
	case recentAvg < previousAvg*0.85:
		return TrendDown
	default:
		return TrendStable
	}
}
