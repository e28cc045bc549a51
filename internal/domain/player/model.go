package player

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Position is the canonical NFL fantasy position.
type Position string

const (
	PositionQB  Position = "QB"
	PositionRB  Position = "RB"
	PositionWR  Position = "WR"
	PositionTE  Position = "TE"
	PositionK   Position = "K"
	PositionDST Position = "DST"
)

// AllPositions lists positions in display order.
var AllPositions = []Position{PositionQB, PositionRB, PositionWR, PositionTE, PositionK, PositionDST}

var positionAliases = map[string]Position{
	"QB":   PositionQB,
	"RB":   PositionRB,
	"WR":   PositionWR,
	"TE":   PositionTE,
	"K":    PositionK,
	"PK":   PositionK,
	"DST":  PositionDST,
	"D/ST": PositionDST,
	"DEF":  PositionDST,
	"D":    PositionDST,
	"ST":   PositionDST,
}

// ParsePosition canonicalizes a provider position string.
func ParsePosition(raw string) (Position, bool) {
	key := strings.ToUpper(strings.Join(strings.Fields(raw), ""))
	pos, ok := positionAliases[key]
	return pos, ok
}

func (p Position) String() string {
	return string(p)
}

// InjuryStatus is the canonical injury designation.
type InjuryStatus string

const (
	InjuryHealthy      InjuryStatus = "Healthy"
	InjuryQuestionable InjuryStatus = "Questionable"
	InjuryDoubtful     InjuryStatus = "Doubtful"
	InjuryOut          InjuryStatus = "Out"
	InjuryIR           InjuryStatus = "IR"
	InjuryPUP          InjuryStatus = "PUP"
	InjurySuspended    InjuryStatus = "Suspended"
	InjuryUnknown      InjuryStatus = "Unknown"
)

var injuryAliases = map[string]InjuryStatus{
	"HEALTHY":                      InjuryHealthy,
	"ACTIVE":                       InjuryHealthy,
	"PROBABLE":                     InjuryHealthy,
	"NORMAL":                       InjuryHealthy,
	"QUESTIONABLE":                 InjuryQuestionable,
	"Q":                            InjuryQuestionable,
	"DOUBTFUL":                     InjuryDoubtful,
	"D":                            InjuryDoubtful,
	"OUT":                          InjuryOut,
	"O":                            InjuryOut,
	"INACTIVE":                     InjuryOut,
	"IR":                           InjuryIR,
	"INJURED_RESERVE":              InjuryIR,
	"PUP":                          InjuryPUP,
	"PHYSICALLY_UNABLE_TO_PERFORM": InjuryPUP,
	"SUSPENDED":                    InjurySuspended,
	"SUSPENSION":                   InjurySuspended,
}

// ParseInjuryStatus maps provider spellings onto InjuryStatus.
// Anything unrecognized, including an empty string, is Unknown.
func ParseInjuryStatus(raw string) InjuryStatus {
	key := strings.ToUpper(strings.TrimSpace(raw))
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)
	if status, ok := injuryAliases[key]; ok {
		return status
	}
	return InjuryUnknown
}

// WeeklyStat is one recorded game.
type WeeklyStat struct {
	FantasyPoints float64 `json:"fantasy_points"`
	Opponent      string  `json:"opponent,omitempty"`
	Team          string  `json:"team,omitempty"`
}

// Season holds everything known about one player-year.
type Season struct {
	WeeklyStats       map[int]WeeklyStat `json:"weekly_stats,omitempty"`
	Totals            map[string]float64 `json:"totals,omitempty"`
	Projections       map[string]float64 `json:"projections,omitempty"`
	WeeklyProjections map[int]float64    `json:"weekly_projections,omitempty"`
}

// SeasonPointsKey is the projection key holding total fantasy points.
const SeasonPointsKey = "MISC_FPTS"

// Record is the persisted per-player document.
type Record struct {
	ID           string         `json:"player_id"`
	Name         string         `json:"player_name"`
	Position     Position       `json:"position"`
	Team         string         `json:"team,omitempty"`
	InjuryStatus InjuryStatus   `json:"injury_status,omitempty"`
	PercentOwned float64        `json:"percent_owned"`
	Seasons      map[int]Season `json:"seasons,omitempty"`
}

func (r Record) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("player record id is required")
	}
	if r.Name == "" {
		return fmt.Errorf("player record name is required")
	}
	if _, ok := ParsePosition(string(r.Position)); !ok {
		return fmt.Errorf("invalid player position: %s", r.Position)
	}
	if r.PercentOwned < 0 || r.PercentOwned > 100 {
		return fmt.Errorf("percent owned out of range: %v", r.PercentOwned)
	}
	for year, season := range r.Seasons {
		for week, stat := range season.WeeklyStats {
			if stat.FantasyPoints < 0 {
				return fmt.Errorf("negative fantasy points for season %d week %d", year, week)
			}
		}
	}
	return nil
}

// Status returns the record's injury status, treating an unset value as Healthy.
func (r Record) Status() InjuryStatus {
	if r.InjuryStatus == "" {
		return InjuryHealthy
	}
	return r.InjuryStatus
}

// SeasonProjectionTotal returns the projected season points for year, 0 when absent.
func (r Record) SeasonProjectionTotal(year int) float64 {
	return r.Seasons[year].Projections[SeasonPointsKey]
}

// Weeks returns the recorded weeks of year in ascending order.
func (r Record) Weeks(year int) []int {
	stats := r.Seasons[year].WeeklyStats
	weeks := make([]int, 0, len(stats))
	for week := range stats {
		weeks = append(weeks, week)
	}
	sort.Ints(weeks)
	return weeks
}

// WeeklyPoints returns recorded fantasy points of year ordered by week.
func (r Record) WeeklyPoints(year int) []float64 {
	stats := r.Seasons[year].WeeklyStats
	weeks := r.Weeks(year)
	out := make([]float64, 0, len(weeks))
	for _, week := range weeks {
		out = append(out, stats[week].FantasyPoints)
	}
	return out
}

// RecentAverage averages the last n recorded weeks of year, rounded to 2 dp.
func (r Record) RecentAverage(year, n int) float64 {
	points := r.WeeklyPoints(year)
	if len(points) == 0 || n <= 0 {
		return 0
	}
	if len(points) > n {
		points = points[len(points)-n:]
	}
	return round2(mean(points))
}

// OpponentAverage averages points scored against opponent in year.
func (r Record) OpponentAverage(year int, opponent string) (float64, bool) {
	opponent = strings.ToUpper(strings.TrimSpace(opponent))
	if opponent == "" {
		return 0, false
	}

	var points []float64
	for _, stat := range r.Seasons[year].WeeklyStats {
		if strings.ToUpper(strings.TrimSpace(stat.Opponent)) == opponent {
			points = append(points, stat.FantasyPoints)
		}
	}
	if len(points) == 0 {
		return 0, false
	}
	return round2(mean(points)), true
}

// WeeklyProjection returns the projection for week, see ProjectionForWeek.
func (r Record) WeeklyProjection(year, week int) float64 {
	return ProjectionForWeek(r.Seasons[year].WeeklyProjections, week)
}

// ProjectionForWeek returns projections[week], falling back to the closest
// available week (earlier week wins a tie) and to 0 when there are none.
func ProjectionForWeek(projections map[int]float64, week int) float64 {
	if len(projections) == 0 {
		return 0
	}
	if value, ok := projections[week]; ok {
		return value
	}

	bestWeek, bestDist := 0, -1
	for w := range projections {
		dist := w - week
		if dist < 0 {
			dist = -dist
		}
		if bestDist < 0 || dist < bestDist || (dist == bestDist && w < bestWeek) {
			bestWeek, bestDist = w, dist
		}
	}
	return projections[bestWeek]
}

// RosterPlayer is one entry of a fantasy roster as supplied by the league provider.
type RosterPlayer struct {
	Name         string `json:"name" validate:"required"`
	Position     string `json:"position" validate:"required"`
	Team         string `json:"team,omitempty"`
	PlayerID     string `json:"player_id,omitempty"`
	InjuryStatus string `json:"injury_status,omitempty"`
}

// Status returns the canonical injury status, Healthy when none was supplied.
func (p RosterPlayer) Status() InjuryStatus {
	if strings.TrimSpace(p.InjuryStatus) == "" {
		return InjuryHealthy
	}
	return ParseInjuryStatus(p.InjuryStatus)
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
