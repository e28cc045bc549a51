package usecase

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/riskibarqy/fantasy-coach/internal/domain/player"
	"github.com/riskibarqy/fantasy-coach/internal/domain/scoring"
)

const (
	defaultPerformanceWeeks = 4
	maxCompareConfidence    = 95.0
)

// CompareMetric selects the value players are ranked by.
type CompareMetric string

const (
	MetricProjection CompareMetric = "projection"
	MetricSeason     CompareMetric = "season"
	MetricRecent     CompareMetric = "recent"
)

type WeeklyPerformance struct {
	Week          int     `json:"week"`
	FantasyPoints float64 `json:"fantasy_points"`
	Opponent      string  `json:"opponent,omitempty"`
	Team          string  `json:"team,omitempty"`
}

type PlayerPerformance struct {
	PlayerName       string              `json:"player_name"`
	Position         player.Position     `json:"position"`
	Team             string              `json:"team,omitempty"`
	InjuryStatus     player.InjuryStatus `json:"injury_status"`
	Season           int                 `json:"season"`
	Games            int                 `json:"season_games"`
	SeasonAverage    float64             `json:"season_average"`
	RecentAverage    float64             `json:"recent_average"`
	WeeksAnalyzed    int                 `json:"weeks_analyzed"`
	WeeklyBreakdown  []WeeklyPerformance `json:"weekly_breakdown"`
	Consistency      scoring.Consistency `json:"consistency"`
	SeasonProjection float64             `json:"season_projection"`
	WeekProjection   float64             `json:"week_projection"`
}

type CompareInput struct {
	Names  []string
	Week   int
	Metric CompareMetric
}

type ComparedPlayer struct {
	PlayerName     string  `json:"player_name"`
	Position       string  `json:"position,omitempty"`
	Found          bool    `json:"found"`
	WeekProjection float64 `json:"week_projection"`
	SeasonAverage  float64 `json:"season_average"`
	RecentAverage  float64 `json:"recent_average"`
	Trend          string  `json:"trend"`
	Value          float64 `json:"value"`
}

type Comparison struct {
	Week              int              `json:"week"`
	Metric            CompareMetric    `json:"metric"`
	Players           []ComparedPlayer `json:"players"`
	RecommendedPlayer string           `json:"recommended_player"`
	ConfidenceLevel   float64          `json:"confidence_level"`
	Reasoning         string           `json:"reasoning"`
}

// PlayerInsightService reports on stored player history.
type PlayerInsightService struct {
	players       player.Repository
	season        int
	historySeason int
	currentWeek   int
}

func NewPlayerInsightService(players player.Repository, season, historySeason, currentWeek int) *PlayerInsightService {
	if currentWeek < 1 {
		currentWeek = 1
	}
	return &PlayerInsightService{
		players:       players,
		season:        season,
		historySeason: historySeason,
		currentWeek:   currentWeek,
	}
}

// Performance summarizes the most recent season with recorded games,
// preferring the current season over history.
func (s *PlayerInsightService) Performance(ctx context.Context, name string, weeks int) (PlayerPerformance, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerInsightService.Performance")
	defer span.End()

	if weeks <= 0 {
		weeks = defaultPerformanceWeeks
	}
	rec, err := s.find(ctx, name)
	if err != nil {
		return PlayerPerformance{}, err
	}

	season := s.season
	if len(rec.Weeks(season)) == 0 {
		season = s.historySeason
	}
	points := rec.WeeklyPoints(season)
	recentWeeks := rec.Weeks(season)
	if len(recentWeeks) > weeks {
		recentWeeks = recentWeeks[len(recentWeeks)-weeks:]
	}

	breakdown := make([]WeeklyPerformance, 0, len(recentWeeks))
	for _, w := range recentWeeks {
		stat := rec.Seasons[season].WeeklyStats[w]
		breakdown = append(breakdown, WeeklyPerformance{
			Week:          w,
			FantasyPoints: stat.FantasyPoints,
			Opponent:      stat.Opponent,
			Team:          stat.Team,
		})
	}

	consistency := scoring.MeasureConsistency(points)
	return PlayerPerformance{
		PlayerName:       rec.Name,
		Position:         rec.Position,
		Team:             rec.Team,
		InjuryStatus:     rec.Status(),
		Season:           season,
		Games:            len(points),
		SeasonAverage:    consistency.Mean,
		RecentAverage:    rec.RecentAverage(season, weeks),
		WeeksAnalyzed:    len(breakdown),
		WeeklyBreakdown:  breakdown,
		Consistency:      consistency,
		SeasonProjection: rec.SeasonProjectionTotal(s.season),
		WeekProjection:   rec.WeeklyProjection(s.season, s.currentWeek),
	}, nil
}

// Compare ranks two or more players by metric for a start/sit decision.
// Unknown names stay in the output with Found=false and zero values.
func (s *PlayerInsightService) Compare(ctx context.Context, input CompareInput) (Comparison, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerInsightService.Compare")
	defer span.End()

	names := make([]string, 0, len(input.Names))
	for _, n := range input.Names {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	if len(names) < 2 {
		return Comparison{}, fmt.Errorf("%w: at least two player names are required", ErrInvalidInput)
	}
	if s.players == nil {
		return Comparison{}, fmt.Errorf("%w: player store is not configured", ErrDependencyUnavailable)
	}

	metric := CompareMetric(strings.ToLower(strings.TrimSpace(string(input.Metric))))
	switch metric {
	case "":
		metric = MetricProjection
	case MetricProjection, MetricSeason, MetricRecent:
	default:
		return Comparison{}, fmt.Errorf("%w: unknown metric %q", ErrInvalidInput, input.Metric)
	}

	week := input.Week
	if week == 0 {
		week = s.currentWeek
	}
	if week < 1 || week > 18 {
		return Comparison{}, fmt.Errorf("%w: week must be between 1 and 18", ErrInvalidInput)
	}

	out := Comparison{Week: week, Metric: metric, Players: make([]ComparedPlayer, 0, len(names))}
	for _, name := range names {
		rec, ok, err := s.players.GetByName(ctx, name)
		if err != nil {
			return Comparison{}, fmt.Errorf("get player %s: %w", name, err)
		}
		cp := ComparedPlayer{PlayerName: name, Found: ok, Trend: scoring.TrendInsufficient}
		if ok {
			season := s.season
			if len(rec.Weeks(season)) == 0 {
				season = s.historySeason
			}
			points := rec.WeeklyPoints(season)
			cp.PlayerName = rec.Name
			cp.Position = string(rec.Position)
			cp.WeekProjection = rec.WeeklyProjection(s.season, week)
			cp.SeasonAverage = scoring.MeasureConsistency(points).Mean
			cp.RecentAverage = rec.RecentAverage(season, defaultPerformanceWeeks)
			cp.Trend = scoring.Trend(points)
		}
		cp.Value = cp.metricValue(metric)
		out.Players = append(out.Players, cp)
	}

	best, runnerUp := 0, -1
	for i := 1; i < len(out.Players); i++ {
		if out.Players[i].Value > out.Players[best].Value {
			best = i
		}
	}
	for i := range out.Players {
		if i == best {
			continue
		}
		if runnerUp < 0 || out.Players[i].Value > out.Players[runnerUp].Value {
			runnerUp = i
		}
	}

	top, second := out.Players[best].Value, out.Players[runnerUp].Value
	out.RecommendedPlayer = out.Players[best].PlayerName
	out.ConfidenceLevel = scoring.Round1(math.Min((top-second)/math.Max(top, 1)*100, maxCompareConfidence))
	out.Reasoning = fmt.Sprintf("Based on %s for week %d", metricLabel(metric), week)
	return out, nil
}

func (p ComparedPlayer) metricValue(metric CompareMetric) float64 {
	switch metric {
	case MetricSeason:
		return p.SeasonAverage
	case MetricRecent:
		return p.RecentAverage
	default:
		return p.WeekProjection
	}
}

func metricLabel(metric CompareMetric) string {
	switch metric {
	case MetricSeason:
		return "season average"
	case MetricRecent:
		return "recent form"
	default:
		return "weekly projections"
	}
}

func (s *PlayerInsightService) find(ctx context.Context, name string) (player.Record, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return player.Record{}, fmt.Errorf("%w: player name is required", ErrInvalidInput)
	}
	if s.players == nil {
		return player.Record{}, fmt.Errorf("%w: player store is not configured", ErrDependencyUnavailable)
	}

	rec, ok, err := s.players.GetByName(ctx, name)
	if err != nil {
		return player.Record{}, fmt.Errorf("get player by name: %w", err)
	}
	if !ok {
		return player.Record{}, fmt.Errorf("%w: player=%s", ErrNotFound, name)
	}
	return rec, nil
}
