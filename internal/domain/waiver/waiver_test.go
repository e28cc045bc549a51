package waiver

import (
	"strings"
	"testing"

	"github.com/riskibarqy/fantasy-coach/internal/domain/player"
	"github.com/riskibarqy/fantasy-coach/internal/domain/roster"
)

func TestUpsideScoreAndTargetType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		projected  float64
		ownership  float64
		season     float64
		historical float64
		wantScore  float64
		wantType   TargetType
	}{
		{name: "depth option despite low ownership", projected: 12, ownership: 8, season: 204, historical: 10, wantScore: 8.48, wantType: TargetDepth},
		{name: "deep sleeper", projected: 30, ownership: 4, season: 340, historical: 20, wantScore: 18.29, wantType: TargetDeepSleeper},
		{name: "sleeper", projected: 25, ownership: 20, season: 170, wantScore: 12.24, wantType: TargetSleeper},
		{name: "just short of solid add", projected: 24, ownership: 40, wantScore: 9.78, wantType: TargetDepth},
		{name: "solid add without season or history", projected: 28, ownership: 44, wantScore: 11.37, wantType: TargetSolidAdd},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			score := UpsideScore(tt.projected, tt.ownership, tt.season, tt.historical)
			if score != tt.wantScore {
				t.Fatalf("UpsideScore() = %v, want %v", score, tt.wantScore)
			}
			if got := ClassifyTarget(tt.ownership, score); got != tt.wantType {
				t.Fatalf("ClassifyTarget() = %s, want %s", got, tt.wantType)
			}
		})
	}
}

func TestReplacementStrength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		candidate, starter, ownership, historical float64
		want                                      Strength
	}{
		{candidate: 15, starter: 9, ownership: 30, historical: 9, want: StrengthStrong},
		{candidate: 15, starter: 9, ownership: 30, historical: 8, want: StrengthModerate},
		{candidate: 12, starter: 9, ownership: 74, want: StrengthModerate},
		{candidate: 12, starter: 9, ownership: 80, want: StrengthWeak},
		{candidate: 10, starter: 9, ownership: 10, want: StrengthWeak},
		{candidate: 9.5, starter: 9, ownership: 10, want: StrengthNotRecommended},
	}

	for _, tt := range tests {
		if got := ReplacementStrength(tt.candidate, tt.starter, tt.ownership, tt.historical); got != tt.want {
			t.Fatalf("ReplacementStrength(%v, %v, %v, %v) = %s, want %s", tt.candidate, tt.starter, tt.ownership, tt.historical, got, tt.want)
		}
	}
}

func TestPositionMinPoints(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pos      player.Position
		priority roster.Priority
		want     float64
	}{
		{pos: player.PositionQB, priority: roster.PriorityCritical, want: 7.2},
		{pos: player.PositionRB, priority: roster.PriorityHigh, want: 6.4},
		{pos: player.PositionTE, priority: roster.PriorityMedium, want: 8},
		{pos: player.PositionK, priority: roster.PriorityLow, want: 4.8},
		{pos: player.PositionDST, priority: roster.PriorityNone, want: 5},
		{pos: player.Position("LB"), priority: roster.PriorityMedium, want: 6},
	}

	for _, tt := range tests {
		if got := PositionMinPoints(tt.pos, tt.priority); got != tt.want {
			t.Fatalf("PositionMinPoints(%s, %s) = %v, want %v", tt.pos, tt.priority, got, tt.want)
		}
	}
}

func TestRosterValueAndSmartStrength(t *testing.T) {
	t.Parallel()

	if got := RosterValue(10, roster.PriorityCritical, 0); got != 30 {
		t.Fatalf("expected desperate critical value 30, got %v", got)
	}
	if got := RosterValue(10, roster.PriorityLow, 3); got != 7 {
		t.Fatalf("expected low value 7, got %v", got)
	}
	if got := RosterValue(7.4, roster.PriorityHigh, 2); got != 11.1 {
		t.Fatalf("expected high value 11.1, got %v", got)
	}

	tests := []struct {
		priority  roster.Priority
		projected float64
		ownership float64
		want      Strength
	}{
		{priority: roster.PriorityCritical, projected: 5, want: StrengthMustAdd},
		{priority: roster.PriorityCritical, projected: 4, want: StrengthConsider},
		{priority: roster.PriorityHigh, projected: 6, want: StrengthStronglyRecommended},
		{priority: roster.PriorityMedium, projected: 8, ownership: 50, want: StrengthRecommended},
		{priority: roster.PriorityMedium, projected: 9, ownership: 95, want: StrengthConsider},
		{priority: roster.PriorityLow, projected: 10, want: StrengthGoodValue},
	}
	for _, tt := range tests {
		if got := SmartStrength(tt.priority, tt.projected, tt.ownership); got != tt.want {
			t.Fatalf("SmartStrength(%s, %v, %v) = %s, want %s", tt.priority, tt.projected, tt.ownership, got, tt.want)
		}
	}
}

func TestFilterAvailable(t *testing.T) {
	t.Parallel()

	pool := []Player{
		{Name: "Rostered Guy", Position: player.PositionWR, InjuryStatus: player.InjuryHealthy, WeeklyProjections: map[int]float64{5: 20}},
		{Name: "Low Floor", Position: player.PositionWR, InjuryStatus: player.InjuryHealthy, WeeklyProjections: map[int]float64{5: 2}},
		{Name: "Hurt", Position: player.PositionWR, InjuryStatus: player.InjuryQuestionable, WeeklyProjections: map[int]float64{5: 15}},
		{Name: "Tight End", Position: player.PositionTE, InjuryStatus: player.InjuryHealthy, WeeklyProjections: map[int]float64{5: 15}},
		{Name: "Closest Week", Position: player.PositionWR, InjuryStatus: player.InjuryHealthy, WeeklyProjections: map[int]float64{4: 9}},
		{Name: "Exact Week", Position: player.PositionWR, InjuryStatus: player.InjuryHealthy, WeeklyProjections: map[int]float64{5: 11, 6: 1}},
		{Name: "Another", Position: player.PositionWR, InjuryStatus: player.InjuryHealthy, WeeklyProjections: map[int]float64{5: 9}},
	}
	rostered := map[string]struct{}{"rostered guy": {}}

	got := FilterAvailable(pool, player.PositionWR, 5, 3, rostered, 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 players, got %d", len(got))
	}
	if got[0].Name != "Exact Week" || got[0].Projected != 11 {
		t.Fatalf("unexpected first player %+v", got[0])
	}
	if got[1].Name != "Closest Week" || got[1].Projected != 9 {
		t.Fatalf("expected stable order on tie, got %+v", got[1])
	}

	if all := FilterAvailable(pool, player.PositionWR, 5, 3, rostered, 0); len(all) != 3 {
		t.Fatalf("expected unlimited result of 3, got %d", len(all))
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	if got := Summarize(nil, nil); !strings.HasPrefix(got, "Roster analysis shows no critical needs") {
		t.Fatalf("unexpected empty summary %q", got)
	}

	recs := []Recommendation{
		{
			Position: player.PositionRB,
			Priority: roster.PriorityCritical,
			Options:  []Option{{PlayerName: "Jaylen Wright", ProjectedPoints: 9.4, OwnershipPct: 12.3}},
		},
		{Position: player.PositionTE, Priority: roster.PriorityHigh},
	}
	got := Summarize(recs, []player.Position{player.PositionK})
	want := "CRITICAL NEEDS: RB - Immediate action required | HIGH PRIORITY: TE - Strongly consider adding | " +
		"AVOID: K - At roster maximums | TOP TARGET: Jaylen Wright (RB) - 9.4 pts, 12.3% owned"
	if got != want {
		t.Fatalf("Summarize() = %q\nwant %q", got, want)
	}
}
