package roster

import (
	"strings"
	"testing"

	"github.com/riskibarqy/fantasy-coach/internal/domain/player"
)

func TestAnalyze(t *testing.T) {
	t.Parallel()

	players := []player.RosterPlayer{
		{Name: "QB One", Position: "QB", InjuryStatus: "Out"},
		{Name: "RB One", Position: "RB"},
		{Name: "RB Two", Position: "RB", InjuryStatus: "Questionable"},
		{Name: "RB Three", Position: "RB"},
		{Name: "RB Four", Position: "RB", InjuryStatus: "Questionable"},
		{Name: "WR One", Position: "WR", InjuryStatus: "ACTIVE"},
		{Name: "WR Two", Position: "WR"},
		{Name: "WR Three", Position: "WR"},
		{Name: "WR Four", Position: "WR"},
		{Name: "TE One", Position: "TE"},
		{Name: "TE Two", Position: "TE"},
		{Name: "TE Three", Position: "TE"},
		{Name: "K One", Position: "K"},
		{Name: "DST One", Position: "DST"},
	}

	got := Analyze(players, DefaultRequirements())
	if got.RosterSize != len(players) {
		t.Fatalf("expected roster size %d, got %d", len(players), got.RosterSize)
	}

	want := map[player.Position]Priority{
		player.PositionQB:  PriorityCritical,
		player.PositionRB:  PriorityMedium,
		player.PositionWR:  PriorityLow,
		player.PositionTE:  PriorityNone,
		player.PositionK:   PriorityLow,
		player.PositionDST: PriorityLow,
	}
	for pos, priority := range want {
		a, ok := got.Position(pos)
		if !ok {
			t.Fatalf("missing analysis for %s", pos)
		}
		if a.Priority != priority {
			t.Fatalf("%s: expected %s, got %s (%s)", pos, priority, a.Priority, a.Reason)
		}
	}

	qb, _ := got.Position(player.PositionQB)
	if qb.Injured != 1 || qb.Reason != "Only 0 healthy, need 1 starters" {
		t.Fatalf("unexpected QB analysis %+v", qb)
	}
	if qb.Recommendation() != "MUST ADD - Only 0 healthy players" {
		t.Fatalf("unexpected QB recommendation %q", qb.Recommendation())
	}

	rb, _ := got.Position(player.PositionRB)
	if rb.Healthy != 2 || rb.Questionable != 2 || rb.EffectiveNeed != 4 {
		t.Fatalf("unexpected RB analysis %+v", rb)
	}

	te, _ := got.Position(player.PositionTE)
	if te.Recommendation() != "AVOID - At roster limit with 3 players" {
		t.Fatalf("unexpected TE recommendation %q", te.Recommendation())
	}

	priorities := got.WaiverPriorities()
	if len(priorities) != 2 || priorities[0].Position != player.PositionQB || priorities[1].Position != player.PositionRB {
		t.Fatalf("unexpected waiver priorities %+v", priorities)
	}

	avoid := got.PositionsToAvoid()
	if len(avoid) != 1 || avoid[0] != player.PositionTE {
		t.Fatalf("unexpected avoid list %v", avoid)
	}

	summary := got.Summary()
	for _, part := range []string{
		"WAIVER PRIORITIES:",
		"- QB: CRITICAL priority - Only 0 healthy, need 1 starters",
		"AVOID: TE (at roster limits)",
		"IMMEDIATE ACTION NEEDED: QB",
	} {
		if !strings.Contains(summary, part) {
			t.Fatalf("summary %q missing %q", summary, part)
		}
	}
}

func TestAnalyzeHighPriority(t *testing.T) {
	t.Parallel()

	players := []player.RosterPlayer{
		{Name: "WR One", Position: "WR"},
		{Name: "WR Two", Position: "WR"},
		{Name: "WR Three", Position: "WR", InjuryStatus: "IR"},
	}
	got := Analyze(players, DefaultRequirements())
	wr, _ := got.Position(player.PositionWR)
	if wr.Priority != PriorityHigh || wr.Reason != "Need depth for flex/OP eligibility" {
		t.Fatalf("unexpected WR analysis %+v", wr)
	}

	// Equal priority sorts by fewest healthy players.
	priorities := got.Priorities()
	if priorities[0].Priority != PriorityCritical || priorities[0].Healthy != 0 {
		t.Fatalf("unexpected ordering %+v", priorities[0])
	}
}

func TestInjuryReport(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		players []player.RosterPlayer
		want    string
	}{
		{
			name:    "healthy roster",
			players: []player.RosterPlayer{{Name: "A", Position: "QB"}},
			want:    "No injury concerns. Proceed with normal optimization.",
		},
		{
			name: "critical injury",
			players: []player.RosterPlayer{
				{Name: "A", Position: "RB", InjuryStatus: "Out"},
				{Name: "B", Position: "RB", InjuryStatus: "Doubtful"},
			},
			want: "AVOID: A should not be started due to critical injury status.",
		},
		{
			name: "doubtful only",
			players: []player.RosterPlayer{
				{Name: "A", Position: "RB", InjuryStatus: "D"},
				{Name: "B", Position: "RB"},
			},
			want: "CAUTION: A are high-risk due to injury. Consider healthy alternatives.",
		},
		{
			name:    "questionable only",
			players: []player.RosterPlayer{{Name: "A", Position: "WR", InjuryStatus: "Q"}},
			want:    "Monitor questionable players closely. Consider healthy alternatives if available.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := InjuryReport(tt.players).Recommendation; got != tt.want {
				t.Fatalf("Recommendation = %q, want %q", got, tt.want)
			}
		})
	}

	report := InjuryReport([]player.RosterPlayer{
		{Name: "A", Position: "RB", InjuryStatus: "Out"},
		{Name: "B", Position: "RB"},
		{Name: "C", Position: "WR"},
	})
	if report.TotalInjured != 1 || len(report.HealthyAlternatives) != 1 || report.HealthyAlternatives["RB"][0] != "B" {
		t.Fatalf("unexpected report %+v", report)
	}
	if report.InjuredPlayers[0].Severity != SeverityCritical {
		t.Fatalf("expected critical severity, got %s", report.InjuredPlayers[0].Severity)
	}
}

func TestInjurySeverity(t *testing.T) {
	t.Parallel()

	for status, want := range map[player.InjuryStatus]Severity{
		player.InjuryHealthy:      SeverityNone,
		player.InjuryQuestionable: SeverityLow,
		player.InjuryDoubtful:     SeverityHigh,
		player.InjuryPUP:          SeverityCritical,
		player.InjurySuspended:    SeverityCritical,
		player.InjuryUnknown:      SeverityUnknown,
	} {
		if got := InjurySeverity(status); got != want {
			t.Fatalf("InjurySeverity(%s) = %s, want %s", status, got, want)
		}
	}
}
