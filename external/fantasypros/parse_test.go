package fantasypros

import (
	"testing"

	"github.com/riskibarqy/fantasy-coach/internal/domain/player"
)

const qbPage = `<html><body>
<table id="data">
<thead>
<tr><th></th><th colspan="2">PASSING</th><th>MISC</th></tr>
<tr><th>Player</th><th>YDS</th><th>TDS</th><th>FPTS</th></tr>
</thead>
<tbody>
<tr><td class="player-label"><a class="player-name" href="/nfl/players/josh-allen.php">Josh Allen</a> BUF <a class="fp-player-news">news</a></td><td>1,245.5</td><td>2.1</td><td>23.4</td></tr>
<tr><td>Kenneth Walker III</td><td>0</td><td>0</td><td>-</td></tr>
<tr><td>Bo Nix (DEN)</td><td>240</td><td>1.5</td><td>17.9</td></tr>
</tbody>
</table>
</body></html>`

const dstPage = `<table class="table">
<thead><tr><th>Player</th><th>Opp</th><th>SACK</th><th>Fantasy Points</th></tr></thead>
<tbody>
<tr><td><a href="#">Philadelphia Eagles</a></td><td>@DAL</td><td>3</td><td>8.4</td></tr>
<tr><td><a href="#">Denver Broncos</a></td><td>vs. LV</td><td>2</td><td>7.8</td></tr>
</tbody>
</table>`

const injuryPage = `<table id="data">
<thead><tr><th>Player</th><th>Team</th><th>Pos</th><th>Injury</th><th>Status</th></tr></thead>
<tbody>
<tr><td><a class="player-name">Puka Nacua</a></td><td>LAR</td><td>WR</td><td>Ankle</td><td>Out</td></tr>
<tr><td><a class="player-name">Ja'Marr Chase</a></td><td>CIN</td><td>WR</td><td>Hip</td><td>Probable</td></tr>
<tr><td><a class="player-name">Mystery Man</a></td><td>FA</td><td>WR</td><td>-</td><td>Day-to-day</td></tr>
<tr><td>Short</td><td>row</td></tr>
</tbody>
</table>`

func TestParseProjectionTable(t *testing.T) {
	t.Parallel()

	rows, err := parseProjectionTable([]byte(qbPage), player.PositionQB)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	tests := []struct {
		name      string
		team      string
		projected float64
	}{
		{name: "Josh Allen", team: "BUF", projected: 23.4},
		{name: "Kenneth Walker III", team: "", projected: 0},
		{name: "Bo Nix", team: "DEN", projected: 17.9},
	}
	for i, tt := range tests {
		got := rows[i]
		if got.Name != tt.name || got.Team != tt.team || got.Projected != tt.projected || got.Position != player.PositionQB {
			t.Fatalf("row %d: expected %+v, got %+v", i, tt, got)
		}
	}
}

func TestParseProjectionTable_OpponentAndFallbackPointsColumn(t *testing.T) {
	t.Parallel()

	rows, err := parseProjectionTable([]byte(dstPage), player.PositionDST)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Name != "Philadelphia Eagles" || rows[0].Opponent != "DAL" || rows[0].Projected != 8.4 {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
	if rows[1].Opponent != "LV" {
		t.Fatalf("expected vs. prefix stripped, got %q", rows[1].Opponent)
	}
}

func TestParseProjectionTable_NoTable(t *testing.T) {
	t.Parallel()

	if _, err := parseProjectionTable([]byte("<p>maintenance</p>"), player.PositionQB); err == nil {
		t.Fatalf("expected error for page without table")
	}
}

func TestParseInjuryReport(t *testing.T) {
	t.Parallel()

	report, err := parseInjuryReport([]byte(injuryPage))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(report) != 2 {
		t.Fatalf("expected 2 entries, got %v", report)
	}
	if report[player.JoinKey("Puka Nacua")] != player.InjuryOut {
		t.Fatalf("expected Nacua out, got %v", report)
	}
	if report[player.JoinKey("Ja'Marr Chase")] != player.InjuryHealthy {
		t.Fatalf("expected probable to map to healthy, got %v", report)
	}
}
