package fantasypros

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fantasy-coach/internal/domain/player"
	"github.com/riskibarqy/fantasy-coach/internal/domain/projection"
)

var (
	nameWithTeamRegex = regexp.MustCompile(`^(.+?)\s+\(([A-Z]{2,3})\)`)
	teamTokenRegex    = regexp.MustCompile(`^[A-Z]{2,3}$`)
	parentheticalRe   = regexp.MustCompile(`\s*\([^)]*\)`)
)

var errNoTable = crerr.New("no data table in page")

type projectionHeader struct {
	player int
	opp    int
	points int
}

func parseProjectionTable(body []byte, pos player.Position) ([]projection.Row, error) {
	table, err := findTable(body)
	if err != nil {
		return nil, err
	}

	h := mapProjectionHeader(table)
	rows := make([]projection.Row, 0, 64)
	table.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("td,th")
		if cells.Length() <= h.player {
			return
		}

		name, team := playerCell(cells.Eq(h.player))
		if name == "" {
			return
		}

		points := h.points
		if points < 0 {
			points = cells.Length() - 1
		}
		row := projection.Row{
			Name:      name,
			Team:      team,
			Position:  pos,
			Projected: parseNumber(cells.Eq(points).Text()),
		}
		if h.opp >= 0 && h.opp < cells.Length() {
			row.Opponent = normalizeOpponent(cells.Eq(h.opp).Text())
		}
		rows = append(rows, row)
	})
	return rows, nil
}

// mapProjectionHeader reads the last header row; stat pages carry a
// category row above it.
func mapProjectionHeader(table *goquery.Selection) projectionHeader {
	h := projectionHeader{player: 0, opp: -1, points: -1}
	fallback := -1
	table.Find("thead tr").Last().Find("th,td").Each(func(i int, cell *goquery.Selection) {
		txt := normHeader(cell.Text())
		switch {
		case txt == "player":
			h.player = i
		case txt == "opp" || txt == "opponent":
			h.opp = i
		case txt == "fpts":
			h.points = i
		case fallback < 0 && (strings.Contains(txt, "fpts") || strings.Contains(txt, "fantasy") || strings.Contains(txt, "points")):
			fallback = i
		}
	})
	if h.points < 0 {
		h.points = fallback
	}
	return h
}

var reportedStatuses = map[string]struct{}{
	"out":          {},
	"doubtful":     {},
	"questionable": {},
	"probable":     {},
	"ir":           {},
	"suspended":    {},
	"pup":          {},
}

func parseInjuryReport(body []byte) (map[string]player.InjuryStatus, error) {
	table, err := findTable(body)
	if err != nil {
		return nil, err
	}

	statusCol := -1
	table.Find("thead tr").Last().Find("th,td").Each(func(i int, cell *goquery.Selection) {
		if normHeader(cell.Text()) == "status" {
			statusCol = i
		}
	})

	out := make(map[string]player.InjuryStatus)
	table.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("td")
		if cells.Length() < 3 {
			return
		}
		name, _ := playerCell(cells.First())
		key := player.JoinKey(name)
		if key == "" {
			return
		}

		raw := ""
		if statusCol >= 0 && statusCol < cells.Length() {
			raw = strings.TrimSpace(cells.Eq(statusCol).Text())
		} else {
			for i := cells.Length() - 1; i >= 0 && i >= cells.Length()-3; i-- {
				txt := strings.TrimSpace(cells.Eq(i).Text())
				if _, ok := reportedStatuses[strings.ToLower(txt)]; ok {
					raw = txt
					break
				}
			}
		}

		status := player.InjuryHealthy
		if raw != "" {
			status = player.ParseInjuryStatus(raw)
		}
		if status == player.InjuryUnknown {
			return
		}
		out[key] = status
	})
	return out, nil
}

func findTable(body []byte) (*goquery.Selection, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, crerr.Wrap(err, "parse html")
	}
	table := doc.Find("table#data").First()
	if table.Length() == 0 {
		table = doc.Find("table.table").First()
	}
	if table.Length() == 0 {
		table = doc.Find("table").First()
	}
	if table.Length() == 0 {
		return nil, errNoTable
	}
	return table, nil
}

// playerCell extracts the player name and team from "Josh Allen (BUF)" or a
// linked name followed by the team abbreviation.
func playerCell(cell *goquery.Selection) (string, string) {
	text := strings.Join(strings.Fields(cell.Text()), " ")
	if m := nameWithTeamRegex.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1]), m[2]
	}

	name := ""
	if link := cell.Find("a.player-name"); link.Length() > 0 {
		name = strings.TrimSpace(link.First().Text())
	} else if link := cell.Find("a"); link.Length() > 0 {
		name = strings.TrimSpace(link.First().Text())
	}

	rest := text
	if name != "" {
		rest = strings.TrimSpace(strings.TrimPrefix(text, name))
	}
	team := ""
	if fields := strings.Fields(rest); len(fields) > 0 && isTeamToken(fields[0]) {
		team = fields[0]
	}

	if name == "" {
		name = parentheticalRe.ReplaceAllString(text, "")
		if fields := strings.Fields(name); len(fields) > 1 && isTeamToken(fields[len(fields)-1]) {
			team = fields[len(fields)-1]
			name = strings.Join(fields[:len(fields)-1], " ")
		}
	}
	return strings.TrimSpace(name), team
}

func isTeamToken(s string) bool {
	switch s {
	case "II", "III", "IV":
		return false
	}
	return teamTokenRegex.MatchString(s)
}

func normHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if i := strings.IndexByte(s, '('); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	return strings.ReplaceAll(s, ".", "")
}

func normalizeOpponent(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "@")
	s = strings.TrimPrefix(strings.TrimPrefix(s, "vs."), "vs")
	return strings.ToUpper(strings.TrimSpace(s))
}

func parseNumber(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
