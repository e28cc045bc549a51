package memory

import (
	"github.com/riskibarqy/fantasy-coach/internal/domain/player"
	"github.com/riskibarqy/fantasy-coach/internal/domain/roster"
	"github.com/riskibarqy/fantasy-coach/internal/domain/waiver"
)

const (
	SeedSeason        = 2025
	SeedHistorySeason = 2024
)

type seedPlayer struct {
	name     string
	pos      player.Position
	team     string
	owned    float64
	total    float64
	history  []float64
	opponent []string
	weekly   map[int]float64
}

var seedPlayers = []seedPlayer{
	{name: "Josh Allen", pos: player.PositionQB, team: "BUF", owned: 99.8, total: 385.4,
		history: []float64{24.6, 31.2, 18.9, 27.4}, opponent: []string{"DET", "NE", "NYJ", "KC"},
		weekly: map[int]float64{1: 23.8, 2: 24.1, 3: 22.9}},
	{name: "Jalen Hurts", pos: player.PositionQB, team: "PHI", owned: 99.1, total: 348.2,
		history: []float64{19.8, 22.4, 14.1, 25.0}, opponent: []string{"PIT", "WAS", "DAL", "NYG"},
		weekly: map[int]float64{1: 21.7, 2: 22.0, 3: 20.8}},
	{name: "Saquon Barkley", pos: player.PositionRB, team: "PHI", owned: 99.9, total: 301.5,
		history: []float64{22.3, 31.7, 9.8, 18.4}, opponent: []string{"PIT", "WAS", "DAL", "NYG"},
		weekly: map[int]float64{1: 18.9, 2: 18.2, 3: 17.6}},
	{name: "Bijan Robinson", pos: player.PositionRB, team: "ATL", owned: 99.7, total: 289.0,
		history: []float64{23.5, 15.2, 26.1, 17.8}, opponent: []string{"LV", "NYG", "WAS", "CAR"},
		weekly: map[int]float64{1: 18.1, 2: 17.9, 3: 18.4}},
	{name: "Jahmyr Gibbs", pos: player.PositionRB, team: "DET", owned: 99.6, total: 286.3,
		history: []float64{18.7, 25.3, 33.1, 21.0}, opponent: []string{"BUF", "CHI", "SF", "MIN"},
		weekly: map[int]float64{1: 17.4, 2: 17.8, 3: 16.9}},
	{name: "Ja'Marr Chase", pos: player.PositionWR, team: "CIN", owned: 99.9, total: 310.6,
		history: []float64{28.4, 16.2, 21.9, 24.7}, opponent: []string{"TEN", "CLE", "DEN", "PIT"},
		weekly: map[int]float64{1: 19.3, 2: 18.8, 3: 19.1}},
	{name: "Puka Nacua", pos: player.PositionWR, team: "LAR", owned: 99.2, total: 268.4,
		history: []float64{17.1, 12.6, 22.8, 19.5}, opponent: []string{"SF", "NYJ", "ARI", "SEA"},
		weekly: map[int]float64{1: 16.2, 2: 16.5, 3: 15.9}},
	{name: "Amon-Ra St. Brown", pos: player.PositionWR, team: "DET", owned: 99.8, total: 281.9,
		history: []float64{20.2, 14.8, 18.3, 23.6}, opponent: []string{"BUF", "CHI", "SF", "MIN"},
		weekly: map[int]float64{1: 17.2, 2: 16.7, 3: 17.0}},
	{name: "Zay Flowers", pos: player.PositionWR, team: "BAL", owned: 88.4, total: 196.2,
		history: []float64{8.9, 13.4, 6.2, 11.7}, opponent: []string{"NYG", "PIT", "HOU", "CLE"},
		weekly: map[int]float64{1: 11.8, 2: 11.2, 3: 12.4}},
	{name: "Brock Bowers", pos: player.PositionTE, team: "LV", owned: 98.9, total: 214.7,
		history: []float64{15.6, 12.1, 18.9, 9.4}, opponent: []string{"ATL", "JAX", "NO", "LAC"},
		weekly: map[int]float64{1: 12.9, 2: 12.4, 3: 13.1}},
	{name: "Trey McBride", pos: player.PositionTE, team: "ARI", owned: 97.5, total: 201.3,
		history: []float64{11.2, 16.4, 8.7, 13.0}, opponent: []string{"CAR", "LAR", "SEA", "SF"},
		weekly: map[int]float64{1: 12.1, 2: 11.8, 3: 12.3}},
	{name: "Brandon Aubrey", pos: player.PositionK, team: "DAL", owned: 91.3, total: 158.0,
		history: []float64{11.0, 9.0, 14.0, 7.0}, opponent: []string{"CAR", "TB", "PHI", "WAS"},
		weekly: map[int]float64{1: 9.4, 2: 9.1, 3: 9.6}},
	{name: "Philadelphia Eagles D/ST", pos: player.PositionDST, team: "PHI", owned: 93.7, total: 132.0,
		history: []float64{9.0, 14.0, 5.0, 11.0}, opponent: []string{"PIT", "WAS", "DAL", "NYG"},
		weekly: map[int]float64{1: 8.1, 2: 7.6, 3: 8.4}},
}

// SeedRecords returns sample player records covering every position, with a
// current-season projection and the last four prior-season games.
func SeedRecords() []player.Record {
	out := make([]player.Record, 0, len(seedPlayers))
	for _, p := range seedPlayers {
		stats := make(map[int]player.WeeklyStat, len(p.history))
		firstWeek := 18 - len(p.history)
		for i, pts := range p.history {
			stats[firstWeek+i] = player.WeeklyStat{FantasyPoints: pts, Opponent: p.opponent[i], Team: p.team}
		}

		out = append(out, player.Record{
			ID:           player.RecordID(p.name, p.pos),
			Name:         p.name,
			Position:     p.pos,
			Team:         p.team,
			InjuryStatus: player.InjuryHealthy,
			PercentOwned: p.owned,
			Seasons: map[int]player.Season{
				SeedSeason: {
					Projections:       map[string]float64{player.SeasonPointsKey: p.total},
					WeeklyProjections: p.weekly,
				},
				SeedHistorySeason: {WeeklyStats: stats},
			},
		})
	}
	return out
}

func SeedTeams() []roster.Team {
	return []roster.Team{
		{
			ID:    "team-1",
			Name:  "Gridiron Gurus",
			Owner: "demo",
			Players: []player.RosterPlayer{
				{Name: "Josh Allen", Position: "QB", Team: "BUF"},
				{Name: "Saquon Barkley", Position: "RB", Team: "PHI"},
				{Name: "Bijan Robinson", Position: "RB", Team: "ATL"},
				{Name: "Ja'Marr Chase", Position: "WR", Team: "CIN"},
				{Name: "Puka Nacua", Position: "WR", Team: "LAR", InjuryStatus: "Q"},
				{Name: "Zay Flowers", Position: "WR", Team: "BAL"},
				{Name: "Brock Bowers", Position: "TE", Team: "LV"},
				{Name: "Brandon Aubrey", Position: "K", Team: "DAL"},
				{Name: "Philadelphia Eagles D/ST", Position: "DST", Team: "PHI"},
			},
		},
		{
			ID:    "team-2",
			Name:  "Fourth and Long",
			Owner: "rival",
			Players: []player.RosterPlayer{
				{Name: "Jalen Hurts", Position: "QB", Team: "PHI"},
				{Name: "Jahmyr Gibbs", Position: "RB", Team: "DET"},
				{Name: "Amon-Ra St. Brown", Position: "WR", Team: "DET"},
				{Name: "Trey McBride", Position: "TE", Team: "ARI"},
			},
		},
	}
}

// SeedWaiverPool returns unrostered and rostered entries so availability
// filtering has something to exclude.
func SeedWaiverPool() []waiver.Player {
	pool := []waiver.Player{
		{ID: "Bo Nix#QB", Name: "Bo Nix", Position: player.PositionQB, Team: "DEN", PercentOwned: 42.5,
			WeeklyProjections: map[int]float64{1: 17.2, 2: 16.8, 3: 17.9}},
		{ID: "Tyler Allgeier#RB", Name: "Tyler Allgeier", Position: player.PositionRB, Team: "ATL", PercentOwned: 18.3,
			WeeklyProjections: map[int]float64{1: 8.4, 2: 9.1, 3: 8.8}},
		{ID: "Jaylen Warren#RB", Name: "Jaylen Warren", Position: player.PositionRB, Team: "PIT", PercentOwned: 35.0,
			WeeklyProjections: map[int]float64{1: 10.2, 2: 9.7, 3: 10.5}},
		{ID: "Rashid Shaheed#WR", Name: "Rashid Shaheed", Position: player.PositionWR, Team: "NO", PercentOwned: 22.1,
			WeeklyProjections: map[int]float64{1: 9.6, 2: 10.1, 3: 9.3}},
		{ID: "Jalen McMillan#WR", Name: "Jalen McMillan", Position: player.PositionWR, Team: "TB", PercentOwned: 6.4,
			WeeklyProjections: map[int]float64{1: 8.2, 2: 8.9, 3: 8.5}},
		{ID: "Hunter Henry#TE", Name: "Hunter Henry", Position: player.PositionTE, Team: "NE", PercentOwned: 27.9,
			WeeklyProjections: map[int]float64{1: 8.1, 2: 7.8, 3: 8.6}},
		{ID: "Jake Elliott#K", Name: "Jake Elliott", Position: player.PositionK, Team: "PHI", PercentOwned: 31.0,
			WeeklyProjections: map[int]float64{1: 8.0, 2: 7.9, 3: 8.2}},
		{ID: "Denver Broncos D/ST#DST", Name: "Denver Broncos D/ST", Position: player.PositionDST, Team: "DEN", PercentOwned: 44.8,
			WeeklyProjections: map[int]float64{1: 7.4, 2: 6.9, 3: 7.8}},
		{ID: "Jalen Hurts#QB", Name: "Jalen Hurts", Position: player.PositionQB, Team: "PHI", PercentOwned: 99.1,
			WeeklyProjections: map[int]float64{1: 21.7, 2: 22.0, 3: 20.8}},
	}
	for i := range pool {
		pool[i].InjuryStatus = player.InjuryHealthy
	}
	return pool
}
