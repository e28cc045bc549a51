package dynamo

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/riskibarqy/fantasy-coach/internal/domain/player"
	"github.com/riskibarqy/fantasy-coach/internal/platform/resilience"
)

type fakeAPI struct {
	mu          sync.Mutex
	items       map[string]map[string]types.AttributeValue
	unprocessed int
	batchSizes  []int
	scanPages   [][]map[string]types.AttributeValue
	queryInputs []*dynamodb.QueryInput
	queryItems  []map[string]types.AttributeValue
	err         error
}

func (f *fakeAPI) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, page := range f.scanPages {
		for _, item := range page {
			if item[teamKeyAttr].(*types.AttributeValueMemberS).Value == in.Key[teamKeyAttr].(*types.AttributeValueMemberS).Value {
				return &dynamodb.GetItemOutput{Item: item}, nil
			}
		}
	}
	return &dynamodb.GetItemOutput{}, nil
}

// BatchGetItem returns the first key of every request as unprocessed while
// f.unprocessed is positive.
func (f *fakeAPI) BatchGetItem(_ context.Context, in *dynamodb.BatchGetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.BatchGetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}

	out := &dynamodb.BatchGetItemOutput{Responses: map[string][]map[string]types.AttributeValue{}}
	for table, req := range in.RequestItems {
		f.batchSizes = append(f.batchSizes, len(req.Keys))
		keys := req.Keys
		if f.unprocessed > 0 && len(keys) > 0 {
			f.unprocessed--
			out.UnprocessedKeys = map[string]types.KeysAndAttributes{table: {Keys: keys[:1]}}
			keys = keys[1:]
		}
		for _, key := range keys {
			id := key[playerKeyAttr].(*types.AttributeValueMemberS).Value
			if item, ok := f.items[id]; ok {
				out.Responses[table] = append(out.Responses[table], item)
			}
		}
	}
	return out, nil
}

func (f *fakeAPI) Scan(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	page := 0
	if in.ExclusiveStartKey != nil {
		page = len(f.scanPages) - 1
	}
	out := &dynamodb.ScanOutput{Items: f.scanPages[page]}
	if page < len(f.scanPages)-1 {
		out.LastEvaluatedKey = map[string]types.AttributeValue{teamKeyAttr: &types.AttributeValueMemberS{Value: "cursor"}}
	}
	return out, nil
}

func (f *fakeAPI) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.queryInputs = append(f.queryInputs, in)
	return &dynamodb.QueryOutput{Items: f.queryItems}, nil
}

func mustMarshal(t *testing.T, v any) map[string]types.AttributeValue {
	t.Helper()
	av, err := attributevalue.MarshalMap(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return av
}

func allenItem(t *testing.T) map[string]types.AttributeValue {
	t.Helper()
	return mustMarshal(t, playerItem{
		PlayerID:     "Josh Allen#QB",
		PlayerName:   "Josh Allen",
		Position:     "QB",
		Team:         "BUF",
		InjuryStatus: "Questionable",
		PercentOwned: 99.5,
		HistoricalSeasons: map[string]historicalSeasonItem{
			"2024": {WeeklyStats: map[string]weeklyStatItem{
				"16": {FantasyPoints: 24.5, Opponent: "NE"},
				"17": {FantasyPoints: 18, Opponent: "NYJ"},
			}},
		},
		CurrentSeasonStats: map[string]map[string]weeklyStatItem{
			"2025": {"1": {FantasyPoints: 30.1, Opponent: "BAL", Team: "BUF"}},
		},
		Projections:       map[string]map[string]float64{"2025": {player.SeasonPointsKey: 380}},
		WeeklyProjections: map[string]map[string]float64{"2025": {"2": 23.5, "bad": 1}},
	})
}

func testOptions() Options {
	return Options{RetryBackoff: time.Millisecond}
}

func TestPlayerRepository_GetByNameDecodesItem(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{items: map[string]map[string]types.AttributeValue{"Josh Allen#QB": allenItem(t)}}
	repo := NewPlayerRepository(api, "players", testOptions())

	rec, ok, err := repo.GetByName(t.Context(), "Josh  Allen")
	if err != nil || !ok {
		t.Fatalf("expected record, got ok=%v err=%v", ok, err)
	}
	if rec.Position != player.PositionQB || rec.Status() != player.InjuryQuestionable {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if got := rec.SeasonProjectionTotal(2025); got != 380 {
		t.Fatalf("expected season projection 380, got %v", got)
	}
	if got := rec.WeeklyProjection(2025, 2); got != 23.5 {
		t.Fatalf("expected week 2 projection 23.5, got %v", got)
	}
	if weeks := rec.Weeks(2024); len(weeks) != 2 || weeks[0] != 16 {
		t.Fatalf("expected historical weeks 16 and 17, got %v", weeks)
	}
	if stat := rec.Seasons[2025].WeeklyStats[1]; stat.FantasyPoints != 30.1 || stat.Team != "BUF" {
		t.Fatalf("expected current season stat, got %+v", stat)
	}
}

func TestPlayerRepository_GetManyByIDChunksAndRetries(t *testing.T) {
	t.Parallel()

	ids := make([]string, 0, 150)
	items := map[string]map[string]types.AttributeValue{}
	for i := range 150 {
		id := "p" + string(rune('A'+i%26)) + string(rune('a'+i/26))
		ids = append(ids, id)
		items[id] = mustMarshal(t, playerItem{PlayerID: id, PlayerName: id, Position: "WR"})
	}

	api := &fakeAPI{items: items, unprocessed: 1}
	repo := NewPlayerRepository(api, "players", testOptions())

	got, err := repo.GetManyByID(t.Context(), append(ids, ids[0], "missing"))
	if err != nil {
		t.Fatalf("get many: %v", err)
	}
	if len(got) != 150 {
		t.Fatalf("expected 150 records, got %d", len(got))
	}
	// 100 + retry of 1 unprocessed key + 51
	want := []int{100, 1, 51}
	if len(api.batchSizes) != len(want) {
		t.Fatalf("expected batch sizes %v, got %v", want, api.batchSizes)
	}
	for i := range want {
		if api.batchSizes[i] != want[i] {
			t.Fatalf("expected batch sizes %v, got %v", want, api.batchSizes)
		}
	}
}

func TestPlayerRepository_GivesUpOnUnprocessedKeys(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{
		items:       map[string]map[string]types.AttributeValue{"Josh Allen#QB": allenItem(t)},
		unprocessed: 100,
	}
	opts := testOptions()
	opts.UnprocessedRetries = 2
	repo := NewPlayerRepository(api, "players", opts)

	got, err := repo.GetManyByID(t.Context(), []string{"Josh Allen#QB"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected unprocessed key to be dropped, got %v", got)
	}
	if len(api.batchSizes) != 3 {
		t.Fatalf("expected initial call plus two retries, got %d", len(api.batchSizes))
	}
}

func TestPlayerRepository_BreakerOpensOnFailures(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{err: errors.New("throttled")}
	opts := testOptions()
	opts.Breaker = resilience.NewCircuitBreaker(1, time.Minute, 1)
	repo := NewPlayerRepository(api, "players", opts)

	if _, err := repo.GetManyByID(t.Context(), []string{"a"}); err == nil {
		t.Fatalf("expected error")
	}
	_, err := repo.GetManyByID(t.Context(), []string{"a"})
	if !errors.Is(err, resilience.ErrCircuitOpen) {
		t.Fatalf("expected open circuit, got %v", err)
	}
}

func TestTeamRepository(t *testing.T) {
	t.Parallel()

	team1 := mustMarshal(t, teamItem{TeamID: "team-1", TeamName: "Gurus", Players: []rosterPlayerItem{
		{Name: "Josh Allen", Position: "QB", Team: "BUF"},
		{Name: " ", Position: "RB"},
	}})
	team2 := mustMarshal(t, teamItem{TeamID: "team-2", Players: []rosterPlayerItem{{Name: "Jalen Hurts", Position: "QB"}}})
	api := &fakeAPI{scanPages: [][]map[string]types.AttributeValue{{team1}, {team2}}}
	repo := NewTeamRepository(api, "rosters", testOptions())

	teams, err := repo.ListTeams(t.Context())
	if err != nil {
		t.Fatalf("list teams: %v", err)
	}
	if len(teams) != 2 || teams[1].ID != "team-2" {
		t.Fatalf("expected both scan pages, got %+v", teams)
	}
	if len(teams[0].Players) != 1 {
		t.Fatalf("expected blank roster entry dropped, got %+v", teams[0].Players)
	}

	got, ok, err := repo.GetTeam(t.Context(), " team-2 ")
	if err != nil || !ok || got.Players[0].Name != "Jalen Hurts" {
		t.Fatalf("unexpected team: %+v ok=%v err=%v", got, ok, err)
	}
	if _, ok, err := repo.GetTeam(t.Context(), "team-9"); ok || err != nil {
		t.Fatalf("expected missing team, got ok=%v err=%v", ok, err)
	}
}

func TestWaiverRepository_ListByPosition(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{queryItems: []map[string]types.AttributeValue{
		mustMarshal(t, waiverItem{PlayerSeason: "bo_nix_2025", PlayerName: "Bo Nix", Position: "QB", PercentOwned: 40,
			WeeklyProjections: map[string]float64{"3": 17.9}}),
		mustMarshal(t, waiverItem{PlayerName: "Broncos", Position: "DEF", InjuryStatus: "OUT"}),
		mustMarshal(t, waiverItem{PlayerName: "Mystery", Position: "LB"}),
	}}
	repo := NewWaiverRepository(api, "waiver", testOptions())

	got, err := repo.ListByPosition(t.Context(), player.PositionQB)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected unknown position skipped, got %+v", got)
	}
	if got[0].InjuryStatus != player.InjuryHealthy || got[0].ProjectionFor(3) != 17.9 {
		t.Fatalf("unexpected first entry: %+v", got[0])
	}
	if got[1].ID != "Broncos#DST" || got[1].InjuryStatus != player.InjuryOut {
		t.Fatalf("unexpected second entry: %+v", got[1])
	}

	in := api.queryInputs[0]
	if *in.IndexName != positionIndex || in.ExpressionAttributeValues[":pos"].(*types.AttributeValueMemberS).Value != "QB" {
		t.Fatalf("unexpected query input: %+v", in)
	}
}
