package dynamo

import (
	"context"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/fantasy-coach/internal/domain/player"
)

const playerKeyAttr = "player_id"

type playerItem struct {
	PlayerID           string                               `dynamodbav:"player_id"`
	PlayerName         string                               `dynamodbav:"player_name"`
	Position           string                               `dynamodbav:"position"`
	Team               string                               `dynamodbav:"team"`
	InjuryStatus       string                               `dynamodbav:"injury_status"`
	PercentOwned       float64                              `dynamodbav:"percent_owned"`
	HistoricalSeasons  map[string]historicalSeasonItem      `dynamodbav:"historical_seasons"`
	CurrentSeasonStats map[string]map[string]weeklyStatItem `dynamodbav:"current_season_stats"`
	Projections        map[string]map[string]float64        `dynamodbav:"projections"`
	WeeklyProjections  map[string]map[string]float64        `dynamodbav:"weekly_projections"`
}

type historicalSeasonItem struct {
	WeeklyStats  map[string]weeklyStatItem `dynamodbav:"weekly_stats"`
	SeasonTotals map[string]float64        `dynamodbav:"season_totals"`
}

type weeklyStatItem struct {
	FantasyPoints float64 `dynamodbav:"fantasy_points"`
	Opponent      string  `dynamodbav:"opponent"`
	Team          string  `dynamodbav:"team"`
}

// PlayerRepository reads the players table keyed by player_id.
type PlayerRepository struct {
	api   API
	table string
	opts  Options
}

func NewPlayerRepository(api API, table string, opts Options) *PlayerRepository {
	return &PlayerRepository{api: api, table: table, opts: opts.normalized()}
}

// GetByName batch-reads every id the name could be stored under and picks
// the closest record.
func (r *PlayerRepository) GetByName(ctx context.Context, name string) (player.Record, bool, error) {
	ids := player.IDCandidates(name)
	if len(ids) == 0 {
		return player.Record{}, false, nil
	}

	found, err := r.GetManyByID(ctx, ids)
	if err != nil {
		return player.Record{}, false, err
	}
	records := make([]player.Record, 0, len(found))
	for _, id := range ids {
		if rec, ok := found[id]; ok {
			records = append(records, rec)
		}
	}

	rec, ok := player.BestMatch(name, records)
	return rec, ok, nil
}

// GetManyByID issues one BatchGetItem per chunk of player.MaxBatchSize ids and
// resubmits unprocessed keys a bounded number of times. Keys still
// unprocessed after that are logged and left out of the result.
func (r *PlayerRepository) GetManyByID(ctx context.Context, ids []string) (map[string]player.Record, error) {
	out := make(map[string]player.Record, len(ids))
	for _, chunk := range player.ChunkIDs(ids, player.MaxBatchSize) {
		keys := make([]map[string]types.AttributeValue, 0, len(chunk))
		for _, id := range chunk {
			keys = append(keys, map[string]types.AttributeValue{
				playerKeyAttr: &types.AttributeValueMemberS{Value: id},
			})
		}
		if err := r.batchGet(ctx, keys, out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *PlayerRepository) batchGet(ctx context.Context, keys []map[string]types.AttributeValue, out map[string]player.Record) error {
	request := map[string]types.KeysAndAttributes{r.table: {Keys: keys}}
	for attempt := 0; len(request) > 0; attempt++ {
		if attempt > r.opts.UnprocessedRetries {
			r.opts.Logger.WarnContext(ctx, "dropping unprocessed player keys",
				"table", r.table,
				"keys", len(request[r.table].Keys),
			)
			return nil
		}
		if attempt > 0 {
			if err := sleep(ctx, r.opts.RetryBackoff*time.Duration(attempt)); err != nil {
				return errors.Wrap(err, "wait for unprocessed player keys")
			}
		}

		var resp *dynamodb.BatchGetItemOutput
		err := r.opts.Breaker.Execute(func() error {
			var err error
			resp, err = r.api.BatchGetItem(ctx, &dynamodb.BatchGetItemInput{RequestItems: request})
			return err
		}, countable)
		if err != nil {
			return errors.Wrapf(err, "batch get players from %s", r.table)
		}

		for _, item := range resp.Responses[r.table] {
			rec, err := decodePlayer(item)
			if err != nil {
				r.opts.Logger.WarnContext(ctx, "skip undecodable player item", "table", r.table, "error", err)
				continue
			}
			out[rec.ID] = rec
		}
		request = resp.UnprocessedKeys
	}
	return nil
}

func decodePlayer(av map[string]types.AttributeValue) (player.Record, error) {
	var item playerItem
	if err := attributevalue.UnmarshalMap(av, &item); err != nil {
		return player.Record{}, errors.Wrap(err, "unmarshal player item")
	}
	if item.PlayerID == "" {
		return player.Record{}, errors.New("player item has no player_id")
	}
	return item.toDomain(), nil
}

func (item playerItem) toDomain() player.Record {
	pos, _ := player.ParsePosition(item.Position)
	rec := player.Record{
		ID:           item.PlayerID,
		Name:         item.PlayerName,
		Position:     pos,
		Team:         item.Team,
		InjuryStatus: player.ParseInjuryStatus(item.InjuryStatus),
		PercentOwned: item.PercentOwned,
		Seasons:      map[int]player.Season{},
	}

	season := func(year int) player.Season {
		return rec.Seasons[year]
	}

	for rawYear, hist := range item.HistoricalSeasons {
		year, ok := parseInt(rawYear)
		if !ok {
			continue
		}
		s := season(year)
		s.WeeklyStats = mergeWeeks(s.WeeklyStats, hist.WeeklyStats)
		if len(hist.SeasonTotals) > 0 {
			s.Totals = hist.SeasonTotals
		}
		rec.Seasons[year] = s
	}
	for rawYear, weeks := range item.CurrentSeasonStats {
		year, ok := parseInt(rawYear)
		if !ok {
			continue
		}
		s := season(year)
		s.WeeklyStats = mergeWeeks(s.WeeklyStats, weeks)
		rec.Seasons[year] = s
	}
	for rawYear, projections := range item.Projections {
		year, ok := parseInt(rawYear)
		if !ok {
			continue
		}
		s := season(year)
		s.Projections = projections
		rec.Seasons[year] = s
	}
	for rawYear, weeks := range item.WeeklyProjections {
		year, ok := parseInt(rawYear)
		if !ok {
			continue
		}
		s := season(year)
		s.WeeklyProjections = weekMap(weeks)
		rec.Seasons[year] = s
	}

	if len(rec.Seasons) == 0 {
		rec.Seasons = nil
	}
	return rec
}

func mergeWeeks(dst map[int]player.WeeklyStat, src map[string]weeklyStatItem) map[int]player.WeeklyStat {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[int]player.WeeklyStat, len(src))
	}
	for rawWeek, stat := range src {
		week, ok := parseInt(rawWeek)
		if !ok {
			continue
		}
		dst[week] = player.WeeklyStat{
			FantasyPoints: stat.FantasyPoints,
			Opponent:      stat.Opponent,
			Team:          stat.Team,
		}
	}
	return dst
}

func weekMap(src map[string]float64) map[int]float64 {
	if len(src) == 0 {
		return nil
	}
	out := make(map[int]float64, len(src))
	for rawWeek, v := range src {
		if week, ok := parseInt(rawWeek); ok {
			out[week] = v
		}
	}
	return out
}

func parseInt(raw string) (int, bool) {
	v, err := strconv.Atoi(raw)
	return v, err == nil
}
