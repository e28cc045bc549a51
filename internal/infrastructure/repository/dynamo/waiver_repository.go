package dynamo

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/fantasy-coach/internal/domain/player"
	"github.com/riskibarqy/fantasy-coach/internal/domain/waiver"
)

const positionIndex = "position-index"

type waiverItem struct {
	PlayerSeason      string             `dynamodbav:"player_season"`
	PlayerName        string             `dynamodbav:"player_name"`
	Position          string             `dynamodbav:"position"`
	Team              string             `dynamodbav:"team"`
	InjuryStatus      string             `dynamodbav:"injury_status"`
	PercentOwned      float64            `dynamodbav:"percent_owned"`
	WeeklyProjections map[string]float64 `dynamodbav:"weekly_projections"`
}

// WaiverRepository queries the waiver table through its position index.
type WaiverRepository struct {
	api   API
	table string
	opts  Options
}

func NewWaiverRepository(api API, table string, opts Options) *WaiverRepository {
	return &WaiverRepository{api: api, table: table, opts: opts.normalized()}
}

func (r *WaiverRepository) ListByPosition(ctx context.Context, pos player.Position) ([]waiver.Player, error) {
	indexName := positionIndex
	keyCondition := "#pos = :pos"
	projection := "player_season, player_name, #pos, team, injury_status, percent_owned, weekly_projections"

	var (
		out      []waiver.Player
		startKey map[string]types.AttributeValue
	)
	for {
		var resp *dynamodb.QueryOutput
		err := r.opts.Breaker.Execute(func() error {
			var err error
			resp, err = r.api.Query(ctx, &dynamodb.QueryInput{
				TableName:                &r.table,
				IndexName:                &indexName,
				KeyConditionExpression:   &keyCondition,
				ProjectionExpression:     &projection,
				ExpressionAttributeNames: map[string]string{"#pos": "position"},
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":pos": &types.AttributeValueMemberS{Value: string(pos)},
				},
				ExclusiveStartKey: startKey,
			})
			return err
		}, countable)
		if err != nil {
			return nil, errors.Wrapf(err, "query %s waiver players from %s", pos, r.table)
		}

		for _, item := range resp.Items {
			p, err := decodeWaiverPlayer(item)
			if err != nil {
				r.opts.Logger.WarnContext(ctx, "skip undecodable waiver item", "table", r.table, "error", err)
				continue
			}
			out = append(out, p)
		}

		if len(resp.LastEvaluatedKey) == 0 {
			return out, nil
		}
		startKey = resp.LastEvaluatedKey
	}
}

func decodeWaiverPlayer(av map[string]types.AttributeValue) (waiver.Player, error) {
	var item waiverItem
	if err := attributevalue.UnmarshalMap(av, &item); err != nil {
		return waiver.Player{}, errors.Wrap(err, "unmarshal waiver item")
	}
	if strings.TrimSpace(item.PlayerName) == "" {
		return waiver.Player{}, errors.New("waiver item has no player_name")
	}

	pos, ok := player.ParsePosition(item.Position)
	if !ok {
		return waiver.Player{}, errors.Newf("waiver item %s has unknown position %q", item.PlayerName, item.Position)
	}

	status := player.InjuryHealthy
	if strings.TrimSpace(item.InjuryStatus) != "" {
		status = player.ParseInjuryStatus(item.InjuryStatus)
	}

	id := item.PlayerSeason
	if id == "" {
		id = player.RecordID(item.PlayerName, pos)
	}
	return waiver.Player{
		ID:                id,
		Name:              item.PlayerName,
		Position:          pos,
		Team:              item.Team,
		InjuryStatus:      status,
		PercentOwned:      item.PercentOwned,
		WeeklyProjections: weekMap(item.WeeklyProjections),
	}, nil
}
