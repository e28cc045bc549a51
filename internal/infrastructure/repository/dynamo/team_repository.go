package dynamo

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/fantasy-coach/internal/domain/player"
	"github.com/riskibarqy/fantasy-coach/internal/domain/roster"
)

const teamKeyAttr = "team_id"

type teamItem struct {
	TeamID   string             `dynamodbav:"team_id"`
	TeamName string             `dynamodbav:"team_name"`
	Owner    string             `dynamodbav:"owner"`
	Players  []rosterPlayerItem `dynamodbav:"players"`
}

type rosterPlayerItem struct {
	Name         string `dynamodbav:"name"`
	Position     string `dynamodbav:"position"`
	Team         string `dynamodbav:"team"`
	PlayerID     string `dynamodbav:"player_id"`
	InjuryStatus string `dynamodbav:"injury_status"`
}

// TeamRepository reads the league roster table keyed by team_id.
type TeamRepository struct {
	api   API
	table string
	opts  Options
}

func NewTeamRepository(api API, table string, opts Options) *TeamRepository {
	return &TeamRepository{api: api, table: table, opts: opts.normalized()}
}

func (r *TeamRepository) GetTeam(ctx context.Context, teamID string) (roster.Team, bool, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return roster.Team{}, false, nil
	}

	var resp *dynamodb.GetItemOutput
	err := r.opts.Breaker.Execute(func() error {
		var err error
		resp, err = r.api.GetItem(ctx, &dynamodb.GetItemInput{
			TableName: &r.table,
			Key: map[string]types.AttributeValue{
				teamKeyAttr: &types.AttributeValueMemberS{Value: teamID},
			},
		})
		return err
	}, countable)
	if err != nil {
		return roster.Team{}, false, errors.Wrapf(err, "get team %s from %s", teamID, r.table)
	}
	if len(resp.Item) == 0 {
		return roster.Team{}, false, nil
	}

	team, err := decodeTeam(resp.Item)
	if err != nil {
		return roster.Team{}, false, err
	}
	return team, true, nil
}

// ListTeams scans the whole table, following LastEvaluatedKey.
func (r *TeamRepository) ListTeams(ctx context.Context) ([]roster.Team, error) {
	var (
		out      []roster.Team
		startKey map[string]types.AttributeValue
	)
	for {
		var resp *dynamodb.ScanOutput
		err := r.opts.Breaker.Execute(func() error {
			var err error
			resp, err = r.api.Scan(ctx, &dynamodb.ScanInput{
				TableName:         &r.table,
				ExclusiveStartKey: startKey,
			})
			return err
		}, countable)
		if err != nil {
			return nil, errors.Wrapf(err, "scan teams from %s", r.table)
		}

		for _, item := range resp.Items {
			team, err := decodeTeam(item)
			if err != nil {
				r.opts.Logger.WarnContext(ctx, "skip undecodable team item", "table", r.table, "error", err)
				continue
			}
			out = append(out, team)
		}

		if len(resp.LastEvaluatedKey) == 0 {
			return out, nil
		}
		startKey = resp.LastEvaluatedKey
	}
}

func decodeTeam(av map[string]types.AttributeValue) (roster.Team, error) {
	var item teamItem
	if err := attributevalue.UnmarshalMap(av, &item); err != nil {
		return roster.Team{}, errors.Wrap(err, "unmarshal team item")
	}
	if item.TeamID == "" {
		return roster.Team{}, errors.New("team item has no team_id")
	}

	team := roster.Team{
		ID:      item.TeamID,
		Name:    item.TeamName,
		Owner:   item.Owner,
		Players: make([]player.RosterPlayer, 0, len(item.Players)),
	}
	for _, p := range item.Players {
		if strings.TrimSpace(p.Name) == "" {
			continue
		}
		team.Players = append(team.Players, player.RosterPlayer{
			Name:         p.Name,
			Position:     p.Position,
			Team:         p.Team,
			PlayerID:     p.PlayerID,
			InjuryStatus: p.InjuryStatus,
		})
	}
	return team, nil
}
