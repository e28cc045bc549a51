package mcptools

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/riskibarqy/fantasy-coach/internal/domain/lineup"
	"github.com/riskibarqy/fantasy-coach/internal/domain/player"
	"github.com/riskibarqy/fantasy-coach/internal/domain/projection"
	"github.com/riskibarqy/fantasy-coach/internal/domain/scoring"
	"github.com/riskibarqy/fantasy-coach/internal/platform/logging"
	"github.com/riskibarqy/fantasy-coach/internal/usecase"
)

type OptimizeLineupArgs struct {
	Roster      []player.RosterPlayer `json:"roster" jsonschema:"Rostered players with name and position" validate:"required,dive"`
	Projections projection.Weekly     `json:"projections,omitempty" jsonschema:"Weekly projections keyed by position; fetched when omitted"`
	Slots       []string              `json:"slots,omitempty" jsonschema:"Lineup slots, e.g. QB,RB,RB,WR,WR,TE,FLEX,OP,K,DST"`
	Week        int                   `json:"week,omitempty" jsonschema:"NFL week 1-18 (0 = current)" validate:"omitempty,min=1,max=18"`
	Strategy    string                `json:"strategy,omitempty" jsonschema:"Optimizer: greedy|hungarian (default greedy)" validate:"omitempty,oneof=greedy hungarian"`
}

type AdjustedScoreArgs struct {
	Weekly        float64  `json:"weekly,omitempty" jsonschema:"Weekly projected points" validate:"gte=0"`
	SeasonPerGame float64  `json:"season_per_game,omitempty" jsonschema:"Season projected points per game" validate:"gte=0"`
	Recent        float64  `json:"recent,omitempty" jsonschema:"Average of recent games" validate:"gte=0"`
	VsOpponent    *float64 `json:"vs_opponent,omitempty" jsonschema:"Historical average against this week's opponent"`
	InjuryStatus  string   `json:"injury_status,omitempty" jsonschema:"Injury designation, e.g. Questionable"`
}

type RosterArgs struct {
	Roster []player.RosterPlayer `json:"roster" jsonschema:"Rostered players with name and position" validate:"required,dive"`
}

type WaiverTargetsArgs struct {
	Position     string   `json:"position" jsonschema:"Position: QB|RB|WR|TE|K|DST" validate:"required"`
	Week         int      `json:"week,omitempty" jsonschema:"NFL week 1-18 (0 = current)" validate:"omitempty,min=1,max=18"`
	MaxOwnership float64  `json:"max_ownership,omitempty" jsonschema:"Maximum ownership percentage (default 50)" validate:"gte=0,lte=100"`
	MinPoints    *float64 `json:"min_points,omitempty" jsonschema:"Minimum projected points (default depends on position)"`
}

type WaiverAnalysisArgs struct {
	Roster []player.RosterPlayer `json:"roster" jsonschema:"Rostered players with name and position" validate:"required,dive"`
	Week   int                   `json:"week,omitempty" jsonschema:"NFL week 1-18 (0 = current)" validate:"omitempty,min=1,max=18"`
}

type PlayerPerformanceArgs struct {
	Name  string `json:"name" jsonschema:"Player name" validate:"required"`
	Weeks int    `json:"weeks,omitempty" jsonschema:"Recent weeks to analyze (default 5)" validate:"gte=0"`
}

type ComparePlayersArgs struct {
	Names  []string `json:"names" jsonschema:"Two or more player names" validate:"required,min=2,dive,required"`
	Week   int      `json:"week,omitempty" jsonschema:"NFL week 1-18 (0 = current)" validate:"omitempty,min=1,max=18"`
	Metric string   `json:"metric,omitempty" jsonschema:"Ranking metric: projection|season|recent (default projection)" validate:"omitempty,oneof=projection season recent"`
}

type InvalidateArgs struct{}

// Toolset exposes the coaching usecases as MCP tools.
type Toolset struct {
	lineup    *usecase.LineupService
	roster    *usecase.RosterService
	waiver    *usecase.WaiverService
	players   *usecase.PlayerInsightService
	logger    *logging.Logger
	validator *validator.Validate
}

func NewToolset(
	lineupService *usecase.LineupService,
	rosterService *usecase.RosterService,
	waiverService *usecase.WaiverService,
	playerService *usecase.PlayerInsightService,
	logger *logging.Logger,
) *Toolset {
	if logger == nil {
		logger = logging.Default()
	}
	return &Toolset{
		lineup:    lineupService,
		roster:    rosterService,
		waiver:    waiverService,
		players:   playerService,
		logger:    logger,
		validator: validator.New(),
	}
}

func (t *Toolset) validate(ctx context.Context, args any) error {
	if err := t.validator.StructCtx(ctx, args); err != nil {
		return fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func (t *Toolset) fail(ctx context.Context, tool string, err error) (*mcp.CallToolResult, any, error) {
	t.logger.WarnContext(ctx, "mcp tool failed", "tool", tool, "error", err)
	return errorResult(err), nil, nil
}

func (t *Toolset) OptimizeLineup(ctx context.Context, _ *mcp.CallToolRequest, args OptimizeLineupArgs) (*mcp.CallToolResult, any, error) {
	if err := t.validate(ctx, args); err != nil {
		return t.fail(ctx, "optimize_lineup", err)
	}
	res, err := t.lineup.Optimize(ctx, usecase.OptimizeLineupInput{
		Roster:      args.Roster,
		Projections: args.Projections,
		Slots:       args.Slots,
		Week:        args.Week,
		Strategy:    lineup.Strategy(args.Strategy),
	})
	if err != nil {
		return t.fail(ctx, "optimize_lineup", err)
	}
	return jsonResult(res), nil, nil
}

func (t *Toolset) AdjustedScore(ctx context.Context, _ *mcp.CallToolRequest, args AdjustedScoreArgs) (*mcp.CallToolResult, any, error) {
	if err := t.validate(ctx, args); err != nil {
		return t.fail(ctx, "adjusted_score", err)
	}
	status := player.InjuryHealthy
	if strings.TrimSpace(args.InjuryStatus) != "" {
		status = player.ParseInjuryStatus(args.InjuryStatus)
	}
	return jsonResult(t.lineup.AdjustedScore(scoring.Signals{
		Weekly:        args.Weekly,
		SeasonPerGame: args.SeasonPerGame,
		Recent:        args.Recent,
		VsOpponent:    args.VsOpponent,
		Injury:        status,
	})), nil, nil
}

func (t *Toolset) RosterNeeds(ctx context.Context, _ *mcp.CallToolRequest, args RosterArgs) (*mcp.CallToolResult, any, error) {
	if err := t.validate(ctx, args); err != nil {
		return t.fail(ctx, "roster_needs", err)
	}
	return jsonResult(t.roster.Needs(args.Roster)), nil, nil
}

func (t *Toolset) RosterConstruction(ctx context.Context, _ *mcp.CallToolRequest, args RosterArgs) (*mcp.CallToolResult, any, error) {
	if err := t.validate(ctx, args); err != nil {
		return t.fail(ctx, "roster_construction", err)
	}
	c := t.roster.Analyze(args.Roster)
	return jsonResult(map[string]any{
		"roster_breakdown":  c.Positions,
		"total_roster_size": c.RosterSize,
		"waiver_priorities": c.Priorities(),
		"summary":           c.Summary(),
	}), nil, nil
}

func (t *Toolset) InjuryReport(ctx context.Context, _ *mcp.CallToolRequest, args RosterArgs) (*mcp.CallToolResult, any, error) {
	if err := t.validate(ctx, args); err != nil {
		return t.fail(ctx, "injury_report", err)
	}
	return jsonResult(t.roster.Injuries(args.Roster)), nil, nil
}

func (t *Toolset) WaiverTargets(ctx context.Context, _ *mcp.CallToolRequest, args WaiverTargetsArgs) (*mcp.CallToolResult, any, error) {
	if err := t.validate(ctx, args); err != nil {
		return t.fail(ctx, "waiver_targets", err)
	}
	res, err := t.waiver.Targets(ctx, usecase.WaiverTargetsInput{
		Position:     args.Position,
		Week:         args.Week,
		MinPoints:    args.MinPoints,
		MaxOwnership: args.MaxOwnership,
	})
	if err != nil {
		return t.fail(ctx, "waiver_targets", err)
	}
	return jsonResult(res), nil, nil
}

func (t *Toolset) WaiverAnalysis(ctx context.Context, _ *mcp.CallToolRequest, args WaiverAnalysisArgs) (*mcp.CallToolResult, any, error) {
	if err := t.validate(ctx, args); err != nil {
		return t.fail(ctx, "waiver_analysis", err)
	}
	res, err := t.waiver.Analyze(ctx, usecase.WaiverAnalysisInput{Roster: args.Roster, Week: args.Week})
	if err != nil {
		return t.fail(ctx, "waiver_analysis", err)
	}
	return jsonResult(res), nil, nil
}

func (t *Toolset) PlayerPerformance(ctx context.Context, _ *mcp.CallToolRequest, args PlayerPerformanceArgs) (*mcp.CallToolResult, any, error) {
	if err := t.validate(ctx, args); err != nil {
		return t.fail(ctx, "player_performance", err)
	}
	res, err := t.players.Performance(ctx, args.Name, args.Weeks)
	if err != nil {
		return t.fail(ctx, "player_performance", err)
	}
	return jsonResult(res), nil, nil
}

func (t *Toolset) ComparePlayers(ctx context.Context, _ *mcp.CallToolRequest, args ComparePlayersArgs) (*mcp.CallToolResult, any, error) {
	if err := t.validate(ctx, args); err != nil {
		return t.fail(ctx, "compare_players", err)
	}
	res, err := t.players.Compare(ctx, usecase.CompareInput{
		Names:  args.Names,
		Week:   args.Week,
		Metric: usecase.CompareMetric(args.Metric),
	})
	if err != nil {
		return t.fail(ctx, "compare_players", err)
	}
	return jsonResult(res), nil, nil
}

func (t *Toolset) InvalidateRosteredCache(ctx context.Context, _ *mcp.CallToolRequest, _ InvalidateArgs) (*mcp.CallToolResult, any, error) {
	if err := t.waiver.InvalidateRostered(ctx); err != nil {
		return t.fail(ctx, "invalidate_rostered_cache", err)
	}
	return jsonResult(map[string]string{"status": "invalidated"}), nil, nil
}
