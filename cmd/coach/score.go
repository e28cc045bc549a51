package main

import (
	"github.com/riskibarqy/fantasy-coach/internal/domain/player"
	"github.com/riskibarqy/fantasy-coach/internal/domain/scoring"
	"github.com/spf13/cobra"
)

func newScoreCmd(c *cli) *cobra.Command {
	var (
		sig        scoring.Signals
		vsOpponent float64
		injury     string
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Blend projection signals into an injury-adjusted score",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("vs-opponent") {
				sig.VsOpponent = &vsOpponent
			}
			sig.Injury = player.InjuryHealthy
			if injury != "" {
				sig.Injury = player.ParseInjuryStatus(injury)
			}
			return writeJSON(cmd.OutOrStdout(), c.app.Lineup.AdjustedScore(sig))
		},
	}

	cmd.Flags().Float64Var(&sig.Weekly, "weekly", 0, "Weekly projected points")
	cmd.Flags().Float64Var(&sig.SeasonPerGame, "season", 0, "Season projected points per game")
	cmd.Flags().Float64Var(&sig.Recent, "recent", 0, "Average of recent games")
	cmd.Flags().Float64Var(&vsOpponent, "vs-opponent", 0, "Historical average against this week's opponent")
	cmd.Flags().StringVar(&injury, "injury", "", "Injury designation, e.g. Questionable")
	return cmd
}
