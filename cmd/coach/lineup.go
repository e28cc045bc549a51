package main

import (
	"fmt"
	"strings"

	"github.com/riskibarqy/fantasy-coach/internal/domain/lineup"
	"github.com/riskibarqy/fantasy-coach/internal/domain/player"
	"github.com/riskibarqy/fantasy-coach/internal/domain/projection"
	"github.com/riskibarqy/fantasy-coach/internal/usecase"
	"github.com/spf13/cobra"
)

func newLineupCmd(c *cli) *cobra.Command {
	var (
		rosterPath      string
		projectionsPath string
		teamID          string
		slots           []string
		week            int
		strategy        string
	)

	cmd := &cobra.Command{
		Use:   "lineup",
		Short: "Fill lineup slots from a roster file or a stored team",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if (rosterPath == "") == (teamID == "") {
				return fmt.Errorf("exactly one of --roster or --team is required")
			}
			if teamID != "" {
				res, err := c.app.Lineup.OptimizeTeam(cmd.Context(), teamID, week)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), res)
			}

			var roster []player.RosterPlayer
			if err := readJSON(cmd.InOrStdin(), rosterPath, &roster); err != nil {
				return err
			}
			var projections projection.Weekly
			if projectionsPath != "" {
				if err := readJSON(cmd.InOrStdin(), projectionsPath, &projections); err != nil {
					return err
				}
			}

			res, err := c.app.Lineup.Optimize(cmd.Context(), usecase.OptimizeLineupInput{
				Roster:      roster,
				Projections: projections,
				Slots:       upper(slots),
				Week:        week,
				Strategy:    lineup.Strategy(strings.ToLower(strategy)),
			})
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().StringVarP(&rosterPath, "roster", "r", "", "Path to roster JSON array (- for stdin)")
	cmd.Flags().StringVarP(&projectionsPath, "projections", "p", "", "Path to weekly projections JSON keyed by position")
	cmd.Flags().StringVar(&teamID, "team", "", "Stored team id to optimize instead of --roster")
	cmd.Flags().StringSliceVar(&slots, "slots", nil, "Lineup slots, e.g. QB,RB,RB,WR,WR,TE,FLEX,K,DST")
	cmd.Flags().IntVarP(&week, "week", "w", 0, "NFL week (0 = CURRENT_WEEK)")
	cmd.Flags().StringVar(&strategy, "strategy", "", "Optimizer: greedy or hungarian")
	return cmd
}

func upper(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.ToUpper(strings.TrimSpace(item)); item != "" {
			out = append(out, item)
		}
	}
	return out
}
