package main

import (
	"fmt"

	"github.com/riskibarqy/fantasy-coach/internal/domain/player"
	"github.com/riskibarqy/fantasy-coach/internal/usecase"
	"github.com/spf13/cobra"
)

func newWaiversCmd(c *cli) *cobra.Command {
	var (
		position     string
		rosterPath   string
		week         int
		maxOwnership float64
		minPoints    float64
	)

	cmd := &cobra.Command{
		Use:   "waivers",
		Short: "Search the waiver wire by position, or for the positions a roster needs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if (position == "") == (rosterPath == "") {
				return fmt.Errorf("exactly one of --position or --roster is required")
			}

			if rosterPath != "" {
				var roster []player.RosterPlayer
				if err := readJSON(cmd.InOrStdin(), rosterPath, &roster); err != nil {
					return err
				}
				res, err := c.app.Waiver.Analyze(cmd.Context(), usecase.WaiverAnalysisInput{Roster: roster, Week: week})
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), res)
			}

			input := usecase.WaiverTargetsInput{
				Position:     position,
				Week:         week,
				MaxOwnership: maxOwnership,
			}
			if cmd.Flags().Changed("min-points") {
				input.MinPoints = &minPoints
			}
			res, err := c.app.Waiver.Targets(cmd.Context(), input)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().StringVar(&position, "position", "", "Position to search: QB, RB, WR, TE, K or DST")
	cmd.Flags().StringVarP(&rosterPath, "roster", "r", "", "Path to roster JSON array for a needs-based analysis")
	cmd.Flags().IntVarP(&week, "week", "w", 0, "NFL week (0 = CURRENT_WEEK)")
	cmd.Flags().Float64Var(&maxOwnership, "max-ownership", 0, "Maximum ownership percentage (default 50)")
	cmd.Flags().Float64Var(&minPoints, "min-points", 0, "Minimum projected points (default depends on position)")
	return cmd
}
