package main

import (
	"github.com/riskibarqy/fantasy-coach/internal/domain/player"
	"github.com/spf13/cobra"
)

func newNeedsCmd(c *cli) *cobra.Command {
	var (
		rosterPath string
		analyze    bool
		injuries   bool
	)

	cmd := &cobra.Command{
		Use:   "needs",
		Short: "Report starter shortfalls, roster construction or injury exposure",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var roster []player.RosterPlayer
			if err := readJSON(cmd.InOrStdin(), rosterPath, &roster); err != nil {
				return err
			}

			switch {
			case injuries:
				return writeJSON(cmd.OutOrStdout(), c.app.Roster.Injuries(roster))
			case analyze:
				construction := c.app.Roster.Analyze(roster)
				return writeJSON(cmd.OutOrStdout(), map[string]any{
					"roster_breakdown":  construction.Positions,
					"total_roster_size": construction.RosterSize,
					"waiver_priorities": construction.Priorities(),
					"summary":           construction.Summary(),
				})
			default:
				return writeJSON(cmd.OutOrStdout(), c.app.Roster.Needs(roster))
			}
		},
	}

	cmd.Flags().StringVarP(&rosterPath, "roster", "r", "", "Path to roster JSON array (- for stdin)")
	cmd.Flags().BoolVar(&analyze, "analyze", false, "Print depth and waiver priority per position")
	cmd.Flags().BoolVar(&injuries, "injuries", false, "Print injured players with healthy alternatives")
	cmd.MarkFlagsMutuallyExclusive("analyze", "injuries")
	if err := cmd.MarkFlagRequired("roster"); err != nil {
		panic(err)
	}
	return cmd
}
