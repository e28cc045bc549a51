package main

import (
	"strings"

	"github.com/riskibarqy/fantasy-coach/internal/usecase"
	"github.com/spf13/cobra"
)

func newPlayerCmd(c *cli) *cobra.Command {
	var weeks int

	cmd := &cobra.Command{
		Use:   "player <name>",
		Short: "Show recent weekly performance for one player",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.app.Players.Performance(cmd.Context(), strings.Join(args, " "), weeks)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().IntVar(&weeks, "weeks", 5, "Recent weeks to analyze")

	cmd.AddCommand(newCompareCmd(c))
	return cmd
}

func newCompareCmd(c *cli) *cobra.Command {
	var (
		week   int
		metric string
	)

	cmd := &cobra.Command{
		Use:   "compare <name> <name> [name...]",
		Short: "Rank players for a start/sit decision",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.app.Players.Compare(cmd.Context(), usecase.CompareInput{
				Names:  args,
				Week:   week,
				Metric: usecase.CompareMetric(strings.ToLower(metric)),
			})
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().IntVarP(&week, "week", "w", 0, "NFL week (0 = CURRENT_WEEK)")
	cmd.Flags().StringVar(&metric, "metric", string(usecase.MetricProjection), "Ranking metric: projection, season or recent")
	return cmd
}
