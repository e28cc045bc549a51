// Command coach runs the fantasy coaching tools from the shell or as an MCP
// server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/riskibarqy/fantasy-coach/internal/app"
	"github.com/riskibarqy/fantasy-coach/internal/config"
	"github.com/riskibarqy/fantasy-coach/internal/platform/logging"
	"github.com/spf13/cobra"
)

type cli struct {
	cfg    config.Config
	logger *logging.Logger
	app    *app.App
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "coach",
		Short:         "Fantasy football lineup, roster and waiver coaching",
		Long:          "coach optimizes lineups, audits rosters and searches the waiver wire. Input is JSON from files (- for stdin); output is JSON on stdout.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd.Context())
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return c.close()
		},
	}

	root.AddCommand(
		newLineupCmd(c),
		newNeedsCmd(c),
		newWaiversCmd(c),
		newScoreCmd(c),
		newPlayerCmd(c),
		newMCPCmd(c),
	)
	return root
}

func (c *cli) setup(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.logger = logging.NewConsole(cfg.LogLevel)
	logging.SetDefault(c.logger)

	c.app, err = app.New(ctx, cfg, c.logger)
	if err != nil {
		return fmt.Errorf("build app: %w", err)
	}
	return nil
}

func (c *cli) close() error {
	if c.app == nil {
		return nil
	}
	err := c.app.Close()
	c.app = nil
	_ = c.logger.Sync()
	return err
}

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
