package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

func newMCPCmd(c *cli) *cobra.Command {
	var (
		transport string
		addr      string
	)

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the coaching tools over MCP (stdio or streamable HTTP)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			switch transport {
			case "stdio":
				c.app.Start()
				return c.app.MCPServer().RunStdio(ctx)
			case "http":
				srv, err := c.app.MCPHTTPServer()
				if err != nil {
					return err
				}
				if addr != "" {
					srv.Addr = addr
				}
				c.app.Start()
				return serveUntilDone(ctx, c, srv)
			default:
				return fmt.Errorf("unknown transport %q: use stdio or http", transport)
			}
		},
	}

	cmd.Flags().StringVar(&transport, "transport", "stdio", "stdio or http")
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address for http (default MCP_ADDR)")
	return cmd
}

func serveUntilDone(ctx context.Context, c *cli, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		c.logger.Info("mcp server starting", "addr", srv.Addr, "path", c.cfg.MCPPath)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown mcp server: %w", err)
	}
	c.logger.Info("mcp server stopped")
	return nil
}
