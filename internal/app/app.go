package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/riskibarqy/fantasy-coach/external/fantasypros"
	"github.com/riskibarqy/fantasy-coach/internal/config"
	"github.com/riskibarqy/fantasy-coach/internal/interfaces/httpapi"
	"github.com/riskibarqy/fantasy-coach/internal/interfaces/mcptools"
	idgen "github.com/riskibarqy/fantasy-coach/internal/platform/id"
	"github.com/riskibarqy/fantasy-coach/internal/platform/logging"
	"github.com/riskibarqy/fantasy-coach/internal/platform/resilience"
	"github.com/riskibarqy/fantasy-coach/internal/usecase"
	"github.com/robfig/cron/v3"
)

// App holds the coaching services and the resources behind them.
type App struct {
	cfg    config.Config
	logger *logging.Logger

	Lineup  *usecase.LineupService
	Roster  *usecase.RosterService
	Waiver  *usecase.WaiverService
	Players *usecase.PlayerInsightService

	scheduler *cron.Cron
	closers   []func() error
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	a := &App{cfg: cfg, logger: logger}
	st, err := a.buildStores(ctx)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	projections := fantasypros.NewClient(fantasypros.ClientConfig{
		BaseURL:         cfg.FantasyProsBaseURL,
		ScoringFormat:   cfg.ScoringFormat,
		Timeout:         cfg.FantasyProsTimeout,
		MaxRetries:      cfg.FantasyProsMaxRetries,
		RequestInterval: cfg.FantasyProsRequestInterval,
		Logger:          logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.FantasyProsCircuitEnabled,
			Name:             "fantasypros",
			OnStateChange:    logBreakerChange(logger),
			FailureThreshold: cfg.FantasyProsCircuitFailureCount,
			OpenTimeout:      cfg.FantasyProsCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.FantasyProsCircuitHalfOpenMax,
		},
	})

	builder := usecase.NewCandidateBuilder(st.players, usecase.CandidateBuilderConfig{
		Workers:       cfg.CandidateWorkers,
		LookupTimeout: cfg.CandidateLookupTimeout,
		Strategy:      cfg.ScoringBlend,
		Season:        cfg.CurrentSeason,
		HistorySeason: cfg.HistorySeason,
	}, logger)

	a.Lineup = usecase.NewLineupService(builder, st.teams, projections, usecase.LineupServiceConfig{
		Slots:       cfg.LineupSlots,
		Strategy:    cfg.LineupStrategy,
		BenchLimit:  cfg.BenchLimit,
		CurrentWeek: cfg.CurrentWeek,
		Blend:       cfg.ScoringBlend,
	}, logger)
	a.Roster = usecase.NewRosterService(st.teams, cfg.RosterRules)
	a.Waiver = usecase.NewWaiverService(st.waivers, builder, st.teams, st.rostered, usecase.WaiverServiceConfig{
		CurrentWeek:   cfg.CurrentWeek,
		Season:        cfg.CurrentSeason,
		HistorySeason: cfg.HistorySeason,
		Requirements:  cfg.RosterRules,
	}, logger)
	a.Players = usecase.NewPlayerInsightService(st.players, cfg.CurrentSeason, cfg.HistorySeason, cfg.CurrentWeek)

	if err := a.schedule(); err != nil {
		_ = a.Close()
		return nil, err
	}

	logger.Info("app initialized",
		"player_store", cfg.PlayerStore,
		"roster_store", cfg.RosterStore,
		"waiver_store", cfg.WaiverStore,
		"rostered_cache", cfg.RosteredCache,
		"cache_enabled", cfg.CacheEnabled,
		"lineup_strategy", cfg.LineupStrategy,
		"current_week", cfg.CurrentWeek,
	)

	return a, nil
}

// schedule registers the rostered-cache refresh. The scheduler runs once
// Start is called.
func (a *App) schedule() error {
	if a.cfg.RosterCacheRefreshCron == "" {
		return nil
	}

	a.scheduler = cron.New()
	_, err := a.scheduler.AddFunc(a.cfg.RosterCacheRefreshCron, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := a.Waiver.InvalidateRostered(ctx); err != nil {
			a.logger.WarnContext(ctx, "scheduled rostered cache invalidation failed", "error", err)
			return
		}
		a.logger.InfoContext(ctx, "rostered cache invalidated", "trigger", "cron")
	})
	if err != nil {
		return fmt.Errorf("parse ROSTER_CACHE_REFRESH_CRON: %w", err)
	}
	return nil
}

// Start runs background jobs.
func (a *App) Start() {
	if a.scheduler == nil {
		return
	}
	a.scheduler.Start()
	a.logger.Info("scheduler started", "spec", a.cfg.RosterCacheRefreshCron)
}

func (a *App) Toolset() *mcptools.Toolset {
	return mcptools.NewToolset(a.Lineup, a.Roster, a.Waiver, a.Players, a.logger)
}

func (a *App) MCPServer() *mcptools.Server {
	return mcptools.NewServer(a.Toolset(), a.cfg.ServiceVersion, a.logger)
}

func (a *App) HTTPServer() (*http.Server, error) {
	if a.cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	handler := httpapi.NewHandler(a.Lineup, a.Roster, a.Waiver, a.Players, a.logger)
	router := httpapi.NewRouter(handler, a.logger, httpapi.RouterConfig{
		CORSAllowedOrigins: a.cfg.CORSAllowedOrigins,
		InternalJobToken:   a.cfg.InternalJobToken,
		IDGenerator:        idgen.NewUUIDGenerator(),
	})

	return &http.Server{
		Addr:              a.cfg.HTTPAddr,
		Handler:           router,
		ReadTimeout:       a.cfg.ReadTimeout,
		ReadHeaderTimeout: a.cfg.ReadTimeout,
		WriteTimeout:      a.cfg.WriteTimeout,
	}, nil
}

// MCPHTTPServer serves the MCP tools over streamable HTTP on MCP_ADDR.
func (a *App) MCPHTTPServer() (*http.Server, error) {
	if a.cfg.MCPAddr == "" {
		return nil, fmt.Errorf("mcp server addr cannot be empty")
	}
	return &http.Server{
		Addr:              a.cfg.MCPAddr,
		Handler:           a.MCPServer().HTTPHandler(a.cfg.MCPPath, a.cfg.MCPAPIKey),
		ReadHeaderTimeout: a.cfg.ReadTimeout,
	}, nil
}

// Close stops the scheduler and releases store connections in reverse
// order of creation.
func (a *App) Close() error {
	if a.scheduler != nil {
		<-a.scheduler.Stop().Done()
		a.scheduler = nil
	}

	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
