package observability

import (
	"context"
	"strings"

	"github.com/riskibarqy/fantasy-coach/internal/config"
	"github.com/riskibarqy/fantasy-coach/internal/platform/logging"
	"github.com/uptrace/uptrace-go/uptrace"
	"go.opentelemetry.io/otel/attribute"
)

// ShutdownFunc flushes and stops a telemetry provider.
type ShutdownFunc func(context.Context) error

func noopShutdown(context.Context) error { return nil }

// tracingOffReason returns why tracing stays off, or "" when it can start.
func tracingOffReason(cfg config.Config) string {
	switch {
	case !cfg.UptraceEnabled:
		return "UPTRACE_ENABLED=false"
	case strings.TrimSpace(cfg.UptraceDSN) == "":
		return "UPTRACE_DSN empty"
	default:
		return ""
	}
}

// InitUptrace installs the global OpenTelemetry providers exported to
// Uptrace. The returned shutdown is always safe to call.
func InitUptrace(cfg config.Config, logger *logging.Logger) (ShutdownFunc, error) {
	logger = logger.Named("uptrace")
	if reason := tracingOffReason(cfg); reason != "" {
		logger.Info("tracing off", "reason", reason)
		return noopShutdown, nil
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
		uptrace.WithResourceAttributes(
			attribute.Int("coach.season", cfg.CurrentSeason),
			attribute.String("coach.scoring_format", cfg.ScoringFormat),
		),
	)
	logger.Info("tracing on", "service_name", cfg.ServiceName, "service_version", cfg.ServiceVersion)
	return uptrace.Shutdown, nil
}
