package observability

import (
	"testing"

	"github.com/riskibarqy/fantasy-coach/internal/config"
	"github.com/riskibarqy/fantasy-coach/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitUptrace_Off(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		cfg    config.Config
		reason string
	}{
		{name: "flag off", cfg: config.Config{UptraceDSN: "https://token@api.uptrace.dev/1"}, reason: "UPTRACE_ENABLED=false"},
		{name: "dsn empty", cfg: config.Config{UptraceEnabled: true, UptraceDSN: "  "}, reason: "UPTRACE_DSN empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.reason, tracingOffReason(tt.cfg))

			tt.cfg.ServiceName = "fantasy-coach-api"
			shutdown, err := InitUptrace(tt.cfg, logging.NewNop())
			require.NoError(t, err)
			require.NoError(t, shutdown(t.Context()))
		})
	}
}

func TestTracingOffReason_Ready(t *testing.T) {
	t.Parallel()

	cfg := config.Config{UptraceEnabled: true, UptraceDSN: "https://token@api.uptrace.dev/1"}
	assert.Empty(t, tracingOffReason(cfg))
}
