package observability

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/riskibarqy/fantasy-coach/internal/config"
	"github.com/riskibarqy/fantasy-coach/internal/platform/logging"
)

var namedProfiles = []string{"heap", "goroutine", "allocs", "block", "mutex", "threadcreate"}

func pprofMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /debug/pprof/{$}", pprof.Index)
	mux.HandleFunc("GET /debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("GET /debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("GET /debug/pprof/trace", pprof.Trace)
	for _, name := range namedProfiles {
		mux.Handle("GET /debug/pprof/"+name, pprof.Handler(name))
	}
	return mux
}

// DebugServer exposes runtime profiles on their own listener so they never
// share a port with the public API. A nil *DebugServer is valid and idle.
type DebugServer struct {
	srv    *http.Server
	logger *logging.Logger
}

// StartDebugServer binds PPROF_ADDR and serves in the background. It returns
// nil when PPROF_ENABLED is false.
func StartDebugServer(cfg config.Config, logger *logging.Logger) (*DebugServer, error) {
	logger = logger.Named("pprof")
	if !cfg.PprofEnabled {
		return nil, nil
	}

	ln, err := net.Listen("tcp", cfg.PprofAddr)
	if err != nil {
		return nil, err
	}
	d := &DebugServer{
		srv:    &http.Server{Handler: pprofMux(), ReadHeaderTimeout: 5 * time.Second},
		logger: logger,
	}
	go func() {
		if err := d.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("debug server stopped unexpectedly", "error", err)
		}
	}()
	logger.Info("debug server listening", "addr", ln.Addr().String())
	return d, nil
}

func (d *DebugServer) Shutdown(ctx context.Context) error {
	if d == nil {
		return nil
	}
	if err := d.srv.Shutdown(ctx); err != nil {
		return err
	}
	d.logger.Info("debug server stopped")
	return nil
}
