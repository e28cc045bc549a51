package mcptools

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/riskibarqy/fantasy-coach/internal/platform/logging"
)

const serverName = "fantasy-coach"

type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Server wraps the MCP server with the registry of tools it exposes.
type Server struct {
	mcp      *mcp.Server
	registry []ToolInfo
	logger   *logging.Logger
}

func NewServer(tools *Toolset, version string, logger *logging.Logger) *Server {
	if logger == nil {
		logger = logging.Default()
	}
	s := &Server{
		mcp: mcp.NewServer(&mcp.Implementation{
			Name:    serverName,
			Version: version,
		}, nil),
		registry: make([]ToolInfo, 0, 10),
		logger:   logger,
	}

	addTool(s, &mcp.Tool{
		Name:        "optimize_lineup",
		Description: "Fill lineup slots from a roster using blended projections; unfilled slots carry an error",
	}, tools.OptimizeLineup)
	addTool(s, &mcp.Tool{
		Name:        "adjusted_score",
		Description: "Blend weekly, season, recent and matchup signals into an injury-adjusted score with confidence",
	}, tools.AdjustedScore)
	addTool(s, &mcp.Tool{
		Name:        "roster_needs",
		Description: "Starter shortfall per position, counting surplus RB/WR/TE toward FLEX",
	}, tools.RosterNeeds)
	addTool(s, &mcp.Tool{
		Name:        "roster_construction",
		Description: "Depth, injury exposure and waiver priority per position",
	}, tools.RosterConstruction)
	addTool(s, &mcp.Tool{
		Name:        "injury_report",
		Description: "Injured roster players with severity and healthy alternatives",
	}, tools.InjuryReport)
	addTool(s, &mcp.Tool{
		Name:        "waiver_targets",
		Description: "Low-owned available players at one position ranked by upside",
	}, tools.WaiverTargets)
	addTool(s, &mcp.Tool{
		Name:        "waiver_analysis",
		Description: "Waiver recommendations for the positions a roster needs",
	}, tools.WaiverAnalysis)
	addTool(s, &mcp.Tool{
		Name:        "player_performance",
		Description: "Recent weekly breakdown, averages and consistency for one player",
	}, tools.PlayerPerformance)
	addTool(s, &mcp.Tool{
		Name:        "compare_players",
		Description: "Rank two or more players for a start/sit decision",
	}, tools.ComparePlayers)
	addTool(s, &mcp.Tool{
		Name:        "invalidate_rostered_cache",
		Description: "Drop the cached set of rostered player names",
	}, tools.InvalidateRosteredCache)

	return s
}

func addTool[T any](s *Server, tool *mcp.Tool, handler func(context.Context, *mcp.CallToolRequest, T) (*mcp.CallToolResult, any, error)) {
	s.registry = append(s.registry, ToolInfo{Name: tool.Name, Description: tool.Description})
	mcp.AddTool(s.mcp, tool, handler)
}

func (s *Server) MCP() *mcp.Server {
	return s.mcp
}

func (s *Server) Tools() []ToolInfo {
	return append([]ToolInfo(nil), s.registry...)
}

// RunStdio serves the tools over stdin/stdout until ctx is done or the
// client disconnects.
func (s *Server) RunStdio(ctx context.Context) error {
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

// HTTPHandler serves streamable HTTP at path with JSON responses, plus
// /healthz and /tools. A non-empty apiKey is required on every request via
// X-API-Key or a bearer token.
func (s *Server) HTTPHandler(path, apiKey string) http.Handler {
	if strings.TrimSpace(path) == "" {
		path = "/mcp"
	}
	streamable := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcp
	}, &mcp.StreamableHTTPOptions{JSONResponse: true})

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("GET /tools", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"tools": s.registry})
	})
	mux.Handle(path, streamable)

	return requireAPIKey(strings.TrimSpace(apiKey), mux)
}

func requireAPIKey(apiKey string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if apiKey == "" {
			next.ServeHTTP(w, r)
			return
		}
		key := strings.TrimSpace(r.Header.Get("X-API-Key"))
		if key == "" {
			if authz := r.Header.Get("Authorization"); len(authz) > 7 && strings.EqualFold(authz[:7], "bearer ") {
				key = strings.TrimSpace(authz[7:])
			}
		}
		if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) != 1 {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}
