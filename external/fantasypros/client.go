package fantasypros

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fantasy-coach/internal/domain/player"
	"github.com/riskibarqy/fantasy-coach/internal/domain/projection"
	"github.com/riskibarqy/fantasy-coach/internal/platform/logging"
	"github.com/riskibarqy/fantasy-coach/internal/platform/resilience"
	"github.com/riskibarqy/fantasy-coach/internal/usecase"
	"github.com/valyala/fasthttp"
	"golang.org/x/sync/singleflight"
)

const (
	defaultBaseURL   = "https://www.fantasypros.com"
	defaultTimeout   = 15 * time.Second
	defaultUserAgent = "Mozilla/5.0 (compatible; fantasy-coach/1.0)"
	maxBodySize      = 4 << 20
)

var errFantasyProsTransient = crerr.New("fantasypros transient failure")

// Scoring formats accepted by the projection pages.
const (
	ScoringPPR      = "ppr"
	ScoringHalfPPR  = "half_ppr"
	ScoringStandard = "standard"
)

var scoringParams = map[string]string{
	ScoringPPR:      "PPR",
	ScoringHalfPPR:  "HALF",
	ScoringStandard: "STD",
}

type ClientConfig struct {
	HTTPClient      *fasthttp.Client
	BaseURL         string
	ScoringFormat   string
	Timeout         time.Duration
	MaxRetries      int
	RetryBackoff    time.Duration
	RequestInterval time.Duration
	Logger          *logging.Logger
	CircuitBreaker  resilience.CircuitBreakerConfig
}

// Client scrapes weekly projections and the injury report. Requests are
// spaced by RequestInterval across all callers.
type Client struct {
	httpClient   *fasthttp.Client
	baseURL      string
	scoring      string
	timeout      time.Duration
	maxRetries   int
	retryBackoff time.Duration
	interval     time.Duration
	logger       *logging.Logger
	breaker      *resilience.CircuitBreaker
	flight       singleflight.Group

	paceMu      sync.Mutex
	lastRequest time.Time
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &fasthttp.Client{
			Name:                     defaultUserAgent,
			MaxResponseBodySize:      maxBodySize,
			NoDefaultUserAgentHeader: true,
		}
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = time.Second
	}

	scoring, ok := scoringParams[strings.ToLower(strings.TrimSpace(cfg.ScoringFormat))]
	if !ok {
		scoring = scoringParams[ScoringPPR]
	}

	return &Client{
		httpClient:   httpClient,
		baseURL:      baseURL,
		scoring:      scoring,
		timeout:      timeout,
		maxRetries:   max(cfg.MaxRetries, 0),
		retryBackoff: backoff,
		interval:     max(cfg.RequestInterval, 0),
		logger:       logger,
		breaker:      resilience.NewFromConfig(cfg.CircuitBreaker),
	}
}

// Weekly fetches every position page for week. A failing position is logged
// and left empty; the call fails only when no position could be fetched.
func (c *Client) Weekly(ctx context.Context, week int) (projection.Weekly, error) {
	if week < 1 || week > 18 {
		return nil, fmt.Errorf("%w: week must be between 1 and 18", usecase.ErrInvalidInput)
	}

	out := make(projection.Weekly, len(player.AllPositions))
	var lastErr error
	fetched := 0
	for _, pos := range player.AllPositions {
		path := "/nfl/projections/" + strings.ToLower(string(pos)) + ".php"
		query := map[string]string{"week": strconv.Itoa(week)}
		if pos != player.PositionK && pos != player.PositionDST {
			query["scoring"] = c.scoring
		}

		body, err := c.get(ctx, path, query)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			c.logger.WarnContext(ctx, "fetch projections failed, continuing without position",
				"position", pos,
				"week", week,
				"error", err,
			)
			out[pos] = []projection.Row{}
			lastErr = err
			continue
		}

		rows, err := parseProjectionTable(body, pos)
		if err != nil {
			c.logger.WarnContext(ctx, "parse projections failed", "position", pos, "week", week, "error", err)
			out[pos] = []projection.Row{}
			lastErr = err
			continue
		}
		out[pos] = rows
		fetched++
		c.logger.DebugContext(ctx, "fetched projections", "position", pos, "week", week, "rows", len(rows))
	}

	if fetched == 0 && lastErr != nil {
		return nil, crerr.Wrapf(lastErr, "fetch week %d projections", week)
	}
	return out, nil
}

// InjuryReport returns injury designations keyed by player.JoinKey of the
// player name.
func (c *Client) InjuryReport(ctx context.Context) (map[string]player.InjuryStatus, error) {
	body, err := c.get(ctx, "/nfl/injury-report.php", nil)
	if err != nil {
		return nil, crerr.Wrap(err, "fetch injury report")
	}
	report, err := parseInjuryReport(body)
	if err != nil {
		return nil, crerr.Wrap(err, "parse injury report")
	}
	return report, nil
}

// get shares identical in-flight requests and records breaker outcomes.
func (c *Client) get(ctx context.Context, path string, query map[string]string) ([]byte, error) {
	fullURL := c.buildURL(path, query)
	if c.breaker != nil {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "fantasypros circuit breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("%w: projection provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		body, reqErr := c.executeRequest(ctx, fullURL)
		if c.breaker != nil {
			if reqErr != nil && crerr.Is(reqErr, errFantasyProsTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return body, reqErr
	})
	if err != nil {
		return nil, err
	}
	return out.([]byte), nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := c.pace(ctx); err != nil {
			return nil, err
		}

		status, body, err := c.do(ctx, fullURL)
		switch {
		case err != nil:
			lastErr = crerr.Wrapf(errFantasyProsTransient, "send request: %v", err)
		case status >= 200 && status < 300:
			return body, nil
		case isRetryableStatus(status):
			lastErr = crerr.Wrapf(errFantasyProsTransient, "provider status=%d", status)
		default:
			return nil, crerr.Newf("provider status=%d for %s", status, fullURL)
		}

		if attempt == c.maxRetries {
			break
		}
		if err := sleep(ctx, time.Duration(attempt+1)*c.retryBackoff); err != nil {
			return nil, err
		}
	}

	c.logger.WarnContext(ctx, "fantasypros request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func (c *Client) do(ctx context.Context, fullURL string) (int, []byte, error) {
	if err := ctx.Err(); err != nil {
		return 0, nil, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fullURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "text/html")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.SetUserAgent(defaultUserAgent)

	deadline := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	if err := c.httpClient.DoDeadline(req, resp, deadline); err != nil {
		return 0, nil, err
	}

	body := append([]byte(nil), resp.Body()...)
	return resp.StatusCode(), body, nil
}

// pace blocks until interval has passed since the previous request.
func (c *Client) pace(ctx context.Context) error {
	if c.interval <= 0 {
		return nil
	}
	c.paceMu.Lock()
	wait := time.Until(c.lastRequest.Add(c.interval))
	if wait < 0 {
		wait = 0
	}
	c.lastRequest = time.Now().Add(wait)
	c.paceMu.Unlock()

	if wait == 0 {
		return nil
	}
	return sleep(ctx, wait)
}

func (c *Client) buildURL(path string, query map[string]string) string {
	args := fasthttp.AcquireArgs()
	defer fasthttp.ReleaseArgs(args)
	keys := make([]string, 0, len(query))
	for key := range query {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		args.Set(key, query[key])
	}
	fullURL := c.baseURL + path
	if args.Len() > 0 {
		fullURL += "?" + args.String()
	}
	return fullURL
}

func isRetryableStatus(code int) bool {
	return code == fasthttp.StatusTooManyRequests || code >= 500
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
