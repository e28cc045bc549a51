package redis

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/bytedance/sonic"
	goredis "github.com/redis/go-redis/v9"
	"github.com/riskibarqy/fantasy-coach/internal/platform/logging"
	"github.com/riskibarqy/fantasy-coach/internal/usecase"
	"golang.org/x/sync/singleflight"
)

const (
	rosteredKey        = "fantasy-coach:rostered:names"
	defaultRosteredTTL = 10 * time.Minute
)

// Client is the subset of *goredis.Client the cache uses.
type Client interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *goredis.StatusCmd
	Del(ctx context.Context, keys ...string) *goredis.IntCmd
}

func NewClient(addr, password string, db int) *goredis.Client {
	return goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// RosteredCache shares the rostered-name set between processes. Redis
// failures fall through to the loader; the set is then served uncached.
type RosteredCache struct {
	client Client
	ttl    time.Duration
	logger *logging.Logger
	group  singleflight.Group
}

func NewRosteredCache(client Client, ttl time.Duration, logger *logging.Logger) *RosteredCache {
	if ttl <= 0 {
		ttl = defaultRosteredTTL
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &RosteredCache{client: client, ttl: ttl, logger: logger}
}

func (c *RosteredCache) Get(ctx context.Context, loader usecase.RosteredLoader) (map[string]struct{}, error) {
	if loader == nil {
		return nil, fmt.Errorf("%w: rostered loader is required", usecase.ErrInvalidInput)
	}

	if names, ok := c.read(ctx); ok {
		return names, nil
	}

	v, err, _ := c.group.Do(rosteredKey, func() (any, error) {
		names, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		c.write(ctx, names)
		return names, nil
	})
	if err != nil {
		return nil, err
	}
	return cloneSet(v.(map[string]struct{})), nil
}

func (c *RosteredCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, rosteredKey).Err(); err != nil {
		return fmt.Errorf("delete rostered cache key: %w", err)
	}
	return nil
}

func (c *RosteredCache) read(ctx context.Context) (map[string]struct{}, bool) {
	raw, err := c.client.Get(ctx, rosteredKey).Bytes()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			c.logger.WarnContext(ctx, "read rostered cache failed", "error", err)
		}
		return nil, false
	}

	var names []string
	if err := sonic.Unmarshal(raw, &names); err != nil {
		c.logger.WarnContext(ctx, "decode rostered cache failed", "error", err)
		return nil, false
	}
	out := make(map[string]struct{}, len(names))
	for _, name := range names {
		out[name] = struct{}{}
	}
	return out, true
}

func (c *RosteredCache) write(ctx context.Context, names map[string]struct{}) {
	list := make([]string, 0, len(names))
	for name := range names {
		list = append(list, name)
	}
	sort.Strings(list)

	raw, err := sonic.Marshal(list)
	if err != nil {
		c.logger.WarnContext(ctx, "encode rostered cache failed", "error", err)
		return
	}
	if err := c.client.Set(ctx, rosteredKey, raw, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "write rostered cache failed", "error", err)
	}
}

func cloneSet(in map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(in))
	for k := range in {
		out[k] = struct{}{}
	}
	return out
}
