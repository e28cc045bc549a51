package app

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/riskibarqy/fantasy-coach/internal/config"
	"github.com/riskibarqy/fantasy-coach/internal/domain/player"
	"github.com/riskibarqy/fantasy-coach/internal/domain/roster"
	"github.com/riskibarqy/fantasy-coach/internal/domain/waiver"
	repocache "github.com/riskibarqy/fantasy-coach/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/fantasy-coach/internal/infrastructure/repository/dynamo"
	"github.com/riskibarqy/fantasy-coach/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fantasy-coach/internal/infrastructure/repository/postgres"
	redisrepo "github.com/riskibarqy/fantasy-coach/internal/infrastructure/repository/redis"
	basecache "github.com/riskibarqy/fantasy-coach/internal/platform/cache"
	"github.com/riskibarqy/fantasy-coach/internal/platform/logging"
	"github.com/riskibarqy/fantasy-coach/internal/platform/resilience"
	"github.com/riskibarqy/fantasy-coach/internal/usecase"
)

type stores struct {
	players  player.Repository
	teams    roster.Repository
	waivers  waiver.Pool
	rostered usecase.RosteredCache
}

func (a *App) buildStores(ctx context.Context) (stores, error) {
	var (
		out      stores
		dynamoDB *dynamodb.Client
	)

	dynamoClient := func() (*dynamodb.Client, error) {
		if dynamoDB != nil {
			return dynamoDB, nil
		}
		client, err := dynamo.NewClient(ctx)
		if err != nil {
			return nil, err
		}
		dynamoDB = client
		return client, nil
	}

	switch a.cfg.PlayerStore {
	case config.StorePostgres:
		db, err := openPostgres(ctx, a.cfg)
		if err != nil {
			return stores{}, err
		}
		a.closers = append(a.closers, db.Close)
		if a.cfg.AppEnv == config.EnvDev {
			if err := postgres.BootstrapSeed(ctx, db); err != nil {
				return stores{}, err
			}
		}
		out.players = postgres.NewPlayerRepository(db)
	case config.StoreDynamoDB:
		client, err := dynamoClient()
		if err != nil {
			return stores{}, err
		}
		out.players = dynamo.NewPlayerRepository(client, a.cfg.DynamoDBPlayersTable, a.dynamoOptions(a.cfg.DynamoDBPlayersTable))
	default:
		out.players = memory.NewPlayerRepository(memory.SeedRecords())
	}

	switch a.cfg.RosterStore {
	case config.StoreDynamoDB:
		client, err := dynamoClient()
		if err != nil {
			return stores{}, err
		}
		out.teams = dynamo.NewTeamRepository(client, a.cfg.DynamoDBRostersTable, a.dynamoOptions(a.cfg.DynamoDBRostersTable))
	default:
		out.teams = memory.NewTeamRepository(memory.SeedTeams())
	}

	switch a.cfg.WaiverStore {
	case config.StoreDynamoDB:
		client, err := dynamoClient()
		if err != nil {
			return stores{}, err
		}
		out.waivers = dynamo.NewWaiverRepository(client, a.cfg.DynamoDBWaiverTable, a.dynamoOptions(a.cfg.DynamoDBWaiverTable))
	default:
		out.waivers = memory.NewWaiverRepository(memory.SeedWaiverPool())
	}

	if a.cfg.CacheEnabled {
		if a.cfg.PlayerStore != config.StoreMemory {
			out.players = repocache.NewPlayerRepository(out.players, basecache.NewStore(a.cfg.CacheTTL))
		}
		if a.cfg.RosterStore != config.StoreMemory {
			out.teams = repocache.NewTeamRepository(out.teams, basecache.NewStore(a.cfg.CacheTTL))
		}
		if a.cfg.WaiverStore != config.StoreMemory {
			out.waivers = repocache.NewWaiverRepository(out.waivers, basecache.NewStore(a.cfg.CacheTTL))
		}
	}

	switch a.cfg.RosteredCache {
	case config.StoreRedis:
		client := redisrepo.NewClient(a.cfg.RedisAddr, a.cfg.RedisPassword, a.cfg.RedisDB)
		a.closers = append(a.closers, client.Close)
		out.rostered = redisrepo.NewRosteredCache(client, a.cfg.CacheTTL, a.logger)
	default:
		out.rostered = usecase.NewMemoryRosteredCache(basecache.NewStore(a.cfg.CacheTTL))
	}

	return out, nil
}

// dynamoOptions builds a separate breaker for every table.
func (a *App) dynamoOptions(table string) dynamo.Options {
	return dynamo.Options{
		Logger: a.logger,
		Breaker: resilience.NewFromConfig(resilience.CircuitBreakerConfig{
			Enabled:          a.cfg.DynamoDBCircuitEnabled,
			Name:             "dynamodb:" + table,
			OnStateChange:    logBreakerChange(a.logger),
			FailureThreshold: a.cfg.DynamoDBCircuitFailureCount,
			OpenTimeout:      a.cfg.DynamoDBCircuitOpenTimeout,
			HalfOpenMaxReq:   a.cfg.DynamoDBCircuitHalfOpenMaxRq,
		}),
	}
}

func logBreakerChange(logger *logging.Logger) resilience.StateChangeFunc {
	return func(name string, from, to resilience.CircuitState) {
		if to == resilience.CircuitStateOpen {
			logger.Warn("circuit breaker opened", "breaker", name, "from", string(from))
			return
		}
		logger.Info("circuit breaker state changed", "breaker", name, "from", string(from), "to", string(to))
	}
}
