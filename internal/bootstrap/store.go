package bootstrap

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"github.com/redis/go-redis/v9"

	"github.com/erikgalindohub/structurecareapp/config"
	"github.com/erikgalindohub/structurecareapp/internal/projects/repository"
	"github.com/erikgalindohub/structurecareapp/internal/storage/postgres"
	"github.com/erikgalindohub/structurecareapp/internal/storage/sqlite"
)

// OpenRedis connects to Redis when REDIS_ADDR is set. A nil client means the change feed
// stays in process.
func OpenRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.Addr == "" {
		return nil, nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

// OpenGateway builds the project gateway for the configured driver and applies migrations
// for the SQL drivers.
func OpenGateway(ctx context.Context, cfg config.DatabaseConfig, rdb *redis.Client, app *firebase.App) (repository.Gateway, error) {
	var feed repository.Feed
	if rdb != nil {
		feed = repository.NewRedisFeed(rdb)
	}

	switch cfg.Driver {
	case config.DriverPostgres:
		pool, err := postgres.Open(ctx, postgres.Options{DSN: postgres.DSN(cfg), MaxConns: cfg.MaxConns})
		if err != nil {
			return nil, err
		}
		gw := repository.NewPostgresGateway(pool, feed)
		if err := gw.Migrate(); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrate postgres: %w", err)
		}
		return gw, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		gw := repository.NewSQLiteGateway(db, feed)
		if err := gw.Migrate(); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrate sqlite: %w", err)
		}
		return gw, nil

	case config.DriverFirestore:
		if app == nil {
			return nil, fmt.Errorf("firestore driver requires firebase")
		}
		client, err := app.Firestore(ctx)
		if err != nil {
			return nil, fmt.Errorf("firestore client: %w", err)
		}
		return repository.NewFirestoreGateway(client, ""), nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
}
