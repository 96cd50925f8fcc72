package database

import (
	"context"
	"time"

	"github.com/Dauletnazarr/donation-project/config"
	"github.com/Dauletnazarr/donation-project/internal/infra/logging"

	"github.com/redis/go-redis/v9"
)

// Rdb backs both the listing cache and the email job queue.
var Rdb *redis.Client

func InitRedis() {
	Rdb = redis.NewClient(&redis.Options{
		Addr:     config.REDIS_ADDR,
		Password: config.REDIS_PASSWORD,
		DB:       config.REDIS_DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := Rdb.Ping(ctx).Err(); err != nil {
		logging.Log.Fatal().Err(err).Str("addr", config.REDIS_ADDR).Msg("failed to connect to redis")
	}

	logging.Log.Info().Str("addr", config.REDIS_ADDR).Msg("connected to redis")
}
