package initializers

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var Redis *redis.Client

// ConnectRedis leaves Redis nil when no address is configured.
func ConnectRedis() {
	if Config.RedisAddress == "" {
		log.Info().Msg("REDIS_ADDRESS not set, schedules will be cached in memory")
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr:     Config.RedisAddress,
		Username: Config.RedisUsername,
		Password: Config.RedisPassword,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Error().Err(err).Str("addr", Config.RedisAddress).Msg("Redis unreachable, falling back to memory cache")
		_ = client.Close()
		return
	}

	Redis = client
	log.Info().Str("addr", Config.RedisAddress).Msg("Connected to redis")
}
