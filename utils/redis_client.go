package utils

import (
	"context"
	"net"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/feedstack/feedstack/config"
)

var redisClient *redis.Client

// InitRedis connects the cache client. Call once during boot; when never
// called (tests, cache disabled) every cache helper degrades to a no-op.
func InitRedis(cfg config.AppConfig) {
	redisClient = redis.NewClient(&redis.Options{
		Addr:         net.JoinHostPort(cfg.RedisHost, strconv.Itoa(cfg.RedisPort)),
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil && Sugar != nil {
		Sugar.Warnf("redis unreachable, cache degraded: %v", err)
	}
}

// GetRedis returns the cache client or nil when caching is disabled.
func GetRedis() *redis.Client {
	return redisClient
}
