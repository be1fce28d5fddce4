package config

import (
	"os"

	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client

// ConnectRedis connects when REDIS_URL is set. Without it the rate limiter is
// disabled and realtime broadcasts stay inside this process.
func ConnectRedis() {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		Log.Warn("[redis] REDIS_URL not set, running without redis")
		return
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		Log.Fatal("[redis] invalid REDIS_URL", "error", err)
	}

	RedisClient = redis.NewClient(opt)

	ctx, cancel := WithTimeout()
	defer cancel()
	res, err := RedisClient.Ping(ctx).Result()
	if err != nil {
		Log.Fatal("[redis] failed to connect", "error", err)
	}
	Log.Info("[redis] connected", "ping", res)
}

func CloseRedis() {
	if RedisClient != nil {
		_ = RedisClient.Close()
	}
}
