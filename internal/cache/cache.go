package cache

import (
	"context"
	"os"
	"sync"
	"time"

	"picktask-backend/internal/config"
	"picktask-backend/internal/util/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var (
	client *redis.Client
	once   sync.Once
)

func GetClient() *redis.Client {
	once.Do(loadClient)
	return client
}

func loadClient() {
	log := logger.GetLogger()
	env := config.GetEnv()

	if env.RedisURL == "" && env.IsTesting {
		mr, err := miniredis.Run()
		if err != nil {
			log.Error("Failed to start embedded redis", "error", err)
			os.Exit(1)
		}

		client = redis.NewClient(&redis.Options{Addr: mr.Addr()})
		return
	}

	options, err := redis.ParseURL(env.RedisURL)
	if err != nil {
		log.Error("Failed to parse REDIS_URL", "error", err)
		os.Exit(1)
	}

	client = redis.NewClient(options)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Error("Failed to connect to redis", "error", err)
		os.Exit(1)
	}

	log.Info("Redis connection established", "addr", options.Addr)
}
