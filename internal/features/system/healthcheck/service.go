package system_healthcheck

import (
	"context"
	"errors"
	"time"

	"picktask-backend/internal/storage"

	"github.com/redis/go-redis/v9"
)

const pingTimeout = 3 * time.Second

type HealthcheckService struct {
	redisClient *redis.Client
}

func (s *HealthcheckService) IsHealthy(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	sqlDB, err := storage.GetDb().DB()
	if err != nil {
		return errors.New("cannot connect to the database")
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return errors.New("cannot connect to the database")
	}

	if err := s.redisClient.Ping(ctx).Err(); err != nil {
		return errors.New("cannot connect to the session store")
	}

	return nil
}
