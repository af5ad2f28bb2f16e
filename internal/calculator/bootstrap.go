package calculator

import (
	"context"
	"fmt"

	"github.com/iwvelando/mortgage-calculator/internal/config"
	"github.com/iwvelando/mortgage-calculator/internal/rate"
	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// FromConfig builds a Service for conf, connecting and restoring from the
// configured rate store. The returned close function releases the store.
func FromConfig(ctx context.Context, logger *zap.Logger, conf *config.Configuration) (*Service, func() error, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	cell := rate.NewCell(conf.InterestRate.Default)
	noop := func() error { return nil }

	if conf.InterestRate.Store != constants.RateStoreRedis {
		return NewService(logger, cell, nil), noop, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     conf.Redis.Address,
		Password: conf.Redis.Password,
		DB:       conf.Redis.DB,
	})
	store := rate.NewRedisStore(client, conf.Redis.Key)

	service := NewService(logger, cell, store)
	if err := service.Restore(ctx); err != nil {
		_ = store.Close()
		return nil, noop, fmt.Errorf("failed to restore interest rate from %s: %w", conf.Redis.Address, err)
	}

	logger.Info("using redis interest rate store",
		zap.String("op", "calculator.FromConfig"),
		zap.String("address", conf.Redis.Address),
		zap.String("key", store.Key()),
	)
	return service, store.Close, nil
}
