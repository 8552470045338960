package store

import (
	"context"
	"fmt"

	"rideshare/config"
	"rideshare/database"
	"rideshare/utils"

	"go.uber.org/zap"
)

// Open builds the store selected by STORE_DRIVER. The returned store owns
// its connection and releases it on Close.
func Open(ctx context.Context) (Store, error) {
	logger := utils.GetLogger()
	driver := config.AppConfig.StoreDriver
	logger.Info("Opening ledger store", zap.String("driver", driver))

	switch driver {
	case "memory":
		return NewMemoryStore(), nil
	case "", "file":
		return NewFileStore(config.AppConfig.StoreFilePath)
	case "mongo":
		client, err := database.NewMongoClient(ctx)
		if err != nil {
			return nil, err
		}
		s := NewMongoStore(client, config.AppConfig.DatabaseName)
		s.owned = true
		return s, nil
	case "redis":
		client, err := utils.NewRedisClient(config.AppConfig.RedisStoreDB)
		if err != nil {
			return nil, err
		}
		s := NewRedisStore(client)
		s.owned = true
		return s, nil
	case "postgres":
		pool, err := database.NewPostgresPool(ctx)
		if err != nil {
			return nil, err
		}
		s, err := NewPostgresStore(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		s.owned = true
		return s, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}
