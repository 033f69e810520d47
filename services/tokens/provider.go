package tokens

import (
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/traintrack/traintrack/config"
	"github.com/traintrack/traintrack/services/logging"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func ProvideStore(cfg *config.Config, logger *logging.Service, db *gorm.DB) (Store, error) {
	logger.Info("initializing token store",
		zap.String("backend", cfg.TokenStore.Backend))

	switch cfg.TokenStore.Backend {
	case "memory":
		return NewMemoryStore(), nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Username: cfg.Redis.Username,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		return NewRedisStore(client, logger), nil
	case "database":
		return NewGormStore(db, logger), nil
	default:
		return nil, fmt.Errorf("unsupported token store backend: %s (supported: memory, redis, database)", cfg.TokenStore.Backend)
	}
}

var Module = fx.Options(
	fx.Provide(ProvideStore),
	fx.Provide(NewService),
)
