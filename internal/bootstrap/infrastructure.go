package bootstrap

import (
	"context"
	"log/slog"

	"github.com/eleven-am/stt-sidecar/internal/session"
	"github.com/eleven-am/stt-sidecar/internal/transcript"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ProvideRedisClient returns nil when REDIS_ADDR is unset. Metrics then
// stay off and the sidecar runs standalone.
func ProvideRedisClient(cfg *Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

func ProvideMetricsStore(redisClient *redis.Client) *session.MetricsStore {
	if redisClient == nil {
		return nil
	}
	return session.NewMetricsStore(redisClient)
}

// ProvideDatabase returns nil when DATABASE_DSN is unset, which disables
// the transcript archive.
func ProvideDatabase(cfg *Config, log *slog.Logger) (*gorm.DB, error) {
	if cfg.DatabaseDSN == "" {
		return nil, nil
	}
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	return db, nil
}

func ProvideTranscriptStore(db *gorm.DB) *transcript.Store {
	if db == nil {
		return nil
	}
	return transcript.NewStore(db)
}

func MigrateTranscripts(lc fx.Lifecycle, store *transcript.Store, log *slog.Logger) {
	if store == nil {
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := store.Migrate(); err != nil {
				return err
			}
			log.Info("transcript archive ready")
			return nil
		},
	})
}

var InfrastructureModule = fx.Options(
	fx.Provide(
		ProvideRedisClient,
		ProvideMetricsStore,
		ProvideDatabase,
		ProvideTranscriptStore,
	),
	fx.Invoke(MigrateTranscripts),
)
