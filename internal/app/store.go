package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/avc/mmdress/internal/config"
	"github.com/avc/mmdress/internal/saves"
	savefile "github.com/avc/mmdress/internal/saves/file"
	savemem "github.com/avc/mmdress/internal/saves/memory"
	savepg "github.com/avc/mmdress/internal/saves/postgres"
	saveredis "github.com/avc/mmdress/internal/saves/redis"
)

// initSaveStore создает хранилище сохранений выбранного бэкенда.
// Возвращаемый пул Postgres не nil только для этого бэкенда; его
// закрытием владеет приложение.
func initSaveStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (saves.Store, *pgxpool.Pool, error) {
	switch cfg.SaveBackend {
	case config.BackendMemory:
		logger.Warn("using in-memory save backend, progress will not survive restart")
		return savemem.New(), nil, nil

	case config.BackendFile:
		store, err := savefile.New(cfg.SaveFile)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open save file: %w", err)
		}
		logger.Info("save file opened", zap.String("path", cfg.SaveFile))
		return store, nil, nil

	case config.BackendPostgres:
		pool, err := pgxpool.New(ctx, cfg.DatabaseURI)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("failed to ping database: %w", err)
		}
		if err := savepg.RunMigrations(ctx, pool, logger); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		logger.Info("connected to database")
		return savepg.New(pool), pool, nil

	case config.BackendRedis:
		store, err := saveredis.New(ctx, cfg.RedisAddr, "", cfg.RedisDB)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		logger.Info("connected to redis", zap.String("addr", cfg.RedisAddr))
		return store, nil, nil

	default:
		return nil, nil, fmt.Errorf("unknown save backend %q", cfg.SaveBackend)
	}
}
