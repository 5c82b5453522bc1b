package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/avc/mmdress/internal/config"
	"github.com/avc/mmdress/internal/events"
	"github.com/avc/mmdress/internal/game"
)

// App представляет приложение
type App struct {
	config  *config.Config
	logger  *zap.Logger
	db      *pgxpool.Pool
	bus     *events.Bus
	session *game.Session
}

// NewApp создает новое приложение
func NewApp() (*App, error) {
	ctx := context.Background()

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Инициализация логгера
	logger, err := initLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	// Инициализация хранилища сохранений
	store, dbPool, err := initSaveStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("save store initialized", zap.String("backend", cfg.SaveBackend))

	// Шина событий и журнал игровых событий
	bus := events.NewBus()
	attachEventLog(bus, logger)

	// Сборка сервисов и игровой сессии
	session, err := initSession(ctx, cfg, store, bus, logger)
	if err != nil {
		return nil, err
	}

	return &App{
		config:  cfg,
		logger:  logger,
		db:      dbPool,
		bus:     bus,
		session: session,
	}, nil
}

// Run запускает игровой цикл и ожидает сигнала завершения
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Запуск игрового цикла
	a.runLoop(ctx)
	a.logger.Info("game loop started", zap.Duration("tick", a.config.TickInterval))

	// Ожидание сигнала завершения
	a.waitForSignal()

	// Graceful shutdown
	a.shutdown(cancel)

	return nil
}
