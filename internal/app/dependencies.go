package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/avc/mmdress/internal/config"
	"github.com/avc/mmdress/internal/customer"
	"github.com/avc/mmdress/internal/dayclock"
	"github.com/avc/mmdress/internal/domain"
	"github.com/avc/mmdress/internal/economy"
	"github.com/avc/mmdress/internal/events"
	"github.com/avc/mmdress/internal/fitting"
	"github.com/avc/mmdress/internal/game"
	"github.com/avc/mmdress/internal/orders"
	"github.com/avc/mmdress/internal/procurement"
	"github.com/avc/mmdress/internal/reputation"
	"github.com/avc/mmdress/internal/saves"
	"github.com/avc/mmdress/internal/score"
	"github.com/avc/mmdress/internal/stock"
)

// initSession создает все сервисы ядра и собирает из них игровую сессию.
// Все зависимости передаются явно через конструкторы; глобальных
// реестров сервисов нет.
func initSession(ctx context.Context, cfg *config.Config, store saves.Store, bus *events.Bus, logger *zap.Logger) (*game.Session, error) {
	clockCfg := dayclock.DefaultConfig()
	clockCfg.Durations = [domain.PhaseCount]time.Duration{
		cfg.NightDuration,
		cfg.PrepDuration,
		cfg.OpenDuration,
		cfg.ClosedDuration,
	}
	clock := dayclock.New(clockCfg, bus, logger)

	reputationSvc, err := reputation.New(ctx, reputation.DefaultConfig(), store, bus, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to init reputation: %w", err)
	}

	stockSvc, err := stock.New(ctx, cfg.TypesPerSlot, store, bus, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to init stock: %w", err)
	}

	economySvc, err := economy.New(ctx, store, bus, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to init economy: %w", err)
	}

	procurementCfg := procurement.Config{
		ClothPrice:      cfg.ClothPrice,
		ThreadPrice:     cfg.ThreadPrice,
		StartingBalance: cfg.StartingBalance,
	}
	procurementSvc, err := procurement.New(ctx, procurementCfg, clock, stockSvc, economySvc, store, bus, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to init procurement: %w", err)
	}

	ordersSvc := orders.NewService(orders.DefaultLibrary(cfg.TypesPerSlot), nil, logger)

	gate := customer.NewPhaseGate(bus, domain.PhaseOpen, clock.Phase())
	spawner := customer.NewSpawner(customer.SpawnerConfig{
		Interval:  cfg.SpawnInterval,
		Patience:  cfg.CustomerPatience,
		MaxActive: cfg.MaxCustomers,
	}, gate, ordersSvc, reputationSvc, bus, logger)

	scoreSvc := score.New(score.Config{FlatPerItemPayout: cfg.FlatPerItemPayout}, economySvc, bus, logger)
	resolver := fitting.NewResolver(economySvc, reputationSvc, bus, logger)

	deps := game.Deps{
		Bus:         bus,
		Clock:       clock,
		Reputation:  reputationSvc,
		Stock:       stockSvc,
		Economy:     economySvc,
		Procurement: procurementSvc,
		Spawner:     spawner,
		Score:       scoreSvc,
		Resolver:    resolver,
		Store:       store,
		FittingCfg:  fitting.DefaultConfig(),
	}
	return game.NewSession(deps, logger), nil
}
