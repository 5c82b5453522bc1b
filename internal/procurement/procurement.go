// Package procurement реализует закупочную экономику: покупку сырья и
// крафт одежды, доступные только в фазе Prep, стартовый капитал дня и
// сигнал конца игрового дня.
package procurement

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/avc/mmdress/internal/domain"
	"github.com/avc/mmdress/internal/economy"
	"github.com/avc/mmdress/internal/events"
	"github.com/avc/mmdress/internal/saves"
	"github.com/avc/mmdress/internal/stock"
)

// Config задает цены сырья и стартовый капитал
type Config struct {
	ClothPrice      int
	ThreadPrice     int
	StartingBalance int
}

// DefaultConfig возвращает экономические параметры по умолчанию
func DefaultConfig() Config {
	return Config{
		ClothPrice:      10,
		ThreadPrice:     5,
		StartingBalance: 200,
	}
}

// PhaseSource сообщает текущую фазу дня
type PhaseSource interface {
	Phase() domain.Phase
}

// Service представляет закупочный сервис
type Service struct {
	cfg     Config
	phases  PhaseSource
	stock   *stock.Service
	economy *economy.Service
	store   saves.Store
	bus     *events.Bus
	logger  *zap.Logger

	// Стартовый капитал выдается один раз за игровую сессию процесса,
	// а не за календарный день
	startingApplied bool
	crafted         map[string]int
}

// New создает сервис, восстанавливает счетчики скрафченного и
// подписывается на смену фаз
func New(ctx context.Context, cfg Config, phases PhaseSource, stockSvc *stock.Service, economySvc *economy.Service, store saves.Store, bus *events.Bus, logger *zap.Logger) (*Service, error) {
	s := &Service{
		cfg:     cfg,
		phases:  phases,
		stock:   stockSvc,
		economy: economySvc,
		store:   store,
		bus:     bus,
		logger:  logger,
		crafted: make(map[string]int),
	}

	var counts []domain.GarmentCount
	if _, err := saves.GetJSON(ctx, store, saves.KeyCraftedGarments, &counts); err != nil {
		return nil, err
	}
	for _, c := range counts {
		s.crafted[c.ID] = c.Count
	}

	events.Subscribe(bus, s.onPhaseChanged)
	return s, nil
}

// onPhaseChanged выдает стартовый капитал при входе в Prep и сигналит
// конец дня при входе в Closed
func (s *Service) onPhaseChanged(e events.PhaseChanged) {
	ctx := context.Background()

	switch e.Phase {
	case domain.PhasePrep:
		if s.startingApplied {
			return
		}
		s.startingApplied = true
		if s.cfg.StartingBalance > 0 {
			s.economy.Add(ctx, s.cfg.StartingBalance)
			s.logger.Info("starting balance applied",
				zap.Int("amount", s.cfg.StartingBalance),
			)
		}
	case domain.PhaseClosed:
		events.Publish(s.bus, events.EndOfDayArrived{})
	}
}

// UnitPrice возвращает цену единицы сырья
func (s *Service) UnitPrice(m domain.Material) int {
	if m == domain.MaterialCloth {
		return s.cfg.ClothPrice
	}
	return s.cfg.ThreadPrice
}

// CraftedCount возвращает накопленное число скрафченных предметов по id
func (s *Service) CraftedCount(id string) int {
	return s.crafted[id]
}

// BuyMaterial покупает qty единиц сырья. Вне фазы Prep, при невалидном
// количестве или нехватке денег операция отклоняется без побочных
// эффектов; причина уходит событием PurchaseFailed.
func (s *Service) BuyMaterial(ctx context.Context, m domain.Material, qty int) error {
	if s.phases.Phase() != domain.PhasePrep {
		return s.failPurchase(domain.ErrOutsidePrepWindow, "not allowed outside prep window")
	}
	if qty <= 0 {
		return s.failPurchase(domain.ErrInvalidQuantity, fmt.Sprintf("invalid quantity %d", qty))
	}

	cost := s.UnitPrice(m) * qty
	if !s.economy.TrySpend(ctx, cost) {
		return s.failPurchase(domain.ErrInsufficientFunds,
			fmt.Sprintf("need %d coins for %d %s", cost, qty, m))
	}

	s.stock.AddMaterial(ctx, m, qty)
	s.logger.Info("material purchased",
		zap.String("material", m.String()),
		zap.Int("qty", qty),
		zap.Int("cost", cost),
	)
	events.Publish(s.bus, events.PurchaseSucceeded{Material: m, Qty: qty, Cost: cost})
	return nil
}

// Craft создает qty единиц одежды (слот, тип) по фиксированному рецепту
// 1 ткань + 1 нитка за единицу. Сырье списывается атомарно: либо оба
// счетчика уменьшены на qty и одежда добавлена, либо состояние не тронуто.
func (s *Service) Craft(ctx context.Context, slot domain.Slot, typeIndex, qty int) error {
	if s.phases.Phase() != domain.PhasePrep {
		return s.failCraft(domain.ErrOutsidePrepWindow, "not allowed outside prep window")
	}
	if qty <= 0 {
		return s.failCraft(domain.ErrInvalidQuantity, fmt.Sprintf("invalid quantity %d", qty))
	}
	if typeIndex < 0 || typeIndex >= s.stock.TypesPerSlot() {
		return s.failCraft(domain.ErrInvalidGarmentType,
			fmt.Sprintf("unknown garment type %d", typeIndex))
	}

	if s.stock.Material(domain.MaterialCloth) < qty || s.stock.Material(domain.MaterialThread) < qty {
		return s.failCraft(domain.ErrInsufficientMaterials,
			fmt.Sprintf("need %d cloth and %d thread", qty, qty))
	}

	if !s.stock.TryConsumeMaterial(ctx, domain.MaterialCloth, qty) {
		return s.failCraft(domain.ErrInsufficientMaterials, "cloth ran out")
	}
	if !s.stock.TryConsumeMaterial(ctx, domain.MaterialThread, qty) {
		// Недостижимо после предпроверки в однопоточной модели;
		// компенсация возвращает ткань, не оставляя частичного списания
		s.stock.AddMaterial(ctx, domain.MaterialCloth, qty)
		return s.failCraft(domain.ErrInsufficientMaterials, "thread ran out")
	}

	s.stock.AddGarment(ctx, slot, typeIndex, qty)
	s.recordCrafted(ctx, domain.ItemRef{Slot: slot, Type: typeIndex}.ID(), qty)

	s.logger.Info("garment crafted",
		zap.String("slot", slot.String()),
		zap.Int("type", typeIndex),
		zap.Int("qty", qty),
	)
	events.Publish(s.bus, events.CraftSucceeded{Slot: slot, Type: typeIndex, Qty: qty})
	return nil
}

// PrepLocked сообщает, была ли закупочная фаза зафиксирована игроком
func (s *Service) PrepLocked(ctx context.Context) bool {
	locked, err := saves.GetBool(ctx, s.store, saves.KeyPrepLocked, false)
	if err != nil {
		s.logger.Warn("failed to read prep lock flag", zap.Error(err))
	}
	return locked
}

// LockPrep фиксирует закупочную фазу: флаг переживает перезапуск
func (s *Service) LockPrep(ctx context.Context) {
	if err := saves.SetBool(ctx, s.store, saves.KeyPrepLocked, true); err != nil {
		s.logger.Warn("failed to persist prep lock flag", zap.Error(err))
	}
}

func (s *Service) recordCrafted(ctx context.Context, id string, qty int) {
	s.crafted[id] += qty

	counts := make([]domain.GarmentCount, 0, len(s.crafted))
	for cid, count := range s.crafted {
		counts = append(counts, domain.GarmentCount{ID: cid, Count: count})
	}
	if err := saves.SetJSON(ctx, s.store, saves.KeyCraftedGarments, counts); err != nil {
		s.logger.Warn("failed to persist crafted counts", zap.Error(err))
	}
}

func (s *Service) failPurchase(err error, reason string) error {
	s.logger.Debug("purchase rejected", zap.String("reason", reason))
	events.Publish(s.bus, events.PurchaseFailed{Reason: reason})
	return err
}

func (s *Service) failCraft(err error, reason string) error {
	s.logger.Debug("craft rejected", zap.String("reason", reason))
	events.Publish(s.bus, events.CraftFailed{Reason: reason})
	return err
}
