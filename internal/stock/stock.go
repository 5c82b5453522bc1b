// Package stock реализует склад ателье: счетчики сырья (ткань, нитки)
// и счетчики готовой одежды по (слот, тип).
package stock

import (
	"context"

	"go.uber.org/zap"

	"github.com/avc/mmdress/internal/domain"
	"github.com/avc/mmdress/internal/events"
	"github.com/avc/mmdress/internal/saves"
)

// DefaultTypesPerSlot задает количество типов одежды в каждом слоте
const DefaultTypesPerSlot = 5

// Service представляет склад. Каждая успешная мутация сразу сохраняет
// полный снимок и рассылает уведомление об изменении инвентаря.
type Service struct {
	store  saves.Store
	bus    *events.Bus
	logger *zap.Logger

	typesPerSlot int
	cloth        int
	thread       int
	garments     [2][]int // индексируется domain.Slot
}

// New создает склад, восстанавливая снимок из сохранений; при его
// отсутствии все счетчики нулевые
func New(ctx context.Context, typesPerSlot int, store saves.Store, bus *events.Bus, logger *zap.Logger) (*Service, error) {
	if typesPerSlot <= 0 {
		typesPerSlot = DefaultTypesPerSlot
	}

	s := &Service{
		store:        store,
		bus:          bus,
		logger:       logger,
		typesPerSlot: typesPerSlot,
	}
	s.garments[domain.SlotTop] = make([]int, typesPerSlot)
	s.garments[domain.SlotBottom] = make([]int, typesPerSlot)

	var snap domain.StockSnapshot
	ok, err := saves.GetJSON(ctx, store, saves.KeyStockSnapshot, &snap)
	if err != nil {
		return nil, err
	}
	if ok {
		s.cloth = snap.Cloth
		s.thread = snap.Thread
		copy(s.garments[domain.SlotTop], snap.Tops)
		copy(s.garments[domain.SlotBottom], snap.Bottoms)
		logger.Info("stock restored",
			zap.Int("cloth", s.cloth),
			zap.Int("thread", s.thread),
		)
	}

	return s, nil
}

// TypesPerSlot возвращает размер каталога одежды в одном слоте
func (s *Service) TypesPerSlot() int {
	return s.typesPerSlot
}

// Material возвращает остаток сырья
func (s *Service) Material(m domain.Material) int {
	if m == domain.MaterialCloth {
		return s.cloth
	}
	return s.thread
}

// Garment возвращает остаток одежды по (слот, тип); вне диапазона 0
func (s *Service) Garment(slot domain.Slot, typeIndex int) int {
	if !s.inRange(slot, typeIndex) {
		return 0
	}
	return s.garments[slot][typeIndex]
}

// Snapshot возвращает копию полного снимка склада
func (s *Service) Snapshot() domain.StockSnapshot {
	snap := domain.StockSnapshot{
		Cloth:   s.cloth,
		Thread:  s.thread,
		Tops:    make([]int, s.typesPerSlot),
		Bottoms: make([]int, s.typesPerSlot),
	}
	copy(snap.Tops, s.garments[domain.SlotTop])
	copy(snap.Bottoms, s.garments[domain.SlotBottom])
	return snap
}

// AddMaterial добавляет qty единиц сырья; qty <= 0 отклоняется без эффекта
func (s *Service) AddMaterial(ctx context.Context, m domain.Material, qty int) bool {
	if qty <= 0 {
		return false
	}

	if m == domain.MaterialCloth {
		s.cloth += qty
	} else {
		s.thread += qty
	}

	s.commit(ctx)
	return true
}

// TryConsumeMaterial списывает qty единиц сырья. При нехватке возвращает
// false и не меняет счетчик, отрицательных остатков не бывает.
func (s *Service) TryConsumeMaterial(ctx context.Context, m domain.Material, qty int) bool {
	if qty <= 0 {
		return false
	}

	if m == domain.MaterialCloth {
		if s.cloth < qty {
			return false
		}
		s.cloth -= qty
	} else {
		if s.thread < qty {
			return false
		}
		s.thread -= qty
	}

	s.commit(ctx)
	return true
}

// AddGarment добавляет qty единиц одежды по (слот, тип).
// Индекс вне диапазона дает молчаливый no-op.
func (s *Service) AddGarment(ctx context.Context, slot domain.Slot, typeIndex, qty int) bool {
	if qty <= 0 {
		return false
	}
	if !s.inRange(slot, typeIndex) {
		s.logger.Debug("garment index out of range",
			zap.String("slot", slot.String()),
			zap.Int("type", typeIndex),
		)
		return false
	}

	s.garments[slot][typeIndex] += qty
	s.commit(ctx)
	return true
}

// TryConsumeGarment списывает qty единиц одежды; при нехватке или индексе
// вне диапазона возвращает false без изменения состояния
func (s *Service) TryConsumeGarment(ctx context.Context, slot domain.Slot, typeIndex, qty int) bool {
	if qty <= 0 {
		return false
	}
	if !s.inRange(slot, typeIndex) {
		s.logger.Debug("garment index out of range",
			zap.String("slot", slot.String()),
			zap.Int("type", typeIndex),
		)
		return false
	}
	if s.garments[slot][typeIndex] < qty {
		return false
	}

	s.garments[slot][typeIndex] -= qty
	s.commit(ctx)
	return true
}

// Save принудительно сохраняет снимок; используется при завершении сессии
func (s *Service) Save(ctx context.Context) error {
	return saves.SetJSON(ctx, s.store, saves.KeyStockSnapshot, s.Snapshot())
}

func (s *Service) inRange(slot domain.Slot, typeIndex int) bool {
	return (slot == domain.SlotTop || slot == domain.SlotBottom) &&
		typeIndex >= 0 && typeIndex < s.typesPerSlot
}

// commit сохраняет снимок и рассылает уведомление; ошибка сохранения
// не откатывает игровую мутацию, только пишется в лог
func (s *Service) commit(ctx context.Context) {
	if err := s.Save(ctx); err != nil {
		s.logger.Warn("failed to persist stock snapshot", zap.Error(err))
	}
	events.Publish(s.bus, events.InventoryChanged{})
}
