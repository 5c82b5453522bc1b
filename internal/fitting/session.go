// Package fitting реализует примерку: состояние надетого по слотам
// в рамках одного визита клиента и разрешение итога на кассе.
package fitting

import (
	"context"

	"go.uber.org/zap"

	"github.com/avc/mmdress/internal/domain"
	"github.com/avc/mmdress/internal/stock"
)

// SlotState представляет состояние слота примерки.
// Отдельный enum вместо булевого флага оставляет место для
// переходов разблокировки в будущем.
type SlotState int

const (
	SlotStateOpen SlotState = iota
	SlotStateLocked
)

// Config задает политику примерки
type Config struct {
	// AllowVisualWhenOutOfStock разрешает визуально надеть предмет при
	// нулевом остатке, пометив слот как недоукомплектованный
	AllowVisualWhenOutOfStock bool
}

// DefaultConfig возвращает политику по умолчанию
func DefaultConfig() Config {
	return Config{AllowVisualWhenOutOfStock: true}
}

// slotFit хранит состояние одного слота внутри сессии
type slotFit struct {
	equipped   *domain.ItemRef
	preview    *domain.ItemRef
	state      SlotState
	outOfStock bool
}

// Session представляет открытую примерку одного клиента.
// Слот блокируется первым успешным надеванием: повторная попытка в той
// же сессии отклоняется независимо от наличия товара.
type Session struct {
	customerID string
	cfg        Config
	stock      *stock.Service
	logger     *zap.Logger
	slots      [2]slotFit // индексируется domain.Slot
}

// NewSession открывает примерку для клиента customerID
func NewSession(customerID string, cfg Config, stockSvc *stock.Service, logger *zap.Logger) *Session {
	return &Session{
		customerID: customerID,
		cfg:        cfg,
		stock:      stockSvc,
		logger:     logger,
	}
}

// CustomerID возвращает клиента этой примерки
func (s *Session) CustomerID() string {
	return s.customerID
}

// Equip надевает предмет в его слот. Отклоняется, если предмет не
// соответствует слоту или слот уже заблокирован. При нулевом остатке
// поведение определяет политика AllowVisualWhenOutOfStock.
func (s *Session) Equip(ctx context.Context, slot domain.Slot, item domain.ItemRef) error {
	if item.Slot != slot {
		return domain.ErrWrongSlot
	}

	fit := &s.slots[slot]
	if fit.state == SlotStateLocked {
		return domain.ErrSlotLocked
	}

	if !s.stock.TryConsumeGarment(ctx, item.Slot, item.Type, 1) {
		if !s.cfg.AllowVisualWhenOutOfStock {
			return domain.ErrOutOfStock
		}
		// Показываем клиенту нужный наряд, физически его не имея
		fit.outOfStock = true
		s.logger.Debug("equipped despite empty stock",
			zap.String("customer", s.customerID),
			zap.String("item", item.ID()),
		)
	}

	equipped := item
	fit.equipped = &equipped
	fit.preview = nil
	fit.state = SlotStateLocked
	return nil
}

// EquipTop надевает предмет в верхний слот
func (s *Session) EquipTop(ctx context.Context, item domain.ItemRef) error {
	return s.Equip(ctx, domain.SlotTop, item)
}

// EquipBottom надевает предмет в нижний слот
func (s *Session) EquipBottom(ctx context.Context, item domain.ItemRef) error {
	return s.Equip(ctx, domain.SlotBottom, item)
}

// SetPreview показывает предмет в слоте без фиксации и списания:
// мягкий предпросмотр до подтверждения. На заблокированном слоте no-op.
func (s *Session) SetPreview(slot domain.Slot, item domain.ItemRef) bool {
	if item.Slot != slot {
		return false
	}

	fit := &s.slots[slot]
	if fit.state == SlotStateLocked {
		return false
	}

	preview := item
	fit.preview = &preview
	return true
}

// Preview возвращает предмет предпросмотра слота, если он установлен
func (s *Session) Preview(slot domain.Slot) *domain.ItemRef {
	return s.slots[slot].preview
}

// Equipped возвращает надетый предмет слота, если он есть
func (s *Session) Equipped(slot domain.Slot) *domain.ItemRef {
	return s.slots[slot].equipped
}

// State возвращает состояние слота
func (s *Session) State(slot domain.Slot) SlotState {
	return s.slots[slot].state
}

// OutOfStock сообщает, был ли слот одет при нулевом остатке
func (s *Session) OutOfStock(slot domain.Slot) bool {
	return s.slots[slot].outOfStock
}

// EquippedCount возвращает число одетых слотов (0, 1 или 2)
func (s *Session) EquippedCount() int {
	count := 0
	for _, fit := range s.slots {
		if fit.equipped != nil {
			count++
		}
	}
	return count
}
