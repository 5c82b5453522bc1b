package app

import (
	"go.uber.org/zap"

	"github.com/avc/mmdress/internal/events"
)

// attachEventLog подписывает логгер на все игровые события.
// Журнал выполняет роль индикации для оператора: смена фазы, касса,
// репутация и итоги дня видны в выводе без отдельного интерфейса.
func attachEventLog(bus *events.Bus, logger *zap.Logger) {
	log := logger.Named("events")

	events.Subscribe(bus, func(e events.PhaseChanged) {
		log.Info("phase changed", zap.Stringer("phase", e.Phase))
	})
	events.Subscribe(bus, func(e events.ReputationChanged) {
		log.Info("reputation changed", zap.Float64("percent", e.Percent))
	})
	events.Subscribe(bus, func(e events.ReputationStageChanged) {
		log.Info("reputation stage changed",
			zap.Int("prev", e.Prev),
			zap.Int("next", e.Next),
			zap.Int("direction", e.Direction))
	})
	events.Subscribe(bus, func(events.InventoryChanged) {
		log.Debug("inventory changed")
	})
	events.Subscribe(bus, func(e events.PurchaseSucceeded) {
		log.Info("purchase succeeded",
			zap.Stringer("material", e.Material),
			zap.Int("qty", e.Qty),
			zap.Int("cost", e.Cost))
	})
	events.Subscribe(bus, func(e events.PurchaseFailed) {
		log.Warn("purchase failed", zap.String("reason", e.Reason))
	})
	events.Subscribe(bus, func(e events.CraftSucceeded) {
		log.Info("craft succeeded",
			zap.Stringer("slot", e.Slot),
			zap.Int("type", e.Type),
			zap.Int("qty", e.Qty))
	})
	events.Subscribe(bus, func(e events.CraftFailed) {
		log.Warn("craft failed", zap.String("reason", e.Reason))
	})
	events.Subscribe(bus, func(e events.MoneyChanged) {
		log.Info("money changed", zap.Int("amount", e.Amount), zap.Int("balance", e.Balance))
	})
	events.Subscribe(bus, func(e events.CustomerArrived) {
		log.Info("customer arrived", zap.String("customer_id", e.CustomerID))
	})
	events.Subscribe(bus, func(e events.CustomerCheckout) {
		log.Info("customer checkout",
			zap.String("customer_id", e.CustomerID),
			zap.Int("items", e.ItemsEquipped))
	})
	events.Subscribe(bus, func(e events.CustomerTimedOut) {
		log.Info("customer timed out", zap.String("customer_id", e.CustomerID))
	})
	events.Subscribe(bus, func(e events.OrderResolved) {
		log.Info("order resolved",
			zap.String("customer_id", e.CustomerID),
			zap.Bool("top_ok", e.TopOk),
			zap.Bool("bottom_ok", e.BottomOk),
			zap.Bool("all_ok", e.AllOk),
			zap.Int("payout", e.Payout))
	})
	events.Subscribe(bus, func(events.EndOfDayArrived) {
		log.Info("end of day")
	})
}
