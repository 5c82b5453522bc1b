package fitting

import (
	"context"

	"go.uber.org/zap"

	"github.com/avc/mmdress/internal/domain"
	"github.com/avc/mmdress/internal/economy"
	"github.com/avc/mmdress/internal/events"
	"github.com/avc/mmdress/internal/reputation"
)

// DefaultPayout задает выплату за клиента без заказа: свободный
// запрос удовлетворяет любой наряд
const DefaultPayout = 100

// OrderCarrier отдает текущий заказ клиента и позволяет его снять
type OrderCarrier interface {
	Order() *domain.Order
	ClearOrder()
}

// Result представляет итог разрешения примерки. OutOfStock считает
// слоты, одетые визуально при нулевом остатке; на сверку и выплату он
// не влияет, но доступен слушателям счета
type Result struct {
	TopOk         bool
	BottomOk      bool
	AllOk         bool
	Payout        int
	ItemsEquipped int
	OutOfStock    int
}

// Resolver реализует алгоритм кассы: сверку надетого с требованиями
// заказа, выплату и сдвиг репутации
type Resolver struct {
	economy    *economy.Service
	reputation *reputation.Service
	bus        *events.Bus
	logger     *zap.Logger
}

// NewResolver создает резолвер
func NewResolver(economySvc *economy.Service, reputationSvc *reputation.Service, bus *events.Bus, logger *zap.Logger) *Resolver {
	return &Resolver{
		economy:    economySvc,
		reputation: reputationSvc,
		bus:        bus,
		logger:     logger,
	}
}

// Resolve закрывает примерку: сверяет слоты с заказом, при полном
// совпадении платит и поднимает репутацию, иначе опускает ее.
// Заказ снимается с клиента в любом исходе; событие ухода несет число
// одетых слотов для независимых слушателей.
// Визуально одетые при нулевом остатке слоты засчитываются как одетые:
// клиент увидел нужный наряд. Их число попадает в Result.OutOfStock,
// но исход примерки не меняет.
func (r *Resolver) Resolve(ctx context.Context, carrier OrderCarrier, session *Session) Result {
	order := carrier.Order()

	res := Result{
		TopOk:         slotSatisfied(order == nil, orderTop(order), session.Equipped(domain.SlotTop)),
		BottomOk:      slotSatisfied(order == nil, orderBottom(order), session.Equipped(domain.SlotBottom)),
		ItemsEquipped: session.EquippedCount(),
		OutOfStock:    outOfStockCount(session),
	}
	res.AllOk = res.TopOk && res.BottomOk

	if res.AllOk {
		res.Payout = DefaultPayout
		if order != nil {
			res.Payout = order.Payout
		}
		r.economy.Add(ctx, res.Payout)
		r.reputation.ApplyCheckout(ctx, true, false)
	} else {
		r.reputation.ApplyCheckout(ctx, false, true)
	}

	carrier.ClearOrder()

	r.logger.Info("fitting resolved",
		zap.String("customer", session.CustomerID()),
		zap.Bool("all_ok", res.AllOk),
		zap.Int("payout", res.Payout),
		zap.Int("items", res.ItemsEquipped),
	)

	events.Publish(r.bus, events.OrderResolved{
		CustomerID: session.CustomerID(),
		Order:      order,
		TopOk:      res.TopOk,
		BottomOk:   res.BottomOk,
		AllOk:      res.AllOk,
		Payout:     res.Payout,
	})
	events.Publish(r.bus, events.CustomerCheckout{
		CustomerID:    session.CustomerID(),
		ItemsEquipped: res.ItemsEquipped,
	})

	return res
}

// slotSatisfied проверяет один слот: отсутствие требования (или заказа
// вообще) удовлетворяется чем угодно, иначе нужен точно тот предмет
func slotSatisfied(freeform bool, required, equipped *domain.ItemRef) bool {
	if freeform || required == nil {
		return true
	}
	return equipped != nil && *equipped == *required
}

// outOfStockCount считает слоты сессии, помеченные как одетые без
// физического остатка
func outOfStockCount(session *Session) int {
	count := 0
	for _, slot := range []domain.Slot{domain.SlotTop, domain.SlotBottom} {
		if session.OutOfStock(slot) {
			count++
		}
	}
	return count
}

func orderTop(order *domain.Order) *domain.ItemRef {
	if order == nil {
		return nil
	}
	return order.RequiredTop
}

func orderBottom(order *domain.Order) *domain.ItemRef {
	if order == nil {
		return nil
	}
	return order.RequiredBottom
}
