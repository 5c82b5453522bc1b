// Package customer реализует поток клиентов: сущность клиента с его
// заказом и терпением, фазовый затвор спавна и сам спавнер.
package customer

import (
	"time"

	"github.com/google/uuid"

	"github.com/avc/mmdress/internal/domain"
)

// Customer представляет посетителя ателье
type Customer struct {
	id       string
	order    *domain.Order
	patience time.Duration

	// onOrderChanged вызывается при замене заказа с парой (старый, новый)
	onOrderChanged func(old, new *domain.Order)
}

// NewCustomer создает клиента со случайным идентификатором и запасом
// терпения patience
func NewCustomer(patience time.Duration) *Customer {
	return &Customer{
		id:       uuid.New().String(),
		patience: patience,
	}
}

// ID возвращает идентификатор клиента
func (c *Customer) ID() string {
	return c.id
}

// Order возвращает текущий заказ клиента; nil означает свободный запрос
func (c *Customer) Order() *domain.Order {
	return c.order
}

// SetOrder заменяет заказ клиента и уведомляет подписчика парой (old, new)
func (c *Customer) SetOrder(order *domain.Order) {
	old := c.order
	c.order = order
	if c.onOrderChanged != nil {
		c.onOrderChanged(old, order)
	}
}

// ClearOrder снимает заказ; вызывается кассой после разрешения исхода
func (c *Customer) ClearOrder() {
	c.SetOrder(nil)
}

// OnOrderChanged устанавливает обработчик смены заказа
func (c *Customer) OnOrderChanged(fn func(old, new *domain.Order)) {
	c.onOrderChanged = fn
}

// Patience возвращает остаток терпения
func (c *Customer) Patience() time.Duration {
	return c.patience
}

// DrainPatience уменьшает терпение на dt и возвращает true, когда оно
// исчерпано
func (c *Customer) DrainPatience(dt time.Duration) bool {
	c.patience -= dt
	return c.patience <= 0
}
