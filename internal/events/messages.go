package events

import "github.com/avc/mmdress/internal/domain"

// PhaseChanged публикуется часами игрового дня при смене фазы
type PhaseChanged struct {
	Phase domain.Phase
}

// ReputationChanged публикуется при каждом изменении процента репутации,
// включая вызовы, не изменившие значение
type ReputationChanged struct {
	Percent float64
}

// ReputationStageChanged публикуется только при смене ступени репутации.
// Direction равен +1 при росте и -1 при падении.
type ReputationStageChanged struct {
	Prev      int
	Next      int
	Direction int
}

// InventoryChanged публикуется складом после каждой успешной мутации
type InventoryChanged struct{}

// PurchaseSucceeded публикуется после успешной закупки сырья
type PurchaseSucceeded struct {
	Material domain.Material
	Qty      int
	Cost     int
}

// PurchaseFailed публикуется при отказе в закупке с человекочитаемой причиной
type PurchaseFailed struct {
	Reason string
}

// CraftSucceeded публикуется после успешного крафта
type CraftSucceeded struct {
	Slot domain.Slot
	Type int
	Qty  int
}

// CraftFailed публикуется при отказе в крафте с человекочитаемой причиной
type CraftFailed struct {
	Reason string
}

// MoneyChanged публикуется кошельком при каждом изменении баланса.
// Amount несет дельту операции, Balance итоговый баланс.
type MoneyChanged struct {
	Amount  int
	Balance int
}

// CustomerArrived публикуется спавнером при появлении нового клиента
type CustomerArrived struct {
	CustomerID string
}

// CustomerCheckout публикуется при завершении обслуживания клиента.
// ItemsEquipped сообщает, сколько слотов было одето (0, 1 или 2).
type CustomerCheckout struct {
	CustomerID    string
	ItemsEquipped int
}

// CustomerTimedOut публикуется, когда у клиента кончилось терпение
type CustomerTimedOut struct {
	CustomerID string
}

// OrderResolved публикуется резолвером примерки с итогом сверки заказа
type OrderResolved struct {
	CustomerID string
	Order      *domain.Order
	TopOk      bool
	BottomOk   bool
	AllOk      bool
	Payout     int
}

// EndOfDayArrived публикуется при переходе дня в фазу Closed
type EndOfDayArrived struct{}
