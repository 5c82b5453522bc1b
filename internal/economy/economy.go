// Package economy реализует кошелек игры: единый неотрицательный
// денежный баланс с сохранением между сессиями.
package economy

import (
	"context"

	"go.uber.org/zap"

	"github.com/avc/mmdress/internal/events"
	"github.com/avc/mmdress/internal/saves"
)

// Service представляет кошелек
type Service struct {
	store   saves.Store
	bus     *events.Bus
	logger  *zap.Logger
	balance int
}

// New создает кошелек, восстанавливая баланс из сохранений
func New(ctx context.Context, store saves.Store, bus *events.Bus, logger *zap.Logger) (*Service, error) {
	balance, err := saves.GetInt(ctx, store, saves.KeyMoneyBalance, 0)
	if err != nil {
		return nil, err
	}
	if balance < 0 {
		balance = 0
	}

	logger.Info("money restored", zap.Int("balance", balance))
	return &Service{
		store:   store,
		bus:     bus,
		logger:  logger,
		balance: balance,
	}, nil
}

// Balance возвращает текущий баланс
func (s *Service) Balance() int {
	return s.balance
}

// Add изменяет баланс на amount; итог обрезается снизу нулем.
// Уведомление уходит на любой вызов с ненулевой дельтой.
func (s *Service) Add(ctx context.Context, amount int) {
	if amount == 0 {
		return
	}

	s.balance += amount
	if s.balance < 0 {
		s.balance = 0
	}

	s.commit(ctx, amount)
}

// TrySpend списывает amount целиком; при нехватке средств возвращает
// false и не трогает баланс, частичных списаний не бывает
func (s *Service) TrySpend(ctx context.Context, amount int) bool {
	if amount <= 0 {
		return false
	}
	if s.balance < amount {
		return false
	}

	s.balance -= amount
	s.commit(ctx, -amount)
	return true
}

func (s *Service) commit(ctx context.Context, amount int) {
	if err := saves.SetInt(ctx, s.store, saves.KeyMoneyBalance, s.balance); err != nil {
		s.logger.Warn("failed to persist money balance", zap.Error(err))
	}
	events.Publish(s.bus, events.MoneyChanged{Amount: amount, Balance: s.balance})
}
