// Package score реализует независимых слушателей кассы: поштучную
// выплату за одетые слоты и дневную статистику обслуживания.
//
// Поштучная выплата сосуществует с выплатой по заказу у резолвера и не
// заменяет ее: обе стратегии включаются независимо друг от друга.
package score

import (
	"context"

	"go.uber.org/zap"

	"github.com/avc/mmdress/internal/domain"
	"github.com/avc/mmdress/internal/economy"
	"github.com/avc/mmdress/internal/events"
)

// Config задает поштучную выплату; ноль отключает стратегию
type Config struct {
	FlatPerItemPayout int
}

// Service представляет счетчик итогов дня
type Service struct {
	cfg     Config
	economy *economy.Service
	logger  *zap.Logger

	served   int
	timedOut int
	earned   int
}

// New создает сервис и подписывает его на события кассы и шины денег
func New(cfg Config, economySvc *economy.Service, bus *events.Bus, logger *zap.Logger) *Service {
	s := &Service{
		cfg:     cfg,
		economy: economySvc,
		logger:  logger,
	}

	events.Subscribe(bus, s.onCheckout)
	events.Subscribe(bus, func(events.CustomerTimedOut) { s.timedOut++ })
	events.Subscribe(bus, func(e events.MoneyChanged) {
		if e.Amount > 0 {
			s.earned += e.Amount
		}
	})
	events.Subscribe(bus, func(events.EndOfDayArrived) { s.rollDay() })

	return s
}

// onCheckout считает обслуженных и, если стратегия включена, платит за
// каждый одетый слот независимо от совпадения с заказом
func (s *Service) onCheckout(e events.CustomerCheckout) {
	s.served++

	if s.cfg.FlatPerItemPayout <= 0 || e.ItemsEquipped <= 0 {
		return
	}

	payout := s.cfg.FlatPerItemPayout * e.ItemsEquipped
	s.economy.Add(context.Background(), payout)
	s.logger.Debug("flat per-item payout",
		zap.String("customer", e.CustomerID),
		zap.Int("items", e.ItemsEquipped),
		zap.Int("payout", payout),
	)
}

// Summary возвращает накопленные итоги текущего дня
func (s *Service) Summary() domain.DaySummary {
	return domain.DaySummary{
		Served:   s.served,
		TimedOut: s.timedOut,
		Earned:   s.earned,
	}
}

// rollDay логирует сводку дня и обнуляет счетчики
func (s *Service) rollDay() {
	s.logger.Info("day summary",
		zap.Int("served", s.served),
		zap.Int("timed_out", s.timedOut),
		zap.Int("earned", s.earned),
	)
	s.served, s.timedOut, s.earned = 0, 0, 0
}
