// Package reputation реализует сервис репутации ателье: процент 0-100,
// производная ступень 1-3 и множитель скорости игры.
package reputation

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/avc/mmdress/internal/events"
	"github.com/avc/mmdress/internal/saves"
)

// Config задает пороги ступеней и множители скорости по ступеням
type Config struct {
	Stage1Max      float64
	Stage2Max      float64
	SpeedFactors   [3]float64
	InitialPercent float64
}

// DefaultConfig возвращает параметры репутации по умолчанию
func DefaultConfig() Config {
	return Config{
		Stage1Max:      33,
		Stage2Max:      66,
		SpeedFactors:   [3]float64{1.0, 1.25, 1.5},
		InitialPercent: 50,
	}
}

// Service представляет сервис репутации
type Service struct {
	cfg     Config
	store   saves.Store
	bus     *events.Bus
	logger  *zap.Logger
	percent float64
	stage   int
}

// New создает сервис, восстанавливая процент из сохранений
func New(ctx context.Context, cfg Config, store saves.Store, bus *events.Bus, logger *zap.Logger) (*Service, error) {
	percent, err := saves.GetFloat(ctx, store, saves.KeyReputationPercent, cfg.InitialPercent)
	if err != nil {
		return nil, fmt.Errorf("reputation: failed to restore percent: %w", err)
	}

	s := &Service{
		cfg:     cfg,
		store:   store,
		bus:     bus,
		logger:  logger,
		percent: clamp(percent),
	}
	s.stage = s.stageFor(s.percent)

	logger.Info("reputation restored",
		zap.Float64("percent", s.percent),
		zap.Int("stage", s.stage),
	)
	return s, nil
}

// Percent возвращает текущий процент репутации
func (s *Service) Percent() float64 {
	return s.percent
}

// Stage возвращает текущую ступень репутации (1-3)
func (s *Service) Stage() int {
	return s.stage
}

// SpeedFactor возвращает множитель скорости игры для текущей ступени
func (s *Service) SpeedFactor() float64 {
	return s.cfg.SpeedFactors[s.stage-1]
}

// AddPercent изменяет процент на delta с обрезкой в [0,100], сохраняет
// значение и пересчитывает ступень. Уведомление об изменении процента
// уходит на каждый вызов, уведомление о ступени только при ее смене.
func (s *Service) AddPercent(ctx context.Context, delta float64) {
	s.percent = clamp(s.percent + delta)

	if err := saves.SetFloat(ctx, s.store, saves.KeyReputationPercent, s.percent); err != nil {
		s.logger.Warn("failed to persist reputation", zap.Error(err))
	}

	events.Publish(s.bus, events.ReputationChanged{Percent: s.percent})

	next := s.stageFor(s.percent)
	if next == s.stage {
		return
	}

	prev := s.stage
	s.stage = next
	direction := 1
	if next < prev {
		direction = -1
	}

	s.logger.Info("reputation stage changed",
		zap.Int("prev", prev),
		zap.Int("next", next),
		zap.Int("direction", direction),
	)
	events.Publish(s.bus, events.ReputationStageChanged{
		Prev:      prev,
		Next:      next,
		Direction: direction,
	})
}

// ApplyCheckout применяет итог обслуживания: пустой уход дает -1%,
// успешное обслуживание +1%. Флаги взаимоисключающие, empty важнее.
func (s *Service) ApplyCheckout(ctx context.Context, served, empty bool) {
	switch {
	case empty:
		s.AddPercent(ctx, -1)
	case served:
		s.AddPercent(ctx, 1)
	}
}

// stageFor возвращает ступень как чистую функцию процента
func (s *Service) stageFor(percent float64) int {
	switch {
	case percent <= s.cfg.Stage1Max:
		return 1
	case percent <= s.cfg.Stage2Max:
		return 2
	default:
		return 3
	}
}

func clamp(percent float64) float64 {
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}
