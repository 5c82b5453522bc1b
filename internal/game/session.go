// Package game собирает сервисы ядра в игровую сессию и предоставляет
// API, который дергает внешний слой интерфейса: тик, открытие примерки,
// надевание и касса.
package game

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/avc/mmdress/internal/customer"
	"github.com/avc/mmdress/internal/dayclock"
	"github.com/avc/mmdress/internal/domain"
	"github.com/avc/mmdress/internal/economy"
	"github.com/avc/mmdress/internal/events"
	"github.com/avc/mmdress/internal/fitting"
	"github.com/avc/mmdress/internal/procurement"
	"github.com/avc/mmdress/internal/reputation"
	"github.com/avc/mmdress/internal/saves"
	"github.com/avc/mmdress/internal/score"
	"github.com/avc/mmdress/internal/stock"
)

// Deps перечисляет собранные сервисы сессии
type Deps struct {
	Bus         *events.Bus
	Clock       *dayclock.Service
	Reputation  *reputation.Service
	Stock       *stock.Service
	Economy     *economy.Service
	Procurement *procurement.Service
	Spawner     *customer.Spawner
	Score       *score.Service
	Resolver    *fitting.Resolver
	Store       saves.Store
	FittingCfg  fitting.Config
}

// Session представляет запущенную игровую сессию.
// Вся мутация состояния происходит синхронно внутри Tick и методов
// игрока; сервисы не делят изменяемых полей между собой.
type Session struct {
	deps     Deps
	logger   *zap.Logger
	fittings map[string]*fitting.Session
}

// NewSession создает сессию поверх собранных сервисов и вешает
// слушателя таймаутов: ушедший ни с чем клиент стоит один процент
// репутации
func NewSession(deps Deps, logger *zap.Logger) *Session {
	s := &Session{
		deps:     deps,
		logger:   logger,
		fittings: make(map[string]*fitting.Session),
	}

	events.Subscribe(deps.Bus, func(e events.CustomerTimedOut) {
		delete(s.fittings, e.CustomerID)
		deps.Reputation.ApplyCheckout(context.Background(), false, true)
	})

	return s
}

// Tick продвигает сессию на dt: часы дня, затем спавнер
func (s *Session) Tick(dt time.Duration) {
	s.deps.Clock.Advance(dt)
	s.deps.Spawner.Tick(dt)
}

// OpenFitting открывает примерку для клиента id
func (s *Session) OpenFitting(id string) (*fitting.Session, error) {
	if _, ok := s.deps.Spawner.Customer(id); !ok {
		return nil, domain.ErrCustomerNotFound
	}
	if _, ok := s.fittings[id]; ok {
		return nil, domain.ErrSessionExists
	}

	sess := fitting.NewSession(id, s.deps.FittingCfg, s.deps.Stock, s.logger)
	s.fittings[id] = sess
	s.logger.Info("fitting opened", zap.String("customer", id))
	return sess, nil
}

// Fitting возвращает открытую примерку клиента
func (s *Session) Fitting(id string) (*fitting.Session, bool) {
	sess, ok := s.fittings[id]
	return sess, ok
}

// Equip надевает предмет в рамках открытой примерки клиента
func (s *Session) Equip(ctx context.Context, id string, item domain.ItemRef) error {
	sess, ok := s.fittings[id]
	if !ok {
		return domain.ErrNoActiveSession
	}
	return sess.Equip(ctx, item.Slot, item)
}

// Preview показывает предмет без фиксации в открытой примерке клиента
func (s *Session) Preview(id string, item domain.ItemRef) error {
	sess, ok := s.fittings[id]
	if !ok {
		return domain.ErrNoActiveSession
	}
	sess.SetPreview(item.Slot, item)
	return nil
}

// CloseFitting закрывает примерку через кассу: итог сверяется с заказом,
// клиент уходит, сессия уничтожается
func (s *Session) CloseFitting(ctx context.Context, id string) (fitting.Result, error) {
	sess, ok := s.fittings[id]
	if !ok {
		return fitting.Result{}, domain.ErrNoActiveSession
	}
	c, ok := s.deps.Spawner.Customer(id)
	if !ok {
		return fitting.Result{}, domain.ErrCustomerNotFound
	}

	res := s.deps.Resolver.Resolve(ctx, c, sess)

	delete(s.fittings, id)
	s.deps.Spawner.Remove(id)
	return res, nil
}

// LockPrep фиксирует закупочную фазу и сразу открывает магазин
func (s *Session) LockPrep(ctx context.Context) {
	s.deps.Procurement.LockPrep(ctx)
	s.deps.Clock.JumpTo(domain.PhaseOpen)
}

// TutorialSeen сообщает, видел ли игрок обучение
func (s *Session) TutorialSeen(ctx context.Context) bool {
	seen, err := saves.GetBool(ctx, s.deps.Store, saves.KeyTutorialSeen, false)
	if err != nil {
		s.logger.Warn("failed to read tutorial flag", zap.Error(err))
	}
	return seen
}

// MarkTutorialSeen отмечает обучение просмотренным
func (s *Session) MarkTutorialSeen(ctx context.Context) {
	if err := saves.SetBool(ctx, s.deps.Store, saves.KeyTutorialSeen, true); err != nil {
		s.logger.Warn("failed to persist tutorial flag", zap.Error(err))
	}
}

// Shutdown сбрасывает состояние на диск и закрывает хранилище
func (s *Session) Shutdown(ctx context.Context) error {
	if err := s.deps.Stock.Save(ctx); err != nil {
		s.logger.Warn("failed to save stock on shutdown", zap.Error(err))
	}
	return s.deps.Store.Close()
}
