package customer

import (
	"time"

	"go.uber.org/zap"

	"github.com/avc/mmdress/internal/events"
	"github.com/avc/mmdress/internal/orders"
	"github.com/avc/mmdress/internal/reputation"
)

// SpawnerConfig задает частоту появления клиентов, их терпение и
// предел одновременных посетителей
type SpawnerConfig struct {
	Interval  time.Duration
	Patience  time.Duration
	MaxActive int
}

// DefaultSpawnerConfig возвращает параметры спавна по умолчанию
func DefaultSpawnerConfig() SpawnerConfig {
	return SpawnerConfig{
		Interval:  15 * time.Second,
		Patience:  45 * time.Second,
		MaxActive: 3,
	}
}

// Spawner порождает клиентов в фазе Open и ведет их терпение.
// Терпение тает быстрее на высоких ступенях репутации: множитель
// скорости игры берется у сервиса репутации.
type Spawner struct {
	cfg        SpawnerConfig
	gate       *PhaseGate
	orders     *orders.Service
	reputation *reputation.Service
	bus        *events.Bus
	logger     *zap.Logger

	elapsed time.Duration
	active  map[string]*Customer
	arrived []string // порядок появления, для стабильных обходов
}

// NewSpawner создает спавнер; клиенты появляются только при открытом gate
func NewSpawner(cfg SpawnerConfig, gate *PhaseGate, ordersSvc *orders.Service, reputationSvc *reputation.Service, bus *events.Bus, logger *zap.Logger) *Spawner {
	return &Spawner{
		cfg:        cfg,
		gate:       gate,
		orders:     ordersSvc,
		reputation: reputationSvc,
		bus:        bus,
		logger:     logger,
		active:     make(map[string]*Customer),
	}
}

// Tick продвигает спавнер на dt: тает терпение активных клиентов,
// при открытом затворе по интервалу появляются новые
func (s *Spawner) Tick(dt time.Duration) {
	s.drainPatience(dt)

	if !s.gate.Open() {
		s.elapsed = 0
		return
	}

	s.elapsed += dt
	for s.elapsed >= s.cfg.Interval {
		s.elapsed -= s.cfg.Interval
		if len(s.active) >= s.cfg.MaxActive {
			continue
		}
		s.spawn()
	}
}

// Customer возвращает активного клиента по идентификатору
func (s *Spawner) Customer(id string) (*Customer, bool) {
	c, ok := s.active[id]
	return c, ok
}

// Active возвращает активных клиентов в порядке появления
func (s *Spawner) Active() []*Customer {
	result := make([]*Customer, 0, len(s.active))
	for _, id := range s.arrived {
		if c, ok := s.active[id]; ok {
			result = append(result, c)
		}
	}
	return result
}

// Remove убирает клиента из зала; вызывается после кассы
func (s *Spawner) Remove(id string) {
	delete(s.active, id)
	s.compactArrived()
}

// compactArrived выбрасывает из порядка появления идентификаторы
// ушедших клиентов, сохраняя порядок оставшихся
func (s *Spawner) compactArrived() {
	kept := s.arrived[:0]
	for _, id := range s.arrived {
		if _, ok := s.active[id]; ok {
			kept = append(kept, id)
		}
	}
	s.arrived = kept
}

// spawn создает клиента, назначает ему заказ по текущей ступени
// репутации и объявляет о его появлении
func (s *Spawner) spawn() {
	c := NewCustomer(s.cfg.Patience)

	order := s.orders.GetRandomOrder(s.reputation.Stage())
	c.SetOrder(order) // nil допустим: свободный запрос

	s.active[c.ID()] = c
	s.arrived = append(s.arrived, c.ID())

	s.logger.Info("customer arrived",
		zap.String("customer", c.ID()),
		zap.Bool("has_order", order != nil),
	)
	events.Publish(s.bus, events.CustomerArrived{CustomerID: c.ID()})
}

// drainPatience тает терпение с учетом множителя скорости; клиенты с
// исчерпанным терпением уходят ни с чем
func (s *Spawner) drainPatience(dt time.Duration) {
	if dt <= 0 {
		return
	}

	scaled := time.Duration(float64(dt) * s.reputation.SpeedFactor())
	timedOut := false
	for _, id := range s.arrived {
		c, ok := s.active[id]
		if !ok {
			continue
		}
		if !c.DrainPatience(scaled) {
			continue
		}

		delete(s.active, id)
		timedOut = true
		s.logger.Info("customer timed out", zap.String("customer", id))
		events.Publish(s.bus, events.CustomerTimedOut{CustomerID: id})
	}
	if timedOut {
		s.compactArrived()
	}
}
