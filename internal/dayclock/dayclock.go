// Package dayclock реализует часы игрового дня: циклический автомат
// из четырех фаз (Night -> Prep -> Open -> Closed) на реальном времени.
package dayclock

import (
	"time"

	"go.uber.org/zap"

	"github.com/avc/mmdress/internal/domain"
	"github.com/avc/mmdress/internal/events"
	"github.com/avc/mmdress/internal/utils/clock24"
)

// minPhaseDuration задает нижнюю границу длительности фазы; нулевые и
// отрицательные значения конфигурации поднимаются до нее, чтобы
// исключить мгновенный бесконечный цикл
const minPhaseDuration = time.Millisecond

// Config задает длительности фаз в реальном времени и раскладку
// виртуальных минут по фазам для 24-часовых часов
type Config struct {
	Durations    [domain.PhaseCount]time.Duration
	PhaseMinutes [domain.PhaseCount]int
}

// DefaultConfig возвращает конфигурацию по умолчанию:
// минута реального времени на фазу, виртуальные сутки 24 часа
func DefaultConfig() Config {
	return Config{
		Durations: [domain.PhaseCount]time.Duration{
			time.Minute, // Night
			time.Minute, // Prep
			time.Minute, // Open
			time.Minute, // Closed
		},
		// Night 00:00-06:00, Prep 06:00-09:00, Open 09:00-19:00, Closed 19:00-24:00
		PhaseMinutes: [domain.PhaseCount]int{360, 180, 600, 300},
	}
}

// Service представляет часы игрового дня
type Service struct {
	durations [domain.PhaseCount]time.Duration
	minutes   [domain.PhaseCount]int
	offsets   [domain.PhaseCount]int

	phase   domain.Phase
	elapsed time.Duration
	paused  bool

	bus    *events.Bus
	logger *zap.Logger
}

// New создает часы в фазе Night с нулевым прогрессом
func New(cfg Config, bus *events.Bus, logger *zap.Logger) *Service {
	s := &Service{
		minutes: cfg.PhaseMinutes,
		bus:     bus,
		logger:  logger,
	}

	for i, d := range cfg.Durations {
		if d < minPhaseDuration {
			d = minPhaseDuration
		}
		s.durations[i] = d
	}

	// Кумулятивные минутные смещения начала каждой фазы
	total := 0
	for i := 0; i < domain.PhaseCount; i++ {
		s.offsets[i] = total
		total += s.minutes[i]
	}

	return s
}

// Phase возвращает текущую фазу
func (s *Service) Phase() domain.Phase {
	return s.phase
}

// Paused сообщает, остановлены ли часы
func (s *Service) Paused() bool {
	return s.paused
}

// SetPaused останавливает или возобновляет ход часов, не сбрасывая прогресс
func (s *Service) SetPaused(paused bool) {
	s.paused = paused
}

// Advance продвигает таймер на dt. При достижении длительности фазы
// переполнение переносится в следующую фазу (а не обнуляется), поэтому
// за один вызов может смениться несколько фаз подряд.
func (s *Service) Advance(dt time.Duration) {
	if s.paused || dt <= 0 {
		return
	}

	s.elapsed += dt
	for s.elapsed >= s.durations[s.phase] {
		s.elapsed -= s.durations[s.phase]
		s.transition(s.phase.Next())
	}
}

// JumpTo немедленно переводит часы в фазу phase с нулевым прогрессом.
// Используется, например, чтобы пропустить остаток закупочного окна.
func (s *Service) JumpTo(phase domain.Phase) {
	s.elapsed = 0
	if phase == s.phase {
		return
	}
	s.transition(phase)
}

// transition меняет фазу и рассылает уведомление
func (s *Service) transition(next domain.Phase) {
	s.phase = next
	s.logger.Info("phase changed",
		zap.String("phase", next.String()),
		zap.String("clock", s.ClockString()),
	)
	events.Publish(s.bus, events.PhaseChanged{Phase: next})
}

// Progress возвращает долю пройденного в текущей фазе, в [0,1)
func (s *Service) Progress() float64 {
	return float64(s.elapsed) / float64(s.durations[s.phase])
}

// ClockString возвращает виртуальное время суток в формате "HH:MM"
func (s *Service) ClockString() string {
	return clock24.FormatFraction(s.offsets[s.phase], s.minutes[s.phase], s.Progress())
}
