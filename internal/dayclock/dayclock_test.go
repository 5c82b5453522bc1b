package dayclock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/avc/mmdress/internal/domain"
	"github.com/avc/mmdress/internal/events"
)

func newTestClock(t *testing.T, durations [domain.PhaseCount]time.Duration) (*Service, *events.Bus) {
	t.Helper()

	cfg := DefaultConfig()
	cfg.Durations = durations
	bus := events.NewBus()
	return New(cfg, bus, zap.NewNop()), bus
}

func fiveSecondsEach() [domain.PhaseCount]time.Duration {
	return [domain.PhaseCount]time.Duration{
		5 * time.Second, 5 * time.Second, 5 * time.Second, 5 * time.Second,
	}
}

func TestService_FullCycle(t *testing.T) {
	clock, bus := newTestClock(t, fiveSecondsEach())

	var transitions []domain.Phase
	events.Subscribe(bus, func(e events.PhaseChanged) {
		transitions = append(transitions, e.Phase)
	})

	// 20 секунд тиками по 100мс: ровно четыре перехода, без пропусков
	for i := 0; i < 200; i++ {
		clock.Advance(100 * time.Millisecond)
	}

	require.Len(t, transitions, 4)
	assert.Equal(t, []domain.Phase{
		domain.PhasePrep, domain.PhaseOpen, domain.PhaseClosed, domain.PhaseNight,
	}, transitions)
	assert.Equal(t, domain.PhaseNight, clock.Phase())
}

func TestService_OvershootCarriesOver(t *testing.T) {
	clock, _ := newTestClock(t, fiveSecondsEach())

	// 7 секунд одним тиком: фаза сменилась, 2 секунды перенеслись
	clock.Advance(7 * time.Second)

	assert.Equal(t, domain.PhasePrep, clock.Phase())
	assert.InDelta(t, 0.4, clock.Progress(), 1e-9)
}

func TestService_LargeTickCrossesSeveralPhases(t *testing.T) {
	clock, bus := newTestClock(t, fiveSecondsEach())

	var transitions []domain.Phase
	events.Subscribe(bus, func(e events.PhaseChanged) {
		transitions = append(transitions, e.Phase)
	})

	clock.Advance(12 * time.Second)

	assert.Equal(t, []domain.Phase{domain.PhasePrep, domain.PhaseOpen}, transitions)
	assert.Equal(t, domain.PhaseOpen, clock.Phase())
}

func TestService_ZeroDurationGetsEpsilon(t *testing.T) {
	clock, _ := newTestClock(t, [domain.PhaseCount]time.Duration{
		0, -time.Second, 5 * time.Second, 5 * time.Second,
	})

	// Вырожденные фазы проскакиваются за один тик, зависания нет
	clock.Advance(10 * time.Millisecond)
	assert.Equal(t, domain.PhaseOpen, clock.Phase())
}

func TestService_Pause(t *testing.T) {
	clock, _ := newTestClock(t, fiveSecondsEach())

	clock.Advance(2 * time.Second)
	clock.SetPaused(true)
	clock.Advance(time.Hour)

	assert.Equal(t, domain.PhaseNight, clock.Phase())
	assert.InDelta(t, 0.4, clock.Progress(), 1e-9)

	clock.SetPaused(false)
	clock.Advance(3 * time.Second)
	assert.Equal(t, domain.PhasePrep, clock.Phase())
}

func TestService_JumpTo(t *testing.T) {
	clock, bus := newTestClock(t, fiveSecondsEach())

	var transitions []domain.Phase
	events.Subscribe(bus, func(e events.PhaseChanged) {
		transitions = append(transitions, e.Phase)
	})

	t.Run("Jump publishes the new phase", func(t *testing.T) {
		clock.JumpTo(domain.PhaseOpen)

		assert.Equal(t, domain.PhaseOpen, clock.Phase())
		assert.Equal(t, []domain.Phase{domain.PhaseOpen}, transitions)
		assert.Equal(t, 0.0, clock.Progress())
	})

	t.Run("Jump to current phase resets progress silently", func(t *testing.T) {
		clock.Advance(2 * time.Second)
		clock.JumpTo(domain.PhaseOpen)

		assert.Equal(t, 0.0, clock.Progress())
		assert.Len(t, transitions, 1)
	})
}

func TestService_ClockString(t *testing.T) {
	clock, _ := newTestClock(t, fiveSecondsEach())

	// Night занимает 00:00-06:00 виртуального времени
	assert.Equal(t, "00:00", clock.ClockString())

	clock.Advance(2500 * time.Millisecond)
	assert.Equal(t, "03:00", clock.ClockString())

	clock.JumpTo(domain.PhaseOpen)
	assert.Equal(t, "09:00", clock.ClockString())
}
