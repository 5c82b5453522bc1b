package customer

import (
	"github.com/avc/mmdress/internal/domain"
	"github.com/avc/mmdress/internal/events"
)

// PhaseGate отслеживает смену фаз и открыт только в заданной фазе.
// Используется спавнером, чтобы пускать новых клиентов лишь при
// открытом магазине.
type PhaseGate struct {
	allowed domain.Phase
	open    bool
}

// NewPhaseGate создает затвор для фазы allowed и подписывает его на шину
func NewPhaseGate(bus *events.Bus, allowed domain.Phase, initial domain.Phase) *PhaseGate {
	g := &PhaseGate{
		allowed: allowed,
		open:    initial == allowed,
	}
	events.Subscribe(bus, func(e events.PhaseChanged) {
		g.open = e.Phase == g.allowed
	})
	return g
}

// Open сообщает, открыт ли затвор
func (g *PhaseGate) Open() bool {
	return g.open
}
