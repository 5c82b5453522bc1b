package procurement

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/avc/mmdress/internal/domain"
	"github.com/avc/mmdress/internal/economy"
	"github.com/avc/mmdress/internal/events"
	"github.com/avc/mmdress/internal/saves/memory"
	"github.com/avc/mmdress/internal/stock"
)

// fakePhases подменяет часы дня в тестах
type fakePhases struct {
	phase domain.Phase
}

func (f *fakePhases) Phase() domain.Phase { return f.phase }

type fixture struct {
	svc     *Service
	phases  *fakePhases
	stock   *stock.Service
	economy *economy.Service
	bus     *events.Bus
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	bus := events.NewBus()
	store := memory.New()
	logger := zap.NewNop()

	stockSvc, err := stock.New(ctx, stock.DefaultTypesPerSlot, store, bus, logger)
	require.NoError(t, err)

	economySvc, err := economy.New(ctx, store, bus, logger)
	require.NoError(t, err)

	phases := &fakePhases{phase: domain.PhasePrep}
	svc, err := New(ctx, DefaultConfig(), phases, stockSvc, economySvc, store, bus, logger)
	require.NoError(t, err)

	return &fixture{svc: svc, phases: phases, stock: stockSvc, economy: economySvc, bus: bus}
}

func TestService_BuyMaterial(t *testing.T) {
	ctx := context.Background()

	t.Run("Success debits money and credits stock", func(t *testing.T) {
		f := newFixture(t)
		f.economy.Add(ctx, 100)

		var succeeded []events.PurchaseSucceeded
		events.Subscribe(f.bus, func(e events.PurchaseSucceeded) {
			succeeded = append(succeeded, e)
		})

		require.NoError(t, f.svc.BuyMaterial(ctx, domain.MaterialCloth, 3))

		assert.Equal(t, 70, f.economy.Balance())
		assert.Equal(t, 3, f.stock.Material(domain.MaterialCloth))
		require.Len(t, succeeded, 1)
		assert.Equal(t, events.PurchaseSucceeded{Material: domain.MaterialCloth, Qty: 3, Cost: 30}, succeeded[0])
	})

	t.Run("Outside prep window fails without side effects", func(t *testing.T) {
		f := newFixture(t)
		f.economy.Add(ctx, 100)
		f.phases.phase = domain.PhaseOpen

		var failed []events.PurchaseFailed
		events.Subscribe(f.bus, func(e events.PurchaseFailed) {
			failed = append(failed, e)
		})

		err := f.svc.BuyMaterial(ctx, domain.MaterialCloth, 1)

		assert.ErrorIs(t, err, domain.ErrOutsidePrepWindow)
		assert.Equal(t, 100, f.economy.Balance())
		assert.Equal(t, 0, f.stock.Material(domain.MaterialCloth))
		require.Len(t, failed, 1)
		assert.Equal(t, "not allowed outside prep window", failed[0].Reason)
	})

	t.Run("Insufficient funds leaves state unchanged", func(t *testing.T) {
		f := newFixture(t)
		f.economy.Add(ctx, 5)

		err := f.svc.BuyMaterial(ctx, domain.MaterialCloth, 1)

		assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
		assert.Equal(t, 5, f.economy.Balance())
		assert.Equal(t, 0, f.stock.Material(domain.MaterialCloth))
	})

	t.Run("Non-positive quantity rejected", func(t *testing.T) {
		f := newFixture(t)
		assert.ErrorIs(t, f.svc.BuyMaterial(ctx, domain.MaterialThread, 0), domain.ErrInvalidQuantity)
	})
}

func TestService_Craft(t *testing.T) {
	ctx := context.Background()

	t.Run("Success consumes both materials and credits garment", func(t *testing.T) {
		f := newFixture(t)
		f.stock.AddMaterial(ctx, domain.MaterialCloth, 3)
		f.stock.AddMaterial(ctx, domain.MaterialThread, 3)

		var succeeded []events.CraftSucceeded
		events.Subscribe(f.bus, func(e events.CraftSucceeded) {
			succeeded = append(succeeded, e)
		})

		require.NoError(t, f.svc.Craft(ctx, domain.SlotTop, 1, 2))

		assert.Equal(t, 1, f.stock.Material(domain.MaterialCloth))
		assert.Equal(t, 1, f.stock.Material(domain.MaterialThread))
		assert.Equal(t, 2, f.stock.Garment(domain.SlotTop, 1))
		require.Len(t, succeeded, 1)
		assert.Equal(t, 2, f.svc.CraftedCount("top_1"))
	})

	t.Run("Insufficient materials fail atomically", func(t *testing.T) {
		f := newFixture(t)
		f.stock.AddMaterial(ctx, domain.MaterialCloth, 5)
		f.stock.AddMaterial(ctx, domain.MaterialThread, 1)

		err := f.svc.Craft(ctx, domain.SlotTop, 0, 2)

		assert.ErrorIs(t, err, domain.ErrInsufficientMaterials)
		assert.Equal(t, 5, f.stock.Material(domain.MaterialCloth))
		assert.Equal(t, 1, f.stock.Material(domain.MaterialThread))
		assert.Equal(t, 0, f.stock.Garment(domain.SlotTop, 0))
	})

	t.Run("Outside prep window rejected", func(t *testing.T) {
		f := newFixture(t)
		f.phases.phase = domain.PhaseClosed

		assert.ErrorIs(t, f.svc.Craft(ctx, domain.SlotTop, 0, 1), domain.ErrOutsidePrepWindow)
	})

	t.Run("Unknown garment type rejected", func(t *testing.T) {
		f := newFixture(t)
		f.stock.AddMaterial(ctx, domain.MaterialCloth, 1)
		f.stock.AddMaterial(ctx, domain.MaterialThread, 1)

		assert.ErrorIs(t, f.svc.Craft(ctx, domain.SlotTop, 99, 1), domain.ErrInvalidGarmentType)
	})
}

func TestService_PhaseReactions(t *testing.T) {
	t.Run("Starting balance applied once per session", func(t *testing.T) {
		f := newFixture(t)

		events.Publish(f.bus, events.PhaseChanged{Phase: domain.PhasePrep})
		assert.Equal(t, 200, f.economy.Balance())

		// Повторный вход в Prep капитал не дублирует
		events.Publish(f.bus, events.PhaseChanged{Phase: domain.PhaseOpen})
		events.Publish(f.bus, events.PhaseChanged{Phase: domain.PhasePrep})
		assert.Equal(t, 200, f.economy.Balance())
	})

	t.Run("Closed phase signals end of day", func(t *testing.T) {
		f := newFixture(t)

		days := 0
		events.Subscribe(f.bus, func(events.EndOfDayArrived) { days++ })

		events.Publish(f.bus, events.PhaseChanged{Phase: domain.PhaseClosed})
		assert.Equal(t, 1, days)
	})
}

func TestService_PrepLock(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	assert.False(t, f.svc.PrepLocked(ctx))
	f.svc.LockPrep(ctx)
	assert.True(t, f.svc.PrepLocked(ctx))
}
