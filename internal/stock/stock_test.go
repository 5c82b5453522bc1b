package stock

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/avc/mmdress/internal/domain"
	"github.com/avc/mmdress/internal/events"
	"github.com/avc/mmdress/internal/saves"
	"github.com/avc/mmdress/internal/saves/memory"
)

func newTestStock(t *testing.T) (*Service, *events.Bus, saves.Store) {
	t.Helper()

	bus := events.NewBus()
	store := memory.New()
	svc, err := New(context.Background(), DefaultTypesPerSlot, store, bus, zap.NewNop())
	require.NoError(t, err)
	return svc, bus, store
}

func TestService_Materials(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestStock(t)

	t.Run("Add and consume", func(t *testing.T) {
		require.True(t, svc.AddMaterial(ctx, domain.MaterialCloth, 3))
		require.True(t, svc.AddMaterial(ctx, domain.MaterialThread, 2))

		assert.True(t, svc.TryConsumeMaterial(ctx, domain.MaterialCloth, 2))
		assert.Equal(t, 1, svc.Material(domain.MaterialCloth))
	})

	t.Run("Consume more than available fails without change", func(t *testing.T) {
		before := svc.Material(domain.MaterialThread)

		assert.False(t, svc.TryConsumeMaterial(ctx, domain.MaterialThread, before+1))
		assert.Equal(t, before, svc.Material(domain.MaterialThread))
	})

	t.Run("Non-positive quantity rejected", func(t *testing.T) {
		assert.False(t, svc.AddMaterial(ctx, domain.MaterialCloth, 0))
		assert.False(t, svc.TryConsumeMaterial(ctx, domain.MaterialCloth, -1))
	})
}

func TestService_Garments(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestStock(t)

	t.Run("Add and consume by slot and type", func(t *testing.T) {
		require.True(t, svc.AddGarment(ctx, domain.SlotTop, 2, 3))

		assert.Equal(t, 3, svc.Garment(domain.SlotTop, 2))
		assert.True(t, svc.TryConsumeGarment(ctx, domain.SlotTop, 2, 1))
		assert.Equal(t, 2, svc.Garment(domain.SlotTop, 2))
	})

	t.Run("Out of range index is a silent no-op", func(t *testing.T) {
		assert.False(t, svc.AddGarment(ctx, domain.SlotTop, DefaultTypesPerSlot, 1))
		assert.False(t, svc.AddGarment(ctx, domain.SlotBottom, -1, 1))
		assert.Equal(t, 0, svc.Garment(domain.SlotTop, DefaultTypesPerSlot))
	})

	t.Run("Consume below zero fails", func(t *testing.T) {
		assert.False(t, svc.TryConsumeGarment(ctx, domain.SlotBottom, 0, 1))
		assert.Equal(t, 0, svc.Garment(domain.SlotBottom, 0))
	})
}

func TestService_InventoryChangedNotifications(t *testing.T) {
	ctx := context.Background()
	svc, bus, _ := newTestStock(t)

	changes := 0
	events.Subscribe(bus, func(events.InventoryChanged) { changes++ })

	svc.AddMaterial(ctx, domain.MaterialCloth, 1)     // +1
	svc.TryConsumeMaterial(ctx, domain.MaterialCloth, 5) // отказ, без события
	svc.AddGarment(ctx, domain.SlotTop, 0, 1)         // +1
	svc.AddGarment(ctx, domain.SlotTop, 99, 1)        // no-op, без события

	assert.Equal(t, 2, changes)
}

func TestService_SnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	bus := events.NewBus()
	store := memory.New()

	svc, err := New(ctx, DefaultTypesPerSlot, store, bus, zap.NewNop())
	require.NoError(t, err)

	svc.AddMaterial(ctx, domain.MaterialCloth, 4)
	svc.AddMaterial(ctx, domain.MaterialThread, 6)
	svc.AddGarment(ctx, domain.SlotTop, 1, 2)
	svc.AddGarment(ctx, domain.SlotBottom, 3, 5)

	// Новый экземпляр поверх того же хранилища видит тот же снимок
	reloaded, err := New(ctx, DefaultTypesPerSlot, store, bus, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, svc.Snapshot(), reloaded.Snapshot())
	assert.Equal(t, 4, reloaded.Material(domain.MaterialCloth))
	assert.Equal(t, 2, reloaded.Garment(domain.SlotTop, 1))
	assert.Equal(t, 5, reloaded.Garment(domain.SlotBottom, 3))
}
