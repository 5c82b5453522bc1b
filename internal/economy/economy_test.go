package economy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/avc/mmdress/internal/events"
	"github.com/avc/mmdress/internal/saves/memory"
)

func TestService_AddAndSpend(t *testing.T) {
	ctx := context.Background()
	bus := events.NewBus()
	store := memory.New()

	svc, err := New(ctx, store, bus, zap.NewNop())
	require.NoError(t, err)

	var changes []events.MoneyChanged
	events.Subscribe(bus, func(e events.MoneyChanged) {
		changes = append(changes, e)
	})

	t.Run("Add credits the balance", func(t *testing.T) {
		svc.Add(ctx, 100)

		assert.Equal(t, 100, svc.Balance())
		require.Len(t, changes, 1)
		assert.Equal(t, events.MoneyChanged{Amount: 100, Balance: 100}, changes[0])
	})

	t.Run("TrySpend debits fully or not at all", func(t *testing.T) {
		assert.True(t, svc.TrySpend(ctx, 60))
		assert.Equal(t, 40, svc.Balance())

		assert.False(t, svc.TrySpend(ctx, 41))
		assert.Equal(t, 40, svc.Balance())
	})

	t.Run("Non-positive spend rejected", func(t *testing.T) {
		assert.False(t, svc.TrySpend(ctx, 0))
		assert.False(t, svc.TrySpend(ctx, -10))
	})

	t.Run("Negative add clamps at zero", func(t *testing.T) {
		svc.Add(ctx, -1000)
		assert.Equal(t, 0, svc.Balance())
	})

	t.Run("Zero add is silent", func(t *testing.T) {
		before := len(changes)
		svc.Add(ctx, 0)
		assert.Len(t, changes, before)
	})
}

func TestService_PersistsAcrossRestarts(t *testing.T) {
	ctx := context.Background()
	bus := events.NewBus()
	store := memory.New()

	svc, err := New(ctx, store, bus, zap.NewNop())
	require.NoError(t, err)
	svc.Add(ctx, 250)

	reloaded, err := New(ctx, store, bus, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 250, reloaded.Balance())
}
