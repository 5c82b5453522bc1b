package orders

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/avc/mmdress/internal/domain"
)

func seededService(lib *Library) *Service {
	return NewService(lib, rand.New(rand.NewSource(1)), zap.NewNop())
}

func TestService_StageFilter(t *testing.T) {
	lowOnly := domain.Order{Payout: 10}
	highOnly := domain.Order{Payout: 30}
	svc := seededService(NewLibrary([]Entry{
		{Order: lowOnly, Weight: 1, MinStage: 1, MaxStage: 1},
		{Order: highOnly, Weight: 1, MinStage: 3, MaxStage: 3},
	}))

	t.Run("Only orders covering the stage are returned", func(t *testing.T) {
		for i := 0; i < 50; i++ {
			got := svc.GetRandomOrder(1)
			require.NotNil(t, got)
			assert.Equal(t, lowOnly, *got)
		}
	})

	t.Run("No eligible entries yields nil", func(t *testing.T) {
		assert.Nil(t, svc.GetRandomOrder(2))
	})

	t.Run("Range bounds are inclusive", func(t *testing.T) {
		got := svc.GetRandomOrder(3)
		require.NotNil(t, got)
		assert.Equal(t, highOnly, *got)
	})
}

func TestService_RangeNormalization(t *testing.T) {
	order := domain.Order{Payout: 10}

	t.Run("Inverted range is swapped", func(t *testing.T) {
		svc := seededService(NewLibrary([]Entry{
			{Order: order, Weight: 1, MinStage: 3, MaxStage: 1},
		}))
		assert.NotNil(t, svc.GetRandomOrder(2))
	})

	t.Run("Out of bounds stages are clamped", func(t *testing.T) {
		svc := seededService(NewLibrary([]Entry{
			{Order: order, Weight: 1, MinStage: -5, MaxStage: 99},
		}))
		assert.NotNil(t, svc.GetRandomOrder(1))
		assert.NotNil(t, svc.GetRandomOrder(3))
	})
}

func TestService_NonPositiveWeightExcluded(t *testing.T) {
	kept := domain.Order{Payout: 10}
	svc := seededService(NewLibrary([]Entry{
		{Order: domain.Order{Payout: 1}, Weight: 0, MinStage: 1, MaxStage: 3},
		{Order: domain.Order{Payout: 2}, Weight: -3, MinStage: 1, MaxStage: 3},
		{Order: kept, Weight: 1, MinStage: 1, MaxStage: 3},
	}))

	for i := 0; i < 50; i++ {
		got := svc.GetRandomOrder(2)
		require.NotNil(t, got)
		assert.Equal(t, kept, *got)
	}
}

func TestService_WeightedDistribution(t *testing.T) {
	heavy := domain.Order{Payout: 3}
	light := domain.Order{Payout: 1}
	svc := seededService(NewLibrary([]Entry{
		{Order: heavy, Weight: 3, MinStage: 1, MaxStage: 3},
		{Order: light, Weight: 1, MinStage: 1, MaxStage: 3},
	}))

	const draws = 20000
	heavyHits := 0
	for i := 0; i < draws; i++ {
		got := svc.GetRandomOrder(2)
		require.NotNil(t, got)
		if got.Payout == heavy.Payout {
			heavyHits++
		}
	}

	// Доля тяжелой записи сходится к весовой пропорции 3:1
	ratio := float64(heavyHits) / float64(draws)
	assert.InDelta(t, 0.75, ratio, 0.02)
}

func TestDefaultLibrary(t *testing.T) {
	svc := seededService(DefaultLibrary(5))

	for stage := 1; stage <= 3; stage++ {
		got := svc.GetRandomOrder(stage)
		require.NotNil(t, got, "stage %d must have eligible orders", stage)
	}
}
