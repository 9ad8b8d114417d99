package payement

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkConsumedFirstWins(t *testing.T) {
	s := NewMemoryConsumedIntents()
	ctx := context.Background()

	first, err := s.MarkConsumed(ctx, "pi_1")
	require.NoError(t, err)
	assert.True(t, first)

	// Le rejeu du même paiement ne gagne plus
	again, err := s.MarkConsumed(ctx, "pi_1")
	require.NoError(t, err)
	assert.False(t, again)
}

func TestMarkConsumedIndependentIntents(t *testing.T) {
	s := NewMemoryConsumedIntents()
	ctx := context.Background()

	first, err := s.MarkConsumed(ctx, "pi_1")
	require.NoError(t, err)
	assert.True(t, first)

	other, err := s.MarkConsumed(ctx, "pi_2")
	require.NoError(t, err)
	assert.True(t, other)
}

// Des rejeux concurrents du même paymentId ne doivent produire qu'un seul gagnant.
func TestMarkConsumedConcurrentReplays(t *testing.T) {
	s := NewMemoryConsumedIntents()
	ctx := context.Background()

	const workers = 20
	wins := make(chan bool, workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			first, err := s.MarkConsumed(ctx, "pi_1")
			assert.NoError(t, err)
			wins <- first
		}()
	}
	wg.Wait()
	close(wins)

	won := 0
	for first := range wins {
		if first {
			won++
		}
	}
	assert.Equal(t, 1, won)
}
