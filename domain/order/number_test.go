package order

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNumberIndex struct {
	taken     map[string]bool
	takeAll   bool
	err       error
	callCount int
}

func (f *fakeNumberIndex) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	f.callCount++
	if f.err != nil {
		return false, f.err
	}
	if f.takeAll {
		return true, nil
	}
	return f.taken[number], nil
}

func TestGenerateProducesEightDigits(t *testing.T) {
	g := NewNumberGenerator(42)
	idx := &fakeNumberIndex{}

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		n, err := g.Generate(context.Background(), idx)
		require.NoError(t, err)
		require.Len(t, n, 8)
		for _, r := range n {
			assert.True(t, r >= '0' && r <= '9', "non-digit in order number %q", n)
		}
		assert.False(t, seen[n], "duplicate number %q in 100 draws", n)
		seen[n] = true
	}
}

func TestGenerateSkipsCollisions(t *testing.T) {
	// Same seed draws the same first candidate; mark it taken and the
	// generator must move on to the next one.
	first, err := NewNumberGenerator(7).Generate(context.Background(), &fakeNumberIndex{})
	require.NoError(t, err)

	idx := &fakeNumberIndex{taken: map[string]bool{first: true}}
	n, err := NewNumberGenerator(7).Generate(context.Background(), idx)
	require.NoError(t, err)
	assert.NotEqual(t, first, n)
	assert.Equal(t, 2, idx.callCount)
}

func TestGenerateExhaustsAttempts(t *testing.T) {
	idx := &fakeNumberIndex{takeAll: true}
	_, err := NewNumberGenerator(1).Generate(context.Background(), idx)
	assert.ErrorIs(t, err, ErrNumberExhausted)
	assert.Equal(t, numberAttempts, idx.callCount)
}

// freeNumberIndex reports every candidate as available and keeps no
// state, so it is safe to share across goroutines.
type freeNumberIndex struct{}

func (freeNumberIndex) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	return false, nil
}

func TestGenerateConcurrent(t *testing.T) {
	g := NewNumberGenerator(42)
	idx := freeNumberIndex{}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				n, err := g.Generate(context.Background(), idx)
				assert.NoError(t, err)
				assert.Len(t, n, 8)
			}
		}()
	}
	wg.Wait()
}

func TestGeneratePropagatesLookupError(t *testing.T) {
	boom := errors.New("db down")
	_, err := NewNumberGenerator(1).Generate(context.Background(), &fakeNumberIndex{err: boom})
	assert.ErrorIs(t, err, boom)
}
