package order

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
)

// numberAttempts caps collision retries before generation fails loudly.
const numberAttempts = 5

// NumberExists is satisfied by the order repository.
type NumberExists interface {
	ExistsByNumber(ctx context.Context, number string) (bool, error)
}

// NumberGenerator produces unique 8-digit numeric order numbers,
// checking each candidate against existing orders. One generator is
// shared by all checkouts; the mutex guards the rand source.
type NumberGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewNumberGenerator(seed int64) *NumberGenerator {
	return &NumberGenerator{rng: rand.New(rand.NewSource(seed))}
}

// Generate returns an order number not currently in use. After
// numberAttempts collisions it returns ErrNumberExhausted.
func (g *NumberGenerator) Generate(ctx context.Context, repo NumberExists) (string, error) {
	for attempt := 0; attempt < numberAttempts; attempt++ {
		g.mu.Lock()
		draw := g.rng.Intn(100000000)
		g.mu.Unlock()

		candidate := fmt.Sprintf("%08d", draw)
		exists, err := repo.ExistsByNumber(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", ErrNumberExhausted
}
