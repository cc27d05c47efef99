package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"shopcore/domain/order"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig() Config {
	return Config{
		Enabled:       true,
		MaxAttempts:   3,
		InitialDelay:  time.Millisecond,
		MaxDelay:      5 * time.Millisecond,
		BackoffFactor: 2.0,
	}
}

func TestExecuteRetriesTransientErrors(t *testing.T) {
	calls := 0
	err := Execute(context.Background(), fastConfig(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return order.ErrConcurrentModification
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestExecuteStopsOnPermanentError(t *testing.T) {
	boom := errors.New("validation failed")
	calls := 0
	err := Execute(context.Background(), fastConfig(), func(ctx context.Context) error {
		calls++
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestExecuteExhaustsAttempts(t *testing.T) {
	calls := 0
	err := Execute(context.Background(), fastConfig(), func(ctx context.Context) error {
		calls++
		return order.ErrConcurrentModification
	})
	assert.ErrorIs(t, err, order.ErrConcurrentModification)
	assert.Equal(t, 3, calls)
}

func TestExecuteDisabledRunsOnce(t *testing.T) {
	cfg := fastConfig()
	cfg.Enabled = false
	calls := 0
	_ = Execute(context.Background(), cfg, func(ctx context.Context) error {
		calls++
		return order.ErrConcurrentModification
	})
	assert.Equal(t, 1, calls)
}

func TestExecuteHonoursContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Execute(ctx, fastConfig(), func(ctx context.Context) error {
		return order.ErrConcurrentModification
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsRetryableError(t *testing.T) {
	cfg := fastConfig()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"concurrent modification", order.ErrConcurrentModification, true},
		{"mysql deadlock", &mysqlDriver.MySQLError{Number: 1213}, true},
		{"mysql lock wait timeout", &mysqlDriver.MySQLError{Number: 1205}, true},
		{"mysql duplicate key", &mysqlDriver.MySQLError{Number: 1062}, false},
		{"plain error", errors.New("nope"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryableError(tt.err, cfg))
		})
	}
}

func TestIsRetryableErrorPredicate(t *testing.T) {
	cfg := fastConfig()
	custom := errors.New("flaky network")
	cfg.RetryPredicate = func(err error) bool { return errors.Is(err, custom) }
	assert.True(t, IsRetryableError(custom, cfg))
}

func TestBackoffCapped(t *testing.T) {
	cfg := fastConfig()
	cfg.JitterEnabled = false
	assert.Equal(t, time.Millisecond, Backoff(1, cfg))
	assert.Equal(t, 2*time.Millisecond, Backoff(2, cfg))
	assert.Equal(t, 4*time.Millisecond, Backoff(3, cfg))
	assert.Equal(t, 5*time.Millisecond, Backoff(4, cfg), "capped at MaxDelay")
	assert.Equal(t, time.Duration(0), Backoff(0, cfg))
}
