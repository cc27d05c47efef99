package payment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"shopcore/config"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGateway(baseURL string, attempts int, delay time.Duration) *HTTPGateway {
	return NewHTTPGateway(&config.PaymentConfig{
		BaseURL:       baseURL,
		APIKey:        "test-key",
		PollAttempts:  attempts,
		PollDelay:     delay,
		ClientTimeout: 2 * time.Second,
	})
}

func TestFindTransaction_Match(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "12345678", r.URL.Query().Get("reference"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"transactions":[
			{"id":"tx-1","amount":"99.99","memo":"other payment"},
			{"id":"tx-2","amount":"245.00","memo":"order 12345678 payment"}
		]}`))
	}))
	defer server.Close()

	gateway := newTestGateway(server.URL, 3, 10*time.Millisecond)

	tx, err := gateway.FindTransaction(context.Background(), "12345678", decimal.RequireFromString("245.00"))
	require.NoError(t, err)
	assert.Equal(t, "tx-2", tx.ID)
}

func TestFindTransaction_AmountMismatchIsNotAMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"transactions":[{"id":"tx-1","amount":"244.99","memo":"order 12345678"}]}`))
	}))
	defer server.Close()

	gateway := newTestGateway(server.URL, 2, time.Millisecond)

	_, err := gateway.FindTransaction(context.Background(), "12345678", decimal.RequireFromString("245.00"))
	assert.ErrorIs(t, err, ErrTransactionNotFound)
}

func TestFindTransaction_MemoWithoutNumberIsNotAMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"transactions":[{"id":"tx-1","amount":"245.00","memo":"no reference here"}]}`))
	}))
	defer server.Close()

	gateway := newTestGateway(server.URL, 2, time.Millisecond)

	_, err := gateway.FindTransaction(context.Background(), "12345678", decimal.RequireFromString("245.00"))
	assert.ErrorIs(t, err, ErrTransactionNotFound)
}

func TestFindTransaction_PollsUntilFound(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.Write([]byte(`{"transactions":[]}`))
			return
		}
		w.Write([]byte(`{"transactions":[{"id":"tx-1","amount":"50.00","memo":"order 00000042"}]}`))
	}))
	defer server.Close()

	gateway := newTestGateway(server.URL, 5, time.Millisecond)

	tx, err := gateway.FindTransaction(context.Background(), "00000042", decimal.RequireFromString("50.00"))
	require.NoError(t, err)
	assert.Equal(t, "tx-1", tx.ID)
	assert.Equal(t, int32(3), calls.Load())
}

func TestFindTransaction_MalformedResponseIsAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"transactions": not json`))
	}))
	defer server.Close()

	gateway := newTestGateway(server.URL, 2, time.Millisecond)

	_, err := gateway.FindTransaction(context.Background(), "12345678", decimal.RequireFromString("10.00"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrTransactionNotFound)
}

func TestFindTransaction_ProviderErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	gateway := newTestGateway(server.URL, 2, time.Millisecond)

	_, err := gateway.FindTransaction(context.Background(), "12345678", decimal.RequireFromString("10.00"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrTransactionNotFound)
}

func TestFindTransaction_ContextCancelledDuringWait(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"transactions":[]}`))
	}))
	defer server.Close()

	gateway := newTestGateway(server.URL, 5, time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := gateway.FindTransaction(ctx, "12345678", decimal.RequireFromString("10.00"))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 2*time.Second)
}
