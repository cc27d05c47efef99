// Package payment talks to the external bank-transfer verification
// provider.
package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"shopcore/config"
	"shopcore/pkg/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ErrTransactionNotFound means polling finished without a matching
// transaction. Transport and decoding failures are returned as distinct
// errors.
var ErrTransactionNotFound = errors.New("matching bank transaction not found")

// Transaction is a posted bank transfer reported by the provider.
type Transaction struct {
	ID       string          `json:"id"`
	Amount   decimal.Decimal `json:"amount"`
	Memo     string          `json:"memo"`
	PostedAt time.Time       `json:"posted_at"`
}

// Gateway looks up a bank transfer matching an order.
type Gateway interface {
	// FindTransaction polls the provider for a transaction whose memo
	// contains the order number and whose amount equals the expected
	// total. It blocks between attempts and respects ctx cancellation.
	FindTransaction(ctx context.Context, orderNumber string, amount decimal.Decimal) (*Transaction, error)
}

// HTTPGateway polls the provider a fixed number of times with a fixed
// delay. Bank transfers take a while to post, so a few spaced attempts
// beat one immediate lookup.
type HTTPGateway struct {
	baseURL  string
	apiKey   string
	client   *http.Client
	attempts int
	delay    time.Duration
}

func NewHTTPGateway(cfg *config.PaymentConfig) *HTTPGateway {
	attempts := cfg.PollAttempts
	if attempts < 1 {
		attempts = 1
	}
	return &HTTPGateway{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:   cfg.APIKey,
		client:   &http.Client{Timeout: cfg.ClientTimeout},
		attempts: attempts,
		delay:    cfg.PollDelay,
	}
}

func (g *HTTPGateway) FindTransaction(ctx context.Context, orderNumber string, amount decimal.Decimal) (*Transaction, error) {
	var lastErr error

	for attempt := 1; attempt <= g.attempts; attempt++ {
		tx, err := g.queryOnce(ctx, orderNumber, amount)
		if err == nil && tx != nil {
			return tx, nil
		}
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			logger.Warn("Payment lookup attempt failed",
				zap.String("order_number", orderNumber),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
		}

		if attempt < g.attempts {
			timer := time.NewTimer(g.delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			case <-timer.C:
			}
		}
	}

	if lastErr != nil {
		return nil, fmt.Errorf("payment lookup failed after %d attempts: %w", g.attempts, lastErr)
	}
	return nil, ErrTransactionNotFound
}

// queryOnce returns (nil, nil) when the provider answered but no
// transaction matched.
func (g *HTTPGateway) queryOnce(ctx context.Context, orderNumber string, amount decimal.Decimal) (*Transaction, error) {
	endpoint := fmt.Sprintf("%s/transactions?reference=%s", g.baseURL, url.QueryEscape(orderNumber))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build payment request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("payment provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("payment provider returned status %d", resp.StatusCode)
	}

	var body struct {
		Transactions []Transaction `json:"transactions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode payment response: %w", err)
	}

	for i := range body.Transactions {
		tx := &body.Transactions[i]
		if strings.Contains(tx.Memo, orderNumber) && tx.Amount.Equal(amount) {
			return tx, nil
		}
	}
	return nil, nil
}

var _ Gateway = (*HTTPGateway)(nil)
