package market

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/kelvinlabs/dyntrade/internal/core/domain"
)

// MetricsClient fetches per-token market metrics. A circuit breaker shields
// the endpoint: once it trips, calls fail fast and the analyzer excludes the
// affected tokens, which is the same observable outcome as a slow failure.
type MetricsClient struct {
	baseURL string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
	log     *zap.Logger
}

func NewMetricsClient(baseURL string, timeout time.Duration, log *zap.Logger) *MetricsClient {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "token-metrics",
		MaxRequests: 3,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("metrics endpoint breaker state change",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})

	return &MetricsClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		breaker: breaker,
		log:     log,
	}
}

// TokenMetrics returns the metrics payload for one token address.
func (c *MetricsClient) TokenMetrics(ctx context.Context, token common.Address) (*domain.RawMetrics, error) {
	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.fetch(ctx, token)
	})
	if err != nil {
		return nil, err
	}
	return result.(*domain.RawMetrics), nil
}

func (c *MetricsClient) fetch(ctx context.Context, token common.Address) (*domain.RawMetrics, error) {
	url := fmt.Sprintf("%s/tokens/%s/metrics", c.baseURL, token.Hex())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("metrics endpoint returned status %d", resp.StatusCode)
	}

	var metrics domain.RawMetrics
	if err := json.NewDecoder(resp.Body).Decode(&metrics); err != nil {
		return nil, fmt.Errorf("failed to parse metrics: %w", err)
	}
	return &metrics, nil
}
