package market

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

var testAddr = common.HexToAddress("0x940181a94A35A4569E4529A3CDfB74e38FD98631")

func TestTokenMetrics_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/tokens/") || !strings.HasSuffix(r.URL.Path, "/metrics") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		fmt.Fprint(w, `{
			"price": 1.25,
			"volume24h": 60000,
			"priceChange24h": -2.5,
			"liquidityUSD": 150000,
			"historicalPrices": [1.2, 1.3, 1.25]
		}`)
	}))
	defer server.Close()

	client := NewMetricsClient(server.URL, time.Second, zap.NewNop())
	metrics, err := client.TokenMetrics(context.Background(), testAddr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if metrics.Price != 1.25 {
		t.Errorf("expected price 1.25, got %f", metrics.Price)
	}
	if metrics.Volume24h != 60000 {
		t.Errorf("expected volume 60000, got %f", metrics.Volume24h)
	}
	if metrics.PriceChange24h != -2.5 {
		t.Errorf("expected change -2.5, got %f", metrics.PriceChange24h)
	}
	if len(metrics.HistoricalPrices) != 3 {
		t.Errorf("expected 3 historical prices, got %d", len(metrics.HistoricalPrices))
	}
}

func TestTokenMetrics_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewMetricsClient(server.URL, time.Second, zap.NewNop())
	if _, err := client.TokenMetrics(context.Background(), testAddr); err == nil {
		t.Error("expected error for 502 response")
	}
}

func TestTokenMetrics_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewMetricsClient(server.URL, time.Second, zap.NewNop())
	for i := 0; i < 5; i++ {
		if _, err := client.TokenMetrics(context.Background(), testAddr); err == nil {
			t.Fatalf("request %d: expected error", i)
		}
	}

	// Breaker is open now; the next call must fail without reaching the server.
	server.Close()
	if _, err := client.TokenMetrics(context.Background(), testAddr); err == nil {
		t.Error("expected fast failure from open breaker")
	}
}
