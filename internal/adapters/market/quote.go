package market

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// QuoteClient fetches off-chain swap quotes. Unlike the catalog and metrics
// clients its failures propagate: a trade must never proceed without a quote.
type QuoteClient struct {
	baseURL string
	client  *http.Client
}

func NewQuoteClient(baseURL string, timeout time.Duration) *QuoteClient {
	return &QuoteClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// ExpectedOutput returns the quoted output amount, in the destination token's
// base units, for swapping amountIn of the source token.
func (c *QuoteClient) ExpectedOutput(ctx context.Context, from, to common.Address, amountIn *big.Int) (float64, error) {
	url := fmt.Sprintf("%s/quote?from=%s&to=%s&amount=%s", c.baseURL, from.Hex(), to.Hex(), amountIn.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("quote request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("quote endpoint returned status %d", resp.StatusCode)
	}

	var quote struct {
		ExpectedOutput float64 `json:"expectedOutput"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&quote); err != nil {
		return 0, fmt.Errorf("failed to parse quote: %w", err)
	}
	if quote.ExpectedOutput <= 0 {
		return 0, fmt.Errorf("quote endpoint returned non-positive expected output %f", quote.ExpectedOutput)
	}
	return quote.ExpectedOutput, nil
}
