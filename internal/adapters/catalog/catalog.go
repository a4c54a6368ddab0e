package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/kelvinlabs/dyntrade/internal/core/domain"
	"github.com/kelvinlabs/dyntrade/internal/observability"
)

// HTTPTokenSource fetches the token registry for a chain over HTTP. Any
// failure — transport, status, payload shape — degrades to the built-in
// fallback list so callers always get candidates to work with.
type HTTPTokenSource struct {
	baseURL string
	client  *http.Client
	log     *zap.Logger
}

func NewHTTPTokenSource(baseURL string, timeout time.Duration, log *zap.Logger) *HTTPTokenSource {
	return &HTTPTokenSource{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		log:     log,
	}
}

type tokenEntry struct {
	Symbol   string `json:"symbol"`
	Address  string `json:"address"`
	Decimals int    `json:"decimals"`
	Name     string `json:"name"`
}

// ListTokens never returns an error; see HTTPTokenSource.
func (s *HTTPTokenSource) ListTokens(ctx context.Context, chainID int64) []domain.Token {
	tokens, err := s.fetch(ctx, chainID)
	if err != nil {
		observability.IncCatalogFallback()
		s.log.Warn("token list fetch failed, using fallback list",
			zap.Int64("chain_id", chainID),
			zap.Error(err))
		return FallbackTokens()
	}
	return tokens
}

func (s *HTTPTokenSource) fetch(ctx context.Context, chainID int64) ([]domain.Token, error) {
	url := fmt.Sprintf("%s/chains/%d/tokens", s.baseURL, chainID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("token list endpoint returned status %d", resp.StatusCode)
	}

	var entries []tokenEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to parse token list: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("token list endpoint returned no tokens")
	}

	tokens := make([]domain.Token, 0, len(entries))
	for _, e := range entries {
		if !common.IsHexAddress(e.Address) {
			return nil, fmt.Errorf("token list entry %q has invalid address %q", e.Symbol, e.Address)
		}
		tokens = append(tokens, domain.Token{
			Symbol:   e.Symbol,
			Address:  common.HexToAddress(e.Address),
			Decimals: e.Decimals,
			Name:     e.Name,
		})
	}
	return tokens, nil
}

// FallbackTokens is the fixed candidate list served when the registry is
// unreachable or returns garbage.
func FallbackTokens() []domain.Token {
	return []domain.Token{
		{
			Symbol:   "USDC",
			Address:  common.HexToAddress("0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913"),
			Decimals: 6,
			Name:     "USD Coin",
		},
		{
			Symbol:   "WETH",
			Address:  common.HexToAddress("0x4200000000000000000000000000000000000006"),
			Decimals: 18,
			Name:     "Wrapped Ether",
		},
		{
			Symbol:   "BTC",
			Address:  common.HexToAddress("0xcbB7C0000aB88B473b1f5aFd9ef808440eed33Bf"),
			Decimals: 8,
			Name:     "Coinbase Wrapped BTC",
		},
		{
			Symbol:   "SOL",
			Address:  common.HexToAddress("0x1C61629598e4a901136a81BC138E5828dc150d67"),
			Decimals: 9,
			Name:     "Wrapped SOL",
		},
	}
}
