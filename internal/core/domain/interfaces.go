package domain

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
)

// TokenSource lists candidate tokens for a chain. Implementations must absorb
// every failure into a usable fallback list and never return an error.
type TokenSource interface {
	ListTokens(ctx context.Context, chainID int64) []Token
}

// MetricsProvider fetches market metrics for a single token.
type MetricsProvider interface {
	TokenMetrics(ctx context.Context, token common.Address) (*RawMetrics, error)
}

// RawMetrics is the payload of the per-token metrics endpoint. HistoricalPrices
// is optional and may be empty.
type RawMetrics struct {
	Price            float64   `json:"price"`
	Volume24h        float64   `json:"volume24h"`
	PriceChange24h   float64   `json:"priceChange24h"`
	LiquidityUSD     float64   `json:"liquidityUSD"`
	HistoricalPrices []float64 `json:"historicalPrices,omitempty"`
}

// QuoteProvider returns the expected swap output for an amount of the source
// token, in the destination token's native units.
type QuoteProvider interface {
	ExpectedOutput(ctx context.Context, from, to common.Address, amountIn *big.Int) (float64, error)
}

// Analyzer filters candidate tokens down to the profitable ones.
type Analyzer interface {
	Analyze(ctx context.Context, tokens []Token) []AnalyzedToken
}

// Executor submits one swap for a profitable token.
type Executor interface {
	Execute(ctx context.Context, wallet WalletClient, token Token, amountNative float64) (*TradeResult, error)
}

// Transaction is a submitted on-chain transaction whose confirmation can be
// awaited.
type Transaction interface {
	Hash() common.Hash
	Wait(ctx context.Context) (*ethtypes.Receipt, error)
}

// Contract is a handle to a deployed contract obtained from a WalletClient.
type Contract interface {
	// Transact submits a state-changing method call carrying value in native
	// currency and returns the pending transaction.
	Transact(ctx context.Context, method string, value *big.Int, args ...interface{}) (Transaction, error)
}

// WalletClient is the minimal signing capability the trade path depends on.
// Concrete implementations live in internal/adapters/wallet.
type WalletClient interface {
	Address() common.Address
	Contract(address common.Address, abiJSON string) (Contract, error)
}
