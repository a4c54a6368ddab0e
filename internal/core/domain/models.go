package domain

import (
	"github.com/ethereum/go-ethereum/common"
)

// RiskProfile classifies a token by its observed volatility.
type RiskProfile string

const (
	RiskHigh     RiskProfile = "high"
	RiskStandard RiskProfile = "standard"
)

// Token is one entry of a chain token registry. Immutable once fetched.
type Token struct {
	Symbol   string         `json:"symbol"`
	Address  common.Address `json:"address"`
	Decimals int            `json:"decimals"`
	Name     string         `json:"name"`
}

// TokenMetrics holds the market data fetched for a single token plus the
// values derived from it. Computed fresh on every analysis pass, never cached.
type TokenMetrics struct {
	Price             float64 `json:"price"`
	Volume24h         float64 `json:"volume_24h"`
	PriceChange24h    float64 `json:"price_change_24h"`
	LiquidityUSD      float64 `json:"liquidity_usd"`
	Volatility        float64 `json:"volatility"`
	VolumeToLiquidity float64 `json:"volume_to_liquidity"`
}

// AnalyzedToken is a token that passed its profitability policy, tagged with
// the risk profile the classification assigned.
type AnalyzedToken struct {
	Token
	RiskProfile RiskProfile  `json:"risk_profile"`
	Metrics     TokenMetrics `json:"metrics"`
}

// TradeResult describes one completed swap.
type TradeResult struct {
	Success     bool    `json:"success"`
	TxHash      string  `json:"tx_hash"`
	Amount      float64 `json:"amount"`
	TokenSymbol string  `json:"token_symbol"`
}
