package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Policy is one profitability threshold set applied by the analyzer.
type Policy struct {
	MinLiquidityUSD   float64
	MinVolume24h      float64
	MaxPriceChange24h float64
}

// Trading holds the tunables of the analysis and execution pipeline. The
// defaults reproduce the plugin's historical behavior; override via env only
// when you know what you are doing.
type Trading struct {
	// DefaultAmount is the notional per trade in native currency units.
	DefaultAmount float64

	// SlippageTolerance is the accepted fraction between quoted and executed
	// output before a swap reverts.
	SlippageTolerance float64

	VolatilityThreshold float64
	TurnoverThreshold   float64

	// Relaxed applies when a token is both high-volatility and high-turnover.
	Relaxed Policy
	// Standard applies to everything else.
	Standard Policy
}

// Config is the application configuration, loaded from the environment.
type Config struct {
	ChainID        int64
	TokenListURL   string
	MetricsBaseURL string
	QuoteBaseURL   string

	RPCEndpoint          string
	PrivateKey           string
	RouterAddress        string
	WrappedNativeAddress string

	// MaxConcurrentFetches caps the analyzer's metrics fan-out.
	MaxConcurrentFetches int
	HTTPTimeout          time.Duration
	ReceiptTimeout       time.Duration
	SwapDeadline         time.Duration

	LogLevel string

	Trading Trading
}

// Load reads configuration from the environment, filling defaults for
// everything except the private key, which the trade path requires.
func Load() (*Config, error) {
	cfg := &Config{
		ChainID:        getEnvAsInt64("CHAIN_ID", 8453),
		TokenListURL:   getEnvOrDefault("TOKEN_LIST_URL", "https://tokens.basewatch.io"),
		MetricsBaseURL: getEnvOrDefault("METRICS_BASE_URL", "https://api.basewatch.io"),
		QuoteBaseURL:   getEnvOrDefault("QUOTE_BASE_URL", "https://api.basewatch.io"),

		RPCEndpoint:          getEnvOrDefault("RPC_ENDPOINT", "https://mainnet.base.org"),
		PrivateKey:           os.Getenv("PRIVATE_KEY"),
		RouterAddress:        getEnvOrDefault("ROUTER_ADDRESS", "0x4752ba5DBc23f44D87826276BF6Fd6b1C372aD24"),
		WrappedNativeAddress: getEnvOrDefault("WRAPPED_NATIVE_ADDRESS", "0x4200000000000000000000000000000000000006"),

		MaxConcurrentFetches: getEnvAsInt("MAX_CONCURRENT_FETCHES", 8),
		HTTPTimeout:          time.Duration(getEnvAsInt("HTTP_TIMEOUT_SECS", 10)) * time.Second,
		ReceiptTimeout:       time.Duration(getEnvAsInt("RECEIPT_TIMEOUT_SECS", 180)) * time.Second,
		SwapDeadline:         time.Duration(getEnvAsInt("SWAP_DEADLINE_SECS", 1800)) * time.Second,

		LogLevel: getEnvOrDefault("LOG_LEVEL", "info"),

		Trading: DefaultTrading(),
	}

	cfg.Trading.DefaultAmount = getEnvAsFloat("TRADE_DEFAULT_AMOUNT", cfg.Trading.DefaultAmount)
	cfg.Trading.SlippageTolerance = getEnvAsFloat("SLIPPAGE_TOLERANCE", cfg.Trading.SlippageTolerance)

	if cfg.Trading.SlippageTolerance < 0 || cfg.Trading.SlippageTolerance >= 1 {
		return nil, fmt.Errorf("SLIPPAGE_TOLERANCE must be in [0,1), got %f", cfg.Trading.SlippageTolerance)
	}
	if cfg.MaxConcurrentFetches < 1 {
		return nil, fmt.Errorf("MAX_CONCURRENT_FETCHES must be positive, got %d", cfg.MaxConcurrentFetches)
	}

	return cfg, nil
}

// DefaultTrading returns the built-in thresholds of the trading pipeline.
func DefaultTrading() Trading {
	return Trading{
		DefaultAmount:       1,
		SlippageTolerance:   0.005,
		VolatilityThreshold: 0.10,
		TurnoverThreshold:   0.50,
		Relaxed: Policy{
			MinLiquidityUSD:   25_000,
			MinVolume24h:      15_000,
			MaxPriceChange24h: -3,
		},
		Standard: Policy{
			MinLiquidityUSD:   100_000,
			MinVolume24h:      50_000,
			MaxPriceChange24h: 0,
		},
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}
