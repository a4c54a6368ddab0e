package config

import (
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.ChainID != 8453 {
		t.Errorf("expected chain id 8453, got %d", cfg.ChainID)
	}
	if cfg.RouterAddress != "0x4752ba5DBc23f44D87826276BF6Fd6b1C372aD24" {
		t.Errorf("unexpected router address %s", cfg.RouterAddress)
	}
	if cfg.WrappedNativeAddress != "0x4200000000000000000000000000000000000006" {
		t.Errorf("unexpected wrapped native address %s", cfg.WrappedNativeAddress)
	}
	if cfg.Trading.DefaultAmount != 1 {
		t.Errorf("expected default amount 1, got %f", cfg.Trading.DefaultAmount)
	}
	if cfg.Trading.SlippageTolerance != 0.005 {
		t.Errorf("expected slippage 0.005, got %f", cfg.Trading.SlippageTolerance)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CHAIN_ID", "1")
	t.Setenv("TRADE_DEFAULT_AMOUNT", "2.5")
	t.Setenv("MAX_CONCURRENT_FETCHES", "16")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.ChainID != 1 {
		t.Errorf("expected chain id 1, got %d", cfg.ChainID)
	}
	if cfg.Trading.DefaultAmount != 2.5 {
		t.Errorf("expected default amount 2.5, got %f", cfg.Trading.DefaultAmount)
	}
	if cfg.MaxConcurrentFetches != 16 {
		t.Errorf("expected 16 concurrent fetches, got %d", cfg.MaxConcurrentFetches)
	}
}

func TestLoad_RejectsInvalidSlippage(t *testing.T) {
	t.Setenv("SLIPPAGE_TOLERANCE", "1.5")

	if _, err := Load(); err == nil {
		t.Error("expected error for slippage outside [0,1)")
	}
}

func TestLoad_RejectsNonPositiveConcurrency(t *testing.T) {
	t.Setenv("MAX_CONCURRENT_FETCHES", "0")

	if _, err := Load(); err == nil {
		t.Error("expected error for zero concurrency")
	}
}

func TestDefaultTrading_Policies(t *testing.T) {
	trading := DefaultTrading()

	if trading.VolatilityThreshold != 0.10 {
		t.Errorf("expected volatility threshold 0.10, got %f", trading.VolatilityThreshold)
	}
	if trading.TurnoverThreshold != 0.50 {
		t.Errorf("expected turnover threshold 0.50, got %f", trading.TurnoverThreshold)
	}

	relaxed := trading.Relaxed
	if relaxed.MinLiquidityUSD != 25_000 || relaxed.MinVolume24h != 15_000 || relaxed.MaxPriceChange24h != -3 {
		t.Errorf("unexpected relaxed policy %+v", relaxed)
	}

	standard := trading.Standard
	if standard.MinLiquidityUSD != 100_000 || standard.MinVolume24h != 50_000 || standard.MaxPriceChange24h != 0 {
		t.Errorf("unexpected standard policy %+v", standard)
	}
}

func TestGetEnvAsFloat_IgnoresGarbage(t *testing.T) {
	t.Setenv("SOME_FLOAT", "not-a-number")

	if got := getEnvAsFloat("SOME_FLOAT", 3.5); got != 3.5 {
		t.Errorf("expected default 3.5, got %f", got)
	}
}
