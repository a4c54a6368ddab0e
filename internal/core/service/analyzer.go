package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kelvinlabs/dyntrade/internal/config"
	"github.com/kelvinlabs/dyntrade/internal/core/domain"
	"github.com/kelvinlabs/dyntrade/internal/observability"
)

// TokenAnalyzer fetches metrics for candidate tokens and keeps the ones that
// pass a profitability policy. A token whose metrics fetch fails is logged and
// excluded; Analyze itself never fails.
type TokenAnalyzer struct {
	metrics      domain.MetricsProvider
	trading      config.Trading
	maxInFlight  int
	fetchTimeout time.Duration
	log          *zap.Logger
}

func NewTokenAnalyzer(metrics domain.MetricsProvider, trading config.Trading, maxInFlight int, fetchTimeout time.Duration, log *zap.Logger) *TokenAnalyzer {
	if maxInFlight < 1 {
		maxInFlight = 1
	}
	return &TokenAnalyzer{
		metrics:      metrics,
		trading:      trading,
		maxInFlight:  maxInFlight,
		fetchTimeout: fetchTimeout,
		log:          log,
	}
}

// Analyze classifies tokens concurrently, at most maxInFlight metrics fetches
// at a time. The result preserves input order; each token's outcome depends
// only on its own metrics, so completion order cannot change it.
func (a *TokenAnalyzer) Analyze(ctx context.Context, tokens []domain.Token) []domain.AnalyzedToken {
	slots := make([]*domain.AnalyzedToken, len(tokens))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.maxInFlight)

	for i, token := range tokens {
		i, token := i, token
		g.Go(func() error {
			fetchCtx, cancel := context.WithTimeout(gctx, a.fetchTimeout)
			defer cancel()

			raw, err := a.metrics.TokenMetrics(fetchCtx, token.Address)
			if err != nil {
				observability.IncMetricsFetchFailure()
				a.log.Warn("metrics fetch failed, excluding token",
					zap.String("symbol", token.Symbol),
					zap.Stringer("address", token.Address),
					zap.Error(err))
				return nil
			}

			slots[i] = a.classify(token, raw)
			return nil
		})
	}
	// Workers only ever return nil; the group is used for its limiter and join.
	_ = g.Wait()

	analyzed := make([]domain.AnalyzedToken, 0, len(tokens))
	for _, s := range slots {
		if s != nil {
			analyzed = append(analyzed, *s)
		}
	}
	return analyzed
}

// classify applies the relaxed policy when a token is both high-volatility and
// high-turnover, the standard policy otherwise. Returns nil when the token
// fails its applicable policy.
func (a *TokenAnalyzer) classify(token domain.Token, raw *domain.RawMetrics) *domain.AnalyzedToken {
	observability.IncTokenAnalyzed()

	volatility := Volatility(raw.HistoricalPrices)

	// Zero liquidity makes turnover meaningless; pin it to 0 rather than
	// letting the division produce Inf/NaN.
	turnover := 0.0
	if raw.LiquidityUSD > 0 {
		turnover = raw.Volume24h / raw.LiquidityUSD
	}

	highVolatility := volatility > a.trading.VolatilityThreshold
	highTurnover := turnover > a.trading.TurnoverThreshold

	policy := a.trading.Standard
	if highVolatility && highTurnover {
		policy = a.trading.Relaxed
	}

	passes := raw.LiquidityUSD >= policy.MinLiquidityUSD &&
		raw.Volume24h >= policy.MinVolume24h &&
		raw.PriceChange24h < policy.MaxPriceChange24h
	if !passes {
		a.log.Debug("token failed profitability policy",
			zap.String("symbol", token.Symbol),
			zap.Float64("liquidity_usd", raw.LiquidityUSD),
			zap.Float64("volume_24h", raw.Volume24h),
			zap.Float64("price_change_24h", raw.PriceChange24h))
		return nil
	}

	profile := domain.RiskStandard
	if highVolatility {
		profile = domain.RiskHigh
	}

	observability.IncTokenPassed()
	return &domain.AnalyzedToken{
		Token:       token,
		RiskProfile: profile,
		Metrics: domain.TokenMetrics{
			Price:             raw.Price,
			Volume24h:         raw.Volume24h,
			PriceChange24h:    raw.PriceChange24h,
			LiquidityUSD:      raw.LiquidityUSD,
			Volatility:        volatility,
			VolumeToLiquidity: turnover,
		},
	}
}
