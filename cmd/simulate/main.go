package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/kelvinlabs/dyntrade/internal/adapters/catalog"
	"github.com/kelvinlabs/dyntrade/internal/adapters/market"
	"github.com/kelvinlabs/dyntrade/internal/config"
	"github.com/kelvinlabs/dyntrade/internal/core/service"
)

// Runs the analysis half of the pipeline against live endpoints and prints
// the candidates, without touching a wallet or submitting transactions.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	tokens := catalog.NewHTTPTokenSource(cfg.TokenListURL, cfg.HTTPTimeout, logger)
	metrics := market.NewMetricsClient(cfg.MetricsBaseURL, cfg.HTTPTimeout, logger)
	analyzer := service.NewTokenAnalyzer(metrics, cfg.Trading, cfg.MaxConcurrentFetches, cfg.HTTPTimeout, logger)

	ctx := context.Background()
	list := tokens.ListTokens(ctx, cfg.ChainID)
	log.Printf("Simulating analysis for %d tokens on chain %d...", len(list), cfg.ChainID)

	candidates := analyzer.Analyze(ctx, list)
	if len(candidates) == 0 {
		fmt.Println("No tokens passed the profitability policy.")
		return
	}

	output, _ := json.MarshalIndent(candidates, "", "  ")
	fmt.Println(string(output))
}
