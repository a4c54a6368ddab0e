package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kelvinlabs/dyntrade/internal/adapters/catalog"
	"github.com/kelvinlabs/dyntrade/internal/adapters/market"
	"github.com/kelvinlabs/dyntrade/internal/adapters/wallet"
	"github.com/kelvinlabs/dyntrade/internal/config"
	"github.com/kelvinlabs/dyntrade/internal/core/service"
	"github.com/kelvinlabs/dyntrade/internal/logging"
	"github.com/kelvinlabs/dyntrade/pkg/client"
	"github.com/kelvinlabs/dyntrade/pkg/plugin"
	"github.com/kelvinlabs/dyntrade/pkg/types"
)

// envRuntime is the standalone-binary stand-in for a host agent runtime:
// settings come straight from the environment.
type envRuntime struct {
	name string
}

func (r envRuntime) AgentName() string         { return r.name }
func (r envRuntime) Setting(key string) string { return os.Getenv(key) }

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logging.New(cfg.LogLevel)
	defer log.Sync()

	factory := func(ctx context.Context, rt types.Runtime) (types.TradingService, error) {
		w, err := wallet.NewClient(ctx, cfg.RPCEndpoint, cfg.PrivateKey, cfg.ChainID, log)
		if err != nil {
			return nil, err
		}

		tokens := catalog.NewHTTPTokenSource(cfg.TokenListURL, cfg.HTTPTimeout, log)
		metrics := market.NewMetricsClient(cfg.MetricsBaseURL, cfg.HTTPTimeout, log)
		quotes := market.NewQuoteClient(cfg.QuoteBaseURL, cfg.HTTPTimeout)

		analyzer := service.NewTokenAnalyzer(metrics, cfg.Trading, cfg.MaxConcurrentFetches, cfg.HTTPTimeout, log)
		executor := service.NewTradeExecutor(
			quotes,
			common.HexToAddress(cfg.RouterAddress),
			common.HexToAddress(cfg.WrappedNativeAddress),
			cfg.Trading.SlippageTolerance,
			cfg.SwapDeadline,
			cfg.ReceiptTimeout,
			log,
		)

		p := plugin.New(tokens, analyzer, executor, w, cfg.ChainID, cfg.Trading.DefaultAmount, log)
		return plugin.NewService(p, log), nil
	}

	autoClient := client.NewAutoClient(factory, log)
	rt := envRuntime{name: getAgentName()}

	ctx := context.Background()
	if err := autoClient.Start(ctx, rt); err != nil {
		log.Fatal("client start failed", zap.Error(err))
	}

	go serveMetrics(log)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Info("shutdown signal received")
	if err := autoClient.Stop(ctx, rt); err != nil {
		log.Error("client stop failed", zap.Error(err))
	}
}

func serveMetrics(log *zap.Logger) {
	addr := os.Getenv("METRICS_LISTEN_ADDR")
	if addr == "" {
		addr = ":9180"
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	log.Info("metrics endpoint listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Error("metrics endpoint failed", zap.Error(err))
	}
}

func getAgentName() string {
	if name := os.Getenv("AGENT_NAME"); name != "" {
		return name
	}
	return "dyntrade"
}
