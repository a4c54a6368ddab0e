package plugin

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kelvinlabs/dyntrade/internal/core/domain"
	"github.com/kelvinlabs/dyntrade/pkg/types"
)

// ToolName is the tool the plugin contributes to the host runtime.
const ToolName = "execute_dynamic_trading"

// TradingPlugin chains the token catalog, the analyzer and the trade executor
// into one invocable tool: list candidates, keep the profitable ones, buy each
// sequentially and report every outcome.
type TradingPlugin struct {
	catalog       domain.TokenSource
	analyzer      domain.Analyzer
	executor      domain.Executor
	wallet        domain.WalletClient
	chainID       int64
	defaultAmount float64
	log           *zap.Logger
}

func New(
	catalog domain.TokenSource,
	analyzer domain.Analyzer,
	executor domain.Executor,
	wallet domain.WalletClient,
	chainID int64,
	defaultAmount float64,
	log *zap.Logger,
) *TradingPlugin {
	return &TradingPlugin{
		catalog:       catalog,
		analyzer:      analyzer,
		executor:      executor,
		wallet:        wallet,
		chainID:       chainID,
		defaultAmount: defaultAmount,
		log:           log,
	}
}

func (p *TradingPlugin) Name() string {
	return "dynamic-trading"
}

func (p *TradingPlugin) Description() string {
	return "Scores chain tokens against profitability thresholds and swaps native currency into the ones that pass"
}

func (p *TradingPlugin) Tools() []types.Tool {
	return []types.Tool{
		{
			Name:        ToolName,
			Description: "Analyze the chain's token list and execute a swap for every token that passes the profitability policy",
			Parameters: []types.Parameter{
				{
					Name:        "amount",
					Type:        "number",
					Description: "Notional per trade in native currency units (default 1)",
					Required:    false,
				},
			},
			Handler: p.run,
		},
	}
}

func (p *TradingPlugin) run(ctx context.Context, args map[string]interface{}) (string, error) {
	amount := p.defaultAmount
	if raw, ok := args["amount"]; ok {
		parsed, err := parseAmount(raw)
		if err != nil {
			return "", fmt.Errorf("invalid amount argument: %w", err)
		}
		amount = parsed
	}

	log := p.log.With(zap.String("run_id", uuid.NewString()))
	log.Info("trading run started", zap.Float64("amount", amount))

	tokens := p.catalog.ListTokens(ctx, p.chainID)
	candidates := p.analyzer.Analyze(ctx, tokens)

	log.Info("analysis complete",
		zap.Int("tokens", len(tokens)),
		zap.Int("candidates", len(candidates)))

	if len(candidates) == 0 {
		return "No tokens passed the profitability policy; no trades executed.", nil
	}

	// Trades run sequentially so each waits for the prior receipt, which keeps
	// nonce usage naturally ordered. One failed trade never aborts the batch;
	// it becomes a line in the summary.
	lines := make([]string, 0, len(candidates))
	for _, c := range candidates {
		result, err := p.executor.Execute(ctx, p.wallet, c.Token, amount)
		if err != nil {
			log.Error("trade failed", zap.String("symbol", c.Symbol), zap.Error(err))
			lines = append(lines, fmt.Sprintf("%s: trade failed: %v", c.Symbol, err))
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: swapped %.4f native for %s risk-profile token, tx %s",
			result.TokenSymbol, result.Amount, c.RiskProfile, result.TxHash))
	}

	return strings.Join(lines, "\n"), nil
}

// parseAmount accepts the numeric shapes a tool-invocation layer may hand us.
func parseAmount(raw interface{}) (float64, error) {
	var amount float64
	switch v := raw.(type) {
	case float64:
		amount = v
	case int:
		amount = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("not a number: %q", v)
		}
		amount = parsed
	default:
		return 0, fmt.Errorf("unsupported type %T", raw)
	}
	if amount <= 0 {
		return 0, fmt.Errorf("must be positive, got %f", amount)
	}
	return amount, nil
}
