package plugin

import (
	"context"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/kelvinlabs/dyntrade/internal/core/domain"
)

type stubCatalog struct {
	tokens []domain.Token
}

func (s *stubCatalog) ListTokens(ctx context.Context, chainID int64) []domain.Token {
	return s.tokens
}

type stubAnalyzer struct {
	candidates []domain.AnalyzedToken
}

func (s *stubAnalyzer) Analyze(ctx context.Context, tokens []domain.Token) []domain.AnalyzedToken {
	return s.candidates
}

type recordingExecutor struct {
	failFor map[string]error

	amounts []float64
	symbols []string
}

func (e *recordingExecutor) Execute(ctx context.Context, wallet domain.WalletClient, token domain.Token, amountNative float64) (*domain.TradeResult, error) {
	e.amounts = append(e.amounts, amountNative)
	e.symbols = append(e.symbols, token.Symbol)
	if err, ok := e.failFor[token.Symbol]; ok {
		return nil, &domain.TradeExecutionError{TokenSymbol: token.Symbol, Err: err}
	}
	return &domain.TradeResult{
		Success:     true,
		TxHash:      "0xdeadbeef",
		Amount:      amountNative,
		TokenSymbol: token.Symbol,
	}, nil
}

type nopWallet struct{}

func (nopWallet) Address() common.Address { return common.Address{} }

func (nopWallet) Contract(address common.Address, abiJSON string) (domain.Contract, error) {
	return nil, nil
}

func candidate(symbol string, addr byte, profile domain.RiskProfile) domain.AnalyzedToken {
	return domain.AnalyzedToken{
		Token: domain.Token{
			Symbol:  symbol,
			Address: common.BytesToAddress([]byte{addr}),
		},
		RiskProfile: profile,
	}
}

func newTestPlugin(analyzer domain.Analyzer, executor domain.Executor) *TradingPlugin {
	return New(&stubCatalog{}, analyzer, executor, nopWallet{}, 8453, 1, zap.NewNop())
}

func runTool(t *testing.T, p *TradingPlugin, args map[string]interface{}) (string, error) {
	t.Helper()
	tools := p.Tools()
	if len(tools) != 1 {
		t.Fatalf("expected 1 tool, got %d", len(tools))
	}
	if tools[0].Name != ToolName {
		t.Fatalf("unexpected tool name %s", tools[0].Name)
	}
	return tools[0].Handler(context.Background(), args)
}

func TestTool_NoCandidates(t *testing.T) {
	p := newTestPlugin(&stubAnalyzer{}, &recordingExecutor{})

	out, err := runTool(t, p, map[string]interface{}{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "no trades executed") {
		t.Errorf("expected no-trades message, got %q", out)
	}
}

func TestTool_DefaultAmount(t *testing.T) {
	executor := &recordingExecutor{}
	p := newTestPlugin(&stubAnalyzer{candidates: []domain.AnalyzedToken{
		candidate("AAA", 1, domain.RiskStandard),
	}}, executor)

	if _, err := runTool(t, p, map[string]interface{}{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(executor.amounts) != 1 || executor.amounts[0] != 1 {
		t.Errorf("expected one trade at default amount 1, got %v", executor.amounts)
	}
}

func TestTool_ExplicitAmount(t *testing.T) {
	executor := &recordingExecutor{}
	p := newTestPlugin(&stubAnalyzer{candidates: []domain.AnalyzedToken{
		candidate("AAA", 1, domain.RiskStandard),
	}}, executor)

	if _, err := runTool(t, p, map[string]interface{}{"amount": 2.5}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(executor.amounts) != 1 || executor.amounts[0] != 2.5 {
		t.Errorf("expected one trade at amount 2.5, got %v", executor.amounts)
	}
}

func TestTool_InvalidAmount(t *testing.T) {
	p := newTestPlugin(&stubAnalyzer{}, &recordingExecutor{})

	if _, err := runTool(t, p, map[string]interface{}{"amount": -1.0}); err == nil {
		t.Error("expected error for negative amount")
	}
	if _, err := runTool(t, p, map[string]interface{}{"amount": "lots"}); err == nil {
		t.Error("expected error for non-numeric amount")
	}
}

func TestTool_FailedTradeDoesNotAbortBatch(t *testing.T) {
	executor := &recordingExecutor{failFor: map[string]error{
		"BBB": context.DeadlineExceeded,
	}}
	p := newTestPlugin(&stubAnalyzer{candidates: []domain.AnalyzedToken{
		candidate("AAA", 1, domain.RiskStandard),
		candidate("BBB", 2, domain.RiskHigh),
		candidate("CCC", 3, domain.RiskStandard),
	}}, executor)

	out, err := runTool(t, p, map[string]interface{}{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(executor.symbols) != 3 {
		t.Fatalf("expected all 3 trades attempted, got %v", executor.symbols)
	}

	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 summary lines, got %d: %q", len(lines), out)
	}
	if !strings.Contains(lines[1], "BBB") || !strings.Contains(lines[1], "trade failed") {
		t.Errorf("expected failure line for BBB, got %q", lines[1])
	}
	if !strings.Contains(lines[0], "AAA") || !strings.Contains(lines[0], "tx 0xdeadbeef") {
		t.Errorf("expected success line for AAA, got %q", lines[0])
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		raw     interface{}
		want    float64
		wantErr bool
	}{
		{"float", 2.5, 2.5, false},
		{"int", 3, 3, false},
		{"numeric string", " 1.5 ", 1.5, false},
		{"zero", 0.0, 0, true},
		{"negative", -1.0, 0, true},
		{"garbage string", "abc", 0, true},
		{"unsupported type", []int{1}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAmount(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %f, got %f", tt.want, got)
			}
		})
	}
}

func TestService_Lifecycle(t *testing.T) {
	p := newTestPlugin(&stubAnalyzer{}, &recordingExecutor{})
	svc := NewService(p, zap.NewNop())

	ctx := context.Background()
	if err := svc.Start(ctx); err == nil {
		t.Error("expected start before initialize to fail")
	}
	if err := svc.Initialize(ctx); err != nil {
		t.Fatalf("initialize failed: %v", err)
	}
	if err := svc.Start(ctx); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if err := svc.Stop(ctx); err != nil {
		t.Fatalf("stop failed: %v", err)
	}
}

func TestService_InitializeRequiresWallet(t *testing.T) {
	p := New(&stubCatalog{}, &stubAnalyzer{}, &recordingExecutor{}, nil, 8453, 1, zap.NewNop())
	svc := NewService(p, zap.NewNop())

	if err := svc.Initialize(context.Background()); err == nil {
		t.Error("expected initialize to fail without a wallet")
	}
}
