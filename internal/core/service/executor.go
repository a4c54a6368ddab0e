package service

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/kelvinlabs/dyntrade/internal/core/domain"
	"github.com/kelvinlabs/dyntrade/internal/observability"
)

// routerABI covers the single router method the executor submits.
const routerABI = `[
	{
		"name": "swapExactETHForTokens",
		"type": "function",
		"inputs": [
			{"name": "amountOutMin", "type": "uint256"},
			{"name": "path", "type": "address[]"},
			{"name": "to", "type": "address"},
			{"name": "deadline", "type": "uint256"}
		],
		"outputs": [{"name": "amounts", "type": "uint256[]"}],
		"stateMutability": "payable"
	}
]`

var weiPerEther = new(big.Float).SetFloat64(1e18)

// TradeExecutor swaps native currency into a token through a V2-style router.
type TradeExecutor struct {
	quotes         domain.QuoteProvider
	router         common.Address
	wrappedNative  common.Address
	slippage       float64
	swapDeadline   time.Duration
	receiptTimeout time.Duration
	log            *zap.Logger
}

func NewTradeExecutor(
	quotes domain.QuoteProvider,
	router, wrappedNative common.Address,
	slippage float64,
	swapDeadline, receiptTimeout time.Duration,
	log *zap.Logger,
) *TradeExecutor {
	return &TradeExecutor{
		quotes:         quotes,
		router:         router,
		wrappedNative:  wrappedNative,
		slippage:       slippage,
		swapDeadline:   swapDeadline,
		receiptTimeout: receiptTimeout,
		log:            log,
	}
}

// Execute buys amountNative worth of token through the router and waits for
// the confirmation receipt. Any failure along the way is wrapped into a single
// TradeExecutionError naming the token.
func (e *TradeExecutor) Execute(ctx context.Context, wallet domain.WalletClient, token domain.Token, amountNative float64) (*domain.TradeResult, error) {
	deadline := big.NewInt(time.Now().Add(e.swapDeadline).Unix())
	path := []common.Address{e.wrappedNative, token.Address}
	value := NativeToWei(amountNative)

	expected, err := e.quotes.ExpectedOutput(ctx, e.wrappedNative, token.Address, value)
	if err != nil {
		return nil, e.fail(token, err)
	}

	minOut := MinimumAmountOut(expected, e.slippage)

	contract, err := wallet.Contract(e.router, routerABI)
	if err != nil {
		return nil, e.fail(token, err)
	}

	tx, err := contract.Transact(ctx, "swapExactETHForTokens", value, minOut, path, wallet.Address(), deadline)
	if err != nil {
		return nil, e.fail(token, err)
	}

	e.log.Info("swap submitted",
		zap.String("symbol", token.Symbol),
		zap.Stringer("tx", tx.Hash()),
		zap.Float64("amount", amountNative),
		zap.String("min_out", minOut.String()))

	waitCtx, cancel := context.WithTimeout(ctx, e.receiptTimeout)
	defer cancel()
	if _, err := tx.Wait(waitCtx); err != nil {
		return nil, e.fail(token, err)
	}

	observability.IncTrade("success")
	return &domain.TradeResult{
		Success:     true,
		TxHash:      tx.Hash().Hex(),
		Amount:      amountNative,
		TokenSymbol: token.Symbol,
	}, nil
}

func (e *TradeExecutor) fail(token domain.Token, err error) error {
	observability.IncTrade("failure")
	return &domain.TradeExecutionError{TokenSymbol: token.Symbol, Err: err}
}

// MinimumAmountOut applies the slippage tolerance to a quoted output,
// truncating to whole token base units.
func MinimumAmountOut(expectedOutput, slippage float64) *big.Int {
	bounded := new(big.Float).Mul(
		new(big.Float).SetFloat64(expectedOutput),
		new(big.Float).SetFloat64(1-slippage),
	)
	minOut, _ := bounded.Int(nil)
	return minOut
}

// NativeToWei converts an amount of native currency to wei.
func NativeToWei(amount float64) *big.Int {
	wei, _ := new(big.Float).Mul(new(big.Float).SetFloat64(amount), weiPerEther).Int(nil)
	return wei
}
