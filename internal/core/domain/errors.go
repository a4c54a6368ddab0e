package domain

import "fmt"

// TradeExecutionError wraps any failure on the trade path (quote fetch,
// contract call, receipt wait) into one descriptive error naming the token.
// Unlike catalog and metrics failures it is always surfaced to the caller.
type TradeExecutionError struct {
	TokenSymbol string
	Err         error
}

func (e *TradeExecutionError) Error() string {
	return fmt.Sprintf("trade execution failed for %s: %v", e.TokenSymbol, e.Err)
}

func (e *TradeExecutionError) Unwrap() error {
	return e.Err
}
