package types

import "context"

// TradingService is the lifecycle contract the AutoClient drives, in this
// fixed order: Initialize, Start, then the optional OnStart hook.
type TradingService interface {
	Initialize(ctx context.Context) error
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// StartHook is an optional interface for services that need a callback after
// a successful start.
type StartHook interface {
	OnStart(ctx context.Context) error
}

// Cleaner is an optional interface for services that need custom cleanup when
// the client stops.
type Cleaner interface {
	Cleanup(ctx context.Context) error
}
