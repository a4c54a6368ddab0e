package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kelvinlabs/dyntrade/pkg/types"
)

// Factory builds the trading service for a given host runtime. It runs once,
// on the first Start.
type Factory func(ctx context.Context, rt types.Runtime) (types.TradingService, error)

type state int

const (
	stateUninitialized state = iota
	stateInitializing
	stateStarted
	stateStopped
)

func (s state) String() string {
	switch s {
	case stateUninitialized:
		return "uninitialized"
	case stateInitializing:
		return "initializing"
	case stateStarted:
		return "started"
	case stateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// AutoClient wraps a trading service in the host's client lifecycle. Start
// drives factory, Initialize, Start and the optional OnStart hook in order;
// Stop tears down whatever actually came up and always succeeds.
type AutoClient struct {
	factory Factory
	log     *zap.Logger

	mu     sync.Mutex
	state  state
	svc    types.TradingService
	ticker *time.Ticker
}

func NewAutoClient(factory Factory, log *zap.Logger) *AutoClient {
	return &AutoClient{
		factory: factory,
		log:     log,
		state:   stateUninitialized,
	}
}

// Start builds and starts the service. A failure at any step returns the
// error and leaves the client in its partial state; Stop remains safe to
// call afterwards.
func (c *AutoClient) Start(ctx context.Context, rt types.Runtime) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == stateStarted {
		return fmt.Errorf("client already started")
	}
	c.state = stateInitializing
	c.log.Info("client starting", zap.String("agent", rt.AgentName()))

	svc, err := c.factory(ctx, rt)
	if err != nil {
		return fmt.Errorf("building trading service: %w", err)
	}
	c.svc = svc

	if err := svc.Initialize(ctx); err != nil {
		return fmt.Errorf("initializing trading service: %w", err)
	}
	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("starting trading service: %w", err)
	}
	c.state = stateStarted

	if hook, ok := svc.(types.StartHook); ok {
		if err := hook.OnStart(ctx); err != nil {
			return fmt.Errorf("running start hook: %w", err)
		}
	}

	c.log.Info("client started", zap.String("agent", rt.AgentName()))
	return nil
}

// Stop is idempotent and tolerates partial initialization: it stops the
// recurring-task ticker if one was armed, stops the service if it started,
// and runs the Cleaner hook if the service implements it. Teardown errors are
// logged, never returned.
func (c *AutoClient) Stop(ctx context.Context, rt types.Runtime) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == stateStopped || c.state == stateUninitialized {
		c.log.Debug("stop ignored", zap.String("state", c.state.String()))
		return nil
	}

	if c.ticker != nil {
		c.ticker.Stop()
		c.ticker = nil
	}

	if c.svc != nil {
		if c.state == stateStarted {
			if err := c.svc.Stop(ctx); err != nil {
				c.log.Error("stopping trading service", zap.Error(err))
			}
		}
		if cleaner, ok := c.svc.(types.Cleaner); ok {
			if err := cleaner.Cleanup(ctx); err != nil {
				c.log.Error("cleaning up trading service", zap.Error(err))
			}
		}
	}

	c.state = stateStopped
	c.log.Info("client stopped", zap.String("agent", rt.AgentName()))
	return nil
}
