package plugin

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Service runs the trading plugin on the lifecycle contract the AutoClient
// drives.
type Service struct {
	plugin      *TradingPlugin
	log         *zap.Logger
	initialized bool
}

func NewService(p *TradingPlugin, log *zap.Logger) *Service {
	return &Service{plugin: p, log: log}
}

// Initialize verifies the plugin was wired with everything the trade path
// needs before the client advertises it.
func (s *Service) Initialize(ctx context.Context) error {
	if s.plugin == nil {
		return fmt.Errorf("trading service has no plugin")
	}
	if s.plugin.wallet == nil {
		return fmt.Errorf("trading service requires a wallet client")
	}
	s.initialized = true
	s.log.Info("trading service initialized", zap.String("plugin", s.plugin.Name()))
	return nil
}

func (s *Service) Start(ctx context.Context) error {
	if !s.initialized {
		return fmt.Errorf("trading service started before initialization")
	}
	s.log.Info("trading service started", zap.String("tool", ToolName))
	return nil
}

func (s *Service) Stop(ctx context.Context) error {
	s.log.Info("trading service stopped")
	return nil
}

// Plugin exposes the underlying plugin so hosts can register its tools.
func (s *Service) Plugin() *TradingPlugin {
	return s.plugin
}
