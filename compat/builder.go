package compat

import (
	"context"
	"fmt"

	"github.com/dobrawek/drlogger"
)

// Builder provides a flexible way to create configured logger adapters for gnet and fasthttp.
// It can use an existing *drlogger.Logger or create one writing daily files from a *drlogger.Config.
type Builder struct {
	logger *drlogger.Logger
	logCfg *drlogger.Config
	err    error
}

// NewBuilder creates a new adapter builder
func NewBuilder() *Builder {
	return &Builder{}
}

// WithLogger specifies an existing logger to use for the adapters.
// If this is set WithConfig is ignored.
func (b *Builder) WithLogger(l *drlogger.Logger) *Builder {
	if l == nil {
		b.err = fmt.Errorf("drlogger/compat: provided logger cannot be nil")
		return b
	}
	b.logger = l
	return b
}

// WithConfig provides a configuration for a new daily file listener.
// This is used only if an existing logger is NOT provided via WithLogger.
// If neither is used, a listener with the default configuration is created.
func (b *Builder) WithConfig(cfg *drlogger.Config) *Builder {
	b.logCfg = cfg
	return b
}

// getLogger resolves the logger to be used, creating and starting one if necessary
func (b *Builder) getLogger() (*drlogger.Logger, error) {
	if b.err != nil {
		return nil, b.err
	}

	if b.logger != nil {
		return b.logger, nil
	}

	cfg := b.logCfg
	if cfg == nil {
		cfg = drlogger.DefaultConfig()
	}

	listener := drlogger.NewDailyFileListener()
	if err := listener.ApplyConfig(cfg); err != nil {
		return nil, err
	}

	l := drlogger.New(drlogger.WithListeners(listener))
	if err := l.Start(context.Background()); err != nil {
		return nil, err
	}

	// Cache the newly created logger for subsequent builds with this builder
	b.logger = l
	return l, nil
}

// BuildGnet creates a gnet adapter
func (b *Builder) BuildGnet(opts ...GnetOption) (*GnetAdapter, error) {
	l, err := b.getLogger()
	if err != nil {
		return nil, err
	}
	return NewGnetAdapter(l, opts...), nil
}

// BuildFastHTTP creates a fasthttp adapter
func (b *Builder) BuildFastHTTP(opts ...FastHTTPOption) (*FastHTTPAdapter, error) {
	l, err := b.getLogger()
	if err != nil {
		return nil, err
	}
	return NewFastHTTPAdapter(l, opts...), nil
}

// GetLogger returns the logger used by the adapters, creating it if needed
func (b *Builder) GetLogger() (*drlogger.Logger, error) {
	return b.getLogger()
}
