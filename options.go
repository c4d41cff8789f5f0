package scabi

import (
	"go.uber.org/zap"
)

// Option configures an Abi.
type Option func(*config)

// config holds configuration for NewAbi.
type config struct {
	logger         *zap.Logger
	partsSeparator string
}

// defaultConfig returns the default configuration.
func defaultConfig() *config {
	return &config{
		logger:         Logger(),
		partsSeparator: DefaultPartsSeparator,
	}
}

// WithLogger sets the logger used by the Abi.
// Default is the package logger, a no-op unless replaced with SetLogger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithPartsSeparator sets the separator joining hex parts in call data.
// Default is "@".
func WithPartsSeparator(separator string) Option {
	return func(c *config) {
		c.partsSeparator = separator
	}
}
