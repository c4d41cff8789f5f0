package scabi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestDefaultConfig(t *testing.T) {
	config := defaultConfig()

	assert.Equal(t, DefaultPartsSeparator, config.partsSeparator)
	assert.NotNil(t, config.logger)
}

func TestWithLoggerOption(t *testing.T) {
	t.Run("sets logger", func(t *testing.T) {
		config := defaultConfig()
		logger := zap.NewExample()
		WithLogger(logger)(config)
		assert.Same(t, logger, config.logger)
	})

	t.Run("ignores nil", func(t *testing.T) {
		config := defaultConfig()
		before := config.logger
		WithLogger(nil)(config)
		assert.Same(t, before, config.logger)
	})
}

func TestOptionsOrderMatters(t *testing.T) {
	config := defaultConfig()
	for _, opt := range []Option{
		WithPartsSeparator("|"),
		WithPartsSeparator("#"),
	} {
		opt(config)
	}
	assert.Equal(t, "#", config.partsSeparator)
}

func TestConfigIndependence(t *testing.T) {
	config1 := defaultConfig()
	config2 := defaultConfig()

	WithPartsSeparator("|")(config1)

	assert.Equal(t, "|", config1.partsSeparator)
	assert.Equal(t, DefaultPartsSeparator, config2.partsSeparator)
}

func TestSetLogger(t *testing.T) {
	logger := zap.NewExample()
	SetLogger(logger)
	t.Cleanup(func() { SetLogger(nil) })

	assert.Same(t, logger, Logger())
	assert.Same(t, logger, defaultConfig().logger)
}
