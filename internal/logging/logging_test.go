package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	for _, verbose := range []bool{true, false} {
		logger := New(verbose)
		assert.NotNil(t, logger)
		assert.NotPanics(t, func() {
			logger.Debug("debug", "key", "value")
			logger.Info("info")
			logger.Warn("warn", "count", 2)
			logger.Error("error")
		})
	}
}

func TestNewNop(t *testing.T) {
	logger := NewNop()
	assert.NotPanics(t, func() {
		logger.Info("discarded")
		logger.With("component", "test").Debug("also discarded")
	})
}
