package app

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLogger(t *testing.T) {
	t.Run("unknown level falls back to warn", func(t *testing.T) {
		var buf bytes.Buffer
		logger := newLogger("verbose", "text", &buf)
		logger.Info("hidden")
		assert.Empty(t, buf.String())
		logger.Warn("shown")
		assert.Contains(t, buf.String(), "shown")
	})

	t.Run("debug level enables debug", func(t *testing.T) {
		var buf bytes.Buffer
		logger := newLogger("debug", "text", &buf)
		logger.Debug("details")
		assert.Contains(t, buf.String(), "details")
	})

	t.Run("json format", func(t *testing.T) {
		var buf bytes.Buffer
		logger := newLogger("info", "json", &buf)
		logger.Info("structured")
		assert.True(t, strings.HasPrefix(buf.String(), "{"))
		assert.Contains(t, buf.String(), `"msg":"structured"`)
	})
}
