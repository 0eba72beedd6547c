// File: internal/observability/logger_test.go
package observability

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/xkilldash9x/wallet-e2e/pkg/config"
)

func testLoggerConfig() config.LoggerConfig {
	cfg := config.NewDefaultConfig().Logger()
	cfg.ServiceName = "test-suite"
	return cfg
}

func TestInitialize(t *testing.T) {
	t.Run("console output is colourised and named", func(t *testing.T) {
		ResetForTest()
		defer ResetForTest()

		var buf bytes.Buffer
		Initialize(testLoggerConfig(), zapcore.AddSync(&buf))
		GetLogger().Named("window_tracker").Info("focused page", zap.String("url", "chrome-extension://abc/popup.html"))
		Sync()

		out := buf.String()
		assert.Contains(t, out, "test-suite.window_tracker.")
		assert.Contains(t, out, "\x1b[32mINFO\x1b[0m")
		assert.Contains(t, out, "focused page")
		assert.Contains(t, out, "chrome-extension://abc/popup.html")
	})

	t.Run("json output is structured", func(t *testing.T) {
		ResetForTest()
		defer ResetForTest()

		cfg := testLoggerConfig()
		cfg.Format = "json"
		var buf bytes.Buffer
		Initialize(cfg, zapcore.AddSync(&buf))
		GetLogger().Warn("no active page", zap.Int("pages", 0))

		var entry map[string]interface{}
		require.NoError(t, jsoniter.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
		assert.Equal(t, "WARN", entry["level"])
		assert.Equal(t, "no active page", entry["msg"])
		assert.Equal(t, float64(0), entry["pages"])
		assert.Equal(t, "test-suite", entry["logger"])
	})

	t.Run("level filtering", func(t *testing.T) {
		ResetForTest()
		defer ResetForTest()

		cfg := testLoggerConfig()
		cfg.Level = "warn"
		var buf bytes.Buffer
		Initialize(cfg, zapcore.AddSync(&buf))
		GetLogger().Debug("hidden")
		GetLogger().Info("hidden too")
		GetLogger().Error("shown")

		out := buf.String()
		assert.NotContains(t, out, "hidden")
		assert.Contains(t, out, "shown")
	})

	t.Run("invalid level falls back to info", func(t *testing.T) {
		ResetForTest()
		defer ResetForTest()

		cfg := testLoggerConfig()
		cfg.Level = "chatty"
		var buf bytes.Buffer
		Initialize(cfg, zapcore.AddSync(&buf))
		GetLogger().Debug("debug line")
		GetLogger().Info("info line")

		assert.NotContains(t, buf.String(), "debug line")
		assert.Contains(t, buf.String(), "info line")
	})

	t.Run("only the first initialization wins", func(t *testing.T) {
		ResetForTest()
		defer ResetForTest()

		var first, second bytes.Buffer
		Initialize(testLoggerConfig(), zapcore.AddSync(&first))
		Initialize(testLoggerConfig(), zapcore.AddSync(&second))
		GetLogger().Info("once")

		assert.Contains(t, first.String(), "once")
		assert.Empty(t, second.String())
	})

	t.Run("file sink writes json", func(t *testing.T) {
		ResetForTest()
		defer ResetForTest()

		cfg := testLoggerConfig()
		cfg.LogFile = filepath.Join(t.TempDir(), "run.log")
		var buf bytes.Buffer
		Initialize(cfg, zapcore.AddSync(&buf))
		GetLogger().Info("to file")
		Sync()

		data, err := os.ReadFile(cfg.LogFile)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(strings.TrimSpace(string(data)), "{"))
		assert.Contains(t, string(data), `"msg":"to file"`)
	})
}

func TestGetLoggerFallback(t *testing.T) {
	ResetForTest()
	logger := GetLogger()
	require.NotNil(t, logger)
	assert.NotPanics(t, func() { logger.Info("fallback works") })
}
