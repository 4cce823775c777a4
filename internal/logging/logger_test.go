package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"":        slog.LevelInfo,
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
	}
	for input, want := range tests {
		assert.Equal(t, want, parseLevel(input), input)
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, false, "warn")

	logger.Info("hidden")
	logger.Warn("paymaster balance low", "address", "0x01")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "paymaster balance low")
	assert.Contains(t, out, "address=0x01")
	assert.NotContains(t, out, "time=")
}

func TestNewLogger_Debug(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, true, "error")

	logger.Debug("chain id", "chain_id", 300)

	assert.Contains(t, buf.String(), "chain_id=300")
	assert.Contains(t, buf.String(), "source=")
}

func TestShortPath(t *testing.T) {
	assert.Equal(t, "internal/usecase/deploy_paymaster.go", shortPath("/home/dev/zkpm/internal/usecase/deploy_paymaster.go"))
	assert.Equal(t, "main.go", shortPath("/elsewhere/main.go"))
}
