package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{" WARN ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, testCase := range tests {
		t.Run(testCase.in, func(t *testing.T) {
			assert.Equal(t, testCase.want, ParseLevel(testCase.in))
		})
	}
}

func TestNew_WritesServiceAndEnv(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Service: "storefront-svc", Env: "test", Level: "info", Output: &buf})

	log.Info("hello", slog.Int("n", 1))
	log.Debug("hidden")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "storefront-svc", entry["service"])
	assert.Equal(t, "test", entry["env"])
	assert.EqualValues(t, 1, entry["n"])
}
