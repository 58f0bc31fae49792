package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"studhub/internal/config"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	lvl, err := ParseLevel(" DEBUG ")
	require.NoError(t, err)
	require.Equal(t, zapcore.DebugLevel, lvl)

	_, err = ParseLevel("chatty")
	require.Error(t, err)
}

func TestNew_WritesToFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "logs", "studhub.log")
	log, err := New(config.LogConfig{Level: "info", File: path, JSON: true, Rotation: config.RotationConfig{MaxSize: 1}})
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("search triggered", zap.String("query", "ноутбук"))
	require.NoError(t, log.Sync())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(b)
	require.Contains(t, out, `"msg":"search triggered"`)
	require.Contains(t, out, "ноутбук")
	require.False(t, strings.Contains(out, "hidden"))
}

func TestNew_EmptyFileIsNop(t *testing.T) {
	t.Parallel()

	log, err := New(config.LogConfig{Level: "warn"})
	require.NoError(t, err)
	log.Warn("dropped")
}
