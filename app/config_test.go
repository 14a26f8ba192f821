package app

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"L2D_RESOURCES",
	"L2D_TITLE",
	"L2D_WIDTH",
	"L2D_HEIGHT",
	"L2D_DEBUG_LOG",
	"L2D_DEBUG_TOUCH_LOG",
	"L2D_LOG_LEVEL",
	"L2D_RENDER_TARGET",
	"L2D_REMOTE_ADDR",
	"L2D_PROFILE",
}

func clearConfigEnv(t *testing.T) {
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearConfigEnv(t)

	cfg := LoadConfig()
	require.Equal(t, "resources/", cfg.ResourcesPath)
	require.Equal(t, "WHAT YOU SEE", cfg.Title)
	require.Equal(t, RenderTargetWidth, cfg.Width)
	require.Equal(t, RenderTargetHeight, cfg.Height)
	require.True(t, cfg.DebugLog)
	require.False(t, cfg.DebugTouchLog)
	require.Equal(t, slog.LevelDebug, cfg.LogLevel)
	require.Equal(t, RenderTargetNone, cfg.RenderTarget)
	require.Empty(t, cfg.RemoteAddr)
	require.Empty(t, cfg.Profile)
}

func TestLoadConfigFromEnv(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("L2D_RESOURCES", "/data/l2d")
	t.Setenv("L2D_WIDTH", "1280")
	t.Setenv("L2D_HEIGHT", "-5")
	t.Setenv("L2D_DEBUG_LOG", "false")
	t.Setenv("L2D_DEBUG_TOUCH_LOG", "1")
	t.Setenv("L2D_LOG_LEVEL", "warn")
	t.Setenv("L2D_RENDER_TARGET", "model")
	t.Setenv("L2D_REMOTE_ADDR", ":8080")
	t.Setenv("L2D_PROFILE", "CPU")

	cfg := LoadConfig()
	require.Equal(t, "/data/l2d", cfg.ResourcesPath)
	require.Equal(t, 1280, cfg.Width)
	require.Equal(t, RenderTargetHeight, cfg.Height)
	require.False(t, cfg.DebugLog)
	require.True(t, cfg.DebugTouchLog)
	require.Equal(t, slog.LevelWarn, cfg.LogLevel)
	require.Equal(t, RenderTargetModelFrameBuffer, cfg.RenderTarget)
	require.Equal(t, ":8080", cfg.RemoteAddr)
	require.Equal(t, "cpu", cfg.Profile)
}
