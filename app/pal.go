package app

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"
)

// Clock measures the time between two frames.
type Clock struct {
	now          func() time.Time
	currentFrame time.Time
	lastFrame    time.Time
	deltaTime    float32
}

func NewClock(now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	t := now()
	return &Clock{now: now, currentFrame: t, lastFrame: t}
}

// UpdateTime is called once at the start of every frame.
func (c *Clock) UpdateTime() {
	c.currentFrame = c.now()
	c.deltaTime = float32(c.currentFrame.Sub(c.lastFrame).Seconds())
	c.lastFrame = c.currentFrame
}

// DeltaTime is the time between the last two frames in seconds.
func (c *Clock) DeltaTime() float32 {
	return c.deltaTime
}

// LoadFileAsBytes reads a resource file.
func LoadFileAsBytes(fsys fs.FS, path string) ([]byte, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", path, err)
	}
	return data, nil
}

func NewLogger(cfg *Config) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
}

// debugLog only emits when app debug logging is switched on.
type debugLog struct {
	logger  *slog.Logger
	enabled bool
}

func (d debugLog) Print(msg string, attrs ...slog.Attr) {
	if !d.enabled {
		return
	}
	d.logger.LogAttrs(context.Background(), slog.LevelDebug, msg, attrs...)
}
