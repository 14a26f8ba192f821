package app

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the runtime switches of the sample.
type Config struct {
	ResourcesPath string
	Title         string
	Width         int
	Height        int

	DebugLog      bool // app level debug messages
	DebugTouchLog bool // touch coordinates, very noisy
	LogLevel      slog.Level

	RenderTarget RenderTarget
	RemoteAddr   string // websocket control listener, disabled when empty
	Profile      string // cpu, mem or empty
}

// LoadConfig loads configuration from environment variables and an
// optional .env file.
func LoadConfig() *Config {
	// Load .env file (overrides existing env vars)
	_ = godotenv.Overload()

	return &Config{
		ResourcesPath: getEnvOrDefault("L2D_RESOURCES", "resources/"),
		Title:         getEnvOrDefault("L2D_TITLE", "WHAT YOU SEE"),
		Width:         getEnvAsIntOrDefault("L2D_WIDTH", RenderTargetWidth),
		Height:        getEnvAsIntOrDefault("L2D_HEIGHT", RenderTargetHeight),
		DebugLog:      getEnvAsBoolOrDefault("L2D_DEBUG_LOG", true),
		DebugTouchLog: getEnvAsBoolOrDefault("L2D_DEBUG_TOUCH_LOG", false),
		LogLevel:      parseLogLevel(os.Getenv("L2D_LOG_LEVEL")),
		RenderTarget:  ParseRenderTarget(os.Getenv("L2D_RENDER_TARGET")),
		RemoteAddr:    os.Getenv("L2D_REMOTE_ADDR"),
		Profile:       strings.ToLower(os.Getenv("L2D_PROFILE")),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func parseLogLevel(value string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(value)); err != nil {
		return slog.LevelDebug
	}
	return level
}
