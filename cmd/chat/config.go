package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the chat client configuration loaded from environment variables.
type Config struct {
	// AgentURL is the AG-UI endpoint to talk to.
	AgentURL string
	LogLevel string // debug, info, warn, error

	// Run config
	MaxTurns int
	Timeout  time.Duration

	// DemoTools registers the built-in approve tool when true.
	DemoTools bool

	// MCP server to attach, if any. Command form runs a subprocess over
	// stdio; URL form connects over SSE.
	MCPCommand string
	MCPURL     string
}

// LoadConfig loads configuration from environment variables.
// It loads a .env file if present (silent fail if not found).
func LoadConfig() (*Config, error) {
	godotenv.Load()

	cfg := &Config{
		AgentURL:   os.Getenv("YAKKER_URL"),
		LogLevel:   getEnvOrDefault("YAKKER_LOG_LEVEL", "info"),
		MaxTurns:   getEnvIntOrDefault("YAKKER_MAX_TURNS", 10),
		Timeout:    getEnvDurationOrDefault("YAKKER_TIMEOUT", 2*time.Minute),
		DemoTools:  getEnvBoolOrDefault("YAKKER_DEMO_TOOLS", true),
		MCPCommand: os.Getenv("YAKKER_MCP_COMMAND"),
		MCPURL:     os.Getenv("YAKKER_MCP_URL"),
	}

	if cfg.AgentURL == "" {
		return nil, fmt.Errorf("YAKKER_URL is required (AG-UI agent endpoint)")
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
