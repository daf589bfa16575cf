package config

import (
	"fmt"
	"os"
	"strconv"

	"mockblossom/internal/fault"
)

// Environment surface. Loaded once at startup; the resulting Config is
// immutable for the process lifetime and injected into every component.
const (
	PortEnv = "MOCK_BLOSSOM_PORT"
	DirEnv  = "MOCK_BLOSSOM_DIR"
	ModeEnv = "MOCK_BLOSSOM_MODE"
	LogEnv  = "MOCK_BLOSSOM_LOG"
	AuthEnv = "MOCK_BLOSSOM_AUTH"
)

const (
	DefaultPort     = 8765
	DefaultDataPath = "/tmp/mock_blossom"
)

// AuthPolicy selects what happens when authorization validation fails on
// upload or delete: warn-only keeps the request going (the original mock
// behavior, so test clients can exercise happy paths without valid
// signatures), enforce rejects with 401.
type AuthPolicy string

const (
	AuthWarnOnly AuthPolicy = "warn"
	AuthEnforce  AuthPolicy = "enforce"
)

type Config struct {
	Port        int
	DataPath    string
	Mode        fault.Mode
	LogRequests bool
	AuthPolicy  AuthPolicy
}

// FromEnv builds the process configuration from environment variables.
func FromEnv() (Config, error) {
	cfg := Config{
		Port:        DefaultPort,
		DataPath:    DefaultDataPath,
		Mode:        fault.Normal,
		LogRequests: true,
		AuthPolicy:  AuthWarnOnly,
	}

	if v := os.Getenv(PortEnv); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("strconv.Atoi(%q). %w", v, err)
		}
		cfg.Port = port
	}

	if v := os.Getenv(DirEnv); v != "" {
		cfg.DataPath = v
	}

	cfg.Mode = fault.Parse(os.Getenv(ModeEnv))

	if v := os.Getenv(LogEnv); v != "" {
		cfg.LogRequests = v == "1"
	}

	if AuthPolicy(os.Getenv(AuthEnv)) == AuthEnforce {
		cfg.AuthPolicy = AuthEnforce
	}

	return cfg, nil
}
