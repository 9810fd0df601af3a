package config

import (
	"flag"
	"os"
)

// Config holds the console client settings. Resolution order is defaults,
// then environment, then command-line flags.
type Config struct {
	ServerAddr  string
	APIKey      string
	SessionPath string
}

func Load() *Config {
	cfg := &Config{
		ServerAddr: "http://localhost:8080",
	}
	if v := os.Getenv("RIWIJOBS_SERVER"); v != "" {
		cfg.ServerAddr = v
	}
	if v := os.Getenv("RIWIJOBS_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("RIWIJOBS_SESSION_FILE"); v != "" {
		cfg.SessionPath = v
	}

	flag.StringVar(&cfg.ServerAddr, "server", cfg.ServerAddr, "API base URL")
	flag.StringVar(&cfg.APIKey, "api-key", cfg.APIKey, "gateway API key")
	flag.StringVar(&cfg.SessionPath, "session-file", cfg.SessionPath, "session file path (default: user config dir)")
	flag.Parse()

	return cfg
}
