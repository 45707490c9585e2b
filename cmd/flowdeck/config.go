package main

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config holds all flowdeck configuration.
// Priority: env vars > settings.json > defaults.
type Config struct {
	ServerURL  string `json:"server_url"`
	Project    string `json:"project"`
	ListenAddr string `json:"listen_addr"`
	LogLevel   string `json:"log_level"`
}

func defaultConfig() Config {
	return Config{
		ServerURL:  "http://localhost:5000",
		ListenAddr: ":4600",
		LogLevel:   "info",
	}
}

func flowdeckDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".flowdeck"
	}
	return filepath.Join(home, ".flowdeck")
}

func settingsPath() string {
	return filepath.Join(flowdeckDir(), "settings.json")
}

func loadConfig() Config {
	cfg := defaultConfig()

	// Layer 2: settings.json (ignore if missing).
	if data, err := os.ReadFile(settingsPath()); err == nil {
		_ = json.Unmarshal(data, &cfg)
	}

	// Layer 3: env vars override.
	if v := os.Getenv("FLOWDECK_SERVER_URL"); v != "" {
		cfg.ServerURL = v
	}
	if v := os.Getenv("FLOWDECK_PROJECT"); v != "" {
		cfg.Project = v
	}
	if v := os.Getenv("FLOWDECK_LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("FLOWDECK_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	return cfg
}
