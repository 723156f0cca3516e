package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-md2cv/internal/config"
)

// envPrefix marks the variables read by the CLI.
const envPrefix = "MD2CV_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // MD2CV_CONFIG: config file path or name
	Template   string        // MD2CV_TEMPLATE: template id
	Layout     string        // MD2CV_LAYOUT: single-column, two-column
	PageFormat string        // MD2CV_PAGE_FORMAT: A4, US Letter
	Quality    string        // MD2CV_QUALITY: standard, ats
	Timeout    time.Duration // MD2CV_TIMEOUT: PDF generation timeout
	Workers    int           // MD2CV_WORKERS: export pool size
	Addr       string        // MD2CV_ADDR: serve listen address
	StatePath  string        // MD2CV_STATE_PATH: editor state file
	AssetPath  string        // MD2CV_ASSET_PATH: custom asset directory
}

// knownEnvVars lists valid MD2CV_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MD2CV_CONFIG":      true,
	"MD2CV_TEMPLATE":    true,
	"MD2CV_LAYOUT":      true,
	"MD2CV_PAGE_FORMAT": true,
	"MD2CV_QUALITY":     true,
	"MD2CV_TIMEOUT":     true,
	"MD2CV_WORKERS":     true,
	"MD2CV_ADDR":        true,
	"MD2CV_STATE_PATH":  true,
	"MD2CV_ASSET_PATH":  true,
}

// loadEnvConfig reads configuration from environment variables.
// Malformed durations and counts are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("MD2CV_CONFIG"),
		Template:   os.Getenv("MD2CV_TEMPLATE"),
		Layout:     os.Getenv("MD2CV_LAYOUT"),
		PageFormat: os.Getenv("MD2CV_PAGE_FORMAT"),
		Quality:    os.Getenv("MD2CV_QUALITY"),
		Addr:       os.Getenv("MD2CV_ADDR"),
		StatePath:  os.Getenv("MD2CV_STATE_PATH"),
		AssetPath:  os.Getenv("MD2CV_ASSET_PATH"),
	}

	if timeout := os.Getenv("MD2CV_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := os.Getenv("MD2CV_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized MD2CV_* variables.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig overlays environment values on cfg.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later by each command).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Template != "" {
		cfg.CV.Template = env.Template
	}
	if env.Layout != "" {
		cfg.CV.Layout = env.Layout
	}
	if env.PageFormat != "" {
		cfg.CV.PageFormat = env.PageFormat
	}
	if env.Quality != "" {
		cfg.CV.Quality = env.Quality
	}
	if env.Timeout > 0 {
		cfg.Export.Timeout = env.Timeout.String()
	}
	if env.Workers > 0 {
		cfg.Export.Workers = env.Workers
	}
	if env.Addr != "" {
		cfg.Server.Addr = env.Addr
	}
	if env.StatePath != "" {
		cfg.State.Path = env.StatePath
	}
	if env.AssetPath != "" {
		cfg.Assets.BasePath = env.AssetPath
	}
}
