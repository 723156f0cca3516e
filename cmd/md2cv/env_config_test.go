package main

// Notes:
// - Tests use t.Setenv() which prevents t.Parallel() at parent level.
// - Invalid timeout and worker values are ignored, not errors.

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-md2cv/internal/config"
)

// ---------------------------------------------------------------------------
// TestLoadEnvConfig - Environment variable loading
// ---------------------------------------------------------------------------

func TestLoadEnvConfig(t *testing.T) {
	t.Setenv("MD2CV_CONFIG", "/path/to/md2cv.yaml")
	t.Setenv("MD2CV_TEMPLATE", "modern-minimalist")
	t.Setenv("MD2CV_LAYOUT", "single-column")
	t.Setenv("MD2CV_PAGE_FORMAT", "US Letter")
	t.Setenv("MD2CV_QUALITY", "ats")
	t.Setenv("MD2CV_TIMEOUT", "2m")
	t.Setenv("MD2CV_WORKERS", "3")
	t.Setenv("MD2CV_ADDR", ":9000")
	t.Setenv("MD2CV_STATE_PATH", "/tmp/state.yaml")
	t.Setenv("MD2CV_ASSET_PATH", "/srv/assets")

	got := loadEnvConfig()
	want := envConfig{
		ConfigPath: "/path/to/md2cv.yaml",
		Template:   "modern-minimalist",
		Layout:     "single-column",
		PageFormat: "US Letter",
		Quality:    "ats",
		Timeout:    2 * time.Minute,
		Workers:    3,
		Addr:       ":9000",
		StatePath:  "/tmp/state.yaml",
		AssetPath:  "/srv/assets",
	}
	if *got != want {
		t.Errorf("loadEnvConfig() = %+v, want %+v", *got, want)
	}
}

func TestLoadEnvConfig_InvalidNumbersIgnored(t *testing.T) {
	tests := []struct {
		name    string
		timeout string
		workers string
	}{
		{"unparseable", "soon", "many"},
		{"negative", "-5s", "-2"},
		{"zero", "0s", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("MD2CV_TIMEOUT", tt.timeout)
			t.Setenv("MD2CV_WORKERS", tt.workers)

			got := loadEnvConfig()
			if got.Timeout != 0 {
				t.Errorf("Timeout = %v, want 0", got.Timeout)
			}
			if got.Workers != 0 {
				t.Errorf("Workers = %d, want 0", got.Workers)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestWarnUnknownEnvVars - Typo detection
// ---------------------------------------------------------------------------

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Setenv("MD2CV_TEMPLATE", "classic-professional")
	t.Setenv("MD2CV_TEMPALTE", "oops")

	var buf bytes.Buffer
	warnUnknownEnvVars(&buf)

	out := buf.String()
	if !strings.Contains(out, "unknown environment variable MD2CV_TEMPALTE") {
		t.Errorf("expected typo warning, got %q", out)
	}
	if strings.Contains(out, "MD2CV_TEMPLATE ") {
		t.Errorf("known variable should not warn, got %q", out)
	}
}

// ---------------------------------------------------------------------------
// TestApplyEnvConfig - Overlay on loaded config
// ---------------------------------------------------------------------------

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	t.Run("set values override config", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		applyEnvConfig(&envConfig{
			Layout:    "single-column",
			Quality:   "ats",
			Timeout:   45 * time.Second,
			Workers:   2,
			Addr:      ":9000",
			AssetPath: "/srv/assets",
		}, cfg)

		if cfg.CV.Layout != "single-column" || cfg.CV.Quality != "ats" {
			t.Errorf("CV = %+v", cfg.CV)
		}
		if cfg.ExportTimeout() != 45*time.Second || cfg.Export.Workers != 2 {
			t.Errorf("Export = %+v", cfg.Export)
		}
		if cfg.Server.Addr != ":9000" || cfg.Assets.BasePath != "/srv/assets" {
			t.Errorf("Server = %+v, Assets = %+v", cfg.Server, cfg.Assets)
		}
	})

	t.Run("empty values keep config", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		want := *cfg
		applyEnvConfig(&envConfig{}, cfg)
		if *cfg != want {
			t.Errorf("config changed: %+v, want %+v", *cfg, want)
		}
	})
}

// ---------------------------------------------------------------------------
// TestResolveConfig_EnvOverridesFile - Precedence
// ---------------------------------------------------------------------------

func TestResolveConfig_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "md2cv.yaml", "cv:\n  layout: two-column\n  quality: standard\n")
	t.Setenv("MD2CV_CONFIG", path)
	t.Setenv("MD2CV_QUALITY", "ats")

	env := newTestEnv(nil)
	cfg, err := resolveConfig(commonFlags{}, env.Environment)
	if err != nil {
		t.Fatalf("resolveConfig() error = %v", err)
	}
	if cfg.CV.Layout != "two-column" {
		t.Errorf("Layout = %q, want two-column from file", cfg.CV.Layout)
	}
	if cfg.CV.Quality != "ats" {
		t.Errorf("Quality = %q, want ats from env", cfg.CV.Quality)
	}
}

func TestRunMain_InvalidEnvValue(t *testing.T) {
	t.Setenv("MD2CV_LAYOUT", "masonry")

	dir := t.TempDir()
	input := writeFile(t, dir, "cv.md", testMarkdown)

	env := newTestEnv(nil)
	if code := env.run("render", input); code != ExitUsage {
		t.Errorf("exit code = %d, want %d (stderr: %s)", code, ExitUsage, env.stderr)
	}
}
