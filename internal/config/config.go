package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-md2cv/internal/cv"
	"github.com/alnah/go-md2cv/internal/fileutil"
	"github.com/alnah/go-md2cv/internal/templates"
	"github.com/alnah/go-md2cv/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxTemplateIDLength = 64
	MaxEnumLength       = 20   // layout, page format, quality
	MaxDurationLength   = 20   // "30s", "1m30s"
	MaxAddrLength       = 255  // host:port
	MaxURLLength        = 2048 // Browser limit
	MaxPathLength       = 4096
)

// Worker bounds for the export pool.
const (
	MinWorkers = 1
	MaxWorkers = 8
)

// Defaults applied when a field is left empty.
const (
	DefaultTimeout  = 30 * time.Second
	DefaultDebounce = 300 * time.Millisecond
	DefaultAddr     = "127.0.0.1:8080"
)

// Config holds every setting of the CV builder.
type Config struct {
	CV     CVConfig     `yaml:"cv"`
	Export ExportConfig `yaml:"export"`
	Server ServerConfig `yaml:"server"`
	State  StateConfig  `yaml:"state"`
	Watch  WatchConfig  `yaml:"watch"`
	Assets AssetsConfig `yaml:"assets"`
}

// CVConfig selects how a CV looks.
type CVConfig struct {
	Template   string `yaml:"template"`   // Template id (default: classic-professional)
	Layout     string `yaml:"layout"`     // "single-column", "two-column" (default: two-column)
	PageFormat string `yaml:"pageFormat"` // "A4", "US Letter" (default: A4)
	Quality    string `yaml:"quality"`    // "standard", "ats" (default: standard)
}

// ExportConfig tunes PDF generation.
type ExportConfig struct {
	Timeout string `yaml:"timeout"` // Go duration (default: 30s)
	Workers int    `yaml:"workers"` // 0 = derived from GOMAXPROCS
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Addr          string `yaml:"addr"`          // default: 127.0.0.1:8080
	AllowedOrigin string `yaml:"allowedOrigin"` // empty = "*"
}

// StateConfig locates the persisted editor state.
type StateConfig struct {
	Path string `yaml:"path"` // empty = ~/.config/go-md2cv/state.yaml
}

// WatchConfig tunes the file watcher.
type WatchConfig struct {
	Debounce string `yaml:"debounce"` // Go duration (default: 300ms)
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// Validate checks lengths and enumerations.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("cv.template", c.CV.Template, MaxTemplateIDLength); err != nil {
		return err
	}
	if c.CV.Template != "" && !templates.Builtin().Has(c.CV.Template) {
		return fmt.Errorf("%w: cv.template: unknown template %q (available: %s)",
			ErrInvalidValue, c.CV.Template, strings.Join(templates.Builtin().IDs(), ", "))
	}

	if err := validateFieldLength("cv.layout", c.CV.Layout, MaxEnumLength); err != nil {
		return err
	}
	if c.CV.Layout != "" {
		if _, ok := cv.ParseLayout(c.CV.Layout); !ok {
			return fmt.Errorf("%w: cv.layout: %q (must be single-column or two-column)", ErrInvalidValue, c.CV.Layout)
		}
	}

	if err := validateFieldLength("cv.pageFormat", c.CV.PageFormat, MaxEnumLength); err != nil {
		return err
	}
	if c.CV.PageFormat != "" {
		switch strings.ToLower(c.CV.PageFormat) {
		case "a4", "us letter", "letter":
			// valid
		default:
			return fmt.Errorf("%w: cv.pageFormat: %q (must be A4 or US Letter)", ErrInvalidValue, c.CV.PageFormat)
		}
	}

	if err := validateFieldLength("cv.quality", c.CV.Quality, MaxEnumLength); err != nil {
		return err
	}
	if c.CV.Quality != "" {
		switch strings.ToLower(c.CV.Quality) {
		case "standard", "ats":
			// valid
		default:
			return fmt.Errorf("%w: cv.quality: %q (must be standard or ats)", ErrInvalidValue, c.CV.Quality)
		}
	}

	if err := validateDuration("export.timeout", c.Export.Timeout); err != nil {
		return err
	}
	if c.Export.Workers != 0 && (c.Export.Workers < MinWorkers || c.Export.Workers > MaxWorkers) {
		return fmt.Errorf("%w: export.workers: must be between %d and %d, got %d",
			ErrInvalidValue, MinWorkers, MaxWorkers, c.Export.Workers)
	}

	if err := validateFieldLength("server.addr", c.Server.Addr, MaxAddrLength); err != nil {
		return err
	}
	if err := validateFieldLength("server.allowedOrigin", c.Server.AllowedOrigin, MaxURLLength); err != nil {
		return err
	}
	if err := validateFieldLength("state.path", c.State.Path, MaxPathLength); err != nil {
		return err
	}
	if err := validateDuration("watch.debounce", c.Watch.Debounce); err != nil {
		return err
	}
	return validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength)
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// validateDuration accepts empty or positive Go durations.
func validateDuration(fieldName, value string) error {
	if err := validateFieldLength(fieldName, value, MaxDurationLength); err != nil {
		return err
	}
	if value == "" {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidValue, fieldName, err)
	}
	if d <= 0 {
		return fmt.Errorf("%w: %s: must be positive, got %s", ErrInvalidValue, fieldName, value)
	}
	return nil
}

// ExportTimeout returns export.timeout, or DefaultTimeout when unset.
func (c *Config) ExportTimeout() time.Duration {
	return durationOr(c.Export.Timeout, DefaultTimeout)
}

// WatchDebounce returns watch.debounce, or DefaultDebounce when unset.
func (c *Config) WatchDebounce() time.Duration {
	return durationOr(c.Watch.Debounce, DefaultDebounce)
}

func durationOr(value string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		CV: CVConfig{
			Template:   templates.DefaultID,
			Layout:     string(cv.DefaultLayout),
			PageFormat: "A4",
			Quality:    "standard",
		},
		Export: ExportConfig{Timeout: DefaultTimeout.String()},
		Server: ServerConfig{Addr: DefaultAddr},
		Watch:  WatchConfig{Debounce: DefaultDebounce.String()},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Empty fields keep their DefaultConfig values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.CV.Template == "" {
		c.CV.Template = def.CV.Template
	}
	if c.CV.Layout == "" {
		c.CV.Layout = def.CV.Layout
	}
	if c.CV.PageFormat == "" {
		c.CV.PageFormat = def.CV.PageFormat
	}
	if c.CV.Quality == "" {
		c.CV.Quality = def.CV.Quality
	}
	if c.Export.Timeout == "" {
		c.Export.Timeout = def.Export.Timeout
	}
	if c.Server.Addr == "" {
		c.Server.Addr = def.Server.Addr
	}
	if c.Watch.Debounce == "" {
		c.Watch.Debounce = def.Watch.Debounce
	}
}

// DefaultStatePath is where the editor state lives when state.path is
// empty.
func DefaultStatePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDir, "state.yaml"), nil
}

// appDir is the per-user directory name under os.UserConfigDir.
const appDir = "go-md2cv"

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-md2cv/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, appDir, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

