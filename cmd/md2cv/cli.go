package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	md2cv "github.com/alnah/go-md2cv"
	"github.com/alnah/go-md2cv/internal/assets"
	"github.com/alnah/go-md2cv/internal/config"
	"github.com/alnah/go-md2cv/internal/fileutil"
	"github.com/alnah/go-md2cv/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage            = errors.New("invalid usage")
	ErrReadMarkdown     = errors.New("failed to read input file")
	ErrWriteOutput      = errors.New("failed to write output file")
	ErrInvalidExtension = errors.New("unsupported input extension")
	ErrNotAcceptable    = errors.New("PDF content does not match the preview")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

var (
	markdownExtensions = []string{".md", ".markdown"}
	htmlExtensions     = []string{".html", ".htm"}
)

// usageError wraps a flag parsing error, keeping --help distinguishable.
func usageError(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUsage, err)
}

// resolveConfig loads the config file named by the flag or MD2CV_CONFIG,
// then overlays the environment.
func resolveConfig(flags commonFlags, env *Environment) (*config.Config, error) {
	envCfg := loadEnvConfig()

	path := flags.config
	if path == "" {
		path = envCfg.ConfigPath
	}

	var cfg *config.Config
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	} else {
		cfg = cloneConfig(env.Config)
	}

	applyEnvConfig(envCfg, cfg)
	return cfg, nil
}

func cloneConfig(cfg *config.Config) *config.Config {
	if cfg == nil {
		return config.DefaultConfig()
	}
	c := *cfg
	return &c
}

// merge applies non-empty CLI values over cfg and validates the result.
func (f cvFlags) merge(cfg *config.Config) error {
	if f.template != "" {
		cfg.CV.Template = f.template
	}
	if f.layout != "" {
		cfg.CV.Layout = f.layout
	}
	if f.pageFormat != "" {
		cfg.CV.PageFormat = f.pageFormat
	}
	if f.quality != "" {
		cfg.CV.Quality = f.quality
	}
	return cfg.Validate()
}

// newLogger returns a debug text logger on w when verbose, else a silent one.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// converterOptions builds converter options from the resolved config.
func converterOptions(cfg *config.Config, logger *slog.Logger) []md2cv.Option {
	opts := []md2cv.Option{
		md2cv.WithTimeout(cfg.ExportTimeout()),
		md2cv.WithLogger(logger),
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, md2cv.WithAssetPath(cfg.Assets.BasePath))
	}
	return opts
}

// parseTimeout parses a --timeout value; empty keeps the config value.
func parseTimeout(value string, cfg *config.Config) error {
	if value == "" {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("%w: invalid timeout %q: %v", ErrUsage, value, err)
	}
	if d <= 0 {
		return fmt.Errorf("%w: timeout must be positive, got %s", ErrUsage, value)
	}
	cfg.Export.Timeout = d.String()
	return nil
}

// exportInput builds a converter input from the resolved config.
func exportInput(cfg *config.Config) md2cv.Input {
	return md2cv.Input{
		PageFormat: md2cv.PageFormat(cfg.CV.PageFormat),
		Quality:    md2cv.Quality(cfg.CV.Quality),
		Template:   cfg.CV.Template,
		Layout:     md2cv.Layout(cfg.CV.Layout),
	}
}

// previewInput builds a preview request from the resolved config.
func previewInput(cfg *config.Config, markdown string, zoom float64) md2cv.PreviewInput {
	return md2cv.PreviewInput{
		Markdown:   markdown,
		Template:   cfg.CV.Template,
		Layout:     md2cv.Layout(cfg.CV.Layout),
		PageFormat: md2cv.PageFormat(cfg.CV.PageFormat),
		Zoom:       zoom,
	}
}

// singleInput returns the one positional argument a command expects.
func singleInput(args []string) (string, error) {
	switch len(args) {
	case 0:
		return "", fmt.Errorf("%w: missing input file", ErrUsage)
	case 1:
		return args[0], nil
	default:
		return "", fmt.Errorf("%w: expected one input file, got %d", ErrUsage, len(args))
	}
}

// checkExtension verifies path ends with one of exts (case-insensitive).
func checkExtension(path string, exts ...string) error {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if ext == e {
			return nil
		}
	}
	return fmt.Errorf("%w: %s (want %s)", ErrInvalidExtension, path, strings.Join(exts, ", "))
}

// isHTMLFile reports whether path names an HTML document.
func isHTMLFile(path string) bool {
	return checkExtension(path, htmlExtensions...) == nil
}

// readInput reads the input file.
func readInput(path string) (string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- input path is user-provided
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadMarkdown, err)
	}
	return string(data), nil
}

// resolveOutputPath picks where to write the output for input.
// Empty output replaces the input extension with ext. An existing
// directory (or a trailing separator) receives the derived file name.
func resolveOutputPath(input, output, ext string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input)) + ext
	if output == "" {
		return filepath.Join(filepath.Dir(input), base)
	}
	if strings.HasSuffix(output, string(filepath.Separator)) || strings.HasSuffix(output, "/") {
		return filepath.Join(output, base)
	}
	if info, err := os.Stat(output); err == nil && info.IsDir() {
		return filepath.Join(output, base)
	}
	return output
}

// writeOutput atomically writes data, creating parent directories.
func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, dirPermissions); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
	}
	if err := fileutil.WriteFileAtomic(path, data, filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}

// sampleNames lists the built-in samples for hints.
var sampleNames = []string{
	assets.SampleDefault,
	assets.SampleJaneSmith,
	assets.SampleMinimal,
	assets.SampleLong,
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, md2cv.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		dir, _ := os.UserConfigDir()
		if dir != "" {
			dir = filepath.Join(dir, "go-md2cv")
		}
		return hints.ForConfigNotFound(dir)
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	case errors.Is(err, md2cv.ErrPreviewNotFound):
		return hints.ForPreviewNotFound()
	case errors.Is(err, assets.ErrSampleNotFound):
		return hints.ForAvailable(sampleNames)
	}
	return ""
}

// printf writes to w unless quiet.
func printf(w io.Writer, quiet bool, format string, args ...any) {
	if quiet {
		return
	}
	fmt.Fprintf(w, format, args...)
}
