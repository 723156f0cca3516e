package md2cv

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/alnah/go-md2cv/internal/cv"
	"github.com/alnah/go-md2cv/internal/pipeline"
	"github.com/alnah/go-md2cv/internal/templates"
)

// PageFormat is the paper size of an export.
type PageFormat string

// Supported page formats.
const (
	PageFormatA4     PageFormat = "A4"
	PageFormatLetter PageFormat = "US Letter"
)

// Paper dimensions in inches.
const (
	a4WidthInches      = 8.27
	a4HeightInches     = 11.69
	letterWidthInches  = 8.5
	letterHeightInches = 11
)

// ParsePageFormat accepts "A4", "US Letter" or "letter", case-insensitive.
// An empty string means A4.
func ParsePageFormat(s string) (PageFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "a4":
		return PageFormatA4, nil
	case "us letter", "letter":
		return PageFormatLetter, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPageFormat, s)
}

// dimensions returns width and height in inches.
func (f PageFormat) dimensions() (width, height float64) {
	if f == PageFormatLetter {
		return letterWidthInches, letterHeightInches
	}
	return a4WidthInches, a4HeightInches
}

func (f PageFormat) geometry() pipeline.PageGeometry {
	w, h := f.dimensions()
	return pipeline.PageGeometry{Width: inches(w), Height: inches(h)}
}

func inches(v float64) string {
	return fmt.Sprintf("%gin", v)
}

// Quality selects an export profile.
type Quality string

// Supported quality profiles.
const (
	// QualityStandard keeps the visual design.
	QualityStandard Quality = "standard"
	// QualityATS produces a text-dense single-column document for
	// applicant tracking systems.
	QualityATS Quality = "ats"
)

// ParseQuality accepts "standard" or "ats", case-insensitive. An empty
// string means standard.
func ParseQuality(s string) (Quality, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(QualityStandard):
		return QualityStandard, nil
	case string(QualityATS):
		return QualityATS, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidQuality, s)
}

// qualityProfile holds the print settings of a Quality.
type qualityProfile struct {
	margin            float64 // inches, all sides
	preferCSSPageSize bool
	singleColumn      bool
	ats               bool
}

func (q Quality) profile() qualityProfile {
	if q == QualityATS {
		return qualityProfile{margin: 0.25, singleColumn: true, ats: true}
	}
	return qualityProfile{margin: 0.5, preferCSSPageSize: true}
}

// Layout is the arrangement of CV sections.
type Layout = cv.Layout

// Supported layouts.
const (
	LayoutSingleColumn = cv.LayoutSingleColumn
	LayoutTwoColumn    = cv.LayoutTwoColumn
)

// ParseLayout accepts "single-column" or "two-column". An empty string
// means the default layout.
func ParseLayout(s string) (Layout, error) {
	if strings.TrimSpace(s) == "" {
		return cv.DefaultLayout, nil
	}
	l, ok := cv.ParseLayout(s)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidLayout, s)
	}
	return l, nil
}

// Input contains the CV to export. Exactly one of Markdown or HTML is
// used; Markdown wins when both are set.
type Input struct {
	// Markdown is CV source; it is rendered through the layout pipeline.
	Markdown string
	// HTML is a rendered preview page; its CV element is captured.
	HTML string

	PageFormat PageFormat // empty means A4
	Quality    Quality    // empty means standard
	Template   string     // unknown ids fall back to the default template
	Layout     Layout     // empty means two-column

	// InlineStyles loads HTML in the browser and inlines computed styles
	// before capture.
	InlineStyles bool
}

// ExportResult is a finished PDF.
type ExportResult struct {
	PDF        []byte
	Size       int
	PageCount  int
	Filename   string
	PageFormat PageFormat
	Quality    Quality
}

// GenerationResult is the client-facing outcome of an export.
type GenerationResult struct {
	Success   bool   `json:"success"`
	FileSize  int    `json:"fileSize,omitempty"`
	PageCount int    `json:"pageCount,omitempty"`
	Error     string `json:"error,omitempty"`
}

// NewGenerationResult projects an export outcome.
func NewGenerationResult(res *ExportResult, err error) GenerationResult {
	if err != nil {
		return GenerationResult{Error: err.Error()}
	}
	if res == nil {
		return GenerationResult{Error: ErrPDFGeneration.Error()}
	}
	return GenerationResult{Success: true, FileSize: res.Size, PageCount: res.PageCount}
}

// Stage is a step of the export state machine.
type Stage int

// Export stages, in order.
const (
	StageIdle Stage = iota
	StageCapturing
	StageRendering
	StageStreaming
	StageDone
	StageFailed
)

var stageNames = [...]string{"idle", "capturing", "rendering", "streaming", "done", "failed"}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return fmt.Sprintf("Stage(%d)", int(s))
	}
	return stageNames[s]
}

// Terminal reports whether no transition leaves s.
func (s Stage) Terminal() bool {
	return s == StageDone || s == StageFailed
}

// StageObserver is notified of every stage transition.
type StageObserver func(Stage)

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout   time.Duration
	logger    *slog.Logger
	observer  StageObserver
	assetPath string
	registry  *templates.Registry
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the per-export browser timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("md2cv: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithLogger sets the logger for stage transitions. Nil keeps the
// converter silent.
func WithLogger(l *slog.Logger) Option {
	return func(c *Converter) {
		c.cfg.logger = l
	}
}

// WithStageObserver registers fn to be called on every stage transition.
func WithStageObserver(fn StageObserver) Option {
	return func(c *Converter) {
		c.cfg.observer = fn
	}
}

// WithAssetPath overrides embedded styles, templates and samples with the
// files found under dir. Missing files fall back to the embedded ones.
func WithAssetPath(dir string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = dir
	}
}

// WithTemplates replaces the built-in template catalogue.
func WithTemplates(r *templates.Registry) Option {
	return func(c *Converter) {
		c.cfg.registry = r
	}
}
