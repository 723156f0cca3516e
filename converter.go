package md2cv

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/alnah/go-md2cv/internal/assets"
	"github.com/alnah/go-md2cv/internal/cv"
	"github.com/alnah/go-md2cv/internal/pdftext"
	"github.com/alnah/go-md2cv/internal/pipeline"
	"github.com/alnah/go-md2cv/internal/templates"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.HTMLConverter = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.CSSInjector   = (*pipeline.CSSInjection)(nil)
)

// filenameTimeLayout is the timestamp format of suggested file names.
const filenameTimeLayout = "2006-01-02T15-04-05"

// Converter renders markdown CVs and exports them to PDF.
// Create with NewConverter(), use Preview() or Export(), and Close() when done.
// A Converter owns one browser and is not safe for concurrent exports;
// use ConverterPool for parallel work.
type Converter struct {
	cfg           converterConfig
	logger        *slog.Logger
	assetLoader   assets.AssetLoader
	registry      *templates.Registry
	renderer      *pipeline.Renderer
	htmlConverter pipeline.HTMLConverter
	pdfConverter  pdfConverter
	capturer      styleCapturer
	countPages    func([]byte) (int, error)
	now           func() time.Time
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithTimeout, WithAssetPath, WithLogger).
// Returns error if asset loading or template parsing fails.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg:         converterConfig{timeout: defaultTimeout},
		assetLoader: assets.NewEmbeddedLoader(),
		countPages:  pdftext.PageCount,
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		c.assetLoader = resolver
	}

	c.logger = c.cfg.logger
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}

	c.registry = c.cfg.registry
	if c.registry == nil {
		c.registry = templates.Builtin()
	}

	renderer, err := pipeline.NewRenderer(c.assetLoader, c.htmlConverter)
	if err != nil {
		return nil, fmt.Errorf("initializing renderer: %w", err)
	}
	c.renderer = renderer

	// Create PDF converter if not injected (e.g., by tests)
	if c.pdfConverter == nil {
		rc := newRodConverter(c.cfg.timeout)
		c.pdfConverter = rc
		if c.capturer == nil {
			c.capturer = rc
		}
	}

	return c, nil
}

// Templates returns the catalogue the converter renders with.
func (c *Converter) Templates() *templates.Registry {
	return c.registry
}

// PreviewInput configures an interactive preview page.
type PreviewInput struct {
	Markdown   string
	Template   string
	Layout     Layout
	PageFormat PageFormat
	Zoom       float64
}

// Preview renders markdown into a standalone HTML page that shows the CV
// on a paper sheet. The page embeds the hidden export copy that Export
// captures when given HTML.
func (c *Converter) Preview(ctx context.Context, in PreviewInput) (string, error) {
	format, err := ParsePageFormat(string(in.PageFormat))
	if err != nil {
		return "", err
	}
	layout, err := ParseLayout(string(in.Layout))
	if err != nil {
		return "", err
	}

	frag, err := c.renderer.Render(ctx, pipeline.RenderInput{
		Document: cv.Extract(in.Markdown),
		Layout:   layout,
		Template: c.registry.Get(in.Template),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRender, err)
	}

	page, err := c.renderer.PreviewPage(ctx, frag, pipeline.PreviewOptions{
		Page: format.geometry(),
		Zoom: in.Zoom,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRender, err)
	}
	return page, nil
}

// exportJob is a validated Input.
type exportJob struct {
	format   PageFormat
	quality  Quality
	layout   Layout
	template templates.Template
}

// Export runs capture, rendering and streaming and returns the PDF.
// Any failure returns a nil result; no partial bytes are exposed.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Export(ctx context.Context, input Input) (result *ExportResult, err error) {
	c.transition(StageIdle)
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
		if err != nil {
			result = nil
			c.fail(err)
		}
	}()

	job, err := c.validateInput(input)
	if err != nil {
		return nil, err
	}

	c.transition(StageCapturing)
	document, err := c.capture(ctx, input, job)
	if err != nil {
		return nil, err
	}

	c.transition(StageRendering)
	data, err := c.pdfConverter.ToPDF(ctx, document, &pdfOptions{Format: job.format, Quality: job.quality})
	if err != nil {
		return nil, err
	}

	c.transition(StageStreaming)
	pages, err := c.countPages(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	result = &ExportResult{
		PDF:        data,
		Size:       len(data),
		PageCount:  pages,
		Filename:   c.filename(job.quality),
		PageFormat: job.format,
		Quality:    job.quality,
	}
	c.transition(StageDone)
	c.logger.Debug("export finished", "bytes", result.Size, "pages", result.PageCount)
	return result, nil
}

// validateInput checks input and resolves its defaults.
func (c *Converter) validateInput(input Input) (exportJob, error) {
	if strings.TrimSpace(input.Markdown) == "" && strings.TrimSpace(input.HTML) == "" {
		return exportJob{}, ErrEmptyInput
	}

	format, err := ParsePageFormat(string(input.PageFormat))
	if err != nil {
		return exportJob{}, err
	}
	quality, err := ParseQuality(string(input.Quality))
	if err != nil {
		return exportJob{}, err
	}
	layout, err := ParseLayout(string(input.Layout))
	if err != nil {
		return exportJob{}, err
	}
	if quality.profile().singleColumn {
		layout = cv.LayoutSingleColumn
	}

	return exportJob{
		format:   format,
		quality:  quality,
		layout:   layout,
		template: c.registry.Get(input.Template),
	}, nil
}

// capture produces the print document for the browser.
func (c *Converter) capture(ctx context.Context, input Input, job exportJob) (string, error) {
	printCSS := buildPrintCSS(job.format, job.quality)
	ats := job.quality.profile().ats

	if strings.TrimSpace(input.Markdown) != "" {
		frag, err := c.renderer.Render(ctx, pipeline.RenderInput{
			Document: cv.Extract(input.Markdown),
			Layout:   job.layout,
			Template: job.template,
		})
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrRender, err)
		}
		doc, err := c.renderer.ExportFragment(ctx, frag, ats, printCSS)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrRender, err)
		}
		return doc, nil
	}

	if input.InlineStyles && c.capturer != nil {
		styled, err := c.capturer.CaptureStyled(ctx, input.HTML)
		if err != nil {
			return "", err
		}
		markup, err := pipeline.Capture(styled)
		if err != nil {
			return "", err
		}
		markup, err = pipeline.Unhide(markup)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrStyleCapture, err)
		}
		extra := printCSS
		if ats {
			extra += buildInlinedATSCSS()
		}
		css, err := c.renderer.Stylesheet(nil, pipeline.BundleOptions{
			Mode:  pipeline.BundleInlined,
			ATS:   ats,
			Extra: extra,
		})
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrRender, err)
		}
		doc, err := c.renderer.ExportDocument(ctx, capturedTitle, markup, css)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrRender, err)
		}
		return doc, nil
	}

	markup, err := pipeline.Capture(input.HTML)
	if err != nil {
		return "", err
	}
	frag := &pipeline.Fragment{
		HTML:     markup,
		Layout:   job.layout,
		Template: job.template,
		Vars:     job.template.Vars(),
	}
	css, err := c.renderer.Stylesheet(frag, pipeline.BundleOptions{
		Mode:  pipeline.BundleExport,
		ATS:   ats,
		Extra: printCSS,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRender, err)
	}
	doc, err := c.renderer.ExportDocument(ctx, capturedTitle, markup, css)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRender, err)
	}
	return doc, nil
}

// capturedTitle names documents built from client HTML.
const capturedTitle = "CV"

func (c *Converter) filename(q Quality) string {
	return fmt.Sprintf("cv-%s-%s.pdf", q, c.now().Format(filenameTimeLayout))
}

func (c *Converter) transition(s Stage) {
	c.logger.Debug("export stage", "stage", s.String())
	if c.cfg.observer != nil {
		c.cfg.observer(s)
	}
}

func (c *Converter) fail(err error) {
	c.logger.Debug("export stage", "stage", StageFailed.String(), "error", err)
	if c.cfg.observer != nil {
		c.cfg.observer(StageFailed)
	}
}

// Close releases browser resources.
func (c *Converter) Close() error {
	if c.pdfConverter != nil {
		return c.pdfConverter.Close()
	}
	return nil
}
