package md2cv

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-md2cv/internal/fileutil"
	"github.com/alnah/go-md2cv/internal/process"
)

// pdfConverter abstracts HTML to PDF conversion to allow different backends.
type pdfConverter interface {
	ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error)
	Close() error
}

// pdfRenderer abstracts PDF rendering from an HTML file to enable testing without a browser.
type pdfRenderer interface {
	RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error)
}

// styleCapturer loads a page in a browser and returns its CV element with
// every computed style inlined.
type styleCapturer interface {
	CaptureStyled(ctx context.Context, page string) (string, error)
}

// Compile-time interface checks
var (
	_ pdfConverter  = (*rodConverter)(nil)
	_ pdfRenderer   = (*rodRenderer)(nil)
	_ styleCapturer = (*rodConverter)(nil)
)

// pdfOptions holds options for PDF generation.
type pdfOptions struct {
	Format  PageFormat
	Quality Quality
}

// imageWaitTimeout caps how long a single image may delay printing.
const imageWaitTimeout = 5 * time.Second

// waitImagesJS resolves once every image has loaded, failed or timed out.
const waitImagesJS = `(ms) => Promise.all(Array.from(document.images).map((img) => {
  if (img.complete) return true;
  return new Promise((resolve) => {
    img.addEventListener('load', () => resolve(true), { once: true });
    img.addEventListener('error', () => resolve(false), { once: true });
    setTimeout(() => resolve(false), ms);
  });
}))`

// inlineStylesJS clones the export copy of the CV and copies every
// computed property onto the clone, so the markup renders without the
// page's stylesheets. Properties that hide or offset the copy on the
// preview page are left out.
const inlineStylesJS = `() => {
  const root = document.querySelector('.cv-pdf-export')
    || document.querySelector('.cv-preview-content')
    || document.querySelector('.cv-document');
  if (!root) return '';
  const clone = root.cloneNode(true);
  const hidden = new Set(['visibility', 'pointer-events']);
  const placed = new Set(['position', 'left', 'top', 'right', 'bottom', 'transform', 'z-index']);
  const inline = (src, dst) => {
    const cs = getComputedStyle(src);
    let text = '';
    for (let i = 0; i < cs.length; i++) {
      const name = cs[i];
      if (hidden.has(name) || (src === root && placed.has(name))) continue;
      text += name + ':' + cs.getPropertyValue(name) + ';';
    }
    dst.setAttribute('style', text);
    for (let i = 0; i < src.children.length; i++) {
      inline(src.children[i], dst.children[i]);
    }
  };
  inline(root, clone);
  return clone.outerHTML;
}`

// rodRenderer implements pdfRenderer using go-rod.
// Rod automatically downloads Chromium on first run if not found.
type rodRenderer struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	timeout  time.Duration
}

// newRodRenderer creates a rodRenderer with the given timeout.
func newRodRenderer(timeout time.Duration) *rodRenderer {
	return &rodRenderer{timeout: timeout}
}

// ensureBrowser lazily connects to the browser.
func (r *rodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" || os.Getenv("ROD_NO_SANDBOX") == "1" {
		l = l.NoSandbox(true)
	}
	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.launcher = l

	r.browser = rod.New().ControlURL(u)
	if err := r.browser.Connect(); err != nil {
		r.browser = nil
		r.killBrowser()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return nil
}

// Close releases browser resources, including any orphaned Chrome
// helper processes.
func (r *rodRenderer) Close() error {
	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	r.killBrowser()
	return err
}

// killBrowser terminates the launched process tree and removes its
// profile directory.
func (r *rodRenderer) killBrowser() {
	if r.launcher == nil {
		return
	}
	process.KillTree(r.launcher.PID())
	r.launcher.Kill()
	r.launcher.Cleanup()
	r.launcher = nil
}

// reset drops a browser that failed at the browser level so the next call
// launches a fresh one.
func (r *rodRenderer) reset(err error) {
	if errors.Is(err, ErrPageCreate) || errors.Is(err, ErrPDFGeneration) {
		_ = r.Close()
	}
}

// loadTimeout returns the time left for page work.
func (r *rodRenderer) loadTimeout(ctx context.Context) (time.Duration, error) {
	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return 0, context.DeadlineExceeded
		}
	}
	return timeout, nil
}

// openPage loads a local file and waits for it and its images.
// The caller closes the page.
func (r *rodRenderer) openPage(ctx context.Context, filePath string) (*rod.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	timeout, err := r.loadTimeout(ctx)
	if err != nil {
		return nil, err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: "file://" + filePath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	// Broken or slow images must not block the export.
	_, _ = page.Timeout(timeout).Eval(waitImagesJS, imageWaitTimeout.Milliseconds())

	if err := ctx.Err(); err != nil {
		_ = page.Close()
		return nil, err
	}
	return page, nil
}

// RenderFromFile opens a local HTML file in headless Chrome and renders it to PDF.
// Returns explicit errors instead of panicking when browser operations fail.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) (data []byte, err error) {
	defer func() { r.reset(err) }()

	page, err := r.openPage(ctx, filePath)
	if err != nil {
		return nil, err
	}
	defer page.Close()

	reader, err := page.PDF(buildPDFOptions(opts))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return pdfBuf, nil
}

// InlineFromFile loads a page and returns its CV element with inlined styles.
func (r *rodRenderer) InlineFromFile(ctx context.Context, filePath string) (markup string, err error) {
	defer func() { r.reset(err) }()

	page, err := r.openPage(ctx, filePath)
	if err != nil {
		return "", err
	}
	defer page.Close()

	res, err := page.Eval(inlineStylesJS)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStyleCapture, err)
	}
	markup = res.Value.Str()
	if markup == "" {
		return "", ErrPreviewNotFound
	}
	return markup, nil
}

// buildPDFOptions constructs proto.PagePrintToPDF for the paper size and
// quality profile. Header and footer are never printed.
func buildPDFOptions(opts *pdfOptions) *proto.PagePrintToPDF {
	format, quality := PageFormatA4, QualityStandard
	if opts != nil {
		if opts.Format != "" {
			format = opts.Format
		}
		if opts.Quality != "" {
			quality = opts.Quality
		}
	}
	w, h := format.dimensions()
	p := quality.profile()

	return &proto.PagePrintToPDF{
		PaperWidth:          floatPtr(w),
		PaperHeight:         floatPtr(h),
		MarginTop:           floatPtr(p.margin),
		MarginBottom:        floatPtr(p.margin),
		MarginLeft:          floatPtr(p.margin),
		MarginRight:         floatPtr(p.margin),
		PrintBackground:     true,
		PreferCSSPageSize:   p.preferCSSPageSize,
		DisplayHeaderFooter: false,
	}
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}

// rodConverter converts HTML to PDF using headless Chrome via go-rod.
type rodConverter struct {
	renderer *rodRenderer
}

// newRodConverter creates a rodConverter with production renderer.
func newRodConverter(timeout time.Duration) *rodConverter {
	return &rodConverter{
		renderer: newRodRenderer(timeout),
	}
}

// ToPDF converts HTML content to PDF bytes using headless Chrome.
func (c *rodConverter) ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error) {
	tmpPath, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return c.renderer.RenderFromFile(ctx, tmpPath, opts)
}

// CaptureStyled loads page in the shared browser and inlines its styles.
func (c *rodConverter) CaptureStyled(ctx context.Context, page string) (string, error) {
	tmpPath, cleanup, err := fileutil.WriteTempFile(page, "html")
	if err != nil {
		return "", err
	}
	defer cleanup()

	return c.renderer.InlineFromFile(ctx, tmpPath)
}

// Close releases browser resources.
func (c *rodConverter) Close() error {
	if c.renderer != nil {
		return c.renderer.Close()
	}
	return nil
}
