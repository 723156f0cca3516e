package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strconv"
)

// PageGeometry is the paper size in CSS lengths.
type PageGeometry struct {
	Width  string
	Height string
}

// PreviewOptions configures the interactive preview page.
type PreviewOptions struct {
	Page PageGeometry
	// Zoom scales the visible page; values <= 0 mean 1.
	Zoom float64
}

type previewData struct {
	Title     string
	PageStyle template.CSS
	Fragment  template.HTML
}

type exportData struct {
	Title    string
	Fragment template.HTML
}

// PreviewPage returns a standalone HTML page showing frag on a paper sheet
// with page guides, plus a hidden export copy for capture.
func (r *Renderer) PreviewPage(ctx context.Context, frag *Fragment, opts PreviewOptions) (string, error) {
	css, err := r.bundler.Bundle(frag, BundleOptions{Mode: BundlePreview})
	if err != nil {
		return "", err
	}

	zoom := opts.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	pageStyle := fmt.Sprintf("--page-width: %s; --page-height: %s; --preview-zoom: %s;",
		opts.Page.Width, opts.Page.Height, strconv.FormatFloat(zoom, 'f', -1, 64))

	var buf bytes.Buffer
	err = r.previewTmpl.Execute(&buf, previewData{
		Title:     pageTitle(frag),
		PageStyle: trustedCSS(pageStyle),
		Fragment:  trustedHTML(frag.HTML),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}
	return r.injector.InjectCSS(ctx, buf.String(), css), nil
}

// ExportDocument wraps an already captured fragment into the print
// document the browser turns into PDF. css is injected as-is.
func (r *Renderer) ExportDocument(ctx context.Context, title, fragmentHTML, css string) (string, error) {
	var buf bytes.Buffer
	err := r.exportTmpl.Execute(&buf, exportData{
		Title:    title,
		Fragment: trustedHTML(fragmentHTML),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}
	return r.injector.InjectCSS(ctx, buf.String(), css), nil
}

// ExportFragment bundles export CSS for frag and wraps it for printing.
// extraCSS is appended after the bundled sheets.
func (r *Renderer) ExportFragment(ctx context.Context, frag *Fragment, ats bool, extraCSS string) (string, error) {
	css, err := r.bundler.Bundle(frag, BundleOptions{Mode: BundleExport, ATS: ats, Extra: extraCSS})
	if err != nil {
		return "", err
	}
	return r.ExportDocument(ctx, pageTitle(frag), frag.HTML, css)
}

func pageTitle(frag *Fragment) string {
	return frag.Document.Name + " - CV"
}
