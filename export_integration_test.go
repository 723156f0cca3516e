//go:build integration

package md2cv

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/alnah/go-md2cv/internal/assets"
	"github.com/alnah/go-md2cv/internal/cv"
	"github.com/alnah/go-md2cv/internal/fidelity"
	"github.com/alnah/go-md2cv/internal/pdftext"
)

// exportPDF exports markdown and extracts the PDF's content.
func exportPDF(t *testing.T, in Input) (*ExportResult, fidelity.Content) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	var (
		res *ExportResult
		err error
	)
	withConverter(t, func(c *Converter) { res, err = c.Export(ctx, in) })
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if !bytes.HasPrefix(res.PDF, []byte("%PDF-")) {
		t.Fatalf("output is not a PDF: %q", res.PDF[:min(len(res.PDF), 16)])
	}

	content, err := fidelity.ExtractFromPDF(res.PDF)
	if err != nil {
		t.Fatalf("ExtractFromPDF() error = %v", err)
	}
	return res, content
}

// previewPage renders the interactive preview of md.
func previewPage(t *testing.T, md string) string {
	t.Helper()

	var (
		page string
		err  error
	)
	withConverter(t, func(c *Converter) {
		page, err = c.Preview(context.Background(), PreviewInput{Markdown: md})
	})
	if err != nil {
		t.Fatalf("Preview() error = %v", err)
	}
	return page
}

func TestIntegration_RoundTripFidelity(t *testing.T) {
	t.Parallel()

	md := fidelity.SampleCV()
	page := previewPage(t, md)
	preview, err := fidelity.ExtractFromPreview(page)
	if err != nil {
		t.Fatalf("ExtractFromPreview() error = %v", err)
	}

	_, pdfContent := exportPDF(t, Input{Markdown: md})

	result := fidelity.Compare(preview, pdfContent)
	if !result.Acceptable {
		t.Errorf("round trip not acceptable:\n%s", fidelity.Report(result))
	}
	if !result.NameMatch {
		t.Errorf("name mismatch: preview %q, pdf %q", preview.Name, pdfContent.Name)
	}
}

func TestIntegration_PageFormatInvariance(t *testing.T) {
	t.Parallel()

	md := fidelity.SampleCV()
	_, a4 := exportPDF(t, Input{Markdown: md, PageFormat: PageFormatA4})
	_, letter := exportPDF(t, Input{Markdown: md, PageFormat: PageFormatLetter})

	if sim := fidelity.Similarity(a4.FullText, letter.FullText); sim < 0.95 {
		t.Errorf("A4 vs Letter similarity = %.2f, want >= 0.95", sim)
	}
}

func TestIntegration_TemplateInvariance(t *testing.T) {
	t.Parallel()

	md := fidelity.SampleCV()
	_, classic := exportPDF(t, Input{Markdown: md, Template: "classic-professional"})
	_, tech := exportPDF(t, Input{Markdown: md, Template: "tech-professional"})

	if sim := fidelity.Similarity(classic.FullText, tech.FullText); sim < 0.95 {
		t.Errorf("template similarity = %.2f, want >= 0.95", sim)
	}
}

func TestIntegration_PageCounts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		sample    string
		wantPages func(int) bool
	}{
		{name: "minimal fits one page", sample: assets.SampleMinimal, wantPages: func(n int) bool { return n == 1 }},
		{name: "long spans pages", sample: assets.SampleLong, wantPages: func(n int) bool { return n > 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res, content := exportPDF(t, Input{Markdown: assets.MustLoadSample(tt.sample)})
			if !tt.wantPages(res.PageCount) {
				t.Errorf("PageCount = %d", res.PageCount)
			}
			if content.PageCount != res.PageCount {
				t.Errorf("extracted pages = %d, result pages = %d", content.PageCount, res.PageCount)
			}
		})
	}
}

// sectionTitles lists the section titles of md in source order, or main
// column first when mainFirst is set.
func sectionTitles(md string, mainFirst bool) []string {
	var main, sidebar, all []string
	for _, s := range cv.Route(cv.Extract(md).Body).Sections {
		if s.Title == "" {
			continue
		}
		all = append(all, s.Title)
		if s.Placement == cv.PlacementSidebar {
			sidebar = append(sidebar, s.Title)
		} else {
			main = append(main, s.Title)
		}
	}
	if mainFirst {
		return append(main, sidebar...)
	}
	return all
}

// requireSingleColumn fails unless every title is a line of its own in the
// PDF text and the titles come in the given order, as one column prints them.
func requireSingleColumn(t *testing.T, pdf []byte, titles []string) {
	t.Helper()

	text, err := pdftext.Text(pdf)
	if err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	lines := strings.Split(text, "\n")
	headingLine := func(title string) int {
		for i, line := range lines {
			if strings.EqualFold(strings.TrimSpace(line), title) {
				return i
			}
		}
		return -1
	}

	last, prev := -1, ""
	for _, title := range titles {
		i := headingLine(title)
		if i < 0 {
			t.Errorf("section %q is not a line of its own:\n%s", title, text)
			continue
		}
		if i < last {
			t.Errorf("section %q printed before %q", title, prev)
		}
		last, prev = i, title
	}
}

func TestIntegration_ATSExport(t *testing.T) {
	t.Parallel()

	md := fidelity.SampleCV()
	res, content := exportPDF(t, Input{Markdown: md, Quality: QualityATS, Layout: LayoutTwoColumn})
	if res.Quality != QualityATS {
		t.Errorf("Quality = %s", res.Quality)
	}
	if content.Name == "" {
		t.Error("ATS PDF lost the name")
	}
	requireSingleColumn(t, res.PDF, sectionTitles(md, false))
}

func TestIntegration_HTMLCapture(t *testing.T) {
	t.Parallel()

	md := fidelity.SampleCV()
	page := previewPage(t, md)

	_, fromHTML := exportPDF(t, Input{HTML: page})
	_, fromMarkdown := exportPDF(t, Input{Markdown: md})

	if sim := fidelity.Similarity(fromHTML.FullText, fromMarkdown.FullText); sim < 0.95 {
		t.Errorf("HTML vs markdown export similarity = %.2f, want >= 0.95", sim)
	}
}

func TestIntegration_InlineStylesCapture(t *testing.T) {
	t.Parallel()

	md := fidelity.SampleCV()
	page := previewPage(t, md)

	_, inlined := exportPDF(t, Input{HTML: page, InlineStyles: true})
	_, fromMarkdown := exportPDF(t, Input{Markdown: md})

	if inlined.Name == "" {
		t.Fatal("inlined export painted no name")
	}
	if sim := fidelity.Similarity(inlined.FullText, fromMarkdown.FullText); sim < 0.95 {
		t.Errorf("inlined vs markdown export similarity = %.2f, want >= 0.95", sim)
	}
}

func TestIntegration_InlineStylesATS(t *testing.T) {
	t.Parallel()

	md := fidelity.SampleCV()
	page := previewPage(t, md)

	res, content := exportPDF(t, Input{HTML: page, InlineStyles: true, Quality: QualityATS})
	if content.Name == "" {
		t.Fatal("inlined ATS export painted no name")
	}
	requireSingleColumn(t, res.PDF, sectionTitles(md, true))
}
