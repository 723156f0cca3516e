package fidelity

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-md2cv/internal/assets"
	"github.com/alnah/go-md2cv/internal/cv"
	"github.com/alnah/go-md2cv/internal/pipeline"
	"github.com/alnah/go-md2cv/internal/templates"
)

func renderPreview(t *testing.T, markdown string, layout cv.Layout) string {
	t.Helper()

	r, err := pipeline.NewRenderer(assets.NewEmbeddedLoader(), nil)
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	frag, err := r.Render(context.Background(), pipeline.RenderInput{
		Document: cv.Extract(markdown),
		Layout:   layout,
		Template: templates.Builtin().Default(),
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	page, err := r.PreviewPage(context.Background(), frag, pipeline.PreviewOptions{
		Page: pipeline.PageGeometry{Width: "8.5in", Height: "11in"},
	})
	if err != nil {
		t.Fatalf("PreviewPage() error = %v", err)
	}
	return page
}

func TestExtractFromPreview_Sample(t *testing.T) {
	t.Parallel()

	for _, layout := range cv.Layouts() {
		t.Run(string(layout), func(t *testing.T) {
			t.Parallel()

			c, err := ExtractFromPreview(renderPreview(t, SampleCV(), layout))
			if err != nil {
				t.Fatalf("ExtractFromPreview() error = %v", err)
			}

			if c.Name != "Jane Smith" || c.Title != "Senior Product Designer" {
				t.Errorf("Name/Title = %q/%q", c.Name, c.Title)
			}
			want := Contact{
				Email:     "jane.smith@email.com",
				Phone:     "+1 (555) 123-4567",
				LinkedIn:  "linkedin.com/in/janesmith",
				Portfolio: "janesmith.design",
				Location:  "San Francisco, CA",
			}
			if c.Contact != want {
				t.Errorf("Contact = %+v, want %+v", c.Contact, want)
			}
			for _, name := range []string{"Professional Summary", "Experience", "Skills", "Education", "Certifications"} {
				if c.Sections[name] == "" {
					t.Errorf("section %q missing", name)
				}
			}
			if !strings.Contains(c.Sections["Experience"], "Brightwave Labs") ||
				!strings.Contains(c.Sections["Experience"], "Pixel Forge") {
				t.Errorf("Experience should span every role: %q", c.Sections["Experience"])
			}
			if strings.Contains(c.Sections["Experience"], "Figma") {
				t.Error("Experience leaked into Skills")
			}
			if strings.Contains(c.FullText, "  ") || strings.Contains(c.FullText, "--primary-color") {
				t.Errorf("FullText not normalized: %q", c.FullText)
			}
		})
	}
}

func TestExtractFromPreview_SelfComparison(t *testing.T) {
	t.Parallel()

	c, err := ExtractFromPreview(renderPreview(t, SampleCV(), cv.LayoutTwoColumn))
	if err != nil {
		t.Fatalf("ExtractFromPreview() error = %v", err)
	}
	if r := Compare(c, c); !r.Acceptable {
		t.Errorf("self comparison not acceptable:\n%s", Report(r))
	}
}

func TestExtractFromPreview_NoRoot(t *testing.T) {
	t.Parallel()

	_, err := ExtractFromPreview("<p>nothing here</p>")
	if !errors.Is(err, ErrExtract) {
		t.Errorf("ExtractFromPreview() error = %v, want ErrExtract", err)
	}
}

func TestBlockText(t *testing.T) {
	t.Parallel()

	c, err := ExtractFromPreview(`<div class="cv-document"><p>one</p><p>two</p><ul><li>a</li><li>b</li></ul><style>.x{}</style></div>`)
	if err != nil {
		t.Fatalf("ExtractFromPreview() error = %v", err)
	}
	if c.FullText != "one two a b" {
		t.Errorf("FullText = %q, want %q", c.FullText, "one two a b")
	}
}
