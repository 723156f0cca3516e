package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"

	"github.com/alnah/go-md2cv/internal/assets"
	"github.com/alnah/go-md2cv/internal/cv"
	"github.com/alnah/go-md2cv/internal/templates"
)

// Sentinel errors for rendering.
var (
	ErrRender         = errors.New("failed to render CV")
	ErrTemplateLoad   = errors.New("failed to load HTML template")
	ErrTemplateRender = errors.New("failed to execute HTML template")
)

// RenderInput is one CV to lay out.
type RenderInput struct {
	Document cv.Document
	Layout   cv.Layout
	Template templates.Template
}

// Fragment is a rendered .cv-document element plus what produced it.
type Fragment struct {
	HTML     string
	Layout   cv.Layout
	Template templates.Template
	Document cv.Document
	// Sections is the routing of the body, in source order.
	Sections []cv.Section
	// Vars are the template properties followed by headshot sizing.
	Vars []templates.CSSVar
}

// Renderer lays CV documents out as HTML and wraps them into pages.
type Renderer struct {
	converter HTMLConverter
	injector  CSSInjector
	bundler   *CSSBundler

	cvTmpl      *template.Template
	previewTmpl *template.Template
	exportTmpl  *template.Template
}

// NewRenderer parses the page templates once. A nil converter selects
// the goldmark converter.
func NewRenderer(loader assets.AssetLoader, converter HTMLConverter) (*Renderer, error) {
	if converter == nil {
		converter = NewGoldmarkConverter()
	}

	bundler, err := NewCSSBundler(loader)
	if err != nil {
		return nil, err
	}

	r := &Renderer{
		converter: converter,
		injector:  &CSSInjection{},
		bundler:   bundler,
	}
	for name, dst := range map[string]**template.Template{
		assets.TemplateCV:      &r.cvTmpl,
		assets.TemplatePreview: &r.previewTmpl,
		assets.TemplateExport:  &r.exportTmpl,
	} {
		src, err := loader.LoadTemplate(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrTemplateLoad, name, err)
		}
		t, err := template.New(name).Parse(src)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrTemplateLoad, name, err)
		}
		*dst = t
	}
	return r, nil
}

type cvData struct {
	LayoutClass string
	TemplateID  string
	Style       template.CSS
	Name        string
	Title       string
	Contacts    []template.HTML
	Headshot    *headshotData
	TwoColumn   bool
	Main        template.HTML
	Sidebar     template.HTML
}

type headshotData struct {
	Shape string
	Src   template.URL
	Alt   string
	Style template.CSS
}

// Render lays doc out in the requested layout. An invalid layout falls
// back to the default one.
func (r *Renderer) Render(ctx context.Context, in RenderInput) (*Fragment, error) {
	layout := in.Layout
	if !layout.Valid() {
		layout = cv.DefaultLayout
	}
	doc := in.Document
	routed := cv.Route(doc.Body)
	opts := FragmentOptions{SuppressHeading: doc.Name}

	data := cvData{
		LayoutClass: layout.CSSClass(),
		TemplateID:  in.Template.ID,
		Name:        doc.Name,
		Title:       doc.Title,
		TwoColumn:   layout == cv.LayoutTwoColumn,
	}

	for _, line := range doc.ContactLines {
		h, err := r.converter.ToInlineHTML(ctx, line)
		if err != nil {
			return nil, fmt.Errorf("%w: contact: %v", ErrRender, err)
		}
		data.Contacts = append(data.Contacts, trustedHTML(h))
	}

	vars := in.Template.Vars()
	if doc.Headshot.Present() {
		s := doc.Headshot.ResolveStyling(layout)
		data.Headshot = &headshotData{
			Shape: doc.Headshot.Shape.String(),
			Src:   template.URL(cv.ValidateImageURL(doc.Headshot.Src)), // #nosec G203 -- scheme checked by ValidateImageURL
			Alt:   doc.Headshot.AltText(),
			Style: trustedCSS(fmt.Sprintf("width: %s; height: %s; border-radius: %s; object-fit: %s;",
				s.Width, s.Height, s.BorderRadius, s.ObjectFit)),
		}
		vars = append(vars,
			templates.CSSVar{Name: "--headshot-width", Value: s.Width},
			templates.CSSVar{Name: "--headshot-height", Value: s.Height},
			templates.CSSVar{Name: "--headshot-border-radius", Value: s.BorderRadius},
			templates.CSSVar{Name: "--headshot-object-fit", Value: s.ObjectFit},
		)
	}
	data.Style = trustedCSS(templates.Declarations(vars, " "))

	if data.TwoColumn {
		main, err := r.converter.ToHTML(ctx, routed.Main, opts)
		if err != nil {
			return nil, fmt.Errorf("%w: main column: %v", ErrRender, err)
		}
		sidebar, err := r.converter.ToHTML(ctx, routed.Sidebar, FragmentOptions{
			SuppressHeading: doc.Name,
			DropH1:          true,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: sidebar: %v", ErrRender, err)
		}
		data.Main = trustedHTML(main)
		data.Sidebar = trustedHTML(sidebar)
	} else {
		main, err := r.converter.ToHTML(ctx, doc.Body, opts)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRender, err)
		}
		data.Main = trustedHTML(main)
	}

	var buf bytes.Buffer
	if err := r.cvTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}

	return &Fragment{
		HTML:     buf.String(),
		Layout:   layout,
		Template: in.Template,
		Document: doc,
		Sections: routed.Sections,
		Vars:     vars,
	}, nil
}

// Stylesheet bundles the CSS frag needs for the given consumer.
func (r *Renderer) Stylesheet(frag *Fragment, opts BundleOptions) (string, error) {
	return r.bundler.Bundle(frag, opts)
}

// trustedHTML marks converter output as safe. goldmark runs without
// html.WithUnsafe, so raw HTML in the source is already escaped.
func trustedHTML(s string) template.HTML {
	return template.HTML(s) // #nosec G203 -- raw HTML escaped by goldmark
}

// trustedCSS marks declarations built from catalogue and layout values.
func trustedCSS(s string) template.CSS {
	return template.CSS(s) // #nosec G203 -- values come from the embedded catalogue
}
