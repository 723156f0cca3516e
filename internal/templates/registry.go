// Package templates holds the read-only catalogue of visual CV templates.
package templates

import (
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"github.com/alnah/go-md2cv/internal/cv"
	"github.com/alnah/go-md2cv/internal/yamlutil"
)

// DefaultID is returned by Get for unknown ids.
const DefaultID = "classic-professional"

//go:embed catalog.yaml
var catalogYAML []byte

// Sentinel errors for catalogue decoding.
var (
	ErrCatalogParse   = errors.New("failed to parse template catalogue")
	ErrCatalogInvalid = errors.New("invalid template catalogue")
)

// Colors is a template palette.
type Colors struct {
	Primary           string `yaml:"primary"`
	Secondary         string `yaml:"secondary"`
	Accent            string `yaml:"accent"`
	Text              string `yaml:"text"`
	SidebarBackground string `yaml:"sidebarBackground"`
}

// FontSizes is the typography scale.
type FontSizes struct {
	H1   string `yaml:"h1"`
	H2   string `yaml:"h2"`
	H3   string `yaml:"h3"`
	Body string `yaml:"body"`
}

// Typography holds font stacks and sizes.
type Typography struct {
	HeadingFont string    `yaml:"headingFont"`
	BodyFont    string    `yaml:"bodyFont"`
	Sizes       FontSizes `yaml:"sizes"`
}

// Spacing is the spacing scale.
type Spacing struct {
	SectionGap string `yaml:"sectionGap"`
	ItemGap    string `yaml:"itemGap"`
	Padding    string `yaml:"padding"`
}

// Template is an immutable visual style. Layout is the arrangement the
// template was designed for; any template renders in either layout.
type Template struct {
	ID          string     `yaml:"id"`
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Layout      cv.Layout  `yaml:"layout"`
	Colors      Colors     `yaml:"colors"`
	Typography  Typography `yaml:"typography"`
	Spacing     Spacing    `yaml:"spacing"`
}

// Registry looks templates up by id. It is safe for concurrent use since
// nothing mutates it after construction.
type Registry struct {
	ordered []Template
	byID    map[string]int
	def     int
}

type catalog struct {
	Templates []Template `yaml:"templates"`
}

// Parse builds a registry from a YAML catalogue. The catalogue must
// contain DefaultID.
func Parse(data []byte) (*Registry, error) {
	var c catalog
	if err := yamlutil.UnmarshalStrict(data, &c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogParse, err)
	}

	r := &Registry{byID: make(map[string]int, len(c.Templates)), def: -1}
	for i, t := range c.Templates {
		if err := t.validate(); err != nil {
			return nil, fmt.Errorf("%w: templates[%d]: %v", ErrCatalogInvalid, i, err)
		}
		if _, dup := r.byID[t.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrCatalogInvalid, t.ID)
		}
		r.byID[t.ID] = len(r.ordered)
		r.ordered = append(r.ordered, t)
		if t.ID == DefaultID {
			r.def = len(r.ordered) - 1
		}
	}
	if r.def < 0 {
		return nil, fmt.Errorf("%w: missing default template %q", ErrCatalogInvalid, DefaultID)
	}
	return r, nil
}

var builtin = sync.OnceValue(func() *Registry {
	r, err := Parse(catalogYAML)
	if err != nil {
		panic(fmt.Sprintf("templates: embedded catalogue: %v", err))
	}
	return r
})

// Builtin returns the registry of embedded templates.
func Builtin() *Registry {
	return builtin()
}

// Get returns the template for id, or the default template when id is
// unknown.
func (r *Registry) Get(id string) Template {
	if i, ok := r.byID[id]; ok {
		return r.ordered[i]
	}
	return r.ordered[r.def]
}

// Has reports whether id is registered.
func (r *Registry) Has(id string) bool {
	_, ok := r.byID[id]
	return ok
}

// Default returns the fallback template.
func (r *Registry) Default() Template {
	return r.ordered[r.def]
}

// List returns every template in registration order.
func (r *Registry) List() []Template {
	out := make([]Template, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// ListByLayout returns the templates designed for layout.
func (r *Registry) ListByLayout(layout cv.Layout) []Template {
	var out []Template
	for _, t := range r.ordered {
		if t.Layout == layout {
			out = append(out, t)
		}
	}
	return out
}

// IDs returns every template id in registration order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.ordered))
	for i, t := range r.ordered {
		ids[i] = t.ID
	}
	return ids
}

func (t Template) validate() error {
	if t.ID == "" {
		return errors.New("id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("%s: name is required", t.ID)
	}
	if !t.Layout.Valid() {
		return fmt.Errorf("%s: invalid layout %q", t.ID, t.Layout)
	}
	return nil
}
