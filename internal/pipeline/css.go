package pipeline

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/alnah/go-md2cv/internal/assets"
	"github.com/alnah/go-md2cv/internal/cv"
	"github.com/alnah/go-md2cv/internal/templates"
)

// ErrStyleLoad indicates a stylesheet could not be loaded.
var ErrStyleLoad = errors.New("failed to load stylesheet")

// BundleMode selects the consumer of a CSS bundle.
type BundleMode int

const (
	// BundlePreview keeps custom properties and adds preview chrome.
	BundlePreview BundleMode = iota
	// BundleExport resolves every known variable to its literal value and
	// adds print rules.
	BundleExport
	// BundleInlined is for markup carrying its computed styles inline. Only
	// print rules and, when asked, the ATS sheet are added.
	BundleInlined
)

// BundleOptions configures CSS assembly.
type BundleOptions struct {
	Mode BundleMode
	// ATS appends the text-dense sheet (export and inlined only).
	ATS bool
	// Extra is appended last so it can override anything before it.
	Extra string
}

// CSSBundler assembles stylesheets from assets.
type CSSBundler struct {
	loader    assets.AssetLoader
	highlight string
}

// NewCSSBundler creates a bundler reading sheets through loader.
func NewCSSBundler(loader assets.AssetLoader) (*CSSBundler, error) {
	highlight, err := highlightCSS()
	if err != nil {
		return nil, err
	}
	return &CSSBundler{loader: loader, highlight: highlight}, nil
}

// Bundle builds the stylesheet for frag. frag may be nil in BundleInlined
// mode.
func (b *CSSBundler) Bundle(frag *Fragment, opts BundleOptions) (string, error) {
	var names []string
	if opts.Mode != BundleInlined {
		names = append(names, assets.StyleBase, layoutStyle(frag.Layout))
	}
	switch opts.Mode {
	case BundlePreview:
		names = append(names, assets.StylePreview)
	case BundleExport, BundleInlined:
		names = append(names, assets.StylePrint)
		if opts.ATS {
			names = append(names, assets.StyleATS)
		}
	}

	var sb strings.Builder
	if opts.Mode == BundlePreview {
		fmt.Fprintf(&sb, ":root {\n  %s\n}\n\n", templates.Declarations(frag.Vars, "\n  "))
	}
	for i, name := range names {
		css, err := b.loader.LoadStyle(name)
		if err != nil {
			return "", fmt.Errorf("%w: %s: %v", ErrStyleLoad, name, err)
		}
		sb.WriteString(css)
		sb.WriteString("\n")
		if i == 1 && opts.Mode != BundleInlined {
			sb.WriteString(b.highlight)
			sb.WriteString("\n")
		}
	}
	if opts.Extra != "" {
		sb.WriteString(opts.Extra)
		sb.WriteString("\n")
	}

	if opts.Mode == BundleExport {
		return ResolveVariables(sb.String(), varMap(frag.Vars)), nil
	}
	return sb.String(), nil
}

func layoutStyle(l cv.Layout) string {
	if l == cv.LayoutTwoColumn {
		return assets.StyleTwoColumn
	}
	return assets.StyleSingleColumn
}

// varRef matches var(--name) and var(--name, fallback) without nested parens.
var varRef = regexp.MustCompile(`var\(\s*(--[A-Za-z0-9_-]+)\s*(?:,\s*([^()]*))?\)`)

// maxVarPasses bounds substitution of values that reference other vars.
const maxVarPasses = 4

// ResolveVariables replaces var() references with literal values. Unknown
// names use their fallback when one is given and are left alone otherwise.
func ResolveVariables(css string, vars map[string]string) string {
	for range maxVarPasses {
		changed := false
		css = varRef.ReplaceAllStringFunc(css, func(ref string) string {
			m := varRef.FindStringSubmatch(ref)
			if v, ok := vars[m[1]]; ok && v != "" {
				changed = true
				return v
			}
			if fallback := strings.TrimSpace(m[2]); fallback != "" {
				changed = true
				return fallback
			}
			return ref
		})
		if !changed {
			break
		}
	}
	return css
}

func varMap(vars []templates.CSSVar) map[string]string {
	m := make(map[string]string, len(vars))
	for _, v := range vars {
		m[v.Name] = v.Value
	}
	return m
}

// highlightCSS renders chroma classes for fenced code blocks.
func highlightCSS() (string, error) {
	var sb strings.Builder
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&sb, styles.Get(highlightStyle)); err != nil {
		return "", fmt.Errorf("%w: highlight: %v", ErrStyleLoad, err)
	}
	return sb.String(), nil
}
