package pipeline

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

// ErrRootNotFound indicates the page has no CV element to export.
var ErrRootNotFound = errors.New("CV preview element not found")

// rootSelectors are tried in order; the first match is the export root.
var rootSelectors = []string{".cv-pdf-export", ".cv-preview-content", ".cv-document"}

// FindRoot returns the element exports and comparisons read from, or nil.
func FindRoot(doc *goquery.Document) *goquery.Selection {
	for _, sel := range rootSelectors {
		if s := doc.Find(sel).First(); s.Length() > 0 {
			return s
		}
	}
	return nil
}

var capturePolicy = sync.OnceValue(func() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class", "style").Globally()
	p.AllowDataURIImages()
	return p
})

// Capture sanitizes a client-supplied page and returns the markup of its
// CV element. Scripts, event handlers and unsafe URLs are removed.
func Capture(page string) (string, error) {
	clean := capturePolicy().Sanitize(page)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(clean))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRootNotFound, err)
	}
	root := FindRoot(doc)
	if root == nil {
		return "", ErrRootNotFound
	}

	if root.HasClass("cv-document") {
		return goquery.OuterHtml(root)
	}
	return root.Html()
}

// hidingProps keep the preview's export copy off screen. Inlined computed
// styles hand them down to every descendant.
var hidingProps = map[string]bool{
	"visibility":     true,
	"pointer-events": true,
}

// Unhide strips hiding declarations from the style attributes of captured
// markup so the copy paints once it leaves the preview page.
func Unhide(markup string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return "", fmt.Errorf("parsing captured markup: %w", err)
	}
	doc.Find("[style]").Each(func(_ int, s *goquery.Selection) {
		style, _ := s.Attr("style")
		s.SetAttr("style", dropDeclarations(style, hidingProps))
	})
	return doc.Find("body").Html()
}

// dropDeclarations removes the named properties from an inline style.
func dropDeclarations(style string, props map[string]bool) string {
	decls := strings.Split(style, ";")
	kept := decls[:0]
	for _, d := range decls {
		name, _, _ := strings.Cut(d, ":")
		if props[strings.ToLower(strings.TrimSpace(name))] {
			continue
		}
		kept = append(kept, d)
	}
	return strings.Join(kept, ";")
}
