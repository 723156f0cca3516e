package cv

import "strings"

// Layout selects how the body is arranged on the page.
type Layout string

const (
	LayoutSingleColumn Layout = "single-column"
	LayoutTwoColumn    Layout = "two-column"
)

// DefaultLayout is used when no layout is requested.
const DefaultLayout = LayoutTwoColumn

// Layouts lists every supported layout.
func Layouts() []Layout {
	return []Layout{LayoutSingleColumn, LayoutTwoColumn}
}

// ParseLayout accepts the canonical names, case-insensitively.
func ParseLayout(s string) (Layout, bool) {
	switch Layout(strings.ToLower(strings.TrimSpace(s))) {
	case LayoutSingleColumn:
		return LayoutSingleColumn, true
	case LayoutTwoColumn:
		return LayoutTwoColumn, true
	}
	return "", false
}

// Valid reports whether l is a supported layout.
func (l Layout) Valid() bool {
	_, ok := ParseLayout(string(l))
	return ok
}

// CSSClass is the root class of the rendered document for this layout.
func (l Layout) CSSClass() string {
	if l == LayoutTwoColumn {
		return "two-column-cv"
	}
	return "single-column-cv"
}
