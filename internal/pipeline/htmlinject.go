package pipeline

import (
	"context"
	"strings"
)

// CSSInjector places a stylesheet into a rendered CV document.
type CSSInjector interface {
	InjectCSS(ctx context.Context, page, css string) string
}

// CSSInjection embeds the sheet as an inline <style> element.
type CSSInjection struct{}

// InjectCSS returns page with css embedded. The element lands before
// </head>, else right after the opening <body> tag, else at the start.
func (CSSInjection) InjectCSS(ctx context.Context, page, css string) string {
	if css == "" || ctx.Err() != nil {
		return page
	}
	block := "<style>" + sanitizeCSS(css) + "</style>"
	at := styleAnchor(page)
	return page[:at] + block + page[at:]
}

// styleAnchor finds the byte offset where the style element goes.
func styleAnchor(page string) int {
	lower := strings.ToLower(page)
	if i := strings.Index(lower, "</head>"); i >= 0 {
		return i
	}
	if i := strings.Index(lower, "<body"); i >= 0 {
		if end := strings.IndexByte(page[i:], '>'); end >= 0 {
			return i + end + 1
		}
	}
	return 0
}

// sanitizeCSS keeps a sheet from terminating its <style> element.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

var _ CSSInjector = CSSInjection{}
