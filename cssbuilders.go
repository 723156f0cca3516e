package md2cv

import (
	"fmt"
	"strings"
)

// buildPageRuleCSS generates the @page rule matching the paper size and
// profile margins, so CSS-sized printing and PDF options agree.
func buildPageRuleCSS(format PageFormat, p qualityProfile) string {
	w, h := format.dimensions()
	return fmt.Sprintf(`
/* Page: %s */
@page {
  size: %s %s;
  margin: %s;
}
`, format, inches(w), inches(h), inches(p.margin))
}

// buildPageBreaksCSS keeps headings with their content and entries whole.
func buildPageBreaksCSS() string {
	return `
/* Page breaks: prevent heading alone at page bottom */
h1, h2, h3, h4, h5, h6,
.cv-section-title,
.cv-subsection-title {
  break-after: avoid;
  page-break-after: avoid;
  break-inside: avoid;
  page-break-inside: avoid;
}

/* Page breaks: orphan/widow control */
p, li, dd, dt, blockquote {
  orphans: 2;
  widows: 2;
}

/* Page breaks: keep the header block together */
.cv-header {
  break-inside: avoid;
  page-break-inside: avoid;
}
`
}

// buildInlinedATSCSS flattens captured markup for the ATS profile. Inline
// computed styles outrank plain sheet rules, hence the !important.
func buildInlinedATSCSS() string {
	return `
/* ATS: single column over inlined styles */
.cv-header,
.cv-header-text,
.cv-contact,
.contact-item,
.cv-content,
.cv-main-content,
.cv-sidebar {
  display: block !important;
  width: auto !important;
  max-width: none !important;
  grid-template-columns: none !important;
}

/* ATS: black text, no backgrounds */
.cv-document,
.cv-document * {
  color: #000000 !important;
  background: none !important;
  box-shadow: none !important;
}
`
}

// buildPrintCSS combines the rules every export document carries.
func buildPrintCSS(format PageFormat, q Quality) string {
	var b strings.Builder
	b.WriteString(buildPageRuleCSS(format, q.profile()))
	b.WriteString(buildPageBreaksCSS())
	return b.String()
}
