package cv

import (
	"regexp"
	"strings"
)

// Token patterns of the CV dialect.
var (
	imagePattern   = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+)\)`)
	namePattern    = regexp.MustCompile(`(?m)^# (.+)$`)
	boldPattern    = regexp.MustCompile(`\*\*(.+?)\*\*`)
	headingPattern = regexp.MustCompile(`^(#{1,6})\s+(.+?)\s*#*\s*$`)
	bulletPattern  = regexp.MustCompile(`^\s*(?:[-*+]|\d+[.)])\s+`)
)

// titleScanLines bounds how far down the title search looks.
const titleScanLines = 5

// sectionMarker starts a routable section.
const sectionMarker = "## "

// contactHeading identifies the contact block by substring.
const contactHeading = "Contact Information"

// contactGlyphs mark a non-bullet line as contact data.
var contactGlyphs = []string{"📧", "✉", "📱", "📞", "☎", "🔗", "🌐", "📍", "💼"}

// heading is a parsed ATX heading line.
type heading struct {
	level int
	text  string
}

// parseHeading reports whether line is an ATX heading.
func parseHeading(line string) (heading, bool) {
	m := headingPattern.FindStringSubmatch(line)
	if m == nil {
		return heading{}, false
	}
	return heading{level: len(m[1]), text: strings.TrimSpace(m[2])}, true
}

// isBullet reports whether line is a list item.
func isBullet(line string) bool {
	return bulletPattern.MatchString(line)
}

// stripBullet removes a leading list marker.
func stripBullet(line string) string {
	return bulletPattern.ReplaceAllString(line, "")
}

// hasContactGlyph reports whether line carries a known contact glyph.
func hasContactGlyph(line string) bool {
	for _, g := range contactGlyphs {
		if strings.Contains(line, g) {
			return true
		}
	}
	return false
}

// normalizeNewlines converts CRLF and CR line endings to LF.
func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
