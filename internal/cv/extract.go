package cv

import "strings"

// Placeholders used when the source omits a field.
const (
	DefaultName  = "Your Name"
	DefaultTitle = "Professional Title"
)

// Document is the parsed form of one CV.
type Document struct {
	Name         string
	Title        string
	ContactLines []string
	Headshot     Headshot
	// Body is the markdown left after title, headshot, contact block and
	// name line are stripped.
	Body string
}

// Extract parses CV markdown. It never fails: missing fields fall back to
// placeholders or empty values.
func Extract(markdown string) Document {
	src := normalizeNewlines(markdown)

	// The title window counts lines of the unmodified source.
	title, rest := takeTitle(src)
	headshot, rest := takeHeadshot(rest)
	contacts, rest := takeContact(rest)
	name, rest := takeName(rest)

	return Document{
		Name:         name,
		Title:        title,
		ContactLines: contacts,
		Headshot:     headshot,
		Body:         strings.TrimSpace(rest),
	}
}

// ExtractName returns the first level-1 heading, or the placeholder.
func ExtractName(markdown string) string {
	m := namePattern.FindStringSubmatch(normalizeNewlines(markdown))
	if m == nil {
		return DefaultName
	}
	if name := strings.TrimSpace(m[1]); name != "" {
		return name
	}
	return DefaultName
}

// takeHeadshot consumes the first image and one trailing newline.
func takeHeadshot(src string) (Headshot, string) {
	loc := imagePattern.FindStringSubmatchIndex(src)
	if loc == nil {
		return Headshot{}, src
	}

	alt := src[loc[2]:loc[3]]
	h := Headshot{
		Shape: shapeFromAlt(alt),
		Src:   strings.TrimSpace(src[loc[4]:loc[5]]),
		Alt:   alt,
	}

	end := loc[1]
	if end < len(src) && src[end] == '\n' {
		end++
	}
	return h, src[:loc[0]] + src[end:]
}

// takeTitle consumes the first bold span within the first lines. The rest
// of that line survives; a line holding only the title is dropped.
func takeTitle(src string) (string, string) {
	lines := strings.Split(src, "\n")
	limit := min(len(lines), titleScanLines)

	for i := range limit {
		loc := boldPattern.FindStringSubmatchIndex(lines[i])
		if loc == nil {
			continue
		}
		title := strings.TrimSpace(lines[i][loc[2]:loc[3]])
		residue := strings.TrimRight(lines[i][:loc[0]]+lines[i][loc[1]:], " \t")

		if strings.TrimSpace(residue) == "" {
			lines = append(lines[:i], lines[i+1:]...)
		} else {
			lines[i] = residue
		}
		if title == "" {
			title = DefaultTitle
		}
		return title, strings.Join(lines, "\n")
	}
	return DefaultTitle, src
}

// takeContact consumes the Contact Information section, heading included,
// and returns its contact lines.
func takeContact(src string) ([]string, string) {
	lines := strings.Split(src, "\n")

	start, level := -1, 0
	for i, line := range lines {
		h, ok := parseHeading(line)
		if ok && strings.Contains(h.text, contactHeading) {
			start, level = i, h.level
			break
		}
	}
	if start < 0 {
		return nil, src
	}

	end := len(lines)
	for i := start + 1; i < len(lines); i++ {
		if h, ok := parseHeading(lines[i]); ok && h.level <= level {
			end = i
			break
		}
	}

	var contacts []string
	for _, line := range lines[start+1 : end] {
		if !isBullet(line) && !hasContactGlyph(line) {
			continue
		}
		if c := strings.TrimSpace(stripBullet(line)); c != "" {
			contacts = append(contacts, c)
		}
	}

	remaining := append(lines[:start:start], lines[end:]...)
	return contacts, strings.Join(remaining, "\n")
}

// takeName reads the name and drops its heading line from the body.
func takeName(src string) (string, string) {
	loc := namePattern.FindStringSubmatchIndex(src)
	if loc == nil {
		return DefaultName, src
	}
	name := strings.TrimSpace(src[loc[2]:loc[3]])
	if name == "" {
		return DefaultName, src
	}

	end := loc[1]
	if end < len(src) && src[end] == '\n' {
		end++
	}
	return name, src[:loc[0]] + src[end:]
}
