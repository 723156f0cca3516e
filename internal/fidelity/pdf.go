package fidelity

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/alnah/go-md2cv/internal/pdftext"
)

var (
	nameNoise  = regexp.MustCompile(`[^\w\s.-]`)
	titleNoise = regexp.MustCompile(`[^\w\s&|-]`)
)

// jobKeywords mark a line as a job title.
var jobKeywords = []string{
	"engineer", "developer", "designer", "manager", "director",
	"analyst", "consultant", "specialist", "architect", "lead",
}

// minSectionLen drops sections with no real content.
const minSectionLen = 10

// ExtractFromPDF reads comparable content from PDF bytes.
func ExtractFromPDF(data []byte) (Content, error) {
	text, err := pdftext.Text(data)
	if err != nil {
		return Content{}, fmt.Errorf("%w: %v", ErrExtract, err)
	}
	pages, err := pdftext.PageCount(data)
	if err != nil {
		return Content{}, fmt.Errorf("%w: %v", ErrExtract, err)
	}

	c := ContentFromText(text)
	c.PageCount = pages
	return c, nil
}

// ContentFromText structures text laid out one visual line per line.
func ContentFromText(text string) Content {
	lines := nonEmptyLines(text)
	flat := collapseSpace(text)

	return Content{
		Name:     pdfName(lines),
		Title:    pdfTitle(lines),
		Contact:  pdfContact(flat),
		Sections: pdfSections(lines),
		FullText: flat,
	}
}

func nonEmptyLines(text string) []string {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

func pdfName(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.TrimSpace(nameNoise.ReplaceAllString(lines[0], ""))
}

func pdfTitle(lines []string) string {
	if len(lines) < 2 {
		return ""
	}
	line := strings.TrimSpace(titleNoise.ReplaceAllString(lines[1], ""))
	lower := strings.ToLower(line)
	for _, k := range jobKeywords {
		if strings.Contains(lower, k) {
			return line
		}
	}
	return ""
}

func pdfContact(text string) Contact {
	return Contact{
		Email:     emailPattern.FindString(text),
		Phone:     phonePattern.FindString(text),
		LinkedIn:  firstMatch(text, linkedInPattern, linkedInLabel),
		Portfolio: firstMatch(text, portfolioURL, portfolioDomain, portfolioLabel),
		Location:  firstMatch(text, knownCityLocation, stateLocation),
	}
}

// pdfSections cuts the text at lines that are exactly a canonical heading.
// Headings are compared case-insensitively since print styles may
// upper-case them.
func pdfSections(lines []string) map[string]string {
	sections := make(map[string]string)

	current := ""
	var buf []string
	flush := func() {
		if current == "" {
			return
		}
		text := collapseSpace(strings.Join(buf, " "))
		if _, seen := sections[current]; !seen && len(text) > minSectionLen {
			sections[current] = text
		}
	}

	for _, line := range lines {
		if heading, ok := canonicalHeading(line); ok {
			flush()
			current, buf = heading, buf[:0]
			continue
		}
		buf = append(buf, line)
	}
	flush()

	return sections
}

func canonicalHeading(line string) (string, bool) {
	for _, h := range canonicalSections {
		if strings.EqualFold(strings.TrimSpace(line), h) {
			return h, true
		}
	}
	return "", false
}
