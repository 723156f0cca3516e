// Package fidelity extracts comparable CV content from the preview markup
// and from generated PDFs, and scores how closely the two agree.
package fidelity

import (
	"errors"
	"regexp"
	"strings"

	"github.com/alnah/go-md2cv/internal/assets"
)

// ErrExtract indicates content could not be read from a source.
var ErrExtract = errors.New("failed to extract CV content")

// Canonical section headings, in report order.
var canonicalSections = []string{
	"Professional Summary",
	"Experience",
	"Projects",
	"Skills",
	"Education",
	"Certifications",
	"Languages",
	"Awards",
}

// Contact is the contact information found in one source.
type Contact struct {
	Email     string
	Phone     string
	LinkedIn  string
	Portfolio string
	Location  string
}

// Content is the comparable form of one rendering.
type Content struct {
	Name     string
	Title    string
	Contact  Contact
	Sections map[string]string
	FullText string
	// PageCount is zero for preview content.
	PageCount int
}

var (
	emailPattern      = regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`)
	phonePattern      = regexp.MustCompile(`\+?\d{1,3}[-.\s]?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
	usPhonePattern    = regexp.MustCompile(`\+?1?[-\s]?\(?[0-9]{3}\)?[-\s]?[0-9]{3}[-\s]?[0-9]{4}`)
	linkedInPattern   = regexp.MustCompile(`linkedin\.com/in/[\w-]+`)
	linkedInLabel     = regexp.MustCompile(`(?i)LinkedIn[:\s]+(\w+)`)
	portfolioURL      = regexp.MustCompile(`https?://[\w.-]+\.\w+`)
	portfolioDomain   = regexp.MustCompile(`[\w-]+\.(?:design|dev|com)`)
	portfolioLabel    = regexp.MustCompile(`(?i)Portfolio[:\s]+([\w.-]+)`)
	portfolioPin      = regexp.MustCompile(`🌐\s*Portfolio`)
	designDomain      = regexp.MustCompile(`[\w-]+\.design`)
	devDomain         = regexp.MustCompile(`[\w-]+\.dev`)
	pinnedLocation    = regexp.MustCompile(`📍\s*([^,\n]+(?:,\s*[A-Z]{2})?)`)
	knownCityLocation = regexp.MustCompile(`(?:New York|San Francisco|Seattle|Boston|Austin|Los Angeles|Chicago)(?:,\s*[A-Z]{2})?`)
	stateLocation     = regexp.MustCompile(`[A-Z][a-z]+(?:,\s*[A-Z]{2})`)
	whitespace        = regexp.MustCompile(`\s+`)
)

// firstMatch returns the first hit among patterns, or "".
func firstMatch(text string, patterns ...*regexp.Regexp) string {
	for _, p := range patterns {
		if m := p.FindString(text); m != "" {
			return m
		}
	}
	return ""
}

func collapseSpace(s string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}

// SampleCV returns the reference CV used for round-trip checks.
func SampleCV() string {
	return assets.MustLoadSample(assets.SampleJaneSmith)
}
