package fidelity

import (
	"regexp"
	"slices"
	"strings"
)

// Acceptance thresholds.
const (
	NameThreshold       = 0.9
	TitleThreshold      = 0.8
	OverallThreshold    = 0.85
	DefaultSectionFloor = 0.7
	minContactMatches   = 3
)

// sectionFloors override DefaultSectionFloor by substring of the
// lower-cased section name.
var sectionFloors = []struct {
	key   string
	floor float64
}{
	{"experience", 0.8},
	{"skills", 0.75},
	{"summary", 0.7},
}

// ContactResult holds per-field contact matches.
type ContactResult struct {
	Email     bool
	Phone     bool
	LinkedIn  bool
	Portfolio bool
	Location  bool
	// Overall requires an email match and at least three matching fields.
	Overall bool
}

// SectionResult scores one section.
type SectionResult struct {
	Similarity float64
	Acceptable bool
}

// Result is the outcome of comparing two renderings.
type Result struct {
	NameMatch  bool
	TitleMatch bool
	Contact    ContactResult
	Sections   map[string]SectionResult
	Similarity float64
	Acceptable bool
}

// Compare scores b against a.
func Compare(a, b Content) Result {
	r := Result{
		NameMatch:  FuzzyMatch(a.Name, b.Name, NameThreshold),
		TitleMatch: FuzzyMatch(a.Title, b.Title, TitleThreshold),
		Contact:    compareContact(a.Contact, b.Contact),
		Sections:   compareSections(a.Sections, b.Sections),
		Similarity: Similarity(a.FullText, b.FullText),
	}

	r.Acceptable = r.NameMatch && r.Contact.Overall && r.Similarity >= OverallThreshold
	for _, s := range r.Sections {
		r.Acceptable = r.Acceptable && s.Acceptable
	}
	return r
}

// FuzzyMatch reports whether Similarity(a, b) reaches threshold.
func FuzzyMatch(a, b string, threshold float64) bool {
	return Similarity(a, b) >= threshold
}

var nonWord = regexp.MustCompile(`[^\w\s]`)

// Similarity is the Jaccard index of the normalized word sets of a and b.
// Two empty texts are identical; one empty text shares nothing.
func Similarity(a, b string) float64 {
	wa, wb := wordSet(a), wordSet(b)
	if len(wa) == 0 && len(wb) == 0 {
		return 1
	}
	if len(wa) == 0 || len(wb) == 0 {
		return 0
	}

	inter := 0
	for w := range wa {
		if wb[w] {
			inter++
		}
	}
	union := len(wa) + len(wb) - inter
	return float64(inter) / float64(union)
}

func wordSet(s string) map[string]bool {
	norm := strings.ToLower(s)
	norm = nonWord.ReplaceAllString(norm, " ")
	set := make(map[string]bool)
	for _, w := range strings.Fields(norm) {
		set[w] = true
	}
	return set
}

func compareContact(a, b Contact) ContactResult {
	r := ContactResult{
		Email:     normalizeAndCompare(a.Email, b.Email),
		Phone:     digits(a.Phone) == digits(b.Phone),
		LinkedIn:  urlsOverlap(a.LinkedIn, b.LinkedIn),
		Portfolio: urlsOverlap(a.Portfolio, b.Portfolio),
		Location:  normalizeAndCompare(a.Location, b.Location),
	}

	matches := 0
	for _, ok := range []bool{r.Email, r.Phone, r.LinkedIn, r.Portfolio, r.Location} {
		if ok {
			matches++
		}
	}
	r.Overall = r.Email && matches >= minContactMatches
	return r
}

func compareSections(a, b map[string]string) map[string]SectionResult {
	out := make(map[string]SectionResult)
	for _, name := range sectionNames(a, b) {
		sim := Similarity(a[name], b[name])
		out[name] = SectionResult{Similarity: sim, Acceptable: sim >= sectionFloor(name)}
	}
	return out
}

func sectionFloor(name string) float64 {
	lower := strings.ToLower(name)
	for _, f := range sectionFloors {
		if strings.Contains(lower, f.key) {
			return f.floor
		}
	}
	return DefaultSectionFloor
}

// sectionNames lists the union of names, canonical ones first.
func sectionNames(maps ...map[string]string) []string {
	seen := make(map[string]bool)
	var names, extra []string
	for _, h := range canonicalSections {
		for _, m := range maps {
			if _, ok := m[h]; ok && !seen[h] {
				seen[h] = true
				names = append(names, h)
			}
		}
	}
	for _, m := range maps {
		for k := range m {
			if !seen[k] {
				seen[k] = true
				extra = append(extra, k)
			}
		}
	}
	slices.Sort(extra)
	return append(names, extra...)
}

var nonAlnum = regexp.MustCompile(`[^\w]`)

// normalizeAndCompare lower-cases, drops punctuation and spacing, then
// accepts equality or containment either way. Empty values never match.
func normalizeAndCompare(a, b string) bool {
	na := nonAlnum.ReplaceAllString(strings.ToLower(a), "")
	nb := nonAlnum.ReplaceAllString(strings.ToLower(b), "")
	if na == "" || nb == "" {
		return false
	}
	return strings.Contains(na, nb) || strings.Contains(nb, na)
}

func digits(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func normalizeURL(u string) string {
	u = strings.ToLower(u)
	u = strings.TrimPrefix(u, "https://")
	u = strings.TrimPrefix(u, "http://")
	u = strings.TrimPrefix(u, "www.")
	return strings.TrimSuffix(u, "/")
}

// urlsOverlap accepts either normalized URL containing the other, so an
// absent value matches anything.
func urlsOverlap(a, b string) bool {
	na, nb := normalizeURL(a), normalizeURL(b)
	return strings.Contains(na, nb) || strings.Contains(nb, na)
}
