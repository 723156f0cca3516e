package cv

import "strings"

// Placement is the column a section is routed to in the two-column layout.
type Placement int

const (
	PlacementMain Placement = iota
	PlacementSidebar
)

func (p Placement) String() string {
	if p == PlacementSidebar {
		return "sidebar"
	}
	return "main"
}

// Section titles routed to each column. Contact Information is absent on
// purpose: the header already shows it and the extractor strips it.
var (
	mainSections    = []string{"Professional Summary", "Experience", "Projects"}
	sidebarSections = []string{"Skills", "Education", "Certifications", "Languages"}
)

// Section is a run of markdown from a level-2 heading up to the next one.
// The leading section before any heading has an empty Title.
type Section struct {
	Title     string
	Content   string
	Placement Placement
}

// Routed holds the body split into the two column flows.
type Routed struct {
	Sections []Section
	Main     string
	Sidebar  string
}

// SplitSections cuts body at every "## " line. Each section is trimmed and
// empty ones are dropped; order is preserved.
func SplitSections(body string) []Section {
	var (
		sections []Section
		title    string
		buf      []string
	)

	flush := func() {
		content := strings.TrimSpace(strings.Join(buf, "\n"))
		if content != "" {
			sections = append(sections, Section{
				Title:     title,
				Content:   content,
				Placement: Classify(title),
			})
		}
		buf = buf[:0]
	}

	for _, line := range strings.Split(normalizeNewlines(body), "\n") {
		if strings.HasPrefix(line, sectionMarker) {
			flush()
			title = strings.TrimSpace(strings.TrimPrefix(line, sectionMarker))
		}
		buf = append(buf, line)
	}
	flush()

	return sections
}

// Classify routes a section title. The main list is checked first, then
// the sidebar list; matching is a case-sensitive substring test and the
// first hit wins. Anything else goes to main.
func Classify(title string) Placement {
	for _, name := range mainSections {
		if strings.Contains(title, name) {
			return PlacementMain
		}
	}
	for _, name := range sidebarSections {
		if strings.Contains(title, name) {
			return PlacementSidebar
		}
	}
	return PlacementMain
}

// Route splits body into sections and joins each column's sections with a
// blank line.
func Route(body string) Routed {
	sections := SplitSections(body)

	var main, sidebar []string
	for _, s := range sections {
		if s.Placement == PlacementSidebar {
			sidebar = append(sidebar, s.Content)
		} else {
			main = append(main, s.Content)
		}
	}

	return Routed{
		Sections: sections,
		Main:     strings.Join(main, "\n\n"),
		Sidebar:  strings.Join(sidebar, "\n\n"),
	}
}
