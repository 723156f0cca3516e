package fidelity

import (
	"fmt"
	"strings"
)

func mark(ok bool) string {
	if ok {
		return "✅"
	}
	return "❌"
}

// Report renders r for humans.
func Report(r Result) string {
	var sb strings.Builder

	sb.WriteString("=== CV Content Comparison Report ===\n\n")
	fmt.Fprintf(&sb, "Overall Similarity: %.1f%%\n", r.Similarity*100)
	fmt.Fprintf(&sb, "Name Match: %s\n", mark(r.NameMatch))
	fmt.Fprintf(&sb, "Title Match: %s\n\n", mark(r.TitleMatch))

	sb.WriteString("--- Contact Information ---\n")
	fmt.Fprintf(&sb, "Email: %s\n", mark(r.Contact.Email))
	fmt.Fprintf(&sb, "Phone: %s\n", mark(r.Contact.Phone))
	fmt.Fprintf(&sb, "LinkedIn: %s\n", mark(r.Contact.LinkedIn))
	fmt.Fprintf(&sb, "Portfolio: %s\n", mark(r.Contact.Portfolio))
	fmt.Fprintf(&sb, "Location: %s\n\n", mark(r.Contact.Location))

	sb.WriteString("--- Sections ---\n")
	names := make(map[string]string, len(r.Sections))
	for name := range r.Sections {
		names[name] = ""
	}
	for _, name := range sectionNames(names) {
		s := r.Sections[name]
		fmt.Fprintf(&sb, "%s: %.1f%% %s\n", name, s.Similarity*100, mark(s.Acceptable))
	}

	result := "❌ FAIL"
	if r.Acceptable {
		result = "✅ PASS"
	}
	fmt.Fprintf(&sb, "\nFinal Result: %s", result)

	return sb.String()
}
