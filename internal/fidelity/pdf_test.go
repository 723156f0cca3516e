package fidelity

import (
	"errors"
	"strings"
	"testing"
)

const pdfLines = `Jane Smith
Senior Product Designer
📧 jane.smith@email.com 📱 +1 (555) 123-4567 🔗 linkedin.com/in/janesmith 📍 San Francisco, CA
PROFESSIONAL SUMMARY
Product designer with nine years of experience shaping products.
EXPERIENCE
Senior Product Designer | Brightwave Labs
Led the redesign of the onboarding flow
SKILLS
Figma, Sketch
EDUCATION
B.A.`

func TestContentFromText(t *testing.T) {
	t.Parallel()

	c := ContentFromText(pdfLines)

	if c.Name != "Jane Smith" {
		t.Errorf("Name = %q", c.Name)
	}
	if c.Title != "Senior Product Designer" {
		t.Errorf("Title = %q", c.Title)
	}

	wantContact := Contact{
		Email:     "jane.smith@email.com",
		Phone:     "+1 (555) 123-4567",
		LinkedIn:  "linkedin.com/in/janesmith",
		Portfolio: "email.com",
		Location:  "San Francisco, CA",
	}
	if c.Contact != wantContact {
		t.Errorf("Contact = %+v, want %+v", c.Contact, wantContact)
	}

	if got := c.Sections["Experience"]; got != "Senior Product Designer | Brightwave Labs Led the redesign of the onboarding flow" {
		t.Errorf("Experience = %q", got)
	}
	if got := c.Sections["Professional Summary"]; !strings.Contains(got, "nine years of experience") {
		t.Errorf("Professional Summary = %q", got)
	}
	if _, ok := c.Sections["Education"]; ok {
		t.Error("short Education section should be dropped")
	}
	if !strings.HasPrefix(c.FullText, "Jane Smith Senior Product Designer") || strings.Contains(c.FullText, "\n") {
		t.Errorf("FullText = %q", c.FullText)
	}
}

func TestPDFTitle_RequiresJobKeyword(t *testing.T) {
	t.Parallel()

	if got := pdfTitle([]string{"Jane Smith", "San Francisco, CA"}); got != "" {
		t.Errorf("pdfTitle() = %q, want empty", got)
	}
	if got := pdfTitle([]string{"Jane Smith", "Staff Engineer!"}); got != "Staff Engineer" {
		t.Errorf("pdfTitle() = %q", got)
	}
}

func TestExtractFromPDF_Invalid(t *testing.T) {
	t.Parallel()

	if _, err := ExtractFromPDF([]byte("garbage")); !errors.Is(err, ErrExtract) {
		t.Errorf("ExtractFromPDF() error = %v, want ErrExtract", err)
	}
}
