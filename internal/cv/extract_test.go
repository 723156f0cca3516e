package cv

import (
	"slices"
	"strings"
	"testing"
)

const sampleCV = `# Jane Smith
**Senior Product Designer**

![circular](https://example.com/jane.jpg)

## Contact Information
- 📧 jane.smith@email.com
- 📱 +1 (555) 123-4567
- 🔗 [LinkedIn](https://linkedin.com/in/janesmith)
📍 San Francisco, CA

## Professional Summary
Designer with 8 years of experience.

## Skills
- Figma
- User Research
`

func TestExtract_SampleCV(t *testing.T) {
	t.Parallel()

	doc := Extract(sampleCV)

	if doc.Name != "Jane Smith" {
		t.Errorf("Name = %q, want %q", doc.Name, "Jane Smith")
	}
	if doc.Title != "Senior Product Designer" {
		t.Errorf("Title = %q, want %q", doc.Title, "Senior Product Designer")
	}

	wantContacts := []string{
		"📧 jane.smith@email.com",
		"📱 +1 (555) 123-4567",
		"🔗 [LinkedIn](https://linkedin.com/in/janesmith)",
		"📍 San Francisco, CA",
	}
	if !slices.Equal(doc.ContactLines, wantContacts) {
		t.Errorf("ContactLines = %q, want %q", doc.ContactLines, wantContacts)
	}

	if doc.Headshot.Shape != ShapeCircular {
		t.Errorf("Headshot.Shape = %v, want circular", doc.Headshot.Shape)
	}
	if doc.Headshot.Src != "https://example.com/jane.jpg" {
		t.Errorf("Headshot.Src = %q", doc.Headshot.Src)
	}

	for _, stripped := range []string{"# Jane Smith", "**Senior Product Designer**", "![circular]", "Contact Information", "jane.smith@email.com"} {
		if strings.Contains(doc.Body, stripped) {
			t.Errorf("Body still contains %q:\n%s", stripped, doc.Body)
		}
	}
	if !strings.HasPrefix(doc.Body, "## Professional Summary") {
		t.Errorf("Body should start with first section, got:\n%s", doc.Body)
	}
}

func TestExtract_Placeholders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		wantName  string
		wantTitle string
	}{
		{name: "empty input", input: "", wantName: DefaultName, wantTitle: DefaultTitle},
		{name: "only sections", input: "## Experience\nWork", wantName: DefaultName, wantTitle: DefaultTitle},
		{name: "level-2 heading is not a name", input: "## Jane\n**Dev**", wantName: DefaultName, wantTitle: "Dev"},
		{name: "bold after line five", input: "# Jane\n\n\n\n\n**Late Title**", wantName: "Jane", wantTitle: DefaultTitle},
		{name: "hash without space", input: "#Jane", wantName: DefaultName, wantTitle: DefaultTitle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := Extract(tt.input)
			if doc.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", doc.Name, tt.wantName)
			}
			if doc.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", doc.Title, tt.wantTitle)
			}
			if doc.Headshot.Present() {
				t.Error("Headshot should be absent")
			}
		})
	}
}

func TestExtract_TitleFirstBoldWins(t *testing.T) {
	t.Parallel()

	doc := Extract("# Jane\n**First**\n**Second**\n")
	if doc.Title != "First" {
		t.Errorf("Title = %q, want First", doc.Title)
	}
	if !strings.Contains(doc.Body, "**Second**") {
		t.Errorf("second bold line should stay in body, got %q", doc.Body)
	}
}

func TestExtract_TitleKeepsSharedLineContent(t *testing.T) {
	t.Parallel()

	doc := Extract("# Jane\n**Staff Engineer** | Remote, EU\n\n## Experience\nWork")
	if doc.Title != "Staff Engineer" {
		t.Errorf("Title = %q, want Staff Engineer", doc.Title)
	}
	if !strings.Contains(doc.Body, "| Remote, EU") {
		t.Errorf("content sharing the title line was lost, body = %q", doc.Body)
	}
}

func TestExtract_TitleWindowCountsSourceLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "title on line 5 after headshot",
			src:  "![round](https://example.com/me.jpg)\n# Jane\n\n\n**Engineer**\n",
			want: "Engineer",
		},
		{
			name: "title on line 6 after headshot",
			src:  "![round](https://example.com/me.jpg)\n# Jane\n\n\n\n**Engineer**\n",
			want: DefaultTitle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := Extract(tt.src)
			if doc.Title != tt.want {
				t.Errorf("Title = %q, want %q", doc.Title, tt.want)
			}
			if !doc.Headshot.Present() {
				t.Error("headshot should still be extracted")
			}
		})
	}
}

func TestExtract_HeadshotShapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		alt  string
		want Shape
	}{
		{alt: "circular", want: ShapeCircular},
		{alt: "  CIRCULAR ", want: ShapeCircular},
		{alt: "rectangular", want: ShapeRectangular},
		{alt: "", want: ShapeRectangular},
		{alt: "my photo", want: ShapeRectangular},
		{alt: "circular photo", want: ShapeRectangular},
	}

	for _, tt := range tests {
		t.Run(tt.alt, func(t *testing.T) {
			t.Parallel()

			doc := Extract("# Jane\n![" + tt.alt + "](https://example.com/a.png)\n## Skills\n- Go")
			if doc.Headshot.Shape != tt.want {
				t.Errorf("Shape = %v, want %v", doc.Headshot.Shape, tt.want)
			}
		})
	}
}

func TestExtract_OnlyFirstImageIsHeadshot(t *testing.T) {
	t.Parallel()

	src := "# Jane\n![](https://example.com/one.png)\n## Projects\n![diagram](https://example.com/two.png)\n"
	doc := Extract(src)

	if doc.Headshot.Src != "https://example.com/one.png" {
		t.Errorf("Headshot.Src = %q, want first image", doc.Headshot.Src)
	}
	if strings.Contains(doc.Body, "one.png") {
		t.Errorf("headshot image left in body: %q", doc.Body)
	}
	if !strings.Contains(doc.Body, "two.png") {
		t.Errorf("second image should remain in body: %q", doc.Body)
	}
}

func TestExtract_ContactFiltering(t *testing.T) {
	t.Parallel()

	src := "# Jane\n## Contact Information\nReach me via:\n* jane@example.com\n1. +1 555 000 1111\n🌐 jane.dev\n\n### Socials\n- @jane\n## Skills\n- Go"
	doc := Extract(src)

	want := []string{"jane@example.com", "+1 555 000 1111", "🌐 jane.dev", "@jane"}
	if !slices.Equal(doc.ContactLines, want) {
		t.Errorf("ContactLines = %q, want %q", doc.ContactLines, want)
	}
	if strings.Contains(doc.Body, "Reach me") {
		t.Errorf("contact section should be stripped from body: %q", doc.Body)
	}
	if !strings.Contains(doc.Body, "## Skills") {
		t.Errorf("following section lost: %q", doc.Body)
	}
}

func TestExtract_NoContactSection(t *testing.T) {
	t.Parallel()

	doc := Extract("# Jane\n## Skills\n- Go")
	if len(doc.ContactLines) != 0 {
		t.Errorf("ContactLines = %q, want empty", doc.ContactLines)
	}
}

func TestExtract_CRLF(t *testing.T) {
	t.Parallel()

	doc := Extract("# Jane Smith\r\n**Designer**\r\n\r\n## Skills\r\n- Figma\r\n")
	if doc.Name != "Jane Smith" || doc.Title != "Designer" {
		t.Errorf("got name %q title %q", doc.Name, doc.Title)
	}
	if strings.Contains(doc.Body, "\r") {
		t.Errorf("body keeps carriage returns: %q", doc.Body)
	}
}

func TestExtract_Idempotent(t *testing.T) {
	t.Parallel()

	first := Extract(sampleCV)
	second := Extract(sampleCV)
	if first.Body != second.Body || first.Name != second.Name || !slices.Equal(first.ContactLines, second.ContactLines) {
		t.Error("Extract is not deterministic")
	}
}

func TestExtractName(t *testing.T) {
	t.Parallel()

	if got := ExtractName("intro\n# Jane Smith\n"); got != "Jane Smith" {
		t.Errorf("ExtractName = %q, want Jane Smith", got)
	}
	if got := ExtractName("no heading"); got != DefaultName {
		t.Errorf("ExtractName = %q, want placeholder", got)
	}
}
