package fidelity

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/alnah/go-md2cv/internal/pipeline"
)

// blockElements end a run of text in the block-aware text content.
var blockElements = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"br": true, "dd": true, "div": true, "dl": true, "dt": true,
	"footer": true, "h1": true, "h2": true, "h3": true, "h4": true,
	"h5": true, "h6": true, "header": true, "hr": true, "li": true,
	"main": true, "ol": true, "p": true, "pre": true, "section": true,
	"table": true, "td": true, "th": true, "tr": true, "ul": true,
}

// ExtractFromPreview reads comparable content from a rendered preview page
// or fragment.
func ExtractFromPreview(page string) (Content, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return Content{}, fmt.Errorf("%w: %v", ErrExtract, err)
	}
	root := pipeline.FindRoot(doc)
	if root == nil {
		return Content{}, fmt.Errorf("%w: %v", ErrExtract, pipeline.ErrRootNotFound)
	}

	name := root.Find(".cv-name").First()
	if name.Length() == 0 {
		name = root.Find("h1").First()
	}

	return Content{
		Name:     collapseSpace(name.Text()),
		Title:    collapseSpace(root.Find(".cv-title").First().Text()),
		Contact:  previewContact(root),
		Sections: previewSections(root),
		FullText: collapseSpace(blockText(root)),
	}, nil
}

func previewContact(root *goquery.Selection) Contact {
	scope := findSection(root, "Contact Information")
	text := ""
	if scope != nil {
		text = strings.Join(scope, " ")
	} else if c := root.Find(".cv-contact").First(); c.Length() > 0 {
		text = blockText(c)
	} else {
		text = blockText(root)
	}

	location := ""
	if m := pinnedLocation.FindStringSubmatch(text); m != nil {
		location = strings.TrimSpace(m[1])
	}

	return Contact{
		Email:     emailPattern.FindString(text),
		Phone:     firstMatch(text, usPhonePattern, phonePattern),
		LinkedIn:  firstMatch(text, linkedInPattern, linkedInLabel),
		Portfolio: firstMatch(text, portfolioURL, portfolioPin, designDomain, devDomain),
		Location:  location,
	}
}

func previewSections(root *goquery.Selection) map[string]string {
	sections := make(map[string]string)
	for _, heading := range canonicalSections {
		if parts := findSection(root, heading); parts != nil {
			sections[heading] = collapseSpace(strings.Join(parts, " "))
		}
	}
	return sections
}

// findSection returns the text of the blocks following the first h1-h3
// whose text contains heading, up to the next heading of the same or a
// higher level. It returns nil when no heading matches.
func findSection(root *goquery.Selection, heading string) []string {
	want := strings.ToLower(heading)

	var parts []string
	found := false
	root.Find("h1, h2, h3").EachWithBreak(func(_ int, h *goquery.Selection) bool {
		if !strings.Contains(strings.ToLower(h.Text()), want) {
			return true
		}
		found = true
		level := headingLevel(h)
		for s := h.Next(); s.Length() > 0; s = s.Next() {
			if l := headingLevel(s); l > 0 && l <= level {
				break
			}
			parts = append(parts, blockText(s))
		}
		return false
	})

	if !found {
		return nil
	}
	if parts == nil {
		parts = []string{}
	}
	return parts
}

func headingLevel(s *goquery.Selection) int {
	name := goquery.NodeName(s)
	if len(name) == 2 && name[0] == 'h' && name[1] >= '1' && name[1] <= '6' {
		return int(name[1] - '0')
	}
	return 0
}

// blockText is the text content of s with block boundaries turned into
// spaces, so adjacent paragraphs do not fuse into one word.
func blockText(s *goquery.Selection) string {
	var sb strings.Builder
	for _, n := range s.Nodes {
		writeText(&sb, n)
	}
	return sb.String()
}

func writeText(sb *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(n.Data)
		return
	case html.ElementNode:
		if n.Data == "style" || n.Data == "script" {
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(sb, c)
	}
	if n.Type == html.ElementNode && (blockElements[n.Data] || hasClass(n, "contact-item")) {
		sb.WriteByte(' ')
	}
}

func hasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Key == "class" {
			for _, c := range strings.Fields(a.Val) {
				if c == class {
					return true
				}
			}
		}
	}
	return false
}
