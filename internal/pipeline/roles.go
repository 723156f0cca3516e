package pipeline

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Parser context keys set per conversion.
var (
	suppressHeadingKey = parser.NewContextKey()
	dropH1Key          = parser.NewContextKey()
	inlineKey          = parser.NewContextKey()
)

// CSS roles assigned to body elements.
const (
	classSectionTitle    = "cv-section-title"
	classSubsectionTitle = "cv-subsection-title"
	classItemTitle       = "cv-item-title"
	classItemSubtitle    = "cv-item-subtitle"
	classText            = "cv-text"
	classList            = "cv-list"
	classListItem        = "cv-list-item"
)

// headingRole maps a heading level to its CSS role.
func headingRole(level int) string {
	switch level {
	case 1, 2:
		return classSectionTitle
	case 3:
		return classSubsectionTitle
	case 4:
		return classItemTitle
	case 5:
		return classItemSubtitle
	default:
		return ""
	}
}

// roleTransformer annotates the AST with CV roles. It removes images, the
// suppressed name heading and, when asked, every level-1 heading.
type roleTransformer struct{}

func (t *roleTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	src := reader.Source()
	suppress, _ := pc.Get(suppressHeadingKey).(string)
	dropH1, _ := pc.Get(dropH1Key).(bool)
	inline, _ := pc.Get(inlineKey).(bool)

	var doomed []ast.Node

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			if node.Level == 1 && (dropH1 || (suppress != "" && nodeText(node, src) == suppress)) {
				doomed = append(doomed, node)
				return ast.WalkSkipChildren, nil
			}
			if role := headingRole(node.Level); role != "" {
				node.SetAttributeString("class", []byte(role))
			}
		case *ast.Paragraph:
			if !inline {
				node.SetAttributeString("class", []byte(classText))
			}
		case *ast.List:
			node.SetAttributeString("class", []byte(classList))
		case *ast.ListItem:
			node.SetAttributeString("class", []byte(classListItem))
		case *ast.Link, *ast.AutoLink:
			node.SetAttributeString("target", []byte("_blank"))
			node.SetAttributeString("rel", []byte("noopener noreferrer"))
		case *ast.Image:
			doomed = append(doomed, node)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	for _, n := range doomed {
		parent := n.Parent()
		if parent == nil {
			continue
		}
		parent.RemoveChild(parent, n)
		if p, ok := parent.(*ast.Paragraph); ok && isBlank(p, src) && p.Parent() != nil {
			p.Parent().RemoveChild(p.Parent(), p)
		}
	}
}

// nodeText concatenates the text under n.
func nodeText(n ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

// isBlank reports whether a paragraph has nothing visible left.
func isBlank(p *ast.Paragraph, src []byte) bool {
	if p.ChildCount() == 0 {
		return true
	}
	for c := p.FirstChild(); c != nil; c = c.NextSibling() {
		t, ok := c.(*ast.Text)
		if !ok || strings.TrimSpace(string(t.Segment.Value(src))) != "" {
			return false
		}
	}
	return true
}
