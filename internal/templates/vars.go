package templates

import (
	"fmt"
	"strings"
)

// CSSVar is one custom property derived from a template.
type CSSVar struct {
	Name  string // with the leading "--"
	Value string
}

// Vars returns the template's custom properties in a stable order.
func (t Template) Vars() []CSSVar {
	return []CSSVar{
		{"--primary-color", t.Colors.Primary},
		{"--secondary-color", t.Colors.Secondary},
		{"--accent-color", t.Colors.Accent},
		{"--text-color", t.Colors.Text},
		{"--sidebar-background", t.Colors.SidebarBackground},
		{"--heading-font", t.Typography.HeadingFont},
		{"--body-font", t.Typography.BodyFont},
		{"--h1-size", t.Typography.Sizes.H1},
		{"--h2-size", t.Typography.Sizes.H2},
		{"--h3-size", t.Typography.Sizes.H3},
		{"--body-size", t.Typography.Sizes.Body},
		{"--section-gap", t.Spacing.SectionGap},
		{"--item-gap", t.Spacing.ItemGap},
		{"--padding", t.Spacing.Padding},
	}
}

// VarMap indexes Vars by name.
func (t Template) VarMap() map[string]string {
	vars := t.Vars()
	m := make(map[string]string, len(vars))
	for _, v := range vars {
		m[v.Name] = v.Value
	}
	return m
}

// Declarations renders vars as "name: value;" pairs separated by sep.
func Declarations(vars []CSSVar, sep string) string {
	parts := make([]string, 0, len(vars))
	for _, v := range vars {
		if v.Value == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s;", v.Name, v.Value))
	}
	return strings.Join(parts, sep)
}
