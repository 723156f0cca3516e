package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestGoldmarkConverter_ToHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		opts    FragmentOptions
		want    []string
		notWant []string
	}{
		{
			name:  "section roles",
			input: "## Experience\n\n### Acme\n\n#### Engineer\n\n##### 2020 - 2024\n\nShipped things.",
			want: []string{
				`class="cv-section-title"`,
				`class="cv-subsection-title"`,
				`class="cv-item-title"`,
				`class="cv-item-subtitle"`,
				`<p class="cv-text">Shipped things.</p>`,
			},
		},
		{
			name:  "list roles",
			input: "- Go\n- SQL",
			want:  []string{`<ul class="cv-list">`, `<li class="cv-list-item">Go</li>`},
		},
		{
			name:    "suppressed name heading",
			input:   "# Jane Smith\n\n## Skills\n\n- Go",
			opts:    FragmentOptions{SuppressHeading: "Jane Smith"},
			want:    []string{"Skills"},
			notWant: []string{"<h1", "Jane Smith"},
		},
		{
			name:  "other level-1 heading kept",
			input: "# Portfolio\n\ntext",
			opts:  FragmentOptions{SuppressHeading: "Jane Smith"},
			want:  []string{"<h1", `class="cv-section-title"`, "Portfolio"},
		},
		{
			name:    "drop every level-1 heading",
			input:   "# One\n\n# Two\n\nbody",
			opts:    FragmentOptions{DropH1: true},
			want:    []string{"body"},
			notWant: []string{"<h1"},
		},
		{
			name:    "images removed",
			input:   "![photo](https://example.com/me.jpg)\n\nAfter",
			want:    []string{"After"},
			notWant: []string{"<img", "<p class=\"cv-text\"></p>"},
		},
		{
			name:  "links open in new tab",
			input: "[site](https://example.com)",
			want:  []string{`href="https://example.com"`, `target="_blank"`, `rel="noopener noreferrer"`},
		},
		{
			name:    "raw html escaped",
			input:   "<script>alert(1)</script>",
			notWant: []string{"<script>"},
		},
		{
			name:  "table",
			input: "| a | b |\n|---|---|\n| 1 | 2 |",
			want:  []string{"<table>", "<td>1</td>"},
		},
		{
			name:  "highlighted code",
			input: "```go\nfunc main() {}\n```",
			want:  []string{`class="chroma"`},
		},
	}

	conv := NewGoldmarkConverter()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := conv.ToHTML(context.Background(), tt.input, tt.opts)
			if err != nil {
				t.Fatalf("ToHTML() error = %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("output missing %q:\n%s", w, got)
				}
			}
			for _, nw := range tt.notWant {
				if strings.Contains(got, nw) {
					t.Errorf("output contains %q:\n%s", nw, got)
				}
			}
		})
	}
}

func TestGoldmarkConverter_ToInlineHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "📍 San Francisco, CA", want: "📍 San Francisco, CA"},
		{name: "emphasis", input: "**Remote**", want: "<strong>Remote</strong>"},
		{
			name:  "link",
			input: "[GitHub](https://github.com/jane)",
			want:  `<a href="https://github.com/jane" target="_blank" rel="noopener noreferrer">GitHub</a>`,
		},
	}

	conv := NewGoldmarkConverter()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := conv.ToInlineHTML(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("ToInlineHTML() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ToInlineHTML(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestGoldmarkConverter_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGoldmarkConverter().ToHTML(ctx, "# Hello", FragmentOptions{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ToHTML() error = %v, want context.Canceled", err)
	}
}
