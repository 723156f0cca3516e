package pipeline

import (
	"errors"
	"strings"
	"testing"
)

func TestCapture(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		page    string
		want    []string
		notWant []string
		wantErr error
	}{
		{
			name: "prefers export copy",
			page: `<div class="cv-preview-content"><p>visible</p></div>` +
				`<div class="cv-pdf-export"><div class="cv-document"><p>export</p></div></div>`,
			want:    []string{`<div class="cv-document">`, "export"},
			notWant: []string{"visible", "cv-pdf-export"},
		},
		{
			name: "falls back to preview content",
			page: `<body><div class="cv-preview-content"><h1 class="cv-name">Jane</h1></div></body>`,
			want: []string{`<h1 class="cv-name">Jane</h1>`},
		},
		{
			name: "bare document keeps its own element",
			page: `<div class="cv-document" style="--primary-color: #111"><p>x</p></div>`,
			want: []string{`class="cv-document"`, "--primary-color"},
		},
		{
			name:    "scripts and handlers removed",
			page:    `<div class="cv-document"><script>alert(1)</script><img src="https://example.com/a.jpg" onerror="alert(2)"></div>`,
			want:    []string{`src="https://example.com/a.jpg"`},
			notWant: []string{"<script", "onerror", "alert"},
		},
		{
			name:    "no root",
			page:    `<div class="something-else">x</div>`,
			wantErr: ErrRootNotFound,
		},
		{
			name:    "empty",
			page:    "",
			wantErr: ErrRootNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Capture(tt.page)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Capture() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Capture() error = %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("Capture() missing %q in %q", w, got)
				}
			}
			for _, nw := range tt.notWant {
				if strings.Contains(got, nw) {
					t.Errorf("Capture() contains %q in %q", nw, got)
				}
			}
		})
	}
}

func TestUnhide(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		markup  string
		want    []string
		notWant []string
	}{
		{
			name: "inherited hiding removed",
			markup: `<div class="cv-document" style="color:rgb(0, 0, 0);visibility:hidden;pointer-events:none;">` +
				`<h1 class="cv-name" style="font-size:28px;visibility:hidden;">Jane</h1></div>`,
			want:    []string{"color:rgb(0, 0, 0)", "font-size:28px", ">Jane</h1>"},
			notWant: []string{"visibility", "pointer-events"},
		},
		{
			name:    "spacing and case tolerated",
			markup:  `<p style="margin: 0; Visibility : hidden">x</p>`,
			want:    []string{"margin: 0"},
			notWant: []string{"isibility"},
		},
		{
			name:   "unstyled markup unchanged",
			markup: `<main class="cv-content"><p>x</p></main>`,
			want:   []string{`<main class="cv-content"><p>x</p></main>`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Unhide(tt.markup)
			if err != nil {
				t.Fatalf("Unhide() error = %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("Unhide() missing %q in %q", w, got)
				}
			}
			for _, n := range tt.notWant {
				if strings.Contains(got, n) {
					t.Errorf("Unhide() kept %q in %q", n, got)
				}
			}
		})
	}
}
