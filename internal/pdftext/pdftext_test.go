package pdftext

import (
	"errors"
	"slices"
	"testing"

	"github.com/ledongthuc/pdf"
)

func TestAssembleLines(t *testing.T) {
	t.Parallel()

	glyph := func(s string, x, y, w float64) pdf.Text {
		return pdf.Text{S: s, X: x, Y: y, W: w, FontSize: 10}
	}

	tests := []struct {
		name   string
		glyphs []pdf.Text
		want   []string
	}{
		{name: "empty", glyphs: nil, want: nil},
		{
			name:   "one word",
			glyphs: []pdf.Text{glyph("G", 0, 700, 5), glyph("o", 5, 700, 5)},
			want:   []string{"Go"},
		},
		{
			name:   "gap inserts space",
			glyphs: []pdf.Text{glyph("a", 0, 700, 5), glyph("b", 10, 700, 5)},
			want:   []string{"a b"},
		},
		{
			name:   "explicit space not doubled",
			glyphs: []pdf.Text{glyph("a ", 0, 700, 5), glyph("b", 10, 700, 5)},
			want:   []string{"a b"},
		},
		{
			name:   "vertical jump starts a line",
			glyphs: []pdf.Text{glyph("Jane", 0, 700, 20), glyph("Skills", 0, 680, 20)},
			want:   []string{"Jane", "Skills"},
		},
		{
			name:   "baseline jitter stays on line",
			glyphs: []pdf.Text{glyph("x", 0, 700, 5), glyph("y", 5, 701, 5)},
			want:   []string{"xy"},
		},
		{
			name:   "blank lines dropped",
			glyphs: []pdf.Text{glyph(" ", 0, 700, 5), glyph("z", 0, 650, 5)},
			want:   []string{"z"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := assembleLines(tt.glyphs); !slices.Equal(got, tt.want) {
				t.Errorf("assembleLines() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInvalidInput(t *testing.T) {
	t.Parallel()

	for _, data := range [][]byte{nil, []byte("not a pdf")} {
		if _, err := PageCount(data); !errors.Is(err, ErrInvalidPDF) {
			t.Errorf("PageCount(%q) error = %v, want ErrInvalidPDF", data, err)
		}
		if _, err := Text(data); !errors.Is(err, ErrInvalidPDF) {
			t.Errorf("Text(%q) error = %v, want ErrInvalidPDF", data, err)
		}
	}
}
