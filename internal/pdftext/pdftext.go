// Package pdftext reads page counts and text back out of generated PDFs.
package pdftext

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrInvalidPDF indicates the bytes could not be parsed as a PDF.
var ErrInvalidPDF = errors.New("invalid PDF")

// Glyph grouping thresholds, relative to the font size.
const (
	lineJumpRatio = 0.5
	wordGapRatio  = 0.15
)

// PageCount returns the number of pages in data.
func PageCount(data []byte) (n int, err error) {
	r, err := open(data)
	if err != nil {
		return 0, err
	}
	defer recoverInvalid(&err)
	return r.NumPage(), nil
}

// Text returns the text of every page, one line per visual line, with
// pages separated by a blank line.
func Text(data []byte) (text string, err error) {
	r, err := open(data)
	if err != nil {
		return "", err
	}
	defer recoverInvalid(&err)

	pages := make([]string, 0, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		pages = append(pages, strings.Join(assembleLines(p.Content().Text), "\n"))
	}
	return strings.Join(pages, "\n\n"), nil
}

func open(data []byte) (*pdf.Reader, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrInvalidPDF)
	}
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPDF, err)
	}
	return r, nil
}

// recoverInvalid turns parser panics on malformed streams into errors.
func recoverInvalid(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%w: %v", ErrInvalidPDF, r)
	}
}

// assembleLines groups glyphs in stream order. A vertical jump starts a
// new line and a horizontal gap inserts a space.
func assembleLines(glyphs []pdf.Text) []string {
	var (
		lines []string
		cur   strings.Builder
		prev  *pdf.Text
	)

	flush := func() {
		if line := strings.TrimSpace(cur.String()); line != "" {
			lines = append(lines, line)
		}
		cur.Reset()
	}

	for i := range glyphs {
		g := &glyphs[i]
		if prev != nil {
			size := math.Max(g.FontSize, 1)
			switch {
			case math.Abs(g.Y-prev.Y) > size*lineJumpRatio:
				flush()
			case g.X-(prev.X+prev.W) > size*wordGapRatio && !endsWithSpace(prev.S) && !strings.HasPrefix(g.S, " "):
				cur.WriteByte(' ')
			}
		}
		cur.WriteString(g.S)
		prev = g
	}
	flush()

	return lines
}

func endsWithSpace(s string) bool {
	return strings.HasSuffix(s, " ")
}
