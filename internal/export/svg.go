package export

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r2"
)

// SVG is a render.Surface that accumulates one frame as SVG elements.
type SVG struct {
	W, H       float64
	Background colorful.Color
	elems      []string
}

func NewSVG(w, h float64) *SVG {
	return &SVG{W: w, H: h, Background: colorful.Color{R: 0.024, G: 0.024, B: 0.047}}
}

func (s *SVG) Size() (float64, float64) { return s.W, s.H }

func (s *SVG) Clear() { s.elems = s.elems[:0] }

func (s *SVG) Line(a, b r2.Vec, c colorful.Color) {
	s.elems = append(s.elems, fmt.Sprintf(`<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="1"/>`,
		a.X, a.Y, b.X, b.Y, hex(c)))
}

func (s *SVG) Circle(center r2.Vec, r float64, c colorful.Color) {
	s.elems = append(s.elems, fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="%.2f" fill="none" stroke="%s"/>`,
		center.X, center.Y, r, hex(c)))
}

func (s *SVG) Disc(center r2.Vec, r float64, c colorful.Color) {
	s.elems = append(s.elems, fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s"/>`,
		center.X, center.Y, r, hex(c)))
}

func (s *SVG) Text(at r2.Vec, text string, c colorful.Color) {
	s.elems = append(s.elems, fmt.Sprintf(`<text x="%.2f" y="%.2f" fill="%s" font-family="sans-serif" font-size="12">%s</text>`,
		at.X, at.Y, hex(c), html.EscapeString(text)))
}

// Len returns the number of drawn elements.
func (s *SVG) Len() int { return len(s.elems) }

// String renders the complete document.
func (s *SVG) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, s.W, s.H, s.W, s.H, hex(s.Background)))
	for _, e := range s.elems {
		sb.WriteString(e)
		sb.WriteByte('\n')
	}
	sb.WriteString("</svg>\n")
	return sb.String()
}

// WriteTo writes the document to w.
func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, s.String())
	return int64(n), err
}

func hex(c colorful.Color) string {
	return c.Clamped().Hex()
}
