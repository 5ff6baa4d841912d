package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/orbitlab/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r2"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

// Canvas is a Braille dot grid of Width x Height terminal cells, i.e.
// (Width*2) x (Height*4) pixels. It implements render.Surface; the last
// color drawn into a cell wins. Text overlays whole cells.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	text          [][]rune
	colors        [][]colorful.Color
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{}
	c.Resize(w, h)
	return c
}

// Resize reallocates the grid to w x h cells and clears it.
func (c *Canvas) Resize(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	c.Width, c.Height = w, h
	c.Grid = make([][]rune, h)
	c.text = make([][]rune, h)
	c.colors = make([][]colorful.Color, h)
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.text[i] = make([]rune, w)
		c.colors[i] = make([]colorful.Color, w)
	}
	c.Clear()
}

// Size reports the pixel dimensions.
func (c *Canvas) Size() (float64, float64) {
	return float64(c.Width * 2), float64(c.Height * 4)
}

// Set lights the pixel at (x, y).
func (c *Canvas) Set(x, y int, col colorful.Color) {
	if x < 0 || y < 0 {
		return
	}
	cx, cy := x/2, y/4
	if cx >= c.Width || cy >= c.Height {
		return
	}
	c.Grid[cy][cx] |= rune(pixelMap[y%4][x%2])
	c.colors[cy][cx] = col
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
			c.text[i][j] = 0
			c.colors[i][j] = colorful.Color{}
		}
	}
}

// Line draws a segment using Bresenham's algorithm, clipped to the
// canvas first so far off-screen endpoints cost nothing.
func (c *Canvas) Line(a, b r2.Vec, col colorful.Color) {
	if !finite(a) || !finite(b) {
		return
	}
	a, b, ok := c.clip(a, b)
	if !ok {
		return
	}
	x0, y0 := round(a.X), round(a.Y)
	x1, y1 := round(b.X), round(b.Y)
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// clip trims segment ab to the pixel rectangle (Liang-Barsky).
func (c *Canvas) clip(a, b r2.Vec) (r2.Vec, r2.Vec, bool) {
	w, h := c.Size()
	xmin, ymin, xmax, ymax := -0.5, -0.5, w-0.5, h-0.5
	d := r2.Sub(b, a)
	t0, t1 := 0.0, 1.0
	for _, e := range [4][2]float64{
		{-d.X, a.X - xmin}, {d.X, xmax - a.X},
		{-d.Y, a.Y - ymin}, {d.Y, ymax - a.Y},
	} {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return a, b, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			t0 = math.Max(t0, t)
		} else {
			t1 = math.Min(t1, t)
		}
		if t0 > t1 {
			return a, b, false
		}
	}
	return r2.Add(a, r2.Scale(t0, d)), r2.Add(a, r2.Scale(t1, d)), true
}

// Circle draws an outline with the midpoint algorithm. Circles much larger
// than the canvas are traced row by row and column by column instead, so
// the work stays proportional to the canvas.
func (c *Canvas) Circle(center r2.Vec, r float64, col colorful.Color) {
	if !finite(center) || !(r >= 0) || math.IsInf(r, 0) {
		return
	}
	w, h := c.Size()
	if !c.touches(center, r) {
		return
	}
	if r > w+h {
		c.bigCircle(center, r, col)
		return
	}
	cx, cy, rad := round(center.X), round(center.Y), round(r)
	x, y, d := rad, 0, 1-rad
	for x >= y {
		for _, p := range [8][2]int{
			{x, y}, {y, x}, {-y, x}, {-x, y},
			{-x, -y}, {-y, -x}, {y, -x}, {x, -y},
		} {
			c.Set(cx+p[0], cy+p[1], col)
		}
		y++
		if d < 0 {
			d += 2*y + 1
		} else {
			x--
			d += 2*(y-x) + 1
		}
	}
}

// touches reports whether a circle outline can cross the canvas: it is
// not wholly outside and does not wholly enclose it.
func (c *Canvas) touches(center r2.Vec, r float64) bool {
	w, h := c.Size()
	near := r2.Vec{X: dynamo.Clamp(center.X, 0, w-1), Y: dynamo.Clamp(center.Y, 0, h-1)}
	if dynamo.Distance(center, near) > r+1 {
		return false
	}
	far := 0.0
	for _, corner := range [4]r2.Vec{{}, {X: w - 1}, {Y: h - 1}, {X: w - 1, Y: h - 1}} {
		far = math.Max(far, dynamo.Distance(center, corner))
	}
	return far >= r-1
}

func (c *Canvas) bigCircle(center r2.Vec, r float64, col colorful.Color) {
	w, h := c.Size()
	cx, cy := math.Round(center.X), math.Round(center.Y)
	for y := 0.0; y < h; y++ {
		if dy := y - cy; math.Abs(dy) <= r {
			hw := math.Sqrt(r*r - dy*dy)
			c.setFloat(cx-hw, y, col)
			c.setFloat(cx+hw, y, col)
		}
	}
	for x := 0.0; x < w; x++ {
		if dx := x - cx; math.Abs(dx) <= r {
			hh := math.Sqrt(r*r - dx*dx)
			c.setFloat(x, cy-hh, col)
			c.setFloat(x, cy+hh, col)
		}
	}
}

// setFloat lights a pixel given in float coordinates, ignoring anything
// off the canvas before it can overflow an int.
func (c *Canvas) setFloat(x, y float64, col colorful.Color) {
	w, h := c.Size()
	x, y = math.Round(x), math.Round(y)
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	c.Set(int(x), int(y), col)
}

// Disc fills a circle, visiting only the rows and columns on the canvas.
func (c *Canvas) Disc(center r2.Vec, r float64, col colorful.Color) {
	if !finite(center) || !(r >= 0) || math.IsInf(r, 0) {
		return
	}
	cx, cy := math.Round(center.X), math.Round(center.Y)
	if r < 1 {
		c.setFloat(cx, cy, col)
		return
	}
	w, h := c.Size()
	y0 := math.Max(0, math.Ceil(cy-r))
	y1 := math.Min(h-1, math.Floor(cy+r))
	for y := y0; y <= y1; y++ {
		dy := y - cy
		hw := math.Floor(math.Sqrt(r*r - dy*dy))
		x0 := math.Max(0, cx-hw)
		x1 := math.Min(w-1, cx+hw)
		for x := x0; x <= x1; x++ {
			c.Set(int(x), int(y), col)
		}
	}
}

// Text writes s into the cells starting at the one holding pixel at.
func (c *Canvas) Text(at r2.Vec, s string, col colorful.Color) {
	if !finite(at) {
		return
	}
	cx, cy := round(at.X)/2, round(at.Y)/4
	if at.X < 0 || at.Y < 0 || cy >= c.Height {
		return
	}
	for _, ch := range s {
		if cx >= c.Width {
			return
		}
		c.text[cy][cx] = ch
		c.colors[cy][cx] = col
		cx++
	}
}

func (c *Canvas) cell(i, j int) rune {
	if t := c.text[i][j]; t != 0 {
		return t
	}
	return c.Grid[i][j]
}

// String renders the canvas without colors.
func (c *Canvas) String() string {
	var b strings.Builder
	for i := range c.Grid {
		for j := range c.Grid[i] {
			b.WriteRune(c.cell(i, j))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Render renders the canvas with lipgloss foreground colors, batching runs
// of equally colored cells.
func (c *Canvas) Render() string {
	var b strings.Builder
	for i := range c.Grid {
		var run strings.Builder
		var runColor colorful.Color
		flush := func() {
			if run.Len() == 0 {
				return
			}
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(runColor.Clamped().Hex()))
			b.WriteString(style.Render(run.String()))
			run.Reset()
		}
		for j := range c.Grid[i] {
			if col := c.colors[i][j]; col != runColor {
				flush()
				runColor = col
			}
			run.WriteRune(c.cell(i, j))
		}
		flush()
		b.WriteByte('\n')
	}
	return b.String()
}

// PixelAt maps a terminal cell to the pixel at its middle.
func PixelAt(col, row int) r2.Vec {
	return r2.Vec{X: float64(col*2) + 1, Y: float64(row*4) + 2}
}

func round(v float64) int {
	return int(math.Round(v))
}

func finite(v r2.Vec) bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
