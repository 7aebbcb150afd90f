package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/sandsim/internal/dynamo"
)

// Braille cells hold 2x4 dots:
//
//	1 4
//	2 5
//	3 6
//	7 8
const brailleBlank = 0x2800

var dotBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille dot matrix of Width x Height terminal cells, that is
// (2*Width) x (4*Height) dots. Each cell remembers the colour of the last
// dot written into it.
type Canvas struct {
	Width, Height int
	dots          [][]rune
	ink           [][]dynamo.Color
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h}
	c.dots = make([][]rune, h)
	c.ink = make([][]dynamo.Color, h)
	for row := range c.dots {
		c.dots[row] = make([]rune, w)
		c.ink[row] = make([]dynamo.Color, w)
	}
	c.Clear()
	return c
}

// Set lights the dot at (x, y). Dots outside the canvas are dropped.
func (c *Canvas) Set(x, y int, ink dynamo.Color) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.dots[row][col] |= dotBits[y%4][x%2]
	c.ink[row][col] = ink
}

// Cell returns the braille rune at a terminal cell.
func (c *Canvas) Cell(col, row int) rune {
	if col < 0 || row < 0 || col >= c.Width || row >= c.Height {
		return brailleBlank
	}
	return c.dots[row][col]
}

func (c *Canvas) Clear() {
	for row := range c.dots {
		for col := range c.dots[row] {
			c.dots[row][col] = brailleBlank
			c.ink[row][col] = 0
		}
	}
}

// DrawLine is Bresenham's line.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, ink dynamo.Color) {
	dx, dy := absInt(x1-x0), absInt(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx - dy

	for {
		c.Set(x0, y0, ink)
		if x0 == x1 && y0 == y1 {
			return
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

// DrawCircle outlines a circle with the midpoint algorithm. r <= 0 draws a
// single dot.
func (c *Canvas) DrawCircle(cx, cy, r int, ink dynamo.Color) {
	if r <= 0 {
		c.Set(cx, cy, ink)
		return
	}
	x, y, d := r, 0, 1-r
	for x >= y {
		c.Set(cx+x, cy+y, ink)
		c.Set(cx+y, cy+x, ink)
		c.Set(cx-y, cy+x, ink)
		c.Set(cx-x, cy+y, ink)
		c.Set(cx-x, cy-y, ink)
		c.Set(cx-y, cy-x, ink)
		c.Set(cx+y, cy-x, ink)
		c.Set(cx+x, cy-y, ink)
		y++
		if d < 0 {
			d += 2*y + 1
		} else {
			x--
			d += 2*(y-x) + 1
		}
	}
}

// String renders the canvas without colour.
func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.dots {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// Render colours each run of cells sharing an ink.
func (c *Canvas) Render() string {
	var b strings.Builder
	for row := range c.dots {
		start := 0
		for col := 1; col <= c.Width; col++ {
			if col < c.Width && c.ink[row][col] == c.ink[row][start] {
				continue
			}
			run := string(c.dots[row][start:col])
			if ink := c.ink[row][start]; ink != 0 {
				run = lipgloss.NewStyle().Foreground(lipgloss.Color(ink.Hex())).Render(run)
			}
			b.WriteString(run)
			start = col
		}
		if row < len(c.dots)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Viewport maps world coordinates onto canvas dots with a uniform scale,
// centring the world box.
type Viewport struct {
	Scale      float64
	OffX, OffY float64
}

func Fit(worldW, worldH float64, cols, rows int) Viewport {
	subW, subH := float64(cols*2), float64(rows*4)
	s := math.Min(subW/worldW, subH/worldH)
	return Viewport{
		Scale: s,
		OffX:  (subW - worldW*s) / 2,
		OffY:  (subH - worldH*s) / 2,
	}
}

func (v Viewport) ToScreen(p dynamo.Vec2) (int, int) {
	return int(math.Round(p.X*v.Scale + v.OffX)), int(math.Round(p.Y*v.Scale + v.OffY))
}

// CellToWorld returns the world position under the centre of a terminal
// cell.
func (v Viewport) CellToWorld(col, row int) dynamo.Vec2 {
	sx, sy := float64(col*2)+1, float64(row*4)+2
	return dynamo.V((sx-v.OffX)/v.Scale, (sy-v.OffY)/v.Scale)
}

func (v Viewport) Length(l float64) int {
	return int(math.Round(l * v.Scale))
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
