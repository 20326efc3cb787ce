package viz

import (
	"image/color"
	"math"
	"strings"

	"github.com/san-kum/machinesim/internal/gfx"
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

// Canvas is a braille pixel grid and a gfx.Surface. Device coordinates are
// sub-pixels: Width*2 across and Height*4 down. Colour is ignored; fills
// are drawn as outlines.
type Canvas struct {
	gfx.Stack

	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Stack:  gfx.NewStack(),
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800 // Empty braille char
		}
	}
	return c
}

func (c *Canvas) SubWidth() int  { return c.Width * 2 }
func (c *Canvas) SubHeight() int { return c.Height * 4 }

// Set sets a pixel at (x, y) in sub-pixel coordinates.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// IsSet reports whether the sub-pixel at (x, y) is on.
func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

// Clear blanks the grid and resets the transform.
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
	c.Stack = gfx.NewStack()
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
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
		c.Set(x0, y0)
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

func round(v float64) int { return int(math.Round(v)) }

func (c *Canvas) line(a, b gfx.Point) {
	c.DrawLine(round(a.X), round(a.Y), round(b.X), round(b.Y))
}

func (c *Canvas) outline(pts []gfx.Point) {
	dev := c.Transform(pts)
	for i := range dev {
		c.line(dev[i], dev[(i+1)%len(dev)])
	}
}

func (c *Canvas) StrokeLine(a, b gfx.Point, _ color.RGBA) {
	dev := c.Transform([]gfx.Point{a, b})
	c.line(dev[0], dev[1])
}

func (c *Canvas) FillPolygon(pts []gfx.Point, _ color.RGBA) {
	if len(pts) < 2 {
		return
	}
	c.outline(pts)
}

// FillCircle plots the circle with the midpoint algorithm.
func (c *Canvas) FillCircle(center gfx.Point, radius float64, _ color.RGBA) {
	p := c.Current().Apply(center)
	cx, cy := round(p.X), round(p.Y)
	r := round(radius * c.Current().ScaleFactor())
	if r <= 0 {
		c.Set(cx, cy)
		return
	}

	x, y, d := r, 0, 1-r
	for x >= y {
		for _, o := range [][2]int{{x, y}, {y, x}, {-y, x}, {-x, y}, {-x, -y}, {-y, -x}, {y, -x}, {x, -y}} {
			c.Set(cx+o[0], cy+o[1])
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

// DrawImage outlines the image's destination polygon.
func (c *Canvas) DrawImage(_ gfx.Image, pts []gfx.Point) {
	if len(pts) < 2 {
		return
	}
	c.outline(pts)
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
