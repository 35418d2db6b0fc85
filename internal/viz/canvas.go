package viz

import (
	"strings"

	"github.com/PixelsForGlory/lsystem/turtle"
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

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
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

// Set lights a pixel at (x, y) in sub-pixel coordinates. The canvas size
// in sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	subX := x % 2
	subY := y % 4

	c.Grid[row][col] |= rune(pixelMap[subY][subX])
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
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

// DrawSegments fits the world-space segments into the canvas, preserving
// aspect ratio and flipping y so world-up is screen-up.
func (c *Canvas) DrawSegments(segs []turtle.Segment) {
	if len(segs) == 0 {
		return
	}

	minX, maxX := segs[0].X1, segs[0].X1
	minY, maxY := segs[0].Y1, segs[0].Y1
	grow := func(x, y float64) {
		if x < minX {
			minX = x
		}
		if x > maxX {
			maxX = x
		}
		if y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
		}
	}
	for _, s := range segs {
		grow(s.X1, s.Y1)
		grow(s.X2, s.Y2)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}

	cw := float64(c.Width*2 - 1)
	ch := float64(c.Height*4 - 1)
	scale := cw / rangeX
	if s := ch / rangeY; s < scale {
		scale = s
	}
	offX := (cw - rangeX*scale) / 2
	offY := (ch - rangeY*scale) / 2

	toScreen := func(x, y float64) (int, int) {
		sx := (x-minX)*scale + offX
		sy := ch - ((y-minY)*scale + offY)
		return int(sx + 0.5), int(sy + 0.5)
	}

	for _, s := range segs {
		x0, y0 := toScreen(s.X1, s.Y1)
		x1, y1 := toScreen(s.X2, s.Y2)
		c.DrawLine(x0, y0, x1, y1)
	}
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
