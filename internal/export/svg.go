package export

import (
	"fmt"
	"strings"

	"github.com/PixelsForGlory/lsystem/internal/viz"
	"github.com/PixelsForGlory/lsystem/turtle"
)

// SegmentsToSVG renders traced turtle geometry as an SVG path. Each
// segment becomes its own subpath, so branches do not get spurious
// connecting strokes. World y points up; SVG y points down.
func SegmentsToSVG(segs []turtle.Segment, width, height int, strokeColor string) string {
	if len(segs) == 0 {
		return ""
	}

	// Find bounds
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

	// Add padding
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	toScreen := func(x, y float64) (float64, float64) {
		sx := (x - minX) / rangeX * float64(width)
		sy := float64(height) - (y-minY)/rangeY*float64(height)
		return sx, sy
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="`,
		width, height, width, height, strokeColor))

	for i, s := range segs {
		x0, y0 := toScreen(s.X1, s.Y1)
		x1, y1 := toScreen(s.X2, s.Y2)
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(fmt.Sprintf("M%.1f,%.1f L%.1f,%.1f", x0, y0, x1, y1))
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

// CanvasToSVG converts a Braille canvas to SVG format
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2   // 2 sub-pixels per char
	height := float64(canvas.Height) * scale * 4 // 4 sub-pixels per char

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="#00ff00">
`, width, height, width, height))

	// Braille dot-to-bit mapping
	pixelMap := [4][2]int{
		{0x01, 0x08},
		{0x02, 0x10},
		{0x04, 0x20},
		{0x40, 0x80},
	}

	dotRadius := scale * 0.4

	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			r := canvas.Grid[row][col]
			if r < 0x2800 {
				continue
			}
			pattern := int(r - 0x2800)

			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4

			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] != 0 {
						cx := baseX + float64(dx)*scale + scale/2
						cy := baseY + float64(dy)*scale + scale/2
						sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, cx, cy, dotRadius))
					}
				}
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}
