package cmd

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vqatools/vqa-annotator/internal"
)

// Shape colors per kind, matching the classic annotator palette.
var shapeColors = map[internal.ShapeKind]lipgloss.Color{
	internal.ShapeRect:  lipgloss.Color("196"), // red
	internal.ShapePoly:  lipgloss.Color("33"),  // blue
	internal.ShapePoint: lipgloss.Color("46"),  // green
}

const draftColor = lipgloss.Color("226") // yellow

type canvasCell struct {
	ch rune
	fg lipgloss.Color
	bg lipgloss.Color
}

// renderCanvas rasterizes the current image and all drawn shapes onto a
// w x h cell grid. Cell coordinates are the screen space the controller's
// viewport maps to, so shapes land exactly where the pointer drew them.
func renderCanvas(ctrl *internal.Controller, w, h int) string {
	grid := make([][]canvasCell, h)
	for y := range grid {
		grid[y] = make([]canvasCell, w)
		for x := range grid[y] {
			grid[y][x] = canvasCell{ch: ' '}
		}
	}

	drawImage(ctrl, grid)
	for _, s := range ctrl.DisplayShapes() {
		drawShape(grid, s.Kind, s.Coords, shapeColors[s.Kind])
	}
	if kind, coords, ok := ctrl.DraftShape(); ok {
		drawShape(grid, kind, coords, draftColor)
	}

	var b strings.Builder
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := grid[y][x]
			style := lipgloss.NewStyle()
			if c.bg != "" {
				style = style.Background(c.bg)
			}
			if c.fg != "" {
				style = style.Foreground(c.fg)
			}
			b.WriteString(style.Render(string(c.ch)))
		}
		if y < h-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// drawImage samples the image at each cell center through the inverse
// viewport transform and paints the cell background with the pixel color.
func drawImage(ctrl *internal.Controller, grid [][]canvasCell) {
	img := ctrl.Image()
	if img == nil {
		return
	}
	imgW, imgH := ctrl.ImageSize()
	vp := ctrl.Viewport()
	bounds := img.Bounds()

	for y := range grid {
		for x := range grid[y] {
			ix, iy := vp.ToImage(float64(x)+0.5, float64(y)+0.5)
			if ix < 0 || iy < 0 || ix >= float64(imgW) || iy >= float64(imgH) {
				continue
			}
			px := img.At(bounds.Min.X+int(ix), bounds.Min.Y+int(iy))
			grid[y][x].bg = hexColor(px)
		}
	}
}

func hexColor(c color.Color) lipgloss.Color {
	r, g, b, _ := c.RGBA()
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8))
}

func drawShape(grid [][]canvasCell, kind internal.ShapeKind, coords []float64, col lipgloss.Color) {
	switch kind {
	case internal.ShapeRect:
		if len(coords) == 4 {
			drawRect(grid, coords[0], coords[1], coords[2], coords[3], col)
		}
	case internal.ShapePoly:
		drawPoly(grid, coords, col)
	case internal.ShapePoint:
		if len(coords) == 2 {
			setCell(grid, int(math.Round(coords[0])), int(math.Round(coords[1])), '●', col)
		}
	}
}

func drawRect(grid [][]canvasCell, x1, y1, x2, y2 float64, col lipgloss.Color) {
	left, right := int(math.Round(math.Min(x1, x2))), int(math.Round(math.Max(x1, x2)))
	top, bottom := int(math.Round(math.Min(y1, y2))), int(math.Round(math.Max(y1, y2)))
	for x := left; x <= right; x++ {
		setCell(grid, x, top, '─', col)
		setCell(grid, x, bottom, '─', col)
	}
	for y := top; y <= bottom; y++ {
		setCell(grid, left, y, '│', col)
		setCell(grid, right, y, '│', col)
	}
	setCell(grid, left, top, '┌', col)
	setCell(grid, right, top, '┐', col)
	setCell(grid, left, bottom, '└', col)
	setCell(grid, right, bottom, '┘', col)
}

// drawPoly draws vertices and edges; the closing edge is drawn as well,
// mirroring the implicit closure of committed polygons. In-progress drafts
// with a single vertex render just that vertex.
func drawPoly(grid [][]canvasCell, coords []float64, col lipgloss.Color) {
	n := len(coords) / 2
	if n == 0 {
		return
	}
	if n >= 2 {
		for i := 0; i < n; i++ {
			j := (i + 1) % n
			drawLine(grid,
				int(math.Round(coords[2*i])), int(math.Round(coords[2*i+1])),
				int(math.Round(coords[2*j])), int(math.Round(coords[2*j+1])), col)
		}
	}
	// Vertices last so the markers win over edge cells.
	for i := 0; i < n; i++ {
		setCell(grid, int(math.Round(coords[2*i])), int(math.Round(coords[2*i+1])), '◆', col)
	}
}

// drawLine is a Bresenham walk between two cells.
func drawLine(grid [][]canvasCell, x1, y1, x2, y2 int, col lipgloss.Color) {
	dx := abs(x2 - x1)
	dy := -abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx + dy
	x, y := x1, y1
	for {
		setCell(grid, x, y, '·', col)
		if x == x2 && y == y2 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

func setCell(grid [][]canvasCell, x, y int, ch rune, col lipgloss.Color) {
	if y < 0 || y >= len(grid) || x < 0 || x >= len(grid[y]) {
		return
	}
	grid[y][x].ch = ch
	grid[y][x].fg = col
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
