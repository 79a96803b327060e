package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille cells are 2x4 dots, offset 0x2800:
// 1 4
// 2 5
// 3 6
// 7 8
const brailleBlank = 0x2800

var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille sub-pixel grid of Width x Height cells. Each cell
// can carry a tag selecting the style it is printed with.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	tags          [][]int
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h}
	c.Grid = make([][]rune, h)
	c.tags = make([][]int, h)
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.tags[i] = make([]int, w)
	}
	c.Clear()
	return c
}

func (c *Canvas) cell(x, y int) (int, int, bool) {
	if x < 0 || y < 0 {
		return 0, 0, false
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return 0, 0, false
	}
	return col, row, true
}

// Set lights the sub-pixel (x, y). The canvas is (Width*2) x (Height*4)
// sub-pixels.
func (c *Canvas) Set(x, y int) {
	if col, row, ok := c.cell(x, y); ok {
		c.Grid[row][col] |= pixelMap[y%4][x%2]
	}
}

// Mark lights (x, y) and tags its cell. Tag 0 is the default style.
func (c *Canvas) Mark(x, y, tag int) {
	if col, row, ok := c.cell(x, y); ok {
		c.Grid[row][col] |= pixelMap[y%4][x%2]
		c.tags[row][col] = tag
	}
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
			c.tags[i][j] = 0
		}
	}
}

// DrawLine draws a Bresenham line with every cell tagged.
func (c *Canvas) DrawLine(x0, y0, x1, y1, tag int) {
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
		c.Mark(x0, y0, tag)
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

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// Render prints the canvas, styling each tagged cell with styles[tag-1].
// Untagged cells use base.
func (c *Canvas) Render(base lipgloss.Style, styles []lipgloss.Style) string {
	var b strings.Builder
	for i, row := range c.Grid {
		for j, r := range row {
			tag := c.tags[i][j]
			if tag > 0 && tag <= len(styles) {
				b.WriteString(styles[tag-1].Render(string(r)))
				continue
			}
			b.WriteString(base.Render(string(r)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
