package output

import (
	"strings"
)

// BoxStyle defines the character set for drawing boxes
type BoxStyle struct {
	TopLeft     rune
	TopRight    rune
	BottomLeft  rune
	BottomRight rune
	Horizontal  rune
	Vertical    rune
}

var (
	// ASCIIStyle uses simple ASCII characters for box drawing
	ASCIIStyle = BoxStyle{
		TopLeft:     '+',
		TopRight:    '+',
		BottomLeft:  '+',
		BottomRight: '+',
		Horizontal:  '-',
		Vertical:    '|',
	}

	// UnicodeStyle uses Unicode box drawing characters
	UnicodeStyle = BoxStyle{
		TopLeft:     '┌',
		TopRight:    '┐',
		BottomLeft:  '└',
		BottomRight: '┘',
		Horizontal:  '─',
		Vertical:    '│',
	}

	// FocusStyle marks the focused node
	FocusStyle = BoxStyle{
		TopLeft:     '#',
		TopRight:    '#',
		BottomLeft:  '#',
		BottomRight: '#',
		Horizontal:  '=',
		Vertical:    '#',
	}
)

// Canvas is a 2D character buffer. Cells can be marked for highlighting when rendered.
type Canvas struct {
	Width  int
	Height int
	buffer [][]rune
	marks  [][]bool
	style  BoxStyle
}

// NewCanvas creates a new canvas with the specified dimensions
func NewCanvas(width, height int, useUnicode bool) *Canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	buffer := make([][]rune, height)
	marks := make([][]bool, height)
	for i := range buffer {
		buffer[i] = make([]rune, width)
		marks[i] = make([]bool, width)
		for j := range buffer[i] {
			buffer[i][j] = ' '
		}
	}

	style := ASCIIStyle
	if useUnicode {
		style = UnicodeStyle
	}

	return &Canvas{
		Width:  width,
		Height: height,
		buffer: buffer,
		marks:  marks,
		style:  style,
	}
}

// Clear resets the canvas to empty, unmarked spaces
func (c *Canvas) Clear() {
	for i := range c.buffer {
		for j := range c.buffer[i] {
			c.buffer[i][j] = ' '
			c.marks[i][j] = false
		}
	}
}

// SetCell sets a character at the specified position
func (c *Canvas) SetCell(x, y int, r rune) {
	if c.inside(x, y) {
		c.buffer[y][x] = r
	}
}

// GetCell returns the character at the specified position
func (c *Canvas) GetCell(x, y int) rune {
	if c.inside(x, y) {
		return c.buffer[y][x]
	}
	return ' '
}

// Marked reports whether a cell is highlighted
func (c *Canvas) Marked(x, y int) bool {
	return c.inside(x, y) && c.marks[y][x]
}

// DrawBox draws a box in the canvas style
func (c *Canvas) DrawBox(x, y, width, height int) {
	c.DrawBoxStyle(x, y, width, height, c.style)
}

// DrawBoxStyle draws a box with an explicit style
func (c *Canvas) DrawBoxStyle(x, y, width, height int, style BoxStyle) {
	if width < 2 || height < 2 {
		return // Box too small to draw
	}

	// Corners
	c.SetCell(x, y, style.TopLeft)
	c.SetCell(x+width-1, y, style.TopRight)
	c.SetCell(x, y+height-1, style.BottomLeft)
	c.SetCell(x+width-1, y+height-1, style.BottomRight)

	for i := 1; i < width-1; i++ {
		c.SetCell(x+i, y, style.Horizontal)
		c.SetCell(x+i, y+height-1, style.Horizontal)
	}

	for i := 1; i < height-1; i++ {
		c.SetCell(x, y+i, style.Vertical)
		c.SetCell(x+width-1, y+i, style.Vertical)
	}
}

// DrawText writes text at the specified position
func (c *Canvas) DrawText(x, y int, text string) {
	i := 0
	for _, r := range text {
		c.SetCell(x+i, y, r)
		i++
	}
}

// DrawTextCentered writes text centered within a width, truncating if needed
func (c *Canvas) DrawTextCentered(x, y, width int, text string) {
	runes := []rune(text)
	if len(runes) >= width {
		if width > 0 {
			c.DrawText(x, y, string(runes[:width]))
		}
		return
	}
	padding := (width - len(runes)) / 2
	c.DrawText(x+padding, y, text)
}

// FillRect fills a rectangle with a character
func (c *Canvas) FillRect(x, y, width, height int, r rune) {
	for dy := 0; dy < height; dy++ {
		for dx := 0; dx < width; dx++ {
			c.SetCell(x+dx, y+dy, r)
		}
	}
}

// MarkRect highlights every cell of a rectangle
func (c *Canvas) MarkRect(x, y, width, height int) {
	for dy := 0; dy < height; dy++ {
		for dx := 0; dx < width; dx++ {
			if c.inside(x+dx, y+dy) {
				c.marks[y+dy][x+dx] = true
			}
		}
	}
}

// String renders the canvas to a string without highlighting
func (c *Canvas) String() string {
	return c.Render(nil)
}

// Render renders the canvas, passing each run of marked cells through highlight.
// A nil highlight renders plain text.
func (c *Canvas) Render(highlight func(string) string) string {
	var sb strings.Builder
	for i, row := range c.buffer {
		var run strings.Builder
		for j, cell := range row {
			if highlight != nil && c.marks[i][j] {
				run.WriteRune(cell)
				continue
			}
			if run.Len() > 0 {
				sb.WriteString(highlight(run.String()))
				run.Reset()
			}
			sb.WriteRune(cell)
		}
		if run.Len() > 0 {
			sb.WriteString(highlight(run.String()))
		}
		if i < len(c.buffer)-1 {
			sb.WriteRune('\n')
		}
	}
	return sb.String()
}

func (c *Canvas) inside(x, y int) bool {
	return x >= 0 && x < c.Width && y >= 0 && y < c.Height
}
