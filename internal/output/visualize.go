package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/sys/unix"

	"github.com/yourusername/spotlight/internal/scene"
	"github.com/yourusername/spotlight/internal/types"
)

// VisualizationOptions controls the appearance of the visualization
type VisualizationOptions struct {
	UseUnicode bool
	ShowNames  bool
	MaxWidth   int
	MaxHeight  int
}

// DefaultVisualizationOptions returns sensible defaults
func DefaultVisualizationOptions() VisualizationOptions {
	width, height := getTerminalSize()
	return VisualizationOptions{
		UseUnicode: supportsUnicode(),
		ShowNames:  true,
		MaxWidth:   width,
		// Leave room for the header and footer lines
		MaxHeight: height - 3,
	}
}

// VisualizeScene draws every node's rect to a canvas, with the current node in FocusStyle
// and marked for highlighting. Disabled nodes are labelled in parentheses.
func VisualizeScene(s *scene.Scene, current types.NodeID, opts VisualizationOptions) *Canvas {
	nodes := s.Nodes()
	rects := make([]types.Rect, len(nodes))
	for i, n := range nodes {
		rects[i] = n.Rect
	}

	sc := NewScalingContext(rects, opts.MaxWidth, opts.MaxHeight)
	canvas := NewCanvas(opts.MaxWidth, opts.MaxHeight, opts.UseUnicode)

	// Scene boundary
	canvas.DrawBox(0, 0, sc.TermWidth, sc.TermHeight)

	var focused *scene.Node
	for i := range nodes {
		if nodes[i].ID == current {
			focused = &nodes[i]
			continue
		}
		drawNode(canvas, sc, nodes[i], canvas.style, opts.ShowNames)
	}

	// The focused node goes last so its border wins over overlapping neighbours
	if focused != nil {
		x, y, w, h := drawNode(canvas, sc, *focused, FocusStyle, opts.ShowNames)
		canvas.MarkRect(x, y, w, h)
	}

	return canvas
}

func drawNode(canvas *Canvas, sc *ScalingContext, node scene.Node, style BoxStyle, showName bool) (x, y, w, h int) {
	x, y, w, h = sc.RectToTerminal(node.Rect)
	canvas.DrawBoxStyle(x, y, w, h, style)

	if !showName || h < 2 {
		return
	}
	label := node.Name
	if node.Disabled {
		label = "(" + label + ")"
	}
	// Boxes two rows tall have no interior, so the label sits on the top border
	row := y + 1
	if h == 2 {
		row = y
	}
	canvas.DrawTextCentered(x+1, row, w-2, truncate(label, w-2))
	return
}

// PrintVisualization writes the scene to w, highlighting the focused node unless color is off
func PrintVisualization(w io.Writer, s *scene.Scene, current types.NodeID, opts VisualizationOptions) error {
	canvas := VisualizeScene(s, current, opts)

	header := fmt.Sprintf("Scene: %d nodes, %d containers", s.Len(), len(s.Containers()))
	if node, ok := s.Node(current); ok {
		header += fmt.Sprintf(" (focused: %s)", node.Name)
	}

	var highlight func(string) string
	if !color.NoColor {
		focusColor := color.New(color.FgYellow, color.Bold)
		highlight = func(s string) string { return focusColor.Sprint(s) }
	}

	_, err := fmt.Fprintf(w, "%s\n%s\n", header, canvas.Render(highlight))
	return err
}

// getTerminalSize returns the current terminal dimensions
func getTerminalSize() (width, height int) {
	ws, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 || ws.Row == 0 {
		// Default to 80x24 if we can't detect
		return 80, 24
	}
	return int(ws.Col), int(ws.Row)
}

// supportsUnicode checks if the terminal supports Unicode
func supportsUnicode() bool {
	// Check LANG and LC_ALL environment variables
	lang := os.Getenv("LANG")
	lcAll := os.Getenv("LC_ALL")

	return strings.Contains(lang, "UTF-8") || strings.Contains(lcAll, "UTF-8")
}
