package types

import "fmt"

// Rect represents the bounding box of a focusable element
type Rect struct {
	X      float64 `json:"x" yaml:"x"`           // Left edge
	Y      float64 `json:"y" yaml:"y"`           // Top edge
	Width  float64 `json:"width" yaml:"width"`   // Width in pixels
	Height float64 `json:"height" yaml:"height"` // Height in pixels
}

// Point represents a 2D coordinate
type Point struct {
	X float64
	Y float64
}

// Right returns the right edge of the rect
func (r Rect) Right() float64 {
	return r.X + r.Width
}

// Bottom returns the bottom edge of the rect
func (r Rect) Bottom() float64 {
	return r.Y + r.Height
}

// Center returns the center point of a Rect
func (r Rect) Center() Point {
	return Point{
		X: r.X + r.Width/2,
		Y: r.Y + r.Height/2,
	}
}

// Contains checks if a point is inside the rect
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.Right() &&
		p.Y >= r.Y && p.Y <= r.Bottom()
}

// IsEmpty reports whether the rect has no area
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// String formats the rect as "x,y,w,h", the same form the scene parser accepts
func (r Rect) String() string {
	return fmt.Sprintf("%g,%g,%g,%g", r.X, r.Y, r.Width, r.Height)
}

// Direction represents navigation direction
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// NumDirections is the number of Direction values, used to size per-direction arrays
const NumDirections = 4

// AllDirections lists every direction in declaration order
var AllDirections = [NumDirections]Direction{DirUp, DirDown, DirLeft, DirRight}

// String returns the string representation of a Direction
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// ParseDirection converts a string to Direction
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "up":
		return DirUp, true
	case "down":
		return DirDown, true
	case "left":
		return DirLeft, true
	case "right":
		return DirRight, true
	default:
		return 0, false
	}
}

// Opposite returns the reverse direction
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	default:
		return DirLeft
	}
}

// IsHorizontal reports whether the direction moves along the X axis
func (d Direction) IsHorizontal() bool {
	return d == DirLeft || d == DirRight
}

// Valid reports whether d is one of the four directions
func (d Direction) Valid() bool {
	return d >= DirUp && d <= DirRight
}

// MarshalText implements encoding.TextMarshaler
func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid direction %d", int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, ok := ParseDirection(string(text))
	if !ok {
		return fmt.Errorf("invalid direction %q", string(text))
	}
	*d = parsed
	return nil
}
