package config

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/yourusername/spotlight/internal/types"
)

var (
	number      = `(-?\d+(?:\.\d+)?)`
	rectPattern = regexp.MustCompile(`^` + number + `\s*,\s*` + number + `\s*,\s*` + number + `\s*,\s*` + number + `$`)
	namePattern = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9_.:/-]*$`)

	// Track size patterns
	frPattern     = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*fr$`)
	pxPattern     = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*px$`)
	minmaxPattern = regexp.MustCompile(`^minmax\s*\(\s*(\d+(?:\.\d+)?)\s*px\s*,\s*(\d+(?:\.\d+)?)\s*fr\s*\)$`)
	cellPattern   = regexp.MustCompile(`^(\d+)\s*,\s*(\d+)(?:\s*,\s*(\d+)\s*,\s*(\d+))?$`)
)

// ParseRect parses a rect string into a types.Rect
// Supported formats:
//   - "0,0,100,40" - x, y, width, height
//   - "10.5, 20, 100, 40" - fractional values and spaces after commas
func ParseRect(s string) (types.Rect, error) {
	s = strings.TrimSpace(s)

	matches := rectPattern.FindStringSubmatch(s)
	if matches == nil {
		return types.Rect{}, fmt.Errorf("invalid rect format: %q (want \"x,y,width,height\")", s)
	}

	values := make([]float64, 4)
	for i := range values {
		values[i], _ = strconv.ParseFloat(matches[i+1], 64)
	}
	if values[2] < 0 || values[3] < 0 {
		return types.Rect{}, fmt.Errorf("rect %q has negative size", s)
	}

	return types.Rect{X: values[0], Y: values[1], Width: values[2], Height: values[3]}, nil
}

// FormatRect converts a Rect back to its string representation
func FormatRect(r types.Rect) string {
	return r.String()
}

// LeaveSpec is a parsed leaveFor value, still referring to elements by name
type LeaveSpec struct {
	Kind types.LeaveKind
	Name string
}

// ParseLeaveTarget parses a leaveFor value
// Supported formats:
//   - "" - block navigation in that direction
//   - "search" - go to the node named search
//   - "@sidebar" - enter the container named sidebar
func ParseLeaveTarget(s string) (LeaveSpec, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return LeaveSpec{Kind: types.LeaveBlock}, nil
	}

	kind := types.LeaveNode
	name := s
	if strings.HasPrefix(s, "@") {
		kind = types.LeaveContainer
		name = strings.TrimPrefix(s, "@")
	}

	if !namePattern.MatchString(name) {
		return LeaveSpec{}, fmt.Errorf("invalid leaveFor target: %q", s)
	}
	return LeaveSpec{Kind: kind, Name: name}, nil
}

// FormatLeaveTarget converts a LeaveSpec back to its string representation
func FormatLeaveTarget(spec LeaveSpec) string {
	switch spec.Kind {
	case types.LeaveContainer:
		return "@" + spec.Name
	case types.LeaveNode:
		return spec.Name
	default:
		return ""
	}
}

// ParseLeaveDirection parses a leaveFor key
func ParseLeaveDirection(s string) (types.Direction, error) {
	dir, ok := types.ParseDirection(s)
	if !ok {
		return 0, fmt.Errorf("invalid direction: %q", s)
	}
	return dir, nil
}

// ParseTrackSize parses a track size string into a TrackSize struct
// Supported formats:
//   - "1fr", "2fr", "1.5fr" - Fractional units
//   - "300px", "100.5px" - Fixed pixels
//   - "auto" - Collapses to zero
//   - "minmax(200px, 1fr)" - Constrained flexible
func ParseTrackSize(s string) (types.TrackSize, error) {
	s = strings.TrimSpace(s)

	if s == "auto" {
		return types.TrackSize{Type: types.TrackAuto}, nil
	}

	if matches := frPattern.FindStringSubmatch(s); matches != nil {
		value, _ := strconv.ParseFloat(matches[1], 64)
		return types.TrackSize{Type: types.TrackFr, Value: value}, nil
	}

	if matches := pxPattern.FindStringSubmatch(s); matches != nil {
		value, _ := strconv.ParseFloat(matches[1], 64)
		return types.TrackSize{Type: types.TrackPx, Value: value}, nil
	}

	if matches := minmaxPattern.FindStringSubmatch(s); matches != nil {
		min, _ := strconv.ParseFloat(matches[1], 64)
		max, _ := strconv.ParseFloat(matches[2], 64)
		return types.TrackSize{Type: types.TrackMinMax, Min: min, Max: max}, nil
	}

	return types.TrackSize{}, fmt.Errorf("invalid track size format: %s", s)
}

// ParseCell parses a grid cell reference
// Supported formats:
//   - "2,1" - column 2, row 1
//   - "1,2,3,1" - column 1, row 2, spanning 3 columns and 1 row
func ParseCell(s string) (types.Cell, error) {
	s = strings.TrimSpace(s)

	matches := cellPattern.FindStringSubmatch(s)
	if matches == nil {
		return types.Cell{}, fmt.Errorf("invalid cell format: %q (want \"column,row\" or \"column,row,columnSpan,rowSpan\")", s)
	}

	col, _ := strconv.Atoi(matches[1])
	row, _ := strconv.Atoi(matches[2])
	colSpan, rowSpan := 1, 1
	if matches[3] != "" {
		colSpan, _ = strconv.Atoi(matches[3])
		rowSpan, _ = strconv.Atoi(matches[4])
	}
	if col < 1 || row < 1 || colSpan < 1 || rowSpan < 1 {
		return types.Cell{}, fmt.Errorf("cell %q: positions and spans start at 1", s)
	}

	return types.Cell{
		ColumnStart: col,
		ColumnEnd:   col + colSpan,
		RowStart:    row,
		RowEnd:      row + rowSpan,
	}, nil
}
