package layout

import (
	"github.com/yourusername/spotlight/internal/types"
)

// CalculateCellBounds computes the pixel rect for a cell, relative to the grid origin.
//
// Parameters:
//   - cell: Cell definition with column/row spans (1-indexed, exclusive end)
//   - colPositions: Starting X position for each column (len = columns + 1)
//   - rowPositions: Starting Y position for each row (len = rows + 1)
//   - colSizes: Width of each column
//   - rowSizes: Height of each row
//   - gap: Gap between cells
//
// Returns: Rect with cell's position and size, zero if the cell is out of bounds
func CalculateCellBounds(
	cell types.Cell,
	colPositions, rowPositions []float64,
	colSizes, rowSizes []float64,
	gap float64,
) types.Rect {
	if !cellInBounds(cell, len(colSizes), len(rowSizes)) {
		return types.Rect{}
	}

	// Convert 1-indexed to 0-indexed
	colStart, colEnd := cell.ColumnStart-1, cell.ColumnEnd-1
	rowStart, rowEnd := cell.RowStart-1, cell.RowEnd-1

	return types.Rect{
		X:      colPositions[colStart],
		Y:      rowPositions[rowStart],
		Width:  spanSize(colSizes[colStart:colEnd], gap),
		Height: spanSize(rowSizes[rowStart:rowEnd], gap),
	}
}

// spanSize adds up spanned tracks and the gaps between them
func spanSize(sizes []float64, gap float64) float64 {
	total := float64(0)
	for i, size := range sizes {
		total += size
		if i < len(sizes)-1 {
			total += gap
		}
	}
	return total
}

func cellInBounds(cell types.Cell, columns, rows int) bool {
	if cell.ColumnStart < 1 || cell.ColumnEnd-1 > columns || cell.ColumnStart >= cell.ColumnEnd {
		return false
	}
	if cell.RowStart < 1 || cell.RowEnd-1 > rows || cell.RowStart >= cell.RowEnd {
		return false
	}
	return true
}

// AreasToCells converts a named areas grid to cell definitions
// Areas format:
//
//	areas:
//	  - [hero, hero, side]
//	  - [hero, hero, side]
//	  - [row1, row2, row3]
//
// This creates cells: hero (columns 1-2, rows 1-2), side (column 3, rows 1-2) and
// one cell per name on the last row. "." or "" leaves a slot empty.
// Cells are returned in order of first appearance.
func AreasToCells(areas [][]string) []types.Cell {
	cellMap := make(map[string]*types.Cell)
	var order []string

	for rowIdx, row := range areas {
		for colIdx, name := range row {
			if name == "." || name == "" {
				continue
			}

			// 1-indexed positions
			col := colIdx + 1
			rowNum := rowIdx + 1

			existing, ok := cellMap[name]
			if !ok {
				cellMap[name] = &types.Cell{
					ID:          name,
					ColumnStart: col,
					ColumnEnd:   col + 1,
					RowStart:    rowNum,
					RowEnd:      rowNum + 1,
				}
				order = append(order, name)
				continue
			}

			// Expand bounds
			if col < existing.ColumnStart {
				existing.ColumnStart = col
			}
			if col+1 > existing.ColumnEnd {
				existing.ColumnEnd = col + 1
			}
			if rowNum < existing.RowStart {
				existing.RowStart = rowNum
			}
			if rowNum+1 > existing.RowEnd {
				existing.RowEnd = rowNum + 1
			}
		}
	}

	cells := make([]types.Cell, 0, len(order))
	for _, name := range order {
		cells = append(cells, *cellMap[name])
	}
	return cells
}

// AreaIsRectangular reports whether every slot inside cell's bounds carries cell.ID
func AreaIsRectangular(areas [][]string, cell types.Cell) bool {
	for row := cell.RowStart - 1; row < cell.RowEnd-1; row++ {
		if row >= len(areas) {
			return false
		}
		for col := cell.ColumnStart - 1; col < cell.ColumnEnd-1; col++ {
			if col >= len(areas[row]) || areas[row][col] != cell.ID {
				return false
			}
		}
	}
	return true
}
