package dateutil

import "time"

// GridCell is one cell of the 6x7 month grid. Cells borrowed from adjacent
// months are rendered inert by the caller.
type GridCell struct {
	Date    Date
	InMonth bool
}

// MonthGrid builds the 42-cell Monday-first grid for the given month,
// including the leading and trailing days of adjacent months needed to fill
// six full rows.
func MonthGrid(year int, month time.Month) []GridCell {
	first := New(year, month, 1)
	lead := (int(first.Weekday()) + 6) % 7

	cells := make([]GridCell, 0, 42)
	cursor := first.AddDays(-lead)
	for i := 0; i < 42; i++ {
		cells = append(cells, GridCell{
			Date:    cursor,
			InMonth: cursor.Year() == year && cursor.Month() == month,
		})
		cursor = cursor.AddDays(1)
	}
	return cells
}
