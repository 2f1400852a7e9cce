package sim

import "strings"

// LCD is a character display that keeps its contents as text
type LCD struct {
	cols, rows uint8
	cells      [][]byte
	col, row   uint8

	// Flushes counts calls to Flush
	Flushes int
}

// NewLCD creates a blank cols x rows display
func NewLCD(cols, rows uint8) *LCD {
	l := &LCD{cols: cols, rows: rows, cells: make([][]byte, rows)}
	for i := range l.cells {
		l.cells[i] = []byte(strings.Repeat(" ", int(cols)))
	}
	return l
}

// SetCursor moves the output position, clamped to the display
func (l *LCD) SetCursor(col, row uint8) {
	if row >= l.rows {
		row = l.rows - 1
	}
	l.col, l.row = col, row
}

// Print writes at the cursor; characters past the row end are lost
func (l *LCD) Print(b []byte) int {
	n := 0
	for _, c := range b {
		if l.col >= l.cols {
			break
		}
		l.cells[l.row][l.col] = c
		l.col++
		n++
	}
	return n
}

// Flush is a no-op; the text is always current
func (l *LCD) Flush() error {
	l.Flushes++
	return nil
}

// Line returns one row of the display
func (l *LCD) Line(row int) string {
	return string(l.cells[row])
}

// String renders the display inside a frame
func (l *LCD) String() string {
	var sb strings.Builder
	border := "+" + strings.Repeat("-", int(l.cols)) + "+\n"
	sb.WriteString(border)
	for _, row := range l.cells {
		sb.WriteString("|")
		sb.Write(row)
		sb.WriteString("|\n")
	}
	sb.WriteString(border)
	return sb.String()
}
