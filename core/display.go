package core

// CharDisplay is the abstract character LCD interface that core code uses.
// Platform-specific implementations wrap the actual LCD driver.
type CharDisplay interface {
	// SetCursor moves the output position to col, row (zero based)
	SetCursor(col, row uint8)

	// Print writes text at the cursor and returns the number of cells used
	Print(b []byte) int

	// Flush pushes buffered output to the device
	Flush() error
}

const (
	FrequencyUnit   = "Hz"
	placeholderText = "5 gold rings"
)

// Panel lays out the mode name on row 0 and the reading on row 1
type Panel struct {
	lcd     CharDisplay
	columns uint8
	rows    uint8
	mode    Mode
	buf     []byte
}

// NewPanel creates a panel on a columns x rows display
func NewPanel(lcd CharDisplay, columns, rows uint8) *Panel {
	return &Panel{
		lcd:     lcd,
		columns: columns,
		rows:    rows,
		buf:     make([]byte, 0, columns),
	}
}

// Mode returns the mode currently shown
func (p *Panel) Mode() Mode {
	return p.mode
}

// Splash shows one line per row, extra lines are dropped
func (p *Panel) Splash(lines ...string) error {
	for row := uint8(0); row < p.rows; row++ {
		p.buf = p.buf[:0]
		if int(row) < len(lines) {
			p.buf = append(p.buf, lines[row]...)
		}
		p.printRow(row)
	}
	return p.lcd.Flush()
}

// SetMode shows the mode name and clears the reading row
func (p *Panel) SetMode(m Mode) error {
	p.mode = m
	p.buf = append(p.buf[:0], m.String()...)
	p.printRow(0)
	p.buf = p.buf[:0]
	p.printRow(1)
	return p.lcd.Flush()
}

// Show renders a reading for the current mode on row 1
func (p *Panel) Show(hz uint32) error {
	p.buf = p.buf[:0]
	switch p.mode {
	case ModeIdle:
	case ModeFrequency:
		p.buf = appendUint(p.buf, uint64(hz))
		p.buf = append(p.buf, FrequencyUnit...)
	default:
		p.buf = append(p.buf, placeholderText...)
	}
	p.printRow(1)
	return p.lcd.Flush()
}

// printRow writes p.buf at the start of row and pads the rest with spaces
func (p *Panel) printRow(row uint8) {
	if len(p.buf) > int(p.columns) {
		p.buf = p.buf[:p.columns]
	}
	p.lcd.SetCursor(0, row)
	n := p.lcd.Print(p.buf)
	p.clearToEOL(n)
}

func (p *Panel) clearToEOL(printed int) {
	space := []byte{' '}
	for ; printed < int(p.columns); printed++ {
		p.lcd.Print(space)
	}
}
