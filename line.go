package vtcore

// Line is an ordered sequence of cells making up one row of the grid.
// Wrapped is true when the line is the visual continuation of its
// predecessor after a right-margin overflow, as opposed to starting
// after a hard newline.
type Line struct {
	Cells   []Cell
	Wrapped bool
}

// NewLine returns a line of cols default cells.
func NewLine(cols int) Line {
	cells := make([]Cell, cols)
	for i := range cells {
		cells[i] = NewCell()
	}
	return Line{Cells: cells}
}

// Clone returns a deep copy of the line (cells and their combining-mark slices).
func (l Line) Clone() Line {
	cells := make([]Cell, len(l.Cells))
	for i, c := range l.Cells {
		cells[i] = c.Copy()
	}
	return Line{Cells: cells, Wrapped: l.Wrapped}
}

// resize returns a copy of the line truncated or padded with default
// cells to exactly cols width.
func (l Line) resize(cols int) Line {
	if len(l.Cells) == cols {
		return l
	}
	cells := make([]Cell, cols)
	n := len(l.Cells)
	if n > cols {
		n = cols
	}
	copy(cells, l.Cells[:n])
	for i := n; i < cols; i++ {
		cells[i] = NewCell()
	}
	return Line{Cells: cells, Wrapped: l.Wrapped}
}

// lastNonBlank returns the index of the last cell holding a non-space,
// non-zero rune that isn't a wide-char spacer, or -1 if the line is blank.
func (l Line) lastNonBlank() int {
	for col := len(l.Cells) - 1; col >= 0; col-- {
		c := &l.Cells[col]
		if c.Char != ' ' && c.Char != 0 && !c.IsWideSpacer() {
			return col
		}
	}
	return -1
}

// fullText renders every cell including trailing blanks, skipping
// wide-character spacer cells. Used for the interior lines of a
// wrapped paragraph, where trailing spaces are real content.
func (l Line) fullText() string {
	runes := make([]rune, 0, len(l.Cells))
	for col := range l.Cells {
		c := &l.Cells[col]
		if c.IsWideSpacer() {
			continue
		}
		if c.Char == 0 {
			runes = append(runes, ' ')
		} else {
			runes = append(runes, c.Char)
			runes = append(runes, c.Combining...)
		}
	}
	return string(runes)
}

// text renders the line's visible content as a string, converting
// blank/zero cells to spaces and skipping wide-character spacer cells.
func (l Line) text() string {
	last := l.lastNonBlank()
	if last < 0 {
		return ""
	}
	runes := make([]rune, 0, last+1)
	for col := 0; col <= last; col++ {
		c := &l.Cells[col]
		if c.IsWideSpacer() {
			continue
		}
		if c.Char == 0 {
			runes = append(runes, ' ')
		} else {
			runes = append(runes, c.Char)
			runes = append(runes, c.Combining...)
		}
	}
	return string(runes)
}
