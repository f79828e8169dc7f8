package vtcore

import (
	"fmt"
	"image/color"
)

// DeviceStatus answers a Device Status Report request (CSI n). Only the
// two forms xterm and friends actually emit are implemented: 5 (device
// OK) and 6 (cursor position report).
func (t *Terminal) DeviceStatus(n int) {
	if t.middleware != nil && t.middleware.DeviceStatus != nil {
		t.middleware.DeviceStatus(n, t.deviceStatusInternal)
		return
	}
	t.deviceStatusInternal(n)
}

func (t *Terminal) deviceStatusInternal(n int) {
	switch n {
	case 5:
		t.writeResponseString("\x1b[0n")
	case 6:
		t.mu.RLock()
		row, col := t.cursor.Row, t.cursor.Col
		t.mu.RUnlock()
		t.writeResponseString(fmt.Sprintf("\x1b[%d;%dR", row+1, col+1))
	}
}

// IdentifyTerminal answers a Device Attributes request. b is the
// intermediate byte distinguishing DA1 (CSI c, b==0) from DA2 (CSI >c,
// b=='>'); this module reports itself as a VT220 with Sixel support.
func (t *Terminal) IdentifyTerminal(b byte) {
	if t.middleware != nil && t.middleware.IdentifyTerminal != nil {
		t.middleware.IdentifyTerminal(b, t.identifyTerminalInternal)
		return
	}
	t.identifyTerminalInternal(b)
}

func (t *Terminal) identifyTerminalInternal(b byte) {
	switch b {
	case '>':
		t.writeResponseString("\x1b[>1;10;0c")
	default:
		t.writeResponseString("\x1b[?62;4c")
	}
}

// TextAreaSizeChars answers CSI 18 t with the text area size in
// character cells.
func (t *Terminal) TextAreaSizeChars() {
	if t.middleware != nil && t.middleware.TextAreaSizeChars != nil {
		t.middleware.TextAreaSizeChars(t.textAreaSizeCharsInternal)
		return
	}
	t.textAreaSizeCharsInternal()
}

func (t *Terminal) textAreaSizeCharsInternal() {
	t.mu.RLock()
	rows, cols := t.rows, t.cols
	t.mu.RUnlock()
	t.writeResponseString(fmt.Sprintf("\x1b[8;%d;%dt", rows, cols))
}

// TextAreaSizePixels answers CSI 14 t with the text area size in
// pixels, computed from the size provider's cell dimensions.
func (t *Terminal) TextAreaSizePixels() {
	if t.middleware != nil && t.middleware.TextAreaSizePixels != nil {
		t.middleware.TextAreaSizePixels(t.textAreaSizePixelsInternal)
		return
	}
	t.textAreaSizePixelsInternal()
}

func (t *Terminal) textAreaSizePixelsInternal() {
	t.mu.RLock()
	rows, cols := t.rows, t.cols
	provider := t.sizeProvider
	t.mu.RUnlock()

	if provider == nil {
		t.writeResponseString("\x1b[4;0;0t")
		return
	}

	cellW, cellH := provider.CellSizePixels()
	t.writeResponseString(fmt.Sprintf("\x1b[4;%d;%dt", rows*cellH, cols*cellW))
}

// CellSizePixels reports the size provider's per-cell pixel dimensions,
// answering CSI 16 t.
func (t *Terminal) CellSizePixels() (width, height int) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.sizeProvider == nil {
		return 0, 0
	}
	return t.sizeProvider.CellSizePixels()
}

// getCellSizePixels reports CSI 16 t directly to the response provider.
func (t *Terminal) getCellSizePixels() {
	w, h := t.CellSizePixels()
	t.writeResponseString(fmt.Sprintf("\x1b[6;%d;%dt", h, w))
}

// resolveCellColor resolves a Style Color to RGBA, consulting runtime
// palette overrides set via OSC 4/104 before falling back to the
// built-in default palette.
func (t *Terminal) resolveCellColor(c Color, fg bool) color.RGBA {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.resolveCellColorLocked(c, fg)
}

// resolveCellColorLocked is resolveCellColor for callers already holding
// the terminal lock (the snapshot path resolves every cell under one
// read lock).
func (t *Terminal) resolveCellColorLocked(c Color, fg bool) color.RGBA {
	if c.Kind == ColorIndexed || c.Kind == ColorNamed {
		if override, ok := t.colors[c.Index]; ok {
			return ResolveColor(override, fg)
		}
	}
	return ResolveColor(c, fg)
}

// SetColor sets a palette entry (OSC 4) or a semantic named color
// override (OSC 10/11/12 routed through the same override map by
// named index). The color-change notification fires after the entry
// is installed so the provider sees the new value if it queries back.
func (t *Terminal) SetColor(index int, c Color) {
	if t.middleware != nil && t.middleware.SetColor != nil {
		t.middleware.SetColor(index, c, t.setColorInternal)
		return
	}
	t.setColorInternal(index, c)
}

func (t *Terminal) setColorInternal(index int, c Color) {
	t.mu.Lock()
	t.colors[index] = c
	provider := t.colorProvider
	t.mu.Unlock()
	provider.ColorChanged(index)
}

// ResetColor removes a palette override, reverting index to its
// built-in default (OSC 104). i < 0 clears every override.
func (t *Terminal) ResetColor(i int) {
	if t.middleware != nil && t.middleware.ResetColor != nil {
		t.middleware.ResetColor(i, t.resetColorInternal)
		return
	}
	t.resetColorInternal(i)
}

func (t *Terminal) resetColorInternal(i int) {
	t.mu.Lock()
	if i < 0 {
		t.colors = make(map[int]Color)
	} else {
		delete(t.colors, i)
	}
	provider := t.colorProvider
	t.mu.Unlock()
	provider.ColorChanged(i)
}

// SetDynamicColor handles the OSC 10/11/12 dynamic-color protocol:
// prefix identifies which semantic slot (foreground/background/cursor)
// and index is the corresponding NamedColor* constant. A query (no
// color spec supplied by the caller, signaled by an empty terminator
// being meaningless here) is answered by reporting the current value
// in the same OSC form; callers that parsed an actual color spec call
// SetColor directly and never reach this path for the "set" case.
func (t *Terminal) SetDynamicColor(prefix string, index int, terminator string) {
	if t.middleware != nil && t.middleware.SetDynamicColor != nil {
		t.middleware.SetDynamicColor(prefix, index, terminator, t.setDynamicColorInternal)
		return
	}
	t.setDynamicColorInternal(prefix, index, terminator)
}

func (t *Terminal) setDynamicColorInternal(prefix string, index int, terminator string) {
	rgba := t.resolveCellColor(NamedColorValue(index), index != NamedColorBackground)
	spec := fmt.Sprintf("rgb:%02x%02x/%02x%02x/%02x%02x", rgba.R, rgba.R, rgba.G, rgba.G, rgba.B, rgba.B)
	t.writeResponseString("\x1b]" + prefix + ";" + spec + terminator)
}
