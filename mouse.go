package vtcore

import (
	"fmt"

	"github.com/coreterm/vtcore/ansi"
)

// Mouse button codes in the X11 convention the wire protocols use.
// Motion events add 32; scroll wheel events use 64/65.
const (
	MouseButtonLeft    = 0
	MouseButtonMiddle  = 1
	MouseButtonRight   = 2
	MouseButtonRelease = 3
	MouseWheelUp       = 64
	MouseWheelDown     = 65
)

// EncodeMouseEvent returns the report bytes for a mouse event at the
// 1-based cell position (col, row), or nil if the active tracking mode
// doesn't report it. When several encodings are enabled at once the
// most capable wins: SGR (1006), then URXVT (1015), then the legacy
// X10/VT200 byte encoding.
//
// Button-event (1002) and any-event (1003) tracking accept motion
// events (button code +32); plain VT200 (1000) and X10 (9) tracking
// drop them.
func (t *Terminal) EncodeMouseEvent(button, col, row int, pressed bool) []byte {
	t.mu.RLock()
	modes := t.modes
	t.mu.RUnlock()

	const tracking = ansi.ModeMouseX10 | ansi.ModeMouseVT200 |
		ansi.ModeMouseButtonEvent | ansi.ModeMouseAnyEvent
	if modes&tracking == 0 {
		return nil
	}

	motion := button&32 != 0
	if motion && modes&(ansi.ModeMouseButtonEvent|ansi.ModeMouseAnyEvent) == 0 {
		return nil
	}

	switch {
	case modes&ansi.ModeMouseSGR != 0:
		suffix := byte('M')
		if !pressed {
			suffix = 'm'
		}
		return []byte(fmt.Sprintf("\x1b[<%d;%d;%d%c", button, col, row, suffix))

	case modes&ansi.ModeMouseURXVT != 0:
		if !pressed {
			button = MouseButtonRelease
		}
		return []byte(fmt.Sprintf("\x1b[%d;%d;%dM", button+32, col, row))

	default:
		// X10 tracking reports presses only; VT200 reports a release as
		// button 3.
		if !pressed {
			if modes&tracking == ansi.ModeMouseX10 {
				return nil
			}
			button = MouseButtonRelease
		}
		cb := legacyCoord(button + 32)
		cx := legacyCoord(col + 32)
		cy := legacyCoord(row + 32)
		return []byte{0x1b, '[', 'M', cb, cx, cy}
	}
}

// ReportMouseEvent encodes a mouse event and writes it straight to the
// response provider, the path an embedder's input loop normally takes.
func (t *Terminal) ReportMouseEvent(button, col, row int, pressed bool) {
	if data := t.EncodeMouseEvent(button, col, row, pressed); data != nil {
		t.writeResponse(data)
	}
}

// legacyCoord clamps a +32-offset byte value to the range the legacy
// encoding can express (coordinates past 223 are unreportable).
func legacyCoord(v int) byte {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return byte(v)
}
