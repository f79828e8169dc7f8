package vtcore

import "github.com/coreterm/vtcore/ansi"

// CsiDispatch handles a complete CSI sequence once the parser has
// accumulated its parameters, intermediates, and final byte. DEC
// private sequences (CSI ? ... h/l, etc.) are distinguished by a
// leading '?' in intermediates, collected there by the parser's
// collectIntermediate step rather than as an ordinary parameter.
func (t *Terminal) CsiDispatch(params *ansi.Params, intermediates []byte, ignore bool, action rune) {
	if ignore {
		return
	}

	private := len(intermediates) > 0 && intermediates[0] == '?'
	groups := params.Groups()
	n := func(def uint16) int { return int(params.Param(0, def)) }

	switch action {
	case 'A':
		t.MoveUp(n(1))
	case 'B':
		t.MoveDown(n(1))
	case 'C':
		t.MoveForward(n(1))
	case 'D':
		t.MoveBackward(n(1))
	case 'E':
		t.MoveDownCr(n(1))
	case 'F':
		t.MoveUpCr(n(1))
	case 'G', '`':
		t.GotoCol(n(1) - 1)
	case 'H', 'f':
		row := int(params.Param(0, 1))
		col := int(params.Param(1, 1))
		t.Goto(row-1, col-1)
	case 'I':
		t.MoveForwardTabs(n(1))
	case 'J':
		t.ClearScreen(ansi.ClearMode(n(0)))
	case 'K':
		t.ClearLine(ansi.LineClearMode(n(0)))
	case 'L':
		t.InsertBlankLines(n(1))
	case 'M':
		t.DeleteLines(n(1))
	case 'P':
		t.DeleteChars(n(1))
	case '@':
		t.InsertBlank(n(1))
	case 'S':
		t.ScrollUp(n(1))
	case 'T':
		t.ScrollDown(n(1))
	case 'X':
		t.EraseChars(n(1))
	case 'Z':
		t.MoveBackwardTabs(n(1))
	case 'a':
		t.MoveForward(n(1))
	case 'b':
		t.repeatLastPrinted(n(1))
	case 'c':
		var marker byte
		if len(intermediates) > 0 {
			marker = intermediates[0]
		}
		t.IdentifyTerminal(marker)
	case 'd':
		t.GotoLine(n(1) - 1)
	case 'e':
		t.MoveDown(n(1))
	case 'g':
		t.ClearTabs(ansi.TabulationClearMode(n(0)))
	case 'h':
		t.dispatchModeChange(groups, private, true)
	case 'l':
		t.dispatchModeChange(groups, private, false)
	case 'm':
		t.ProcessSGR(groups)
	case 'n':
		t.DeviceStatus(n(0))
	case 'q':
		if len(intermediates) > 0 && intermediates[0] == ' ' {
			t.SetCursorStyle(decscusrStyle(n(0)))
		}
	case 'r':
		if !private {
			top := int(params.Param(0, 1))
			bottom := int(params.ParamRaw(1, uint16(t.Rows())))
			if bottom == 0 {
				bottom = t.Rows()
			}
			t.SetScrollingRegion(top-1, bottom)
		}
	case 's':
		if !private {
			t.SaveCursorPosition()
		}
	case 't':
		switch n(0) {
		case 14:
			t.TextAreaSizePixels()
		case 16:
			t.getCellSizePixels()
		case 18:
			t.TextAreaSizeChars()
		}
	case 'u':
		t.RestoreCursorPosition()
	}
}

// decscusrStyle maps a DECSCUSR (CSI Ps SP q) numeric code to a
// CursorStyle. 0 and 1 both mean "blinking block" per the spec.
func decscusrStyle(n int) CursorStyle {
	if n <= 1 {
		return CursorStyleBlinkingBlock
	}
	if n > 6 {
		n = 6
	}
	return CursorStyle(n - 1)
}

// repeatLastPrinted implements REP (CSI Ps b): reprint the most
// recently printed rune n more times.
func (t *Terminal) repeatLastPrinted(n int) {
	t.mu.Lock()
	if !t.hasLastWrite {
		t.mu.Unlock()
		return
	}
	cell := t.activeBuffer.Cell(t.lastWriteRow, t.lastWriteCol)
	var r rune
	if cell != nil {
		r = cell.Char
	}
	t.mu.Unlock()

	if r == 0 {
		return
	}
	for i := 0; i < n; i++ {
		t.printInternal(r)
	}
}

// dispatchModeChange applies a CSI h/l sequence's mode list, one code
// at a time so each passes through SetMode/UnsetMode middleware
// individually, matching how a real terminal's mode table is updated.
func (t *Terminal) dispatchModeChange(groups [][]uint16, private, set bool) {
	for _, g := range groups {
		if len(g) == 0 {
			continue
		}
		mode, ok := modeBit(int(g[0]), private)
		if !ok {
			continue
		}
		if set {
			t.SetMode(mode)
		} else {
			t.UnsetMode(mode)
		}
	}
}

// modeBit translates a DEC private (CSI ? ... h/l) or ANSI (CSI ... h/l)
// numeric mode code to this module's TerminalMode bit.
func modeBit(code int, private bool) (ansi.TerminalMode, bool) {
	if !private {
		switch code {
		case 4:
			return ansi.ModeInsert, true
		case 20:
			return ansi.ModeLineFeedNewline, true
		}
		return 0, false
	}

	switch code {
	case 1:
		return ansi.ModeCursorKeys, true
	case 6:
		return ansi.ModeOriginMode, true
	case 7:
		return ansi.ModeAutowrap, true
	case 9:
		return ansi.ModeMouseX10, true
	case 25:
		return ansi.ModeCursorVisible, true
	case 45:
		return ansi.ModeReverseWraparound, true
	case 47, 1047:
		return ansi.ModeAlternateScreen, true
	case 1048:
		return ansi.ModeSaveRestoreCursor, true
	case 1000:
		return ansi.ModeMouseVT200, true
	case 1002:
		return ansi.ModeMouseButtonEvent, true
	case 1003:
		return ansi.ModeMouseAnyEvent, true
	case 1004:
		return ansi.ModeFocusEvents, true
	case 1005:
		return ansi.ModeMouseUTF8, true
	case 1006:
		return ansi.ModeMouseSGR, true
	case 1015:
		return ansi.ModeMouseURXVT, true
	case 1049:
		return ansi.ModeAlternateScreenSaveCursor, true
	case 2004:
		return ansi.ModeBracketedPaste, true
	case 2026:
		return ansi.ModeSynchronizedOutput, true
	}
	return 0, false
}

// mouseModeName returns the short name MouseModeProvider expects for
// the highest-priority active mouse encoding, or "" if mouse
// reporting is off. SGR and URXVT are mutually exclusive encodings
// layered on top of VT200/X10 click reporting, so they take priority
// when present.
func mouseModeName(modes ansi.TerminalMode) string {
	switch {
	case modes&ansi.ModeMouseSGR != 0:
		return "sgr"
	case modes&ansi.ModeMouseURXVT != 0:
		return "urxvt"
	case modes&ansi.ModeMouseX10 != 0:
		return "x10"
	case modes&(ansi.ModeMouseVT200|ansi.ModeMouseButtonEvent|ansi.ModeMouseAnyEvent) != 0:
		return "vt200"
	default:
		return ""
	}
}

// SetMode enables a terminal mode (DECSET / ANSI SM).
func (t *Terminal) SetMode(mode ansi.TerminalMode) {
	if t.middleware != nil && t.middleware.SetMode != nil {
		t.middleware.SetMode(mode, t.setModeInternal)
		return
	}
	t.setModeInternal(mode)
}

func (t *Terminal) setModeInternal(mode ansi.TerminalMode) {
	t.mu.Lock()
	already := t.modes&mode != 0
	t.modes |= mode

	switch mode {
	case ansi.ModeCursorVisible:
		t.cursor.Visible = true
	case ansi.ModeAlternateScreen:
		if !already {
			t.activeBuffer = t.alternateBuffer
		}
	case ansi.ModeSaveRestoreCursor:
		// Saves on every set, not just the first: applications re-arm
		// 1048 to checkpoint the cursor repeatedly.
		t.savedCursor = &SavedCursor{
			Row: t.cursor.Row, Col: t.cursor.Col,
			Template: t.template, OriginMode: t.modes&ansi.ModeOriginMode != 0,
			CharsetIndex: t.activeCharset, Charsets: t.charsets,
		}
	case ansi.ModeAlternateScreenSaveCursor:
		if !already {
			t.savedCursor = &SavedCursor{
				Row: t.cursor.Row, Col: t.cursor.Col,
				Template: t.template, OriginMode: t.modes&ansi.ModeOriginMode != 0,
				CharsetIndex: t.activeCharset, Charsets: t.charsets,
			}
			t.activeBuffer = t.alternateBuffer
			t.alternateBuffer.ClearAll()
			t.cursor.Row, t.cursor.Col = 0, 0
		}
	}

	mouseModes := mode & (ansi.ModeMouseX10 | ansi.ModeMouseVT200 | ansi.ModeMouseButtonEvent |
		ansi.ModeMouseAnyEvent | ansi.ModeMouseSGR | ansi.ModeMouseURXVT)
	modes := t.modes
	provider := t.mouseModeProvider
	t.mu.Unlock()

	if mouseModes != 0 {
		provider.MouseModeChanged(mouseModeName(modes))
	}
}

// UnsetMode disables a terminal mode (DECRST / ANSI RM).
func (t *Terminal) UnsetMode(mode ansi.TerminalMode) {
	if t.middleware != nil && t.middleware.UnsetMode != nil {
		t.middleware.UnsetMode(mode, t.unsetModeInternal)
		return
	}
	t.unsetModeInternal(mode)
}

func (t *Terminal) unsetModeInternal(mode ansi.TerminalMode) {
	t.mu.Lock()
	already := t.modes&mode != 0
	t.modes &^= mode

	switch mode {
	case ansi.ModeCursorVisible:
		t.cursor.Visible = false
	case ansi.ModeAlternateScreen:
		if already {
			t.activeBuffer = t.primaryBuffer
		}
	case ansi.ModeSaveRestoreCursor:
		if t.savedCursor != nil {
			t.cursor.Row = clamp(t.savedCursor.Row, 0, t.rows-1)
			t.cursor.Col = clamp(t.savedCursor.Col, 0, t.cols-1)
			t.template = t.savedCursor.Template
			t.activeCharset = t.savedCursor.CharsetIndex
			t.charsets = t.savedCursor.Charsets
			if t.savedCursor.OriginMode {
				t.modes |= ansi.ModeOriginMode
			} else {
				t.modes &^= ansi.ModeOriginMode
			}
			t.pendingWrap = false
		}
	case ansi.ModeAlternateScreenSaveCursor:
		if already {
			t.activeBuffer = t.primaryBuffer
			if t.savedCursor != nil {
				t.cursor.Row = clamp(t.savedCursor.Row, 0, t.rows-1)
				t.cursor.Col = clamp(t.savedCursor.Col, 0, t.cols-1)
				t.template = t.savedCursor.Template
				t.activeCharset = t.savedCursor.CharsetIndex
				t.charsets = t.savedCursor.Charsets
			}
		}
	}

	mouseModes := mode & (ansi.ModeMouseX10 | ansi.ModeMouseVT200 | ansi.ModeMouseButtonEvent |
		ansi.ModeMouseAnyEvent | ansi.ModeMouseSGR | ansi.ModeMouseURXVT)
	modes := t.modes
	provider := t.mouseModeProvider
	t.mu.Unlock()

	if mouseModes != 0 {
		provider.MouseModeChanged(mouseModeName(modes))
	}
}
