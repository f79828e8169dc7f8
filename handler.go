package vtcore

import (
	"encoding/base64"

	"github.com/coreterm/vtcore/ansi"
)

// Print handles a printable rune decoded by the parser. Combining marks
// attach to the previously printed cell instead of starting a new one;
// everything else advances the cursor, wrapping the line if autowrap is
// enabled and the active line is full.
func (t *Terminal) Print(r rune) {
	if t.middleware != nil && t.middleware.Input != nil {
		t.middleware.Input(r, t.printInternal)
		return
	}
	t.printInternal(r)
}

func (t *Terminal) printInternal(r rune) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.printLocked(r)
}

func (t *Terminal) printLocked(r rune) {
	if isCombiningMark(r) && t.hasLastWrite {
		if cell := t.activeBuffer.Cell(t.lastWriteRow, t.lastWriteCol); cell != nil {
			cell.AddCombining(r)
			t.activeBuffer.MarkDirty(t.lastWriteRow, t.lastWriteCol)
		}
		return
	}

	r = t.translateLineDrawing(r)

	width := runeWidth(r)
	if width <= 0 {
		return
	}

	if t.pendingWrap {
		t.pendingWrap = false
		if t.autoResize {
			t.cursor.Col = t.cols
		} else if t.modes&ansi.ModeAutowrap != 0 {
			t.cursor.Row++
			t.cursor.Col = 0
			t.scrollIfNeeded()
			t.activeBuffer.SetWrapped(t.cursor.Row, true)
		}
	}

	if t.cursor.Col+width > t.cols {
		if t.autoResize {
			t.activeBuffer.GrowCols(t.cursor.Row, t.cursor.Col+width)
			t.cols = t.activeBuffer.Cols()
		} else if t.modes&ansi.ModeAutowrap != 0 {
			t.cursor.Row++
			t.cursor.Col = 0
			t.scrollIfNeeded()
			t.activeBuffer.SetWrapped(t.cursor.Row, true)
		} else {
			t.cursor.Col = t.cols - width
			if t.cursor.Col < 0 {
				t.cursor.Col = 0
			}
		}
	}

	if t.modes&ansi.ModeInsert != 0 {
		t.activeBuffer.InsertBlanks(t.cursor.Row, t.cursor.Col, width)
	}

	cell := t.activeBuffer.Cell(t.cursor.Row, t.cursor.Col)
	if cell != nil {
		cell.Reset()
		cell.Char = r
		cell.Style = t.template.Style
		cell.Hyperlink = t.currentHyperlink
		if width == 2 {
			cell.SetFlag(CellFlagWideChar)
		}
		t.activeBuffer.MarkDirty(t.cursor.Row, t.cursor.Col)
	}

	if width == 2 && t.cursor.Col+1 < t.cols {
		spacer := t.activeBuffer.Cell(t.cursor.Row, t.cursor.Col+1)
		if spacer != nil {
			spacer.Reset()
			spacer.Style = t.template.Style
			spacer.SetFlag(CellFlagWideCharSpacer)
			t.activeBuffer.MarkDirty(t.cursor.Row, t.cursor.Col+1)
		}
	}

	t.hasLastWrite = true
	t.lastWriteRow = t.cursor.Row
	t.lastWriteCol = t.cursor.Col

	t.cursor.Col += width
	if t.cursor.Col >= t.cols {
		t.cursor.Col = t.cols - 1
		t.pendingWrap = true
	}
}

// translateLineDrawing maps r through the active G-set's charset table.
func (t *Terminal) translateLineDrawing(r rune) rune {
	return t.charsets[t.activeCharset].translate(r)
}

// Execute handles a single-byte C0/C1 control function.
func (t *Terminal) Execute(b byte) {
	switch b {
	case 0x07:
		t.Bell()
	case 0x08:
		t.Backspace()
	case 0x09:
		t.Tab(1)
	case 0x0A, 0x0B, 0x0C:
		t.LineFeed()
	case 0x0D:
		t.CarriageReturn()
	case 0x0E:
		t.SetActiveCharset(int(CharsetIndexG1))
	case 0x0F:
		t.SetActiveCharset(int(CharsetIndexG0))
	}
}

// EscDispatch handles an escape sequence with no CSI/OSC/DCS introducer.
func (t *Terminal) EscDispatch(intermediates []byte, ignore bool, final byte) {
	if len(intermediates) > 0 {
		switch intermediates[0] {
		case '(', ')', '*', '+':
			t.ConfigureCharset(CharsetIndex(intermediates[0]-'('), charsetFromDesignator(final))
			return
		case '#':
			if final == '8' {
				t.Decaln()
			}
			return
		}
	}

	switch final {
	case '7':
		t.SaveCursorPosition()
	case '8':
		t.RestoreCursorPosition()
	case '=':
		t.SetKeypadApplicationMode()
	case '>':
		t.UnsetKeypadApplicationMode()
	case 'D':
		t.LineFeed()
	case 'E':
		t.CarriageReturn()
		t.LineFeed()
	case 'H':
		t.HorizontalTabSet()
	case 'M':
		t.ReverseIndex()
	case 'c':
		t.ResetState()
	}
}

// charsetFromDesignator maps an ESC ( X final byte to a Charset.
func charsetFromDesignator(final byte) Charset {
	if final == '0' {
		return CharsetLineDrawing
	}
	return CharsetASCII
}

// --- Simple control functions ---

func (t *Terminal) Backspace() {
	if t.middleware != nil && t.middleware.Backspace != nil {
		t.middleware.Backspace(t.backspaceInternal)
		return
	}
	t.backspaceInternal()
}

func (t *Terminal) backspaceInternal() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cursor.Col > 0 {
		t.cursor.Col--
	}
	t.pendingWrap = false
}

func (t *Terminal) Bell() {
	if t.middleware != nil && t.middleware.Bell != nil {
		t.middleware.Bell(t.bellInternal)
		return
	}
	t.bellInternal()
}

func (t *Terminal) bellInternal() {
	t.mu.RLock()
	provider := t.bellProvider
	t.mu.RUnlock()
	provider.Ring()
}

func (t *Terminal) CarriageReturn() {
	if t.middleware != nil && t.middleware.CarriageReturn != nil {
		t.middleware.CarriageReturn(t.carriageReturnInternal)
		return
	}
	t.carriageReturnInternal()
}

func (t *Terminal) carriageReturnInternal() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cursor.Col = 0
	t.pendingWrap = false
}

func (t *Terminal) LineFeed() {
	if t.middleware != nil && t.middleware.LineFeed != nil {
		t.middleware.LineFeed(t.lineFeedInternal)
		return
	}
	t.lineFeedInternal()
}

func (t *Terminal) lineFeedInternal() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cursor.Row++
	t.pendingWrap = false
	if t.modes&ansi.ModeLineFeedNewline != 0 {
		t.cursor.Col = 0
	}
	t.scrollIfNeeded()
}

func (t *Terminal) Tab(n int) {
	if t.middleware != nil && t.middleware.Tab != nil {
		t.middleware.Tab(n, t.tabInternal)
		return
	}
	t.tabInternal(n)
}

func (t *Terminal) tabInternal(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := 0; i < n; i++ {
		next := t.activeBuffer.NextTabStop(t.cursor.Col)
		if next <= t.cursor.Col {
			break
		}
		t.cursor.Col = next
	}
	if t.cursor.Col >= t.cols {
		t.cursor.Col = t.cols - 1
	}
	t.pendingWrap = false
}

func (t *Terminal) HorizontalTabSet() {
	if t.middleware != nil && t.middleware.HorizontalTabSet != nil {
		t.middleware.HorizontalTabSet(t.horizontalTabSetInternal)
		return
	}
	t.horizontalTabSetInternal()
}

func (t *Terminal) horizontalTabSetInternal() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.activeBuffer.SetTabStop(t.cursor.Col)
}

func (t *Terminal) MoveForwardTabs(n int) {
	if t.middleware != nil && t.middleware.MoveForwardTabs != nil {
		t.middleware.MoveForwardTabs(n, t.moveForwardTabsInternal)
		return
	}
	t.moveForwardTabsInternal(n)
}

func (t *Terminal) moveForwardTabsInternal(n int) {
	t.tabInternal(n)
}

func (t *Terminal) MoveBackwardTabs(n int) {
	if t.middleware != nil && t.middleware.MoveBackwardTabs != nil {
		t.middleware.MoveBackwardTabs(n, t.moveBackwardTabsInternal)
		return
	}
	t.moveBackwardTabsInternal(n)
}

func (t *Terminal) moveBackwardTabsInternal(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := 0; i < n; i++ {
		prev := t.activeBuffer.PrevTabStop(t.cursor.Col)
		if prev >= t.cursor.Col {
			break
		}
		t.cursor.Col = prev
	}
	t.pendingWrap = false
}

// --- Cursor motion ---

func (t *Terminal) MoveUp(n int) {
	if t.middleware != nil && t.middleware.MoveUp != nil {
		t.middleware.MoveUp(n, t.moveUpInternal)
		return
	}
	t.moveUpInternal(n)
}

func (t *Terminal) moveUpInternal(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cursor.Row = clamp(t.cursor.Row-n, 0, t.rows-1)
	t.pendingWrap = false
}

func (t *Terminal) MoveDown(n int) {
	if t.middleware != nil && t.middleware.MoveDown != nil {
		t.middleware.MoveDown(n, t.moveDownInternal)
		return
	}
	t.moveDownInternal(n)
}

func (t *Terminal) moveDownInternal(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cursor.Row = clamp(t.cursor.Row+n, 0, t.rows-1)
	t.pendingWrap = false
}

func (t *Terminal) MoveForward(n int) {
	if t.middleware != nil && t.middleware.MoveForward != nil {
		t.middleware.MoveForward(n, t.moveForwardInternal)
		return
	}
	t.moveForwardInternal(n)
}

func (t *Terminal) moveForwardInternal(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cursor.Col = clamp(t.cursor.Col+n, 0, t.cols-1)
	t.pendingWrap = false
}

func (t *Terminal) MoveBackward(n int) {
	if t.middleware != nil && t.middleware.MoveBackward != nil {
		t.middleware.MoveBackward(n, t.moveBackwardInternal)
		return
	}
	t.moveBackwardInternal(n)
}

func (t *Terminal) moveBackwardInternal(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cursor.Col = clamp(t.cursor.Col-n, 0, t.cols-1)
	t.pendingWrap = false
}

func (t *Terminal) MoveUpCr(n int) {
	if t.middleware != nil && t.middleware.MoveUpCr != nil {
		t.middleware.MoveUpCr(n, t.moveUpCrInternal)
		return
	}
	t.moveUpCrInternal(n)
}

func (t *Terminal) moveUpCrInternal(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cursor.Row = clamp(t.cursor.Row-n, 0, t.rows-1)
	t.cursor.Col = 0
	t.pendingWrap = false
}

func (t *Terminal) MoveDownCr(n int) {
	if t.middleware != nil && t.middleware.MoveDownCr != nil {
		t.middleware.MoveDownCr(n, t.moveDownCrInternal)
		return
	}
	t.moveDownCrInternal(n)
}

func (t *Terminal) moveDownCrInternal(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cursor.Row = clamp(t.cursor.Row+n, 0, t.rows-1)
	t.cursor.Col = 0
	t.pendingWrap = false
}

func (t *Terminal) Goto(row, col int) {
	if t.middleware != nil && t.middleware.Goto != nil {
		t.middleware.Goto(row, col, t.gotoInternal)
		return
	}
	t.gotoInternal(row, col)
}

func (t *Terminal) gotoInternal(row, col int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	top, bottom := 0, t.rows-1
	if t.modes&ansi.ModeOriginMode != 0 {
		top, bottom = t.scrollTop, t.scrollBottom-1
	}
	t.cursor.Row = clamp(t.effectiveRow(row), top, bottom)
	t.cursor.Col = clamp(col, 0, t.cols-1)
	t.pendingWrap = false
}

func (t *Terminal) GotoLine(row int) {
	if t.middleware != nil && t.middleware.GotoLine != nil {
		t.middleware.GotoLine(row, t.gotoLineInternal)
		return
	}
	t.gotoLineInternal(row)
}

func (t *Terminal) gotoLineInternal(row int) {
	t.mu.Lock()
	col := t.cursor.Col
	t.mu.Unlock()
	t.gotoInternal(row, col)
}

func (t *Terminal) GotoCol(col int) {
	if t.middleware != nil && t.middleware.GotoCol != nil {
		t.middleware.GotoCol(col, t.gotoColInternal)
		return
	}
	t.gotoColInternal(col)
}

func (t *Terminal) gotoColInternal(col int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cursor.Col = clamp(col, 0, t.cols-1)
	t.pendingWrap = false
}

// --- Erase / insert / delete ---

func (t *Terminal) ClearLine(mode ansi.LineClearMode) {
	if t.middleware != nil && t.middleware.ClearLine != nil {
		t.middleware.ClearLine(mode, t.clearLineInternal)
		return
	}
	t.clearLineInternal(mode)
}

func (t *Terminal) clearLineInternal(mode ansi.LineClearMode) {
	t.mu.Lock()
	defer t.mu.Unlock()
	row := t.cursor.Row
	switch mode {
	case ansi.LineClearRight:
		t.activeBuffer.ClearRowRange(row, t.cursor.Col, t.cols)
	case ansi.LineClearLeft:
		t.activeBuffer.ClearRowRange(row, 0, t.cursor.Col+1)
	case ansi.LineClearAll:
		t.activeBuffer.ClearRow(row)
	}
}

func (t *Terminal) ClearScreen(mode ansi.ClearMode) {
	if t.middleware != nil && t.middleware.ClearScreen != nil {
		t.middleware.ClearScreen(mode, t.clearScreenInternal)
		return
	}
	t.clearScreenInternal(mode)
}

func (t *Terminal) clearScreenInternal(mode ansi.ClearMode) {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch mode {
	case ansi.ClearBelow:
		t.activeBuffer.ClearRowRange(t.cursor.Row, t.cursor.Col, t.cols)
		for row := t.cursor.Row + 1; row < t.rows; row++ {
			t.activeBuffer.ClearRow(row)
		}
	case ansi.ClearAbove:
		t.activeBuffer.ClearRowRange(t.cursor.Row, 0, t.cursor.Col+1)
		for row := 0; row < t.cursor.Row; row++ {
			t.activeBuffer.ClearRow(row)
		}
	case ansi.ClearAll:
		t.activeBuffer.ClearAll()
	case ansi.ClearSavedLines:
		if t.activeBuffer == t.primaryBuffer {
			t.primaryBuffer.ClearScrollback()
		}
	}
}

func (t *Terminal) ClearTabs(mode ansi.TabulationClearMode) {
	if t.middleware != nil && t.middleware.ClearTabs != nil {
		t.middleware.ClearTabs(mode, t.clearTabsInternal)
		return
	}
	t.clearTabsInternal(mode)
}

func (t *Terminal) clearTabsInternal(mode ansi.TabulationClearMode) {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch mode {
	case ansi.TabClearCurrent:
		t.activeBuffer.ClearTabStop(t.cursor.Col)
	case ansi.TabClearAll:
		t.activeBuffer.ClearAllTabStops()
	}
}

func (t *Terminal) InsertBlank(n int) {
	if t.middleware != nil && t.middleware.InsertBlank != nil {
		t.middleware.InsertBlank(n, t.insertBlankInternal)
		return
	}
	t.insertBlankInternal(n)
}

func (t *Terminal) insertBlankInternal(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.activeBuffer.InsertBlanks(t.cursor.Row, t.cursor.Col, n)
}

func (t *Terminal) InsertBlankLines(n int) {
	if t.middleware != nil && t.middleware.InsertBlankLines != nil {
		t.middleware.InsertBlankLines(n, t.insertBlankLinesInternal)
		return
	}
	t.insertBlankLinesInternal(n)
}

func (t *Terminal) insertBlankLinesInternal(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cursor.Row < t.scrollTop || t.cursor.Row >= t.scrollBottom {
		return
	}
	t.activeBuffer.InsertLines(t.cursor.Row, n, t.scrollBottom)
}

func (t *Terminal) DeleteChars(n int) {
	if t.middleware != nil && t.middleware.DeleteChars != nil {
		t.middleware.DeleteChars(n, t.deleteCharsInternal)
		return
	}
	t.deleteCharsInternal(n)
}

func (t *Terminal) deleteCharsInternal(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.activeBuffer.DeleteChars(t.cursor.Row, t.cursor.Col, n)
}

func (t *Terminal) DeleteLines(n int) {
	if t.middleware != nil && t.middleware.DeleteLines != nil {
		t.middleware.DeleteLines(n, t.deleteLinesInternal)
		return
	}
	t.deleteLinesInternal(n)
}

func (t *Terminal) deleteLinesInternal(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cursor.Row < t.scrollTop || t.cursor.Row >= t.scrollBottom {
		return
	}
	t.activeBuffer.DeleteLines(t.cursor.Row, n, t.scrollBottom)
}

func (t *Terminal) EraseChars(n int) {
	if t.middleware != nil && t.middleware.EraseChars != nil {
		t.middleware.EraseChars(n, t.eraseCharsInternal)
		return
	}
	t.eraseCharsInternal(n)
}

func (t *Terminal) eraseCharsInternal(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	end := t.cursor.Col + n
	if end > t.cols {
		end = t.cols
	}
	t.activeBuffer.ClearRowRange(t.cursor.Row, t.cursor.Col, end)
}

// --- Scrolling ---

func (t *Terminal) ScrollUp(n int) {
	if t.middleware != nil && t.middleware.ScrollUp != nil {
		t.middleware.ScrollUp(n, t.scrollUpInternal)
		return
	}
	t.scrollUpInternal(n)
}

func (t *Terminal) scrollUpInternal(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.activeBuffer.ScrollUp(t.scrollTop, t.scrollBottom, n)
}

func (t *Terminal) ScrollDown(n int) {
	if t.middleware != nil && t.middleware.ScrollDown != nil {
		t.middleware.ScrollDown(n, t.scrollDownInternal)
		return
	}
	t.scrollDownInternal(n)
}

func (t *Terminal) scrollDownInternal(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.activeBuffer.ScrollDown(t.scrollTop, t.scrollBottom, n)
}

func (t *Terminal) SetScrollingRegion(top, bottom int) {
	if t.middleware != nil && t.middleware.SetScrollingRegion != nil {
		t.middleware.SetScrollingRegion(top, bottom, t.setScrollingRegionInternal)
		return
	}
	t.setScrollingRegionInternal(top, bottom)
}

func (t *Terminal) setScrollingRegionInternal(top, bottom int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if top < 0 {
		top = 0
	}
	if bottom > t.rows {
		bottom = t.rows
	}
	if top >= bottom {
		return
	}
	t.scrollTop = top
	t.scrollBottom = bottom
	t.cursor.Row = t.effectiveRow(0)
	t.cursor.Col = 0
	t.pendingWrap = false
}

func (t *Terminal) ReverseIndex() {
	if t.middleware != nil && t.middleware.ReverseIndex != nil {
		t.middleware.ReverseIndex(t.reverseIndexInternal)
		return
	}
	t.reverseIndexInternal()
}

func (t *Terminal) reverseIndexInternal() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cursor.Row == t.scrollTop {
		t.activeBuffer.ScrollDown(t.scrollTop, t.scrollBottom, 1)
	} else {
		t.cursor.Row = clamp(t.cursor.Row-1, 0, t.rows-1)
	}
	t.pendingWrap = false
}

func (t *Terminal) Decaln() {
	if t.middleware != nil && t.middleware.Decaln != nil {
		t.middleware.Decaln(t.decalnInternal)
		return
	}
	t.decalnInternal()
}

func (t *Terminal) decalnInternal() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.activeBuffer.FillWithE()
}

func (t *Terminal) Substitute() {
	if t.middleware != nil && t.middleware.Substitute != nil {
		t.middleware.Substitute(t.substituteInternal)
		return
	}
	t.substituteInternal()
}

func (t *Terminal) substituteInternal() {
	t.mu.Lock()
	defer t.mu.Unlock()
	cell := t.activeBuffer.Cell(t.cursor.Row, t.cursor.Col)
	if cell != nil {
		cell.Char = '?'
		cell.MarkDirty()
	}
}

// --- Cursor save/restore, style, charset ---

func (t *Terminal) SaveCursorPosition() {
	if t.middleware != nil && t.middleware.SaveCursorPosition != nil {
		t.middleware.SaveCursorPosition(t.saveCursorPositionInternal)
		return
	}
	t.saveCursorPositionInternal()
}

func (t *Terminal) saveCursorPositionInternal() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.savedCursor = &SavedCursor{
		Row:          t.cursor.Row,
		Col:          t.cursor.Col,
		Template:     t.template,
		OriginMode:   t.modes&ansi.ModeOriginMode != 0,
		CharsetIndex: t.activeCharset,
		Charsets:     t.charsets,
	}
}

func (t *Terminal) RestoreCursorPosition() {
	if t.middleware != nil && t.middleware.RestoreCursorPosition != nil {
		t.middleware.RestoreCursorPosition(t.restoreCursorPositionInternal)
		return
	}
	t.restoreCursorPositionInternal()
}

func (t *Terminal) restoreCursorPositionInternal() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.savedCursor == nil {
		t.cursor.Row = 0
		t.cursor.Col = 0
		return
	}
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

func (t *Terminal) SetCursorStyle(style CursorStyle) {
	if t.middleware != nil && t.middleware.SetCursorStyle != nil {
		t.middleware.SetCursorStyle(style, t.setCursorStyleInternal)
		return
	}
	t.setCursorStyleInternal(style)
}

func (t *Terminal) setCursorStyleInternal(style CursorStyle) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cursor.Style = style
}

func (t *Terminal) ConfigureCharset(index CharsetIndex, charset Charset) {
	if t.middleware != nil && t.middleware.ConfigureCharset != nil {
		t.middleware.ConfigureCharset(index, charset, t.configureCharsetInternal)
		return
	}
	t.configureCharsetInternal(index, charset)
}

func (t *Terminal) configureCharsetInternal(index CharsetIndex, charset Charset) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if i := int(index); i >= 0 && i < len(t.charsets) {
		t.charsets[i] = charset
	}
}

func (t *Terminal) SetActiveCharset(n int) {
	if t.middleware != nil && t.middleware.SetActiveCharset != nil {
		t.middleware.SetActiveCharset(n, t.setActiveCharsetInternal)
		return
	}
	t.setActiveCharsetInternal(n)
}

func (t *Terminal) setActiveCharsetInternal(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if n >= 0 && n < len(t.charsets) {
		t.activeCharset = n
	}
}

func (t *Terminal) SetKeypadApplicationMode() {
	if t.middleware != nil && t.middleware.SetKeypadApplicationMode != nil {
		t.middleware.SetKeypadApplicationMode(t.setKeypadApplicationModeInternal)
		return
	}
	t.setKeypadApplicationModeInternal()
}

func (t *Terminal) setKeypadApplicationModeInternal() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.modes |= ansi.ModeApplicationKeypad
}

func (t *Terminal) UnsetKeypadApplicationMode() {
	if t.middleware != nil && t.middleware.UnsetKeypadApplicationMode != nil {
		t.middleware.UnsetKeypadApplicationMode(t.unsetKeypadApplicationModeInternal)
		return
	}
	t.unsetKeypadApplicationModeInternal()
}

func (t *Terminal) unsetKeypadApplicationModeInternal() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.modes &^= ansi.ModeApplicationKeypad
}

// ResetState implements RIS (ESC c): clears both buffers, resets modes,
// cursor, charsets, and scroll region to their power-on defaults.
func (t *Terminal) ResetState() {
	if t.middleware != nil && t.middleware.ResetState != nil {
		t.middleware.ResetState(t.resetStateInternal)
		return
	}
	t.resetStateInternal()
}

func (t *Terminal) resetStateInternal() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.primaryBuffer.ClearAll()
	t.alternateBuffer.ClearAll()
	t.activeBuffer = t.primaryBuffer

	t.cursor = NewCursor()
	t.savedCursor = nil
	t.template = NewCellTemplate()
	t.charsets = [4]Charset{}
	t.activeCharset = 0

	t.scrollTop = 0
	t.scrollBottom = t.rows

	t.modes = ansi.ModeAutowrap | ansi.ModeCursorVisible

	t.title = ""
	t.titleStack = nil
	t.currentHyperlink = nil
	t.colors = make(map[int]Color)

	t.pendingWrap = false
	t.hasLastWrite = false
}

// --- Title / hyperlink / clipboard / working directory ---

func (t *Terminal) SetTitle(title string) {
	if t.middleware != nil && t.middleware.SetTitle != nil {
		t.middleware.SetTitle(title, t.setTitleInternal)
		return
	}
	t.setTitleInternal(title)
}

func (t *Terminal) setTitleInternal(title string) {
	t.mu.Lock()
	t.title = title
	provider := t.titleProvider
	t.mu.Unlock()
	provider.SetTitle(title)
}

func (t *Terminal) PushTitle() {
	if t.middleware != nil && t.middleware.PushTitle != nil {
		t.middleware.PushTitle(t.pushTitleInternal)
		return
	}
	t.pushTitleInternal()
}

func (t *Terminal) pushTitleInternal() {
	t.mu.Lock()
	t.titleStack = append(t.titleStack, t.title)
	provider := t.titleProvider
	t.mu.Unlock()
	provider.PushTitle()
}

func (t *Terminal) PopTitle() {
	if t.middleware != nil && t.middleware.PopTitle != nil {
		t.middleware.PopTitle(t.popTitleInternal)
		return
	}
	t.popTitleInternal()
}

func (t *Terminal) popTitleInternal() {
	t.mu.Lock()
	if len(t.titleStack) > 0 {
		t.title = t.titleStack[len(t.titleStack)-1]
		t.titleStack = t.titleStack[:len(t.titleStack)-1]
	}
	provider := t.titleProvider
	t.mu.Unlock()
	provider.PopTitle()
}

func (t *Terminal) SetHyperlink(hyperlink *Hyperlink) {
	if t.middleware != nil && t.middleware.SetHyperlink != nil {
		t.middleware.SetHyperlink(hyperlink, t.setHyperlinkInternal)
		return
	}
	t.setHyperlinkInternal(hyperlink)
}

func (t *Terminal) setHyperlinkInternal(hyperlink *Hyperlink) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if hyperlink == nil || hyperlink.URI == "" {
		t.currentHyperlink = nil
		return
	}
	t.currentHyperlink = hyperlink
}

func (t *Terminal) ClipboardLoad(clipboard byte, terminator string) {
	if t.middleware != nil && t.middleware.ClipboardLoad != nil {
		t.middleware.ClipboardLoad(clipboard, terminator, t.clipboardLoadInternal)
		return
	}
	t.clipboardLoadInternal(clipboard, terminator)
}

func (t *Terminal) clipboardLoadInternal(clipboard byte, terminator string) {
	t.mu.RLock()
	provider := t.clipboardProvider
	t.mu.RUnlock()

	data := provider.Read(clipboard)
	encoded := base64.StdEncoding.EncodeToString([]byte(data))
	t.writeResponseString("\x1b]52;" + string(clipboard) + ";" + encoded + terminator)
}

func (t *Terminal) ClipboardStore(clipboard byte, data []byte) {
	if t.middleware != nil && t.middleware.ClipboardStore != nil {
		t.middleware.ClipboardStore(clipboard, data, t.clipboardStoreInternal)
		return
	}
	t.clipboardStoreInternal(clipboard, data)
}

func (t *Terminal) clipboardStoreInternal(clipboard byte, data []byte) {
	t.mu.RLock()
	provider := t.clipboardProvider
	t.mu.RUnlock()
	provider.Write(clipboard, data)
}

func (t *Terminal) SetWorkingDirectory(uri string) {
	if t.middleware != nil && t.middleware.SetWorkingDirectory != nil {
		t.middleware.SetWorkingDirectory(uri, t.setWorkingDirectoryInternal)
		return
	}
	t.setWorkingDirectoryInternal(uri)
}

func (t *Terminal) setWorkingDirectoryInternal(uri string) {
	t.mu.Lock()
	t.workingDir = uri
	provider := t.directoryProvider
	t.mu.Unlock()
	provider.DirectoryChanged(uri)
}

// WorkingDirectoryPath extracts the filesystem path from the working
// directory URI set via OSC 7 (file://hostname/path), discarding the
// scheme and hostname.
func (t *Terminal) WorkingDirectoryPath() string {
	t.mu.RLock()
	uri := t.workingDir
	t.mu.RUnlock()

	const prefix = "file://"
	if len(uri) <= len(prefix) || uri[:len(prefix)] != prefix {
		return ""
	}
	rest := uri[len(prefix):]

	for i := 0; i < len(rest); i++ {
		if rest[i] == '/' {
			return rest[i:]
		}
	}
	return ""
}

// --- Application-defined string payloads ---

func (t *Terminal) ApplicationCommandReceived(data []byte) {
	if t.middleware != nil && t.middleware.ApplicationCommandReceived != nil {
		t.middleware.ApplicationCommandReceived(data, t.applicationCommandReceivedInternal)
		return
	}
	t.applicationCommandReceivedInternal(data)
}

func (t *Terminal) applicationCommandReceivedInternal(data []byte) {
	t.mu.RLock()
	provider := t.apcProvider
	t.mu.RUnlock()
	provider.Receive(data)
}

func (t *Terminal) PrivacyMessageReceived(data []byte) {
	if t.middleware != nil && t.middleware.PrivacyMessageReceived != nil {
		t.middleware.PrivacyMessageReceived(data, t.privacyMessageReceivedInternal)
		return
	}
	t.privacyMessageReceivedInternal(data)
}

func (t *Terminal) privacyMessageReceivedInternal(data []byte) {
	t.mu.RLock()
	provider := t.pmProvider
	t.mu.RUnlock()
	provider.Receive(data)
}

func (t *Terminal) StartOfStringReceived(data []byte) {
	if t.middleware != nil && t.middleware.StartOfStringReceived != nil {
		t.middleware.StartOfStringReceived(data, t.startOfStringReceivedInternal)
		return
	}
	t.startOfStringReceivedInternal(data)
}

func (t *Terminal) startOfStringReceivedInternal(data []byte) {
	t.mu.RLock()
	provider := t.sosProvider
	t.mu.RUnlock()
	provider.Receive(data)
}
