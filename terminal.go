package vtcore

import (
	"sync"

	"github.com/coreterm/vtcore/ansi"
)

// Ensure Terminal implements ansi.Performer.
var _ ansi.Performer = (*Terminal)(nil)

const (
	// DefaultRows is the default number of terminal rows.
	DefaultRows = 24
	// DefaultCols is the default number of terminal columns.
	DefaultCols = 80
)

// Terminal emulates a VT-family terminal without a display. It
// maintains two buffers: primary (with scrollback) and alternate (no
// scrollback). The active buffer switches when entering/exiting
// alternate screen mode. All operations are thread-safe via internal
// locking; callers that need several operations to appear atomic
// (e.g. a snapshot-then-clear) must add their own synchronization on
// top, the same contract this module's teacher documents.
type Terminal struct {
	mu sync.RWMutex

	rows int
	cols int

	primaryBuffer   *Buffer
	alternateBuffer *Buffer
	activeBuffer    *Buffer

	cursor      *Cursor
	savedCursor *SavedCursor

	template CellTemplate

	charsets      [4]Charset
	activeCharset int

	scrollTop    int
	scrollBottom int

	modes ansi.TerminalMode

	title      string
	titleStack []string

	colors map[int]Color

	currentHyperlink *Hyperlink

	parser *ansi.Parser

	scrollbackStorage ScrollbackProvider

	middleware *Middleware

	responseProvider  ResponseProvider
	bellProvider      BellProvider
	titleProvider     TitleProvider
	apcProvider       APCProvider
	pmProvider        PMProvider
	sosProvider       SOSProvider
	clipboardProvider ClipboardProvider

	// autoResize grows the buffer instead of scrolling/wrapping, useful
	// for capturing complete output without truncation.
	autoResize bool

	// tabStopWidth carries the WithTabStopWidth option until the buffers
	// are constructed; 0 means the default spacing.
	tabStopWidth int

	recordingProvider RecordingProvider

	shellIntegrationProvider ShellIntegrationProvider
	promptMarks              []PromptMark

	workingDir string

	sizeProvider SizeProvider

	images *ImageManager

	sixelEnabled bool

	directoryProvider DirectoryProvider
	colorProvider     ColorProvider
	mouseModeProvider MouseModeProvider
	imageProvider     ImageProvider

	// pendingWrap latches when a printed character reaches the last
	// column: the wrap (and the ensuing line feed) happens on the next
	// printable character rather than immediately, so a cursor query
	// issued right after filling the last column still reports that
	// column rather than the next row.
	pendingWrap bool

	// lastWriteRow/lastWriteCol track where the most recently printed
	// (non-combining) rune landed, so a following combining mark can be
	// attached to it even across a wrap boundary.
	hasLastWrite bool
	lastWriteRow int
	lastWriteCol int

	// activeDCS is the handler currently receiving Put/Unhook calls
	// between a Hook and its matching Unhook (e.g. a Sixel image).
	activeDCS dcsHandler
}

// Option configures a Terminal during construction.
type Option func(*Terminal)

// WithSize sets the terminal dimensions. Values <= 0 are replaced with defaults (24x80).
func WithSize(rows, cols int) Option {
	if rows <= 0 {
		rows = DefaultRows
	}
	if cols <= 0 {
		cols = DefaultCols
	}
	return func(t *Terminal) {
		t.rows = rows
		t.cols = cols
	}
}

// WithResponse sets the writer for terminal responses (e.g. cursor position reports).
// If nil, responses are discarded.
func WithResponse(p ResponseProvider) Option {
	return func(t *Terminal) { t.responseProvider = p }
}

// WithBell sets the handler for bell/beep events. Defaults to a no-op if not set.
func WithBell(p BellProvider) Option {
	return func(t *Terminal) { t.bellProvider = p }
}

// WithTitle sets the handler for window title changes. Defaults to a no-op if not set.
func WithTitle(p TitleProvider) Option {
	return func(t *Terminal) { t.titleProvider = p }
}

// WithAPC sets the handler for Application Program Command sequences. Defaults to a no-op if not set.
func WithAPC(p APCProvider) Option {
	return func(t *Terminal) { t.apcProvider = p }
}

// WithPM sets the handler for Privacy Message sequences. Defaults to a no-op if not set.
func WithPM(p PMProvider) Option {
	return func(t *Terminal) { t.pmProvider = p }
}

// WithSOS sets the handler for Start of String sequences. Defaults to a no-op if not set.
func WithSOS(p SOSProvider) Option {
	return func(t *Terminal) { t.sosProvider = p }
}

// WithClipboard sets the handler for clipboard read/write operations (OSC 52). Defaults to a no-op if not set.
func WithClipboard(p ClipboardProvider) Option {
	return func(t *Terminal) { t.clipboardProvider = p }
}

// WithScrollback sets the storage for scrollback lines scrolled off the top. Defaults to a no-op if not set.
func WithScrollback(storage ScrollbackProvider) Option {
	return func(t *Terminal) { t.scrollbackStorage = storage }
}

// WithMiddleware sets functions to intercept handler dispatch.
// Each middleware receives the original parameters and a next function to call the default implementation.
func WithMiddleware(mw *Middleware) Option {
	return func(t *Terminal) {
		if t.middleware == nil {
			t.middleware = &Middleware{}
		}
		t.middleware.Merge(mw)
	}
}

// WithAutoResize enables growth mode: the buffer expands instead of scrolling or wrapping.
func WithAutoResize() Option {
	return func(t *Terminal) { t.autoResize = true }
}

// WithRecording sets the handler for capturing raw input bytes before parsing.
func WithRecording(p RecordingProvider) Option {
	return func(t *Terminal) { t.recordingProvider = p }
}

// WithShellIntegration sets the handler for shell integration events (OSC 133).
func WithShellIntegration(p ShellIntegrationProvider) Option {
	return func(t *Terminal) { t.shellIntegrationProvider = p }
}

// WithSizeProvider sets the provider for pixel dimension queries.
func WithSizeProvider(p SizeProvider) Option {
	return func(t *Terminal) { t.sizeProvider = p }
}

// WithDirectoryProvider sets the handler for host working-directory reports (OSC 7).
func WithDirectoryProvider(p DirectoryProvider) Option {
	return func(t *Terminal) { t.directoryProvider = p }
}

// WithColorProvider sets the handler for palette/dynamic-color change notifications.
func WithColorProvider(p ColorProvider) Option {
	return func(t *Terminal) { t.colorProvider = p }
}

// WithMouseModeProvider sets the handler for mouse-reporting mode change notifications.
func WithMouseModeProvider(p MouseModeProvider) Option {
	return func(t *Terminal) { t.mouseModeProvider = p }
}

// WithImageProvider sets the handler for inline images (Sixel bitmaps, OSC 1337 payloads).
func WithImageProvider(p ImageProvider) Option {
	return func(t *Terminal) { t.imageProvider = p }
}

// WithTabStopWidth sets the default tab stop spacing for both buffers.
// Values <= 0 keep the default of 8.
func WithTabStopWidth(width int) Option {
	return func(t *Terminal) {
		if width > 0 {
			t.tabStopWidth = width
		}
	}
}

// SetTabStopWidth changes the tab stop spacing at runtime, resetting
// any stops the application configured with HTS/TBC.
func (t *Terminal) SetTabStopWidth(width int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.primaryBuffer.SetTabStopWidth(width)
	t.alternateBuffer.SetTabStopWidth(width)
}

// WithSixel enables or disables the Sixel DCS image protocol. Default is true (enabled).
func WithSixel(enabled bool) Option {
	return func(t *Terminal) { t.sixelEnabled = enabled }
}

// SixelEnabled returns true if the Sixel image protocol is enabled.
func (t *Terminal) SixelEnabled() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.sixelEnabled
}

// New creates a terminal with the given options.
// Defaults to 24x80 with line wrap and cursor visible.
func New(opts ...Option) *Terminal {
	t := &Terminal{
		rows:              DefaultRows,
		cols:              DefaultCols,
		colors:            make(map[int]Color),
		bellProvider:      NoopBell{},
		titleProvider:     NoopTitle{},
		apcProvider:       NoopAPC{},
		pmProvider:        NoopPM{},
		sosProvider:       NoopSOS{},
		clipboardProvider: NoopClipboard{},
		recordingProvider: NoopRecording{},
		sixelEnabled:      true,
		directoryProvider: NoopDirectory{},
		colorProvider:     NoopColor{},
		mouseModeProvider: NoopMouseMode{},
		imageProvider:     NoopImage{},
	}

	for _, opt := range opts {
		opt(t)
	}

	if t.scrollbackStorage == nil {
		t.scrollbackStorage = NoopScrollback{}
	}
	t.primaryBuffer = NewBufferWithStorage(t.rows, t.cols, t.scrollbackStorage)
	t.alternateBuffer = NewBuffer(t.rows, t.cols)
	t.activeBuffer = t.primaryBuffer

	if t.tabStopWidth > 0 {
		t.primaryBuffer.SetTabStopWidth(t.tabStopWidth)
		t.alternateBuffer.SetTabStopWidth(t.tabStopWidth)
	}

	t.cursor = NewCursor()
	t.template = NewCellTemplate()

	t.scrollTop = 0
	t.scrollBottom = t.rows

	t.modes = ansi.ModeAutowrap | ansi.ModeCursorVisible

	t.parser = ansi.NewParser()
	t.images = NewImageManager()

	return t
}

// Rows returns the terminal height in character rows.
func (t *Terminal) Rows() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.rows
}

// Cols returns the terminal width in character columns.
func (t *Terminal) Cols() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.cols
}

// Cell returns the cell at (row, col) in the active buffer. Returns nil if coordinates are out of bounds.
func (t *Terminal) Cell(row, col int) *Cell {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.activeBuffer.Cell(row, col)
}

// CursorPos returns the current cursor position (0-based).
func (t *Terminal) CursorPos() (row, col int) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.cursor.Row, t.cursor.Col
}

// CursorVisible returns true if the cursor is currently visible.
func (t *Terminal) CursorVisible() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.cursor.Visible
}

// CursorStyle returns the current cursor rendering style.
func (t *Terminal) CursorStyle() CursorStyle {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.cursor.Style
}

// Title returns the current window title string.
func (t *Terminal) Title() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.title
}

// HasMode returns true if the specified mode flag is enabled.
func (t *Terminal) HasMode(mode ansi.TerminalMode) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.modes&mode != 0
}

// Resize changes the terminal dimensions and reflows both buffers (see
// Buffer.Resize). When shrinking rows, lines above the cursor scroll
// into scrollback first so the cursor stays on screen. Invalid
// dimensions (<= 0) are ignored.
func (t *Terminal) Resize(rows, cols int) {
	if rows <= 0 || cols <= 0 {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	oldRows := t.rows

	if rows < oldRows && t.activeBuffer == t.primaryBuffer {
		linesToScroll := oldRows - rows
		if t.cursor.Row >= rows {
			t.primaryBuffer.ScrollUp(0, oldRows, linesToScroll)
			t.cursor.Row -= linesToScroll
			if t.cursor.Row < 0 {
				t.cursor.Row = 0
			}
		}
	}

	t.rows = rows
	t.cols = cols
	pushed, pulled := t.primaryBuffer.Resize(rows, cols)
	altPushed, altPulled := t.alternateBuffer.Resize(rows, cols)
	if t.activeBuffer == t.alternateBuffer {
		pushed, pulled = altPushed, altPulled
	}

	// Rows that crossed the scrollback boundary shift the whole screen,
	// so the cursor follows the line it was on.
	t.cursor.Row = clamp(t.cursor.Row-pushed+pulled, 0, rows-1)
	t.cursor.Col = clamp(t.cursor.Col, 0, cols-1)

	t.scrollTop = 0
	t.scrollBottom = rows
}

// Write feeds raw PTY output through the parser, updating terminal state. Implements io.Writer.
func (t *Terminal) Write(data []byte) (int, error) {
	t.recordingProvider.Record(data)
	t.parser.Advance(t, data)
	return len(data), nil
}

// WriteString is a convenience wrapper around Write.
func (t *Terminal) WriteString(s string) (int, error) {
	return t.Write([]byte(s))
}

// SendFromUser passes encoded keystrokes straight through to the response provider.
func (t *Terminal) SendFromUser(data []byte) {
	t.writeResponse(data)
}

func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// effectiveRow returns the effective row considering origin mode.
func (t *Terminal) effectiveRow(row int) int {
	if t.modes&ansi.ModeOriginMode != 0 {
		return row + t.scrollTop
	}
	return row
}

// scrollIfNeeded performs scrolling if the cursor has left the scroll region.
// In autoResize mode, grows the buffer instead of scrolling.
func (t *Terminal) scrollIfNeeded() {
	if t.cursor.Row >= t.scrollBottom {
		if t.autoResize {
			rowsToAdd := t.cursor.Row - t.scrollBottom + 1
			t.activeBuffer.GrowRows(rowsToAdd)
			t.rows = t.activeBuffer.Rows()
			t.scrollBottom = t.rows
		} else {
			linesToScroll := t.cursor.Row - t.scrollBottom + 1
			t.activeBuffer.ScrollUp(t.scrollTop, t.scrollBottom, linesToScroll)
			t.cursor.Row = t.scrollBottom - 1
		}
	} else if t.cursor.Row < t.scrollTop {
		linesToScroll := t.scrollTop - t.cursor.Row
		t.activeBuffer.ScrollDown(t.scrollTop, t.scrollBottom, linesToScroll)
		t.cursor.Row = t.scrollTop
	}
}

// SetResponseProvider sets the response provider at runtime.
func (t *Terminal) SetResponseProvider(p ResponseProvider) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.responseProvider = p
}

// ResponseProvider returns the current response provider.
func (t *Terminal) ResponseProvider() ResponseProvider {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.responseProvider
}

// SetBellProvider sets the bell provider at runtime.
func (t *Terminal) SetBellProvider(p BellProvider) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.bellProvider = p
}

// BellProvider returns the current bell provider.
func (t *Terminal) BellProvider() BellProvider {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.bellProvider
}

// SetTitleProvider sets the title provider at runtime.
func (t *Terminal) SetTitleProvider(p TitleProvider) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.titleProvider = p
}

// TitleProvider returns the current title provider.
func (t *Terminal) TitleProvider() TitleProvider {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.titleProvider
}

// SetAPCProvider sets the APC provider at runtime.
func (t *Terminal) SetAPCProvider(p APCProvider) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.apcProvider = p
}

// APCProvider returns the current APC provider.
func (t *Terminal) APCProvider() APCProvider {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.apcProvider
}

// SetPMProvider sets the PM provider at runtime.
func (t *Terminal) SetPMProvider(p PMProvider) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pmProvider = p
}

// PMProvider returns the current PM provider.
func (t *Terminal) PMProvider() PMProvider {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.pmProvider
}

// SetSOSProvider sets the SOS provider at runtime.
func (t *Terminal) SetSOSProvider(p SOSProvider) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sosProvider = p
}

// SOSProvider returns the current SOS provider.
func (t *Terminal) SOSProvider() SOSProvider {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.sosProvider
}

// SetClipboardProvider sets the clipboard provider at runtime.
func (t *Terminal) SetClipboardProvider(c ClipboardProvider) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.clipboardProvider = c
}

// ClipboardProvider returns the current clipboard provider.
func (t *Terminal) ClipboardProvider() ClipboardProvider {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.clipboardProvider
}

// SetMiddleware sets the middleware at runtime.
func (t *Terminal) SetMiddleware(mw *Middleware) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.middleware = mw
}

// Middleware returns the current middleware.
func (t *Terminal) Middleware() *Middleware {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.middleware
}

// writeResponse writes a response back via the response provider if set.
func (t *Terminal) writeResponse(data []byte) {
	t.mu.RLock()
	provider := t.responseProvider
	t.mu.RUnlock()

	if provider != nil {
		provider.Write(data)
	}
}

func (t *Terminal) writeResponseString(s string) {
	t.writeResponse([]byte(s))
}

// --- Scrollback ---

// ScrollbackLen returns the number of lines stored in scrollback (primary buffer only).
func (t *Terminal) ScrollbackLen() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.primaryBuffer.ScrollbackLen()
}

// ScrollbackLine returns a line from scrollback, where 0 is the oldest line.
func (t *Terminal) ScrollbackLine(index int) []Cell {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.primaryBuffer.ScrollbackLine(index)
}

// ViewportRowToAbsolute converts a row within the visible viewport (0 is
// the top of the screen) to an absolute row that also addresses
// scrollback, for use with NextPromptRow/PrevPromptRow.
func (t *Terminal) ViewportRowToAbsolute(viewportRow int) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.primaryBuffer.ScrollbackLen() + viewportRow
}

// AbsoluteRowToViewport converts an absolute row back to a viewport row,
// or -1 if the row is in scrollback or beyond the visible screen.
func (t *Terminal) AbsoluteRowToViewport(absRow int) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	viewportRow := absRow - t.primaryBuffer.ScrollbackLen()
	if viewportRow < 0 || viewportRow >= t.rows {
		return -1
	}
	return viewportRow
}

// ClearScrollback removes all stored scrollback lines.
func (t *Terminal) ClearScrollback() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.primaryBuffer.ClearScrollback()
}

// SetMaxScrollback sets the maximum number of scrollback lines to retain.
func (t *Terminal) SetMaxScrollback(max int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.primaryBuffer.SetMaxScrollback(max)
}

// MaxScrollback returns the current maximum scrollback capacity.
func (t *Terminal) MaxScrollback() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.primaryBuffer.MaxScrollback()
}

// SetScrollbackProvider replaces the scrollback storage implementation at runtime.
func (t *Terminal) SetScrollbackProvider(storage ScrollbackProvider) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.scrollbackStorage = storage
	t.primaryBuffer.SetScrollbackProvider(storage)
}

// ScrollbackProvider returns the current scrollback storage implementation.
func (t *Terminal) ScrollbackProvider() ScrollbackProvider {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.primaryBuffer.ScrollbackProvider()
}

// --- Dirty tracking ---

// HasDirty returns true if any cell in the active buffer was modified since the last ClearDirty call.
func (t *Terminal) HasDirty() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.activeBuffer.HasDirty()
}

// DirtyCells returns positions of all cells modified since the last ClearDirty call.
func (t *Terminal) DirtyCells() []Position {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.activeBuffer.DirtyCells()
}

// ClearDirty marks all cells as clean, resetting the dirty tracking state.
func (t *Terminal) ClearDirty() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.activeBuffer.ClearAllDirty()
}

// --- Convenience accessors ---

// LineContent returns the text content of a line, trimming trailing spaces.
func (t *Terminal) LineContent(row int) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.activeBuffer.LineContent(row)
}

// LogicalLineContent returns the text of the whole logical line
// containing row, joining its wrap continuations into one string.
func (t *Terminal) LogicalLineContent(row int) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.activeBuffer.LogicalLineContent(row)
}

// String returns the visible screen content as a newline-separated string, with trailing empty lines omitted.
func (t *Terminal) String() string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var lines []string
	lastNonEmpty := -1

	for row := 0; row < t.rows; row++ {
		line := t.activeBuffer.LineContent(row)
		lines = append(lines, line)
		if line != "" {
			lastNonEmpty = row
		}
	}

	if lastNonEmpty < 0 {
		return ""
	}

	result := ""
	for i, line := range lines[:lastNonEmpty+1] {
		if i > 0 {
			result += "\n"
		}
		result += line
	}
	return result
}

// IsAlternateScreen returns true if the alternate buffer is currently active.
func (t *Terminal) IsAlternateScreen() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.activeBuffer == t.alternateBuffer
}

// ScrollRegion returns the current scrolling boundaries (0-based, exclusive bottom).
func (t *Terminal) ScrollRegion() (top, bottom int) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.scrollTop, t.scrollBottom
}

// --- Wrapped line tracking ---

// IsWrapped returns true if the line is a wrap continuation of the previous line.
func (t *Terminal) IsWrapped(row int) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.activeBuffer.IsWrapped(row)
}

// SetWrapped sets whether the line is a wrap continuation of the previous line.
func (t *Terminal) SetWrapped(row int, wrapped bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.activeBuffer.SetWrapped(row, wrapped)
}

// AutoResize returns true if growth mode is enabled.
func (t *Terminal) AutoResize() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.autoResize
}

// --- Recording ---

// SetRecordingProvider replaces the recording handler at runtime.
func (t *Terminal) SetRecordingProvider(p RecordingProvider) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.recordingProvider = p
}

// RecordingProvider returns the current recording handler.
func (t *Terminal) RecordingProvider() RecordingProvider {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.recordingProvider
}

// RecordedData returns all raw input bytes captured since the last ClearRecording call.
func (t *Terminal) RecordedData() []byte {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.recordingProvider.Data()
}

// ClearRecording discards all captured input data.
func (t *Terminal) ClearRecording() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.recordingProvider.Clear()
}

// --- Images ---

// Image returns the image data for the given ID, or nil if not found.
func (t *Terminal) Image(id string) *ImageData {
	return t.images.Image(id)
}

// ImagePlacements returns all current image placements.
func (t *Terminal) ImagePlacements() []*ImagePlacement {
	return t.images.Placements()
}

// ImageCount returns the number of stored images.
func (t *Terminal) ImageCount() int {
	return t.images.ImageCount()
}

// ImagePlacementCount returns the number of active image placements.
func (t *Terminal) ImagePlacementCount() int {
	return t.images.PlacementCount()
}

// ImageUsedMemory returns the current image memory usage in bytes.
func (t *Terminal) ImageUsedMemory() int64 {
	return t.images.UsedMemory()
}

// SetImageMaxMemory sets the maximum memory budget for images. The
// budget covers the single image cache shared by Sixel and OSC 1337
// images.
func (t *Terminal) SetImageMaxMemory(bytes int64) {
	t.images.SetMaxMemory(bytes)
}

// ClearImages removes all images and placements.
func (t *Terminal) ClearImages() {
	t.images.Clear()
}

// SetSizeProvider sets the provider for pixel dimension queries.
func (t *Terminal) SetSizeProvider(p SizeProvider) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sizeProvider = p
}

// SetDirectoryProvider sets the working-directory report handler at runtime.
func (t *Terminal) SetDirectoryProvider(p DirectoryProvider) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.directoryProvider = p
}

// DirectoryProvider returns the current working-directory report handler.
func (t *Terminal) DirectoryProvider() DirectoryProvider {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.directoryProvider
}

// SetColorProvider sets the color-change notification handler at runtime.
func (t *Terminal) SetColorProvider(p ColorProvider) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.colorProvider = p
}

// ColorProviderValue returns the current color-change notification handler.
func (t *Terminal) ColorProviderValue() ColorProvider {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.colorProvider
}

// SetMouseModeProvider sets the mouse-mode change notification handler at runtime.
func (t *Terminal) SetMouseModeProvider(p MouseModeProvider) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.mouseModeProvider = p
}

// MouseModeProviderValue returns the current mouse-mode change notification handler.
func (t *Terminal) MouseModeProviderValue() MouseModeProvider {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.mouseModeProvider
}

// SetImageProvider sets the inline-image handler at runtime.
func (t *Terminal) SetImageProvider(p ImageProvider) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.imageProvider = p
}

// ImageProviderValue returns the current inline-image handler.
func (t *Terminal) ImageProviderValue() ImageProvider {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.imageProvider
}

// WorkingDirectory returns the most recently reported host working directory URI.
func (t *Terminal) WorkingDirectory() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.workingDir
}
