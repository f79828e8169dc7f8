// Package vtcore provides a headless VT220-compatible terminal emulator.
//
// This package emulates a terminal without any display, making it ideal for:
//   - Testing terminal applications without a GUI
//   - Building terminal multiplexers and recorders
//   - Creating terminal-based web applications
//   - Automated testing of CLI tools
//   - Screen scraping and automation
//
// # Quick Start
//
// Create a terminal and write ANSI sequences to it:
//
//	term := vtcore.New()
//	term.WriteString("\x1b[31mHello \x1b[32mWorld\x1b[0m!")
//	fmt.Println(term.String()) // "Hello World!"
//
// # Architecture
//
// The package is organized around these core types:
//
//   - [Terminal]: The main emulator that processes ANSI sequences
//   - [Buffer]: A 2D grid of cells with scrollback support
//   - [Cell]: A single character with colors and attributes
//   - [Cursor]: Tracks position and rendering style
//
// # Terminal
//
// Terminal is the main entry point. It implements [io.Writer] so you can write
// raw bytes containing ANSI escape sequences:
//
//	term := vtcore.New(
//	    vtcore.WithSize(24, 80),        // 24 rows, 80 columns
//	    vtcore.WithScrollback(storage), // Enable scrollback
//	    vtcore.WithResponse(ptyWriter), // Handle terminal responses
//	)
//
//	// Process output from a command
//	cmd := exec.Command("ls", "-la", "--color")
//	cmd.Stdout = term
//	cmd.Run()
//
//	// Read the result
//	for row := 0; row < term.Rows(); row++ {
//	    fmt.Println(term.LineContent(row))
//	}
//
// # Dual Buffers
//
// Terminal maintains two buffers:
//
//   - Primary buffer: Normal mode with optional scrollback storage
//   - Alternate buffer: Used by full-screen apps (vim, less, htop), no scrollback
//
// Applications switch buffers via ANSI sequences (CSI ?1049h/l). Check which
// buffer is active:
//
//	if term.IsAlternateScreen() {
//	    // Full-screen app is running
//	}
//
// # Cells and Attributes
//
// Each cell stores a character with styling information:
//
//	cell := term.Cell(row, col)
//	if cell != nil {
//	    fmt.Printf("Char: %c\n", cell.Char)
//	    fmt.Printf("Bold: %v\n", cell.HasFlag(vtcore.CellFlagBold))
//	    fmt.Printf("FG: %v\n", cell.Style.Fg)
//	    fmt.Printf("BG: %v\n", cell.Style.Bg)
//	}
//
// Cell flags include: Bold, Dim, Italic, BlinkSlow, BlinkFast, Reverse, Hidden,
// Strike. Underline is tracked separately on [Style.Underline] since it has
// several variants (single, double, curly, dotted, dashed), not just on/off.
//
// # Colors
//
// Colors are stored as the value-typed [Color], a small tagged union covering:
//
//   - Default (terminal's own foreground/background)
//   - Named colors (the 16 standard ANSI colors plus semantic slots like cursor)
//   - 256-color palette indices
//   - True color (24-bit RGB)
//
// Use [ResolveColor] to convert any Color to [color.RGBA]:
//
//	rgba := vtcore.ResolveColor(cell.Style.Fg, true)
//
// Palette and dynamic-color overrides installed via OSC 4/10/11/12 are not
// reflected by ResolveColor itself; rendering code that needs those overrides
// applied should read a snapshot instead, which resolves colors through the
// live override table.
//
// # Scrollback
//
// Lines scrolled off the top of the primary buffer can be stored for later access.
// Implement [ScrollbackProvider] or use the built-in memory storage:
//
//	// In-memory scrollback with 10000 line limit
//	storage := vtcore.NewMemoryScrollback(10000)
//	term := vtcore.New(vtcore.WithScrollback(storage))
//
//	// Access scrollback
//	for i := 0; i < term.ScrollbackLen(); i++ {
//	    line := term.ScrollbackLine(i) // []Cell
//	}
//
// # Terminal Responses
//
// [ResponseProvider] writes terminal responses back to the host (cursor
// position reports, DA/DSR replies, OSC color queries, etc.):
//
//	term := vtcore.New(vtcore.WithResponse(os.Stdout))
//
// # Providers
//
// Providers handle terminal events and queries. All are optional with no-op defaults:
//
//   - [BellProvider]: Handles bell/beep events
//   - [TitleProvider]: Handles window title changes (OSC 0/1/2)
//   - [ClipboardProvider]: Handles clipboard operations (OSC 52)
//   - [ScrollbackProvider]: Stores lines scrolled off screen
//   - [RecordingProvider]: Captures raw input for replay
//   - [SizeProvider]: Provides pixel dimensions for queries
//   - [ColorProvider]: Notified when a palette or dynamic color changes
//   - [MouseModeProvider]: Notified when the active mouse reporting mode changes
//   - [ImageProvider]: Receives decoded Sixel bitmaps and raw iTerm2 inline-image payloads
//   - [DirectoryProvider]: Notified of working-directory changes (OSC 7)
//   - [ShellIntegrationProvider]: Handles semantic prompt marks (OSC 133)
//   - [APCProvider], [PMProvider], [SOSProvider]: Receive APC/PM/SOS string payloads
//
// Example with providers:
//
//	term := vtcore.New(
//	    vtcore.WithResponse(os.Stdout),
//	    vtcore.WithBell(&MyBellHandler{}),
//	    vtcore.WithTitle(&MyTitleHandler{}),
//	)
//
// # Middleware
//
// Middleware intercepts ANSI handler calls for custom behavior:
//
//	mw := &vtcore.Middleware{
//	    Input: func(r rune, next func(rune)) {
//	        log.Printf("Input: %c", r)
//	        next(r) // Call default handler
//	    },
//	    Bell: func(next func()) {
//	        log.Println("Bell!")
//	        // Don't call next() to suppress the bell
//	    },
//	}
//	term := vtcore.New(vtcore.WithMiddleware(mw))
//
// # Terminal Modes
//
// Various terminal behaviors are controlled by mode flags:
//
//	term.HasMode(ansi.ModeAutowrap)       // Auto line wrap enabled?
//	term.HasMode(ansi.ModeCursorVisible)  // Cursor visible?
//	term.HasMode(ansi.ModeBracketedPaste) // Bracketed paste enabled?
//
// See [ansi.TerminalMode] for all available modes.
//
// # Dirty Tracking
//
// Track which cells changed for efficient rendering:
//
//	if term.HasDirty() {
//	    for _, pos := range term.DirtyCells() {
//	        // Redraw cell at pos.Row, pos.Col
//	    }
//	    term.ClearDirty()
//	}
//
// # Snapshots
//
// Capture the terminal state for serialization or rendering:
//
//	// Text only (smallest)
//	snap := term.Snapshot(vtcore.SnapshotDetailText)
//
//	// With style segments (good for HTML rendering)
//	snap := term.Snapshot(vtcore.SnapshotDetailStyled)
//
//	// Full cell data (complete state, includes image references)
//	snap := term.Snapshot(vtcore.SnapshotDetailFull)
//
//	// Convert to JSON
//	data, _ := json.Marshal(snap)
//
// Snapshots include detailed attribute information:
//   - Underline styles: "single", "double", "curly", "dotted", "dashed"
//   - Blink types: "slow", "fast"
//   - Underline color (separate from foreground)
//   - Cell image references with UV coordinates for texture mapping
//
// # Image Support
//
// The terminal supports inline images via the Sixel and iTerm2 inline-image
// protocols:
//
//	// Check if Sixel is enabled
//	if term.SixelEnabled() {
//	    // Process Sixel sequences
//	}
//
//	// Access stored images
//	for _, placement := range term.ImagePlacements() {
//	    img := term.Image(placement.ImageID)
//	    // img.Data contains RGBA pixels
//	}
//
//	// Configure image memory budget
//	term.SetImageMaxMemory(100 * 1024 * 1024) // 100MB
//
// # Shell Integration
//
// Track shell prompts and command output (OSC 133):
//
//	term := vtcore.New(
//	    vtcore.WithShellIntegration(&MyHandler{}),
//	)
//
//	// Navigate between prompts (uses absolute rows, including scrollback)
//	currentAbsRow := term.ViewportRowToAbsolute(0)
//	nextAbsRow := term.NextPromptRow(currentAbsRow, ansi.MarkPromptStart)
//	prevAbsRow := term.PrevPromptRow(currentAbsRow, ansi.MarkPromptStart)
//	viewportRow := term.AbsoluteRowToViewport(nextAbsRow) // -1 if in scrollback
//
//	// Get last command output
//	output := term.GetLastCommandOutput()
//
// # Mouse Reporting
//
// Applications enable mouse tracking with DECSET 9/1000/1002/1003 and pick an
// encoding with 1006 (SGR) or 1015 (URXVT). The terminal tracks those modes and
// encodes events from the embedder's input loop. Mode 1005 (UTF-8) is tracked
// but not used for encoding: with it set, reports use the legacy byte form.
//
//	// Left press at cell (col=10, row=5), 1-based
//	term.ReportMouseEvent(vtcore.MouseButtonLeft, 10, 5, true)
//
// When several encodings are enabled at once, SGR wins over URXVT, which wins
// over the legacy X10 byte encoding.
//
// # Auto-Resize Mode
//
// In auto-resize mode, the buffer grows instead of scrolling:
//
//	term := vtcore.New(vtcore.WithAutoResize())
//
//	// Capture complete output without truncation
//	cmd.Stdout = term
//	cmd.Run()
//
//	// Buffer has grown to fit all output
//	fmt.Printf("Total rows: %d\n", term.Rows())
//
// # Thread Safety
//
// All Terminal methods are safe for concurrent use. The terminal uses internal
// locking to protect state. However, if you need to perform multiple operations
// atomically, you should use your own synchronization.
//
// # Supported ANSI Sequences
//
// The terminal supports a comprehensive set of ANSI escape sequences including:
//
//   - Cursor movement (CUU, CUD, CUF, CUB, CUP, HVP, etc.)
//   - Cursor save/restore (DECSC, DECRC)
//   - Erase commands (ED, EL, ECH)
//   - Insert/delete (ICH, DCH, IL, DL)
//   - Scrolling (SU, SD, DECSTBM)
//   - Character attributes (SGR) with full color support
//   - Terminal modes (DECSET, DECRST)
//   - Device status and attribute reports (DSR, DA1, DA2)
//   - Alternate screen buffer
//   - Bracketed paste mode
//   - Mouse reporting (X10, VT200, SGR, URXVT encodings)
//   - Window title (OSC 0/1/2)
//   - Clipboard (OSC 52)
//   - Hyperlinks (OSC 8)
//   - Shell integration (OSC 133)
//   - Sixel graphics and the iTerm2 inline-image protocol
package vtcore
