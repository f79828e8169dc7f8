package vtcore

import "io"

// ResponseProvider writes terminal responses (e.g., cursor position reports) back to the PTY.
// Typically an io.Writer connected to the PTY input.
type ResponseProvider = io.Writer

// NoopResponse discards all response data (useful when responses are not needed).
type NoopResponse struct{}

func (NoopResponse) Write(p []byte) (n int, err error) {
	return len(p), nil
}

// --- Bell Provider ---

// BellProvider handles bell/beep events triggered by BEL (0x07) characters.
type BellProvider interface {
	// Ring is called when a bell character is received.
	Ring()
}

// NoopBell ignores all bell events.
type NoopBell struct{}

func (NoopBell) Ring() {}

// --- Title Provider ---

// TitleProvider handles window title changes (OSC 0, 1, 2).
type TitleProvider interface {
	// SetTitle is called when the title changes.
	SetTitle(title string)
	// PushTitle saves the current title to the stack.
	PushTitle()
	// PopTitle restores the title from the stack.
	PopTitle()
}

// NoopTitle ignores all title operations.
type NoopTitle struct{}

func (NoopTitle) SetTitle(title string) {}
func (NoopTitle) PushTitle()            {}
func (NoopTitle) PopTitle()             {}

// --- APC Provider ---

// APCProvider handles Application Program Command sequences (ESC _).
// Sixel data arrives as DCS and is not routed here.
type APCProvider interface {
	// Receive is called with the payload of an APC sequence.
	Receive(data []byte)
}

// NoopAPC ignores all APC sequences.
type NoopAPC struct{}

func (NoopAPC) Receive(data []byte) {}

// --- PM Provider ---

// PMProvider handles Privacy Message sequences (ESC ^).
type PMProvider interface {
	// Receive is called with the payload of a PM sequence.
	Receive(data []byte)
}

// NoopPM ignores all PM sequences.
type NoopPM struct{}

func (NoopPM) Receive(data []byte) {}

// --- SOS Provider ---

// SOSProvider handles Start of String sequences (ESC X).
type SOSProvider interface {
	// Receive is called with the payload of a SOS sequence.
	Receive(data []byte)
}

// NoopSOS ignores all SOS sequences.
type NoopSOS struct{}

func (NoopSOS) Receive(data []byte) {}

// --- Clipboard Provider ---

// ClipboardProvider handles clipboard read/write operations (OSC 52).
type ClipboardProvider interface {
	// Read returns content from the specified clipboard ('c' for clipboard, 'p' for primary selection).
	Read(clipboard byte) string
	// Write stores content to the specified clipboard.
	Write(clipboard byte, data []byte)
}

// NoopClipboard ignores all clipboard operations.
type NoopClipboard struct{}

func (NoopClipboard) Read(clipboard byte) string        { return "" }
func (NoopClipboard) Write(clipboard byte, data []byte) {}

// --- Recording Provider ---

// RecordingProvider captures raw input bytes before ANSI parsing for replay or debugging.
type RecordingProvider interface {
	// Record appends raw bytes to the recording.
	Record(data []byte)
	// Data returns all captured bytes since the last Clear call.
	Data() []byte
	// Clear discards all recorded data.
	Clear()
}

// NoopRecording discards all input recordings.
type NoopRecording struct{}

func (NoopRecording) Record([]byte) {}
func (NoopRecording) Data() []byte  { return nil }
func (NoopRecording) Clear()        {}

// --- Size Provider ---

// SizeProvider reports the window's pixel dimensions, used to answer
// CSI 14 t / CSI 16 t device-size reports and to work out how many
// character cells a placed image's pixel size covers.
type SizeProvider interface {
	// WindowSizePixels returns the terminal window's width and height in pixels.
	WindowSizePixels() (width, height int)
	// CellSizePixels returns a single character cell's width and height in pixels.
	CellSizePixels() (width, height int)
}

// NoopSize reports zero for all pixel dimensions.
type NoopSize struct{}

func (NoopSize) WindowSizePixels() (int, int) { return 0, 0 }
func (NoopSize) CellSizePixels() (int, int)   { return 0, 0 }

// --- Directory Provider ---

// DirectoryProvider is notified when the host reports its current
// working directory (OSC 7).
type DirectoryProvider interface {
	// DirectoryChanged is called with the reported URI (e.g.
	// file://host/path, as sent in OSC 7) whenever the host's working
	// directory changes.
	DirectoryChanged(path string)
}

// NoopDirectory ignores working-directory updates.
type NoopDirectory struct{}

func (NoopDirectory) DirectoryChanged(path string) {}

// --- Color Provider ---

// ColorProvider is notified when a palette entry or dynamic color
// (OSC 4/10/11/12/104) changes.
type ColorProvider interface {
	// ColorChanged is called with the palette index that was modified.
	ColorChanged(index int)
}

// NoopColor ignores color-change notifications.
type NoopColor struct{}

func (NoopColor) ColorChanged(index int) {}

// --- Mouse Mode Provider ---

// MouseModeProvider is notified when the active mouse-reporting mode changes.
type MouseModeProvider interface {
	// MouseModeChanged is called with a short name of the newly active
	// mode ("sgr", "urxvt", "x10", "vt200", or "" when mouse reporting
	// is disabled).
	MouseModeChanged(mode string)
}

// NoopMouseMode ignores mouse-mode change notifications.
type NoopMouseMode struct{}

func (NoopMouseMode) MouseModeChanged(mode string) {}

// --- Image Provider ---

// ImageProvider receives inline images from the Sixel (DCS) and
// iTerm2 (OSC 1337) protocols: Sixel as a decoded bitmap, OSC 1337 as
// the raw encoded payload.
type ImageProvider interface {
	// CreateImageFromBitmap is called with a tightly packed RGBA buffer
	// (premultiplied alpha, 8 bits/channel) produced by the Sixel handler.
	CreateImageFromBitmap(data []byte, width, height int)
	// CreateImage is called with raw encoded image bytes (e.g. a PNG
	// payload from OSC 1337) plus the size hints the protocol carried.
	CreateImage(data []byte, widthSpec, heightSpec string, preserveAspectRatio bool)
}

// NoopImage discards all inline-image payloads.
type NoopImage struct{}

func (NoopImage) CreateImageFromBitmap(data []byte, width, height int)                 {}
func (NoopImage) CreateImage(data []byte, widthSpec, heightSpec string, preserve bool) {}

// Ensure implementations satisfy their interfaces
var _ ResponseProvider = NoopResponse{}
var _ BellProvider = NoopBell{}
var _ TitleProvider = NoopTitle{}
var _ APCProvider = NoopAPC{}
var _ PMProvider = NoopPM{}
var _ SOSProvider = NoopSOS{}
var _ ClipboardProvider = NoopClipboard{}
var _ RecordingProvider = NoopRecording{}
var _ SizeProvider = NoopSize{}
var _ DirectoryProvider = NoopDirectory{}
var _ ColorProvider = NoopColor{}
var _ MouseModeProvider = NoopMouseMode{}
var _ ImageProvider = NoopImage{}
