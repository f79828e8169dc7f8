// Package ansi implements a byte-stream VT500-style escape sequence
// parser: a state machine that turns a stream of terminal output bytes
// into calls on a Performer (print a rune, execute a control code,
// dispatch a CSI/OSC/DCS sequence).
//
// The state table mirrors the classic vt100.net/Paul Williams parser
// used by most real terminal emulators (xterm, Alacritty's vte crate,
// etc.): Ground, Escape, CSI entry/param/intermediate/ignore, OSC
// string, DCS entry/param/intermediate/passthrough/ignore, and
// SOS/PM/APC string.
package ansi

// State identifies the parser's current position in the escape
// sequence grammar.
type State int

const (
	StateGround State = iota
	StateEscape
	StateEscapeIntermediate
	StateCSIEntry
	StateCSIParam
	StateCSIIntermediate
	StateCSIIgnore
	StateOSCString
	StateDCSEntry
	StateDCSParam
	StateDCSIntermediate
	StateDCSPassthrough
	StateDCSIgnore
	StateSOSPMApcString
)

func (s State) String() string {
	switch s {
	case StateGround:
		return "Ground"
	case StateEscape:
		return "Escape"
	case StateEscapeIntermediate:
		return "EscapeIntermediate"
	case StateCSIEntry:
		return "CSIEntry"
	case StateCSIParam:
		return "CSIParam"
	case StateCSIIntermediate:
		return "CSIIntermediate"
	case StateCSIIgnore:
		return "CSIIgnore"
	case StateOSCString:
		return "OSCString"
	case StateDCSEntry:
		return "DCSEntry"
	case StateDCSParam:
		return "DCSParam"
	case StateDCSIntermediate:
		return "DCSIntermediate"
	case StateDCSPassthrough:
		return "DCSPassthrough"
	case StateDCSIgnore:
		return "DCSIgnore"
	case StateSOSPMApcString:
		return "SOSPMApcString"
	default:
		return "Unknown"
	}
}
