package vtcore

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strconv"
	"strings"

	"github.com/coreterm/vtcore/ansi"
	"golang.org/x/image/draw"
)

// OscDispatch handles a complete Operating System Command sequence.
// params[0] is the numeric command; params[1:] are its semicolon-
// separated arguments, all still raw bytes. bellTerminated records
// whether the sequence ended with BEL rather than ST, so a reply uses
// the same terminator the host used.
func (t *Terminal) OscDispatch(params [][]byte, bellTerminated bool) {
	if len(params) == 0 {
		return
	}

	terminator := "\x1b\\"
	if bellTerminated {
		terminator = "\x07"
	}

	cmd, err := strconv.Atoi(string(params[0]))
	if err != nil {
		return
	}

	args := params[1:]

	switch cmd {
	case 0, 2:
		if len(args) > 0 {
			t.SetTitle(string(args[0]))
		}
	case 1:
		// Icon name only; this module has no separate icon-name slot.
	case 4:
		t.handleSetPalette(args, terminator)
	case 7:
		if len(args) > 0 {
			t.SetWorkingDirectory(string(args[0]))
		}
	case 8:
		t.handleHyperlink(args)
	case 10:
		t.handleDynamicColor("10", NamedColorForeground, args, terminator)
	case 11:
		t.handleDynamicColor("11", NamedColorBackground, args, terminator)
	case 12:
		t.handleDynamicColor("12", NamedColorCursor, args, terminator)
	case 52:
		t.handleClipboard(args, terminator)
	case 104:
		t.handleResetPalette(args)
	case 133:
		t.handleShellIntegration(args)
	case 1337:
		t.handleITerm2Image(args)
	}
}

// handleSetPalette processes OSC 4: one or more index;spec pairs.
func (t *Terminal) handleSetPalette(args [][]byte, terminator string) {
	for i := 0; i+1 < len(args); i += 2 {
		index, err := strconv.Atoi(string(args[i]))
		if err != nil {
			continue
		}
		spec := string(args[i+1])
		if spec == "?" {
			rgba := t.resolveCellColor(IndexedColorValue(index), true)
			reply := "\x1b]4;" + strconv.Itoa(index) + ";" + rgbSpec(rgba) + terminator
			t.writeResponseString(reply)
			continue
		}
		if c, ok := parseColorSpec(spec); ok {
			t.SetColor(index, c)
		}
	}
}

// handleResetPalette processes OSC 104: reset one, several, or (with
// no arguments) every palette override.
func (t *Terminal) handleResetPalette(args [][]byte) {
	if len(args) == 0 || len(args[0]) == 0 {
		t.ResetColor(-1)
		return
	}
	for _, raw := range args {
		if index, err := strconv.Atoi(string(raw)); err == nil {
			t.ResetColor(index)
		}
	}
}

// handleDynamicColor processes OSC 10/11/12 (set or query the
// foreground, background, or cursor color).
func (t *Terminal) handleDynamicColor(prefix string, index int, args [][]byte, terminator string) {
	if len(args) == 0 {
		return
	}
	spec := string(args[0])
	if spec == "?" {
		t.SetDynamicColor(prefix, index, terminator)
		return
	}
	if c, ok := parseColorSpec(spec); ok {
		t.SetColor(index, c)
	}
}

// handleHyperlink processes OSC 8: params;URI. params is a
// colon-separated key=value list; only id= is recognized. An empty
// URI closes the currently open hyperlink.
func (t *Terminal) handleHyperlink(args [][]byte) {
	var id, uri string
	if len(args) > 0 {
		for _, kv := range strings.Split(string(args[0]), ":") {
			if strings.HasPrefix(kv, "id=") {
				id = strings.TrimPrefix(kv, "id=")
			}
		}
	}
	if len(args) > 1 {
		uri = string(args[1])
	}

	if uri == "" {
		t.SetHyperlink(nil)
		return
	}
	t.SetHyperlink(&Hyperlink{ID: id, URI: uri})
}

// handleClipboard processes OSC 52: clipboard;base64-data, or
// clipboard;? to request the current contents.
func (t *Terminal) handleClipboard(args [][]byte, terminator string) {
	if len(args) < 2 {
		return
	}
	clipboard := byte('c')
	if len(args[0]) > 0 {
		clipboard = args[0][0]
	}

	if string(args[1]) == "?" {
		t.ClipboardLoad(clipboard, terminator)
		return
	}

	data, err := base64.StdEncoding.DecodeString(string(args[1]))
	if err != nil {
		return
	}
	t.ClipboardStore(clipboard, data)
}

// handleShellIntegration processes OSC 133 semantic prompt marks.
func (t *Terminal) handleShellIntegration(args [][]byte) {
	if len(args) == 0 || len(args[0]) == 0 {
		return
	}

	exitCode := -1
	if len(args) > 1 {
		if code, err := strconv.Atoi(string(args[1])); err == nil {
			exitCode = code
		}
	}

	// FinalTerm semantics: A opens the prompt, B ends it (user input
	// begins), C marks the command starting to execute (output follows),
	// D marks it finished, optionally with an exit code.
	switch args[0][0] {
	case 'A':
		t.ShellIntegrationMark(ansi.MarkPromptStart, exitCode)
	case 'B':
		t.ShellIntegrationMark(ansi.MarkPromptEnd, exitCode)
	case 'C':
		t.ShellIntegrationMark(ansi.MarkCommandExecuted, exitCode)
	case 'D':
		t.ShellIntegrationMark(ansi.MarkCommandFinished, exitCode)
	}
}

// handleITerm2Image processes the iTerm2 inline-image protocol
// ("File=key=val,key=val:base64data").
func (t *Terminal) handleITerm2Image(args [][]byte) {
	if len(args) == 0 {
		return
	}

	payload := string(args[0])
	for _, arg := range args[1:] {
		payload += ";" + string(arg)
	}

	rest := strings.TrimPrefix(payload, "File=")
	parts := strings.SplitN(rest, ":", 2)
	if len(parts) != 2 {
		return
	}

	var widthSpec, heightSpec string
	preserveAspect := true
	for _, kv := range strings.Split(parts[0], ",") {
		pieces := strings.SplitN(kv, "=", 2)
		if len(pieces) != 2 {
			continue
		}
		switch pieces[0] {
		case "width":
			widthSpec = pieces[1]
		case "height":
			heightSpec = pieces[1]
		case "preserveAspectRatio":
			preserveAspect = pieces[1] != "0"
		}
	}

	data, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return
	}

	t.mu.RLock()
	provider := t.imageProvider
	t.mu.RUnlock()
	provider.CreateImage(data, widthSpec, heightSpec, preserveAspect)

	// Decode the payload into RGBA and place it like a Sixel, so the
	// image store and snapshot export see it too. Undecodable payloads
	// degrade to the delegate notification alone.
	decoded, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return
	}
	bounds := decoded.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), decoded, bounds.Min, draw.Src)
	t.placeImageBitmap(uint32(bounds.Dx()), uint32(bounds.Dy()), rgba.Pix)
}

// rgbSpec formats an RGBA color in the X11 "rgb:RRRR/GGGG/BBBB" form
// xterm uses for OSC color query replies.
func rgbSpec(c color.RGBA) string {
	return "rgb:" + hex2(c.R) + hex2(c.R) + "/" + hex2(c.G) + hex2(c.G) + "/" + hex2(c.B) + hex2(c.B)
}

func hex2(b uint8) string {
	const digits = "0123456789abcdef"
	return string([]byte{digits[b>>4], digits[b&0xf]})
}

// parseColorSpec parses the "#RRGGBB" and "rgb:RRRR/GGGG/BBBB" color
// forms used by OSC 4/10/11/12 set requests.
func parseColorSpec(spec string) (Color, bool) {
	if strings.HasPrefix(spec, "#") && len(spec) == 7 {
		r, err1 := strconv.ParseUint(spec[1:3], 16, 8)
		g, err2 := strconv.ParseUint(spec[3:5], 16, 8)
		b, err3 := strconv.ParseUint(spec[5:7], 16, 8)
		if err1 == nil && err2 == nil && err3 == nil {
			return RGBColorValue(uint8(r), uint8(g), uint8(b)), true
		}
		return Color{}, false
	}

	if strings.HasPrefix(spec, "rgb:") {
		channels := strings.Split(strings.TrimPrefix(spec, "rgb:"), "/")
		if len(channels) != 3 {
			return Color{}, false
		}
		var out [3]uint8
		for i, ch := range channels {
			v, err := strconv.ParseUint(ch[:min(len(ch), 2)], 16, 16)
			if err != nil {
				return Color{}, false
			}
			out[i] = uint8(v)
		}
		return RGBColorValue(out[0], out[1], out[2]), true
	}

	return Color{}, false
}
