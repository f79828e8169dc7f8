package vtcore

import "github.com/coreterm/vtcore/ansi"

// ProcessSGR applies a CSI m (Select Graphic Rendition) sequence to the
// current cell template. groups is the parameter set grouped by
// top-level parameter (see ansi.Params.Groups); an empty or all-zero
// sequence resets to the default style.
func (t *Terminal) ProcessSGR(groups [][]uint16) {
	if len(groups) == 0 {
		t.SetTerminalCharAttribute(ansi.AttrReset)
		return
	}

	for i := 0; i < len(groups); i++ {
		group := groups[i]
		if len(group) == 0 {
			continue
		}
		code := group[0]

		switch ansi.CharAttribute(code) {
		case ansi.AttrUnderline:
			if len(group) > 1 {
				// Extended "4:n" form selects the underline variant.
				t.SetUnderlineStyle(underlineStyleFromCode(int(group[1])))
				continue
			}
			t.SetTerminalCharAttribute(ansi.AttrUnderline)
		case ansi.AttrForegroundSet:
			if c, consumed := t.parseSGRColor(group, groups, i); consumed > 0 {
				t.applyForegroundColor(c)
				i += consumed - 1
			}
		case ansi.AttrBackgroundSet:
			if c, consumed := t.parseSGRColor(group, groups, i); consumed > 0 {
				t.applyBackgroundColor(c)
				i += consumed - 1
			}
		case ansi.AttrUnderlineColorSet:
			if c, consumed := t.parseSGRColor(group, groups, i); consumed > 0 {
				t.applyUnderlineColor(c)
				i += consumed - 1
			}
		default:
			t.SetTerminalCharAttribute(ansi.CharAttribute(code))
		}
	}
}

// parseSGRColor decodes the extended-color forms of SGR 38/48/58. The
// color spec may arrive as subparameters colon-attached to the same
// group ("38:2:255:0:0") or as separate semicolon-delimited groups
// following it ("38;2;255;0;0", the older and more commonly emitted
// form). consumed is how many top-level groups (starting at i) were
// used, so the caller can skip past them; 0 means the semicolon form
// was cut short and nothing is applied. An unknown color-space
// selector, or a colon form too short for its selector, still
// consumes its groups and yields the zero Color (the terminal
// default), which the caller applies.
func (t *Terminal) parseSGRColor(group []uint16, groups [][]uint16, i int) (Color, int) {
	rest := group[1:]
	consumed := 1

	if len(rest) == 0 {
		// Semicolon form: read the color-space selector from the next group.
		if i+1 >= len(groups) || len(groups[i+1]) == 0 {
			return Color{}, 0
		}
		selector := groups[i+1][0]
		switch selector {
		case 2:
			if i+4 >= len(groups) {
				return Color{}, 0
			}
			r := uint8(groups[i+2][0])
			g := uint8(groups[i+3][0])
			b := uint8(groups[i+4][0])
			return RGBColorValue(r, g, b), 5
		case 5:
			if i+2 >= len(groups) {
				return Color{}, 0
			}
			return IndexedColorValue(int(groups[i+2][0])), 3
		default:
			return Color{}, 2
		}
	}

	// Colon-subparameter form: "38:2:r:g:b" or "38:5:n".
	switch rest[0] {
	case 2:
		if len(rest) < 4 {
			return Color{}, consumed
		}
		return RGBColorValue(uint8(rest[1]), uint8(rest[2]), uint8(rest[3])), consumed
	case 5:
		if len(rest) < 2 {
			return Color{}, consumed
		}
		return IndexedColorValue(int(rest[1])), consumed
	default:
		return Color{}, consumed
	}
}

func (t *Terminal) applyForegroundColor(c Color) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.template.Style.Fg = c
}

func (t *Terminal) applyBackgroundColor(c Color) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.template.Style.Bg = c
}

func (t *Terminal) applyUnderlineColor(c Color) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.template.Style.UnderlineColor = c
}

// SetTerminalCharAttribute applies a single non-color SGR attribute
// (bold, italic, reset, etc.) to the current cell template.
func (t *Terminal) SetTerminalCharAttribute(attr ansi.CharAttribute) {
	if t.middleware != nil && t.middleware.SetTerminalCharAttribute != nil {
		t.middleware.SetTerminalCharAttribute(attr, t.setTerminalCharAttributeInternal)
		return
	}
	t.setTerminalCharAttributeInternal(attr)
}

func (t *Terminal) setTerminalCharAttributeInternal(attr ansi.CharAttribute) {
	t.mu.Lock()
	defer t.mu.Unlock()

	style := &t.template.Style

	switch attr {
	case ansi.AttrReset:
		*style = NewStyle()
	case ansi.AttrBold:
		style.Flags |= CellFlagBold
	case ansi.AttrDim:
		style.Flags |= CellFlagDim
	case ansi.AttrItalic:
		style.Flags |= CellFlagItalic
	case ansi.AttrUnderline:
		style.Underline = UnderlineSingle
	case ansi.AttrBlinkSlow:
		style.Flags |= CellFlagBlinkSlow
	case ansi.AttrBlinkFast:
		style.Flags |= CellFlagBlinkFast
	case ansi.AttrReverse:
		style.Flags |= CellFlagReverse
	case ansi.AttrHidden:
		style.Flags |= CellFlagHidden
	case ansi.AttrStrike:
		style.Flags |= CellFlagStrike
	case ansi.AttrNoBoldDim:
		style.Flags &^= CellFlagBold | CellFlagDim
	case ansi.AttrNoItalic:
		style.Flags &^= CellFlagItalic
	case ansi.AttrNoUnderline:
		style.Underline = UnderlineNone
	case ansi.AttrNoBlink:
		style.Flags &^= CellFlagBlinkSlow | CellFlagBlinkFast
	case ansi.AttrNoReverse:
		style.Flags &^= CellFlagReverse
	case ansi.AttrNoHidden:
		style.Flags &^= CellFlagHidden
	case ansi.AttrNoStrike:
		style.Flags &^= CellFlagStrike
	case ansi.AttrForegroundDefault:
		style.Fg = DefaultColor
	case ansi.AttrBackgroundDefault:
		style.Bg = DefaultColor
	case ansi.AttrUnderlineColorOff:
		style.UnderlineColor = DefaultColor
	default:
		switch {
		case attr >= 30 && attr <= 37:
			style.Fg = NamedColorValue(int(attr) - 30)
		case attr >= 40 && attr <= 47:
			style.Bg = NamedColorValue(int(attr) - 40)
		case attr >= 90 && attr <= 97:
			style.Fg = NamedColorValue(int(attr) - 90 + 8)
		case attr >= 100 && attr <= 107:
			style.Bg = NamedColorValue(int(attr) - 100 + 8)
		case attr == 21:
			style.Underline = UnderlineDouble
		default:
			// Unrecognized codes are ignored rather than rejected, matching
			// how real terminals skip attributes they don't support.
		}
	}
}

// underlineStyleFromCode maps the "4:n" SGR subparameter to an
// UnderlineStyle. Out-of-range values degrade to a single underline.
func underlineStyleFromCode(n int) UnderlineStyle {
	switch n {
	case 0:
		return UnderlineNone
	case 1:
		return UnderlineSingle
	case 2:
		return UnderlineDouble
	case 3:
		return UnderlineCurly
	case 4:
		return UnderlineDotted
	case 5:
		return UnderlineDashed
	default:
		return UnderlineSingle
	}
}

// SetUnderlineStyle sets the underline variant directly (double, curly,
// dotted, dashed), used by the extended "4:n" colon-subparameter form
// of SGR underline that CSI dispatch decodes before reaching here.
func (t *Terminal) SetUnderlineStyle(style UnderlineStyle) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.template.Style.Underline = style
}
