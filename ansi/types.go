package ansi

// LineClearMode selects which part of the current line EL (CSI K) erases.
type LineClearMode int

const (
	LineClearRight LineClearMode = iota
	LineClearLeft
	LineClearAll
)

// ClearMode selects which part of the screen ED (CSI J) erases.
type ClearMode int

const (
	ClearBelow ClearMode = iota
	ClearAbove
	ClearAll
	ClearSavedLines
)

// TabulationClearMode selects which tab stops TBC (CSI g) clears.
type TabulationClearMode int

const (
	TabClearCurrent TabulationClearMode = iota
	TabClearAll
)

// TerminalMode is a bitmask of DEC private and ANSI terminal modes
// tracked by CSI h/l (DECSET/DECRST).
type TerminalMode uint64

const (
	ModeCursorKeys TerminalMode = 1 << iota
	ModeAutowrap
	ModeOriginMode
	ModeInsert
	ModeLineFeedNewline
	ModeAlternateScreen
	ModeAlternateScreenSaveCursor
	ModeCursorVisible
	ModeBracketedPaste
	ModeFocusEvents
	ModeMouseX10
	ModeMouseVT200
	ModeMouseButtonEvent
	ModeMouseAnyEvent
	ModeMouseUTF8
	ModeMouseSGR
	ModeMouseURXVT
	ModeSynchronizedOutput
	ModeApplicationKeypad
	ModeReverseWraparound
	// ModeSaveRestoreCursor is DEC private mode 1048: setting it saves
	// the cursor (DECSC semantics), resetting it restores (DECRC),
	// without touching the alternate screen.
	ModeSaveRestoreCursor
)

// CharAttribute enumerates SGR (CSI m) parameter codes.
type CharAttribute int

const (
	AttrReset             CharAttribute = 0
	AttrBold              CharAttribute = 1
	AttrDim               CharAttribute = 2
	AttrItalic            CharAttribute = 3
	AttrUnderline         CharAttribute = 4
	AttrBlinkSlow         CharAttribute = 5
	AttrBlinkFast         CharAttribute = 6
	AttrReverse           CharAttribute = 7
	AttrHidden            CharAttribute = 8
	AttrStrike            CharAttribute = 9
	AttrNoBoldDim         CharAttribute = 22
	AttrNoItalic          CharAttribute = 23
	AttrNoUnderline       CharAttribute = 24
	AttrNoBlink           CharAttribute = 25
	AttrNoReverse         CharAttribute = 27
	AttrNoHidden          CharAttribute = 28
	AttrNoStrike          CharAttribute = 29
	AttrForegroundSet     CharAttribute = 38
	AttrForegroundDefault CharAttribute = 39
	AttrBackgroundSet     CharAttribute = 48
	AttrBackgroundDefault CharAttribute = 49
	AttrUnderlineColorSet CharAttribute = 58
	AttrUnderlineColorOff CharAttribute = 59
)

// ShellIntegrationMark identifies an OSC 133 semantic prompt boundary,
// following the FinalTerm A/B/C/D convention.
type ShellIntegrationMark int

const (
	// MarkPromptStart (A): the shell is about to draw its prompt.
	MarkPromptStart ShellIntegrationMark = iota
	// MarkPromptEnd (B): the prompt is done; user input begins.
	MarkPromptEnd
	// MarkCommandExecuted (C): the command started running; output follows.
	MarkCommandExecuted
	// MarkCommandFinished (D): the command exited, optionally with a code.
	MarkCommandFinished
)
