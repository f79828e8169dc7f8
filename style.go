package vtcore

// ColorKind tags which representation a Style's color slot uses.
type ColorKind uint8

const (
	// ColorDefault means "use the terminal's default foreground/background".
	ColorDefault ColorKind = iota
	// ColorNamed selects one of the semantic named-color indices below
	// (0-15 standard ANSI colors, plus the NamedColor* semantic slots).
	ColorNamed
	// ColorIndexed selects a slot in the 256-color palette.
	ColorIndexed
	// ColorRGB is a 24-bit truecolor value.
	ColorRGB
)

// Color is a value-typed terminal color: a small tagged union instead
// of an interface, so two Colors compare equal with ==.
type Color struct {
	Kind    ColorKind
	Index   int   // valid for ColorNamed and ColorIndexed
	R, G, B uint8 // valid for ColorRGB
}

// DefaultColor is the zero Color: "use the terminal default".
var DefaultColor = Color{Kind: ColorDefault}

// NamedColorValue returns a Color referencing a named/semantic index.
func NamedColorValue(index int) Color {
	return Color{Kind: ColorNamed, Index: index}
}

// IndexedColorValue returns a Color referencing the 256-color palette.
func IndexedColorValue(index int) Color {
	return Color{Kind: ColorIndexed, Index: index}
}

// RGBColorValue returns a truecolor Color.
func RGBColorValue(r, g, b uint8) Color {
	return Color{Kind: ColorRGB, R: r, G: g, B: b}
}

// UnderlineStyle distinguishes the SGR underline variants.
type UnderlineStyle uint8

const (
	UnderlineNone UnderlineStyle = iota
	UnderlineSingle
	UnderlineDouble
	UnderlineCurly
	UnderlineDotted
	UnderlineDashed
)

// Style is the value-typed, content-comparable rendering attribute set
// for a cell: two Style values produced from the same SGR sequence
// compare equal with ==, and copying a Style never touches the heap.
type Style struct {
	Fg             Color
	Bg             Color
	UnderlineColor Color
	Underline      UnderlineStyle
	Flags          CellFlags
}

// NewStyle returns the default style: default colors, no attributes.
func NewStyle() Style {
	return Style{Fg: DefaultColor, Bg: DefaultColor, UnderlineColor: DefaultColor}
}

// HasFlag reports whether flag is set.
func (s Style) HasFlag(flag CellFlags) bool {
	return s.Flags&flag != 0
}

// WithFlag returns a copy of s with flag set.
func (s Style) WithFlag(flag CellFlags) Style {
	s.Flags |= flag
	return s
}

// WithoutFlag returns a copy of s with flag cleared.
func (s Style) WithoutFlag(flag CellFlags) Style {
	s.Flags &^= flag
	return s
}
