package vtcore

import "github.com/unilibs/uniwidth"

// ambiguousWidthWide resolves the spec's Open Question on East-Asian
// "ambiguous width" characters: narrow (1 column) by default, matching
// uniwidth's own default and most terminal emulators' out-of-the-box
// behavior. A CJK-locale embedder can opt into wide via SetAmbiguousWidthWide.
var ambiguousWidthWide = false

// SetAmbiguousWidthWide switches ambiguous-width Unicode characters
// (e.g. Box Drawing, Greek letters in some fonts) between 1 and 2
// display columns for the whole process.
func SetAmbiguousWidthWide(wide bool) {
	ambiguousWidthWide = wide
}

// runeWidth returns the display width: 2 for wide characters (CJK, emoji), 1 for normal, 0 for zero-width (combining marks, control chars).
func runeWidth(r rune) int {
	w := uniwidth.RuneWidth(r)
	if w == 1 && ambiguousWidthWide && isAmbiguousWidth(r) {
		return 2
	}
	return w
}

// isWideRune returns true if the rune occupies 2 columns (CJK ideographs, fullwidth forms, emoji).
func isWideRune(r rune) bool {
	return runeWidth(r) == 2
}

// StringWidth returns the total display width of a string (sum of rune widths).
func StringWidth(s string) int {
	total := 0
	for _, r := range s {
		total += runeWidth(r)
	}
	return total
}

// isAmbiguousWidth reports whether r falls in a small set of commonly
// ambiguous-width ranges (Unicode East Asian Width class "A"): Latin-1
// Supplement punctuation, Greek, Cyrillic, and general punctuation
// blocks that render double-wide in CJK fonts.
func isAmbiguousWidth(r rune) bool {
	switch {
	case r >= 0x00A1 && r <= 0x00FF:
		return true
	case r >= 0x0391 && r <= 0x03C9: // Greek
		return true
	case r >= 0x0410 && r <= 0x044F: // Cyrillic
		return true
	case r >= 0x2010 && r <= 0x2027: // general punctuation
		return true
	case r >= 0x2500 && r <= 0x257F: // box drawing
		return true
	default:
		return false
	}
}
