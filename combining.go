package vtcore

import "golang.org/x/text/unicode/norm"

// isCombiningMark reports whether r is a zero-width combining mark that
// should attach to the previously printed cell's code-point sequence
// instead of occupying a cell of its own. Classification is done via
// the canonical combining class exposed by the Unicode normalization
// tables: a nonzero CCC means r modifies a preceding base character.
func isCombiningMark(r rune) bool {
	if runeWidth(r) != 0 {
		return false
	}
	return norm.NFC.PropertiesString(string(r)).CCC() != 0
}
