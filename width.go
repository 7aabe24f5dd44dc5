package vtterm

import (
	"unicode"

	"github.com/rivo/uniseg"
	"github.com/unilibs/uniwidth"
)

// maxCombiningMarks caps the number of combining marks attached to a single
// base cell. Marks beyond the cap are dropped rather than grown without
// bound, since a cell's combining-mark tail is otherwise unbounded input
// from an untrusted byte stream.
const maxCombiningMarks = 8

// runeWidth returns the display width of r: 2 for wide characters (CJK,
// fullwidth forms, many emoji), 1 for normal characters, 0 for combining
// marks and other zero-width scalars. Backed by an explicit Unicode width
// table rather than hand-rolled range checks, per the parser contract's
// requirement to use an up-to-date table.
func runeWidth(r rune) int {
	return uniwidth.RuneWidth(r)
}

// isWideRune reports whether r occupies two grid columns.
func isWideRune(r rune) bool {
	return uniwidth.RuneWidth(r) == 2
}

// isCombiningMark reports whether r is a zero-width combining mark that
// should attach to the previous cell instead of starting a new one.
//
// Grapheme policy: this package clusters only combining marks (Unicode
// general categories Mn/Me/Mc, width 0) onto the preceding base cell, each
// cell capped at maxCombiningMarks. It does not perform full extended
// grapheme clustering (e.g. ZWJ emoji sequences collapse to their
// individual scalars, each occupying its own cell) — that is a documented
// limitation, not an oversight; see the Open Questions entry in DESIGN.md.
func isCombiningMark(r rune) bool {
	if r == 0 {
		return false
	}
	return unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Me, r) || unicode.Is(unicode.Mc, r)
}

// formsSingleGrapheme reports whether appending mark to the scalar sequence
// base still yields a single user-perceived grapheme cluster, using
// uniseg's cluster boundary algorithm. Used as a guard before attaching a
// combining mark to a cell so that marks are never merged across a
// boundary uniseg itself would break on.
func formsSingleGrapheme(base []rune, mark rune) bool {
	s := string(base) + string(mark)
	return uniseg.GraphemeClusterCount(s) == 1
}

// StringWidth returns the total display width of s, summing each rune's
// width (0, 1, or 2).
func StringWidth(s string) int {
	return uniwidth.StringWidth(s)
}
