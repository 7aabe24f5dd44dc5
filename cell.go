package vtterm

// AttrFlags is a bitset of SGR style flags.
type AttrFlags uint16

const (
	AttrBold AttrFlags = 1 << iota
	AttrDim
	AttrItalic
	AttrUnderline
	AttrBlink
	AttrInverse
	AttrInvisible
	AttrStrikethrough
)

// Attributes bundles the foreground/background color and style flags
// applied to a cell. It is also used as the "current attributes" template
// that SGR sequences mutate and that new writes copy from.
type Attributes struct {
	Fg    Color
	Bg    Color
	Flags AttrFlags
}

// DefaultAttributes returns the reset SGR state: default colors, no flags.
func DefaultAttributes() Attributes {
	return Attributes{Fg: DefaultColor(), Bg: DefaultColor()}
}

// HasFlag reports whether flag is set.
func (a Attributes) HasFlag(flag AttrFlags) bool { return a.Flags&flag != 0 }

// WithFlag returns a copy of a with flag set.
func (a Attributes) WithFlag(flag AttrFlags) Attributes { a.Flags |= flag; return a }

// WithoutFlag returns a copy of a with flag cleared.
func (a Attributes) WithoutFlag(flag AttrFlags) Attributes { a.Flags &^= flag; return a }

// Cell is one grid position: a Unicode scalar, its display width (0, 1, or
// 2), and its Attributes. Width 0 denotes the padding cell immediately
// following a width-2 cell; such a cell's Codepoint is undefined and must
// never be rendered or extracted as a character of its own.
type Cell struct {
	Codepoint rune
	Width     int
	Attrs     Attributes
	// Combining holds zero-width combining marks attached to Codepoint,
	// capped at maxCombiningMarks (see width.go). Nil for the common case.
	Combining []rune
}

// BlankCell returns a width-1 space cell with background bg, the default
// foreground, and no style flags — erase semantics only preserve
// background, per the screen buffer's erase contract.
func BlankCell(bg Color) Cell {
	return Cell{
		Codepoint: ' ',
		Width:     1,
		Attrs:     Attributes{Fg: DefaultColor(), Bg: bg},
	}
}

// IsPadding reports whether c is the width-0 companion of a preceding
// width-2 cell.
func (c Cell) IsPadding() bool { return c.Width == 0 }

// Runes returns the cell's text content: the base codepoint followed by any
// attached combining marks. A padding cell and a cell with Codepoint 0
// yield nothing.
func (c Cell) Runes() []rune {
	if c.Width == 0 || c.Codepoint == 0 {
		return nil
	}
	if len(c.Combining) == 0 {
		return []rune{c.Codepoint}
	}
	out := make([]rune, 0, 1+len(c.Combining))
	out = append(out, c.Codepoint)
	return append(out, c.Combining...)
}

// attachCombining appends mark to c's combining-mark tail, capped at
// maxCombiningMarks and only when it still forms a single grapheme with
// the existing sequence. Returns false if the mark was dropped.
func (c *Cell) attachCombining(mark rune) bool {
	if c.Codepoint == 0 || len(c.Combining) >= maxCombiningMarks {
		return false
	}
	base := append([]rune{c.Codepoint}, c.Combining...)
	if !formsSingleGrapheme(base, mark) {
		return false
	}
	c.Combining = append(c.Combining, mark)
	return true
}
