package vtterm

// CursorStyle determines how the cursor is rendered.
type CursorStyle int

const (
	CursorBlock CursorStyle = iota
	CursorUnderline
	CursorBar
)

// Cursor tracks position, pending-wrap state, current SGR attributes, and
// rendering style/visibility. Position is 0-based. When PendingWrap is set,
// Col stays pinned at the last column (cols-1); the wrap to the next row is
// deferred until the next printable write or an explicit cursor movement
// clears the flag.
type Cursor struct {
	Row, Col    int
	PendingWrap bool
	Attrs       Attributes
	Visible     bool
	Blink       bool
	Style       CursorStyle
}

// NewCursor returns a cursor at (0, 0), visible, default attributes,
// block style.
func NewCursor() Cursor {
	return Cursor{Attrs: DefaultAttributes(), Visible: true, Style: CursorBlock}
}

// SavedCursor records position, attributes, origin-mode flag, and the
// active charset state, for DECSC/DECRC and alternate-screen switches.
type SavedCursor struct {
	Row, Col     int
	Attrs        Attributes
	OriginMode   bool
	CharsetIndex CharsetIndex
	Charsets     [4]Charset
}

// Charset selects a character-set variant for a G0-G3 slot.
type Charset int

const (
	CharsetASCII Charset = iota
	CharsetLineDrawing
)

// CharsetIndex selects one of the four charset designation slots.
type CharsetIndex int

const (
	CharsetG0 CharsetIndex = iota
	CharsetG1
	CharsetG2
	CharsetG3
)

var lineDrawingTable = map[rune]rune{
	'j': '┘', 'k': '┐', 'l': '┌', 'm': '└', 'n': '┼',
	'q': '─', 't': '├', 'u': '┤', 'v': '┴', 'w': '┬', 'x': '│',
}

// translateLineDrawing maps r through the DEC special graphics charset
// when the active G-set is CharsetLineDrawing; other runes pass through.
func translateLineDrawing(r rune) rune {
	if mapped, ok := lineDrawingTable[r]; ok {
		return mapped
	}
	return r
}
