package vtterm

// SnapshotDetail selects how much per-cell detail a Snapshot carries.
type SnapshotDetail string

const (
	// SnapshotDetailText returns plain text only.
	SnapshotDetailText SnapshotDetail = "text"
	// SnapshotDetailStyled returns text split into same-style runs.
	SnapshotDetailStyled SnapshotDetail = "styled"
	// SnapshotDetailFull returns full cell-by-cell data.
	SnapshotDetailFull SnapshotDetail = "full"
)

// Snapshot is a complete, renderer-facing capture of terminal state: the
// only data a frame-driven renderer needs, taken under a single lock so
// it is internally consistent even while writes continue on other
// threads.
type Snapshot struct {
	Size   Size           `json:"size"`
	Cursor CursorSnapshot `json:"cursor"`
	Lines  []SnapshotLine `json:"lines"`
}

// SnapshotLine is one row of a Snapshot.
type SnapshotLine struct {
	Text     string            `json:"text"`
	Segments []SnapshotSegment `json:"segments,omitempty"`
	Cells    []SnapshotCell    `json:"cells,omitempty"`
}

// SnapshotSegment is a run of cells sharing identical style.
type SnapshotSegment struct {
	Text     string        `json:"text"`
	Fg       string        `json:"fg"`
	Bg       string        `json:"bg"`
	Attrs    SnapshotAttrs `json:"attrs"`
	Selected bool          `json:"selected,omitempty"`
}

// SnapshotCell is one cell's full rendering data.
type SnapshotCell struct {
	Char     string        `json:"char"`
	Fg       string        `json:"fg"`
	Bg       string        `json:"bg"`
	Attrs    SnapshotAttrs `json:"attrs"`
	Wide     bool          `json:"wide,omitempty"`
	Selected bool          `json:"selected,omitempty"`
}

// SnapshotAttrs mirrors AttrFlags as individually named booleans, for
// hosts that serialize a snapshot rather than consuming it in-process.
type SnapshotAttrs struct {
	Bold          bool `json:"bold,omitempty"`
	Dim           bool `json:"dim,omitempty"`
	Italic        bool `json:"italic,omitempty"`
	Underline     bool `json:"underline,omitempty"`
	Blink         bool `json:"blink,omitempty"`
	Inverse       bool `json:"inverse,omitempty"`
	Invisible     bool `json:"invisible,omitempty"`
	Strikethrough bool `json:"strikethrough,omitempty"`
}

// TakeSnapshot captures the current terminal state at the requested
// detail level.
func (t *Terminal) TakeSnapshot(detail SnapshotDetail) *Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()

	snap := &Snapshot{
		Size: Size{Cols: t.cols, Rows: t.rows},
		Cursor: CursorSnapshot{
			Row:     t.cursor.Row,
			Col:     t.cursor.Col,
			Visible: t.cursor.Visible,
			Blink:   t.cursor.Blink,
			Style:   t.cursor.Style,
			Color:   hexColor(t.theme.cursorOr(DefaultCursorColor)),
			Accent:  hexColor(t.theme.cursorAccentOr(DefaultBackground)),
		},
		Lines: make([]SnapshotLine, t.rows),
	}
	for row := 0; row < t.rows; row++ {
		snap.Lines[row] = t.snapshotLine(row, detail)
	}
	return snap
}

func (t *Terminal) snapshotLine(row int, detail SnapshotDetail) SnapshotLine {
	line := SnapshotLine{Text: t.activeBuffer.LineContent(row)}
	switch detail {
	case SnapshotDetailStyled:
		line.Segments = t.lineToSegments(row)
	case SnapshotDetailFull:
		line.Cells = t.lineToCells(row)
	}
	return line
}

func (t *Terminal) lineToSegments(row int) []SnapshotSegment {
	var segments []SnapshotSegment
	var current *SnapshotSegment
	var chars []rune
	absRow := t.absoluteRow(row)

	flush := func() {
		if current != nil && len(chars) > 0 {
			current.Text = string(chars)
			segments = append(segments, *current)
		}
	}

	for col := 0; col < t.cols; col++ {
		cell := t.activeBuffer.Cell(row, col)
		if cell == nil || cell.IsPadding() {
			continue
		}
		fg := t.colorToHex(cell.Attrs.Fg, true)
		bg := t.colorToHex(cell.Attrs.Bg, false)
		attrs := attrsToSnapshot(cell.Attrs)
		selected := t.selection.contains(absRow, col)
		if selected {
			fg = hexColor(t.theme.selectionForegroundOr(DefaultForeground))
			bg = hexColor(t.theme.selectionBackgroundOr(DefaultCursorColor))
		}

		if current == nil || current.Fg != fg || current.Bg != bg || current.Attrs != attrs || current.Selected != selected {
			flush()
			current = &SnapshotSegment{Fg: fg, Bg: bg, Attrs: attrs, Selected: selected}
			chars = nil
		}
		chars = append(chars, cellDisplayRune(cell))
	}
	flush()
	return segments
}

func (t *Terminal) lineToCells(row int) []SnapshotCell {
	cells := make([]SnapshotCell, 0, t.cols)
	absRow := t.absoluteRow(row)
	for col := 0; col < t.cols; col++ {
		cell := t.activeBuffer.Cell(row, col)
		if cell == nil {
			cells = append(cells, SnapshotCell{Char: " "})
			continue
		}
		selected := t.selection.contains(absRow, col)
		fg := t.colorToHex(cell.Attrs.Fg, true)
		bg := t.colorToHex(cell.Attrs.Bg, false)
		if selected {
			fg = hexColor(t.theme.selectionForegroundOr(DefaultForeground))
			bg = hexColor(t.theme.selectionBackgroundOr(DefaultCursorColor))
		}
		cells = append(cells, SnapshotCell{
			Char:     string(cellDisplayRune(cell)),
			Fg:       fg,
			Bg:       bg,
			Attrs:    attrsToSnapshot(cell.Attrs),
			Wide:     cell.Width == 2,
			Selected: selected,
		})
	}
	return cells
}

func cellDisplayRune(cell *Cell) rune {
	if cell.IsPadding() || cell.Codepoint == 0 {
		return ' '
	}
	return cell.Codepoint
}

func (t *Terminal) colorToHex(c Color, fg bool) string {
	return hexColor(t.resolveColor(c, fg))
}

func attrsToSnapshot(a Attributes) SnapshotAttrs {
	return SnapshotAttrs{
		Bold:          a.HasFlag(AttrBold),
		Dim:           a.HasFlag(AttrDim),
		Italic:        a.HasFlag(AttrItalic),
		Underline:     a.HasFlag(AttrUnderline),
		Blink:         a.HasFlag(AttrBlink),
		Inverse:       a.HasFlag(AttrInverse),
		Invisible:     a.HasFlag(AttrInvisible),
		Strikethrough: a.HasFlag(AttrStrikethrough),
	}
}
