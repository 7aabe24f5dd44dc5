package vtterm

import "regexp"

// wordCharPattern matches a single "word character" for selectWord
// purposes: letters, digits, underscore, and hyphen.
var wordCharPattern = regexp.MustCompile(`^[A-Za-z0-9_-]$`)

// Selection tracks a text selection range in absolute grid coordinates
// (row 0 is the oldest stored scrollback line, matching the convention
// shellIntegrationMark uses for prompt marks). Start and end are anchors
// in the order they were set; Normalize reorders them for materialization
// without mutating which end the user is still dragging.
type Selection struct {
	Active    bool
	Selecting bool
	StartRow  int
	StartCol  int
	EndRow    int
	EndCol    int
}

// normalized returns the selection's anchors reordered so the first pair
// is not later, in row-major order, than the second.
func (s Selection) normalized() (sr, sc, er, ec int) {
	sr, sc, er, ec = s.StartRow, s.StartCol, s.EndRow, s.EndCol
	if sr > er || (sr == er && sc > ec) {
		sr, sc, er, ec = er, ec, sr, sc
	}
	return
}

// contains reports whether the absolute position (row, col) falls inside
// an active selection.
func (s Selection) contains(row, col int) bool {
	if !s.Active {
		return false
	}
	sr, sc, er, ec := s.normalized()
	if row < sr || row > er {
		return false
	}
	if row == sr && col < sc {
		return false
	}
	if row == er && col > ec {
		return false
	}
	return true
}

// BeginSelection starts a new selection anchored at (col, row), in
// screen-relative coordinates, discarding any prior selection.
func (t *Terminal) BeginSelection(col, row int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	absRow := t.absoluteRow(row)
	t.selection = Selection{Active: true, Selecting: true, StartRow: absRow, StartCol: col, EndRow: absRow, EndCol: col}
	t.activeBuffer.MarkAllDirty()
}

// ExtendSelection moves the selection's live end to (col, row) while a
// selection drag is in progress. A no-op once FinishSelection has been
// called.
func (t *Terminal) ExtendSelection(col, row int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.selection.Selecting {
		return
	}
	t.selection.EndRow = t.absoluteRow(row)
	t.selection.EndCol = col
	t.activeBuffer.MarkAllDirty()
}

// FinishSelection ends the drag and, if the resulting selection is
// nonempty, materializes its text and fires onSelectionChange.
func (t *Terminal) FinishSelection() {
	t.mu.Lock()
	sel := t.selection
	sel.Selecting = false
	t.selection = sel
	text := t.selectedTextLocked()
	t.mu.Unlock()

	if text != "" {
		t.onSelectionChange.Fire(text)
	}
}

// SelectWord selects the contiguous run of word characters
// ([A-Za-z0-9_-]) on row r surrounding column c. Selects nothing if the
// anchor cell itself is not a word character.
func (t *Terminal) SelectWord(col, row int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.isWordCellLocked(row, col) {
		t.selection = Selection{}
		return
	}

	left := col
	for left > 0 && t.isWordCellLocked(row, left-1) {
		left--
	}
	right := col
	for right < t.cols-1 && t.isWordCellLocked(row, right+1) {
		right++
	}

	absRow := t.absoluteRow(row)
	t.selection = Selection{Active: true, StartRow: absRow, StartCol: left, EndRow: absRow, EndCol: right}
	t.activeBuffer.MarkAllDirty()
}

func (t *Terminal) isWordCellLocked(row, col int) bool {
	cell := t.activeBuffer.Cell(row, col)
	if cell == nil || cell.Codepoint == 0 || cell.IsPadding() {
		return false
	}
	return wordCharPattern.MatchString(string(cell.Codepoint))
}

// SelectAll selects the entire visible grid, from (0,0) to the last
// column of the last row.
func (t *Terminal) SelectAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	startRow := t.absoluteRow(0)
	endRow := t.absoluteRow(t.rows - 1)
	t.selection = Selection{Active: true, StartRow: startRow, StartCol: 0, EndRow: endRow, EndCol: t.cols - 1}
	t.activeBuffer.MarkAllDirty()
}

// ClearSelection drops any active selection.
func (t *Terminal) ClearSelection() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.selection.Active {
		return
	}
	t.selection = Selection{}
	t.activeBuffer.MarkAllDirty()
}

// HasSelection reports whether a selection is currently active.
func (t *Terminal) HasSelection() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.selection.Active
}

// SelectionSnapshot returns the current selection in normalized,
// screen-relative row-major order, along with whether it is active.
type SelectionSnapshot struct {
	Active               bool
	StartRow, StartCol   int
	EndRow, EndCol       int
}

// SelectionSnapshot reports the current normalized selection range for a
// renderer, converting absolute rows back to screen-relative ones.
func (t *Terminal) SelectionSnapshot() SelectionSnapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if !t.selection.Active {
		return SelectionSnapshot{}
	}
	sr, sc, er, ec := t.selection.normalized()
	scrollbackLen := t.activeBuffer.ScrollbackLen()
	return SelectionSnapshot{
		Active:   true,
		StartRow: sr - scrollbackLen,
		StartCol: sc,
		EndRow:   er - scrollbackLen,
		EndCol:   ec,
	}
}

// SelectedText returns the materialized text of the current selection,
// or "" if none is active.
func (t *Terminal) SelectedText() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.selectedTextLocked()
}

// selectedTextLocked implements the selection engine's text
// materialization algorithm: normalize the range, walk each row from its
// start column to its end column, skip padding cells, substitute a space
// for a zero codepoint, and join rows with '\n'. Trailing blanks on a row
// are deliberately not trimmed; callers that want trimmed text post-
// process the result themselves.
func (t *Terminal) selectedTextLocked() string {
	if !t.selection.Active {
		return ""
	}
	sr, sc, er, ec := t.selection.normalized()
	scrollbackLen := t.activeBuffer.ScrollbackLen()

	result := ""
	for row := sr; row <= er; row++ {
		if row > sr {
			result += "\n"
		}
		startCol, endCol := 0, t.cols-1
		if row == sr {
			startCol = sc
		}
		if row == er {
			endCol = ec
		}
		result += t.rowTextRange(row, scrollbackLen, startCol, endCol)
	}
	return result
}

func (t *Terminal) rowTextRange(absRow, scrollbackLen, startCol, endCol int) string {
	var cells []Cell
	if absRow < scrollbackLen {
		cells = t.activeBuffer.ScrollbackLine(absRow)
	} else if screenRow := absRow - scrollbackLen; screenRow >= 0 && screenRow < t.rows {
		cells = make([]Cell, t.cols)
		for col := 0; col < t.cols; col++ {
			if cell := t.activeBuffer.Cell(screenRow, col); cell != nil {
				cells[col] = *cell
			}
		}
	}
	if cells == nil {
		return ""
	}
	if endCol >= len(cells) {
		endCol = len(cells) - 1
	}

	var runes []rune
	for col := startCol; col <= endCol && col >= 0; col++ {
		cell := cells[col]
		if cell.IsPadding() {
			continue
		}
		if cell.Codepoint == 0 {
			runes = append(runes, ' ')
			continue
		}
		runes = append(runes, cell.Runes()...)
	}
	return string(runes)
}
