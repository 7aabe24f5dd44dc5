package vtterm

// Search finds all occurrences of pattern in the visible grid, returning
// the position of each match's first character.
func (t *Terminal) Search(pattern string) []Position {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if pattern == "" {
		return nil
	}
	needle := []rune(pattern)

	var matches []Position
	for row := 0; row < t.rows; row++ {
		haystack := []rune(t.activeBuffer.LineContent(row))
		for _, col := range findAll(haystack, needle) {
			matches = append(matches, Position{Row: row, Col: col})
		}
	}
	return matches
}

// SearchScrollback finds all occurrences of pattern in scrollback lines.
// Matched row values are negative: -1 is the most recently retired line,
// decreasing toward the oldest.
func (t *Terminal) SearchScrollback(pattern string) []Position {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if pattern == "" {
		return nil
	}
	needle := []rune(pattern)
	scrollbackLen := t.primaryBuffer.ScrollbackLen()

	var matches []Position
	for i := 0; i < scrollbackLen; i++ {
		cells := t.primaryBuffer.ScrollbackLine(i)
		if cells == nil {
			continue
		}
		haystack := make([]rune, 0, len(cells))
		for _, cell := range cells {
			if cell.IsPadding() {
				continue
			}
			if cell.Codepoint == 0 {
				haystack = append(haystack, ' ')
			} else {
				haystack = append(haystack, cell.Runes()...)
			}
		}
		for _, col := range findAll(haystack, needle) {
			matches = append(matches, Position{Row: -(scrollbackLen - i), Col: col})
		}
	}
	return matches
}

// findAll returns every starting index in haystack where needle occurs,
// including overlapping matches.
func findAll(haystack, needle []rune) []int {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return nil
	}
	var hits []int
	for col := 0; col <= len(haystack)-len(needle); col++ {
		match := true
		for i, r := range needle {
			if haystack[col+i] != r {
				match = false
				break
			}
		}
		if match {
			hits = append(hits, col)
		}
	}
	return hits
}
