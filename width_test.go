package vtterm

import "testing"

func TestRuneWidthASCII(t *testing.T) {
	if w := runeWidth('A'); w != 1 {
		t.Errorf("expected width 1 for 'A', got %d", w)
	}
}

func TestRuneWidthWideCJK(t *testing.T) {
	wide := rune(0x4E2D) // CJK ideograph
	if w := runeWidth(wide); w != 2 {
		t.Errorf("expected width 2 for a CJK character, got %d", w)
	}
	if !isWideRune(wide) {
		t.Error("expected the CJK character to be reported wide")
	}
}

func TestRuneWidthCombiningMark(t *testing.T) {
	mark := rune(0x0301) // COMBINING ACUTE ACCENT
	if w := runeWidth(mark); w != 0 {
		t.Errorf("expected width 0 for a combining mark, got %d", w)
	}
	if !isCombiningMark(mark) {
		t.Error("expected U+0301 to be classified as a combining mark")
	}
}

func TestStringWidthMixed(t *testing.T) {
	s := "a" + string(rune(0x4E2D)) + "b"
	if w := StringWidth(s); w != 4 {
		t.Errorf("expected width 4, got %d", w)
	}
}

func TestWideCharacterWritesPaddingCell(t *testing.T) {
	term := newOpenTerminal(10, 1)
	term.WriteString(string(rune(0x4E2D)))
	cur := term.CursorSnapshot()
	if cur.Col != 2 {
		t.Errorf("expected cursor to advance 2 columns for a wide char, got %d", cur.Col)
	}
	padding := cellAt(term, 0, 1)
	if !padding.IsPadding() {
		t.Error("expected second cell of a wide character to be a padding cell")
	}
}

func TestCombiningMarkAttachesToBaseCell(t *testing.T) {
	term := newOpenTerminal(10, 1)
	mark := rune(0x0301)
	term.WriteString("e" + string(mark))
	cur := term.CursorSnapshot()
	if cur.Col != 1 {
		t.Errorf("expected cursor to stay at col 1 after a combining mark, got %d", cur.Col)
	}
	base := cellAt(term, 0, 0)
	if len(base.Combining) != 1 || base.Combining[0] != mark {
		t.Errorf("expected combining mark attached to base cell, got %+v", base.Combining)
	}
}
