package vtterm

import "testing"

func TestNewBufferDimensions(t *testing.T) {
	b := NewBuffer(24, 80)
	if b.Rows() != 24 || b.Cols() != 80 {
		t.Errorf("expected 24x80, got %dx%d", b.Rows(), b.Cols())
	}
}

func TestBufferCellOutOfBounds(t *testing.T) {
	b := NewBuffer(24, 80)
	if b.Cell(-1, 0) != nil {
		t.Error("expected nil for negative row")
	}
	if b.Cell(0, 80) != nil {
		t.Error("expected nil for col >= cols")
	}
}

func TestBufferSetCellAndClearRow(t *testing.T) {
	b := NewBuffer(5, 10)
	b.SetCell(0, 0, Cell{Codepoint: 'A', Width: 1})
	b.SetCell(0, 1, Cell{Codepoint: 'B', Width: 1})
	b.ClearRow(0, DefaultColor())
	if cell := b.Cell(0, 0); cell.Codepoint != ' ' {
		t.Errorf("expected cleared cell to be a space, got %q", cell.Codepoint)
	}
}

func TestBufferScrollUpEvictsTopRow(t *testing.T) {
	b := NewBufferWithStorage(3, 5, NewRingScrollback(10))
	b.SetCell(0, 0, Cell{Codepoint: 'X', Width: 1})
	b.SetCell(1, 0, Cell{Codepoint: 'Y', Width: 1})
	b.ScrollUp(0, 3, 1, DefaultColor())
	if cell := b.Cell(0, 0); cell.Codepoint != 'Y' {
		t.Errorf("expected row 1 to shift into row 0, got %q", cell.Codepoint)
	}
	if b.ScrollbackLen() != 1 {
		t.Fatalf("expected 1 scrollback line, got %d", b.ScrollbackLen())
	}
	line := b.ScrollbackLine(0)
	if line[0].Codepoint != 'X' {
		t.Errorf("expected evicted row in scrollback, got %q", line[0].Codepoint)
	}
}

func TestBufferInsertAndDeleteLines(t *testing.T) {
	b := NewBuffer(4, 5)
	b.SetCell(0, 0, Cell{Codepoint: 'A', Width: 1})
	b.SetCell(1, 0, Cell{Codepoint: 'B', Width: 1})
	b.InsertLines(0, 1, 4, DefaultColor())
	if cell := b.Cell(1, 0); cell.Codepoint != 'A' {
		t.Errorf("expected 'A' shifted down to row 1, got %q", cell.Codepoint)
	}
	if cell := b.Cell(0, 0); cell.Codepoint != ' ' {
		t.Errorf("expected row 0 blanked after insert, got %q", cell.Codepoint)
	}
	b.DeleteLines(0, 1, 4, DefaultColor())
	if cell := b.Cell(0, 0); cell.Codepoint != 'A' {
		t.Errorf("expected 'A' shifted back up to row 0, got %q", cell.Codepoint)
	}
}

func TestBufferInsertAndDeleteChars(t *testing.T) {
	b := NewBuffer(1, 5)
	b.SetCell(0, 0, Cell{Codepoint: 'A', Width: 1})
	b.SetCell(0, 1, Cell{Codepoint: 'B', Width: 1})
	b.InsertBlanks(0, 0, 1, DefaultColor())
	if cell := b.Cell(0, 1); cell.Codepoint != 'A' {
		t.Errorf("expected 'A' shifted right after insert, got %q", cell.Codepoint)
	}
	b.DeleteChars(0, 0, 1, DefaultColor())
	if cell := b.Cell(0, 0); cell.Codepoint != 'A' {
		t.Errorf("expected 'A' shifted back left after delete, got %q", cell.Codepoint)
	}
}

func TestBufferTabStops(t *testing.T) {
	b := NewBuffer(1, 40)
	if next := b.NextTabStop(0); next != 8 {
		t.Errorf("expected default tab stop at col 8, got %d", next)
	}
	b.ClearAllTabStops()
	b.SetTabStop(5)
	if next := b.NextTabStop(0); next != 5 {
		t.Errorf("expected custom tab stop at col 5, got %d", next)
	}
}

func TestBufferResizePreservesContent(t *testing.T) {
	b := NewBuffer(5, 10)
	b.SetCell(0, 0, Cell{Codepoint: 'Z', Width: 1})
	b.Resize(3, 6, DefaultColor())
	if b.Rows() != 3 || b.Cols() != 6 {
		t.Errorf("expected 3x6 after resize, got %dx%d", b.Rows(), b.Cols())
	}
	if cell := b.Cell(0, 0); cell.Codepoint != 'Z' {
		t.Errorf("expected content preserved at (0,0), got %q", cell.Codepoint)
	}
}

func TestBufferDirtyTracking(t *testing.T) {
	b := NewBuffer(3, 10)
	b.SetCell(1, 0, Cell{Codepoint: 'A', Width: 1})
	dirty := b.ConsumeDirty()
	if _, ok := dirty[1]; !ok {
		t.Errorf("expected row 1 marked dirty, got %v", dirty)
	}
	dirty = b.ConsumeDirty()
	if len(dirty) != 0 {
		t.Errorf("expected dirty set cleared after consuming, got %v", dirty)
	}
}

func TestRingScrollbackEvictsOldest(t *testing.T) {
	s := NewRingScrollback(2)
	s.Push([]Cell{{Codepoint: '1'}})
	s.Push([]Cell{{Codepoint: '2'}})
	s.Push([]Cell{{Codepoint: '3'}})
	if s.Len() != 2 {
		t.Fatalf("expected capacity-bounded length 2, got %d", s.Len())
	}
	if s.Line(0)[0].Codepoint != '2' {
		t.Errorf("expected oldest surviving line to be '2', got %q", s.Line(0)[0].Codepoint)
	}
}
