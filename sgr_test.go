package vtterm

import "testing"

func cellAt(term *Terminal, row, col int) Cell {
	return *term.activeBuffer.Cell(row, col)
}

func TestSGRBoldAndReset(t *testing.T) {
	term := newOpenTerminal(80, 24)
	term.WriteString("\x1b[1mA\x1b[0mB")
	a := cellAt(term, 0, 0)
	if !a.Attrs.HasFlag(AttrBold) {
		t.Error("expected 'A' to be bold")
	}
	b := cellAt(term, 0, 1)
	if b.Attrs.HasFlag(AttrBold) {
		t.Error("expected 'B' to have bold cleared after SGR reset")
	}
}

func TestSGR8ColorForeground(t *testing.T) {
	term := newOpenTerminal(80, 24)
	term.WriteString("\x1b[31mA")
	a := cellAt(term, 0, 0)
	if a.Attrs.Fg.Kind != ColorPalette8 || a.Attrs.Fg.Index != 1 {
		t.Errorf("expected palette8 color index 1, got %+v", a.Attrs.Fg)
	}
}

func TestSGRBright16ColorBackground(t *testing.T) {
	term := newOpenTerminal(80, 24)
	term.WriteString("\x1b[102mA") // bright green background
	a := cellAt(term, 0, 0)
	if a.Attrs.Bg.Kind != ColorPalette8 || a.Attrs.Bg.Index != 10 {
		t.Errorf("expected palette8 color index 10, got %+v", a.Attrs.Bg)
	}
}

func TestSGR256Color(t *testing.T) {
	term := newOpenTerminal(80, 24)
	term.WriteString("\x1b[38;5;200mA")
	a := cellAt(term, 0, 0)
	if a.Attrs.Fg.Kind != ColorPalette256 || a.Attrs.Fg.Index != 200 {
		t.Errorf("expected palette256 color index 200, got %+v", a.Attrs.Fg)
	}
}

func TestSGRTruecolor(t *testing.T) {
	term := newOpenTerminal(80, 24)
	term.WriteString("\x1b[38;2;10;20;30mA")
	a := cellAt(term, 0, 0)
	if a.Attrs.Fg.Kind != ColorRGB {
		t.Fatalf("expected ColorRGB, got %+v", a.Attrs.Fg)
	}
	if a.Attrs.Fg.RGB.R != 10 || a.Attrs.Fg.RGB.G != 20 || a.Attrs.Fg.RGB.B != 30 {
		t.Errorf("expected rgb(10,20,30), got %+v", a.Attrs.Fg.RGB)
	}
}

func TestSGRCombinedParams(t *testing.T) {
	term := newOpenTerminal(80, 24)
	term.WriteString("\x1b[1;4;31mA")
	a := cellAt(term, 0, 0)
	if !a.Attrs.HasFlag(AttrBold) || !a.Attrs.HasFlag(AttrUnderline) {
		t.Error("expected bold and underline both set")
	}
	if a.Attrs.Fg.Index != 1 {
		t.Errorf("expected fg index 1, got %d", a.Attrs.Fg.Index)
	}
}

func TestSGRDefaultFgBg(t *testing.T) {
	term := newOpenTerminal(80, 24)
	term.WriteString("\x1b[31;41mA\x1b[39;49mB")
	b := cellAt(term, 0, 1)
	if b.Attrs.Fg.Kind != ColorDefault || b.Attrs.Bg.Kind != ColorDefault {
		t.Errorf("expected default fg/bg after 39/49, got %+v", b.Attrs)
	}
}
