package vtterm

import (
	"errors"
	"testing"
)

func newOpenTerminal(cols, rows int, opts ...Option) *Terminal {
	opts = append([]Option{WithSize(cols, rows)}, opts...)
	term := New(opts...)
	if err := term.Open(); err != nil {
		panic(err)
	}
	return term
}

func TestNewDefaults(t *testing.T) {
	term := New()
	size := term.Dimensions()
	if size.Cols != 80 || size.Rows != 24 {
		t.Errorf("expected 80x24, got %dx%d", size.Cols, size.Rows)
	}
}

func TestOpenTwiceFails(t *testing.T) {
	term := New()
	if err := term.Open(); err != nil {
		t.Fatalf("first Open: %v", err)
	}
	if err := term.Open(); !errors.Is(err, ErrAlreadyOpen) {
		t.Errorf("expected ErrAlreadyOpen, got %v", err)
	}
}

func TestWriteBeforeOpenFails(t *testing.T) {
	term := New()
	_, err := term.WriteString("hi")
	if !errors.Is(err, ErrNotOpen) {
		t.Errorf("expected ErrNotOpen, got %v", err)
	}
}

func TestWriteAfterDisposeFails(t *testing.T) {
	term := newOpenTerminal(80, 24)
	term.Dispose()
	_, err := term.WriteString("hi")
	if !errors.Is(err, ErrDisposed) {
		t.Errorf("expected ErrDisposed, got %v", err)
	}
}

func TestSimpleWriteAndLineContent(t *testing.T) {
	term := newOpenTerminal(80, 24)
	term.WriteString("Hello")
	if got := term.activeBuffer.LineContent(0); got != "Hello" {
		t.Errorf("expected 'Hello', got %q", got)
	}
}

func TestCursorAdvancesWithWrite(t *testing.T) {
	term := newOpenTerminal(80, 24)
	term.WriteString("ABC")
	cur := term.CursorSnapshot()
	if cur.Row != 0 || cur.Col != 3 {
		t.Errorf("expected cursor at (0,3), got (%d,%d)", cur.Row, cur.Col)
	}
}

func TestCRLFNewline(t *testing.T) {
	term := newOpenTerminal(80, 24)
	term.WriteString("Line1\r\nLine2")
	if got := term.activeBuffer.LineContent(0); got != "Line1" {
		t.Errorf("row 0: expected 'Line1', got %q", got)
	}
	if got := term.activeBuffer.LineContent(1); got != "Line2" {
		t.Errorf("row 1: expected 'Line2', got %q", got)
	}
}

func TestEraseInDisplayFull(t *testing.T) {
	term := newOpenTerminal(80, 24)
	term.WriteString("Hello")
	term.WriteString("\x1b[2J")
	if got := term.activeBuffer.LineContent(0); got != "" {
		t.Errorf("expected empty line after clear, got %q", got)
	}
}

func TestResizePreservesTopLeft(t *testing.T) {
	term := newOpenTerminal(80, 24)
	term.WriteString("Hello")
	if err := term.Resize(40, 10); err != nil {
		t.Fatalf("resize: %v", err)
	}
	size := term.Dimensions()
	if size.Cols != 40 || size.Rows != 10 {
		t.Errorf("expected 40x10, got %dx%d", size.Cols, size.Rows)
	}
	if got := term.activeBuffer.LineContent(0); got != "Hello" {
		t.Errorf("expected content preserved, got %q", got)
	}
}

func TestResizeRejectsNonPositive(t *testing.T) {
	term := newOpenTerminal(80, 24)
	if err := term.Resize(0, 10); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("expected ErrInvalidDimensions, got %v", err)
	}
}

func TestResetClearsScreenAndModes(t *testing.T) {
	term := newOpenTerminal(80, 24)
	term.WriteString("\x1b[?7l") // disable autowrap
	term.WriteString("Hello")
	term.Reset()
	if got := term.activeBuffer.LineContent(0); got != "" {
		t.Errorf("expected blank screen after reset, got %q", got)
	}
	if term.modes&ModeAutoWrap == 0 {
		t.Error("expected autowrap mode restored after reset")
	}
}

func TestAlternateScreenSwitch(t *testing.T) {
	term := newOpenTerminal(80, 24)
	term.WriteString("primary")
	term.WriteString("\x1b[?1049h")
	if !term.IsAlternateScreen() {
		t.Fatal("expected alternate screen active")
	}
	term.WriteString("alt")
	term.WriteString("\x1b[?1049l")
	if term.IsAlternateScreen() {
		t.Fatal("expected primary screen restored")
	}
	if got := term.activeBuffer.LineContent(0); got != "primary" {
		t.Errorf("expected primary content preserved, got %q", got)
	}
}

func TestBellFires(t *testing.T) {
	term := newOpenTerminal(80, 24)
	rung := false
	term.OnBell(func() { rung = true })
	term.WriteString("\a")
	if !rung {
		t.Error("expected bell event to fire")
	}
}

func TestResizeFiresOnResize(t *testing.T) {
	term := newOpenTerminal(80, 24)
	var got Size
	term.OnResize(func(s Size) { got = s })
	if err := term.Resize(50, 20); err != nil {
		t.Fatalf("resize: %v", err)
	}
	if got.Cols != 50 || got.Rows != 20 {
		t.Errorf("expected resize event with 50x20, got %dx%d", got.Cols, got.Rows)
	}
}

func TestResizeWithSameDimensionsDoesNotFire(t *testing.T) {
	term := newOpenTerminal(80, 24)
	fired := false
	term.OnResize(func(Size) { fired = true })
	if err := term.Resize(80, 24); err != nil {
		t.Fatalf("resize: %v", err)
	}
	if fired {
		t.Error("expected onResize not to fire for an unchanged size")
	}
}

func TestResizeShrinkRowsRetiresLinesToScrollback(t *testing.T) {
	term := newOpenTerminal(10, 3)
	term.WriteString("one\r\ntwo\r\nthree")
	if err := term.Resize(10, 1); err != nil {
		t.Fatalf("resize: %v", err)
	}
	if got := term.ScrollbackLen(); got != 2 {
		t.Fatalf("expected 2 lines retired to scrollback, got %d", got)
	}
	if got := cellsToString(term.ScrollbackLineAt(0)); got != "one" {
		t.Errorf("expected 'one' retired first, got %q", got)
	}
	if got := cellsToString(term.ScrollbackLineAt(1)); got != "two" {
		t.Errorf("expected 'two' retired second, got %q", got)
	}
	if got := term.activeBuffer.LineContent(0); got != "three" {
		t.Errorf("expected surviving row to be 'three', got %q", got)
	}
}

func TestResizeShrinkRowsCursorStillVisibleSkipsScrollback(t *testing.T) {
	term := newOpenTerminal(10, 5)
	term.WriteString("\x1b[1;1H") // cursor at row 0
	term.WriteString("one\r\ntwo")
	term.WriteString("\x1b[1;1H") // move cursor back to row 0, within the shrunk bounds
	if err := term.Resize(10, 3); err != nil {
		t.Fatalf("resize: %v", err)
	}
	if got := term.ScrollbackLen(); got != 0 {
		t.Errorf("expected no scrollback retirement when the cursor already fits, got %d", got)
	}
}

func TestStringJoinsRows(t *testing.T) {
	term := newOpenTerminal(10, 2)
	term.WriteString("ab\r\ncd")
	want := "ab\ncd"
	if got := term.String(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestTitleOSC(t *testing.T) {
	term := newOpenTerminal(80, 24)
	term.WriteString("\x1b]2;my title\x07")
	if got := term.Title(); got != "my title" {
		t.Errorf("expected 'my title', got %q", got)
	}
}

func TestTitlePushPop(t *testing.T) {
	term := newOpenTerminal(80, 24)
	term.WriteString("\x1b]2;first\x07")
	term.WriteString("\x1b[22;0t")
	term.WriteString("\x1b]2;second\x07")
	if got := term.Title(); got != "second" {
		t.Errorf("expected 'second', got %q", got)
	}
	term.WriteString("\x1b[23;0t")
	if got := term.Title(); got != "first" {
		t.Errorf("expected title restored to 'first', got %q", got)
	}
}
