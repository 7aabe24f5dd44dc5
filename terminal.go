package vtterm

import (
	"image/color"
	"sync"
)

// Size is a terminal dimension in character cells.
type Size struct {
	Cols int
	Rows int
}

// Terminal is the façade over the parser, the dual screen buffers, the
// cursor, and the selection engine. It implements Handler, so a Parser
// constructed with it as the handler drives the grid directly. All
// exported methods that mutate state take t.mu for the duration of the
// call; the Handler callback methods (Print, Execute, CsiDispatch, and
// the rest, defined in handler.go) assume that lock is already held by
// the in-progress Write and never lock it themselves.
type Terminal struct {
	mu sync.RWMutex

	rows, cols int

	primaryBuffer   *Buffer
	alternateBuffer *Buffer
	activeBuffer    *Buffer

	cursor      Cursor
	savedCursor *SavedCursor

	charsets      [4]Charset
	activeCharset CharsetIndex

	scrollTop, scrollBottom int
	modes                   TerminalMode

	title      string
	titleStack []string
	theme      *Theme

	// paletteOverrides and dynamicFg/dynamicBg hold runtime color overrides
	// set via OSC 4 (palette set) and OSC 10/11 (dynamic default fg/bg
	// set), layered on top of the host-supplied theme by resolveColor.
	// Unlike theme, which is fixed at construction, these mutate over the
	// terminal's lifetime and are guarded by t.mu.
	paletteOverrides map[uint8]color.RGBA
	dynamicFg        *color.RGBA
	dynamicBg        *color.RGBA

	parser *Parser

	selection Selection

	addons []Addon

	promptMarks []PromptMark
	workingDir  string
	userVars    map[string]string

	dcsIsRequest bool
	dcsBuf       []byte

	responseProvider         ResponseProvider
	bellProvider             BellProvider
	titleProvider            TitleProvider
	clipboardProvider        ClipboardProvider
	recordingProvider        RecordingProvider
	notificationProvider     NotificationProvider
	userVarProvider          UserVarProvider
	shellIntegrationProvider ShellIntegrationProvider

	maxScrollback int
	logger        Logger

	onData            EventEmitter[[]byte]
	onResize          EventEmitter[Size]
	onBell            EventEmitter[struct{}]
	onSelectionChange EventEmitter[string]

	opened   bool
	disposed bool
}

// Option configures a Terminal at construction time. All Terminal
// behavior that depends on host integration (responses, bell, title,
// clipboard, notifications, recording, shell integration, theme) is
// fixed via options and never reassigned afterward, so Handler callbacks
// can read it without taking the lock.
type Option func(*Terminal)

// WithSize sets the initial grid dimensions. Defaults to 80x24 if not
// given.
func WithSize(cols, rows int) Option {
	return func(t *Terminal) {
		t.cols = cols
		t.rows = rows
	}
}

// WithResponse supplies the provider terminal responses (cursor reports,
// DSR/DECRQSS replies, OSC query answers) are written back to.
func WithResponse(p ResponseProvider) Option {
	return func(t *Terminal) { t.responseProvider = p }
}

// WithBell supplies the BEL provider.
func WithBell(p BellProvider) Option {
	return func(t *Terminal) { t.bellProvider = p }
}

// WithTitle supplies the window title provider.
func WithTitle(p TitleProvider) Option {
	return func(t *Terminal) { t.titleProvider = p }
}

// WithClipboard supplies the OSC 52 clipboard provider. Omitting this
// option leaves clipboard access disabled (NoopClipboard).
func WithClipboard(p ClipboardProvider) Option {
	return func(t *Terminal) { t.clipboardProvider = p }
}

// WithRecording supplies a provider that captures raw input bytes.
func WithRecording(p RecordingProvider) Option {
	return func(t *Terminal) { t.recordingProvider = p }
}

// WithShellIntegration supplies the OSC 133 prompt-mark provider.
func WithShellIntegration(p ShellIntegrationProvider) Option {
	return func(t *Terminal) { t.shellIntegrationProvider = p }
}

// WithNotification supplies the OSC 9 / OSC 777 desktop notification
// provider.
func WithNotification(p NotificationProvider) Option {
	return func(t *Terminal) { t.notificationProvider = p }
}

// WithUserVar supplies the OSC 1337 SetUserVar provider.
func WithUserVar(p UserVarProvider) Option {
	return func(t *Terminal) { t.userVarProvider = p }
}

// WithTheme supplies a color theme overriding the built-in defaults.
func WithTheme(theme *Theme) Option {
	return func(t *Terminal) { t.theme = theme }
}

// WithScrollback sets the primary buffer's scrollback capacity. Defaults
// to DefaultScrollbackLines.
func WithScrollback(maxLines int) Option {
	return func(t *Terminal) { t.maxScrollback = maxLines }
}

// New constructs a Terminal. It must be opened with Open before Write is
// called.
func New(opts ...Option) *Terminal {
	t := &Terminal{
		cols:          80,
		rows:          24,
		maxScrollback: DefaultScrollbackLines,

		responseProvider:         NoopResponse{},
		bellProvider:             NoopBell{},
		titleProvider:            NoopTitle{},
		clipboardProvider:        NoopClipboard{},
		recordingProvider:        NoopRecording{},
		notificationProvider:     NoopNotification{},
		userVarProvider:          NoopUserVar{},
		shellIntegrationProvider: NoopShellIntegration{},
		logger:                   NoopLogger{},
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.cols <= 0 {
		t.cols = 80
	}
	if t.rows <= 0 {
		t.rows = 24
	}
	return t
}

// Open allocates the screen buffers and parser and marks the terminal
// ready to accept Write calls. Calling Open twice returns
// ErrAlreadyOpen.
func (t *Terminal) Open() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.disposed {
		return ErrDisposed
	}
	if t.opened {
		return ErrAlreadyOpen
	}

	t.primaryBuffer = NewBufferWithStorage(t.rows, t.cols, NewRingScrollback(t.maxScrollback))
	t.alternateBuffer = NewBufferWithStorage(t.rows, t.cols, NoopScrollback{})
	t.activeBuffer = t.primaryBuffer
	t.cursor = NewCursor()
	t.scrollTop = 0
	t.scrollBottom = t.rows
	t.modes = ModeAutoWrap | ModeShowCursor
	t.charsets = [4]Charset{CharsetASCII, CharsetASCII, CharsetASCII, CharsetASCII}
	t.parser = NewParser(t)
	t.opened = true
	return nil
}

// Dispose calls Dispose on every loaded addon and marks the terminal
// disposed, after which Open and Write return ErrDisposed. Resize, Clear,
// Reset, and the query and selection methods do not check the disposed
// flag. Safe to call more than once.
func (t *Terminal) Dispose() {
	t.mu.Lock()
	if t.disposed {
		t.mu.Unlock()
		return
	}
	t.disposed = true
	addons := t.addons
	t.addons = nil
	t.mu.Unlock()

	for _, a := range addons {
		a.Dispose()
	}
}

// Write feeds data through the VT parser, applying every resulting side
// effect to the grid before returning. Write and Resize are mutually
// exclusive: both hold t.mu for their entire duration, so no interior
// suspension point in the parser or screen buffer is ever visible to a
// concurrent caller.
func (t *Terminal) Write(data []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.opened {
		return 0, ErrNotOpen
	}
	if t.disposed {
		return 0, ErrDisposed
	}

	t.recordingProvider.Record(data)
	return t.parser.Write(data)
}

// WriteString is a convenience wrapper around Write.
func (t *Terminal) WriteString(s string) (int, error) {
	return t.Write([]byte(s))
}

// Resize changes the grid dimensions of both buffers, preserving content
// at the top-left corner. The scroll region resets to the full screen
// and the cursor is clamped into the new bounds. A no-op resize (same
// cols and rows as already set) does not fire onResize.
func (t *Terminal) Resize(cols, rows int) error {
	if cols <= 0 || rows <= 0 {
		return ErrInvalidDimensions
	}

	t.mu.Lock()
	if !t.opened {
		t.mu.Unlock()
		return ErrNotOpen
	}

	if cols == t.cols && rows == t.rows {
		t.mu.Unlock()
		return nil
	}

	oldRows := t.rows
	bg := t.cursor.Attrs.Bg

	// Shrinking rows on the primary buffer retires lines above the cursor
	// to scrollback, rather than truncating them, so content near the
	// cursor survives the resize. Only pre-scroll if the cursor would
	// otherwise be pushed off the shrunk screen.
	if rows < oldRows && t.activeBuffer == t.primaryBuffer && t.cursor.Row >= rows {
		linesToScroll := oldRows - rows
		t.primaryBuffer.ScrollUp(0, oldRows, linesToScroll, bg)
		t.cursor.Row = clampInt(t.cursor.Row-linesToScroll, 0, oldRows-1)
	}

	t.primaryBuffer.Resize(rows, cols, bg)
	t.alternateBuffer.Resize(rows, cols, bg)
	t.rows, t.cols = rows, cols
	t.scrollTop, t.scrollBottom = 0, rows
	t.cursor.Row = clampInt(t.cursor.Row, 0, rows-1)
	t.cursor.Col = clampInt(t.cursor.Col, 0, cols-1)
	t.cursor.PendingWrap = false
	size := Size{Cols: cols, Rows: rows}
	t.mu.Unlock()

	t.onResize.Fire(size)
	return nil
}

// Clear erases the active buffer to blank cells without resetting cursor
// position, attributes, or modes.
func (t *Terminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.activeBuffer.ClearAll(t.cursor.Attrs.Bg)
}

// Reset performs a full terminal reset (RIS): both buffers are cleared,
// the cursor, attributes, modes, scroll region, charsets, and saved
// cursor all return to their initial state. Scrollback and prompt marks
// are left untouched, matching the usual RIS contract that scrollback is
// a host-visible history rather than terminal state.
func (t *Terminal) Reset() {
	t.mu.Lock()
	t.resetLocked()
	t.mu.Unlock()
}

// resetLocked implements RIS (ESC c) and Reset, assuming the caller already
// holds t.mu.
func (t *Terminal) resetLocked() {
	t.primaryBuffer.ClearAll(DefaultColor())
	t.alternateBuffer.ClearAll(DefaultColor())
	t.primaryBuffer.ClearAllTabStops()
	t.alternateBuffer.ClearAllTabStops()
	for col := 0; col < t.cols; col += 8 {
		t.primaryBuffer.SetTabStop(col)
		t.alternateBuffer.SetTabStop(col)
	}
	t.activeBuffer = t.primaryBuffer
	t.cursor = NewCursor()
	t.savedCursor = nil
	t.scrollTop, t.scrollBottom = 0, t.rows
	t.modes = ModeAutoWrap | ModeShowCursor
	t.charsets = [4]Charset{CharsetASCII, CharsetASCII, CharsetASCII, CharsetASCII}
	t.activeCharset = CharsetG0
	t.title = ""
	t.titleStack = nil
	t.paletteOverrides = nil
	t.dynamicFg = nil
	t.dynamicBg = nil
	t.primaryBuffer.MarkAllDirty()
}

// Focus and Blur notify the terminal of host focus transitions, used by
// programs that enable focus-event reporting (CSI ?1004h); this package
// does not track that mode itself but exposes the hook so a host-side
// addon can translate it into the right escape sequence if needed.
func (t *Terminal) Focus() {}
func (t *Terminal) Blur()  {}

// Dimensions returns the current grid size.
func (t *Terminal) Dimensions() Size {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return Size{Cols: t.cols, Rows: t.rows}
}

// IsAlternateScreen reports whether the alternate buffer is currently
// active.
func (t *Terminal) IsAlternateScreen() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.activeBuffer == t.alternateBuffer
}

// LineAt returns a copy of row's cells in the active buffer, or nil if
// out of bounds.
func (t *Terminal) LineAt(row int) []Cell {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if row < 0 || row >= t.rows {
		return nil
	}
	line := make([]Cell, t.cols)
	for col := 0; col < t.cols; col++ {
		if cell := t.activeBuffer.Cell(row, col); cell != nil {
			line[col] = *cell
		}
	}
	return line
}

// ScrollbackLineAt returns a copy of scrollback line index (0 = oldest),
// or nil if out of range or the active buffer has no scrollback.
func (t *Terminal) ScrollbackLineAt(index int) []Cell {
	t.mu.RLock()
	defer t.mu.RUnlock()
	line := t.activeBuffer.ScrollbackLine(index)
	if line == nil {
		return nil
	}
	out := make([]Cell, len(line))
	copy(out, line)
	return out
}

// ScrollbackLen returns the number of lines in the active buffer's
// scrollback.
func (t *Terminal) ScrollbackLen() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.activeBuffer.ScrollbackLen()
}

// CursorSnapshot reports the cursor's current position, visibility, and
// style for rendering. Color and Accent are the theme-resolved cursor
// colors (caret fill and the glyph drawn over it), as hex strings.
type CursorSnapshot struct {
	Row, Col int
	Visible  bool
	Blink    bool
	Style    CursorStyle
	Color    string
	Accent   string
}

// CursorSnapshot returns the cursor's current rendering state.
func (t *Terminal) CursorSnapshot() CursorSnapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return CursorSnapshot{
		Row:     t.cursor.Row,
		Col:     t.cursor.Col,
		Visible: t.cursor.Visible,
		Blink:   t.cursor.Blink,
		Style:   t.cursor.Style,
		Color:   hexColor(t.theme.cursorOr(DefaultCursorColor)),
		Accent:  hexColor(t.theme.cursorAccentOr(DefaultBackground)),
	}
}

// ConsumeDirty returns the set of rows touched since the last call and
// resets dirty tracking.
func (t *Terminal) ConsumeDirty() map[int]struct{} {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.activeBuffer.ConsumeDirty()
}

// Title returns the current window title (OSC 0/1/2).
func (t *Terminal) Title() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.title
}

// String returns the active buffer's content as newline-joined text,
// trimming trailing blank cells per row.
func (t *Terminal) String() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := ""
	for row := 0; row < t.rows; row++ {
		if row > 0 {
			out += "\n"
		}
		out += t.activeBuffer.LineContent(row)
	}
	return out
}

// OnData subscribes to data the terminal itself generates in response to
// input (responses, not printed output); see writeResponseString.
func (t *Terminal) OnData(fn func([]byte)) Subscription {
	return t.onData.On(fn)
}

// OnResize subscribes to grid size changes.
func (t *Terminal) OnResize(fn func(Size)) Subscription {
	return t.onResize.On(fn)
}

// OnBell subscribes to BEL (0x07) events.
func (t *Terminal) OnBell(fn func()) Subscription {
	return t.onBell.On(func(struct{}) { fn() })
}

// OnSelectionChange subscribes to selection-changed events, fired by
// FinishSelection when the finished selection is nonempty.
func (t *Terminal) OnSelectionChange(fn func(text string)) Subscription {
	return t.onSelectionChange.On(fn)
}

// absoluteRow converts a screen-relative row (0 = top of the visible
// grid) to an absolute row counting from the oldest stored scrollback
// line, the same convention shellIntegrationMark uses for prompt marks.
func (t *Terminal) absoluteRow(screenRow int) int {
	return screenRow + t.activeBuffer.ScrollbackLen()
}

// resolveColor converts c to a concrete RGBA, consulting runtime OSC 4/10/11
// overrides before falling back to the host-supplied theme and the built-in
// defaults. Call sites hold t.mu (or run lock-free under Write's lock, like
// the rest of Handler), since paletteOverrides/dynamicFg/dynamicBg mutate.
func (t *Terminal) resolveColor(c Color, fg bool) color.RGBA {
	if c.Kind == ColorPalette8 || c.Kind == ColorPalette256 {
		if rgba, ok := t.paletteOverrides[c.Index]; ok {
			return rgba
		}
	} else if c.Kind == ColorDefault {
		if fg && t.dynamicFg != nil {
			return *t.dynamicFg
		}
		if !fg && t.dynamicBg != nil {
			return *t.dynamicBg
		}
	}
	return c.Resolve(&DefaultPalette, fg, t.theme)
}

// writeResponseString writes s back through the response provider and
// fires onData. Providers are immutable after construction, so this
// reads t.responseProvider without taking the lock; callers running
// inside a Handler callback (already under Write's lock) and callers
// invoked directly by host code are both safe.
func (t *Terminal) writeResponseString(s string) {
	if t.responseProvider != nil {
		t.responseProvider.Write([]byte(s))
	}
	t.onData.Fire([]byte(s))
}
