package vtterm

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// TerminalMode is a bitset of the boolean terminal modes a CSI h/l sequence
// can toggle.
type TerminalMode uint32

const (
	ModeAutoWrap TerminalMode = 1 << iota // DECAWM, default on
	ModeOrigin                            // DECOM
	ModeInsert                            // IRM
	ModeAppCursorKeys
	ModeShowCursor // default on
	ModeBracketedPaste
	ModeLineFeedNewLine
	ModeAlternateScreen
)

// clampInt restricts v to [lo, hi].
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// countParam returns params[idx] if present and nonzero, else def. Used for
// the common VT convention where a missing or zero parameter means "1" (or
// another operation-specific default count).
func countParam(params []int, idx, def int) int {
	if idx >= len(params) || params[idx] == 0 {
		return def
	}
	return params[idx]
}

// paramAt returns params[idx] if present, else 0. Used for parameters (like
// erase-mode selectors) where 0 is itself a meaningful, distinct value.
func paramAt(params []int, idx int) int {
	if idx >= len(params) {
		return 0
	}
	return params[idx]
}

// The Handler methods below assume the caller already holds t.mu for
// writing: Parser.Write is invoked synchronously from within Terminal.Write,
// which takes the lock once for the whole call per the façade's concurrency
// contract. None of them lock or unlock t.mu themselves.

// Print writes r at the cursor, handling charset translation, combining
// marks, wide characters, deferred (pending) wrap, and insert mode.
func (t *Terminal) Print(r rune) {
	if t.charsets[t.activeCharset] == CharsetLineDrawing {
		r = translateLineDrawing(r)
	}

	if isCombiningMark(r) {
		t.attachCombiningMark(r)
		return
	}

	width := runeWidth(r)
	if width == 0 {
		return
	}

	if t.cursor.PendingWrap {
		t.resolveWrap()
	}

	if t.cursor.Col+width > t.cols {
		if width == 2 && t.modes&ModeAutoWrap == 0 {
			// No room and wrap disabled: drop the wide character rather
			// than split it across the margin.
			return
		}
		if t.modes&ModeAutoWrap != 0 {
			t.activeBuffer.SetWrapped(t.cursor.Row, true)
			t.cursor.Col = 0
			t.advanceRow()
		} else {
			t.cursor.Col = clampInt(t.cols-width, 0, t.cols-1)
		}
	}

	if t.modes&ModeInsert != 0 {
		t.activeBuffer.InsertBlanks(t.cursor.Row, t.cursor.Col, width, t.cursor.Attrs.Bg)
	}

	t.activeBuffer.SetCell(t.cursor.Row, t.cursor.Col, Cell{Codepoint: r, Width: width, Attrs: t.cursor.Attrs})
	if width == 2 && t.cursor.Col+1 < t.cols {
		t.activeBuffer.SetCell(t.cursor.Row, t.cursor.Col+1, Cell{Width: 0, Attrs: t.cursor.Attrs})
	}

	t.cursor.Col += width
	if t.cursor.Col >= t.cols {
		t.cursor.Col = t.cols - 1
		t.cursor.PendingWrap = true
	}
}

// resolveWrap performs the carriage-return-plus-line-feed a deferred wrap
// represents, or (DECAWM off) simply clears it and leaves the cursor
// pinned at the right margin for the next write to overwrite.
func (t *Terminal) resolveWrap() {
	t.cursor.PendingWrap = false
	if t.modes&ModeAutoWrap != 0 {
		t.activeBuffer.SetWrapped(t.cursor.Row, true)
		t.cursor.Col = 0
		t.advanceRow()
	} else {
		t.cursor.Col = t.cols - 1
	}
}

// advanceRow moves the cursor down one row, scrolling the active region if
// already at its bottom.
func (t *Terminal) advanceRow() {
	if t.cursor.Row == t.scrollBottom-1 {
		t.activeBuffer.ScrollUp(t.scrollTop, t.scrollBottom, 1, t.cursor.Attrs.Bg)
	} else if t.cursor.Row < t.rows-1 {
		t.cursor.Row++
	}
}

// attachCombiningMark appends a zero-width mark to the most recently
// printed base cell, preferring the pending-wrap position (the last
// written column) over the cursor's current column.
func (t *Terminal) attachCombiningMark(r rune) {
	col := t.cursor.Col - 1
	if t.cursor.PendingWrap {
		col = t.cursor.Col
	}
	if col < 0 {
		return
	}
	cell := t.activeBuffer.Cell(t.cursor.Row, col)
	if cell == nil {
		return
	}
	if cell.IsPadding() && col > 0 {
		cell = t.activeBuffer.Cell(t.cursor.Row, col-1)
		col--
		if cell == nil {
			return
		}
	}
	if cell.attachCombining(r) {
		t.activeBuffer.SetCell(t.cursor.Row, col, *cell)
	}
}

// Execute dispatches a C0 or C1 control code. Any control code clears a
// pending wrap per the cursor invariant.
func (t *Terminal) Execute(b byte) {
	t.cursor.PendingWrap = false

	switch b {
	case 0x07: // BEL
		if t.bellProvider != nil {
			t.bellProvider.Ring()
		}
		t.onBell.Fire(struct{}{})
	case 0x08: // BS
		if t.cursor.Col > 0 {
			t.cursor.Col--
		}
	case 0x09: // HT
		t.cursor.Col = t.activeBuffer.NextTabStop(t.cursor.Col)
	case 0x0A, 0x0B, 0x0C: // LF, VT, FF
		t.lineFeed()
	case 0x0D: // CR
		t.cursor.Col = 0
	case 0x0E: // SO: shift to G1
		t.activeCharset = CharsetG1
	case 0x0F: // SI: shift to G0
		t.activeCharset = CharsetG0
	case 0x84: // IND (8-bit)
		t.index()
	case 0x85: // NEL (8-bit)
		t.newline()
	case 0x88: // HTS (8-bit)
		t.activeBuffer.SetTabStop(t.cursor.Col)
	case 0x8D: // RI (8-bit)
		t.reverseIndex()
	}
}

func (t *Terminal) lineFeed() {
	t.activeBuffer.SetWrapped(t.cursor.Row, false)
	if t.modes&ModeLineFeedNewLine != 0 {
		t.cursor.Col = 0
	}
	t.index()
}

func (t *Terminal) index() {
	t.advanceRow()
	t.cursor.PendingWrap = false
}

func (t *Terminal) newline() {
	t.index()
	t.cursor.Col = 0
}

func (t *Terminal) reverseIndex() {
	if t.cursor.Row == t.scrollTop {
		t.activeBuffer.ScrollDown(t.scrollTop, t.scrollBottom, 1, t.cursor.Attrs.Bg)
	} else if t.cursor.Row > 0 {
		t.cursor.Row--
	}
	t.cursor.PendingWrap = false
}

// CsiDispatch handles a complete CSI sequence. Unrecognized final bytes are
// dropped, matching the parser's drop-and-resync failure model; a debug
// logger still gets a chance to record them.
func (t *Terminal) CsiDispatch(params []int, intermediates []byte, private byte, final byte) {
	switch final {
	case 'A':
		t.moveUp(countParam(params, 0, 1))
	case 'B', 'e':
		t.moveDown(countParam(params, 0, 1))
	case 'C', 'a':
		t.moveForward(countParam(params, 0, 1))
	case 'D':
		t.moveBackward(countParam(params, 0, 1))
	case 'H', 'f':
		t.gotoRowCol(countParam(params, 0, 1)-1, countParam(params, 1, 1)-1)
	case 'G', '`':
		t.gotoCol(countParam(params, 0, 1) - 1)
	case 'd':
		t.gotoRow(countParam(params, 0, 1) - 1)
	case 'E':
		t.moveDown(countParam(params, 0, 1))
		t.cursor.Col = 0
	case 'F':
		t.moveUp(countParam(params, 0, 1))
		t.cursor.Col = 0
	case 'I':
		for i, n := 0, countParam(params, 0, 1); i < n; i++ {
			t.cursor.Col = t.activeBuffer.NextTabStop(t.cursor.Col)
		}
	case 'Z':
		for i, n := 0, countParam(params, 0, 1); i < n; i++ {
			t.cursor.Col = t.activeBuffer.PrevTabStop(t.cursor.Col)
		}
	case 'J':
		t.eraseInDisplay(paramAt(params, 0))
	case 'K':
		t.eraseInLine(paramAt(params, 0))
	case 'L':
		t.insertLines(countParam(params, 0, 1))
	case 'M':
		t.deleteLines(countParam(params, 0, 1))
	case '@':
		t.insertChars(countParam(params, 0, 1))
	case 'P':
		t.deleteChars(countParam(params, 0, 1))
	case 'X':
		t.eraseChars(countParam(params, 0, 1))
	case 'S':
		t.scrollUp(countParam(params, 0, 1))
	case 'T':
		t.scrollDown(countParam(params, 0, 1))
	case 'r':
		t.setScrollRegion(countParam(params, 0, 1), paramAt(params, 1))
	case 'g':
		t.clearTabs(paramAt(params, 0))
	case 'h':
		t.setModes(params, private, true)
	case 'l':
		t.setModes(params, private, false)
	case 'm':
		t.applySGR(params)
	case 'n':
		t.deviceStatus(paramAt(params, 0))
	case 's':
		t.saveCursor()
	case 'u':
		t.restoreCursor()
	case 'q':
		if len(intermediates) > 0 && intermediates[0] == ' ' {
			t.setCursorStyleFromDECSCUSR(paramAt(params, 0))
		}
	case 't':
		t.windowOp(paramAt(params, 0))
	default:
		t.logger.Debugf("vtterm: unhandled CSI final %q (params=%v)", final, params)
	}
}

// windowOp handles the xterm window-manipulation title stack operations;
// other window-manipulation subcodes (resize, iconify, raise) concern a
// host window this package has no model of and are ignored.
func (t *Terminal) windowOp(op int) {
	switch op {
	case 22:
		t.titleStack = append(t.titleStack, t.title)
		t.titleProvider.PushTitle()
	case 23:
		if n := len(t.titleStack); n > 0 {
			t.title = t.titleStack[n-1]
			t.titleStack = t.titleStack[:n-1]
			t.titleProvider.SetTitle(t.title)
		}
		t.titleProvider.PopTitle()
	}
}

func (t *Terminal) moveUp(n int) {
	t.cursor.PendingWrap = false
	minRow := 0
	if t.modes&ModeOrigin != 0 {
		minRow = t.scrollTop
	}
	t.cursor.Row = clampInt(t.cursor.Row-n, minRow, t.rows-1)
}

func (t *Terminal) moveDown(n int) {
	t.cursor.PendingWrap = false
	maxRow := t.rows - 1
	if t.modes&ModeOrigin != 0 {
		maxRow = t.scrollBottom - 1
	}
	t.cursor.Row = clampInt(t.cursor.Row+n, 0, maxRow)
}

func (t *Terminal) moveForward(n int) {
	t.cursor.PendingWrap = false
	t.cursor.Col = clampInt(t.cursor.Col+n, 0, t.cols-1)
}

func (t *Terminal) moveBackward(n int) {
	t.cursor.PendingWrap = false
	t.cursor.Col = clampInt(t.cursor.Col-n, 0, t.cols-1)
}

func (t *Terminal) clampRowForOrigin(row int) int {
	if t.modes&ModeOrigin != 0 {
		return clampInt(t.scrollTop+row, t.scrollTop, t.scrollBottom-1)
	}
	return clampInt(row, 0, t.rows-1)
}

func (t *Terminal) gotoRowCol(row, col int) {
	t.cursor.PendingWrap = false
	t.cursor.Row = t.clampRowForOrigin(row)
	t.cursor.Col = clampInt(col, 0, t.cols-1)
}

func (t *Terminal) gotoCol(col int) {
	t.cursor.PendingWrap = false
	t.cursor.Col = clampInt(col, 0, t.cols-1)
}

func (t *Terminal) gotoRow(row int) {
	t.cursor.PendingWrap = false
	t.cursor.Row = t.clampRowForOrigin(row)
}

func (t *Terminal) eraseInLine(mode int) {
	bg := t.cursor.Attrs.Bg
	switch mode {
	case 0:
		t.activeBuffer.ClearRowRange(t.cursor.Row, t.cursor.Col, t.cols, bg)
	case 1:
		t.activeBuffer.ClearRowRange(t.cursor.Row, 0, t.cursor.Col+1, bg)
	case 2:
		t.activeBuffer.ClearRow(t.cursor.Row, bg)
	}
}

func (t *Terminal) eraseInDisplay(mode int) {
	bg := t.cursor.Attrs.Bg
	switch mode {
	case 0:
		t.activeBuffer.ClearRowRange(t.cursor.Row, t.cursor.Col, t.cols, bg)
		for row := t.cursor.Row + 1; row < t.rows; row++ {
			t.activeBuffer.ClearRow(row, bg)
		}
	case 1:
		for row := 0; row < t.cursor.Row; row++ {
			t.activeBuffer.ClearRow(row, bg)
		}
		t.activeBuffer.ClearRowRange(t.cursor.Row, 0, t.cursor.Col+1, bg)
	case 2:
		t.activeBuffer.ClearAll(bg)
	case 3:
		t.activeBuffer.ClearAll(bg)
		t.activeBuffer.ClearScrollback()
	}
}

func (t *Terminal) insertLines(n int) {
	if t.cursor.Row >= t.scrollTop && t.cursor.Row < t.scrollBottom {
		t.activeBuffer.InsertLines(t.cursor.Row, n, t.scrollBottom, t.cursor.Attrs.Bg)
	}
}

func (t *Terminal) deleteLines(n int) {
	if t.cursor.Row >= t.scrollTop && t.cursor.Row < t.scrollBottom {
		t.activeBuffer.DeleteLines(t.cursor.Row, n, t.scrollBottom, t.cursor.Attrs.Bg)
	}
}

func (t *Terminal) insertChars(n int) {
	t.activeBuffer.InsertBlanks(t.cursor.Row, t.cursor.Col, n, t.cursor.Attrs.Bg)
}

func (t *Terminal) deleteChars(n int) {
	t.activeBuffer.DeleteChars(t.cursor.Row, t.cursor.Col, n, t.cursor.Attrs.Bg)
}

func (t *Terminal) eraseChars(n int) {
	bg := t.cursor.Attrs.Bg
	for i := 0; i < n && t.cursor.Col+i < t.cols; i++ {
		t.activeBuffer.SetCell(t.cursor.Row, t.cursor.Col+i, BlankCell(bg))
	}
}

func (t *Terminal) scrollUp(n int) {
	t.activeBuffer.ScrollUp(t.scrollTop, t.scrollBottom, n, t.cursor.Attrs.Bg)
}

func (t *Terminal) scrollDown(n int) {
	t.activeBuffer.ScrollDown(t.scrollTop, t.scrollBottom, n, t.cursor.Attrs.Bg)
}

func (t *Terminal) setScrollRegion(top, bottom int) {
	top--
	if bottom <= 0 || bottom > t.rows {
		bottom = t.rows
	}
	if top < 0 {
		top = 0
	}
	if top >= bottom {
		return
	}
	t.scrollTop = top
	t.scrollBottom = bottom
	if t.modes&ModeOrigin != 0 {
		t.cursor.Row = t.scrollTop
	} else {
		t.cursor.Row = 0
	}
	t.cursor.Col = 0
	t.cursor.PendingWrap = false
}

func (t *Terminal) clearTabs(mode int) {
	switch mode {
	case 0:
		t.activeBuffer.ClearTabStop(t.cursor.Col)
	case 3:
		t.activeBuffer.ClearAllTabStops()
	}
}

func (t *Terminal) setModeFlag(m TerminalMode, set bool) {
	if set {
		t.modes |= m
	} else {
		t.modes &^= m
	}
}

func (t *Terminal) setModes(params []int, private byte, set bool) {
	for _, p := range params {
		if private == '?' {
			switch p {
			case 1:
				t.setModeFlag(ModeAppCursorKeys, set)
			case 6:
				t.setModeFlag(ModeOrigin, set)
				if set {
					t.cursor.Row = t.scrollTop
				} else {
					t.cursor.Row = 0
				}
				t.cursor.Col = 0
			case 7:
				t.setModeFlag(ModeAutoWrap, set)
			case 25:
				t.cursor.Visible = set
				t.setModeFlag(ModeShowCursor, set)
			case 47, 1047:
				t.switchAltScreen(set, false)
			case 1049:
				t.switchAltScreen(set, true)
			case 2004:
				t.setModeFlag(ModeBracketedPaste, set)
			default:
				t.logger.Debugf("vtterm: unhandled private mode ?%d", p)
			}
		} else {
			switch p {
			case 4:
				t.setModeFlag(ModeInsert, set)
			case 20:
				t.setModeFlag(ModeLineFeedNewLine, set)
			default:
				t.logger.Debugf("vtterm: unhandled ANSI mode %d", p)
			}
		}
	}
}

func (t *Terminal) switchAltScreen(enter, withCursorSave bool) {
	if enter {
		if t.activeBuffer == t.alternateBuffer {
			return
		}
		if withCursorSave {
			t.savedCursor = t.snapshotSavedCursor()
		}
		t.activeBuffer = t.alternateBuffer
		t.activeBuffer.ClearAll(t.cursor.Attrs.Bg)
		t.activeBuffer.MarkAllDirty()
		t.modes |= ModeAlternateScreen
	} else {
		if t.activeBuffer == t.primaryBuffer {
			return
		}
		t.activeBuffer = t.primaryBuffer
		if withCursorSave && t.savedCursor != nil {
			t.restoreCursorFrom(t.savedCursor)
		}
		t.activeBuffer.MarkAllDirty()
		t.modes &^= ModeAlternateScreen
	}
}

func (t *Terminal) snapshotSavedCursor() *SavedCursor {
	return &SavedCursor{
		Row:          t.cursor.Row,
		Col:          t.cursor.Col,
		Attrs:        t.cursor.Attrs,
		OriginMode:   t.modes&ModeOrigin != 0,
		CharsetIndex: t.activeCharset,
		Charsets:     t.charsets,
	}
}

func (t *Terminal) restoreCursorFrom(s *SavedCursor) {
	t.cursor.Row = clampInt(s.Row, 0, t.rows-1)
	t.cursor.Col = clampInt(s.Col, 0, t.cols-1)
	t.cursor.Attrs = s.Attrs
	t.cursor.PendingWrap = false
	if s.OriginMode {
		t.modes |= ModeOrigin
	} else {
		t.modes &^= ModeOrigin
	}
	t.activeCharset = s.CharsetIndex
	t.charsets = s.Charsets
}

func (t *Terminal) saveCursor() {
	t.savedCursor = t.snapshotSavedCursor()
}

func (t *Terminal) restoreCursor() {
	if t.savedCursor != nil {
		t.restoreCursorFrom(t.savedCursor)
	}
}

func (t *Terminal) setCursorStyleFromDECSCUSR(n int) {
	switch n {
	case 0, 1, 2:
		t.cursor.Style = CursorBlock
	case 3, 4:
		t.cursor.Style = CursorUnderline
	case 5, 6:
		t.cursor.Style = CursorBar
	}
	t.cursor.Blink = n == 0 || n%2 == 1
}

func (t *Terminal) deviceStatus(n int) {
	var response string
	switch n {
	case 5:
		response = "\x1b[0n"
	case 6:
		response = fmt.Sprintf("\x1b[%d;%dR", t.cursor.Row+1, t.cursor.Col+1)
	}
	if response != "" {
		t.writeResponseString(response)
	}
}

// EscDispatch handles a two-character-or-longer escape sequence that isn't
// CSI, OSC, or DCS: cursor save/restore, full reset, index/newline/reverse
// index, tab set, G0-G3 charset designation, and the DECALN screen
// alignment test pattern.
func (t *Terminal) EscDispatch(intermediates []byte, final byte) {
	if len(intermediates) > 0 {
		switch intermediates[0] {
		case '(':
			t.designateCharset(CharsetG0, final)
			return
		case ')':
			t.designateCharset(CharsetG1, final)
			return
		case '*':
			t.designateCharset(CharsetG2, final)
			return
		case '+':
			t.designateCharset(CharsetG3, final)
			return
		case '#':
			if final == '8' {
				// DECALN: fill the screen with 'E' for alignment testing.
				t.activeBuffer.FillWithE()
			}
			return
		}
		return
	}

	switch final {
	case '7':
		t.saveCursor()
	case '8':
		t.restoreCursor()
	case 'c':
		t.resetLocked()
	case 'D':
		t.index()
	case 'E':
		t.newline()
	case 'H':
		t.activeBuffer.SetTabStop(t.cursor.Col)
	case 'M':
		t.reverseIndex()
	}
}

func (t *Terminal) designateCharset(idx CharsetIndex, final byte) {
	cs := CharsetASCII
	if final == '0' {
		cs = CharsetLineDrawing
	}
	t.charsets[idx] = cs
}

// OscDispatch routes an Operating System Command by its leading numeric
// identifier.
func (t *Terminal) OscDispatch(fields [][]byte) {
	if len(fields) == 0 {
		return
	}
	id, err := strconv.Atoi(string(fields[0]))
	if err != nil {
		return
	}
	switch id {
	case 0, 1, 2:
		title := ""
		if len(fields) > 1 {
			title = string(bytes.Join(fields[1:], []byte(";")))
		}
		t.title = title
		if t.titleProvider != nil {
			t.titleProvider.SetTitle(title)
		}
	case 7:
		if len(fields) > 1 {
			t.setWorkingDirectory(string(fields[1]))
		}
	case 9:
		t.DesktopNotification(&NotificationPayload{PayloadType: "body", Data: joinFields(fields, 1)})
	case 4:
		t.setPaletteColors(fields)
	case 10, 11:
		t.respondDynamicColor(id, fields)
	case 52:
		t.dispatchClipboard(fields)
	case 133:
		t.dispatchPromptMark(fields)
	case 777:
		t.dispatchNotification777(fields)
	case 1337:
		t.dispatchUserVar(fields)
	case 104:
		t.resetPaletteColors(fields)
	default:
		t.logger.Debugf("vtterm: unhandled OSC %d", id)
	}
}

func joinFields(fields [][]byte, from int) []byte {
	if from >= len(fields) {
		return nil
	}
	return bytes.Join(fields[from:], []byte(";"))
}

// respondDynamicColor handles OSC 10 (default foreground) and OSC 11
// (default background): "?" queries the current default color, any other
// spec (e.g. "rgb:ff/ff/ff") sets it, persisting until the next set or a
// full reset.
func (t *Terminal) respondDynamicColor(id int, fields [][]byte) {
	if len(fields) < 2 {
		return
	}
	spec := string(fields[1])
	if spec == "?" {
		rgba := t.resolveColor(DefaultColor(), id == 10)
		response := fmt.Sprintf("\x1b]%d;rgb:%02x/%02x/%02x\x07", id, rgba.R, rgba.G, rgba.B)
		t.writeResponseString(response)
		return
	}
	rgba, ok := parseColorSpec(spec)
	if !ok {
		t.logger.Warnf("vtterm: OSC %d has an unrecognized color spec %q", id, spec)
		return
	}
	if id == 10 {
		t.dynamicFg = &rgba
	} else {
		t.dynamicBg = &rgba
	}
}

// setPaletteColors handles OSC 4: one or more "index;spec" pairs that
// override palette slot index with spec (e.g. "rgb:ff/00/00").
func (t *Terminal) setPaletteColors(fields [][]byte) {
	for i := 1; i+1 < len(fields); i += 2 {
		idx, err := strconv.Atoi(string(fields[i]))
		if err != nil || idx < 0 || idx > 255 {
			continue
		}
		rgba, ok := parseColorSpec(string(fields[i+1]))
		if !ok {
			t.logger.Warnf("vtterm: OSC 4 has an unrecognized color spec %q", string(fields[i+1]))
			continue
		}
		if t.paletteOverrides == nil {
			t.paletteOverrides = make(map[uint8]color.RGBA)
		}
		t.paletteOverrides[uint8(idx)] = rgba
	}
}

// resetPaletteColors handles OSC 104: reset the palette slots named in
// fields back to DefaultPalette, or every overridden slot if none are
// named.
func (t *Terminal) resetPaletteColors(fields [][]byte) {
	if len(fields) < 2 {
		for idx := range t.paletteOverrides {
			delete(t.paletteOverrides, idx)
		}
		return
	}
	for _, f := range fields[1:] {
		idx, err := strconv.Atoi(string(f))
		if err != nil || idx < 0 || idx > 255 {
			continue
		}
		delete(t.paletteOverrides, uint8(idx))
	}
}

// parseColorSpec parses an X11-style "rgb:r/g/b" color spec, where each
// component is 1-4 hex digits scaled to 8 bits, or a "#rrggbb" shorthand.
func parseColorSpec(spec string) (color.RGBA, bool) {
	if strings.HasPrefix(spec, "#") && len(spec) == 7 {
		r, err1 := strconv.ParseUint(spec[1:3], 16, 8)
		g, err2 := strconv.ParseUint(spec[3:5], 16, 8)
		b, err3 := strconv.ParseUint(spec[5:7], 16, 8)
		if err1 != nil || err2 != nil || err3 != nil {
			return color.RGBA{}, false
		}
		return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 255}, true
	}
	if !strings.HasPrefix(spec, "rgb:") {
		return color.RGBA{}, false
	}
	parts := strings.Split(spec[len("rgb:"):], "/")
	if len(parts) != 3 {
		return color.RGBA{}, false
	}
	components := make([]uint8, 3)
	for i, p := range parts {
		if p == "" || len(p) > 4 {
			return color.RGBA{}, false
		}
		v, err := strconv.ParseUint(p, 16, 32)
		if err != nil {
			return color.RGBA{}, false
		}
		maxVal := uint64(1)<<(4*len(p)) - 1
		components[i] = uint8(v * 255 / maxVal)
	}
	return color.RGBA{R: components[0], G: components[1], B: components[2], A: 255}, true
}

func (t *Terminal) dispatchClipboard(fields [][]byte) {
	if t.clipboardProvider == nil || len(fields) < 3 {
		return
	}
	clipboard := byte('c')
	if len(fields[1]) > 0 {
		clipboard = fields[1][0]
	}
	payload := string(fields[2])
	if payload == "?" {
		content := t.clipboardProvider.Read(clipboard)
		if content == "" {
			return
		}
		encoded := base64.StdEncoding.EncodeToString([]byte(content))
		t.writeResponseString("\x1b]52;" + string(clipboard) + ";" + encoded + "\x07")
		return
	}
	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		t.logger.Warnf("vtterm: OSC 52 payload is not valid base64: %v", err)
		return
	}
	t.clipboardProvider.Write(clipboard, decoded)
}

// dispatchPromptMark interprets an OSC 133 payload: "A" prompt start, "B"
// command start, "C" command executed, "D[;exitcode]" command finished.
func (t *Terminal) dispatchPromptMark(fields [][]byte) {
	if len(fields) < 2 || len(fields[1]) == 0 {
		return
	}
	switch fields[1][0] {
	case 'A':
		t.shellIntegrationMark(PromptStart, 0)
	case 'B':
		t.shellIntegrationMark(CommandStart, 0)
	case 'C':
		t.shellIntegrationMark(CommandExecuted, 0)
	case 'D':
		exitCode := 0
		if len(fields) > 2 {
			if n, err := strconv.Atoi(string(fields[2])); err == nil {
				exitCode = n
			}
		}
		t.shellIntegrationMark(CommandFinished, exitCode)
	}
}

// dispatchNotification777 interprets the iTerm2-style OSC 777 sub-command
// family, forwarding to the notification provider.
func (t *Terminal) dispatchNotification777(fields [][]byte) {
	if len(fields) < 2 {
		return
	}
	payload := &NotificationPayload{PayloadType: string(fields[1])}
	if len(fields) > 2 {
		payload.Data = joinFields(fields, 2)
	}
	t.DesktopNotification(payload)
}

func (t *Terminal) dispatchUserVar(fields [][]byte) {
	if len(fields) < 2 {
		return
	}
	payload := string(joinFields(fields, 1))
	const prefix = "SetUserVar="
	if !strings.HasPrefix(payload, prefix) {
		return
	}
	rest := payload[len(prefix):]
	eq := strings.IndexByte(rest, '=')
	if eq < 0 {
		return
	}
	name := rest[:eq]
	decoded, err := base64.StdEncoding.DecodeString(rest[eq+1:])
	if err != nil {
		return
	}
	t.setUserVarLocked(name, string(decoded))
}

// DcsHook begins a Device Control String. Only DECRQSS ("$q") is
// recognized; all other DCS payloads are accumulated and discarded once
// DcsUnhook fires, per the parser contract's "may be ignored except for
// DECRQSS" allowance.
func (t *Terminal) DcsHook(params []int, intermediates []byte, private byte, final byte) {
	t.dcsIsRequest = len(intermediates) == 1 && intermediates[0] == '$' && final == 'q'
	t.dcsBuf = t.dcsBuf[:0]
}

// DcsPut accumulates one payload byte of the current DCS string.
func (t *Terminal) DcsPut(b byte) {
	if t.dcsIsRequest {
		t.dcsBuf = append(t.dcsBuf, b)
	}
}

// DcsUnhook answers a DECRQSS request with a "request error" response,
// since this module does not track or report any settable terminal
// attribute string.
func (t *Terminal) DcsUnhook() {
	if t.dcsIsRequest {
		t.writeResponseString("\x1bP0$r\x1b\\")
	}
	t.dcsIsRequest = false
	t.dcsBuf = t.dcsBuf[:0]
}
