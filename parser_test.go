package vtterm

import "testing"

// recordingHandler implements Handler and records every dispatched action,
// for exercising the Parser state machine in isolation from Terminal.
type recordingHandler struct {
	prints   []rune
	executes []byte
	csis     []csiCall
	escs     []escCall
	oscs     [][][]byte
	dcsHooks []csiCall
	dcsPuts  []byte
	unhooks  int
}

type csiCall struct {
	params        []int
	intermediates []byte
	private       byte
	final         byte
}

type escCall struct {
	intermediates []byte
	final         byte
}

func (h *recordingHandler) Print(r rune)      { h.prints = append(h.prints, r) }
func (h *recordingHandler) Execute(b byte)    { h.executes = append(h.executes, b) }
func (h *recordingHandler) CsiDispatch(params []int, intermediates []byte, private byte, final byte) {
	h.csis = append(h.csis, csiCall{append([]int(nil), params...), append([]byte(nil), intermediates...), private, final})
}
func (h *recordingHandler) EscDispatch(intermediates []byte, final byte) {
	h.escs = append(h.escs, escCall{append([]byte(nil), intermediates...), final})
}
func (h *recordingHandler) OscDispatch(params [][]byte) {
	cp := make([][]byte, len(params))
	for i, f := range params {
		cp[i] = append([]byte(nil), f...)
	}
	h.oscs = append(h.oscs, cp)
}
func (h *recordingHandler) DcsHook(params []int, intermediates []byte, private byte, final byte) {
	h.dcsHooks = append(h.dcsHooks, csiCall{append([]int(nil), params...), append([]byte(nil), intermediates...), private, final})
}
func (h *recordingHandler) DcsPut(b byte) { h.dcsPuts = append(h.dcsPuts, b) }
func (h *recordingHandler) DcsUnhook()    { h.unhooks++ }

func TestParserPrintsASCII(t *testing.T) {
	h := &recordingHandler{}
	p := NewParser(h)
	p.Write([]byte("hi"))
	if string(h.prints) != "hi" {
		t.Errorf("expected prints 'hi', got %q", string(h.prints))
	}
}

func TestParserDecodesMultibyteUTF8AcrossWrites(t *testing.T) {
	h := &recordingHandler{}
	p := NewParser(h)
	full := []byte(string(rune(0x4E2D)))
	p.Write(full[:1])
	p.Write(full[1:])
	if len(h.prints) != 1 || h.prints[0] != rune(0x4E2D) {
		t.Errorf("expected a single decoded rune split across writes, got %v", h.prints)
	}
}

func TestParserExecutesC0Controls(t *testing.T) {
	h := &recordingHandler{}
	p := NewParser(h)
	p.Write([]byte{0x0D, 0x0A, 0x08})
	if len(h.executes) != 3 {
		t.Fatalf("expected 3 executed control bytes, got %d", len(h.executes))
	}
}

func TestParserCSIWithParamsAndPrivateMarker(t *testing.T) {
	h := &recordingHandler{}
	p := NewParser(h)
	p.Write([]byte("\x1b[?25h"))
	if len(h.csis) != 1 {
		t.Fatalf("expected 1 CSI dispatch, got %d", len(h.csis))
	}
	call := h.csis[0]
	if call.private != '?' || call.final != 'h' || len(call.params) != 1 || call.params[0] != 25 {
		t.Errorf("expected CSI ?25h, got %+v", call)
	}
}

func TestParserCSIMultipleParams(t *testing.T) {
	h := &recordingHandler{}
	p := NewParser(h)
	p.Write([]byte("\x1b[1;31m"))
	if len(h.csis) != 1 {
		t.Fatalf("expected 1 CSI dispatch, got %d", len(h.csis))
	}
	if params := h.csis[0].params; len(params) != 2 || params[0] != 1 || params[1] != 31 {
		t.Errorf("expected params [1 31], got %v", params)
	}
}

func TestParserEscDispatch(t *testing.T) {
	h := &recordingHandler{}
	p := NewParser(h)
	p.Write([]byte("\x1bc"))
	if len(h.escs) != 1 || h.escs[0].final != 'c' {
		t.Errorf("expected one EscDispatch with final 'c', got %+v", h.escs)
	}
}

func TestParserOSCSplitsFieldsAndTerminatesOnBEL(t *testing.T) {
	h := &recordingHandler{}
	p := NewParser(h)
	p.Write([]byte("\x1b]0;my title\x07"))
	if len(h.oscs) != 1 {
		t.Fatalf("expected 1 OSC dispatch, got %d", len(h.oscs))
	}
	fields := h.oscs[0]
	if len(fields) != 2 || string(fields[0]) != "0" || string(fields[1]) != "my title" {
		t.Errorf("expected fields [0 'my title'], got %v", fields)
	}
}

func TestParserOSCTerminatesOnST(t *testing.T) {
	h := &recordingHandler{}
	p := NewParser(h)
	p.Write([]byte("\x1b]0;title\x1b\\"))
	if len(h.oscs) != 1 {
		t.Fatalf("expected 1 OSC dispatch via ST terminator, got %d", len(h.oscs))
	}
}

func TestParserLoneESCInOSCAbandonsString(t *testing.T) {
	h := &recordingHandler{}
	p := NewParser(h)
	// ESC followed by a non-backslash byte is not a valid ST: the OSC
	// string should resync, abandoning this OSC rather than emitting it.
	p.Write([]byte("\x1b]0;abc\x1bXdef\x07"))
	if len(h.oscs) != 0 {
		t.Errorf("expected the malformed OSC to be abandoned, got %v", h.oscs)
	}
}

func TestParserDCSHookPutUnhook(t *testing.T) {
	h := &recordingHandler{}
	p := NewParser(h)
	p.Write([]byte("\x1bP1$rhello\x1b\\"))
	if len(h.dcsHooks) != 1 {
		t.Fatalf("expected 1 DcsHook, got %d", len(h.dcsHooks))
	}
	if string(h.dcsPuts) != "hello" {
		t.Errorf("expected DcsPut bytes 'hello', got %q", string(h.dcsPuts))
	}
	if h.unhooks != 1 {
		t.Errorf("expected 1 DcsUnhook, got %d", h.unhooks)
	}
}

func TestParserCANAbortsEscapeSequence(t *testing.T) {
	h := &recordingHandler{}
	p := NewParser(h)
	p.Write([]byte("\x1b[1;3"))
	p.Write([]byte{0x18}) // CAN
	p.Write([]byte("A"))
	if len(h.csis) != 0 {
		t.Errorf("expected the aborted CSI sequence to never dispatch, got %v", h.csis)
	}
	if string(h.prints) != "A" {
		t.Errorf("expected 'A' printed normally after abort, got %q", string(h.prints))
	}
}

func TestParserInvalidLeadByteEmitsReplacement(t *testing.T) {
	h := &recordingHandler{}
	p := NewParser(h)
	p.Write([]byte{0xFF})
	if len(h.prints) != 1 || h.prints[0] != 0xFFFD {
		t.Errorf("expected a single replacement rune, got %v", h.prints)
	}
}

func TestParserC1ControlByteExecutes(t *testing.T) {
	h := &recordingHandler{}
	p := NewParser(h)
	p.Write([]byte{0x84}) // IND, an 8-bit C1 control with no dedicated case
	if len(h.executes) != 1 || h.executes[0] != 0x84 {
		t.Errorf("expected the C1 byte executed, got %v", h.executes)
	}
}

func TestParserTruncatedUTF8ThenControlEmitsReplacement(t *testing.T) {
	h := &recordingHandler{}
	p := NewParser(h)
	full := []byte(string(rune(0x4E2D)))
	p.Write(full[:1])
	p.Write([]byte{0x0A}) // LF aborts the pending continuation
	if len(h.prints) != 1 || h.prints[0] != 0xFFFD {
		t.Errorf("expected a replacement rune for the abandoned sequence, got %v", h.prints)
	}
	if len(h.executes) != 1 || h.executes[0] != 0x0A {
		t.Errorf("expected LF still executed, got %v", h.executes)
	}
}
