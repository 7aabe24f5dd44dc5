package vtterm

import "unicode/utf8"

// parserState is a state of the Paul Williams VT100/VT500 parser state
// machine (the same state machine xterm and most terminal emulators
// implement). Transitions are driven byte-by-byte; UTF-8 multi-byte
// sequences are decoded as a layer on top of GROUND, since they only ever
// occur as printable data. Combining-mark and width classification of the
// decoded runes is left to the Handler.
type parserState int

const (
	stateGround parserState = iota
	stateEscape
	stateEscapeIntermediate
	stateCSIEntry
	stateCSIParam
	stateCSIIntermediate
	stateCSIIgnore
	stateOSCString
	stateDCSEntry
	stateDCSParam
	stateDCSIntermediate
	stateDCSPassthrough
	stateDCSIgnore
	stateSosPmApcString
)

const maxParams = 32
const maxIntermediates = 8
const maxOSCString = 1 << 16
const maxDCSString = 1 << 16

// Handler receives the decoded actions of a Parser. Terminal implements
// this interface; tests may supply a fake to observe dispatch in
// isolation from screen-buffer semantics.
type Handler interface {
	// Print is called for each printable rune, combining marks and wide
	// characters included; the Parser does no width classification, so
	// attaching a mark to the previous cell or reserving two columns is
	// the Handler's job.
	Print(r rune)
	// Execute is called for a C0 or C1 control code (BS, HT, LF, CR, BEL,
	// and similar).
	Execute(b byte)
	// CsiDispatch is called when a complete CSI sequence is recognized.
	// private is the CSI private-marker byte (e.g. '?' for DEC private
	// modes), or 0 if absent. intermediates holds any 0x20-0x2F
	// intermediate bytes in order.
	CsiDispatch(params []int, intermediates []byte, private byte, final byte)
	// EscDispatch is called when a complete two-character-or-more escape
	// sequence (not CSI/OSC/DCS) is recognized.
	EscDispatch(intermediates []byte, final byte)
	// OscDispatch is called with an OSC sequence's semicolon-separated
	// parameters once its terminator (BEL or ST) is seen.
	OscDispatch(params [][]byte)
	// DcsHook/DcsPut/DcsUnhook stream a Device Control String: Hook once
	// at the opening parameters, Put once per payload byte, Unhook at the
	// terminator.
	DcsHook(params []int, intermediates []byte, private byte, final byte)
	DcsPut(b byte)
	DcsUnhook()
}

// Parser is a byte-oriented VT100/ANSI state machine. It never panics and
// never blocks: malformed or truncated sequences are abandoned back to
// GROUND rather than propagated as errors, since a real PTY stream may be
// split at arbitrary byte boundaries by the underlying transport.
type Parser struct {
	state         parserState
	params        []int
	curParam      int
	paramStarted  bool
	intermediates []byte
	private       byte
	oscBuf        []byte
	dcsParams     []int
	dcsCurParam   int
	dcsParamSet   bool
	dcsIntermediates []byte
	dcsPrivate    byte
	dcsBytes      int

	// oscPendingST/dcsPendingST/sosPendingST mark that feedEscape was
	// entered from within an OSC/DCS/SOS-PM-APC string on seeing an ESC
	// byte that might be the first half of an ST (ESC \) terminator.
	oscPendingST bool
	dcsPendingST bool
	sosPendingST bool

	// utf8Buf accumulates the bytes of a partially-seen multi-byte UTF-8
	// sequence across Feed calls.
	utf8Buf     [4]byte
	utf8Len     int
	utf8Want    int

	handler Handler
}

// NewParser returns a Parser in the GROUND state dispatching to handler.
func NewParser(handler Handler) *Parser {
	return &Parser{handler: handler, state: stateGround}
}

// Write feeds data through the state machine, dispatching to the Parser's
// Handler as complete actions are recognized. Implements io.Writer.
func (p *Parser) Write(data []byte) (int, error) {
	for _, b := range data {
		p.feedByte(b)
	}
	return len(data), nil
}

func (p *Parser) feedByte(b byte) {
	// A partially buffered UTF-8 sequence only continues in GROUND state;
	// control bytes always abort it.
	if p.utf8Want > 0 {
		if b >= 0x80 && b < 0xC0 {
			p.utf8Buf[p.utf8Len] = b
			p.utf8Len++
			if p.utf8Len == p.utf8Want {
				p.emitUTF8()
			}
			return
		}
		// Invalid continuation: emit replacement and resync on b normally.
		p.utf8Len, p.utf8Want = 0, 0
		p.handler.Print(utf8.RuneError)
	}

	// CAN/SUB abort any escape/control sequence back to GROUND.
	if b == 0x18 || b == 0x1A {
		p.reset()
		if b == 0x1A {
			p.handler.Print(utf8.RuneError)
		}
		return
	}

	// ESC restarts parsing from any state. The string states pass it to
	// feedEscape themselves, since there it may open an ST terminator.
	if b == 0x1B {
		switch p.state {
		case stateGround, stateEscape, stateOSCString, stateDCSPassthrough, stateSosPmApcString:
		default:
			p.reset()
			p.state = stateEscape
			return
		}
	}

	switch p.state {
	case stateGround:
		p.feedGround(b)
	case stateEscape:
		p.feedEscape(b)
	case stateEscapeIntermediate:
		p.feedEscapeIntermediate(b)
	case stateCSIEntry:
		p.feedCSIEntry(b)
	case stateCSIParam:
		p.feedCSIParam(b)
	case stateCSIIntermediate:
		p.feedCSIIntermediate(b)
	case stateCSIIgnore:
		p.feedCSIIgnore(b)
	case stateOSCString:
		p.feedOSCString(b)
	case stateDCSEntry:
		p.feedDCSEntry(b)
	case stateDCSParam:
		p.feedDCSParam(b)
	case stateDCSIntermediate:
		p.feedDCSIntermediate(b)
	case stateDCSPassthrough:
		p.feedDCSPassthrough(b)
	case stateDCSIgnore:
		p.feedDCSIgnore(b)
	case stateSosPmApcString:
		p.feedSosPmApcString(b)
	}
}

func (p *Parser) reset() {
	p.state = stateGround
	p.params = p.params[:0]
	p.curParam = 0
	p.paramStarted = false
	p.intermediates = p.intermediates[:0]
	p.private = 0
	p.oscBuf = p.oscBuf[:0]
	p.dcsParams = p.dcsParams[:0]
	p.dcsCurParam = 0
	p.dcsParamSet = false
	p.dcsIntermediates = p.dcsIntermediates[:0]
	p.dcsPrivate = 0
	p.utf8Len, p.utf8Want = 0, 0
}

// --- GROUND ---

func (p *Parser) feedGround(b byte) {
	switch {
	case b == 0x1B:
		p.state = stateEscape
	case b < 0x20 || b == 0x7F:
		p.handler.Execute(b)
	case b < 0x80:
		p.handler.Print(rune(b))
	case b >= 0xC2 && b < 0xE0:
		p.beginUTF8(b, 1)
	case b >= 0xE0 && b < 0xF0:
		p.beginUTF8(b, 2)
	case b >= 0xF0 && b < 0xF5:
		p.beginUTF8(b, 3)
	case b >= 0x80 && b < 0xA0:
		// C1 control code, 8-bit form. Map to the 7-bit equivalent and
		// dispatch as if the corresponding ESC sequence had been seen.
		p.dispatchC1(b)
	default:
		// Stray continuation byte or otherwise invalid lead byte.
		p.handler.Print(utf8.RuneError)
	}
}

func (p *Parser) beginUTF8(lead byte, want int) {
	p.utf8Buf[0] = lead
	p.utf8Len = 1
	p.utf8Want = want + 1
}

func (p *Parser) emitUTF8() {
	r, _ := utf8.DecodeRune(p.utf8Buf[:p.utf8Len])
	p.utf8Len, p.utf8Want = 0, 0
	p.handler.Print(r)
}

// dispatchC1 maps an 8-bit C1 control byte to the behavior of its 7-bit
// ESC equivalent, per the ECMA-48 8-bit/7-bit code equivalence.
func (p *Parser) dispatchC1(b byte) {
	switch b {
	case 0x9B: // CSI
		p.reset()
		p.state = stateCSIEntry
	case 0x9D: // OSC
		p.reset()
		p.state = stateOSCString
	case 0x90: // DCS
		p.reset()
		p.state = stateDCSEntry
	case 0x98, 0x9E, 0x9F: // SOS, PM, APC
		p.reset()
		p.state = stateSosPmApcString
	default:
		p.handler.Execute(b)
	}
}

// --- ESCAPE ---

func (p *Parser) feedEscape(b byte) {
	if p.oscPendingST || p.dcsPendingST || p.sosPendingST {
		wasOSC, wasDCS := p.oscPendingST, p.dcsPendingST
		p.oscPendingST, p.dcsPendingST, p.sosPendingST = false, false, false
		if b == '\\' {
			switch {
			case wasOSC:
				p.finishOSC()
			case wasDCS:
				p.handler.DcsUnhook()
				p.reset()
			default:
				p.reset()
			}
			return
		}
		// Not a valid ST: the pending string is abandoned and this byte
		// starts a fresh escape sequence.
		p.reset()
		p.state = stateEscape
	}

	switch {
	case b == 0x1B:
		// Redundant ESC restarts the sequence.
	case b == '[':
		p.beginCSI()
	case b == ']':
		p.beginOSC()
	case b == 'P':
		p.beginDCS()
	case b == 'X' || b == '^' || b == '_':
		p.state = stateSosPmApcString
	case b >= 0x20 && b <= 0x2F:
		p.intermediates = append(p.intermediates, b)
		p.state = stateEscapeIntermediate
	case b >= 0x30 && b <= 0x7E:
		p.handler.EscDispatch(p.intermediates, b)
		p.reset()
	case b < 0x20:
		p.handler.Execute(b)
	default:
		p.reset()
	}
}

func (p *Parser) feedEscapeIntermediate(b byte) {
	switch {
	case b >= 0x20 && b <= 0x2F:
		if len(p.intermediates) < maxIntermediates {
			p.intermediates = append(p.intermediates, b)
		}
	case b >= 0x30 && b <= 0x7E:
		p.handler.EscDispatch(p.intermediates, b)
		p.reset()
	case b < 0x20:
		p.handler.Execute(b)
	default:
		p.reset()
	}
}

// --- CSI ---

func (p *Parser) beginCSI() {
	p.reset()
	p.state = stateCSIEntry
}

func (p *Parser) feedCSIEntry(b byte) {
	switch {
	case b >= '0' && b <= '9':
		p.curParam = int(b - '0')
		p.paramStarted = true
		p.state = stateCSIParam
	case b == ';':
		p.params = append(p.params, 0)
		p.state = stateCSIParam
	case b == '<' || b == '=' || b == '>' || b == '?':
		p.private = b
		p.state = stateCSIParam
	case b >= 0x20 && b <= 0x2F:
		p.intermediates = append(p.intermediates, b)
		p.state = stateCSIIntermediate
	case b >= 0x40 && b <= 0x7E:
		p.finishCSI(b)
	case b < 0x20:
		p.handler.Execute(b)
	case b == 0x3A:
		p.state = stateCSIIgnore
	default:
		p.state = stateCSIIgnore
	}
}

func (p *Parser) feedCSIParam(b byte) {
	switch {
	case b >= '0' && b <= '9':
		p.curParam = p.curParam*10 + int(b-'0')
		p.paramStarted = true
	case b == ';':
		p.pushParam()
	case b >= 0x20 && b <= 0x2F:
		p.pushParam()
		p.intermediates = append(p.intermediates, b)
		p.state = stateCSIIntermediate
	case b >= 0x40 && b <= 0x7E:
		p.pushParam()
		p.finishCSI(b)
	case b < 0x20:
		p.handler.Execute(b)
	case b == 0x3A:
		p.state = stateCSIIgnore
	default:
		p.state = stateCSIIgnore
	}
}

func (p *Parser) feedCSIIntermediate(b byte) {
	switch {
	case b >= 0x20 && b <= 0x2F:
		if len(p.intermediates) < maxIntermediates {
			p.intermediates = append(p.intermediates, b)
		}
	case b >= 0x40 && b <= 0x7E:
		p.finishCSI(b)
	case b < 0x20:
		p.handler.Execute(b)
	default:
		p.state = stateCSIIgnore
	}
}

func (p *Parser) feedCSIIgnore(b byte) {
	switch {
	case b >= 0x40 && b <= 0x7E:
		p.reset()
	case b < 0x20:
		p.handler.Execute(b)
	}
}

func (p *Parser) pushParam() {
	if len(p.params) < maxParams {
		p.params = append(p.params, p.curParam)
	}
	p.curParam = 0
	p.paramStarted = false
}

func (p *Parser) finishCSI(final byte) {
	if p.paramStarted || len(p.params) == 0 {
		p.params = append(p.params, p.curParam)
	}
	p.handler.CsiDispatch(p.params, p.intermediates, p.private, final)
	p.reset()
}

// --- OSC ---

func (p *Parser) beginOSC() {
	p.reset()
	p.state = stateOSCString
}

func (p *Parser) feedOSCString(b byte) {
	switch b {
	case 0x07: // BEL terminator (xterm convention)
		p.finishOSC()
	case 0x1B:
		// Possible ST (ESC \); handled via a one-byte lookahead using the
		// escape state. If the next byte is not '\\', the OSC string is
		// abandoned undispatched and that byte begins a new escape sequence.
		p.state = stateEscape
		p.oscPendingST = true
	default:
		if len(p.oscBuf) < maxOSCString {
			p.oscBuf = append(p.oscBuf, b)
		}
	}
}

func (p *Parser) finishOSC() {
	var fields [][]byte
	start := 0
	for i, c := range p.oscBuf {
		if c == ';' {
			fields = append(fields, p.oscBuf[start:i])
			start = i + 1
		}
	}
	fields = append(fields, p.oscBuf[start:])
	p.handler.OscDispatch(fields)
	p.reset()
}

// --- DCS ---

func (p *Parser) beginDCS() {
	p.reset()
	p.state = stateDCSEntry
}

func (p *Parser) feedDCSEntry(b byte) {
	switch {
	case b >= '0' && b <= '9':
		p.dcsCurParam = int(b - '0')
		p.dcsParamSet = true
		p.state = stateDCSParam
	case b == ';':
		p.dcsParams = append(p.dcsParams, 0)
		p.state = stateDCSParam
	case b == '<' || b == '=' || b == '>' || b == '?':
		p.dcsPrivate = b
		p.state = stateDCSParam
	case b >= 0x20 && b <= 0x2F:
		p.dcsIntermediates = append(p.dcsIntermediates, b)
		p.state = stateDCSIntermediate
	case b >= 0x40 && b <= 0x7E:
		p.hookDCS(b)
	default:
		p.state = stateDCSIgnore
	}
}

func (p *Parser) feedDCSParam(b byte) {
	switch {
	case b >= '0' && b <= '9':
		p.dcsCurParam = p.dcsCurParam*10 + int(b-'0')
		p.dcsParamSet = true
	case b == ';':
		p.pushDCSParam()
	case b >= 0x20 && b <= 0x2F:
		p.pushDCSParam()
		p.dcsIntermediates = append(p.dcsIntermediates, b)
		p.state = stateDCSIntermediate
	case b >= 0x40 && b <= 0x7E:
		p.pushDCSParam()
		p.hookDCS(b)
	default:
		p.state = stateDCSIgnore
	}
}

func (p *Parser) feedDCSIntermediate(b byte) {
	switch {
	case b >= 0x20 && b <= 0x2F:
		if len(p.dcsIntermediates) < maxIntermediates {
			p.dcsIntermediates = append(p.dcsIntermediates, b)
		}
	case b >= 0x40 && b <= 0x7E:
		p.hookDCS(b)
	default:
		p.state = stateDCSIgnore
	}
}

func (p *Parser) pushDCSParam() {
	if len(p.dcsParams) < maxParams {
		p.dcsParams = append(p.dcsParams, p.dcsCurParam)
	}
	p.dcsCurParam = 0
	p.dcsParamSet = false
}

func (p *Parser) hookDCS(final byte) {
	if p.dcsParamSet || len(p.dcsParams) == 0 {
		p.dcsParams = append(p.dcsParams, p.dcsCurParam)
	}
	p.handler.DcsHook(p.dcsParams, p.dcsIntermediates, p.dcsPrivate, final)
	p.state = stateDCSPassthrough
	p.dcsBytes = 0
}

func (p *Parser) feedDCSPassthrough(b byte) {
	if b == 0x1B {
		p.state = stateEscape
		p.dcsPendingST = true
		return
	}
	if p.dcsBytes < maxDCSString {
		p.handler.DcsPut(b)
		p.dcsBytes++
	}
}

func (p *Parser) feedDCSIgnore(b byte) {
	if b == 0x9C {
		p.reset()
	}
}

// --- SOS/PM/APC ---

func (p *Parser) feedSosPmApcString(b byte) {
	if b == 0x1B {
		p.state = stateEscape
		p.sosPendingST = true
		return
	}
	// SOS/PM/APC payloads are discarded: no Non-goal feature in this
	// package consumes them, but the bytes must still be consumed so the
	// parser resynchronizes correctly at the terminator.
}
