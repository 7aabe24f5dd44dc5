package vtterm

// Logger is a minimal structured-logging seam for diagnostic events that
// are not failures (a malformed sequence is still absorbed per §7; a
// logger only gets a chance to record that it happened). Kept on the
// standard library rather than a third-party logging package: nothing in
// the retrieval pack reaches for one inside a terminal core itself, and
// a two-method interface plus a no-op default costs nothing a host can't
// already get by wrapping its own logger.
type Logger interface {
	Debugf(format string, args ...any)
	Warnf(format string, args ...any)
}

// NoopLogger discards all log output. The default when no WithLogger
// option is supplied.
type NoopLogger struct{}

func (NoopLogger) Debugf(format string, args ...any) {}
func (NoopLogger) Warnf(format string, args ...any)  {}

// WithLogger supplies a Logger for diagnostic events from the handler:
// unhandled CSI finals, mode numbers and OSC identifiers (Debugf), and
// unrecognized OSC color specs and invalid OSC 52 base64 payloads (Warnf).
// The parser itself does not log, and provider errors are not logged.
func WithLogger(l Logger) Option {
	return func(t *Terminal) { t.logger = l }
}

var _ Logger = NoopLogger{}
