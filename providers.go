package vtterm

import "io"

// ResponseProvider writes terminal responses (cursor position reports,
// DA/DSR replies, DECRQSS answers) back to the PTY. Typically an io.Writer
// connected to the PTY's input side.
type ResponseProvider = io.Writer

// NoopResponse discards all response data.
type NoopResponse struct{}

func (NoopResponse) Write(p []byte) (n int, err error) { return len(p), nil }

// BellProvider handles bell events triggered by BEL (0x07).
type BellProvider interface {
	Ring()
}

// NoopBell ignores all bell events.
type NoopBell struct{}

func (NoopBell) Ring() {}

// TitleProvider handles window title changes (OSC 0, 1, 2).
type TitleProvider interface {
	SetTitle(title string)
	PushTitle()
	PopTitle()
}

// NoopTitle ignores all title operations.
type NoopTitle struct{}

func (NoopTitle) SetTitle(title string) {}
func (NoopTitle) PushTitle()            {}
func (NoopTitle) PopTitle()             {}

// ClipboardProvider handles clipboard read/write operations (OSC 52). The
// default policy is to ignore both directions; a host that wants clipboard
// access must supply its own provider, since honoring OSC 52 unconditionally
// lets any program in the terminal read or overwrite the system clipboard.
type ClipboardProvider interface {
	Read(clipboard byte) string
	Write(clipboard byte, data []byte)
}

// NoopClipboard ignores all clipboard operations.
type NoopClipboard struct{}

func (NoopClipboard) Read(clipboard byte) string        { return "" }
func (NoopClipboard) Write(clipboard byte, data []byte) {}

// RecordingProvider captures raw input bytes before parsing, for replay or
// debugging sessions.
type RecordingProvider interface {
	Record(data []byte)
	Data() []byte
	Clear()
}

// NoopRecording discards all input recordings.
type NoopRecording struct{}

func (NoopRecording) Record([]byte) {}
func (NoopRecording) Data() []byte  { return nil }
func (NoopRecording) Clear()        {}

// NotificationPayload carries a parsed OSC 9 or OSC 777 desktop
// notification request. PayloadType distinguishes the iTerm2-style
// sub-commands ("title", "body", "?" for a capability query, etc.); most
// fields are only meaningful for a subset of payload types.
type NotificationPayload struct {
	ID          string
	Done        bool
	PayloadType string
	Encoding    string
	Actions     []string
	TrackClose  bool
	Timeout     int
	AppName     string
	Type        string
	IconName    string
	IconCacheID string
	Sound       string
	Urgency     int
	Occasion    string
	Data        []byte
}

// NotificationProvider handles desktop notification requests (OSC 9 and the
// iTerm2-style OSC 777 family). Notify may return a response string (used
// to answer a capability query), which the caller writes back via the
// response provider.
type NotificationProvider interface {
	Notify(payload *NotificationPayload) string
}

// NoopNotification ignores all notification requests.
type NoopNotification struct{}

func (NoopNotification) Notify(payload *NotificationPayload) string { return "" }

// UserVarProvider handles named user variables set via OSC 1337 SetUserVar,
// used by shell integrations to surface arbitrary key/value state to a host.
type UserVarProvider interface {
	SetUserVar(name, value string)
}

// NoopUserVar ignores all user-variable updates.
type NoopUserVar struct{}

func (NoopUserVar) SetUserVar(name, value string) {}

var (
	_ ResponseProvider     = NoopResponse{}
	_ BellProvider         = (*NoopBell)(nil)
	_ TitleProvider        = (*NoopTitle)(nil)
	_ ClipboardProvider    = (*NoopClipboard)(nil)
	_ RecordingProvider    = (*NoopRecording)(nil)
	_ NotificationProvider = (*NoopNotification)(nil)
	_ UserVarProvider      = (*NoopUserVar)(nil)
)
