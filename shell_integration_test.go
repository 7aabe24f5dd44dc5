package vtterm

import "testing"

func TestPromptMarksRecorded(t *testing.T) {
	term := newOpenTerminal(80, 24)
	term.WriteString("\x1b]133;A\x07")
	term.WriteString("$ ")
	term.WriteString("\x1b]133;B\x07")
	term.WriteString("echo hi\r\n")
	term.WriteString("\x1b]133;C\x07")
	term.WriteString("hi\r\n")
	term.WriteString("\x1b]133;D;0\x07")

	marks := term.PromptMarks()
	if len(marks) != 4 {
		t.Fatalf("expected 4 marks, got %d", len(marks))
	}
	if marks[0].Type != PromptStart {
		t.Errorf("expected first mark PromptStart, got %v", marks[0].Type)
	}
	if marks[3].Type != CommandFinished || marks[3].ExitCode != 0 {
		t.Errorf("expected last mark CommandFinished exit 0, got %+v", marks[3])
	}
}

func TestClearPromptMarks(t *testing.T) {
	term := newOpenTerminal(80, 24)
	term.WriteString("\x1b]133;A\x07")
	term.ClearPromptMarks()
	if got := term.PromptMarks(); len(got) != 0 {
		t.Errorf("expected no marks after clearing, got %d", len(got))
	}
}

func TestWorkingDirectoryOSC7(t *testing.T) {
	term := newOpenTerminal(80, 24)
	term.WriteString("\x1b]7;file:///home/user\x07")
	if got := term.WorkingDirectory(); got != "file:///home/user" {
		t.Errorf("expected working directory set, got %q", got)
	}
}

func TestUserVarsOSC1337(t *testing.T) {
	term := newOpenTerminal(80, 24)
	// SetUserVar=key=value, value base64-encoded: "world" -> d29ybGQ=
	term.WriteString("\x1b]1337;SetUserVar=hello=d29ybGQ=\x07")
	if got := term.GetUserVar("hello"); got != "world" {
		t.Errorf("expected 'world', got %q", got)
	}
	all := term.GetUserVars()
	if len(all) != 1 || all["hello"] != "world" {
		t.Errorf("expected one user var 'hello'='world', got %+v", all)
	}
}

func TestDesktopNotificationProvider(t *testing.T) {
	received := ""
	term := newOpenTerminal(80, 24, WithNotification(notifyFunc(func(p *NotificationPayload) string {
		received = p.PayloadType + ":" + string(p.Data)
		return ""
	})))
	term.WriteString("\x1b]9;hello there\x07")
	if received != "body:hello there" {
		t.Errorf("expected 'body:hello there', got %q", received)
	}
}

type notifyFunc func(*NotificationPayload) string

func (f notifyFunc) Notify(p *NotificationPayload) string { return f(p) }
