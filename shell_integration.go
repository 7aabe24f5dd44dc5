package vtterm

// ShellIntegrationMark identifies a kind of OSC 133 semantic prompt mark.
type ShellIntegrationMark int

const (
	PromptStart ShellIntegrationMark = iota
	CommandStart
	CommandExecuted
	CommandFinished
)

// PromptMark records one shell integration mark (OSC 133) at the row it
// was emitted on. Row is absolute, counting from the oldest scrollback
// line, so a mark's position survives later scrolling.
type PromptMark struct {
	Type     ShellIntegrationMark
	Row      int
	ExitCode int
}

// ShellIntegrationProvider handles OSC 133 prompt marks as they occur.
type ShellIntegrationProvider interface {
	OnMark(mark ShellIntegrationMark, exitCode int)
}

// NoopShellIntegration ignores all shell integration events.
type NoopShellIntegration struct{}

func (NoopShellIntegration) OnMark(mark ShellIntegrationMark, exitCode int) {}

// shellIntegrationMark records mark at the cursor's current absolute row
// and notifies the configured provider. Called with the lock held.
func (t *Terminal) shellIntegrationMark(mark ShellIntegrationMark, exitCode int) {
	absoluteRow := t.cursor.Row + t.primaryBuffer.ScrollbackLen()
	t.promptMarks = append(t.promptMarks, PromptMark{Type: mark, Row: absoluteRow, ExitCode: exitCode})
	if t.shellIntegrationProvider != nil {
		t.shellIntegrationProvider.OnMark(mark, exitCode)
	}
}

// PromptMarks returns a copy of all recorded prompt marks.
func (t *Terminal) PromptMarks() []PromptMark {
	t.mu.RLock()
	defer t.mu.RUnlock()
	marks := make([]PromptMark, len(t.promptMarks))
	copy(marks, t.promptMarks)
	return marks
}

// ClearPromptMarks discards all recorded prompt marks.
func (t *Terminal) ClearPromptMarks() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.promptMarks = nil
}

// NextPromptRow returns the absolute row of the next mark after
// currentAbsRow, optionally filtered to markType (pass -1 for any type).
// Returns -1 if none exists.
func (t *Terminal) NextPromptRow(currentAbsRow int, markType ShellIntegrationMark) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, mark := range t.promptMarks {
		if mark.Row > currentAbsRow && (markType == -1 || mark.Type == markType) {
			return mark.Row
		}
	}
	return -1
}

// PrevPromptRow returns the absolute row of the previous mark before
// currentAbsRow, optionally filtered to markType. Returns -1 if none
// exists.
func (t *Terminal) PrevPromptRow(currentAbsRow int, markType ShellIntegrationMark) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for i := len(t.promptMarks) - 1; i >= 0; i-- {
		mark := t.promptMarks[i]
		if mark.Row < currentAbsRow && (markType == -1 || mark.Type == markType) {
			return mark.Row
		}
	}
	return -1
}

// GetLastCommandOutput returns the text between the most recent
// CommandExecuted and CommandFinished marks, or "" if no complete pair is
// recorded.
func (t *Terminal) GetLastCommandOutput() string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var executed, finished *PromptMark
	for i := len(t.promptMarks) - 1; i >= 0; i-- {
		mark := &t.promptMarks[i]
		if finished == nil && mark.Type == CommandFinished {
			finished = mark
		}
		if executed == nil && mark.Type == CommandExecuted {
			executed = mark
		}
		if executed != nil && finished != nil {
			if executed.Row < finished.Row {
				break
			}
			executed, finished = nil, nil
		}
	}
	if executed == nil || finished == nil {
		return ""
	}
	return t.extractTextBetweenRows(executed.Row, finished.Row)
}

func (t *Terminal) extractTextBetweenRows(startRow, endRow int) string {
	scrollbackLen := t.primaryBuffer.ScrollbackLen()
	var lines []string
	for absRow := startRow; absRow < endRow; absRow++ {
		var line string
		if absRow < scrollbackLen {
			if cells := t.primaryBuffer.ScrollbackLine(absRow); cells != nil {
				line = cellsToString(cells)
			}
		} else if row := absRow - scrollbackLen; row >= 0 && row < t.rows {
			line = t.activeBuffer.LineContent(row)
		}
		lines = append(lines, line)
	}
	lastNonEmpty := -1
	for i, line := range lines {
		if line != "" {
			lastNonEmpty = i
		}
	}
	if lastNonEmpty < 0 {
		return ""
	}
	result := ""
	for i := 0; i <= lastNonEmpty; i++ {
		if i > 0 {
			result += "\n"
		}
		result += lines[i]
	}
	return result
}

func cellsToString(cells []Cell) string {
	lastNonSpace := -1
	for i := len(cells) - 1; i >= 0; i-- {
		if cells[i].IsPadding() {
			continue
		}
		if cells[i].Codepoint != ' ' && cells[i].Codepoint != 0 {
			lastNonSpace = i
			break
		}
	}
	if lastNonSpace < 0 {
		return ""
	}
	var runes []rune
	for i := 0; i <= lastNonSpace; i++ {
		cell := cells[i]
		if cell.IsPadding() {
			continue
		}
		if cell.Codepoint == 0 {
			runes = append(runes, ' ')
		} else {
			runes = append(runes, cell.Runes()...)
		}
	}
	return string(runes)
}

// WorkingDirectory returns the most recently reported working directory
// URI (OSC 7), or "" if none has been reported.
func (t *Terminal) WorkingDirectory() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.workingDir
}

// setWorkingDirectory records uri as the current working directory.
// Called with the lock held.
func (t *Terminal) setWorkingDirectory(uri string) {
	t.workingDir = uri
}

// SetUserVar records a named user variable (OSC 1337 SetUserVar), as used
// by shell integration scripts to surface arbitrary state to a host.
func (t *Terminal) SetUserVar(name, value string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.setUserVarLocked(name, value)
}

// setUserVarLocked is the unlocked core of SetUserVar, called both from the
// public wrapper and from OscDispatch, which already holds the lock for the
// duration of Write.
func (t *Terminal) setUserVarLocked(name, value string) {
	if t.userVars == nil {
		t.userVars = make(map[string]string)
	}
	t.userVars[name] = value
	if t.userVarProvider != nil {
		t.userVarProvider.SetUserVar(name, value)
	}
}

// GetUserVar returns the value of a previously set user variable, or "" if
// unset.
func (t *Terminal) GetUserVar(name string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.userVars[name]
}

// GetUserVars returns a copy of all currently set user variables.
func (t *Terminal) GetUserVars() map[string]string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[string]string, len(t.userVars))
	for k, v := range t.userVars {
		out[k] = v
	}
	return out
}

// DesktopNotification delivers payload to the configured notification
// provider (OSC 9 / OSC 777) and writes back any response it returns (used
// to answer capability queries). Providers are fixed at construction time,
// so this reads t.notificationProvider without holding the lock; it is
// called both from OscDispatch (already inside Write's lock) and directly
// by host code.
func (t *Terminal) DesktopNotification(payload *NotificationPayload) {
	if t.notificationProvider == nil {
		return
	}
	if response := t.notificationProvider.Notify(payload); response != "" {
		t.writeResponseString(response)
	}
}
