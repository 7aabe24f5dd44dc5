package vtterm

import "testing"

type mockAddon struct {
	activated *Terminal
	disposed  bool
}

func (a *mockAddon) Activate(t *Terminal) { a.activated = t }
func (a *mockAddon) Dispose()             { a.disposed = true }

func TestLoadAddonActivatesWithTerminal(t *testing.T) {
	term := newOpenTerminal(10, 5)
	addon := &mockAddon{}
	term.LoadAddon(addon)
	if addon.activated != term {
		t.Error("expected addon to be activated with the owning terminal")
	}
}

func TestDisposeTornDownAddons(t *testing.T) {
	term := newOpenTerminal(10, 5)
	addon := &mockAddon{}
	term.LoadAddon(addon)
	term.Dispose()
	if !addon.disposed {
		t.Error("expected addon to be disposed when the terminal is disposed")
	}
}

func TestDisposeIsSafeToCallTwice(t *testing.T) {
	term := newOpenTerminal(10, 5)
	addon := &mockAddon{}
	term.LoadAddon(addon)
	term.Dispose()
	term.Dispose()
	if !addon.disposed {
		t.Error("expected addon disposed after first Dispose call")
	}
}
