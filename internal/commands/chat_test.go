package commands

import (
	"errors"
	"testing"
)

func TestChatCommand_RunsTUI(t *testing.T) {
	env := newTestEnv(t)
	t.Setenv("BIOTUTOR_THEME", "nord")

	if err := env.run("chat", "--api-base", "http://tutor.local:8000/"); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if !env.ui.called {
		t.Fatal("expected the chat TUI to run")
	}
	if env.ui.gateway != env.gw {
		t.Error("TUI should receive the gateway")
	}
	if env.baseURL != "http://tutor.local:8000" {
		t.Errorf("base URL = %q", env.baseURL)
	}
	if env.ui.cfg.Theme != "nord" {
		t.Errorf("theme = %q, want nord", env.ui.cfg.Theme)
	}
	if env.ui.cfg.Logger == nil {
		t.Error("TUI should receive the logger")
	}
	if env.ui.cfg.Render.Style != "notty" {
		t.Errorf("render style = %q, want GLAMOUR_STYLE override", env.ui.cfg.Render.Style)
	}
	if !env.gw.CloseCalled {
		t.Error("gateway should be closed after the chat ends")
	}
}

func TestChatCommand_RejectsArgs(t *testing.T) {
	env := newTestEnv(t)

	if err := env.run("chat", "extra"); err == nil {
		t.Fatal("expected an argument error")
	}
	if env.ui.called {
		t.Error("TUI should not run")
	}
}

func TestChatCommand_PropagatesTUIError(t *testing.T) {
	env := newTestEnv(t)
	env.ui.err = errBoom

	if err := env.run("chat"); !errors.Is(err, errBoom) {
		t.Fatalf("expected TUI error, got %v", err)
	}
}
