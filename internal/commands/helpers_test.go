package commands

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/diogo/biotutor/internal/api"
	"github.com/diogo/biotutor/internal/tui"
)

type fakeTUI struct {
	called  bool
	gateway api.GatewayInterface
	cfg     tui.ChatConfig
	err     error
}

func (f *fakeTUI) RunChat(gateway api.GatewayInterface, cfg tui.ChatConfig) error {
	f.called = true
	f.gateway = gateway
	f.cfg = cfg
	return f.err
}

type testEnv struct {
	deps    *Dependencies
	gw      *api.MockGateway
	ui      *fakeTUI
	stdout  *bytes.Buffer
	stderr  *bytes.Buffer
	baseURL string
	copied  []string
}

// newTestEnv isolates HOME and the environment so settings come only from
// what the test sets.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("API_BASE", "")
	t.Setenv("BIOTUTOR_THEME", "")
	t.Setenv("BIOTUTOR_LOG_FILE", filepath.Join(t.TempDir(), "biotutor.log"))
	t.Setenv("GLAMOUR_STYLE", "notty")

	env := &testEnv{
		gw:     &api.MockGateway{},
		ui:     &fakeTUI{},
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
	}
	env.deps = &Dependencies{
		NewGateway: func(baseURL string, _ *zap.Logger) (api.GatewayInterface, error) {
			env.baseURL = baseURL
			return env.gw, nil
		},
		TUI:        env.ui,
		Stdin:      strings.NewReader(""),
		Stdout:     env.stdout,
		Stderr:     env.stderr,
		StdinPiped: func() bool { return false },
		StdoutTTY:  func() bool { return false },
		Clipboard: func(s string) error {
			env.copied = append(env.copied, s)
			return nil
		},
	}
	return env
}

func (e *testEnv) run(args ...string) error {
	return run(e.deps, args)
}

// syncRecorder is a zap sink that counts Sync calls.
type syncRecorder struct {
	bytes.Buffer
	syncs int
}

func (s *syncRecorder) Sync() error {
	s.syncs++
	return nil
}

// recordLogs routes the command logger into a syncRecorder.
func (e *testEnv) recordLogs() *syncRecorder {
	rec := &syncRecorder{}
	e.deps.NewLogger = func(string, bool) (*zap.Logger, error) {
		core := zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), rec, zapcore.DebugLevel)
		return zap.New(core), nil
	}
	return rec
}

var errBoom = errors.New("boom")
