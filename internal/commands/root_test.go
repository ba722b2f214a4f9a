package commands

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/diogo/biotutor/internal/config"
	"github.com/diogo/biotutor/internal/models"
)

func TestRootCommand_Metadata(t *testing.T) {
	cmd := NewRootCmd(NewDependencies())

	if cmd.Use != "biotutor [question]" {
		t.Errorf("Expected use 'biotutor [question]', got %s", cmd.Use)
	}
	if cmd.Short == "" || cmd.Long == "" {
		t.Error("descriptions should not be empty")
	}

	want := map[string]bool{"chat": false, "ask": false, "upload": false, "config": false}
	for _, sub := range cmd.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}

	for _, flag := range []string{"api-base", "verbose"} {
		if cmd.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("missing persistent flag --%s", flag)
		}
	}
	for _, flag := range []string{"file", "raw", "copy"} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("missing flag --%s", flag)
		}
	}
}

func TestRootCommand_Version(t *testing.T) {
	env := newTestEnv(t)

	if err := env.run("--version"); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !strings.Contains(env.stdout.String(), Version) {
		t.Errorf("expected version in output, got %q", env.stdout.String())
	}
	if env.gw.QueryCount() != 0 {
		t.Error("version should not contact the backend")
	}
}

func TestRootCommand_PositionalQuestion(t *testing.T) {
	env := newTestEnv(t)
	env.gw.AnswerVal = &models.Answer{Text: "Glucose and oxygen."}

	if err := env.run("What does respiration consume?"); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(env.gw.Queries) != 1 || env.gw.Queries[0] != "What does respiration consume?" {
		t.Errorf("unexpected queries: %v", env.gw.Queries)
	}
	if !strings.Contains(env.stdout.String(), "Glucose and oxygen.") {
		t.Errorf("expected answer in output, got %q", env.stdout.String())
	}
	if env.ui.called {
		t.Error("one-shot query should not open the chat")
	}
}

func TestRootCommand_QuestionSources(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, env *testEnv) []string
		want  string
	}{
		{
			name: "stdin",
			setup: func(t *testing.T, env *testEnv) []string {
				env.deps.StdinPiped = func() bool { return true }
				env.deps.Stdin = strings.NewReader("Define osmosis.\n")
				return nil
			},
			want: "Define osmosis.",
		},
		{
			name: "file flag",
			setup: func(t *testing.T, env *testEnv) []string {
				path := filepath.Join(t.TempDir(), "q.md")
				if err := os.WriteFile(path, []byte("  What is a gene?  "), 0o644); err != nil {
					t.Fatal(err)
				}
				return []string{"-f", path}
			},
			want: "What is a gene?",
		},
		{
			name: "empty stdin falls back to argument",
			setup: func(t *testing.T, env *testEnv) []string {
				env.deps.StdinPiped = func() bool { return true }
				env.deps.Stdin = strings.NewReader("   ")
				return []string{"What is DNA?"}
			},
			want: "What is DNA?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.gw.AnswerVal = &models.Answer{Text: "ok"}

			if err := env.run(tt.setup(t, env)...); err != nil {
				t.Fatalf("Execute failed: %v", err)
			}
			if len(env.gw.Queries) != 1 || env.gw.Queries[0] != tt.want {
				t.Errorf("queries = %v, want [%q]", env.gw.Queries, tt.want)
			}
		})
	}
}

func TestRootCommand_NoInputOpensChatOnTTY(t *testing.T) {
	env := newTestEnv(t)
	env.deps.StdoutTTY = func() bool { return true }

	if err := env.run(); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !env.ui.called {
		t.Fatal("expected the chat to start")
	}
}

func TestRootCommand_NoInputWithoutTTYShowsHelp(t *testing.T) {
	env := newTestEnv(t)

	if err := env.run(); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if env.ui.called {
		t.Error("chat should not start without a terminal")
	}
	if !strings.Contains(env.stdout.String(), "Usage:") {
		t.Errorf("expected help output, got %q", env.stdout.String())
	}
}

func TestRootCommand_APIBasePrecedence(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		env     string
		flag    string
		want    string
		wantErr bool
	}{
		{name: "default", want: config.DefaultAPIBase},
		{name: "config file", file: "http://file:9000", want: "http://file:9000"},
		{name: "env beats file", file: "http://file:9000", env: "http://env:9000/", want: "http://env:9000"},
		{name: "flag beats env", file: "http://file:9000", env: "http://env:9000", flag: "https://flag.example.edu", want: "https://flag.example.edu"},
		{name: "invalid flag", flag: "ftp://nope", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.gw.AnswerVal = &models.Answer{Text: "ok"}

			if tt.file != "" {
				cfg := config.DefaultConfig()
				cfg.APIBase = tt.file
				if err := config.SaveConfig(cfg); err != nil {
					t.Fatal(err)
				}
			}
			t.Setenv("API_BASE", tt.env)

			args := []string{"ask", "hi"}
			if tt.flag != "" {
				args = append(args, "--api-base", tt.flag)
			}
			err := env.run(args...)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Execute failed: %v", err)
			}
			if env.baseURL != tt.want {
				t.Errorf("base URL = %q, want %q", env.baseURL, tt.want)
			}
		})
	}
}

func TestReadQuestion_MissingFile(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := readQuestion(env.deps, filepath.Join(t.TempDir(), "missing.md"), nil)
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected wrapped not-exist error, got %v", err)
	}
}
