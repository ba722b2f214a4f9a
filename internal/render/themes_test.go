package render

import (
	"strings"
	"testing"
)

func TestStandardStyle(t *testing.T) {
	tests := []struct {
		name string
		want string
		ok   bool
	}{
		{"dark", "dark", true},
		{"light", "light", true},
		{"tokyonight", "tokyo-night", true},
		{"tokyo-night", "tokyo-night", true},
		{"dracula", "dracula", true},
		{"notty", "notty", true},
		{"ascii", "ascii", true},
		{"/home/me/style.json", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := standardStyle(tt.name)
			if ok != tt.ok || got != tt.want {
				t.Errorf("standardStyle(%q) = (%q, %v), want (%q, %v)", tt.name, got, ok, tt.want, tt.ok)
			}
			if IsBuiltinStyle(tt.name) != tt.ok {
				t.Errorf("IsBuiltinStyle(%q) = %v", tt.name, !tt.ok)
			}
		})
	}
}

func TestAvailableThemesAreBuiltin(t *testing.T) {
	for _, name := range ThemeNames() {
		if !IsBuiltinStyle(name) {
			t.Errorf("theme %q is listed but not a builtin style", name)
		}
	}
}

func TestMarkdownWithEachTheme(t *testing.T) {
	for _, name := range ThemeNames() {
		t.Run(name, func(t *testing.T) {
			out, err := Markdown("The **mitochondria** is the powerhouse of the cell.", DefaultOptions().WithStyle(name))
			if err != nil {
				t.Fatalf("Markdown() error: %v", err)
			}
			if !strings.Contains(out, "mitochondria") {
				t.Errorf("output missing text: %q", out)
			}
		})
	}
}
