package cmd

import (
	"testing"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	expected := []string{
		"list", "monitor", "focus", "minimize", "unminimize", "close",
		"move", "resize", "watch", "screenshot", "gui", "serve",
	}
	commands := rootCmd.Commands()

	found := make(map[string]bool)
	for _, c := range commands {
		found[c.Name()] = true
	}

	for _, name := range expected {
		if !found[name] {
			t.Errorf("expected subcommand %q not found", name)
		}
	}
}

func TestRootCommand_Version(t *testing.T) {
	if rootCmd.Version == "" {
		t.Error("root command version should be set")
	}
}

func TestParseIndex(t *testing.T) {
	tests := []struct {
		arg     string
		want    int
		wantErr bool
	}{
		{"1", 1, false},
		{"42", 42, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"two", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := parseIndex(tt.arg)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseIndex(%q): error = %v, wantErr = %v", tt.arg, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseIndex(%q) = %d, want %d", tt.arg, got, tt.want)
		}
	}
}

func TestParseCoords(t *testing.T) {
	tests := []struct {
		a, b    string
		wantX   int
		wantY   int
		wantErr bool
	}{
		{"100", "200", 100, 200, false},
		{"-50", "0", -50, 0, false},
		{"abc", "200", 0, 0, true},
		{"100", "", 0, 0, true},
	}

	for _, tt := range tests {
		x, y, err := parseCoords(tt.a, tt.b, "coordinates")
		if (err != nil) != tt.wantErr {
			t.Errorf("parseCoords(%q, %q): error = %v, wantErr = %v", tt.a, tt.b, err, tt.wantErr)
			continue
		}
		if err == nil && (x != tt.wantX || y != tt.wantY) {
			t.Errorf("parseCoords(%q, %q) = (%d, %d), want (%d, %d)", tt.a, tt.b, x, y, tt.wantX, tt.wantY)
		}
	}
}
