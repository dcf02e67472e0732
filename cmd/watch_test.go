package cmd

import (
	"strings"
	"testing"
)

func TestWatchCommand_Flags(t *testing.T) {
	flags := watchCmd.Flags()

	tests := []struct {
		name     string
		flagType string
	}{
		{"ocr", "bool"},
		{"interval", "int"},
		{"option", "string"},
		{"diagnostic", "bool"},
	}

	for _, tt := range tests {
		f := flags.Lookup(tt.name)
		if f == nil {
			t.Errorf("expected flag %q not found", tt.name)
			continue
		}
		if f.Value.Type() != tt.flagType {
			t.Errorf("flag %q: expected type %q, got %q", tt.name, tt.flagType, f.Value.Type())
		}
	}
}

func TestPreviewLines_Truncates(t *testing.T) {
	text := strings.Repeat("x", 400)
	lines := previewLines(text, 5)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if !strings.HasSuffix(lines[0], "...") {
		t.Error("long text should be truncated with an ellipsis")
	}
	if len(lines[0]) != 303 {
		t.Errorf("expected 303 chars after truncation, got %d", len(lines[0]))
	}
}

func TestPreviewLines_CapsLineCount(t *testing.T) {
	text := "a\nb\nc\nd\ne\nf\ng"
	lines := previewLines(text, 5)
	if len(lines) != 5 {
		t.Errorf("expected 5 lines, got %d", len(lines))
	}
	if lines[0] != "a" || lines[4] != "e" {
		t.Errorf("unexpected preview lines: %v", lines)
	}
}
