package logging

import (
	"context"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		want Level
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"bogus", LevelInfo},
		{"", LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.name); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	if ParseFormat("json") != FormatJSON {
		t.Error("ParseFormat(json) != FormatJSON")
	}
	if ParseFormat("text") != FormatText {
		t.Error("ParseFormat(text) != FormatText")
	}
	if ParseFormat("bogus") != FormatText {
		t.Error("ParseFormat(bogus) != FormatText")
	}
}

func TestScanIDContext(t *testing.T) {
	ctx := context.Background()
	if got := GetScanID(ctx); got != "" {
		t.Errorf("GetScanID on empty context = %q", got)
	}

	ctx = WithScanID(ctx, "scan-42")
	if got := GetScanID(ctx); got != "scan-42" {
		t.Errorf("GetScanID = %q, want %q", got, "scan-42")
	}

	if logger := LoggerFromContext(ctx); logger == nil {
		t.Fatal("LoggerFromContext returned nil")
	}
}

func TestInitLogger(t *testing.T) {
	InitLogger(LevelDebug, FormatJSON)
	if GetLogger() == nil {
		t.Fatal("GetLogger returned nil after InitLogger")
	}
	// Restore default configuration for other tests.
	InitLogger(LevelInfo, FormatText)
}
