package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewWarningLabel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, DefaultOptions())

	logger.Warn("config.hmr expected boolean")

	got := strings.TrimSpace(buf.String())
	if !strings.HasPrefix(got, "Warning: ") {
		t.Errorf("expected Warning: prefix, got %q", got)
	}
	if !strings.Contains(got, "config.hmr expected boolean") {
		t.Errorf("expected message in output, got %q", got)
	}
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Level = log.ErrorLevel
	logger := New(&buf, opts)

	logger.Warn("hidden")
	logger.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected no output below error level, got %q", buf.String())
	}
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	logger.Warn("dropped")
	logger.Error("dropped")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    log.Level
		wantErr bool
	}{
		{"", log.InfoLevel, false},
		{"debug", log.DebugLevel, false},
		{" WARN ", log.WarnLevel, false},
		{"error", log.ErrorLevel, false},
		{"loud", log.InfoLevel, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q): got %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseFormatter(t *testing.T) {
	tests := []struct {
		in      string
		want    log.Formatter
		wantErr bool
	}{
		{"", log.TextFormatter, false},
		{"json", log.JSONFormatter, false},
		{"LOGFMT", log.LogfmtFormatter, false},
		{"xml", log.TextFormatter, true},
	}
	for _, tt := range tests {
		got, err := ParseFormatter(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormatter(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormatter(%q): got %v, want %v", tt.in, got, tt.want)
		}
	}
}
