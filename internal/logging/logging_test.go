package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
		ok   bool
	}{
		{"trace", zerolog.TraceLevel, true},
		{" DEBUG ", zerolog.DebugLevel, true},
		{"info", zerolog.InfoLevel, true},
		{"warning", zerolog.WarnLevel, true},
		{"error", zerolog.ErrorLevel, true},
		{"off", zerolog.Disabled, true},
		{"", zerolog.WarnLevel, false},
		{"loud", zerolog.WarnLevel, false},
	}
	for _, tt := range tests {
		got, ok := ParseLevel(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvLogTimestamp, "false")
	t.Setenv(EnvLogNoColor, "1")
	cfg := DefaultConfig(ProfileRuntime)
	applyEnvOverrides(&cfg)
	if cfg.Level != zerolog.ErrorLevel || cfg.Timestamp || !cfg.NoColor {
		t.Errorf("got %+v", cfg)
	}
}

func TestEnvOverrides_IgnoresGarbage(t *testing.T) {
	t.Setenv(EnvLogTimestamp, "sometimes")
	cfg := DefaultConfig(ProfileRuntime)
	applyEnvOverrides(&cfg)
	if !cfg.Timestamp {
		t.Error("unparseable bool should leave the default")
	}
}

func TestNew_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: zerolog.InfoLevel, NoColor: true}, &buf)
	l.Debug().Msg("hidden")
	l.Info().Str("op", "reveal").Msg("shown")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line leaked: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "op=reveal") {
		t.Errorf("missing info line: %q", out)
	}
}
