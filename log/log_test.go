package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"trace", LevelTrace},
		{"TRACE", LevelTrace},
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"WARN", LevelWarn},
		{"error", LevelError},
		{"bogus", DefaultLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"json", FormatJSON},
		{" JSON ", FormatJSON},
		{"text", FormatText},
		{"xml", DefaultFormat},
	}

	for _, tt := range tests {
		if got := ParseFormat(tt.in); got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestConfig_Options(t *testing.T) {
	c := apply(config{},
		WithLevel(LevelDebug),
		WithFormat(FormatJSON),
		WithCaller(true),
		WithPretty(false),
	)

	if c.level != LevelDebug || c.format != FormatJSON || !c.caller || c.pretty {
		t.Errorf("apply() = %+v", c)
	}

	d := apply(c, WithDefaults(nil))
	if d.level != DefaultLevel || d.format != DefaultFormat || d.caller || !d.pretty {
		t.Errorf("WithDefaults() = %+v", d)
	}
}

func TestFormatTime(t *testing.T) {
	now := time.Date(2023, 10, 15, 14, 30, 45, 123456789, time.UTC)

	tests := []struct {
		layout string
		want   string
	}{
		{"RFC3339", "2023-10-15T14:30:45Z"},
		{"RFC3339Nano", "2023-10-15T14:30:45.123456789Z"},
		{"kitchen", "2:30PM"},
		{"2006-01-02", "2023-10-15"},
		{"none", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := makeFormatTimeFunc(tt.layout)(now); got != tt.want {
			t.Errorf("layout %q: got %q, want %q", tt.layout, got, tt.want)
		}
	}
}

func TestLogger_JSONLevels(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithFormat(FormatJSON), WithLevel(LevelWarn))

	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("shown", slog.Int("n", 1))
	logger.Error("shown")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d records, want 2:\n%s", len(lines), buf.String())
	}

	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatal(err)
	}

	if rec["level"] != "WARN" || rec["msg"] != "shown" || rec["n"] != float64(1) {
		t.Errorf("record = %v", rec)
	}
}

func TestLogger_TraceLevelName(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithFormat(FormatJSON), WithLevel(LevelTrace))
	logger.Trace("token", slog.String("text", "IHDR"))

	if !strings.Contains(buf.String(), `"level":"TRACE"`) {
		t.Errorf("trace record = %s", buf.String())
	}

	if !logger.Enabled(context.Background(), LevelTrace) {
		t.Error("trace level not enabled")
	}
}

func TestLogger_Pretty(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithTimeLayout("none")).
		With(slog.String("source", "pic.sng"))

	logger.Warn("odd number of hex digits", slog.Int("line", 3), slog.Bool("padded", true))

	// Output to a non-terminal carries no escape sequences.
	want := "WARN  odd number of hex digits source=pic.sng line=3 padded=true\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestLogger_ZeroValue(t *testing.T) {
	var logger Logger

	logger.Error("discarded")
	logger = logger.With(slog.String("k", "v"))

	if logger.Enabled(context.Background(), LevelError) {
		t.Error("zero Logger reports enabled")
	}

	if logger.Level() != DefaultLevel || logger.Format() != DefaultFormat {
		t.Errorf("zero Logger level/format = %v/%v", logger.Level(), logger.Format())
	}
}

func TestLogger_Wrap(t *testing.T) {
	var buf bytes.Buffer

	base := Make(&buf, WithFormat(FormatJSON))
	wrapped := base.Wrap(WithLevel(LevelDebug))

	if wrapped.Format() != FormatJSON || wrapped.Level() != LevelDebug {
		t.Errorf("Wrap() format/level = %v/%v", wrapped.Format(), wrapped.Level())
	}

	if base.Level() != DefaultLevel {
		t.Errorf("Wrap() modified receiver level to %v", base.Level())
	}
}
