package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"

	"github.com/ardnew/sngc/cli/cmd"
	"github.com/ardnew/sngc/lang"
)

func TestMain(m *testing.M) {
	// Keep the user's configuration and cache directories out of reach.
	tmp, err := os.MkdirTemp("", "sngc-cli-test-*")
	if err != nil {
		panic(err)
	}

	os.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "config"))
	os.Setenv("XDG_CACHE_HOME", filepath.Join(tmp, "cache"))

	code := m.Run()

	os.RemoveAll(tmp)
	os.Exit(code)
}

func compileError(t *testing.T, src string) error {
	t.Helper()

	_, err := lang.Compile(context.Background(), strings.NewReader(src), nil,
		lang.WithSource("pic.sng"))
	if err == nil {
		t.Fatalf("compile %q succeeded", src)
	}

	return err
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"io", cmd.ErrOpenSource.Wrap(os.ErrNotExist), ExitFailure},
		{"plain", errors.New("boom"), ExitFailure},
		{"semantic", compileError(t, "IMAGE { 00 }\n"), ExitCompile},
		{"lexical", compileError(t, "IHDR { width 1 height 1 }\nIMAGE { 0"), ExitCompile},
		{"codec", lang.WrapError(lang.KindCodec, lang.Position{Source: "x", Line: 1}, errors.New("bad")), ExitCodec},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestDiagnose(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"compile", compileError(t, "HEADER { width 2 height 2 }\n"), "pic.sng:EOF: no image data\n"},
		{"other", errors.New("boom"), "sngc: boom\n"},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			Diagnose(&buf, tt.err)

			if got := buf.String(); got != tt.want {
				t.Errorf("Diagnose() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLogScan(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		level  logLevel
		format logFormat
		pretty bool
		caller bool
	}{
		{
			name:   "defaults",
			args:   []string{"image.sng"},
			pretty: true,
		},
		{
			name:   "separate values",
			args:   []string{"--log-level", "debug", "--log-format", "json"},
			level:  "debug",
			format: "json",
			pretty: true,
		},
		{
			name:   "assigned values",
			args:   []string{"check", "--log-level=trace", "--no-log-pretty", "--log-caller"},
			level:  "trace",
			pretty: false,
			caller: true,
		},
		{
			name:   "explicit booleans",
			args:   []string{"--log-pretty=false", "--no-log-caller=false"},
			pretty: false,
			caller: true,
		},
		{
			name:   "after terminator",
			args:   []string{"--", "--log-level=error"},
			pretty: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := logConfig{Pretty: true}
			f.scan(tt.args)

			if f.Level != tt.level || f.Format != tt.format ||
				f.Pretty != tt.pretty || f.Caller != tt.caller {
				t.Errorf("scan(%q) = %+v", tt.args, f)
			}
		})
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.sng")
	if err := os.WriteFile(good, []byte("HEADER { width 1 height 1 }\nIMAGE { 7f }\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	bad := filepath.Join(dir, "bad.sng")
	if err := os.WriteFile(bad, []byte("HEADER { width 1 height 1 }\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	exit := func(code int) { t.Fatalf("unexpected exit(%d)", code) }

	t.Run("default compile", func(t *testing.T) {
		if err := Run(context.Background(), exit, good); err != nil {
			t.Fatalf("Run() error = %v", err)
		}

		if _, err := os.Stat(filepath.Join(dir, "good.png")); err != nil {
			t.Errorf("output not written: %v", err)
		}
	})

	t.Run("explicit output", func(t *testing.T) {
		out := filepath.Join(dir, "other.png")

		if err := Run(context.Background(), exit, "compile", "-o", out, good); err != nil {
			t.Fatalf("Run() error = %v", err)
		}

		if _, err := os.Stat(out); err != nil {
			t.Errorf("output not written: %v", err)
		}
	})

	t.Run("check failure", func(t *testing.T) {
		err := Run(context.Background(), exit, "check", bad)
		if got := ExitCode(err); got != ExitCompile {
			t.Errorf("ExitCode(%v) = %d, want %d", err, got, ExitCompile)
		}
	})

	t.Run("max token", func(t *testing.T) {
		err := Run(context.Background(), exit, "--max-token=3", "check", good)
		if !errors.Is(err, lang.ErrLex) {
			t.Errorf("Run() error = %v, want lexical error", err)
		}
	})

	t.Run("missing source", func(t *testing.T) {
		err := Run(context.Background(), exit, "check", filepath.Join(dir, "missing.sng"))
		if got := ExitCode(err); got != ExitFailure {
			t.Errorf("ExitCode(%v) = %d, want %d", err, got, ExitFailure)
		}
	})
}

func TestVars_Cache(t *testing.T) {
	var flags struct {
		Dir    string `default:"${cache}/pprof"`
		Config string `default:"${config}"`
	}

	parser, err := kong.New(&flags, new(CLI).vars("config.yaml"))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := parser.Parse(nil); err != nil {
		t.Fatal(err)
	}

	if want := cacheDir() + "/pprof"; flags.Dir != want {
		t.Errorf("Dir = %q, want %q", flags.Dir, want)
	}

	if flags.Config != "config.yaml" {
		t.Errorf("Config = %q, want %q", flags.Config, "config.yaml")
	}
}
