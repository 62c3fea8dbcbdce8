package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ardnew/sngc/lang"
	"github.com/ardnew/sngc/log"
)

const grayImage = `HEADER { width 2 height 2 }
IMAGE {
  ff00
  00ff
}
`

// writeSource writes src to a temporary .sng file and returns its path.
func writeSource(t *testing.T, src string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "image.sng")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	return path
}

// captureStdout redirects command output to a buffer for the duration of
// the test.
func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer

	prev := stdout
	stdout = &buf

	t.Cleanup(func() { stdout = prev })

	return &buf
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		source, output, want string
	}{
		{"image.sng", "", "image.png"},
		{"dir/image.sng", "", filepath.Join("dir", "image.png")},
		{"noext", "", "noext.png"},
		{"image.sng", "out.png", "out.png"},
		{"-", "", "-"},
		{"", "", "-"},
		{"-", "file.png", "file.png"},
	}

	for _, tt := range tests {
		if got := outputPath(tt.source, tt.output); got != tt.want {
			t.Errorf("outputPath(%q, %q) = %q, want %q", tt.source, tt.output, got, tt.want)
		}
	}
}

func TestOpenSource_Missing(t *testing.T) {
	_, _, err := openSource(filepath.Join(t.TempDir(), "missing.sng"))
	if !errors.Is(err, ErrOpenSource) {
		t.Errorf("openSource() error = %v, want %v", err, ErrOpenSource)
	}
}

func TestWithOptions(t *testing.T) {
	ctx := WithOptions(context.Background(), lang.WithMaxTokenLength(4))

	_, _, err := compileUnit(ctx, writeSource(t, "HEADER { width 2 height 2 }\n"), nil)
	if !errors.Is(err, lang.ErrLex) {
		t.Errorf("compile with short token bound: error = %v, want lexical error", err)
	}
}

func TestCompileRun(t *testing.T) {
	src := writeSource(t, grayImage)

	c := &Compile{Source: src, Compression: -1}
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Compile.Run() error = %v", err)
	}

	out, err := os.Open(strings.TrimSuffix(src, ".sng") + ".png")
	if err != nil {
		t.Fatal(err)
	}
	defer out.Close()

	img, err := png.Decode(out)
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}

	if b := img.Bounds(); b.Dx() != 2 || b.Dy() != 2 {
		t.Errorf("bounds = %v, want 2x2", b)
	}
}

func TestCompileRun_Stdout(t *testing.T) {
	buf := captureStdout(t)

	c := &Compile{Source: writeSource(t, grayImage), Output: "-"}
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Compile.Run() error = %v", err)
	}

	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG\r\n\x1a\n")) {
		t.Errorf("stdout does not start with the PNG signature: % x", buf.Bytes())
	}
}

func TestCompileRun_NoOutputOnError(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  lang.Kind
	}{
		{"lexical", "HEADER { width 2 height 2 }\nIMAGE { ff00 00", lang.KindLex},
		{"semantic", "IMAGE { 00 }\n", lang.KindSemantic},
		{"codec", "IHDR { width 1 height 1 bitdepth 3 }\nIMAGE { 0 }\n", lang.KindCodec},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := writeSource(t, tt.input)
			dst := filepath.Join(filepath.Dir(src), "out.png")

			err := (&Compile{Source: src, Output: dst}).Run(context.Background())

			var lerr *lang.Error
			if !errors.As(err, &lerr) {
				t.Fatalf("Compile.Run() error = %v, want compile diagnostic", err)
			}

			if lerr.Kind() != tt.kind {
				t.Errorf("kind = %v, want %v", lerr.Kind(), tt.kind)
			}

			if _, err := os.Stat(dst); !os.IsNotExist(err) {
				t.Errorf("output file exists after failed compile (stat error %v)", err)
			}
		})
	}
}

func TestCompileRun_OddHexWarning(t *testing.T) {
	var logs bytes.Buffer

	log.Config(
		log.WithOutput(&logs),
		log.WithFormat(log.FormatText),
		log.WithLevel(log.LevelWarn),
		log.WithPretty(false),
		log.WithTimeLayout("none"),
	)
	t.Cleanup(func() { log.Config(log.WithDefaults(os.Stderr)) })

	src := writeSource(t, "HEADER { width 2 height 1 }\nIMAGE { ff0 }\n")

	if err := (&Compile{Source: src}).Run(context.Background()); err != nil {
		t.Fatalf("Compile.Run() error = %v", err)
	}

	if _, err := os.Stat(strings.TrimSuffix(src, ".sng") + ".png"); err != nil {
		t.Errorf("output not written: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(logs.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d log lines, want 1:\n%s", len(lines), logs.String())
	}

	if !strings.Contains(lines[0], "level=WARN") ||
		!strings.Contains(lines[0], "odd number of hex digits") {
		t.Errorf("log line = %q, want the odd hex digit warning", lines[0])
	}
}

func TestCheckRun(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", grayImage, false},
		{"missing image", "HEADER { width 2 height 2 }\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := writeSource(t, tt.input)

			err := (&Check{Source: src}).Run(context.Background())
			if (err != nil) != tt.wantErr {
				t.Errorf("Check.Run() error = %v, wantErr %v", err, tt.wantErr)
			}

			if _, err := os.Stat(strings.TrimSuffix(src, ".sng") + ".png"); !os.IsNotExist(err) {
				t.Error("check wrote an output file")
			}
		})
	}
}

func TestDumpRun(t *testing.T) {
	tests := []struct {
		format string
		check  func(t *testing.T, out string)
	}{
		{
			format: "yaml",
			check: func(t *testing.T, out string) {
				t.Helper()

				if !strings.Contains(out, "name: IHDR") {
					t.Errorf("YAML dump missing header record:\n%s", out)
				}
			},
		},
		{
			format: "json",
			check: func(t *testing.T, out string) {
				t.Helper()

				var got struct {
					Chunks []struct {
						Name string `json:"name"`
					} `json:"chunks"`
				}

				if err := json.Unmarshal([]byte(out), &got); err != nil {
					t.Fatalf("invalid JSON: %v\n%s", err, out)
				}

				if len(got.Chunks) != 2 || got.Chunks[0].Name != "IHDR" || got.Chunks[1].Name != "IMAGE" {
					t.Errorf("chunks = %+v, want IHDR and IMAGE", got.Chunks)
				}
			},
		},
		{
			format: "sng",
			check: func(t *testing.T, out string) {
				t.Helper()

				if _, err := lang.Compile(context.Background(), strings.NewReader(out), nil); err != nil {
					t.Errorf("SNG dump does not recompile: %v\n%s", err, out)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			buf := captureStdout(t)

			d := &Dump{Format: tt.format, Indent: 2, Source: writeSource(t, grayImage)}
			if err := d.Run(context.Background()); err != nil {
				t.Fatalf("Dump.Run() error = %v", err)
			}

			tt.check(t, buf.String())
		})
	}
}
