package lang

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/ardnew/sngc/log"
)

func decodeString(t *testing.T, input string, mode DataMode, logger log.Logger) ([]byte, error) {
	t.Helper()

	return decodePixels(NewLexer(strings.NewReader(input), "test", 0, logger), mode)
}

func TestDecodePixels(t *testing.T) {
	alphabet := make([]byte, 62)
	for i := range alphabet {
		alphabet[i] = byte(i)
	}

	tests := []struct {
		name  string
		input string
		mode  DataMode
		want  []byte
	}{
		{"compact alphabet", compactAlphabet + "}", ModeCompact, alphabet},
		{"compact whitespace", "0 1\n\t2 }", ModeCompact, []byte{0, 1, 2}},
		{"hex", "00ff7f}", ModeHex, []byte{0x00, 0xff, 0x7f}},
		{"hex mixed case", "aB Cd\n}", ModeHex, []byte{0xab, 0xcd}},
		{"hex split pair", "0\nf}", ModeHex, []byte{0x0f}},
		{"empty", " \n}", ModeHex, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeString(t, tt.input, tt.mode, log.Logger{})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if !bytes.Equal(got, tt.want) {
				t.Errorf("decoded %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecodePixels_OddHexDigits(t *testing.T) {
	var buf bytes.Buffer

	logger := log.Make(&buf,
		log.WithLevel(log.LevelWarn),
		log.WithFormat(log.FormatJSON),
		log.WithPretty(false))

	got, err := decodeString(t, "0ff}", ModeHex, logger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if want := []byte{0x0f, 0xf0}; !bytes.Equal(got, want) {
		t.Errorf("decoded %x, want %x", got, want)
	}

	if !strings.Contains(buf.String(), "odd number of hex digits") {
		t.Errorf("missing warning, log output: %q", buf.String())
	}
}

func TestDecodePixels_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		mode  DataMode
		want  error
		msg   string
	}{
		{"eof", "0011", ModeHex, ErrLex, "test:1: unexpected EOF in data segment"},
		{"bad hex", "0g}", ModeHex, ErrSyntax, "test:1: bad character 'g' in hex data block"},
		{"bad compact", "\nab-}", ModeCompact, ErrSyntax, "test:2: bad character '-' in compact data block"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeString(t, tt.input, tt.mode, log.Logger{})
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}

			if err.Error() != tt.msg {
				t.Errorf("error = %q, want %q", err.Error(), tt.msg)
			}
		})
	}
}

func TestDecodePixels_Growth(t *testing.T) {
	const n = 5*MemoryQuantum + 17

	var sb strings.Builder
	for i := range n {
		sb.WriteByte(compactAlphabet[i%62])
	}

	sb.WriteByte('}')

	got, err := decodeString(t, sb.String(), ModeCompact, log.Logger{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got) != n {
		t.Fatalf("decoded %d bytes, want %d", len(got), n)
	}

	for i, v := range got {
		if v != byte(i%62) {
			t.Fatalf("byte %d = %d, want %d", i, v, i%62)
		}
	}
}

func TestPixelBuffer_Quantum(t *testing.T) {
	var b pixelBuffer

	for i := range MemoryQuantum + 1 {
		b.append(byte(i))
	}

	if cap(b.data) != 2*MemoryQuantum {
		t.Errorf("capacity = %d, want %d", cap(b.data), 2*MemoryQuantum)
	}
}
