package lang

import (
	"errors"
	"io"
	"log/slog"
	"strconv"
	"unicode"
)

// MemoryQuantum is the increment by which a pixel buffer grows.
const MemoryQuantum = 1024

// DataMode selects the sub-encoding of a pixel data block.
type DataMode int

const (
	// ModeHex packs two hexadecimal digits, high nibble first, into each byte.
	ModeHex DataMode = iota

	// ModeCompact maps each character of
	// 0-9, a-z, A-Z to one byte valued 0 through 61.
	ModeCompact
)

// String returns a string representation of the data mode.
func (m DataMode) String() string {
	switch m {
	case ModeHex:
		return "hex"
	case ModeCompact:
		return "compact"
	default:
		return "DataMode(" + strconv.Itoa(int(m)) + ")"
	}
}

// pixelBuffer is an append-only byte buffer growing by [MemoryQuantum].
type pixelBuffer struct {
	data []byte
}

func (b *pixelBuffer) append(v byte) {
	if len(b.data) == cap(b.data) {
		grown := make([]byte, len(b.data), cap(b.data)+MemoryQuantum)
		copy(grown, b.data)
		b.data = grown
	}

	b.data = append(b.data, v)
}

// decodePixels reads raw characters from lx up to the closing '}' of a data
// block, whose opening '{' has already been consumed. Whitespace is ignored.
//
// In hex mode an odd number of digits leaves the final byte with its low
// nibble zero; this is reported at warn level.
func decodePixels(lx *Lexer, mode DataMode) ([]byte, error) {
	var (
		buf    pixelBuffer
		high   byte
		half   bool
		digits int
	)

	lx.logger.Trace("collecting data", slog.String("mode", mode.String()))

	for {
		c, err := lx.ReadRaw()
		if errors.Is(err, io.EOF) {
			return nil, ErrLex.Errorf(lx.Position(), "unexpected EOF in data segment")
		} else if err != nil {
			return nil, WrapError(KindLex, lx.Position(), err)
		}

		if c == '}' {
			break
		}

		if unicode.IsSpace(c) {
			continue
		}

		switch mode {
		case ModeCompact:
			v, ok := compactValue(c)
			if !ok {
				return nil, ErrSyntax.Errorf(lx.Position(),
					"bad character %q in compact data block", c)
			}

			buf.append(v)

		case ModeHex:
			v, ok := hexValue(c)
			if !ok {
				return nil, ErrSyntax.Errorf(lx.Position(),
					"bad character %q in hex data block", c)
			}

			digits++

			if half {
				buf.append(high | v)
			} else {
				high = v << 4
			}

			half = !half
		}
	}

	if half {
		buf.append(high)
		lx.logger.Warn("odd number of hex digits; last nibble zero-filled",
			slog.String("position", lx.Position().String()),
			slog.Int("digits", digits))
	}

	return buf.data, nil
}

// compactValue maps 0-9 to 0-9, a-z to 10-35 and A-Z to 36-61.
func compactValue(c rune) (byte, bool) {
	switch {
	case isDigit(c):
		return byte(c - '0'), true
	case isLower(c):
		return byte(c-'a') + 10, true
	case isUpper(c):
		return byte(c-'A') + 36, true
	default:
		return 0, false
	}
}

func hexValue(c rune) (byte, bool) {
	switch {
	case isDigit(c):
		return byte(c - '0'), true
	case c >= 'a' && c <= 'f':
		return byte(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return byte(c-'A') + 10, true
	default:
		return 0, false
	}
}
