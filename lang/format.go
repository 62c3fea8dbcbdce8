package lang

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// compactAlphabet lists the compact-mode characters by value.
const compactAlphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// ToMap converts the unit into nested maps and slices suitable for generic
// serialization. Byte payloads are rendered as hexadecimal strings.
func (u *Unit) ToMap() map[string]any {
	chunks := make([]any, 0, len(u.Chunks))
	for _, c := range u.Chunks {
		chunks = append(chunks, chunkMap(c))
	}

	return map[string]any{
		"source": u.Source,
		"chunks": chunks,
	}
}

func chunkMap(c Chunk) map[string]any {
	m := map[string]any{
		"name": c.Name(),
		"line": c.Line(),
	}

	switch c := c.(type) {
	case *HeaderChunk:
		m["width"] = c.Width
		m["height"] = c.Height
		m["bitdepth"] = c.BitDepth
		m["color"] = c.Color.String()
		m["interlace"] = c.Interlace

	case *PaletteChunk:
		entries := make([]any, len(c.Palette))
		for i, e := range c.Palette {
			entries[i] = []int{int(e.R), int(e.G), int(e.B)}
		}

		m["entries"] = entries

	case *DataChunk:
		m["data"] = hex.EncodeToString(c.Data)

	case *ImageChunk:
		rows := make([]any, len(c.Rows))
		for i, r := range c.Rows {
			rows[i] = hex.EncodeToString(r)
		}

		m["mode"] = c.Mode.String()
		m["samplebits"] = c.SampleBits
		m["rows"] = rows

	case *PrimariesChunk:
		for name, p := range map[string]Chromaticity{
			"white": c.White,
			"red":   c.Red,
			"green": c.Green,
			"blue":  c.Blue,
		} {
			m[name] = []float64{p.X, p.Y}
		}

	case *GammaChunk:
		m["gamma"] = c.Gamma

	case *StandardRGBChunk:
		m["intent"] = c.Intent
	}

	return m
}

// FormatJSON writes the unit as JSON to the writer.
func (u *Unit) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(u.ToMap(), "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(u.ToMap())
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

// FormatYAML writes the unit as YAML to the writer.
func (u *Unit) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, u.ToMap(), opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(yamlData))

	return err
}

// Format writes the unit back out as SNG source. Compiling the output yields
// the same chunk records, apart from line numbers.
func (u *Unit) Format(_ context.Context, w io.Writer, indent int) error {
	var sb strings.Builder

	pad := strings.Repeat(" ", max(indent, 0))

	for i, c := range u.Chunks {
		if i > 0 {
			sb.WriteByte('\n')
		}

		sb.WriteString(c.Name())
		sb.WriteString(" {\n")

		formatBody(&sb, c, pad)

		sb.WriteString("}\n")
	}

	_, err := io.WriteString(w, sb.String())

	return err
}

func formatBody(sb *strings.Builder, c Chunk, pad string) {
	line := func(format string, args ...any) {
		sb.WriteString(pad)
		fmt.Fprintf(sb, format, args...)
		sb.WriteByte('\n')
	}

	switch c := c.(type) {
	case *HeaderChunk:
		line("width %d", c.Width)
		line("height %d", c.Height)
		line("bitdepth %d", c.BitDepth)

		if c.Color != 0 {
			line("using %s", strings.ReplaceAll(c.Color.String(), "+", " "))
		}

		if c.Interlace {
			line("with interlace")
		}

	case *PaletteChunk:
		for _, e := range c.Palette {
			line("(%d, %d, %d)", e.R, e.G, e.B)
		}

	case *DataChunk:
		for data := c.Data; len(data) > 0; {
			n := min(len(data), 32)
			line("%s", hex.EncodeToString(data[:n]))
			data = data[n:]
		}

	case *ImageChunk:
		for _, r := range c.Rows {
			line("%s", formatRow(r, c.Mode))
		}

	case *PrimariesChunk:
		line("white (%s, %s)", formatDouble(c.White.X), formatDouble(c.White.Y))
		line("red (%s, %s)", formatDouble(c.Red.X), formatDouble(c.Red.Y))
		line("green (%s, %s)", formatDouble(c.Green.X), formatDouble(c.Green.Y))
		line("blue (%s, %s)", formatDouble(c.Blue.X), formatDouble(c.Blue.Y))

	case *GammaChunk:
		line("%s", formatDouble(c.Gamma))

	case *StandardRGBChunk:
		line("%d", c.Intent)
	}
}

func formatRow(row []byte, mode DataMode) string {
	if mode == ModeHex {
		return hex.EncodeToString(row)
	}

	var sb strings.Builder

	for _, b := range row {
		sb.WriteByte(compactAlphabet[b])
	}

	return sb.String()
}

// formatDouble avoids exponent notation, which the lexer would split at '-'.
func formatDouble(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
