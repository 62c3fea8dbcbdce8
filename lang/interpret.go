package lang

import (
	"errors"
	"io"
	"math"
	"math/bits"
	"strconv"
)

// maxLong is the largest value of a PNG four-byte unsigned integer field.
const maxLong = 1<<31 - 1

// next returns the next token, failing on end of input.
func (c *compiler) next() (Token, error) {
	tok, err := c.lx.Next()
	if errors.Is(err, io.EOF) {
		return Token{}, ErrSyntax.Errorf(c.lx.Position(), "unexpected EOF")
	}

	return tok, err
}

// inner returns the next token of a chunk body. more is false when the token
// is the closing '}'.
func (c *compiler) inner() (tok Token, more bool, err error) {
	tok, err = c.next()
	if err != nil {
		return Token{}, false, err
	}

	return tok, !tok.Is("}"), nil
}

// require fails unless the next token is the punctuation p.
func (c *compiler) require(p string) error {
	tok, err := c.next()
	if err != nil {
		return err
	}

	if !tok.Is(p) {
		return ErrSyntax.Errorf(c.lx.Position(), "unexpected token %s", tok.Text)
	}

	return nil
}

// numeric returns the text of the next token, which must be present.
func (c *compiler) numeric(what string) (string, error) {
	tok, err := c.lx.Next()
	if errors.Is(err, io.EOF) {
		return "", ErrSyntax.Errorf(c.lx.Position(), "EOF while expecting %s constant", what)
	} else if err != nil {
		return "", err
	}

	return tok.Text, nil
}

// long parses the next token as an unsigned integer in 0..2^31-1. Base
// prefixes 0x and 0 select hexadecimal and octal.
func (c *compiler) long() (uint32, error) {
	text, err := c.numeric("long-integer")
	if err != nil {
		return 0, err
	}

	v, err := strconv.ParseUint(text, 0, 64)
	if err != nil || v > maxLong {
		return 0, ErrSyntax.Errorf(c.lx.Position(), "invalid or out of range long constant %q", text)
	}

	return uint32(v), nil
}

// byte parses the next token as an unsigned integer in 0..255.
func (c *compiler) byte() (uint8, error) {
	text, err := c.numeric("byte")
	if err != nil {
		return 0, err
	}

	v, err := strconv.ParseUint(text, 0, 8)
	if err != nil {
		return 0, ErrSyntax.Errorf(c.lx.Position(), "invalid or out of range byte constant %q", text)
	}

	return uint8(v), nil
}

// double parses the next token as a finite, non-negative real number.
func (c *compiler) double() (float64, error) {
	text, err := c.numeric("double-precision")
	if err != nil {
		return 0, err
	}

	v, err := strconv.ParseFloat(text, 64)
	if err != nil || v < 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, ErrSyntax.Errorf(c.lx.Position(),
			"invalid or out of range double-precision constant %q", text)
	}

	return v, nil
}

func (c *compiler) compileIHDR(line int) (Chunk, error) {
	h := Header{BitDepth: 8}

	for {
		tok, more, err := c.inner()
		if err != nil {
			return nil, err
		}

		if !more {
			break
		}

		switch tok.Text {
		case "height":
			h.Height, err = c.long()
		case "width":
			h.Width, err = c.long()
		case "bitdepth":
			h.BitDepth, err = c.byte()
		case "palette":
			h.Color |= ColorPalette
		case "color":
			h.Color |= ColorColor
		case "alpha":
			h.Color |= ColorAlpha
		case "interlace":
			h.Interlace = true
		case "using", "with":
			// syntactic sugar
		default:
			return nil, ErrSyntax.Errorf(c.lx.Position(),
				"bad token `%s' in IHDR specification", tok.Text)
		}

		if err != nil {
			return nil, err
		}
	}

	switch {
	case h.Height == 0:
		return nil, ErrSemantic.Errorf(c.lx.Position(), "image height is zero or nonexistent")
	case h.Width == 0:
		return nil, ErrSemantic.Errorf(c.lx.Position(), "image width is zero or nonexistent")
	}

	if err := c.codec.SetHeader(h); err != nil {
		return nil, c.codecError(err)
	}

	c.header = h

	return &HeaderChunk{at: at{line}, Header: h}, nil
}

func (c *compiler) compilePLTE(line int) (Chunk, error) {
	pal := make(Palette, 0, MaxPaletteEntries)

	for {
		tok, more, err := c.inner()
		if err != nil {
			return nil, err
		}

		if !more {
			break
		}

		if !tok.Is("(") {
			return nil, ErrSyntax.Errorf(c.lx.Position(), "bad syntax in PLTE description")
		}

		if len(pal) == MaxPaletteEntries {
			return nil, ErrSemantic.Errorf(c.lx.Position(),
				"too many palette entries (at most %d)", MaxPaletteEntries)
		}

		entry, err := c.triple()
		if err != nil {
			return nil, err
		}

		pal = append(pal, entry)
	}

	if err := c.codec.SetPalette(pal); err != nil {
		return nil, c.codecError(err)
	}

	c.pal = pal

	return &PaletteChunk{at: at{line}, Palette: pal}, nil
}

// triple parses "r , g , b )" after an opening '('.
func (c *compiler) triple() (RGB, error) {
	var (
		rgb RGB
		err error
	)

	for i, dst := range []*uint8{&rgb.R, &rgb.G, &rgb.B} {
		if *dst, err = c.byte(); err != nil {
			return RGB{}, err
		}

		sep := ","
		if i == 2 {
			sep = ")"
		}

		if err = c.require(sep); err != nil {
			return RGB{}, err
		}
	}

	return rgb, nil
}

func (c *compiler) compileIDAT(line int) (Chunk, error) {
	data, err := decodePixels(c.lx, ModeHex)
	if err != nil {
		return nil, err
	}

	if err := c.codec.WriteRawChunk("IDAT", data); err != nil {
		return nil, c.codecError(err)
	}

	return &DataChunk{at: at{line}, Data: data}, nil
}

// imageMode selects compact mode when a sample fits one base-62 character.
func imageMode(h Header, pal Palette) DataMode {
	if h.SampleBits() <= 5 || (h.Paletted() && len(pal) <= 62) {
		return ModeCompact
	}

	return ModeHex
}

func (c *compiler) compileIMAGE(line int) (Chunk, error) {
	h := c.header
	mode := imageMode(h, c.pal)

	data, err := decodePixels(c.lx, mode)
	if err != nil {
		return nil, err
	}

	rowLen := uint64(h.Width) * uint64(h.BytesPerSample())
	if hi, size := bits.Mul64(rowLen, uint64(h.Height)); hi != 0 || size != uint64(len(data)) {
		return nil, ErrSemantic.Errorf(c.lx.Position(),
			"size of IMAGE doesn't match height * width in IHDR (got %d bytes, want %d rows of %d)",
			len(data), h.Height, rowLen)
	}

	rows := make([][]byte, h.Height)
	for i := range rows {
		lo := uint64(i) * rowLen
		rows[i] = data[lo : lo+rowLen : lo+rowLen]
	}

	if err := c.codec.WriteImage(rows); err != nil {
		return nil, c.codecError(err)
	}

	return &ImageChunk{
		at:         at{line},
		Mode:       mode,
		SampleBits: h.SampleBits(),
		Rows:       rows,
	}, nil
}

func (c *compiler) compileCHRM(line int) (Chunk, error) {
	var (
		p    Primaries
		mask uint8
	)

	for {
		tok, more, err := c.inner()
		if err != nil {
			return nil, err
		}

		if !more {
			break
		}

		var (
			dst *Chromaticity
			bit uint8
		)

		switch tok.Text {
		case "white":
			dst, bit = &p.White, 0x01
		case "red":
			dst, bit = &p.Red, 0x02
		case "green":
			dst, bit = &p.Green, 0x04
		case "blue":
			dst, bit = &p.Blue, 0x08
		default:
			return nil, ErrSyntax.Errorf(c.lx.Position(),
				"invalid color name `%s' in cHRM specification", tok.Text)
		}

		if mask&bit != 0 {
			return nil, ErrSemantic.Errorf(c.lx.Position(),
				"duplicate %s point in cHRM specification", tok.Text)
		}

		mask |= bit

		if err := c.require("("); err != nil {
			return nil, err
		}

		if dst.X, err = c.double(); err != nil {
			return nil, err
		}

		if err := c.require(","); err != nil {
			return nil, err
		}

		if dst.Y, err = c.double(); err != nil {
			return nil, err
		}

		if err := c.require(")"); err != nil {
			return nil, err
		}
	}

	if mask != 0x0f {
		return nil, ErrSemantic.Errorf(c.lx.Position(), "cHRM specification is not complete")
	}

	if err := c.codec.SetPrimaries(p); err != nil {
		return nil, c.codecError(err)
	}

	return &PrimariesChunk{at: at{line}, Primaries: p}, nil
}

func (c *compiler) compileGAMA(line int) (Chunk, error) {
	gamma, err := c.double()
	if err != nil {
		return nil, err
	}

	if err := c.close("gAMA"); err != nil {
		return nil, err
	}

	if err := c.codec.SetGamma(gamma); err != nil {
		return nil, c.codecError(err)
	}

	return &GammaChunk{at: at{line}, Gamma: gamma}, nil
}

func (c *compiler) compileSRGB(line int) (Chunk, error) {
	intent, err := c.byte()
	if err != nil {
		return nil, err
	}

	if err := c.close("sRGB"); err != nil {
		return nil, err
	}

	if err := c.codec.SetStandardRGB(intent); err != nil {
		return nil, c.codecError(err)
	}

	return &StandardRGBChunk{at: at{line}, Intent: intent}, nil
}

// close fails unless the next token ends the chunk body.
func (c *compiler) close(name string) error {
	tok, err := c.lx.Next()
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	if err != nil || !tok.Is("}") {
		return ErrSyntax.Errorf(c.lx.Position(), "bad token in %s specification", name)
	}

	return nil
}
