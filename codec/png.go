package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"math"

	"github.com/klauspost/compress/zlib"

	"github.com/ardnew/sngc/lang"
)

// Signature is the eight-byte PNG file signature.
const Signature = "\x89PNG\r\n\x1a\n"

// Predefined errors (sentinel values).
var (
	ErrHeader   = errors.New("invalid image header")
	ErrPalette  = errors.New("invalid palette")
	ErrColor    = errors.New("invalid color information")
	ErrPixels   = errors.New("invalid pixel data")
	ErrSequence = errors.New("out of sequence")
)

// maxFixed is the largest value of a PNG four-byte unsigned integer.
const maxFixed = math.MaxInt32

// fixed is the PNG scale of chromaticity and gamma values.
const fixed = 100000

// Chromaticities and gamma implied by an sRGB chunk.
var (
	srgbPrimaries = lang.Primaries{
		White: lang.Chromaticity{X: 0.3127, Y: 0.329},
		Red:   lang.Chromaticity{X: 0.64, Y: 0.33},
		Green: lang.Chromaticity{X: 0.3, Y: 0.6},
		Blue:  lang.Chromaticity{X: 0.15, Y: 0.06},
	}
	srgbGamma = 0.45455
)

// bitDepths lists the legal bit depths of each PNG color type.
var bitDepths = map[lang.ColorFlags][]uint8{
	0:                                   {1, 2, 4, 8, 16},
	lang.ColorColor:                     {8, 16},
	lang.ColorPalette | lang.ColorColor: {1, 2, 4, 8},
	lang.ColorAlpha:                     {8, 16},
	lang.ColorColor | lang.ColorAlpha:   {8, 16},
}

// PNG encodes compiled chunks as a PNG stream.
//
// Header and color information is held until the first payload write, so
// the output always has IHDR first and the color chunks ahead of PLTE and
// IDAT. A PNG is reusable: every call to Begin starts a new stream.
type PNG struct {
	config

	w   io.Writer
	err error

	header    *lang.Header
	palette   lang.Palette
	primaries *lang.Primaries
	gamma     float64
	intent    int

	started bool // IHDR and color chunks written
	image   bool // full image written
	raw     bool // raw IDAT written
}

// New returns a PNG codec.
func New(opts ...Option) *PNG {
	return &PNG{config: makeConfig(opts...)}
}

// Begin starts a new stream on w with the PNG signature.
func (p *PNG) Begin(w io.Writer) error {
	*p = PNG{config: p.config, w: w, intent: -1}

	return p.write([]byte(Signature))
}

// SetHeader validates and records the image header.
func (p *PNG) SetHeader(h lang.Header) error {
	if p.started {
		return fmt.Errorf("%w: header after image data", ErrSequence)
	}

	switch {
	case h.Width == 0 || h.Width > maxFixed:
		return fmt.Errorf("%w: width %d", ErrHeader, h.Width)
	case h.Height == 0 || h.Height > maxFixed:
		return fmt.Errorf("%w: height %d", ErrHeader, h.Height)
	}

	// A palette implies color.
	h.Color = colorType(h.Color)

	depths, ok := bitDepths[h.Color]
	if !ok {
		return fmt.Errorf("%w: color type %d (%s)", ErrHeader, h.Color, h.Color)
	}

	if !bytes.Contains(depths, []byte{h.BitDepth}) {
		return fmt.Errorf("%w: bit depth %d not allowed for color type %d (%s)",
			ErrHeader, h.BitDepth, h.Color, h.Color)
	}

	p.header = &h

	return nil
}

// SetPalette validates and records the palette.
func (p *PNG) SetPalette(pal lang.Palette) error {
	switch {
	case p.started:
		return fmt.Errorf("%w: palette after image data", ErrSequence)
	case len(pal) == 0:
		return fmt.Errorf("%w: no entries", ErrPalette)
	case len(pal) > lang.MaxPaletteEntries:
		return fmt.Errorf("%w: %d entries", ErrPalette, len(pal))
	}

	if h := p.header; h != nil && h.Paletted() && len(pal) > 1<<h.BitDepth {
		return fmt.Errorf("%w: %d entries exceed bit depth %d",
			ErrPalette, len(pal), h.BitDepth)
	}

	p.palette = pal

	return nil
}

// SetPrimaries validates and records the chromaticities.
func (p *PNG) SetPrimaries(pri lang.Primaries) error {
	if p.started {
		return fmt.Errorf("%w: cHRM after image data", ErrSequence)
	}

	for _, v := range []float64{
		pri.White.X, pri.White.Y, pri.Red.X, pri.Red.Y,
		pri.Green.X, pri.Green.Y, pri.Blue.X, pri.Blue.Y,
	} {
		if v < 0 || v*fixed > maxFixed {
			return fmt.Errorf("%w: chromaticity %g out of range", ErrColor, v)
		}
	}

	p.primaries = &pri

	return nil
}

// SetGamma validates and records the image gamma.
func (p *PNG) SetGamma(gamma float64) error {
	switch {
	case p.started:
		return fmt.Errorf("%w: gAMA after image data", ErrSequence)
	case gamma <= 0 || gamma*fixed > maxFixed:
		return fmt.Errorf("%w: gamma %g out of range", ErrColor, gamma)
	}

	p.gamma = gamma

	return nil
}

// SetStandardRGB validates and records the sRGB rendering intent. Unless
// set explicitly, the standard gamma and chromaticities are written too.
func (p *PNG) SetStandardRGB(intent uint8) error {
	switch {
	case p.started:
		return fmt.Errorf("%w: sRGB after image data", ErrSequence)
	case intent > 3:
		return fmt.Errorf("%w: rendering intent %d out of range", ErrColor, intent)
	}

	p.intent = int(intent)

	return nil
}

// WriteRawChunk writes one chunk with pre-encoded data.
func (p *PNG) WriteRawChunk(name string, data []byte) error {
	if !validName(name) {
		return fmt.Errorf("%w: chunk name %q", ErrSequence, name)
	}

	if p.image {
		return fmt.Errorf("%w: %s after full image", ErrSequence, name)
	}

	if err := p.start(); err != nil {
		return err
	}

	p.raw = p.raw || name == "IDAT"

	return p.chunk(name, data)
}

// WriteImage filters, compresses and writes a full image given as one slice
// of unpacked samples per scanline.
func (p *PNG) WriteImage(rows [][]byte) error {
	if p.image || p.raw {
		return fmt.Errorf("%w: image data already written", ErrSequence)
	}

	if err := p.start(); err != nil {
		return err
	}

	raw, err := encodeScanlines(*p.header, p.palette, rows)
	if err != nil {
		return err
	}

	var buf bytes.Buffer

	zw, err := zlib.NewWriterLevel(&buf, p.level)
	if err != nil {
		return err
	}

	if _, err := zw.Write(raw); err != nil {
		return err
	}

	if err := zw.Close(); err != nil {
		return err
	}

	for data := buf.Bytes(); len(data) > 0; {
		n := min(len(data), p.chunkSize)
		if err := p.chunk("IDAT", data[:n]); err != nil {
			return err
		}

		data = data[n:]
	}

	p.image = true

	return nil
}

// Finalize writes IEND. The stream must contain image data.
func (p *PNG) Finalize() error {
	if !p.image && !p.raw {
		return fmt.Errorf("%w: no image data", ErrSequence)
	}

	return p.chunk("IEND", nil)
}

// start writes IHDR and the color chunks ahead of the first payload.
func (p *PNG) start() error {
	if !p.started {
		p.started = true

		if err := p.prelude(); err != nil && p.err == nil {
			p.err = err
		}
	}

	return p.err
}

func (p *PNG) prelude() error {
	h := p.header
	if h == nil {
		return fmt.Errorf("%w: image data before header", ErrSequence)
	}

	if h.Paletted() && len(p.palette) == 0 {
		return fmt.Errorf("%w: palette image without palette", ErrPalette)
	}

	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:], h.Width)
	binary.BigEndian.PutUint32(ihdr[4:], h.Height)
	ihdr[8] = h.BitDepth
	ihdr[9] = uint8(h.Color)

	if h.Interlace {
		ihdr[12] = 1
	}

	if err := p.chunk("IHDR", ihdr); err != nil {
		return err
	}

	pri, gamma := p.primaries, p.gamma
	if p.intent >= 0 {
		if pri == nil {
			pri = &srgbPrimaries
		}

		if gamma == 0 {
			gamma = srgbGamma
		}
	}

	if pri != nil {
		chrm := make([]byte, 0, 32)
		for _, c := range []lang.Chromaticity{pri.White, pri.Red, pri.Green, pri.Blue} {
			chrm = binary.BigEndian.AppendUint32(chrm, toFixed(c.X))
			chrm = binary.BigEndian.AppendUint32(chrm, toFixed(c.Y))
		}

		if err := p.chunk("cHRM", chrm); err != nil {
			return err
		}
	}

	if gamma > 0 {
		if err := p.chunk("gAMA", binary.BigEndian.AppendUint32(nil, toFixed(gamma))); err != nil {
			return err
		}
	}

	if p.intent >= 0 {
		if err := p.chunk("sRGB", []byte{uint8(p.intent)}); err != nil {
			return err
		}
	}

	if len(p.palette) > 0 {
		plte := make([]byte, 0, 3*len(p.palette))
		for _, e := range p.palette {
			plte = append(plte, e.R, e.G, e.B)
		}

		if err := p.chunk("PLTE", plte); err != nil {
			return err
		}
	}

	return nil
}

// chunk writes length, type, data and CRC of one chunk.
func (p *PNG) chunk(name string, data []byte) error {
	if len(data) > maxFixed {
		return fmt.Errorf("%w: %s data too long", ErrSequence, name)
	}

	b := make([]byte, 0, 12+len(data))
	b = binary.BigEndian.AppendUint32(b, uint32(len(data)))
	b = append(b, name...)
	b = append(b, data...)
	b = binary.BigEndian.AppendUint32(b, crc32.ChecksumIEEE(b[4:]))

	return p.write(b)
}

// write keeps the first write error and reports it on every later call.
func (p *PNG) write(b []byte) error {
	if p.err != nil {
		return p.err
	}

	if p.w == nil {
		p.err = fmt.Errorf("%w: write before Begin", ErrSequence)

		return p.err
	}

	_, p.err = p.w.Write(b)

	return p.err
}

// colorType returns the PNG color type of flags.
func colorType(f lang.ColorFlags) lang.ColorFlags {
	if f&lang.ColorPalette != 0 {
		f |= lang.ColorColor
	}

	return f
}

func toFixed(v float64) uint32 {
	return uint32(v*fixed + 0.5)
}

func validName(name string) bool {
	if len(name) != 4 {
		return false
	}

	for i := range len(name) {
		c := name[i] | 0x20
		if c < 'a' || c > 'z' {
			return false
		}
	}

	return true
}
