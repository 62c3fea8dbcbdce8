package lang

import "strings"

// ColorFlags is the color-model bitset of an image header. The bit values
// match the PNG color type masks.
type ColorFlags uint8

const (
	ColorPalette ColorFlags = 1 << iota // palette
	ColorColor                          // color
	ColorAlpha                          // alpha
)

// String lists the set flags, or returns "gray" if none are set.
func (f ColorFlags) String() string {
	if f == 0 {
		return "gray"
	}

	var part []string

	for _, flag := range []struct {
		bit  ColorFlags
		name string
	}{
		{ColorPalette, "palette"},
		{ColorColor, "color"},
		{ColorAlpha, "alpha"},
	} {
		if f&flag.bit != 0 {
			part = append(part, flag.name)
		}
	}

	return strings.Join(part, "+")
}

// Header describes the image dimensions and pixel format.
type Header struct {
	Width     uint32
	Height    uint32
	BitDepth  uint8
	Color     ColorFlags
	Interlace bool
}

// Paletted reports whether pixels are palette indices.
func (h Header) Paletted() bool { return h.Color&ColorPalette != 0 }

// SampleBits returns the number of bits one pixel occupies in an IMAGE
// data block.
func (h Header) SampleBits() int {
	depth := int(h.BitDepth)

	switch {
	case h.Paletted():
		return 8
	case h.Color&ColorColor != 0 && h.Color&ColorAlpha != 0:
		return depth * 4
	case h.Color&ColorColor != 0:
		return depth * 3
	case h.Color&ColorAlpha != 0:
		return depth * 2
	default:
		return depth
	}
}

// BytesPerSample returns the number of decoded bytes one pixel occupies.
// Samples narrower than a byte still take one byte each.
func (h Header) BytesPerSample() int {
	return max(1, (h.SampleBits()+7)/8)
}

// RGB is one palette entry.
type RGB struct {
	R, G, B uint8
}

// Palette is an ordered list of at most [MaxPaletteEntries] colors.
type Palette []RGB

// MaxPaletteEntries bounds the length of a [Palette].
const MaxPaletteEntries = 256

// Chromaticity is a CIE (x, y) coordinate pair.
type Chromaticity struct {
	X, Y float64
}

// Primaries holds the white point and the red, green and blue primaries.
type Primaries struct {
	White, Red, Green, Blue Chromaticity
}

// Chunk is one compiled chunk record. The concrete types are
// [*HeaderChunk], [*PaletteChunk], [*DataChunk], [*ImageChunk],
// [*PrimariesChunk], [*GammaChunk] and [*StandardRGBChunk].
type Chunk interface {
	// Name returns the PNG chunk type, or "IMAGE" for a full-image block.
	Name() string
	// Line returns the source line of the chunk name.
	Line() int

	chunk()
}

// at records the source line of a chunk.
type at struct{ line int }

func (a at) Line() int { return a.line }
func (at) chunk()      {}

// HeaderChunk is a compiled IHDR chunk.
type HeaderChunk struct {
	at
	Header
}

// PaletteChunk is a compiled PLTE chunk.
type PaletteChunk struct {
	at
	Palette Palette
}

// DataChunk is a compiled IDAT chunk holding pre-encoded bytes.
type DataChunk struct {
	at
	Data []byte
}

// ImageChunk is a compiled IMAGE block reshaped into scanlines.
type ImageChunk struct {
	at
	Mode       DataMode
	SampleBits int
	Rows       [][]byte
}

// PrimariesChunk is a compiled cHRM chunk.
type PrimariesChunk struct {
	at
	Primaries
}

// GammaChunk is a compiled gAMA chunk.
type GammaChunk struct {
	at
	Gamma float64
}

// StandardRGBChunk is a compiled sRGB chunk.
type StandardRGBChunk struct {
	at
	Intent uint8
}

func (*HeaderChunk) Name() string      { return "IHDR" }
func (*PaletteChunk) Name() string     { return "PLTE" }
func (*DataChunk) Name() string        { return "IDAT" }
func (*ImageChunk) Name() string       { return "IMAGE" }
func (*PrimariesChunk) Name() string   { return "cHRM" }
func (*GammaChunk) Name() string       { return "gAMA" }
func (*StandardRGBChunk) Name() string { return "sRGB" }

// Unit is the result of a successful compile: the chunk records in source
// order.
type Unit struct {
	Source string
	Chunks []Chunk
}

// Header returns the compiled header, if the unit has one.
func (u *Unit) Header() (Header, bool) {
	for _, c := range u.Chunks {
		if h, ok := c.(*HeaderChunk); ok {
			return h.Header, true
		}
	}

	return Header{}, false
}

// Palette returns the compiled palette, or nil.
func (u *Unit) Palette() Palette {
	for _, c := range u.Chunks {
		if p, ok := c.(*PaletteChunk); ok {
			return p.Palette
		}
	}

	return nil
}

// Pixels returns the scanlines of the IMAGE block, or nil.
func (u *Unit) Pixels() [][]byte {
	for _, c := range u.Chunks {
		if img, ok := c.(*ImageChunk); ok {
			return img.Rows
		}
	}

	return nil
}
