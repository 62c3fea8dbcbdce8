package codec

import (
	"fmt"

	"github.com/ardnew/sngc/lang"
)

// pass is one reduced image of the Adam7 interlace.
type pass struct {
	x, y, dx, dy int
}

var adam7 = [...]pass{
	{0, 0, 8, 8},
	{4, 0, 8, 8},
	{0, 4, 4, 8},
	{2, 0, 4, 4},
	{0, 2, 2, 4},
	{1, 0, 2, 2},
	{0, 1, 1, 2},
}

// encodeScanlines returns the filtered, uncompressed image data stream for
// rows. Every scanline uses filter type None. Samples narrower than a byte
// are packed most significant bits first.
func encodeScanlines(h lang.Header, pal lang.Palette, rows [][]byte) ([]byte, error) {
	width, height := int(h.Width), int(h.Height)
	bpp := h.BytesPerSample()

	if len(rows) != height {
		return nil, fmt.Errorf("%w: %d rows, want %d", ErrPixels, len(rows), height)
	}

	for y, row := range rows {
		if len(row) != width*bpp {
			return nil, fmt.Errorf("%w: row %d has %d bytes, want %d",
				ErrPixels, y, len(row), width*bpp)
		}

		if err := checkSamples(h, pal, y, row); err != nil {
			return nil, err
		}
	}

	if !h.Interlace {
		return appendPass(nil, h, rows, pass{0, 0, 1, 1}), nil
	}

	var out []byte
	for _, p := range adam7 {
		out = appendPass(out, h, rows, p)
	}

	return out, nil
}

// checkSamples rejects palette indices past the palette and sample values
// wider than the bit depth.
func checkSamples(h lang.Header, pal lang.Palette, y int, row []byte) error {
	switch {
	case h.Paletted():
		for x, v := range row {
			if int(v) >= len(pal) {
				return fmt.Errorf("%w: palette index %d at (%d, %d) exceeds %d entries",
					ErrPixels, v, x, y, len(pal))
			}
		}

	case h.BitDepth < 8:
		for x, v := range row {
			if v >= 1<<h.BitDepth {
				return fmt.Errorf("%w: sample %d at (%d, %d) exceeds bit depth %d",
					ErrPixels, v, x, y, h.BitDepth)
			}
		}
	}

	return nil
}

// appendPass appends the scanlines of the reduced image p to out. An empty
// reduced image contributes nothing.
func appendPass(out []byte, h lang.Header, rows [][]byte, p pass) []byte {
	width, height := int(h.Width), int(h.Height)
	bpp := h.BytesPerSample()

	if p.x >= width || p.y >= height {
		return out
	}

	cols := (width - p.x + p.dx - 1) / p.dx
	line := make([]byte, 0, cols*bpp)

	for y := p.y; y < height; y += p.dy {
		line = line[:0]
		for x := p.x; x < width; x += p.dx {
			line = append(line, rows[y][x*bpp:(x+1)*bpp]...)
		}

		out = append(out, 0) // filter type None
		out = append(out, pack(line, h.BitDepth)...)
	}

	return out
}

// pack returns samples packed at depth bits each. Depths of eight or more
// bits are returned unchanged.
func pack(samples []byte, depth uint8) []byte {
	if depth >= 8 {
		return samples
	}

	perByte := 8 / int(depth)
	out := make([]byte, (len(samples)+perByte-1)/perByte)

	for i, v := range samples {
		shift := 8 - int(depth)*(i%perByte+1)
		out[i/perByte] |= v << shift
	}

	return out
}
