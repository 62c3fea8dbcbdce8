package codec

import "github.com/klauspost/compress/zlib"

// DefaultChunkSize is the largest data length of one IDAT chunk written for
// a full image.
const DefaultChunkSize = 8192

// DefaultCompressionLevel is the zlib level used for full images.
const DefaultCompressionLevel = zlib.DefaultCompression

type config struct {
	level     int
	chunkSize int
}

func makeConfig(opts ...Option) config {
	cfg := config{
		level:     DefaultCompressionLevel,
		chunkSize: DefaultChunkSize,
	}

	for _, opt := range opts {
		cfg = opt(cfg)
	}

	return cfg
}

// Option configures a [PNG] codec.
type Option func(config) config

// WithCompressionLevel sets the zlib compression level, from
// [zlib.HuffmanOnly] through [zlib.BestCompression].
// Out of range levels are ignored.
func WithCompressionLevel(level int) Option {
	return func(c config) config {
		if level >= zlib.HuffmanOnly && level <= zlib.BestCompression {
			c.level = level
		}

		return c
	}
}

// WithChunkSize sets the largest IDAT data length written for a full image.
// Non-positive sizes are ignored.
func WithChunkSize(n int) Option {
	return func(c config) config {
		if n > 0 {
			c.chunkSize = n
		}

		return c
	}
}
