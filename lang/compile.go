package lang

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/ardnew/sngc/log"
)

// DefaultSource is the source name used in diagnostics when none is given.
const DefaultSource = "stdin"

type options struct {
	source string
	maxLen int
	logger log.Logger
	output io.Writer
}

// Option configures a call to [Compile].
type Option func(options) options

// WithSource sets the source name reported in diagnostics.
func WithSource(name string) Option {
	return func(o options) options {
		o.source = name

		return o
	}
}

// WithMaxTokenLength bounds the length of a single token.
func WithMaxTokenLength(n int) Option {
	return func(o options) options {
		o.maxLen = n

		return o
	}
}

// WithLogger sets the logger receiving token traces and chunk progress.
func WithLogger(logger log.Logger) Option {
	return func(o options) options {
		o.logger = logger

		return o
	}
}

// WithOutput sets the writer handed to [Codec.Begin].
func WithOutput(w io.Writer) Option {
	return func(o options) options {
		o.output = w

		return o
	}
}

// compiler is the state of one compile. It is never shared.
type compiler struct {
	lx     *Lexer
	codec  Codec
	logger log.Logger
	seen   counters
	prev   ChunkType
	header Header
	pal    Palette
	unit   *Unit
}

// Compile reads SNG source from r, validates chunk order and cardinality,
// and streams the compiled chunks through codec. A nil codec only collects
// the records.
//
// The first error aborts the compile. Errors raised by the compiler or the
// codec are [*Error] values carrying the source position; whatever codec
// output was produced before the failure must be discarded.
func Compile(ctx context.Context, r io.Reader, codec Codec, opts ...Option) (unit *Unit, err error) {
	o := options{source: DefaultSource, output: io.Discard}
	for _, opt := range opts {
		o = opt(o)
	}

	if codec == nil {
		codec = nopCodec{}
	}

	c := &compiler{
		lx:     NewLexer(r, o.source, o.maxLen, o.logger),
		codec:  codec,
		logger: o.logger,
		prev:   noChunk,
		unit:   &Unit{Source: o.source},
	}

	if closer, ok := codec.(io.Closer); ok {
		defer func() {
			if cerr := closer.Close(); cerr != nil && err == nil {
				unit, err = nil, WrapError(KindCodec, Position{Source: o.source, Line: EOF}, cerr)
			}
		}()
	}

	if err := codec.Begin(o.output); err != nil {
		return nil, c.codecError(err)
	}

	if err := c.run(ctx); err != nil {
		return nil, err
	}

	return c.unit, nil
}

func (c *compiler) run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		tok, err := c.lx.Next()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return err
		}

		line := c.lx.Line()

		kind, ok := LookupChunk(tok.Text)
		if !ok {
			return c.unknownChunk(tok.Text)
		}

		if _, err := c.next(); err != nil {
			return err
		}

		if !c.lx.Token().Is("{") {
			return ErrSyntax.Errorf(c.lx.Position(), "missing chunk delimiter")
		}

		if !kind.Multiple && c.seen[kind.Type] > 0 {
			return ErrSemantic.Errorf(c.lx.Position(), "illegal repeated chunk")
		}

		if err := c.checkOrder(kind.Type); err != nil {
			return err
		}

		chunk, err := c.dispatch(kind.Type, line)
		if err != nil {
			return err
		}

		if chunk != nil {
			c.unit.Chunks = append(c.unit.Chunks, chunk)
		}

		c.logger.DebugContext(ctx, "chunk processed",
			slog.String("chunk", kind.Name),
			slog.Int("line", line))

		c.prev = kind.Type
		c.seen[kind.Type]++
	}

	return c.finish()
}

// finish runs the end-of-input checks and finalizes the codec.
func (c *compiler) finish() error {
	pos := Position{Source: c.unit.Source, Line: EOF}

	if c.header.Paletted() && c.seen[ChunkPLTE] == 0 {
		return ErrSemantic.Errorf(pos, "palette property set, but no PLTE chunk found")
	}

	if c.seen.payloads() == 0 {
		return ErrSemantic.Errorf(pos, "no image data")
	}

	if err := c.codec.Finalize(); err != nil {
		return WrapError(KindCodec, pos, err)
	}

	return nil
}

func (c *compiler) unknownChunk(name string) error {
	err := ErrSyntax.Errorf(c.lx.Position(), "unknown chunk type %q", name)

	if hint := suggestChunk(name); hint != "" {
		err = ErrSyntax.Errorf(c.lx.Position(),
			"unknown chunk type %q (did you mean %s?)", name, hint).
			With(slog.String("suggestion", hint))
	}

	return err
}

// checkOrder enforces the sequencing rules between chunk kinds.
func (c *compiler) checkOrder(t ChunkType) error {
	fail := func(format string, args ...any) error {
		return ErrSemantic.Errorf(c.lx.Position(), format, args...)
	}

	switch t {
	case ChunkIHDR:
		if c.prev != noChunk {
			return fail("IHDR chunk must come first")
		}

	case ChunkPLTE:
		switch {
		case c.seen.payloads() > 0:
			return fail("PLTE chunk must come before IDAT")
		case c.seen[ChunkBKGD] > 0:
			return fail("PLTE chunk encountered after bKGD")
		case c.seen[ChunkTRNS] > 0:
			return fail("PLTE chunk encountered after tRNS")
		case !c.header.Paletted():
			return fail("PLTE chunk specified for non-palette image type")
		}

	case ChunkIDAT, ChunkIMAGE:
		switch {
		case t == ChunkIDAT && c.seen[ChunkIMAGE] > 0,
			t == ChunkIMAGE && c.seen[ChunkIDAT] > 0:
			return fail("can't mix IDAT and IMAGE specs")
		case t == ChunkIDAT && c.prev != ChunkIDAT && c.seen[ChunkIDAT] > 0:
			return fail("IDAT chunks must be contiguous")
		case c.seen[ChunkIHDR] == 0:
			return fail("IHDR chunk must come before %s", t)
		case c.header.Paletted() && c.seen[ChunkPLTE] == 0:
			return fail("PLTE chunk must come before %s", t)
		}

	case ChunkCHRM, ChunkGAMA, ChunkICCP, ChunkSBIT, ChunkSRGB:
		if c.seen[ChunkPLTE] > 0 || c.seen.payloads() > 0 {
			return fail("%s chunk must come before PLTE and IDAT", t)
		}

	case ChunkBKGD, ChunkTRNS:
		if c.seen.payloads() > 0 {
			return fail("%s chunk must come between PLTE (if any) and IDAT", t)
		}

	case ChunkHIST:
		if c.seen[ChunkPLTE] == 0 || c.seen.payloads() > 0 {
			return fail("hIST chunk must come between PLTE and IDAT")
		}

	case ChunkPHYS, ChunkSPLT, ChunkOFFS, ChunkPCAL, ChunkSCAL:
		if c.seen.payloads() > 0 {
			return fail("%s chunk must come before IDAT", t)
		}

	case ChunkTIME, ChunkITXT, ChunkTEXT, ChunkZTXT,
		ChunkGIFG, ChunkGIFT, ChunkGIFX, ChunkFRAC, ChunkPrivate:
		// unconstrained
	}

	return nil
}

// dispatch runs the interpreter for t. The opening '{' has been consumed.
func (c *compiler) dispatch(t ChunkType, line int) (Chunk, error) {
	switch t {
	case ChunkIHDR:
		return c.compileIHDR(line)
	case ChunkPLTE:
		return c.compilePLTE(line)
	case ChunkIDAT:
		return c.compileIDAT(line)
	case ChunkIMAGE:
		return c.compileIMAGE(line)
	case ChunkCHRM:
		return c.compileCHRM(line)
	case ChunkGAMA:
		return c.compileGAMA(line)
	case ChunkSRGB:
		return c.compileSRGB(line)
	case ChunkICCP, ChunkSBIT, ChunkBKGD, ChunkHIST, ChunkTRNS, ChunkPHYS,
		ChunkSPLT, ChunkTIME, ChunkITXT, ChunkTEXT, ChunkZTXT, ChunkOFFS,
		ChunkPCAL, ChunkSCAL, ChunkGIFG, ChunkGIFT, ChunkGIFX, ChunkFRAC:
		return nil, ErrSyntax.Errorf(c.lx.Position(),
			"%s chunk type is not supported yet", t)
	case ChunkPrivate:
		return nil, ErrSyntax.Errorf(c.lx.Position(),
			"private chunk types are not supported yet")
	default:
		return nil, ErrSyntax.Errorf(c.lx.Position(), "unknown chunk type %q", t)
	}
}

func (c *compiler) codecError(err error) error {
	return WrapError(KindCodec, c.lx.Position(), err)
}
