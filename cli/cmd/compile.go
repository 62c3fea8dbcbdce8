package cmd

import (
	"bytes"
	"context"
	"log/slog"

	"github.com/ardnew/sngc/codec"
	"github.com/ardnew/sngc/lang"
	"github.com/ardnew/sngc/log"
	"github.com/ardnew/sngc/profile"
)

// Compile translates an SNG source file into a PNG image.
//
// The image is buffered in memory and written only after compilation
// succeeds, so a failed compile never leaves a partial output file.
type Compile struct {
	Output      string `help:"Output file or '-' for stdout (default: SOURCE with .png extension)" placeholder:"FILE" short:"o" type:"path"`
	Compression int    `default:"-1" help:"zlib compression level (-2 Huffman only, -1 default, 0-9)"                                     short:"z"`
	ChunkSize   int    `default:"${chunkSize}" help:"Maximum payload bytes per image data chunk"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin." name:"source"`
}

// Run executes the compile command.
func (c *Compile) Run(ctx context.Context) error {
	data, err := compileSource(ctx, c.Source, codec.New(
		codec.WithCompressionLevel(c.Compression),
		codec.WithChunkSize(c.ChunkSize),
	))
	if err != nil {
		return err
	}

	out := outputPath(c.Source, c.Output)

	if err := writeOutput(out, data); err != nil {
		return err
	}

	log.InfoContext(ctx, "compiled",
		slog.String("source", c.Source),
		slog.String("output", out),
		slog.Int("bytes", len(data)),
	)

	return nil
}

// Check compiles an SNG source file and discards the image, reporting only
// whether compilation succeeds.
type Check struct {
	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin." name:"source"`
}

// Run executes the check command.
func (c *Check) Run(ctx context.Context) error {
	if _, err := compileSource(ctx, c.Source, codec.New()); err != nil {
		return err
	}

	log.InfoContext(ctx, "ok", slog.String("source", c.Source))

	return nil
}

// compileSource compiles the named source with cdc and returns the encoded
// bytes.
func compileSource(ctx context.Context, source string, cdc lang.Codec) ([]byte, error) {
	unit, buf, err := compileUnit(ctx, source, cdc)
	if err != nil {
		return nil, err
	}

	log.DebugContext(ctx, "compiled unit",
		slog.String("source", unit.Source),
		slog.Int("chunks", len(unit.Chunks)),
	)

	return buf.Bytes(), nil
}

// compileUnit opens and compiles source, returning the validated unit and the
// bytes written by cdc.
func compileUnit(ctx context.Context, source string, cdc lang.Codec) (*lang.Unit, *bytes.Buffer, error) {
	in, name, err := openSource(source)
	if err != nil {
		return nil, nil, err
	}
	defer in.Close()

	var (
		buf  bytes.Buffer
		unit *lang.Unit
	)

	// Samples taken while compiling carry the source name as a pprof label.
	profile.Source(ctx, name, func(ctx context.Context) {
		unit, err = lang.Compile(ctx, in, cdc, optionsFrom(ctx,
			lang.WithSource(name),
			lang.WithOutput(&buf),
		)...)
	})
	if err != nil {
		return nil, nil, err
	}

	return unit, &buf, nil
}
