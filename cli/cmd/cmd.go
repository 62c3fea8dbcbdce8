package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/sngc/lang"
	"github.com/ardnew/sngc/log"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

type optionsKey struct{}

// WithOptions returns a new context.Context carrying compiler options shared
// by every command, such as the token length bound.
func WithOptions(ctx context.Context, opts ...lang.Option) context.Context {
	return context.WithValue(ctx, optionsKey{}, opts)
}

// optionsFrom returns the compiler options stored in ctx by [WithOptions],
// followed by extra.
func optionsFrom(ctx context.Context, extra ...lang.Option) []lang.Option {
	opts, _ := ctx.Value(optionsKey{}).([]lang.Option)

	return append(append([]lang.Option{lang.WithLogger(log.Default())}, opts...), extra...)
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// stdout receives command output that is not written to a file.
var stdout io.Writer = os.Stdout

// openSource opens the named source file, or stdin for "-". The returned name
// is the source name used in diagnostics.
func openSource(path string) (io.ReadCloser, string, error) {
	if path == "" || path == stdinSource {
		return io.NopCloser(os.Stdin), lang.DefaultSource, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, "", ErrOpenSource.
			With(slog.String("file", path)).
			Wrap(err)
	}

	return file, path, nil
}

// outputPath returns the destination of a compile: output if given, stdout
// for stdin sources, else the source path with its extension replaced by
// ".png".
func outputPath(source, output string) string {
	switch {
	case output != "":
		return output
	case source == "" || source == stdinSource:
		return stdinSource
	default:
		return strings.TrimSuffix(source, filepath.Ext(source)) + ".png"
	}
}

// writeOutput writes data to path, or to stdout for "-".
func writeOutput(path string, data []byte) error {
	if path == stdinSource {
		if _, err := stdout.Write(data); err != nil {
			return ErrWriteOutput.Wrap(err)
		}

		return nil
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return ErrWriteOutput.
			With(slog.String("file", path)).
			Wrap(err)
	}

	return nil
}
